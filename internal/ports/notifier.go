package ports

import (
	"context"

	"github.com/alejandrodnm/polytrader/internal/domain"
)

// Notifier presents cycle results to the user.
type Notifier interface {
	// NotifyOpportunities shows the ranked opportunity list.
	NotifyOpportunities(ctx context.Context, opportunities []domain.Opportunity) error

	// NotifySummary shows the portfolio summary after a cycle.
	NotifySummary(ctx context.Context, summary domain.PortfolioSummary) error
}
