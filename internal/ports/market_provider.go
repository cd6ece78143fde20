package ports

import (
	"context"

	"github.com/alejandrodnm/polytrader/internal/domain"
)

// MarketProvider fetches market listings from the exchange.
type MarketProvider interface {
	// ListMarkets returns up to limit markets, paginating internally.
	ListMarkets(ctx context.Context, limit int) ([]domain.Market, error)

	// GetMarket returns a single market by condition ID.
	GetMarket(ctx context.Context, conditionID string) (domain.Market, error)
}
