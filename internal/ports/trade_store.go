package ports

import (
	"context"
	"time"

	"github.com/alejandrodnm/polytrader/internal/domain"
)

// TradeStore persists realized trades and daily performance stats.
type TradeStore interface {
	// SaveTrade records one realized trade. Assigns an ID when empty.
	SaveTrade(ctx context.Context, trade domain.TradeRecord) error

	// GetTrades returns realized trades in the given time range.
	GetTrades(ctx context.Context, from, to time.Time) ([]domain.TradeRecord, error)

	// SaveDailyStats upserts the end-of-day snapshot for its date.
	SaveDailyStats(ctx context.Context, stats domain.DailyStats) error

	// GetDailyStats returns the most recent days of stats, newest last.
	GetDailyStats(ctx context.Context, days int) ([]domain.DailyStats, error)

	// Close releases the underlying database.
	Close() error
}
