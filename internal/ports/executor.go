package ports

import (
	"context"

	"github.com/alejandrodnm/polytrader/internal/domain"
)

// OrderExecutor places and manages real orders on the exchange.
type OrderExecutor interface {
	// PlaceMarketOrder submits a fill-or-kill market order for a dollar amount.
	PlaceMarketOrder(ctx context.Context, tokenID string, amountUSDC float64, side domain.Side) (domain.OrderResult, error)

	// PlaceLimitOrder submits a good-till-cancelled limit order for a number
	// of shares at the given price.
	PlaceLimitOrder(ctx context.Context, tokenID string, price, size float64, side domain.Side) (domain.OrderResult, error)

	// CancelOrder cancels one order by its exchange order ID.
	CancelOrder(ctx context.Context, orderID string) error

	// CancelAll cancels every open order for this account.
	CancelAll(ctx context.Context) error

	// GetOpenOrders returns all currently resting orders.
	GetOpenOrders(ctx context.Context) ([]domain.OpenOrder, error)

	// GetTrades returns the account's historical trades.
	GetTrades(ctx context.Context) ([]domain.Trade, error)

	// GetBalance returns the available USDC balance.
	GetBalance(ctx context.Context) (float64, error)
}
