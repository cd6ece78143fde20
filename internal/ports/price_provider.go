package ports

import (
	"context"

	"github.com/alejandrodnm/polytrader/internal/domain"
)

// PriceProvider fetches order books and prices for individual tokens.
// Every operation is fallible: callers treat an error as "skip this token
// this cycle", never as a fatal condition.
type PriceProvider interface {
	// FetchOrderBook returns the current order book for a token.
	FetchOrderBook(ctx context.Context, tokenID string) (domain.OrderBook, error)

	// MidpointPrice returns (best_bid + best_ask) / 2 for a token.
	MidpointPrice(ctx context.Context, tokenID string) (float64, error)

	// BestPrice returns the best ask for BUY or the best bid for SELL.
	BestPrice(ctx context.Context, tokenID string, side domain.Side) (float64, error)

	// LastTradePrice returns the most recent traded price for a token.
	LastTradePrice(ctx context.Context, tokenID string) (float64, error)
}
