package polymarket

// trading.go — order execution side of the CLOB adapter.
//
// Implements ports.OrderExecutor with the L2-authenticated endpoints. Market
// orders go out as FOK for a USDC amount, limit orders as GTC for a share
// size. Requires Credentials; without them every call fails fast with
// ErrNoCredentials.

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"

	"github.com/alejandrodnm/polytrader/internal/domain"
)

// ErrNoCredentials is returned by order endpoints when the client was built
// without API credentials.
var ErrNoCredentials = errors.New("polymarket: no API credentials configured")

const (
	orderTypeFOK = "FOK"
	orderTypeGTC = "GTC"
)

// PlaceMarketOrder submits a fill-or-kill market order for a USDC amount.
func (c *Client) PlaceMarketOrder(ctx context.Context, tokenID string, amountUSDC float64, side domain.Side) (domain.OrderResult, error) {
	body := orderRequest{
		TokenID:   tokenID,
		Side:      string(side),
		OrderType: orderTypeFOK,
		Amount:    amountUSDC,
		Owner:     c.creds.APIKey,
	}
	return c.placeOrder(ctx, body)
}

// PlaceLimitOrder submits a good-till-cancelled limit order for a share size
// at the given price.
func (c *Client) PlaceLimitOrder(ctx context.Context, tokenID string, price, size float64, side domain.Side) (domain.OrderResult, error) {
	body := orderRequest{
		TokenID:   tokenID,
		Side:      string(side),
		OrderType: orderTypeGTC,
		Price:     price,
		Size:      size,
		Owner:     c.creds.APIKey,
	}
	return c.placeOrder(ctx, body)
}

func (c *Client) placeOrder(ctx context.Context, body orderRequest) (domain.OrderResult, error) {
	var resp orderResponse
	if err := c.doAuth(ctx, http.MethodPost, "/order", body, &resp); err != nil {
		return domain.OrderResult{}, fmt.Errorf("polymarket.placeOrder: %w", err)
	}
	if resp.ErrorMsg != "" {
		return domain.OrderResult{}, fmt.Errorf("polymarket.placeOrder: clob error: %s", resp.ErrorMsg)
	}

	return domain.OrderResult{
		OrderID:      resp.OrderID,
		Status:       resp.Status,
		Success:      resp.Success,
		TakingAmount: parseMicroUSDC(resp.TakingAmount),
		MakingAmount: parseMicroUSDC(resp.MakingAmount),
	}, nil
}

// CancelOrder cancels a single order by its CLOB order ID.
func (c *Client) CancelOrder(ctx context.Context, orderID string) error {
	path := "/order/" + url.PathEscape(orderID)
	if err := c.doAuth(ctx, http.MethodDelete, path, nil, nil); err != nil {
		return fmt.Errorf("polymarket.CancelOrder %s: %w", orderID, err)
	}
	return nil
}

// CancelAll cancels every open order for this account.
func (c *Client) CancelAll(ctx context.Context) error {
	if err := c.doAuth(ctx, http.MethodDelete, "/orders", nil, nil); err != nil {
		return fmt.Errorf("polymarket.CancelAll: %w", err)
	}
	return nil
}

// GetOpenOrders returns all currently resting orders.
func (c *Client) GetOpenOrders(ctx context.Context) ([]domain.OpenOrder, error) {
	var resp openOrdersResponse
	if err := c.doAuth(ctx, http.MethodGet, "/orders", nil, &resp); err != nil {
		return nil, fmt.Errorf("polymarket.GetOpenOrders: %w", err)
	}

	orders := make([]domain.OpenOrder, 0, len(resp.Data))
	for _, o := range resp.Data {
		orders = append(orders, mapOpenOrder(o))
	}
	return orders, nil
}

// GetTrades returns the account's historical trades.
func (c *Client) GetTrades(ctx context.Context) ([]domain.Trade, error) {
	var resp tradesResponse
	if err := c.doAuth(ctx, http.MethodGet, "/trades", nil, &resp); err != nil {
		return nil, fmt.Errorf("polymarket.GetTrades: %w", err)
	}

	trades := make([]domain.Trade, 0, len(resp.Data))
	for _, t := range resp.Data {
		trades = append(trades, mapTrade(t))
	}
	return trades, nil
}

// GetBalance returns the available USDC collateral balance.
func (c *Client) GetBalance(ctx context.Context) (float64, error) {
	var resp balanceResponse
	if err := c.doAuth(ctx, http.MethodGet, "/balance-allowance?asset_type=COLLATERAL", nil, &resp); err != nil {
		return 0, fmt.Errorf("polymarket.GetBalance: %w", err)
	}
	return parseMicroUSDC(resp.Balance), nil
}
