package polymarket

// clob.go — market data side of the CLOB adapter.
//
// Listings come from the CLOB /markets endpoint, which lacks traded volume;
// volume is backfilled from the Gamma API in batches. Gamma enrichment is
// best effort: a Gamma outage degrades every market to zero volume, which the
// quality scorer treats as untradeable, instead of failing the scan.

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"strings"

	"github.com/alejandrodnm/polytrader/internal/domain"
)

const (
	marketsPath = "/markets"
	bookPath    = "/book"

	pageSize       = 100
	gammaBatchSize = 20

	// "LTE=" is base64 for "-1", the CLOB's end-of-listing cursor.
	endCursor = "LTE="
)

// ListMarkets returns up to limit markets, paginating the CLOB listing and
// enriching volumes from Gamma.
func (c *Client) ListMarkets(ctx context.Context, limit int) ([]domain.Market, error) {
	if limit <= 0 {
		limit = pageSize
	}

	var all []domain.Market
	cursor := ""

	for len(all) < limit {
		u := fmt.Sprintf("%s%s?limit=%d", c.clobBase, marketsPath, pageSize)
		if cursor != "" {
			u += "&next_cursor=" + url.QueryEscape(cursor)
		}

		var resp clobMarketsResponse
		if err := c.get(ctx, c.clobLimiter, u, &resp); err != nil {
			return nil, fmt.Errorf("polymarket.ListMarkets: %w", err)
		}

		all = append(all, mapMarkets(resp.Data)...)

		slog.Debug("fetched markets page",
			"count", len(resp.Data),
			"total", len(all),
			"has_more", resp.NextCursor != "" && resp.NextCursor != endCursor,
		)

		if resp.NextCursor == "" || resp.NextCursor == endCursor {
			break
		}
		cursor = resp.NextCursor
	}

	if len(all) > limit {
		all = all[:limit]
	}

	if err := c.enrichVolumes(ctx, all); err != nil {
		slog.Warn("gamma enrichment failed, continuing without volumes", "err", err)
	}

	slog.Info("markets fetched", "total", len(all))
	return all, nil
}

// GetMarket returns a single market by condition ID, volume included.
func (c *Client) GetMarket(ctx context.Context, conditionID string) (domain.Market, error) {
	u := fmt.Sprintf("%s%s/%s", c.clobBase, marketsPath, url.PathEscape(conditionID))

	var raw clobMarket
	if err := c.get(ctx, c.clobLimiter, u, &raw); err != nil {
		return domain.Market{}, fmt.Errorf("polymarket.GetMarket %s: %w", conditionID, err)
	}

	m := mapMarket(raw)
	single := []domain.Market{m}
	if err := c.enrichVolumes(ctx, single); err != nil {
		slog.Debug("gamma enrichment failed for market", "condition_id", conditionID, "err", err)
	}
	return single[0], nil
}

// enrichVolumes backfills traded volume from Gamma in place, querying by
// condition IDs in batches.
func (c *Client) enrichVolumes(ctx context.Context, markets []domain.Market) error {
	byID := make(map[string]*domain.Market, len(markets))
	ids := make([]string, 0, len(markets))
	for i := range markets {
		if id := markets[i].ConditionID; id != "" {
			byID[id] = &markets[i]
			ids = append(ids, id)
		}
	}

	for start := 0; start < len(ids); start += gammaBatchSize {
		end := start + gammaBatchSize
		if end > len(ids) {
			end = len(ids)
		}
		batch := ids[start:end]

		q := make([]string, len(batch))
		for i, id := range batch {
			q[i] = "condition_ids=" + url.QueryEscape(id)
		}
		u := fmt.Sprintf("%s/markets?%s&limit=%d", c.gammaBase, strings.Join(q, "&"), len(batch))

		var resp []gammaMarket
		if err := c.get(ctx, c.gammaLimiter, u, &resp); err != nil {
			return fmt.Errorf("gamma batch %d: %w", start/gammaBatchSize, err)
		}

		for _, gm := range resp {
			if m, ok := byID[gm.ConditionID]; ok {
				applyGammaVolume(m, gm)
			}
		}
	}
	return nil
}

// FetchOrderBook returns the order book for one token.
func (c *Client) FetchOrderBook(ctx context.Context, tokenID string) (domain.OrderBook, error) {
	u := fmt.Sprintf("%s%s?token_id=%s", c.clobBase, bookPath, url.QueryEscape(tokenID))

	var resp bookResponse
	if err := c.get(ctx, c.booksLimiter, u, &resp); err != nil {
		return domain.OrderBook{}, fmt.Errorf("polymarket.FetchOrderBook %s: %w", tokenID, err)
	}
	return mapBook(resp, tokenID), nil
}

// MidpointPrice returns (best_bid + best_ask) / 2 for a token.
func (c *Client) MidpointPrice(ctx context.Context, tokenID string) (float64, error) {
	u := fmt.Sprintf("%s/midpoint?token_id=%s", c.clobBase, url.QueryEscape(tokenID))

	var resp midpointResponse
	if err := c.get(ctx, c.booksLimiter, u, &resp); err != nil {
		return 0, fmt.Errorf("polymarket.MidpointPrice %s: %w", tokenID, err)
	}
	return domain.ParsePrice(resp.Mid), nil
}

// BestPrice returns the best ask for BUY or the best bid for SELL.
func (c *Client) BestPrice(ctx context.Context, tokenID string, side domain.Side) (float64, error) {
	u := fmt.Sprintf("%s/price?token_id=%s&side=%s",
		c.clobBase, url.QueryEscape(tokenID), string(side))

	var resp priceResponse
	if err := c.get(ctx, c.booksLimiter, u, &resp); err != nil {
		return 0, fmt.Errorf("polymarket.BestPrice %s %s: %w", tokenID, side, err)
	}
	return domain.ParsePrice(resp.Price), nil
}

// LastTradePrice returns the most recent traded price for a token.
func (c *Client) LastTradePrice(ctx context.Context, tokenID string) (float64, error) {
	u := fmt.Sprintf("%s/last-trade-price?token_id=%s", c.clobBase, url.QueryEscape(tokenID))

	var resp lastTradeResponse
	if err := c.get(ctx, c.booksLimiter, u, &resp); err != nil {
		return 0, fmt.Errorf("polymarket.LastTradePrice %s: %w", tokenID, err)
	}
	return domain.ParsePrice(resp.Price), nil
}
