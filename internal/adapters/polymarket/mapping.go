package polymarket

import (
	"sort"
	"strconv"
	"time"

	"github.com/alejandrodnm/polytrader/internal/domain"
)

// mapMarkets converts CLOB listings to domain.Market.
func mapMarkets(raw []clobMarket) []domain.Market {
	markets := make([]domain.Market, 0, len(raw))
	for _, r := range raw {
		markets = append(markets, mapMarket(r))
	}
	return markets
}

// mapMarket converts one CLOB market DTO to domain.Market.
func mapMarket(r clobMarket) domain.Market {
	m := domain.Market{
		ConditionID: r.ConditionID,
		Question:    r.Question,
		Active:      r.Active,
		Closed:      r.Closed,
	}

	if r.EndDateISO != "" {
		// Polymarket uses several date formats, try the common ones.
		for _, layout := range []string{
			time.RFC3339,
			"2006-01-02T15:04:05.000Z",
			"2006-01-02T15:04:05Z",
			"2006-01-02",
		} {
			if t, err := time.Parse(layout, r.EndDateISO); err == nil {
				m.EndDate = t.UTC()
				break
			}
		}
	}

	for i, t := range r.Tokens {
		if i >= 2 {
			break
		}
		m.Tokens[i] = domain.Token{
			TokenID: t.TokenID,
			Outcome: t.Outcome,
			Price:   t.Price,
		}
	}

	return m
}

// applyGammaVolume copies Gamma's volume onto an existing market.
func applyGammaVolume(m *domain.Market, gm gammaMarket) {
	if v, err := gm.Volume.Float64(); err == nil {
		m.Volume = v
	}
	if m.Question == "" {
		m.Question = gm.Question
	}
}

// mapBook converts a /book response to domain.OrderBook with both sides
// sorted best price first.
func mapBook(r bookResponse, tokenID string) domain.OrderBook {
	id := r.AssetID
	if id == "" {
		id = tokenID
	}
	return domain.OrderBook{
		TokenID: id,
		Bids:    mapBookEntries(r.Bids, false),
		Asks:    mapBookEntries(r.Asks, true),
	}
}

// mapBookEntries converts raw levels to domain.BookEntry, dropping zero
// entries. ascending=true for asks (lowest first), false for bids.
func mapBookEntries(raw []bookEntryRaw, ascending bool) []domain.BookEntry {
	entries := make([]domain.BookEntry, 0, len(raw))
	for _, r := range raw {
		price, _ := strconv.ParseFloat(r.Price, 64)
		size, _ := strconv.ParseFloat(r.Size, 64)
		if price <= 0 || size <= 0 {
			continue
		}
		entries = append(entries, domain.BookEntry{Price: price, Size: size})
	}

	sort.Slice(entries, func(i, j int) bool {
		if ascending {
			return entries[i].Price < entries[j].Price
		}
		return entries[i].Price > entries[j].Price
	})

	return entries
}

// mapOpenOrder converts a resting order DTO to the domain type.
func mapOpenOrder(o openOrderRaw) domain.OpenOrder {
	return domain.OpenOrder{
		ID:           o.ID,
		TokenID:      o.AssetID,
		MarketID:     o.Market,
		Side:         domain.Side(o.Side),
		Price:        parseFloat(o.Price),
		OriginalSize: parseFloat(o.OriginalSize),
		SizeMatched:  parseFloat(o.SizeMatched),
		CreatedAt:    parseTimestamp(o.CreatedAt),
	}
}

// mapTrade converts a historical trade DTO to the domain type.
func mapTrade(t tradeRaw) domain.Trade {
	return domain.Trade{
		ID:        t.ID,
		TokenID:   t.AssetID,
		Side:      domain.Side(t.Side),
		Price:     parseFloat(t.Price),
		Size:      parseFloat(t.Size),
		Timestamp: parseTimestamp(t.MatchTime),
	}
}

// parseMicroUSDC converts a micro-USDC string (e.g. "1000000") to USDC.
func parseMicroUSDC(s string) float64 {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return v / 1_000_000
}

func parseFloat(s string) float64 {
	v, _ := strconv.ParseFloat(s, 64)
	return v
}

// parseTimestamp accepts both Unix timestamps and ISO 8601 strings.
func parseTimestamp(s string) time.Time {
	if s == "" {
		return time.Time{}
	}
	if ts, err := strconv.ParseInt(s, 10, 64); err == nil && ts > 0 {
		if ts > 1e12 {
			return time.UnixMilli(ts).UTC()
		}
		return time.Unix(ts, 0).UTC()
	}
	for _, layout := range []string{time.RFC3339, "2006-01-02T15:04:05", "2006-01-02 15:04:05"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC()
		}
	}
	return time.Time{}
}
