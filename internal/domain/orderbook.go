package domain

import "strconv"

// OrderBook is a raw order book snapshot for a single token.
type OrderBook struct {
	TokenID string
	Bids    []BookEntry // sorted best (highest) price first
	Asks    []BookEntry // sorted best (lowest) price first
}

// BookEntry is a single price level in the order book.
type BookEntry struct {
	Price float64
	Size  float64
}

// PriceSummary is the per-token depth summary derived from an order book.
// Recomputed on every scan, never persisted.
type PriceSummary struct {
	TokenID   string
	BestBid   float64
	BestAsk   float64
	Midpoint  float64
	Spread    float64 // BestAsk - BestBid
	BidVolume float64 // sum of all bid sizes
	AskVolume float64 // sum of all ask sizes
}

// Summarize reduces the book to its PriceSummary. An empty bid side defaults
// best bid to 0 and an empty ask side defaults best ask to 1: the widest
// possible spread, signaling illiquidity instead of failing. Volumes are plain
// sums of listed sizes, not a consumable depth curve.
func (ob OrderBook) Summarize() PriceSummary {
	s := PriceSummary{TokenID: ob.TokenID, BestBid: 0, BestAsk: 1}

	if len(ob.Bids) > 0 {
		s.BestBid = ob.Bids[0].Price
	}
	if len(ob.Asks) > 0 {
		s.BestAsk = ob.Asks[0].Price
	}
	for _, b := range ob.Bids {
		s.BidVolume += b.Size
	}
	for _, a := range ob.Asks {
		s.AskVolume += a.Size
	}

	s.Midpoint = (s.BestBid + s.BestAsk) / 2
	s.Spread = s.BestAsk - s.BestBid
	return s
}

// Liquidity returns the conservative liquidity metric used by the quality
// scorer: the smaller of the two volume sides.
func (s PriceSummary) Liquidity() float64 {
	if s.BidVolume < s.AskVolume {
		return s.BidVolume
	}
	return s.AskVolume
}

// ParsePrice converts an API price string to float64.
// Used by the adapter mapping layer.
func ParsePrice(s string) float64 {
	v, _ := strconv.ParseFloat(s, 64)
	return v
}
