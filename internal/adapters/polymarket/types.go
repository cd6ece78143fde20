package polymarket

import "encoding/json"

// Raw Polymarket API DTOs. Only used inside this package; conversion to
// domain entities happens in mapping.go.

// --- CLOB API ---

// clobMarketsResponse is the paginated response of GET /markets.
type clobMarketsResponse struct {
	Limit      int          `json:"limit"`
	Count      int          `json:"count"`
	NextCursor string       `json:"next_cursor"`
	Data       []clobMarket `json:"data"`
}

// clobMarket is one market listing from the CLOB.
type clobMarket struct {
	ConditionID string      `json:"condition_id"`
	Question    string      `json:"question"`
	EndDateISO  string      `json:"end_date_iso"`
	Tokens      []clobToken `json:"tokens"`
	Active      bool        `json:"active"`
	Closed      bool        `json:"closed"`
}

// clobToken is one side (YES/NO) of a market.
type clobToken struct {
	TokenID string  `json:"token_id"`
	Outcome string  `json:"outcome"`
	Price   float64 `json:"price"`
}

// bookResponse is GET /book for a single token.
type bookResponse struct {
	AssetID string         `json:"asset_id"`
	Bids    []bookEntryRaw `json:"bids"`
	Asks    []bookEntryRaw `json:"asks"`
}

// bookEntryRaw is a raw price level (strings for precision).
type bookEntryRaw struct {
	Price string `json:"price"`
	Size  string `json:"size"`
}

// midpointResponse is GET /midpoint.
type midpointResponse struct {
	Mid string `json:"mid"`
}

// priceResponse is GET /price.
type priceResponse struct {
	Price string `json:"price"`
}

// lastTradeResponse is GET /last-trade-price.
type lastTradeResponse struct {
	Price string `json:"price"`
}

// --- Gamma API ---

// gammaMarket carries the volume metadata the CLOB listing lacks. Gamma
// returns numeric fields as JSON strings, hence json.Number.
type gammaMarket struct {
	ConditionID string      `json:"conditionId"`
	Question    string      `json:"question"`
	Volume      json.Number `json:"volume"`
	Active      bool        `json:"active"`
	Closed      bool        `json:"closed"`
}

// --- Order endpoints ---

// orderRequest is the body of POST /order. Market orders carry Amount in
// USDC, limit orders carry Price and Size in shares.
type orderRequest struct {
	TokenID   string  `json:"token_id"`
	Side      string  `json:"side"`
	OrderType string  `json:"order_type"` // FOK | GTC
	Amount    float64 `json:"amount,omitempty"`
	Price     float64 `json:"price,omitempty"`
	Size      float64 `json:"size,omitempty"`
	Owner     string  `json:"owner"`
}

// orderResponse is the CLOB's answer to POST /order.
type orderResponse struct {
	ErrorMsg     string `json:"errorMsg"`
	OrderID      string `json:"orderID"`
	TakingAmount string `json:"takingAmount"`
	MakingAmount string `json:"makingAmount"`
	Status       string `json:"status"`
	Success      bool   `json:"success"`
}

// openOrdersResponse is GET /orders.
type openOrdersResponse struct {
	Data       []openOrderRaw `json:"data"`
	NextCursor string         `json:"next_cursor"`
}

type openOrderRaw struct {
	ID           string `json:"id"`
	AssetID      string `json:"asset_id"`
	Market       string `json:"market"`
	Side         string `json:"side"`
	Price        string `json:"price"`
	OriginalSize string `json:"original_size"`
	SizeMatched  string `json:"size_matched"`
	CreatedAt    string `json:"created_at"`
}

// tradesResponse is GET /trades.
type tradesResponse struct {
	Data       []tradeRaw `json:"data"`
	NextCursor string     `json:"next_cursor"`
}

type tradeRaw struct {
	ID        string `json:"id"`
	AssetID   string `json:"asset_id"`
	Side      string `json:"side"`
	Price     string `json:"price"`
	Size      string `json:"size"`
	MatchTime string `json:"match_time"`
}

// balanceResponse is GET /balance-allowance for the collateral asset.
// Balance is in micro-USDC.
type balanceResponse struct {
	Balance string `json:"balance"`
}
