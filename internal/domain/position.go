package domain

import (
	"fmt"
	"time"
)

// PositionType tags how a position was entered and therefore how it is
// monitored and closed.
type PositionType string

const (
	PositionArbitrage  PositionType = "arbitrage"
	PositionValueBet   PositionType = "value_bet"
	PositionLimitOrder PositionType = "limit_order"
)

// Position is an open holding owned exclusively by the lifecycle manager.
// Fields vary by type: an arbitrage position spans both outcome tokens, a
// value bet or limit order holds one.
type Position struct {
	ID       string
	Type     PositionType
	MarketID string

	// arbitrage legs
	YesTokenID     string
	NoTokenID      string
	Shares         float64
	Cost           float64
	ExpectedProfit float64

	// value_bet / limit_order
	TokenID       string
	Side          Side
	Size          float64 // USDC
	EntryPrice    float64
	EstimatedProb float64
	Edge          float64

	// limit_order only
	LimitPrice float64
	OrderID    string

	EntryTime time.Time
}

// NewPositionID synthesizes a position identifier from the type, the involved
// token(s), and a nanosecond timestamp. Nanosecond resolution keeps IDs unique
// across rapid entries on the same token within one cycle.
func NewPositionID(t PositionType, tokenIDs ...string) string {
	id := string(t)
	for _, tok := range tokenIDs {
		id += "_" + tok
	}
	return fmt.Sprintf("%s_%d", id, time.Now().UnixNano())
}

// Exposure returns the capital tied up in the position.
func (p Position) Exposure() float64 {
	if p.Type == PositionArbitrage {
		return p.Cost
	}
	return p.Size
}

// Exit reasons reported by position monitoring.
const (
	ExitProfitTarget = "profit_target"
	ExitStopLoss     = "stop_loss"
)

// PositionAction is an exit flag produced by a monitoring pass. The engine
// turns "close" actions into actual close orders.
type PositionAction struct {
	PositionID string
	Action     string // "close"
	Reason     string // ExitProfitTarget | ExitStopLoss
	PnLPct     float64
}

// ExecutionResult reports a successful strategy entry.
type ExecutionResult struct {
	PositionID     string
	Size           float64
	ExpectedProfit float64
	Edge           float64
	OrderID        string
}

// PortfolioSummary is the point-in-time portfolio view exposed to the caller.
type PortfolioSummary struct {
	CurrentBalance      float64
	OpenPositions       int
	TotalExposure       float64
	DailyPnL            float64
	DailyReturnPct      float64
	DailyTrades         int
	MaxDailyLoss        float64
	RemainingLossBuffer float64 // MaxDailyLoss + DailyPnL
	TargetReached       bool
}
