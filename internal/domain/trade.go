package domain

import (
	"math"
	"time"
)

// Trade is a historical trade from the exchange API.
type Trade struct {
	ID        string
	TokenID   string
	Side      Side
	Price     float64
	Size      float64
	Timestamp time.Time
}

// OrderResult is the exchange's answer to an order submission.
type OrderResult struct {
	OrderID      string
	Status       string
	Success      bool
	TakingAmount float64
	MakingAmount float64
}

// OpenOrder is a resting order reported by the exchange.
type OpenOrder struct {
	ID           string
	TokenID      string
	MarketID     string
	Side         Side
	Price        float64
	OriginalSize float64
	SizeMatched  float64
	CreatedAt    time.Time
}

// TradeRecord is a realized (closed) trade persisted by the performance store.
type TradeRecord struct {
	ID       string
	Strategy PositionType
	MarketID string
	TokenID  string
	Side     Side
	Size     float64
	PnL      float64
	Reason   string // exit reason, empty for entries closed manually
	ClosedAt time.Time
}

// DailyStats is an end-of-day performance snapshot.
type DailyStats struct {
	Date           string // YYYY-MM-DD
	Balance        float64
	DailyPnL       float64
	DailyReturnPct float64
	Trades         int
	OpenPositions  int
	TotalExposure  float64
}

// StrategyStats is the per-strategy slice of a performance summary.
type StrategyStats struct {
	Count int
	PnL   float64
}

// PerformanceSummary aggregates realized trades over a window.
type PerformanceSummary struct {
	PeriodDays    int
	TotalTrades   int
	WinningTrades int
	LosingTrades  int
	WinRate       float64
	TotalPnL      float64
	AvgWin        float64
	AvgLoss       float64
	ProfitFactor  float64 // total wins / total losses; +Inf when lossless
	BestTrade     float64
	WorstTrade    float64
	ByStrategy    map[PositionType]StrategyStats
}

// SummarizeTrades computes the performance summary for the given trades.
// An empty input yields the zero summary with the period set.
func SummarizeTrades(trades []TradeRecord, periodDays int) PerformanceSummary {
	s := PerformanceSummary{
		PeriodDays: periodDays,
		ByStrategy: make(map[PositionType]StrategyStats),
	}
	if len(trades) == 0 {
		return s
	}

	var totalWins, totalLosses float64
	s.BestTrade = math.Inf(-1)
	s.WorstTrade = math.Inf(1)

	for _, t := range trades {
		s.TotalTrades++
		s.TotalPnL += t.PnL
		switch {
		case t.PnL > 0:
			s.WinningTrades++
			totalWins += t.PnL
		case t.PnL < 0:
			s.LosingTrades++
			totalLosses += -t.PnL
		}
		if t.PnL > s.BestTrade {
			s.BestTrade = t.PnL
		}
		if t.PnL < s.WorstTrade {
			s.WorstTrade = t.PnL
		}
		st := s.ByStrategy[t.Strategy]
		st.Count++
		st.PnL += t.PnL
		s.ByStrategy[t.Strategy] = st
	}

	s.WinRate = float64(s.WinningTrades) / float64(s.TotalTrades)
	if s.WinningTrades > 0 {
		s.AvgWin = totalWins / float64(s.WinningTrades)
	}
	if s.LosingTrades > 0 {
		s.AvgLoss = totalLosses / float64(s.LosingTrades)
	}
	if totalLosses > 0 {
		s.ProfitFactor = totalWins / totalLosses
	} else {
		s.ProfitFactor = math.Inf(1)
	}
	return s
}
