package trading

import (
	"log/slog"
	"time"

	"github.com/alejandrodnm/polytrader/internal/domain"
	"github.com/alejandrodnm/polytrader/internal/ports"
)

// RiskConfig holds the portfolio-level risk limits.
type RiskConfig struct {
	MaxPositionSize   float64 // dollar cap per position
	MaxDailyLoss      float64 // stop trading once daily P&L reaches -this
	MaxOpenPositions  int
	MinEdge           float64 // minimum |edge| fraction for value bets
	KellyFraction     float64 // scaling of the full Kelly bet
	TargetDailyReturn float64 // voluntary stop once reached, not a loss control
}

// DefaultRiskConfig returns conservative defaults.
func DefaultRiskConfig() RiskConfig {
	return RiskConfig{
		MaxPositionSize:   100,
		MaxDailyLoss:      50,
		MaxOpenPositions:  5,
		MinEdge:           0.05,
		KellyFraction:     0.25,
		TargetDailyReturn: 0.02,
	}
}

// RiskState is the shared mutable trading state. It has exactly two writers:
// the daily reset and the position lifecycle methods on Manager. Passed in
// explicitly, never a process-wide singleton.
type RiskState struct {
	OpenPositions     map[string]domain.Position
	DailyPnL          float64
	DailyTrades       int
	StartOfDayBalance float64
	LastResetDate     time.Time
}

// NewRiskState returns an empty state.
func NewRiskState() *RiskState {
	return &RiskState{OpenPositions: make(map[string]domain.Position)}
}

// Trade refusal reasons returned by CanTrade.
const (
	ReasonOK             = "OK"
	ReasonDailyLossLimit = "daily loss limit reached"
	ReasonMaxPositions   = "max open positions reached"
	ReasonDailyTarget    = "daily target reached"
)

// Manager owns the risk gate and the position lifecycle. All mutation of the
// shared RiskState happens through its methods, from the single cycle thread.
type Manager struct {
	cfg      RiskConfig
	state    *RiskState
	prices   ports.PriceProvider
	executor ports.OrderExecutor
	store    ports.TradeStore // optional, nil disables trade recording
}

// NewManager wires the trading manager. store may be nil.
func NewManager(cfg RiskConfig, state *RiskState, prices ports.PriceProvider, executor ports.OrderExecutor, store ports.TradeStore) *Manager {
	if state == nil {
		state = NewRiskState()
	}
	return &Manager{cfg: cfg, state: state, prices: prices, executor: executor, store: store}
}

// State exposes the shared risk state. Callers must not mutate it; it exists
// for reporting and tests.
func (m *Manager) State() *RiskState {
	return m.state
}

// ResetDailyStats zeroes the daily counters on the first call of a new
// calendar day. Invoked lazily at cycle start, not by a timer.
func (m *Manager) ResetDailyStats(currentBalance float64) {
	today := time.Now()
	if sameDay(today, m.state.LastResetDate) {
		return
	}
	m.state.DailyPnL = 0
	m.state.DailyTrades = 0
	m.state.StartOfDayBalance = currentBalance
	m.state.LastResetDate = today
	slog.Info("daily stats reset", "balance", currentBalance)
}

func sameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

// CanTrade checks the risk gate. Checks short-circuit in order: daily loss
// limit, open position count, daily target. The first failing check's reason
// is returned; otherwise (true, "OK").
func (m *Manager) CanTrade() (bool, string) {
	if m.state.DailyPnL <= -m.cfg.MaxDailyLoss {
		return false, ReasonDailyLossLimit
	}
	if len(m.state.OpenPositions) >= m.cfg.MaxOpenPositions {
		return false, ReasonMaxPositions
	}
	if m.state.StartOfDayBalance > 0 {
		if m.state.DailyPnL/m.state.StartOfDayBalance >= m.cfg.TargetDailyReturn {
			return false, ReasonDailyTarget
		}
	}
	return true, ReasonOK
}

// PortfolioSummary builds the point-in-time portfolio view.
func (m *Manager) PortfolioSummary(currentBalance float64) domain.PortfolioSummary {
	var exposure float64
	for _, p := range m.state.OpenPositions {
		exposure += p.Exposure()
	}

	returnPct := 0.0
	if m.state.StartOfDayBalance > 0 {
		returnPct = m.state.DailyPnL / m.state.StartOfDayBalance * 100
	}

	return domain.PortfolioSummary{
		CurrentBalance:      currentBalance,
		OpenPositions:       len(m.state.OpenPositions),
		TotalExposure:       exposure,
		DailyPnL:            m.state.DailyPnL,
		DailyReturnPct:      returnPct,
		DailyTrades:         m.state.DailyTrades,
		MaxDailyLoss:        m.cfg.MaxDailyLoss,
		RemainingLossBuffer: m.cfg.MaxDailyLoss + m.state.DailyPnL,
		TargetReached:       returnPct >= m.cfg.TargetDailyReturn*100,
	}
}
