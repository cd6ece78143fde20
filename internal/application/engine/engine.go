package engine

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/alejandrodnm/polytrader/internal/application/scanner"
	"github.com/alejandrodnm/polytrader/internal/application/trading"
	"github.com/alejandrodnm/polytrader/internal/domain"
	"github.com/alejandrodnm/polytrader/internal/ports"
)

// Config controls the trading loop.
type Config struct {
	Interval         time.Duration // polling interval between cycles
	MaxOpportunities int           // ranked list size per cycle
}

// DefaultConfig returns the loop defaults.
func DefaultConfig() Config {
	return Config{
		Interval:         5 * time.Minute,
		MaxOpportunities: 10,
	}
}

// Engine runs the evaluate-gate-execute-monitor cycle. One cycle at a time:
// Run never overlaps cycles, and cancellation is honored at cycle boundaries.
type Engine struct {
	cfg      Config
	analyzer *scanner.Analyzer
	trader   *trading.Manager
	executor ports.OrderExecutor
	notifier ports.Notifier
	store    ports.TradeStore // optional

	mu        sync.Mutex
	estimates map[string]float64
}

// New wires the engine. notifier and store may be nil.
func New(cfg Config, analyzer *scanner.Analyzer, trader *trading.Manager, executor ports.OrderExecutor, notifier ports.Notifier, store ports.TradeStore) *Engine {
	if cfg.Interval <= 0 {
		cfg.Interval = 5 * time.Minute
	}
	if cfg.MaxOpportunities <= 0 {
		cfg.MaxOpportunities = 10
	}
	return &Engine{
		cfg:      cfg,
		analyzer: analyzer,
		trader:   trader,
		executor: executor,
		notifier: notifier,
		store:    store,
	}
}

// SetEstimates installs external probability estimates (market id → estimate)
// for the value-bet strategy. Without estimates, value bets never trigger.
func (e *Engine) SetEstimates(estimates map[string]float64) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.estimates = estimates
}

func (e *Engine) currentEstimates() map[string]float64 {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.estimates
}

// CycleResult reports what one cycle did.
type CycleResult struct {
	Opportunities int
	Executed      int
	Closed        int
	GateReason    string // "OK" or the reason new entries were blocked
	Summary       domain.PortfolioSummary
}

// RunOnce executes a single trading cycle: daily reset, risk gate, scan and
// rank, size and execute, monitor and close, report. Position monitoring runs
// even when the gate blocks new entries, so stops still fire after the daily
// loss limit is hit.
func (e *Engine) RunOnce(ctx context.Context) (*CycleResult, error) {
	balance, err := e.executor.GetBalance(ctx)
	if err != nil {
		return nil, fmt.Errorf("engine.RunOnce: get balance: %w", err)
	}
	e.trader.ResetDailyStats(balance)

	result := &CycleResult{}

	ok, reason := e.trader.CanTrade()
	result.GateReason = reason
	if !ok {
		slog.Info("trading gated, no new entries", "reason", reason)
	}

	var opps []domain.Opportunity
	if ok {
		opps = e.analyzer.BestOpportunities(ctx, balance, e.cfg.MaxOpportunities)
		if est := e.currentEstimates(); len(est) > 0 {
			opps = append(opps, e.analyzer.FindMispriced(ctx, est)...)
		}
		result.Opportunities = len(opps)

		for _, opp := range opps {
			// Re-check between entries: an earlier fill in this cycle can
			// exhaust the position slots.
			if ok, reason := e.trader.CanTrade(); !ok {
				slog.Info("gate closed mid-cycle", "reason", reason)
				result.GateReason = reason
				break
			}
			res, err := e.trader.Execute(ctx, opp, balance)
			if err != nil {
				slog.Error("entry failed",
					"type", opp.Type, "condition_id", opp.MarketID, "err", err)
				continue
			}
			if res != nil {
				result.Executed++
			}
		}
	}

	for _, action := range e.trader.ManagePositions(ctx) {
		if action.Action != "close" {
			continue
		}
		pnl, err := e.trader.ClosePosition(ctx, action.PositionID, action.Reason)
		if err != nil {
			slog.Error("close failed", "position_id", action.PositionID, "err", err)
			continue
		}
		result.Closed++
		slog.Info("exit executed",
			"position_id", action.PositionID,
			"reason", action.Reason,
			"pnl", pnl,
		)
	}

	summary := e.trader.PortfolioSummary(balance)
	result.Summary = summary

	if e.store != nil {
		stats := domain.DailyStats{
			Date:           time.Now().Format("2006-01-02"),
			Balance:        summary.CurrentBalance,
			DailyPnL:       summary.DailyPnL,
			DailyReturnPct: summary.DailyReturnPct,
			Trades:         summary.DailyTrades,
			OpenPositions:  summary.OpenPositions,
			TotalExposure:  summary.TotalExposure,
		}
		if err := e.store.SaveDailyStats(ctx, stats); err != nil {
			slog.Warn("daily stats not saved", "err", err)
		}
	}

	if e.notifier != nil {
		if len(opps) > 0 {
			if err := e.notifier.NotifyOpportunities(ctx, opps); err != nil {
				slog.Warn("opportunity notification failed", "err", err)
			}
		}
		if err := e.notifier.NotifySummary(ctx, summary); err != nil {
			slog.Warn("summary notification failed", "err", err)
		}
	}

	return result, nil
}

// Run loops RunOnce at the configured interval until the context is canceled.
// A failed cycle is logged and the loop continues; cancellation waits for the
// in-flight cycle to finish.
func (e *Engine) Run(ctx context.Context) error {
	slog.Info("trading loop started", "interval", e.cfg.Interval)

	ticker := time.NewTicker(e.cfg.Interval)
	defer ticker.Stop()

	for {
		if _, err := e.RunOnce(ctx); err != nil {
			slog.Error("cycle failed", "err", err)
		}

		select {
		case <-ctx.Done():
			slog.Info("trading loop stopped")
			return ctx.Err()
		case <-ticker.C:
		}
	}
}
