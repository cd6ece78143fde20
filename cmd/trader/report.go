package main

import (
	"context"
	"log/slog"
	"os"
	"time"

	"github.com/alejandrodnm/polytrader/internal/adapters/notify"
	"github.com/alejandrodnm/polytrader/internal/adapters/storage"
	"github.com/alejandrodnm/polytrader/internal/domain"
)

// runReport prints the realized-trade performance report from storage.
func runReport(ctx context.Context, store *storage.SQLiteStore, notifier *notify.Console, days int) {
	if days <= 0 {
		days = 30
	}

	to := time.Now()
	from := to.AddDate(0, 0, -days)

	trades, err := store.GetTrades(ctx, from, to)
	if err != nil {
		slog.Error("failed to load trades", "err", err)
		os.Exit(1)
	}

	dailies, err := store.GetDailyStats(ctx, days)
	if err != nil {
		slog.Error("failed to load daily stats", "err", err)
		os.Exit(1)
	}

	summary := domain.SummarizeTrades(trades, days)
	notifier.PrintPerformance(summary, dailies)
}
