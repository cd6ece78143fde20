package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/alejandrodnm/polytrader/internal/adapters/notify"
	"github.com/alejandrodnm/polytrader/internal/application/scanner"
)

// runScan runs one opportunity scan and prints the ranked list without
// placing any orders. Useful for checking the market before going live.
func runScan(ctx context.Context, analyzer *scanner.Analyzer, notifier *notify.Console, maxOpportunities int) {
	opps := analyzer.BestOpportunities(ctx, 0, maxOpportunities)

	if err := notifier.NotifyOpportunities(ctx, opps); err != nil {
		slog.Error("notifier error", "err", err)
		os.Exit(1)
	}

	if len(opps) == 0 {
		slog.Info("scan complete, nothing actionable")
		return
	}
	slog.Info("scan complete", "opportunities", len(opps))
}
