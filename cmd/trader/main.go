package main

import (
	"context"
	"errors"
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/alejandrodnm/polytrader/config"
	"github.com/alejandrodnm/polytrader/internal/adapters/notify"
	"github.com/alejandrodnm/polytrader/internal/adapters/polymarket"
	"github.com/alejandrodnm/polytrader/internal/adapters/storage"
	"github.com/alejandrodnm/polytrader/internal/application/engine"
	"github.com/alejandrodnm/polytrader/internal/application/scanner"
	"github.com/alejandrodnm/polytrader/internal/application/trading"
)

func main() {
	configPath := flag.String("config", "config/config.yaml", "path to config file")
	once := flag.Bool("once", false, "run one trading cycle and exit")
	scanOnly := flag.Bool("scan", false, "scan and print opportunities without trading")
	report := flag.Bool("report", false, "print the performance report and exit")
	reportDays := flag.Int("days", 30, "report window in days (with --report)")
	verbose := flag.Bool("verbose", false, "set log level to debug")
	logFormat := flag.String("format", "", "log format: text|json (overrides config)")
	table := flag.Bool("table", false, "print full tables (default: compact 1-line)")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		slog.Error("failed to load config", "err", err, "path", *configPath)
		os.Exit(1)
	}

	if *verbose {
		cfg.Log.Level = "debug"
	}
	if *logFormat != "" {
		cfg.Log.Format = *logFormat
	}
	setupLogger(cfg.Log)

	slog.Info("polytrader starting",
		"config", *configPath,
		"interval", cfg.CycleInterval(),
		"once", *once,
		"scan_only", *scanOnly,
	)

	client := polymarket.NewClient(cfg.API.CLOBBase, cfg.API.GammaBase, polymarket.Credentials{
		APIKey:     cfg.API.APIKey,
		Secret:     cfg.API.Secret,
		Passphrase: cfg.API.Passphrase,
		Address:    cfg.API.Address,
	})

	store, err := storage.NewSQLiteStore(cfg.Storage.DSN)
	if err != nil {
		slog.Error("failed to open storage", "err", err, "dsn", cfg.Storage.DSN)
		os.Exit(1)
	}
	defer store.Close()

	notifier := notify.NewConsoleWriter(os.Stdout, *table || *scanOnly || *report)

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if *report {
		runReport(ctx, store, notifier, *reportDays)
		return
	}

	analyzer := scanner.New(scanner.Config{
		MarketLimit:  cfg.Scanner.MarketLimit,
		MinProfitPct: cfg.Scanner.MinProfitPct,
		MinEdgePct:   cfg.Scanner.MinEdgePct,
		MinVolume:    cfg.Scanner.MinVolume,
		Workers:      cfg.Scanner.Workers,
	}, client, client)

	if *scanOnly {
		runScan(ctx, analyzer, notifier, cfg.Engine.MaxOpportunities)
		return
	}

	trader := trading.NewManager(trading.RiskConfig{
		MaxPositionSize:   cfg.Risk.MaxPositionSize,
		MaxDailyLoss:      cfg.Risk.MaxDailyLoss,
		MaxOpenPositions:  cfg.Risk.MaxOpenPositions,
		MinEdge:           cfg.Risk.MinEdge,
		KellyFraction:     cfg.Risk.KellyFraction,
		TargetDailyReturn: cfg.Risk.TargetDailyReturn,
	}, trading.NewRiskState(), client, client, store)

	eng := engine.New(engine.Config{
		Interval:         cfg.CycleInterval(),
		MaxOpportunities: cfg.Engine.MaxOpportunities,
	}, analyzer, trader, client, notifier, store)

	if *once {
		if _, err := eng.RunOnce(ctx); err != nil {
			slog.Error("cycle failed", "err", err)
			os.Exit(1)
		}
		return
	}

	if err := eng.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		slog.Error("trader exited with error", "err", err)
		os.Exit(1)
	}

	slog.Info("polytrader stopped cleanly")
}

func setupLogger(cfg config.LogConfig) {
	var level slog.Level
	switch cfg.Level {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{Level: level}
	var handler slog.Handler
	if cfg.Format == "json" {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	} else {
		handler = slog.NewTextHandler(os.Stdout, opts)
	}
	slog.SetDefault(slog.New(handler))
}
