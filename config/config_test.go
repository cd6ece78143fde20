package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad_FullFile(t *testing.T) {
	path := writeConfig(t, `
api:
  clob_base: "http://localhost:8080"
scanner:
  market_limit: 200
  min_profit_pct: 2.5
  workers: 4
risk_management:
  max_position_size: 250
  max_daily_loss: 75
engine:
  interval_seconds: 60
storage:
  dsn: "/tmp/test.db"
log:
  level: debug
  format: json
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "http://localhost:8080", cfg.API.CLOBBase)
	assert.Equal(t, 200, cfg.Scanner.MarketLimit)
	assert.Equal(t, 2.5, cfg.Scanner.MinProfitPct)
	assert.Equal(t, 4, cfg.Scanner.Workers)
	assert.Equal(t, 250.0, cfg.Risk.MaxPositionSize)
	assert.Equal(t, 75.0, cfg.Risk.MaxDailyLoss)
	assert.Equal(t, time.Minute, cfg.CycleInterval())
	assert.Equal(t, "/tmp/test.db", cfg.Storage.DSN)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "json", cfg.Log.Format)
}

func TestLoad_DefaultsFillGaps(t *testing.T) {
	cfg, err := Load(writeConfig(t, "scanner:\n  market_limit: 50\n"))
	require.NoError(t, err)

	assert.Equal(t, "https://clob.polymarket.com", cfg.API.CLOBBase)
	assert.Equal(t, "https://gamma-api.polymarket.com", cfg.API.GammaBase)
	assert.Equal(t, 50, cfg.Scanner.MarketLimit, "explicit value kept")
	assert.Equal(t, 1.0, cfg.Scanner.MinProfitPct)
	assert.Equal(t, 5.0, cfg.Scanner.MinEdgePct)
	assert.Equal(t, 100.0, cfg.Risk.MaxPositionSize)
	assert.Equal(t, 5, cfg.Risk.MaxOpenPositions)
	assert.Equal(t, 0.25, cfg.Risk.KellyFraction)
	assert.Equal(t, 5*time.Minute, cfg.CycleInterval())
	assert.Equal(t, "polytrader.db", cfg.Storage.DSN)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "text", cfg.Log.Format)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("LOG_LEVEL", "warn")
	t.Setenv("POLYMARKET_API_KEY", "env-key")
	t.Setenv("POLYMARKET_SECRET", "env-secret")
	t.Setenv("POLYMARKET_PASSPHRASE", "env-pass")
	t.Setenv("POLYMARKET_FUNDER_ADDRESS", "0xenv")

	cfg, err := Load(writeConfig(t, "log:\n  level: debug\n"))
	require.NoError(t, err)

	assert.Equal(t, "warn", cfg.Log.Level, "environment beats YAML")
	assert.Equal(t, "env-key", cfg.API.APIKey)
	assert.Equal(t, "env-secret", cfg.API.Secret)
	assert.Equal(t, "env-pass", cfg.API.Passphrase)
	assert.Equal(t, "0xenv", cfg.API.Address)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestLoad_InvalidYAML(t *testing.T) {
	_, err := Load(writeConfig(t, "scanner: [not a map"))
	assert.Error(t, err)
}
