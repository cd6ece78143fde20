package config

import (
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config is the full trader configuration.
type Config struct {
	API     APIConfig     `yaml:"api"`
	Scanner ScannerConfig `yaml:"scanner"`
	Risk    RiskConfig    `yaml:"risk_management"`
	Engine  EngineConfig  `yaml:"engine"`
	Storage StorageConfig `yaml:"storage"`
	Log     LogConfig     `yaml:"log"`
}

// APIConfig holds the API base URLs and credentials. Credentials come from
// the environment, never from the YAML file.
type APIConfig struct {
	CLOBBase   string `yaml:"clob_base"`
	GammaBase  string `yaml:"gamma_base"`
	APIKey     string `yaml:"-"`
	Secret     string `yaml:"-"`
	Passphrase string `yaml:"-"`
	Address    string `yaml:"-"`
}

// ScannerConfig controls the market analyzer.
type ScannerConfig struct {
	MarketLimit  int     `yaml:"market_limit"`
	MinProfitPct float64 `yaml:"min_profit_pct"`
	MinEdgePct   float64 `yaml:"min_edge_pct"`
	MinVolume    float64 `yaml:"min_volume"`
	Workers      int     `yaml:"workers"`
}

// RiskConfig holds the portfolio risk limits.
type RiskConfig struct {
	MaxPositionSize   float64 `yaml:"max_position_size"`
	MaxDailyLoss      float64 `yaml:"max_daily_loss"`
	MaxOpenPositions  int     `yaml:"max_open_positions"`
	MinEdge           float64 `yaml:"min_edge"`
	KellyFraction     float64 `yaml:"kelly_fraction"`
	TargetDailyReturn float64 `yaml:"target_daily_return"`
}

// EngineConfig controls the trading loop.
type EngineConfig struct {
	IntervalSeconds  int `yaml:"interval_seconds"`
	MaxOpportunities int `yaml:"max_opportunities"`
}

// StorageConfig controls where performance data is persisted.
type StorageConfig struct {
	DSN string `yaml:"dsn"` // SQLite file path, or ":memory:"
}

// LogConfig controls logging format and level.
type LogConfig struct {
	Level  string `yaml:"level"`  // debug | info | warn | error
	Format string `yaml:"format"` // text | json
}

// Load reads the YAML file and the .env file if present. Environment values
// override YAML for the keys they cover.
func Load(path string) (*Config, error) {
	// Load .env if present (missing file is fine).
	_ = godotenv.Load()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config.Load: read %q: %w", path, err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("config.Load: parse YAML: %w", err)
	}

	applyEnvOverrides(&cfg)
	setDefaults(&cfg)

	return &cfg, nil
}

// CycleInterval returns the polling interval as a time.Duration.
func (c *Config) CycleInterval() time.Duration {
	return time.Duration(c.Engine.IntervalSeconds) * time.Second
}

// applyEnvOverrides overrides values from environment variables when present.
func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		cfg.Log.Level = v
	}
	if v := os.Getenv("LOG_FORMAT"); v != "" {
		cfg.Log.Format = v
	}
	if v := os.Getenv("POLYMARKET_API_KEY"); v != "" {
		cfg.API.APIKey = v
	}
	if v := os.Getenv("POLYMARKET_SECRET"); v != "" {
		cfg.API.Secret = v
	}
	if v := os.Getenv("POLYMARKET_PASSPHRASE"); v != "" {
		cfg.API.Passphrase = v
	}
	if v := os.Getenv("POLYMARKET_FUNDER_ADDRESS"); v != "" {
		cfg.API.Address = v
	}
}

// setDefaults fills required values with sensible defaults.
func setDefaults(cfg *Config) {
	if cfg.API.CLOBBase == "" {
		cfg.API.CLOBBase = "https://clob.polymarket.com"
	}
	if cfg.API.GammaBase == "" {
		cfg.API.GammaBase = "https://gamma-api.polymarket.com"
	}
	if cfg.Scanner.MarketLimit <= 0 {
		cfg.Scanner.MarketLimit = 500
	}
	if cfg.Scanner.MinProfitPct <= 0 {
		cfg.Scanner.MinProfitPct = 1.0
	}
	if cfg.Scanner.MinEdgePct <= 0 {
		cfg.Scanner.MinEdgePct = 5.0
	}
	if cfg.Scanner.MinVolume <= 0 {
		cfg.Scanner.MinVolume = 10_000
	}
	if cfg.Risk.MaxPositionSize <= 0 {
		cfg.Risk.MaxPositionSize = 100
	}
	if cfg.Risk.MaxDailyLoss <= 0 {
		cfg.Risk.MaxDailyLoss = 50
	}
	if cfg.Risk.MaxOpenPositions <= 0 {
		cfg.Risk.MaxOpenPositions = 5
	}
	if cfg.Risk.MinEdge <= 0 {
		cfg.Risk.MinEdge = 0.05
	}
	if cfg.Risk.KellyFraction <= 0 {
		cfg.Risk.KellyFraction = 0.25
	}
	if cfg.Risk.TargetDailyReturn <= 0 {
		cfg.Risk.TargetDailyReturn = 0.02
	}
	if cfg.Engine.IntervalSeconds <= 0 {
		cfg.Engine.IntervalSeconds = 300
	}
	if cfg.Engine.MaxOpportunities <= 0 {
		cfg.Engine.MaxOpportunities = 10
	}
	if cfg.Storage.DSN == "" {
		cfg.Storage.DSN = "polytrader.db"
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = "info"
	}
	if cfg.Log.Format == "" {
		cfg.Log.Format = "text"
	}
}
