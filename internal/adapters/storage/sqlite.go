package storage

// sqlite.go — performance tracking storage.
//
// Two tables:
//   - `trades`: one row per realized trade, append-only.
//   - `daily_stats`: one row per calendar day (UPSERT by date), written at the
//     end of every cycle so the latest snapshot always wins.
//
// Pure Go driver, no CGo.

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/alejandrodnm/polytrader/internal/domain"
)

const schema = `
CREATE TABLE IF NOT EXISTS trades (
    id        TEXT PRIMARY KEY,
    strategy  TEXT NOT NULL,
    market_id TEXT NOT NULL,
    token_id  TEXT NOT NULL,
    side      TEXT NOT NULL,
    size      REAL NOT NULL DEFAULT 0,
    pnl       REAL NOT NULL DEFAULT 0,
    reason    TEXT NOT NULL DEFAULT '',
    closed_at DATETIME NOT NULL
);

CREATE TABLE IF NOT EXISTS daily_stats (
    date             TEXT PRIMARY KEY,
    balance          REAL NOT NULL DEFAULT 0,
    daily_pnl        REAL NOT NULL DEFAULT 0,
    daily_return_pct REAL NOT NULL DEFAULT 0,
    trades           INTEGER NOT NULL DEFAULT 0,
    open_positions   INTEGER NOT NULL DEFAULT 0,
    total_exposure   REAL NOT NULL DEFAULT 0
);

CREATE INDEX IF NOT EXISTS idx_trades_closed   ON trades(closed_at DESC);
CREATE INDEX IF NOT EXISTS idx_trades_strategy ON trades(strategy);
`

// SQLiteStore implements ports.TradeStore on SQLite.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore opens (or creates) the database at path and applies the schema.
func NewSQLiteStore(path string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("storage.NewSQLiteStore: open %q: %w", path, err)
	}
	// SQLite is single-writer.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage.NewSQLiteStore: apply schema: %w", err)
	}
	return &SQLiteStore{db: db}, nil
}

// SaveTrade appends one realized trade, assigning a UUID when the record has
// no ID.
func (s *SQLiteStore) SaveTrade(ctx context.Context, trade domain.TradeRecord) error {
	if trade.ID == "" {
		trade.ID = uuid.NewString()
	}
	if trade.ClosedAt.IsZero() {
		trade.ClosedAt = time.Now()
	}

	if _, err := s.db.ExecContext(ctx, `
		INSERT INTO trades (id, strategy, market_id, token_id, side, size, pnl, reason, closed_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`,
		trade.ID,
		string(trade.Strategy),
		trade.MarketID,
		trade.TokenID,
		string(trade.Side),
		trade.Size,
		trade.PnL,
		trade.Reason,
		trade.ClosedAt.UTC(),
	); err != nil {
		return fmt.Errorf("storage.SaveTrade %s: %w", trade.ID, err)
	}
	return nil
}

// GetTrades returns realized trades whose closed_at falls in [from, to],
// oldest first.
func (s *SQLiteStore) GetTrades(ctx context.Context, from, to time.Time) ([]domain.TradeRecord, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, strategy, market_id, token_id, side, size, pnl, reason, closed_at
		FROM trades
		WHERE closed_at BETWEEN ? AND ?
		ORDER BY closed_at ASC
	`, from.UTC(), to.UTC())
	if err != nil {
		return nil, fmt.Errorf("storage.GetTrades: query: %w", err)
	}
	defer rows.Close()

	var trades []domain.TradeRecord
	for rows.Next() {
		var t domain.TradeRecord
		var strategy, side, closedAt string

		if err := rows.Scan(
			&t.ID, &strategy, &t.MarketID, &t.TokenID,
			&side, &t.Size, &t.PnL, &t.Reason, &closedAt,
		); err != nil {
			return nil, fmt.Errorf("storage.GetTrades: scan row: %w", err)
		}

		t.Strategy = domain.PositionType(strategy)
		t.Side = domain.Side(side)
		t.ClosedAt = parseStoredTime(closedAt)
		trades = append(trades, t)
	}
	return trades, rows.Err()
}

// SaveDailyStats upserts the snapshot for its date. Later writes on the same
// day replace earlier ones.
func (s *SQLiteStore) SaveDailyStats(ctx context.Context, stats domain.DailyStats) error {
	if stats.Date == "" {
		stats.Date = time.Now().Format("2006-01-02")
	}

	if _, err := s.db.ExecContext(ctx, `
		INSERT INTO daily_stats (date, balance, daily_pnl, daily_return_pct, trades, open_positions, total_exposure)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(date) DO UPDATE SET
			balance          = excluded.balance,
			daily_pnl        = excluded.daily_pnl,
			daily_return_pct = excluded.daily_return_pct,
			trades           = excluded.trades,
			open_positions   = excluded.open_positions,
			total_exposure   = excluded.total_exposure
	`,
		stats.Date,
		stats.Balance,
		stats.DailyPnL,
		stats.DailyReturnPct,
		stats.Trades,
		stats.OpenPositions,
		stats.TotalExposure,
	); err != nil {
		return fmt.Errorf("storage.SaveDailyStats %s: %w", stats.Date, err)
	}
	return nil
}

// GetDailyStats returns the most recent days of stats, oldest first.
func (s *SQLiteStore) GetDailyStats(ctx context.Context, days int) ([]domain.DailyStats, error) {
	if days <= 0 {
		days = 30
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT date, balance, daily_pnl, daily_return_pct, trades, open_positions, total_exposure
		FROM (
			SELECT * FROM daily_stats ORDER BY date DESC LIMIT ?
		)
		ORDER BY date ASC
	`, days)
	if err != nil {
		return nil, fmt.Errorf("storage.GetDailyStats: query: %w", err)
	}
	defer rows.Close()

	var stats []domain.DailyStats
	for rows.Next() {
		var d domain.DailyStats
		if err := rows.Scan(
			&d.Date, &d.Balance, &d.DailyPnL, &d.DailyReturnPct,
			&d.Trades, &d.OpenPositions, &d.TotalExposure,
		); err != nil {
			return nil, fmt.Errorf("storage.GetDailyStats: scan row: %w", err)
		}
		stats = append(stats, d)
	}
	return stats, rows.Err()
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// parseStoredTime handles the timestamp formats the driver may hand back.
func parseStoredTime(s string) time.Time {
	for _, layout := range []string{
		time.RFC3339Nano,
		time.RFC3339,
		"2006-01-02 15:04:05.999999999-07:00",
		"2006-01-02 15:04:05",
	} {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC()
		}
	}
	return time.Time{}
}
