package recorder

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"sync"
	"time"

	_ "modernc.org/sqlite"

	"stocksapi/internal/provider"
)

// SQLiteRecorder persists quote snapshots to a SQLite database.
type SQLiteRecorder struct {
	db *sql.DB
	mu sync.Mutex
}

// NewSQLiteRecorder opens (or creates) the database at dbPath and migrates it.
func NewSQLiteRecorder(dbPath string) (*SQLiteRecorder, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	// WAL lets readers query while the watcher writes.
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("set WAL mode: %w", err)
	}

	r := &SQLiteRecorder{db: db}
	if err := r.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	slog.Info("sqlite recorder opened", "path", dbPath)
	return r, nil
}

func (r *SQLiteRecorder) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS quote_snapshots (
			id           INTEGER PRIMARY KEY AUTOINCREMENT,
			received_at  INTEGER NOT NULL,
			symbol       TEXT NOT NULL,
			name         TEXT,
			price        REAL NOT NULL,
			change       REAL,
			currency     TEXT,
			market_state TEXT,
			source       TEXT
		)`,
		`CREATE INDEX IF NOT EXISTS idx_quote_symbol_ts ON quote_snapshots(symbol, received_at)`,
	}
	for _, s := range stmts {
		if _, err := r.db.Exec(s); err != nil {
			return fmt.Errorf("exec %q: %w", s[:40], err)
		}
	}
	return nil
}

// RecordQuotes writes quotes in one transaction.
func (r *SQLiteRecorder) RecordQuotes(ctx context.Context, quotes []provider.Quote) error {
	if len(quotes) == 0 {
		return nil
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, `INSERT INTO quote_snapshots
		(received_at, symbol, name, price, change, currency, market_state, source)
		VALUES (?,?,?,?,?,?,?,?)`)
	if err != nil {
		return fmt.Errorf("prepare: %w", err)
	}
	defer stmt.Close()

	for _, q := range quotes {
		ts := q.ReceivedAt
		if ts.IsZero() {
			ts = time.Now()
		}
		var change sql.NullFloat64
		if q.Change != nil {
			change = sql.NullFloat64{Float64: *q.Change, Valid: true}
		}
		if _, err := stmt.ExecContext(ctx,
			ts.Unix(), q.Symbol, q.Name, q.Price, change,
			q.Currency, q.MarketState, q.Source,
		); err != nil {
			return fmt.Errorf("insert %s: %w", q.Symbol, err)
		}
	}
	return tx.Commit()
}

// Latest returns the most recent snapshot per symbol, ordered by symbol.
func (r *SQLiteRecorder) Latest(ctx context.Context) ([]provider.Quote, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT q.received_at, q.symbol, q.name, q.price, q.change, q.currency, q.market_state, q.source
		FROM quote_snapshots q
		WHERE q.id = (SELECT MAX(id) FROM quote_snapshots WHERE symbol = q.symbol)
		ORDER BY q.symbol`)
	if err != nil {
		return nil, fmt.Errorf("query latest: %w", err)
	}
	defer rows.Close()

	var out []provider.Quote
	for rows.Next() {
		var (
			q      provider.Quote
			ts     int64
			change sql.NullFloat64
		)
		if err := rows.Scan(&ts, &q.Symbol, &q.Name, &q.Price, &change, &q.Currency, &q.MarketState, &q.Source); err != nil {
			return nil, fmt.Errorf("scan: %w", err)
		}
		q.ReceivedAt = time.Unix(ts, 0).UTC()
		if change.Valid {
			v := change.Float64
			q.Change = &v
		}
		out = append(out, q)
	}
	return out, rows.Err()
}

func (r *SQLiteRecorder) Close() error {
	slog.Info("closing sqlite recorder")
	return r.db.Close()
}
