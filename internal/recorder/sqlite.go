package recorder

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"StockProphet/internal/model"

	"github.com/rs/zerolog/log"
	_ "modernc.org/sqlite"
)

// DefaultHistoryLimit caps History when the caller passes a non-positive limit.
const DefaultHistoryLimit = 20

// SQLiteRecorder persists prediction history to a SQLite database.
type SQLiteRecorder struct {
	db *sql.DB
	mu sync.Mutex
}

// NewSQLiteRecorder opens (or creates) the SQLite database and runs migrations.
func NewSQLiteRecorder(dbPath string) (*SQLiteRecorder, error) {
	if dir := filepath.Dir(dbPath); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("create data directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("set WAL mode: %w", err)
	}

	r := &SQLiteRecorder{db: db}
	if err := r.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	log.Info().Str("path", dbPath).Msg("sqlite recorder opened")
	return r, nil
}

func (r *SQLiteRecorder) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS predictions (
			id             INTEGER PRIMARY KEY AUTOINCREMENT,
			timestamp      INTEGER NOT NULL,
			symbol         TEXT NOT NULL,
			months         INTEGER NOT NULL,
			news           TEXT,
			source         TEXT NOT NULL,
			start_price    REAL,
			end_price      REAL,
			percent_change REAL,
			point_count    INTEGER
		)`,
		`CREATE INDEX IF NOT EXISTS idx_predictions_ts ON predictions(timestamp)`,
		`CREATE INDEX IF NOT EXISTS idx_predictions_symbol ON predictions(symbol)`,
	}

	for _, s := range stmts {
		if _, err := r.db.Exec(s); err != nil {
			return fmt.Errorf("exec %q: %w", s[:40], err)
		}
	}
	return nil
}

func (r *SQLiteRecorder) RecordPrediction(ctx context.Context, evt *PredictionEvent) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	news := evt.Request.News
	if news == nil {
		news = []string{}
	}
	newsJSON, err := json.Marshal(news)
	if err != nil {
		return fmt.Errorf("encode news: %w", err)
	}

	res := evt.Result
	ts := res.GeneratedAt
	if ts.IsZero() {
		ts = time.Now()
	}
	var change sql.NullFloat64
	if res.Summary.PercentChange != nil {
		change = sql.NullFloat64{Float64: *res.Summary.PercentChange, Valid: true}
	}

	_, err = r.db.ExecContext(ctx, `INSERT INTO predictions
		(timestamp, symbol, months, news, source, start_price, end_price, percent_change, point_count)
		VALUES (?,?,?,?,?,?,?,?,?)`,
		ts.UnixMilli(), res.Symbol, res.Months, string(newsJSON), string(res.Source),
		res.Summary.StartPrice, res.Summary.EndPrice, change, res.Summary.PointCount,
	)
	if err != nil {
		return fmt.Errorf("insert prediction: %w", err)
	}
	return nil
}

// History returns the most recent predictions, newest first.
func (r *SQLiteRecorder) History(ctx context.Context, limit int) ([]model.HistoryEntry, error) {
	if limit <= 0 {
		limit = DefaultHistoryLimit
	}
	rows, err := r.db.QueryContext(ctx, `SELECT
		id, timestamp, symbol, months, news, source, start_price, end_price, percent_change, point_count
		FROM predictions ORDER BY timestamp DESC, id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("query history: %w", err)
	}
	defer rows.Close()

	entries := []model.HistoryEntry{}
	for rows.Next() {
		var (
			e      model.HistoryEntry
			ts     int64
			news   string
			source string
			change sql.NullFloat64
		)
		if err := rows.Scan(&e.ID, &ts, &e.Symbol, &e.Months, &news, &source,
			&e.StartPrice, &e.EndPrice, &change, &e.PointCount); err != nil {
			return nil, fmt.Errorf("scan history: %w", err)
		}
		e.Timestamp = time.UnixMilli(ts)
		e.Source = model.Source(source)
		if change.Valid {
			v := change.Float64
			e.PercentChange = &v
		}
		if err := json.Unmarshal([]byte(news), &e.News); err != nil {
			log.Warn().Err(err).Int64("id", e.ID).Msg("decode recorded news")
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

func (r *SQLiteRecorder) Close() error {
	log.Info().Msg("closing sqlite recorder")
	return r.db.Close()
}
