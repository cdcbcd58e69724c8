package recorder

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	_ "modernc.org/sqlite"

	"MultiplierSentinel/internal/model"
)

// SQLiteRecorder persists classification outcomes to a SQLite database.
type SQLiteRecorder struct {
	db *sql.DB
	mu sync.Mutex
}

// NewSQLiteRecorder opens (or creates) the SQLite database and runs migrations.
func NewSQLiteRecorder(dbPath string) (*SQLiteRecorder, error) {
	if dir := filepath.Dir(dbPath); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create db dir: %w", err)
		}
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	// WAL lets the summary job read while the server writes.
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
			id        TEXT PRIMARY KEY,
			timestamp INTEGER NOT NULL,
			source    TEXT,
			length    INTEGER,
			input     TEXT,
			last      REAL,
			category  TEXT NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_predictions_ts ON predictions(timestamp)`,

		`CREATE TABLE IF NOT EXISTS rejections (
			id        TEXT PRIMARY KEY,
			timestamp INTEGER NOT NULL,
			source    TEXT,
			length    INTEGER,
			kind      TEXT NOT NULL,
			input     TEXT
		)`,
		`CREATE INDEX IF NOT EXISTS idx_rejections_ts ON rejections(timestamp)`,
	}

	for _, s := range stmts {
		if _, err := r.db.Exec(s); err != nil {
			return fmt.Errorf("exec %q: %w", s[:40], err)
		}
	}
	return nil
}

func (r *SQLiteRecorder) RecordPrediction(evt *PredictionEvent) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	_, err := r.db.Exec(`INSERT INTO predictions
		(id, timestamp, source, length, input, last, category)
		VALUES (?,?,?,?,?,?,?)`,
		eventID(evt.ID), eventTime(evt.At), evt.Source, evt.Length,
		formatValues(evt.Values), evt.Values.Last(), string(evt.Category),
	)
	return err
}

func (r *SQLiteRecorder) RecordRejection(evt *RejectionEvent) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	_, err := r.db.Exec(`INSERT INTO rejections
		(id, timestamp, source, length, kind, input)
		VALUES (?,?,?,?,?,?)`,
		eventID(evt.ID), eventTime(evt.At), evt.Source, evt.Length, evt.Kind, evt.Input,
	)
	return err
}

// Summary counts predictions per category and rejections per kind recorded at or after since.
func (r *SQLiteRecorder) Summary(since time.Time) (*Summary, error) {
	s := newSummary(since)
	ts := since.Unix()

	rows, err := r.db.Query(`SELECT category, COUNT(*) FROM predictions WHERE timestamp >= ? GROUP BY category`, ts)
	if err != nil {
		return nil, fmt.Errorf("query predictions: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var cat string
		var n int
		if err := rows.Scan(&cat, &n); err != nil {
			return nil, fmt.Errorf("scan predictions: %w", err)
		}
		s.Predictions[model.Category(cat)] = n
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	rrows, err := r.db.Query(`SELECT kind, COUNT(*) FROM rejections WHERE timestamp >= ? GROUP BY kind`, ts)
	if err != nil {
		return nil, fmt.Errorf("query rejections: %w", err)
	}
	defer rrows.Close()
	for rrows.Next() {
		var kind string
		var n int
		if err := rrows.Scan(&kind, &n); err != nil {
			return nil, fmt.Errorf("scan rejections: %w", err)
		}
		s.Rejections[kind] = n
	}
	return s, rrows.Err()
}

// Prune deletes events recorded before the cutoff and returns how many rows were removed.
func (r *SQLiteRecorder) Prune(before time.Time) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var total int64
	for _, table := range []string{"predictions", "rejections"} {
		res, err := r.db.Exec(`DELETE FROM `+table+` WHERE timestamp < ?`, before.Unix())
		if err != nil {
			return total, fmt.Errorf("prune %s: %w", table, err)
		}
		n, _ := res.RowsAffected()
		total += n
	}
	return total, nil
}

func (r *SQLiteRecorder) Close() error {
	log.Info().Msg("closing sqlite recorder")
	return r.db.Close()
}

func eventID(id string) string {
	if id == "" {
		return uuid.NewString()
	}
	return id
}

func eventTime(at time.Time) int64 {
	if at.IsZero() {
		return time.Now().Unix()
	}
	return at.Unix()
}

func formatValues(h model.History) string {
	parts := make([]string, len(h))
	for i, v := range h {
		parts[i] = strconv.FormatFloat(v, 'f', -1, 64)
	}
	return strings.Join(parts, ",")
}
