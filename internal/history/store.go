// Package history persists generated reports in a local SQLite database
// so past runs can be listed and re-rendered.
package history

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver

	"github.com/P70-ops/netanalyzer/internal/clock"
	"github.com/P70-ops/netanalyzer/internal/report"
)

// ErrNotFound is returned when no stored report matches the given ID.
var ErrNotFound = errors.New("report not found")

// Entry is one stored report's listing row.
type Entry struct {
	ID          string    `json:"id"`
	Hostname    string    `json:"hostname"`
	GeneratedAt time.Time `json:"generated_at"`
	ExternalIP  string    `json:"external_ip,omitempty"`
}

// Options configures a Store.
type Options struct {
	Path  string      // Database file path (":memory:" for in-memory)
	Clock clock.Clock // Optional: time source (defaults to RealClock if nil)
}

// Store is a SQLite-backed report archive.
type Store struct {
	db    *sql.DB
	clock clock.Clock
}

// Open creates or opens the report archive at opts.Path.
func Open(opts Options) (*Store, error) {
	dsn := opts.Path
	if dsn != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(dsn), 0o755); err != nil {
			return nil, fmt.Errorf("failed to create data directory: %w", err)
		}
		dsn += "?_journal_mode=WAL&_busy_timeout=5000"
	}

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	clk := opts.Clock
	if clk == nil {
		clk = &clock.RealClock{}
	}

	s := &Store{db: db, clock: clk}
	if err := s.initSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}
	return s, nil
}

func (s *Store) initSchema() error {
	schema := `
		CREATE TABLE IF NOT EXISTS reports (
			id TEXT PRIMARY KEY,
			hostname TEXT NOT NULL,
			generated_at DATETIME NOT NULL,
			external_ip TEXT,
			payload BLOB NOT NULL,
			saved_at DATETIME NOT NULL
		);
		CREATE INDEX IF NOT EXISTS idx_reports_generated
			ON reports(generated_at DESC);
	`
	_, err := s.db.Exec(schema)
	return err
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

// Save stores one report, serialized as JSON.
func (s *Store) Save(ctx context.Context, r *report.Report) error {
	payload, err := json.Marshal(r)
	if err != nil {
		return fmt.Errorf("failed to serialize report: %w", err)
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT OR REPLACE INTO reports (id, hostname, generated_at, external_ip, payload, saved_at)
		VALUES (?, ?, ?, ?, ?, ?)`,
		r.ID, r.Hostname, r.GeneratedAt.UTC(), r.ExternalIP.Text, payload, s.clock.Now().UTC())
	if err != nil {
		return fmt.Errorf("failed to save report: %w", err)
	}
	return nil
}

// List returns up to limit entries, newest first. limit <= 0 means all.
func (s *Store) List(ctx context.Context, limit int) ([]Entry, error) {
	query := `
		SELECT id, hostname, generated_at, COALESCE(external_ip, '')
		FROM reports ORDER BY generated_at DESC`
	args := []any{}
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list reports: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var e Entry
		if err := rows.Scan(&e.ID, &e.Hostname, &e.GeneratedAt, &e.ExternalIP); err != nil {
			return nil, fmt.Errorf("failed to scan report row: %w", err)
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// Get loads one stored report by its full ID.
func (s *Store) Get(ctx context.Context, id string) (*report.Report, error) {
	var payload []byte
	err := s.db.QueryRowContext(ctx,
		"SELECT payload FROM reports WHERE id = ?", id).Scan(&payload)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load report: %w", err)
	}

	var r report.Report
	if err := json.Unmarshal(payload, &r); err != nil {
		return nil, fmt.Errorf("failed to decode report: %w", err)
	}
	return &r, nil
}
