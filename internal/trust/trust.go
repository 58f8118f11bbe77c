// Package trust provides the SQLite-backed release-group trust store.
//
// Group trust is the fifth quality dimension: a score in [0, 1] per
// release group, learned from user feedback. Groups never seen before
// rate the neutral 0.5, so unknown groups are neither promoted nor
// buried.
package trust

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"
)

// DefaultDBPath is the default database location.
const DefaultDBPath = "~/.zantetsu/trust.db"

// NeutralTrust is the score assigned to groups with no feedback history.
const NeutralTrust = 0.5

// feedbackStep is how far one feedback event moves a group's trust
// toward 1.0 (positive) or 0.0 (negative).
const feedbackStep = 0.1

// ErrInvalidTrust is returned when a trust value falls outside [0, 1].
var ErrInvalidTrust = errors.New("trust value out of range")

// GroupTrust is one group's stored trust record.
type GroupTrust struct {
	Group       string
	Trust       float64
	SampleCount int64
	UpdatedAt   time.Time
}

// StoreConfig holds configuration for NewStore.
type StoreConfig struct {
	DBPath string
}

// Store defines the group-trust storage interface.
type Store interface {
	// Get returns the group's trust, or NeutralTrust for unknown groups.
	Get(ctx context.Context, group string) (float64, error)
	// Set overwrites the group's trust with an explicit value in [0, 1].
	Set(ctx context.Context, group string, trust float64) error
	// RecordFeedback nudges the group's trust toward 1.0 or 0.0.
	RecordFeedback(ctx context.Context, group string, positive bool) error
	// List returns all known groups ordered by trust descending.
	List(ctx context.Context) ([]GroupTrust, error)
	Close() error
}

// SQLiteStore implements Store using SQLite.
type SQLiteStore struct {
	db     *sql.DB
	dbPath string
}

// NewStore creates a new SQLite-backed trust store.
// Pass ":memory:" for in-memory databases (testing).
func NewStore(cfg StoreConfig) (Store, error) {
	if cfg.DBPath == "" {
		cfg.DBPath = expandPath(DefaultDBPath)
	}

	if cfg.DBPath != ":memory:" {
		dir := filepath.Dir(cfg.DBPath)
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("creating db directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", cfg.DBPath)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("pinging database: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA foreign_keys=ON",
		"PRAGMA busy_timeout=5000",
	}
	for _, p := range pragmas {
		if _, err := db.Exec(p); err != nil {
			db.Close()
			return nil, fmt.Errorf("setting pragma %q: %w", p, err)
		}
	}

	s := &SQLiteStore{db: db, dbPath: cfg.DBPath}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}
	return s, nil
}

func (s *SQLiteStore) migrate() error {
	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS group_trust (
			group_name   TEXT PRIMARY KEY COLLATE NOCASE,
			trust        REAL NOT NULL,
			sample_count INTEGER NOT NULL DEFAULT 0,
			updated_at   TEXT NOT NULL
		)
	`)
	if err != nil {
		return fmt.Errorf("creating group_trust table: %w", err)
	}
	return nil
}

// Get returns the group's trust, or NeutralTrust for unknown groups.
func (s *SQLiteStore) Get(ctx context.Context, group string) (float64, error) {
	var trust float64
	err := s.db.QueryRowContext(ctx,
		`SELECT trust FROM group_trust WHERE group_name = ?`, group,
	).Scan(&trust)
	if errors.Is(err, sql.ErrNoRows) {
		return NeutralTrust, nil
	}
	if err != nil {
		return 0, fmt.Errorf("getting trust for %q: %w", group, err)
	}
	return trust, nil
}

// Set overwrites the group's trust.
func (s *SQLiteStore) Set(ctx context.Context, group string, trust float64) error {
	if trust < 0 || trust > 1 {
		return fmt.Errorf("%w: %v", ErrInvalidTrust, trust)
	}
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO group_trust (group_name, trust, sample_count, updated_at)
		VALUES (?, ?, 0, ?)
		ON CONFLICT(group_name) DO UPDATE SET
			trust = excluded.trust,
			updated_at = excluded.updated_at
	`, group, trust, time.Now().UTC().Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("setting trust for %q: %w", group, err)
	}
	return nil
}

// RecordFeedback moves the group's trust one step toward 1.0 (positive)
// or 0.0 (negative) and bumps its sample count. Unknown groups start
// from neutral.
func (s *SQLiteStore) RecordFeedback(ctx context.Context, group string, positive bool) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning feedback transaction: %w", err)
	}
	defer tx.Rollback()

	trust := NeutralTrust
	var samples int64
	err = tx.QueryRowContext(ctx,
		`SELECT trust, sample_count FROM group_trust WHERE group_name = ?`, group,
	).Scan(&trust, &samples)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("reading trust for %q: %w", group, err)
	}

	target := 0.0
	if positive {
		target = 1.0
	}
	trust += feedbackStep * (target - trust)

	_, err = tx.ExecContext(ctx, `
		INSERT INTO group_trust (group_name, trust, sample_count, updated_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(group_name) DO UPDATE SET
			trust = excluded.trust,
			sample_count = excluded.sample_count,
			updated_at = excluded.updated_at
	`, group, trust, samples+1, time.Now().UTC().Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("updating trust for %q: %w", group, err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing feedback transaction: %w", err)
	}
	return nil
}

// List returns all known groups ordered by trust descending.
func (s *SQLiteStore) List(ctx context.Context) ([]GroupTrust, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT group_name, trust, sample_count, updated_at
		FROM group_trust
		ORDER BY trust DESC, group_name ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("listing groups: %w", err)
	}
	defer rows.Close()

	var groups []GroupTrust
	for rows.Next() {
		var g GroupTrust
		var updated string
		if err := rows.Scan(&g.Group, &g.Trust, &g.SampleCount, &updated); err != nil {
			return nil, fmt.Errorf("scanning group row: %w", err)
		}
		g.UpdatedAt, _ = time.Parse(time.RFC3339, updated)
		groups = append(groups, g)
	}
	return groups, rows.Err()
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// expandPath expands ~ to home directory.
func expandPath(path string) string {
	if len(path) > 0 && path[0] == '~' {
		home, err := os.UserHomeDir()
		if err != nil {
			return path
		}
		return filepath.Join(home, path[1:])
	}
	return path
}
