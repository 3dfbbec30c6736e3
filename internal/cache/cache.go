// Package cache handles SQLite persistence of raw provider payloads.
//
// The cache memoizes undecoded response bodies keyed by (user, resource) so
// repeated runs do not hammer the provider. Normalized data is never stored.
package cache

import (
	"context"
	"database/sql"
	"errors"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // SQLite driver.
)

// Store wraps SQLite access for cached payloads.
type Store struct {
	db *sql.DB
}

// Open opens or creates the cache database and applies migrations.
func Open(path string) (*Store, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	store := &Store{db: db}
	if err := store.migrate(); err != nil {
		if cerr := db.Close(); cerr != nil {
			// Best-effort close on migration failure.
			_ = cerr
		}
		return nil, err
	}
	return store, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS payloads (
			user_id TEXT NOT NULL,
			resource TEXT NOT NULL,
			fetched_at TEXT NOT NULL,
			body BLOB NOT NULL,
			PRIMARY KEY (user_id, resource)
		);`,
		`CREATE INDEX IF NOT EXISTS idx_payloads_fetched_at ON payloads(fetched_at);`,
	}
	for _, stmt := range stmts {
		if _, err := s.db.Exec(stmt); err != nil {
			return err
		}
	}
	return nil
}

// Get returns the cached body for (userID, resource) if it is younger than
// ttl. A ttl of zero means the entry never expires. The second return value
// reports whether a fresh entry was found.
func (s *Store) Get(ctx context.Context, userID, resource string, ttl time.Duration) ([]byte, bool, error) {
	var fetchedAt string
	var body []byte
	err := s.db.QueryRowContext(ctx,
		`SELECT fetched_at, body FROM payloads WHERE user_id = ? AND resource = ?`,
		userID, resource,
	).Scan(&fetchedAt, &body)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	if ttl > 0 {
		parsed, err := time.Parse(time.RFC3339Nano, fetchedAt)
		if err != nil {
			return nil, false, nil
		}
		if time.Since(parsed) > ttl {
			return nil, false, nil
		}
	}
	return body, true, nil
}

// Put stores or replaces the cached body for (userID, resource).
func (s *Store) Put(ctx context.Context, userID, resource string, body []byte) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO payloads (user_id, resource, fetched_at, body)
		 VALUES (?, ?, ?, ?)
		 ON CONFLICT (user_id, resource) DO UPDATE SET
			fetched_at = excluded.fetched_at,
			body = excluded.body`,
		userID, resource, time.Now().Format(time.RFC3339Nano), body,
	)
	return err
}

// Purge removes entries for the user older than the cutoff.
func (s *Store) Purge(ctx context.Context, userID string, cutoff time.Time) (int64, error) {
	res, err := s.db.ExecContext(ctx,
		`DELETE FROM payloads WHERE user_id = ? AND fetched_at < ?`,
		userID, cutoff.Format(time.RFC3339Nano),
	)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
