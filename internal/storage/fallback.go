package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	_ "modernc.org/sqlite" // pure go sqlite driver
)

// Collections larger than this are rejected by the fallback tier. Mirrors
// the practical quota of the simple per-key store this tier stands in for.
const maxFallbackPayload = 5 << 20

// KVTier is the fallback backend: a single-table embedded SQLite store
// mapping collection name to serialized payload. It is always available
// (lives under the app state dir) and serves whenever the directory tier
// is absent or failing.
type KVTier struct {
	mu sync.Mutex
	db *sql.DB
}

func NewKVTier(path string) (*KVTier, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil && !errors.Is(err, os.ErrExist) {
		return nil, fmt.Errorf("create state dir: %w", err)
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open fallback store: %w", err)
	}
	if _, err := db.Exec(`CREATE TABLE IF NOT EXISTS collections (
		name TEXT PRIMARY KEY,
		payload BLOB NOT NULL
	)`); err != nil {
		db.Close()
		return nil, fmt.Errorf("create collections table: %w", err)
	}
	return &KVTier{db: db}, nil
}

func (t *KVTier) Name() string { return "fallback" }

func (t *KVTier) Read(ctx context.Context, collection string) ([]byte, Status, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	var payload []byte
	err := t.db.QueryRowContext(ctx,
		`SELECT payload FROM collections WHERE name = ?`, collection,
	).Scan(&payload)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, StatusOK, nil
	}
	if err != nil {
		return nil, StatusFailed, err
	}
	return payload, StatusOK, nil
}

func (t *KVTier) Write(ctx context.Context, collection string, payload []byte) (Status, error) {
	if len(payload) > maxFallbackPayload {
		return StatusFailed, fmt.Errorf("collection %q exceeds fallback quota (%d bytes)", collection, len(payload))
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	_, err := t.db.ExecContext(ctx,
		`INSERT INTO collections (name, payload) VALUES (?, ?)
		 ON CONFLICT(name) DO UPDATE SET payload = excluded.payload`,
		collection, payload,
	)
	if err != nil {
		return StatusFailed, err
	}
	return StatusOK, nil
}

func (t *KVTier) Close() error {
	return t.db.Close()
}
