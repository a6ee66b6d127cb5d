package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite" // pure go sqlite driver
)

const registryKey = "directory"

// Registry persists the user-granted data directory path across process
// starts. It is backed by its own tiny embedded database so the primary
// tier can be re-resolved on boot without re-prompting.
//
// An empty registry is a normal first-run condition and means "fallback
// tier only" until a directory is selected.
type Registry struct {
	db *sql.DB
}

func NewRegistry(path string) (*Registry, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil && !errors.Is(err, os.ErrExist) {
		return nil, fmt.Errorf("create state dir: %w", err)
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open handle registry: %w", err)
	}
	if _, err := db.Exec(`CREATE TABLE IF NOT EXISTS handles (
		key TEXT PRIMARY KEY,
		path TEXT NOT NULL
	)`); err != nil {
		db.Close()
		return nil, fmt.Errorf("create handles table: %w", err)
	}
	return &Registry{db: db}, nil
}

// Resolve returns the stored directory path, or "" when none was granted or
// the stored path no longer resolves to a directory.
func (r *Registry) Resolve(ctx context.Context) (string, error) {
	var path string
	err := r.db.QueryRowContext(ctx,
		`SELECT path FROM handles WHERE key = ?`, registryKey,
	).Scan(&path)
	if errors.Is(err, sql.ErrNoRows) {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	info, err := os.Stat(path)
	if err != nil || !info.IsDir() {
		return "", nil
	}
	return path, nil
}

func (r *Registry) HasDirectory(ctx context.Context) bool {
	path, err := r.Resolve(ctx)
	return err == nil && path != ""
}

// SelectDirectory validates and persists a newly granted directory. The
// grant itself (picking the path) happens outside the core; rejection of an
// unusable path is reported as an error, never a panic.
func (r *Registry) SelectDirectory(ctx context.Context, path string) error {
	abs, err := filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("resolve directory path: %w", err)
	}
	info, err := os.Stat(abs)
	if err != nil {
		return fmt.Errorf("stat directory: %w", err)
	}
	if !info.IsDir() {
		return fmt.Errorf("%s is not a directory", abs)
	}
	if err := probeWritable(abs); err != nil {
		return fmt.Errorf("directory not writable: %w", err)
	}

	_, err = r.db.ExecContext(ctx,
		`INSERT INTO handles (key, path) VALUES (?, ?)
		 ON CONFLICT(key) DO UPDATE SET path = excluded.path`,
		registryKey, abs,
	)
	if err != nil {
		return fmt.Errorf("persist directory handle: %w", err)
	}
	return nil
}

func (r *Registry) Close() error {
	return r.db.Close()
}

func probeWritable(dir string) error {
	f, err := os.CreateTemp(dir, ".coursebook-probe-*")
	if err != nil {
		return err
	}
	name := f.Name()
	f.Close()
	return os.Remove(name)
}
