package storage

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
)

const collectionExt = ".json"

// DirTier persists each collection as a JSON file inside a user-chosen
// directory. Files are human-readable and may be edited or synced outside
// the application.
type DirTier struct {
	root string
}

func NewDirTier(root string) *DirTier {
	return &DirTier{root: root}
}

func (t *DirTier) Name() string { return "directory" }

func (t *DirTier) Root() string { return t.root }

func (t *DirTier) Read(ctx context.Context, collection string) ([]byte, Status, error) {
	if err := ctx.Err(); err != nil {
		return nil, StatusFailed, err
	}
	if _, err := os.Stat(t.root); err != nil {
		return nil, StatusUnavailable, err
	}

	data, err := os.ReadFile(t.path(collection))
	if errors.Is(err, fs.ErrNotExist) {
		// Never written; the gateway falls through to the caller default.
		return nil, StatusOK, nil
	}
	if err != nil {
		return nil, StatusFailed, err
	}
	if len(data) == 0 {
		return nil, StatusOK, nil
	}
	return data, StatusOK, nil
}

// Write replaces the whole collection file atomically: the payload lands in
// a temp file first and is renamed over the target, so a crash mid-write
// never leaves a truncated collection behind.
func (t *DirTier) Write(ctx context.Context, collection string, payload []byte) (Status, error) {
	if err := ctx.Err(); err != nil {
		return StatusFailed, err
	}
	if _, err := os.Stat(t.root); err != nil {
		return StatusUnavailable, err
	}

	target := t.path(collection)
	tmp, err := os.CreateTemp(t.root, collection+".*.tmp")
	if err != nil {
		return StatusFailed, err
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(payload); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return StatusFailed, err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return StatusFailed, err
	}
	if err := os.Rename(tmpName, target); err != nil {
		os.Remove(tmpName)
		return StatusFailed, err
	}
	return StatusOK, nil
}

func (t *DirTier) path(collection string) string {
	return filepath.Join(t.root, collection+collectionExt)
}
