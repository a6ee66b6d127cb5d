package storage

import (
	"path/filepath"
	"strings"
	"sync"

	"github.com/fsnotify/fsnotify"

	"coursebook/internal/cache"
	"coursebook/pkg/logger"
)

// Watcher invalidates cache entries when collection files change on disk.
// The data directory is user-visible; files may be edited by hand or synced
// by other tools while the app runs.
type Watcher struct {
	log   *logger.Logger
	cache *cache.Cache
	fw    *fsnotify.Watcher

	mu  sync.Mutex
	dir string
}

func NewWatcher(c *cache.Cache, log *logger.Logger) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	w := &Watcher{log: log, cache: c, fw: fw}
	go w.run()
	return w, nil
}

// Watch re-points the watcher at dir, dropping any previously watched
// directory. Called at boot and again after a directory switch.
func (w *Watcher) Watch(dir string) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.dir != "" {
		if err := w.fw.Remove(w.dir); err != nil {
			w.log.Warn("Failed to unwatch previous data directory", "dir", w.dir, "error", err)
		}
	}
	if err := w.fw.Add(dir); err != nil {
		return err
	}
	w.dir = dir
	w.log.Info("Watching data directory", "dir", dir)
	return nil
}

func (w *Watcher) run() {
	for {
		select {
		case event, ok := <-w.fw.Events:
			if !ok {
				return
			}
			w.handle(event)
		case err, ok := <-w.fw.Errors:
			if !ok {
				return
			}
			w.log.Warn("Data directory watch error", "error", err)
		}
	}
}

func (w *Watcher) handle(event fsnotify.Event) {
	if !event.Op.Has(fsnotify.Write) && !event.Op.Has(fsnotify.Create) && !event.Op.Has(fsnotify.Rename) {
		return
	}
	base := filepath.Base(event.Name)
	if !strings.HasSuffix(base, collectionExt) {
		return
	}
	collection := strings.TrimSuffix(base, collectionExt)
	w.cache.Invalidate(collection)
	w.log.Debug("Collection file changed on disk, cache invalidated",
		"collection", collection, "op", event.Op.String())
}

func (w *Watcher) Close() error {
	return w.fw.Close()
}
