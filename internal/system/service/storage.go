package service

import (
	"context"

	"coursebook/internal/cache"
	"coursebook/internal/storage"
	"coursebook/pkg/logger"
)

// StorageStatus describes which tier currently serves requests and which
// directory, if any, has been granted.
type StorageStatus struct {
	ActiveTier   string `json:"activeTier"`
	HasDirectory bool   `json:"hasDirectory"`
	Directory    string `json:"directory,omitempty"`
}

type StorageService interface {
	Status(ctx context.Context) (*StorageStatus, error)
	SelectDirectory(ctx context.Context, path string) (*StorageStatus, error)
}

type storageService struct {
	registry *storage.Registry
	gateway  *storage.Gateway
	cache    *cache.Cache
	watcher  *storage.Watcher
	log      *logger.Logger
}

func NewStorageService(registry *storage.Registry, gateway *storage.Gateway, c *cache.Cache, watcher *storage.Watcher, log *logger.Logger) StorageService {
	return &storageService{
		registry: registry,
		gateway:  gateway,
		cache:    c,
		watcher:  watcher,
		log:      log,
	}
}

func (s *storageService) Status(ctx context.Context) (*StorageStatus, error) {
	dir, err := s.registry.Resolve(ctx)
	if err != nil {
		return nil, err
	}
	return &StorageStatus{
		ActiveTier:   s.gateway.ActiveTier(),
		HasDirectory: dir != "",
		Directory:    dir,
	}, nil
}

// SelectDirectory grants a new data directory: the path is validated and
// persisted, the primary tier is re-pointed, every cache snapshot is dropped
// and the file watcher follows the new directory. Collections already in the
// fallback tier stay there until their next write.
func (s *storageService) SelectDirectory(ctx context.Context, path string) (*StorageStatus, error) {
	if err := s.registry.SelectDirectory(ctx, path); err != nil {
		return nil, err
	}
	dir, err := s.registry.Resolve(ctx)
	if err != nil {
		return nil, err
	}

	s.gateway.SetPrimary(storage.NewDirTier(dir))
	s.cache.ClearAll()
	if err := s.watcher.Watch(dir); err != nil {
		s.log.Warn("Failed to watch new data directory", "dir", dir, "error", err)
	}

	s.log.Info("Data directory selected", "dir", dir)
	return &StorageStatus{
		ActiveTier:   s.gateway.ActiveTier(),
		HasDirectory: true,
		Directory:    dir,
	}, nil
}
