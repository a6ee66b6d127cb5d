package entity

import (
	"context"
	"errors"
	"io"
	"sync"
	"testing"
	"time"

	"coursebook/internal/cache"
	"coursebook/internal/storage"
	apperrors "coursebook/pkg/errors"
	"coursebook/pkg/logger"
	"coursebook/pkg/model"
)

type memTier struct {
	mu     sync.Mutex
	data   map[string][]byte
	writes int
}

func newMemTier() *memTier {
	return &memTier{data: make(map[string][]byte)}
}

func (t *memTier) Name() string { return "memory" }

func (t *memTier) Read(_ context.Context, collection string) ([]byte, storage.Status, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.data[collection], storage.StatusOK, nil
}

func (t *memTier) Write(_ context.Context, collection string, payload []byte) (storage.Status, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.data[collection] = payload
	t.writes++
	return storage.StatusOK, nil
}

func newTestStore(t *testing.T) (*Store[model.Teacher], *memTier) {
	t.Helper()
	log := logger.New(logger.Config{Level: logger.ERROR, Format: logger.JSON, Output: io.Discard})
	tier := newMemTier()
	gw := storage.NewGateway(nil, tier, 5*time.Second, log)
	return NewStore[model.Teacher](model.CollectionTeachers, gw, cache.New(cache.DefaultTTL)), tier
}

func teacher(id, name string) model.Teacher {
	return model.Teacher{ID: id, Name: name, Status: "active"}
}

func TestStore_AddAndAll(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()

	if err := store.Add(ctx, teacher("t1", "Alice")); err != nil {
		t.Fatalf("Add: %v", err)
	}
	if err := store.Add(ctx, teacher("t2", "Bob")); err != nil {
		t.Fatalf("Add: %v", err)
	}

	all, err := store.All(ctx)
	if err != nil {
		t.Fatalf("All: %v", err)
	}
	if len(all) != 2 {
		t.Fatalf("len(All) = %d, want 2", len(all))
	}
}

func TestStore_AddRejectsDuplicateID(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()

	if err := store.Add(ctx, teacher("t1", "Alice")); err != nil {
		t.Fatalf("Add: %v", err)
	}

	err := store.Add(ctx, teacher("t1", "Impostor"))
	if err == nil {
		t.Fatal("expected the duplicate id to be rejected")
	}
	var appErr *apperrors.AppError
	if !errors.As(err, &appErr) || appErr.Code != apperrors.CodeConflict {
		t.Fatalf("err = %v, want a conflict AppError", err)
	}

	all, err := store.All(ctx)
	if err != nil {
		t.Fatalf("All: %v", err)
	}
	if len(all) != 1 || all[0].Name != "Alice" {
		t.Fatalf("All = %+v, want the original record only", all)
	}
}

func TestStore_ByID(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()

	if err := store.Add(ctx, teacher("t1", "Alice")); err != nil {
		t.Fatalf("Add: %v", err)
	}

	got, found, err := store.ByID(ctx, "t1")
	if err != nil {
		t.Fatalf("ByID: %v", err)
	}
	if !found || got.Name != "Alice" {
		t.Fatalf("ByID = %+v found=%v", got, found)
	}

	if _, found, _ := store.ByID(ctx, "missing"); found {
		t.Fatal("found a record that was never added")
	}
}

func TestStore_UpdateMissingID(t *testing.T) {
	store, _ := newTestStore(t)

	err := store.Update(context.Background(), "missing", func(existing model.Teacher) model.Teacher {
		return existing
	})
	var appErr *apperrors.AppError
	if !errors.As(err, &appErr) || appErr.Code != apperrors.CodeNotFound {
		t.Fatalf("err = %v, want a not-found AppError", err)
	}
}

func TestStore_RemoveMissingIsNoOp(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()

	if err := store.Add(ctx, teacher("t1", "Alice")); err != nil {
		t.Fatalf("Add: %v", err)
	}
	if err := store.Remove(ctx, "missing"); err != nil {
		t.Fatalf("Remove of a missing id must be a no-op, got %v", err)
	}

	all, _ := store.All(ctx)
	if len(all) != 1 {
		t.Fatalf("len(All) = %d, want 1", len(all))
	}
}

func TestStore_MutateAbandonsOnError(t *testing.T) {
	store, tier := newTestStore(t)
	ctx := context.Background()

	if err := store.Add(ctx, teacher("t1", "Alice")); err != nil {
		t.Fatalf("Add: %v", err)
	}
	writesBefore := tier.writes

	sentinel := errors.New("rejected")
	err := store.Mutate(ctx, func(items []model.Teacher) ([]model.Teacher, error) {
		return nil, sentinel
	})
	if !errors.Is(err, sentinel) {
		t.Fatalf("err = %v, want the sentinel", err)
	}
	if tier.writes != writesBefore {
		t.Fatal("abandoned mutation still wrote through")
	}
}

func TestStore_AllServesCachedSnapshot(t *testing.T) {
	store, tier := newTestStore(t)
	ctx := context.Background()

	if err := store.Add(ctx, teacher("t1", "Alice")); err != nil {
		t.Fatalf("Add: %v", err)
	}
	if _, err := store.All(ctx); err != nil {
		t.Fatalf("All: %v", err)
	}

	// Mutate the tier behind the cache's back; a fresh snapshot must keep
	// serving until invalidation or expiry.
	tier.mu.Lock()
	tier.data[model.CollectionTeachers] = []byte(`[]`)
	tier.mu.Unlock()

	all, err := store.All(ctx)
	if err != nil {
		t.Fatalf("All: %v", err)
	}
	if len(all) != 1 {
		t.Fatalf("len(All) = %d, want the cached snapshot", len(all))
	}
}

func TestStore_AllReturnsClone(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()

	if err := store.Add(ctx, teacher("t1", "Alice")); err != nil {
		t.Fatalf("Add: %v", err)
	}

	first, err := store.All(ctx)
	if err != nil {
		t.Fatalf("All: %v", err)
	}
	first[0].Name = "Mutated"

	second, err := store.All(ctx)
	if err != nil {
		t.Fatalf("All: %v", err)
	}
	if second[0].Name != "Alice" {
		t.Fatal("caller mutation leaked into the cached snapshot")
	}
}
