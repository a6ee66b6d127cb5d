// Package entity provides a typed store over the persistence gateway and
// the TTL cache. Thin per-entity services compose it with their own filter
// logic; the schedules service adds conflict checking on top of Mutate.
package entity

import (
	"context"
	"fmt"
	"slices"

	"coursebook/internal/cache"
	"coursebook/internal/storage"
	apperrors "coursebook/pkg/errors"
	"coursebook/pkg/model"
)

type Store[T model.Entity] struct {
	name  string
	gw    *storage.Gateway
	cache *cache.Cache
}

func NewStore[T model.Entity](name string, gw *storage.Gateway, c *cache.Cache) *Store[T] {
	return &Store[T]{name: name, gw: gw, cache: c}
}

func (s *Store[T]) Collection() string { return s.name }

// All returns the collection, serving a fresh cache snapshot when one
// exists and coalescing concurrent gateway reads otherwise. The returned
// slice is the caller's to mutate.
func (s *Store[T]) All(ctx context.Context) ([]T, error) {
	v, err := s.cache.GetOrLoad(ctx, s.name, func(ctx context.Context) (any, error) {
		return s.readAll(ctx)
	})
	if err != nil {
		return nil, err
	}
	items, ok := v.([]T)
	if !ok {
		return nil, fmt.Errorf("cache snapshot for %q has unexpected type %T", s.name, v)
	}
	return slices.Clone(items), nil
}

func (s *Store[T]) ByID(ctx context.Context, id string) (T, bool, error) {
	var zero T
	items, err := s.All(ctx)
	if err != nil {
		return zero, false, err
	}
	for _, item := range items {
		if item.EntityID() == id {
			return item, true, nil
		}
	}
	return zero, false, nil
}

// Add appends one record. Duplicate ids are rejected: id uniqueness within
// a collection is a real invariant here, not a caller convention.
func (s *Store[T]) Add(ctx context.Context, item T) error {
	return s.Mutate(ctx, func(items []T) ([]T, error) {
		for _, existing := range items {
			if existing.EntityID() == item.EntityID() {
				return nil, apperrors.Conflict(
					fmt.Sprintf("record %q already exists in %s", item.EntityID(), s.name))
			}
		}
		return append(items, item), nil
	})
}

// Update merges a partial change into the record with the given id via the
// caller-supplied merge function.
func (s *Store[T]) Update(ctx context.Context, id string, merge func(T) T) error {
	return s.Mutate(ctx, func(items []T) ([]T, error) {
		for i, existing := range items {
			if existing.EntityID() == id {
				items[i] = merge(existing)
				return items, nil
			}
		}
		return nil, apperrors.NotFoundWithID(s.name, id)
	})
}

// Remove filters the record out and persists. A missing id is a no-op;
// removal cannot violate any invariant.
func (s *Store[T]) Remove(ctx context.Context, id string) error {
	return s.Mutate(ctx, func(items []T) ([]T, error) {
		kept := slices.DeleteFunc(items, func(item T) bool {
			return item.EntityID() == id
		})
		return kept, nil
	})
}

// Mutate runs one serialized read-modify-write cycle: fresh gateway read,
// fn computes the next state, write-through, cache invalidation. Returning
// an error from fn abandons the cycle without persisting.
func (s *Store[T]) Mutate(ctx context.Context, fn func([]T) ([]T, error)) error {
	return s.gw.WithLock(s.name, func() error {
		items, err := s.readAll(ctx)
		if err != nil {
			return err
		}
		next, err := fn(items)
		if err != nil {
			return err
		}
		if err := s.gw.Write(ctx, s.name, next); err != nil {
			return apperrors.Unavailable(
				fmt.Sprintf("failed to persist %s", s.name), err)
		}
		s.cache.Invalidate(s.name)
		return nil
	})
}

func (s *Store[T]) readAll(ctx context.Context) ([]T, error) {
	items := make([]T, 0)
	if err := s.gw.Read(ctx, s.name, &items); err != nil {
		return nil, err
	}
	return items, nil
}
