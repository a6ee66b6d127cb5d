// Package cache keeps per-collection snapshots in memory so repeated reads
// do not round-trip the persistence gateway. Entries expire after a TTL and
// every mutation path invalidates its collection after a successful write.
package cache

import (
	"context"
	"sync"
	"time"
)

// DefaultTTL matches how long a snapshot may serve reads without a refresh.
const DefaultTTL = 5 * time.Minute

type call struct {
	done chan struct{}
	val  any
	err  error
}

type entry struct {
	data        any
	loaded      bool
	refreshedAt time.Time
	loading     bool
	pending     *call
}

// Cache is an explicit dependency constructed at startup and injected into
// the services that need it; independent instances keep tests isolated.
type Cache struct {
	ttl time.Duration
	now func() time.Time

	mu      sync.Mutex
	entries map[string]*entry
}

func New(ttl time.Duration) *Cache {
	return NewWithClock(ttl, time.Now)
}

// NewWithClock injects the clock, letting TTL tests advance time directly.
func NewWithClock(ttl time.Duration, now func() time.Time) *Cache {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Cache{
		ttl:     ttl,
		now:     now,
		entries: make(map[string]*entry),
	}
}

// Get returns the last stored snapshot, or nil when the collection has
// never been set. Freshness is IsLoaded's business, not Get's.
func (c *Cache) Get(name string) any {
	c.mu.Lock()
	defer c.mu.Unlock()
	e, ok := c.entries[name]
	if !ok {
		return nil
	}
	return e.data
}

// Set replaces the snapshot, marks it loaded and stamps the refresh time.
func (c *Cache) Set(name string, data any) {
	c.mu.Lock()
	defer c.mu.Unlock()
	e := c.ensure(name)
	e.data = data
	e.loaded = true
	e.refreshedAt = c.now()
}

// IsLoaded reports whether the snapshot may serve reads: set at some point
// and still within the TTL. A false result means "re-fetch through the
// gateway"; callers never inspect timestamps themselves.
func (c *Cache) IsLoaded(name string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	e, ok := c.entries[name]
	if !ok || !e.loaded {
		return false
	}
	return c.now().Sub(e.refreshedAt) <= c.ttl
}

// IsLoading reports an in-flight fetch: either a pending GetOrLoad call or
// the caller-managed advisory flag.
func (c *Cache) IsLoading(name string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	e, ok := c.entries[name]
	if !ok {
		return false
	}
	return e.pending != nil || e.loading
}

// SetLoading stores the advisory in-flight flag. It does not provide mutual
// exclusion; GetOrLoad is the coalescing path.
func (c *Cache) SetLoading(name string, loading bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.ensure(name).loading = loading
}

// Invalidate clears the loaded flag and resets the refresh time so the next
// read goes through the gateway. The stale snapshot is kept for callers
// that explicitly want last-known data via Get.
func (c *Cache) Invalidate(name string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	e, ok := c.entries[name]
	if !ok {
		return
	}
	e.loaded = false
	e.refreshedAt = time.Time{}
}

// ClearAll resets every collection's snapshot, flags and timestamp. Used on
// full-context reset, e.g. switching the storage directory.
func (c *Cache) ClearAll() {
	c.mu.Lock()
	defer c.mu.Unlock()
	for name, e := range c.entries {
		if e.pending != nil {
			// Let the in-flight fetch finish against the old context; its
			// result lands in a fresh entry and ages out normally.
			continue
		}
		delete(c.entries, name)
	}
}

// GetOrLoad returns the fresh snapshot or fetches it exactly once for all
// concurrent callers: the first caller runs fetch, the rest wait on the
// same pending handle. This is the single-flight read path the advisory
// loading flag cannot provide.
func (c *Cache) GetOrLoad(ctx context.Context, name string, fetch func(context.Context) (any, error)) (any, error) {
	c.mu.Lock()
	e := c.ensure(name)
	if e.loaded && c.now().Sub(e.refreshedAt) <= c.ttl {
		data := e.data
		c.mu.Unlock()
		return data, nil
	}
	if e.pending != nil {
		pending := e.pending
		c.mu.Unlock()
		select {
		case <-pending.done:
			return pending.val, pending.err
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	pending := &call{done: make(chan struct{})}
	e.pending = pending
	c.mu.Unlock()

	val, err := fetch(ctx)

	c.mu.Lock()
	pending.val, pending.err = val, err
	e = c.ensure(name)
	if err == nil {
		e.data = val
		e.loaded = true
		e.refreshedAt = c.now()
	}
	if e.pending == pending {
		e.pending = nil
	}
	c.mu.Unlock()
	close(pending.done)

	return val, err
}

func (c *Cache) ensure(name string) *entry {
	e, ok := c.entries[name]
	if !ok {
		e = &entry{}
		c.entries[name] = e
	}
	return e
}
