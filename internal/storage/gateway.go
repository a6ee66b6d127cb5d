package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"coursebook/pkg/logger"
)

// Gateway reads and writes named collections across two tiers: the
// user-granted directory (primary) and the embedded key-value store
// (fallback). Reads degrade tier by tier down to the caller's default and
// never surface storage errors; a write fails only when both tiers refuse
// it.
//
// Tier selection is sticky per process start: the primary is resolved once
// from the registry at boot and re-pointed only by an explicit directory
// selection.
type Gateway struct {
	log      *logger.Logger
	timeout  time.Duration
	fallback Tier

	mu      sync.RWMutex
	primary Tier // nil until a directory is granted

	locksMu sync.Mutex
	locks   map[string]*sync.Mutex
}

func NewGateway(primary Tier, fallback Tier, timeout time.Duration, log *logger.Logger) *Gateway {
	return &Gateway{
		log:      log,
		timeout:  timeout,
		fallback: fallback,
		primary:  primary,
		locks:    make(map[string]*sync.Mutex),
	}
}

// SetPrimary re-points the primary tier after a new directory grant.
func (g *Gateway) SetPrimary(t Tier) {
	g.mu.Lock()
	g.primary = t
	g.mu.Unlock()
}

// ActiveTier names the tier that will serve the next request.
func (g *Gateway) ActiveTier() string {
	g.mu.RLock()
	defer g.mu.RUnlock()
	if g.primary != nil {
		return g.primary.Name()
	}
	return g.fallback.Name()
}

// Read decodes the named collection into dst (a pointer to a slice). The
// caller's pre-populated dst is the default: on primary and fallback
// failure dst is left untouched. Only context cancellation is reported as
// an error.
func (g *Gateway) Read(ctx context.Context, collection string, dst any) error {
	ctx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	g.mu.RLock()
	primary := g.primary
	g.mu.RUnlock()

	if primary != nil {
		payload, st, err := primary.Read(ctx, collection)
		switch st {
		case StatusOK:
			if payload == nil {
				return nil
			}
			decodeErr := json.Unmarshal(payload, dst)
			if decodeErr == nil {
				return nil
			}
			g.log.Warn("Primary tier payload unreadable, trying fallback",
				"collection", collection, "error", decodeErr)
		case StatusUnavailable:
			g.log.Debug("Primary tier unavailable for read", "collection", collection)
		case StatusFailed:
			g.log.Warn("Primary tier read failed, trying fallback",
				"collection", collection, "error", err)
		}
	}

	payload, st, err := g.fallback.Read(ctx, collection)
	if st != StatusOK {
		g.log.Warn("Fallback tier read failed, serving default",
			"collection", collection, "status", st.String(), "error", err)
		return ctx.Err()
	}
	if payload == nil {
		return nil
	}
	if decodeErr := json.Unmarshal(payload, dst); decodeErr != nil {
		g.log.Warn("Fallback tier payload unreadable, serving default",
			"collection", collection, "error", decodeErr)
	}
	return nil
}

// Write replaces the named collection. The first write to a collection
// creates its backing unit on whichever tier takes it. An error is returned
// only when both tiers fail, so a write is never silently dropped while
// either tier is reachable.
func (g *Gateway) Write(ctx context.Context, collection string, src any) error {
	ctx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	payload, err := json.MarshalIndent(src, "", "  ")
	if err != nil {
		return fmt.Errorf("encode collection %q: %w", collection, err)
	}

	g.mu.RLock()
	primary := g.primary
	g.mu.RUnlock()

	if primary != nil {
		st, err := primary.Write(ctx, collection, payload)
		if st == StatusOK {
			return nil
		}
		g.log.Warn("Primary tier write failed, writing fallback",
			"collection", collection, "status", st.String(), "error", err)
	}

	st, err := g.fallback.Write(ctx, collection, payload)
	if st == StatusOK {
		return nil
	}
	g.log.Error("Write lost: both tiers failed",
		"collection", collection, "status", st.String(), "error", err)
	return fmt.Errorf("write collection %q: all tiers failed: %w", collection, err)
}

// WithLock serializes read-modify-write cycles on one collection. Every
// mutation path must run its read, compute and write steps inside fn;
// concurrent mutations on different collections do not contend.
func (g *Gateway) WithLock(collection string, fn func() error) error {
	mu := g.collectionLock(collection)
	mu.Lock()
	defer mu.Unlock()
	return fn()
}

func (g *Gateway) collectionLock(collection string) *sync.Mutex {
	g.locksMu.Lock()
	defer g.locksMu.Unlock()
	mu, ok := g.locks[collection]
	if !ok {
		mu = &sync.Mutex{}
		g.locks[collection] = mu
	}
	return mu
}
