package cache

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

// fakeClock lets TTL tests advance time without sleeping.
type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Date(2026, 9, 1, 10, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.now = c.now.Add(d)
	c.mu.Unlock()
}

func TestCache_SetGetIsLoaded(t *testing.T) {
	clock := newFakeClock()
	c := NewWithClock(DefaultTTL, clock.Now)

	if c.IsLoaded("teachers") {
		t.Fatal("fresh cache reports loaded")
	}
	if c.Get("teachers") != nil {
		t.Fatal("fresh cache returned a snapshot")
	}

	c.Set("teachers", []string{"t1"})
	if !c.IsLoaded("teachers") {
		t.Fatal("snapshot not reported loaded after Set")
	}
	got, ok := c.Get("teachers").([]string)
	if !ok || len(got) != 1 {
		t.Fatalf("Get = %v, want [t1]", c.Get("teachers"))
	}
}

func TestCache_TTLExpiry(t *testing.T) {
	clock := newFakeClock()
	c := NewWithClock(5*time.Minute, clock.Now)

	c.Set("teachers", []string{"t1"})

	clock.Advance(5 * time.Minute)
	if !c.IsLoaded("teachers") {
		t.Fatal("snapshot expired exactly at the TTL boundary, want inclusive")
	}

	clock.Advance(time.Second)
	if c.IsLoaded("teachers") {
		t.Fatal("snapshot still loaded past the TTL")
	}
	if c.Get("teachers") == nil {
		t.Fatal("expiry dropped the stale snapshot, want it kept for Get")
	}
}

func TestCache_InvalidateKeepsSnapshot(t *testing.T) {
	clock := newFakeClock()
	c := NewWithClock(DefaultTTL, clock.Now)

	c.Set("schedules", []int{1, 2})
	c.Invalidate("schedules")

	if c.IsLoaded("schedules") {
		t.Fatal("invalidated entry still reported loaded")
	}
	if c.Get("schedules") == nil {
		t.Fatal("invalidate dropped the stale snapshot")
	}
}

func TestCache_ClearAll(t *testing.T) {
	clock := newFakeClock()
	c := NewWithClock(DefaultTTL, clock.Now)

	c.Set("teachers", 1)
	c.Set("students", 2)
	c.ClearAll()

	for _, name := range []string{"teachers", "students"} {
		if c.IsLoaded(name) {
			t.Errorf("%s still loaded after ClearAll", name)
		}
		if c.Get(name) != nil {
			t.Errorf("%s snapshot survived ClearAll", name)
		}
	}
}

func TestCache_LoadingFlag(t *testing.T) {
	clock := newFakeClock()
	c := NewWithClock(DefaultTTL, clock.Now)

	if c.IsLoading("teachers") {
		t.Fatal("fresh entry reported loading")
	}
	c.SetLoading("teachers", true)
	if !c.IsLoading("teachers") {
		t.Fatal("advisory loading flag not reported")
	}
	c.SetLoading("teachers", false)
	if c.IsLoading("teachers") {
		t.Fatal("loading flag not cleared")
	}
}

func TestCache_GetOrLoad_CachesResult(t *testing.T) {
	clock := newFakeClock()
	c := NewWithClock(5*time.Minute, clock.Now)

	var calls int32
	fetch := func(context.Context) (any, error) {
		atomic.AddInt32(&calls, 1)
		return "snapshot", nil
	}

	for i := 0; i < 3; i++ {
		v, err := c.GetOrLoad(context.Background(), "teachers", fetch)
		if err != nil {
			t.Fatalf("GetOrLoad: %v", err)
		}
		if v != "snapshot" {
			t.Fatalf("GetOrLoad = %v", v)
		}
	}
	if n := atomic.LoadInt32(&calls); n != 1 {
		t.Fatalf("fetch ran %d times, want 1", n)
	}

	clock.Advance(6 * time.Minute)
	if _, err := c.GetOrLoad(context.Background(), "teachers", fetch); err != nil {
		t.Fatalf("GetOrLoad after expiry: %v", err)
	}
	if n := atomic.LoadInt32(&calls); n != 2 {
		t.Fatalf("fetch ran %d times after expiry, want 2", n)
	}
}

func TestCache_GetOrLoad_SingleFlight(t *testing.T) {
	clock := newFakeClock()
	c := NewWithClock(DefaultTTL, clock.Now)

	var calls int32
	release := make(chan struct{})
	fetch := func(context.Context) (any, error) {
		atomic.AddInt32(&calls, 1)
		<-release
		return 42, nil
	}

	const waiters = 8
	var wg sync.WaitGroup
	results := make([]any, waiters)
	for i := 0; i < waiters; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			v, err := c.GetOrLoad(context.Background(), "schedules", fetch)
			if err != nil {
				t.Errorf("waiter %d: %v", i, err)
			}
			results[i] = v
		}(i)
	}

	// Give every goroutine a chance to join the pending call.
	time.Sleep(50 * time.Millisecond)
	close(release)
	wg.Wait()

	if n := atomic.LoadInt32(&calls); n != 1 {
		t.Fatalf("fetch ran %d times, want 1", n)
	}
	for i, v := range results {
		if v != 42 {
			t.Errorf("waiter %d got %v, want 42", i, v)
		}
	}
}

func TestCache_GetOrLoad_ErrorNotCached(t *testing.T) {
	clock := newFakeClock()
	c := NewWithClock(DefaultTTL, clock.Now)

	boom := errors.New("boom")
	var calls int32
	failing := func(context.Context) (any, error) {
		atomic.AddInt32(&calls, 1)
		return nil, boom
	}

	if _, err := c.GetOrLoad(context.Background(), "payments", failing); !errors.Is(err, boom) {
		t.Fatalf("err = %v, want boom", err)
	}
	if c.IsLoaded("payments") {
		t.Fatal("failed fetch marked the entry loaded")
	}

	if _, err := c.GetOrLoad(context.Background(), "payments", failing); !errors.Is(err, boom) {
		t.Fatalf("err = %v, want boom", err)
	}
	if n := atomic.LoadInt32(&calls); n != 2 {
		t.Fatalf("fetch ran %d times, want a retry per call", n)
	}
}

func TestCache_GetOrLoad_ContextCancelledWaiter(t *testing.T) {
	clock := newFakeClock()
	c := NewWithClock(DefaultTTL, clock.Now)

	release := make(chan struct{})
	started := make(chan struct{})
	go func() {
		_, _ = c.GetOrLoad(context.Background(), "teachers", func(context.Context) (any, error) {
			close(started)
			<-release
			return "late", nil
		})
	}()
	<-started

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := c.GetOrLoad(ctx, "teachers", func(context.Context) (any, error) {
		t.Error("second fetch must not run while one is pending")
		return nil, nil
	})
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("err = %v, want context.Canceled", err)
	}
	close(release)
}
