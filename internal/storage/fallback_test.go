package storage

import (
	"bytes"
	"context"
	"path/filepath"
	"testing"
)

func TestKVTier_RoundTrip(t *testing.T) {
	tier, err := NewKVTier(filepath.Join(t.TempDir(), "fallback.db"))
	if err != nil {
		t.Fatalf("NewKVTier: %v", err)
	}
	defer tier.Close()
	ctx := context.Background()

	payload := []byte(`[{"id":"1"}]`)
	if st, err := tier.Write(ctx, "teachers", payload); st != StatusOK {
		t.Fatalf("Write status = %s, err = %v", st, err)
	}

	got, st, err := tier.Read(ctx, "teachers")
	if err != nil || st != StatusOK {
		t.Fatalf("Read status = %s, err = %v", st, err)
	}
	if !bytes.Equal(got, payload) {
		t.Fatalf("Read = %q, want %q", got, payload)
	}

	// Overwrite replaces, never appends.
	next := []byte(`[]`)
	if st, err := tier.Write(ctx, "teachers", next); st != StatusOK {
		t.Fatalf("second Write status = %s, err = %v", st, err)
	}
	got, _, _ = tier.Read(ctx, "teachers")
	if !bytes.Equal(got, next) {
		t.Fatalf("Read after overwrite = %q, want %q", got, next)
	}
}

func TestKVTier_UnwrittenCollection(t *testing.T) {
	tier, err := NewKVTier(filepath.Join(t.TempDir(), "fallback.db"))
	if err != nil {
		t.Fatalf("NewKVTier: %v", err)
	}
	defer tier.Close()

	payload, st, err := tier.Read(context.Background(), "never")
	if err != nil || st != StatusOK {
		t.Fatalf("Read status = %s, err = %v", st, err)
	}
	if payload != nil {
		t.Fatalf("payload = %q, want nil", payload)
	}
}

func TestKVTier_QuotaRejectsOversizedPayload(t *testing.T) {
	tier, err := NewKVTier(filepath.Join(t.TempDir(), "fallback.db"))
	if err != nil {
		t.Fatalf("NewKVTier: %v", err)
	}
	defer tier.Close()

	oversized := make([]byte, maxFallbackPayload+1)
	st, err := tier.Write(context.Background(), "teachers", oversized)
	if st != StatusFailed {
		t.Fatalf("Write status = %s, want failed", st)
	}
	if err == nil {
		t.Fatal("expected a quota error")
	}
}

func TestKVTier_PersistsAcrossReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "fallback.db")
	ctx := context.Background()

	tier, err := NewKVTier(path)
	if err != nil {
		t.Fatalf("NewKVTier: %v", err)
	}
	if st, err := tier.Write(ctx, "students", []byte(`[{"id":"s1"}]`)); st != StatusOK {
		t.Fatalf("Write status = %s, err = %v", st, err)
	}
	if err := tier.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	reopened, err := NewKVTier(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer reopened.Close()

	payload, st, err := reopened.Read(ctx, "students")
	if err != nil || st != StatusOK {
		t.Fatalf("Read status = %s, err = %v", st, err)
	}
	if !bytes.Contains(payload, []byte("s1")) {
		t.Fatalf("payload = %q, want the persisted record", payload)
	}
}
