package cache

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
)

var discardLogger = zerolog.Nop()

func TestCache_GetOrLoad(t *testing.T) {
	c := New(NewMemoryStore(), time.Hour, discardLogger)

	loads := 0
	loader := func(context.Context) ([]byte, error) {
		loads++
		return []byte("payload"), nil
	}

	for i := 0; i < 3; i++ {
		value, err := c.GetOrLoad(context.Background(), "key", loader)
		if err != nil {
			t.Fatalf("get: %v", err)
		}
		if string(value) != "payload" {
			t.Fatalf("unexpected value %q", value)
		}
	}
	if loads != 1 {
		t.Errorf("expected 1 load within the TTL, got %d", loads)
	}
}

func TestCache_TTLExpiry(t *testing.T) {
	store := NewMemoryStore()
	current := time.Now()
	store.now = func() time.Time { return current }
	c := New(store, time.Hour, discardLogger)

	loads := 0
	loader := func(context.Context) ([]byte, error) {
		loads++
		return []byte("payload"), nil
	}

	if _, err := c.GetOrLoad(context.Background(), "key", loader); err != nil {
		t.Fatalf("get: %v", err)
	}

	current = current.Add(59 * time.Minute)
	if _, err := c.GetOrLoad(context.Background(), "key", loader); err != nil {
		t.Fatalf("get: %v", err)
	}
	if loads != 1 {
		t.Fatalf("entry expired early, %d loads", loads)
	}

	current = current.Add(2 * time.Minute)
	if _, err := c.GetOrLoad(context.Background(), "key", loader); err != nil {
		t.Fatalf("get: %v", err)
	}
	if loads != 2 {
		t.Errorf("expected a reload after expiry, got %d loads", loads)
	}
}

func TestCache_Invalidate(t *testing.T) {
	c := New(NewMemoryStore(), time.Hour, discardLogger)

	loads := 0
	loader := func(context.Context) ([]byte, error) {
		loads++
		return []byte("payload"), nil
	}

	if _, err := c.GetOrLoad(context.Background(), "key", loader); err != nil {
		t.Fatalf("get: %v", err)
	}
	if err := c.Invalidate(context.Background(), "key"); err != nil {
		t.Fatalf("invalidate: %v", err)
	}
	if _, err := c.GetOrLoad(context.Background(), "key", loader); err != nil {
		t.Fatalf("get: %v", err)
	}
	if loads != 2 {
		t.Errorf("expected a reload after invalidation, got %d loads", loads)
	}
}

func TestCache_LoaderErrorPropagates(t *testing.T) {
	c := New(NewMemoryStore(), time.Hour, discardLogger)

	boom := errors.New("directory unavailable")
	_, err := c.GetOrLoad(context.Background(), "key", func(context.Context) ([]byte, error) {
		return nil, boom
	})
	if !errors.Is(err, boom) {
		t.Fatalf("expected loader error, got %v", err)
	}
}

// brokenStore fails every operation, standing in for a Redis outage.
type brokenStore struct{}

func (brokenStore) Get(context.Context, string) ([]byte, error) {
	return nil, errors.New("connection refused")
}

func (brokenStore) Set(context.Context, string, []byte, time.Duration) error {
	return errors.New("connection refused")
}

func (brokenStore) Del(context.Context, ...string) error {
	return errors.New("connection refused")
}

func TestCache_StoreOutageDegradesToLoad(t *testing.T) {
	c := New(brokenStore{}, time.Hour, discardLogger)

	value, err := c.GetOrLoad(context.Background(), "key", func(context.Context) ([]byte, error) {
		return []byte("payload"), nil
	})
	if err != nil {
		t.Fatalf("a store outage must not fail the read: %v", err)
	}
	if string(value) != "payload" {
		t.Errorf("unexpected value %q", value)
	}
}
