package cache

import (
	"context"
	"testing"
	"time"
)

func TestMemoryCache_SetGet(t *testing.T) {
	c := NewMemoryCache()
	ctx := context.Background()

	if _, ok := c.Get(ctx, "missing"); ok {
		t.Fatal("expected miss for unknown key")
	}

	c.Set(ctx, "k", []byte("v"), time.Minute)
	got, ok := c.Get(ctx, "k")
	if !ok || string(got) != "v" {
		t.Fatalf("expected hit with %q, got %q ok=%v", "v", got, ok)
	}
}

func TestMemoryCache_Expiry(t *testing.T) {
	c := NewMemoryCache()
	ctx := context.Background()

	current := time.Now()
	c.now = func() time.Time { return current }

	c.Set(ctx, "k", []byte("v"), 2*time.Minute)
	if _, ok := c.Get(ctx, "k"); !ok {
		t.Fatal("expected hit before expiry")
	}

	current = current.Add(3 * time.Minute)
	if _, ok := c.Get(ctx, "k"); ok {
		t.Fatal("expected miss after expiry")
	}
}

func TestMemoryCache_Delete(t *testing.T) {
	c := NewMemoryCache()
	ctx := context.Background()

	c.Set(ctx, "k", []byte("v"), time.Minute)
	c.Delete(ctx, "k")
	if _, ok := c.Get(ctx, "k"); ok {
		t.Fatal("expected miss after delete")
	}
}

func TestMemoryCache_NonPositiveTTL(t *testing.T) {
	c := NewMemoryCache()
	ctx := context.Background()

	c.Set(ctx, "k", []byte("v"), 0)
	if _, ok := c.Get(ctx, "k"); ok {
		t.Fatal("zero ttl must not store")
	}
}

func TestKey(t *testing.T) {
	if got := Key("businesses", "all", "page=1;size=25"); got != "businesses:all:page=1;size=25" {
		t.Fatalf("unexpected key %q", got)
	}
}
