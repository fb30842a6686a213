package cache

import (
	"context"
	"testing"
	"time"
)

func TestMemoryCache(t *testing.T) {
	ctx := context.Background()
	c, err := NewMemoryCache(2)
	if err != nil {
		t.Fatalf("NewMemoryCache() error = %v", err)
	}
	defer c.Close()

	buf := []byte("one")
	if err := c.Set(ctx, "a", buf, time.Hour); err != nil {
		t.Fatal(err)
	}
	buf[0] = 'X'

	data, hit, err := c.Get(ctx, "a")
	if err != nil || !hit {
		t.Fatalf("Get() = hit %v, err %v", hit, err)
	}
	if string(data) != "one" {
		t.Errorf("Get() = %s, want a copy of the stored value", data)
	}

	if err := c.Delete(ctx, "a"); err != nil {
		t.Fatal(err)
	}
	if _, hit, _ := c.Get(ctx, "a"); hit {
		t.Error("Get() after Delete should miss")
	}
}

func TestMemoryCacheEviction(t *testing.T) {
	ctx := context.Background()
	c, err := NewMemoryCache(2)
	if err != nil {
		t.Fatal(err)
	}

	_ = c.Set(ctx, "a", []byte("1"), 0)
	_ = c.Set(ctx, "b", []byte("2"), 0)
	// Touch a so b becomes least recently used.
	_, _, _ = c.Get(ctx, "a")
	_ = c.Set(ctx, "c", []byte("3"), 0)

	if c.Len() != 2 {
		t.Errorf("Len() = %d, want 2", c.Len())
	}
	if _, hit, _ := c.Get(ctx, "b"); hit {
		t.Error("least recently used entry should be evicted")
	}
	if _, hit, _ := c.Get(ctx, "a"); !hit {
		t.Error("recently used entry should survive")
	}
}

func TestMemoryCacheExpiry(t *testing.T) {
	ctx := context.Background()
	c, err := NewMemoryCache(0)
	if err != nil {
		t.Fatal(err)
	}
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	c.now = func() time.Time { return now }

	_ = c.Set(ctx, "k", []byte("v"), time.Minute)
	if _, hit, _ := c.Get(ctx, "k"); !hit {
		t.Error("fresh entry should hit")
	}

	now = now.Add(2 * time.Minute)
	if _, hit, _ := c.Get(ctx, "k"); hit {
		t.Error("expired entry should miss")
	}
	if c.Len() != 0 {
		t.Errorf("Len() = %d, want expired entry removed", c.Len())
	}
}

func TestMemoryCacheClose(t *testing.T) {
	ctx := context.Background()
	c, _ := NewMemoryCache(4)
	_ = c.Set(ctx, "k", []byte("v"), 0)
	if err := c.Close(); err != nil {
		t.Fatal(err)
	}
	if c.Len() != 0 {
		t.Errorf("Len() after Close = %d, want 0", c.Len())
	}
}
