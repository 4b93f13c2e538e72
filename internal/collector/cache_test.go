package collector

import (
	"testing"
	"time"
)

func TestCache_HitWithinTTL(t *testing.T) {
	c := NewCache(time.Minute, 10)
	base := time.Date(2025, 6, 2, 12, 0, 0, 0, time.UTC)
	c.now = func() time.Time { return base }

	c.Set("bars:TSLA:90", 42)
	v, ok := c.Get("bars:TSLA:90")
	if !ok || v.(int) != 42 {
		t.Errorf("expected fresh hit with 42, got %v %v", v, ok)
	}
}

func TestCache_MissAfterTTL(t *testing.T) {
	c := NewCache(time.Minute, 10)
	base := time.Date(2025, 6, 2, 12, 0, 0, 0, time.UTC)
	c.now = func() time.Time { return base }

	c.Set("bars:TSLA:90", 42)

	c.now = func() time.Time { return base.Add(61 * time.Second) }
	if _, ok := c.Get("bars:TSLA:90"); ok {
		t.Error("expected miss after TTL elapsed")
	}
}

func TestCache_EvictsOldestAtCapacity(t *testing.T) {
	c := NewCache(time.Minute, 2)

	c.Set("a", 1)
	c.Set("b", 2)
	c.Set("c", 3)

	if _, ok := c.Get("a"); ok {
		t.Error("expected oldest entry evicted at capacity")
	}
	if _, ok := c.Get("b"); !ok {
		t.Error("expected newer entry retained")
	}
	if _, ok := c.Get("c"); !ok {
		t.Error("expected newest entry retained")
	}
}

func TestCache_UpdateDoesNotEvict(t *testing.T) {
	c := NewCache(time.Minute, 2)

	c.Set("a", 1)
	c.Set("b", 2)
	c.Set("a", 10)

	v, ok := c.Get("a")
	if !ok || v.(int) != 10 {
		t.Errorf("expected updated value 10, got %v %v", v, ok)
	}
	if _, ok := c.Get("b"); !ok {
		t.Error("in-place update must not evict other entries")
	}
}

func TestCacheKey(t *testing.T) {
	if got := CacheKey("bars", "TSLA", 90); got != "bars:TSLA:90" {
		t.Errorf("unexpected key %q", got)
	}
}
