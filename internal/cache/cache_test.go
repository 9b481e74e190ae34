package cache

import (
	"strings"
	"testing"
	"time"
)

func TestKey(t *testing.T) {
	k1 := Key("verify:author:Albert Camus")
	k2 := Key("verify:author:Albert Camus")
	k3 := Key("verify:author:albert camus")

	if k1 != k2 {
		t.Error("same descriptor must map to the same key")
	}
	if k1 == k3 {
		t.Error("distinct descriptors must map to distinct keys")
	}
	if !strings.HasPrefix(k1, "bibliocheck:v1:") {
		t.Errorf("key %q missing version prefix", k1)
	}
}

func TestMemoryStore(t *testing.T) {
	c := newMemoryStore(time.Minute)

	if _, found := c.Get("missing"); found {
		t.Error("unexpected hit on empty store")
	}

	if err := c.Set("k", []byte("v"), time.Minute); err != nil {
		t.Fatalf("Set: %v", err)
	}
	got, found := c.Get("k")
	if !found || string(got) != "v" {
		t.Errorf("Get = %q, %v", got, found)
	}

	if err := c.Delete("k"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, found := c.Get("k"); found {
		t.Error("hit after Delete")
	}
}

func TestMemoryStore_Expiry(t *testing.T) {
	c := newMemoryStore(time.Minute)
	if err := c.Set("k", []byte("v"), 10*time.Millisecond); err != nil {
		t.Fatalf("Set: %v", err)
	}
	time.Sleep(30 * time.Millisecond)
	if _, found := c.Get("k"); found {
		t.Error("hit after TTL expiry")
	}
}

func TestDiskCache(t *testing.T) {
	dir := t.TempDir()
	c := NewDiskCache(dir, time.Minute)

	if err := c.Set("bibliocheck:v1:abc", []byte("payload"), time.Minute); err != nil {
		t.Fatalf("Set: %v", err)
	}

	// A fresh instance over the same directory sees the entry.
	c2 := NewDiskCache(dir, time.Minute)
	got, found := c2.Get("bibliocheck:v1:abc")
	if !found || string(got) != "payload" {
		t.Errorf("Get = %q, %v, want persisted payload", got, found)
	}

	if err := c2.Clear(); err != nil {
		t.Fatalf("Clear: %v", err)
	}
	if _, found := c2.Get("bibliocheck:v1:abc"); found {
		t.Error("hit after Clear")
	}
}

func TestDiskCache_Expiry(t *testing.T) {
	c := NewDiskCache(t.TempDir(), time.Minute)
	if err := c.Set("k", []byte("v"), time.Millisecond); err != nil {
		t.Fatalf("Set: %v", err)
	}
	time.Sleep(10 * time.Millisecond)
	if _, found := c.Get("k"); found {
		t.Error("hit after TTL expiry")
	}
}

func TestLayeredCache_PromotesDiskHits(t *testing.T) {
	dir := t.TempDir()

	// Seed disk only.
	disk := NewDiskCache(dir, time.Minute)
	if err := disk.Set("k", []byte("v"), time.Minute); err != nil {
		t.Fatalf("seed disk: %v", err)
	}

	layered := NewLayeredCache(time.Minute, dir, time.Minute)
	got, found := layered.Get("k")
	if !found || string(got) != "v" {
		t.Fatalf("Get = %q, %v, want disk hit", got, found)
	}

	// After promotion a memory-layer read works even with disk wiped.
	if err := disk.Clear(); err != nil {
		t.Fatalf("Clear: %v", err)
	}
	if _, found := layered.Get("k"); !found {
		t.Error("promoted entry missing from memory layer")
	}
}
