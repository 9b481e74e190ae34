package cache

import (
	"time"

	gocache "github.com/patrickmn/go-cache"
)

// memoryStore adapts go-cache to the byte-oriented Cache interface. It only
// exists as the fast layer inside LayeredCache.
type memoryStore struct {
	inner *gocache.Cache
}

func newMemoryStore(defaultTTL time.Duration) *memoryStore {
	return &memoryStore{inner: gocache.New(defaultTTL, 10*time.Minute)}
}

func (s *memoryStore) Get(key string) ([]byte, bool) {
	val, found := s.inner.Get(key)
	if !found {
		return nil, false
	}
	data, ok := val.([]byte)
	return data, ok
}

func (s *memoryStore) Set(key string, value []byte, ttl time.Duration) error {
	s.inner.Set(key, value, ttl)
	return nil
}

func (s *memoryStore) Delete(key string) error {
	s.inner.Delete(key)
	return nil
}

func (s *memoryStore) Clear() error {
	s.inner.Flush()
	return nil
}

// LayeredCache reads through memory into disk, promoting disk hits.
type LayeredCache struct {
	memory Cache
	disk   Cache
}

// NewLayeredCache builds a memory+disk cache.
func NewLayeredCache(memoryTTL time.Duration, diskDir string, diskTTL time.Duration) *LayeredCache {
	return &LayeredCache{
		memory: newMemoryStore(memoryTTL),
		disk:   NewDiskCache(diskDir, diskTTL),
	}
}

func (c *LayeredCache) Get(key string) ([]byte, bool) {
	if val, found := c.memory.Get(key); found {
		return val, true
	}
	if val, found := c.disk.Get(key); found {
		_ = c.memory.Set(key, val, 0) // promote with default TTL
		return val, true
	}
	return nil, false
}

func (c *LayeredCache) Set(key string, value []byte, ttl time.Duration) error {
	if err := c.memory.Set(key, value, ttl); err != nil {
		return err
	}
	return c.disk.Set(key, value, ttl)
}

func (c *LayeredCache) Delete(key string) error {
	if err := c.memory.Delete(key); err != nil {
		return err
	}
	return c.disk.Delete(key)
}

func (c *LayeredCache) Clear() error {
	if err := c.memory.Clear(); err != nil {
		return err
	}
	return c.disk.Clear()
}
