package cache

import (
	"time"

	"github.com/patrickmn/go-cache"
)

// Cache is a TTL cache. Items read through Touch have their expiry pushed forward.
type Cache struct {
	cache *cache.Cache
	ttl   time.Duration
}

func New(ttl, cleanupInterval time.Duration) *Cache {
	return &Cache{
		cache: cache.New(ttl, cleanupInterval),
		ttl:   ttl,
	}
}

func (c *Cache) Get(key string) (interface{}, bool) {
	return c.cache.Get(key)
}

// Touch returns the item and renews its expiry.
func (c *Cache) Touch(key string) (interface{}, bool) {
	v, ok := c.cache.Get(key)
	if ok {
		c.cache.Set(key, v, cache.DefaultExpiration)
	}
	return v, ok
}

func (c *Cache) Set(key string, value interface{}, expiration time.Duration) {
	c.cache.Set(key, value, expiration)
}

func (c *Cache) SetDefault(key string, value interface{}) {
	c.cache.Set(key, value, cache.DefaultExpiration)
}

func (c *Cache) Delete(key string) {
	c.cache.Delete(key)
}

func (c *Cache) ItemCount() int {
	return c.cache.ItemCount()
}

func (c *Cache) TTL() time.Duration {
	return c.ttl
}

// OnEvicted registers f to run when an item expires or is deleted.
func (c *Cache) OnEvicted(f func(key string, value interface{})) {
	c.cache.OnEvicted(f)
}
