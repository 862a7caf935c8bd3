package pokeapi

import (
	"container/list"
	"sync"
	"time"
)

const defaultCacheSize = 2048

// ttlCache is a bounded LRU of raw response bodies with per-entry expiry.
type ttlCache struct {
	size      int
	ttl       time.Duration
	evictList *list.List
	items     map[string]*list.Element
	now       func() time.Time
	mu        sync.Mutex
}

type cacheEntry struct {
	key     string
	value   []byte
	expires time.Time
}

func newTTLCache(size int, ttl time.Duration) *ttlCache {
	return &ttlCache{
		size:      size,
		ttl:       ttl,
		evictList: list.New(),
		items:     make(map[string]*list.Element),
		now:       time.Now,
	}
}

// Get returns a fresh value. Expired entries are dropped.
func (c *ttlCache) Get(key string) ([]byte, bool) {
	if c.ttl <= 0 {
		return nil, false
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	node, exists := c.items[key]
	if !exists {
		return nil, false
	}

	ent := node.Value.(*cacheEntry)
	if !c.now().Before(ent.expires) {
		c.evictList.Remove(node)
		delete(c.items, key)
		return nil, false
	}

	c.evictList.MoveToFront(node)
	return ent.value, true
}

// Put adds or refreshes a value.
func (c *ttlCache) Put(key string, value []byte) {
	if c.ttl <= 0 {
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	expires := c.now().Add(c.ttl)
	if node, exists := c.items[key]; exists {
		c.evictList.MoveToFront(node)
		ent := node.Value.(*cacheEntry)
		ent.value = value
		ent.expires = expires
		return
	}

	node := c.evictList.PushFront(&cacheEntry{key: key, value: value, expires: expires})
	c.items[key] = node

	if c.evictList.Len() > c.size {
		if oldest := c.evictList.Back(); oldest != nil {
			c.evictList.Remove(oldest)
			delete(c.items, oldest.Value.(*cacheEntry).key)
		}
	}
}

// Clear removes all items from the cache
func (c *ttlCache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.items = make(map[string]*list.Element)
	c.evictList.Init()
}

// Len returns the number of entries, expired or not.
func (c *ttlCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.evictList.Len()
}
