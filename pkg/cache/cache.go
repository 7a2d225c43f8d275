package cache

import (
	"container/list"
	"hash/fnv"
	"sync"
	"time"
)

// Cache is a small in-memory TTL cache with LRU eviction, safe for
// concurrent use. The server keeps one instance for the announcement list.
type Cache struct {
	mu       sync.Mutex
	items    map[string]*entry
	order    *list.List // MRU at front, LRU at back
	maxItems int        // 0 = unlimited
}

type entry struct {
	key  string
	v    any
	exp  int64 // unix nanoseconds; 0 = no expiry
	elem *list.Element
}

// New returns a cache holding at most maxItems entries (0 = unlimited) and
// starts a background janitor sweeping expired entries.
func New(maxItems int) *Cache {
	c := &Cache{items: make(map[string]*entry), order: list.New(), maxItems: maxItems}
	go c.janitor(60 * time.Second)
	return c
}

// Get returns the value and whether it exists and is not expired.
func (c *Cache) Get(key string) (any, bool) {
	now := time.Now().UnixNano()
	c.mu.Lock()
	defer c.mu.Unlock()
	e, ok := c.items[key]
	if !ok {
		return nil, false
	}
	if e.exp != 0 && e.exp < now {
		c.removeLocked(key)
		return nil, false
	}
	c.order.MoveToFront(e.elem)
	return e.v, true
}

// Set stores a value with TTL. ttl<=0 means no expiry.
func (c *Cache) Set(key string, v any, ttl time.Duration) {
	var exp int64
	if ttl > 0 {
		exp = time.Now().Add(ttl).UnixNano()
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if e, ok := c.items[key]; ok {
		e.v, e.exp = v, exp
		c.order.MoveToFront(e.elem)
		return
	}
	e := &entry{key: key, v: v, exp: exp}
	e.elem = c.order.PushFront(e)
	c.items[key] = e
	if c.maxItems > 0 && c.order.Len() > c.maxItems {
		if back := c.order.Back(); back != nil {
			c.removeLocked(back.Value.(*entry).key)
		}
	}
}

// Delete removes a key.
func (c *Cache) Delete(key string) {
	c.mu.Lock()
	c.removeLocked(key)
	c.mu.Unlock()
}

func (c *Cache) removeLocked(key string) {
	if e, ok := c.items[key]; ok {
		c.order.Remove(e.elem)
		delete(c.items, key)
	}
}

func (c *Cache) janitor(interval time.Duration) {
	t := time.NewTicker(interval)
	defer t.Stop()
	for range t.C {
		now := time.Now().UnixNano()
		c.mu.Lock()
		for k, e := range c.items {
			if e.exp != 0 && e.exp < now {
				c.removeLocked(k)
			}
		}
		c.mu.Unlock()
	}
}

// KeyFromStrings creates a compact stable key from parts.
func KeyFromStrings(parts ...string) string {
	h := fnv.New64a()
	for _, p := range parts {
		_, _ = h.Write([]byte{0})
		_, _ = h.Write([]byte(p))
	}
	return string(h.Sum(nil))
}
