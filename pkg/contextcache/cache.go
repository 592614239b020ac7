// Package contextcache provides a bounded, recency- and age-aware
// store of loaded skill content. The agent layer consults it when
// assembling the live system prompt; activation inserts entries and
// deactivation evicts them. Recency is tracked with an explicit
// doubly-linked list plus a hash index.
package contextcache

import (
	"container/list"
	"sync"
	"time"
)

// Defaults match the agent-facing configuration.
const (
	DefaultMaxEntries = 50
	DefaultMaxAge     = time.Hour
)

type entry struct {
	name    string
	content string
	touched time.Time // refreshed on Put, not on Get
}

// Cache is a thread-safe LRU cache of skill content keyed by skill
// name. Size never exceeds the configured bound after a Put; entries
// older than a threshold are removed by Sweep regardless of recency.
type Cache struct {
	mu         sync.Mutex
	maxEntries int
	ll         *list.List // front is most recently used
	index      map[string]*list.Element
	now        func() time.Time
}

// New creates a Cache bounded to maxEntries. Non-positive values fall
// back to DefaultMaxEntries.
func New(maxEntries int) *Cache {
	if maxEntries <= 0 {
		maxEntries = DefaultMaxEntries
	}
	return &Cache{
		maxEntries: maxEntries,
		ll:         list.New(),
		index:      make(map[string]*list.Element),
		now:        time.Now,
	}
}

// Put inserts or replaces the content for a skill. The entry becomes
// the most recently used and its timestamp is refreshed. Least
// recently used entries are evicted until the size bound holds.
func (c *Cache) Put(name, content string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if elem, ok := c.index[name]; ok {
		e := elem.Value.(*entry)
		e.content = content
		e.touched = c.now()
		c.ll.MoveToFront(elem)
	} else {
		c.index[name] = c.ll.PushFront(&entry{
			name:    name,
			content: content,
			touched: c.now(),
		})
	}

	for c.ll.Len() > c.maxEntries {
		c.removeElement(c.ll.Back())
	}
}

// Get returns the cached content for a skill. A hit counts as a use
// and moves the entry to the most recently used position; the age
// timestamp is left untouched. A miss has no side effects.
func (c *Cache) Get(name string) (string, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	elem, ok := c.index[name]
	if !ok {
		return "", false
	}

	c.ll.MoveToFront(elem)
	return elem.Value.(*entry).content, true
}

// Remove evicts a skill's entry unconditionally. Removing an absent
// name is a no-op.
func (c *Cache) Remove(name string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if elem, ok := c.index[name]; ok {
		c.removeElement(elem)
	}
}

// Sweep removes every entry whose age exceeds maxAge, regardless of
// recency position, and reports how many were removed. Intended to be
// invoked opportunistically; nothing runs it automatically.
func (c *Cache) Sweep(maxAge time.Duration) int {
	c.mu.Lock()
	defer c.mu.Unlock()

	cutoff := c.now().Add(-maxAge)
	removed := 0

	var next *list.Element
	for elem := c.ll.Front(); elem != nil; elem = next {
		next = elem.Next()
		if elem.Value.(*entry).touched.Before(cutoff) {
			c.removeElement(elem)
			removed++
		}
	}

	return removed
}

// Len reports the number of cached entries.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.ll.Len()
}

// Snapshot returns a copy of the cache contents keyed by skill name.
func (c *Cache) Snapshot() map[string]string {
	c.mu.Lock()
	defer c.mu.Unlock()

	out := make(map[string]string, len(c.index))
	for name, elem := range c.index {
		out[name] = elem.Value.(*entry).content
	}
	return out
}

func (c *Cache) removeElement(elem *list.Element) {
	c.ll.Remove(elem)
	delete(c.index, elem.Value.(*entry).name)
}
