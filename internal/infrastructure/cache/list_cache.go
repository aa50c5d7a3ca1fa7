// Package cache provides caching infrastructure for data source results.
package cache

import (
	"sync"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"

	"knkadmin/internal/core/record"
)

// ListCache caches list results per entity type with a TTL. Stored and returned
// slices are cloned so callers cannot mutate cached state.
type ListCache struct {
	lru *expirable.LRU[string, []record.Record]

	listenersMu sync.RWMutex
	listeners   []InvalidationListener
}

// InvalidationListener is called when a type's entry is invalidated.
type InvalidationListener func(tag string)

// NewListCache creates a cache holding at most size types for ttl each.
// A zero ttl disables expiry.
func NewListCache(size int, ttl time.Duration) *ListCache {
	if size <= 0 {
		size = 64
	}
	return &ListCache{lru: expirable.NewLRU[string, []record.Record](size, nil, ttl)}
}

// Get returns a copy of the cached list for tag.
func (c *ListCache) Get(tag string) ([]record.Record, bool) {
	if c == nil {
		return nil, false
	}
	rows, ok := c.lru.Get(tag)
	if !ok {
		return nil, false
	}
	return cloneRows(rows), true
}

// Set stores a copy of rows for tag.
func (c *ListCache) Set(tag string, rows []record.Record) {
	if c == nil {
		return
	}
	c.lru.Add(tag, cloneRows(rows))
}

// Invalidate drops tag and notifies listeners.
func (c *ListCache) Invalidate(tag string) {
	if c == nil {
		return
	}
	c.lru.Remove(tag)

	c.listenersMu.RLock()
	listeners := append([]InvalidationListener(nil), c.listeners...)
	c.listenersMu.RUnlock()
	for _, l := range listeners {
		l(tag)
	}
}

// Purge drops every entry.
func (c *ListCache) Purge() {
	if c == nil {
		return
	}
	c.lru.Purge()
}

// Len returns the number of cached types.
func (c *ListCache) Len() int {
	if c == nil {
		return 0
	}
	return c.lru.Len()
}

// OnInvalidate registers a listener.
func (c *ListCache) OnInvalidate(l InvalidationListener) {
	c.listenersMu.Lock()
	c.listeners = append(c.listeners, l)
	c.listenersMu.Unlock()
}

func cloneRows(rows []record.Record) []record.Record {
	out := make([]record.Record, len(rows))
	for i, r := range rows {
		out[i] = r.Clone()
	}
	return out
}
