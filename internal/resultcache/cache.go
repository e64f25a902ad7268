// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package resultcache

import (
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/apex/log"
)

// DefaultTTL is how long a cached page stays fresh.
const DefaultTTL = time.Hour

type entry[T any] struct {
	value    T
	storedAt time.Time
}

// Cache maps (search descriptor, page) to a stored page result stamped
// with its insertion time. The reference design is single-threaded; the
// mutex makes the map mutations safe for concurrent callers too, which
// costs nothing in the single-threaded case.
type Cache[T any] struct {
	mu      sync.Mutex
	ttl     time.Duration
	now     func() time.Time
	entries map[string]entry[T]
}

// Option customizes a Cache.
type Option func(*settings)

type settings struct {
	now func() time.Time
}

// WithClock injects the time source. Tests use this to age entries without
// sleeping.
func WithClock(now func() time.Time) Option {
	return func(s *settings) { s.now = now }
}

// New constructs a cache with the given TTL. A non-positive TTL falls back
// to DefaultTTL.
func New[T any](ttl time.Duration, opts ...Option) *Cache[T] {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	s := settings{now: time.Now}
	for _, opt := range opts {
		opt(&s)
	}
	return &Cache[T]{
		ttl:     ttl,
		now:     s.now,
		entries: map[string]entry[T]{},
	}
}

// Get returns the cached page if its age is within the TTL. A stale entry
// is evicted on the spot and reported as a miss.
func (c *Cache[T]) Get(p SearchParams, page int) (T, bool) {
	key := pageKey(p, page)

	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[key]
	if !ok {
		var zero T
		return zero, false
	}
	if c.now().Sub(e.storedAt) > c.ttl {
		log.Debugf("resultcache: evicting stale entry %s", key)
		delete(c.entries, key)
		var zero T
		return zero, false
	}
	return e.value, true
}

// Set stores a page result under the canonicalized descriptor.
func (c *Cache[T]) Set(p SearchParams, page int, value T) {
	key := pageKey(p, page)

	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = entry[T]{value: value, storedAt: c.now()}
}

// ClearSearch drops every page cached for one logical search.
func (c *Cache[T]) ClearSearch(p SearchParams) {
	prefix := encodeKey(p.Key()) + "/"

	c.mu.Lock()
	defer c.mu.Unlock()
	for key := range c.entries {
		if strings.HasPrefix(key, prefix) {
			delete(c.entries, key)
		}
	}
}

// Flush empties the cache.
func (c *Cache[T]) Flush() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = map[string]entry[T]{}
}

// Len reports the live entry count, stale entries included until a read
// evicts them.
func (c *Cache[T]) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

func pageKey(p SearchParams, page int) string {
	return encodeKey(p.Key()) + "/" + strconv.Itoa(page)
}
