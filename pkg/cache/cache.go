package cache

import (
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
)

// Recorder receives hit/miss events. A nil Recorder is ignored.
type Recorder interface {
	CacheHit(name string)
	CacheMiss(name string)
}

// Cache memoises computed values for ttl. Concurrent misses on the same key wait
// on a per-key lock so the value is computed once; errors are not cached. A value
// whose computation straddles InvalidateAll is returned but not stored.
type Cache[V any] struct {
	name     string
	entries  *expirable.LRU[string, V]
	recorder Recorder

	mu    sync.Mutex
	locks map[string]*sync.Mutex
	gen   uint64
}

// New creates a cache holding at most size entries (0 = unbounded) for ttl each.
func New[V any](name string, size int, ttl time.Duration, recorder Recorder) *Cache[V] {
	return &Cache[V]{
		name:     name,
		entries:  expirable.NewLRU[string, V](size, nil, ttl),
		recorder: recorder,
		locks:    make(map[string]*sync.Mutex),
	}
}

// GetOrCompute returns the cached value for key, computing it with fn on a miss.
func (c *Cache[V]) GetOrCompute(key string, fn func() (V, error)) (V, error) {
	if v, ok := c.entries.Get(key); ok {
		c.hit()
		return v, nil
	}

	lock := c.lockFor(key)
	lock.Lock()
	defer lock.Unlock()

	// another caller may have filled it while we waited
	if v, ok := c.entries.Get(key); ok {
		c.hit()
		return v, nil
	}
	c.miss()

	gen := c.generation()
	v, err := fn()
	if err != nil {
		var zero V
		return zero, err
	}
	c.mu.Lock()
	if c.gen == gen {
		c.entries.Add(key, v)
	}
	c.mu.Unlock()
	return v, nil
}

// InvalidateAll drops every entry. Computations already running keep their
// per-key locks but do not store their results.
func (c *Cache[V]) InvalidateAll() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.gen++
	c.entries.Purge()
}

// Len counts live entries.
func (c *Cache[V]) Len() int {
	return c.entries.Len()
}

func (c *Cache[V]) generation() uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.gen
}

func (c *Cache[V]) lockFor(key string) *sync.Mutex {
	c.mu.Lock()
	defer c.mu.Unlock()
	l, ok := c.locks[key]
	if !ok {
		l = &sync.Mutex{}
		c.locks[key] = l
	}
	return l
}

func (c *Cache[V]) hit() {
	if c.recorder != nil {
		c.recorder.CacheHit(c.name)
	}
}

func (c *Cache[V]) miss() {
	if c.recorder != nil {
		c.recorder.CacheMiss(c.name)
	}
}

// Key joins the arguments of a memoised call into a cache key.
func Key(parts ...any) string {
	s := make([]string, len(parts))
	for i, p := range parts {
		s[i] = fmt.Sprint(p)
	}
	return strings.Join(s, "|")
}
