package textcache

import (
	"sync/atomic"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/haukened/overhead-display/internal/display/domain"
)

// DefaultSize fits every label, value and axis string of a frame several times over.
const DefaultSize = 256

type key struct {
	size domain.FontSize
	text string
}

// Cache remembers measured text widths per font size using an LRU strategy.
// Labels repeat every frame, so most lookups hit.
type Cache struct {
	lru    *lru.Cache[key, int]
	hits   atomic.Uint64
	misses atomic.Uint64
}

// New returns a Cache holding at most size entries.
func New(size int) (*Cache, error) {
	c, err := lru.New[key, int](size)
	if err != nil {
		return nil, err
	}
	return &Cache{lru: c}, nil
}

// Width returns the cached width of text at size, calling measure on a miss.
func (c *Cache) Width(size domain.FontSize, text string, measure func() int) int {
	k := key{size: size, text: text}
	if w, ok := c.lru.Get(k); ok {
		c.hits.Add(1)
		return w
	}
	c.misses.Add(1)
	w := measure()
	c.lru.Add(k, w)
	return w
}

// Len returns the number of cached widths.
func (c *Cache) Len() int { return c.lru.Len() }

// Purge drops every cached width.
func (c *Cache) Purge() { c.lru.Purge() }

// Stats returns hit and miss counters since construction.
func (c *Cache) Stats() (hits, misses uint64) {
	return c.hits.Load(), c.misses.Load()
}
