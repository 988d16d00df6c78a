package garden

import (
	"context"
	"database/sql"
	"fmt"
	"sync"
	"time"

	"github.com/eringen/garden/content"
	"github.com/eringen/garden/slug"
)

// ErrNotFound is returned when a requested page does not exist.
var ErrNotFound = sql.ErrNoRows

// PageCache is an in-memory cache of the collection restored from the Store,
// with TTL.
type PageCache struct {
	mu      sync.RWMutex
	all     *content.Collection
	fetched time.Time
	ttl     time.Duration
	store   *Store
}

// NewPageCache creates a PageCache backed by the given Store.
func NewPageCache(s *Store, ttl time.Duration) *PageCache {
	return &PageCache{store: s, ttl: ttl}
}

func (c *PageCache) valid() bool {
	return c.all != nil && time.Since(c.fetched) < c.ttl
}

// Invalidate clears the cache so the next read triggers a fresh load.
func (c *PageCache) Invalidate() {
	c.mu.Lock()
	c.all = nil
	c.mu.Unlock()
}

func (c *PageCache) load(ctx context.Context) error {
	if c.valid() {
		return nil
	}
	records, err := c.store.ListPages(ctx)
	if err != nil {
		return err
	}
	pages := make([]*content.Page, 0, len(records))
	for _, r := range records {
		p, err := content.FromRecord(r)
		if err != nil {
			return err
		}
		pages = append(pages, p)
	}
	c.all = content.NewCollection(pages)
	c.fetched = time.Now()
	return nil
}

// Collection returns the cached collection after ensuring it is fresh.
// It tries a read lock first; only takes a write lock if a reload is needed.
func (c *PageCache) Collection(ctx context.Context) (*content.Collection, error) {
	c.mu.RLock()
	if c.valid() {
		all := c.all
		c.mu.RUnlock()
		return all, nil
	}
	c.mu.RUnlock()

	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.load(ctx); err != nil {
		return nil, fmt.Errorf("load pages: %w", err)
	}
	return c.all, nil
}

// GetPage returns one page and the collection it belongs to.
func (c *PageCache) GetPage(ctx context.Context, s slug.Full) (*content.Page, *content.Collection, error) {
	all, err := c.Collection(ctx)
	if err != nil {
		return nil, nil, err
	}
	p, ok := all.Get(s)
	if !ok {
		return nil, all, ErrNotFound
	}
	return p, all, nil
}
