package cache

import (
	"context"
	"sync"
	"time"

	"github.com/Taishi66/folio-tui/internal/config"
	"github.com/Taishi66/folio-tui/internal/domain"
)

type cacheEntry[T any] struct {
	data      T
	expiresAt time.Time
}

func (e *cacheEntry[T]) valid(now time.Time) bool {
	return e != nil && now.Before(e.expiresAt)
}

// CachedGateway decorates a Gateway. Projects go through the shared
// ProjectStore; blog posts and stats use plain TTL entries.
type CachedGateway struct {
	delegate domain.Gateway
	store    *ProjectStore
	cfg      config.CacheConfig
	now      func() time.Time

	mu    sync.RWMutex
	posts *cacheEntry[[]domain.BlogPost]
	post  map[string]*cacheEntry[*domain.BlogPost]
	stats *cacheEntry[domain.Stats]
}

var _ domain.Gateway = (*CachedGateway)(nil)

func NewCachedGateway(delegate domain.Gateway, cfg config.CacheConfig) *CachedGateway {
	return &CachedGateway{
		delegate: delegate,
		store:    NewProjectStore(cfg.ProjectsTTL),
		cfg:      cfg,
		now:      time.Now,
		post:     make(map[string]*cacheEntry[*domain.BlogPost]),
	}
}

// SetClock replaces the time source of the gateway and its store.
func (c *CachedGateway) SetClock(now func() time.Time) {
	c.mu.Lock()
	c.now = now
	c.mu.Unlock()
	c.store.SetClock(now)
}

// Store exposes the project store for loading and error display.
func (c *CachedGateway) Store() *ProjectStore { return c.store }

func (c *CachedGateway) BaseURL() string { return c.delegate.BaseURL() }

// Invalidate drops everything cached.
func (c *CachedGateway) Invalidate() {
	c.store.ClearAll()
	c.mu.Lock()
	c.posts = nil
	c.post = make(map[string]*cacheEntry[*domain.BlogPost])
	c.stats = nil
	c.mu.Unlock()
}

// --- Projects ---

// ListProjects serves the stored list while it is fresh and non-empty.
func (c *CachedGateway) ListProjects(ctx context.Context) ([]domain.Project, error) {
	if !c.store.IsStale() {
		if items := c.store.Items(); len(items) > 0 {
			return items, nil
		}
	}

	c.store.SetLoading(true)
	defer c.store.SetLoading(false)

	result, err := c.delegate.ListProjects(ctx)
	if err != nil {
		c.store.SetError(err.Error())
		return nil, err
	}
	c.store.SetItems(result)
	return result, nil
}

// GetProject checks the detail cache, then the loaded list, then fetches.
func (c *CachedGateway) GetProject(ctx context.Context, slug string) (domain.Project, error) {
	if p, ok := c.store.Detail(slug); ok {
		return p, nil
	}
	if p, ok := c.store.Find(slug); ok {
		return p, nil
	}

	return c.RefreshProject(ctx, slug)
}

// RefreshProject always asks the delegate and stores the answer as the
// detail for slug. A list entry never satisfies it.
func (c *CachedGateway) RefreshProject(ctx context.Context, slug string) (domain.Project, error) {
	p, err := c.delegate.GetProject(ctx, slug)
	if err != nil {
		return domain.Project{}, err
	}
	c.store.SetDetail(slug, p)
	return p, nil
}

// Featured returns the first n projects.
func (c *CachedGateway) Featured(ctx context.Context, n int) ([]domain.Project, error) {
	items, err := c.ListProjects(ctx)
	if err != nil {
		return nil, err
	}
	if n < 0 {
		n = 0
	}
	if n < len(items) {
		items = items[:n]
	}
	return items, nil
}

// --- Blog ---

func (c *CachedGateway) ListBlogPosts(ctx context.Context) ([]domain.BlogPost, error) {
	c.mu.RLock()
	if c.posts.valid(c.now()) {
		data := c.posts.data
		c.mu.RUnlock()
		return data, nil
	}
	c.mu.RUnlock()

	result, err := c.delegate.ListBlogPosts(ctx)
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	c.posts = &cacheEntry[[]domain.BlogPost]{
		data:      result,
		expiresAt: c.now().Add(c.cfg.BlogTTL),
	}
	c.mu.Unlock()
	return result, nil
}

// GetBlogPost caches found posts only, so a post published later shows up
// on the next request.
func (c *CachedGateway) GetBlogPost(ctx context.Context, slug string) (*domain.BlogPost, error) {
	c.mu.RLock()
	if e := c.post[slug]; e.valid(c.now()) {
		data := e.data
		c.mu.RUnlock()
		return data, nil
	}
	c.mu.RUnlock()

	result, err := c.delegate.GetBlogPost(ctx, slug)
	if err != nil || result == nil {
		return result, err
	}

	c.mu.Lock()
	c.post[slug] = &cacheEntry[*domain.BlogPost]{
		data:      result,
		expiresAt: c.now().Add(c.cfg.BlogTTL),
	}
	c.mu.Unlock()
	return result, nil
}

// --- Stats ---

func (c *CachedGateway) GetStats(ctx context.Context) (domain.Stats, error) {
	c.mu.RLock()
	if c.stats.valid(c.now()) {
		data := c.stats.data
		c.mu.RUnlock()
		return data, nil
	}
	c.mu.RUnlock()

	result, err := c.delegate.GetStats(ctx)
	if err != nil {
		return domain.Stats{}, err
	}

	c.mu.Lock()
	c.stats = &cacheEntry[domain.Stats]{
		data:      result,
		expiresAt: c.now().Add(c.cfg.StatsTTL),
	}
	c.mu.Unlock()
	return result, nil
}
