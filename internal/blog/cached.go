package blog

import (
	"context"
	"sync"
	"time"
)

// DefaultCacheTTL is how long CachedRepository keeps a result.
const DefaultCacheTTL = 5 * time.Minute

type cacheEntry struct {
	value any
	at    time.Time
}

// CachedRepository memoizes another repository's results for a fixed TTL.
// Search results and errors are never cached.
type CachedRepository struct {
	inner Repository
	ttl   time.Duration
	now   func() time.Time

	mu    sync.Mutex
	cache map[string]cacheEntry
}

// CacheOption configures a CachedRepository.
type CacheOption func(*CachedRepository)

// WithTTL overrides DefaultCacheTTL.
func WithTTL(ttl time.Duration) CacheOption {
	return func(c *CachedRepository) { c.ttl = ttl }
}

// WithClock replaces time.Now.
func WithClock(now func() time.Time) CacheOption {
	return func(c *CachedRepository) { c.now = now }
}

// NewCachedRepository wraps inner.
func NewCachedRepository(inner Repository, opts ...CacheOption) *CachedRepository {
	c := &CachedRepository{
		inner: inner,
		ttl:   DefaultCacheTTL,
		now:   time.Now,
		cache: map[string]cacheEntry{},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// ClearCache drops every cached result.
func (c *CachedRepository) ClearCache() {
	c.mu.Lock()
	c.cache = map[string]cacheEntry{}
	c.mu.Unlock()
}

// Reload reloads the wrapped repository, if it can, and clears the cache.
func (c *CachedRepository) Reload(ctx context.Context) error {
	var err error
	if r, ok := c.inner.(Reloader); ok {
		err = r.Reload(ctx)
	}
	c.ClearCache()
	return err
}

func (c *CachedRepository) get(key string) (any, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	e, ok := c.cache[key]
	if !ok {
		return nil, false
	}
	if c.now().Sub(e.at) >= c.ttl {
		delete(c.cache, key)
		return nil, false
	}
	return e.value, true
}

func (c *CachedRepository) set(key string, value any) {
	c.mu.Lock()
	c.cache[key] = cacheEntry{value: value, at: c.now()}
	c.mu.Unlock()
}

// cached returns the cached value under key or loads and stores it.
func cached[T any](c *CachedRepository, key string, load func() (T, error)) (T, error) {
	if v, ok := c.get(key); ok {
		return v.(T), nil
	}
	v, err := load()
	if err != nil {
		return v, err
	}
	c.set(key, v)
	return v, nil
}

func (c *CachedRepository) All(ctx context.Context) ([]Post, error) {
	posts, err := cached(c, "all", func() ([]Post, error) { return c.inner.All(ctx) })
	return clonePosts(posts), err
}

func (c *CachedRepository) BySlug(ctx context.Context, slug string) (Post, error) {
	return cached(c, "slug:"+slug, func() (Post, error) { return c.inner.BySlug(ctx, slug) })
}

func (c *CachedRepository) ByTag(ctx context.Context, tag string) ([]Post, error) {
	posts, err := cached(c, "tag:"+tag, func() ([]Post, error) { return c.inner.ByTag(ctx, tag) })
	return clonePosts(posts), err
}

func (c *CachedRepository) Tags(ctx context.Context) ([]string, error) {
	tags, err := cached(c, "tags", func() ([]string, error) { return c.inner.Tags(ctx) })
	if tags == nil {
		return tags, err
	}
	out := make([]string, len(tags))
	copy(out, tags)
	return out, err
}

func (c *CachedRepository) Search(ctx context.Context, query string) ([]Post, error) {
	return c.inner.Search(ctx, query)
}

func (c *CachedRepository) Adjacent(ctx context.Context, slug string) (Adjacent, error) {
	return cached(c, "adjacent:"+slug, func() (Adjacent, error) { return c.inner.Adjacent(ctx, slug) })
}

func (c *CachedRepository) Content(ctx context.Context, slug string) (string, error) {
	return cached(c, "content:"+slug, func() (string, error) { return c.inner.Content(ctx, slug) })
}

func clonePosts(posts []Post) []Post {
	if posts == nil {
		return nil
	}
	out := make([]Post, len(posts))
	copy(out, posts)
	return out
}
