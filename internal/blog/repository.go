package blog

import (
	"context"
	"time"
)

// Repository is read access to published posts, newest first.
type Repository interface {
	All(ctx context.Context) ([]Post, error)
	// BySlug returns an ErrPostNotFound error for unknown slugs.
	BySlug(ctx context.Context, slug string) (Post, error)
	ByTag(ctx context.Context, tag string) ([]Post, error)
	// Tags returns every tag once, sorted.
	Tags(ctx context.Context) ([]string, error)
	// Search matches query case-insensitively against title, description
	// and tags.
	Search(ctx context.Context, query string) ([]Post, error)
	// Adjacent returns the older and newer neighbours of slug. An unknown
	// slug has no neighbours.
	Adjacent(ctx context.Context, slug string) (Adjacent, error)
	// Content returns the raw markdown body of a post.
	Content(ctx context.Context, slug string) (string, error)
}

// Reloader is a repository that can rescan its source.
type Reloader interface {
	Reload(ctx context.Context) error
}

// Options configures NewRepository.
type Options struct {
	Dir      string
	Pattern  string
	Cached   bool
	CacheTTL time.Duration
}

// Source is what NewRepository builds: the repository to read from and the
// reloader that keeps it current.
type Source struct {
	Repository
	Markdown *MarkdownRepository
	Cache    *CachedRepository
}

// Reload rescans the markdown files and drops cached results.
func (s *Source) Reload(ctx context.Context) error {
	if s.Cache != nil {
		return s.Cache.Reload(ctx)
	}
	return s.Markdown.Reload(ctx)
}

// NewRepository loads the posts under opts.Dir and, when opts.Cached is set,
// wraps them in a TTL cache. Files that fail to parse are reported in the
// returned error; the repository is still usable.
func NewRepository(ctx context.Context, opts Options) (*Source, error) {
	md, loadErr := NewMarkdownRepository(ctx, opts.Dir, opts.Pattern)
	if md == nil {
		return nil, loadErr
	}

	src := &Source{Repository: md, Markdown: md}
	if opts.Cached {
		var cacheOpts []CacheOption
		if opts.CacheTTL > 0 {
			cacheOpts = append(cacheOpts, WithTTL(opts.CacheTTL))
		}
		src.Cache = NewCachedRepository(md, cacheOpts...)
		src.Repository = src.Cache
	}
	return src, loadErr
}
