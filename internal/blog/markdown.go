package blog

import (
	"context"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/gobwas/glob"

	"folio/internal/errors"
	"folio/internal/log"
)

// DefaultPattern selects the post files in a posts directory.
const DefaultPattern = "*.md"

// MarkdownRepository serves posts parsed from markdown files in one
// directory. Unpublished posts are dropped at load time.
type MarkdownRepository struct {
	dir     string
	pattern string
	match   glob.Glob

	mu      sync.RWMutex
	posts   []Post
	content map[string]string
}

// NewMarkdownRepository compiles pattern and loads dir. A nil repository
// is returned only when the pattern is invalid or the directory cannot be
// read; per-file parse failures are returned alongside a usable repository.
func NewMarkdownRepository(ctx context.Context, dir, pattern string) (*MarkdownRepository, error) {
	if pattern == "" {
		pattern = DefaultPattern
	}
	g, err := glob.Compile(pattern)
	if err != nil {
		return nil, errors.NewConfigError("invalid post pattern", pattern, errors.InvalidConfig, err)
	}

	info, err := os.Stat(dir)
	if err == nil && !info.IsDir() {
		err = errors.New("not a directory")
	}
	if err != nil {
		return nil, errors.NewContentError("failed to read posts directory", dir, errors.ContentReadFailed, err)
	}

	r := &MarkdownRepository{
		dir:     dir,
		pattern: pattern,
		match:   g,
		content: map[string]string{},
	}
	return r, r.Reload(ctx)
}

// Dir returns the posts directory.
func (r *MarkdownRepository) Dir() string { return r.dir }

// Matches reports whether a file name is a post file.
func (r *MarkdownRepository) Matches(name string) bool {
	return r.match.Match(filepath.Base(name))
}

// Reload rescans the directory and swaps in the new post set. Files that
// fail to parse are skipped and reported together in the returned error.
func (r *MarkdownRepository) Reload(ctx context.Context) error {
	entries, err := os.ReadDir(r.dir)
	if err != nil {
		return errors.NewContentError("failed to read posts directory", r.dir, errors.ContentReadFailed, err)
	}

	var (
		posts   []Post
		content = map[string]string{}
		errs    []error
	)
	for _, entry := range entries {
		if err := ctx.Err(); err != nil {
			return err
		}
		if entry.IsDir() || !r.match.Match(entry.Name()) {
			continue
		}

		path := filepath.Join(r.dir, entry.Name())
		raw, err := os.ReadFile(path)
		if err != nil {
			errs = append(errs, errors.NewContentError("failed to read post", path, errors.ContentReadFailed, err))
			continue
		}
		post, body, err := ParsePost(path, raw)
		if err != nil {
			log.LogWithError(err).Warn("Skipping post")
			errs = append(errs, err)
			continue
		}
		if !post.Published {
			continue
		}
		posts = append(posts, post)
		content[post.Slug] = body
	}

	sort.SliceStable(posts, func(i, j int) bool {
		if posts[i].Date.Equal(posts[j].Date) {
			return posts[i].Slug < posts[j].Slug
		}
		return posts[i].Date.After(posts[j].Date)
	})

	r.mu.Lock()
	r.posts = posts
	r.content = content
	r.mu.Unlock()

	log.LogWithFields(log.F("dir", r.dir), log.F("posts", len(posts))).Debug("Posts loaded")
	return errors.Join(errs...)
}

func (r *MarkdownRepository) snapshot() []Post {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.posts
}

func (r *MarkdownRepository) All(ctx context.Context) ([]Post, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	posts := r.snapshot()
	out := make([]Post, len(posts))
	copy(out, posts)
	return out, nil
}

func (r *MarkdownRepository) BySlug(ctx context.Context, slug string) (Post, error) {
	if err := ctx.Err(); err != nil {
		return Post{}, err
	}
	for _, p := range r.snapshot() {
		if p.Slug == slug {
			return p, nil
		}
	}
	return Post{}, notFound(slug)
}

func (r *MarkdownRepository) ByTag(ctx context.Context, tag string) ([]Post, error) {
	return r.filter(ctx, func(p Post) bool { return p.HasTag(tag) })
}

func (r *MarkdownRepository) Tags(ctx context.Context) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	seen := map[string]bool{}
	tags := []string{}
	for _, p := range r.snapshot() {
		for _, t := range p.Tags {
			if !seen[t] {
				seen[t] = true
				tags = append(tags, t)
			}
		}
	}
	sort.Strings(tags)
	return tags, nil
}

func (r *MarkdownRepository) Search(ctx context.Context, query string) ([]Post, error) {
	q := strings.ToLower(query)
	return r.filter(ctx, func(p Post) bool { return p.matches(q) })
}

func (r *MarkdownRepository) Adjacent(ctx context.Context, slug string) (Adjacent, error) {
	if err := ctx.Err(); err != nil {
		return Adjacent{}, err
	}
	posts := r.snapshot()
	for i := range posts {
		if posts[i].Slug != slug {
			continue
		}
		var adj Adjacent
		if i+1 < len(posts) {
			prev := posts[i+1]
			adj.Prev = &prev
		}
		if i > 0 {
			next := posts[i-1]
			adj.Next = &next
		}
		return adj, nil
	}
	return Adjacent{}, nil
}

func (r *MarkdownRepository) Content(ctx context.Context, slug string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	r.mu.RLock()
	body, ok := r.content[slug]
	r.mu.RUnlock()
	if !ok {
		return "", notFound(slug)
	}
	return body, nil
}

func (r *MarkdownRepository) filter(ctx context.Context, keep func(Post) bool) ([]Post, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	out := []Post{}
	for _, p := range r.snapshot() {
		if keep(p) {
			out = append(out, p)
		}
	}
	return out, nil
}

func notFound(slug string) error {
	return errors.NewContentError("post not found", slug, errors.PostNotFound, nil)
}
