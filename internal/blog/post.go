// Package blog loads markdown posts and serves them through a Repository.
package blog

import (
	"bytes"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"folio/internal/errors"
)

// DateLayout is the front matter date format.
const DateLayout = "2006-01-02"

var dateLayouts = []string{DateLayout, time.RFC3339, "2006-01-02 15:04:05", "2006-01-02T15:04:05"}

// Post is a post's metadata. The body is served separately by
// Repository.Content.
type Post struct {
	Slug        string    `json:"slug"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Date        time.Time `json:"date"`
	Tags        []string  `json:"tags"`
	ReadTime    string    `json:"readTime,omitempty"`
	Published   bool      `json:"published"`
}

// HasTag reports whether the post carries tag exactly.
func (p Post) HasTag(tag string) bool {
	for _, t := range p.Tags {
		if t == tag {
			return true
		}
	}
	return false
}

// matches reports whether the lower-cased query occurs in the title,
// description or any tag.
func (p Post) matches(q string) bool {
	if strings.Contains(strings.ToLower(p.Title), q) ||
		strings.Contains(strings.ToLower(p.Description), q) {
		return true
	}
	for _, t := range p.Tags {
		if strings.Contains(strings.ToLower(t), q) {
			return true
		}
	}
	return false
}

// Adjacent holds the neighbours of a post in newest-first order: Prev is the
// older post, Next the newer one.
type Adjacent struct {
	Prev *Post `json:"prev"`
	Next *Post `json:"next"`
}

type frontMatter struct {
	Title       string   `yaml:"title"`
	Description string   `yaml:"description"`
	Date        string   `yaml:"date"`
	Tags        []string `yaml:"tags"`
	ReadTime    string   `yaml:"readTime"`
	Published   *bool    `yaml:"published"`
}

var (
	delimiter  = []byte("---")
	openDelim  = []byte("---\n")
	closeDelim = []byte("\n---")
	bom        = []byte("\xef\xbb\xbf")
)

// ParsePost splits a markdown file into metadata and body. The slug is the
// file name without its extension. Only an explicit published: true
// publishes a post.
func ParsePost(path string, raw []byte) (Post, string, error) {
	slug := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))

	raw = bytes.TrimPrefix(raw, bom)
	raw = bytes.ReplaceAll(raw, []byte("\r\n"), []byte("\n"))
	if !bytes.HasPrefix(raw, openDelim) {
		return Post{}, "", errors.NewContentError("missing front matter", path, errors.InvalidFrontMatter, nil)
	}

	rest := raw[len(openDelim):]
	var header, body []byte
	switch {
	case bytes.HasPrefix(rest, openDelim), bytes.Equal(rest, delimiter):
		// Empty header.
		body = bytes.TrimPrefix(rest, delimiter)
	default:
		end := bytes.Index(rest, closeDelim)
		if end < 0 {
			return Post{}, "", errors.NewContentError("unterminated front matter", path, errors.InvalidFrontMatter, nil)
		}
		header = rest[:end]
		body = rest[end+len(closeDelim):]
	}
	body = bytes.TrimPrefix(body, []byte("\n"))

	var fm frontMatter
	if err := yaml.Unmarshal(header, &fm); err != nil {
		return Post{}, "", errors.NewContentError("invalid front matter", path, errors.InvalidFrontMatter, err)
	}
	if fm.Title == "" {
		return Post{}, "", errors.NewContentError("front matter has no title", path, errors.InvalidFrontMatter, nil)
	}

	date, err := parseDate(fm.Date)
	if err != nil {
		return Post{}, "", errors.NewContentError("invalid post date", path, errors.InvalidFrontMatter, err)
	}

	post := Post{
		Slug:        slug,
		Title:       fm.Title,
		Description: fm.Description,
		Date:        date,
		Tags:        fm.Tags,
		ReadTime:    fm.ReadTime,
		Published:   fm.Published != nil && *fm.Published,
	}
	if post.Tags == nil {
		post.Tags = []string{}
	}
	if post.ReadTime == "" {
		post.ReadTime = EstimateReadTime(string(body))
	}
	return post, string(body), nil
}

// WordsPerMinute is the reading speed EstimateReadTime assumes.
const WordsPerMinute = 200

// EstimateReadTime formats the reading time of a markdown body as "N min",
// rounding up and never below one minute. Fenced code counts like prose.
func EstimateReadTime(body string) string {
	words := len(strings.Fields(body))
	minutes := (words + WordsPerMinute - 1) / WordsPerMinute
	if minutes < 1 {
		minutes = 1
	}
	return fmt.Sprintf("%d min", minutes)
}

func parseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, errors.New("missing date")
	}
	var lastErr error
	for _, layout := range dateLayouts {
		t, err := time.Parse(layout, s)
		if err == nil {
			return t.UTC(), nil
		}
		lastErr = err
	}
	return time.Time{}, lastErr
}
