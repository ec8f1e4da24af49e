// Package testutils holds fixtures shared by folio's package tests.
package testutils

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

// PostFixture describes a markdown post written by WritePosts.
type PostFixture struct {
	Slug        string
	Title       string
	Description string
	Date        string
	Tags        []string
	ReadTime    string
	// Draft writes published: false.
	Draft bool
	Body  string
}

// Markdown renders the fixture as a front matter document.
func (p PostFixture) Markdown() string {
	var b strings.Builder
	b.WriteString("---\n")
	fmt.Fprintf(&b, "title: %q\n", p.Title)
	if p.Description != "" {
		fmt.Fprintf(&b, "description: %q\n", p.Description)
	}
	fmt.Fprintf(&b, "date: %s\n", p.Date)
	if len(p.Tags) > 0 {
		b.WriteString("tags:\n")
		for _, tag := range p.Tags {
			fmt.Fprintf(&b, "  - %s\n", tag)
		}
	}
	if p.ReadTime != "" {
		fmt.Fprintf(&b, "readTime: %q\n", p.ReadTime)
	}
	fmt.Fprintf(&b, "published: %t\n", !p.Draft)
	b.WriteString("---\n")
	b.WriteString(p.Body)
	return b.String()
}

// SamplePosts is a small blog: three published posts and one draft.
func SamplePosts() []PostFixture {
	return []PostFixture{
		{
			Slug: "hello-world", Title: "Hello World", Description: "First post on the new site",
			Date: "2024-01-10", Tags: []string{"intro", "meta"}, ReadTime: "2 min",
			Body: "# Hello\n\nWelcome to the blog.\n",
		},
		{
			Slug: "go-concurrency", Title: "Go Concurrency Patterns", Description: "Pipelines & fan-out",
			Date: "2024-03-02", Tags: []string{"go", "concurrency"}, ReadTime: "8 min",
			Body: "Channels all the way down.\n",
		},
		{
			Slug: "terminal-uis", Title: "Building Terminal UIs", Description: "Notes on bubbletea",
			Date: "2024-05-20", Tags: []string{"go", "tui"}, ReadTime: "5 min",
			Body: "Model, Update, View.\n",
		},
		{
			Slug: "unfinished", Title: "Unfinished Thoughts", Description: "Not ready",
			Date: "2024-06-01", Tags: []string{"draft"}, Draft: true,
			Body: "TBD\n",
		},
	}
}

// WritePosts writes each fixture to dir/<slug>.md.
func WritePosts(t *testing.T, dir string, posts []PostFixture) {
	t.Helper()
	files := make(map[string]string, len(posts))
	for _, p := range posts {
		files[p.Slug+".md"] = p.Markdown()
	}
	CreateTestFilesWithContent(t, dir, files)
}

// PostsDir creates a temp directory holding SamplePosts.
func PostsDir(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	WritePosts(t, dir, SamplePosts())
	return dir
}

// CreateTestFilesWithContent creates files with specific content.
func CreateTestFilesWithContent(t *testing.T, dir string, files map[string]string) {
	t.Helper()
	for name, content := range files {
		err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0644)
		require.NoError(t, err)
	}
}

// StripANSI removes ANSI escape sequences from a string
func StripANSI(str string) string {
	var result []rune
	inEscape := false
	for _, r := range str {
		if r == '\x1b' {
			inEscape = true
			continue
		}
		if inEscape {
			if (r >= 'A' && r <= 'Z') || (r >= 'a' && r <= 'z') {
				inEscape = false
			}
			continue
		}
		result = append(result, r)
	}
	return string(result)
}
