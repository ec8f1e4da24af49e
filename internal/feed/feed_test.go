package feed

import (
	"encoding/xml"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"folio/internal/blog"
	"folio/internal/config"
)

var now = time.Date(2024, 6, 15, 9, 30, 0, 0, time.UTC)

func testSite(blogEnabled bool) Site {
	return Site{
		Name:        "Hong4rc",
		Title:       "Backend Developer",
		Description: "just a backend dev, lazy guy, do simple if can",
		URL:         "https://example.dev",
		Blog:        blogEnabled,
	}
}

func testPosts() []blog.Post {
	return []blog.Post{
		{Slug: "b-post", Title: "Rock & <Roll>", Description: `Say "hi"`, Date: time.Date(2024, 5, 20, 0, 0, 0, 0, time.UTC), Published: true},
		{Slug: "a-post", Title: "First", Description: "Intro", Date: time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC), Published: true},
	}
}

func TestSiteFromConfig(t *testing.T) {
	cfg := config.New()
	cfg.SEO.SiteURL = "https://example.dev/"
	cfg.Features.ShowBlog = true

	site := SiteFromConfig(cfg)
	assert.Equal(t, "https://example.dev", site.URL)
	assert.Equal(t, "Hong4rc", site.Name)
	assert.True(t, site.Blog)
	assert.Equal(t, "https://example.dev/blog/x", site.PostURL("x"))
}

func TestRSS(t *testing.T) {
	out, err := RSS(testSite(true), testPosts(), now)
	require.NoError(t, err)
	doc := string(out)

	assert.Contains(t, doc, `<?xml version="1.0" encoding="UTF-8"?>`)
	assert.Contains(t, doc, `<rss version="2.0" xmlns:atom="http://www.w3.org/2005/Atom">`)
	assert.Contains(t, doc, "<title>Hong4rc - Backend Developer</title>")
	assert.Contains(t, doc, "<language>en</language>")
	assert.Contains(t, doc, "<lastBuildDate>Sat, 15 Jun 2024 09:30:00 GMT</lastBuildDate>")
	assert.Contains(t, doc, `<atom:link href="https://example.dev/rss.xml" rel="self" type="application/rss+xml"></atom:link>`)
	assert.Contains(t, doc, `<guid isPermaLink="true">https://example.dev/blog/b-post</guid>`)
	assert.Contains(t, doc, "<pubDate>Mon, 20 May 2024 00:00:00 GMT</pubDate>")
	assert.Contains(t, doc, "Rock &amp; &lt;Roll&gt;")
	assert.NotContains(t, doc, "<Roll>")

	var parsed struct {
		Channel struct {
			Items []struct {
				Title       string `xml:"title"`
				Link        string `xml:"link"`
				Description string `xml:"description"`
			} `xml:"item"`
		} `xml:"channel"`
	}
	require.NoError(t, xml.Unmarshal(out, &parsed))
	require.Len(t, parsed.Channel.Items, 2)
	assert.Equal(t, "Rock & <Roll>", parsed.Channel.Items[0].Title)
	assert.Equal(t, `Say "hi"`, parsed.Channel.Items[0].Description)
	assert.Equal(t, "https://example.dev/blog/a-post", parsed.Channel.Items[1].Link)
}

func TestRSSWithoutBlog(t *testing.T) {
	out, err := RSS(testSite(false), testPosts(), now)
	require.NoError(t, err)
	assert.NotContains(t, string(out), "<item>")
	assert.Contains(t, string(out), "<channel>")
}

func TestPages(t *testing.T) {
	pages := Pages(testSite(true), testPosts(), now)
	require.Len(t, pages, 4)
	assert.Equal(t, Page{Loc: "https://example.dev", LastMod: "2024-06-15", ChangeFreq: "weekly", Priority: 1.0}, pages[0])
	assert.Equal(t, Page{Loc: "https://example.dev/blog", LastMod: "2024-06-15", ChangeFreq: "weekly", Priority: 0.8}, pages[1])
	assert.Equal(t, Page{Loc: "https://example.dev/blog/b-post", LastMod: "2024-05-20", ChangeFreq: "monthly", Priority: 0.7}, pages[2])

	assert.Len(t, Pages(testSite(false), testPosts(), now), 1)
}

func TestSitemap(t *testing.T) {
	out, err := Sitemap(testSite(true), testPosts(), now)
	require.NoError(t, err)
	doc := string(out)

	assert.Contains(t, doc, `xmlns="http://www.sitemaps.org/schemas/sitemap/0.9"`)
	assert.Contains(t, doc, `xsi:schemaLocation="http://www.sitemaps.org/schemas/sitemap/0.9 http://www.sitemaps.org/schemas/sitemap/0.9/sitemap.xsd"`)
	assert.Contains(t, doc, "<priority>1.0</priority>")
	assert.Contains(t, doc, "<priority>0.7</priority>")
	assert.Contains(t, doc, "<changefreq>monthly</changefreq>")

	var parsed struct {
		URLs []struct {
			Loc string `xml:"loc"`
		} `xml:"url"`
	}
	require.NoError(t, xml.Unmarshal(out, &parsed))
	assert.Len(t, parsed.URLs, 4)
}

func TestWriteFiles(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "public")
	require.NoError(t, WriteFiles(dir, testSite(true), testPosts(), now))

	for _, name := range []string{RSSFile, SitemapFile} {
		data, err := os.ReadFile(filepath.Join(dir, name))
		require.NoError(t, err, name)
		assert.NotEmpty(t, data)
	}
}
