// Package feed renders the site's RSS feed and sitemap.
package feed

import (
	"bytes"
	"encoding/xml"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"folio/internal/blog"
	"folio/internal/config"
	"folio/internal/errors"
	"folio/internal/log"
)

// File names written by WriteFiles and served by the HTTP server.
const (
	RSSFile     = "rss.xml"
	SitemapFile = "sitemap.xml"

	ContentType  = "application/xml"
	CacheControl = "max-age=0, s-maxage=3600"
)

// Dates in RSS are RFC 1123 in GMT.
const rssDateLayout = "Mon, 02 Jan 2006 15:04:05 GMT"

// Site is the part of the configuration the feeds need.
type Site struct {
	Name        string
	Title       string
	Description string
	URL         string
	Blog        bool
}

// SiteFromConfig extracts the feed settings from cfg.
func SiteFromConfig(cfg *config.Config) Site {
	return Site{
		Name:        cfg.Profile.Name,
		Title:       cfg.Profile.Title,
		Description: cfg.Profile.Bio,
		URL:         strings.TrimRight(cfg.SEO.SiteURL, "/"),
		Blog:        cfg.Features.ShowBlog,
	}
}

// PostURL is the canonical URL of a post.
func (s Site) PostURL(slug string) string {
	return s.URL + "/blog/" + slug
}

type rss struct {
	XMLName xml.Name   `xml:"rss"`
	Version string     `xml:"version,attr"`
	Atom    string     `xml:"xmlns:atom,attr"`
	Channel rssChannel `xml:"channel"`
}

type rssChannel struct {
	Title         string    `xml:"title"`
	Link          string    `xml:"link"`
	Description   string    `xml:"description"`
	Language      string    `xml:"language"`
	LastBuildDate string    `xml:"lastBuildDate"`
	AtomLink      atomLink  `xml:"atom:link"`
	Items         []rssItem `xml:"item"`
}

type atomLink struct {
	Href string `xml:"href,attr"`
	Rel  string `xml:"rel,attr"`
	Type string `xml:"type,attr"`
}

type rssItem struct {
	Title       string  `xml:"title"`
	Link        string  `xml:"link"`
	GUID        rssGUID `xml:"guid"`
	Description string  `xml:"description"`
	PubDate     string  `xml:"pubDate"`
}

type rssGUID struct {
	IsPermaLink bool   `xml:"isPermaLink,attr"`
	Value       string `xml:",chardata"`
}

// RSS renders an RSS 2.0 feed of posts. The feed has no items when the blog
// is disabled.
func RSS(site Site, posts []blog.Post, now time.Time) ([]byte, error) {
	doc := rss{
		Version: "2.0",
		Atom:    "http://www.w3.org/2005/Atom",
		Channel: rssChannel{
			Title:         site.Name + " - " + site.Title,
			Link:          site.URL,
			Description:   site.Description,
			Language:      "en",
			LastBuildDate: now.UTC().Format(rssDateLayout),
			AtomLink: atomLink{
				Href: site.URL + "/" + RSSFile,
				Rel:  "self",
				Type: "application/rss+xml",
			},
		},
	}
	if site.Blog {
		for _, p := range posts {
			link := site.PostURL(p.Slug)
			doc.Channel.Items = append(doc.Channel.Items, rssItem{
				Title:       p.Title,
				Link:        link,
				GUID:        rssGUID{IsPermaLink: true, Value: link},
				Description: p.Description,
				PubDate:     p.Date.UTC().Format(rssDateLayout),
			})
		}
	}
	return encode(doc)
}

type urlset struct {
	XMLName        xml.Name     `xml:"urlset"`
	XMLNS          string       `xml:"xmlns,attr"`
	XSI            string       `xml:"xmlns:xsi,attr"`
	SchemaLocation string       `xml:"xsi:schemaLocation,attr"`
	URLs           []sitemapURL `xml:"url"`
}

type sitemapURL struct {
	Loc        string `xml:"loc"`
	LastMod    string `xml:"lastmod,omitempty"`
	ChangeFreq string `xml:"changefreq,omitempty"`
	Priority   string `xml:"priority,omitempty"`
}

// Page is one sitemap entry.
type Page struct {
	Loc        string
	LastMod    string
	ChangeFreq string
	Priority   float64
}

// Pages lists the sitemap entries: the home page, then the blog index and
// each post when the blog is enabled.
func Pages(site Site, posts []blog.Post, today time.Time) []Page {
	day := today.UTC().Format(blog.DateLayout)
	pages := []Page{{Loc: site.URL, LastMod: day, ChangeFreq: "weekly", Priority: 1.0}}
	if !site.Blog {
		return pages
	}
	pages = append(pages, Page{Loc: site.URL + "/blog", LastMod: day, ChangeFreq: "weekly", Priority: 0.8})
	for _, p := range posts {
		pages = append(pages, Page{
			Loc:        site.PostURL(p.Slug),
			LastMod:    p.Date.UTC().Format(blog.DateLayout),
			ChangeFreq: "monthly",
			Priority:   0.7,
		})
	}
	return pages
}

// Sitemap renders the sitemap.org urlset for Pages.
func Sitemap(site Site, posts []blog.Post, today time.Time) ([]byte, error) {
	doc := urlset{
		XMLNS:          "http://www.sitemaps.org/schemas/sitemap/0.9",
		XSI:            "http://www.w3.org/2001/XMLSchema-instance",
		SchemaLocation: "http://www.sitemaps.org/schemas/sitemap/0.9 http://www.sitemaps.org/schemas/sitemap/0.9/sitemap.xsd",
	}
	for _, p := range Pages(site, posts, today) {
		doc.URLs = append(doc.URLs, sitemapURL{
			Loc:        p.Loc,
			LastMod:    p.LastMod,
			ChangeFreq: p.ChangeFreq,
			Priority:   strconv.FormatFloat(p.Priority, 'f', 1, 64),
		})
	}
	return encode(doc)
}

func encode(v any) ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteString(xml.Header)
	enc := xml.NewEncoder(&buf)
	enc.Indent("", "  ")
	if err := enc.Encode(v); err != nil {
		return nil, errors.Wrap(err, "failed to encode xml")
	}
	buf.WriteByte('\n')
	return buf.Bytes(), nil
}

// WriteFiles renders both documents into dir.
func WriteFiles(dir string, site Site, posts []blog.Post, now time.Time) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return errors.NewStorageError("failed to create output directory", dir, errors.StorageWriteFailed, err)
	}

	rssDoc, err := RSS(site, posts, now)
	if err != nil {
		return err
	}
	sitemap, err := Sitemap(site, posts, now)
	if err != nil {
		return err
	}

	for name, data := range map[string][]byte{RSSFile: rssDoc, SitemapFile: sitemap} {
		path := filepath.Join(dir, name)
		if err := os.WriteFile(path, data, 0644); err != nil {
			return errors.NewStorageError("failed to write feed", path, errors.StorageWriteFailed, err)
		}
		log.LogWithFields(log.F("path", path), log.F("bytes", len(data))).Info("Feed written")
	}
	return nil
}
