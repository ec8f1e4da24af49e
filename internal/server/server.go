// Package server serves the blog API and the generated feeds over HTTP.
package server

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/healthcheck"
	"github.com/gofiber/fiber/v3/middleware/recover"

	"folio/internal/analytics"
	"folio/internal/blog"
	"folio/internal/errors"
	"folio/internal/feed"
	"folio/internal/log"
)

// Server is the fiber app in front of a blog repository.
type Server struct {
	app     *fiber.App
	repo    blog.Repository
	site    feed.Site
	tracker *analytics.Tracker
	now     func() time.Time
	logReqs bool
}

const livenessPath = "/livez"

// Option configures a Server.
type Option func(*Server)

// WithTracker tracks blog_view for every post served.
func WithTracker(t *analytics.Tracker) Option {
	return func(s *Server) { s.tracker = t }
}

// WithClock replaces time.Now for feed dates.
func WithClock(now func() time.Time) Option {
	return func(s *Server) { s.now = now }
}

// WithRequestLog logs one line per request.
func WithRequestLog() Option {
	return func(s *Server) { s.logReqs = true }
}

// postResponse is the body of GET /api/posts/:slug.
type postResponse struct {
	Post    blog.Post `json:"post"`
	Content string    `json:"content"`
	Prev    string    `json:"prev,omitempty"`
	Next    string    `json:"next,omitempty"`
}

type errorResponse struct {
	Error string `json:"error"`
}

// New builds the app and registers its routes.
func New(repo blog.Repository, site feed.Site, opts ...Option) *Server {
	srv := &Server{repo: repo, site: site, now: time.Now}
	for _, opt := range opts {
		opt(srv)
	}

	srv.app = fiber.New(fiber.Config{
		AppName:      site.Name,
		ServerHeader: "folio",
		ErrorHandler: errorHandler,
	})

	srv.app.Use(recover.New())
	if srv.logReqs {
		srv.app.Use(requestLogger)
	}

	srv.app.Get("/"+feed.RSSFile, srv.pageView, srv.handleRSS)
	srv.app.Get("/"+feed.SitemapFile, srv.pageView, srv.handleSitemap)
	srv.app.Get("/api/posts", srv.pageView, srv.handlePosts)
	srv.app.Get("/api/posts/:slug", srv.pageView, srv.handlePost)
	srv.app.Get("/api/tags", srv.pageView, srv.handleTags)
	srv.app.Get("/healthz", srv.handleHealth)
	srv.app.Get(livenessPath, healthcheck.New())
	return srv
}

// App exposes the fiber app, mainly for app.Test.
func (srv *Server) App() *fiber.App { return srv.app }

// Listen serves on addr until Shutdown.
func (srv *Server) Listen(addr string) error {
	log.LogWithFields(log.F("addr", addr)).Info("Starting server")
	return srv.app.Listen(addr, fiber.ListenConfig{DisableStartupMessage: true})
}

// Shutdown stops the server, waiting for active requests until ctx is done.
func (srv *Server) Shutdown(ctx context.Context) error {
	return srv.app.ShutdownWithContext(ctx)
}

func (srv *Server) handleRSS(c fiber.Ctx) error {
	posts, err := srv.repo.All(c)
	if err != nil {
		return err
	}
	data, err := feed.RSS(srv.site, posts, srv.now())
	if err != nil {
		return err
	}
	return sendXML(c, data)
}

func (srv *Server) handleSitemap(c fiber.Ctx) error {
	posts, err := srv.repo.All(c)
	if err != nil {
		return err
	}
	data, err := feed.Sitemap(srv.site, posts, srv.now())
	if err != nil {
		return err
	}
	return sendXML(c, data)
}

func sendXML(c fiber.Ctx, data []byte) error {
	c.Set(fiber.HeaderContentType, feed.ContentType)
	c.Set(fiber.HeaderCacheControl, feed.CacheControl)
	return c.Status(fiber.StatusOK).Send(data)
}

// handlePosts lists posts, optionally narrowed by ?q= and ?tag=.
func (srv *Server) handlePosts(c fiber.Ctx) error {
	var (
		posts []blog.Post
		err   error
	)
	if q := c.Query("q"); q != "" {
		posts, err = srv.repo.Search(c, q)
	} else {
		posts, err = srv.repo.All(c)
	}
	if err != nil {
		return err
	}

	if tag := c.Query("tag"); tag != "" {
		tagged := []blog.Post{}
		for _, p := range posts {
			if p.HasTag(tag) {
				tagged = append(tagged, p)
			}
		}
		posts = tagged
	}
	if posts == nil {
		posts = []blog.Post{}
	}
	return c.Status(fiber.StatusOK).JSON(posts)
}

func (srv *Server) handlePost(c fiber.Ctx) error {
	slug := c.Params("slug")
	post, err := srv.repo.BySlug(c, slug)
	if err != nil {
		return err
	}
	content, err := srv.repo.Content(c, slug)
	if err != nil {
		return err
	}
	adj, err := srv.repo.Adjacent(c, slug)
	if err != nil {
		return err
	}

	resp := postResponse{Post: post, Content: content}
	if adj.Prev != nil {
		resp.Prev = adj.Prev.Slug
	}
	if adj.Next != nil {
		resp.Next = adj.Next.Slug
	}
	srv.tracker.BlogView(post.Slug, post.Title)
	return c.Status(fiber.StatusOK).JSON(resp)
}

func (srv *Server) handleTags(c fiber.Ctx) error {
	tags, err := srv.repo.Tags(c)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusOK).JSON(tags)
}

func (srv *Server) handleHealth(c fiber.Ctx) error {
	posts, err := srv.repo.All(c)
	if err != nil {
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"status": "unavailable"})
	}
	return c.Status(fiber.StatusOK).JSON(fiber.Map{"status": "ok", "posts": len(posts)})
}

// pageView tracks a page_view for every feed or API hit that succeeds.
func (srv *Server) pageView(c fiber.Ctx) error {
	if err := c.Next(); err != nil {
		return err
	}
	srv.tracker.PageView(c.Path(), analytics.Properties{"status": c.Response().StatusCode()})
	return nil
}

// requestLogger logs method, path, status and latency. Probes are skipped.
// Errors go through the app's error handler first so the logged status is
// the one sent.
func requestLogger(c fiber.Ctx) error {
	if p := c.Path(); p == "/healthz" || p == livenessPath {
		return c.Next()
	}
	start := time.Now()
	if err := c.Next(); err != nil {
		if herr := c.App().ErrorHandler(c, err); herr != nil {
			_ = c.SendStatus(fiber.StatusInternalServerError)
		}
	}
	log.LogWithFields(
		log.F("method", c.Method()),
		log.F("path", c.Path()),
		log.F("status", c.Response().StatusCode()),
		log.F("latency", time.Since(start).String()),
	).Info("Request")
	return nil
}

// errorHandler maps application errors to status codes and a JSON body.
func errorHandler(c fiber.Ctx, err error) error {
	status := fiber.StatusInternalServerError
	msg := "internal server error"

	var fe *fiber.Error
	switch {
	case errors.IsPostNotFound(err):
		status = fiber.StatusNotFound
		msg = err.Error()
	case errors.As(err, &fe):
		status = fe.Code
		msg = fe.Message
	default:
		log.LogWithFields(log.F("path", c.Path()), log.F("method", c.Method())).WithError(err).Error("Request failed")
	}
	return c.Status(status).JSON(errorResponse{Error: msg})
}
