package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"folio/internal/analytics"
	"folio/internal/blog"
	"folio/internal/feed"
	"folio/internal/log"
	"folio/internal/server"
)

// shutdownTimeout bounds how long in-flight requests may take after a signal.
const shutdownTimeout = 5 * time.Second

// newServeCmd creates the serve command
func newServeCmd(opts *rootOptions) *cobra.Command {
	var (
		addr    string
		noWatch bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the feeds and the blog API",
		Long: `Serve /rss.xml, /sitemap.xml and the JSON blog API. Posts are
reloaded when files in the posts directory change.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := opts.cfg
			if addr == "" {
				addr = cfg.Server.Addr
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			src, watcher, err := openBlog(ctx, cfg, !noWatch)
			if err != nil {
				return err
			}
			if watcher != nil {
				defer watcher.Stop()
				go logReloads(watcher.Events())
			}

			manager := analytics.FromConfig(cfg, nil)
			manager.Init(ctx)
			defer manager.Close()

			srv := server.New(src, feed.SiteFromConfig(cfg),
				server.WithTracker(analytics.NewTracker(manager)),
				server.WithRequestLog(),
			)

			errc := make(chan error, 1)
			go func() {
				errc <- srv.Listen(addr)
			}()

			select {
			case err := <-errc:
				return err
			case <-ctx.Done():
			}

			log.Info("Shutting down server")
			shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
			defer cancel()
			return srv.Shutdown(shutdownCtx)
		},
	}

	cmd.Flags().StringVarP(&addr, "addr", "a", "", "listen address (default from config, :3210)")
	cmd.Flags().BoolVar(&noWatch, "no-watch", false, "do not reload posts on change")
	return cmd
}

func logReloads(events <-chan blog.ReloadEvent) {
	for ev := range events {
		entry := log.LogWithFields(log.F("file", ev.Path), log.F("op", ev.Op.String()))
		if ev.Err != nil {
			entry.WithError(ev.Err).Warn("Posts reloaded with errors")
			continue
		}
		entry.Debug("Posts reloaded")
	}
}
