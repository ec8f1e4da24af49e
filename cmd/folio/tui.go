package main

import (
	"context"
	"io"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"folio/internal/analytics"
	"folio/internal/errors"
	"folio/internal/kv"
	"folio/internal/log"
	"folio/internal/theme"
	"folio/internal/tui"
)

// newTUICmd represents the TUI command
func newTUICmd(opts *rootOptions) *cobra.Command {
	var inline bool

	cmd := &cobra.Command{
		Use:   "tui",
		Short: "Browse the portfolio in the terminal",
		Long: `Start the terminal rendition of the site. Press space for the
command palette and ? for every key binding.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := opts.cfg
			// The terminal belongs to the UI: log to the log file only.
			opts.configureLogging(io.Discard)

			ctx, cancel := context.WithCancel(cmd.Context())
			defer cancel()

			state, err := kv.Open(cfg.StateFile)
			if err != nil {
				return err
			}

			themes := theme.NewStore(state)
			if err := themes.SetFallback(cfg.Theme); err != nil {
				log.LogWithError(err).Warn("Ignoring configured theme")
			}

			manager := analytics.FromConfig(cfg, state)
			manager.Init(ctx)
			defer func() {
				if err := manager.Close(); err != nil {
					log.LogError(err, "Failed to flush analytics")
				}
			}()

			tuiOpts := tui.Options{
				Config:  cfg,
				Themes:  themes,
				Tracker: analytics.NewTracker(manager),
			}
			if cfg.Features.ShowBlog {
				src, watcher, err := openBlog(ctx, cfg, true)
				if err != nil {
					log.LogWithError(err).Warn("Blog disabled")
				} else {
					tuiOpts.Blog = src
					if watcher != nil {
						defer watcher.Stop()
						tuiOpts.Reloads = watcher.Events()
					}
				}
			}

			m := tui.New(tuiOpts)
			defer m.Close()

			programOpts := []tea.ProgramOption{tea.WithContext(ctx)}
			if !inline {
				programOpts = append(programOpts, tea.WithAltScreen())
			}
			p := tea.NewProgram(m, programOpts...)
			if _, err := p.Run(); err != nil {
				return errors.Wrap(err, "error running TUI")
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&inline, "inline", false, "render below the prompt instead of the alternate screen")
	return cmd
}
