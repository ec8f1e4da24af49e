package main

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"folio/internal/blog"
	"folio/internal/config"
	"folio/internal/log"
)

// rootOptions carries the persistent flags and the loaded configuration to
// the subcommands.
type rootOptions struct {
	cfgFile  string
	debug    bool
	logFile  string
	jsonLogs bool

	cfg *config.Config
}

// NewRootCmd creates the root command
func NewRootCmd() *cobra.Command {
	opts := &rootOptions{}

	rootCmd := &cobra.Command{
		Use:   "folio",
		Short: "A developer portfolio and blog",
		Long: logo + `
Folio renders a developer portfolio and markdown blog in the terminal,
serves its feeds and API over HTTP and builds the static RSS and sitemap.
`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return opts.load(cmd)
		},
	}

	rootCmd.PersistentFlags().StringVar(&opts.cfgFile, "config", "", "config file (default is $HOME/.config/folio/config.yaml)")
	rootCmd.PersistentFlags().BoolVar(&opts.debug, "debug", false, "enable debug logging")
	rootCmd.PersistentFlags().StringVar(&opts.logFile, "log-file", "", "also append log lines to this file")
	rootCmd.PersistentFlags().BoolVar(&opts.jsonLogs, "json-logs", false, "log JSON lines")

	// Add subcommands
	rootCmd.AddCommand(newTUICmd(opts))
	rootCmd.AddCommand(newServeCmd(opts))
	rootCmd.AddCommand(newBuildCmd(opts))
	rootCmd.AddCommand(newPostsCmd(opts))
	rootCmd.AddCommand(newThemeCmd(opts))
	rootCmd.AddCommand(newUTMCmd(opts))
	return rootCmd
}

// Execute runs the root command and prints a failure the way the other
// messages are printed.
func Execute(cmd *cobra.Command) error {
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(cmd.ErrOrStderr(), errorText(err.Error()))
		return err
	}
	return nil
}

// load reads the configuration and sets up logging. A config file that
// cannot be read or fails validation falls back to the defaults.
func (o *rootOptions) load(cmd *cobra.Command) error {
	var err error
	if o.cfgFile != "" {
		o.cfg, err = config.LoadConfigFile(o.cfgFile)
	} else {
		o.cfg, err = config.LoadConfig()
	}
	if err != nil {
		fmt.Fprintln(cmd.ErrOrStderr(), warningText(fmt.Sprintf("Warning: %v", err)))
		fmt.Fprintln(cmd.ErrOrStderr(), infoText("Using default settings."))
		o.cfg = config.New()
	}

	o.configureLogging(cmd.ErrOrStderr())
	return nil
}

// configureLogging points the package logger at out, plus the log file
// from the flag or the configuration.
func (o *rootOptions) configureLogging(out io.Writer) {
	logOpts := []log.Option{log.WithOutput(out)}
	if o.jsonLogs || (o.cfg != nil && o.cfg.Log.JSON) {
		logOpts = append(logOpts, log.WithJSON())
	}
	logFile := o.logFile
	if logFile == "" && o.cfg != nil {
		logFile = o.cfg.Log.File
	}
	if logFile != "" {
		logOpts = append(logOpts, log.WithFile(logFile))
	}
	log.Configure(logOpts...)
	log.SetDebug(o.debug || (o.cfg != nil && o.cfg.Log.Debug))
}

// openBlog loads the posts directory behind a TTL cache. With watch set and
// the blog.watch setting on, a started watcher keeps the posts current; the
// caller stops it.
func openBlog(ctx context.Context, cfg *config.Config, watch bool) (*blog.Source, *blog.Watcher, error) {
	src, err := blog.NewRepository(ctx, blog.Options{
		Dir:      cfg.Blog.Dir,
		Pattern:  cfg.Blog.Pattern,
		Cached:   true,
		CacheTTL: cfg.CacheTTL(),
	})
	if src == nil {
		return nil, nil, err
	}
	if err != nil {
		log.LogWithError(err).Warn("Some posts could not be loaded")
	}

	if !watch || !cfg.Blog.Watch {
		return src, nil, nil
	}
	watcher, err := blog.NewWatcher(src.Markdown, src)
	if err != nil {
		log.LogWithError(err).Warn("Posts will not reload on change")
		return src, nil, nil
	}
	if err := watcher.Start(ctx); err != nil {
		watcher.Stop()
		log.LogWithError(err).Warn("Posts will not reload on change")
		return src, nil, nil
	}
	return src, watcher, nil
}
