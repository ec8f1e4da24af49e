package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"folio/internal/feed"
)

// newBuildCmd creates the build command
func newBuildCmd(opts *rootOptions) *cobra.Command {
	var out string

	cmd := &cobra.Command{
		Use:   "build",
		Short: "Write rss.xml and sitemap.xml",
		Long:  `Render the RSS feed and the sitemap for the configured site into a directory.`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := opts.cfg
			src, _, err := openBlog(cmd.Context(), cfg, false)
			if err != nil {
				return err
			}
			posts, err := src.All(cmd.Context())
			if err != nil {
				return err
			}

			if err := feed.WriteFiles(out, feed.SiteFromConfig(cfg), posts, time.Now()); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), successText(fmt.Sprintf("Wrote %s and %s to %s (%d posts)",
				feed.RSSFile, feed.SitemapFile, out, len(posts))))
			return nil
		},
	}

	cmd.Flags().StringVarP(&out, "out", "o", "public", "output directory")
	return cmd
}
