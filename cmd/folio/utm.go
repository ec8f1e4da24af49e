package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"folio/internal/analytics"
	"folio/internal/log"
	"folio/internal/utm"
)

// newUTMCmd creates the utm command
func newUTMCmd(opts *rootOptions) *cobra.Command {
	var p utm.Params

	cmd := &cobra.Command{
		Use:   "utm <url>",
		Short: "Tag a link with utm parameters",
		Long: `Print url with the portfolio's utm parameters. Source defaults to the
profile handle, medium to "portfolio" and campaign to "website".

With analytics enabled the link is tracked as a social or external click.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			link := utm.NewPortfolioBuilder(args[0], opts.cfg.Profile.Handle).
				WithParams(p).
				Build()
			fmt.Fprintln(cmd.OutOrStdout(), link)

			manager := analytics.FromConfig(opts.cfg, nil)
			manager.Init(cmd.Context())
			defer func() {
				if err := manager.Close(); err != nil {
					log.LogError(err, "Failed to flush analytics")
				}
			}()
			trackLink(analytics.NewTracker(manager), link, p.Campaign)
			return nil
		},
	}

	cmd.Flags().StringVar(&p.Source, "source", "", "utm_source")
	cmd.Flags().StringVar(&p.Medium, "medium", "", "utm_medium")
	cmd.Flags().StringVar(&p.Campaign, "campaign", "", "utm_campaign")
	cmd.Flags().StringVar(&p.Content, "content", "", "utm_content")
	cmd.Flags().StringVar(&p.Term, "term", "", "utm_term")
	return cmd
}

func trackLink(tr *analytics.Tracker, link, campaign string) {
	if platform, ok := analytics.PlatformOf(link); ok {
		tr.Social(platform, "utm")
		return
	}
	if campaign == "" {
		campaign = utm.DefaultCampaign
	}
	tr.ExternalLink(analytics.LinkCampaign, campaign, link)
}
