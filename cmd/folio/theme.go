package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"folio/internal/kv"
	"folio/internal/log"
	"folio/internal/theme"
)

// newThemeCmd creates the theme command
func newThemeCmd(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "theme",
		Short: "Show or change the colour theme",
		Long:  `List the Catppuccin flavours and persist the one the terminal UI starts with.`,
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List themes, marking the current one",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			themes, err := openThemes(opts)
			if err != nil {
				return err
			}
			current := themes.Init().Name
			for _, t := range theme.All() {
				marker := "  "
				if t.Name == current {
					marker = "* "
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s%-10s %s %s\n", marker, t.Name, t.Icon, t.Label)
			}
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:       "set <name>",
		Short:     "Select and persist a theme",
		Args:      cobra.ExactArgs(1),
		ValidArgs: theme.Names(),
		RunE: func(cmd *cobra.Command, args []string) error {
			themes, err := openThemes(opts)
			if err != nil {
				return err
			}
			if err := themes.Set(args[0]); err != nil {
				return err
			}
			t := themes.Current()
			fmt.Fprintln(cmd.OutOrStdout(), successText(fmt.Sprintf("Theme set to %s %s", t.Label, t.Icon)))
			return nil
		},
	})

	return cmd
}

// openThemes opens the theme store over the state file with the configured
// theme as the fallback.
func openThemes(opts *rootOptions) (*theme.Store, error) {
	state, err := kv.Open(opts.cfg.StateFile)
	if err != nil {
		return nil, err
	}
	themes := theme.NewStore(state)
	if err := themes.SetFallback(opts.cfg.Theme); err != nil {
		log.LogWithError(err).Warn("Ignoring configured theme")
	}
	return themes, nil
}
