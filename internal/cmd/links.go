package cmd

import (
	_ "embed"
	"fmt"
	"os"

	"github.com/lost-stats/lostmd/internal/links"
	"github.com/spf13/cobra"
)

//go:embed help/links.md
var linksHelp string

func linksCmd(opts *options) *cobra.Command {
	cmd := &cobra.Command{ //nolint:exhaustruct
		Use:     "links [flags] PATTERN...",
		Aliases: []string{"l"},
		Short:   "Rewrite absolute site links into relative_url expressions",
		Long:    linksHelp,
		Args:    cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.createStatus(cmd.ErrOrStderr())

			files, err := expandArgs(opts, args)
			if err != nil {
				return err
			}

			var failures int

			for _, name := range files {
				if err := fixFile(name); err != nil {
					opts.status("warning: %s: %v\n", name, err)

					failures++

					continue
				}

				opts.status("fixed %s\n", name)
			}

			if failures > 0 {
				return fmt.Errorf("%d file(s) failed", failures)
			}

			return nil
		},

		DisableAutoGenTag: true,
	}

	skipFlag(cmd, opts)
	quietFlag(cmd, opts)

	return cmd
}

func fixFile(name string) error {
	source, err := os.ReadFile(name)
	if err != nil {
		return err
	}

	return os.WriteFile(name, links.Fix(source), fileMode)
}
