package cmd

import (
	_ "embed"
	"fmt"
	"os"

	"github.com/lost-stats/lostmd/internal/runner"
	"github.com/lost-stats/lostmd/internal/style"
	"github.com/spf13/cobra"
)

//go:embed help/style.md
var styleHelp string

func styleCmd(opts *options) *cobra.Command {
	var dockerR string

	cmd := &cobra.Command{ //nolint:exhaustruct
		Use:     "style [flags] PATTERN...",
		Aliases: []string{"s"},
		Short:   "Restyle code samples with per-language formatters",
		Long:    styleHelp,
		Args:    cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.createStatus(cmd.ErrOrStderr())

			files, err := expandArgs(opts, args)
			if err != nil {
				return err
			}

			extraArgs, err := runner.ExtraDockerArgs()
			if err != nil {
				return err
			}

			dispatch := style.NewDispatch(runner.NewRStyler(dockerR, extraArgs))

			var failures int

			for _, name := range files {
				if err := styleFile(name, dispatch); err != nil {
					opts.status("warning: %s: %v\n", name, err)

					failures++

					continue
				}

				opts.status("styled %s\n", name)
			}

			if failures > 0 {
				return fmt.Errorf("%d file(s) failed", failures)
			}

			return nil
		},

		DisableAutoGenTag: true,
	}

	cmd.Flags().StringVar(&dockerR, "docker-r", runner.DefaultRImage(),
		"docker image in which to run styler for R code")
	skipFlag(cmd, opts)
	quietFlag(cmd, opts)

	return cmd
}

// styleFile rewrites one file in place. Nothing is written unless the whole
// rewrite succeeds, so a bad block never leaves a half-styled file behind.
func styleFile(name string, dispatch *style.Dispatch) error {
	source, err := os.ReadFile(name)
	if err != nil {
		return err
	}

	result, err := style.Rewrite(source, dispatch.Render)
	if err != nil {
		return err
	}

	return os.WriteFile(name, result, fileMode)
}
