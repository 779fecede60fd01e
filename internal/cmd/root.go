// Package cmd wires the lostmd command-line interface.
package cmd

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"
)

func rootCmd() *cobra.Command {
	cmd := &cobra.Command{ //nolint:exhaustruct
		Use:   "lostmd",
		Short: "Utilities for testing and cleaning markdown code samples",
		Long: "lostmd keeps the code samples embedded in a markdown corpus runnable and\n" +
			"consistently styled. It extracts fenced code blocks, restyles them with\n" +
			"per-language formatters, and runs them inside isolated docker images.",

		SilenceUsage:      true,
		SilenceErrors:     true,
		DisableAutoGenTag: true,
	}

	cmd.AddCommand(
		styleCmd(&options{}),
		testCmd(&options{}),
		execCmd(&options{}),
		linksCmd(&options{}),
	)

	return cmd
}

// Execute runs the CLI and returns the process exit code.
func Execute(args []string, stdout, stderr io.Writer) int {
	cmd := rootCmd()
	cmd.SetArgs(args)
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)

	if err := cmd.Execute(); err != nil {
		fmt.Fprintf(stderr, "error: %v\n", err)

		return 1
	}

	return 0
}
