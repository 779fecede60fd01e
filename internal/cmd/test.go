package cmd

import (
	_ "embed"
	"fmt"
	"strings"

	"github.com/lost-stats/lostmd/internal/mdcode"
	"github.com/lost-stats/lostmd/internal/runner"
	"github.com/rodaine/table"
	"github.com/spf13/cobra"
)

//go:embed help/test.md
var testHelp string

func testCmd(opts *options) *cobra.Command {
	var (
		languages    []string
		dockerPython string
		dockerR      string
	)

	cmd := &cobra.Command{ //nolint:exhaustruct
		Use:     "test [flags] PATTERN...",
		Aliases: []string{"t"},
		Short:   "Run code samples in isolated docker images and report failures",
		Long:    testHelp,
		Args:    cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.createStatus(cmd.ErrOrStderr())

			files, err := expandArgs(opts, args)
			if err != nil {
				return err
			}

			blocks, err := collectBlocks(files)
			if err != nil {
				return err
			}

			blocks = runnable(blocks)

			extraArgs, err := runner.ExtraDockerArgs()
			if err != nil {
				return err
			}

			allow := make(map[string]bool, len(languages))
			for _, language := range languages {
				allow[strings.ToLower(strings.TrimSpace(language))] = true
			}

			suites := []struct {
				blocks   []mdcode.CodeBlock
				executor runner.Executor
			}{
				{
					blocks: selectBlocks(blocks, allow, "python", func(lang string) bool {
						return strings.HasPrefix(lang, "py")
					}),
					executor: runner.NewPythonExecutor(dockerPython, extraArgs),
				},
				{
					blocks: selectBlocks(blocks, allow, "r", func(lang string) bool {
						return lang == "r"
					}),
					executor: runner.NewRExecutor(dockerR, extraArgs),
				},
			}

			tbl := table.New("Language", "Location", "Exit", "Block").
				WithWriter(cmd.OutOrStdout())

			var failures int

			for _, suite := range suites {
				for _, block := range suite.blocks {
					opts.status("--- %s ---\n", block)

					outcome, err := runner.Execute(block, suite.executor)
					if err != nil {
						return err
					}

					if outcome.ExitCode != 0 {
						failures++

						fmt.Fprint(cmd.OutOrStdout(), outcome.Output)
					}

					tbl.AddRow(block.Language, block.Location, outcome.ExitCode, shortCode(block))
				}
			}

			tbl.Print()

			if failures > 0 {
				return fmt.Errorf("%d code block(s) failed", failures)
			}

			return nil
		},

		DisableAutoGenTag: true,
	}

	cmd.Flags().StringArrayVar(&languages, "language", nil,
		"languages whose code samples to run (default is all)")
	cmd.Flags().StringVar(&dockerPython, "docker-python", runner.DefaultPythonImage(),
		"docker image in which to run Python code")
	cmd.Flags().StringVar(&dockerR, "docker-r", runner.DefaultRImage(),
		"docker image in which to run R code")
	skipFlag(cmd, opts)
	quietFlag(cmd, opts)

	return cmd
}

// selectBlocks picks the blocks belonging to a language suite. A non-empty
// allow-list that leaves the language out degrades the suite to a single
// trivial smoke-test block rather than skipping it.
func selectBlocks(blocks []mdcode.CodeBlock, allow map[string]bool, language string, match func(string) bool) []mdcode.CodeBlock {
	if len(allow) > 0 && !allow[language] {
		return []mdcode.CodeBlock{{Language: language, Code: "1 + 1", Options: mdcode.Options{}}}
	}

	var selected []mdcode.CodeBlock

	for _, block := range blocks {
		if match(block.Language) {
			selected = append(selected, block)
		}
	}

	return selected
}

func shortCode(block mdcode.CodeBlock) string {
	code := block.Code
	if idx := strings.IndexByte(code, '\n'); idx >= 0 {
		code = code[:idx]
	}

	if len(code) > 40 {
		code = code[:40]
	}

	if len(code) < len(block.Code) {
		code += "..."
	}

	return code
}
