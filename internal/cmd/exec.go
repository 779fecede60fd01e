package cmd

import (
	"context"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/lost-stats/lostmd/internal/mdcode"
	"github.com/spf13/cobra"
	"mvdan.cc/sh/v3/interp"
	"mvdan.cc/sh/v3/syntax"
)

//go:embed help/exec.md
var execHelp string

var (
	errMissingCommand = errors.New("command is required after '--'")
	errMissingPattern = errors.New("at least one PATTERN is required")
)

func execCmd(opts *options) *cobra.Command {
	var keep bool

	cmd := &cobra.Command{ //nolint:exhaustruct
		Use:     "exec [flags] PATTERN... -- command",
		Aliases: []string{"e"},
		Short:   "Run a shell command on each extracted code block",
		Long:    execHelp,
		Args: func(cmd *cobra.Command, args []string) error {
			dash := cmd.ArgsLenAtDash()
			if dash < 0 || dash >= len(args) {
				return errMissingCommand
			}

			if dash == 0 {
				return errMissingPattern
			}

			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.createStatus(cmd.ErrOrStderr())

			dash := cmd.ArgsLenAtDash()
			patterns, script := args[:dash], strings.Join(args[dash:], " ")

			files, err := expandArgs(opts, patterns)
			if err != nil {
				return err
			}

			dir, err := os.MkdirTemp(".", "lostmd-exec-")
			if err != nil {
				return err
			}

			if !keep {
				defer os.RemoveAll(dir)
			}

			absDir, err := filepath.Abs(dir)
			if err != nil {
				return err
			}

			return execRun(cmd, opts, files, script, absDir)
		},

		DisableAutoGenTag: true,
	}

	cmd.Flags().BoolVarP(&keep, "keep", "k", false, "don't remove temporary directory")
	skipFlag(cmd, opts)
	quietFlag(cmd, opts)

	return cmd
}

func execRun(cmd *cobra.Command, opts *options, files []string, script, dir string) error {
	var (
		index    int
		failures int
	)

	for _, name := range files {
		blocks, err := collectBlocks([]string{name})
		if err != nil {
			return err
		}

		for _, block := range runnable(blocks) {
			tempPath := filepath.Join(dir, tempFilename(block, index))
			if err := os.WriteFile(tempPath, []byte(block.Code), fileMode); err != nil {
				return err
			}

			expanded := expandCommand(script, block, tempPath, index, dir)

			opts.status("--- block %d (%s) : %s ---\n", index, block.Language, name)

			exitCode, err := runCommand(expanded, dir, cmd.OutOrStdout(), cmd.ErrOrStderr())
			if err != nil {
				return err
			}

			if exitCode != 0 {
				failures++
			}

			index++
		}
	}

	if failures > 0 {
		return fmt.Errorf("%d block(s) failed", failures)
	}

	return nil
}

func tempFilename(block mdcode.CodeBlock, index int) string {
	return fmt.Sprintf("block_%d%s", index, langExtension(block.Language))
}

func langExtension(lang string) string {
	if len(lang) > 0 {
		return "." + lang
	}

	return ".txt"
}

func expandCommand(script string, block mdcode.CodeBlock, tempPath string, index int, dir string) string {
	expanded := strings.ReplaceAll(script, "{}", tempPath)
	expanded = strings.ReplaceAll(expanded, "{lang}", block.Language)
	expanded = strings.ReplaceAll(expanded, "{index}", fmt.Sprint(index))
	expanded = strings.ReplaceAll(expanded, "{dir}", dir)

	return expanded
}

func runCommand(command, dir string, stdout, stderr io.Writer) (int, error) {
	file, err := syntax.NewParser().Parse(strings.NewReader(command), "")
	if err != nil {
		return -1, err
	}

	run, err := interp.New(interp.Dir(dir), interp.StdIO(os.Stdin, stdout, stderr))
	if err != nil {
		return -1, err
	}

	err = run.Run(context.TODO(), file)
	if err != nil {
		if status, ok := interp.IsExitStatus(err); ok {
			return int(status), nil
		}

		return -1, err
	}

	return 0, nil
}
