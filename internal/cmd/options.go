package cmd

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/lost-stats/lostmd/internal/mdcode"
	"github.com/lost-stats/lostmd/internal/pathutil"
	"github.com/spf13/cobra"
)

const fileMode = 0o644

type statusFunc func(format string, args ...interface{})

type options struct {
	skip   []string
	quiet  bool
	status statusFunc
}

func (o *options) createStatus(w io.Writer) {
	if o.quiet {
		o.status = func(string, ...interface{}) {}

		return
	}

	o.status = func(format string, args ...interface{}) {
		fmt.Fprintf(w, format, args...)
	}
}

func skipFlag(cmd *cobra.Command, opts *options) {
	cmd.Flags().StringArrayVar(&opts.skip, "skip", nil,
		"files to skip; follows the same expansion rules as PATTERN")
}

func quietFlag(cmd *cobra.Command, opts *options) {
	cmd.Flags().BoolVarP(&opts.quiet, "quiet", "q", false, "suppress status output")
}

var errNoFiles = errors.New("no markdown files matched")

// expandArgs resolves the positional patterns minus the skip list against the
// working directory.
func expandArgs(opts *options, patterns []string) ([]string, error) {
	files, err := pathutil.ExpandAndFilter(os.DirFS("."), patterns, opts.skip)
	if err != nil {
		return nil, err
	}

	if len(files) == 0 {
		return nil, errNoFiles
	}

	return files, nil
}

// collectBlocks extracts the code blocks of every file, tagged with the file
// they came from.
func collectBlocks(files []string) ([]mdcode.CodeBlock, error) {
	var all []mdcode.CodeBlock

	for _, name := range files {
		source, err := os.ReadFile(name)
		if err != nil {
			return nil, err
		}

		blocks, err := mdcode.Extract(source, name)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", name, err)
		}

		all = append(all, blocks...)
	}

	return all, nil
}

// runnable drops blocks whose skip option is set.
func runnable(blocks []mdcode.CodeBlock) []mdcode.CodeBlock {
	var kept []mdcode.CodeBlock

	for _, block := range blocks {
		if strings.ToLower(block.Options.Get("skip")) == "true" {
			continue
		}

		kept = append(kept, block)
	}

	return kept
}
