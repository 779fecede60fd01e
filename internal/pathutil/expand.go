// Package pathutil expands glob patterns into the set of markdown files to
// process.
package pathutil

import (
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strings"

	"github.com/gobwas/glob"
)

const mdExt = ".md"

// Expand resolves patterns against fsys. A pattern containing glob
// metacharacters is matched against every path in the tree; a plain name is
// taken as-is. Matched directories contribute every .md file beneath them.
// Anything that does not exist or does not end in .md is dropped. The result
// is sorted and free of duplicates.
func Expand(fsys fs.FS, patterns []string) ([]string, error) {
	var candidates []string

	for _, pattern := range patterns {
		if !isPattern(pattern) {
			candidates = append(candidates, path.Clean(pattern))

			continue
		}

		matcher, err := glob.Compile(path.Clean(pattern), '/')
		if err != nil {
			return nil, fmt.Errorf("bad pattern %q: %w", pattern, err)
		}

		err = fs.WalkDir(fsys, ".", func(p string, _ fs.DirEntry, err error) error {
			if err != nil {
				return err
			}

			if p != "." && matcher.Match(p) {
				candidates = append(candidates, p)
			}

			return nil
		})
		if err != nil {
			return nil, err
		}
	}

	seen := make(map[string]bool)

	var files []string

	add := func(p string) {
		if !seen[p] {
			seen[p] = true
			files = append(files, p)
		}
	}

	for _, name := range candidates {
		info, err := fs.Stat(fsys, name)
		if err != nil {
			continue
		}

		if !info.IsDir() {
			if strings.HasSuffix(name, mdExt) {
				add(name)
			}

			continue
		}

		err = fs.WalkDir(fsys, name, func(p string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}

			if !d.IsDir() && strings.HasSuffix(p, mdExt) {
				add(p)
			}

			return nil
		})
		if err != nil {
			return nil, err
		}
	}

	sort.Strings(files)

	return files, nil
}

// ExpandAndFilter expands patterns and then subtracts the expansion of skips
// by exact path match.
func ExpandAndFilter(fsys fs.FS, patterns, skips []string) ([]string, error) {
	files, err := Expand(fsys, patterns)
	if err != nil {
		return nil, err
	}

	skipFiles, err := Expand(fsys, skips)
	if err != nil {
		return nil, err
	}

	skipSet := make(map[string]bool, len(skipFiles))
	for _, name := range skipFiles {
		skipSet[name] = true
	}

	kept := files[:0]

	for _, name := range files {
		if !skipSet[name] {
			kept = append(kept, name)
		}
	}

	return kept, nil
}

func isPattern(s string) bool {
	return strings.ContainsAny(s, "*?[")
}
