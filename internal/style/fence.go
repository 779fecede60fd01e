// Package style rewrites fenced code blocks in place, routing each block
// through a per-language formatter while leaving the rest of the document
// untouched.
package style

import (
	"bufio"
	"bytes"
	"strings"
	"unicode"
)

const fenceMarker = "```"

// Renderer produces the replacement text for one completed fenced region,
// including its surrounding fence markers. The header keeps its original
// casing; lowercasing for dispatch is the renderer's concern.
type Renderer func(header, code string) (string, error)

// Rewrite walks a document line by line and replaces every fenced region with
// the renderer's output. Non-fenced lines pass through verbatim apart from
// right-trimming. The result always ends with exactly one trailing newline.
//
// A fence marker seen while already inside a fence closes it, whatever
// follows the backticks on that line. A fence still open at end of input is
// dropped entirely, body included, without an error. Both behaviors are
// load-bearing for existing documents; see the package tests.
func Rewrite(source []byte, render Renderer) ([]byte, error) {
	var (
		out     []string
		body    []string
		header  string
		inFence bool
	)

	scanner := bufio.NewScanner(bytes.NewReader(source))
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	for scanner.Scan() {
		line := strings.TrimRightFunc(scanner.Text(), unicode.IsSpace)

		switch {
		case strings.HasPrefix(line, fenceMarker):
			if inFence {
				rendered, err := render(header, strings.Join(body, "\n"))
				if err != nil {
					return nil, err
				}

				out = append(out, rendered)
				inFence, header, body = false, "", nil
			} else {
				inFence = true
				header = line[len(fenceMarker):]
			}
		case inFence:
			body = append(body, line)
		default:
			out = append(out, line)
		}
	}

	if err := scanner.Err(); err != nil {
		return nil, err
	}

	joined := strings.TrimRightFunc(strings.Join(out, "\n"), unicode.IsSpace)

	return []byte(joined + "\n"), nil
}
