package mdcode

import (
	"net/url"
	"strings"
	"unicode"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

// Extract parses a markdown document and returns its top-level fenced code
// blocks. Fences nested inside other blocks, such as list items or
// blockquotes, are left alone.
//
// Blocks carrying a non-empty example option are grouped by that name and
// merged into one CodeBlock per group: codes joined with a blank line in
// encounter order, language and options taken from the first member. The
// result holds the unnamed blocks in document order followed by the merged
// groups in first-occurrence order, so merged blocks do not appear at their
// original document position.
func Extract(source []byte, location string) ([]CodeBlock, error) {
	root := goldmark.DefaultParser().Parse(text.NewReader(source))

	var (
		blocks []CodeBlock
		groups = make(map[string][]CodeBlock)
		order  []string
	)

	err := ast.Walk(root, func(node ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering || node.Kind() != ast.KindFencedCodeBlock {
			return ast.WalkContinue, nil
		}

		// Only top-level fences are samples; a fence nested inside a list
		// item or blockquote is quoted material.
		if parent := node.Parent(); parent == nil || parent.Kind() != ast.KindDocument {
			return ast.WalkContinue, nil
		}

		fcb, ok := node.(*ast.FencedCodeBlock)
		if !ok {
			return ast.WalkContinue, nil
		}

		block, berr := newBlock(fcb, source, location)
		if berr != nil {
			return ast.WalkStop, berr
		}

		if name := block.Options.Get("example"); name != "" {
			if _, seen := groups[name]; !seen {
				order = append(order, name)
			}

			groups[name] = append(groups[name], block)
		} else {
			blocks = append(blocks, block)
		}

		return ast.WalkContinue, nil
	})
	if err != nil {
		return nil, err
	}

	for _, name := range order {
		blocks = append(blocks, mergeGroup(groups[name]))
	}

	return blocks, nil
}

func mergeGroup(members []CodeBlock) CodeBlock {
	codes := make([]string, len(members))
	for i, member := range members {
		codes[i] = member.Code
	}

	return CodeBlock{
		Language: members[0].Language,
		Code:     strings.Join(codes, "\n\n"),
		Options:  members[0].Options,
		Location: members[0].Location,
	}
}

func newBlock(fcb *ast.FencedCodeBlock, source []byte, location string) (CodeBlock, error) {
	var info string
	if fcb.Info != nil {
		info = string(fcb.Info.Text(source))
	}

	lang, options, err := parseInfo(info)
	if err != nil {
		return CodeBlock{}, err
	}

	return CodeBlock{
		Language: lang,
		Code:     extractCode(fcb, source),
		Options:  options,
		Location: location,
	}, nil
}

// parseInfo splits a fence header into its language and option bag. The whole
// header is lowercased first, then split on the first '?'; the remainder is
// parsed with query-string semantics.
func parseInfo(info string) (string, Options, error) {
	info = strings.ToLower(strings.TrimSpace(info))

	lang, query, _ := strings.Cut(info, "?")
	if query == "" {
		return lang, Options{}, nil
	}

	values, err := url.ParseQuery(query)
	if err != nil {
		return "", nil, &ParseError{Header: info, Err: err}
	}

	return lang, Options(values), nil
}

func extractCode(fcb *ast.FencedCodeBlock, source []byte) string {
	lines := fcb.Lines()

	parts := make([]string, 0, lines.Len())
	for i := 0; i < lines.Len(); i++ {
		seg := lines.At(i)
		parts = append(parts, strings.TrimRightFunc(string(seg.Value(source)), unicode.IsSpace))
	}

	return strings.Join(parts, "\n")
}
