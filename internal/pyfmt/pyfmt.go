// Package pyfmt is a small deterministic Python source normalizer. It
// re-spaces tokens the way black does for the common cases (operators,
// commas, call arguments, keyword arguments, slices) while leaving line
// structure, indentation, strings, and comments untouched. Running it on its
// own output is a no-op.
package pyfmt

import (
	"fmt"
	"strings"
	"unicode"
)

// SyntaxError reports source text the formatter cannot tokenize, such as an
// unterminated string or an unbalanced bracket.
type SyntaxError struct {
	Line int
	Msg  string
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("line %d: %s", e.Line, e.Msg)
}

// Format normalizes the given Python source. It returns a SyntaxError when
// the source cannot be tokenized; partially valid output is never returned.
func Format(src string) (string, error) {
	lx := &lexer{src: []rune(src), line: 1}
	if err := lx.run(); err != nil {
		return "", err
	}

	return render(lx.toks)
}

type tokenKind int

const (
	tokName tokenKind = iota
	tokNumber
	tokString
	tokOp
	tokComment
	tokIndent
	tokNewline
)

type token struct {
	kind tokenKind
	text string
}

type lexer struct {
	src  []rune
	pos  int
	line int
	toks []token
}

func (lx *lexer) emit(kind tokenKind, text string) {
	lx.toks = append(lx.toks, token{kind: kind, text: text})
}

func (lx *lexer) errf(format string, args ...interface{}) error {
	return &SyntaxError{Line: lx.line, Msg: fmt.Sprintf(format, args...)}
}

func (lx *lexer) run() error {
	atLineStart := true

	for lx.pos < len(lx.src) {
		if atLineStart {
			lx.indent()

			atLineStart = false

			continue
		}

		c := lx.src[lx.pos]

		switch {
		case c == '\n':
			lx.emit(tokNewline, "\n")
			lx.pos++
			lx.line++

			atLineStart = true
		case c == ' ' || c == '\t' || c == '\r':
			lx.pos++
		case c == '#':
			lx.comment()
		case c == '\'' || c == '"':
			if err := lx.str(""); err != nil {
				return err
			}
		case isNameStart(c):
			if err := lx.name(); err != nil {
				return err
			}
		case unicode.IsDigit(c) || (c == '.' && lx.peekDigit()):
			lx.number()
		default:
			if err := lx.op(); err != nil {
				return err
			}
		}
	}

	return nil
}

// indent captures a line's leading whitespace verbatim. Blank lines get no
// indent token so they never carry trailing whitespace.
func (lx *lexer) indent() {
	start := lx.pos
	for lx.pos < len(lx.src) && (lx.src[lx.pos] == ' ' || lx.src[lx.pos] == '\t') {
		lx.pos++
	}

	if lx.pos > start && lx.pos < len(lx.src) && lx.src[lx.pos] != '\n' && lx.src[lx.pos] != '\r' {
		lx.emit(tokIndent, string(lx.src[start:lx.pos]))

		return
	}

	lx.pos = start
	if lx.pos < len(lx.src) && (lx.src[lx.pos] == ' ' || lx.src[lx.pos] == '\t') {
		// Whitespace-only prefix of a blank line; discard it.
		for lx.pos < len(lx.src) && lx.src[lx.pos] != '\n' && (lx.src[lx.pos] == ' ' || lx.src[lx.pos] == '\t' || lx.src[lx.pos] == '\r') {
			lx.pos++
		}
	}
}

func (lx *lexer) comment() {
	start := lx.pos
	for lx.pos < len(lx.src) && lx.src[lx.pos] != '\n' {
		lx.pos++
	}

	lx.emit(tokComment, strings.TrimRight(string(lx.src[start:lx.pos]), " \t\r"))
}

func (lx *lexer) name() error {
	start := lx.pos
	for lx.pos < len(lx.src) && isNameChar(lx.src[lx.pos]) {
		lx.pos++
	}

	word := string(lx.src[start:lx.pos])

	if lx.pos < len(lx.src) && (lx.src[lx.pos] == '\'' || lx.src[lx.pos] == '"') && isStringPrefix(word) {
		return lx.str(word)
	}

	lx.emit(tokName, word)

	return nil
}

func (lx *lexer) str(prefix string) error {
	start := lx.pos - len([]rune(prefix))
	q := lx.src[lx.pos]

	if lx.pos+2 < len(lx.src) && lx.src[lx.pos+1] == q && lx.src[lx.pos+2] == q {
		return lx.tripleStr(start, q)
	}

	lx.pos++

	for {
		if lx.pos >= len(lx.src) || lx.src[lx.pos] == '\n' {
			return lx.errf("unterminated string literal")
		}

		switch lx.src[lx.pos] {
		case '\\':
			lx.pos += 2
		case q:
			lx.pos++
			lx.emit(tokString, string(lx.src[start:lx.pos]))

			return nil
		default:
			lx.pos++
		}
	}
}

func (lx *lexer) tripleStr(start int, q rune) error {
	lx.pos += 3

	for {
		if lx.pos >= len(lx.src) {
			return lx.errf("unterminated triple-quoted string")
		}

		switch lx.src[lx.pos] {
		case '\\':
			lx.pos += 2
		case q:
			if lx.pos+2 < len(lx.src) && lx.src[lx.pos+1] == q && lx.src[lx.pos+2] == q {
				lx.pos += 3
				lx.emit(tokString, string(lx.src[start:lx.pos]))

				return nil
			}

			lx.pos++
		case '\n':
			lx.line++
			lx.pos++
		default:
			lx.pos++
		}
	}
}

func (lx *lexer) number() {
	start := lx.pos
	lx.pos++

	for lx.pos < len(lx.src) {
		c := lx.src[lx.pos]

		if isNameChar(c) || c == '.' {
			lx.pos++

			continue
		}

		// Exponent sign, as in 1e-5.
		if (c == '+' || c == '-') && (lx.src[lx.pos-1] == 'e' || lx.src[lx.pos-1] == 'E') {
			lx.pos++

			continue
		}

		break
	}

	lx.emit(tokNumber, string(lx.src[start:lx.pos]))
}

var multiCharOps = []string{
	"**=", "//=", ">>=", "<<=", "...",
	"==", "!=", ">=", "<=", "->", ":=",
	"+=", "-=", "*=", "/=", "%=", "&=", "|=", "^=", "@=",
	"**", "//", "<<", ">>",
}

const singleCharOps = `+-*/%@&|^~<>=,:;.()[]{}\`

func (lx *lexer) op() error {
	rest := string(lx.src[lx.pos:])

	for _, op := range multiCharOps {
		if strings.HasPrefix(rest, op) {
			lx.emit(tokOp, op)
			lx.pos += len(op)

			return nil
		}
	}

	c := lx.src[lx.pos]
	if !strings.ContainsRune(singleCharOps, c) {
		return lx.errf("unexpected character %q", c)
	}

	lx.emit(tokOp, string(c))
	lx.pos++

	return nil
}

func (lx *lexer) peekDigit() bool {
	return lx.pos+1 < len(lx.src) && unicode.IsDigit(lx.src[lx.pos+1])
}

func isNameStart(c rune) bool {
	return c == '_' || unicode.IsLetter(c)
}

func isNameChar(c rune) bool {
	return c == '_' || unicode.IsLetter(c) || unicode.IsDigit(c)
}

func isStringPrefix(word string) bool {
	if len(word) == 0 || len(word) > 2 {
		return false
	}

	for _, c := range word {
		if !strings.ContainsRune("rbfuRBFU", c) {
			return false
		}
	}

	return true
}
