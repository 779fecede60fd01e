package pyfmt

import "strings"

// pyKeywords are the reserved words that behave like operators for spacing
// purposes. True, False and None are absent on purpose: they are operands.
var pyKeywords = map[string]bool{
	"and": true, "as": true, "assert": true, "async": true, "await": true,
	"break": true, "class": true, "continue": true, "def": true, "del": true,
	"elif": true, "else": true, "except": true, "finally": true, "for": true,
	"from": true, "global": true, "if": true, "import": true, "in": true,
	"is": true, "lambda": true, "nonlocal": true, "not": true, "or": true,
	"pass": true, "raise": true, "return": true, "try": true, "while": true,
	"with": true, "yield": true,
}

func render(toks []token) (string, error) {
	var (
		b     strings.Builder
		stack []byte
		prev  *token
		glue  bool
	)

	line := 1

	for i := range toks {
		tok := &toks[i]

		switch tok.kind {
		case tokNewline:
			b.WriteString("\n")

			line++
			prev, glue = nil, false

			continue
		case tokIndent:
			b.WriteString(tok.text)

			continue
		}

		b.WriteString(spacing(prev, tok, stack, glue))
		b.WriteString(tok.text)

		glue = gluesNext(prev, tok)

		if tok.kind == tokOp {
			switch tok.text {
			case "(", "[", "{":
				stack = append(stack, tok.text[0])
			case ")", "]", "}":
				if len(stack) == 0 || !matches(stack[len(stack)-1], tok.text[0]) {
					return "", &SyntaxError{Line: line, Msg: "unbalanced " + tok.text}
				}

				stack = stack[:len(stack)-1]
			}
		}

		line += strings.Count(tok.text, "\n")
		prev = tok
	}

	if len(stack) > 0 {
		return "", &SyntaxError{Line: line, Msg: "unclosed bracket"}
	}

	return b.String(), nil
}

func matches(open, close byte) bool {
	switch open {
	case '(':
		return close == ')'
	case '[':
		return close == ']'
	case '{':
		return close == '}'
	}

	return false
}

// spacing decides what goes between the previous token and the current one:
// nothing or a single space, except for the two spaces before an inline
// comment.
func spacing(prev, cur *token, stack []byte, glue bool) string {
	if prev == nil || glue {
		return ""
	}

	if cur.kind == tokComment {
		return "  "
	}

	// Closing delimiters bind to whatever precedes them, even a trailing
	// comma, so this check comes before the prev-token rules.
	if cur.kind == tokOp {
		switch cur.text {
		case ")", "]", "}", ",", ";", ":", ".":
			return ""
		}
	}

	if prev.kind == tokOp {
		switch prev.text {
		case "(", "[", "{", ".":
			return ""
		case ",", ";":
			return " "
		case ":":
			// No spaces inside a slice.
			if len(stack) > 0 && stack[len(stack)-1] == '[' {
				return ""
			}

			return " "
		}
	}

	if cur.text == "=" || prev.text == "=" {
		// Keyword arguments and defaults bind tightly inside brackets.
		if len(stack) > 0 {
			return ""
		}

		return " "
	}

	if cur.text == "**" || prev.text == "**" {
		return ""
	}

	if cur.kind == tokOp && (cur.text == "(" || cur.text == "[") && isAtom(prev) {
		return ""
	}

	return " "
}

// gluesNext reports whether the token after cur attaches without a space set
// off, which happens after unary operators, argument unpacking, and a
// decorator's at-sign.
func gluesNext(prev, cur *token) bool {
	if cur.kind != tokOp {
		return false
	}

	switch cur.text {
	case "+", "-", "~", "*", "**":
		return !isAtom(prev)
	case "@":
		return prev == nil
	}

	return false
}

// isAtom reports whether the token can end an operand, making a following
// +, -, ( or [ binary rather than unary.
func isAtom(t *token) bool {
	if t == nil {
		return false
	}

	switch t.kind {
	case tokName:
		return !pyKeywords[t.text]
	case tokNumber, tokString:
		return true
	case tokOp:
		return t.text == ")" || t.text == "]" || t.text == "}"
	}

	return false
}
