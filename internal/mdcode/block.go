package mdcode

import "fmt"

// CodeBlock is one logical fenced code region found in a markdown file.
// Named blocks sharing an example option are merged into a single CodeBlock
// by Extract, so one CodeBlock may span several fences in the source.
type CodeBlock struct {
	Language string
	Code     string
	Options  Options
	Location string
}

func (b CodeBlock) String() string {
	code := b.Code
	if len(code) > 50 {
		code = code[:47] + "..."
	}

	return fmt.Sprintf("CodeBlock(language=%q, code=%q, location=%s)", b.Language, code, b.Location)
}

// Options holds the option bag parsed from the query-string suffix of a fence
// header. Repeated keys accumulate values in encounter order.
type Options map[string][]string

// Get returns the first value for the given key. It returns an empty string
// if the key is missing or has no values.
func (o Options) Get(name string) string {
	if values := o[name]; len(values) > 0 {
		return values[0]
	}

	return ""
}

// ParseError reports a fence header whose option string could not be parsed.
type ParseError struct {
	Header string
	Err    error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse fence header %q: %v", e.Header, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}
