package style

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/lost-stats/lostmd/internal/pyfmt"
)

// Formatter reformats a piece of source code. Implementations may run
// in-process or shell out to an isolated toolchain.
type Formatter interface {
	Format(code string) (string, error)
}

// FormatError reports source that the in-process formatter rejected as
// syntactically invalid. It aborts the rewrite of the file it came from.
type FormatError struct {
	Language string
	Err      error
}

func (e *FormatError) Error() string {
	return fmt.Sprintf("format %s block: %v", e.Language, e.Err)
}

func (e *FormatError) Unwrap() error {
	return e.Err
}

// Dispatch routes a fenced block to a formatter by language prefix: "py" to
// the in-process Python formatter, "r" to the external styler, everything
// else to passthrough.
type Dispatch struct {
	Python Formatter
	R      Formatter
}

// NewDispatch returns a Dispatch with the in-process Python formatter and the
// given R formatter.
func NewDispatch(r Formatter) *Dispatch {
	return &Dispatch{Python: PythonFormatter{}, R: r}
}

// Render implements Renderer. The dispatch key is the header lowercased and
// stripped; the py and r branches wrap their output under that normalized
// header, while passthrough keeps the header's original casing.
func (d *Dispatch) Render(header, code string) (string, error) {
	key := strings.ToLower(strings.TrimSpace(header))

	switch {
	case strings.HasPrefix(key, "py"):
		formatted, err := d.Python.Format(code)
		if err != nil {
			return "", &FormatError{Language: key, Err: err}
		}

		return wrap(key, rstrip(formatted)), nil
	case strings.HasPrefix(key, "r"):
		// Best effort: a styler that starts but misbehaves still has its
		// stdout spliced in, possibly empty. Only a failed start is an error.
		formatted, err := d.R.Format(code)
		if err != nil {
			return "", err
		}

		return wrap(key, rstrip(formatted)), nil
	default:
		// Passthrough keeps the code untouched.
		return wrap(header, code), nil
	}
}

func wrap(header, code string) string {
	return fenceMarker + header + "\n" + code + "\n" + fenceMarker
}

func rstrip(s string) string {
	return strings.TrimRightFunc(s, unicode.IsSpace)
}

// PythonFormatter formats Python code in-process.
type PythonFormatter struct{}

func (PythonFormatter) Format(code string) (string, error) {
	return pyfmt.Format(code)
}
