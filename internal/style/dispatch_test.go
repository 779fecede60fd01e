package style

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeFormatter struct {
	out    string
	err    error
	in     string
	called bool
}

func (f *fakeFormatter) Format(code string) (string, error) {
	f.called = true
	f.in = code

	return f.out, f.err
}

func TestDispatchPythonPrefix(t *testing.T) {
	dispatch := NewDispatch(&fakeFormatter{})

	for _, header := range []string{"py", "python", "python3", "PY"} {
		out, err := dispatch.Render(header, "x=1")
		require.NoError(t, err, header)

		assert.Contains(t, out, "x = 1", header)
	}
}

func TestDispatchWrapsNormalizedHeader(t *testing.T) {
	dispatch := NewDispatch(&fakeFormatter{})

	out, err := dispatch.Render(" Python3 ", "x=1")
	require.NoError(t, err)

	assert.Equal(t, "```python3\nx = 1\n```", out)
}

func TestDispatchRPrefixCallsExternal(t *testing.T) {
	fake := &fakeFormatter{out: "x <- 1\n"}
	dispatch := NewDispatch(fake)

	out, err := dispatch.Render("r", "x<-1")
	require.NoError(t, err)

	assert.True(t, fake.called)
	assert.Equal(t, "x<-1", fake.in)
	assert.Equal(t, "```r\nx <- 1\n```", out)
}

func TestDispatchREmptyOutputKept(t *testing.T) {
	// A styler that produced nothing still renders a fence; partial external
	// failures are not hidden.
	dispatch := NewDispatch(&fakeFormatter{out: ""})

	out, err := dispatch.Render("r", "x<-1")
	require.NoError(t, err)

	assert.Equal(t, "```r\n\n```", out)
}

func TestDispatchExternalStartFailure(t *testing.T) {
	dispatch := NewDispatch(&fakeFormatter{err: assert.AnError})

	_, err := dispatch.Render("r", "x<-1")
	assert.ErrorIs(t, err, assert.AnError)
}

func TestDispatchPassthrough(t *testing.T) {
	fake := &fakeFormatter{}
	dispatch := NewDispatch(fake)

	out, err := dispatch.Render("bash", "echo  HI")
	require.NoError(t, err)

	assert.Equal(t, "```bash\necho  HI\n```", out)
	assert.False(t, fake.called)
}

func TestDispatchPassthroughKeepsHeaderCasing(t *testing.T) {
	dispatch := NewDispatch(&fakeFormatter{})

	out, err := dispatch.Render("Bash", "echo HI")
	require.NoError(t, err)

	assert.Equal(t, "```Bash\necho HI\n```", out)
}

func TestDispatchEmptyHeaderPassthrough(t *testing.T) {
	dispatch := NewDispatch(&fakeFormatter{})

	out, err := dispatch.Render("", "anything")
	require.NoError(t, err)

	assert.Equal(t, "```\nanything\n```", out)
}

func TestDispatchFormatError(t *testing.T) {
	dispatch := NewDispatch(&fakeFormatter{})

	_, err := dispatch.Render("py", "'unterminated")
	require.Error(t, err)

	var ferr *FormatError
	require.True(t, errors.As(err, &ferr))
	assert.Equal(t, "py", ferr.Language)
}
