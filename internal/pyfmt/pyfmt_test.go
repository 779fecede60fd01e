package pyfmt

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatSpacing(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{name: "assignment", in: "x=1", want: "x = 1"},
		{name: "already formatted", in: "x = 1", want: "x = 1"},
		{name: "comparison", in: "x==1", want: "x == 1"},
		{name: "augmented", in: "x+=1", want: "x += 1"},
		{name: "walrus", in: "if (n:=len(a)) > 1:", want: "if (n := len(a)) > 1:"},
		{name: "call args", in: "f( 1 ,2 )", want: "f(1, 2)"},
		{name: "trailing comma", in: "f(1, 2, )", want: "f(1, 2,)"},
		{name: "trailing comma list", in: "[1, 2, ]", want: "[1, 2,]"},
		{name: "kwargs keep tight", in: "y = f(a=1, b=2)", want: "y = f(a=1, b=2)"},
		{name: "kwargs tightened", in: "y = f(a = 1)", want: "y = f(a=1)"},
		{name: "unary minus", in: "x=-1", want: "x = -1"},
		{name: "binary minus", in: "x = a-1", want: "x = a - 1"},
		{name: "return expression", in: "return x+y", want: "return x + y"},
		{name: "return negative", in: "return -x", want: "return -x"},
		{name: "power", in: "a ** b", want: "a**b"},
		{name: "attribute access", in: "os . path.join(a,b)", want: "os.path.join(a, b)"},
		{name: "index", in: "a [0]", want: "a[0]"},
		{name: "slice", in: "a[1 : 2]", want: "a[1:2]"},
		{name: "dict literal", in: "d = { 'a' :1 }", want: "d = {'a': 1}"},
		{name: "def signature", in: "def f(x, y):", want: "def f(x, y):"},
		{name: "keyword call", in: "not (x)", want: "not (x)"},
		{name: "star args", in: "f(*args, **kwargs)", want: "f(*args, **kwargs)"},
		{name: "decorator", in: "@property", want: "@property"},
		{name: "annotation", in: "x :int=1", want: "x: int = 1"},
		{name: "arrow", in: "def f()->int:", want: "def f() -> int:"},
		{name: "comment spacing", in: "x=1 # note", want: "x = 1  # note"},
		{name: "comment line", in: "# just a comment", want: "# just a comment"},
		{name: "string untouched", in: "s = 'a  b'", want: "s = 'a  b'"},
		{name: "fstring untouched", in: `msg = f"x={x}"`, want: `msg = f"x={x}"`},
		{name: "empty dict", in: "d = {}", want: "d = {}"},
		{name: "exponent literal", in: "x=1e-5", want: "x = 1e-5"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := Format(tc.in)
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestFormatPreservesLineStructure(t *testing.T) {
	in := "import os\n\n\nif x:\n    y=2\n    z  =  3\n"
	want := "import os\n\n\nif x:\n    y = 2\n    z = 3\n"

	got, err := Format(in)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestFormatPreservesTripleQuotedStrings(t *testing.T) {
	in := "s = '''first  line\n  second   line'''\nx=1"
	want := "s = '''first  line\n  second   line'''\nx = 1"

	got, err := Format(in)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestFormatIdempotent(t *testing.T) {
	inputs := []string{
		"x=1",
		"def f(a, b=2):\n    return a+b\n",
		"data = {'k': [1, 2, 3], 'j': f(x=-1)}\n",
		"# comment\nfor i in range(10):\n    print(i)  # loop\n",
	}

	for _, in := range inputs {
		once, err := Format(in)
		require.NoError(t, err, in)

		twice, err := Format(once)
		require.NoError(t, err, in)

		assert.Equal(t, once, twice, in)
	}
}

func TestFormatEmpty(t *testing.T) {
	got, err := Format("")
	require.NoError(t, err)
	assert.Equal(t, "", got)
}

func TestFormatErrors(t *testing.T) {
	tests := []struct {
		name string
		in   string
	}{
		{name: "unterminated string", in: "'abc"},
		{name: "unterminated double", in: `x = "abc`},
		{name: "unterminated triple", in: "s = '''abc"},
		{name: "unclosed bracket", in: "f(1"},
		{name: "unbalanced close", in: "x = )"},
		{name: "mismatched brackets", in: "f(1]"},
		{name: "stray character", in: "x = 1 $ 2"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Format(tc.in)
			require.Error(t, err)

			var serr *SyntaxError
			assert.True(t, errors.As(err, &serr))
		})
	}
}
