package pathutil

import (
	"testing"

	"github.com/liamg/memoryfs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testFS(t *testing.T) *memoryfs.FS {
	t.Helper()

	fsys := memoryfs.New()

	require.NoError(t, fsys.MkdirAll("docs/sub", 0o755))

	for _, name := range []string{"docs/a.md", "docs/b.md", "docs/sub/c.md"} {
		require.NoError(t, fsys.WriteFile(name, []byte("# "+name+"\n"), 0o644))
	}

	require.NoError(t, fsys.WriteFile("top.md", []byte("# top\n"), 0o644))
	require.NoError(t, fsys.WriteFile("docs/notes.txt", []byte("not markdown\n"), 0o644))

	return fsys
}

func TestExpandDirectory(t *testing.T) {
	files, err := Expand(testFS(t), []string{"docs"})
	require.NoError(t, err)

	assert.Equal(t, []string{"docs/a.md", "docs/b.md", "docs/sub/c.md"}, files)
}

func TestExpandGlob(t *testing.T) {
	files, err := Expand(testFS(t), []string{"docs/*.md"})
	require.NoError(t, err)

	assert.Equal(t, []string{"docs/a.md", "docs/b.md"}, files)
}

func TestExpandDoubleStar(t *testing.T) {
	files, err := Expand(testFS(t), []string{"docs/**.md"})
	require.NoError(t, err)

	assert.Contains(t, files, "docs/sub/c.md")
	assert.Contains(t, files, "docs/a.md")
}

func TestExpandPlainFile(t *testing.T) {
	files, err := Expand(testFS(t), []string{"top.md"})
	require.NoError(t, err)

	assert.Equal(t, []string{"top.md"}, files)
}

func TestExpandDropsNonMarkdownAndMissing(t *testing.T) {
	files, err := Expand(testFS(t), []string{"docs/notes.txt", "missing.md"})
	require.NoError(t, err)

	assert.Empty(t, files)
}

func TestExpandDeduplicatesAndSorts(t *testing.T) {
	files, err := Expand(testFS(t), []string{"docs", "docs/b.md", "docs/a.md"})
	require.NoError(t, err)

	assert.Equal(t, []string{"docs/a.md", "docs/b.md", "docs/sub/c.md"}, files)
}

func TestExpandAndFilterSkips(t *testing.T) {
	files, err := ExpandAndFilter(testFS(t), []string{"docs"}, []string{"docs/b.md"})
	require.NoError(t, err)

	assert.Equal(t, []string{"docs/a.md", "docs/sub/c.md"}, files)
}

func TestExpandAndFilterSkipGlob(t *testing.T) {
	// The skip glob matches the docs/sub directory too, so its contents are
	// subtracted along with the direct matches.
	files, err := ExpandAndFilter(testFS(t), []string{"docs", "top.md"}, []string{"docs/*"})
	require.NoError(t, err)

	assert.Equal(t, []string{"top.md"}, files)
}

func TestExpandBadPattern(t *testing.T) {
	_, err := Expand(testFS(t), []string{"docs/[.md"})
	assert.Error(t, err)
}
