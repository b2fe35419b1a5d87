package flatten

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/llmctx/llmctx/internal/ignore"
)

func writeFile(t *testing.T, root, rel string, content []byte) {
	t.Helper()
	path := filepath.Join(root, filepath.FromSlash(rel))
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, content, 0o644))
}

func collect(t *testing.T, root string, resolverOpts []ignore.ResolverOption, opts ...Option) *Result {
	t.Helper()
	resolver, err := ignore.NewResolver(root, resolverOpts...)
	require.NoError(t, err)
	c, err := NewCollector(root, resolver, opts...)
	require.NoError(t, err)
	result, err := c.Collect()
	require.NoError(t, err)
	return result
}

func relPaths(result *Result) []string {
	var paths []string
	for _, entry := range result.Entries {
		paths = append(paths, entry.RelPath)
	}
	return paths
}

func TestCollectorRejectsBadRoot(t *testing.T) {
	resolver, err := ignore.NewResolver(t.TempDir())
	require.NoError(t, err)
	_, err = NewCollector(filepath.Join(t.TempDir(), "missing"), resolver)
	assert.Error(t, err)
}

func TestCollectHonorsIgnoreRules(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "src/main.py", []byte("print('hi')\n"))
	writeFile(t, root, "src/debug.log", []byte("log\n"))
	writeFile(t, root, "build/out.txt", []byte("artifact\n"))

	spec := ignore.CompileSpec("*.log\nbuild/\n")
	require.NotNil(t, spec)
	result := collect(t, root, []ignore.ResolverOption{ignore.WithSpec(spec)})

	assert.Equal(t, []string{"src/main.py"}, relPaths(result))
	assert.Equal(t, 1, result.Processed)
	assert.Equal(t, 0, result.BinarySkipped)
}

func TestCollectDescendsIgnoredDirForNegation(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "docs/README.md", []byte("# readme\n"))
	writeFile(t, root, "docs/notes.txt", []byte("notes\n"))

	spec := ignore.CompileSpec("docs/\n!docs/README.md\n")
	require.NotNil(t, spec)
	result := collect(t, root, []ignore.ResolverOption{ignore.WithSpec(spec)})

	assert.Equal(t, []string{"docs/README.md"}, relPaths(result))
}

func TestCollectIncludeGate(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "main.py", []byte("pass\n"))
	writeFile(t, root, "main.go", []byte("package main\n"))
	writeFile(t, root, "photo.raw", []byte("data\n"))

	spec := ignore.CompileSpec("nothing-matches\n")
	require.NotNil(t, spec)
	result := collect(t, root, []ignore.ResolverOption{ignore.WithSpec(spec)},
		WithIncludePatterns([]string{".py"}))

	assert.Equal(t, []string{"main.py"}, relPaths(result))
}

func TestCollectDefaultIncludesCoverCommonSources(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "main.go", []byte("package main\n"))
	writeFile(t, root, "Makefile", []byte("all:\n"))
	writeFile(t, root, "blob.bin", []byte("data"))

	result := collect(t, root, nil)
	assert.ElementsMatch(t, []string{"main.go", "Makefile"}, relPaths(result))
}

func TestCollectSkipsBinaryContent(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "app.py", []byte("print('ok')\n"))
	writeFile(t, root, "blob.py", append([]byte("fake\x00"), []byte("binary")...))

	result := collect(t, root, nil)

	require.Len(t, result.Entries, 2)
	assert.Equal(t, 1, result.Processed)
	assert.Equal(t, 1, result.BinarySkipped)

	var skip Entry
	for _, entry := range result.Entries {
		if entry.RelPath == "blob.py" {
			skip = entry
		}
	}
	assert.Equal(t, "binary or non-UTF-8 content", skip.SkipReason)
	assert.Nil(t, skip.Content)
}

func TestCollectFallbackSkipsWithoutSpec(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "node_modules/pkg/index.js", []byte("module.exports = 1\n"))
	writeFile(t, root, "src/app.js", []byte("console.log(1)\n"))

	result := collect(t, root, nil)
	assert.Equal(t, []string{"src/app.js"}, relPaths(result))
}

func TestRenderMarkersAndTrim(t *testing.T) {
	result := &Result{Entries: []Entry{
		{RelPath: "a.py", Content: []byte("print('a')\n")},
		{RelPath: "img.py", SkipReason: "binary or non-UTF-8 content"},
		{RelPath: "b.py", Content: []byte("print('b')\n")},
	}}

	out := result.Render()
	assert.True(t, strings.HasPrefix(out, "# --- File: a.py ---"))
	assert.Contains(t, out, "# --- Skipped file (binary or non-UTF-8 content): img.py ---")
	assert.Contains(t, out, "# --- File: b.py ---")
	assert.False(t, strings.HasSuffix(out, "\n"))
	assert.Equal(t, out, strings.TrimSpace(out))
}

func TestRenderEmptyResult(t *testing.T) {
	result := &Result{}
	assert.Equal(t, "", result.Render())
}
