package tree

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/llmctx/llmctx/internal/ignore"
)

// writeTree creates the given files (with dummy content) and directories
// under root. Directory entries end with "/".
func writeTree(t *testing.T, root string, entries ...string) {
	t.Helper()
	for _, entry := range entries {
		path := filepath.Join(root, filepath.FromSlash(entry))
		if strings.HasSuffix(entry, "/") {
			require.NoError(t, os.MkdirAll(path, 0o755))
			continue
		}
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte("x\n"), 0o644))
	}
}

func newWalker(t *testing.T, root string, opts ...ignore.ResolverOption) *Walker {
	t.Helper()
	resolver, err := ignore.NewResolver(root, opts...)
	require.NoError(t, err)
	w, err := NewWalker(root, resolver)
	require.NoError(t, err)
	return w
}

func TestNewWalkerRejectsBadRoot(t *testing.T) {
	resolver, err := ignore.NewResolver(t.TempDir())
	require.NoError(t, err)

	_, err = NewWalker(filepath.Join(t.TempDir(), "missing"), resolver)
	assert.Error(t, err)

	file := filepath.Join(t.TempDir(), "file.txt")
	require.NoError(t, os.WriteFile(file, []byte("x"), 0o644))
	_, err = NewWalker(file, resolver)
	assert.Error(t, err)
}

func TestTreeRescuesIgnoredDirWithVisibleDescendant(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, "docs/README.md", "docs/internal.txt", "main.go")

	spec := ignore.CompileSpec("docs/\n!docs/README.md\n")
	require.NotNil(t, spec)
	w := newWalker(t, root, ignore.WithSpec(spec))

	lines, err := w.Lines()
	require.NoError(t, err)

	joined := strings.Join(lines, "\n")
	assert.Contains(t, joined, "docs/")
	assert.Contains(t, joined, "README.md")
	assert.NotContains(t, joined, "internal.txt")
	assert.Contains(t, joined, "main.go")
}

func TestTreePrunesIgnoredDirWithoutRescue(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, "docs/guide.md", "main.go")

	spec := ignore.CompileSpec("docs/\n")
	require.NotNil(t, spec)
	w := newWalker(t, root, ignore.WithSpec(spec))

	lines, err := w.Lines()
	require.NoError(t, err)
	assert.NotContains(t, strings.Join(lines, "\n"), "docs")
}

func TestTreeAppliesFallbackWithoutSpec(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, "node_modules/pkg/index.js", "__pycache__/m.pyc", "src/app.py", "debug.log")

	w := newWalker(t, root)
	lines, err := w.Lines()
	require.NoError(t, err)

	joined := strings.Join(lines, "\n")
	assert.NotContains(t, joined, "node_modules")
	assert.NotContains(t, joined, "__pycache__")
	assert.NotContains(t, joined, "debug.log")
	assert.Contains(t, joined, "app.py")
}

func TestTreeSpecDisablesFallback(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, "node_modules/pkg/index.js", "app.py")

	spec := ignore.CompileSpec("*.log\n")
	require.NotNil(t, spec)
	w := newWalker(t, root, ignore.WithSpec(spec))

	lines, err := w.Lines()
	require.NoError(t, err)
	assert.Contains(t, strings.Join(lines, "\n"), "node_modules/")
}

func TestTreeOrderingDirsFirstThenCaseInsensitive(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, "zebra.txt", "Apple.txt", "beta/", "Alpha/")

	w := newWalker(t, root)
	lines, err := w.Lines()
	require.NoError(t, err)

	require.Len(t, lines, 5)
	assert.Equal(t, filepath.Base(root)+"/", lines[0])
	assert.Equal(t, "├── Alpha/", lines[1])
	assert.Equal(t, "├── beta/", lines[2])
	assert.Equal(t, "├── Apple.txt", lines[3])
	assert.Equal(t, "└── zebra.txt", lines[4])
}

func TestRenderNesting(t *testing.T) {
	root := &Node{Name: "proj", IsDir: true, Children: []*Node{
		{Name: "src", IsDir: true, Children: []*Node{
			{Name: "main.go"},
		}},
		{Name: "go.mod"},
	}}

	assert.Equal(t, []string{
		"proj/",
		"├── src/",
		"│   └── main.go",
		"└── go.mod",
	}, Render(root))
}
