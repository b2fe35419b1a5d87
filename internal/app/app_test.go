package app

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/llmctx/llmctx/internal/bundle"
)

func quietApp() *App {
	return New(Options{LogLevel: "none", NoColor: true}, "")
}

func seedProject(t *testing.T) string {
	t.Helper()
	root := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(root, "src"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(root, "src", "main.py"), []byte("print('hi')\n"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(root, "notes.txt"), []byte("notes\n"), 0o644))
	return root
}

func TestValidateRoot(t *testing.T) {
	a := quietApp()

	_, err := a.validateRoot(filepath.Join(t.TempDir(), "missing"))
	assert.ErrorContains(t, err, "not found")

	file := filepath.Join(t.TempDir(), "f.txt")
	require.NoError(t, os.WriteFile(file, []byte("x"), 0o644))
	_, err = a.validateRoot(file)
	assert.ErrorContains(t, err, "not a directory")

	root := t.TempDir()
	abs, err := a.validateRoot(root)
	require.NoError(t, err)
	assert.True(t, filepath.IsAbs(abs))
}

func TestSelfExclusion(t *testing.T) {
	root := t.TempDir()

	assert.Equal(t, "", selfExclusion(root, ""))
	assert.Equal(t, "out.md", selfExclusion(root, filepath.Join(root, "out.md")))
	assert.Equal(t, "out.md", selfExclusion(root, filepath.Join(root, "sub", "out.md")))
	assert.Equal(t, "", selfExclusion(root, filepath.Join(t.TempDir(), "out.md")))
}

func TestRunTreeWritesFileAndExcludesIt(t *testing.T) {
	root := seedProject(t)
	out := filepath.Join(root, "tree.txt")

	require.NoError(t, quietApp().RunTree(root, out, nil))

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	content := string(data)
	assert.Contains(t, content, "src/")
	assert.Contains(t, content, "main.py")
	assert.NotContains(t, content, "tree.txt")
}

func TestRunTreeHonorsIgnoreFile(t *testing.T) {
	root := seedProject(t)
	require.NoError(t, os.WriteFile(filepath.Join(root, ".llmignore"), []byte("notes.txt\n"), 0o644))
	out := filepath.Join(root, "tree.txt")

	require.NoError(t, quietApp().RunTree(root, out, nil))

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.NotContains(t, string(data), "notes.txt")
	assert.Contains(t, string(data), "main.py")
}

func TestRunTreeCLIIgnoredDirRescuedByDescendants(t *testing.T) {
	root := seedProject(t)
	out := filepath.Join(root, "tree.txt")

	// A directory pattern alone leaves the children individually visible, so
	// the directory is rescued back into the listing.
	require.NoError(t, quietApp().RunTree(root, out, []string{"src/"}))
	data, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Contains(t, string(data), "src/")
	assert.Contains(t, string(data), "main.py")

	// Covering the descendants too prunes the whole subtree.
	require.NoError(t, quietApp().RunTree(root, out, []string{"src/", "src/*"}))
	data, err = os.ReadFile(out)
	require.NoError(t, err)
	assert.NotContains(t, string(data), "src")
}

func TestRunFlattenUsesConfigDefaults(t *testing.T) {
	root := seedProject(t)
	configBody := "default_output_filename_flatten = \"" + filepath.ToSlash(filepath.Join(root, "flat.md")) + "\"\n" +
		"global_include_patterns = [\".py\"]\n"
	require.NoError(t, os.WriteFile(filepath.Join(root, ".llmctx.toml"), []byte(configBody), 0o644))

	require.NoError(t, quietApp().RunFlatten(root, "", nil, nil))

	data, err := os.ReadFile(filepath.Join(root, "flat.md"))
	require.NoError(t, err)
	content := string(data)
	assert.Contains(t, content, "# --- File: src/main.py ---")
	assert.NotContains(t, content, "notes.txt")
}

func TestRunDeps(t *testing.T) {
	root := seedProject(t)
	require.NoError(t, os.WriteFile(filepath.Join(root, "requirements.txt"), []byte("flask>=2.0\n"), 0o644))
	out := filepath.Join(root, "deps.md")

	require.NoError(t, quietApp().RunDeps(root, out))

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Contains(t, string(data), "- flask >=2.0")
}

func TestRunGit(t *testing.T) {
	root := seedProject(t)
	out := filepath.Join(root, "git.md")

	require.NoError(t, quietApp().RunGit(root, out, 5))

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Contains(t, string(data), "Not a Git repository or no Git history.")
}

func TestRunBundleSelfExcludes(t *testing.T) {
	root := seedProject(t)
	out := filepath.Join(root, "bundle.md")

	err := quietApp().RunBundle(root, out, bundle.Options{
		IncludeTree:  true,
		IncludeDeps:  true,
		FlattenPaths: []string{"."},
	})
	require.NoError(t, err)

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	content := string(data)
	assert.Contains(t, content, "# Context Bundle: "+filepath.Base(root))
	assert.Contains(t, content, "main.py")
	assert.False(t, strings.Contains(content, "bundle.md"), "bundle output must not list itself")
}

func TestRunTreeBadRoot(t *testing.T) {
	err := quietApp().RunTree(filepath.Join(t.TempDir(), "missing"), "", nil)
	assert.Error(t, err)
}
