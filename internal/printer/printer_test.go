package printer

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteDocumentToConsole(t *testing.T) {
	var buf bytes.Buffer
	p := New(&buf)

	require.NoError(t, p.WriteDocument("", "hello\nworld"))
	assert.Equal(t, "hello\nworld\n", buf.String())
}

func TestWriteDocumentToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out", "doc.md")
	p := New(os.Stdout).WithColors(false)

	require.NoError(t, p.WriteDocument(path, "content"))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "content\n", string(data))
}

func TestWriteDocumentFileError(t *testing.T) {
	p := New(os.Stdout).WithColors(false)
	dir := t.TempDir()
	// The target path is an existing directory, so the write must fail.
	assert.Error(t, p.WriteDocument(dir, "content"))
}
