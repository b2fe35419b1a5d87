// Package printer writes finished documents to their destination.
package printer

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/fatih/color"
)

// Printer writes a document either to stdout or to a file, with optional
// colored status messages on stderr.
type Printer struct {
	out       io.Writer
	useColors bool
}

// New creates a Printer writing console documents to out.
func New(out io.Writer) *Printer {
	return &Printer{out: out, useColors: true}
}

// WithColors enables or disables colored status messages.
func (p *Printer) WithColors(enabled bool) *Printer {
	p.useColors = enabled
	return p
}

// WriteDocument delivers content. With an empty path the document goes to
// the printer's writer; otherwise it is written to the file, creating parent
// directories as needed, with a status line on stderr.
func (p *Printer) WriteDocument(path, content string) error {
	if path == "" {
		fmt.Fprintln(p.out, content)
		return nil
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("printer: creating %q: %w", dir, err)
		}
	}
	if err := os.WriteFile(path, []byte(content+"\n"), 0o644); err != nil {
		return fmt.Errorf("printer: writing %q: %w", path, err)
	}

	msg := fmt.Sprintf("Output saved to %s", path)
	if p.useColors {
		msg = color.GreenString(msg)
	}
	fmt.Fprintln(os.Stderr, msg)
	return nil
}
