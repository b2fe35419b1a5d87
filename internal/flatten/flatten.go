// Package flatten concatenates the contents of visible, include-matched
// files into one document for downstream consumption.
package flatten

import (
	"bytes"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/llmctx/llmctx/internal/ignore"
	"github.com/llmctx/llmctx/internal/utils"
)

// binarySniffLen is how much of a file is inspected for NUL bytes before it
// is treated as text.
const binarySniffLen = 1024

// Entry is one collected file: either content or a skip reason, never both.
type Entry struct {
	RelPath    string
	Content    []byte
	SkipReason string
}

// Result is the ordered outcome of one collection run.
type Result struct {
	Entries       []Entry
	Processed     int
	BinarySkipped int
}

// Collector walks a root and gathers file contents, applying the same
// visibility rules as the tree walker plus an include-pattern allow-list.
type Collector struct {
	root     string
	resolver *ignore.Resolver
	includes []string
	fallback bool
	logger   utils.Logger
}

// Option configures a Collector.
type Option func(*Collector)

// WithIncludePatterns replaces the default include allow-list.
func WithIncludePatterns(patterns []string) Option {
	return func(c *Collector) {
		if len(patterns) > 0 {
			c.includes = patterns
		}
	}
}

// WithLogger sets the collector's logger.
func WithLogger(log utils.Logger) Option {
	return func(c *Collector) {
		if log != nil {
			c.logger = log
		}
	}
}

// NewCollector validates the root and prepares a Collector.
func NewCollector(root string, resolver *ignore.Resolver, opts ...Option) (*Collector, error) {
	absRoot, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("flatten: invalid root %q: %w", root, err)
	}
	info, err := os.Stat(absRoot)
	if err != nil {
		return nil, fmt.Errorf("flatten: root directory %q not found: %w", absRoot, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("flatten: %q is not a directory", absRoot)
	}

	c := &Collector{
		root:     absRoot,
		resolver: resolver,
		includes: ignore.DefaultIncludePatterns(),
		fallback: resolver.UseFallback(),
		logger:   utils.NoopLogger{},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// Collect walks the tree in order and returns every emitted or skipped file.
// Per-file trouble is recorded and the walk continues; only a failure at the
// root aborts.
func (c *Collector) Collect() (*Result, error) {
	result := &Result{}

	err := filepath.WalkDir(c.root, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			c.logger.Warn("flatten: cannot access %q: %v", path, walkErr)
			if d != nil && d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if path == c.root {
			return nil
		}

		name := d.Name()
		if d.IsDir() {
			if c.resolver.IsIgnored(path, true) {
				// Ignored directories are still descended when a negation
				// rule rescues something below them.
				if !c.hasVisibleDescendant(path) {
					c.logger.Debug("flatten: pruned %q", path)
					return filepath.SkipDir
				}
				return nil
			}
			if c.fallback && ignore.MatchesFallback(name) {
				return filepath.SkipDir
			}
			return nil
		}

		if c.resolver.IsIgnored(path, false) {
			return nil
		}
		if c.fallback && ignore.MatchesFallback(name) {
			return nil
		}
		if !ignore.MatchesInclude(c.includes, name) {
			return nil
		}

		c.emit(result, path)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("flatten: walk failed: %w", err)
	}
	return result, nil
}

// emit reads one file fully and appends a content entry, or a skip entry for
// binary and unreadable files.
func (c *Collector) emit(result *Result, path string) {
	rel := c.relPath(path)

	content, err := os.ReadFile(path)
	if err != nil {
		c.logger.Warn("flatten: error reading %q: %v", path, err)
		result.Entries = append(result.Entries, Entry{RelPath: rel, SkipReason: fmt.Sprintf("read error: %v", err)})
		return
	}

	sniff := content
	if len(sniff) > binarySniffLen {
		sniff = sniff[:binarySniffLen]
	}
	if bytes.IndexByte(sniff, 0) >= 0 {
		c.logger.Warn("flatten: skipping binary or non-UTF-8 file: %s", rel)
		result.Entries = append(result.Entries, Entry{RelPath: rel, SkipReason: "binary or non-UTF-8 content"})
		result.BinarySkipped++
		return
	}

	result.Entries = append(result.Entries, Entry{RelPath: rel, Content: content})
	result.Processed++
}

func (c *Collector) relPath(path string) string {
	rel, err := filepath.Rel(c.root, path)
	if err != nil {
		return filepath.ToSlash(path)
	}
	return filepath.ToSlash(rel)
}

// hasVisibleDescendant reports whether an ignored directory contains at
// least one file the resolver leaves visible, which keeps it on the walk.
func (c *Collector) hasVisibleDescendant(dir string) bool {
	found := false
	_ = filepath.WalkDir(dir, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil || d.IsDir() {
			return nil
		}
		if !c.resolver.IsIgnored(path, false) {
			found = true
			return filepath.SkipAll
		}
		return nil
	})
	return found
}

// Render assembles the flattened document: each file prefixed with a marker
// line carrying its root-relative path, skips recorded inline, and the whole
// result trimmed of surrounding whitespace.
func (r *Result) Render() string {
	var parts []string
	for _, entry := range r.Entries {
		if entry.SkipReason != "" {
			parts = append(parts, fmt.Sprintf("\n\n# --- Skipped file (%s): %s ---", entry.SkipReason, entry.RelPath))
			continue
		}
		parts = append(parts, fmt.Sprintf("\n\n# --- File: %s ---", entry.RelPath))
		parts = append(parts, string(entry.Content))
	}
	return strings.TrimSpace(strings.Join(parts, "\n"))
}
