// Package bundle aggregates tree, git, dependency and flatten sections into
// one Markdown context document.
package bundle

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/llmctx/llmctx/internal/deps"
	"github.com/llmctx/llmctx/internal/flatten"
	"github.com/llmctx/llmctx/internal/gitctx"
	"github.com/llmctx/llmctx/internal/ignore"
	"github.com/llmctx/llmctx/internal/tree"
	"github.com/llmctx/llmctx/internal/utils"
)

// Options selects which sections a bundle carries.
type Options struct {
	IncludeTree bool
	IncludeGit  bool
	IncludeDeps bool

	// FlattenPaths are directories (root or below) whose files are flattened
	// into their own sections.
	FlattenPaths []string

	GitLogCount    int
	ConfigExcludes []string

	// SelfExclude is the bundle output file's name when it lives inside the
	// project, so the tree and flatten sections do not list it.
	SelfExclude string

	Logger utils.Logger
}

// Create builds the bundle document. Only an invalid root is fatal; a failing
// section is rendered as an inline error message so the rest of the bundle
// still comes out.
func Create(root string, opts Options) (string, error) {
	absRoot, err := filepath.Abs(root)
	if err != nil {
		return "", fmt.Errorf("bundle: invalid root %q: %w", root, err)
	}
	info, err := os.Stat(absRoot)
	if err != nil {
		return "", fmt.Errorf("bundle: project path %q does not exist: %w", absRoot, err)
	}
	if !info.IsDir() {
		return "", fmt.Errorf("bundle: project path %q is not a directory", absRoot)
	}

	log := opts.Logger
	if log == nil {
		log = utils.NoopLogger{}
	}

	var b strings.Builder
	fmt.Fprintf(&b, "# Context Bundle: %s\n\n", filepath.Base(absRoot))
	fmt.Fprintf(&b, "**Project Root:** `%s`\n\n", absRoot)

	writeTOC(&b, absRoot, opts)

	if opts.IncludeTree {
		b.WriteString("## Directory Tree\n\n```\n")
		b.WriteString(treeSection(absRoot, opts, log))
		b.WriteString("\n```\n\n")
	}

	if opts.IncludeGit {
		b.WriteString("## Git Context\n\n")
		b.WriteString(stripHeader(gitctx.Context(absRoot, opts.GitLogCount), "# Git Context"))
		b.WriteString("\n\n")
	}

	if opts.IncludeDeps {
		b.WriteString("## Project Dependencies\n\n")
		b.WriteString(stripHeader(deps.Render(deps.List(absRoot, log)), "# Project Dependencies"))
		b.WriteString("\n\n")
	}

	for _, flattenPath := range opts.FlattenPaths {
		label := flattenLabel(absRoot, flattenPath)
		fmt.Fprintf(&b, "## Files: %s\n\n", label)
		b.WriteString(flattenSection(absRoot, flattenPath, opts, log))
		b.WriteString("\n\n")
	}

	return strings.TrimSpace(b.String()) + "\n", nil
}

func writeTOC(b *strings.Builder, root string, opts Options) {
	var items []string
	if opts.IncludeTree {
		items = append(items, "- [Directory Tree](#directory-tree)")
	}
	if opts.IncludeGit {
		items = append(items, "- [Git Context](#git-context)")
	}
	if opts.IncludeDeps {
		items = append(items, "- [Project Dependencies](#project-dependencies)")
	}
	for _, p := range opts.FlattenPaths {
		label := flattenLabel(root, p)
		anchor := strings.ToLower(strings.NewReplacer("/", "-", "_", "-", " ", "-").Replace(label))
		items = append(items, fmt.Sprintf("- [Files: %s](#files-%s)", label, anchor))
	}
	if len(items) == 0 {
		return
	}
	b.WriteString("## Table of Contents\n\n")
	b.WriteString(strings.Join(items, "\n"))
	b.WriteString("\n\n---\n\n")
}

func treeSection(root string, opts Options, log utils.Logger) string {
	resolver, err := newResolver(root, opts, log)
	if err != nil {
		return fmt.Sprintf("Error generating directory tree: %v", err)
	}
	walker, err := tree.NewWalker(root, resolver, tree.WithLogger(log))
	if err != nil {
		return fmt.Sprintf("Error generating directory tree: %v", err)
	}
	lines, err := walker.Lines()
	if err != nil {
		return fmt.Sprintf("Error generating directory tree: %v", err)
	}
	return strings.Join(lines, "\n")
}

func flattenSection(root, flattenPath string, opts Options, log utils.Logger) string {
	abs := flattenPath
	if !filepath.IsAbs(abs) {
		abs = filepath.Join(root, flattenPath)
	}
	resolver, err := newResolver(abs, opts, log)
	if err != nil {
		return fmt.Sprintf("Error flattening files: %v", err)
	}
	collector, err := flatten.NewCollector(abs, resolver, flatten.WithLogger(log))
	if err != nil {
		return fmt.Sprintf("Error flattening files: %v", err)
	}
	result, err := collector.Collect()
	if err != nil {
		return fmt.Sprintf("Error flattening files: %v", err)
	}
	content := result.Render()
	if content == "" {
		return "No files found to flatten in this path."
	}
	return content
}

// newResolver loads the ignore spec at the section's own root, the same way
// the standalone commands do.
func newResolver(root string, opts Options, log utils.Logger) (*ignore.Resolver, error) {
	spec := ignore.LoadSpec(root, log)
	var cli []string
	if opts.SelfExclude != "" {
		cli = append(cli, opts.SelfExclude)
	}
	return ignore.NewResolver(root,
		ignore.WithSpec(spec),
		ignore.WithCLIPatterns(cli),
		ignore.WithConfigPatterns(opts.ConfigExcludes),
		ignore.WithLogger(log),
	)
}

func flattenLabel(root, flattenPath string) string {
	abs := flattenPath
	if !filepath.IsAbs(abs) {
		abs = filepath.Join(root, flattenPath)
	}
	rel, err := filepath.Rel(root, abs)
	if err != nil || rel == "." {
		return "Project Root"
	}
	return filepath.ToSlash(rel)
}

// stripHeader removes a section's own top-level heading so the bundle's
// heading replaces it.
func stripHeader(content, header string) string {
	content = strings.TrimSpace(content)
	if strings.HasPrefix(content, header) {
		content = strings.TrimSpace(strings.TrimPrefix(content, header))
	}
	return content
}
