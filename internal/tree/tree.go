// Package tree builds the ordered, prunable directory-tree view.
package tree

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/llmctx/llmctx/internal/ignore"
	"github.com/llmctx/llmctx/internal/utils"
)

// Node is one rendered tree entry. A directory node appears in its parent's
// children if it is itself visible or if it retained at least one child (the
// rescue rule). Annotation leaves carry a parenthesized message for
// subdirectories that could not be listed.
type Node struct {
	Name     string
	IsDir    bool
	Children []*Node
}

// Walker produces the tree for one root directory.
type Walker struct {
	root     string
	resolver *ignore.Resolver
	fallback bool
	logger   utils.Logger
}

// Option configures a Walker.
type Option func(*Walker)

// WithLogger sets the walker's logger.
func WithLogger(log utils.Logger) Option {
	return func(w *Walker) {
		if log != nil {
			w.logger = log
		}
	}
}

// NewWalker validates the root and prepares a Walker. A missing or non-directory
// root is the one fatal error in this package.
func NewWalker(root string, resolver *ignore.Resolver, opts ...Option) (*Walker, error) {
	absRoot, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("tree: invalid root %q: %w", root, err)
	}
	info, err := os.Stat(absRoot)
	if err != nil {
		return nil, fmt.Errorf("tree: root directory %q not found: %w", absRoot, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("tree: %q is not a directory", absRoot)
	}

	w := &Walker{
		root:     absRoot,
		resolver: resolver,
		fallback: resolver.UseFallback(),
		logger:   utils.NoopLogger{},
	}
	for _, opt := range opts {
		opt(w)
	}
	return w, nil
}

// Tree walks the root and returns the retained nodes.
func (w *Walker) Tree() (*Node, error) {
	root := &Node{Name: filepath.Base(w.root), IsDir: true}
	w.fill(root, w.root)
	return root, nil
}

// Lines walks the root and renders the textual tree.
func (w *Walker) Lines() ([]string, error) {
	root, err := w.Tree()
	if err != nil {
		return nil, err
	}
	return Render(root), nil
}

// fill populates node with dir's retained children, bottom-up, so each
// directory's rescue decision is made from its already-walked subtree.
func (w *Walker) fill(node *Node, dir string) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		node.Children = append(node.Children, annotate(dir, err))
		return
	}

	sort.Slice(entries, func(i, j int) bool {
		if entries[i].IsDir() != entries[j].IsDir() {
			return entries[i].IsDir()
		}
		return strings.ToLower(entries[i].Name()) < strings.ToLower(entries[j].Name())
	})

	for _, entry := range entries {
		name := entry.Name()
		childPath := filepath.Join(dir, name)
		isDir := entry.IsDir()

		// Baseline-excluded names are pruned without descending; the rescue
		// rule applies to ignore-rule decisions only.
		if w.fallback && ignore.MatchesFallback(name) {
			w.logger.Debug("tree: pruned %q", childPath)
			continue
		}

		visible := !w.resolver.IsIgnored(childPath, isDir)
		if !isDir {
			if visible {
				node.Children = append(node.Children, &Node{Name: name})
			}
			continue
		}

		child := &Node{Name: name, IsDir: true}
		w.fill(child, childPath)
		if visible || len(child.Children) > 0 {
			node.Children = append(node.Children, child)
		} else {
			w.logger.Debug("tree: pruned %q", childPath)
		}
	}
}

func annotate(dir string, err error) *Node {
	name := filepath.Base(dir)
	if os.IsPermission(err) {
		return &Node{Name: fmt.Sprintf("(permission denied for %s/)", name)}
	}
	if os.IsNotExist(err) {
		return &Node{Name: fmt.Sprintf("(directory not found: %s/)", name)}
	}
	return &Node{Name: fmt.Sprintf("(unreadable: %s/)", name)}
}

// Render turns a node tree into the line-oriented text form, root line first.
func Render(root *Node) []string {
	lines := []string{root.Name + "/"}
	renderChildren(root, "", &lines)
	return lines
}

func renderChildren(node *Node, prefix string, lines *[]string) {
	for i, child := range node.Children {
		last := i == len(node.Children)-1
		connector := "├── "
		childPrefix := prefix + "│   "
		if last {
			connector = "└── "
			childPrefix = prefix + "    "
		}

		name := child.Name
		if child.IsDir {
			name += "/"
		}
		*lines = append(*lines, prefix+connector+name)
		if child.IsDir {
			renderChildren(child, childPrefix, lines)
		}
	}
}
