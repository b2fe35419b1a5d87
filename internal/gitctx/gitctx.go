// Package gitctx renders read-only repository metadata (branch, status,
// recent commits) as a Markdown section.
package gitctx

import (
	"errors"
	"fmt"
	"os"
	"sort"
	"strings"

	git "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
)

// DefaultLogCount is the number of recent commits included by default.
const DefaultLogCount = 5

// Context builds the Git context document for a project root. Every failure
// mode, from "not a repository" to "no commits yet", is rendered inline; the
// function never fails.
func Context(root string, logCount int) string {
	if logCount <= 0 {
		logCount = DefaultLogCount
	}

	var b strings.Builder
	b.WriteString("# Git Context\n\n")

	info, err := os.Stat(root)
	if err != nil {
		fmt.Fprintf(&b, "Error: Project path '%s' does not exist.\n", root)
		return b.String()
	}
	if !info.IsDir() {
		fmt.Fprintf(&b, "Error: Project path '%s' is not a directory.\n", root)
		return b.String()
	}

	repo, err := git.PlainOpen(root)
	if err != nil {
		if errors.Is(err, git.ErrRepositoryNotExists) {
			b.WriteString("Not a Git repository or no Git history.\n")
		} else {
			fmt.Fprintf(&b, "Error opening repository: %v\n", err)
		}
		return b.String()
	}

	writeBranch(&b, repo)
	writeStatus(&b, repo)
	writeLog(&b, repo, logCount)
	return b.String()
}

func writeBranch(b *strings.Builder, repo *git.Repository) {
	b.WriteString("## Current Branch\n\n")
	head, err := repo.Head()
	switch {
	case errors.Is(err, plumbing.ErrReferenceNotFound):
		b.WriteString("No commits yet.\n\n")
	case err != nil:
		fmt.Fprintf(b, "Error reading HEAD: %v\n\n", err)
	case head.Name().IsBranch():
		fmt.Fprintf(b, "%s\n\n", head.Name().Short())
	default:
		fmt.Fprintf(b, "(detached HEAD at %s)\n\n", head.Hash().String()[:7])
	}
}

func writeStatus(b *strings.Builder, repo *git.Repository) {
	b.WriteString("## Git Status\n\n")
	wt, err := repo.Worktree()
	if err != nil {
		fmt.Fprintf(b, "Error reading worktree: %v\n\n", err)
		return
	}
	status, err := wt.Status()
	if err != nil {
		fmt.Fprintf(b, "Error reading status: %v\n\n", err)
		return
	}
	if status.IsClean() {
		b.WriteString("Working tree clean.\n\n")
		return
	}

	paths := make([]string, 0, len(status))
	for path := range status {
		paths = append(paths, path)
	}
	sort.Strings(paths)
	for _, path := range paths {
		fs := status[path]
		fmt.Fprintf(b, "%c%c %s\n", byte(fs.Staging), byte(fs.Worktree), path)
	}
	b.WriteString("\n")
}

func writeLog(b *strings.Builder, repo *git.Repository, logCount int) {
	b.WriteString("## Recent Commits\n\n")
	iter, err := repo.Log(&git.LogOptions{})
	if err != nil {
		if errors.Is(err, plumbing.ErrReferenceNotFound) {
			b.WriteString("No commits yet.\n")
		} else {
			fmt.Fprintf(b, "Error reading log: %v\n", err)
		}
		return
	}
	defer iter.Close()

	count := 0
	for count < logCount {
		commit, err := iter.Next()
		if err != nil {
			break
		}
		subject := commit.Message
		if idx := strings.IndexByte(subject, '\n'); idx >= 0 {
			subject = subject[:idx]
		}
		fmt.Fprintf(b, "- %s %s\n", commit.Hash.String()[:7], strings.TrimSpace(subject))
		count++
	}
	if count == 0 {
		b.WriteString("No commits yet.\n")
	}
}
