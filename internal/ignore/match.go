package ignore

import (
	"path"
	"strings"

	"github.com/danwakefield/fnmatch"
)

// matchesPattern is the single matching primitive behind the CLI and config
// ignore layers. Checked in order:
//
//  1. exact filename
//  2. filename glob
//  3. directory-style pattern ("name/") against the relative path or the
//     directory's own name
//  4. glob against the root-relative path (so "a/*" catches "a/b/c.txt";
//     "*" is not slash-bounded here)
//
// relPath is the forward-slash path relative to the traversal root, or ""
// when the path is not under the root, in which case only the name-level
// checks apply.
func matchesPattern(pattern, name, relPath string, isDir bool) bool {
	if pattern == "" {
		return false
	}
	if name == pattern {
		return true
	}
	if fnmatch.Match(pattern, name, 0) {
		return true
	}
	if strings.HasSuffix(pattern, "/") && isDir {
		if relPath != "" && relPath+"/" == pattern {
			return true
		}
		if name+"/" == pattern {
			return true
		}
	}
	if relPath != "" && fnmatch.Match(pattern, relPath, 0) {
		return true
	}
	return false
}

func matchesAny(patterns []string, name, relPath string, isDir bool) bool {
	for _, pattern := range patterns {
		if matchesPattern(pattern, name, relPath, isDir) {
			return true
		}
	}
	return false
}

// MatchesInclude reports whether a filename passes the flatten include filter.
// A pattern starting with "." matches by case-insensitive suffix, a pattern
// starting with "*." matches by case-insensitive suffix after the star, and
// anything else is an exact filename or filename-level glob.
func MatchesInclude(patterns []string, name string) bool {
	ext := strings.ToLower(path.Ext(name))
	for _, pattern := range patterns {
		switch {
		case strings.HasPrefix(pattern, "."):
			if ext == strings.ToLower(pattern) {
				return true
			}
		case strings.HasPrefix(pattern, "*."):
			if ext == strings.ToLower(pattern[1:]) {
				return true
			}
		default:
			if name == pattern || fnmatch.Match(pattern, name, 0) {
				return true
			}
		}
	}
	return false
}
