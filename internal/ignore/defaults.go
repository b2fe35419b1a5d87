package ignore

import "github.com/danwakefield/fnmatch"

// Core exclusions are ignored unconditionally. They cannot be negated by the
// ignore file, CLI patterns or config patterns, and any path containing one of
// these names as a segment is invisible to every tool.
var coreExclusions = map[string]struct{}{
	".git": {},
}

// IsCoreExcluded reports whether name is one of the unconditional exclusions.
func IsCoreExcluded(name string) bool {
	_, ok := coreExclusions[name]
	return ok
}

// fallbackExclusions is the baseline exclusion set applied by the walkers when
// neither an ignore spec nor config-level excludes exist. It keeps default
// output usable in projects that never wrote a .llmignore.
var fallbackExclusions = []string{
	// version control
	".git", ".hg", ".svn",
	// Python
	"__pycache__", "*.pyc", "*.pyo", "*.pyd",
	".pytest_cache", ".mypy_cache", ".ruff_cache",
	"venv", ".venv", "env", ".env",
	"*.egg-info",
	// Node.js
	"node_modules", "package-lock.json", "yarn.lock",
	// IDE
	".vscode", ".idea", "*.iml",
	// build artifacts
	"dist", "build", "target", "out",
	// OS metadata
	".DS_Store", "Thumbs.db",
	// logs and temp files
	"*.log", "*.tmp", "*.swp",
}

// FallbackExclusions returns a copy of the baseline exclusion set.
func FallbackExclusions() []string {
	out := make([]string, len(fallbackExclusions))
	copy(out, fallbackExclusions)
	return out
}

// MatchesFallback reports whether a file or directory name is covered by the
// baseline exclusion set, by exact name or glob.
func MatchesFallback(name string) bool {
	for _, pattern := range fallbackExclusions {
		if name == pattern || fnmatch.Match(pattern, name, 0) {
			return true
		}
	}
	return false
}

// defaultIncludePatterns is the flatten allow-list used when the caller gives
// no include patterns: common source, markup, config and doc files.
var defaultIncludePatterns = []string{
	// Python
	".py", ".pyw", ".pyx",
	// JavaScript / TypeScript
	".js", ".jsx", ".mjs", ".cjs", ".ts", ".tsx", ".mts", ".cts",
	// web
	".html", ".htm", ".css", ".scss", ".sass", ".less",
	// JVM
	".java", ".kt", ".kts", ".scala", ".groovy", ".gradle",
	// C family
	".c", ".cpp", ".h", ".hpp", ".m", ".mm", ".cs",
	// Go, Rust, Ruby, PHP, Swift
	".go", ".rs", ".rb", ".php", ".swift",
	// shell / scripting
	".sh", ".bash", ".zsh", ".ps1", ".bat", ".cmd",
	// markup, data, config
	".md", ".markdown", ".rst", ".txt", ".text",
	".json", ".jsonc", ".json5", ".yaml", ".yml", ".xml",
	".toml", ".ini", ".cfg", ".conf", ".csv", ".tsv",
	".sql",
	// containers
	"Dockerfile", ".dockerfile", "docker-compose.yml", "docker-compose.yaml",
	// repo housekeeping
	".gitattributes", ".gitmodules", ".editorconfig", ".env.example",
	"README", "LICENSE", "CONTRIBUTING", "NOTICE", "CHANGELOG",
	"Makefile", "go.mod", "go.sum",
}

// DefaultIncludePatterns returns a copy of the default flatten allow-list.
func DefaultIncludePatterns() []string {
	out := make([]string, len(defaultIncludePatterns))
	copy(out, defaultIncludePatterns)
	return out
}
