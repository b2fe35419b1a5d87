package ignore

import (
	"os"
	"path/filepath"
	"strings"

	gitignore "github.com/denormal/go-gitignore"

	"github.com/llmctx/llmctx/internal/utils"
)

// IgnoreFilename is the ignore-file convention looked up at a traversal root.
const IgnoreFilename = ".llmignore"

// Rule is one compiled ignore-file entry. The pattern is stored without its
// leading "!"; order in the spec is significant because the last matching
// rule wins.
type Rule struct {
	Pattern  string
	Negated  bool
	DirOnly  bool
	Anchored bool
}

// Spec is the compiled, ordered rule set of one ignore file. A nil *Spec
// means "no spec": the file was absent, unreadable, or had no effective
// rules, and callers fall back to the baseline exclusions.
type Spec struct {
	rules   []Rule
	matcher gitignore.GitIgnore
}

// Rules returns the parsed rule metadata in file order.
func (s *Spec) Rules() []Rule {
	if s == nil {
		return nil
	}
	out := make([]Rule, len(s.rules))
	copy(out, s.rules)
	return out
}

// match runs the compiled matcher against a root-relative, forward-slash
// path. It returns nil when no rule matches.
func (s *Spec) match(relPath string, isDir bool) gitignore.Match {
	if s == nil || s.matcher == nil {
		return nil
	}
	return s.matcher.Relative(relPath, isDir)
}

// CompileSpec parses ignore-file content into a Spec. Lines are cleaned the
// way git does: BOM and surrounding whitespace stripped, blank lines and
// comment lines dropped, unescaped inline "#" comments truncated, and a bare
// "!" discarded. Returns nil when no effective rules remain.
func CompileSpec(content string) *Spec {
	var rules []Rule
	var cleaned []string

	for _, raw := range strings.Split(content, "\n") {
		line := strings.TrimPrefix(raw, "\uFEFF")
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		if idx := inlineCommentIndex(line); idx >= 0 {
			line = strings.TrimRight(line[:idx], " \t")
			if line == "" {
				continue
			}
		}

		negated := false
		if strings.HasPrefix(line, "!") {
			negated = true
			line = strings.TrimLeft(line[1:], " \t")
			if line == "" {
				continue
			}
		}

		rules = append(rules, Rule{
			Pattern:  line,
			Negated:  negated,
			DirOnly:  strings.HasSuffix(line, "/"),
			Anchored: strings.HasPrefix(line, "/") || strings.Contains(strings.TrimSuffix(line, "/"), "/"),
		})
		if negated {
			cleaned = append(cleaned, "!"+line)
		} else {
			cleaned = append(cleaned, line)
		}
	}

	if len(cleaned) == 0 {
		return nil
	}

	matcher := gitignore.New(strings.NewReader(strings.Join(cleaned, "\n")), "", nil)
	if matcher == nil {
		return nil
	}
	return &Spec{rules: rules, matcher: matcher}
}

// inlineCommentIndex returns the index of the first unescaped "#" past the
// start of the line, or -1.
func inlineCommentIndex(line string) int {
	for i := 1; i < len(line); i++ {
		if line[i] == '#' && line[i-1] != '\\' {
			return i
		}
	}
	return -1
}

// LoadSpec reads and compiles the root's ignore file. Absence, unreadability
// and parse trouble all mean "no spec": a warning is logged and nil returned,
// never an error.
func LoadSpec(root string, log utils.Logger) *Spec {
	if log == nil {
		log = utils.NoopLogger{}
	}
	ignorePath := filepath.Join(root, IgnoreFilename)

	info, err := os.Stat(ignorePath)
	if err != nil || info.IsDir() {
		return nil
	}

	content, err := os.ReadFile(ignorePath)
	if err != nil {
		log.Warn("could not read %s: %v", ignorePath, err)
		return nil
	}

	spec := CompileSpec(string(content))
	if spec == nil {
		log.Debug("%s contains no effective patterns", ignorePath)
	}
	return spec
}
