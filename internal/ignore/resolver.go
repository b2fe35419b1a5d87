// Package ignore decides which paths are visible under the layered
// ignore-rule model: unconditional core exclusions, the compiled .llmignore
// spec, CLI-supplied patterns and config-supplied patterns.
package ignore

import (
	"path"
	"path/filepath"
	"strings"

	"github.com/llmctx/llmctx/internal/utils"
)

// Resolver answers visibility queries for paths under (or outside) a root
// directory. It is immutable during a walk apart from AddCLIPatterns, which
// callers use before walking to self-exclude an output file.
type Resolver struct {
	root           string
	spec           *Spec
	cliPatterns    []string
	configPatterns []string
	logger         utils.Logger
}

// ResolverOption configures a Resolver.
type ResolverOption func(*Resolver)

// WithSpec attaches a compiled ignore spec. nil is valid and means the
// baseline exclusions may apply instead.
func WithSpec(spec *Spec) ResolverOption {
	return func(r *Resolver) { r.spec = spec }
}

// WithCLIPatterns sets the CLI-level exclude patterns.
func WithCLIPatterns(patterns []string) ResolverOption {
	return func(r *Resolver) { r.cliPatterns = append(r.cliPatterns, patterns...) }
}

// WithConfigPatterns sets the config-level exclude patterns.
func WithConfigPatterns(patterns []string) ResolverOption {
	return func(r *Resolver) { r.configPatterns = append(r.configPatterns, patterns...) }
}

// WithLogger sets the resolver's logger.
func WithLogger(log utils.Logger) ResolverOption {
	return func(r *Resolver) {
		if log != nil {
			r.logger = log
		}
	}
}

// NewResolver builds a Resolver for the given root directory.
func NewResolver(root string, opts ...ResolverOption) (*Resolver, error) {
	absRoot, err := filepath.Abs(root)
	if err != nil {
		return nil, err
	}
	r := &Resolver{root: absRoot, logger: utils.NoopLogger{}}
	for _, opt := range opts {
		opt(r)
	}
	return r, nil
}

// Root returns the resolver's absolute root directory.
func (r *Resolver) Root() string { return r.root }

// HasSpec reports whether an ignore spec is attached.
func (r *Resolver) HasSpec() bool { return r.spec != nil }

// UseFallback reports whether the walkers should apply the baseline exclusion
// set: only when there is no ignore spec and no config-level excludes.
func (r *Resolver) UseFallback() bool {
	return r.spec == nil && len(r.configPatterns) == 0
}

// AddCLIPatterns appends extra CLI-level exclude patterns, e.g. the name of
// an output file written inside the root.
func (r *Resolver) AddCLIPatterns(patterns ...string) {
	r.cliPatterns = append(r.cliPatterns, patterns...)
}

// IsIgnored reports whether a path is ignored. Layering, strongest first:
//
//  1. core exclusions — any matching path segment, never negatable
//  2. ignore-spec rules — gitignore semantics, last matching rule wins; a
//     path whose own final match is a negation stays visible even inside an
//     ignored directory, while an unmatched path inherits the nearest
//     matched ancestor's decision
//  3. CLI patterns, then config patterns — plain ignore layers that a spec
//     negation cannot override
//
// Paths outside the root skip spec matching; CLI/config patterns then match
// on the filename only. The root itself is never ignored.
func (r *Resolver) IsIgnored(p string, isDir bool) bool {
	abs, err := filepath.Abs(p)
	if err != nil {
		abs = p
	}

	rel, relErr := filepath.Rel(r.root, abs)
	underRoot := relErr == nil && rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator))
	if underRoot && rel == "." {
		return false
	}

	relSlash := ""
	if underRoot {
		relSlash = filepath.ToSlash(rel)
	}

	if r.coreExcluded(abs, relSlash) {
		r.logger.Debug("ignore: %q excluded by core rule", p)
		return true
	}

	if r.spec != nil && relSlash != "" {
		if match := r.spec.match(relSlash, isDir); match != nil {
			if match.Ignore() {
				r.logger.Debug("ignore: %q matched ignore rule %v", relSlash, match)
				return true
			}
			// Negated: visible as far as the spec is concerned, but the
			// CLI/config layers below still apply.
		} else if r.ancestorIgnored(relSlash) {
			r.logger.Debug("ignore: %q under ignored directory", relSlash)
			return true
		}
	}

	name := filepath.Base(abs)
	if matchesAny(r.cliPatterns, name, relSlash, isDir) {
		r.logger.Debug("ignore: %q matched CLI pattern", p)
		return true
	}
	if matchesAny(r.configPatterns, name, relSlash, isDir) {
		r.logger.Debug("ignore: %q matched config pattern", p)
		return true
	}
	return false
}

// coreExcluded checks every path segment against the core exclusion set. For
// paths under the root only the root-relative segments are considered; for
// anything else the whole path is.
func (r *Resolver) coreExcluded(abs, relSlash string) bool {
	candidate := relSlash
	if candidate == "" {
		candidate = filepath.ToSlash(abs)
	}
	for _, segment := range strings.Split(candidate, "/") {
		if segment == "" {
			continue
		}
		if IsCoreExcluded(segment) {
			return true
		}
	}
	return false
}

// ancestorIgnored walks the relative path's parent chain and reports whether
// some ancestor directory is ignored by the spec, which makes an otherwise
// unmatched descendant invisible too.
func (r *Resolver) ancestorIgnored(relSlash string) bool {
	for dir := path.Dir(relSlash); dir != "." && dir != "/"; dir = path.Dir(dir) {
		if match := r.spec.match(dir, true); match != nil {
			return match.Ignore()
		}
	}
	return false
}
