// Package deps discovers package-manager manifests at a project root and
// renders their dependencies as grouped Markdown.
package deps

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	toml "github.com/pelletier/go-toml/v2"
	"golang.org/x/mod/modfile"

	"github.com/llmctx/llmctx/internal/utils"
)

// Dependency is one declared dependency of a manifest.
type Dependency struct {
	Name    string
	Version string
	Group   string
}

// ManifestList is the parsed result of one manifest file.
type ManifestList struct {
	File     string
	Language string
	Deps     []Dependency
}

type parser struct {
	file     string
	language string
	parse    func(data []byte) ([]Dependency, error)
}

var parsers = []parser{
	{"go.mod", "Go", parseGoMod},
	{"package.json", "JavaScript/Node.js", parsePackageJSON},
	{"pyproject.toml", "Python", parsePyProject},
	{"requirements.txt", "Python", parseRequirements("main")},
	{"requirements-dev.txt", "Python", parseRequirements("dev")},
	{"requirements-test.txt", "Python", parseRequirements("test")},
	{"requirements-prod.txt", "Python", parseRequirements("prod")},
	{"Cargo.toml", "Rust", parseCargo},
}

// List parses every known manifest present at the root. Malformed files are
// skipped with a warning; a missing file is simply not listed.
func List(root string, log utils.Logger) []ManifestList {
	if log == nil {
		log = utils.NoopLogger{}
	}
	var lists []ManifestList
	for _, p := range parsers {
		path := filepath.Join(root, p.file)
		data, err := os.ReadFile(path)
		if err != nil {
			continue
		}
		deps, err := p.parse(data)
		if err != nil {
			log.Warn("deps: failed to parse %s: %v", path, err)
			continue
		}
		lists = append(lists, ManifestList{File: p.file, Language: p.language, Deps: deps})
	}
	return lists
}

func parseGoMod(data []byte) ([]Dependency, error) {
	f, err := modfile.Parse("go.mod", data, nil)
	if err != nil {
		return nil, err
	}
	var deps []Dependency
	for _, req := range f.Require {
		group := "main"
		if req.Indirect {
			group = "indirect"
		}
		deps = append(deps, Dependency{Name: req.Mod.Path, Version: req.Mod.Version, Group: group})
	}
	return deps, nil
}

func parsePackageJSON(data []byte) ([]Dependency, error) {
	var manifest struct {
		Dependencies    map[string]string `json:"dependencies"`
		DevDependencies map[string]string `json:"devDependencies"`
	}
	if err := json.Unmarshal(data, &manifest); err != nil {
		return nil, err
	}
	var deps []Dependency
	deps = append(deps, mapDeps(manifest.Dependencies, "main")...)
	deps = append(deps, mapDeps(manifest.DevDependencies, "dev")...)
	return deps, nil
}

func parsePyProject(data []byte) ([]Dependency, error) {
	var manifest struct {
		Project struct {
			Dependencies         []string            `toml:"dependencies"`
			OptionalDependencies map[string][]string `toml:"optional-dependencies"`
		} `toml:"project"`
		Tool struct {
			Poetry struct {
				Dependencies map[string]interface{} `toml:"dependencies"`
				Group        map[string]struct {
					Dependencies map[string]interface{} `toml:"dependencies"`
				} `toml:"group"`
			} `toml:"poetry"`
		} `toml:"tool"`
	}
	if err := toml.Unmarshal(data, &manifest); err != nil {
		return nil, err
	}

	var deps []Dependency

	// PEP 621
	for _, spec := range manifest.Project.Dependencies {
		name, version := splitRequirement(spec)
		deps = append(deps, Dependency{Name: name, Version: version, Group: "main"})
	}
	for _, group := range sortedKeys(manifest.Project.OptionalDependencies) {
		for _, spec := range manifest.Project.OptionalDependencies[group] {
			name, version := splitRequirement(spec)
			deps = append(deps, Dependency{Name: name, Version: version, Group: group})
		}
	}

	// Poetry
	for _, name := range sortedKeys(manifest.Tool.Poetry.Dependencies) {
		if name == "python" {
			continue
		}
		deps = append(deps, Dependency{Name: name, Version: poetryVersion(manifest.Tool.Poetry.Dependencies[name]), Group: "main"})
	}
	for _, group := range sortedKeys(manifest.Tool.Poetry.Group) {
		entry := manifest.Tool.Poetry.Group[group]
		for _, name := range sortedKeys(entry.Dependencies) {
			deps = append(deps, Dependency{Name: name, Version: poetryVersion(entry.Dependencies[name]), Group: group})
		}
	}
	return deps, nil
}

func poetryVersion(spec interface{}) string {
	switch v := spec.(type) {
	case string:
		return v
	case map[string]interface{}:
		if version, ok := v["version"].(string); ok {
			return version
		}
	}
	return ""
}

func parseRequirements(group string) func(data []byte) ([]Dependency, error) {
	return func(data []byte) ([]Dependency, error) {
		var deps []Dependency
		for _, raw := range strings.Split(string(data), "\n") {
			line := strings.TrimSpace(raw)
			if line == "" || strings.HasPrefix(line, "#") || strings.HasPrefix(line, "-") {
				continue
			}
			if idx := strings.Index(line, " #"); idx >= 0 {
				line = strings.TrimSpace(line[:idx])
			}
			name, version := splitRequirement(line)
			deps = append(deps, Dependency{Name: name, Version: version, Group: group})
		}
		return deps, nil
	}
}

func parseCargo(data []byte) ([]Dependency, error) {
	var manifest struct {
		Dependencies    map[string]interface{} `toml:"dependencies"`
		DevDependencies map[string]interface{} `toml:"dev-dependencies"`
	}
	if err := toml.Unmarshal(data, &manifest); err != nil {
		return nil, err
	}
	var deps []Dependency
	for _, name := range sortedKeys(manifest.Dependencies) {
		deps = append(deps, Dependency{Name: name, Version: cargoVersion(manifest.Dependencies[name]), Group: "main"})
	}
	for _, name := range sortedKeys(manifest.DevDependencies) {
		deps = append(deps, Dependency{Name: name, Version: cargoVersion(manifest.DevDependencies[name]), Group: "dev"})
	}
	return deps, nil
}

func cargoVersion(spec interface{}) string {
	switch v := spec.(type) {
	case string:
		return v
	case map[string]interface{}:
		if version, ok := v["version"].(string); ok {
			return version
		}
	}
	return ""
}

// splitRequirement splits a requirement like "flask[async]>=2.0" into name
// and version-constraint parts.
func splitRequirement(spec string) (string, string) {
	spec = strings.TrimSpace(spec)
	if idx := strings.Index(spec, "["); idx >= 0 {
		if end := strings.Index(spec, "]"); end > idx {
			spec = spec[:idx] + spec[end+1:]
		}
	}
	for i, r := range spec {
		if strings.ContainsRune("<>=!~", r) {
			return strings.TrimSpace(spec[:i]), strings.TrimSpace(spec[i:])
		}
	}
	return spec, ""
}

func mapDeps(m map[string]string, group string) []Dependency {
	var deps []Dependency
	for _, name := range sortedKeys(m) {
		deps = append(deps, Dependency{Name: name, Version: m[name], Group: group})
	}
	return deps
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Render formats the manifests as Markdown: one section per file, one
// subsection per group when more than one group is present.
func Render(lists []ManifestList) string {
	var b strings.Builder
	b.WriteString("# Project Dependencies\n")

	if len(lists) == 0 {
		b.WriteString("\nNo dependency files found.\n")
		return b.String()
	}

	for _, list := range lists {
		fmt.Fprintf(&b, "\n## %s (%s)\n", list.Language, list.File)
		if len(list.Deps) == 0 {
			b.WriteString("\nNo dependencies declared.\n")
			continue
		}

		groups := groupOrder(list.Deps)
		for _, group := range groups {
			if len(groups) > 1 {
				fmt.Fprintf(&b, "\n### %s\n", group)
			}
			b.WriteString("\n")
			for _, dep := range list.Deps {
				if dep.Group != group {
					continue
				}
				if dep.Version != "" {
					fmt.Fprintf(&b, "- %s %s\n", dep.Name, dep.Version)
				} else {
					fmt.Fprintf(&b, "- %s\n", dep.Name)
				}
			}
		}
	}
	return b.String()
}

// groupOrder returns the distinct groups in first-seen order, "main" first.
func groupOrder(deps []Dependency) []string {
	var groups []string
	seen := map[string]bool{}
	for _, dep := range deps {
		if !seen[dep.Group] {
			seen[dep.Group] = true
			groups = append(groups, dep.Group)
		}
	}
	sort.SliceStable(groups, func(i, j int) bool {
		return groups[i] == "main" && groups[j] != "main"
	})
	return groups
}
