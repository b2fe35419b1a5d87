// Package config loads per-project settings from the .llmctx.toml file and
// decides runtime presentation settings such as color use.
package config

import (
	"os"
	"path/filepath"

	"github.com/mattn/go-isatty"
	"github.com/spf13/viper"

	"github.com/llmctx/llmctx/internal/utils"
)

// Filename is the project-level settings file convention.
const Filename = ".llmctx.toml"

// Settings holds the project-level configuration. Zero values mean "not
// configured"; the pattern lists feed the ignore resolver's config layer.
type Settings struct {
	TreeOutput    string
	FlattenOutput string
	DepsOutput    string
	BundleOutput  string

	GlobalExcludePatterns []string
	GlobalIncludePatterns []string
}

// Load reads the root's .llmctx.toml. A missing file yields defaults; a
// malformed file yields defaults with a warning. Pattern values that are not
// string lists are discarded with a warning so the core never sees them.
func Load(root string, log utils.Logger) Settings {
	if log == nil {
		log = utils.NoopLogger{}
	}
	var s Settings

	path := filepath.Join(root, Filename)
	if _, err := os.Stat(path); err != nil {
		return s
	}

	v := viper.New()
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		log.Warn("config: could not parse %s: %v", path, err)
		return s
	}

	s.TreeOutput = v.GetString("default_output_filename_tree")
	s.FlattenOutput = v.GetString("default_output_filename_flatten")
	s.DepsOutput = v.GetString("default_output_filename_deps")
	s.BundleOutput = v.GetString("default_output_filename_bundle")
	s.GlobalExcludePatterns = stringList(v, "global_exclude_patterns", log)
	s.GlobalIncludePatterns = stringList(v, "global_include_patterns", log)
	return s
}

// stringList fetches a key that must be a list of strings, warning and
// returning nil on any other shape.
func stringList(v *viper.Viper, key string, log utils.Logger) []string {
	raw := v.Get(key)
	if raw == nil {
		return nil
	}
	items, ok := raw.([]interface{})
	if !ok {
		log.Warn("config: expected a list for %q, got %T; ignoring", key, raw)
		return nil
	}
	var out []string
	for _, item := range items {
		str, ok := item.(string)
		if !ok {
			log.Warn("config: expected strings in %q, got %T; ignoring the list", key, item)
			return nil
		}
		out = append(out, str)
	}
	return out
}

// UseColors decides whether colored output is appropriate: never when
// disabled explicitly or writing to a file, otherwise only on a terminal.
func UseColors(noColor bool, outputFile string) bool {
	if noColor || outputFile != "" {
		return false
	}
	return isatty.IsTerminal(os.Stderr.Fd())
}
