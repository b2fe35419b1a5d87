// Package app wires configuration, logging and output together and runs the
// individual tools on behalf of the CLI commands.
package app

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/fatih/color"

	"github.com/llmctx/llmctx/internal/bundle"
	"github.com/llmctx/llmctx/internal/config"
	"github.com/llmctx/llmctx/internal/deps"
	"github.com/llmctx/llmctx/internal/flatten"
	"github.com/llmctx/llmctx/internal/gitctx"
	"github.com/llmctx/llmctx/internal/ignore"
	"github.com/llmctx/llmctx/internal/logger"
	"github.com/llmctx/llmctx/internal/printer"
	"github.com/llmctx/llmctx/internal/summary"
	"github.com/llmctx/llmctx/internal/tree"
)

// Options are the presentation settings shared by every command.
type Options struct {
	Verbose  bool
	Quiet    bool
	LogLevel string
	NoColor  bool
}

// App carries the wired logger and printer for one command invocation.
type App struct {
	Log     *logger.Logger
	Printer *printer.Printer
}

// New builds an App from the global flags. outputFile only influences color
// auto-detection.
func New(opts Options, outputFile string) *App {
	useColors := config.UseColors(opts.NoColor, outputFile)
	color.NoColor = !useColors

	log := logger.New(os.Stderr, opts.Verbose, useColors)
	if opts.LogLevel != "" {
		log.SetLevel(opts.LogLevel)
	} else if opts.Quiet {
		log.WithLevel(logger.LevelWarn)
	}

	return &App{
		Log:     log,
		Printer: printer.New(os.Stdout).WithColors(useColors),
	}
}

// validateRoot resolves and checks the root directory; the returned error is
// the one fatal error class of every command.
func (a *App) validateRoot(root string) (string, error) {
	abs, err := filepath.Abs(root)
	if err != nil {
		return "", fmt.Errorf("invalid root directory %q: %w", root, err)
	}
	info, err := os.Stat(abs)
	if err != nil {
		if os.IsNotExist(err) {
			return "", fmt.Errorf("root directory %q not found", abs)
		}
		return "", fmt.Errorf("could not access root directory %q: %w", abs, err)
	}
	if !info.IsDir() {
		return "", fmt.Errorf("%q is not a directory", abs)
	}
	return abs, nil
}

// buildResolver assembles the visibility resolver for a root: ignore spec
// from .llmignore, CLI patterns, config-level excludes, and the output file's
// own name when it would land inside the walked tree.
func (a *App) buildResolver(root string, cliIgnores, configExcludes []string, outputFile string) (*ignore.Resolver, error) {
	spec := ignore.LoadSpec(root, a.Log)
	if spec != nil {
		a.Log.Debug("using ignore patterns from %s", filepath.Join(root, ignore.IgnoreFilename))
	} else {
		a.Log.Debug("no %s file, or it is empty", ignore.IgnoreFilename)
	}

	resolver, err := ignore.NewResolver(root,
		ignore.WithSpec(spec),
		ignore.WithCLIPatterns(cliIgnores),
		ignore.WithConfigPatterns(configExcludes),
		ignore.WithLogger(a.Log),
	)
	if err != nil {
		return nil, err
	}

	if name := selfExclusion(root, outputFile); name != "" {
		a.Log.Debug("output file %q will be ignored for this run", name)
		resolver.AddCLIPatterns(name)
	}
	return resolver, nil
}

// selfExclusion returns the output file's base name when it lies under root.
func selfExclusion(root, outputFile string) string {
	if outputFile == "" {
		return ""
	}
	abs, err := filepath.Abs(outputFile)
	if err != nil {
		return ""
	}
	rel, err := filepath.Rel(root, abs)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return ""
	}
	return filepath.Base(abs)
}

// RunTree generates the directory tree view.
func (a *App) RunTree(root, outputFile string, cliIgnores []string) error {
	absRoot, err := a.validateRoot(root)
	if err != nil {
		return err
	}
	settings := config.Load(absRoot, a.Log)
	if outputFile == "" {
		outputFile = settings.TreeOutput
	}

	resolver, err := a.buildResolver(absRoot, cliIgnores, settings.GlobalExcludePatterns, outputFile)
	if err != nil {
		return err
	}
	walker, err := tree.NewWalker(absRoot, resolver, tree.WithLogger(a.Log))
	if err != nil {
		return err
	}
	lines, err := walker.Lines()
	if err != nil {
		return err
	}
	return a.Printer.WriteDocument(outputFile, strings.Join(lines, "\n"))
}

// RunFlatten flattens file contents under root into one document.
func (a *App) RunFlatten(root, outputFile string, includes, cliIgnores []string) error {
	absRoot, err := a.validateRoot(root)
	if err != nil {
		return err
	}
	settings := config.Load(absRoot, a.Log)
	if outputFile == "" {
		outputFile = settings.FlattenOutput
	}
	if len(includes) == 0 {
		includes = settings.GlobalIncludePatterns
	}

	resolver, err := a.buildResolver(absRoot, cliIgnores, settings.GlobalExcludePatterns, outputFile)
	if err != nil {
		return err
	}
	collector, err := flatten.NewCollector(absRoot, resolver,
		flatten.WithIncludePatterns(includes),
		flatten.WithLogger(a.Log),
	)
	if err != nil {
		return err
	}
	result, err := collector.Collect()
	if err != nil {
		return err
	}

	if err := a.Printer.WriteDocument(outputFile, result.Render()); err != nil {
		return err
	}
	summary.DisplayFlattenResults(a.Log, result)
	return nil
}

// RunDeps lists project dependencies.
func (a *App) RunDeps(root, outputFile string) error {
	absRoot, err := a.validateRoot(root)
	if err != nil {
		return err
	}
	settings := config.Load(absRoot, a.Log)
	if outputFile == "" {
		outputFile = settings.DepsOutput
	}
	return a.Printer.WriteDocument(outputFile, deps.Render(deps.List(absRoot, a.Log)))
}

// RunGit renders the git context section.
func (a *App) RunGit(root, outputFile string, logCount int) error {
	absRoot, err := a.validateRoot(root)
	if err != nil {
		return err
	}
	return a.Printer.WriteDocument(outputFile, gitctx.Context(absRoot, logCount))
}

// RunBundle builds the aggregated context bundle.
func (a *App) RunBundle(root, outputFile string, opts bundle.Options) error {
	absRoot, err := a.validateRoot(root)
	if err != nil {
		return err
	}
	settings := config.Load(absRoot, a.Log)
	if outputFile == "" {
		outputFile = settings.BundleOutput
	}
	opts.ConfigExcludes = settings.GlobalExcludePatterns
	opts.SelfExclude = selfExclusion(absRoot, outputFile)
	opts.Logger = a.Log

	content, err := bundle.Create(absRoot, opts)
	if err != nil {
		return err
	}
	return a.Printer.WriteDocument(outputFile, content)
}
