// Package command defines the llmctx CLI.
package command

import (
	"github.com/spf13/cobra"

	"github.com/llmctx/llmctx/internal/app"
)

// Version is stamped at build time.
var Version = "dev"

type rootOptions struct {
	verbose  bool
	quiet    bool
	logLevel string
	noColor  bool
}

// newApp wires an App from the global flags. outputFile feeds color
// auto-detection only.
func (o *rootOptions) newApp(outputFile string) *app.App {
	return app.New(app.Options{
		Verbose:  o.verbose,
		Quiet:    o.quiet,
		LogLevel: o.logLevel,
		NoColor:  o.noColor,
	}, outputFile)
}

// NewRootCommand assembles the CLI with all subcommands registered.
func NewRootCommand() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:           "llmctx",
		Short:         "Generate project context for large language models",
		Long:          "llmctx walks a project tree under a layered ignore-rule model and produces tree listings, flattened file contents, dependency listings, git metadata and combined context bundles.",
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: false,
	}

	cmd.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "enable debug logging")
	cmd.PersistentFlags().BoolVarP(&opts.quiet, "quiet", "q", false, "suppress info messages")
	cmd.PersistentFlags().StringVar(&opts.logLevel, "log-level", "", "log level (debug, info, warn, error, none)")
	cmd.PersistentFlags().BoolVar(&opts.noColor, "no-color", false, "disable colored output")

	cmd.AddCommand(
		newTreeCommand(opts),
		newFlattenCommand(opts),
		newDepsCommand(opts),
		newGitCommand(opts),
		newBundleCommand(opts),
	)
	return cmd
}

// Execute runs the CLI.
func Execute() error {
	return NewRootCommand().Execute()
}
