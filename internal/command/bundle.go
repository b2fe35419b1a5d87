package command

import (
	"github.com/spf13/cobra"

	"github.com/llmctx/llmctx/internal/bundle"
	"github.com/llmctx/llmctx/internal/gitctx"
)

func newBundleCommand(opts *rootOptions) *cobra.Command {
	var (
		outputFile   string
		flattenPaths []string
		noTree       bool
		noGit        bool
		noDeps       bool
		gitLogCount  int
	)

	cmd := &cobra.Command{
		Use:   "bundle [root]",
		Short: "Aggregate tree, git, dependency and file sections into one document",
		Long:  "Build a combined Markdown context bundle. Sections can be disabled individually, and --flatten adds one flattened-files section per given path.",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			root := "."
			if len(args) == 1 {
				root = args[0]
			}
			return opts.newApp(outputFile).RunBundle(root, outputFile, bundle.Options{
				IncludeTree:  !noTree,
				IncludeGit:   !noGit,
				IncludeDeps:  !noDeps,
				FlattenPaths: flattenPaths,
				GitLogCount:  gitLogCount,
			})
		},
	}

	cmd.Flags().StringVarP(&outputFile, "output", "o", "", "write the bundle to a file instead of stdout")
	cmd.Flags().StringArrayVar(&flattenPaths, "flatten", nil, "path whose files are flattened into the bundle (repeatable)")
	cmd.Flags().BoolVar(&noTree, "no-tree", false, "omit the directory tree section")
	cmd.Flags().BoolVar(&noGit, "no-git", false, "omit the git context section")
	cmd.Flags().BoolVar(&noDeps, "no-deps", false, "omit the dependency section")
	cmd.Flags().IntVar(&gitLogCount, "git-log-count", gitctx.DefaultLogCount, "number of recent commits in the git section")
	return cmd
}
