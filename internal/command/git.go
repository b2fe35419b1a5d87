package command

import (
	"github.com/spf13/cobra"

	"github.com/llmctx/llmctx/internal/gitctx"
)

func newGitCommand(opts *rootOptions) *cobra.Command {
	var (
		outputFile string
		logCount   int
	)

	cmd := &cobra.Command{
		Use:   "git [root]",
		Short: "Show git branch, status and recent commits",
		Long:  "Render the repository's current branch, working-tree status and recent commits as Markdown. Non-repositories produce an explanatory section, not an error.",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			root := "."
			if len(args) == 1 {
				root = args[0]
			}
			return opts.newApp(outputFile).RunGit(root, outputFile, logCount)
		},
	}

	cmd.Flags().StringVarP(&outputFile, "output", "o", "", "write the git context to a file instead of stdout")
	cmd.Flags().IntVarP(&logCount, "log-count", "n", gitctx.DefaultLogCount, "number of recent commits to include")
	return cmd
}
