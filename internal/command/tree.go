package command

import "github.com/spf13/cobra"

func newTreeCommand(opts *rootOptions) *cobra.Command {
	var (
		outputFile string
		ignores    []string
	)

	cmd := &cobra.Command{
		Use:   "tree [root]",
		Short: "Generate a directory tree view",
		Long:  "Generate a directory tree of the project, honoring .llmignore rules, config excludes and --ignore patterns.",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			root := "."
			if len(args) == 1 {
				root = args[0]
			}
			return opts.newApp(outputFile).RunTree(root, outputFile, ignores)
		},
	}

	cmd.Flags().StringVarP(&outputFile, "output", "o", "", "write the tree to a file instead of stdout")
	cmd.Flags().StringArrayVarP(&ignores, "ignore", "i", nil, "extra name or glob to ignore (repeatable)")
	return cmd
}
