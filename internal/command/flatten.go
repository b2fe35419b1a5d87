package command

import "github.com/spf13/cobra"

func newFlattenCommand(opts *rootOptions) *cobra.Command {
	var (
		outputFile string
		includes   []string
		excludes   []string
	)

	cmd := &cobra.Command{
		Use:   "flatten [root]",
		Short: "Concatenate visible file contents into one document",
		Long:  "Flatten the project's files into a single document with per-file markers. Files must pass the ignore rules and match an include pattern (a documented default set of code and text files when --include is not given).",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			root := "."
			if len(args) == 1 {
				root = args[0]
			}
			return opts.newApp(outputFile).RunFlatten(root, outputFile, includes, excludes)
		},
	}

	cmd.Flags().StringVarP(&outputFile, "output", "o", "", "write the flattened document to a file instead of stdout")
	cmd.Flags().StringArrayVarP(&includes, "include", "e", nil, "include pattern: extension, filename or glob (repeatable)")
	cmd.Flags().StringArrayVarP(&excludes, "ignore", "i", nil, "extra name or glob to ignore (repeatable)")
	return cmd
}
