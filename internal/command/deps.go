package command

import "github.com/spf13/cobra"

func newDepsCommand(opts *rootOptions) *cobra.Command {
	var outputFile string

	cmd := &cobra.Command{
		Use:   "deps [root]",
		Short: "List project dependencies from manifest files",
		Long:  "Parse go.mod, package.json, pyproject.toml, requirements.txt and Cargo.toml at the project root and render the declared dependencies as Markdown.",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			root := "."
			if len(args) == 1 {
				root = args[0]
			}
			return opts.newApp(outputFile).RunDeps(root, outputFile)
		},
	}

	cmd.Flags().StringVarP(&outputFile, "output", "o", "", "write the dependency list to a file instead of stdout")
	return cmd
}
