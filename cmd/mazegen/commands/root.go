package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

// NewRootCmd builds the mazegen command tree.
func NewRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "mazegen",
		Short: "mazegen - step-by-step perfect maze generator",
		Long: `mazegen carves perfect mazes with a randomized depth-first walk and a
reconnection scan, reporting every carved cell in order.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
		SilenceErrors: true,
		SilenceUsage:  true,
	}

	root.AddCommand(newCarveCmd())
	root.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print the mazegen version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "mazegen %s\n", cmd.Root().Version)
		},
	})
	return root
}

// SetVersionInfo sets the version information for the CLI
func SetVersionInfo(root *cobra.Command, v, c, d string) {
	root.Version = fmt.Sprintf("%s (commit: %s, built: %s)", v, c, d)
}
