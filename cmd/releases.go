package cmd

import (
	"github.com/spf13/cobra"
)

// releasesCmd represents the releases command.
var releasesCmd = newReleasesCmd()

func newReleasesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "releases",
		Short: "List the known editor releases",
		Long:  "List every release in the signature registry with its supported themes.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return workflow.Releases(cmd.Context())
		},
	}
}

func init() {
	rootCmd.AddCommand(releasesCmd)
}
