package cmd

import (
	"github.com/spf13/cobra"

	"darkskin.dev/pkg/darkskin/internal/domain"
)

// restoreCmd represents the restore command.
var restoreCmd = newRestoreCmd()

func newRestoreCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "restore [file]",
		Short: "Restore the executable from its backup",
		Long:  "Copy <file>.bak back over the executable (default: the last selected one).",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return workflow.Restore(cmd.Context(), domain.RestoreArgs{Path: targetPath(args, 0)})
		},
	}
}

func init() {
	rootCmd.AddCommand(restoreCmd)
}
