package cmd

import (
	"github.com/spf13/cobra"

	"darkskin.dev/pkg/darkskin/internal/domain"
)

var detectReleaseFlag string

// detectCmd represents the detect command.
var detectCmd = newDetectCmd()

func newDetectCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "detect [file]",
		Short: "Show the editor release and active theme",
		Long: `Load the executable (default: the last selected one), detect its editor
release from the embedded version string and report the active theme.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return workflow.Detect(cmd.Context(), domain.DetectArgs{
				Path:    targetPath(args, 0),
				Release: detectReleaseFlag,
			})
		},
	}

	cmd.Flags().StringVar(&detectReleaseFlag, releaseFlagName, "", "use this release label instead of detecting it")

	return cmd
}

func init() {
	rootCmd.AddCommand(detectCmd)
}
