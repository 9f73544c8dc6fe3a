package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"darkskin.dev/pkg/darkskin/internal/domain"
	m "darkskin.dev/pkg/darkskin/internal/model"
)

var patchReleaseFlag string
var patchDryRunFlag bool

// patchCmd represents the patch command.
var patchCmd = newPatchCmd()

func newPatchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:       "patch <light|dark> [file]",
		Short:     "Switch the editor theme",
		ValidArgs: []string{"light", "dark"},
		Long: `Switch the executable (default: the last selected one) to the light or
dark theme. Nothing is written when the theme is already active.`,
		Example: `  darkskin patch dark
  darkskin patch light "C:\Program Files\Unity\Hub\Editor\2019.4.40f1\Editor\Unity.exe"
  darkskin patch dark --dry-run`,
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			theme, err := m.ParseThemeKind(args[0])
			if err != nil {
				return fmt.Errorf("%w: %w", domain.ErrUnsupportedTheme, err)
			}

			return workflow.Patch(cmd.Context(), domain.PatchArgs{
				DetectArgs: domain.DetectArgs{
					Path:    targetPath(args, 1),
					Release: patchReleaseFlag,
				},
				Theme:  theme,
				DryRun: patchDryRunFlag,
			})
		},
	}

	cmd.Flags().StringVar(&patchReleaseFlag, releaseFlagName, "", "use this release label instead of detecting it")
	cmd.Flags().BoolVar(&patchDryRunFlag, dryRunFlagName, false, "show the byte changes without writing")

	return cmd
}

func init() {
	rootCmd.AddCommand(patchCmd)
}
