package cmd

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"darkskin.dev/pkg/darkskin/internal/domain"
	m "darkskin.dev/pkg/darkskin/internal/model"
)

var findParallelFlag int

// findCmd represents the find command.
var findCmd = newFindCmd()

func newFindCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "find [dir]",
		Short: "Search a directory for editor executables",
		Long: `Search dir (default: the last searched directory, then the Unity Hub
install directory) for editor executables, pick one and remember it for
later commands.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return workflow.Find(cmd.Context(), domain.FindArgs{
				Root:        targetPath(args, 0),
				DefaultRoot: m.Path(viper.GetString(searchRootKey)),
				FileName:    viper.GetString(searchFileNameKey),
				Threads:     viper.GetInt(searchParallelKey),
			})
		},
	}

	configureFindFlags(cmd)

	return cmd
}

func init() {
	rootCmd.AddCommand(findCmd)
}

func configureFindFlags(cmd *cobra.Command) {
	cmd.Flags().IntVarP(&findParallelFlag, parallelFlagName, "p", defaultSearchParallel, "number of directories searched in parallel")
	bindFlagToConfig(cmd.Flags().Lookup(parallelFlagName), searchParallelKey)
}
