// Package cmd provides the root command and CLI setup for darkskin.
package cmd

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"darkskin.dev/pkg/darkskin/internal/adapter"
	"darkskin.dev/pkg/darkskin/internal/controller"
	"darkskin.dev/pkg/darkskin/internal/domain"
	m "darkskin.dev/pkg/darkskin/internal/model"
)

var imageStore adapter.ImageStore
var fileFinder adapter.FileFinder
var prefsStore adapter.PrefsStore
var registry *domain.Registry
var workflow domain.Workflow
var ui controller.UI

var maxSizeFlag int64
var fileNameFlag string
var backupFlag bool
var signaturesFlag string
var plainFlag bool
var verboseFlag bool
var logFileFlag string

func init() {
	configureRootFlags(rootCmd)
	rootCmd.PersistentPreRunE = func(cmd *cobra.Command, _ []string) error {
		configureLogger(viper.GetString(logFilenameKey), viper.GetBool(logVerboseKey))
		return wireDependencies(cmd.Root())
	}

	// Initialize shared dependencies.
	imageStore = adapter.NewLocalImageStore()
	fileFinder = adapter.NewLocalFileFinder()

	builtin, err := domain.NewBuiltinRegistry()
	cobra.CheckErr(err)

	registry = builtin
	wireWorkflow(rootCmd)
}

const rootLongDescription = `Darkskin switches the editor skin compiled into a Unity editor executable
between the light and the dark theme.

It detects the editor release from a version fingerprint embedded in the
executable, finds the active theme signature and rewrites it in place.
A backup (<file>.bak) is taken before the first write.`

// rootCmd represents the base command when called without any subcommands.
var rootCmd = baseRootCmd()

func baseRootCmd() *cobra.Command {
	return &cobra.Command{
		Use:           "darkskin",
		Short:         "Unity editor theme switcher",
		Long:          rootLongDescription,
		SilenceUsage:  true,
		SilenceErrors: false,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cmd.Help()
		},
	}
}

// newRootCmd builds a root command with flags but without dependency wiring,
// so callers can inject their own workflow.
func newRootCmd() *cobra.Command {
	cmd := baseRootCmd()
	configureRootFlags(cmd)

	return cmd
}

func configureRootFlags(cmd *cobra.Command) {
	flags := cmd.PersistentFlags()

	flags.Int64Var(&maxSizeFlag, maxSizeFlagName, viper.GetInt64(maxSizeKey), "largest executable size accepted, in bytes")
	bindFlagToConfig(flags.Lookup(maxSizeFlagName), maxSizeKey)

	flags.StringVar(&fileNameFlag, fileNameFlagName, viper.GetString(searchFileNameKey), "executable file name to search for")
	bindFlagToConfig(flags.Lookup(fileNameFlagName), searchFileNameKey)

	flags.BoolVar(&backupFlag, backupFlagName, viper.GetBool(patchBackupKey), "copy the executable to <file>.bak before the first write")
	bindFlagToConfig(flags.Lookup(backupFlagName), patchBackupKey)

	flags.StringVar(&signaturesFlag, signaturesFlagName, viper.GetString(signaturesFileKey), "YAML file with extra release signatures")
	bindFlagToConfig(flags.Lookup(signaturesFlagName), signaturesFileKey)

	flags.BoolVar(&plainFlag, plainFlagName, viper.GetBool(uiPlainKey), "plain text output even on a terminal")
	bindFlagToConfig(flags.Lookup(plainFlagName), uiPlainKey)

	flags.BoolVarP(&verboseFlag, verboseFlagName, "v", viper.GetBool(logVerboseKey), "debug level logging")
	bindFlagToConfig(flags.Lookup(verboseFlagName), logVerboseKey)

	flags.StringVar(&logFileFlag, logFileFlagName, viper.GetString(logFilenameKey), "log file path")
	bindFlagToConfig(flags.Lookup(logFileFlagName), logFilenameKey)
}

// bindFlagToConfig wires a Cobra flag to a Viper key so config/env values feed the flag.
func bindFlagToConfig(flag *pflag.Flag, key string) {
	if flag == nil {
		cobra.CheckErr(fmt.Errorf("flag for config key %q not found", key))
		return
	}

	cobra.CheckErr(viper.BindPFlag(key, flag))
}

// wireDependencies rebuilds the registry, UI and workflow from the parsed
// flags and configuration.
func wireDependencies(root *cobra.Command) error {
	loaded, err := loadRegistry(viper.GetString(signaturesFileKey))
	if err != nil {
		return err
	}

	registry = loaded
	wireWorkflow(root)

	return nil
}

func wireWorkflow(root *cobra.Command) {
	ui = controller.NewUI(root, !viper.GetBool(uiPlainKey) && controller.IsTTY(os.Stdout))
	prefsStore = adapter.NewYAMLPrefsStore(m.Path(viper.GetString(prefsFileKey)))
	workflow = domain.NewWorkflow(
		imageStore,
		fileFinder,
		prefsStore,
		ui,
		registry,
		domain.WithMaxImageSize(viper.GetInt64(maxSizeKey)),
		domain.WithBackup(viper.GetBool(patchBackupKey)),
	)
}

// loadRegistry builds the builtin registry, preceded by the releases from
// the signature file when one is configured.
func loadRegistry(signaturesPath string) (*domain.Registry, error) {
	if signaturesPath == "" {
		return domain.NewBuiltinRegistry()
	}

	// #nosec G304 - signature file is chosen by the user
	data, err := os.ReadFile(signaturesPath)
	if err != nil {
		slog.Error("Failed to read signature file", "path", signaturesPath, "error", err)
		return nil, fmt.Errorf("read signatures %s: %w", signaturesPath, err)
	}

	extra, err := domain.ParseSignatures(data)
	if err != nil {
		slog.Error("Failed to parse signature file", "path", signaturesPath, "error", err)
		return nil, fmt.Errorf("parse signatures %s: %w", signaturesPath, err)
	}

	loaded, err := domain.NewBuiltinRegistry(extra...)
	if err != nil {
		slog.Error("Invalid signature file", "path", signaturesPath, "error", err)
		return nil, fmt.Errorf("signatures %s: %w", signaturesPath, err)
	}

	slog.Info("Loaded signature file", "path", signaturesPath, "releases", len(extra))

	return loaded, nil
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

// targetPath returns the optional file argument at index i.
func targetPath(args []string, i int) m.Path {
	if len(args) <= i {
		return ""
	}

	return m.Path(args[i])
}
