package cmd

import (
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"strconv"
	"strings"

	"github.com/spf13/viper"
	"gopkg.in/natefinch/lumberjack.v2"

	"darkskin.dev/pkg/darkskin/internal/domain"
)

const (
	configVersionKey     = "version"
	currentConfigVersion = 1

	configBaseName   = "darkskin"
	configFileName   = configBaseName + ".yaml"
	configFolderPath = "."

	maxSizeFlagName    = "max-size"
	fileNameFlagName   = "file-name"
	backupFlagName     = "backup"
	signaturesFlagName = "signatures"
	plainFlagName      = "plain"
	verboseFlagName    = "verbose"
	logFileFlagName    = "log-file"
	parallelFlagName   = "parallel"
	releaseFlagName    = "release"
	dryRunFlagName     = "dry-run"

	maxSizeKey        = "image.max_size"
	searchFileNameKey = "search.file_name"
	searchRootKey     = "search.root"
	searchParallelKey = "search.parallel"
	patchBackupKey    = "patch.backup"
	signaturesFileKey = "signatures.file"
	prefsFileKey      = "prefs.file"
	uiPlainKey        = "ui.plain"

	defaultSearchFileName = "Unity.exe"
	defaultSearchParallel = 4
	defaultPatchBackup    = true
	defaultPrefsFile      = ".darkskin-prefs.yaml"
	defaultUIPlain        = false

	envPrefix = "DARKSKIN"

	logFilenameKey   = "log.filename"
	logLevelKey      = "log.level"
	logVerboseKey    = "log.verbose"
	logMaxSizeKey    = "log.max_size"
	logMaxBackupsKey = "log.max_backups"
	logMaxAgeKey     = "log.max_age"
	logCompressKey   = "log.compress"

	defaultLogFilename   = ".darkskin.log"
	defaultLogLevel      = int(slog.LevelInfo)
	defaultLogVerbose    = false
	defaultLogMaxSize    = 10
	defaultLogMaxBackups = 3
	defaultLogMaxAge     = 28
	defaultLogCompress   = true
)

var globalLogger *slog.Logger

func init() {
	viper.SetConfigName(configBaseName)
	viper.SetConfigType("yaml")
	viper.AddConfigPath(configFolderPath)
	viper.SetConfigFile(filepath.Join(configFolderPath, configFileName))
	viper.AutomaticEnv()
	viper.SetEnvPrefix(envPrefix)
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))

	viper.SetDefault(configVersionKey, currentConfigVersion)
	viper.SetDefault(maxSizeKey, domain.DefaultMaxImageSize)
	viper.SetDefault(searchFileNameKey, defaultSearchFileName)
	viper.SetDefault(searchRootKey, defaultSearchRoot(runtime.GOOS, os.Getenv("HOME")))
	viper.SetDefault(searchParallelKey, defaultSearchParallel)
	viper.SetDefault(patchBackupKey, defaultPatchBackup)
	viper.SetDefault(signaturesFileKey, "")
	viper.SetDefault(prefsFileKey, defaultPrefsFile)
	viper.SetDefault(uiPlainKey, defaultUIPlain)

	// Logging defaults (used by config/env and as fallbacks for flags).
	viper.SetDefault(logFilenameKey, defaultLogFilename)
	viper.SetDefault(logLevelKey, defaultLogLevel)
	viper.SetDefault(logVerboseKey, defaultLogVerbose)
	viper.SetDefault(logMaxSizeKey, defaultLogMaxSize)
	viper.SetDefault(logMaxBackupsKey, defaultLogMaxBackups)
	viper.SetDefault(logMaxAgeKey, defaultLogMaxAge)
	viper.SetDefault(logCompressKey, defaultLogCompress)

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) || errors.Is(err, os.ErrNotExist) {
			return
		}

		slog.Warn("Failed to read config file", "file", configFileName, "error", err)
	}
}

// defaultSearchRoot returns the directory Unity Hub installs editors into.
func defaultSearchRoot(goos, home string) string {
	switch goos {
	case "windows":
		return `C:\Program Files\Unity\Hub\Editor`
	case "darwin":
		return "/Applications/Unity/Hub/Editor"
	default:
		if home == "" {
			return ""
		}

		return filepath.Join(home, "Unity", "Hub", "Editor")
	}
}

func parseSlogLevel(value string, defaultLevel slog.Level) slog.Level {
	level := strings.ToLower(strings.TrimSpace(value))
	if level == "" {
		return defaultLevel
	}

	switch level {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	}

	// Numeric slog levels are accepted too (-4 is debug).
	if n, err := strconv.Atoi(level); err == nil {
		return slog.Level(n)
	}

	return defaultLevel
}

// configureLogger configures the global slog logger.
//
// By default it logs at Info; if verbose is true it logs at Debug.
func configureLogger(logPath string, verbose bool) {
	if strings.TrimSpace(logPath) == "" {
		logPath = viper.GetString(logFilenameKey)
	}

	if strings.TrimSpace(logPath) == "" {
		logPath = defaultLogFilename
	}

	var logLevel slog.Level
	if verbose {
		logLevel = slog.LevelDebug
	} else {
		logLevel = parseSlogLevel(viper.GetString(logLevelKey), slog.LevelInfo)
	}

	logWriter := &lumberjack.Logger{
		Filename:   logPath,
		MaxSize:    viper.GetInt(logMaxSizeKey),
		MaxBackups: viper.GetInt(logMaxBackupsKey),
		MaxAge:     viper.GetInt(logMaxAgeKey),
		Compress:   viper.GetBool(logCompressKey),
	}

	handler := slog.NewTextHandler(logWriter, &slog.HandlerOptions{
		AddSource: true,
		Level:     logLevel,
	})

	globalLogger = slog.New(handler)
	slog.SetDefault(globalLogger)
}
