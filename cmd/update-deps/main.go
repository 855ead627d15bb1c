package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mozc-build/update-deps/internal/config"
	"github.com/mozc-build/update-deps/internal/utils/logger"
	"github.com/mozc-build/update-deps/internal/utils/security"
)

// Command-line flags that can override config file settings
var (
	configFile string = "" // path to config file, consumed pre-parse by configPathFromArgs
	logLevel   string = "" // empty means use config file value
)

func main() {
	// The configuration must be loaded before cobra parses flags, so the
	// --config value is scanned out of the raw arguments up front.
	configFilePath := configPathFromArgs(os.Args[1:])
	if configFilePath == "" {
		configFilePath = config.FindConfigFile()
	}

	globalConfig, err := config.LoadGlobalConfig(configFilePath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading configuration: %v\n", err)
		os.Exit(1)
	}

	config.SetGlobal(globalConfig)

	_, cleanup, err := logger.InitWithConfig(logger.Config{
		Level:    globalConfig.Logging.Level,
		FilePath: globalConfig.Logging.File,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error initializing logger: %v\n", err)
		os.Exit(1)
	}
	defer cleanup()

	rootCmd := createRootCommand()

	log := logger.Logger()
	if configFilePath != "" {
		log.Infof("Using configuration from: %s", configFilePath)
	}
	cacheDir, _ := config.CacheDir()
	thirdPartyDir, _ := config.ThirdPartyDir()
	log.Debugf("Config: cache_dir=%s, third_party_dir=%s, keep_partial=%v",
		cacheDir, thirdPartyDir, config.KeepPartial())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// createRootCommand creates and configures the root cobra command with all subcommands
func createRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "update-deps",
		Short: "Fetch and verify third-party build dependencies",
		Long: `update-deps takes care of the third-party dependencies of the legacy
GYP build: it downloads the Qt source archive and the ninja build tool with
size and SHA-256 verification, keeps them in a local cache, extracts ninja
into the third-party directory, and triggers submodule sync and the Windows
installer toolchain restore.

Run 'update-deps' with no arguments to perform the full update.
Use 'update-deps <command> --help' for more information about a command.`,
		SilenceUsage: true,
		RunE:         executeFetch,
	}

	// Add global flags
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "",
		"Path to configuration file")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "",
		"Log level (debug, info, warn, error)")

	addFetchFlags(rootCmd)

	// Add all subcommands
	rootCmd.AddCommand(createVersionCommand())
	rootCmd.AddCommand(createCacheCommand())
	rootCmd.AddCommand(createInstallCompletionCommand())

	// Handle log level override after flag parsing. Set before the input
	// validation hook is attached so AttachRecursive chains it.
	rootCmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		if logLevel != "" {
			globalConfig := config.Global()
			globalConfig.Logging.Level = logLevel
			config.SetGlobal(globalConfig)
			logger.SetLogLevel(logLevel)
		}
		return nil
	}
	security.AttachRecursive(rootCmd, security.DefaultLimits())

	return rootCmd
}

// configPathFromArgs extracts the --config flag value from raw command-line
// arguments, without a full flag parse.
func configPathFromArgs(args []string) string {
	for i := 0; i < len(args); i++ {
		arg := args[i]
		if arg == "--" {
			return ""
		}
		if arg == "--config" {
			if i+1 < len(args) {
				return args[i+1]
			}
			return ""
		}
		if strings.HasPrefix(arg, "--config=") {
			return strings.TrimPrefix(arg, "--config=")
		}
	}
	return ""
}
