// Root command for the bulwark CLI.
package main

import (
	"github.com/spf13/cobra"

	"github.com/hardenlabs/bulwark/internal/paths"
	"github.com/hardenlabs/bulwark/pkg/bulwark"
	"github.com/hardenlabs/bulwark/pkg/check"
)

// Exit codes.
const (
	exitSuccess   = 0
	exitUserError = 1
	exitSysError  = 2
)

// Global flag values.
var (
	flagConfigDir string
	flagDataDir   string
	flagJSON      bool
)

// Values loaded from config.yaml by PersistentPreRunE, available to all
// subcommands.
var (
	configDataDir       string
	configCapacity      int
	configChecksEnabled bool
)

var rootCmd = &cobra.Command{
	Use:     "bulwark",
	Short:   "Bulwark runs regression self-tests for the defensive stack",
	Version: bulwark.Version,
	// Errors are printed once by main; do not let cobra repeat them or
	// print usage on subcommand failures.
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		configDir, err := resolveConfigDir()
		if err != nil {
			return err
		}

		cfg, err := loadConfig(configDir)
		if err != nil {
			return err
		}

		configDataDir = cfg.GetString(cfgKeyDataDir)
		configCapacity = cfg.GetInt(cfgKeyCapacity)
		configChecksEnabled = cfg.GetBool(cfgKeyChecksEnabled)
		check.SetEnabled(configChecksEnabled)
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfigDir, "config-dir", "", "configuration directory (default: $(CWD)/.bulwark)")
	rootCmd.PersistentFlags().StringVar(&flagDataDir, "data-dir", "", "data directory (default: $(CWD)/.bulwark-db)")
	rootCmd.PersistentFlags().BoolVar(&flagJSON, "json", false, "output as JSON")

	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(showCmd)
}

// resolveConfigDir returns the configuration directory following the
// precedence: --config-dir flag > BULWARK_CONFIG_DIR env > default.
func resolveConfigDir() (string, error) {
	return paths.ResolveConfigDir(flagConfigDir)
}

// resolveDataDir returns the data directory following the precedence:
// --data-dir flag > config.yaml data_dir > BULWARK_DATA_DIR env > default.
func resolveDataDir() (string, error) {
	return paths.ResolveDataDir(flagDataDir, configDataDir)
}
