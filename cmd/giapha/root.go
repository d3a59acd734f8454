package main

import (
	"github.com/spf13/cobra"

	"github.com/dangdinh/giapha/internal/paths"
	"github.com/dangdinh/giapha/pkg/giapha"
	"github.com/dangdinh/giapha/pkg/types"
)

// Global flag values.
var (
	flagConfigDir string
	flagDataDir   string
	flagJSON      bool
)

// cfg holds the effective configuration, resolved by PersistentPreRunE so
// every subcommand can use it.
var cfg types.Config

var rootCmd = &cobra.Command{
	Use:     "giapha",
	Short:   "GiaPha manages the Đặng Đình clan genealogy dataset",
	Version: giapha.Version,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if cmd.Name() == "version" {
			return nil
		}

		configDir, err := resolveConfigDir()
		if err != nil {
			return err
		}
		loaded, err := loadConfig(configDir)
		if err != nil {
			return err
		}

		cfg = loaded
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfigDir, "config-dir", "", "configuration directory (default: platform config dir)")
	rootCmd.PersistentFlags().StringVar(&flagDataDir, "data-dir", "", "data directory (default: ~/GiaPha)")
	rootCmd.PersistentFlags().BoolVar(&flagJSON, "json", false, "output as JSON")

	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(backupCmd)
	rootCmd.AddCommand(restoreCmd)
	rootCmd.AddCommand(gedcomCmd)
	rootCmd.AddCommand(scheduleCmd)
	rootCmd.AddCommand(serveCmd)
}

// resolveConfigDir returns the configuration directory with precedence:
// --config-dir flag > GIAPHA_CONFIG_DIR env > platform default.
func resolveConfigDir() (string, error) {
	return paths.ResolveConfigDir(flagConfigDir)
}
