package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dangdinh/giapha/internal/sqlite"
	"github.com/dangdinh/giapha/pkg/types"
)

var flagSeed bool

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Create the data directory and database schema",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if cfg.Mode != types.ModeDesktop {
			return fmt.Errorf("init only applies to desktop mode; the web schema is managed by migrations")
		}

		store := sqlite.New()
		if err := store.Open(cfg.DataDir); err != nil {
			return fmt.Errorf("init store: %w", err)
		}
		defer store.Close()

		if flagSeed {
			if err := store.Seed(); err != nil {
				return fmt.Errorf("seed: %w", err)
			}
		}

		fmt.Printf("Initialized %s\n", cfg.DataDir)
		return nil
	},
}

func init() {
	initCmd.Flags().BoolVar(&flagSeed, "seed", false, "insert a small sample clan when the database is empty")
}
