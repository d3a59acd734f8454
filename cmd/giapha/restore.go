package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/dangdinh/giapha/internal/backup"
)

var flagRestoreYes bool

var restoreCmd = &cobra.Command{
	Use:   "restore <archive.zip>",
	Short: "Replace the entire dataset with an archive's contents",
	Long: `Restore wipes every table and re-imports the archive. This is
destructive and cannot be interrupted safely once clearing has begun.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if !flagRestoreYes {
			return fmt.Errorf("restore deletes all current data; re-run with --yes to confirm")
		}

		data, err := os.ReadFile(args[0])
		if err != nil {
			return fmt.Errorf("read archive: %w", err)
		}

		store, closeStore, err := openStore(cfg)
		if err != nil {
			return err
		}
		defer closeStore()

		result, err := backup.NewEngine(store).Restore(data)
		if err != nil {
			return fmt.Errorf("restore: %w", err)
		}

		if flagJSON {
			return json.NewEncoder(os.Stdout).Encode(result)
		}
		fmt.Printf("Restored %d rows into %s backend\n", result.TotalInserted, result.Mode)
		if result.MediaRestored != nil {
			fmt.Printf("Restored %d media files\n", *result.MediaRestored)
		}
		for _, msg := range result.Errors {
			fmt.Fprintf(os.Stderr, "warning: %s\n", msg)
		}
		return nil
	},
}

func init() {
	restoreCmd.Flags().BoolVar(&flagRestoreYes, "yes", false, "confirm the destructive restore")
}
