package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/dangdinh/giapha/internal/gedcom"
)

var flagGedcomOut string

var gedcomCmd = &cobra.Command{
	Use:   "gedcom",
	Short: "Export the family tree as a GEDCOM 5.5.1 file",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		store, closeStore, err := openStore(cfg)
		if err != nil {
			return err
		}
		defer closeStore()

		snap, err := gedcom.Load(store)
		if err != nil {
			return fmt.Errorf("load snapshot: %w", err)
		}

		now := time.Now().UTC()
		text := gedcom.Encode(snap, now)
		validation := gedcom.Validate(text)

		dest := flagGedcomOut
		if dest == "" {
			dest = gedcom.Filename(now)
		} else if info, err := os.Stat(dest); err == nil && info.IsDir() {
			dest = filepath.Join(dest, gedcom.Filename(now))
		}
		if err := os.WriteFile(dest, []byte(text), 0o644); err != nil {
			return fmt.Errorf("write gedcom: %w", err)
		}

		// Validation failures are warnings; the file is written regardless.
		for _, msg := range validation.Errors {
			fmt.Fprintf(os.Stderr, "warning: %s\n", msg)
		}

		if flagJSON {
			return json.NewEncoder(os.Stdout).Encode(map[string]any{
				"ok": true, "file": dest, "valid": validation.Valid, "warnings": validation.Errors,
			})
		}
		fmt.Printf("Wrote %s\n", dest)
		return nil
	},
}

func init() {
	gedcomCmd.Flags().StringVarP(&flagGedcomOut, "output", "o", "", "output file or directory (default: ./gia-pha-dang-dinh-<date>.ged)")
}
