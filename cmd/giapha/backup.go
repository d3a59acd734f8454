package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/dangdinh/giapha/internal/backup"
	"github.com/dangdinh/giapha/pkg/giapha"
	"github.com/dangdinh/giapha/pkg/types"
)

var (
	flagIncludeMedia string
	flagBackupOut    string
)

var backupCmd = &cobra.Command{
	Use:   "backup",
	Short: "Export the full dataset as a backup archive",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if !types.ValidMediaPolicy(flagIncludeMedia) {
			return fmt.Errorf("unknown media policy %q (skip, reference, inline)", flagIncludeMedia)
		}

		store, closeStore, err := openStore(cfg)
		if err != nil {
			return err
		}
		defer closeStore()

		exporter := backup.NewExporter(store, giapha.Version, nil)
		data, filename, err := exporter.Export(flagIncludeMedia)
		if err != nil {
			return fmt.Errorf("export: %w", err)
		}

		dest := flagBackupOut
		if dest == "" {
			dest = filename
		} else if info, err := os.Stat(dest); err == nil && info.IsDir() {
			dest = filepath.Join(dest, filename)
		}
		if err := os.WriteFile(dest, data, 0o644); err != nil {
			return fmt.Errorf("write archive: %w", err)
		}

		if st, err := scheduleStore(); err == nil {
			if _, err := st.RecordBackup(time.Now().UTC()); err != nil {
				logger := newLogger()
				logger.Warn().Err(err).Msg("recording backup time failed")
			}
		}

		if flagJSON {
			return json.NewEncoder(os.Stdout).Encode(map[string]any{
				"ok": true, "file": dest, "bytes": len(data),
			})
		}
		fmt.Printf("Wrote %s (%d bytes)\n", dest, len(data))
		return nil
	},
}

func init() {
	backupCmd.Flags().StringVar(&flagIncludeMedia, "include-media", types.MediaReference, "media policy: skip, reference or inline")
	backupCmd.Flags().StringVarP(&flagBackupOut, "output", "o", "", "output file or directory (default: ./giapha-<date>.zip)")
}
