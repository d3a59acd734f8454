package main

import (
	"fmt"
	"net/http"

	"github.com/spf13/cobra"

	"github.com/dangdinh/giapha/internal/server"
	"github.com/dangdinh/giapha/pkg/giapha"
)

var flagListenAddr string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the local API server",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		store, closeStore, err := openStore(cfg)
		if err != nil {
			return err
		}
		defer closeStore()

		st, err := scheduleStore()
		if err != nil {
			return err
		}

		addr := cfg.ListenAddr
		if flagListenAddr != "" {
			addr = flagListenAddr
		}

		log := newLogger()
		srv := server.New(store, st, giapha.Version, log)
		log.Info().Str("addr", addr).Str("mode", cfg.Mode).Msg("listening")
		if err := http.ListenAndServe(addr, srv.Router()); err != nil {
			return fmt.Errorf("serve: %w", err)
		}
		return nil
	},
}

func init() {
	serveCmd.Flags().StringVar(&flagListenAddr, "listen", "", "listen address (default from config)")
}
