package main

import (
	"fmt"
	"os"

	"github.com/rs/zerolog"

	"github.com/dangdinh/giapha/internal/backup"
	"github.com/dangdinh/giapha/internal/sqlite"
	"github.com/dangdinh/giapha/internal/supabase"
	"github.com/dangdinh/giapha/pkg/types"
)

// openStore creates the backend for the configured mode. The returned close
// function is safe to defer for both backends.
func openStore(cfg types.Config) (backup.Store, func() error, error) {
	switch cfg.Mode {
	case types.ModeDesktop:
		s := sqlite.New()
		if err := s.Open(cfg.DataDir); err != nil {
			return nil, nil, fmt.Errorf("open desktop store: %w", err)
		}
		return s, s.Close, nil
	case types.ModeWeb:
		s, err := supabase.NewStore(cfg.SupabaseURL, cfg.SupabaseServiceKey)
		if err != nil {
			return nil, nil, fmt.Errorf("open web store: %w", err)
		}
		return s, func() error { return nil }, nil
	default:
		return nil, nil, fmt.Errorf("%w: %q", types.ErrUnknownMode, cfg.Mode)
	}
}

// newLogger builds the CLI logger: human console output by default, JSON
// lines with --json so output can be piped.
func newLogger() zerolog.Logger {
	if flagJSON {
		return zerolog.New(os.Stderr).With().Timestamp().Logger()
	}
	return zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()
}

// scheduleStore returns the file-backed schedule store beside config.yaml.
func scheduleStore() (backup.ScheduleStore, error) {
	path, err := schedulePath()
	if err != nil {
		return backup.ScheduleStore{}, err
	}
	return backup.FileScheduleStore(path), nil
}
