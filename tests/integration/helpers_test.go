// Package integration provides shared test helpers for integration tests.
package integration

import (
	"testing"
	"time"

	"github.com/dangdinh/giapha/internal/archive"
	"github.com/dangdinh/giapha/internal/sqlite"
	"github.com/dangdinh/giapha/pkg/types"
)

// newDesktopStore opens a SQLite store in an isolated temp directory.
// Each test gets its own database for isolation.
func newDesktopStore(t *testing.T) *sqlite.Store {
	t.Helper()
	s := sqlite.New()
	if err := s.Open(t.TempDir()); err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { _ = s.Close() })
	return s
}

// packArchive builds a backup archive with the given table payloads and no
// media, as a restore input.
func packArchive(t *testing.T, tables map[string][]types.Row) []byte {
	t.Helper()
	m := archive.NewManifest("test", types.ModeDesktop, types.MediaReference, tables, time.Now().UTC())
	data, err := archive.Pack(m, nil)
	if err != nil {
		t.Fatalf("Pack: %v", err)
	}
	return data
}
