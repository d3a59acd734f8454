// Package archive packs and unpacks the portable backup container: a ZIP
// file holding one manifest.json plus optional embedded media entries.
package archive

import (
	"fmt"
	"time"

	"github.com/dangdinh/giapha/pkg/types"
)

// Fixed entry names inside the archive.
const (
	// ManifestName is the well-known manifest entry. Unpack fails when it
	// is absent; this is the first integrity gate of a restore.
	ManifestName = "manifest.json"

	// MediaPrefix is the directory prefix for embedded media entries. The
	// path under the prefix mirrors the original relative media path.
	MediaPrefix = "media/"
)

// ManifestVersion is the current manifest format version.
const ManifestVersion = "1.0"

// FilenamePrefix is the fixed prefix of generated archive names,
// giapha-YYYY-MM-DD.zip.
const FilenamePrefix = "giapha"

// Manifest is the descriptor embedded in every backup archive. RowCounts is
// derived from the table payloads at build time, never from a separate count
// query.
type Manifest struct {
	Version      string                 `json:"version"`
	AppVersion   string                 `json:"app_version"`
	ExportedAt   string                 `json:"exported_at"`
	Mode         string                 `json:"mode"`
	IncludeMedia string                 `json:"include_media"`
	RowCounts    map[string]int         `json:"row_counts"`
	Tables       map[string][]types.Row `json:"tables"`
}

// NewManifest builds a manifest for the given table payloads, computing row
// counts from the slices themselves so the count/payload invariant holds by
// construction.
func NewManifest(appVersion, mode, includeMedia string, tables map[string][]types.Row, now time.Time) *Manifest {
	counts := make(map[string]int, len(tables))
	for name, rows := range tables {
		counts[name] = len(rows)
	}
	return &Manifest{
		Version:      ManifestVersion,
		AppVersion:   appVersion,
		ExportedAt:   now.UTC().Format(time.RFC3339),
		Mode:         mode,
		IncludeMedia: includeMedia,
		RowCounts:    counts,
		Tables:       tables,
	}
}

// CheckStructure validates the structural shape a restore depends on:
// version non-empty and tables non-nil. Row payloads stay untrusted; the
// column sanitizer runs on every row regardless of this check passing.
func (m *Manifest) CheckStructure() error {
	if m.Version == "" || m.Tables == nil {
		return types.ErrManifestInvalid
	}
	return nil
}

// Rows returns the payload for a table, treating a missing table as empty.
func (m *Manifest) Rows(table string) []types.Row {
	return m.Tables[table]
}

// Filename returns the archive filename for an export date,
// e.g. giapha-2026-08-28.zip.
func Filename(now time.Time) string {
	return fmt.Sprintf("%s-%s.zip", FilenamePrefix, now.UTC().Format("2006-01-02"))
}
