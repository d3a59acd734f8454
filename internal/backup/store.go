// Package backup implements the unified backup exporter, the destructive
// restore engine, and the backup schedule policy. The engine is
// backend-agnostic: desktop (embedded SQLite) and web (hosted Postgres)
// differences live entirely behind the Store interface.
package backup

import "github.com/dangdinh/giapha/pkg/types"

// Store is the capability set the exporter and restore engine need from a
// storage backend. Implementations decide their own write strategy: the
// desktop store inserts one row at a time with ignore-on-conflict, the web
// store upserts in fixed-size batches.
type Store interface {
	// Mode returns "desktop" or "web"; recorded in manifests and results.
	Mode() string

	// ReadAll returns every row of a table. Used by export only.
	ReadAll(table string) ([]types.Row, error)

	// ClearAll unconditionally deletes every row of a table.
	ClearAll(table string) error

	// WriteRows writes sanitized rows to a table. It returns the number of
	// rows accepted and a list of non-fatal error messages (per row or per
	// batch, depending on the backend). It never aborts on a bad row.
	WriteRows(table string, rows []types.Row) (int, []string)

	// Flush persists pending writes. Called once after all restore writes.
	Flush() error
}

// MediaStore is the optional capability of stores that keep media on the
// local filesystem. Only the desktop store implements it; inline media
// embedding and restoring are skipped for stores without it.
type MediaStore interface {
	MediaRoot() string
}

// Result is the outcome of one restore invocation. Ok is true whenever
// structural validation passed; a non-empty Errors list signals partial
// success, not failure.
type Result struct {
	Ok            bool           `json:"ok"`
	Mode          string         `json:"mode"`
	Tables        map[string]int `json:"tables"`
	TotalInserted int            `json:"total_inserted"`
	MediaRestored *int           `json:"media_restored,omitempty"`
	Errors        []string       `json:"errors,omitempty"`
}
