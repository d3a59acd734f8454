package backup

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/dangdinh/giapha/internal/archive"
	"github.com/dangdinh/giapha/internal/registry"
	"github.com/dangdinh/giapha/pkg/types"
)

// MaxImportSize is the archive upload ceiling (500 MiB). The whole archive
// is held in memory during unpack, so the cap bounds peak memory and is
// checked before any parsing.
const MaxImportSize = 500 * 1024 * 1024

// Engine runs the destructive restore state machine: validate, clear all
// tables in reverse dependency order, re-insert sanitized rows in dependency
// order, then restore embedded media. Only validation can fail hard;
// everything after the first delete is best effort and accumulates errors.
type Engine struct {
	store Store
}

// NewEngine creates a restore Engine over the given store.
func NewEngine(store Store) *Engine {
	return &Engine{store: store}
}

// Restore executes a full restore from archive bytes. A non-nil error means
// nothing was touched: the archive was oversized, unreadable, or its
// manifest failed the structural check. Once clearing begins the engine
// always runs to completion and returns a Result with Ok set.
func (e *Engine) Restore(data []byte) (*Result, error) {
	// Validating.
	if int64(len(data)) > MaxImportSize {
		return nil, types.ErrArchiveTooLarge
	}
	contents, err := archive.Unpack(data)
	if err != nil {
		return nil, err
	}
	manifest := contents.Manifest

	result := &Result{
		Ok:     true,
		Mode:   e.store.Mode(),
		Tables: make(map[string]int, len(registry.InsertOrder())),
	}

	// Clearing, reverse dependency order. A per-table failure (the table
	// may not exist in an older schema) is swallowed; clearing is best
	// effort per table, not transactional across tables.
	for _, table := range registry.DeleteOrder() {
		_ = e.store.ClearAll(table)
	}

	// Inserting, forward dependency order. Every row is sanitized against
	// the column allowlist regardless of where the archive came from, and
	// rows left empty by sanitization are skipped outright.
	for _, table := range registry.InsertOrder() {
		rows := manifest.Rows(table)
		result.Tables[table] = len(rows)
		if len(rows) == 0 {
			continue
		}

		sanitized := make([]types.Row, 0, len(rows))
		for _, row := range rows {
			clean := registry.Sanitize(table, row)
			if len(clean) == 0 {
				continue
			}
			sanitized = append(sanitized, clean)
		}
		if len(sanitized) == 0 {
			continue
		}

		inserted, errs := e.store.WriteRows(table, sanitized)
		result.TotalInserted += inserted
		for _, msg := range errs {
			result.Errors = append(result.Errors, fmt.Sprintf("%s: %s", table, msg))
		}
	}

	// RestoringMedia, desktop-only and only when the archive embeds media.
	// A failed file is recorded and skipped, same policy as a failed row.
	if manifest.IncludeMedia == types.MediaInline {
		if ms, ok := e.store.(MediaStore); ok {
			restored := e.restoreMedia(ms.MediaRoot(), contents.Media, result)
			result.MediaRestored = &restored
		}
	}

	if err := e.store.Flush(); err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("flush: %v", err))
	}

	return result, nil
}

func (e *Engine) restoreMedia(root string, media []archive.MediaFile, result *Result) int {
	restored := 0
	for _, f := range media {
		dest := filepath.Join(root, filepath.FromSlash(f.Path))
		if err := os.MkdirAll(filepath.Dir(dest), 0o755); err != nil {
			result.Errors = append(result.Errors, fmt.Sprintf("media/%s: %v", f.Path, err))
			continue
		}
		if err := os.WriteFile(dest, f.Data, 0o644); err != nil {
			result.Errors = append(result.Errors, fmt.Sprintf("media/%s: %v", f.Path, err))
			continue
		}
		restored++
	}
	return restored
}
