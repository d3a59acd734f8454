package backup

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/dangdinh/giapha/internal/archive"
	"github.com/dangdinh/giapha/internal/registry"
	"github.com/dangdinh/giapha/pkg/types"
)

// Exporter assembles a full backup archive from the active store.
type Exporter struct {
	store      Store
	appVersion string
	now        func() time.Time
}

// NewExporter creates an Exporter. now may be nil for time.Now.
func NewExporter(store Store, appVersion string, now func() time.Time) *Exporter {
	if now == nil {
		now = time.Now
	}
	return &Exporter{store: store, appVersion: appVersion, now: now}
}

// Export reads every registered table, optionally embeds the local media
// tree, and packs the archive. A table that fails to read is exported as an
// empty payload rather than aborting the run; a missing or renamed table
// must not block backup of the rest. Inline media requires a local media
// root, so the policy silently downgrades to reference for web-mode stores.
func (e *Exporter) Export(mediaPolicy string) ([]byte, string, error) {
	if !types.ValidMediaPolicy(mediaPolicy) {
		mediaPolicy = types.MediaReference
	}

	tables := make(map[string][]types.Row, len(registry.InsertOrder()))
	for _, table := range registry.InsertOrder() {
		rows, err := e.store.ReadAll(table)
		if err != nil || rows == nil {
			rows = []types.Row{}
		}
		tables[table] = rows
	}

	var media []archive.MediaFile
	if mediaPolicy == types.MediaInline {
		ms, ok := e.store.(MediaStore)
		if !ok {
			mediaPolicy = types.MediaReference
		} else {
			var err error
			media, err = collectMedia(ms.MediaRoot())
			if err != nil {
				return nil, "", fmt.Errorf("collecting media: %w", err)
			}
		}
	}

	now := e.now()
	manifest := archive.NewManifest(e.appVersion, e.store.Mode(), mediaPolicy, tables, now)
	data, err := archive.Pack(manifest, media)
	if err != nil {
		return nil, "", fmt.Errorf("packing archive: %w", err)
	}
	return data, archive.Filename(now), nil
}

// collectMedia walks the media root recursively and loads every regular
// file, keyed by its root-relative slash path. A missing root is an empty
// collection, not an error.
func collectMedia(root string) ([]archive.MediaFile, error) {
	if _, err := os.Stat(root); os.IsNotExist(err) {
		return nil, nil
	}

	var files []archive.MediaFile
	err := filepath.WalkDir(root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		rel, err := filepath.Rel(root, p)
		if err != nil {
			return err
		}
		data, err := os.ReadFile(p)
		if err != nil {
			return err
		}
		files = append(files, archive.MediaFile{Path: filepath.ToSlash(rel), Data: data})
		return nil
	})
	if err != nil {
		return nil, err
	}
	return files, nil
}
