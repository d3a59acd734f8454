// Package sqlite implements the desktop storage backend: a single SQLite
// database file under the data directory, with media stored as plain files
// beside it.
package sqlite

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	_ "modernc.org/sqlite"

	"github.com/dangdinh/giapha/internal/paths"
	"github.com/dangdinh/giapha/internal/registry"
	"github.com/dangdinh/giapha/pkg/types"
)

// DBFileName is the database file created under the data directory.
const DBFileName = "giapha.db"

// Store is the desktop backend. It is not open until Open is called;
// operations on a closed store return ErrStoreClosed.
type Store struct {
	mu      sync.RWMutex
	open    bool
	dataDir string
	db      *sql.DB
}

// New creates an unopened Store.
func New() *Store {
	return &Store{}
}

// Open creates the data directory if needed, opens (or creates) the database
// file inside it, and applies the schema. Returns ErrAlreadyOpen if the
// store is already open.
func (s *Store) Open(dataDir string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.open {
		return types.ErrAlreadyOpen
	}

	if dataDir == "" {
		dataDir = "."
	}
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		return fmt.Errorf("creating data dir: %w", err)
	}

	dbPath := filepath.Join(dataDir, DBFileName)
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return fmt.Errorf("opening %s: %w", dbPath, err)
	}

	if _, err := db.Exec("PRAGMA journal_mode=WAL;"); err != nil {
		db.Close()
		return fmt.Errorf("enabling WAL: %w", err)
	}
	for _, ddl := range schemaDDL {
		if _, err := db.Exec(ddl); err != nil {
			db.Close()
			return fmt.Errorf("applying schema: %w", err)
		}
	}
	for _, ddl := range indexDDL {
		if _, err := db.Exec(ddl); err != nil {
			db.Close()
			return fmt.Errorf("applying indexes: %w", err)
		}
	}

	s.db = db
	s.dataDir = dataDir
	s.open = true
	return nil
}

// Close releases the database connection. Close is idempotent.
func (s *Store) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.open {
		return nil
	}
	if s.db != nil {
		if err := s.db.Close(); err != nil {
			return err
		}
		s.db = nil
	}
	s.open = false
	return nil
}

// Mode identifies this backend in manifests and results.
func (s *Store) Mode() string { return types.ModeDesktop }

// MediaRoot returns the local media directory under the data directory.
func (s *Store) MediaRoot() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return paths.MediaRoot(s.dataDir)
}

// ReadAll returns every row of a registered table as generic rows keyed by
// column name. Unregistered table names are rejected before touching SQL.
func (s *Store) ReadAll(table string) ([]types.Row, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if !s.open {
		return nil, types.ErrStoreClosed
	}
	if !registry.Registered(table) {
		return nil, types.ErrTableNotFound
	}

	rows, err := s.db.Query("SELECT * FROM " + table)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", table, err)
	}
	defer rows.Close()

	cols, err := rows.Columns()
	if err != nil {
		return nil, fmt.Errorf("reading %s columns: %w", table, err)
	}

	var out []types.Row
	for rows.Next() {
		values := make([]any, len(cols))
		scan := make([]any, len(cols))
		for i := range values {
			scan[i] = &values[i]
		}
		if err := rows.Scan(scan...); err != nil {
			return nil, fmt.Errorf("scanning %s row: %w", table, err)
		}
		row := make(types.Row, len(cols))
		for i, col := range cols {
			if b, ok := values[i].([]byte); ok {
				row[col] = string(b)
				continue
			}
			row[col] = values[i]
		}
		out = append(out, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("reading %s: %w", table, err)
	}
	return out, nil
}

// ClearAll deletes every row of a registered table.
func (s *Store) ClearAll(table string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.open {
		return types.ErrStoreClosed
	}
	if !registry.Registered(table) {
		return types.ErrTableNotFound
	}
	if _, err := s.db.Exec("DELETE FROM " + table); err != nil {
		return fmt.Errorf("clearing %s: %w", table, err)
	}
	return nil
}

// WriteRows inserts rows one at a time with INSERT OR IGNORE, so a row whose
// id already exists is silently kept as-is. A failed row is recorded and the
// rest still go in. Callers must sanitize rows first; column names here feed
// straight into SQL.
func (s *Store) WriteRows(table string, rows []types.Row) (int, []string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.open {
		return 0, []string{types.ErrStoreClosed.Error()}
	}
	if !registry.Registered(table) {
		return 0, []string{types.ErrTableNotFound.Error()}
	}

	inserted := 0
	var errs []string
	for _, row := range rows {
		if len(row) == 0 {
			continue
		}
		n, err := s.insertRow(table, row)
		if err != nil {
			errs = append(errs, err.Error())
			continue
		}
		inserted += n
	}
	return inserted, errs
}

func (s *Store) insertRow(table string, row types.Row) (int, error) {
	cols := make([]string, 0, len(row))
	for col := range row {
		cols = append(cols, col)
	}
	sort.Strings(cols)

	args := make([]any, len(cols))
	marks := make([]string, len(cols))
	for i, col := range cols {
		args[i] = row[col]
		marks[i] = "?"
	}

	query := fmt.Sprintf(
		"INSERT OR IGNORE INTO %s (%s) VALUES (%s)",
		table, strings.Join(cols, ", "), strings.Join(marks, ", "),
	)
	res, err := s.db.Exec(query, args...)
	if err != nil {
		return 0, fmt.Errorf("inserting into %s: %w", table, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("counting %s insert: %w", table, err)
	}
	return int(n), nil
}

// Flush checkpoints the WAL so the database file on disk is complete and
// self-contained, the desktop equivalent of writing the in-memory database
// back out after a restore.
func (s *Store) Flush() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.open {
		return types.ErrStoreClosed
	}
	if _, err := s.db.Exec("PRAGMA wal_checkpoint(TRUNCATE);"); err != nil {
		return fmt.Errorf("checkpointing: %w", err)
	}
	return nil
}
