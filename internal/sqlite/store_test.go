package sqlite

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/dangdinh/giapha/pkg/types"
)

func openStore(t *testing.T) *Store {
	t.Helper()
	s := New()
	if err := s.Open(t.TempDir()); err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestStoreLifecycle(t *testing.T) {
	s := New()

	t.Run("operations on closed store fail", func(t *testing.T) {
		if _, err := s.ReadAll(types.TablePeople); !errors.Is(err, types.ErrStoreClosed) {
			t.Errorf("ReadAll: expected ErrStoreClosed, got %v", err)
		}
		if err := s.ClearAll(types.TablePeople); !errors.Is(err, types.ErrStoreClosed) {
			t.Errorf("ClearAll: expected ErrStoreClosed, got %v", err)
		}
		if err := s.Flush(); !errors.Is(err, types.ErrStoreClosed) {
			t.Errorf("Flush: expected ErrStoreClosed, got %v", err)
		}
	})

	t.Run("double open fails", func(t *testing.T) {
		dir := t.TempDir()
		if err := s.Open(dir); err != nil {
			t.Fatalf("Open failed: %v", err)
		}
		if err := s.Open(dir); !errors.Is(err, types.ErrAlreadyOpen) {
			t.Errorf("expected ErrAlreadyOpen, got %v", err)
		}
	})

	t.Run("close is idempotent", func(t *testing.T) {
		if err := s.Close(); err != nil {
			t.Fatalf("Close failed: %v", err)
		}
		if err := s.Close(); err != nil {
			t.Errorf("second Close failed: %v", err)
		}
	})

	t.Run("mode is desktop", func(t *testing.T) {
		if got := s.Mode(); got != types.ModeDesktop {
			t.Errorf("Mode() = %s", got)
		}
	})
}

func TestStoreReopenKeepsData(t *testing.T) {
	dir := t.TempDir()
	s := New()
	if err := s.Open(dir); err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	n, errs := s.WriteRows(types.TablePeople, []types.Row{
		{"id": "p1", "display_name": "A"},
	})
	if n != 1 || len(errs) != 0 {
		t.Fatalf("WriteRows = %d, %v", n, errs)
	}
	if err := s.Flush(); err != nil {
		t.Fatalf("Flush failed: %v", err)
	}
	if err := s.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}

	s2 := New()
	if err := s2.Open(dir); err != nil {
		t.Fatalf("reopen failed: %v", err)
	}
	defer s2.Close()
	rows, err := s2.ReadAll(types.TablePeople)
	if err != nil {
		t.Fatalf("ReadAll failed: %v", err)
	}
	if len(rows) != 1 || rows[0]["display_name"] != "A" {
		t.Errorf("data lost across reopen: %v", rows)
	}
}

func TestWriteRowsIgnoresDuplicateIDs(t *testing.T) {
	s := openStore(t)

	first := []types.Row{{"id": "p1", "display_name": "Original"}}
	n, errs := s.WriteRows(types.TablePeople, first)
	if n != 1 || len(errs) != 0 {
		t.Fatalf("first write: %d inserted, errs %v", n, errs)
	}

	again := []types.Row{
		{"id": "p1", "display_name": "Replacement"},
		{"id": "p2", "display_name": "New"},
	}
	n, errs = s.WriteRows(types.TablePeople, again)
	if len(errs) != 0 {
		t.Fatalf("second write errs: %v", errs)
	}
	if n != 1 {
		t.Errorf("duplicate id must be ignored, got %d inserted", n)
	}

	rows, err := s.ReadAll(types.TablePeople)
	if err != nil {
		t.Fatalf("ReadAll failed: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(rows))
	}
	byID := map[string]types.Row{}
	for _, r := range rows {
		byID[r["id"].(string)] = r
	}
	if byID["p1"]["display_name"] != "Original" {
		t.Errorf("existing row must win over the archive copy: %v", byID["p1"])
	}
}

func TestWriteRowsBadRowDoesNotAbortBatch(t *testing.T) {
	s := openStore(t)

	rows := []types.Row{
		{"id": "p1", "display_name": "Ok"},
		{"id": "p2"}, // display_name is NOT NULL
		{"id": "p3", "display_name": "Also ok"},
	}
	n, errs := s.WriteRows(types.TablePeople, rows)
	if n != 2 {
		t.Errorf("expected 2 inserted, got %d", n)
	}
	if len(errs) != 1 {
		t.Errorf("expected 1 error, got %v", errs)
	}

	got, err := s.ReadAll(types.TablePeople)
	if err != nil {
		t.Fatalf("ReadAll failed: %v", err)
	}
	if len(got) != 2 {
		t.Errorf("expected 2 surviving rows, got %d", len(got))
	}
}

func TestClearAll(t *testing.T) {
	s := openStore(t)

	s.WriteRows(types.TableEvents, []types.Row{
		{"id": "e1", "title": "Giỗ tổ"},
		{"id": "e2", "title": "Họp họ"},
	})
	if err := s.ClearAll(types.TableEvents); err != nil {
		t.Fatalf("ClearAll failed: %v", err)
	}
	rows, err := s.ReadAll(types.TableEvents)
	if err != nil {
		t.Fatalf("ReadAll failed: %v", err)
	}
	if len(rows) != 0 {
		t.Errorf("expected empty table, got %d rows", len(rows))
	}
}

func TestUnregisteredTableRejected(t *testing.T) {
	s := openStore(t)

	if _, err := s.ReadAll("profiles"); !errors.Is(err, types.ErrTableNotFound) {
		t.Errorf("ReadAll: expected ErrTableNotFound, got %v", err)
	}
	if err := s.ClearAll("people; DROP TABLE people"); !errors.Is(err, types.ErrTableNotFound) {
		t.Errorf("ClearAll: expected ErrTableNotFound, got %v", err)
	}
	n, errs := s.WriteRows("profiles", []types.Row{{"id": "x"}})
	if n != 0 || len(errs) != 1 {
		t.Errorf("WriteRows on unregistered table: %d, %v", n, errs)
	}
}

func TestSeed(t *testing.T) {
	s := openStore(t)

	if err := s.Seed(); err != nil {
		t.Fatalf("Seed failed: %v", err)
	}
	people, err := s.ReadAll(types.TablePeople)
	if err != nil {
		t.Fatalf("ReadAll failed: %v", err)
	}
	if len(people) != len(seedData) {
		t.Fatalf("expected %d seeded people, got %d", len(seedData), len(people))
	}
	families, _ := s.ReadAll(types.TableFamilies)
	children, _ := s.ReadAll(types.TableChildren)
	if len(families) != 1 || len(children) != 1 {
		t.Errorf("expected 1 family and 1 child, got %d and %d", len(families), len(children))
	}

	t.Run("seed is idempotent", func(t *testing.T) {
		if err := s.Seed(); err != nil {
			t.Fatalf("second Seed failed: %v", err)
		}
		again, _ := s.ReadAll(types.TablePeople)
		if len(again) != len(seedData) {
			t.Errorf("second seed duplicated rows: %d", len(again))
		}
	})
}

func TestMediaRoot(t *testing.T) {
	dir := t.TempDir()
	s := New()
	if err := s.Open(dir); err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	defer s.Close()
	if got, want := s.MediaRoot(), filepath.Join(dir, "media"); got != want {
		t.Errorf("MediaRoot() = %s, want %s", got, want)
	}
}
