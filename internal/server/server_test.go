package server

import (
	"bytes"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/dangdinh/giapha/internal/archive"
	"github.com/dangdinh/giapha/internal/backup"
	"github.com/dangdinh/giapha/pkg/types"
)

// memStore is an in-memory backup.Store for handler tests.
type memStore struct {
	mu     sync.Mutex
	mode   string
	tables map[string][]types.Row
	media  string // MediaRoot when non-empty
}

func newMemStore(mode string) *memStore {
	return &memStore{mode: mode, tables: make(map[string][]types.Row)}
}

func (s *memStore) Mode() string { return s.mode }

func (s *memStore) ReadAll(table string) ([]types.Row, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.tables[table], nil
}

func (s *memStore) ClearAll(table string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.tables, table)
	return nil
}

func (s *memStore) WriteRows(table string, rows []types.Row) (int, []string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tables[table] = append(s.tables[table], rows...)
	return len(rows), nil
}

func (s *memStore) Flush() error { return nil }

// mediaMemStore adds the local-media capability.
type mediaMemStore struct{ *memStore }

func (s *mediaMemStore) MediaRoot() string { return s.media }

func newTestServer(t *testing.T, store backup.Store) *Server {
	t.Helper()
	schedulePath := filepath.Join(t.TempDir(), "schedule.yaml")
	return New(store, backup.FileScheduleStore(schedulePath), "2.2.1", zerolog.Nop())
}

func multipartArchive(t *testing.T, data []byte) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	fw, err := mw.CreateFormFile("file", "backup.zip")
	if err != nil {
		t.Fatal(err)
	}
	fw.Write(data)
	mw.Close()
	return &buf, mw.FormDataContentType()
}

func packArchiveNow(t *testing.T, tables map[string][]types.Row) []byte {
	t.Helper()
	m := archive.NewManifest("2.2.1", types.ModeWeb, types.MediaSkip, tables, time.Now().UTC())
	data, err := archive.Pack(m, nil)
	if err != nil {
		t.Fatal(err)
	}
	return data
}

func TestRestoreEndpoint(t *testing.T) {
	store := newMemStore(types.ModeWeb)
	srv := httptest.NewServer(newTestServer(t, store).Router())
	defer srv.Close()

	data := packArchiveNow(t, map[string][]types.Row{
		types.TablePeople: {{"id": "p1", "display_name": "A"}},
	})
	body, contentType := multipartArchive(t, data)

	resp, err := http.Post(srv.URL+"/api/backup/restore", contentType, body)
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		raw, _ := io.ReadAll(resp.Body)
		t.Fatalf("expected 200, got %d: %s", resp.StatusCode, raw)
	}

	var result backup.Result
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		t.Fatal(err)
	}
	if !result.Ok || result.Mode != types.ModeWeb || result.TotalInserted != 1 {
		t.Errorf("unexpected result: %+v", result)
	}
	if len(store.tables[types.TablePeople]) != 1 {
		t.Error("row was not written")
	}
	if resp.Header.Get("X-Request-ID") == "" {
		t.Error("missing request id header")
	}
}

func TestRestoreEndpointStructuralFailure(t *testing.T) {
	store := newMemStore(types.ModeWeb)
	store.tables[types.TablePeople] = []types.Row{{"id": "keep"}}
	srv := httptest.NewServer(newTestServer(t, store).Router())
	defer srv.Close()

	body, contentType := multipartArchive(t, []byte("not a zip"))
	resp, err := http.Post(srv.URL+"/api/backup/restore", contentType, body)
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.StatusCode)
	}
	var e struct {
		Error string `json:"error"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&e); err != nil || e.Error == "" {
		t.Errorf("expected {error} body, got decode err %v", err)
	}
	if len(store.tables[types.TablePeople]) != 1 {
		t.Error("structural failure must not touch the store")
	}
}

func TestRestoreEndpointSizeGate(t *testing.T) {
	// The declared-length gate fires before the body is read, so these run
	// against the router directly with a hand-set ContentLength.
	router := newTestServer(t, newMemStore(types.ModeWeb)).Router()

	t.Run("one byte over rejected", func(t *testing.T) {
		body, contentType := multipartArchive(t, []byte("tiny"))
		req := httptest.NewRequest(http.MethodPost, "/api/backup/restore", body)
		req.Header.Set("Content-Type", contentType)
		req.ContentLength = backup.MaxImportSize + 1

		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)
		if rec.Code != http.StatusRequestEntityTooLarge {
			t.Fatalf("expected 413, got %d", rec.Code)
		}
	})

	t.Run("exact ceiling passes the gate", func(t *testing.T) {
		body, contentType := multipartArchive(t, []byte("tiny"))
		req := httptest.NewRequest(http.MethodPost, "/api/backup/restore", body)
		req.Header.Set("Content-Type", contentType)
		req.ContentLength = backup.MaxImportSize

		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)
		// Fails later on archive parsing, never on the size gate.
		if rec.Code == http.StatusRequestEntityTooLarge {
			t.Fatal("declared length exactly at the maximum must be accepted")
		}
	})
}

func TestBackupEndpoint(t *testing.T) {
	store := newMemStore(types.ModeWeb)
	store.tables[types.TablePeople] = []types.Row{{"id": "p1", "display_name": "A"}}
	srv := httptest.NewServer(newTestServer(t, store).Router())
	defer srv.Close()

	resp, err := http.Post(srv.URL+"/api/backup", "", nil)
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	if got := resp.Header.Get("Content-Type"); got != "application/zip" {
		t.Errorf("Content-Type = %s", got)
	}
	if cd := resp.Header.Get("Content-Disposition"); !strings.Contains(cd, "giapha-") {
		t.Errorf("Content-Disposition = %s", cd)
	}

	data, _ := io.ReadAll(resp.Body)
	contents, err := archive.Unpack(data)
	if err != nil {
		t.Fatalf("served archive does not unpack: %v", err)
	}
	if contents.Manifest.RowCounts[types.TablePeople] != 1 {
		t.Errorf("manifest counts wrong: %v", contents.Manifest.RowCounts)
	}

	t.Run("unknown media policy rejected", func(t *testing.T) {
		resp, err := http.Post(srv.URL+"/api/backup?include_media=everything", "", nil)
		if err != nil {
			t.Fatal(err)
		}
		defer resp.Body.Close()
		if resp.StatusCode != http.StatusBadRequest {
			t.Errorf("expected 400, got %d", resp.StatusCode)
		}
	})
}

func TestGedcomEndpoint(t *testing.T) {
	store := newMemStore(types.ModeWeb)
	store.tables[types.TablePeople] = []types.Row{
		{"id": "aaaa1111-x", "display_name": "A", "gender": float64(1), "is_living": true},
	}
	srv := httptest.NewServer(newTestServer(t, store).Router())
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/api/gedcom")
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	if cd := resp.Header.Get("Content-Disposition"); !strings.Contains(cd, "gia-pha-dang-dinh-") {
		t.Errorf("Content-Disposition = %s", cd)
	}
	text, _ := io.ReadAll(resp.Body)
	if !strings.HasPrefix(string(text), "0 HEAD") || !strings.Contains(string(text), "0 @Iaaaa1111@ INDI") {
		t.Errorf("unexpected gedcom body:\n%s", text)
	}
}

func TestScheduleEndpoints(t *testing.T) {
	srv := httptest.NewServer(newTestServer(t, newMemStore(types.ModeWeb)).Router())
	defer srv.Close()

	put := func(body string) *http.Response {
		req, _ := http.NewRequest(http.MethodPut, srv.URL+"/api/backup/schedule", strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		resp, err := http.DefaultClient.Do(req)
		if err != nil {
			t.Fatal(err)
		}
		return resp
	}

	resp := put(`{"interval":"daily","last_backup_at":null,"auto_download":true}`)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("PUT expected 200, got %d", resp.StatusCode)
	}
	resp.Body.Close()

	getResp, err := http.Get(srv.URL + "/api/backup/schedule")
	if err != nil {
		t.Fatal(err)
	}
	defer getResp.Body.Close()
	var got struct {
		Schedule backup.Schedule `json:"schedule"`
		Due      bool            `json:"due"`
	}
	if err := json.NewDecoder(getResp.Body).Decode(&got); err != nil {
		t.Fatal(err)
	}
	if got.Schedule.Interval != backup.IntervalDaily || !got.Schedule.AutoDownload {
		t.Errorf("schedule not persisted: %+v", got.Schedule)
	}
	if !got.Due {
		t.Error("daily schedule with no prior backup must be due")
	}

	t.Run("unknown interval rejected", func(t *testing.T) {
		resp := put(`{"interval":"hourly"}`)
		defer resp.Body.Close()
		if resp.StatusCode != http.StatusBadRequest {
			t.Errorf("expected 400, got %d", resp.StatusCode)
		}
	})
}

func TestMediaEndpoints(t *testing.T) {
	base := newMemStore(types.ModeDesktop)
	base.media = t.TempDir()
	store := &mediaMemStore{base}
	srv := httptest.NewServer(newTestServer(t, store).Router())
	defer srv.Close()

	t.Run("upload then fetch then delete", func(t *testing.T) {
		resp, err := http.Post(srv.URL+"/api/media/avatars/p1.jpg", "image/jpeg", strings.NewReader("jpeg"))
		if err != nil {
			t.Fatal(err)
		}
		resp.Body.Close()
		if resp.StatusCode != http.StatusCreated {
			t.Fatalf("upload expected 201, got %d", resp.StatusCode)
		}
		onDisk, err := os.ReadFile(filepath.Join(base.media, "avatars", "p1.jpg"))
		if err != nil || string(onDisk) != "jpeg" {
			t.Fatalf("file not written: %v", err)
		}

		getResp, err := http.Get(srv.URL + "/api/media/avatars/p1.jpg")
		if err != nil {
			t.Fatal(err)
		}
		body, _ := io.ReadAll(getResp.Body)
		getResp.Body.Close()
		if getResp.StatusCode != http.StatusOK || string(body) != "jpeg" {
			t.Fatalf("fetch got %d %q", getResp.StatusCode, body)
		}

		req, _ := http.NewRequest(http.MethodDelete, srv.URL+"/api/media/avatars/p1.jpg", nil)
		delResp, err := http.DefaultClient.Do(req)
		if err != nil {
			t.Fatal(err)
		}
		delResp.Body.Close()
		if delResp.StatusCode != http.StatusOK {
			t.Errorf("delete expected 200, got %d", delResp.StatusCode)
		}
		if _, err := os.Stat(filepath.Join(base.media, "avatars", "p1.jpg")); !os.IsNotExist(err) {
			t.Error("file survived delete")
		}
	})

	t.Run("traversal stays under the media root", func(t *testing.T) {
		outside := filepath.Join(filepath.Dir(base.media), "secret.txt")
		os.WriteFile(outside, []byte("secret"), 0o644)

		resp, err := http.Get(srv.URL + "/api/media/a/../../secret.txt")
		if err != nil {
			t.Fatal(err)
		}
		body, _ := io.ReadAll(resp.Body)
		resp.Body.Close()
		if strings.Contains(string(body), "secret") {
			t.Error("traversal escaped the media root")
		}
	})

	t.Run("oversized declared length rejected", func(t *testing.T) {
		router := newTestServer(t, store).Router()
		req := httptest.NewRequest(http.MethodPost, "/api/media/big.bin", strings.NewReader("x"))
		req.ContentLength = MaxMediaFileSize + 1
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)
		if rec.Code != http.StatusRequestEntityTooLarge {
			t.Errorf("expected 413, got %d", rec.Code)
		}
	})

	t.Run("exact ceiling accepted", func(t *testing.T) {
		router := newTestServer(t, store).Router()
		req := httptest.NewRequest(http.MethodPost, "/api/media/edge.bin", strings.NewReader("ok"))
		req.ContentLength = MaxMediaFileSize
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)
		if rec.Code != http.StatusCreated {
			t.Errorf("expected 201, got %d", rec.Code)
		}
	})

	t.Run("web mode has no media routes", func(t *testing.T) {
		webSrv := httptest.NewServer(newTestServer(t, newMemStore(types.ModeWeb)).Router())
		defer webSrv.Close()
		resp, err := http.Get(webSrv.URL + "/api/media/avatars/p1.jpg")
		if err != nil {
			t.Fatal(err)
		}
		resp.Body.Close()
		if resp.StatusCode != http.StatusNotFound {
			t.Errorf("expected 404 in web mode, got %d", resp.StatusCode)
		}
	})
}
