package server

import (
	"errors"
	"io"
	"net/http"
	"os"
	"path"
	"path/filepath"

	"github.com/go-chi/chi/v5"

	"github.com/dangdinh/giapha/internal/backup"
	"github.com/dangdinh/giapha/pkg/types"
)

// MaxMediaFileSize is the single-file upload ceiling for media attachments
// (50 MiB), checked against the declared length before reading the body.
const MaxMediaFileSize = 50 * 1024 * 1024

// mediaPath resolves the wildcard path under the store's media root. It
// rejects empty and traversal paths, and returns ok=false with a written
// response when the route cannot be served.
func (s *Server) mediaPath(w http.ResponseWriter, r *http.Request) (string, bool) {
	ms, ok := s.store.(backup.MediaStore)
	if !ok {
		// Web mode keeps media in hosted storage, not behind this API.
		writeError(w, http.StatusNotFound, "local media is only available in desktop mode")
		return "", false
	}

	rel := chi.URLParam(r, "*")
	if rel == "" {
		writeError(w, http.StatusBadRequest, "missing media path")
		return "", false
	}
	// Rooted Clean strips any ".." escape before the leading slash is cut.
	clean := path.Clean("/" + rel)[1:]
	if clean == "" {
		writeError(w, http.StatusBadRequest, "invalid media path")
		return "", false
	}
	return filepath.Join(ms.MediaRoot(), filepath.FromSlash(clean)), true
}

func (s *Server) handleMediaGet(w http.ResponseWriter, r *http.Request) {
	dest, ok := s.mediaPath(w, r)
	if !ok {
		return
	}
	f, err := os.Open(dest)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			writeError(w, http.StatusNotFound, "media file not found")
			return
		}
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil || info.IsDir() {
		writeError(w, http.StatusNotFound, "media file not found")
		return
	}
	http.ServeContent(w, r, info.Name(), info.ModTime(), f)
}

func (s *Server) handleMediaPut(w http.ResponseWriter, r *http.Request) {
	dest, ok := s.mediaPath(w, r)
	if !ok {
		return
	}
	if r.ContentLength > MaxMediaFileSize {
		writeError(w, http.StatusRequestEntityTooLarge, types.ErrFileTooLarge.Error())
		return
	}

	data, err := io.ReadAll(http.MaxBytesReader(w, r.Body, MaxMediaFileSize))
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeError(w, http.StatusRequestEntityTooLarge, types.ErrFileTooLarge.Error())
			return
		}
		writeError(w, http.StatusBadRequest, "reading upload failed")
		return
	}

	if err := os.MkdirAll(filepath.Dir(dest), 0o755); err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if err := os.WriteFile(dest, data, 0o644); err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusCreated, map[string]any{"ok": true, "bytes": len(data)})
}

func (s *Server) handleMediaDelete(w http.ResponseWriter, r *http.Request) {
	dest, ok := s.mediaPath(w, r)
	if !ok {
		return
	}
	if err := os.Remove(dest); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			writeError(w, http.StatusNotFound, "media file not found")
			return
		}
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"ok": true})
}
