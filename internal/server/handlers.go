package server

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"github.com/dangdinh/giapha/internal/backup"
	"github.com/dangdinh/giapha/internal/gedcom"
	"github.com/dangdinh/giapha/pkg/types"
)

// handleBackup runs a full export and streams the archive. The media policy
// comes from the include_media query parameter and defaults to reference.
func (s *Server) handleBackup(w http.ResponseWriter, r *http.Request) {
	policy := r.URL.Query().Get("include_media")
	if policy == "" {
		policy = types.MediaReference
	}
	if !types.ValidMediaPolicy(policy) {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("unknown media policy %q", policy))
		return
	}

	exporter := backup.NewExporter(s.store, s.appVersion, nil)
	data, filename, err := exporter.Export(policy)
	if err != nil {
		zerolog.Ctx(r.Context()).Error().Err(err).Msg("export failed")
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	w.Header().Set("Content-Type", "application/zip")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	w.Write(data)
}

// handleRestore accepts a multipart archive upload under the "file" field
// and runs the destructive restore. Oversized uploads are refused with 413
// before any parsing; a structural failure is a 400 with no side effects.
func (s *Server) handleRestore(w http.ResponseWriter, r *http.Request) {
	if r.ContentLength > backup.MaxImportSize {
		writeError(w, http.StatusRequestEntityTooLarge, "archive exceeds the 500 MiB limit")
		return
	}
	r.Body = http.MaxBytesReader(w, r.Body, backup.MaxImportSize)

	file, _, err := r.FormFile("file")
	if err != nil {
		writeError(w, http.StatusBadRequest, "missing archive upload")
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeError(w, http.StatusRequestEntityTooLarge, "archive exceeds the 500 MiB limit")
			return
		}
		writeError(w, http.StatusBadRequest, "reading archive upload failed")
		return
	}

	result, err := backup.NewEngine(s.store).Restore(data)
	if err != nil {
		status := http.StatusBadRequest
		if errors.Is(err, types.ErrArchiveTooLarge) {
			status = http.StatusRequestEntityTooLarge
		}
		writeError(w, status, err.Error())
		return
	}

	if len(result.Errors) > 0 {
		zerolog.Ctx(r.Context()).Warn().
			Int("errors", len(result.Errors)).
			Int("inserted", result.TotalInserted).
			Msg("restore completed with warnings")
	}
	writeJSON(w, http.StatusOK, result)
}

// handleGedcom encodes the current dataset as GEDCOM and serves it as a
// download. Validation findings are logged, never a reason to withhold the
// artifact.
func (s *Server) handleGedcom(w http.ResponseWriter, r *http.Request) {
	snap, err := gedcom.Load(s.store)
	if err != nil {
		zerolog.Ctx(r.Context()).Error().Err(err).Msg("gedcom snapshot failed")
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	now := time.Now().UTC()
	text := gedcom.Encode(snap, now)
	if res := gedcom.Validate(text); !res.Valid {
		zerolog.Ctx(r.Context()).Warn().
			Strs("errors", res.Errors).
			Msg("gedcom validation warnings")
		w.Header().Set("X-Gedcom-Warnings", fmt.Sprintf("%d", len(res.Errors)))
	}

	w.Header().Set("Content-Type", "text/x-gedcom; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", gedcom.Filename(now)))
	io.WriteString(w, text)
}

// handleGetSchedule returns the stored backup schedule plus whether a
// backup is currently due.
func (s *Server) handleGetSchedule(w http.ResponseWriter, r *http.Request) {
	sched, err := s.schedule.Load()
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"schedule": sched,
		"due":      sched.IsDueNow(time.Now().UTC()),
	})
}

// handlePutSchedule replaces the stored backup schedule.
func (s *Server) handlePutSchedule(w http.ResponseWriter, r *http.Request) {
	var sched backup.Schedule
	if err := decodeJSON(r, &sched); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	switch sched.Interval {
	case backup.IntervalOff, backup.IntervalDaily, backup.IntervalWeekly, backup.IntervalMonthly:
	default:
		writeError(w, http.StatusBadRequest, fmt.Sprintf("unknown interval %q", sched.Interval))
		return
	}
	if err := s.schedule.Save(sched); err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"schedule": sched})
}
