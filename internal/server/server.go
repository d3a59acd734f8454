// Package server exposes the backup, restore, GEDCOM and media operations
// over HTTP for the hosted deployment and for local tooling.
package server

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"

	"github.com/dangdinh/giapha/internal/backup"
)

// Server wires the storage backend into the HTTP handlers.
type Server struct {
	store      backup.Store
	schedule   backup.ScheduleStore
	appVersion string
	log        zerolog.Logger
}

// New creates a Server over the given store and schedule store.
func New(store backup.Store, schedule backup.ScheduleStore, appVersion string, log zerolog.Logger) *Server {
	return &Server{store: store, schedule: schedule, appVersion: appVersion, log: log}
}

// Router builds the chi router with the full API surface.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(requestID)
	r.Use(requestLogger(s.log))
	r.Use(chimiddleware.Recoverer)

	r.Route("/api", func(r chi.Router) {
		r.Post("/backup", s.handleBackup)
		r.Post("/backup/restore", s.handleRestore)
		r.Get("/backup/schedule", s.handleGetSchedule)
		r.Put("/backup/schedule", s.handlePutSchedule)
		r.Get("/gedcom", s.handleGedcom)

		r.Get("/media/*", s.handleMediaGet)
		r.Post("/media/*", s.handleMediaPut)
		r.Delete("/media/*", s.handleMediaDelete)
	})

	return r
}

// writeJSON serializes v with the given status.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// writeError emits the {error} shape used for every failure response.
func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

func decodeJSON(r *http.Request, v any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return fmt.Errorf("decoding request body: %w", err)
	}
	return nil
}
