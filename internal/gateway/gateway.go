// Package gateway exposes an fsys.FS over HTTP.
//
// It is a thin translation layer: paths come from the URL, options from
// headers and query parameters, and storage failures map onto HTTP status
// codes through the shared error taxonomy.
package gateway

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"

	"github.com/driftfs/driftfs/fsys"
)

// Server serves filesystem operations over HTTP.
type Server struct {
	fs  fsys.FS
	log zerolog.Logger
}

// NewServer returns a Server backed by fs.
func NewServer(fs fsys.FS, log zerolog.Logger) *Server {
	return &Server{fs: fs, log: log}
}

// Router builds the HTTP routes.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(s.requestLogger)

	r.Get("/healthz", s.handleHealth)

	r.Route("/files", func(r chi.Router) {
		r.Get("/*", s.handleReadFile)
		r.Put("/*", s.handleWriteFile)
		r.Delete("/*", s.handleDeleteFile)
	})

	r.Get("/stat/*", s.handleStat)
	r.Get("/list", s.handleList)
	r.Get("/list/*", s.handleList)

	r.Post("/dirs/*", s.handleCreateDirectory)
	r.Delete("/dirs/*", s.handleDeleteDirectory)

	r.Post("/ops/copy", s.handleCopy)
	r.Post("/ops/move", s.handleMove)

	r.Get("/visibility/*", s.handleGetVisibility)
	r.Put("/visibility/*", s.handleSetVisibility)

	r.Get("/urls/public/*", s.handlePublicURL)
	r.Get("/urls/temp/*", s.handleTemporaryURL)

	return r
}

// requestLogger emits one structured line per request.
func (s *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()

		next.ServeHTTP(ww, r)

		s.log.Info().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", ww.Status()).
			Dur("duration", time.Since(start)).
			Str("request_id", middleware.GetReqID(r.Context())).
			Msg("request")
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// writeJSON serialises v with the given status code.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
