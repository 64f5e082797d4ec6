package gateway

import (
	"context"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/driftfs/driftfs/fsys"
)

// visibilityRequestHeader carries the desired visibility on uploads.
const visibilityRequestHeader = "X-Visibility"

// pathParam returns the wildcard remainder of the route.
func pathParam(r *http.Request) string {
	return chi.URLParam(r, "*")
}

// attributesJSON is the wire shape of fsys.Attributes.
type attributesJSON struct {
	Path         string     `json:"path"`
	IsDir        bool       `json:"is_dir,omitempty"`
	Size         int64      `json:"size"`
	Visibility   string     `json:"visibility,omitempty"`
	MimeType     string     `json:"mime_type,omitempty"`
	LastModified *time.Time `json:"last_modified,omitempty"`
}

func toAttributesJSON(attr fsys.Attributes) attributesJSON {
	out := attributesJSON{
		Path:       attr.Path,
		IsDir:      attr.IsDir,
		Size:       attr.Size,
		Visibility: attr.Visibility,
		MimeType:   attr.MimeType,
	}
	if !attr.LastModified.IsZero() {
		mod := attr.LastModified
		out.LastModified = &mod
	}
	return out
}

func (s *Server) handleReadFile(w http.ResponseWriter, r *http.Request) {
	path := pathParam(r)

	rc, err := s.fs.ReadStream(r.Context(), path)
	if err != nil {
		s.writeError(w, err)
		return
	}
	defer rc.Close()

	// Content type is best effort; a file without one still downloads.
	if mime, err := s.fs.MimeType(r.Context(), path); err == nil {
		w.Header().Set("Content-Type", mime)
	} else {
		w.Header().Set("Content-Type", "application/octet-stream")
	}
	w.WriteHeader(http.StatusOK)
	_, _ = io.Copy(w, rc)
}

func (s *Server) handleWriteFile(w http.ResponseWriter, r *http.Request) {
	defer r.Body.Close()

	err := s.fs.WriteStream(r.Context(), pathParam(r), r.Body, fsys.WriteOptions{
		Visibility: r.Header.Get(visibilityRequestHeader),
		MimeType:   r.Header.Get("Content-Type"),
	})
	if err != nil {
		s.writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusCreated)
}

func (s *Server) handleDeleteFile(w http.ResponseWriter, r *http.Request) {
	if err := s.fs.Delete(r.Context(), pathParam(r)); err != nil {
		s.writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleStat(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	path := pathParam(r)

	size, err := s.fs.FileSize(ctx, path)
	if err != nil {
		s.writeError(w, err)
		return
	}

	attr := fsys.Attributes{Path: path, Size: size}
	// The remaining fields are optional on the backend; their absence is
	// not an error for a stat.
	if mime, err := s.fs.MimeType(ctx, path); err == nil {
		attr.MimeType = mime
	}
	if mod, err := s.fs.LastModified(ctx, path); err == nil {
		attr.LastModified = mod
	}
	if vis, err := s.fs.Visibility(ctx, path); err == nil {
		attr.Visibility = vis
	}
	writeJSON(w, http.StatusOK, toAttributesJSON(attr))
}

func (s *Server) handleList(w http.ResponseWriter, r *http.Request) {
	deep, _ := strconv.ParseBool(r.URL.Query().Get("deep"))

	l, err := s.fs.List(r.Context(), pathParam(r), deep)
	if err != nil {
		s.writeError(w, err)
		return
	}
	defer l.Close()

	entries := []attributesJSON{}
	for l.Next() {
		entries = append(entries, toAttributesJSON(l.Attr()))
	}
	if err := l.Err(); err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, entries)
}

func (s *Server) handleCreateDirectory(w http.ResponseWriter, r *http.Request) {
	if err := s.fs.CreateDirectory(r.Context(), pathParam(r)); err != nil {
		s.writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusCreated)
}

func (s *Server) handleDeleteDirectory(w http.ResponseWriter, r *http.Request) {
	if err := s.fs.DeleteDirectory(r.Context(), pathParam(r)); err != nil {
		s.writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleCopy(w http.ResponseWriter, r *http.Request) {
	s.handleTransfer(w, r, s.fs.Copy)
}

func (s *Server) handleMove(w http.ResponseWriter, r *http.Request) {
	s.handleTransfer(w, r, s.fs.Move)
}

func (s *Server) handleTransfer(w http.ResponseWriter, r *http.Request, op func(ctx context.Context, src, dst string) error) {
	src := r.URL.Query().Get("src")
	dst := r.URL.Query().Get("dst")
	if src == "" || dst == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "src and dst query parameters are required"})
		return
	}
	if err := op(r.Context(), src, dst); err != nil {
		s.writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleGetVisibility(w http.ResponseWriter, r *http.Request) {
	vis, err := s.fs.Visibility(r.Context(), pathParam(r))
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"visibility": vis})
}

func (s *Server) handleSetVisibility(w http.ResponseWriter, r *http.Request) {
	vis := r.URL.Query().Get("value")
	if vis != fsys.VisibilityPublic && vis != fsys.VisibilityPrivate {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "value must be public or private"})
		return
	}
	if err := s.fs.SetVisibility(r.Context(), pathParam(r), vis); err != nil {
		s.writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handlePublicURL(w http.ResponseWriter, r *http.Request) {
	u, err := s.fs.PublicURL(pathParam(r))
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"url": u})
}

func (s *Server) handleTemporaryURL(w http.ResponseWriter, r *http.Request) {
	ttl := time.Hour
	if raw := r.URL.Query().Get("ttl"); raw != "" {
		seconds, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || seconds <= 0 {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "ttl must be a positive number of seconds"})
			return
		}
		ttl = time.Duration(seconds) * time.Second
	}

	expiresAt := time.Now().Add(ttl)
	u, err := s.fs.TemporaryURL(r.Context(), pathParam(r), expiresAt)
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"url":        u,
		"expires_at": expiresAt.Unix(),
	})
}
