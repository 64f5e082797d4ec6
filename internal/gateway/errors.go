package gateway

import (
	"net/http"

	"github.com/driftfs/driftfs/errs"
)

// statusForError maps the storage error taxonomy onto HTTP status codes.
func statusForError(err error) int {
	switch {
	case errs.IsNotFound(err):
		return http.StatusNotFound
	case errs.IsPermissionDenied(err):
		return http.StatusForbidden
	case errs.IsUnsupported(err):
		return http.StatusNotImplemented
	case errs.IsTimeout(err):
		return http.StatusGatewayTimeout
	case errs.IsMetadataUnavailable(err):
		return http.StatusUnprocessableEntity
	case errs.IsTransport(err):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// writeError reports err to the client and logs server-side failures.
func (s *Server) writeError(w http.ResponseWriter, err error) {
	status := statusForError(err)
	if status >= http.StatusInternalServerError {
		s.log.Error().Err(err).Msg("request failed")
	}
	writeJSON(w, status, map[string]string{"error": err.Error()})
}
