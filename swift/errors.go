package swift

import (
	"context"
	"errors"
	"net/http"

	"github.com/ncw/swift/v2"

	"github.com/driftfs/driftfs/errs"
)

// mapError translates a Swift SDK error into a *errs.Error. Every public
// operation wraps SDK errors at its boundary so the store's native error
// types never reach callers.
func mapError(err error, msg string) *errs.Error {
	if err == nil {
		return nil
	}

	// Context cancellation / deadline
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return errs.Wrap(errs.ErrKindTimeout, msg, err)
	}

	// Sentinel errors the SDK returns for missing objects and containers
	if errors.Is(err, swift.ObjectNotFound) || errors.Is(err, swift.ContainerNotFound) {
		return errs.Wrap(errs.ErrKindNotFound, msg, err)
	}

	// Other protocol-level errors carry an HTTP status code
	var se *swift.Error
	if errors.As(err, &se) {
		switch se.StatusCode {
		case http.StatusNotFound:
			return errs.Wrap(errs.ErrKindNotFound, msg, err)
		case http.StatusUnauthorized, http.StatusForbidden:
			return errs.Wrap(errs.ErrKindPermissionDenied, msg, err)
		case http.StatusRequestTimeout, http.StatusTooManyRequests:
			return errs.Wrap(errs.ErrKindTimeout, msg, err)
		}
	}

	// Anything else — treat as a transport failure
	return errs.Wrap(errs.ErrKindTransport, msg, err)
}
