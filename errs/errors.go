// Package errs provides the unified error type used across all of DriftFS.
//
// Every adapter (swift, s3, memfs, …) wraps its native SDK errors into
// *errs.Error before returning them to callers. Callers use the Is*
// predicates to handle failures without importing SDK-specific packages.
//
// Usage:
//
//	// In an adapter — wrap native errors:
//	return errs.Wrap(errs.ErrKindTransport, "failed to copy object", swiftErr)
//
//	// In a caller — check error kind:
//	if errs.IsNotFound(err) {
//	    http.Error(w, "not found", http.StatusNotFound)
//	}
package errs

import (
	"errors"
	"fmt"
)

// ErrKind categorises a failure without exposing store-specific codes.
// All adapters (Swift, S3, in-memory, …) map their native errors to one
// of these kinds, giving callers a single consistent API.
type ErrKind int

const (
	ErrKindUnknown             ErrKind = iota
	ErrKindNotFound                    // the object key does not exist in the store
	ErrKindTransport                   // network or service failure from the store
	ErrKindTimeout                     // context deadline / cancellation
	ErrKindPermissionDenied            // access denied / auth failure
	ErrKindUnsupported                 // operation the flat object store cannot express
	ErrKindMetadataUnavailable         // a required field was absent or unparsable
	ErrKindSigningFailed               // public URL could not be decomposed for signing
)

func (k ErrKind) String() string {
	switch k {
	case ErrKindNotFound:
		return "not_found"
	case ErrKindTransport:
		return "transport"
	case ErrKindTimeout:
		return "timeout"
	case ErrKindPermissionDenied:
		return "permission_denied"
	case ErrKindUnsupported:
		return "unsupported"
	case ErrKindMetadataUnavailable:
		return "metadata_unavailable"
	case ErrKindSigningFailed:
		return "signing_failed"
	default:
		return "unknown"
	}
}

// Error is the single error type returned by all DriftFS adapters.
// Adapters produce it; callers inspect it via the Is* predicates below.
type Error struct {
	Kind    ErrKind
	Message string
	Cause   error // original store-level error, preserved for diagnostics
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Kind, e.Message, e.Cause)
	}
	return fmt.Sprintf("[%s] %s", e.Kind, e.Message)
}

// Unwrap allows errors.Is / errors.As to traverse the cause chain.
func (e *Error) Unwrap() error {
	return e.Cause
}

// --- Constructors ---

// New creates an *Error with the given kind and message and no cause.
func New(kind ErrKind, msg string) *Error {
	return &Error{Kind: kind, Message: msg}
}

// Wrap creates an *Error with the given kind, message, and an underlying cause.
func Wrap(kind ErrKind, msg string, cause error) *Error {
	return &Error{Kind: kind, Message: msg, Cause: cause}
}

// --- Predicates ---

// IsNotFound reports whether err represents a missing object or container.
func IsNotFound(err error) bool {
	return kindOf(err) == ErrKindNotFound
}

// IsTransport reports whether err is a network or service failure.
func IsTransport(err error) bool {
	return kindOf(err) == ErrKindTransport
}

// IsTimeout reports whether err was caused by a deadline or context cancellation.
func IsTimeout(err error) bool {
	return kindOf(err) == ErrKindTimeout
}

// IsPermissionDenied reports whether err is an access control failure.
func IsPermissionDenied(err error) bool {
	return kindOf(err) == ErrKindPermissionDenied
}

// IsUnsupported reports whether err marks an operation the underlying
// store cannot express (e.g. explicit directory creation on Swift).
func IsUnsupported(err error) bool {
	return kindOf(err) == ErrKindUnsupported
}

// IsMetadataUnavailable reports whether err means a required metadata field
// (size, mime type, timestamp, visibility) was absent or unparsable on an
// otherwise-successful retrieval.
func IsMetadataUnavailable(err error) bool {
	return kindOf(err) == ErrKindMetadataUnavailable
}

// IsSigningFailed reports whether err means a temporary-URL signature could
// not be constructed from the object's public URL.
func IsSigningFailed(err error) bool {
	return kindOf(err) == ErrKindSigningFailed
}

// kindOf extracts the ErrKind from any error in the chain.
func kindOf(err error) ErrKind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return ErrKindUnknown
}
