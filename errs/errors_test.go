package errs

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestError_Message(t *testing.T) {
	err := New(ErrKindNotFound, "object missing")
	assert.Equal(t, "[not_found] object missing", err.Error())

	wrapped := Wrap(ErrKindTransport, "copy failed", errors.New("eof"))
	assert.Equal(t, "[transport] copy failed: eof", wrapped.Error())
}

func TestError_Unwrap(t *testing.T) {
	cause := errors.New("boom")
	err := Wrap(ErrKindTransport, "op failed", cause)

	assert.ErrorIs(t, err, cause)
}

func TestPredicates(t *testing.T) {
	tests := []struct {
		name string
		err  error
		pred func(error) bool
		want bool
	}{
		{name: "not found", err: New(ErrKindNotFound, "x"), pred: IsNotFound, want: true},
		{name: "transport", err: New(ErrKindTransport, "x"), pred: IsTransport, want: true},
		{name: "timeout", err: New(ErrKindTimeout, "x"), pred: IsTimeout, want: true},
		{name: "permission denied", err: New(ErrKindPermissionDenied, "x"), pred: IsPermissionDenied, want: true},
		{name: "unsupported", err: New(ErrKindUnsupported, "x"), pred: IsUnsupported, want: true},
		{name: "metadata unavailable", err: New(ErrKindMetadataUnavailable, "x"), pred: IsMetadataUnavailable, want: true},
		{name: "signing failed", err: New(ErrKindSigningFailed, "x"), pred: IsSigningFailed, want: true},
		{name: "kind mismatch", err: New(ErrKindTimeout, "x"), pred: IsNotFound, want: false},
		{name: "foreign error", err: errors.New("plain"), pred: IsNotFound, want: false},
		{name: "nil error", err: nil, pred: IsNotFound, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.pred(tt.err))
		})
	}
}

func TestPredicates_WrappedChain(t *testing.T) {
	inner := New(ErrKindNotFound, "object missing")
	outer := fmt.Errorf("listing: %w", inner)

	assert.True(t, IsNotFound(outer))
}
