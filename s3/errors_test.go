package s3

import (
	"context"
	"errors"
	"testing"

	miniogo "github.com/minio/minio-go/v7"
	"github.com/stretchr/testify/assert"

	"github.com/driftfs/driftfs/errs"
)

func TestMapError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want errs.ErrKind
	}{
		{name: "no such key", err: miniogo.ErrorResponse{Code: "NoSuchKey", StatusCode: 404}, want: errs.ErrKindNotFound},
		{name: "no such bucket", err: miniogo.ErrorResponse{Code: "NoSuchBucket", StatusCode: 404}, want: errs.ErrKindNotFound},
		{name: "access denied", err: miniogo.ErrorResponse{Code: "AccessDenied", StatusCode: 403}, want: errs.ErrKindPermissionDenied},
		{name: "bad signature", err: miniogo.ErrorResponse{Code: "SignatureDoesNotMatch", StatusCode: 403}, want: errs.ErrKindPermissionDenied},
		{name: "slow down", err: miniogo.ErrorResponse{Code: "SlowDown", StatusCode: 503}, want: errs.ErrKindTimeout},
		{name: "status fallback 404", err: miniogo.ErrorResponse{Code: "SomethingElse", StatusCode: 404}, want: errs.ErrKindNotFound},
		{name: "status fallback 401", err: miniogo.ErrorResponse{Code: "SomethingElse", StatusCode: 401}, want: errs.ErrKindPermissionDenied},
		{name: "status fallback 429", err: miniogo.ErrorResponse{Code: "SomethingElse", StatusCode: 429}, want: errs.ErrKindTimeout},
		{name: "server error", err: miniogo.ErrorResponse{Code: "InternalError", StatusCode: 500}, want: errs.ErrKindTransport},
		{name: "deadline exceeded", err: context.DeadlineExceeded, want: errs.ErrKindTimeout},
		{name: "cancelled", err: context.Canceled, want: errs.ErrKindTimeout},
		{name: "plain network error", err: errors.New("connection refused"), want: errs.ErrKindTransport},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := mapError(tt.err, "op failed")
			assert.Equal(t, tt.want, got.Kind)
			assert.ErrorIs(t, got, tt.err)
		})
	}
}

func TestMapError_Nil(t *testing.T) {
	assert.Nil(t, mapError(nil, "op"))
}
