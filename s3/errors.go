package s3

import (
	"context"
	"errors"

	miniogo "github.com/minio/minio-go/v7"

	"github.com/driftfs/driftfs/errs"
)

// mapError converts a MinIO SDK error into the shared taxonomy. The SDK
// reports S3 protocol failures as minio.ErrorResponse values carrying both
// an S3 error code and an HTTP status.
func mapError(err error, msg string) *errs.Error {
	if err == nil {
		return nil
	}

	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return errs.Wrap(errs.ErrKindTimeout, msg, err)
	}

	var resp miniogo.ErrorResponse
	if errors.As(err, &resp) {
		switch resp.Code {
		case "NoSuchKey", "NoSuchBucket":
			return errs.Wrap(errs.ErrKindNotFound, msg, err)
		case "AccessDenied", "InvalidAccessKeyId", "SignatureDoesNotMatch":
			return errs.Wrap(errs.ErrKindPermissionDenied, msg, err)
		case "SlowDown", "RequestTimeout":
			return errs.Wrap(errs.ErrKindTimeout, msg, err)
		}
		switch resp.StatusCode {
		case 404:
			return errs.Wrap(errs.ErrKindNotFound, msg, err)
		case 401, 403:
			return errs.Wrap(errs.ErrKindPermissionDenied, msg, err)
		case 408, 429:
			return errs.Wrap(errs.ErrKindTimeout, msg, err)
		}
	}

	return errs.Wrap(errs.ErrKindTransport, msg, err)
}
