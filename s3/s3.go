// Package s3 provides a MinIO / Amazon S3 implementation of fsys.FS.
//
// Like the Swift adapter it emulates hierarchical paths over a flat key
// space, but it leans on the S3 protocol where the protocol already helps:
// non-recursive listings surface common prefixes as virtual directory
// entries, and temporary URLs use the SDK's presigner.
//
// Usage:
//
//	cfg := s3.DefaultConfig("localhost:9000", "minioadmin", "minioadmin", "assets")
//	fs, err := s3.New(ctx, cfg)
//	if err != nil { ... }
package s3

import (
	"bytes"
	"context"
	"io"
	"strings"
	"time"

	miniogo "github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"github.com/driftfs/driftfs/errs"
	"github.com/driftfs/driftfs/fsys"
)

// visibilityHeader is the custom metadata header carrying the visibility
// tag on S3 objects. A wire contract, like the Swift adapter's
// X-Object-Meta-Visibility.
const visibilityHeader = "X-Amz-Meta-Visibility"

// visibilityMetaKey is the header name minus the protocol prefix, as the
// SDK expects user metadata keys on upload.
const visibilityMetaKey = "Visibility"

// Config holds all settings needed to connect the adapter to a bucket.
type Config struct {
	// Endpoint is the host:port of the storage server.
	// Example: "localhost:9000" for local MinIO.
	Endpoint string

	// AccessKey is the access key ID (MinIO / S3 style).
	AccessKey string

	// SecretKey is the secret access key.
	SecretKey string

	// UseSSL controls whether TLS is used for the connection.
	UseSSL bool

	// Region is used by region-aware backends (e.g. AWS S3).
	// Leave empty for MinIO.
	Region string

	// Bucket is the bucket all objects live in.
	Bucket string

	// Prefix is an optional root prepended to every object key.
	Prefix string
}

// DefaultConfig returns a sensible local-dev config for MinIO.
func DefaultConfig(endpoint, accessKey, secretKey, bucket string) *Config {
	return &Config{
		Endpoint:  endpoint,
		AccessKey: accessKey,
		SecretKey: secretKey,
		Bucket:    bucket,
		UseSSL:    false,
	}
}

// Adapter is a MinIO / S3 implementation of fsys.FS.
// It is safe for concurrent use by multiple goroutines.
type Adapter struct {
	client *miniogo.Client
	bucket string
	prefix string // "" or normalised with a single trailing separator
}

var _ fsys.FS = (*Adapter)(nil)

// New connects to the store using the provided Config and returns an
// Adapter bound to cfg.Bucket.
func New(ctx context.Context, cfg *Config) (*Adapter, error) {
	client, err := miniogo.New(cfg.Endpoint, &miniogo.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
		Region: cfg.Region,
	})
	if err != nil {
		return nil, errs.Wrap(errs.ErrKindTransport, "failed to create s3 client", err)
	}

	prefix := strings.Trim(cfg.Prefix, "/")
	if prefix != "" {
		prefix += "/"
	}
	return &Adapter{client: client, bucket: cfg.Bucket, prefix: prefix}, nil
}

// key returns the physical object key for a logical file path.
func (a *Adapter) key(path string) string {
	return a.prefix + strings.TrimLeft(path, "/")
}

// dirKey returns the physical key prefix covering everything under a
// logical directory path.
func (a *Adapter) dirKey(path string) string {
	path = strings.Trim(path, "/")
	if path == "" {
		return a.prefix
	}
	return a.prefix + path + "/"
}

// --- fsys.FS implementation ---

// FileExists reports whether an object exists at path. Transport failures
// degrade to false, matching the contract's availability tradeoff.
func (a *Adapter) FileExists(ctx context.Context, path string) (bool, error) {
	_, err := a.client.StatObject(ctx, a.bucket, a.key(path), miniogo.StatObjectOptions{})
	if err != nil {
		return false, nil
	}
	return true, nil
}

// DirectoryExists reports whether at least one object lives under path.
func (a *Adapter) DirectoryExists(ctx context.Context, path string) (bool, error) {
	listCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	for obj := range a.client.ListObjects(listCtx, a.bucket, miniogo.ListObjectsOptions{
		Prefix:    a.dirKey(path),
		Recursive: true,
		MaxKeys:   1,
	}) {
		if obj.Err != nil {
			return false, nil
		}
		return true, nil
	}
	return false, nil
}

// Write stores contents at path, replacing any existing object.
func (a *Adapter) Write(ctx context.Context, path string, contents []byte, opts fsys.WriteOptions) error {
	return a.putObject(ctx, path, bytes.NewReader(contents), int64(len(contents)), opts)
}

// WriteStream stores the contents of r at path. r is fully consumed but
// not closed.
func (a *Adapter) WriteStream(ctx context.Context, path string, r io.Reader, opts fsys.WriteOptions) error {
	return a.putObject(ctx, path, r, -1, opts)
}

func (a *Adapter) putObject(ctx context.Context, path string, r io.Reader, size int64, opts fsys.WriteOptions) error {
	putOpts := miniogo.PutObjectOptions{ContentType: opts.MimeType}
	if opts.Visibility != "" {
		putOpts.UserMetadata = map[string]string{visibilityMetaKey: opts.Visibility}
	}
	if _, err := a.client.PutObject(ctx, a.bucket, a.key(path), r, size, putOpts); err != nil {
		return mapError(err, "failed to write object")
	}
	return nil
}

// Read returns the full contents of the object at path.
func (a *Adapter) Read(ctx context.Context, path string) ([]byte, error) {
	rc, err := a.ReadStream(ctx, path)
	if err != nil {
		return nil, err
	}
	defer rc.Close()

	data, err := io.ReadAll(rc)
	if err != nil {
		return nil, mapError(err, "failed to read object")
	}
	return data, nil
}

// ReadStream opens a streaming handle to the object at path. The caller
// owns the returned stream and MUST close it.
func (a *Adapter) ReadStream(ctx context.Context, path string) (io.ReadCloser, error) {
	obj, err := a.client.GetObject(ctx, a.bucket, a.key(path), miniogo.GetObjectOptions{})
	if err != nil {
		return nil, mapError(err, "failed to get object")
	}
	// GetObject is lazy; force a stat so missing objects fail here, not at
	// the caller's first read.
	if _, err := obj.Stat(); err != nil {
		obj.Close()
		return nil, mapError(err, "failed to stat object after get")
	}
	return obj, nil
}

// Delete removes the object at path. The protocol's delete is already
// idempotent: removing an absent key succeeds.
func (a *Adapter) Delete(ctx context.Context, path string) error {
	if err := a.client.RemoveObject(ctx, a.bucket, a.key(path), miniogo.RemoveObjectOptions{}); err != nil {
		mapped := mapError(err, "failed to delete object")
		if errs.IsNotFound(mapped) {
			return nil
		}
		return mapped
	}
	return nil
}

// DeleteDirectory removes every object under path. Zero matches is a no-op
// success. Not transactional.
func (a *Adapter) DeleteDirectory(ctx context.Context, path string) error {
	listCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	for obj := range a.client.ListObjects(listCtx, a.bucket, miniogo.ListObjectsOptions{
		Prefix:    a.dirKey(path),
		Recursive: true,
	}) {
		if obj.Err != nil {
			return mapError(obj.Err, "failed to list directory for deletion")
		}
		if err := a.client.RemoveObject(ctx, a.bucket, obj.Key, miniogo.RemoveObjectOptions{}); err != nil {
			mapped := mapError(err, "failed to delete object "+obj.Key)
			if errs.IsNotFound(mapped) {
				continue
			}
			return mapped
		}
	}
	return nil
}

// CreateDirectory is a no-op: S3 materialises directories implicitly from
// key prefixes. This adapter's variant always succeeds, consistently at
// every call site.
func (a *Adapter) CreateDirectory(ctx context.Context, path string) error {
	return nil
}

// Move renames the object at src to dst via a server-side copy followed by
// a delete of the source.
func (a *Adapter) Move(ctx context.Context, src, dst string) error {
	if err := a.Copy(ctx, src, dst); err != nil {
		return err
	}
	return a.Delete(ctx, src)
}

// Copy duplicates the object at src to dst server-side.
func (a *Adapter) Copy(ctx context.Context, src, dst string) error {
	_, err := a.client.CopyObject(ctx,
		miniogo.CopyDestOptions{Bucket: a.bucket, Object: a.key(dst)},
		miniogo.CopySrcOptions{Bucket: a.bucket, Object: a.key(src)},
	)
	if err != nil {
		return mapError(err, "failed to copy object")
	}
	return nil
}

// List returns a lazy listing of path. Unlike the Swift adapter this one
// surfaces the protocol's common prefixes as virtual directory entries in
// shallow mode.
func (a *Adapter) List(ctx context.Context, path string, deep bool) (fsys.Listing, error) {
	listCtx, cancel := context.WithCancel(ctx)
	ch := a.client.ListObjects(listCtx, a.bucket, miniogo.ListObjectsOptions{
		Prefix:    a.dirKey(path),
		Recursive: deep,
	})
	return &listing{ch: ch, cancel: cancel, prefix: a.prefix}, nil
}

// Visibility returns the visibility tag stored on the object at path.
func (a *Adapter) Visibility(ctx context.Context, path string) (string, error) {
	info, err := a.client.StatObject(ctx, a.bucket, a.key(path), miniogo.StatObjectOptions{})
	if err != nil {
		return "", mapError(err, "failed to stat object")
	}
	vis := visibilityFromInfo(info)
	if vis == "" {
		return "", errs.New(errs.ErrKindMetadataUnavailable, "object has no visibility metadata")
	}
	return vis, nil
}

// SetVisibility replaces the visibility tag by copying the object onto
// itself with replacement metadata.
func (a *Adapter) SetVisibility(ctx context.Context, path, visibility string) error {
	key := a.key(path)
	_, err := a.client.CopyObject(ctx,
		miniogo.CopyDestOptions{
			Bucket:          a.bucket,
			Object:          key,
			UserMetadata:    map[string]string{visibilityMetaKey: visibility},
			ReplaceMetadata: true,
		},
		miniogo.CopySrcOptions{Bucket: a.bucket, Object: key},
	)
	if err != nil {
		return mapError(err, "failed to update object metadata")
	}
	return nil
}

// MimeType returns the content type of the object at path.
func (a *Adapter) MimeType(ctx context.Context, path string) (string, error) {
	info, err := a.client.StatObject(ctx, a.bucket, a.key(path), miniogo.StatObjectOptions{})
	if err != nil {
		return "", mapError(err, "failed to stat object")
	}
	if info.ContentType == "" {
		return "", errs.New(errs.ErrKindMetadataUnavailable, "object has no content type")
	}
	return trimMimeType(info.ContentType), nil
}

// LastModified returns the last-modified time of the object at path.
func (a *Adapter) LastModified(ctx context.Context, path string) (time.Time, error) {
	info, err := a.client.StatObject(ctx, a.bucket, a.key(path), miniogo.StatObjectOptions{})
	if err != nil {
		return time.Time{}, mapError(err, "failed to stat object")
	}
	if info.LastModified.IsZero() {
		return time.Time{}, errs.New(errs.ErrKindMetadataUnavailable, "object has no last-modified timestamp")
	}
	return info.LastModified, nil
}

// FileSize returns the byte size of the object at path.
func (a *Adapter) FileSize(ctx context.Context, path string) (int64, error) {
	info, err := a.client.StatObject(ctx, a.bucket, a.key(path), miniogo.StatObjectOptions{})
	if err != nil {
		return 0, mapError(err, "failed to stat object")
	}
	return info.Size, nil
}

// Checksum returns the object's ETag with surrounding quotes stripped.
func (a *Adapter) Checksum(ctx context.Context, path string) (string, error) {
	info, err := a.client.StatObject(ctx, a.bucket, a.key(path), miniogo.StatObjectOptions{})
	if err != nil {
		return "", mapError(err, "failed to stat object")
	}
	if info.ETag == "" {
		return "", errs.New(errs.ErrKindMetadataUnavailable, "object has no content hash")
	}
	return strings.Trim(info.ETag, `"`), nil
}

// TemporaryURL returns a presigned GET URL valid until expiresAt.
func (a *Adapter) TemporaryURL(ctx context.Context, path string, expiresAt time.Time) (string, error) {
	ttl := time.Until(expiresAt)
	if ttl <= 0 {
		return "", errs.New(errs.ErrKindSigningFailed, "expiry is in the past")
	}
	u, err := a.client.PresignedGetObject(ctx, a.bucket, a.key(path), ttl, nil)
	if err != nil {
		return "", mapError(err, "failed to presign object URL")
	}
	return u.String(), nil
}

// PublicURL returns the unsigned public URL of the object at path.
func (a *Adapter) PublicURL(path string) (string, error) {
	base := a.client.EndpointURL()
	if base == nil {
		return "", errs.New(errs.ErrKindSigningFailed, "client has no endpoint URL")
	}
	return strings.TrimRight(base.String(), "/") + "/" + a.bucket + "/" + a.key(path), nil
}

// visibilityFromInfo reads the visibility tag from a stat response. The SDK
// surfaces user metadata under two shapes depending on the call.
func visibilityFromInfo(info miniogo.ObjectInfo) string {
	if v := info.Metadata.Get(visibilityHeader); v != "" {
		return v
	}
	return info.UserMetadata[visibilityMetaKey]
}

// trimMimeType drops a trailing parameter qualifier from a content type
// ("text/plain; charset=utf-8" → "text/plain").
func trimMimeType(ct string) string {
	base, _, _ := strings.Cut(ct, ";")
	return strings.TrimSpace(base)
}
