// Package fsys defines the unified filesystem-style interface over flat
// object storage backends.
//
// All adapters (Swift, S3, in-memory, …) implement the FS interface.
// Callers depend only on this package — never on a specific adapter package.
//
// Usage:
//
//	cfg := swift.DefaultConfig("https://auth.example.com/v3", "demo", "secret", "assets")
//	fs, err := swift.New(ctx, cfg)
//	if err != nil { ... }
//
//	err = fs.Write(ctx, "reports/q3.pdf", data, fsys.WriteOptions{
//	    Visibility: fsys.VisibilityPrivate,
//	})
package fsys

import (
	"context"
	"io"
	"time"
)

// FS is the single interface all storage adapters must implement.
// Paths are logical, slash-separated, and relative to the adapter's
// configured root prefix; they never carry a leading slash.
type FS interface {
	// FileExists reports whether a file exists at path. Transport failures
	// degrade to false rather than an error — existence probes favour
	// availability over correctness.
	FileExists(ctx context.Context, path string) (bool, error)

	// DirectoryExists reports whether at least one object lives under path.
	// A directory that was never written beneath reports false; the flat
	// store has no empty directories.
	DirectoryExists(ctx context.Context, path string) (bool, error)

	// Write stores contents at path, replacing any existing object.
	Write(ctx context.Context, path string, contents []byte, opts WriteOptions) error

	// WriteStream stores the contents of r at path. r is fully consumed
	// but not closed; closing remains the caller's responsibility.
	WriteStream(ctx context.Context, path string, r io.Reader, opts WriteOptions) error

	// Read returns the full contents of the file at path.
	Read(ctx context.Context, path string) ([]byte, error)

	// ReadStream opens a streaming handle to the file at path.
	// The caller MUST close the returned stream.
	ReadStream(ctx context.Context, path string) (io.ReadCloser, error)

	// Delete removes the file at path. Deleting an absent file succeeds.
	Delete(ctx context.Context, path string) error

	// DeleteDirectory removes every object under path. Zero matches is a
	// no-op success. Not transactional: a mid-way failure leaves a
	// partially deleted set.
	DeleteDirectory(ctx context.Context, path string) error

	// CreateDirectory creates a directory at path. Adapters over stores
	// with no directory concept either treat this as a no-op or reject it
	// with an unsupported-kind error; each adapter documents its variant
	// and applies it consistently.
	CreateDirectory(ctx context.Context, path string) error

	// Move renames a file from src to dst.
	Move(ctx context.Context, src, dst string) error

	// Copy duplicates a file from src to dst.
	Copy(ctx context.Context, src, dst string) error

	// List returns a lazy listing of path. When deep is false only direct
	// children are returned; when true, every descendant. The caller MUST
	// call Close() on the returned Listing, even on error.
	List(ctx context.Context, path string, deep bool) (Listing, error)

	// Visibility returns the visibility tag of the file at path.
	Visibility(ctx context.Context, path string) (string, error)

	// SetVisibility replaces the visibility tag of the file at path.
	SetVisibility(ctx context.Context, path, visibility string) error

	// MimeType returns the MIME type of the file at path.
	MimeType(ctx context.Context, path string) (string, error)

	// LastModified returns the last-modified time of the file at path.
	LastModified(ctx context.Context, path string) (time.Time, error)

	// FileSize returns the byte size of the file at path.
	FileSize(ctx context.Context, path string) (int64, error)

	// Checksum returns the store's content hash for the file at path.
	Checksum(ctx context.Context, path string) (string, error)

	// TemporaryURL returns a signed URL granting unauthenticated access to
	// the file at path until expiresAt.
	TemporaryURL(ctx context.Context, path string, expiresAt time.Time) (string, error)

	// PublicURL returns the unsigned public URL of the file at path.
	PublicURL(path string) (string, error)
}

// Listing is a lazy iterator over directory entries. Backends may page
// results; the iterator pulls pages transparently. A Listing is single-pass:
// it is not resumable after partial consumption — restart by calling List
// again. Callers must always call Close() when done, even on error.
type Listing interface {
	// Next advances to the next entry.
	// Returns false when no more entries exist or on error.
	Next() bool

	// Attr returns the current entry. Only valid after Next reports true.
	Attr() Attributes

	// Close releases resources held by the listing.
	Close()

	// Err returns any error encountered during iteration.
	Err() error
}

// WriteOptions carries optional per-write settings.
type WriteOptions struct {
	// Visibility is the visibility tag stored alongside the object.
	// Empty means the adapter stores no tag.
	Visibility string

	// MimeType overrides the content type recorded for the object.
	// Empty lets the store detect or default it.
	MimeType string
}
