// Package swift provides an OpenStack Swift implementation of fsys.FS.
//
// Swift exposes a flat key→blob namespace; this adapter emulates the
// hierarchical path semantics of the fsys contract on top of it: shallow
// and deep listings, prefix-based directory deletion, and HMAC-signed
// temporary URLs.
//
// Usage:
//
//	cfg := swift.DefaultConfig("https://auth.example.com/v3", "demo", "secret", "assets")
//	fs, err := swift.New(ctx, cfg)
//	if err != nil { ... }
//
//	url, err := fs.TemporaryURL(ctx, "reports/q3.pdf", time.Now().Add(15*time.Minute))
package swift

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/ncw/swift/v2"
	"github.com/rs/zerolog"

	"github.com/driftfs/driftfs/errs"
	"github.com/driftfs/driftfs/fsys"
)

// Config holds all settings needed to connect the adapter to a Swift
// container.
type Config struct {
	// AuthURL is the Keystone authentication endpoint.
	AuthURL string

	// Username and APIKey are the account credentials.
	Username string
	APIKey   string

	// Domain, Tenant and Region select the account scope.
	// Leave empty to use the provider defaults.
	Domain string
	Tenant string
	Region string

	// Container is the Swift container all objects live in.
	Container string

	// Prefix is an optional root prepended to every object key, so
	// multiple logical filesystems can share one container.
	Prefix string

	// TempURLKey is the shared secret used to sign temporary URLs.
	// It must match the X-Account-Meta-Temp-URL-Key set on the account.
	// Never logged.
	TempURLKey string

	// Timeouts
	ConnectTimeout time.Duration // time limit for establishing a connection
	Timeout        time.Duration // per-request data timeout

	// Logger enables operation-level debug tracing. Nil disables it.
	Logger *zerolog.Logger
}

// DefaultConfig returns sensible settings for the given endpoint and
// container.
func DefaultConfig(authURL, username, apiKey, container string) *Config {
	return &Config{
		AuthURL:        authURL,
		Username:       username,
		APIKey:         apiKey,
		Container:      container,
		ConnectTimeout: 10 * time.Second,
		Timeout:        60 * time.Second,
	}
}

// Adapter is a Swift implementation of fsys.FS. It holds no cache and no
// shared mutable state; every operation is an independent request against
// the store, so it is safe for concurrent use by multiple goroutines.
type Adapter struct {
	conn       Conn
	container  string
	prefixer   pathPrefixer
	tempURLKey string
	log        zerolog.Logger
}

var _ fsys.FS = (*Adapter)(nil)

// New authenticates against Swift using the provided Config and returns an
// Adapter bound to cfg.Container.
func New(ctx context.Context, cfg *Config) (*Adapter, error) {
	c := &swift.Connection{
		UserName:       cfg.Username,
		ApiKey:         cfg.APIKey,
		AuthUrl:        cfg.AuthURL,
		Domain:         cfg.Domain,
		Tenant:         cfg.Tenant,
		Region:         cfg.Region,
		ConnectTimeout: cfg.ConnectTimeout,
		Timeout:        cfg.Timeout,
	}
	if err := c.Authenticate(ctx); err != nil {
		return nil, mapError(err, "authentication failed")
	}
	return NewWithConn(&connection{c: c}, cfg), nil
}

// NewWithConn returns an Adapter over an already-connected client. It is
// the seam for custom transports and for tests that substitute an
// in-memory store.
func NewWithConn(conn Conn, cfg *Config) *Adapter {
	log := zerolog.Nop()
	if cfg.Logger != nil {
		log = cfg.Logger.With().Str("adapter", "swift").Str("container", cfg.Container).Logger()
	}
	return &Adapter{
		conn:       conn,
		container:  cfg.Container,
		prefixer:   newPathPrefixer(cfg.Prefix),
		tempURLKey: cfg.TempURLKey,
		log:        log,
	}
}

// --- fsys.FS implementation ---

// FileExists reports whether an object exists at path. Transport failures
// degrade to false rather than an error: existence probes favour
// availability over correctness, a documented tradeoff.
func (a *Adapter) FileExists(ctx context.Context, path string) (bool, error) {
	_, _, err := a.conn.Object(ctx, a.container, a.prefixer.key(path))
	if err != nil {
		return false, nil
	}
	return true, nil
}

// DirectoryExists reports whether at least one object key lives under path.
// A directory nothing was ever written beneath reports false — the flat
// store has no record of it. Transport failures degrade to false, matching
// FileExists.
func (a *Adapter) DirectoryExists(ctx context.Context, path string) (bool, error) {
	objs, err := a.conn.Objects(ctx, a.container, &swift.ObjectsOpts{
		Prefix: a.prefixer.dirKey(path),
		Limit:  1,
	})
	if err != nil {
		return false, nil
	}
	return len(objs) > 0, nil
}

// Write stores contents at path, replacing any existing object.
func (a *Adapter) Write(ctx context.Context, path string, contents []byte, opts fsys.WriteOptions) error {
	return a.WriteStream(ctx, path, bytes.NewReader(contents), opts)
}

// WriteStream stores the contents of r at path. r is fully consumed but not
// closed.
func (a *Adapter) WriteStream(ctx context.Context, path string, r io.Reader, opts fsys.WriteOptions) error {
	h := swift.Headers{}
	if opts.Visibility != "" {
		h[VisibilityHeader] = opts.Visibility
	}
	if err := a.conn.ObjectPut(ctx, a.container, a.prefixer.key(path), r, opts.MimeType, h); err != nil {
		return mapError(err, "failed to write object")
	}
	a.log.Debug().Str("path", path).Msg("object written")
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
	rc, _, err := a.conn.ObjectOpen(ctx, a.container, a.prefixer.key(path))
	if err != nil {
		return nil, mapError(err, "failed to open object")
	}
	return rc, nil
}

// Delete removes the object at path. Deleting an already-absent object is a
// success (idempotent delete).
func (a *Adapter) Delete(ctx context.Context, path string) error {
	if err := a.conn.ObjectDelete(ctx, a.container, a.prefixer.key(path)); err != nil {
		mapped := mapError(err, "failed to delete object")
		if errs.IsNotFound(mapped) {
			return nil
		}
		return mapped
	}
	a.log.Debug().Str("path", path).Msg("object deleted")
	return nil
}

// DeleteDirectory removes every object whose key lives under path. Zero
// matches is a no-op success. Not transactional: a failure partway leaves a
// partially deleted set with no rollback.
func (a *Adapter) DeleteDirectory(ctx context.Context, path string) error {
	pager := &objectPager{
		conn:      a.conn,
		container: a.container,
		prefix:    a.prefixer.dirKey(path),
	}
	for {
		page, err := pager.nextPage(ctx)
		if err != nil {
			return mapError(err, "failed to list directory for deletion")
		}
		if len(page) == 0 {
			return nil
		}
		for _, obj := range page {
			if err := a.conn.ObjectDelete(ctx, a.container, obj.Name); err != nil {
				mapped := mapError(err, "failed to delete object "+obj.Name)
				if errs.IsNotFound(mapped) {
					continue
				}
				return mapped
			}
		}
	}
}

// CreateDirectory always fails: Swift has no directory concept and this
// adapter rejects rather than silently pretending. The same variant applies
// at every call site.
func (a *Adapter) CreateDirectory(ctx context.Context, path string) error {
	return errs.New(errs.ErrKindUnsupported, "directories are not supported by swift object storage")
}

// Move renames the object at src to dst via a server-side copy followed by
// a delete of the source.
func (a *Adapter) Move(ctx context.Context, src, dst string) error {
	if err := a.Copy(ctx, src, dst); err != nil {
		return err
	}
	return a.Delete(ctx, src)
}

// Copy duplicates the object at src to dst server-side, metadata included.
func (a *Adapter) Copy(ctx context.Context, src, dst string) error {
	err := a.conn.ObjectCopy(ctx, a.container, a.prefixer.key(src), a.container, a.prefixer.key(dst), nil)
	if err != nil {
		return mapError(err, "failed to copy object")
	}
	return nil
}

// List returns a lazy listing of path. Shallow listings emit only entries
// whose parent directory equals path; deep listings emit every descendant.
func (a *Adapter) List(ctx context.Context, path string, deep bool) (fsys.Listing, error) {
	dir := strings.Trim(path, "/")
	return &listing{
		ctx: ctx,
		pager: &objectPager{
			conn:      a.conn,
			container: a.container,
			prefix:    a.prefixer.dirKey(dir),
		},
		prefix: a.prefixer,
		dir:    dir,
		deep:   deep,
	}, nil
}

// Visibility returns the visibility tag stored on the object at path.
// An object without the tag is a metadata failure, not a default.
func (a *Adapter) Visibility(ctx context.Context, path string) (string, error) {
	_, h, err := a.conn.Object(ctx, a.container, a.prefixer.key(path))
	if err != nil {
		return "", mapError(err, "failed to stat object")
	}
	return visibilityFromHeaders(h)
}

// SetVisibility replaces the visibility tag on the object at path. Swift's
// metadata POST replaces all custom object metadata, so the visibility tag
// is the only custom metadata this adapter maintains.
func (a *Adapter) SetVisibility(ctx context.Context, path, visibility string) error {
	h := swift.Headers{VisibilityHeader: visibility}
	if err := a.conn.ObjectUpdate(ctx, a.container, a.prefixer.key(path), h); err != nil {
		return mapError(err, "failed to update object metadata")
	}
	return nil
}

// MimeType returns the content type of the object at path, with any
// trailing parameter qualifier trimmed.
func (a *Adapter) MimeType(ctx context.Context, path string) (string, error) {
	_, h, err := a.conn.Object(ctx, a.container, a.prefixer.key(path))
	if err != nil {
		return "", mapError(err, "failed to stat object")
	}
	return mimeTypeFromHeaders(h)
}

// LastModified returns the last-modified time of the object at path.
func (a *Adapter) LastModified(ctx context.Context, path string) (time.Time, error) {
	_, h, err := a.conn.Object(ctx, a.container, a.prefixer.key(path))
	if err != nil {
		return time.Time{}, mapError(err, "failed to stat object")
	}
	return lastModifiedFromHeaders(h)
}

// FileSize returns the byte size of the object at path.
func (a *Adapter) FileSize(ctx context.Context, path string) (int64, error) {
	_, h, err := a.conn.Object(ctx, a.container, a.prefixer.key(path))
	if err != nil {
		return 0, mapError(err, "failed to stat object")
	}
	return sizeFromHeaders(h)
}

// Checksum returns the object's ETag, Swift's MD5 content hash.
func (a *Adapter) Checksum(ctx context.Context, path string) (string, error) {
	obj, _, err := a.conn.Object(ctx, a.container, a.prefixer.key(path))
	if err != nil {
		return "", mapError(err, "failed to stat object")
	}
	if obj.Hash == "" {
		return "", errs.New(errs.ErrKindMetadataUnavailable, "object has no content hash")
	}
	return obj.Hash, nil
}

// TemporaryURL returns a signed URL granting unauthenticated GET access to
// the object at path until expiresAt.
func (a *Adapter) TemporaryURL(ctx context.Context, path string, expiresAt time.Time) (string, error) {
	if a.tempURLKey == "" {
		return "", errs.New(errs.ErrKindSigningFailed, "no temp URL key configured")
	}
	publicURL, err := a.PublicURL(path)
	if err != nil {
		return "", err
	}
	return signTempURL(publicURL, http.MethodGet, expiresAt.Unix(), []byte(a.tempURLKey))
}

// PublicURL returns the unsigned public URL of the object at path.
func (a *Adapter) PublicURL(path string) (string, error) {
	base := a.conn.StorageURL()
	if base == "" {
		return "", errs.New(errs.ErrKindSigningFailed, "connection has no storage URL")
	}
	return strings.TrimRight(base, "/") + "/" + a.container + "/" + a.prefixer.key(path), nil
}
