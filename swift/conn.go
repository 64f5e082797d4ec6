package swift

import (
	"context"
	"io"

	"github.com/ncw/swift/v2"
)

// Conn is the slice of the Swift API the adapter consumes. Production code
// wraps *swift.Connection (see New); tests substitute an in-memory store
// with an explicit page source, so namespace emulation and metadata
// translation are exercised without a network client.
type Conn interface {
	// Object fetches an object's record and headers without its content.
	Object(ctx context.Context, container, name string) (swift.Object, swift.Headers, error)

	// ObjectOpen opens a streaming handle to an object's content.
	ObjectOpen(ctx context.Context, container, name string) (io.ReadCloser, swift.Headers, error)

	// ObjectPut stores an object, fully consuming contents.
	ObjectPut(ctx context.Context, container, name string, contents io.Reader, contentType string, h swift.Headers) error

	// ObjectUpdate replaces an object's custom metadata headers.
	ObjectUpdate(ctx context.Context, container, name string, h swift.Headers) error

	// ObjectDelete removes an object.
	ObjectDelete(ctx context.Context, container, name string) error

	// ObjectCopy duplicates an object server-side.
	ObjectCopy(ctx context.Context, srcContainer, src, dstContainer, dst string, h swift.Headers) error

	// Objects returns one page of object records matching opts.
	Objects(ctx context.Context, container string, opts *swift.ObjectsOpts) ([]swift.Object, error)

	// StorageURL returns the account's public storage URL
	// (e.g. "https://host:8080/v1/AUTH_account"), empty if unauthenticated.
	StorageURL() string
}

// connection adapts *swift.Connection to Conn.
type connection struct {
	c *swift.Connection
}

func (cn *connection) Object(ctx context.Context, container, name string) (swift.Object, swift.Headers, error) {
	return cn.c.Object(ctx, container, name)
}

func (cn *connection) ObjectOpen(ctx context.Context, container, name string) (io.ReadCloser, swift.Headers, error) {
	return cn.c.ObjectOpen(ctx, container, name, false, nil)
}

func (cn *connection) ObjectPut(ctx context.Context, container, name string, contents io.Reader, contentType string, h swift.Headers) error {
	_, err := cn.c.ObjectPut(ctx, container, name, contents, false, "", contentType, h)
	return err
}

func (cn *connection) ObjectUpdate(ctx context.Context, container, name string, h swift.Headers) error {
	return cn.c.ObjectUpdate(ctx, container, name, h)
}

func (cn *connection) ObjectDelete(ctx context.Context, container, name string) error {
	return cn.c.ObjectDelete(ctx, container, name)
}

func (cn *connection) ObjectCopy(ctx context.Context, srcContainer, src, dstContainer, dst string, h swift.Headers) error {
	_, err := cn.c.ObjectCopy(ctx, srcContainer, src, dstContainer, dst, h)
	return err
}

func (cn *connection) Objects(ctx context.Context, container string, opts *swift.ObjectsOpts) ([]swift.Object, error) {
	return cn.c.Objects(ctx, container, opts)
}

func (cn *connection) StorageURL() string {
	return cn.c.StorageUrl
}
