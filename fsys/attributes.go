package fsys

import "time"

// Visibility tags persisted as custom object metadata. These are opaque,
// adapter-defined access-class labels — not native store ACLs.
const (
	VisibilityPublic  = "public"
	VisibilityPrivate = "private"
)

// Attributes describes a single listing entry: a stored file, or a virtual
// directory synthesised from the flat key space. Values are constructed
// per-call and never mutated after being handed to the caller.
type Attributes struct {
	// Path is the logical path of the entry, relative to the adapter's
	// configured root prefix (e.g. "reports/q3.pdf").
	Path string

	// IsDir is true when the entry represents a virtual directory, not an
	// actual stored object.
	IsDir bool

	// Size is the byte size of the object. -1 if unknown or a directory.
	Size int64

	// Visibility is the adapter-defined visibility tag. Empty if unknown.
	Visibility string

	// MimeType is the content type (e.g. "image/jpeg"). Empty for directories.
	MimeType string

	// LastModified is when the object was last written.
	// Zero if unknown or a directory.
	LastModified time.Time
}
