package swift

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/ncw/swift/v2"

	"github.com/driftfs/driftfs/errs"
	"github.com/driftfs/driftfs/fsys"
)

// VisibilityHeader is the custom object-metadata header carrying the
// adapter-defined visibility tag. Swift has no native ACL concept exposed
// here, so visibility is layered on top of object metadata. The name is a
// wire contract: renaming it orphans the visibility of every stored object.
const VisibilityHeader = "X-Object-Meta-Visibility"

// visibilityMetaKey is VisibilityHeader as it appears in the SDK's parsed
// metadata map (lower-cased, prefix stripped).
const visibilityMetaKey = "visibility"

// fileAttributes translates a raw object record from a listing into the
// generic attribute shape. Listing records carry no custom metadata, so
// visibility stays empty here.
func fileAttributes(path string, obj swift.Object) fsys.Attributes {
	return fsys.Attributes{
		Path:         path,
		Size:         obj.Bytes,
		MimeType:     trimMimeType(obj.ContentType),
		LastModified: obj.LastModified,
	}
}

// trimMimeType drops a trailing parameter qualifier from a stored content
// type ("text/plain; charset=utf-8" → "text/plain").
func trimMimeType(ct string) string {
	base, _, _ := strings.Cut(ct, ";")
	return strings.TrimSpace(base)
}

// The header translators below turn a HEAD response into individual
// attribute fields. A missing or unparsable field is a metadata failure,
// never a zero value: the caller asked for something the store did not
// provide, and silently defaulting would mask partial records.

func sizeFromHeaders(h swift.Headers) (int64, error) {
	raw, ok := h["Content-Length"]
	if !ok {
		return 0, errs.New(errs.ErrKindMetadataUnavailable, "object has no content length")
	}
	size, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, errs.Wrap(errs.ErrKindMetadataUnavailable, "unparsable content length", err)
	}
	return size, nil
}

func mimeTypeFromHeaders(h swift.Headers) (string, error) {
	ct, ok := h["Content-Type"]
	if !ok || ct == "" {
		return "", errs.New(errs.ErrKindMetadataUnavailable, "object has no content type")
	}
	return trimMimeType(ct), nil
}

func lastModifiedFromHeaders(h swift.Headers) (time.Time, error) {
	raw, ok := h["Last-Modified"]
	if !ok {
		return time.Time{}, errs.New(errs.ErrKindMetadataUnavailable, "object has no last-modified timestamp")
	}
	t, err := http.ParseTime(raw)
	if err != nil {
		return time.Time{}, errs.Wrap(errs.ErrKindMetadataUnavailable, "unparsable last-modified timestamp", err)
	}
	return t, nil
}

func visibilityFromHeaders(h swift.Headers) (string, error) {
	vis, ok := h.ObjectMetadata()[visibilityMetaKey]
	if !ok || vis == "" {
		return "", errs.New(errs.ErrKindMetadataUnavailable, "object has no visibility metadata")
	}
	return vis, nil
}
