package s3

import (
	"context"
	"strings"

	miniogo "github.com/minio/minio-go/v7"

	"github.com/driftfs/driftfs/fsys"
)

// listing adapts the SDK's listing channel to fsys.Listing. Cancelling the
// list context on Close stops the producer goroutine behind the channel.
type listing struct {
	ch     <-chan miniogo.ObjectInfo
	cancel context.CancelFunc
	prefix string
	cur    fsys.Attributes
	err    error
}

func (l *listing) Next() bool {
	if l.err != nil {
		return false
	}
	for {
		info, ok := <-l.ch
		if !ok {
			return false
		}
		if info.Err != nil {
			l.err = mapError(info.Err, "listing failed")
			return false
		}

		path := strings.TrimPrefix(info.Key, l.prefix)
		if path == "" {
			continue
		}
		l.cur = translateInfo(path, info)
		return true
	}
}

func (l *listing) Attr() fsys.Attributes { return l.cur }

func (l *listing) Close() { l.cancel() }

func (l *listing) Err() error { return l.err }

// translateInfo converts an SDK entry into storage-neutral attributes.
// Shallow listings surface common prefixes as keys with a trailing
// separator; those become directory entries.
func translateInfo(path string, info miniogo.ObjectInfo) fsys.Attributes {
	if strings.HasSuffix(path, "/") {
		return fsys.Attributes{
			Path:  strings.TrimSuffix(path, "/"),
			IsDir: true,
			Size:  -1,
		}
	}
	return fsys.Attributes{
		Path:         path,
		Size:         info.Size,
		MimeType:     trimMimeType(info.ContentType),
		LastModified: info.LastModified,
	}
}
