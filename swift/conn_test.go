package swift

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/ncw/swift/v2"
)

// fakeConn is an in-memory Swift store honouring prefix, marker and limit
// listing options; err, when set, makes every call fail with it.
type fakeConn struct {
	objects    map[string]*fakeObject
	storageURL string
	err        error

	deleted []string // keys removed via ObjectDelete, in order
}

type fakeObject struct {
	data         []byte
	contentType  string
	meta         map[string]string // custom metadata, header-name keyed
	lastModified time.Time
	hash         string
}

func newFakeConn() *fakeConn {
	return &fakeConn{
		objects:    map[string]*fakeObject{},
		storageURL: "https://storage.example.com/v1/AUTH_test",
	}
}

func (f *fakeConn) put(key, data string) {
	f.objects[key] = &fakeObject{
		data:         []byte(data),
		contentType:  "text/plain",
		meta:         map[string]string{},
		lastModified: time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC),
		hash:         "0cc175b9c0f1b6a831c399e269772661",
	}
}

func (f *fakeConn) record(name string) (swift.Object, *fakeObject, error) {
	if f.err != nil {
		return swift.Object{}, nil, f.err
	}
	obj, ok := f.objects[name]
	if !ok {
		return swift.Object{}, nil, swift.ObjectNotFound
	}
	return swift.Object{
		Name:         name,
		Bytes:        int64(len(obj.data)),
		ContentType:  obj.contentType,
		LastModified: obj.lastModified,
		Hash:         obj.hash,
	}, obj, nil
}

func (f *fakeConn) Object(ctx context.Context, container, name string) (swift.Object, swift.Headers, error) {
	rec, obj, err := f.record(name)
	if err != nil {
		return swift.Object{}, nil, err
	}
	h := swift.Headers{
		"Content-Length": strconv.FormatInt(rec.Bytes, 10),
		"Content-Type":   obj.contentType,
		"Last-Modified":  obj.lastModified.UTC().Format(http.TimeFormat),
	}
	for k, v := range obj.meta {
		h[k] = v
	}
	return rec, h, nil
}

func (f *fakeConn) ObjectOpen(ctx context.Context, container, name string) (io.ReadCloser, swift.Headers, error) {
	_, obj, err := f.record(name)
	if err != nil {
		return nil, nil, err
	}
	return io.NopCloser(bytes.NewReader(obj.data)), swift.Headers{}, nil
}

func (f *fakeConn) ObjectPut(ctx context.Context, container, name string, contents io.Reader, contentType string, h swift.Headers) error {
	if f.err != nil {
		return f.err
	}
	data, err := io.ReadAll(contents)
	if err != nil {
		return err
	}
	meta := map[string]string{}
	for k, v := range h {
		meta[k] = v
	}
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	f.objects[name] = &fakeObject{
		data:         data,
		contentType:  contentType,
		meta:         meta,
		lastModified: time.Now().UTC(),
		hash:         "d41d8cd98f00b204e9800998ecf8427e",
	}
	return nil
}

func (f *fakeConn) ObjectUpdate(ctx context.Context, container, name string, h swift.Headers) error {
	_, obj, err := f.record(name)
	if err != nil {
		return err
	}
	// A metadata POST replaces all custom metadata, like the real store.
	obj.meta = map[string]string{}
	for k, v := range h {
		obj.meta[k] = v
	}
	return nil
}

func (f *fakeConn) ObjectDelete(ctx context.Context, container, name string) error {
	if f.err != nil {
		return f.err
	}
	if _, ok := f.objects[name]; !ok {
		return swift.ObjectNotFound
	}
	delete(f.objects, name)
	f.deleted = append(f.deleted, name)
	return nil
}

func (f *fakeConn) ObjectCopy(ctx context.Context, srcContainer, src, dstContainer, dst string, h swift.Headers) error {
	_, obj, err := f.record(src)
	if err != nil {
		return err
	}
	cp := *obj
	cp.meta = map[string]string{}
	for k, v := range obj.meta {
		cp.meta[k] = v
	}
	f.objects[dst] = &cp
	return nil
}

func (f *fakeConn) Objects(ctx context.Context, container string, opts *swift.ObjectsOpts) ([]swift.Object, error) {
	if f.err != nil {
		return nil, f.err
	}
	keys := make([]string, 0, len(f.objects))
	for k := range f.objects {
		if strings.HasPrefix(k, opts.Prefix) && k > opts.Marker {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)

	if opts.Limit > 0 && len(keys) > opts.Limit {
		keys = keys[:opts.Limit]
	}

	out := make([]swift.Object, 0, len(keys))
	for _, k := range keys {
		rec, _, err := f.record(k)
		if err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	return out, nil
}

func (f *fakeConn) StorageURL() string {
	return f.storageURL
}
