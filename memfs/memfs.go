// Package memfs provides an in-memory implementation of fsys.FS.
//
// It exists for tests and local development: the full contract, including
// the flat-namespace listing semantics of the object-store adapters, runs
// against a mutex-guarded map with no external dependencies.
package memfs

import (
	"bytes"
	"context"
	"crypto/md5"
	"encoding/hex"
	"fmt"
	"io"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/driftfs/driftfs/errs"
	"github.com/driftfs/driftfs/fsys"
)

type object struct {
	data       []byte
	mimeType   string
	visibility string
	modified   time.Time
}

// FS is an in-memory fsys.FS. The zero value is not usable; construct with
// New. Safe for concurrent use by multiple goroutines.
type FS struct {
	mu      sync.RWMutex
	objects map[string]*object
	dirs    map[string]bool
	now     func() time.Time
}

var _ fsys.FS = (*FS)(nil)

// New returns an empty in-memory filesystem.
func New() *FS {
	return &FS{
		objects: make(map[string]*object),
		dirs:    make(map[string]bool),
		now:     time.Now,
	}
}

func normalize(path string) string {
	return strings.Trim(path, "/")
}

// FileExists reports whether a file exists at path.
func (m *FS) FileExists(ctx context.Context, path string) (bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	_, ok := m.objects[normalize(path)]
	return ok, nil
}

// DirectoryExists reports whether path was explicitly created as a
// directory or holds at least one file beneath it.
func (m *FS) DirectoryExists(ctx context.Context, path string) (bool, error) {
	dir := normalize(path)
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.dirs[dir] {
		return true, nil
	}
	prefix := dir + "/"
	for key := range m.objects {
		if strings.HasPrefix(key, prefix) {
			return true, nil
		}
	}
	return false, nil
}

// Write stores contents at path, replacing any existing file.
func (m *FS) Write(ctx context.Context, path string, contents []byte, opts fsys.WriteOptions) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.objects[normalize(path)] = &object{
		data:       append([]byte(nil), contents...),
		mimeType:   opts.MimeType,
		visibility: opts.Visibility,
		modified:   m.now(),
	}
	return nil
}

// WriteStream stores the contents of r at path. r is fully consumed but
// not closed.
func (m *FS) WriteStream(ctx context.Context, path string, r io.Reader, opts fsys.WriteOptions) error {
	data, err := io.ReadAll(r)
	if err != nil {
		return errs.Wrap(errs.ErrKindTransport, "failed to read stream", err)
	}
	return m.Write(ctx, path, data, opts)
}

// Read returns the full contents of the file at path.
func (m *FS) Read(ctx context.Context, path string) ([]byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	obj, ok := m.objects[normalize(path)]
	if !ok {
		return nil, errs.New(errs.ErrKindNotFound, "file not found: "+path)
	}
	return append([]byte(nil), obj.data...), nil
}

// ReadStream opens a streaming handle to the file at path.
func (m *FS) ReadStream(ctx context.Context, path string) (io.ReadCloser, error) {
	data, err := m.Read(ctx, path)
	if err != nil {
		return nil, err
	}
	return io.NopCloser(bytes.NewReader(data)), nil
}

// Delete removes the file at path. Deleting an absent file succeeds.
func (m *FS) Delete(ctx context.Context, path string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.objects, normalize(path))
	return nil
}

// DeleteDirectory removes every file under path and forgets the directory.
// Zero matches is a no-op success.
func (m *FS) DeleteDirectory(ctx context.Context, path string) error {
	dir := normalize(path)
	prefix := dir + "/"

	m.mu.Lock()
	defer m.mu.Unlock()
	for key := range m.objects {
		if strings.HasPrefix(key, prefix) {
			delete(m.objects, key)
		}
	}
	delete(m.dirs, dir)
	for sub := range m.dirs {
		if strings.HasPrefix(sub, prefix) {
			delete(m.dirs, sub)
		}
	}
	return nil
}

// CreateDirectory records path as an (initially empty) directory.
func (m *FS) CreateDirectory(ctx context.Context, path string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.dirs[normalize(path)] = true
	return nil
}

// Move renames the file at src to dst.
func (m *FS) Move(ctx context.Context, src, dst string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	obj, ok := m.objects[normalize(src)]
	if !ok {
		return errs.New(errs.ErrKindNotFound, "file not found: "+src)
	}
	m.objects[normalize(dst)] = obj
	delete(m.objects, normalize(src))
	return nil
}

// Copy duplicates the file at src to dst.
func (m *FS) Copy(ctx context.Context, src, dst string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	obj, ok := m.objects[normalize(src)]
	if !ok {
		return errs.New(errs.ErrKindNotFound, "file not found: "+src)
	}
	cp := *obj
	cp.data = append([]byte(nil), obj.data...)
	m.objects[normalize(dst)] = &cp
	return nil
}

// List returns the files under path. Shallow listings keep only direct
// children and synthesise no directory entries, matching the object-store
// adapters' semantics.
func (m *FS) List(ctx context.Context, path string, deep bool) (fsys.Listing, error) {
	dir := normalize(path)

	m.mu.RLock()
	var attrs []fsys.Attributes
	for key, obj := range m.objects {
		if dir != "" && !strings.HasPrefix(key, dir+"/") {
			continue
		}
		if !deep && parentDir(key) != dir {
			continue
		}
		attrs = append(attrs, fsys.Attributes{
			Path:         key,
			Size:         int64(len(obj.data)),
			Visibility:   obj.visibility,
			MimeType:     obj.mimeType,
			LastModified: obj.modified,
		})
	}
	m.mu.RUnlock()

	sort.Slice(attrs, func(i, j int) bool { return attrs[i].Path < attrs[j].Path })
	return &sliceListing{attrs: attrs}, nil
}

func parentDir(path string) string {
	idx := strings.LastIndex(path, "/")
	if idx < 0 {
		return ""
	}
	return path[:idx]
}

// sliceListing serves a pre-computed snapshot as an fsys.Listing.
type sliceListing struct {
	attrs []fsys.Attributes
	idx   int
	cur   fsys.Attributes
}

func (l *sliceListing) Next() bool {
	if l.idx >= len(l.attrs) {
		return false
	}
	l.cur = l.attrs[l.idx]
	l.idx++
	return true
}

func (l *sliceListing) Attr() fsys.Attributes { return l.cur }
func (l *sliceListing) Close()                {}
func (l *sliceListing) Err() error            { return nil }

func (m *FS) stat(path string) (*object, error) {
	obj, ok := m.objects[normalize(path)]
	if !ok {
		return nil, errs.New(errs.ErrKindNotFound, "file not found: "+path)
	}
	return obj, nil
}

// Visibility returns the visibility tag of the file at path.
func (m *FS) Visibility(ctx context.Context, path string) (string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	obj, err := m.stat(path)
	if err != nil {
		return "", err
	}
	if obj.visibility == "" {
		return "", errs.New(errs.ErrKindMetadataUnavailable, "file has no visibility metadata")
	}
	return obj.visibility, nil
}

// SetVisibility replaces the visibility tag of the file at path.
func (m *FS) SetVisibility(ctx context.Context, path, visibility string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	obj, err := m.stat(path)
	if err != nil {
		return err
	}
	obj.visibility = visibility
	return nil
}

// MimeType returns the content type recorded for the file at path.
func (m *FS) MimeType(ctx context.Context, path string) (string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	obj, err := m.stat(path)
	if err != nil {
		return "", err
	}
	if obj.mimeType == "" {
		return "", errs.New(errs.ErrKindMetadataUnavailable, "file has no content type")
	}
	return obj.mimeType, nil
}

// LastModified returns the time the file at path was last written.
func (m *FS) LastModified(ctx context.Context, path string) (time.Time, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	obj, err := m.stat(path)
	if err != nil {
		return time.Time{}, err
	}
	return obj.modified, nil
}

// FileSize returns the byte size of the file at path.
func (m *FS) FileSize(ctx context.Context, path string) (int64, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	obj, err := m.stat(path)
	if err != nil {
		return 0, err
	}
	return int64(len(obj.data)), nil
}

// Checksum returns the hex MD5 of the file's contents, mirroring the hash
// the object-store backends report.
func (m *FS) Checksum(ctx context.Context, path string) (string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	obj, err := m.stat(path)
	if err != nil {
		return "", err
	}
	sum := md5.Sum(obj.data)
	return hex.EncodeToString(sum[:]), nil
}

// TemporaryURL returns a fake signed URL. The scheme makes clear it never
// resolves anywhere.
func (m *FS) TemporaryURL(ctx context.Context, path string, expiresAt time.Time) (string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if _, err := m.stat(path); err != nil {
		return "", err
	}
	return fmt.Sprintf("memory:///%s?expires=%d", normalize(path), expiresAt.Unix()), nil
}

// PublicURL returns a fake public URL for the file at path.
func (m *FS) PublicURL(path string) (string, error) {
	return "memory:///" + normalize(path), nil
}
