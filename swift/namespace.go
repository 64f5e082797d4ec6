package swift

import (
	"context"
	"strings"

	"github.com/ncw/swift/v2"

	"github.com/driftfs/driftfs/fsys"
)

// pageSize is the number of object records fetched per listing page.
const pageSize = 1000

// objectPager pulls successive pages of object records under a physical key
// prefix. Pagination is an explicit step rather than a hidden iteration so
// the listing logic can be driven by an in-memory page source in tests.
type objectPager struct {
	conn      Conn
	container string
	prefix    string
	limit     int // page size; 0 means pageSize
	marker    string
	done      bool
}

// nextPage fetches the next page. An empty page means the listing is
// exhausted.
func (p *objectPager) nextPage(ctx context.Context) ([]swift.Object, error) {
	if p.done {
		return nil, nil
	}
	if p.limit == 0 {
		p.limit = pageSize
	}
	objs, err := p.conn.Objects(ctx, p.container, &swift.ObjectsOpts{
		Prefix: p.prefix,
		Marker: p.marker,
		Limit:  p.limit,
	})
	if err != nil {
		return nil, err
	}
	if len(objs) < p.limit {
		p.done = true
	}
	if len(objs) > 0 {
		p.marker = objs[len(objs)-1].Name
	}
	return objs, nil
}

// listing lazily drains an objectPager, translating raw object records into
// fsys.Attributes. In shallow mode a key is emitted only when its parent
// directory equals the listed path; nested keys are suppressed entirely and
// no intermediate directory entries are synthesised. Single-pass: restart by
// calling List again.
type listing struct {
	ctx    context.Context
	pager  *objectPager
	prefix pathPrefixer
	dir    string // logical directory being listed, "" for the root
	deep   bool

	page []swift.Object
	idx  int
	cur  fsys.Attributes
	err  error
	done bool
}

var _ fsys.Listing = (*listing)(nil)

func (l *listing) Next() bool {
	if l.done || l.err != nil {
		return false
	}
	for {
		for l.idx < len(l.page) {
			obj := l.page[l.idx]
			l.idx++

			path := l.prefix.strip(obj.Name)
			// Zero-length directory marker objects end in "/"; they are
			// not leaves and would surface as bogus entries.
			if path == "" || strings.HasSuffix(path, "/") {
				continue
			}
			if !l.deep && parentDir(path) != l.dir {
				continue
			}
			l.cur = fileAttributes(path, obj)
			return true
		}

		page, err := l.pager.nextPage(l.ctx)
		if err != nil {
			l.err = mapError(err, "failed to list objects")
			return false
		}
		if len(page) == 0 {
			l.done = true
			return false
		}
		l.page, l.idx = page, 0
	}
}

// Attr returns the current entry. Only valid after Next reports true.
func (l *listing) Attr() fsys.Attributes { return l.cur }

// Err returns any error encountered during iteration.
func (l *listing) Err() error { return l.err }

// Close releases the listing. Pages are fetched on demand, so there is
// nothing to release; Close exists to satisfy the fsys.Listing contract.
func (l *listing) Close() {}

// parentDir returns the directory portion of a logical path, "" for
// top-level entries.
func parentDir(path string) string {
	i := strings.LastIndex(path, "/")
	if i < 0 {
		return ""
	}
	return path[:i]
}
