package swift

import "strings"

// pathPrefixer maps logical paths to physical object keys by prepending a
// configured root prefix, so multiple logical filesystems can share one
// container. strip is the exact left inverse of key on well-formed inputs.
type pathPrefixer struct {
	prefix string // "" or normalised with a single trailing separator
}

func newPathPrefixer(prefix string) pathPrefixer {
	p := strings.Trim(prefix, "/")
	if p != "" {
		p += "/"
	}
	return pathPrefixer{prefix: p}
}

// key returns the physical object key for a logical file path.
func (p pathPrefixer) key(path string) string {
	return p.prefix + strings.TrimLeft(path, "/")
}

// dirKey returns the physical key prefix covering everything under a
// logical directory path. The empty path covers the whole root. The
// trailing separator keeps "a/" from matching keys under "ab/".
func (p pathPrefixer) dirKey(path string) string {
	path = strings.Trim(path, "/")
	if path == "" {
		return p.prefix
	}
	return p.prefix + path + "/"
}

// strip converts a physical object key back to its logical path.
func (p pathPrefixer) strip(key string) string {
	return strings.TrimPrefix(key, p.prefix)
}
