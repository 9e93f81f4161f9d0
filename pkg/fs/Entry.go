// ==================================================================================
//
// Work of the U.S. Department of the Navy, Naval Information Warfare Center Pacific.
// Released as open source under the MIT License.  See LICENSE file.
//
// ==================================================================================

package fs

import (
	"encoding/json"
	"path/filepath"
	"time"
)

// Entry is a directory or file found by the tree walker.
// The path is relative to the root of the walk.
type Entry struct {
	path    string
	dir     bool
	modTime time.Time
	size    int64
}

func (e *Entry) IsDir() bool {
	return e.dir
}

// Name returns the last element of the path.
func (e *Entry) Name() string {
	return filepath.Base(e.path)
}

// Path returns the path relative to the walked root.
func (e *Entry) Path() string {
	return e.path
}

func (e *Entry) ModTime() time.Time {
	return e.modTime
}

func (e *Entry) Size() int64 {
	return e.size
}

func (e *Entry) String() string {
	return e.path
}

func (e *Entry) MarshalJSON() ([]byte, error) {
	return json.Marshal(map[string]any{
		"dir":     e.dir,
		"modTime": e.modTime,
		"path":    e.path,
		"size":    e.size,
	})
}

func NewEntry(path string, dir bool, modTime time.Time, size int64) *Entry {
	return &Entry{
		path:    path,
		dir:     dir,
		modTime: modTime,
		size:    size,
	}
}
