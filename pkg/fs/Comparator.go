// ==================================================================================
//
// Work of the U.S. Department of the Navy, Naval Information Warfare Center Pacific.
// Released as open source under the MIT License.  See LICENSE file.
//
// ==================================================================================

package fs

import (
	"fmt"
	"time"
)

const (
	CompareModTime     = "mtime"
	CompareSizeModTime = "size-mtime"
)

// Comparator returns true if the source file should be copied over the replica file.
type Comparator func(source FileInfo, replica FileInfo) bool

// ModTimeComparator copies only when the source is strictly newer.
// Equal timestamps are treated as already synchronized.
func ModTimeComparator(precision time.Duration) Comparator {
	return func(source FileInfo, replica FileInfo) bool {
		return NewerTimestamp(source.ModTime(), replica.ModTime(), precision)
	}
}

// SizeModTimeComparator also copies when the sizes differ.
func SizeModTimeComparator(precision time.Duration) Comparator {
	return func(source FileInfo, replica FileInfo) bool {
		if source.Size() != replica.Size() {
			return true
		}
		return NewerTimestamp(source.ModTime(), replica.ModTime(), precision)
	}
}

func ParseComparator(name string, precision time.Duration) (Comparator, error) {
	switch name {
	case CompareModTime:
		return ModTimeComparator(precision), nil
	case CompareSizeModTime:
		return SizeModTimeComparator(precision), nil
	}
	return nil, fmt.Errorf("unknown comparator %q, expecting %q or %q", name, CompareModTime, CompareSizeModTime)
}
