// ==================================================================================
//
// Work of the U.S. Department of the Navy, Naval Information Warfare Center Pacific.
// Released as open source under the MIT License.  See LICENSE file.
//
// ==================================================================================

package fs

import (
	"time"
)

func EqualTimestamp(a time.Time, b time.Time, d time.Duration) bool {
	return a.Truncate(d).Equal(b.Truncate(d))
}

// NewerTimestamp returns true if a is strictly after b once both are truncated to d.
// A zero d compares the timestamps exactly.
func NewerTimestamp(a time.Time, b time.Time, d time.Duration) bool {
	return a.Truncate(d).After(b.Truncate(d))
}
