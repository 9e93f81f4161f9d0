// ==================================================================================
//
// Work of the U.S. Department of the Navy, Naval Information Warfare Center Pacific.
// Released as open source under the MIT License.  See LICENSE file.
//
// ==================================================================================

package fs

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestModTimeComparator(t *testing.T) {
	now := time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC)
	changed := ModTimeComparator(time.Second)

	assert.True(t, changed(NewEntry("a", false, now.Add(time.Second), 1), NewEntry("a", false, now, 1)))
	assert.False(t, changed(NewEntry("a", false, now, 1), NewEntry("a", false, now, 2)))
	assert.False(t, changed(NewEntry("a", false, now, 1), NewEntry("a", false, now.Add(time.Second), 1)))
	// within the same second
	assert.False(t, changed(NewEntry("a", false, now.Add(900*time.Millisecond), 1), NewEntry("a", false, now, 1)))
}

func TestModTimeComparatorExact(t *testing.T) {
	now := time.Date(2024, time.January, 1, 10, 0, 0, 200_000_000, time.UTC)
	changed := ModTimeComparator(DefaultTimestampPrecision)

	assert.True(t, changed(NewEntry("a", false, now.Add(600*time.Millisecond), 1), NewEntry("a", false, now, 1)))
	assert.True(t, changed(NewEntry("a", false, now.Add(time.Nanosecond), 1), NewEntry("a", false, now, 1)))
	assert.False(t, changed(NewEntry("a", false, now, 1), NewEntry("a", false, now, 1)))
	assert.False(t, changed(NewEntry("a", false, now, 1), NewEntry("a", false, now.Add(time.Nanosecond), 1)))
}

func TestSizeModTimeComparator(t *testing.T) {
	now := time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC)
	changed := SizeModTimeComparator(time.Second)

	assert.True(t, changed(NewEntry("a", false, now, 1), NewEntry("a", false, now, 2)))
	assert.True(t, changed(NewEntry("a", false, now.Add(time.Second), 1), NewEntry("a", false, now, 1)))
	assert.False(t, changed(NewEntry("a", false, now, 1), NewEntry("a", false, now, 1)))
}

func TestParseComparator(t *testing.T) {
	c, err := ParseComparator(CompareModTime, time.Second)
	require.NoError(t, err)
	assert.NotNil(t, c)

	c, err = ParseComparator(CompareSizeModTime, time.Second)
	require.NoError(t, err)
	assert.NotNil(t, c)

	_, err = ParseComparator("sha256", time.Second)
	assert.Error(t, err)
}

func TestTimestamps(t *testing.T) {
	a := time.Date(2024, time.January, 1, 0, 0, 1, 500_000_000, time.UTC)
	b := time.Date(2024, time.January, 1, 0, 0, 1, 0, time.UTC)

	assert.True(t, EqualTimestamp(a, b, time.Second))
	assert.False(t, EqualTimestamp(a, b, time.Millisecond))
	assert.False(t, NewerTimestamp(a, b, time.Second))
	assert.True(t, NewerTimestamp(a, b, time.Millisecond))
	assert.True(t, NewerTimestamp(a, b, 0))
	assert.False(t, NewerTimestamp(b, a, 0))
}
