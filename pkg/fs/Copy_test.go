// ==================================================================================
//
// Work of the U.S. Department of the Navy, Naval Information Warfare Center Pacific.
// Released as open source under the MIT License.  See LICENSE file.
//
// ==================================================================================

package fs_test

import (
	"context"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/navwar/gomirror/pkg/fs"
	"github.com/navwar/gomirror/pkg/lfs"
)

func TestCopy(t *testing.T) {
	ctx := context.Background()
	base := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(base, "/source/a.txt", []byte("hello"), 0644))
	require.NoError(t, base.Chtimes("/source/a.txt", t1, t1))
	require.NoError(t, base.MkdirAll("/replica", 0755))

	input := &fs.CopyInput{
		SourceName:            "a.txt",
		SourceFileSystem:      lfs.NewReadOnlyFileSystem(base, "/source"),
		DestinationName:       "x/y/a.txt",
		DestinationFileSystem: lfs.NewFileSystem(base, "/replica"),
	}

	_, err := fs.Copy(ctx, input)
	assert.Error(t, err)

	input.MakeParents = true
	written, err := fs.Copy(ctx, input)
	require.NoError(t, err)
	assert.Equal(t, int64(5), written)

	b, err := afero.ReadFile(base, "/replica/x/y/a.txt")
	require.NoError(t, err)
	assert.Equal(t, "hello", string(b))

	fi, err := base.Stat("/replica/x/y/a.txt")
	require.NoError(t, err)
	assert.True(t, t1.Equal(fi.ModTime()))
}

func TestCopyMissingSource(t *testing.T) {
	ctx := context.Background()
	base := afero.NewMemMapFs()
	require.NoError(t, base.MkdirAll("/source", 0755))

	_, err := fs.Copy(ctx, &fs.CopyInput{
		SourceName:            "missing.txt",
		SourceFileSystem:      lfs.NewFileSystem(base, "/source"),
		DestinationName:       "missing.txt",
		DestinationFileSystem: lfs.NewFileSystem(base, "/replica"),
		MakeParents:           true,
	})
	assert.Error(t, err)
	_, err = base.Stat("/replica/missing.txt")
	assert.Error(t, err)
}

func TestCopyFailureKeepsDestination(t *testing.T) {
	ctx := context.Background()
	base := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(base, "/source/a.txt", []byte("hello"), 0644))
	require.NoError(t, base.Chtimes("/source/a.txt", t2, t2))
	require.NoError(t, afero.WriteFile(base, "/replica/a.txt", []byte("old"), 0644))
	require.NoError(t, base.Chtimes("/replica/a.txt", t1, t1))

	written, err := fs.Copy(ctx, &fs.CopyInput{
		SourceName:            "a.txt",
		SourceFileSystem:      lfs.NewReadOnlyFileSystem(base, "/source"),
		DestinationName:       "a.txt",
		DestinationFileSystem: lfs.NewFileSystem(&fullFs{Fs: base}, "/replica"),
		MakeParents:           true,
	})
	assert.ErrorIs(t, err, errNoSpace)
	assert.Equal(t, int64(1), written)

	b, err := afero.ReadFile(base, "/replica/a.txt")
	require.NoError(t, err)
	assert.Equal(t, "old", string(b))

	fi, err := base.Stat("/replica/a.txt")
	require.NoError(t, err)
	assert.True(t, t1.Equal(fi.ModTime()))

	names, err := afero.ReadDir(base, "/replica")
	require.NoError(t, err)
	require.Len(t, names, 1)
	assert.Equal(t, "a.txt", names[0].Name())
}
