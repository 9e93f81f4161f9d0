// ==================================================================================
//
// Work of the U.S. Department of the Navy, Naval Information Warfare Center Pacific.
// Released as open source under the MIT License.  See LICENSE file.
//
// ==================================================================================

package lfs

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/navwar/gomirror/pkg/fs"
)

func writeFile(t *testing.T, base afero.Fs, name string, content string, modTime time.Time) {
	t.Helper()
	require.NoError(t, afero.WriteFile(base, name, []byte(content), 0644))
	require.NoError(t, base.Chtimes(name, modTime, modTime))
}

func TestLocalFileSystemWalk(t *testing.T) {
	ctx := context.Background()
	base := afero.NewMemMapFs()
	modTime := time.Date(2024, time.January, 2, 3, 4, 5, 0, time.UTC)
	require.NoError(t, base.MkdirAll("/root/b/d", 0755))
	writeFile(t, base, "/root/b/c.txt", "c", modTime)
	writeFile(t, base, "/root/a.txt", "aa", modTime)
	writeFile(t, base, "/root/b/d/e.txt", "e", modTime)
	writeFile(t, base, "/other/x.txt", "x", modTime)

	lfs := NewFileSystem(base, "/root")

	names := []string{}
	err := lfs.Walk(ctx, ".", func(name string, entry *fs.Entry, err error) error {
		require.NoError(t, err)
		assert.Equal(t, name, entry.Path())
		if !entry.IsDir() {
			assert.True(t, modTime.Equal(entry.ModTime()))
		}
		names = append(names, name)
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"a.txt", "b", "b/c.txt", "b/d", "b/d/e.txt"}, names)
}

func TestLocalFileSystemWalkSkipDir(t *testing.T) {
	ctx := context.Background()
	base := afero.NewMemMapFs()
	require.NoError(t, base.MkdirAll("/root/a/b", 0755))
	require.NoError(t, base.MkdirAll("/root/c", 0755))

	lfs := NewFileSystem(base, "/root")

	names := []string{}
	err := lfs.Walk(ctx, ".", func(name string, entry *fs.Entry, err error) error {
		names = append(names, name)
		if name == "a" {
			return fs.SkipDir
		}
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "c"}, names)
}

func TestLocalFileSystemWalkSkipDirWrapped(t *testing.T) {
	ctx := context.Background()
	base := afero.NewMemMapFs()
	writeFile(t, base, "/root/a.txt", "a", time.Now())
	writeFile(t, base, "/root/b.txt", "b", time.Now())

	lfs := NewFileSystem(base, "/root")

	names := []string{}
	err := lfs.Walk(ctx, ".", func(name string, entry *fs.Entry, err error) error {
		names = append(names, name)
		return fmt.Errorf("stop at %q: %w", name, fs.SkipDir)
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"a.txt"}, names)
}

func TestLocalFileSystemRename(t *testing.T) {
	ctx := context.Background()
	base := afero.NewMemMapFs()
	modTime := time.Date(2024, time.January, 2, 3, 4, 5, 600, time.UTC)
	writeFile(t, base, "/root/.a.txt.tmp", "new", modTime)
	writeFile(t, base, "/root/a.txt", "old", time.Now())

	lfs := NewFileSystem(base, "/root")
	require.NoError(t, lfs.Rename(ctx, ".a.txt.tmp", "a.txt"))

	b, err := afero.ReadFile(base, "/root/a.txt")
	require.NoError(t, err)
	assert.Equal(t, "new", string(b))
	fi, err := lfs.Stat(ctx, "a.txt")
	require.NoError(t, err)
	assert.True(t, modTime.Equal(fi.ModTime()))
	_, err = lfs.Stat(ctx, ".a.txt.tmp")
	assert.True(t, lfs.IsNotExist(err))

	assert.Error(t, NewReadOnlyFileSystem(base, "/root").Rename(ctx, "a.txt", "b.txt"))
}

func TestLocalFileSystemWalkCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	base := afero.NewMemMapFs()
	require.NoError(t, base.MkdirAll("/root/a", 0755))

	lfs := NewFileSystem(base, "/root")

	err := lfs.Walk(ctx, ".", func(name string, entry *fs.Entry, err error) error {
		t.Fatalf("unexpected call for %q", name)
		return nil
	})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestLocalFileSystemIsNotExist(t *testing.T) {
	ctx := context.Background()
	lfs := NewFileSystem(afero.NewMemMapFs(), "/missing")

	_, err := lfs.Stat(ctx, ".")
	require.Error(t, err)
	assert.True(t, lfs.IsNotExist(err))

	_, err = lfs.Open(ctx, "a.txt")
	require.Error(t, err)
	assert.True(t, lfs.IsNotExist(err))
}

func TestLocalFileSystemReadOnly(t *testing.T) {
	ctx := context.Background()
	base := afero.NewMemMapFs()
	writeFile(t, base, "/root/a.txt", "a", time.Now())

	lfs := NewReadOnlyFileSystem(base, "/root")

	fi, err := lfs.Stat(ctx, "a.txt")
	require.NoError(t, err)
	assert.Equal(t, int64(1), fi.Size())
	assert.Equal(t, "a.txt", fi.Name())

	assert.Error(t, lfs.Remove(ctx, "a.txt"))
	assert.Error(t, lfs.MkdirAll(ctx, "b", 0755))
	_, err = lfs.OpenFile(ctx, "c.txt", os.O_CREATE|os.O_WRONLY, 0644)
	assert.Error(t, err)
}

func TestLocalFileSystemJoin(t *testing.T) {
	lfs := NewFileSystem(afero.NewMemMapFs(), "/root")
	assert.Equal(t, "/root", lfs.Join(lfs.Root(), "."))
	assert.Equal(t, "/root/a/b", lfs.Join(lfs.Root(), "a/b"))
}
