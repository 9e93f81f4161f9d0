// ==================================================================================
//
// Work of the U.S. Department of the Navy, Naval Information Warfare Center Pacific.
// Released as open source under the MIT License.  See LICENSE file.
//
// ==================================================================================

package lfs

import (
	"context"
	"errors"
	iofs "io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/afero"

	"github.com/navwar/gomirror/pkg/fs"
)

// LocalFileSystem is a directory tree rooted at a base path of an afero filesystem.
type LocalFileSystem struct {
	root string
	fs   afero.Fs
}

func (lfs *LocalFileSystem) Chtimes(ctx context.Context, name string, atime time.Time, mtime time.Time) error {
	return lfs.fs.Chtimes(name, atime, mtime)
}

func (lfs *LocalFileSystem) Dir(name string) string {
	return Dir(name)
}

// IsNotExist unwraps the whole chain, since the base path filesystem wraps errors twice.
func (lfs *LocalFileSystem) IsNotExist(err error) bool {
	return errors.Is(err, iofs.ErrNotExist)
}

func (lfs *LocalFileSystem) Join(name ...string) string {
	return filepath.Join(name...)
}

func (lfs *LocalFileSystem) MkdirAll(ctx context.Context, name string, mode os.FileMode) error {
	return lfs.fs.MkdirAll(name, mode)
}

func (lfs *LocalFileSystem) Open(ctx context.Context, name string) (fs.File, error) {
	f, err := lfs.fs.Open(name)
	if err != nil {
		return nil, err
	}
	return f, nil
}

func (lfs *LocalFileSystem) OpenFile(ctx context.Context, name string, flag int, perm os.FileMode) (fs.File, error) {
	f, err := lfs.fs.OpenFile(name, flag, perm)
	if err != nil {
		return nil, err
	}
	return f, nil
}

func (lfs *LocalFileSystem) Remove(ctx context.Context, name string) error {
	return lfs.fs.Remove(name)
}

func (lfs *LocalFileSystem) RemoveAll(ctx context.Context, name string) error {
	return lfs.fs.RemoveAll(name)
}

func (lfs *LocalFileSystem) Rename(ctx context.Context, oldname string, newname string) error {
	return lfs.fs.Rename(oldname, newname)
}

func (lfs *LocalFileSystem) Root() string {
	return lfs.root
}

func (lfs *LocalFileSystem) Stat(ctx context.Context, name string) (fs.FileInfo, error) {
	fi, err := lfs.fs.Stat(name)
	if err != nil {
		return nil, err
	}
	return fs.NewEntry(filepath.Clean(name), fi.IsDir(), fi.ModTime(), fi.Size()), nil
}

// Walk walks the tree at name in lexical order, parents before children.
// Names passed to fn are relative to name.  Entries other than directories and regular files are skipped.
func (lfs *LocalFileSystem) Walk(ctx context.Context, name string, fn fs.WalkFunc) error {
	err := afero.Walk(lfs.fs, name, func(p string, info os.FileInfo, err error) error {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		relpath, relErr := filepath.Rel(name, p)
		if relErr != nil {
			return relErr
		}
		if err != nil {
			return fn(relpath, nil, err)
		}
		if relpath == "." {
			return nil
		}
		if !(info.IsDir() || info.Mode().IsRegular()) {
			return nil
		}
		return fn(relpath, fs.NewEntry(relpath, info.IsDir(), info.ModTime(), info.Size()), nil)
	})
	if errors.Is(err, fs.SkipDir) {
		return nil
	}
	return err
}

// NewFileSystem returns a filesystem rooted at rootPath within base.
func NewFileSystem(base afero.Fs, rootPath string) *LocalFileSystem {
	return &LocalFileSystem{
		root: rootPath,
		fs:   afero.NewBasePathFs(base, rootPath),
	}
}

// NewReadOnlyFileSystem returns a filesystem rooted at rootPath within base that refuses all writes.
func NewReadOnlyFileSystem(base afero.Fs, rootPath string) *LocalFileSystem {
	return NewFileSystem(afero.NewReadOnlyFs(base), rootPath)
}

func NewLocalFileSystem(rootPath string) *LocalFileSystem {
	return NewFileSystem(afero.NewOsFs(), rootPath)
}

func NewReadOnlyLocalSystem(rootPath string) *LocalFileSystem {
	return NewReadOnlyFileSystem(afero.NewOsFs(), rootPath)
}
