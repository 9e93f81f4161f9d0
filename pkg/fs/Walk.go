// ==================================================================================
//
// Work of the U.S. Department of the Navy, Naval Information Warfare Center Pacific.
// Released as open source under the MIT License.  See LICENSE file.
//
// ==================================================================================

package fs

import (
	"context"
	"fmt"
	"path/filepath"
)

// SkipDir is returned by a WalkFunc to skip the contents of the current directory.
var SkipDir = filepath.SkipDir

// WalkFunc is called for every directory and file beneath the walked root, parents before children.
// If the walk cannot read a name, then entry is nil and err describes the failure.
type WalkFunc func(name string, entry *Entry, err error) error

// Walk enumerates the tree at root.
// If allowMissing is true and the root does not exist, then the tree is treated as empty.
func Walk(ctx context.Context, fileSystem FileSystem, root string, allowMissing bool, fn WalkFunc) error {
	fi, err := fileSystem.Stat(ctx, root)
	if err != nil {
		if fileSystem.IsNotExist(err) {
			if allowMissing {
				return nil
			}
			return fmt.Errorf("root does not exist %q: %w", root, err)
		}
		return fmt.Errorf("error stating root %q: %w", root, err)
	}
	if !fi.IsDir() {
		return fmt.Errorf("root is not a directory: %q", root)
	}
	return fileSystem.Walk(ctx, root, fn)
}
