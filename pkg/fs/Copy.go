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
	"io"
	"os"
	"path/filepath"
)

// Copy copies the source file over the destination file and preserves the source modification time.
// The destination is replaced by rename, so it is either the previous file or a complete copy.
func Copy(ctx context.Context, input *CopyInput) (int64, error) {
	sourceFileInfo, err := input.SourceFileSystem.Stat(ctx, input.SourceName)
	if err != nil {
		return 0, fmt.Errorf("error stating source file at %q: %w", input.SourceName, err)
	}

	// open source file
	sourceFile, err := input.SourceFileSystem.Open(ctx, input.SourceName)
	if err != nil {
		return 0, fmt.Errorf("error opening source file at %q: %w", input.SourceName, err)
	}

	// check parent directory and create it if allowed
	parent := input.DestinationFileSystem.Dir(input.DestinationName)
	if _, err := input.DestinationFileSystem.Stat(ctx, parent); err != nil {
		if !input.DestinationFileSystem.IsNotExist(err) {
			_ = sourceFile.Close() // silently close source file
			return 0, fmt.Errorf("error stating destination parent %q: %w", parent, err)
		}
		if !input.MakeParents {
			_ = sourceFile.Close() // silently close source file
			return 0, fmt.Errorf(
				"parent directory for destination %q does not exist and parents parameter is false",
				input.DestinationName,
			)
		}
		if err := input.DestinationFileSystem.MkdirAll(ctx, parent, 0755); err != nil {
			_ = sourceFile.Close() // silently close source file
			return 0, fmt.Errorf("error creating parent directories for %q: %w", input.DestinationName, err)
		}
	}

	// write to a temporary sibling and rename it over the destination
	temporaryName := input.DestinationFileSystem.Join(parent, "."+filepath.Base(input.DestinationName)+".gomirror")

	temporaryFile, err := input.DestinationFileSystem.OpenFile(ctx, temporaryName, os.O_RDWR|os.O_CREATE|os.O_TRUNC, 0666)
	if err != nil {
		_ = sourceFile.Close() // silently close source file
		return 0, fmt.Errorf("error creating temporary file at %q: %w", temporaryName, err)
	}

	// removeTemporaryFile discards the partial copy
	removeTemporaryFile := func() {
		_ = input.DestinationFileSystem.Remove(ctx, temporaryName)
	}

	// copy bytes from source to temporary file
	written, err := io.Copy(temporaryFile, sourceFile)
	if err != nil {
		_ = sourceFile.Close()    // silently close source file
		_ = temporaryFile.Close() // silently close temporary file
		removeTemporaryFile()
		return written, fmt.Errorf("error copying from %q to %q: %w", input.SourceName, input.DestinationName, err)
	}

	err = sourceFile.Close()
	if err != nil {
		_ = temporaryFile.Close() // silently close temporary file
		removeTemporaryFile()
		return written, fmt.Errorf("error closing source file after copying: %w", err)
	}

	err = temporaryFile.Close()
	if err != nil {
		removeTemporaryFile()
		return written, fmt.Errorf("error closing temporary file after copying: %w", err)
	}

	// Preserve Modification time
	modTime := sourceFileInfo.ModTime()
	err = input.DestinationFileSystem.Chtimes(ctx, temporaryName, modTime, modTime)
	if err != nil {
		removeTemporaryFile()
		return written, fmt.Errorf("error changing timestamps for destination after copying: %w", err)
	}

	err = input.DestinationFileSystem.Rename(ctx, temporaryName, input.DestinationName)
	if err != nil {
		removeTemporaryFile()
		return written, fmt.Errorf("error renaming %q to %q: %w", temporaryName, input.DestinationName, err)
	}

	return written, nil
}
