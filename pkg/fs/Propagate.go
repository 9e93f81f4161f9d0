// ==================================================================================
//
// Work of the U.S. Department of the Navy, Naval Information Warfare Center Pacific.
// Released as open source under the MIT License.  See LICENSE file.
//
// ==================================================================================

package fs

import (
	"context"
)

func (s *syncer) propagate(ctx context.Context) error {
	if _, err := s.replica.Stat(ctx, "."); err != nil {
		if s.replica.IsNotExist(err) {
			s.createDirectory(ctx, ".")
		} else {
			s.failed("stat", s.replica, ".", err)
		}
	}

	return Walk(ctx, s.source, ".", false, func(name string, entry *Entry, err error) error {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		if err != nil {
			s.failed("walk", s.source, name, err)
			return SkipDir
		}
		if s.exclusions.Match(name) {
			if entry.IsDir() {
				return SkipDir
			}
			return nil
		}
		if entry.IsDir() {
			s.propagateDirectory(ctx, name)
		} else {
			s.propagateFile(ctx, name, entry)
		}
		return nil
	})
}

func (s *syncer) propagateDirectory(ctx context.Context, name string) {
	replicaFileInfo, err := s.replica.Stat(ctx, name)
	if err != nil {
		if !s.replica.IsNotExist(err) {
			s.failed("stat", s.replica, name, err)
			return
		}
		s.createDirectory(ctx, name)
		return
	}
	// a file stands where the source has a directory
	if !replicaFileInfo.IsDir() {
		if s.deleteFile(ctx, name) {
			s.createDirectory(ctx, name)
		}
	}
}

func (s *syncer) propagateFile(ctx context.Context, name string, entry *Entry) {
	replicaFileInfo, err := s.replica.Stat(ctx, name)
	if err != nil {
		if !s.replica.IsNotExist(err) {
			s.failed("stat", s.replica, name, err)
			return
		}
		s.copyFile(ctx, name)
		return
	}
	// a directory stands where the source has a file
	if replicaFileInfo.IsDir() {
		if s.deleteDirectory(ctx, name) {
			s.copyFile(ctx, name)
		}
		return
	}
	if s.changed(entry, replicaFileInfo) {
		s.copyFile(ctx, name)
	}
}
