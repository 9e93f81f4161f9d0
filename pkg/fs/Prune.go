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

func (s *syncer) prune(ctx context.Context) error {
	return Walk(ctx, s.replica, ".", true, func(name string, entry *Entry, err error) error {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		if err != nil {
			s.failed("walk", s.replica, name, err)
			return SkipDir
		}
		if s.exclusions.Match(name) {
			if entry.IsDir() {
				return SkipDir
			}
			return nil
		}
		_, err = s.source.Stat(ctx, name)
		if err == nil {
			return nil
		}
		if !s.source.IsNotExist(err) {
			s.failed("stat", s.source, name, err)
			if entry.IsDir() {
				return SkipDir
			}
			return nil
		}
		if entry.IsDir() {
			// removed as a whole, so the walk must not descend into it
			s.deleteDirectory(ctx, name)
			return SkipDir
		}
		s.deleteFile(ctx, name)
		return nil
	})
}
