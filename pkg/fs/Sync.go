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
	"time"

	"go.uber.org/multierr"
)

const (
	DefaultTimestampPrecision = time.Duration(0) // compare timestamps exactly
)

type syncer struct {
	source     FileSystem
	replica    FileSystem
	changed    Comparator
	exclusions *Exclusions
	reporter   Reporter
	output     *SyncOutput
}

func (s *syncer) path(fileSystem FileSystem, name string) string {
	return fileSystem.Join(fileSystem.Root(), name)
}

func (s *syncer) applied(action Action, event Event) {
	s.output.Actions = append(s.output.Actions, action)
	report(s.reporter, event)
}

func (s *syncer) failed(op string, fileSystem FileSystem, name string, err error) {
	p := s.path(fileSystem, name)
	s.output.Err = multierr.Append(s.output.Err, fmt.Errorf("error with %s of %q: %w", op, p, err))
	report(s.reporter, ErrorOccurred{Op: op, Path: p, Err: err})
}

func (s *syncer) createDirectory(ctx context.Context, name string) bool {
	if err := s.replica.MkdirAll(ctx, name, 0755); err != nil {
		s.failed("create directory", s.replica, name, err)
		return false
	}
	s.applied(Action{Kind: CreateDirectory, Name: name}, DirectoryCreated{Path: s.path(s.replica, name)})
	return true
}

func (s *syncer) copyFile(ctx context.Context, name string) bool {
	written, err := Copy(ctx, &CopyInput{
		SourceName:            name,
		SourceFileSystem:      s.source,
		DestinationName:       name,
		DestinationFileSystem: s.replica,
		MakeParents:           true,
	})
	if err != nil {
		s.failed("copy", s.replica, name, err)
		return false
	}
	s.applied(Action{Kind: CopyFile, Name: name}, FileCopied{
		Source:  s.path(s.source, name),
		Replica: s.path(s.replica, name),
		Written: written,
	})
	return true
}

func (s *syncer) deleteFile(ctx context.Context, name string) bool {
	if err := s.replica.Remove(ctx, name); err != nil {
		s.failed("remove file", s.replica, name, err)
		return false
	}
	s.applied(Action{Kind: DeleteFile, Name: name}, FileRemoved{Path: s.path(s.replica, name)})
	return true
}

// deleteDirectory removes the directory and everything beneath it as a single action.
func (s *syncer) deleteDirectory(ctx context.Context, name string) bool {
	if err := s.replica.RemoveAll(ctx, name); err != nil {
		s.failed("remove directory", s.replica, name, err)
		return false
	}
	s.applied(Action{Kind: DeleteDirectory, Name: name}, DirectoryRemoved{Path: s.path(s.replica, name)})
	return true
}

// Sync converges the replica to the source.
// The source is walked first to create directories and copy files, then the replica is walked to remove
// what the source no longer has.  Errors with individual entries are reported and collected in the output,
// but do not stop the run.
func Sync(ctx context.Context, input *SyncInput) (*SyncOutput, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	sourceFileInfo, err := input.SourceFileSystem.Stat(ctx, ".")
	if err != nil {
		if input.SourceFileSystem.IsNotExist(err) {
			return nil, fmt.Errorf("source does not exist %q: %w", input.SourceFileSystem.Root(), err)
		}
		return nil, fmt.Errorf("error stating source %q: %w", input.SourceFileSystem.Root(), err)
	}
	if !sourceFileInfo.IsDir() {
		return nil, fmt.Errorf("source is not a directory: %q", input.SourceFileSystem.Root())
	}

	changed := input.Comparator
	if changed == nil {
		changed = ModTimeComparator(DefaultTimestampPrecision)
	}

	s := &syncer{
		source:     input.SourceFileSystem,
		replica:    input.ReplicaFileSystem,
		changed:    changed,
		exclusions: input.Exclusions,
		reporter:   input.Reporter,
		output:     &SyncOutput{},
	}

	if err := s.propagate(ctx); err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return s.output, ctxErr
		}
		// without a readable source, pruning would empty the replica
		return s.output, fmt.Errorf(
			"error propagating source %q to replica %q: %w",
			input.SourceFileSystem.Root(),
			input.ReplicaFileSystem.Root(),
			err,
		)
	}

	if err := s.prune(ctx); err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return s.output, ctxErr
		}
		s.failed("walk", s.replica, ".", err)
	}

	return s.output, nil
}
