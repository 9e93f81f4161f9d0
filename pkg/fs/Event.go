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

// Event is something worth reporting during a run.
type Event interface {
	Message() string
	Fields() map[string]interface{}
}

type SyncStarted struct {
	Source  string
	Replica string
}

func (e SyncStarted) Message() string {
	return "Synchronizing"
}

func (e SyncStarted) Fields() map[string]interface{} {
	return map[string]interface{}{
		"src": e.Source,
		"dst": e.Replica,
	}
}

// SyncCompleted is reported after both passes finish.
// Next is zero when no further run is scheduled.
type SyncCompleted struct {
	Actions int
	Errors  int
	Next    time.Duration
}

func (e SyncCompleted) Message() string {
	return "Done synchronizing"
}

func (e SyncCompleted) Fields() map[string]interface{} {
	fields := map[string]interface{}{
		"actions": e.Actions,
		"errors":  e.Errors,
	}
	if e.Next > 0 {
		fields["next_run_seconds"] = int64(e.Next / time.Second)
	}
	return fields
}

type SyncStopped struct{}

func (e SyncStopped) Message() string {
	return "Synchronization stopped"
}

func (e SyncStopped) Fields() map[string]interface{} {
	return map[string]interface{}{}
}

type DirectoryCreated struct {
	Path string
}

func (e DirectoryCreated) Message() string {
	return "Created directory"
}

func (e DirectoryCreated) Fields() map[string]interface{} {
	return map[string]interface{}{
		"path": e.Path,
	}
}

type FileCopied struct {
	Source  string
	Replica string
	Written int64
}

func (e FileCopied) Message() string {
	return "Copied file"
}

func (e FileCopied) Fields() map[string]interface{} {
	return map[string]interface{}{
		"src":     e.Source,
		"dst":     e.Replica,
		"written": e.Written,
	}
}

type FileRemoved struct {
	Path string
}

func (e FileRemoved) Message() string {
	return "Removed file"
}

func (e FileRemoved) Fields() map[string]interface{} {
	return map[string]interface{}{
		"path": e.Path,
	}
}

type DirectoryRemoved struct {
	Path string
}

func (e DirectoryRemoved) Message() string {
	return "Removed directory"
}

func (e DirectoryRemoved) Fields() map[string]interface{} {
	return map[string]interface{}{
		"path": e.Path,
	}
}

// ErrorOccurred is reported when a single operation fails.
// The run continues with the remaining entries.
type ErrorOccurred struct {
	Op   string
	Path string
	Err  error
}

func (e ErrorOccurred) Message() string {
	return "Error"
}

func (e ErrorOccurred) Fields() map[string]interface{} {
	fields := map[string]interface{}{
		"op":   e.Op,
		"path": e.Path,
	}
	if e.Err != nil {
		fields["err"] = e.Err.Error()
	}
	return fields
}
