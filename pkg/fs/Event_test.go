// ==================================================================================
//
// Work of the U.S. Department of the Navy, Naval Information Warfare Center Pacific.
// Released as open source under the MIT License.  See LICENSE file.
//
// ==================================================================================

package fs

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

type fieldsLogger struct {
	messages []string
	fields   []map[string]interface{}
}

func (l *fieldsLogger) Log(msg string, fields ...map[string]interface{}) error {
	l.messages = append(l.messages, msg)
	l.fields = append(l.fields, fields...)
	return nil
}

func TestLogReporter(t *testing.T) {
	logger := &fieldsLogger{}
	r := NewLogReporter(logger)

	r.Report(FileCopied{Source: "/src/a", Replica: "/dst/a", Written: 4})
	r.Report(ErrorOccurred{Op: "remove file", Path: "/dst/b", Err: errors.New("permission denied")})
	r.Report(SyncCompleted{Actions: 2, Next: 30 * time.Second})
	r.Report(SyncCompleted{Actions: 2})

	assert.Equal(t, []string{"Copied file", "Error", "Done synchronizing", "Done synchronizing"}, logger.messages)
	assert.Equal(t, []map[string]interface{}{
		{"src": "/src/a", "dst": "/dst/a", "written": int64(4)},
		{"op": "remove file", "path": "/dst/b", "err": "permission denied"},
		{"actions": 2, "errors": 0, "next_run_seconds": int64(30)},
		{"actions": 2, "errors": 0},
	}, logger.fields)
}

func TestActionString(t *testing.T) {
	assert.Equal(t, "copy_file a/b.txt", Action{Kind: CopyFile, Name: "a/b.txt"}.String())
	assert.Equal(t, "delete_directory old", Action{Kind: DeleteDirectory, Name: "old"}.String())
	assert.Equal(t, "unknown", ActionKind(42).String())
}
