// ==================================================================================
//
// Work of the U.S. Department of the Navy, Naval Information Warfare Center Pacific.
// Released as open source under the MIT License.  See LICENSE file.
//
// ==================================================================================

package fs

import (
	"go.uber.org/multierr"
)

// SyncOutput is the result of one run.
// Actions holds the actions applied in order, and Err combines the errors of the actions that failed.
type SyncOutput struct {
	Actions []Action
	Err     error
}

func (o *SyncOutput) Errors() []error {
	return multierr.Errors(o.Err)
}
