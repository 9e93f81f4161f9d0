// ==================================================================================
//
// Work of the U.S. Department of the Navy, Naval Information Warfare Center Pacific.
// Released as open source under the MIT License.  See LICENSE file.
//
// ==================================================================================

package lfs

import (
	"fmt"
)

// Check returns an error if the source and replica are the same directory or one contains the other.
// Both paths must be absolute.
func Check(source string, replica string) error {
	if source == replica {
		return fmt.Errorf("source and replica must be different: %q", source)
	}
	sourceDirectories := Split(source)
	replicaDirectories := Split(replica)
	i := 0
	for ; i < len(sourceDirectories) && i < len(replicaDirectories); i++ {
		if sourceDirectories[i] != replicaDirectories[i] {
			return nil
		}
	}
	if len(sourceDirectories)-i > 0 {
		return fmt.Errorf("cycle error: replica %q is a parent of source %q", replica, source)
	} else if len(replicaDirectories)-i > 0 {
		return fmt.Errorf("cycle error: source %q is a parent of replica %q", source, replica)
	}
	return fmt.Errorf("source %q and replica %q refer to the same directory", source, replica)
}
