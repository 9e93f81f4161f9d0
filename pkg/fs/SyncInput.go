// ==================================================================================
//
// Work of the U.S. Department of the Navy, Naval Information Warfare Center Pacific.
// Released as open source under the MIT License.  See LICENSE file.
//
// ==================================================================================

package fs

type SyncInput struct {
	SourceFileSystem  FileSystem
	ReplicaFileSystem FileSystem
	Comparator        Comparator // defaults to ModTimeComparator with exact timestamps
	Exclusions        *Exclusions
	Reporter          Reporter
}
