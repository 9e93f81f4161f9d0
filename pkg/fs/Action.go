// ==================================================================================
//
// Work of the U.S. Department of the Navy, Naval Information Warfare Center Pacific.
// Released as open source under the MIT License.  See LICENSE file.
//
// ==================================================================================

package fs

type ActionKind int

const (
	CreateDirectory ActionKind = iota
	CopyFile
	DeleteFile
	DeleteDirectory
)

func (k ActionKind) String() string {
	switch k {
	case CreateDirectory:
		return "create_directory"
	case CopyFile:
		return "copy_file"
	case DeleteFile:
		return "delete_file"
	case DeleteDirectory:
		return "delete_directory"
	}
	return "unknown"
}

// Action is one mutation applied to the replica.
// Name is relative to the root of the replica, and for CopyFile also to the root of the source.
type Action struct {
	Kind ActionKind
	Name string
}

func (a Action) String() string {
	return a.Kind.String() + " " + a.Name
}
