package fsvisit

import "path/filepath"

// Kind tells files and directories apart.
type Kind int

const (
	KindFile      Kind = iota // Anything that is not a directory
	KindDirectory             // A directory
)

func (k Kind) String() string {
	switch k {
	case KindFile:
		return "file"
	case KindDirectory:
		return "directory"
	default:
		return "unknown"
	}
}

// Entry is one filesystem node discovered by the Walker.
type Entry struct {
	Path string // Absolute path
	Kind Kind
}

// Name returns the base name of the entry.
func (e Entry) Name() string {
	return filepath.Base(e.Path)
}

// Dir returns the directory containing the entry.
func (e Entry) Dir() string {
	return filepath.Dir(e.Path)
}

// IsDir reports whether the entry is a directory.
func (e Entry) IsDir() bool {
	return e.Kind == KindDirectory
}

func (e Entry) String() string {
	return e.Path
}
