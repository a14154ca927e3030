package platform

import (
	"errors"
	"io/fs"
	"os"
)

// Kind classifies what a path refers to on disk.
type Kind int

const (
	// KindMissing means nothing exists at the path.
	KindMissing Kind = iota
	// KindFile is a regular file.
	KindFile
	// KindDir is a directory.
	KindDir
	// KindOther is anything else: device, socket, named pipe.
	KindOther
	// KindInaccessible means the path could not be stat'ed for a reason
	// other than not existing (permission denied, I/O error).
	KindInaccessible
)

// String returns a human-readable name for the kind.
func (k Kind) String() string {
	switch k {
	case KindMissing:
		return "missing"
	case KindFile:
		return "file"
	case KindDir:
		return "directory"
	case KindOther:
		return "special file"
	case KindInaccessible:
		return "inaccessible"
	default:
		return "unknown"
	}
}

// Probe stats path and reports its kind. The returned error is non-nil only
// for KindInaccessible and carries the underlying stat failure.
func Probe(path string) (Kind, error) {
	info, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return KindMissing, nil
		}
		return KindInaccessible, err
	}
	switch {
	case info.Mode().IsRegular():
		return KindFile, nil
	case info.IsDir():
		return KindDir, nil
	default:
		return KindOther, nil
	}
}

// FileExists reports whether path exists and is a regular file.
// Every stat failure, including permission errors, reads as false.
func FileExists(path string) bool {
	kind, _ := Probe(path)
	return kind == KindFile
}

// DirectoryExists reports whether path exists and is a directory.
// Every stat failure, including permission errors, reads as false.
func DirectoryExists(path string) bool {
	kind, _ := Probe(path)
	return kind == KindDir
}
