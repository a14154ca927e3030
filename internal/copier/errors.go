package copier

import "fmt"

// CopyError reports an I/O failure while copying, with the paths involved.
type CopyError struct {
	Op   string // "read", "write", "mkdir", "readdir", "remove", "copy"
	Src  string
	Dest string
	Err  error
}

func (e *CopyError) Error() string {
	return fmt.Sprintf("copying %s to %s: %s: %v", e.Src, e.Dest, e.Op, e.Err)
}

func (e *CopyError) Unwrap() error { return e.Err }

// AlreadyExistsError is returned when a destination directory is present and
// the copy was not asked to replace it.
type AlreadyExistsError struct {
	Path string
}

func (e *AlreadyExistsError) Error() string {
	return fmt.Sprintf("directory %s already exists; use force to overwrite", e.Path)
}
