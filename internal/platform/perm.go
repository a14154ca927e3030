package platform

import (
	"os"
	"runtime"
)

// DirPerm is the mode used for every directory the copier creates.
const DirPerm os.FileMode = 0755

// FilePerm is the fallback mode for files whose source mode is unknown.
const FilePerm os.FileMode = 0644

// Chmod sets file permissions. On Windows this is a no-op because Windows
// does not support Unix-style permission bits.
func Chmod(path string, mode os.FileMode) error {
	if runtime.GOOS == "windows" {
		return nil
	}
	return os.Chmod(path, mode)
}
