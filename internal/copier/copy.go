package copier

import (
	"errors"
	"os"
	"path/filepath"

	"github.com/droidpowers/droidpowers/internal/platform"
)

// Options controls overwrite behaviour. Force applies to destination
// directories, SkipExisting to destination files; they are independent.
type Options struct {
	// Force removes an existing destination directory before copying.
	Force bool
	// SkipExisting leaves an existing destination file untouched.
	SkipExisting bool
}

// CopyFile copies src to dest, creating dest's parent directories. When
// SkipExisting is set and dest is already a file, CopyFile does nothing.
// The destination is written with platform.FilePerm plus the source's
// execute bits, so templates read from a read-only location still produce
// writable copies.
func CopyFile(src, dest string, opts Options) error {
	if opts.SkipExisting && platform.FileExists(dest) {
		return nil
	}

	if err := os.MkdirAll(filepath.Dir(dest), platform.DirPerm); err != nil {
		return &CopyError{Op: "mkdir", Src: src, Dest: dest, Err: err}
	}

	data, err := os.ReadFile(src)
	if err != nil {
		return &CopyError{Op: "read", Src: src, Dest: dest, Err: err}
	}

	perm := platform.FilePerm
	if info, err := os.Stat(src); err == nil {
		perm |= info.Mode().Perm() & 0111
	}

	if err := os.WriteFile(dest, data, perm); err != nil {
		return &CopyError{Op: "write", Src: src, Dest: dest, Err: err}
	}

	// WriteFile only applies perm when it creates the file.
	if err := platform.Chmod(dest, perm); err != nil {
		return &CopyError{Op: "write", Src: src, Dest: dest, Err: err}
	}

	return nil
}

// CopyDirectory recursively copies src into dest. If dest is already a
// directory the copy fails with *AlreadyExistsError unless Force is set, in
// which case dest is removed first. The same options apply at every depth.
func CopyDirectory(src, dest string, opts Options) error {
	if platform.DirectoryExists(dest) {
		if !opts.Force {
			return &AlreadyExistsError{Path: dest}
		}
		if err := os.RemoveAll(dest); err != nil {
			return &CopyError{Op: "remove", Src: src, Dest: dest, Err: err}
		}
	}

	if err := os.MkdirAll(dest, platform.DirPerm); err != nil {
		return &CopyError{Op: "mkdir", Src: src, Dest: dest, Err: err}
	}

	entries, err := os.ReadDir(src)
	if err != nil {
		return &CopyError{Op: "readdir", Src: src, Dest: dest, Err: err}
	}

	for _, entry := range entries {
		srcPath := filepath.Join(src, entry.Name())
		destPath := filepath.Join(dest, entry.Name())

		if entry.IsDir() {
			err = CopyDirectory(srcPath, destPath, opts)
		} else {
			err = CopyFile(srcPath, destPath, Options{SkipExisting: opts.SkipExisting})
		}
		if err != nil {
			return annotate(err, srcPath, destPath)
		}
	}

	return nil
}

// annotate makes sure err is a *CopyError. Errors that already carry paths
// keep the innermost ones.
func annotate(err error, src, dest string) error {
	var ce *CopyError
	var ae *AlreadyExistsError
	if errors.As(err, &ce) || errors.As(err, &ae) {
		return err
	}
	return &CopyError{Op: "copy", Src: src, Dest: dest, Err: err}
}
