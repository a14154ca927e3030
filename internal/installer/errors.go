package installer

import (
	"errors"
	"fmt"
)

// ErrInstallInProgress is returned when another install holds the lock for
// the same target directory.
var ErrInstallInProgress = errors.New("another install is running against this target")

// TargetNotFoundError means the install target is missing, not a directory,
// or cannot be inspected.
type TargetNotFoundError struct {
	Path   string
	Reason string // "does not exist", "is not a directory", "is not accessible"
	Err    error
}

func (e *TargetNotFoundError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("target directory %s %s: %v", e.Path, e.Reason, e.Err)
	}
	return fmt.Sprintf("target directory %s %s", e.Path, e.Reason)
}

func (e *TargetNotFoundError) Unwrap() error { return e.Err }

// TemplatesMissingError means the bundled template root (or a required asset
// inside it) cannot be found, which points at a broken installation.
type TemplatesMissingError struct {
	Path string
}

func (e *TemplatesMissingError) Error() string {
	return fmt.Sprintf("templates not found: %s", e.Path)
}
