package installer

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/droidpowers/droidpowers/internal/platform"
	"github.com/gofrs/flock"
)

// lockPath maps a target directory to its lock file inside lockDir.
func lockPath(lockDir, target string) string {
	sum := sha256.Sum256([]byte(target))
	return filepath.Join(lockDir, hex.EncodeToString(sum[:8])+".lock")
}

// acquireLock takes the exclusive lock for target without waiting. A lock
// held by another process yields ErrInstallInProgress.
func acquireLock(lockDir, target string) (*flock.Flock, error) {
	if err := os.MkdirAll(lockDir, platform.DirPerm); err != nil {
		return nil, fmt.Errorf("creating lock directory %s: %w", lockDir, err)
	}

	fl := flock.New(lockPath(lockDir, target))
	locked, err := fl.TryLock()
	if err != nil {
		return nil, fmt.Errorf("acquiring install lock %s: %w", fl.Path(), err)
	}
	if !locked {
		return nil, fmt.Errorf("%w: %s", ErrInstallInProgress, target)
	}
	return fl, nil
}

// releaseLock unlocks and closes the lock file. The file itself stays on
// disk so a concurrent acquirer never locks an unlinked inode.
func releaseLock(logger *slog.Logger, fl *flock.Flock) {
	if err := fl.Close(); err != nil {
		logger.Debug("failed to release install lock", "path", fl.Path(), "err", err)
	}
}
