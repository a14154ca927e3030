package installer

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"

	"github.com/droidpowers/droidpowers/internal/copier"
	"github.com/droidpowers/droidpowers/internal/platform"
)

// AssetState is the outcome of installing one asset.
type AssetState int

const (
	// StateInstalled means the asset was written to the target.
	StateInstalled AssetState = iota
	// StateSkipped means a file asset already existed and was left alone.
	StateSkipped
	// StateAbsent means the template root does not ship the asset.
	StateAbsent
)

func (s AssetState) String() string {
	switch s {
	case StateInstalled:
		return "installed"
	case StateSkipped:
		return "skipped"
	case StateAbsent:
		return "absent"
	default:
		return "unknown"
	}
}

// AssetResult reports what happened to one asset.
type AssetResult struct {
	Asset Asset
	State AssetState
	Dest  string
}

// Result holds the outcome of an install. It is returned alongside an error
// when the install fails part way, listing the assets already written.
type Result struct {
	TargetDir    string
	TemplatesDir string
	Assets       []AssetResult
	Warnings     []string
}

// Installer installs the template assets found under a template root.
type Installer struct {
	templatesDir string
	assets       []Asset
	lockDir      string
	logger       *slog.Logger
	onWarning    func(string)
}

// Option configures an Installer.
type Option func(*Installer)

// WithLockDir enables the per-target install lock, keeping lock files in dir.
func WithLockDir(dir string) Option {
	return func(i *Installer) {
		i.lockDir = dir
	}
}

// WithLogger sets the logger used for debug traces and warnings.
func WithLogger(l *slog.Logger) Option {
	return func(i *Installer) {
		i.logger = l
	}
}

// WithWarnings registers fn to receive each warning as it is raised, before
// any asset is copied. Warnings are collected in Result.Warnings either way.
func WithWarnings(fn func(msg string)) Option {
	return func(i *Installer) {
		i.onWarning = fn
	}
}

// WithAssets replaces the default asset list.
func WithAssets(assets []Asset) Option {
	return func(i *Installer) {
		i.assets = assets
	}
}

// New creates an Installer reading templates from templatesDir.
func New(templatesDir string, opts ...Option) *Installer {
	i := &Installer{
		templatesDir: templatesDir,
		assets:       DefaultAssets,
		logger:       slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(i)
	}
	return i
}

// TemplatesDir returns the template root this installer reads from.
func (i *Installer) TemplatesDir() string {
	return i.templatesDir
}

// Install copies every asset into targetDir. Directory assets are replaced
// only when force is set; file assets are never overwritten. There is no
// rollback: on failure the returned Result lists what was already written.
func (i *Installer) Install(ctx context.Context, targetDir string, force bool) (*Result, error) {
	target, err := ValidateTarget(targetDir)
	if err != nil {
		return nil, err
	}

	result := &Result{
		TargetDir:    target,
		TemplatesDir: i.templatesDir,
	}

	if w := projectWarning(target); w != "" {
		i.logger.Debug("target does not look like a project", "target", target)
		i.warn(result, w)
	}

	if !platform.DirectoryExists(i.templatesDir) {
		return result, &TemplatesMissingError{Path: i.templatesDir}
	}

	// Only a lock held by another install stops us. A lock that cannot be
	// taken at all (read-only home, bad lock dir) downgrades to a warning.
	if i.lockDir != "" {
		fl, err := acquireLock(i.lockDir, target)
		switch {
		case errors.Is(err, ErrInstallInProgress):
			return result, err
		case err != nil:
			i.logger.Debug("install lock unavailable", "dir", i.lockDir, "err", err)
			i.warn(result, fmt.Sprintf("continuing without install lock: %v", err))
		default:
			defer releaseLock(i.logger, fl)
		}
	}

	for _, asset := range i.assets {
		if err := ctx.Err(); err != nil {
			return result, err
		}

		ar, err := i.installAsset(asset, target, force)
		if err != nil {
			return result, err
		}
		result.Assets = append(result.Assets, ar)
	}

	return result, nil
}

func (i *Installer) warn(result *Result, msg string) {
	result.Warnings = append(result.Warnings, msg)
	if i.onWarning != nil {
		i.onWarning(msg)
	}
}

func (i *Installer) installAsset(asset Asset, target string, force bool) (AssetResult, error) {
	src := filepath.Join(i.templatesDir, asset.Name)
	dest := filepath.Join(target, asset.Name)
	ar := AssetResult{Asset: asset, Dest: dest}

	switch asset.Kind {
	case AssetDir:
		if !platform.DirectoryExists(src) {
			if asset.Required {
				return ar, &TemplatesMissingError{Path: src}
			}
			ar.State = StateAbsent
			return ar, nil
		}
		i.logger.Debug("copying directory", "src", src, "dest", dest, "force", force)
		if err := copier.CopyDirectory(src, dest, copier.Options{Force: force, SkipExisting: false}); err != nil {
			return ar, err
		}
		ar.State = StateInstalled

	case AssetFile:
		if !platform.FileExists(src) {
			if asset.Required {
				return ar, &TemplatesMissingError{Path: src}
			}
			ar.State = StateAbsent
			return ar, nil
		}
		existed := platform.FileExists(dest)
		i.logger.Debug("copying file", "src", src, "dest", dest, "exists", existed)
		if err := copier.CopyFile(src, dest, copier.Options{SkipExisting: true}); err != nil {
			return ar, err
		}
		if existed {
			ar.State = StateSkipped
		} else {
			ar.State = StateInstalled
		}

	default:
		return ar, fmt.Errorf("asset %s: unknown kind %d", asset.Name, asset.Kind)
	}

	return ar, nil
}

// validateTarget resolves targetDir to an absolute path and checks that it
// is an existing directory.
func ValidateTarget(targetDir string) (string, error) {
	abs, err := filepath.Abs(targetDir)
	if err != nil {
		return "", &TargetNotFoundError{Path: targetDir, Reason: "cannot be resolved", Err: err}
	}

	kind, err := platform.Probe(abs)
	switch kind {
	case platform.KindDir:
		return abs, nil
	case platform.KindMissing:
		return "", &TargetNotFoundError{Path: abs, Reason: "does not exist"}
	case platform.KindInaccessible:
		return "", &TargetNotFoundError{Path: abs, Reason: "is not accessible", Err: err}
	default:
		return "", &TargetNotFoundError{Path: abs, Reason: "is not a directory"}
	}
}

// projectWarning returns an advisory message when target has neither a
// package.json nor a .git directory.
func projectWarning(target string) string {
	hasPackageJSON := platform.FileExists(filepath.Join(target, "package.json"))
	hasGit := platform.DirectoryExists(filepath.Join(target, ".git"))
	if hasPackageJSON || hasGit {
		return ""
	}
	return "this does not appear to be a project directory; consider running in a directory with package.json or .git"
}
