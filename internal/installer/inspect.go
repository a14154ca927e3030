package installer

import (
	"bytes"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/aymanbagabas/go-udiff"
	"github.com/droidpowers/droidpowers/internal/platform"
)

// AssetStatus describes how an installed asset compares to its template.
type AssetStatus struct {
	Asset   Asset
	Present bool
	// Missing lists template files (slash-separated, relative to the asset)
	// that the target lacks.
	Missing []string
	// Modified lists files whose content differs from the template.
	Modified []string
}

// UpToDate reports whether the asset is present and matches the template.
func (s AssetStatus) UpToDate() bool {
	return s.Present && len(s.Missing) == 0 && len(s.Modified) == 0
}

// Inspect compares targetDir against the template root. Assets the template
// root does not ship are left out of the report.
func (i *Installer) Inspect(targetDir string) ([]AssetStatus, error) {
	target, err := ValidateTarget(targetDir)
	if err != nil {
		return nil, err
	}
	if !platform.DirectoryExists(i.templatesDir) {
		return nil, &TemplatesMissingError{Path: i.templatesDir}
	}

	var statuses []AssetStatus
	for _, asset := range i.assets {
		src := filepath.Join(i.templatesDir, asset.Name)
		dest := filepath.Join(target, asset.Name)

		switch asset.Kind {
		case AssetDir:
			if !platform.DirectoryExists(src) {
				continue
			}
			st, err := inspectDir(asset, src, dest)
			if err != nil {
				return nil, err
			}
			statuses = append(statuses, st)

		case AssetFile:
			if !platform.FileExists(src) {
				continue
			}
			st := AssetStatus{Asset: asset, Present: platform.FileExists(dest)}
			if st.Present {
				same, err := sameContent(src, dest)
				if err != nil {
					return nil, err
				}
				if !same {
					st.Modified = []string{asset.Name}
				}
			} else {
				st.Missing = []string{asset.Name}
			}
			statuses = append(statuses, st)
		}
	}
	return statuses, nil
}

func inspectDir(asset Asset, src, dest string) (AssetStatus, error) {
	st := AssetStatus{Asset: asset, Present: platform.DirectoryExists(dest)}

	err := filepath.WalkDir(src, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		rel, err := filepath.Rel(src, path)
		if err != nil {
			return err
		}
		destPath := filepath.Join(dest, rel)
		if !platform.FileExists(destPath) {
			st.Missing = append(st.Missing, filepath.ToSlash(rel))
			return nil
		}
		same, err := sameContent(path, destPath)
		if err != nil {
			return err
		}
		if !same {
			st.Modified = append(st.Modified, filepath.ToSlash(rel))
		}
		return nil
	})
	if err != nil {
		return st, fmt.Errorf("inspecting %s: %w", dest, err)
	}
	return st, nil
}

// Diff renders a unified diff from the bundled copy of a single-file asset to
// the copy in targetDir. It returns "" when they are identical.
func (i *Installer) Diff(targetDir, name string) (string, error) {
	target, err := ValidateTarget(targetDir)
	if err != nil {
		return "", err
	}

	src := filepath.Join(i.templatesDir, name)
	bundled, err := os.ReadFile(src)
	if err != nil {
		return "", fmt.Errorf("reading bundled %s: %w", name, err)
	}
	local, err := os.ReadFile(filepath.Join(target, name))
	if err != nil {
		return "", fmt.Errorf("reading %s: %w", name, err)
	}
	if bytes.Equal(bundled, local) {
		return "", nil
	}
	return udiff.Unified("bundled/"+name, name, string(bundled), string(local)), nil
}

func sameContent(a, b string) (bool, error) {
	da, err := os.ReadFile(a)
	if err != nil {
		return false, fmt.Errorf("reading %s: %w", a, err)
	}
	db, err := os.ReadFile(b)
	if err != nil {
		return false, fmt.Errorf("reading %s: %w", b, err)
	}
	return bytes.Equal(da, db), nil
}
