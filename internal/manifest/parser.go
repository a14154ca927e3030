package manifest

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/Masterminds/semver/v3"
)

// FileName is the manifest file looked up in a package directory.
const FileName = "package.json"

// Package is the subset of package.json the release workflow reads.
type Package struct {
	Name          string            `json:"name"`
	Version       string            `json:"version"`
	Description   string            `json:"description,omitempty"`
	Private       bool              `json:"private,omitempty"`
	Files         []string          `json:"files,omitempty"`
	Scripts       map[string]string `json:"scripts,omitempty"`
	PublishConfig PublishConfig     `json:"publishConfig,omitempty"`
}

// PublishConfig mirrors the publishConfig block.
type PublishConfig struct {
	Tag    string `json:"tag,omitempty"`
	Access string `json:"access,omitempty"`
}

// Path returns the package.json path inside dir.
func Path(dir string) string {
	return filepath.Join(dir, FileName)
}

// Parse decodes package.json bytes.
func Parse(data []byte) (*Package, error) {
	var pkg Package
	if err := json.Unmarshal(data, &pkg); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", FileName, err)
	}
	return &pkg, nil
}

// Load reads and decodes dir/package.json without schema validation.
func Load(dir string) (*Package, error) {
	data, err := readFile(Path(dir))
	if err != nil {
		return nil, err
	}
	return Parse(data)
}

// LoadValid reads dir/package.json and fails unless it passes validation.
func LoadValid(dir string) (*Package, error) {
	data, err := readFile(Path(dir))
	if err != nil {
		return nil, err
	}
	result, err := Validate(data)
	if err != nil {
		return nil, err
	}
	if !result.Valid {
		return nil, &InvalidError{Path: Path(dir), Issues: result.Issues}
	}
	return Parse(data)
}

// Spec returns "name@version".
func (p *Package) Spec() string {
	return p.Name + "@" + p.Version
}

// IsPrerelease reports whether Version carries a prerelease part such as
// "-beta.1".
func (p *Package) IsPrerelease() (bool, error) {
	v, err := semver.StrictNewVersion(strings.TrimPrefix(p.Version, "v"))
	if err != nil {
		return false, fmt.Errorf("parsing version %q of %s: %w", p.Version, p.Name, err)
	}
	return v.Prerelease() != "", nil
}

// HasScript reports whether the manifest defines the named npm script.
func (p *Package) HasScript(name string) bool {
	_, ok := p.Scripts[name]
	return ok
}

func readFile(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	return data, nil
}
