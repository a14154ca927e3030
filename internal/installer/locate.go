package installer

import (
	"os"
	"path/filepath"

	"github.com/droidpowers/droidpowers/internal/branding"
	"github.com/droidpowers/droidpowers/internal/config"
	"github.com/droidpowers/droidpowers/internal/platform"
)

// templatesDirName is the bundled asset directory shipped with the binary.
const templatesDirName = "templates"

// LocateTemplates returns the bundled template root.
//
// Resolution order:
//  1. override (the --templates flag)
//  2. DROIDPOWERS_TEMPLATES environment variable
//  3. config key "templates_dir"
//  4. binary-relative templates/, ../templates/, ../share/<cli>/templates/
//
// An explicitly named root that is not a directory is an error rather than
// a reason to keep looking.
func LocateTemplates(override string) (string, error) {
	explicit := []string{
		override,
		os.Getenv(branding.EnvVar("TEMPLATES")),
		config.Get(config.KeyTemplatesDir),
	}
	for _, dir := range explicit {
		if dir == "" {
			continue
		}
		abs, err := filepath.Abs(dir)
		if err != nil {
			return "", &TemplatesMissingError{Path: dir}
		}
		if !platform.DirectoryExists(abs) {
			return "", &TemplatesMissingError{Path: abs}
		}
		return abs, nil
	}

	exe, err := os.Executable()
	if err != nil {
		return "", &TemplatesMissingError{Path: templatesDirName}
	}
	if resolved, err := filepath.EvalSymlinks(exe); err == nil {
		exe = resolved
	}

	candidates := binaryRelativeCandidates(filepath.Dir(exe))
	for _, dir := range candidates {
		if platform.DirectoryExists(dir) {
			return dir, nil
		}
	}
	return "", &TemplatesMissingError{Path: candidates[0]}
}

// binaryRelativeCandidates lists where release archives and package managers
// place the templates relative to the directory holding the binary.
func binaryRelativeCandidates(binDir string) []string {
	return []string{
		filepath.Join(binDir, templatesDirName),
		filepath.Join(binDir, "..", templatesDirName),
		filepath.Join(binDir, "..", "share", branding.CLIName(), templatesDirName),
	}
}
