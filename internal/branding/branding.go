// Package branding provides compile-time identity values for the CLI.
//
// Values live in branding.yaml next to this file and are baked into the
// binary with //go:embed. Forks change the CLI name, home directory and
// environment prefix there without touching code.
package branding

import (
	_ "embed"
	"strings"
	"sync"

	"go.yaml.in/yaml/v3"
)

//go:embed branding.yaml
var rawBranding []byte

var (
	once     sync.Once
	defaults brand
)

type brand struct {
	CLIName     string `yaml:"cli_name"`
	DisplayName string `yaml:"display_name"`
	Description string `yaml:"description"`
	HomeDir     string `yaml:"home_dir"`
	EnvPrefix   string `yaml:"env_prefix"`
	MainBranch  string `yaml:"main_branch"`
}

func load() {
	once.Do(func() {
		// Hard defaults in case the embedded file is empty.
		defaults = brand{
			CLIName:     "droidpowers",
			DisplayName: "Droidpowers",
			Description: "Install droid skills and agent templates into a project",
			HomeDir:     ".droidpowers",
			EnvPrefix:   "DROIDPOWERS",
			MainBranch:  "main",
		}
		_ = yaml.Unmarshal(rawBranding, &defaults)
	})
}

// CLIName returns the root command name (e.g., "droidpowers").
func CLIName() string { load(); return defaults.CLIName }

// DisplayName returns the human-readable product name.
func DisplayName() string { load(); return defaults.DisplayName }

// Description returns the short product description.
func Description() string { load(); return defaults.Description }

// HomeDir returns the dot-directory name under $HOME (e.g., ".droidpowers").
func HomeDir() string { load(); return defaults.HomeDir }

// EnvPrefix returns the environment variable prefix (e.g., "DROIDPOWERS").
func EnvPrefix() string { load(); return defaults.EnvPrefix }

// MainBranch returns the branch releases are expected to be cut from.
func MainBranch() string { load(); return defaults.MainBranch }

// EnvVar returns a fully qualified env var name, e.g., EnvVar("HOME") → "DROIDPOWERS_HOME".
func EnvVar(suffix string) string {
	load()
	return defaults.EnvPrefix + "_" + strings.ToUpper(suffix)
}
