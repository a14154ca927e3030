package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/droidpowers/droidpowers/internal/branding"
	"github.com/spf13/viper"
)

const (
	fileName = "config"
	fileType = "yaml"
)

// Known configuration keys.
const (
	KeyTemplatesDir   = "templates_dir"
	KeyMainBranch     = "publish.main_branch"
	KeyTestScript     = "publish.test_script"
	KeyBuildScript    = "publish.build_script"
	KeyRequiredFiles  = "publish.required_files"
	KeyRequiredDirs   = "publish.required_dirs"
	KeyInstallLocking = "install.lock"
)

// Dir returns the path to the config directory (~/.droidpowers/).
// DROIDPOWERS_HOME overrides it.
func Dir() string {
	if v := os.Getenv(branding.EnvVar("HOME")); v != "" {
		return v
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", branding.HomeDir())
	}
	return filepath.Join(home, branding.HomeDir())
}

// FilePath returns the full path to the config file (~/.droidpowers/config.yaml).
func FilePath() string {
	return filepath.Join(Dir(), fileName+"."+fileType)
}

// LockDir returns the directory holding per-target install locks.
func LockDir() string {
	return filepath.Join(Dir(), "locks")
}

// EnsureDir creates the config directory if it does not exist.
func EnsureDir() error {
	dir := Dir()
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("creating config directory %s: %w", dir, err)
	}
	return nil
}

// Load initializes Viper to read from the config file and environment.
func Load() {
	viper.SetConfigFile(FilePath())
	viper.SetConfigType(fileType)
	viper.SetEnvPrefix(branding.EnvPrefix())
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	viper.SetDefault(KeyMainBranch, branding.MainBranch())
	viper.SetDefault(KeyTestScript, "npm test")
	viper.SetDefault(KeyBuildScript, "")
	viper.SetDefault(KeyRequiredFiles, []string{"package.json", "README.md"})
	viper.SetDefault(KeyRequiredDirs, []string{"templates"})
	viper.SetDefault(KeyInstallLocking, true)

	// Ignore error if config file doesn't exist yet.
	_ = viper.ReadInConfig()
}

// Get returns a config value by key. Returns empty string if not set.
func Get(key string) string {
	return viper.GetString(key)
}

// GetBool returns a boolean config value.
func GetBool(key string) bool {
	return viper.GetBool(key)
}

// GetStrings returns a list config value.
func GetStrings(key string) []string {
	return viper.GetStringSlice(key)
}

// Set writes a config key-value pair and saves the config file.
func Set(key, value string) error {
	if err := EnsureDir(); err != nil {
		return err
	}

	viper.Set(key, value)

	configFile := FilePath()

	// Create the file if it doesn't exist.
	if _, err := os.Stat(configFile); os.IsNotExist(err) {
		f, err := os.Create(configFile)
		if err != nil {
			return fmt.Errorf("creating config file %s: %w", configFile, err)
		}
		f.Close()
	}

	if err := viper.WriteConfigAs(configFile); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}

	return nil
}
