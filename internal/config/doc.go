// Package config manages user-level settings stored at ~/.droidpowers/config.yaml.
// It provides functions to load, read, and write configuration keys such as
// the template directory override and the release workflow scripts.
package config
