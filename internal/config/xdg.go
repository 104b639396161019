// Package config provides XDG path helpers.
package config

import (
	"os"
	"path/filepath"
)

const appName = "wordsmith"

// XDGConfigHome returns the XDG config home or a default fallback.
func XDGConfigHome() string {
	if v := os.Getenv("XDG_CONFIG_HOME"); v != "" {
		return v
	}
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		return "."
	}
	return filepath.Join(home, ".config")
}

// XDGDataHome returns the XDG data home or a default fallback.
func XDGDataHome() string {
	if v := os.Getenv("XDG_DATA_HOME"); v != "" {
		return v
	}
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		return "."
	}
	return filepath.Join(home, ".local", "share")
}

// DefaultConfigPath returns the default TOML config path.
func DefaultConfigPath() string {
	return filepath.Join(XDGConfigHome(), appName, "config.toml")
}

// DefaultPromptPath returns the default system prompt file used for
// seed word suggestions.
func DefaultPromptPath() string {
	return filepath.Join(XDGConfigHome(), appName, "prompt.txt")
}

// DefaultSessionPath returns the path of the saved interactive session.
func DefaultSessionPath() string {
	return filepath.Join(XDGDataHome(), appName, "session.toml")
}

// DefaultOutputPath is the word list written when no path is configured.
const DefaultOutputPath = "wordlist.txt"
