// Package config provides configuration utilities for the application.
package config

import (
	"os"
	"path/filepath"
	"strings"
)

// Default locations, before expansion.
const (
	DefaultConfigDir    = "$HOME/.config/pocket"
	DefaultDatabasePath = "$HOME/.local/share/pocket/pocket.db"
)

// ExpandPath expands ~ and environment variables in a file path.
// It handles both ~ for home directory and $VAR style environment variables.
func ExpandPath(path string) string {
	if path == "" {
		return path
	}

	if strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err == nil {
			path = filepath.Join(home, path[2:])
		}
	} else if path == "~" {
		home, err := os.UserHomeDir()
		if err == nil {
			path = home
		}
	}

	return os.ExpandEnv(path)
}

// DatabasePath returns the configured database path, expanded, falling back
// to DefaultDatabasePath.
func DatabasePath(configured string) string {
	if configured == "" {
		configured = DefaultDatabasePath
	}
	return ExpandPath(configured)
}
