package config

import (
	"os"
	"path/filepath"
	"strconv"
)

const defaultRuntimeDir = ".tuskvoice"

// GetRuntimePath resolves TUSK_RUNTIME_PATH before any config is parsed, since
// the .env it names may set the rest. Relative paths are taken from $HOME.
func GetRuntimePath() string {
	path := os.Getenv("TUSK_RUNTIME_PATH")
	if path == "" {
		path = defaultRuntimeDir
	}

	if !filepath.IsAbs(path) {
		home, _ := os.UserHomeDir()
		path = filepath.Join(home, path)
	}
	return path
}

// IsDebug reports whether TUSK_DEBUG is set to a true value ("1", "true").
func IsDebug() bool {
	v, _ := strconv.ParseBool(os.Getenv("TUSK_DEBUG"))
	return v
}
