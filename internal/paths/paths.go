// Package paths resolves the configuration and data directories of the
// mockstore CLI.
package paths

import (
	"os"
	"path/filepath"
)

// CWD-relative default directory names.
const (
	DefaultConfigDirName = ".mockstore"
	DefaultDataDirName   = ".mockstore-db"
)

// Environment variable names for directory overrides.
const (
	EnvConfigDir = "MOCKSTORE_CONFIG_DIR"
	EnvDataDir   = "MOCKSTORE_DATA_DIR"
)

// getwd can be overridden in tests.
var getwd = os.Getwd

// DefaultConfigDir returns $(CWD)/.mockstore.
func DefaultConfigDir() (string, error) {
	cwd, err := getwd()
	if err != nil {
		return "", err
	}
	return filepath.Join(cwd, DefaultConfigDirName), nil
}

// DefaultDataDir returns $(CWD)/.mockstore-db.
func DefaultDataDir() (string, error) {
	cwd, err := getwd()
	if err != nil {
		return "", err
	}
	return filepath.Join(cwd, DefaultDataDirName), nil
}

// ResolveConfigDir returns the configuration directory following the
// precedence chain: flag > MOCKSTORE_CONFIG_DIR env > DefaultConfigDir().
func ResolveConfigDir(flag string) (string, error) {
	if flag != "" {
		return filepath.Abs(flag)
	}
	if env := os.Getenv(EnvConfigDir); env != "" {
		return filepath.Abs(env)
	}
	return DefaultConfigDir()
}

// ResolveDataDir returns the data directory following the precedence chain:
// flag > configYAMLValue > MOCKSTORE_DATA_DIR env > DefaultDataDir().
func ResolveDataDir(flag, configYAMLValue string) (string, error) {
	if flag != "" {
		return filepath.Abs(flag)
	}
	if configYAMLValue != "" {
		return filepath.Abs(configYAMLValue)
	}
	if env := os.Getenv(EnvDataDir); env != "" {
		return filepath.Abs(env)
	}
	return DefaultDataDir()
}
