// Package paths resolves configuration and data directory locations for the
// bulwark CLI.
package paths

import (
	"os"
	"path/filepath"
)

// CWD-relative default directory names.
const (
	DefaultConfigDirName = ".bulwark"
	DefaultDataDirName   = ".bulwark-db"
)

// Environment variable names for directory overrides.
const (
	EnvConfigDir = "BULWARK_CONFIG_DIR"
	EnvDataDir   = "BULWARK_DATA_DIR"
)

// ResolveConfigDir returns the configuration directory following the
// precedence chain: flag > BULWARK_CONFIG_DIR env > $(CWD)/.bulwark.
func ResolveConfigDir(flag string) (string, error) {
	if flag != "" {
		return filepath.Abs(flag)
	}
	if env := os.Getenv(EnvConfigDir); env != "" {
		return filepath.Abs(env)
	}
	cwd, err := os.Getwd()
	if err != nil {
		return "", err
	}
	return filepath.Join(cwd, DefaultConfigDirName), nil
}

// ResolveDataDir returns the data directory following the precedence chain:
// flag > config.yaml data_dir > BULWARK_DATA_DIR env > $(CWD)/.bulwark-db.
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
	cwd, err := os.Getwd()
	if err != nil {
		return "", err
	}
	return filepath.Join(cwd, DefaultDataDirName), nil
}
