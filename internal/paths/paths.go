// Package paths resolves configuration, data, and media directory locations
// for the giapha application.
package paths

import (
	"os"
	"path/filepath"
	"runtime"
)

// DataDirName is the home-relative default data directory in desktop mode.
// It holds giapha.db and the media/ subtree.
const DataDirName = "GiaPha"

// MediaDirName is the subdirectory of the data directory holding local media.
const MediaDirName = "media"

// Environment variable names for directory overrides.
const (
	EnvConfigDir = "GIAPHA_CONFIG_DIR"
	EnvDataDir   = "GIAPHA_DATA_DIR"
)

// platformDir holds platform-detection functions that can be overridden in tests.
var platformDir = struct {
	homeDir       func() (string, error)
	userConfigDir func() (string, error)
}{
	homeDir:       os.UserHomeDir,
	userConfigDir: os.UserConfigDir,
}

// DefaultConfigDir returns the platform-specific default configuration directory.
//
// Linux:   $XDG_CONFIG_HOME/giapha (fallback ~/.config/giapha)
// macOS:   ~/Library/Application Support/giapha
// Windows: %APPDATA%/giapha
func DefaultConfigDir() (string, error) {
	switch runtime.GOOS {
	case "linux":
		if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
			return filepath.Join(xdg, "giapha"), nil
		}
		home, err := platformDir.homeDir()
		if err != nil {
			return "", err
		}
		return filepath.Join(home, ".config", "giapha"), nil
	default:
		// macOS and Windows use os.UserConfigDir which returns
		// ~/Library/Application Support on macOS and %APPDATA% on Windows.
		dir, err := platformDir.userConfigDir()
		if err != nil {
			return "", err
		}
		return filepath.Join(dir, "giapha"), nil
	}
}

// DefaultDataDir returns the default data directory: a GiaPha folder in the
// user's home directory. The desktop app keeps its database and media there
// so operators can find and copy them without tooling.
func DefaultDataDir() (string, error) {
	home, err := platformDir.homeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, DataDirName), nil
}

// ResolveConfigDir returns the configuration directory following the
// precedence chain: flag > GIAPHA_CONFIG_DIR env > DefaultConfigDir().
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
// flag > config.yaml data_dir > GIAPHA_DATA_DIR env > DefaultDataDir().
func ResolveDataDir(flag, configValue string) (string, error) {
	if flag != "" {
		return filepath.Abs(flag)
	}
	if configValue != "" {
		return filepath.Abs(configValue)
	}
	if env := os.Getenv(EnvDataDir); env != "" {
		return filepath.Abs(env)
	}
	return DefaultDataDir()
}

// MediaRoot returns the local media directory for a data directory.
func MediaRoot(dataDir string) string {
	return filepath.Join(dataDir, MediaDirName)
}
