// Package paths resolves the configuration directory and the enum catalog
// file used by the enumily CLI.
package paths

import (
	"os"
	"path/filepath"
	"runtime"
)

// Default names.
const (
	AppDirName             = "enumily"
	DefaultCatalogFileName = "enums.yaml"
)

// Environment variable names for overrides.
const (
	EnvConfigDir   = "ENUMILY_CONFIG_DIR"
	EnvCatalogFile = "ENUMILY_FILE"
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
// Linux:   $XDG_CONFIG_HOME/enumily (fallback ~/.config/enumily)
// macOS:   ~/Library/Application Support/enumily
// Windows: %APPDATA%/enumily
func DefaultConfigDir() (string, error) {
	switch runtime.GOOS {
	case "linux":
		if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
			return filepath.Join(xdg, AppDirName), nil
		}
		home, err := platformDir.homeDir()
		if err != nil {
			return "", err
		}
		return filepath.Join(home, ".config", AppDirName), nil
	default:
		dir, err := platformDir.userConfigDir()
		if err != nil {
			return "", err
		}
		return filepath.Join(dir, AppDirName), nil
	}
}

// ResolveConfigDir returns the configuration directory following the precedence
// chain: flag > ENUMILY_CONFIG_DIR env > DefaultConfigDir().
func ResolveConfigDir(flag string) (string, error) {
	if flag != "" {
		return filepath.Abs(flag)
	}
	if env := os.Getenv(EnvConfigDir); env != "" {
		return filepath.Abs(env)
	}
	return DefaultConfigDir()
}

// ResolveCatalogFile returns the catalog path following the precedence chain:
// flag > configValue (config.yaml "file") > ENUMILY_FILE env > $(CWD)/enums.yaml.
//
// A relative configValue is taken relative to configDir, so a config.yaml can
// point at a catalog stored next to it. Relative flag and env values are taken
// relative to the working directory.
func ResolveCatalogFile(flag, configValue, configDir string) (string, error) {
	if flag != "" {
		return filepath.Abs(flag)
	}
	if configValue != "" {
		if filepath.IsAbs(configValue) || configDir == "" {
			return filepath.Abs(configValue)
		}
		return filepath.Join(configDir, configValue), nil
	}
	if env := os.Getenv(EnvCatalogFile); env != "" {
		return filepath.Abs(env)
	}
	cwd, err := os.Getwd()
	if err != nil {
		return "", err
	}
	return filepath.Join(cwd, DefaultCatalogFileName), nil
}
