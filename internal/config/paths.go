package config

import (
	"os"
	"path/filepath"
	"runtime"
)

// Paths holds the path configuration for ghostline.
type Paths struct {
	// ConfigDir is the directory for configuration files (~/.config/ghostline)
	ConfigDir string

	// CacheDir is the directory for cache files (~/.cache/ghostline)
	CacheDir string
}

// DefaultPaths returns the default paths based on the XDG Base Directory
// spec. On Windows, %APPDATA% is used instead.
func DefaultPaths() *Paths {
	home := homeDir()

	if runtime.GOOS == "windows" {
		appData := os.Getenv("APPDATA")
		if appData == "" {
			appData = filepath.Join(home, "AppData", "Roaming")
		}
		localAppData := os.Getenv("LOCALAPPDATA")
		if localAppData == "" {
			localAppData = filepath.Join(home, "AppData", "Local")
		}
		return &Paths{
			ConfigDir: filepath.Join(appData, "ghostline"),
			CacheDir:  filepath.Join(localAppData, "ghostline", "cache"),
		}
	}

	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		configHome = filepath.Join(home, ".config")
	}
	cacheHome := os.Getenv("XDG_CACHE_HOME")
	if cacheHome == "" {
		cacheHome = filepath.Join(home, ".cache")
	}

	return &Paths{
		ConfigDir: filepath.Join(configHome, "ghostline"),
		CacheDir:  filepath.Join(cacheHome, "ghostline"),
	}
}

// ConfigFile returns the path to the main configuration file.
func (p *Paths) ConfigFile() string {
	return filepath.Join(p.ConfigDir, "config.yaml")
}

// homeDir returns the user's home directory, falling back to "." so that
// path construction never fails outright.
func homeDir() string {
	if h, err := os.UserHomeDir(); err == nil {
		return h
	}
	return "."
}
