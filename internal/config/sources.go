package config

import (
	"os"
	"path/filepath"
	"runtime"

	"github.com/nibzard/gopher-go/internal/gopherdir"
)

// projectConfigNames are checked in order relative to the project root.
var projectConfigNames = []string{
	"gopher.toml",
	".gopher.toml",
	filepath.Join(gopherdir.Dir, gopherdir.DefaultConfigFile),
}

// findProjectConfigFile returns the first project config file under root.
func findProjectConfigFile(root string) string {
	for _, name := range projectConfigNames {
		path := filepath.Join(root, name)
		if info, err := os.Stat(path); err == nil && !info.IsDir() {
			return path
		}
	}
	return ""
}

// findUserConfigFile looks for ~/.gopher/gopher.toml, then for
// gopher/gopher.toml under the OS config directory.
func findUserConfigFile() string {
	if home, err := os.UserHomeDir(); err == nil {
		path := filepath.Join(home, gopherdir.Dir, gopherdir.DefaultConfigFile)
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}

	if cfgDir := osUserConfigDir(); cfgDir != "" {
		path := filepath.Join(cfgDir, "gopher", gopherdir.DefaultConfigFile)
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}

	return ""
}

// osUserConfigDir returns the OS-specific user config directory, or "".
func osUserConfigDir() string {
	switch runtime.GOOS {
	case "windows":
		if appdata := os.Getenv("APPDATA"); appdata != "" {
			return appdata
		}
	case "darwin":
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, "Library", "Application Support")
		}
	case "linux", "openbsd", "freebsd", "netbsd":
		if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
			return xdg
		}
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, ".config")
		}
	}
	return ""
}

// setDefaults applies default values to the config.
func setDefaults(cfg *Config) {
	cfg.TaskFile = DefaultTaskFile
	cfg.UI = DefaultUI
	cfg.LogLevel = DefaultLogLevel
	cfg.LogFormat = DefaultLogFormat
	cfg.LogTimestamps = false
	cfg.LogCaller = false
	cfg.LogDir = DefaultLogDir
	cfg.FindCacheSize = DefaultFindCacheSize
}

// configFields returns the configurable keys used for source tracking.
func configFields() []string {
	return []string{
		"task_file",
		"ui",
		"log_level",
		"log_format",
		"log_timestamps",
		"log_caller",
		"log_dir",
		"find_cache_size",
	}
}
