package config

import (
	"io"
	"path/filepath"
	"strconv"

	"github.com/BurntSushi/toml"

	"github.com/nibzard/gopher-go/internal/gopherdir"
	"github.com/nibzard/gopher-go/internal/logging"
)

// ConfigSource represents where a configuration value came from.
type ConfigSource string

const (
	SourceDefault  ConfigSource = "default"
	SourceUserFile ConfigSource = "user file"
	SourceProjFile ConfigSource = "project file"
	SourceEnv      ConfigSource = "environment"
	SourceFlag     ConfigSource = "flag"
)

// ConfigWithSources holds configuration along with the source of each field
// and the config files that were read.
type ConfigWithSources struct {
	Config      *Config
	Sources     map[string]ConfigSource
	UserFile    string
	ProjectFile string
}

// UI modes.
const (
	UIConsole = "console"
	UITUI     = "tui"
)

// Default values.
const (
	DefaultUI            = UIConsole
	DefaultLogLevel      = "warn"
	DefaultLogFormat     = logging.FormatText
	DefaultLogDir        = "~/.gopher/logs"
	DefaultFindCacheSize = 64
)

// DefaultTaskFile is the task file path relative to the project root.
var DefaultTaskFile = filepath.Join(gopherdir.Dir, gopherdir.DefaultTaskFile)

// Config holds the full configuration for gopher.
type Config struct {
	// Task file; relative paths resolve against ProjectRoot
	TaskFile string `toml:"task_file"`

	// Front end: console or tui
	UI string `toml:"ui"`

	// Logging
	LogLevel      string `toml:"log_level"`
	LogFormat     string `toml:"log_format"`
	LogTimestamps bool   `toml:"log_timestamps"`
	LogCaller     bool   `toml:"log_caller"`
	LogDir        string `toml:"log_dir"`

	// Compiled find patterns kept in memory; 0 disables the cache
	FindCacheSize int `toml:"find_cache_size"`

	// Project root (computed)
	ProjectRoot string `toml:"-"`
}

// LoggingOptions returns the logger settings for this config.
func (c *Config) LoggingOptions() logging.Options {
	return logging.Options{
		Level:      c.LogLevel,
		Format:     c.LogFormat,
		Timestamps: c.LogTimestamps,
		Caller:     c.LogCaller,
		Prefix:     "gopher",
	}
}

// WriteTOML writes the effective configuration as TOML.
func (c *Config) WriteTOML(w io.Writer) error {
	return toml.NewEncoder(w).Encode(c)
}

// Fields returns the configuration keys in display order.
func Fields() []string {
	return configFields()
}

// Value returns the value of the configuration key as text, or "" for an
// unknown key.
func (c *Config) Value(key string) string {
	switch key {
	case "task_file":
		return c.TaskFile
	case "ui":
		return c.UI
	case "log_level":
		return c.LogLevel
	case "log_format":
		return c.LogFormat
	case "log_timestamps":
		return strconv.FormatBool(c.LogTimestamps)
	case "log_caller":
		return strconv.FormatBool(c.LogCaller)
	case "log_dir":
		return c.LogDir
	case "find_cache_size":
		return strconv.Itoa(c.FindCacheSize)
	}
	return ""
}
