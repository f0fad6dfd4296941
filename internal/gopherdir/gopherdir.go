// Package gopherdir provides constants and helpers for the .gopher directory layout.
package gopherdir

import "path/filepath"

const (
	// Dir is the name of the gopher state directory.
	Dir = ".gopher"

	// DefaultTaskFile is the task file name inside Dir.
	DefaultTaskFile = "task.txt"

	// DefaultConfigFile is the config file name inside Dir.
	DefaultConfigFile = "gopher.toml"

	// LogsDir is the session log directory name inside Dir.
	LogsDir = "logs"
)

// TaskPath returns the task file path within workDir.
func TaskPath(workDir string) string {
	return filepath.Join(DirPath(workDir), DefaultTaskFile)
}

// ConfigPath returns the config file path within workDir.
func ConfigPath(workDir string) string {
	return filepath.Join(DirPath(workDir), DefaultConfigFile)
}

// LogsPath returns the session log directory within workDir.
func LogsPath(workDir string) string {
	return filepath.Join(DirPath(workDir), LogsDir)
}

// DirPath returns the .gopher directory within workDir.
func DirPath(workDir string) string {
	if workDir == "" {
		workDir = "."
	}
	return filepath.Join(workDir, Dir)
}
