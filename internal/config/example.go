package config

// ExampleConfig returns an example configuration showing all available options.
func ExampleConfig() string {
	return `# Gopher configuration file
# Values can be overridden by GOPHER_* environment variables or CLI flags

# Task file (relative to the project root)
task_file = ".gopher/task.txt"

# Front end: console or tui
ui = "console"

# Logging: debug, info, warn, error
log_level = "warn"

# Log format: text, json, logfmt
log_format = "text"
log_timestamps = false
log_caller = false

# Session log directory (supports ~ expansion and %VAR% on Windows)
log_dir = "~/.gopher/logs"

# Compiled find patterns kept in memory (0 disables the cache)
find_cache_size = 64
`
}
