package config

import "flag"

// flagFields maps CLI flag names to config keys.
var flagFields = map[string]string{
	"tasks":          "task_file",
	"ui":             "ui",
	"log-level":      "log_level",
	"log-format":     "log_format",
	"log-timestamps": "log_timestamps",
	"log-caller":     "log_caller",
	"log-dir":        "log_dir",
	"find-cache":     "find_cache_size",
}

// parseFlags defines the global flags on fs, parses args and records the
// source of every flag that was set explicitly.
func parseFlags(cfg *Config, fs *flag.FlagSet, args []string, sources map[string]ConfigSource) error {
	if fs == nil {
		fs = flag.NewFlagSet("gopher", flag.ContinueOnError)
	}

	fs.StringVar(&cfg.TaskFile, "tasks", cfg.TaskFile, "Path to the task file")
	fs.StringVar(&cfg.UI, "ui", cfg.UI, "Front end (console, tui)")
	fs.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "Log level (debug, info, warn, error)")
	fs.StringVar(&cfg.LogFormat, "log-format", cfg.LogFormat, "Log format (text, json, logfmt)")
	fs.BoolVar(&cfg.LogTimestamps, "log-timestamps", cfg.LogTimestamps, "Show timestamps in logs")
	fs.BoolVar(&cfg.LogCaller, "log-caller", cfg.LogCaller, "Show caller location in logs")
	fs.StringVar(&cfg.LogDir, "log-dir", cfg.LogDir, "Session log directory")
	fs.IntVar(&cfg.FindCacheSize, "find-cache", cfg.FindCacheSize, "Compiled find patterns to cache (0 disables)")

	if err := fs.Parse(args); err != nil {
		return err
	}

	if sources != nil {
		fs.Visit(func(f *flag.Flag) {
			if field, ok := flagFields[f.Name]; ok {
				sources[field] = SourceFlag
			}
		})
	}
	return nil
}
