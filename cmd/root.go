// Package cmd implements the CLI command structure for gopher.
package cmd

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/nibzard/gopher-go/internal/config"
	"github.com/nibzard/gopher-go/internal/gopher"
	"github.com/nibzard/gopher-go/internal/gopherdir"
	"github.com/nibzard/gopher-go/internal/logging"
	"github.com/nibzard/gopher-go/internal/storage"
	"github.com/nibzard/gopher-go/internal/ui"
)

// Version is set via ldflags at build time.
var Version = "dev"

// Run executes the gopher CLI.
func Run(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("gopher", flag.ContinueOnError)
	fs.Usage = func() {
		printUsage(fs, os.Stderr)
	}
	help := fs.Bool("help", false, "Show help")
	fs.BoolVar(help, "h", false, "Show help")
	showVersion := fs.Bool("version", false, "Show version")
	fs.BoolVar(showVersion, "v", false, "Show version")

	cws, err := config.LoadWithSources(fs, args)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	cfg := cws.Config
	if *help {
		printUsage(fs, os.Stdout)
		return nil
	}
	if *showVersion {
		return versionCommand()
	}

	// No args, or a leading flag, means chat.
	subcommand := "chat"
	remainingArgs := fs.Args()
	if len(remainingArgs) > 0 && !strings.HasPrefix(remainingArgs[0], "-") {
		subcommand = remainingArgs[0]
		remainingArgs = remainingArgs[1:]
	}

	switch subcommand {
	case "chat":
		return chatCommand(ctx, cfg, remainingArgs)
	case "tui":
		cfg.UI = config.UITUI
		return chatCommand(ctx, cfg, remainingArgs)
	case "list", "ls":
		return listCommand(cfg, remainingArgs)
	case "do":
		return doCommand(cfg, remainingArgs)
	case "init":
		return initCommand(cfg, remainingArgs)
	case "config":
		return configCommand(cws, remainingArgs)
	case "logs", "tail":
		return logsCommand(cfg, remainingArgs)
	case "doctor":
		return doctorCommand(cfg, remainingArgs)
	case "completion":
		return completionCommand(cfg, remainingArgs)
	case "version":
		return versionCommand()
	case "help":
		printUsage(fs, os.Stdout)
		return nil
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", subcommand)
		printUsage(fs, os.Stderr)
		return fmt.Errorf("unknown command: %s", subcommand)
	}
}

// openSession loads the task file and returns a session logging to w.
func openSession(cfg *config.Config, w io.Writer) (*gopher.Gopher, *log.Logger, error) {
	logger, err := logging.New(w, cfg.LoggingOptions())
	if err != nil {
		return nil, nil, fmt.Errorf("creating logger: %w", err)
	}
	g, err := gopher.Open(gopher.Options{
		TaskFile:      cfg.TaskFile,
		FindCacheSize: cfg.FindCacheSize,
		Logger:        logger,
	})
	if err != nil {
		return nil, nil, fmt.Errorf("opening task file: %w", err)
	}
	return g, logger, nil
}

// chatCommand runs an interactive session on the console or in the TUI.
// Logs go to a per-session file so they do not interleave with replies.
func chatCommand(ctx context.Context, cfg *config.Config, args []string) error {
	fs := flag.NewFlagSet("gopher chat", flag.ContinueOnError)
	noAltScreen := fs.Bool("inline", false, "Render the TUI inline instead of in the alternate screen")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() > 0 {
		return fmt.Errorf("unexpected arguments: %v", fs.Args())
	}

	var logOut io.Writer = io.Discard
	session, err := logging.NewSessionLog(cfg.LogDir, cfg.ProjectRoot)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: session log disabled: %v\n", err)
	} else {
		defer session.Close()
		logOut = session.Writer()
	}

	g, logger, err := openSession(cfg, logOut)
	if err != nil {
		return err
	}
	logger.Info("session started", "version", Version, "ui", cfg.UI, "tasks", cfg.TaskFile)
	defer func() {
		logger.Info("session ended", "tasks", g.List().Size())
	}()

	if cfg.UI == config.UITUI {
		return ui.RunTUI(ctx, g,
			ui.WithTaskFile(cfg.TaskFile),
			ui.WithAltScreen(!*noAltScreen),
		)
	}
	return ui.RunConsole(ctx, g, os.Stdin, os.Stdout)
}

// listCommand prints the task list, or the tasks matching a keyword.
func listCommand(cfg *config.Config, args []string) error {
	fs := flag.NewFlagSet("gopher list", flag.ContinueOnError)
	if err := fs.Parse(args); err != nil {
		return err
	}

	g, _, err := openSession(cfg, os.Stderr)
	if err != nil {
		return err
	}
	line := "list"
	if fs.NArg() > 0 {
		line = "find " + strings.Join(fs.Args(), " ")
	}
	fmt.Println(g.Respond(line).Message)
	return nil
}

// doCommand runs one command line and saves the result.
func doCommand(cfg *config.Config, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("usage: gopher do <command>")
	}

	g, _, err := openSession(cfg, os.Stderr)
	if err != nil {
		return err
	}
	reply := g.Respond(strings.Join(args, " "))
	fmt.Println(reply.Message)
	if reply.Err != nil {
		return fmt.Errorf("command failed: %w", reply.Err)
	}
	return nil
}

// initCommand creates the .gopher directory with an example config and an
// empty task file. Existing files are left alone.
func initCommand(cfg *config.Config, args []string) error {
	fs := flag.NewFlagSet("gopher init", flag.ContinueOnError)
	if err := fs.Parse(args); err != nil {
		return err
	}
	workDir := cfg.ProjectRoot
	if fs.NArg() > 0 {
		workDir = fs.Arg(0)
	}

	if err := os.MkdirAll(gopherdir.DirPath(workDir), 0755); err != nil {
		return fmt.Errorf("creating %s: %w", gopherdir.Dir, err)
	}
	files := []struct {
		path    string
		content string
	}{
		{gopherdir.ConfigPath(workDir), config.ExampleConfig()},
		{gopherdir.TaskPath(workDir), ""},
	}
	for _, f := range files {
		if _, err := os.Stat(f.path); err == nil {
			fmt.Printf("Skipped %s (already exists)\n", f.path)
			continue
		}
		if err := os.WriteFile(f.path, []byte(f.content), 0644); err != nil {
			return fmt.Errorf("writing %s: %w", f.path, err)
		}
		fmt.Printf("Created %s\n", f.path)
	}
	return nil
}

// configCommand shows the effective configuration and where each value came from.
func configCommand(cws *config.ConfigWithSources, args []string) error {
	fs := flag.NewFlagSet("gopher config", flag.ContinueOnError)
	asTOML := fs.Bool("toml", false, "Print the effective config as TOML")
	example := fs.Bool("example", false, "Print an example config file")
	schema := fs.Bool("schema", false, "Print the config file JSON Schema")
	if err := fs.Parse(args); err != nil {
		return err
	}

	switch {
	case *example:
		fmt.Print(config.ExampleConfig())
		return nil
	case *schema:
		_, err := os.Stdout.Write(config.Schema())
		return err
	case *asTOML:
		return cws.Config.WriteTOML(os.Stdout)
	}

	fmt.Println("Config files:")
	fmt.Printf("  user:    %s\n", orNone(cws.UserFile))
	fmt.Printf("  project: %s\n", orNone(cws.ProjectFile))
	fmt.Println()
	fmt.Println("Effective config:")
	for _, field := range config.Fields() {
		fmt.Printf("  %-16s %-40s (%s)\n", field, cws.Config.Value(field), cws.Sources[field])
	}
	return nil
}

func orNone(s string) string {
	if s == "" {
		return "(none)"
	}
	return s
}

// logsCommand prints the latest session log for this project.
func logsCommand(cfg *config.Config, args []string) error {
	fs := flag.NewFlagSet("gopher logs", flag.ContinueOnError)
	n := fs.Int("n", 0, "Number of lines to show (0 = all)")
	pathOnly := fs.Bool("path", false, "Print the log file path only")
	if err := fs.Parse(args); err != nil {
		return err
	}

	logDir, err := logging.SessionLogDir(cfg.LogDir, cfg.ProjectRoot)
	if err != nil {
		return fmt.Errorf("finding log directory: %w", err)
	}
	logPath, err := logging.FindLatestLog(logDir)
	if err != nil {
		return fmt.Errorf("finding latest log: %w", err)
	}
	if logPath == "" {
		fmt.Println("No log files found.")
		return nil
	}
	if *pathOnly {
		fmt.Println(logPath)
		return nil
	}

	fmt.Printf("Showing: %s\n\n", logPath)
	return logging.TailLog(os.Stdout, logPath, *n)
}

// doctorCommand checks the project root, the task file and the log directory.
func doctorCommand(cfg *config.Config, args []string) error {
	fs := flag.NewFlagSet("gopher doctor", flag.ContinueOnError)
	verbose := fs.Bool("v", false, "Verbose output")
	if err := fs.Parse(args); err != nil {
		return err
	}

	fmt.Println("Gopher Doctor")
	fmt.Println("=============")
	fmt.Println()

	allOK := true

	fmt.Printf("Project root: %s\n", cfg.ProjectRoot)
	if _, err := os.Stat(cfg.ProjectRoot); err != nil {
		fmt.Printf("  ❌ Error: %v\n", err)
		allOK = false
	} else {
		fmt.Println("  ✅ OK")
	}
	fmt.Println()

	fmt.Println("Config:")
	fmt.Printf("  ✅ UI: %s\n", cfg.UI)
	fmt.Printf("  ✅ Log level: %s (%s)\n", cfg.LogLevel, cfg.LogFormat)
	fmt.Printf("  ✅ Find cache: %d patterns\n", cfg.FindCacheSize)
	fmt.Println()

	if !checkTaskFile(cfg.TaskFile, *verbose) {
		allOK = false
	}
	fmt.Println()

	if logDir, err := logging.SessionLogDir(cfg.LogDir, cfg.ProjectRoot); err != nil {
		fmt.Printf("Log dir: %s\n  ❌ Error: %v\n", cfg.LogDir, err)
		allOK = false
	} else {
		fmt.Printf("Log dir: %s\n", logDir)
		if _, err := os.Stat(logDir); err != nil {
			fmt.Println("  ⚠️  Not found (created on first session)")
		} else {
			fmt.Println("  ✅ OK")
		}
	}
	fmt.Println()

	if allOK {
		fmt.Println("✅ All checks passed.")
		return nil
	}
	fmt.Println("⚠️  Some checks failed. Gopher may not function correctly.")
	return fmt.Errorf("doctor checks failed")
}

func checkTaskFile(path string, verbose bool) bool {
	fmt.Printf("Task file: %s\n", path)
	info, err := os.Stat(path)
	switch {
	case errors.Is(err, os.ErrNotExist):
		if dir := filepath.Dir(path); !isDir(dir) {
			fmt.Printf("  ⚠️  Not found, %s will be created on first change\n", dir)
		} else {
			fmt.Println("  ⚠️  Not found (created on first change)")
		}
		return true
	case err != nil:
		fmt.Printf("  ❌ Error: %v\n", err)
		return false
	case info.IsDir():
		fmt.Println("  ❌ Error: path is a directory")
		return false
	}

	loaded, err := storage.NewFileStore(path, logging.Discard()).Load()
	if err != nil {
		fmt.Printf("  ❌ Load error: %v\n", err)
		return false
	}
	fmt.Printf("  ✅ %d tasks\n", len(loaded.Tasks))
	ok := true
	if loaded.Skipped > 0 {
		fmt.Printf("  ❌ %d malformed lines would be dropped on the next save\n", loaded.Skipped)
		ok = false
	}
	if verbose {
		for i, t := range loaded.Tasks {
			fmt.Printf("    %d. %s\n", i+1, t)
		}
	}
	return ok
}

func isDir(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}

// versionCommand prints version information.
func versionCommand() error {
	fmt.Printf("gopher version %s\n", Version)
	return nil
}

// printUsage prints the usage message.
func printUsage(fs *flag.FlagSet, w io.Writer) {
	fmt.Fprintln(w, "Gopher - a personal task tracker you talk to")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Usage:")
	fmt.Fprintln(w, "  gopher [options] [command]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  chat              Start an interactive session (default command)")
	fmt.Fprintln(w, "  tui               Start an interactive session in the terminal UI")
	fmt.Fprintln(w, "  list [pattern]    Print all tasks, or the tasks matching pattern")
	fmt.Fprintln(w, "  do <command...>   Run one command, e.g. gopher do todo read book")
	fmt.Fprintln(w, "  init [dir]        Create .gopher with an example config and empty task file")
	fmt.Fprintln(w, "  config            Show the effective config and its sources")
	fmt.Fprintln(w, "  logs              Print the latest session log")
	fmt.Fprintln(w, "  doctor            Check the task file and log directory")
	fmt.Fprintln(w, "  completion <sh>   Print a shell completion script (bash, zsh, fish)")
	fmt.Fprintln(w, "  version           Show version information")
	fmt.Fprintln(w, "  help              Show this help message")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Global Options:")
	fs.SetOutput(w)
	fs.PrintDefaults()
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Session Commands:")
	fmt.Fprintln(w, "  todo DESC | deadline DESC /by DATE | event DESC /from DATE /to DATE")
	fmt.Fprintln(w, "  list | mark N... | unmark N... | delete N... | find PATTERN")
	fmt.Fprintln(w, "  update N description|by|from|to VALUE | bye")
	fmt.Fprintln(w, "  DATE is yyyy-MM-dd or yyyy-MM-dd HH:mm")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Config Options (use with 'config' command):")
	fmt.Fprintln(w, "  -toml     Print the effective config as TOML")
	fmt.Fprintln(w, "  -example  Print an example config file")
	fmt.Fprintln(w, "  -schema   Print the config file JSON Schema")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Logs Options (use with 'logs' command):")
	fmt.Fprintln(w, "  -n int    Number of lines to show (0 = all)")
	fmt.Fprintln(w, "  -path     Print the log file path only")
}
