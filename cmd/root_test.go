// Package cmd provides tests for CLI command handlers.
package cmd

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/nibzard/gopher-go/internal/config"
	"github.com/nibzard/gopher-go/internal/logging"
)

// isolate runs the test in an empty project directory with an empty home so
// no real config, task file or log directory is touched.
func isolate(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("USERPROFILE", home)
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(home, ".config"))
	for _, key := range []string{
		"GOPHER_TASK_FILE", "GOPHER_UI", "GOPHER_LOG_LEVEL", "GOPHER_LOG_FORMAT",
		"GOPHER_LOG_TIMESTAMPS", "GOPHER_LOG_CALLER", "GOPHER_LOG_DIR", "GOPHER_FIND_CACHE",
	} {
		t.Setenv(key, "")
	}
	dir := t.TempDir()
	prev, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = os.Chdir(prev) })
	return dir
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	return captureStdout(t, func() error {
		return Run(context.Background(), args)
	})
}

// TestRun tests the main Run function.
func TestRun(t *testing.T) {
	isolate(t)

	tests := []struct {
		name    string
		args    []string
		want    string
		wantErr bool
	}{
		{name: "help flag", args: []string{"--help"}, want: "Usage:"},
		{name: "short help flag", args: []string{"-h"}, want: "Global Options:"},
		{name: "help command", args: []string{"help"}, want: "Commands:"},
		{name: "version flag", args: []string{"--version"}, want: "gopher version dev"},
		{name: "short version flag", args: []string{"-v"}, want: "gopher version"},
		{name: "version command", args: []string{"version"}, want: "gopher version"},
		{name: "unknown command", args: []string{"frobnicate"}, wantErr: true},
		{name: "unknown flag", args: []string{"-colour"}, wantErr: true},
		{name: "bad ui", args: []string{"-ui", "gui", "list"}, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := run(t, tt.args...)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Run(%v) error = %v, wantErr %v", tt.args, err, tt.wantErr)
			}
			if !strings.Contains(out, tt.want) {
				t.Errorf("output missing %q:\n%s", tt.want, out)
			}
		})
	}
}

func TestDoAndList(t *testing.T) {
	dir := isolate(t)

	out, err := run(t, "do", "todo", "read", "book")
	if err != nil {
		t.Fatalf("do failed: %v", err)
	}
	if !strings.Contains(out, "Got it. I've added this task:\n  [T][ ] read book") {
		t.Errorf("do output: %q", out)
	}
	if _, err := run(t, "do", "deadline return book /by 2024-08-30"); err != nil {
		t.Fatalf("do failed: %v", err)
	}

	data, err := os.ReadFile(filepath.Join(dir, ".gopher", "task.txt"))
	if err != nil {
		t.Fatalf("ReadFile failed: %v", err)
	}
	if want := "T |   | read book\nD |   | return book | 2024-08-30 00:00\n"; string(data) != want {
		t.Errorf("task file:\ngot  %q\nwant %q", data, want)
	}

	out, err = run(t, "list")
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if !strings.Contains(out, "1. [T][ ] read book\n2. [D][ ] return book (by Aug 30 2024 00:00)") {
		t.Errorf("list output: %q", out)
	}

	out, err = run(t, "ls", "^return")
	if err != nil {
		t.Fatalf("list with pattern failed: %v", err)
	}
	if !strings.Contains(out, "matching tasks") || strings.Contains(out, "read book") {
		t.Errorf("find output: %q", out)
	}

	out, err = run(t, "do", "delete", "9")
	if err == nil {
		t.Fatal("expected error for invalid task number")
	}
	if !strings.Contains(out, "Task number 9 is invalid") {
		t.Errorf("do error output: %q", out)
	}

	if _, err := run(t, "do"); err == nil {
		t.Error("expected error for do without a command")
	}
}

func TestTasksFlag(t *testing.T) {
	dir := isolate(t)
	path := filepath.Join(dir, "elsewhere", "mine.txt")

	if _, err := run(t, "-tasks", path, "do", "todo x"); err != nil {
		t.Fatalf("do failed: %v", err)
	}
	if _, err := os.Stat(path); err != nil {
		t.Errorf("task file not written at -tasks path: %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, ".gopher", "task.txt")); err == nil {
		t.Error("default task file must not be written")
	}
}

func TestChatCommandConsole(t *testing.T) {
	dir := isolate(t)
	logDir := filepath.Join(dir, "logs")

	in, err := os.CreateTemp(t.TempDir(), "stdin")
	if err != nil {
		t.Fatalf("CreateTemp failed: %v", err)
	}
	in.WriteString("todo a\nmark 1\nbye\n")
	in.Seek(0, 0)
	oldStdin := os.Stdin
	os.Stdin = in
	defer func() {
		os.Stdin = oldStdin
		in.Close()
	}()

	out, err := run(t, "-log-dir", logDir, "-log-level", "info")
	if err != nil {
		t.Fatalf("chat failed: %v", err)
	}
	for _, want := range []string{"Hello! I'm Gopher.", "[T][X] a", "Bye. Hope to see you again soon!"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}

	sessionDir, err := logging.SessionLogDir(logDir, dir)
	if err != nil {
		t.Fatalf("SessionLogDir failed: %v", err)
	}
	latest, err := logging.FindLatestLog(sessionDir)
	if err != nil || latest == "" {
		t.Fatalf("no session log written: %q, %v", latest, err)
	}
	data, _ := os.ReadFile(latest)
	if !strings.Contains(string(data), "session started") || !strings.Contains(string(data), "session ended") {
		t.Errorf("session log: %q", data)
	}
}

func TestInitCommand(t *testing.T) {
	dir := isolate(t)

	out, err := run(t, "init")
	if err != nil {
		t.Fatalf("init failed: %v", err)
	}
	if strings.Count(out, "Created") != 2 {
		t.Errorf("init output: %q", out)
	}
	data, err := os.ReadFile(filepath.Join(dir, ".gopher", "gopher.toml"))
	if err != nil || string(data) != config.ExampleConfig() {
		t.Errorf("config file: %q, %v", data, err)
	}

	// The generated config is picked up and the second run keeps both files.
	out, err = run(t, "init")
	if err != nil {
		t.Fatalf("second init failed: %v", err)
	}
	if strings.Count(out, "Skipped") != 2 {
		t.Errorf("second init output: %q", out)
	}
}

func TestConfigCommand(t *testing.T) {
	dir := isolate(t)
	if err := os.WriteFile(filepath.Join(dir, "gopher.toml"), []byte("ui = \"tui\"\n"), 0644); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}

	out, err := run(t, "-log-level", "debug", "config")
	if err != nil {
		t.Fatalf("config failed: %v", err)
	}
	for _, want := range []string{"project: " + filepath.Join(dir, "gopher.toml"), "user:    (none)", "(project file)", "(flag)", "(default)"} {
		if !strings.Contains(out, want) {
			t.Errorf("config output missing %q:\n%s", want, out)
		}
	}

	tests := []struct {
		flag string
		want string
	}{
		{"-toml", `ui = "tui"`},
		{"-example", "# Gopher configuration file"},
		{"-schema", `"additionalProperties": false`},
	}
	for _, tt := range tests {
		out, err := run(t, "config", tt.flag)
		if err != nil {
			t.Fatalf("config %s failed: %v", tt.flag, err)
		}
		if !strings.Contains(out, tt.want) {
			t.Errorf("config %s missing %q:\n%s", tt.flag, tt.want, out)
		}
	}
}

func TestLogsCommand(t *testing.T) {
	dir := isolate(t)
	logDir := filepath.Join(dir, "logs")

	out, err := run(t, "-log-dir", logDir, "logs")
	if err != nil {
		t.Fatalf("logs failed: %v", err)
	}
	if !strings.Contains(out, "No log files found.") {
		t.Errorf("logs output: %q", out)
	}

	session, err := logging.NewSessionLog(logDir, dir)
	if err != nil {
		t.Fatalf("NewSessionLog failed: %v", err)
	}
	session.Writer().Write([]byte("first\nsecond\n"))
	session.Close()

	out, err = run(t, "-log-dir", logDir, "logs", "-n", "1")
	if err != nil {
		t.Fatalf("logs failed: %v", err)
	}
	if !strings.HasSuffix(out, "second\n") || strings.Contains(out, "first") {
		t.Errorf("logs output: %q", out)
	}

	out, err = run(t, "-log-dir", logDir, "logs", "-path")
	if err != nil || strings.TrimSpace(out) != session.Path {
		t.Errorf("logs -path: %q, %v", out, err)
	}
}

func TestDoctorCommand(t *testing.T) {
	dir := isolate(t)

	if _, err := run(t, "doctor"); err != nil {
		t.Errorf("doctor on a fresh project failed: %v", err)
	}

	taskFile := filepath.Join(dir, ".gopher", "task.txt")
	os.MkdirAll(filepath.Dir(taskFile), 0755)
	if err := os.WriteFile(taskFile, []byte("T |   | ok\nnot a task\n"), 0644); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}
	out, err := run(t, "doctor", "-v")
	if err == nil {
		t.Error("expected doctor to fail on a malformed task file")
	}
	for _, want := range []string{"✅ 1 tasks", "1 malformed lines", "1. [T][ ] ok"} {
		if !strings.Contains(out, want) {
			t.Errorf("doctor output missing %q:\n%s", want, out)
		}
	}
}
