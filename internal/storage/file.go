// Package storage reads and writes the task file.
//
// The file holds one task per line in the save-line format
// "KIND | STATUS | DESCRIPTION[ | yyyy-MM-dd HH:mm]*". Loading skips and
// logs lines that do not decode; saving rewrites the whole file through a
// temporary file that is renamed into place.
package storage

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/nibzard/gopher-go/internal/task"
)

const maxLineSize = 1 << 20

// FileStore persists tasks to a single flat file.
type FileStore struct {
	path   string
	logger *log.Logger
}

// NewFileStore returns a store for path. A nil logger discards output.
func NewFileStore(path string, logger *log.Logger) *FileStore {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &FileStore{path: path, logger: logger}
}

// Path returns the task file path.
func (s *FileStore) Path() string {
	return s.path
}

// LoadResult describes a load.
type LoadResult struct {
	Tasks   []*task.Task
	Skipped int
}

// Load reads every task in the file. A missing file is an empty list.
func (s *FileStore) Load() (*LoadResult, error) {
	f, err := os.Open(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			s.logger.Debug("task file not found, starting empty", "path", s.path)
			return &LoadResult{}, nil
		}
		return nil, fmt.Errorf("open task file: %w", err)
	}
	defer f.Close()

	result, err := s.decode(f)
	if err != nil {
		return nil, fmt.Errorf("read task file %s: %w", s.path, err)
	}
	s.logger.Debug("tasks loaded", "path", s.path, "count", len(result.Tasks), "skipped", result.Skipped)
	return result, nil
}

func (s *FileStore) decode(r io.Reader) (*LoadResult, error) {
	result := &LoadResult{}
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)

	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimRight(scanner.Text(), "\r")
		if strings.TrimSpace(line) == "" {
			continue
		}
		t, err := task.ParseSaveLine(line)
		if err != nil {
			result.Skipped++
			s.logger.Warn("skipping malformed task line", "path", s.path, "line", lineNo, "err", err)
			continue
		}
		result.Tasks = append(result.Tasks, t)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

// Save replaces the file with the given tasks. The parent directory is
// created if needed.
func (s *FileStore) Save(tasks []*task.Task) error {
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("create task dir: %w", err)
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(s.path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("create temp task file: %w", err)
	}
	tmpPath := tmp.Name()
	cleanup := func() {
		tmp.Close()
		os.Remove(tmpPath)
	}

	w := bufio.NewWriter(tmp)
	for _, t := range tasks {
		if _, err := w.WriteString(t.SaveLine() + "\n"); err != nil {
			cleanup()
			return fmt.Errorf("write task file: %w", err)
		}
	}
	if err := w.Flush(); err != nil {
		cleanup()
		return fmt.Errorf("write task file: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		cleanup()
		return fmt.Errorf("sync task file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("close task file: %w", err)
	}
	if err := os.Chmod(tmpPath, 0644); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("chmod task file: %w", err)
	}
	if err := os.Rename(tmpPath, s.path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("replace task file: %w", err)
	}
	s.logger.Debug("tasks saved", "path", s.path, "count", len(tasks))
	return nil
}
