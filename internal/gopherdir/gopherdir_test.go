package gopherdir

import (
	"path/filepath"
	"testing"
)

func TestPaths(t *testing.T) {
	tests := []struct {
		name string
		got  string
		want string
	}{
		{"dir empty", DirPath(""), ".gopher"},
		{"dir dot", DirPath("."), ".gopher"},
		{"task", TaskPath("/work"), filepath.Join("/work", ".gopher", "task.txt")},
		{"config", ConfigPath("/work"), filepath.Join("/work", ".gopher", "gopher.toml")},
		{"logs relative", LogsPath(""), filepath.Join(".gopher", "logs")},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.got != tt.want {
				t.Errorf("got %q, want %q", tt.got, tt.want)
			}
		})
	}
}
