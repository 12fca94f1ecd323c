package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"testing"

	"github.com/vovakirdan/unbolt/internal/config"
	"github.com/vovakirdan/unbolt/internal/scene"
)

const plankLevel = `
id: plank
fasteners:
  - {name: h1, x: -40, y: 0, filled: true}
  - {name: h2, x: 40, y: 0, filled: true}
  - {name: s1, x: 0, y: 100}
  - {name: s2, x: 50, y: 100}
details:
  - {name: board, x: 0, y: 0, w: 100, h: 20, fasteners: [h1, h2]}
metadata:
  solution: %s
`

func writeLevel(t *testing.T, dir, name, solution string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	content := fmt.Sprintf(plankLevel, strconv.Quote(solution))
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestValidateFile(t *testing.T) {
	dir := t.TempDir()
	opts := scene.DefaultOptions()

	tests := []struct {
		name     string
		solution string
		wantErr  bool
	}{
		{"winning solution", "h1>s1,h2>s2", false},
		{"no solution", "", false},
		{"losing solution", "h1>s1", true},
		{"unknown fastener", "h1>s9", true},
		{"malformed", "h1-s1", true},
	}

	for i, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			path := writeLevel(t, dir, string(rune('a'+i))+".yaml", tc.solution)
			err := validateFile(path, opts)
			if (err != nil) != tc.wantErr {
				t.Errorf("validateFile() error = %v, wantErr %v", err, tc.wantErr)
			}
		})
	}
}

func TestResolveLevel(t *testing.T) {
	dir := t.TempDir()
	path := writeLevel(t, dir, "plank.yaml", "h1>s1,h2>s2")
	cfg := config.DefaultConfig()

	lvl, err := resolveLevel(path, cfg)
	if err != nil || lvl.ID != "plank" {
		t.Errorf("resolveLevel(file) = %q, %v", lvl.ID, err)
	}

	lvl, err = resolveLevel("intro", cfg)
	if err != nil || lvl.ID != "intro" {
		t.Errorf("resolveLevel(builtin) = %q, %v", lvl.ID, err)
	}

	if _, err := resolveLevel("plank", cfg); err == nil {
		t.Error("user level should not resolve without levels.dir")
	}

	cfg.Levels.Dir = dir
	lvl, err = resolveLevel("plank", cfg)
	if err != nil || lvl.ID != "plank" {
		t.Errorf("resolveLevel(dir) = %q, %v", lvl.ID, err)
	}
}
