package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestToTitle(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"my-garden", "My Garden"},
		{"notes", "Notes"},
	}
	for _, tt := range tests {
		if got := toTitle(tt.in); got != tt.want {
			t.Errorf("toTitle(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestRunNew(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "my-garden")
	var out bytes.Buffer
	if err := runNew(&out, dir, time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)); err != nil {
		t.Fatalf("runNew failed: %v", err)
	}

	for _, rel := range []string{"garden.yaml", ".env.example", "content/index.md", "content/essays/welcome.md", "content/maps/index.md", "static/favicon.svg"} {
		if _, err := os.Stat(filepath.Join(dir, rel)); err != nil {
			t.Errorf("missing %s: %v", rel, err)
		}
	}

	cfg, err := os.ReadFile(filepath.Join(dir, "garden.yaml"))
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(cfg), `name: "My Garden"`) {
		t.Errorf("garden.yaml = %s", cfg)
	}
	welcome, err := os.ReadFile(filepath.Join(dir, "content", "essays", "welcome.md"))
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(welcome), "created: 2024-05-01") {
		t.Errorf("welcome.md = %s", welcome)
	}
	if !strings.Contains(out.String(), "garden serve --watch") {
		t.Errorf("output = %s", out.String())
	}

	if err := runNew(&out, dir, time.Now()); err == nil {
		t.Error("expected error for existing directory")
	}
}
