package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
)

func writeProject(t *testing.T, modulePath, yamlBody string) string {
	t.Helper()
	dir := t.TempDir()
	gomod := "module " + modulePath + "\n\ngo 1.24\n"
	if err := os.WriteFile(filepath.Join(dir, "go.mod"), []byte(gomod), 0o644); err != nil {
		t.Fatal(err)
	}
	if yamlBody != "" {
		if err := os.WriteFile(filepath.Join(dir, FileName), []byte(yamlBody), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	return dir
}

func TestResolveDefaults(t *testing.T) {
	dir := writeProject(t, "github.com/acme/weather-app/v2", "")

	cfg, err := Resolve(dir)
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if cfg.AppName != "weather-app" {
		t.Errorf("AppName = %q, want weather-app", cfg.AppName)
	}
	if cfg.LogLevel != log.InfoLevel {
		t.Errorf("LogLevel = %v, want info", cfg.LogLevel)
	}
}

func TestResolveFromFile(t *testing.T) {
	dir := writeProject(t, "example.com/perm", `
app:
  name: Permission Demo
log:
  level: debug
`)

	cfg, err := Resolve(dir)
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if cfg.AppName != "Permission Demo" {
		t.Errorf("AppName = %q", cfg.AppName)
	}
	if cfg.LogLevel != log.DebugLevel {
		t.Errorf("LogLevel = %v, want debug", cfg.LogLevel)
	}
}

func TestResolveErrors(t *testing.T) {
	tests := []struct {
		name    string
		yaml    string
		wantSub string
	}{
		{"bad yaml", "app: [", "failed to parse"},
		{"bad level", "log:\n  level: loud\n", "log.level"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := writeProject(t, "example.com/perm", tt.yaml)
			_, err := Resolve(dir)
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), tt.wantSub) {
				t.Errorf("error = %q, want substring %q", err, tt.wantSub)
			}
		})
	}
}

// Keys the loader does not know about must not cost the settings it does.
func TestResolveIgnoresUnknownKeys(t *testing.T) {
	dir := writeProject(t, "example.com/perm", "app:\n  id: Demo\nlog:\n  level: debug\n")

	cfg, err := Resolve(dir)
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if cfg.LogLevel != log.DebugLevel {
		t.Errorf("LogLevel = %v, want debug", cfg.LogLevel)
	}
	if cfg.AppName != "perm" {
		t.Errorf("AppName = %q, want perm", cfg.AppName)
	}
}

func TestResolveMissingGoMod(t *testing.T) {
	if _, err := Resolve(t.TempDir()); err == nil {
		t.Fatal("expected error without go.mod")
	}
}

func TestLoadOptionalMissing(t *testing.T) {
	cfg, err := LoadOptional(t.TempDir())
	if err != nil {
		t.Fatalf("LoadOptional: %v", err)
	}
	if cfg.App.Name != "" || cfg.Log.Level != "" {
		t.Errorf("expected empty config, got %+v", cfg)
	}
}

func TestFindProjectRoot(t *testing.T) {
	root := writeProject(t, "example.com/perm", "")
	nested := filepath.Join(root, "a", "b")
	if err := os.MkdirAll(nested, 0o755); err != nil {
		t.Fatal(err)
	}

	got, err := FindProjectRoot(nested)
	if err != nil {
		t.Fatalf("FindProjectRoot: %v", err)
	}
	if got != root {
		t.Errorf("FindProjectRoot = %q, want %q", got, root)
	}
}
