// Package config loads the optional apppermission.yaml next to go.mod and
// fills in defaults derived from the module path.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"golang.org/x/mod/modfile"
	"golang.org/x/mod/module"
	"gopkg.in/yaml.v3"
)

// FileName is the name of the optional configuration file.
const FileName = "apppermission.yaml"

// Config mirrors apppermission.yaml.
type Config struct {
	App AppConfig `yaml:"app"`
	Log LogConfig `yaml:"log"`
}

// AppConfig contains application metadata. Name prefixes log records.
type AppConfig struct {
	Name string `yaml:"name,omitempty"`
}

// LogConfig selects the log level: debug, info, warn or error.
type LogConfig struct {
	Level string `yaml:"level,omitempty"`
}

// Resolved contains configuration with defaults applied.
type Resolved struct {
	AppName  string
	LogLevel log.Level
}

// LoadOptional reads apppermission.yaml from dir. A missing file yields an
// empty Config.
func LoadOptional(dir string) (*Config, error) {
	data, err := os.ReadFile(filepath.Join(dir, FileName))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return &Config{}, nil
		}
		return nil, fmt.Errorf("failed to read %s: %w", FileName, err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", FileName, err)
	}
	return &cfg, nil
}

// Resolve loads apppermission.yaml (if present) from dir and applies
// defaults. dir must contain a go.mod.
func Resolve(dir string) (*Resolved, error) {
	modulePath, err := readModulePath(dir)
	if err != nil {
		return nil, err
	}

	cfg, err := LoadOptional(dir)
	if err != nil {
		return nil, err
	}

	appName := strings.TrimSpace(cfg.App.Name)
	if appName == "" {
		appName = defaultAppName(modulePath, dir)
	}

	level := log.InfoLevel
	if s := strings.TrimSpace(cfg.Log.Level); s != "" {
		level, err = log.ParseLevel(s)
		if err != nil {
			return nil, fmt.Errorf("log.level: %w", err)
		}
	}

	return &Resolved{
		AppName:  appName,
		LogLevel: level,
	}, nil
}

// FindProjectRoot walks up from start to the nearest directory holding a
// go.mod.
func FindProjectRoot(start string) (string, error) {
	dir := start
	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir, nil
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", fmt.Errorf("not in a Go module (no go.mod found above %s)", start)
		}
		dir = parent
	}
}

func readModulePath(dir string) (string, error) {
	data, err := os.ReadFile(filepath.Join(dir, "go.mod"))
	if err != nil {
		return "", fmt.Errorf("failed to read go.mod: %w", err)
	}
	path := modfile.ModulePath(data)
	if path == "" {
		return "", fmt.Errorf("could not determine module path from go.mod")
	}
	return path, nil
}

// defaultAppName is the last element of the module path with any major
// version suffix removed, or the directory name.
func defaultAppName(modulePath, dir string) string {
	name := filepath.Base(dir)
	if prefix, _, ok := module.SplitPathVersion(modulePath); ok {
		name = prefix[strings.LastIndex(prefix, "/")+1:]
	}
	if name == "" || name == "." || name == string(filepath.Separator) {
		return "apppermission"
	}
	return name
}
