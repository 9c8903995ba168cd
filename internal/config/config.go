package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/w154594742/secretgate/internal/rules"
)

// ErrNotFound is returned when no config file exists at the searched
// locations. Callers treat it as "use defaults".
var ErrNotFound = errors.New("no config file")

// FileConfig is the on-disk YAML configuration shape.
type FileConfig struct {
	Format         *string      `yaml:"format"`
	Threads        *int         `yaml:"threads"`
	NoColor        *bool        `yaml:"no_color"`
	SkipExtensions []string     `yaml:"skip_extensions"`
	SkipPaths      []string     `yaml:"skip_paths"`
	Rules          []rules.Spec `yaml:"rules"`
	DisableRules   []string     `yaml:"disable_rules"`
}

// LocalNames are the repo-local config file names, in search order.
var LocalNames = []string{".secretgate.yml", ".secretgate.yaml", "secretgate.yml", "secretgate.yaml"}

// LoadFile reads a YAML config file from the provided path.
func LoadFile(path string) (FileConfig, error) {
	var cfg FileConfig
	b, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(b, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, nil
}

// LoadLocal searches for a repo-local config file in the given root.
func LoadLocal(repoRoot string) (FileConfig, error) {
	for _, name := range LocalNames {
		p := filepath.Join(repoRoot, name)
		if _, err := os.Stat(p); err == nil {
			return LoadFile(p)
		}
	}
	return FileConfig{}, ErrNotFound
}

// LoadGlobal loads the global config file from XDG base directory or ~/.config.
func LoadGlobal() (FileConfig, error) {
	base := os.Getenv("XDG_CONFIG_HOME")
	if base == "" {
		home, _ := os.UserHomeDir()
		if home != "" {
			base = filepath.Join(home, ".config")
		}
	}
	if base == "" {
		return FileConfig{}, ErrNotFound
	}
	p := filepath.Join(base, "secretgate", "config.yml")
	if _, err := os.Stat(p); err == nil {
		return LoadFile(p)
	}
	return FileConfig{}, ErrNotFound
}

// Merge layers local over global: scalar fields from local win when set,
// list fields are concatenated (global first).
func Merge(global, local FileConfig) FileConfig {
	out := global
	if local.Format != nil {
		out.Format = local.Format
	}
	if local.Threads != nil {
		out.Threads = local.Threads
	}
	if local.NoColor != nil {
		out.NoColor = local.NoColor
	}
	out.SkipExtensions = concat(global.SkipExtensions, local.SkipExtensions)
	out.SkipPaths = concat(global.SkipPaths, local.SkipPaths)
	out.Rules = concat(global.Rules, local.Rules)
	out.DisableRules = concat(global.DisableRules, local.DisableRules)
	return out
}

func concat[T any](a, b []T) []T {
	if len(a) == 0 && len(b) == 0 {
		return nil
	}
	out := make([]T, 0, len(a)+len(b))
	out = append(out, a...)
	return append(out, b...)
}
