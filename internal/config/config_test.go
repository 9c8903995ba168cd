package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTemp(t *testing.T, dir, name, body string) string {
	t.Helper()
	p := filepath.Join(dir, name)
	if err := os.WriteFile(p, []byte(body), 0o644); err != nil {
		t.Fatalf("write temp file: %v", err)
	}
	return p
}

func TestLoadFile_Basic(t *testing.T) {
	dir := t.TempDir()
	p := writeTemp(t, dir, "secretgate.yaml", `
format: json
threads: 4
no_color: true
skip_extensions: [".woff2"]
skip_paths: ["dist/**"]
disable_rules: [google_api_key]
rules:
  - name: internal_token
    pattern: 'itk_[0-9a-f]{32}'
    allowlist: ['itk_0{32}']
`)
	cfg, err := LoadFile(p)
	require.NoError(t, err)
	require.NotNil(t, cfg.Format)
	assert.Equal(t, "json", *cfg.Format)
	require.NotNil(t, cfg.Threads)
	assert.Equal(t, 4, *cfg.Threads)
	require.NotNil(t, cfg.NoColor)
	assert.True(t, *cfg.NoColor)
	assert.Equal(t, []string{".woff2"}, cfg.SkipExtensions)
	assert.Equal(t, []string{"dist/**"}, cfg.SkipPaths)
	assert.Equal(t, []string{"google_api_key"}, cfg.DisableRules)
	require.Len(t, cfg.Rules, 1)
	assert.Equal(t, "internal_token", cfg.Rules[0].Name)
	assert.Equal(t, `itk_[0-9a-f]{32}`, cfg.Rules[0].Pattern)
	assert.Equal(t, []string{`itk_0{32}`}, cfg.Rules[0].Allowlist)
}

func TestLoadFile_Errors(t *testing.T) {
	dir := t.TempDir()
	_, err := LoadFile(filepath.Join(dir, "missing.yml"))
	require.Error(t, err)

	p := writeTemp(t, dir, "bad.yml", "threads: [unclosed\n")
	_, err = LoadFile(p)
	require.ErrorContains(t, err, "parse config")
}

func TestLoadLocal_PrefersDotfile(t *testing.T) {
	dir := t.TempDir()
	// place both, expect the dotfile to be picked first by search order
	writeTemp(t, dir, "secretgate.yml", "threads: 1\n")
	writeTemp(t, dir, ".secretgate.yml", "threads: 7\n")
	cfg, err := LoadLocal(dir)
	require.NoError(t, err)
	require.NotNil(t, cfg.Threads)
	assert.Equal(t, 7, *cfg.Threads)
}

func TestLoadLocal_NoConfig(t *testing.T) {
	_, err := LoadLocal(t.TempDir())
	require.ErrorIs(t, err, ErrNotFound)
}

func TestLoadGlobal_XDG_Config(t *testing.T) {
	dir := t.TempDir()
	cfgDir := filepath.Join(dir, "secretgate")
	require.NoError(t, os.MkdirAll(cfgDir, 0o755))
	writeTemp(t, cfgDir, "config.yml", "threads: 9\n")
	t.Setenv("XDG_CONFIG_HOME", dir)

	cfg, err := LoadGlobal()
	require.NoError(t, err)
	require.NotNil(t, cfg.Threads)
	assert.Equal(t, 9, *cfg.Threads)
}

func TestLoadGlobal_NoConfig(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "")
	t.Setenv("HOME", "")
	_, err := LoadGlobal()
	require.ErrorIs(t, err, ErrNotFound)
}

func TestMerge(t *testing.T) {
	json, text := "json", "text"
	two := 2
	global := FileConfig{Format: &json, Threads: &two, SkipPaths: []string{"g/**"}, DisableRules: []string{"a"}}
	local := FileConfig{Format: &text, SkipPaths: []string{"l/**"}}

	got := Merge(global, local)
	assert.Equal(t, "text", *got.Format)
	assert.Equal(t, 2, *got.Threads)
	assert.Nil(t, got.NoColor)
	assert.Equal(t, []string{"g/**", "l/**"}, got.SkipPaths)
	assert.Equal(t, []string{"a"}, got.DisableRules)
	assert.Nil(t, got.Rules)
}
