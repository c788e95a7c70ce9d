package config_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pelletier/go-toml/v2"

	"swbd/internal/config"
)

func TestLoadDefaultConfigExpandsPaths(t *testing.T) {
	tempHome := t.TempDir()
	t.Setenv("HOME", tempHome)
	t.Setenv("SWBD_CONVERTER_DIR", "")
	t.Chdir(t.TempDir())

	cfg, resolved, exists, err := config.Load("")
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if resolved == "" {
		t.Fatal("expected resolved path")
	}
	if exists {
		t.Fatal("expected config file to be absent in temp HOME")
	}

	wantState := filepath.Join(tempHome, ".local", "share", "swbd")
	if cfg.Paths.StateDir != wantState {
		t.Fatalf("unexpected state dir: got %q want %q", cfg.Paths.StateDir, wantState)
	}
	if cfg.ManifestPath() != filepath.Join(wantState, "manifest.db") {
		t.Fatalf("unexpected manifest path: %q", cfg.ManifestPath())
	}
	if cfg.Split != config.DefaultSplit() {
		t.Fatalf("unexpected split ranges: %+v", cfg.Split)
	}
	if cfg.JavaBinary() != "java" {
		t.Fatalf("unexpected java binary: %q", cfg.JavaBinary())
	}
	if !filepath.IsAbs(cfg.Converter.Dir) {
		t.Fatalf("expected converter dir to be absolute, got %q", cfg.Converter.Dir)
	}
	if got := strings.Join(cfg.Filters.MWEs, ","); got != "you_know,i_mean" {
		t.Fatalf("unexpected mwes: %q", got)
	}
	if err := cfg.EnsureDirectories(); err != nil {
		t.Fatalf("EnsureDirectories failed: %v", err)
	}
	for _, dir := range []string{cfg.Paths.StateDir, cfg.Paths.LogDir, cfg.Paths.WorkDir} {
		info, err := os.Stat(dir)
		if err != nil {
			t.Fatalf("expected directory %q to exist: %v", dir, err)
		}
		if !info.IsDir() {
			t.Fatalf("expected %q to be directory", dir)
		}
	}
}

func TestLoadCustomPath(t *testing.T) {
	tempDir := t.TempDir()
	configPath := filepath.Join(tempDir, "swbd.toml")

	type payload struct {
		Converter struct {
			Dir    string `toml:"dir"`
			Memory string `toml:"memory"`
		} `toml:"converter"`
		Filters struct {
			FillerWords []string `toml:"filler_words"`
		} `toml:"filters"`
		Logging struct {
			Format string `toml:"format"`
		} `toml:"logging"`
	}
	custom := payload{}
	custom.Converter.Dir = filepath.Join(tempDir, "corenlp")
	custom.Converter.Memory = "2g"
	custom.Filters.FillerWords = []string{" UH ", "um", "uh"}
	custom.Logging.Format = "JSON"
	data, err := toml.Marshal(custom)
	if err != nil {
		t.Fatalf("marshal custom config: %v", err)
	}
	if err := os.WriteFile(configPath, data, 0o644); err != nil {
		t.Fatalf("write custom config: %v", err)
	}

	cfg, resolved, exists, err := config.Load(configPath)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if !exists {
		t.Fatal("expected exists to be true")
	}
	if resolved != configPath {
		t.Fatalf("unexpected resolved path: got %q want %q", resolved, configPath)
	}
	if cfg.Converter.Dir != custom.Converter.Dir {
		t.Fatalf("expected converter dir override, got %q", cfg.Converter.Dir)
	}
	if cfg.Converter.Memory != "2g" {
		t.Fatalf("expected memory override, got %q", cfg.Converter.Memory)
	}
	if got := strings.Join(cfg.Filters.FillerWords, ","); got != "uh,um" {
		t.Fatalf("expected normalized filler words, got %q", got)
	}
	if cfg.Logging.Format != "json" {
		t.Fatalf("expected json log format, got %q", cfg.Logging.Format)
	}
	if cfg.Converter.MainClass == "" {
		t.Fatal("expected default main class to survive partial config")
	}
}

func TestConverterDirEnvOverride(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	dir := t.TempDir()
	t.Setenv("SWBD_CONVERTER_DIR", dir)

	cfg, _, _, err := config.Load(filepath.Join(t.TempDir(), "missing.toml"))
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.Converter.Dir != dir {
		t.Fatalf("expected converter dir from env, got %q", cfg.Converter.Dir)
	}
}

func TestValidateRejectsBadValues(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*config.Config)
		want   string
	}{
		{
			name:   "overlapping dev and test",
			mutate: func(c *config.Config) { c.Split.DevAbove = 4100 },
			want:   "overlap",
		},
		{
			name:   "inverted test range",
			mutate: func(c *config.Config) { c.Split.TestMax = 3000 },
			want:   "split.test_max",
		},
		{
			name:   "three word mwe",
			mutate: func(c *config.Config) { c.Filters.MWEs = []string{"you_know_what"} },
			want:   "filters.mwes",
		},
		{
			name:   "bad memory",
			mutate: func(c *config.Config) { c.Converter.Memory = "lots" },
			want:   "converter.memory",
		},
		{
			name:   "zero timeout",
			mutate: func(c *config.Config) { c.Converter.TimeoutSeconds = 0 },
			want:   "converter.timeout_seconds",
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := config.Default()
			tc.mutate(&cfg)
			err := cfg.Validate()
			if err == nil {
				t.Fatalf("expected validation error")
			}
			if !strings.Contains(err.Error(), tc.want) {
				t.Fatalf("expected error mentioning %q, got %v", tc.want, err)
			}
		})
	}
}

func TestCreateSampleIsLoadable(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	target := filepath.Join(t.TempDir(), "nested", "config.toml")
	if err := config.CreateSample(target); err != nil {
		t.Fatalf("CreateSample: %v", err)
	}
	cfg, _, exists, err := config.Load(target)
	if err != nil {
		t.Fatalf("Load sample: %v", err)
	}
	if !exists {
		t.Fatal("expected sample config to exist")
	}
	if cfg.Filters.MinTokens != 2 {
		t.Fatalf("unexpected min tokens: %d", cfg.Filters.MinTokens)
	}
}
