package config

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/pflag"

	"github.com/matzehuels/hydrate/pkg/errors"
)

func writeConfig(t *testing.T, dir, content string) string {
	t.Helper()
	path := filepath.Join(dir, FileName)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadDefaults(t *testing.T) {
	t.Setenv("XDG_CACHE_HOME", "/tmp/cache")

	cfg, path, err := Load(context.Background(), LoadOptions{Root: t.TempDir()})
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if path != "" {
		t.Errorf("path = %q, want none", path)
	}
	if cfg.Basepath != "src" || !cfg.CopyShared || !cfg.HydrateShared {
		t.Errorf("cfg = %+v, want defaults", cfg)
	}
	if cfg.History.Backend != "file" {
		t.Errorf("History.Backend = %q, want file", cfg.History.Backend)
	}
	if want := filepath.Join("/tmp/cache", "hydrate", "history"); cfg.History.Dir != want {
		t.Errorf("History.Dir = %q, want %q", cfg.History.Dir, want)
	}
}

func TestLoadFile(t *testing.T) {
	root := t.TempDir()
	written := writeConfig(t, root, `
basepath = "functions"
shell = "bash"
timeout = "5m"
copy_shared = false

[env]
NODE_ENV = "production"
npm_config_cache = "/tmp/npm"

[history]
backend = "none"

[[component]]
path = "functions/get-index"
`)

	cfg, path, err := Load(context.Background(), LoadOptions{Root: root})
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if path != written {
		t.Errorf("path = %q, want %q", path, written)
	}

	if cfg.Basepath != "functions" || cfg.Shell != "bash" || cfg.Timeout != 5*time.Minute {
		t.Errorf("cfg = %+v, want values from file", cfg)
	}
	if cfg.CopyShared || !cfg.HydrateShared {
		t.Errorf("CopyShared = %v, HydrateShared = %v", cfg.CopyShared, cfg.HydrateShared)
	}
	if cfg.Env["NODE_ENV"] != "production" || cfg.Env["npm_config_cache"] != "/tmp/npm" {
		t.Errorf("Env = %v, want case preserved", cfg.Env)
	}
	if cfg.History.Backend != "none" {
		t.Errorf("History.Backend = %q, want none", cfg.History.Backend)
	}
}

func TestLoadPrecedence(t *testing.T) {
	root := t.TempDir()
	writeConfig(t, root, "basepath = \"functions\"\nshell = \"bash\"\ntimeout = \"5m\"\n")
	t.Setenv("HYDRATE_SHELL", "zsh")
	t.Setenv("HYDRATE_TIMEOUT", "1m")
	t.Setenv("HYDRATE_HISTORY_BACKEND", "none")

	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flags.String("basepath", "src", "")
	flags.Duration("timeout", 0, "")
	if err := flags.Parse([]string{"--timeout", "30s"}); err != nil {
		t.Fatal(err)
	}

	cfg, _, err := Load(context.Background(), LoadOptions{
		Root: root,
		Flags: map[string]*pflag.Flag{
			"basepath": flags.Lookup("basepath"),
			"timeout":  flags.Lookup("timeout"),
		},
	})
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	tests := []struct {
		name string
		got  any
		want any
	}{
		{"unset flag keeps file value", cfg.Basepath, "functions"},
		{"env beats file", cfg.Shell, "zsh"},
		{"flag beats env", cfg.Timeout, 30 * time.Second},
		{"nested env key", cfg.History.Backend, "none"},
	}
	for _, tt := range tests {
		if tt.got != tt.want {
			t.Errorf("%s: got %v, want %v", tt.name, tt.got, tt.want)
		}
	}
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name    string
		content string
		file    string
	}{
		{name: "missing explicit file", file: "/nonexistent/hydrate.toml"},
		{name: "invalid toml", content: "basepath = ["},
		{name: "negative timeout", content: "timeout = \"-1s\""},
		{name: "unknown backend", content: "[history]\nbackend = \"mongo\""},
		{name: "bad env key", content: "[env]\n\"BAD-KEY\" = \"x\""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			root := t.TempDir()
			file := tt.file
			if file == "" {
				file = writeConfig(t, root, tt.content)
			}
			_, _, err := Load(context.Background(), LoadOptions{Root: root, ConfigFile: file})
			if err == nil {
				t.Fatal("Load() expected error, got nil")
			}
			if !errors.Is(err, errors.ErrCodeInvalidConfig) {
				t.Errorf("Load() code = %v, want %v", errors.GetCode(err), errors.ErrCodeInvalidConfig)
			}
		})
	}
}

func TestLoadCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, _, err := Load(ctx, LoadOptions{}); err == nil {
		t.Error("Load() with canceled context should fail")
	}
}

func TestCacheDir(t *testing.T) {
	t.Setenv("XDG_CACHE_HOME", "/custom/cache")
	dir, err := CacheDir()
	if err != nil {
		t.Fatalf("CacheDir() error = %v", err)
	}
	if dir != filepath.Join("/custom/cache", "hydrate") {
		t.Errorf("CacheDir() = %q", dir)
	}

	t.Setenv("XDG_CACHE_HOME", "")
	dir, err = CacheDir()
	if err != nil {
		t.Fatalf("CacheDir() error = %v", err)
	}
	if filepath.Base(dir) != "hydrate" {
		t.Errorf("CacheDir() = %q, want hydrate suffix", dir)
	}
}
