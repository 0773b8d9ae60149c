// Package config loads hydrate settings.
//
// Settings are resolved with the usual precedence, highest first:
//
//  1. Command-line flags that were set explicitly
//  2. HYDRATE_* environment variables (HYDRATE_TIMEOUT, HYDRATE_HISTORY_BACKEND, ...)
//  3. hydrate.toml in the project root, or the file named by --config
//  4. Built-in defaults
//
// hydrate.toml doubles as the component inventory; its [[component]]
// tables are read by pkg/inventory and ignored here.
package config

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/matzehuels/hydrate/pkg/errors"
	"github.com/matzehuels/hydrate/pkg/history"
)

const (
	// AppName is used for directories and the environment prefix.
	AppName = "hydrate"
	// FileName is the project config file looked up in the project root.
	FileName = "hydrate.toml"
	// EnvPrefix prefixes environment overrides.
	EnvPrefix = "HYDRATE"
)

// Config is the resolved hydrate configuration.
type Config struct {
	Basepath      string            `mapstructure:"basepath"`
	Shell         string            `mapstructure:"shell"`
	Timeout       time.Duration     `mapstructure:"timeout"`
	Quiet         bool              `mapstructure:"quiet"`
	Verbose       bool              `mapstructure:"verbose"`
	CopyShared    bool              `mapstructure:"copy_shared"`
	HydrateShared bool              `mapstructure:"hydrate_shared"`
	Env           map[string]string `mapstructure:"env"`
	History       HistoryConfig     `mapstructure:"history"`
}

// HistoryConfig selects where run summaries are kept.
type HistoryConfig struct {
	Backend  string        `mapstructure:"backend"`
	Dir      string        `mapstructure:"dir"`
	RedisURL string        `mapstructure:"redis_url"`
	Prefix   string        `mapstructure:"prefix"`
	TTL      time.Duration `mapstructure:"ttl"`
}

// Store returns the history.Config for this configuration.
func (h HistoryConfig) Store() history.Config {
	return history.Config{Backend: h.Backend, Dir: h.Dir, RedisURL: h.RedisURL, Prefix: h.Prefix}
}

// Default returns the built-in configuration.
func Default() *Config {
	dir := ""
	if cache, err := CacheDir(); err == nil {
		dir = filepath.Join(cache, "history")
	}
	return &Config{
		Basepath:      "src",
		CopyShared:    true,
		HydrateShared: true,
		History: HistoryConfig{
			Backend: history.BackendFile,
			Dir:     dir,
			Prefix:  AppName + ":",
			TTL:     30 * 24 * time.Hour,
		},
	}
}

// LoadOptions defines explicit configuration loading inputs.
type LoadOptions struct {
	// Root is the project root searched for FileName.
	Root string
	// ConfigFile forces loading from a specific file when set.
	ConfigFile string
	// Flags are bound by key; only flags set on the command line override.
	Flags map[string]*pflag.Flag
}

// Load resolves configuration. It returns the config and the path of the
// file that was read, or "" when none was.
func Load(ctx context.Context, opts LoadOptions) (*Config, string, error) {
	select {
	case <-ctx.Done():
		return nil, "", fmt.Errorf("load config canceled: %w", ctx.Err())
	default:
	}

	v := viper.New()

	defaults := Default()
	v.SetDefault("basepath", defaults.Basepath)
	v.SetDefault("shell", defaults.Shell)
	v.SetDefault("timeout", defaults.Timeout)
	v.SetDefault("quiet", defaults.Quiet)
	v.SetDefault("verbose", defaults.Verbose)
	v.SetDefault("copy_shared", defaults.CopyShared)
	v.SetDefault("hydrate_shared", defaults.HydrateShared)
	v.SetDefault("env", map[string]string{})
	v.SetDefault("history.backend", defaults.History.Backend)
	v.SetDefault("history.dir", defaults.History.Dir)
	v.SetDefault("history.redis_url", defaults.History.RedisURL)
	v.SetDefault("history.prefix", defaults.History.Prefix)
	v.SetDefault("history.ttl", defaults.History.TTL)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	path := opts.ConfigFile
	if path == "" && opts.Root != "" {
		if candidate := filepath.Join(opts.Root, FileName); fileExists(candidate) {
			path = candidate
		}
	} else if path != "" && !fileExists(path) {
		return nil, "", errors.New(errors.ErrCodeInvalidConfig, "config file not found: %s", path)
	}

	if path != "" {
		v.SetConfigFile(path)
		v.SetConfigType("toml")
		if err := v.ReadInConfig(); err != nil {
			return nil, "", errors.Wrap(errors.ErrCodeInvalidConfig, err, "read config %s", path)
		}
	}

	for key, flag := range opts.Flags {
		if flag == nil || !flag.Changed {
			continue
		}
		if err := v.BindPFlag(key, flag); err != nil {
			return nil, "", errors.Wrap(errors.ErrCodeInternal, err, "bind flag %s", flag.Name)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, "", errors.Wrap(errors.ErrCodeInvalidConfig, err, "parse config")
	}
	if path != "" {
		// Viper folds keys to lower case; environment names must keep theirs.
		env, err := readEnvTable(path)
		if err != nil {
			return nil, "", err
		}
		cfg.Env = env
	}
	if err := cfg.Validate(); err != nil {
		return nil, "", err
	}
	return &cfg, path, nil
}

// Validate checks values that decoding cannot.
func (c *Config) Validate() error {
	if c.Timeout < 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "timeout cannot be negative: %s", c.Timeout)
	}
	switch c.History.Backend {
	case history.BackendFile, history.BackendRedis, history.BackendNone:
	default:
		return errors.New(errors.ErrCodeInvalidConfig, "unknown history backend %q (want file, redis or none)", c.History.Backend)
	}
	return errors.ValidateEnv(c.Env)
}

// CacheDir returns the cache directory using XDG standard (~/.cache/hydrate/).
func CacheDir() (string, error) {
	if cacheHome := os.Getenv("XDG_CACHE_HOME"); cacheHome != "" {
		return filepath.Join(cacheHome, AppName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cache", AppName), nil
}

func readEnvTable(path string) (map[string]string, error) {
	var f struct {
		Env map[string]string `toml:"env"`
	}
	if _, err := toml.DecodeFile(path, &f); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidConfig, err, "read env table from %s", path)
	}
	return f.Env, nil
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
