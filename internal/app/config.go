package app

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	toml "github.com/pelletier/go-toml/v2"
	"github.com/spf13/cobra"
)

const defaultTimeout = 30 * time.Second

type globalOptions struct {
	Config   string
	DataDir  string
	LogLevel string
	Timeout  time.Duration
}

type fileConfig struct {
	DataDir  string `toml:"data_dir"`
	LogLevel string `toml:"log_level"`
	Timeout  string `toml:"timeout"`
}

// resolveGlobalOptions layers the config file, the environment and explicit
// flags, in that order, over the built-in defaults.
func resolveGlobalOptions(cmd *cobra.Command, fromFlags *globalOptions) (*globalOptions, error) {
	resolved := &globalOptions{
		DataDir:  defaultDataDir(),
		LogLevel: "warn",
		Timeout:  defaultTimeout,
	}

	configPath := firstNonEmpty(env("DAVCTL_CONFIG"), defaultUserConfigPath())
	if flagValueChanged(cmd, "config") {
		configPath = fromFlags.Config
	}
	resolved.Config = configPath

	cfg, err := readConfigFile(configPath)
	if err != nil {
		return nil, err
	}
	if err := applyFileConfig(resolved, cfg); err != nil {
		return nil, fmt.Errorf("config %s: %w", configPath, err)
	}
	if err := applyEnv(resolved); err != nil {
		return nil, err
	}

	copyIfChanged(cmd, "data-dir", func() { resolved.DataDir = fromFlags.DataDir })
	copyIfChanged(cmd, "log-level", func() { resolved.LogLevel = fromFlags.LogLevel })
	copyIfChanged(cmd, "timeout", func() { resolved.Timeout = fromFlags.Timeout })

	if _, err := parseLogLevel(resolved.LogLevel); err != nil {
		return nil, err
	}
	return resolved, nil
}

func applyFileConfig(dst *globalOptions, cfg fileConfig) error {
	if cfg.DataDir != "" {
		dst.DataDir = cfg.DataDir
	}
	if cfg.LogLevel != "" {
		dst.LogLevel = cfg.LogLevel
	}
	if cfg.Timeout != "" {
		d, err := time.ParseDuration(cfg.Timeout)
		if err != nil {
			return fmt.Errorf("invalid timeout %q: %w", cfg.Timeout, err)
		}
		dst.Timeout = d
	}
	return nil
}

func applyEnv(dst *globalOptions) error {
	if v := env("DAVCTL_DATA_DIR"); v != "" {
		dst.DataDir = v
	}
	if v := env("DAVCTL_LOG_LEVEL"); v != "" {
		dst.LogLevel = v
	}
	if v := env("DAVCTL_TIMEOUT"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("invalid DAVCTL_TIMEOUT %q: %w", v, err)
		}
		dst.Timeout = d
	}
	return nil
}

// readConfigFile returns the parsed file. A missing file is an empty config;
// a malformed one is an error.
func readConfigFile(path string) (fileConfig, error) {
	var cfg fileConfig
	if strings.TrimSpace(path) == "" {
		return cfg, nil
	}
	raw, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return cfg, fmt.Errorf("failed to read config: %w", err)
	}
	if err := toml.Unmarshal(raw, &cfg); err != nil {
		return cfg, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	return cfg, nil
}

func parseLogLevel(s string) (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(s)); err != nil {
		return level, fmt.Errorf("invalid log level %q", s)
	}
	return level, nil
}

func copyIfChanged(cmd *cobra.Command, name string, fn func()) {
	if flagValueChanged(cmd, name) {
		fn()
	}
}

func flagValueChanged(cmd *cobra.Command, name string) bool {
	if f := cmd.Flags().Lookup(name); f != nil && f.Changed {
		return true
	}
	if f := cmd.InheritedFlags().Lookup(name); f != nil && f.Changed {
		return true
	}
	return false
}

func defaultUserConfigPath() string {
	if xdg := env("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "davctl", "config.toml")
	}
	home := env("HOME")
	if home == "" {
		return ""
	}
	return filepath.Join(home, ".config", "davctl", "config.toml")
}

func defaultDataDir() string {
	if xdg := env("XDG_DATA_HOME"); xdg != "" {
		return filepath.Join(xdg, "davctl")
	}
	home := env("HOME")
	if home == "" {
		return ".davctl"
	}
	return filepath.Join(home, ".local", "share", "davctl")
}

func env(k string) string { return strings.TrimSpace(os.Getenv(k)) }

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if strings.TrimSpace(v) != "" {
			return strings.TrimSpace(v)
		}
	}
	return ""
}
