package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/pilcrowonpaper/website/internal/config"
	"github.com/pilcrowonpaper/website/internal/hints"
)

// defaultConfigName is looked up when neither --config nor WEBSITE_CONFIG is set.
const defaultConfigName = "website"

// loadConfig resolves the config file and applies env overrides.
// An explicitly named config must exist; the default name is optional.
func loadConfig(name string, env *envConfig) (*config.Config, error) {
	explicit := name != ""
	if !explicit {
		name = env.ConfigPath
		explicit = name != ""
	}
	if !explicit {
		name = defaultConfigName
	}

	cfg, err := config.LoadConfig(name)
	switch {
	case err == nil:
	case errors.Is(err, config.ErrConfigNotFound) && !explicit:
		cfg = config.DefaultConfig()
	case errors.Is(err, config.ErrConfigNotFound):
		return nil, fmt.Errorf("loading config: %w%s", err, hints.ForConfigNotFound(searchedConfigPaths(name)))
	default:
		return nil, fmt.Errorf("loading config: %w", err)
	}

	applyEnvConfig(env, cfg)
	return cfg, nil
}

// searchedConfigPaths mirrors the lookup order of config.LoadConfig for hints.
func searchedConfigPaths(name string) []string {
	paths := []string{name + ".yaml"}
	if dir, err := os.UserConfigDir(); err == nil {
		paths = append(paths, filepath.Join(dir, "website", name+".yaml"))
	}
	return paths
}

// newLogger builds the process logger from cfg. --quiet and --verbose win
// over the configured level.
func newLogger(cfg config.LogConfig, flags commonFlags, w io.Writer) *slog.Logger {
	level := cfg.SlogLevel()
	switch {
	case flags.quiet:
		level = slog.LevelError
	case flags.verbose:
		level = slog.LevelDebug
	}

	opts := &slog.HandlerOptions{Level: level}
	if cfg.Format == "text" {
		return slog.New(slog.NewTextHandler(w, opts))
	}
	return slog.New(slog.NewJSONHandler(w, opts))
}
