package config

import (
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/pilcrowonpaper/website/internal/postprocess"
)

// Notes:
// - LoadConfig tests write YAML into t.TempDir() and pass explicit paths.
// - resolveConfigPath tests use t.Chdir and therefore cannot run in parallel.

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "website.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

// ---------------------------------------------------------------------------
// TestDefaultConfig
// ---------------------------------------------------------------------------

func TestDefaultConfig(t *testing.T) {
	t.Parallel()

	cfg := DefaultConfig()

	if err := cfg.Validate(); err != nil {
		t.Fatalf("DefaultConfig().Validate() error: %v", err)
	}
	if cfg.Server.Addr != DefaultAddr {
		t.Errorf("Server.Addr = %q, want %q", cfg.Server.Addr, DefaultAddr)
	}
	if cfg.Content.PostsDir != DefaultPostsDir {
		t.Errorf("Content.PostsDir = %q, want %q", cfg.Content.PostsDir, DefaultPostsDir)
	}
	if cfg.GitHub.PinnedMaxAge != 10 {
		t.Errorf("GitHub.PinnedMaxAge = %d, want 10", cfg.GitHub.PinnedMaxAge)
	}
	if cfg.GitHub.ProjectsMaxAge != 86400 {
		t.Errorf("GitHub.ProjectsMaxAge = %d, want 86400", cfg.GitHub.ProjectsMaxAge)
	}
	if cfg.Export.Enabled {
		t.Error("Export.Enabled = true, want false")
	}
	if cfg.Assets.BasePath != "" {
		t.Errorf("Assets.BasePath = %q, want empty", cfg.Assets.BasePath)
	}

	got := cfg.Theme.Rules()
	want := postprocess.DefaultRules()
	if len(got) != len(want) {
		t.Fatalf("Theme.Rules() has %d rules, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("rule %d = %+v, want %+v", i, got[i], want[i])
		}
	}
}

// ---------------------------------------------------------------------------
// TestValidate
// ---------------------------------------------------------------------------

func TestValidate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr error
	}{
		{
			name:   "defaults are valid",
			mutate: func(*Config) {},
		},
		{
			name:    "title too long",
			mutate:  func(c *Config) { c.Site.Title = strings.Repeat("a", MaxTitleLength+1) },
			wantErr: ErrFieldTooLong,
		},
		{
			name:    "relative site url",
			mutate:  func(c *Config) { c.Site.URL = "/blog" },
			wantErr: ErrInvalidConfig,
		},
		{
			name:    "ftp site url",
			mutate:  func(c *Config) { c.Site.URL = "ftp://example.com" },
			wantErr: ErrInvalidConfig,
		},
		{
			name:    "bad date format",
			mutate:  func(c *Config) { c.Site.DateFormat = "[unclosed" },
			wantErr: ErrInvalidConfig,
		},
		{
			name:    "unparsable duration",
			mutate:  func(c *Config) { c.Server.ReadTimeout = "ten seconds" },
			wantErr: ErrInvalidConfig,
		},
		{
			name:    "negative duration",
			mutate:  func(c *Config) { c.GitHub.Timeout = "-1s" },
			wantErr: ErrInvalidConfig,
		},
		{
			name:   "valid durations",
			mutate: func(c *Config) { c.Server.WriteTimeout = "2m"; c.Export.Timeout = "45s" },
		},
		{
			name:    "unknown highlight style",
			mutate:  func(c *Config) { c.Markdown.HighlightStyle = "no-such-style" },
			wantErr: ErrInvalidConfig,
		},
		{
			name:    "login too long",
			mutate:  func(c *Config) { c.GitHub.Login = strings.Repeat("a", MaxLoginLength+1) },
			wantErr: ErrFieldTooLong,
		},
		{
			name:    "negative max age",
			mutate:  func(c *Config) { c.GitHub.PinnedMaxAge = -1 },
			wantErr: ErrInvalidConfig,
		},
		{
			name:    "starred limit above cap",
			mutate:  func(c *Config) { c.GitHub.StarredLimit = MaxStarredLimit + 1 },
			wantErr: ErrInvalidConfig,
		},
		{
			name:    "empty color match",
			mutate:  func(c *Config) { c.Theme.Colors = append(c.Theme.Colors, ColorRule{Replace: "#fff"}) },
			wantErr: ErrInvalidConfig,
		},
		{
			name:   "empty color list",
			mutate: func(c *Config) { c.Theme.Colors = nil },
		},
		{
			name:    "unknown log level",
			mutate:  func(c *Config) { c.Log.Level = "verbose" },
			wantErr: ErrInvalidConfig,
		},
		{
			name:    "unknown log format",
			mutate:  func(c *Config) { c.Log.Format = "xml" },
			wantErr: ErrInvalidConfig,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			cfg := DefaultConfig()
			tt.mutate(cfg)
			err := cfg.Validate()

			if tt.wantErr == nil {
				if err != nil {
					t.Errorf("Validate() unexpected error: %v", err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Validate() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestValidateFieldLength(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		value     string
		maxLength int
		wantErr   bool
	}{
		{name: "empty value is valid", value: "", maxLength: 10},
		{name: "value at limit is valid", value: "1234567890", maxLength: 10},
		{name: "value over limit", value: "12345678901", maxLength: 10, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			err := validateFieldLength("test", tt.value, tt.maxLength)
			if tt.wantErr {
				if !errors.Is(err, ErrFieldTooLong) {
					t.Errorf("error = %v, want ErrFieldTooLong", err)
				}
				if err != nil && !strings.Contains(err.Error(), "test") {
					t.Errorf("error %q should name the field", err)
				}
				return
			}
			if err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		})
	}
}

// ---------------------------------------------------------------------------
// TestAccessors
// ---------------------------------------------------------------------------

func TestServerConfig_Timeouts(t *testing.T) {
	t.Parallel()

	read, write, idle, shutdown := ServerConfig{ReadTimeout: "3s", IdleTimeout: "bogus"}.Timeouts()

	if read != 3*time.Second {
		t.Errorf("read = %v, want 3s", read)
	}
	if write != DefaultWriteTimeout {
		t.Errorf("write = %v, want %v", write, DefaultWriteTimeout)
	}
	if idle != DefaultIdleTimeout {
		t.Errorf("idle = %v, want default %v for invalid value", idle, DefaultIdleTimeout)
	}
	if shutdown != DefaultShutdownTimeout {
		t.Errorf("shutdown = %v, want %v", shutdown, DefaultShutdownTimeout)
	}
}

func TestRequestAndRenderTimeout(t *testing.T) {
	t.Parallel()

	if got := (GitHubConfig{}).RequestTimeout(); got != DefaultGitHubTimeout {
		t.Errorf("RequestTimeout() = %v, want %v", got, DefaultGitHubTimeout)
	}
	if got := (GitHubConfig{Timeout: "500ms"}).RequestTimeout(); got != 500*time.Millisecond {
		t.Errorf("RequestTimeout() = %v, want 500ms", got)
	}
	if got := (ExportConfig{}).RenderTimeout(); got != DefaultExportTimeout {
		t.Errorf("RenderTimeout() = %v, want %v", got, DefaultExportTimeout)
	}
}

func TestLogConfig_SlogLevel(t *testing.T) {
	t.Parallel()

	tests := map[string]slog.Level{
		"":      slog.LevelInfo,
		"info":  slog.LevelInfo,
		"DEBUG": slog.LevelDebug,
		"warn":  slog.LevelWarn,
		"error": slog.LevelError,
	}
	for in, want := range tests {
		if got := (LogConfig{Level: in}).SlogLevel(); got != want {
			t.Errorf("SlogLevel(%q) = %v, want %v", in, got, want)
		}
	}
}

// ---------------------------------------------------------------------------
// TestLoadConfig
// ---------------------------------------------------------------------------

func TestLoadConfig_PartialFileKeepsDefaults(t *testing.T) {
	t.Parallel()

	path := writeConfig(t, `
site:
  title: "Notes"
  url: "https://example.com/"
github:
  login: "octocat"
theme:
  colors:
    - match: "#000000"
      replace: "#111111"
`)

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig() error: %v", err)
	}

	if cfg.Site.Title != "Notes" {
		t.Errorf("Site.Title = %q, want %q", cfg.Site.Title, "Notes")
	}
	if cfg.GitHub.Login != "octocat" {
		t.Errorf("GitHub.Login = %q, want %q", cfg.GitHub.Login, "octocat")
	}
	if cfg.GitHub.ProjectsMaxAge != DefaultProjectsMaxAge {
		t.Errorf("GitHub.ProjectsMaxAge = %d, want default %d", cfg.GitHub.ProjectsMaxAge, DefaultProjectsMaxAge)
	}
	if cfg.Server.Addr != DefaultAddr {
		t.Errorf("Server.Addr = %q, want default %q", cfg.Server.Addr, DefaultAddr)
	}
	if len(cfg.Theme.Colors) != 1 || cfg.Theme.Colors[0].Match != "#000000" {
		t.Errorf("Theme.Colors = %+v, want the single configured rule", cfg.Theme.Colors)
	}
}

func TestLoadConfig_Errors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		content string
		wantErr error
	}{
		{
			name:    "unknown field",
			content: "site:\n  titel: typo\n",
			wantErr: ErrConfigParse,
		},
		{
			name:    "malformed yaml",
			content: "site: [unclosed\n",
			wantErr: ErrConfigParse,
		},
		{
			name:    "invalid value",
			content: "log:\n  level: loud\n",
			wantErr: ErrInvalidConfig,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := LoadConfig(writeConfig(t, tt.content))
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("LoadConfig() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestLoadConfig_EmptyName(t *testing.T) {
	t.Parallel()

	if _, err := LoadConfig(""); !errors.Is(err, ErrEmptyConfigName) {
		t.Errorf("LoadConfig(\"\") error = %v, want ErrEmptyConfigName", err)
	}
}

func TestLoadConfig_MissingPath(t *testing.T) {
	t.Parallel()

	_, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	if !errors.Is(err, ErrConfigNotFound) {
		t.Errorf("LoadConfig() error = %v, want ErrConfigNotFound", err)
	}
}

func TestLoadConfig_ByNameInWorkingDir(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "staging.yml"), []byte("server:\n  addr: \":9000\"\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	t.Chdir(dir)

	cfg, err := LoadConfig("staging")
	if err != nil {
		t.Fatalf("LoadConfig() error: %v", err)
	}
	if cfg.Server.Addr != ":9000" {
		t.Errorf("Server.Addr = %q, want %q", cfg.Server.Addr, ":9000")
	}
}

func TestLoadConfig_NameNotFound(t *testing.T) {
	t.Chdir(t.TempDir())

	_, err := LoadConfig("no-such-config")
	if !errors.Is(err, ErrConfigNotFound) {
		t.Fatalf("LoadConfig() error = %v, want ErrConfigNotFound", err)
	}
	if !strings.Contains(err.Error(), "no-such-config.yaml") {
		t.Errorf("error %q should list the tried paths", err)
	}
}
