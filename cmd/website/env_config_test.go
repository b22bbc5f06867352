package main

// Notes:
// - Tests use t.Setenv() which prevents t.Parallel().
// - applyEnvConfig: env values override the file, unset values leave it alone.

import (
	"bytes"
	"strings"
	"testing"

	"github.com/pilcrowonpaper/website/internal/config"
)

// ---------------------------------------------------------------------------
// TestLoadEnvConfig - Environment variable loading
// ---------------------------------------------------------------------------

func TestLoadEnvConfig(t *testing.T) {
	t.Setenv("WEBSITE_CONFIG", "/etc/website.yaml")
	t.Setenv("WEBSITE_ADDR", ":8080")
	t.Setenv("WEBSITE_POSTS_DIR", "/srv/posts")
	t.Setenv("WEBSITE_SITE_URL", "https://example.com/")
	t.Setenv("GITHUB_API_KEY", "ghp_key")
	t.Setenv("WEBSITE_DEV", "true")
	t.Setenv("WEBSITE_LOG_LEVEL", "debug")
	t.Setenv("WEBSITE_LOG_FORMAT", "text")
	t.Setenv("WEBSITE_BUILD_ID_FILE", "/srv/.BUILD_ID")
	t.Setenv("WEBSITE_EXPORT", "1")
	t.Setenv("WEBSITE_EXPORT_NO_SANDBOX", "0")
	t.Setenv("WEBSITE_BROWSER_BIN", "/usr/bin/chromium")

	env := loadEnvConfig()

	strs := map[string][2]string{
		"ConfigPath":  {env.ConfigPath, "/etc/website.yaml"},
		"Addr":        {env.Addr, ":8080"},
		"PostsDir":    {env.PostsDir, "/srv/posts"},
		"SiteURL":     {env.SiteURL, "https://example.com/"},
		"GitHubKey":   {env.GitHubKey, "ghp_key"},
		"LogLevel":    {env.LogLevel, "debug"},
		"LogFormat":   {env.LogFormat, "text"},
		"BuildIDFile": {env.BuildIDFile, "/srv/.BUILD_ID"},
		"BrowserBin":  {env.BrowserBin, "/usr/bin/chromium"},
	}
	for field, v := range strs {
		if v[0] != v[1] {
			t.Errorf("%s = %q, want %q", field, v[0], v[1])
		}
	}
	if env.Dev == nil || !*env.Dev {
		t.Errorf("Dev = %v, want true", env.Dev)
	}
	if env.Export == nil || !*env.Export {
		t.Errorf("Export = %v, want true", env.Export)
	}
	if env.NoSandbox == nil || *env.NoSandbox {
		t.Errorf("NoSandbox = %v, want false", env.NoSandbox)
	}
}

func TestLoadEnvConfig_GitHubTokenFallback(t *testing.T) {
	t.Setenv("GITHUB_API_KEY", "")
	t.Setenv("GITHUB_TOKEN", "ghs_actions")

	if got := loadEnvConfig().GitHubKey; got != "ghs_actions" {
		t.Errorf("GitHubKey = %q, want GITHUB_TOKEN value", got)
	}

	t.Setenv("GITHUB_API_KEY", "ghp_key")
	if got := loadEnvConfig().GitHubKey; got != "ghp_key" {
		t.Errorf("GitHubKey = %q, GITHUB_API_KEY should win", got)
	}
}

func TestLoadEnvConfig_InvalidBool(t *testing.T) {
	t.Setenv("WEBSITE_DEV", "sometimes")

	if env := loadEnvConfig(); env.Dev != nil {
		t.Errorf("Dev = %v, want nil for malformed value", *env.Dev)
	}
}

// ---------------------------------------------------------------------------
// TestWarnUnknownEnvVars - Typo detection
// ---------------------------------------------------------------------------

func TestWarnUnknownEnvVars(t *testing.T) {
	t.Setenv("WEBSITE_POST_DIR", "/typo")
	t.Setenv("WEBSITE_ADDR", ":3000")

	var buf bytes.Buffer
	warnUnknownEnvVars(&buf)

	if !strings.Contains(buf.String(), "WEBSITE_POST_DIR") {
		t.Errorf("expected warning for WEBSITE_POST_DIR, got %q", buf.String())
	}
	if strings.Contains(buf.String(), "WEBSITE_ADDR") {
		t.Errorf("known variable should not warn, got %q", buf.String())
	}
}

// ---------------------------------------------------------------------------
// TestApplyEnvConfig - Priority over the config file
// ---------------------------------------------------------------------------

func TestApplyEnvConfig(t *testing.T) {
	t.Parallel()

	yes, no := true, false

	t.Run("overrides file values", func(t *testing.T) {
		t.Parallel()

		cfg := config.DefaultConfig()
		cfg.Server.Addr = ":4000"
		applyEnvConfig(&envConfig{
			Addr:       ":8080",
			PostsDir:   "/srv/posts",
			SiteURL:    "https://example.com/",
			GitHubKey:  "ghp_key",
			Dev:        &yes,
			LogLevel:   "warn",
			LogFormat:  "text",
			Export:     &yes,
			NoSandbox:  &yes,
			BrowserBin: "/usr/bin/chromium",
		}, cfg)

		if cfg.Server.Addr != ":8080" || cfg.Content.PostsDir != "/srv/posts" || cfg.Site.URL != "https://example.com/" {
			t.Errorf("tier 1 not applied: %+v %+v %+v", cfg.Server, cfg.Content, cfg.Site)
		}
		if cfg.GitHub.Token != "ghp_key" {
			t.Errorf("Token = %q", cfg.GitHub.Token)
		}
		if !cfg.Server.Dev || cfg.Log.Level != "warn" || cfg.Log.Format != "text" {
			t.Errorf("tier 2 not applied: dev=%v log=%+v", cfg.Server.Dev, cfg.Log)
		}
		if !cfg.Export.Enabled || !cfg.Export.NoSandbox || cfg.Export.BrowserBin != "/usr/bin/chromium" {
			t.Errorf("tier 3 not applied: %+v", cfg.Export)
		}
	})

	t.Run("unset values keep file", func(t *testing.T) {
		t.Parallel()

		cfg := config.DefaultConfig()
		cfg.Server.Addr = ":4000"
		cfg.Server.Dev = true
		applyEnvConfig(&envConfig{}, cfg)

		if cfg.Server.Addr != ":4000" || !cfg.Server.Dev {
			t.Errorf("empty env changed config: %+v", cfg.Server)
		}
	})

	t.Run("explicit false overrides file", func(t *testing.T) {
		t.Parallel()

		cfg := config.DefaultConfig()
		cfg.Export.Enabled = true
		applyEnvConfig(&envConfig{Export: &no}, cfg)

		if cfg.Export.Enabled {
			t.Error("WEBSITE_EXPORT=0 should disable export")
		}
	})
}

func TestEnvVarNames(t *testing.T) {
	t.Parallel()

	names := envVarNames()
	if len(names) != len(knownEnvVars)+2 {
		t.Errorf("envVarNames() has %d entries, want %d", len(names), len(knownEnvVars)+2)
	}
	if names[len(names)-1] != "GITHUB_TOKEN" {
		t.Errorf("last name = %q", names[len(names)-1])
	}
}
