package main

import (
	"fmt"
	"io"
	"os"
	"slices"
	"strconv"
	"strings"

	"github.com/pilcrowonpaper/website/internal/config"
)

// envConfig holds configuration from environment variables.
// Provides container-friendly overrides without editing the YAML file.
type envConfig struct {
	// Tier 1 - Essential
	ConfigPath string // WEBSITE_CONFIG: config file name or path
	Addr       string // WEBSITE_ADDR: listen address
	PostsDir   string // WEBSITE_POSTS_DIR: markdown posts directory
	SiteURL    string // WEBSITE_SITE_URL: absolute site origin
	GitHubKey  string // GITHUB_API_KEY (or GITHUB_TOKEN): GitHub access token

	// Tier 2 - Runtime
	Dev         *bool  // WEBSITE_DEV: development mode
	LogLevel    string // WEBSITE_LOG_LEVEL: debug, info, warn, error
	LogFormat   string // WEBSITE_LOG_FORMAT: json, text
	BuildIDFile string // WEBSITE_BUILD_ID_FILE: build id file path

	// Tier 3 - PDF export
	Export     *bool  // WEBSITE_EXPORT: enable PDF export
	NoSandbox  *bool  // WEBSITE_EXPORT_NO_SANDBOX: disable Chrome sandbox
	BrowserBin string // WEBSITE_BROWSER_BIN: Chrome binary path
}

// knownEnvVars lists valid WEBSITE_* environment variables.
// Used to detect typos and warn users about unknown variables.
var knownEnvVars = map[string]bool{
	// Tier 1 - Essential
	"WEBSITE_CONFIG":    true,
	"WEBSITE_ADDR":      true,
	"WEBSITE_POSTS_DIR": true,
	"WEBSITE_SITE_URL":  true,
	// Tier 2 - Runtime
	"WEBSITE_DEV":           true,
	"WEBSITE_LOG_LEVEL":     true,
	"WEBSITE_LOG_FORMAT":    true,
	"WEBSITE_BUILD_ID_FILE": true,
	// Tier 3 - PDF export
	"WEBSITE_EXPORT":            true,
	"WEBSITE_EXPORT_NO_SANDBOX": true,
	"WEBSITE_BROWSER_BIN":       true,
}

// envVarNames returns every recognized variable, sorted, for help output.
func envVarNames() []string {
	names := make([]string, 0, len(knownEnvVars)+2)
	for name := range knownEnvVars {
		names = append(names, name)
	}
	slices.Sort(names)
	return append(names, "GITHUB_API_KEY", "GITHUB_TOKEN")
}

// loadEnvConfig reads configuration from environment variables.
// Malformed booleans are ignored, as if unset.
func loadEnvConfig() *envConfig {
	cfg := &envConfig{
		// Tier 1
		ConfigPath: os.Getenv("WEBSITE_CONFIG"),
		Addr:       os.Getenv("WEBSITE_ADDR"),
		PostsDir:   os.Getenv("WEBSITE_POSTS_DIR"),
		SiteURL:    os.Getenv("WEBSITE_SITE_URL"),
		GitHubKey:  os.Getenv("GITHUB_API_KEY"),
		// Tier 2
		Dev:         envBool("WEBSITE_DEV"),
		LogLevel:    os.Getenv("WEBSITE_LOG_LEVEL"),
		LogFormat:   os.Getenv("WEBSITE_LOG_FORMAT"),
		BuildIDFile: os.Getenv("WEBSITE_BUILD_ID_FILE"),
		// Tier 3
		Export:     envBool("WEBSITE_EXPORT"),
		NoSandbox:  envBool("WEBSITE_EXPORT_NO_SANDBOX"),
		BrowserBin: os.Getenv("WEBSITE_BROWSER_BIN"),
	}

	if cfg.GitHubKey == "" {
		cfg.GitHubKey = os.Getenv("GITHUB_TOKEN")
	}

	return cfg
}

func envBool(name string) *bool {
	v, ok := os.LookupEnv(name)
	if !ok || v == "" {
		return nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return nil
	}
	return &b
}

// warnUnknownEnvVars logs warnings for unrecognized WEBSITE_* variables.
// Helps catch typos like WEBSITE_POST_DIR instead of WEBSITE_POSTS_DIR.
func warnUnknownEnvVars(w io.Writer) {
	for _, env := range os.Environ() {
		if strings.HasPrefix(env, "WEBSITE_") {
			name := strings.SplitN(env, "=", 2)[0]
			if !knownEnvVars[name] {
				fmt.Fprintf(w, "warning: unknown environment variable %s (typo?)\n", name)
			}
		}
	}
}

// applyEnvConfig applies environment variable values over the loaded config.
// Precedence: CLI flags > env vars > config file > defaults
// (CLI flags are applied afterwards by the command).
func applyEnvConfig(env *envConfig, cfg *config.Config) {
	// Tier 1
	if env.Addr != "" {
		cfg.Server.Addr = env.Addr
	}
	if env.PostsDir != "" {
		cfg.Content.PostsDir = env.PostsDir
	}
	if env.SiteURL != "" {
		cfg.Site.URL = env.SiteURL
	}
	if env.GitHubKey != "" {
		cfg.GitHub.Token = env.GitHubKey
	}

	// Tier 2
	if env.Dev != nil {
		cfg.Server.Dev = *env.Dev
	}
	if env.LogLevel != "" {
		cfg.Log.Level = env.LogLevel
	}
	if env.LogFormat != "" {
		cfg.Log.Format = env.LogFormat
	}

	// Tier 3
	if env.Export != nil {
		cfg.Export.Enabled = *env.Export
	}
	if env.NoSandbox != nil {
		cfg.Export.NoSandbox = *env.NoSandbox
	}
	if env.BrowserBin != "" {
		cfg.Export.BrowserBin = env.BrowserBin
	}
}
