package config

import (
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/alecthomas/chroma/v2/styles"

	"github.com/pilcrowonpaper/website/internal/dateutil"
	"github.com/pilcrowonpaper/website/internal/fileutil"
	"github.com/pilcrowonpaper/website/internal/postprocess"
	"github.com/pilcrowonpaper/website/internal/yamlutil"
)

// Sentinel errors for config operations.
var (
	ErrConfigNotFound  = errors.New("config file not found")
	ErrEmptyConfigName = errors.New("config name cannot be empty")
	ErrConfigParse     = errors.New("failed to parse config")
	ErrInvalidConfig   = errors.New("invalid config")
	ErrFieldTooLong    = errors.New("field exceeds maximum length")
)

// Field length limits.
const (
	MaxTitleLength       = 200
	MaxDescriptionLength = 500
	MaxNameLength        = 100
	MaxURLLength         = 2048 // Browser limit
	MaxPathLength        = 4096
	MaxLoginLength       = 39 // GitHub username limit
	MaxColorLength       = 200
)

// Defaults used when a field is left empty.
const (
	DefaultAddr            = ":3000"
	DefaultPostsDir        = "posts"
	DefaultReadTimeout     = 10 * time.Second
	DefaultWriteTimeout    = 60 * time.Second
	DefaultIdleTimeout     = 120 * time.Second
	DefaultShutdownTimeout = 10 * time.Second
	DefaultGitHubTimeout   = 10 * time.Second
	DefaultExportTimeout   = 30 * time.Second
	DefaultPinnedMaxAge    = 10
	DefaultProjectsMaxAge  = 86400
	DefaultStarredLimit    = 30
	MaxStarredLimit        = 100 // GitHub per_page cap
	DefaultGitHubAPIURL    = "https://api.github.com"
	DefaultGitHubGraphQL   = "https://api.github.com/graphql"
)

// Config holds all configuration for the site.
type Config struct {
	Site     SiteConfig     `yaml:"site"`
	Server   ServerConfig   `yaml:"server"`
	Content  ContentConfig  `yaml:"content"`
	Markdown MarkdownConfig `yaml:"markdown"`
	GitHub   GitHubConfig   `yaml:"github"`
	Theme    ThemeConfig    `yaml:"theme"`
	Assets   AssetsConfig   `yaml:"assets"`
	Export   ExportConfig   `yaml:"export"`
	Log      LogConfig      `yaml:"log"`
}

// SiteConfig describes the site itself.
type SiteConfig struct {
	Title       string `yaml:"title"`
	Description string `yaml:"description"`
	URL         string `yaml:"url"` // Absolute origin, used for feed links
	Author      string `yaml:"author"`
	DateFormat  string `yaml:"dateFormat"` // Display format, e.g. "MMMM D, YYYY" or "long"
}

// ServerConfig defines the HTTP listener.
type ServerConfig struct {
	Addr            string `yaml:"addr"`
	Dev             bool   `yaml:"dev"` // Keep request origin as-is instead of forcing https
	ReadTimeout     string `yaml:"readTimeout"`
	WriteTimeout    string `yaml:"writeTimeout"`
	IdleTimeout     string `yaml:"idleTimeout"`
	ShutdownTimeout string `yaml:"shutdownTimeout"`
}

// ContentConfig locates the markdown posts.
type ContentConfig struct {
	PostsDir string `yaml:"postsDir"`
}

// MarkdownConfig tunes the markdown converter.
type MarkdownConfig struct {
	HighlightStyle   string `yaml:"highlightStyle"`   // chroma style name (empty = github)
	HighlightClasses bool   `yaml:"highlightClasses"` // Emit classes instead of inline styles
	UnsafeHTML       bool   `yaml:"unsafeHTML"`       // Keep raw HTML from posts
}

// GitHubConfig configures the GitHub proxy endpoints.
type GitHubConfig struct {
	Login          string `yaml:"login"`
	Token          string `yaml:"token"`
	APIURL         string `yaml:"apiURL"`
	GraphQLURL     string `yaml:"graphQLURL"`
	Timeout        string `yaml:"timeout"`
	PinnedMaxAge   int    `yaml:"pinnedMaxAge"`   // Seconds
	ProjectsMaxAge int    `yaml:"projectsMaxAge"` // Seconds
	StarredLimit   int    `yaml:"starredLimit"`
}

// ColorRule is one literal substitution applied to HTML responses.
type ColorRule struct {
	Match   string `yaml:"match"`
	Replace string `yaml:"replace"`
}

// ThemeConfig holds the ordered color substitutions.
type ThemeConfig struct {
	Colors []ColorRule `yaml:"colors"`
}

// AssetsConfig defines asset loading options.
type AssetsConfig struct {
	BasePath string `yaml:"basePath"` // Empty = use embedded assets
}

// ExportConfig enables PDF export of posts.
type ExportConfig struct {
	Enabled    bool   `yaml:"enabled"`
	Timeout    string `yaml:"timeout"`
	BrowserBin string `yaml:"browserBin"` // Empty = rod downloads or finds a browser
	NoSandbox  bool   `yaml:"noSandbox"`
}

// LogConfig selects the slog handler.
type LogConfig struct {
	Level  string `yaml:"level"`  // debug, info, warn, error
	Format string `yaml:"format"` // json, text
}

// Validate checks field lengths and values.
func (c *Config) Validate() error {
	// Site
	if err := validateFieldLength("site.title", c.Site.Title, MaxTitleLength); err != nil {
		return err
	}
	if err := validateFieldLength("site.description", c.Site.Description, MaxDescriptionLength); err != nil {
		return err
	}
	if err := validateFieldLength("site.author", c.Site.Author, MaxNameLength); err != nil {
		return err
	}
	if err := validateFieldLength("site.url", c.Site.URL, MaxURLLength); err != nil {
		return err
	}
	if c.Site.URL != "" {
		if err := validateAbsoluteURL("site.url", c.Site.URL); err != nil {
			return err
		}
	}
	if c.Site.DateFormat != "" {
		if _, err := dateutil.ParseDateFormat(c.Site.DateFormat); err != nil {
			return fmt.Errorf("%w: site.dateFormat: %v", ErrInvalidConfig, err)
		}
	}

	// Server
	durations := []struct {
		field string
		value string
	}{
		{"server.readTimeout", c.Server.ReadTimeout},
		{"server.writeTimeout", c.Server.WriteTimeout},
		{"server.idleTimeout", c.Server.IdleTimeout},
		{"server.shutdownTimeout", c.Server.ShutdownTimeout},
		{"github.timeout", c.GitHub.Timeout},
		{"export.timeout", c.Export.Timeout},
	}
	for _, d := range durations {
		if err := validateDuration(d.field, d.value); err != nil {
			return err
		}
	}

	// Content
	if err := validateFieldLength("content.postsDir", c.Content.PostsDir, MaxPathLength); err != nil {
		return err
	}

	// Markdown
	if c.Markdown.HighlightStyle != "" {
		if _, ok := styles.Registry[c.Markdown.HighlightStyle]; !ok {
			return fmt.Errorf("%w: markdown.highlightStyle: unknown style %q", ErrInvalidConfig, c.Markdown.HighlightStyle)
		}
	}

	// GitHub
	if err := validateFieldLength("github.login", c.GitHub.Login, MaxLoginLength); err != nil {
		return err
	}
	for _, u := range []struct{ field, value string }{
		{"github.apiURL", c.GitHub.APIURL},
		{"github.graphQLURL", c.GitHub.GraphQLURL},
	} {
		if u.value == "" {
			continue
		}
		if err := validateAbsoluteURL(u.field, u.value); err != nil {
			return err
		}
	}
	if c.GitHub.PinnedMaxAge < 0 {
		return fmt.Errorf("%w: github.pinnedMaxAge: must not be negative, got %d", ErrInvalidConfig, c.GitHub.PinnedMaxAge)
	}
	if c.GitHub.ProjectsMaxAge < 0 {
		return fmt.Errorf("%w: github.projectsMaxAge: must not be negative, got %d", ErrInvalidConfig, c.GitHub.ProjectsMaxAge)
	}
	if c.GitHub.StarredLimit < 0 || c.GitHub.StarredLimit > MaxStarredLimit {
		return fmt.Errorf("%w: github.starredLimit: must be between 0 and %d, got %d", ErrInvalidConfig, MaxStarredLimit, c.GitHub.StarredLimit)
	}

	// Theme
	for i, rule := range c.Theme.Colors {
		if err := validateFieldLength(fmt.Sprintf("theme.colors[%d].match", i), rule.Match, MaxColorLength); err != nil {
			return err
		}
		if err := validateFieldLength(fmt.Sprintf("theme.colors[%d].replace", i), rule.Replace, MaxColorLength); err != nil {
			return err
		}
	}
	if err := c.Theme.Rules().Validate(); err != nil {
		return fmt.Errorf("%w: theme.colors: %v", ErrInvalidConfig, err)
	}

	// Assets
	if err := validateFieldLength("assets.basePath", c.Assets.BasePath, MaxPathLength); err != nil {
		return err
	}

	// Export
	if err := validateFieldLength("export.browserBin", c.Export.BrowserBin, MaxPathLength); err != nil {
		return err
	}

	// Log
	switch strings.ToLower(c.Log.Level) {
	case "", "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("%w: log.level: invalid value %q (must be debug, info, warn, or error)", ErrInvalidConfig, c.Log.Level)
	}
	switch strings.ToLower(c.Log.Format) {
	case "", "json", "text":
	default:
		return fmt.Errorf("%w: log.format: invalid value %q (must be json or text)", ErrInvalidConfig, c.Log.Format)
	}

	return nil
}

// validateFieldLength checks if a field exceeds its maximum allowed length.
func validateFieldLength(fieldName, value string, maxLength int) error {
	if len(value) > maxLength {
		return fmt.Errorf("%w: %s (%d chars, max %d)", ErrFieldTooLong, fieldName, len(value), maxLength)
	}
	return nil
}

func validateDuration(fieldName, value string) error {
	if value == "" {
		return nil
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return fmt.Errorf("%w: %s: %v", ErrInvalidConfig, fieldName, err)
	}
	if d <= 0 {
		return fmt.Errorf("%w: %s: must be positive, got %s", ErrInvalidConfig, fieldName, value)
	}
	return nil
}

func validateAbsoluteURL(fieldName, value string) error {
	u, err := url.Parse(value)
	if err != nil {
		return fmt.Errorf("%w: %s: %v", ErrInvalidConfig, fieldName, err)
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("%w: %s: must be an absolute http(s) URL, got %q", ErrInvalidConfig, fieldName, value)
	}
	return nil
}

// durationOr parses value, returning fallback when it is empty or invalid.
// Validate has already rejected invalid values for loaded configs.
func durationOr(value string, fallback time.Duration) time.Duration {
	if value == "" {
		return fallback
	}
	d, err := time.ParseDuration(value)
	if err != nil || d <= 0 {
		return fallback
	}
	return d
}

// Timeouts returns the parsed server timeouts.
func (s ServerConfig) Timeouts() (read, write, idle, shutdown time.Duration) {
	return durationOr(s.ReadTimeout, DefaultReadTimeout),
		durationOr(s.WriteTimeout, DefaultWriteTimeout),
		durationOr(s.IdleTimeout, DefaultIdleTimeout),
		durationOr(s.ShutdownTimeout, DefaultShutdownTimeout)
}

// RequestTimeout returns the parsed upstream timeout.
func (g GitHubConfig) RequestTimeout() time.Duration {
	return durationOr(g.Timeout, DefaultGitHubTimeout)
}

// RenderTimeout returns the parsed PDF render timeout.
func (e ExportConfig) RenderTimeout() time.Duration {
	return durationOr(e.Timeout, DefaultExportTimeout)
}

// Rules converts the configured colors to post-processing rules.
func (t ThemeConfig) Rules() postprocess.Rules {
	rules := make(postprocess.Rules, len(t.Colors))
	for i, c := range t.Colors {
		rules[i] = postprocess.Rule{Match: c.Match, Replace: c.Replace}
	}
	return rules
}

// SlogLevel maps the configured level to a slog.Level (info when empty).
func (l LogConfig) SlogLevel() slog.Level {
	switch strings.ToLower(l.Level) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// DefaultConfig returns the configuration used when no file is given.
func DefaultConfig() *Config {
	defaults := postprocess.DefaultRules()
	colors := make([]ColorRule, len(defaults))
	for i, r := range defaults {
		colors[i] = ColorRule{Match: r.Match, Replace: r.Replace}
	}

	return &Config{
		Site: SiteConfig{
			Title:       "Pilcrow",
			Description: "I think I'm best \"known\" for my work on auth libraries, but I'm interested in anything web dev... well maybe except CSS. I enjoy taking photos, drawing, playing games, traveling, and cooking. Italian food is my favorite.",
			URL:         "https://pilcrowonpaper.com/",
			Author:      "Pilcrow",
			DateFormat:  dateutil.DefaultDisplayFormat,
		},
		Server:   ServerConfig{Addr: DefaultAddr},
		Content:  ContentConfig{PostsDir: DefaultPostsDir},
		Markdown: MarkdownConfig{UnsafeHTML: true},
		GitHub: GitHubConfig{
			Login:          "pilcrowonpaper",
			APIURL:         DefaultGitHubAPIURL,
			GraphQLURL:     DefaultGitHubGraphQL,
			PinnedMaxAge:   DefaultPinnedMaxAge,
			ProjectsMaxAge: DefaultProjectsMaxAge,
			StarredLimit:   DefaultStarredLimit,
		},
		Theme:  ThemeConfig{Colors: colors},
		Assets: AssetsConfig{BasePath: ""},
		Export: ExportConfig{Enabled: false},
		Log:    LogConfig{Level: "info", Format: "json"},
	}
}

// LoadConfig loads configuration from a file path or config name.
// If nameOrPath contains a path separator, it's treated as a file path.
// Otherwise, it's treated as a config name and searched in standard locations.
// Values absent from the file keep their DefaultConfig value.
func LoadConfig(nameOrPath string) (*Config, error) {
	if nameOrPath == "" {
		return nil, ErrEmptyConfigName
	}

	var configPath string
	var err error

	if fileutil.IsFilePath(nameOrPath) {
		configPath = nameOrPath
	} else {
		configPath, err = resolveConfigPath(nameOrPath)
		if err != nil {
			return nil, err
		}
	}

	data, err := os.ReadFile(configPath) // #nosec G304 -- config path is user-provided
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrConfigNotFound, configPath)
		}
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	cfg := DefaultConfig()
	if err := yamlutil.UnmarshalStrict(data, cfg); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConfigParse, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// resolveConfigPath searches for a config file by name in standard locations.
// Tries extensions in order: .yaml, .yml
// Tries locations in order: current directory, ~/.config/website/
func resolveConfigPath(name string) (string, error) {
	extensions := []string{".yaml", ".yml"}
	triedPaths := make([]string, 0, len(extensions)*2) // 2 locations

	for _, ext := range extensions {
		localPath := name + ext
		if fileutil.FileExists(localPath) {
			return localPath, nil
		}
		triedPaths = append(triedPaths, localPath)
	}

	userConfigDir, err := os.UserConfigDir()
	if err == nil {
		for _, ext := range extensions {
			userPath := filepath.Join(userConfigDir, "website", name+ext)
			if fileutil.FileExists(userPath) {
				return userPath, nil
			}
			triedPaths = append(triedPaths, userPath)
		}
	}

	return "", fmt.Errorf("%w: tried %s", ErrConfigNotFound, strings.Join(triedPaths, ", "))
}
