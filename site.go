package website

import (
	"context"
	"fmt"
	"html/template"
	"io"
	"io/fs"
	"log/slog"
	"net/url"
	"os"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/pilcrowonpaper/website/internal/assets"
	"github.com/pilcrowonpaper/website/internal/config"
	"github.com/pilcrowonpaper/website/internal/dateutil"
	"github.com/pilcrowonpaper/website/internal/github"
	"github.com/pilcrowonpaper/website/internal/pipeline"
	"github.com/pilcrowonpaper/website/internal/postprocess"
	"github.com/pilcrowonpaper/website/internal/posts"
)

// RepositorySource lists GitHub repositories for the API endpoints.
type RepositorySource interface {
	PinnedRepositories(ctx context.Context) ([]github.Repository, error)
	StarredRepositories(ctx context.Context) ([]github.Repository, error)
}

// PDFRenderer renders a self-contained HTML document to PDF.
type PDFRenderer interface {
	RenderPDF(ctx context.Context, htmlContent string) ([]byte, error)
	Close() error
}

// Compile-time interface checks.
var (
	_ RepositorySource = (*github.Client)(nil)
	_ PDFRenderer      = (*rodRenderer)(nil)
	_ posts.Renderer   = (*pipeline.GoldmarkConverter)(nil)
)

// Option customizes a Site.
type Option func(*Site)

// WithLogger sets the structured logger. Defaults to a logger that discards output.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Site) { s.logger = logger }
}

// WithContentFS reads posts from fsys instead of the configured posts directory.
func WithContentFS(fsys fs.FS) Option {
	return func(s *Site) { s.contentFS = fsys }
}

// WithGitHubClient replaces the GitHub API client.
func WithGitHubClient(src RepositorySource) Option {
	return func(s *Site) { s.repos = src }
}

// WithPDFRenderer replaces the headless Chrome renderer used for PDF export.
func WithPDFRenderer(r PDFRenderer) Option {
	return func(s *Site) { s.pdf = r }
}

// WithAssetLoader replaces the template and stylesheet loader.
func WithAssetLoader(loader assets.AssetLoader) Option {
	return func(s *Site) { s.assets = loader }
}

// WithBuildID sets the cache-busting suffix appended to static asset links.
func WithBuildID(id string) Option {
	return func(s *Site) { s.buildID = id }
}

// WithNow sets the clock used for feed timestamps.
func WithNow(now func() time.Time) Option {
	return func(s *Site) { s.now = now }
}

// Site holds everything needed to serve requests. Create with New.
type Site struct {
	cfg       *config.Config
	logger    *slog.Logger
	contentFS fs.FS
	posts     *posts.Loader
	repos     RepositorySource
	pdf       PDFRenderer
	assets    assets.AssetLoader
	pages     *assets.PageSet
	dates     *dateutil.Formatter
	rules     postprocess.Rules
	siteURL   *url.URL
	router    chi.Router
	highlight string
	buildID   string
	now       func() time.Time
}

// New builds a Site from cfg. cfg is validated and must not be modified afterwards.
func New(cfg *config.Config, opts ...Option) (*Site, error) {
	if cfg == nil {
		return nil, fmt.Errorf("%w: nil config", ErrInvalidConfig)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}

	s := &Site{
		cfg:     cfg,
		buildID: DevBuildID,
		now:     time.Now,
		rules:   cfg.Theme.Rules(),
	}
	for _, opt := range opts {
		opt(s)
	}

	if s.logger == nil {
		s.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	if cfg.Site.URL != "" {
		u, err := url.Parse(cfg.Site.URL)
		if err != nil {
			return nil, fmt.Errorf("%w: site.url: %v", ErrInvalidConfig, err)
		}
		s.siteURL = u
	}

	format := cfg.Site.DateFormat
	if format == "" {
		format = dateutil.DefaultDisplayFormat
	}
	dates, err := dateutil.NewFormatter(format)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	s.dates = dates

	converter, err := pipeline.NewGoldmarkConverter(pipeline.Options{
		HighlightStyle:   cfg.Markdown.HighlightStyle,
		HighlightClasses: cfg.Markdown.HighlightClasses,
		UnsafeHTML:       cfg.Markdown.UnsafeHTML,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}

	s.highlight, err = pipeline.HighlightCSS(cfg.Markdown.HighlightStyle)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}

	if s.contentFS == nil {
		s.contentFS = os.DirFS(cfg.Content.PostsDir)
	}
	s.posts = posts.NewLoader(s.contentFS, ".", converter)

	if s.assets == nil {
		resolver, err := assets.NewAssetResolver(cfg.Assets.BasePath)
		if err != nil {
			return nil, fmt.Errorf("%w: assets.basePath: %w", ErrInvalidConfig, err)
		}
		s.assets = resolver
	}

	s.pages, err = assets.LoadPageSet(s.assets, s.templateFuncs())
	if err != nil {
		return nil, fmt.Errorf("loading page templates: %w", err)
	}

	if s.repos == nil {
		s.repos = github.NewClient(github.Options{
			Login:        cfg.GitHub.Login,
			Token:        cfg.GitHub.Token,
			APIURL:       cfg.GitHub.APIURL,
			GraphQLURL:   cfg.GitHub.GraphQLURL,
			Timeout:      cfg.GitHub.RequestTimeout(),
			StarredLimit: cfg.GitHub.StarredLimit,
		})
	}

	if s.pdf == nil && cfg.Export.Enabled {
		s.pdf = newRodRenderer(rodOptions{
			timeout:    cfg.Export.RenderTimeout(),
			browserBin: cfg.Export.BrowserBin,
			noSandbox:  cfg.Export.NoSandbox,
		})
	}

	s.router = s.buildRouter()
	return s, nil
}

// Close releases the PDF renderer's browser, if one was started.
func (s *Site) Close() error {
	if s.pdf != nil {
		return s.pdf.Close()
	}
	return nil
}

// Posts returns the published posts, newest first.
func (s *Site) Posts(ctx context.Context) ([]posts.Post, error) {
	return s.posts.Load(ctx)
}

// templateFuncs are available to every page template.
func (s *Site) templateFuncs() template.FuncMap {
	return template.FuncMap{
		"date":  s.dates.Format,
		"asset": s.assetURL,
	}
}

// assetURL returns the cache-busted URL of a static file.
func (s *Site) assetURL(name string) string {
	return "/static/" + name + "?v=" + url.QueryEscape(s.buildID)
}
