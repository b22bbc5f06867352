package website

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"net/url"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/pilcrowonpaper/website/internal/assets"
	"github.com/pilcrowonpaper/website/internal/config"
	"github.com/pilcrowonpaper/website/internal/pipeline"
	"github.com/pilcrowonpaper/website/internal/posts"
)

// recentPostCount is how many posts the home page lists.
const recentPostCount = 5

// highlightStylesheet is the generated chroma stylesheet served under /static.
const highlightStylesheet = "highlight.css"

// pageData is the value every page template executes with.
type pageData struct {
	Site        config.SiteConfig
	Title       string
	Description string
	URL         string // canonical
	Posts       []posts.Post
	Post        *posts.Post
	PDF         bool
}

func (s *Site) newPageData(r *http.Request) pageData {
	return pageData{
		Site: s.cfg.Site,
		URL:  Origin(r, s.cfg.Server.Dev) + r.URL.Path,
	}
}

func (s *Site) handleIndex(w http.ResponseWriter, r *http.Request) {
	list, err := s.posts.Load(r.Context())
	if err != nil {
		s.serverError(w, r, "load posts", err)
		return
	}

	data := s.newPageData(r)
	data.Posts = list[:min(len(list), recentPostCount)]
	s.render(w, r, http.StatusOK, assets.IndexPage, data)
}

func (s *Site) handleBlog(w http.ResponseWriter, r *http.Request) {
	list, err := s.posts.Load(r.Context())
	if err != nil {
		s.serverError(w, r, "load posts", err)
		return
	}

	data := s.newPageData(r)
	data.Title = "Blog"
	data.Posts = list
	s.render(w, r, http.StatusOK, assets.BlogPage, data)
}

func (s *Site) handlePost(w http.ResponseWriter, r *http.Request) {
	post, ok := s.findPost(w, r)
	if !ok {
		return
	}
	s.render(w, r, http.StatusOK, assets.PostPage, s.postPageData(r, &post))
}

func (s *Site) handlePostPDF(w http.ResponseWriter, r *http.Request) {
	if s.pdf == nil {
		s.handleNotFound(w, r)
		return
	}

	post, ok := s.findPost(w, r)
	if !ok {
		return
	}

	pdf, err := s.ExportPDF(r.Context(), r, post)
	if err != nil {
		s.serverError(w, r, "export pdf", err)
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", `inline; filename="`+post.ID+`.pdf"`)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(pdf)
}

// ExportPDF renders the post page as a standalone document and prints it.
// Links are made absolute against the post's URL on the request origin so
// the browser can fetch stylesheets and images from the running site.
func (s *Site) ExportPDF(ctx context.Context, r *http.Request, post posts.Post) ([]byte, error) {
	if s.pdf == nil {
		return nil, ErrExportDisabled
	}

	data := s.postPageData(r, &post)
	data.PDF = false

	var buf bytes.Buffer
	if err := s.pages.Execute(&buf, assets.PostPage, data); err != nil {
		return nil, err
	}

	base, err := url.Parse(Origin(r, s.cfg.Server.Dev) + "/" + post.Href)
	if err != nil {
		return nil, err
	}
	doc, err := pipeline.AbsoluteURLs(buf.String(), base)
	if err != nil {
		return nil, err
	}

	// The response middleware only sees the PDF bytes, so colors are
	// substituted here.
	return s.pdf.RenderPDF(ctx, s.rules.Apply(doc))
}

func (s *Site) postPageData(r *http.Request, post *posts.Post) pageData {
	data := s.newPageData(r)
	data.Title = post.Title
	data.Description = post.Description
	data.Post = post
	data.PDF = s.pdf != nil
	return data
}

// findPost resolves the {id} URL parameter, writing the 404 or 500 response
// itself when it reports false.
func (s *Site) findPost(w http.ResponseWriter, r *http.Request) (posts.Post, bool) {
	post, err := s.posts.Find(r.Context(), chi.URLParam(r, "id"))
	if errors.Is(err, posts.ErrPostNotFound) {
		s.handleNotFound(w, r)
		return posts.Post{}, false
	}
	if err != nil {
		s.serverError(w, r, "load post", err)
		return posts.Post{}, false
	}
	return post, true
}

func (s *Site) handleStatic(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")

	var css string
	switch {
	case name == highlightStylesheet:
		css = s.highlight
	case strings.HasSuffix(name, ".css"):
		var err error
		css, err = s.assets.LoadStyle(strings.TrimSuffix(name, ".css"))
		if errors.Is(err, assets.ErrStyleNotFound) || errors.Is(err, assets.ErrInvalidAssetName) {
			http.NotFound(w, r)
			return
		}
		if err != nil {
			s.serverError(w, r, "load style", err)
			return
		}
	default:
		http.NotFound(w, r)
		return
	}

	w.Header().Set("Content-Type", "text/css; charset=utf-8")
	if s.buildID != DevBuildID && r.URL.Query().Get("v") == s.buildID {
		w.Header().Set("Cache-Control", "public, max-age=31536000, immutable")
	} else {
		w.Header().Set("Cache-Control", "no-cache")
	}
	// Stylesheets are not text/html, so the response middleware skips them.
	_, _ = w.Write([]byte(s.rules.Apply(css)))
}

func (s *Site) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write([]byte("ok\n"))
}

func (s *Site) handleNotFound(w http.ResponseWriter, r *http.Request) {
	data := s.newPageData(r)
	data.Title = "Not found"
	data.URL = ""
	s.render(w, r, http.StatusNotFound, assets.NotFoundPage, data)
}

// render executes page into a buffer first so template errors produce a 500
// instead of a truncated page.
func (s *Site) render(w http.ResponseWriter, r *http.Request, status int, page string, data pageData) {
	var buf bytes.Buffer
	if err := s.pages.Execute(&buf, page, data); err != nil {
		s.serverError(w, r, "render "+page, err)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = buf.WriteTo(w)
}

func (s *Site) serverError(w http.ResponseWriter, r *http.Request, op string, err error) {
	s.logger.ErrorContext(r.Context(), op, "path", r.URL.Path, "error", err)
	http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
}
