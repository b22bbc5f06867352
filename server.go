package website

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/pilcrowonpaper/website/internal/postprocess"
)

// Handler returns the site's HTTP handler.
func (s *Site) Handler() http.Handler {
	return s.router
}

// buildRouter constructs the chi router with all routes and middleware.
func (s *Site) buildRouter() chi.Router {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(requestLogger(s.logger))
	r.Use(middleware.Recoverer)
	r.Use(postprocess.Middleware(s.rules, s.logger))

	r.Get("/", s.handleIndex)
	r.Get("/blog", s.handleBlog)
	r.Get("/blog/{id}", s.handlePost)
	r.Get("/blog/{id}/pdf", s.handlePostPDF)
	r.Get("/rss.xml", s.handleFeed)
	r.Get("/static/{name}", s.handleStatic)
	r.Get("/healthz", s.handleHealth)

	r.Route("/api", func(r chi.Router) {
		r.Get("/projects", s.handleProjects)
		r.Get("/github/pinned-repository", s.handlePinnedRepository)
	})

	r.NotFound(s.handleNotFound)

	return r
}

// requestLogger logs one line per request once the response is written.
func requestLogger(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			start := time.Now()

			defer func() {
				status := ww.Status()
				if status == 0 {
					status = http.StatusOK
				}
				level := slog.LevelInfo
				if status >= http.StatusInternalServerError {
					level = slog.LevelError
				}
				logger.LogAttrs(r.Context(), level, "request",
					slog.String("method", r.Method),
					slog.String("path", r.URL.Path),
					slog.Int("status", status),
					slog.Int("bytes", ww.BytesWritten()),
					slog.Duration("duration", time.Since(start)),
					slog.String("request_id", middleware.GetReqID(r.Context())),
					slog.String("remote", r.RemoteAddr),
				)
			}()

			next.ServeHTTP(ww, r)
		})
	}
}
