package website

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/pilcrowonpaper/website/internal/github"
)

func (s *Site) handleProjects(w http.ResponseWriter, r *http.Request) {
	s.serveRepositories(w, r, s.repos.StarredRepositories, s.cfg.GitHub.ProjectsMaxAge)
}

func (s *Site) handlePinnedRepository(w http.ResponseWriter, r *http.Request) {
	s.serveRepositories(w, r, s.repos.PinnedRepositories, s.cfg.GitHub.PinnedMaxAge)
}

// serveRepositories writes the repositories returned by list as a JSON array.
// Any failure is logged and answered with a bare 500.
func (s *Site) serveRepositories(
	w http.ResponseWriter,
	r *http.Request,
	list func(context.Context) ([]github.Repository, error),
	maxAge int,
) {
	repos, err := list(r.Context())
	if err != nil {
		s.logger.ErrorContext(r.Context(), "fetch repositories", "path", r.URL.Path, "error", err)
		w.WriteHeader(http.StatusInternalServerError)
		return
	}
	if repos == nil {
		repos = []github.Repository{}
	}

	body, err := json.Marshal(repos)
	if err != nil {
		s.logger.ErrorContext(r.Context(), "encode repositories", "path", r.URL.Path, "error", err)
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	w.Header().Set("Cache-Control", fmt.Sprintf("public, max-age=%d", maxAge))
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(body)
}
