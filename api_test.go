package website

import (
	"encoding/json"
	"errors"
	"net/http"
	"testing"

	"github.com/pilcrowonpaper/website/internal/config"
	"github.com/pilcrowonpaper/website/internal/github"
)

// ---------------------------------------------------------------------------
// TestRepositoryEndpoints - JSON Proxies
// ---------------------------------------------------------------------------

func TestRepositoryEndpoints(t *testing.T) {
	t.Parallel()

	repos := &fakeRepos{
		pinned: []github.Repository{
			{Name: "lucia", Description: "Auth library", Stars: 9000, Language: "TypeScript", URL: "https://github.com/lucia-auth/lucia"},
		},
		starred: []github.Repository{
			{Name: "oslo", Stars: 1200, URL: "https://github.com/pilcrowonpaper/oslo"},
			{Name: "arctic", Stars: 800, Language: "TypeScript", URL: "https://github.com/pilcrowonpaper/arctic"},
		},
	}
	h := newTestSite(t, WithGitHubClient(repos)).Handler()

	tests := []struct {
		target    string
		wantCache string
		wantNames []string
	}{
		{"/api/github/pinned-repository", "public, max-age=10", []string{"lucia"}},
		{"/api/projects", "public, max-age=86400", []string{"oslo", "arctic"}},
	}

	for _, tt := range tests {
		rec := get(t, h, tt.target)
		if rec.Code != http.StatusOK {
			t.Fatalf("GET %s status = %d", tt.target, rec.Code)
		}
		if got := rec.Header().Get("Cache-Control"); got != tt.wantCache {
			t.Errorf("GET %s Cache-Control = %q, want %q", tt.target, got, tt.wantCache)
		}
		if got := rec.Header().Get("Content-Type"); got != "application/json" {
			t.Errorf("GET %s Content-Type = %q", tt.target, got)
		}

		var got []map[string]any
		if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
			t.Fatalf("GET %s body is not a JSON array: %v", tt.target, err)
		}
		if len(got) != len(tt.wantNames) {
			t.Fatalf("GET %s returned %d repos, want %d", tt.target, len(got), len(tt.wantNames))
		}
		for i, name := range tt.wantNames {
			if got[i]["name"] != name {
				t.Errorf("GET %s [%d].name = %v, want %q", tt.target, i, got[i]["name"], name)
			}
			for _, key := range []string{"description", "stars", "language", "url"} {
				if _, ok := got[i][key]; !ok {
					t.Errorf("GET %s [%d] missing key %q", tt.target, i, key)
				}
			}
		}
	}
}

func TestRepositoryEndpoints_ConfiguredMaxAge(t *testing.T) {
	t.Parallel()

	cfg := config.DefaultConfig()
	cfg.GitHub.PinnedMaxAge = 60
	h := newTestSiteWithConfig(t, cfg).Handler()

	rec := get(t, h, "/api/github/pinned-repository")
	if got := rec.Header().Get("Cache-Control"); got != "public, max-age=60" {
		t.Errorf("Cache-Control = %q", got)
	}
}

func TestRepositoryEndpoints_EmptyList(t *testing.T) {
	t.Parallel()

	rec := get(t, newTestSite(t).Handler(), "/api/projects")
	if rec.Code != http.StatusOK || rec.Body.String() != "[]" {
		t.Errorf("GET /api/projects = %d %q, want 200 []", rec.Code, rec.Body.String())
	}
}

func TestRepositoryEndpoints_UpstreamFailure(t *testing.T) {
	t.Parallel()

	h := newTestSite(t, WithGitHubClient(&fakeRepos{err: errors.New("upstream down")})).Handler()

	for _, target := range []string{"/api/projects", "/api/github/pinned-repository"} {
		rec := get(t, h, target)
		if rec.Code != http.StatusInternalServerError {
			t.Errorf("GET %s status = %d, want 500", target, rec.Code)
		}
		if rec.Body.Len() != 0 {
			t.Errorf("GET %s body = %q, want empty", target, rec.Body.String())
		}
		if cc := rec.Header().Get("Cache-Control"); cc != "" {
			t.Errorf("GET %s failure should not be cacheable, got %q", target, cc)
		}
	}
}
