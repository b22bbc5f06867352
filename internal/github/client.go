// Package github fetches repository listings for the site's project section.
//
// Transport (fetch) and decoding (decodePinned, decodeStarred) are separate so
// that a shape mismatch in the upstream JSON surfaces as ErrDecode rather than
// as a panic or a half-filled struct.
package github

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/pilcrowonpaper/website/internal/hints"
)

// Sentinel errors for GitHub operations.
var (
	ErrUpstreamStatus = errors.New("unexpected GitHub response status")
	ErrDecode         = errors.New("failed to decode GitHub response")
	ErrRequest        = errors.New("GitHub request failed")
)

// Defaults applied by NewClient for zero Options fields.
const (
	DefaultAPIURL     = "https://api.github.com"
	DefaultGraphQLURL = "https://api.github.com/graphql"
	DefaultTimeout    = 10 * time.Second
	DefaultPinned     = 10
	DefaultStarred    = 30
	apiVersion        = "2022-11-28"
	maxResponseSize   = 10 << 20
	maxErrorBodySize  = 1 << 10
)

// pinnedQuery selects the first pinned repositories of $login.
const pinnedQuery = `query($login: String!, $first: Int!) {
  user(login: $login) {
    pinnedItems(first: $first, types: REPOSITORY) {
      nodes {
        ... on Repository {
          name
          description
          stargazerCount
          languages(first: 1) { nodes { name } }
          url
        }
      }
    }
  }
}`

// Repository is the JSON shape served by the site's API endpoints.
type Repository struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Stars       int    `json:"stars"`
	Language    string `json:"language"`
	URL         string `json:"url"`
}

// Options configures a Client.
type Options struct {
	Login        string
	Token        string
	APIURL       string
	GraphQLURL   string
	Timeout      time.Duration
	StarredLimit int
	HTTPClient   *http.Client // Overrides Timeout when set
}

// Client calls the GitHub REST and GraphQL APIs for one user.
type Client struct {
	login        string
	token        string
	apiURL       string
	graphQLURL   string
	starredLimit int
	http         *http.Client
}

// NewClient creates a Client, filling defaults for empty options.
func NewClient(opts Options) *Client {
	c := &Client{
		login:        opts.Login,
		token:        opts.Token,
		apiURL:       strings.TrimRight(opts.APIURL, "/"),
		graphQLURL:   opts.GraphQLURL,
		starredLimit: opts.StarredLimit,
		http:         opts.HTTPClient,
	}
	if c.apiURL == "" {
		c.apiURL = DefaultAPIURL
	}
	if c.graphQLURL == "" {
		c.graphQLURL = DefaultGraphQLURL
	}
	if c.starredLimit <= 0 {
		c.starredLimit = DefaultStarred
	}
	if c.http == nil {
		timeout := opts.Timeout
		if timeout <= 0 {
			timeout = DefaultTimeout
		}
		c.http = &http.Client{Timeout: timeout}
	}
	return c
}

// PinnedRepositories returns the user's pinned repositories in pin order.
func (c *Client) PinnedRepositories(ctx context.Context) ([]Repository, error) {
	payload, err := json.Marshal(map[string]any{
		"query": pinnedQuery,
		"variables": map[string]any{
			"login": c.login,
			"first": DefaultPinned,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("%w: encoding query: %v", ErrRequest, err)
	}

	body, err := c.fetch(ctx, http.MethodPost, c.graphQLURL, payload)
	if err != nil {
		return nil, err
	}
	return decodePinned(body)
}

// StarredRepositories returns the repositories the user starred, most recent first.
func (c *Client) StarredRepositories(ctx context.Context) ([]Repository, error) {
	endpoint := fmt.Sprintf("%s/users/%s/starred?per_page=%d", c.apiURL, url.PathEscape(c.login), c.starredLimit)

	body, err := c.fetch(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}
	return decodeStarred(body)
}

// fetch performs one authenticated request and returns the raw body.
func (c *Client) fetch(ctx context.Context, method, endpoint string, payload []byte) ([]byte, error) {
	var reqBody io.Reader
	if payload != nil {
		reqBody = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reqBody)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRequest, err)
	}
	req.Header.Set("Accept", "application/vnd.github+json")
	req.Header.Set("X-GitHub-Api-Version", apiVersion)
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrRequest, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBodySize))
		err := fmt.Errorf("%w: HTTP %d: %s", ErrUpstreamStatus, resp.StatusCode, strings.TrimSpace(string(snippet)))
		if resp.StatusCode == http.StatusUnauthorized {
			err = fmt.Errorf("%w%s", err, hints.ForGitHubAuth(c.token != ""))
		}
		return nil, err
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return nil, fmt.Errorf("%w: reading body: %w", ErrRequest, err)
	}
	return body, nil
}
