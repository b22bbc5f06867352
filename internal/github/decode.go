package github

import (
	"encoding/json"
	"fmt"
	"strings"
)

// graphQLError is one entry of a GraphQL "errors" array.
type graphQLError struct {
	Message string `json:"message"`
}

type pinnedResponse struct {
	Data *struct {
		User *struct {
			PinnedItems struct {
				Nodes []pinnedNode `json:"nodes"`
			} `json:"pinnedItems"`
		} `json:"user"`
	} `json:"data"`
	Errors []graphQLError `json:"errors"`
}

type pinnedNode struct {
	Name           string  `json:"name"`
	Description    *string `json:"description"`
	StargazerCount int     `json:"stargazerCount"`
	Languages      struct {
		Nodes []struct {
			Name string `json:"name"`
		} `json:"nodes"`
	} `json:"languages"`
	URL string `json:"url"`
}

type starredRepo struct {
	Name            string  `json:"name"`
	Description     *string `json:"description"`
	StargazersCount int     `json:"stargazers_count"`
	Language        *string `json:"language"`
	HTMLURL         string  `json:"html_url"`
}

// decodePinned decodes a GraphQL pinned items response.
func decodePinned(body []byte) ([]Repository, error) {
	var resp pinnedResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDecode, err)
	}
	if len(resp.Errors) > 0 {
		msgs := make([]string, len(resp.Errors))
		for i, e := range resp.Errors {
			msgs[i] = e.Message
		}
		return nil, fmt.Errorf("%w: graphql: %s", ErrDecode, strings.Join(msgs, "; "))
	}
	if resp.Data == nil || resp.Data.User == nil {
		return nil, fmt.Errorf("%w: missing data.user", ErrDecode)
	}

	nodes := resp.Data.User.PinnedItems.Nodes
	repos := make([]Repository, 0, len(nodes))
	for _, n := range nodes {
		// Pinned gists decode as empty nodes.
		if n.Name == "" {
			continue
		}
		repo := Repository{
			Name:        n.Name,
			Description: deref(n.Description),
			Stars:       n.StargazerCount,
			URL:         n.URL,
		}
		if len(n.Languages.Nodes) > 0 {
			repo.Language = n.Languages.Nodes[0].Name
		}
		repos = append(repos, repo)
	}
	return repos, nil
}

// decodeStarred decodes a REST starred repositories response.
func decodeStarred(body []byte) ([]Repository, error) {
	var items []starredRepo
	if err := json.Unmarshal(body, &items); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDecode, err)
	}

	repos := make([]Repository, len(items))
	for i, r := range items {
		repos[i] = Repository{
			Name:        r.Name,
			Description: deref(r.Description),
			Stars:       r.StargazersCount,
			Language:    deref(r.Language),
			URL:         r.HTMLURL,
		}
	}
	return repos, nil
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
