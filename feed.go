package website

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"github.com/gorilla/feeds"
	"github.com/microcosm-cc/bluemonday"

	"github.com/pilcrowonpaper/website/internal/pipeline"
	"github.com/pilcrowonpaper/website/internal/posts"
)

// Feed builds the RSS feed of published posts, newest first.
func (s *Site) Feed(ctx context.Context) (*feeds.Feed, error) {
	list, err := s.posts.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrFeed, err)
	}

	site := s.cfg.Site
	feed := &feeds.Feed{
		Title:       site.Title,
		Link:        &feeds.Link{Href: s.absoluteURL("")},
		Description: site.Description,
		Created:     s.now(),
	}
	if site.Author != "" {
		feed.Author = &feeds.Author{Name: site.Author}
	}

	policy := bluemonday.UGCPolicy()
	for i, item := range posts.FeedItems(list) {
		link := s.absoluteURL(item.Link)

		var base *url.URL
		if s.siteURL != nil {
			base = s.siteURL.JoinPath(item.Link)
		}
		content, err := pipeline.AbsoluteURLs(string(list[i].Content), base)
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %w", ErrFeed, item.Link, err)
		}

		feed.Items = append(feed.Items, &feeds.Item{
			Title:       item.Title,
			Link:        &feeds.Link{Href: link},
			Id:          link,
			Description: item.Description,
			Created:     item.PubDate,
			Content:     s.rules.Apply(policy.Sanitize(content)),
		})
	}

	return feed, nil
}

// WriteFeed writes the RSS 2.0 document to w.
func (s *Site) WriteFeed(ctx context.Context, w io.Writer) error {
	feed, err := s.Feed(ctx)
	if err != nil {
		return err
	}
	if err := feed.WriteRss(w); err != nil {
		return fmt.Errorf("%w: %w", ErrFeed, err)
	}
	return nil
}

func (s *Site) handleFeed(w http.ResponseWriter, r *http.Request) {
	feed, err := s.Feed(r.Context())
	if err != nil {
		s.serverError(w, r, "build feed", err)
		return
	}

	rss, err := feed.ToRss()
	if err != nil {
		s.serverError(w, r, "encode feed", err)
		return
	}

	w.Header().Set("Content-Type", "application/rss+xml; charset=utf-8")
	_, _ = io.WriteString(w, rss)
}

// absoluteURL joins p under the configured site URL, keeping any sub path.
// Without a site URL it returns a root-relative path.
func (s *Site) absoluteURL(p string) string {
	if s.siteURL == nil {
		return "/" + p
	}
	return s.siteURL.JoinPath(p).String()
}
