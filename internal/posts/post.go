package posts

import (
	"fmt"
	"html/template"
	"path"
	"strings"
	"time"

	"github.com/pilcrowonpaper/website/internal/dateutil"
)

// HrefPrefix is the route prefix joined with the id to form Post.Href.
const HrefPrefix = "blog"

// MetaData is the normalized front matter of a post.
type MetaData struct {
	Title       string
	Description string
	TLDR        *string // nil when absent
	Date        time.Time
	Hidden      bool
}

// Post is one published or hidden document, ready for rendering.
type Post struct {
	ID string
	MetaData
	Content template.HTML
	Href    string
}

// FeedItem is the per-post data a syndication feed needs.
type FeedItem struct {
	Title       string
	Description string
	PubDate     time.Time
	Link        string // Relative to the site root, e.g. "blog/my-post"
}

// FrontMatter mirrors the YAML block of a post before validation.
type FrontMatter struct {
	Title       string  `yaml:"title"`
	Description string  `yaml:"description"`
	TLDR        *string `yaml:"tldr"`
	Date        any     `yaml:"date"` // string, or time.Time when the decoder sees a timestamp
	Hidden      bool    `yaml:"hidden"`
}

// DeriveID returns the final "/"-separated segment of p with its last
// extension removed: "foo/bar/my-post.md" gives "my-post".
func DeriveID(p string) (string, error) {
	if p == "" {
		return "", fmt.Errorf("%w: empty path", ErrPathDerivation)
	}
	if strings.HasSuffix(p, "/") {
		return "", fmt.Errorf("%w: %q has no file name", ErrPathDerivation, p)
	}

	name := path.Base(p)
	id := strings.TrimSuffix(name, path.Ext(name))
	if id == "" || id == "." {
		return "", fmt.Errorf("%w: %q has no file name", ErrPathDerivation, p)
	}
	return id, nil
}

// Href returns the route for a post id.
func Href(id string) string {
	return HrefPrefix + "/" + id
}

// ParseDate parses a YYYY-MM-DD (or YYYY/MM/DD) date at midnight UTC.
func ParseDate(s string) (time.Time, error) {
	t, err := dateutil.ParsePostDate(s)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %v", ErrInvalidDate, err)
	}
	return t, nil
}

// ParseMetaData validates raw front matter and normalizes it.
func ParseMetaData(raw FrontMatter) (MetaData, error) {
	title := strings.TrimSpace(raw.Title)
	if title == "" {
		return MetaData{}, fmt.Errorf("%w: title", ErrMissingField)
	}
	description := strings.TrimSpace(raw.Description)
	if description == "" {
		return MetaData{}, fmt.Errorf("%w: description", ErrMissingField)
	}

	var date time.Time
	switch v := raw.Date.(type) {
	case nil:
		return MetaData{}, fmt.Errorf("%w: date", ErrMissingField)
	case string:
		if strings.TrimSpace(v) == "" {
			return MetaData{}, fmt.Errorf("%w: date", ErrMissingField)
		}
		t, err := ParseDate(v)
		if err != nil {
			return MetaData{}, err
		}
		date = t
	case time.Time:
		date = time.Date(v.Year(), v.Month(), v.Day(), 0, 0, 0, 0, time.UTC)
	default:
		return MetaData{}, fmt.Errorf("%w: unsupported value %v", ErrInvalidDate, v)
	}

	var tldr *string
	if raw.TLDR != nil {
		s := strings.TrimSpace(*raw.TLDR)
		tldr = &s
	}

	return MetaData{
		Title:       title,
		Description: description,
		TLDR:        tldr,
		Date:        date,
		Hidden:      raw.Hidden,
	}, nil
}

// FeedItems maps posts to feed entries, preserving order.
func FeedItems(posts []Post) []FeedItem {
	items := make([]FeedItem, len(posts))
	for i, p := range posts {
		items[i] = FeedItem{
			Title:       p.Title,
			Description: p.Description,
			PubDate:     p.Date,
			Link:        p.Href,
		}
	}
	return items
}
