package posts

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"io/fs"
	"path"
	"slices"
	"sort"

	"github.com/adrg/frontmatter"
	"golang.org/x/sync/errgroup"

	"github.com/pilcrowonpaper/website/internal/yamlutil"
)

// DocumentPattern matches post documents inside the posts directory.
const DocumentPattern = "*.md"

// yamlFormat splits "---" delimited front matter and decodes it with goccy/go-yaml.
var yamlFormat = frontmatter.NewFormat("---", "---", yamlutil.Unmarshal)

// Renderer converts a markdown body to HTML.
type Renderer interface {
	ToHTML(ctx context.Context, content string) (string, error)
}

// Loader reads posts from a filesystem.
type Loader struct {
	fsys     fs.FS
	dir      string
	renderer Renderer
}

// NewLoader creates a Loader over the documents in dir of fsys.
// An empty dir means the root of fsys.
func NewLoader(fsys fs.FS, dir string, renderer Renderer) *Loader {
	if dir == "" {
		dir = "."
	}
	return &Loader{fsys: fsys, dir: dir, renderer: renderer}
}

// Load returns the published posts: every document resolved, sorted by date
// descending (ties keep discovery order), then with hidden posts removed.
func (l *Loader) Load(ctx context.Context) ([]Post, error) {
	all, err := l.All(ctx)
	if err != nil {
		return nil, err
	}
	return slices.DeleteFunc(all, func(p Post) bool { return p.Hidden }), nil
}

// All returns every post, hidden ones included, sorted by date descending.
func (l *Loader) All(ctx context.Context) ([]Post, error) {
	paths, err := l.discover()
	if err != nil {
		return nil, err
	}

	posts := make([]Post, len(paths))
	g, gctx := errgroup.WithContext(ctx)
	for i, p := range paths {
		g.Go(func() error {
			post, err := l.Resolve(gctx, p)
			if err != nil {
				return err
			}
			posts[i] = post
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	if err := checkUniqueIDs(paths, posts); err != nil {
		return nil, err
	}

	sort.SliceStable(posts, func(i, j int) bool {
		return posts[i].Date.After(posts[j].Date)
	})
	return posts, nil
}

// Find returns the post with the given id, hidden or not.
func (l *Loader) Find(ctx context.Context, id string) (Post, error) {
	all, err := l.All(ctx)
	if err != nil {
		return Post{}, err
	}
	for _, p := range all {
		if p.ID == id {
			return p, nil
		}
	}
	return Post{}, fmt.Errorf("%w: %q", ErrPostNotFound, id)
}

// Resolve reads and normalizes the single document at p.
func (l *Loader) Resolve(ctx context.Context, p string) (Post, error) {
	post, err := l.resolve(ctx, p)
	if err != nil {
		return Post{}, fmt.Errorf("%w: %s: %w", ErrDocumentResolution, p, err)
	}
	return post, nil
}

func (l *Loader) resolve(ctx context.Context, p string) (Post, error) {
	id, err := DeriveID(p)
	if err != nil {
		return Post{}, err
	}

	data, err := fs.ReadFile(l.fsys, p)
	if err != nil {
		return Post{}, err
	}

	var raw FrontMatter
	body, err := frontmatter.MustParse(bytes.NewReader(data), &raw, yamlFormat)
	if err != nil {
		return Post{}, err
	}

	meta, err := ParseMetaData(raw)
	if err != nil {
		return Post{}, err
	}

	html, err := l.renderer.ToHTML(ctx, string(body))
	if err != nil {
		return Post{}, err
	}

	return Post{
		ID:       id,
		MetaData: meta,
		Content:  template.HTML(html), // #nosec G203 -- rendered from site-owned markdown
		Href:     Href(id),
	}, nil
}

// checkUniqueIDs rejects two documents resolving to the same id.
// posts[i] must have been resolved from paths[i].
func checkUniqueIDs(paths []string, posts []Post) error {
	seen := make(map[string]string, len(posts))
	for i, p := range posts {
		if prev, ok := seen[p.ID]; ok {
			return fmt.Errorf("%w: %s: %w: %q also derived from %s", ErrDocumentResolution, paths[i], ErrDuplicateID, p.ID, prev)
		}
		seen[p.ID] = paths[i]
	}
	return nil
}

// discover lists document paths in lexical order.
func (l *Loader) discover() ([]string, error) {
	paths, err := fs.Glob(l.fsys, path.Join(l.dir, DocumentPattern))
	if err != nil {
		return nil, fmt.Errorf("%w: listing %s: %v", ErrDocumentResolution, l.dir, err)
	}
	sort.Strings(paths)
	return paths, nil
}
