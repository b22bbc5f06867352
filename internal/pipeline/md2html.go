package pipeline

import (
	"bytes"
	"context"
	"errors"
	"fmt"

	chromahtml "github.com/alecthomas/chroma/v2/formatters/html"
	"github.com/alecthomas/chroma/v2/styles"
	"github.com/yuin/goldmark"
	highlighting "github.com/yuin/goldmark-highlighting/v2"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer"
	"github.com/yuin/goldmark/renderer/html"

	"github.com/pilcrowonpaper/website/internal/postprocess"
)

var (
	// ErrHTMLConversion indicates goldmark failed to convert a body.
	ErrHTMLConversion = errors.New("HTML conversion failed")

	// ErrUnknownStyle indicates a highlight style chroma does not know.
	ErrUnknownStyle = errors.New("unknown highlight style")
)

// DefaultHighlightStyle is the chroma style used when none is configured.
const DefaultHighlightStyle = "github"

// Options configures a GoldmarkConverter.
type Options struct {
	// HighlightStyle names a chroma style. Empty uses DefaultHighlightStyle.
	HighlightStyle string
	// HighlightClasses emits CSS classes instead of inline style attributes.
	// The matching stylesheet comes from HighlightCSS.
	HighlightClasses bool
	// UnsafeHTML lets raw HTML in posts through to the page.
	UnsafeHTML bool
}

// Converter renders a markdown body to an HTML fragment.
type Converter interface {
	ToHTML(ctx context.Context, content string) (string, error)
}

// GoldmarkConverter converts markdown with goldmark.
type GoldmarkConverter struct {
	md goldmark.Markdown
}

var _ Converter = (*GoldmarkConverter)(nil)

// NewGoldmarkConverter builds a converter with GFM, footnotes and highlighting.
func NewGoldmarkConverter(opts Options) (*GoldmarkConverter, error) {
	style := opts.HighlightStyle
	if style == "" {
		style = DefaultHighlightStyle
	}
	if _, ok := styles.Registry[style]; !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownStyle, style)
	}

	htmlOpts := []renderer.Option{html.WithXHTML()}
	if opts.UnsafeHTML {
		htmlOpts = append(htmlOpts, html.WithUnsafe())
	}

	md := goldmark.New(
		goldmark.WithExtensions(
			extension.GFM,
			extension.Footnote,
			MarkExtension,
			highlighting.NewHighlighting(
				highlighting.WithStyle(style),
				highlighting.WithFormatOptions(
					chromahtml.WithClasses(opts.HighlightClasses),
				),
			),
		),
		goldmark.WithParserOptions(
			parser.WithAutoHeadingID(),
		),
		goldmark.WithRendererOptions(htmlOpts...),
	)
	return &GoldmarkConverter{md: md}, nil
}

// ToHTML converts a markdown body to an HTML fragment with root-level tables
// wrapped. goldmark has no context support, so conversion runs in a goroutine
// and the call returns early when ctx is done.
func (c *GoldmarkConverter) ToHTML(ctx context.Context, content string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	type result struct {
		html string
		err  error
	}
	done := make(chan result, 1)

	go func() {
		var buf bytes.Buffer
		if err := c.md.Convert([]byte(Preprocess(content)), &buf); err != nil {
			done <- result{err: fmt.Errorf("%w: %v", ErrHTMLConversion, err)}
			return
		}
		out, err := wrapTables(buf.String())
		done <- result{html: out, err: err}
	}()

	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case r := <-done:
		return r.html, r.err
	}
}

func wrapTables(fragment string) (string, error) {
	root, err := postprocess.Parse(fragment)
	if err != nil {
		return "", fmt.Errorf("%w: parsing output: %v", ErrHTMLConversion, err)
	}
	// Colors are remapped per response by the middleware, not here.
	out, err := postprocess.Process(root, nil)
	if err != nil {
		return "", fmt.Errorf("%w: rendering output: %v", ErrHTMLConversion, err)
	}
	return out, nil
}

// HighlightCSS returns the stylesheet for class-based highlighting in style.
func HighlightCSS(style string) (string, error) {
	if style == "" {
		style = DefaultHighlightStyle
	}
	s, ok := styles.Registry[style]
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownStyle, style)
	}

	var buf bytes.Buffer
	if err := chromahtml.New(chromahtml.WithClasses(true)).WriteCSS(&buf, s); err != nil {
		return "", err
	}
	return buf.String(), nil
}
