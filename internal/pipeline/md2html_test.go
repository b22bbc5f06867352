package pipeline

import (
	"context"
	"errors"
	"html"
	"regexp"
	"strings"
	"testing"
)

func newTestConverter(t *testing.T, opts Options) *GoldmarkConverter {
	t.Helper()
	c, err := NewGoldmarkConverter(opts)
	if err != nil {
		t.Fatalf("NewGoldmarkConverter() error: %v", err)
	}
	return c
}

// ---------------------------------------------------------------------------
// TestGoldmarkConverter_ToHTML
// ---------------------------------------------------------------------------

func TestGoldmarkConverter_ToHTML(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name         string
		opts         Options
		markdown     string
		wantContains []string
		wantExcludes []string
	}{
		{
			name:         "heading gets id",
			markdown:     "# Hello World",
			wantContains: []string{`<h1 id="hello-world">Hello World</h1>`},
		},
		{
			name:     "root table wrapped",
			markdown: "| a | b |\n|---|---|\n| 1 | 2 |\n",
			wantContains: []string{
				`<div class="table-wrapper"><table>`,
				`</table></div>`,
			},
		},
		{
			name:         "table in blockquote not wrapped",
			markdown:     "> | a | b |\n> |---|---|\n> | 1 | 2 |\n",
			wantContains: []string{"<blockquote>", "<table>"},
			wantExcludes: []string{"table-wrapper"},
		},
		{
			name:         "highlight syntax",
			markdown:     "some ==marked== text",
			wantContains: []string{"<mark>marked</mark>"},
		},
		{
			name:         "strict equality in inline code",
			markdown:     "use `a === b && c === d` here",
			wantContains: []string{"<code>a === b &amp;&amp; c === d</code>"},
			wantExcludes: []string{"<mark>"},
		},
		{
			name:         "strict equality in prose",
			markdown:     "a === b and c === d",
			wantContains: []string{"a === b and c === d"},
			wantExcludes: []string{"<mark>"},
		},
		{
			name:         "inline highlight styles",
			markdown:     "```go\nfunc main() {}\n```",
			wantContains: []string{"<pre", `style="`},
		},
		{
			name:         "class based highlighting",
			opts:         Options{HighlightClasses: true},
			markdown:     "```go\nfunc main() {}\n```",
			wantContains: []string{`class="chroma"`},
		},
		{
			name:         "raw HTML omitted by default",
			markdown:     "<aside>note</aside>",
			wantExcludes: []string{"<aside>"},
		},
		{
			name:         "raw HTML kept when unsafe",
			opts:         Options{UnsafeHTML: true},
			markdown:     "<aside>note</aside>",
			wantContains: []string{"<aside>note</aside>"},
		},
		{
			name:         "footnote",
			markdown:     "text[^1]\n\n[^1]: note",
			wantContains: []string{"footnote"},
		},
		{
			name:         "strikethrough",
			markdown:     "~~gone~~",
			wantContains: []string{"<del>gone</del>"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := newTestConverter(t, tt.opts).ToHTML(context.Background(), tt.markdown)
			if err != nil {
				t.Fatalf("ToHTML() error: %v", err)
			}
			for _, want := range tt.wantContains {
				if !strings.Contains(got, want) {
					t.Errorf("output should contain %q\ngot: %s", want, got)
				}
			}
			for _, exclude := range tt.wantExcludes {
				if strings.Contains(got, exclude) {
					t.Errorf("output should not contain %q\ngot: %s", exclude, got)
				}
			}
		})
	}
}

func TestGoldmarkConverter_ToHTML_Cancelled(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := newTestConverter(t, Options{}).ToHTML(ctx, "# Hi")
	if !errors.Is(err, context.Canceled) {
		t.Errorf("ToHTML() error = %v, want context.Canceled", err)
	}
}

func TestNewGoldmarkConverter_UnknownStyle(t *testing.T) {
	t.Parallel()

	_, err := NewGoldmarkConverter(Options{HighlightStyle: "no-such-style"})
	if !errors.Is(err, ErrUnknownStyle) {
		t.Errorf("NewGoldmarkConverter() error = %v, want ErrUnknownStyle", err)
	}
}

// ---------------------------------------------------------------------------
// TestHighlightCSS
// ---------------------------------------------------------------------------

func TestHighlightCSS(t *testing.T) {
	t.Parallel()

	css, err := HighlightCSS("")
	if err != nil {
		t.Fatalf("HighlightCSS() error: %v", err)
	}
	if !strings.Contains(css, ".chroma") {
		t.Errorf("stylesheet should target .chroma classes, got %q", css)
	}

	if _, err := HighlightCSS("no-such-style"); !errors.Is(err, ErrUnknownStyle) {
		t.Errorf("HighlightCSS(unknown) error = %v, want ErrUnknownStyle", err)
	}
}

func TestGoldmarkConverter_ToHTML_FencedCodeUnchanged(t *testing.T) {
	t.Parallel()

	tagPattern := regexp.MustCompile(`<[^>]*>`)
	code := "if (a === b && c === d) { x = y == z }"

	for _, opts := range []Options{{}, {HighlightClasses: true}} {
		got, err := newTestConverter(t, opts).ToHTML(context.Background(), "```js\n"+code+"\n```")
		if err != nil {
			t.Fatalf("ToHTML() error: %v", err)
		}
		if strings.Contains(got, "<mark>") {
			t.Errorf("fenced code should not be highlighted\ngot: %s", got)
		}
		text := html.UnescapeString(tagPattern.ReplaceAllString(got, ""))
		if !strings.Contains(text, code) {
			t.Errorf("fenced code text = %q, want it to contain %q", text, code)
		}
	}
}

// ---------------------------------------------------------------------------
// TestPreprocess
// ---------------------------------------------------------------------------

func TestPreprocess(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "CRLF", input: "a\r\nb", want: "a\nb"},
		{name: "lone CR", input: "a\rb", want: "a\nb"},
		{name: "blank lines compressed", input: "a\n\n\n\nb", want: "a\n\nb"},
		{name: "highlight left for the parser", input: "==x==", want: "==x=="},
		{name: "unchanged", input: "plain", want: "plain"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := Preprocess(tt.input); got != tt.want {
				t.Errorf("Preprocess(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}
