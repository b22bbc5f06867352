package postprocess_test

// Notes:
// - Runs real converter output through the middleware. chroma writes
//   lowercase "color:#xxxxxx" styles, so the palette rules (uppercase source
//   literals with "color: ") leave highlighted code alone. Only colors written
//   by hand in post HTML are remapped.

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/pilcrowonpaper/website/internal/pipeline"
	"github.com/pilcrowonpaper/website/internal/postprocess"
)

func serveThroughMiddleware(t *testing.T, body string) string {
	t.Helper()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	h := postprocess.Middleware(postprocess.DefaultRules(), logger)(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		_, _ = io.WriteString(w, body)
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	return rec.Body.String()
}

func TestMiddleware_ConverterOutput(t *testing.T) {
	t.Parallel()

	conv, err := pipeline.NewGoldmarkConverter(pipeline.Options{UnsafeHTML: true})
	if err != nil {
		t.Fatal(err)
	}

	t.Run("highlighted code passes through", func(t *testing.T) {
		t.Parallel()

		out, err := conv.ToHTML(context.Background(), "```js\nconst x = foo.bar(\"s\"); // c\n```")
		if err != nil {
			t.Fatal(err)
		}
		if !strings.Contains(out, `style="color:#`) {
			t.Fatalf("expected inline chroma colors\ngot: %s", out)
		}
		if got := serveThroughMiddleware(t, out); got != out {
			t.Errorf("highlighted code was rewritten\nbefore: %s\nafter:  %s", out, got)
		}
	})

	t.Run("hand written source colors remapped", func(t *testing.T) {
		t.Parallel()

		out, err := conv.ToHTML(context.Background(), `<p><span style="color: #569CD6">const</span> <span style="color: #6F42C1">.</span></p>`)
		if err != nil {
			t.Fatal(err)
		}
		got := serveThroughMiddleware(t, out)
		for _, want := range []string{
			`<span style="color: ` + postprocess.ColorKeyword + `">const</span>`,
			`<span style="color: ` + postprocess.ColorPunctuation + `">.</span>`,
		} {
			if !strings.Contains(got, want) {
				t.Errorf("output should contain %q\ngot: %s", want, got)
			}
		}
		if strings.Contains(got, "#569CD6") || strings.Contains(got, "#6F42C1") {
			t.Errorf("source colors left in output\ngot: %s", got)
		}
	})
}
