package postprocess

import (
	"bytes"
	"fmt"
	"log/slog"
	"mime"
	"net/http"
	"unicode/utf8"
)

// Middleware buffers each response of next and, for text/html bodies, applies
// rules to the body text before writing it out. Status and headers are passed
// through unchanged except Content-Length, which no longer matches.
// Other content types are written back byte for byte.
func Middleware(rules Rules, logger *slog.Logger) func(http.Handler) http.Handler {
	if logger == nil {
		logger = slog.Default()
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			buf := newBufferedResponse()
			next.ServeHTTP(buf, r)

			if buf.header.Get("Content-Type") == "" && buf.body.Len() > 0 {
				buf.header.Set("Content-Type", http.DetectContentType(buf.body.Bytes()))
			}

			if !isHTML(buf.header.Get("Content-Type")) {
				buf.flushTo(w, buf.body.Bytes())
				return
			}

			text, err := bodyText(buf.body.Bytes())
			if err != nil {
				logger.Error("post-process response",
					"method", r.Method,
					"path", r.URL.Path,
					"error", err,
				)
				http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
				return
			}

			buf.header.Del("Content-Length")
			buf.flushTo(w, []byte(rules.Apply(text)))
		})
	}
}

// bodyText returns body as a string, failing with ErrBodyRead when it is not UTF-8.
func bodyText(body []byte) (string, error) {
	if !utf8.Valid(body) {
		return "", fmt.Errorf("%w: invalid UTF-8", ErrBodyRead)
	}
	return string(body), nil
}

func isHTML(contentType string) bool {
	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return false
	}
	return mediaType == "text/html"
}

// bufferedResponse collects a handler's response in memory.
type bufferedResponse struct {
	header http.Header
	status int
	body   bytes.Buffer
}

func newBufferedResponse() *bufferedResponse {
	return &bufferedResponse{header: make(http.Header)}
}

func (b *bufferedResponse) Header() http.Header { return b.header }

func (b *bufferedResponse) WriteHeader(status int) {
	if b.status == 0 {
		b.status = status
	}
}

func (b *bufferedResponse) Write(p []byte) (int, error) {
	if b.status == 0 {
		b.status = http.StatusOK
	}
	return b.body.Write(p)
}

// flushTo copies the buffered headers and status to w followed by body.
func (b *bufferedResponse) flushTo(w http.ResponseWriter, body []byte) {
	dst := w.Header()
	for k, v := range b.header {
		dst[k] = v
	}
	status := b.status
	if status == 0 {
		status = http.StatusOK
	}
	w.WriteHeader(status)
	_, _ = w.Write(body)
}
