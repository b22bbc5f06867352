package website

import (
	"net/http"
	"strings"
)

// Origin returns the scheme and host the request was made to, for building
// canonical and absolute links. Outside dev mode an http origin is upgraded
// to https, since production sits behind a TLS-terminating proxy.
func Origin(r *http.Request, dev bool) string {
	scheme := "http"
	if r.TLS != nil {
		scheme = "https"
	}
	origin := scheme + "://" + r.Host
	if dev {
		return origin
	}
	return strings.Replace(origin, "http://", "https://", 1)
}
