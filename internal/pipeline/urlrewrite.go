package pipeline

import (
	"net/url"
	"strings"

	"golang.org/x/net/html"

	"github.com/pilcrowonpaper/website/internal/postprocess"
)

// urlAttrs lists the attributes resolved per element.
var urlAttrs = map[string]string{
	"a":      "href",
	"img":    "src",
	"link":   "href",
	"script": "src",
	"source": "src",
}

// AbsoluteURLs resolves relative and root-relative URLs in htmlContent against
// base. Feed readers and the PDF renderer load pages outside the site, so
// "/static/style.css" or "images/a.png" would not resolve for them.
//
// Left untouched:
//   - absolute URLs (any scheme) and protocol-relative URLs
//   - fragment-only links ("#section")
//   - data: URIs
func AbsoluteURLs(htmlContent string, base *url.URL) (string, error) {
	if base == nil {
		return htmlContent, nil
	}

	root, err := postprocess.Parse(htmlContent)
	if err != nil {
		return "", err
	}

	postprocess.Walk(root, func(n *html.Node) {
		if n.Type != html.ElementNode {
			return
		}
		attr, ok := urlAttrs[n.Data]
		if !ok {
			return
		}
		for i := range n.Attr {
			if n.Attr[i].Key != attr || !isRelativeURL(n.Attr[i].Val) {
				continue
			}
			ref, err := url.Parse(n.Attr[i].Val)
			if err != nil {
				continue
			}
			n.Attr[i].Val = base.ResolveReference(ref).String()
		}
	})

	return postprocess.Render(root)
}

// isRelativeURL reports whether value needs resolving against a base URL.
func isRelativeURL(value string) bool {
	v := strings.TrimSpace(value)
	if v == "" || strings.HasPrefix(v, "#") || strings.HasPrefix(v, "//") {
		return false
	}
	u, err := url.Parse(v)
	if err != nil {
		return false
	}
	return u.Scheme == ""
}
