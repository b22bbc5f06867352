package postprocess

import (
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// Parse parses a full HTML document or a body fragment.
// Fragments are parsed in a <body> context and collected under a bare document
// node, so the fragment's top-level elements are the root's direct children.
func Parse(content string) (*html.Node, error) {
	lower := strings.ToLower(strings.TrimSpace(content))
	if strings.HasPrefix(lower, "<!doctype") || strings.HasPrefix(lower, "<html") {
		return html.Parse(strings.NewReader(content))
	}

	body := &html.Node{
		Type:     html.ElementNode,
		DataAtom: atom.Body,
		Data:     "body",
	}
	nodes, err := html.ParseFragment(strings.NewReader(content), body)
	if err != nil {
		return nil, err
	}

	root := &html.Node{Type: html.DocumentNode}
	for _, n := range nodes {
		root.AppendChild(n)
	}
	return root, nil
}

// Render serializes a tree produced by Parse or WrapTables.
// A document node without <html> or a doctype is a parsed fragment and only its
// children are rendered, so fragments do not gain <html><body> wrappers.
func Render(root *html.Node) (string, error) {
	var b strings.Builder

	if root.Type == html.DocumentNode && !isFullDocument(root) {
		for c := root.FirstChild; c != nil; c = c.NextSibling {
			if err := html.Render(&b, c); err != nil {
				return "", err
			}
		}
		return b.String(), nil
	}

	if err := html.Render(&b, root); err != nil {
		return "", err
	}
	return b.String(), nil
}

func isFullDocument(root *html.Node) bool {
	for c := root.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.DoctypeNode || (c.Type == html.ElementNode && c.DataAtom == atom.Html) {
			return true
		}
	}
	return false
}

// Process wraps root-level tables, serializes the tree and applies rules to the text.
func Process(root *html.Node, rules Rules) (string, error) {
	out, err := Render(WrapTables(root))
	if err != nil {
		return "", err
	}
	return rules.Apply(out), nil
}
