package postprocess

import (
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// TableWrapperClass is the class attribute of the div inserted around root-level tables.
const TableWrapperClass = "table-wrapper"

// WrapTables returns a copy of root in which every direct child that is a
// <table> element is replaced by <div class="table-wrapper"> holding that table.
// Only the root's own children are examined.
func WrapTables(root *html.Node) *html.Node {
	if root == nil {
		return nil
	}

	out := shallowClone(root)
	for c := root.FirstChild; c != nil; c = c.NextSibling {
		child := cloneTree(c)
		if isTable(c) {
			child = newTableWrapper(child)
		}
		out.AppendChild(child)
	}
	return out
}

// Walk visits n and its descendants depth-first, parents before children.
func Walk(n *html.Node, visit func(*html.Node)) {
	if n == nil {
		return
	}
	visit(n)
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		Walk(c, visit)
	}
}

func isTable(n *html.Node) bool {
	return n.Type == html.ElementNode && (n.DataAtom == atom.Table || strings.EqualFold(n.Data, "table"))
}

func newTableWrapper(table *html.Node) *html.Node {
	wrapper := &html.Node{
		Type:     html.ElementNode,
		DataAtom: atom.Div,
		Data:     "div",
		Attr:     []html.Attribute{{Key: "class", Val: TableWrapperClass}},
	}
	wrapper.AppendChild(table)
	return wrapper
}

// cloneTree builds a detached deep copy of n, children first appended in order.
func cloneTree(n *html.Node) *html.Node {
	out := shallowClone(n)
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		out.AppendChild(cloneTree(c))
	}
	return out
}

// shallowClone copies n without its links to parent, siblings or children.
func shallowClone(n *html.Node) *html.Node {
	out := &html.Node{
		Type:      n.Type,
		DataAtom:  n.DataAtom,
		Data:      n.Data,
		Namespace: n.Namespace,
	}
	if len(n.Attr) > 0 {
		out.Attr = make([]html.Attribute, len(n.Attr))
		copy(out.Attr, n.Attr)
	}
	return out
}
