package assets

import (
	"fmt"
	"html/template"
	"io"
)

// Page template names. Each page is parsed on top of LayoutTemplate and
// fills its "content" block.
const (
	LayoutTemplate = "layout"
	IndexPage      = "index"
	BlogPage       = "blog"
	PostPage       = "post"
	NotFoundPage   = "notfound"
)

// DefaultStyleName is the name of the built-in stylesheet.
const DefaultStyleName = "site"

// PageNames lists every page a PageSet must provide.
var PageNames = []string{IndexPage, BlogPage, PostPage, NotFoundPage}

// PageSet holds one parsed template per page, each sharing the layout.
type PageSet struct {
	pages map[string]*template.Template
}

// LoadPageSet parses the layout and every page in PageNames from loader.
// funcs is available to all templates and must be set before parsing.
func LoadPageSet(loader AssetLoader, funcs template.FuncMap) (*PageSet, error) {
	layoutSrc, err := loader.LoadTemplate(LayoutTemplate)
	if err != nil {
		return nil, err
	}

	layout, err := template.New(LayoutTemplate).Funcs(funcs).Parse(layoutSrc)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrTemplateParse, LayoutTemplate, err)
	}

	set := &PageSet{pages: make(map[string]*template.Template, len(PageNames))}
	for _, name := range PageNames {
		src, err := loader.LoadTemplate(name)
		if err != nil {
			return nil, err
		}
		page, err := layout.Clone()
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %v", ErrTemplateParse, name, err)
		}
		if _, err := page.Parse(src); err != nil {
			return nil, fmt.Errorf("%w: %s: %v", ErrTemplateParse, name, err)
		}
		set.pages[name] = page
	}

	return set, nil
}

// Execute renders page with data into w.
func (s *PageSet) Execute(w io.Writer, page string, data any) error {
	t, ok := s.pages[page]
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownPage, page)
	}
	return t.ExecuteTemplate(w, LayoutTemplate, data)
}
