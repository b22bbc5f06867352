package assets

import "errors"

// Resolver chains loaders: the first loader that has an asset wins.
// Only "not found" moves on to the next loader; invalid names and read
// errors are returned as-is.
type Resolver struct {
	loaders []AssetLoader
}

// NewResolver returns a Resolver trying loaders in order.
func NewResolver(loaders ...AssetLoader) *Resolver {
	return &Resolver{loaders: loaders}
}

// NewAssetResolver layers the theme directory at basePath over the builtin
// theme, so a theme may override a single page or stylesheet.
// An empty basePath uses the builtin theme alone.
func NewAssetResolver(basePath string) (*Resolver, error) {
	if basePath == "" {
		return NewResolver(Builtin()), nil
	}
	dir, err := OpenDir(basePath)
	if err != nil {
		return nil, err
	}
	return NewResolver(dir, Builtin()), nil
}

// LoadStyle returns the first stylesheet found.
func (r *Resolver) LoadStyle(name string) (string, error) {
	return r.first(func(l AssetLoader) (string, error) { return l.LoadStyle(name) }, ErrStyleNotFound)
}

// LoadTemplate returns the first template found.
func (r *Resolver) LoadTemplate(name string) (string, error) {
	return r.first(func(l AssetLoader) (string, error) { return l.LoadTemplate(name) }, ErrTemplateNotFound)
}

// Layers reports how many loaders are chained.
func (r *Resolver) Layers() int {
	return len(r.loaders)
}

func (r *Resolver) first(load func(AssetLoader) (string, error), notFound error) (string, error) {
	err := notFound
	for _, l := range r.loaders {
		var content string
		content, err = load(l)
		if err == nil {
			return content, nil
		}
		if !isNotFoundError(err) {
			return "", err
		}
	}
	return "", err
}

// isNotFoundError checks if the error indicates the asset was not found.
func isNotFoundError(err error) bool {
	return errors.Is(err, ErrStyleNotFound) ||
		errors.Is(err, ErrTemplateNotFound)
}

// Compile-time interface check.
var _ AssetLoader = (*Resolver)(nil)
