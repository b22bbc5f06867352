package assets

import (
	"errors"
	"fmt"
	"io/fs"
	"path"
	"strings"
)

// Theme layout inside a loader's filesystem.
const (
	stylesDir    = "styles"
	templatesDir = "templates"
)

// AssetLoader defines the contract for loading stylesheets and page templates.
type AssetLoader interface {
	// LoadStyle loads a CSS style by name (without .css extension).
	// Returns ErrStyleNotFound if the style doesn't exist.
	// Returns ErrInvalidAssetName if the name contains invalid characters.
	LoadStyle(name string) (string, error)

	// LoadTemplate loads an HTML template by name (without .html extension).
	// Returns ErrTemplateNotFound if the template doesn't exist.
	// Returns ErrInvalidAssetName if the name contains invalid characters.
	LoadTemplate(name string) (string, error)
}

// FSLoader reads a theme from any fs.FS laid out as styles/{name}.css and
// templates/{name}.html.
type FSLoader struct {
	fsys   fs.FS
	source string // shown in read errors
}

// NewFSLoader returns a loader over fsys. source names it in error messages.
func NewFSLoader(fsys fs.FS, source string) *FSLoader {
	return &FSLoader{fsys: fsys, source: source}
}

// LoadStyle reads styles/{name}.css.
func (l *FSLoader) LoadStyle(name string) (string, error) {
	return l.load(stylesDir, name, ".css", ErrStyleNotFound)
}

// LoadTemplate reads templates/{name}.html.
func (l *FSLoader) LoadTemplate(name string) (string, error) {
	return l.load(templatesDir, name, ".html", ErrTemplateNotFound)
}

func (l *FSLoader) load(dir, name, ext string, notFound error) (string, error) {
	if err := ValidateAssetName(name); err != nil {
		return "", err
	}

	data, err := fs.ReadFile(l.fsys, path.Join(dir, name+ext))
	if errors.Is(err, fs.ErrNotExist) {
		return "", fmt.Errorf("%w: %q", notFound, name)
	}
	if err != nil {
		return "", fmt.Errorf("%w: %s: %v", ErrAssetRead, l.source, err)
	}
	return string(data), nil
}

// ValidateAssetName checks that name is a bare file stem: non-empty, with no
// path separators and no dots.
func ValidateAssetName(name string) error {
	if name == "" {
		return fmt.Errorf("%w: empty name", ErrInvalidAssetName)
	}
	if strings.ContainsAny(name, "/\\.") {
		return fmt.Errorf("%w: %q", ErrInvalidAssetName, name)
	}
	return nil
}

// Compile-time interface check.
var _ AssetLoader = (*FSLoader)(nil)
