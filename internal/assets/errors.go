package assets

import "errors"

// Sentinel errors for asset operations.
var (
	// ErrStyleNotFound indicates the requested style does not exist.
	ErrStyleNotFound = errors.New("style not found")

	// ErrTemplateNotFound indicates the requested template does not exist.
	ErrTemplateNotFound = errors.New("template not found")

	// ErrTemplateParse indicates a page template failed to parse.
	ErrTemplateParse = errors.New("failed to parse template")

	// ErrUnknownPage indicates a page name outside PageNames.
	ErrUnknownPage = errors.New("unknown page")

	// ErrInvalidAssetName indicates the asset name contains invalid characters
	// such as path separators or traversal sequences.
	ErrInvalidAssetName = errors.New("invalid asset name")

	// ErrInvalidBasePath indicates the configured base path is not a valid directory.
	ErrInvalidBasePath = errors.New("invalid base path")

	// ErrAssetRead indicates an asset exists but could not be read, including
	// reads refused for leaving a theme directory.
	ErrAssetRead = errors.New("failed to read asset")
)
