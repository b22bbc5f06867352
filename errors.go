package website

import "errors"

// Sentinel errors for site operations.
var (
	ErrInvalidConfig  = errors.New("invalid site configuration")
	ErrExportDisabled = errors.New("PDF export is disabled")
	ErrPDFGeneration  = errors.New("PDF generation failed")
	ErrBrowserConnect = errors.New("failed to connect to browser")
	ErrPageCreate     = errors.New("failed to create browser page")
	ErrPageLoad       = errors.New("failed to load page")
	ErrFeed           = errors.New("failed to build feed")
	ErrBuildID        = errors.New("invalid build id")
)
