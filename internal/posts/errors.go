package posts

import "errors"

// Sentinel errors for post loading.
var (
	// ErrDocumentResolution wraps any failure to read or normalize one document.
	// A single failing document fails the whole load.
	ErrDocumentResolution = errors.New("failed to resolve post")

	// ErrPathDerivation indicates a document path with no usable file name.
	ErrPathDerivation = errors.New("cannot derive post id from path")

	// ErrMissingField indicates a required front matter field is absent or empty.
	ErrMissingField = errors.New("missing required front matter field")

	// ErrInvalidDate indicates a front matter date that is not YYYY-MM-DD.
	ErrInvalidDate = errors.New("invalid post date")

	// ErrDuplicateID indicates two documents deriving the same id.
	ErrDuplicateID = errors.New("duplicate post id")

	// ErrPostNotFound indicates no post has the requested id.
	ErrPostNotFound = errors.New("post not found")
)
