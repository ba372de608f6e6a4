package mdexport

import "errors"

// Sentinel errors for library operations.
var (
	ErrUnknownFormat = errors.New("unknown export format")
	ErrRender        = errors.New("document rendering failed")

	// Page settings validation errors.
	ErrInvalidPageSize    = errors.New("invalid page size")
	ErrInvalidOrientation = errors.New("invalid orientation")
	ErrInvalidMargin      = errors.New("invalid margin")
)
