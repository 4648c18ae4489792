package engine

import "errors"

// Errors returned by engine construction and operations.
var (
	// ErrNilSurface indicates the engine was constructed without a
	// surface. Construction aborts; no partial state is left behind.
	ErrNilSurface = errors.New("surface is nil")

	// ErrHighlightDisabled indicates a highlight was requested while
	// the highlight option is off.
	ErrHighlightDisabled = errors.New("highlighting is disabled")
)
