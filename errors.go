package doublebuffer

import "errors"

// Sentinel errors for double buffer operations
var (
	// ErrInvalidIndex indicates a selector value other than 0 or 1
	ErrInvalidIndex = errors.New("selector index must be 0 or 1")

	// ErrNilFunc indicates a nil function was passed to Apply or ApplyResult
	ErrNilFunc = errors.New("apply function cannot be nil")
)
