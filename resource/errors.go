package resource

import "errors"

// Sentinel errors for store operations
var (
	// ErrNilBuffer indicates a nil buffer was passed to Add
	ErrNilBuffer = errors.New("buffer cannot be nil")

	// ErrNilFunc indicates a nil callback was passed to Read or Update
	ErrNilFunc = errors.New("callback function cannot be nil")

	// ErrAlreadyRegistered indicates a buffer for the type is already in the store
	ErrAlreadyRegistered = errors.New("resource type already registered")

	// ErrNotRegistered indicates no buffer for the type is in the store
	ErrNotRegistered = errors.New("resource type not registered")
)
