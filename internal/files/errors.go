package files

import "errors"

var (
	// ErrNotFound indicates the file does not exist for this owner.
	ErrNotFound = errors.New("file not found")

	// ErrStorage indicates the backing content could not be read or removed.
	ErrStorage = errors.New("storage failure")

	// ErrInvalidInput indicates validation or bad input.
	ErrInvalidInput = errors.New("invalid input")
)
