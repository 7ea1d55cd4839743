package generation

import "errors"

var (
	// ErrInvalidRequest indicates the request failed validation. Nothing is
	// generated or persisted.
	ErrInvalidRequest = errors.New("invalid generation request")

	// ErrGeneratorUnavailable indicates the collaborator failed or timed out.
	ErrGeneratorUnavailable = errors.New("generator unavailable")
)
