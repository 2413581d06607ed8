package transposition

import (
	"errors"
)

// -----------------------------------------------------------------------------

var (
	// ErrInvalidKeySize is returned when a permutation of the requested size cannot be generated.
	ErrInvalidKeySize = errors.New("invalid key size")

	// ErrMalformedKey is returned when a transposition key is not a permutation of 0..n-1.
	ErrMalformedKey = errors.New("malformed transposition key")
)
