package classical

import (
	"errors"

	"github.com/mxmauro/classical/crypto/ciphers"
	"github.com/mxmauro/classical/crypto/ciphers/transposition"
)

// -----------------------------------------------------------------------------

var (
	// ErrInvalidKeySize is returned when a transposition key of the requested size cannot be generated.
	ErrInvalidKeySize = transposition.ErrInvalidKeySize

	// ErrMalformedKey is returned when a transposition key is not a permutation of 0..n-1.
	ErrMalformedKey = transposition.ErrMalformedKey

	ErrEngineNotSupported = ciphers.ErrEngineNotSupported

	// ErrCodebookDataHasChanged is returned when the stored codebook was modified by another instance
	// since it was loaded. Create a new Codebook object to reload it.
	ErrCodebookDataHasChanged = errors.New("codebook data has changed")

	// ErrActiveKey is returned by `RemoveKey` when trying to remove the key used for encryption.
	ErrActiveKey = errors.New("cannot remove the active key")

	ErrNoKeysAvailable   = errors.New("no keys available")
	ErrKeyNotFound       = errors.New("key not found")
	ErrInvalidStoredData = errors.New("invalid stored data")
	ErrInvalidCiphertext = errors.New("invalid ciphertext")
	ErrNotFound          = errors.New("not found")
)
