package transposition

import (
	"crypto/rand"
	"io"
	"math/big"

	"github.com/mxmauro/classical/util"
)

// -----------------------------------------------------------------------------

const (
	// MaxKeySize is the largest block size accepted. Rejection sampling slows down
	// quickly as the size grows, and encoded keys store positions as 16-bit values.
	MaxKeySize = 4096
)

// -----------------------------------------------------------------------------

// GeneratePermutation returns a random permutation of 0..size-1 using values read from r.
//
// Positions are drawn uniformly and duplicates are discarded until all of them were seen.
func GeneratePermutation(r io.Reader, size int) ([]int, error) {
	if size <= 0 || size > MaxKeySize {
		return nil, ErrInvalidKeySize
	}

	upper := big.NewInt(int64(size))
	perm := make([]int, 0, size)
	seen := make([]bool, size)
	for len(perm) != size {
		n, err := rand.Int(r, upper)
		if err != nil {
			return nil, util.NewExtendedError(err, "unable to generate transposition key")
		}
		x := int(n.Int64())
		if !seen[x] {
			seen[x] = true
			perm = append(perm, x)
		}
	}

	// Done
	return perm, nil
}

// GenerateKey generates a random permutation of the given size and returns it encoded.
func GenerateKey(r io.Reader, size int) ([]byte, error) {
	perm, err := GeneratePermutation(r, size)
	if err != nil {
		return nil, err
	}
	return EncodeKey(perm)
}
