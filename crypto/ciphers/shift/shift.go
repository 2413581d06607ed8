package shift

import (
	"errors"
	"io"

	"github.com/mxmauro/classical/models"
)

// -----------------------------------------------------------------------------

const (
	alphabetLen = 26
)

// -----------------------------------------------------------------------------

// Cipher rotates every letter of the text by a fixed amount within its own case range.
type Cipher struct {
	key uint8
}

// -----------------------------------------------------------------------------

// New creates a shift cipher. Any key is accepted, it is reduced modulo 26 when used.
func New(key uint8) *Cipher {
	return &Cipher{
		key: key,
	}
}

// GenerateKey generates a one-byte shift key in the range 1..25. The size hint is ignored.
func GenerateKey(r io.Reader, _ int) ([]byte, error) {
	var buf [1]byte

	// Reject values that would map to the identity or skew the distribution.
	for {
		n, err := r.Read(buf[:])
		if err != nil {
			return nil, err
		}
		if n != 1 {
			return nil, errors.New("unable to generate shift key")
		}
		if buf[0] < 234 && buf[0]%alphabetLen != 0 {
			break
		}
	}

	// Done
	return []byte{buf[0] % alphabetLen}, nil
}

// NewFromKey creates a shift cipher object from the given encoded key.
func NewFromKey(key []byte) (models.Cipher, error) {
	if len(key) != 1 {
		return nil, errors.New("key must be 1 byte long")
	}
	return New(key[0]), nil
}

// Key returns the shift amount as it was provided.
func (c *Cipher) Key() uint8 {
	return c.key
}

// Encrypt rotates each letter forward by the key.
func (c *Cipher) Encrypt(plaintext []byte) []byte {
	out := make([]byte, len(plaintext))
	copy(out, plaintext)
	rotateUp(out, c.key%alphabetLen)
	return out
}

// Decrypt rotates each letter backward by the key.
func (c *Cipher) Decrypt(ciphertext []byte) []byte {
	out := make([]byte, len(ciphertext))
	copy(out, ciphertext)
	rotateDown(out, c.key%alphabetLen)
	return out
}

// -----------------------------------------------------------------------------

// The key passed to the following functions must already be reduced modulo 26.

func rotateUp(buf []byte, key uint8) {
	for idx, ch := range buf {
		if base, ok := letterBase(ch); ok {
			buf[idx] = base + (ch-base+key)%alphabetLen
		}
	}
}

func rotateDown(buf []byte, key uint8) {
	for idx, ch := range buf {
		if base, ok := letterBase(ch); ok {
			buf[idx] = base + (ch-base+alphabetLen-key)%alphabetLen
		}
	}
}

func letterBase(ch byte) (byte, bool) {
	switch {
	case ch >= 'A' && ch <= 'Z':
		return 'A', true
	case ch >= 'a' && ch <= 'z':
		return 'a', true
	}
	return 0, false
}
