// Package classical implements two traditional text ciphers: the shift (Caesar) cipher and the
// block transposition cipher, along with a generator of random transposition keys and a codebook
// to persist cipher keys.
//
// These ciphers are NOT secure. They are provided for educational purposes.
package classical

import (
	"crypto/rand"
	"fmt"

	"github.com/mxmauro/classical/crypto/ciphers"
	"github.com/mxmauro/classical/crypto/ciphers/shift"
	"github.com/mxmauro/classical/crypto/ciphers/transposition"
	"github.com/mxmauro/classical/models"
)

// -----------------------------------------------------------------------------

// Kind identifies the cipher variant.
type Kind uint8

const (
	KindShift Kind = iota + 1
	KindTransposition
)

// Cipher is an immutable shift or transposition cipher. It is safe for concurrent use.
// The zero value is not usable, create ciphers with NewShiftCipher or NewTranspositionCipher.
type Cipher struct {
	kind   Kind
	engine models.Cipher
}

// -----------------------------------------------------------------------------

// NewShiftCipher creates a shift cipher. The key is reduced modulo 26 on every operation.
func NewShiftCipher(key uint8) *Cipher {
	return &Cipher{
		kind:   KindShift,
		engine: shift.New(key),
	}
}

// NewTranspositionCipher creates a transposition cipher. The key must be a permutation of
// 0..len(key)-1, otherwise ErrMalformedKey is returned.
func NewTranspositionCipher(key []int) (*Cipher, error) {
	engine, err := transposition.New(key)
	if err != nil {
		return nil, err
	}
	return &Cipher{
		kind:   KindTransposition,
		engine: engine,
	}, nil
}

// GenerateTranspositionKey returns a random permutation of 0..size-1 suitable for
// NewTranspositionCipher.
func GenerateTranspositionKey(size int) ([]int, error) {
	return transposition.GeneratePermutation(rand.Reader, size)
}

// String returns the engine name of the cipher kind.
func (k Kind) String() string {
	switch k {
	case KindShift:
		return ciphers.EngineShift
	case KindTransposition:
		return ciphers.EngineTransposition
	}
	return "unknown"
}

// Kind returns the cipher variant.
func (c *Cipher) Kind() Kind {
	return c.kind
}

// Key returns the shift amount or, for transposition ciphers, the block size truncated to 8 bits.
func (c *Cipher) Key() uint8 {
	return c.engine.Key()
}

// String returns the cipher kind and its key, for example "shift(15)" or "transposition[1 3 0 2]".
func (c *Cipher) String() string {
	if t, ok := c.engine.(*transposition.Cipher); ok {
		return fmt.Sprintf("%s%v", c.kind, t.Permutation())
	}
	return fmt.Sprintf("%s(%d)", c.kind, c.engine.Key())
}

// Encrypt encrypts the given text.
func (c *Cipher) Encrypt(text string) string {
	return string(c.engine.Encrypt([]byte(text)))
}

// Decrypt decrypts the given text.
func (c *Cipher) Decrypt(text string) string {
	return string(c.engine.Decrypt([]byte(text)))
}

// EncryptBytes encrypts the given buffer into a new one.
func (c *Cipher) EncryptBytes(plaintext []byte) []byte {
	return c.engine.Encrypt(plaintext)
}

// DecryptBytes decrypts the given buffer into a new one.
func (c *Cipher) DecryptBytes(ciphertext []byte) []byte {
	return c.engine.Decrypt(ciphertext)
}
