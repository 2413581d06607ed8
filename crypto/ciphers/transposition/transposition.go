package transposition

import (
	"fmt"

	"github.com/mxmauro/classical/models"
)

// -----------------------------------------------------------------------------

// Cipher reorders the bytes inside fixed-size blocks according to a permutation key.
//
// Blocks are processed while the block start plus the block size is strictly lower
// than the buffer length. Because of this, the last aligned block of the input is
// never permuted, in addition to any trailing bytes that do not fill a block.
type Cipher struct {
	key []int
}

// -----------------------------------------------------------------------------

// New creates a transposition cipher. The key must be a permutation of 0..len(key)-1.
func New(key []int) (*Cipher, error) {
	err := ValidateKey(key)
	if err != nil {
		return nil, err
	}

	c := &Cipher{
		key: make([]int, len(key)),
	}
	copy(c.key, key)

	// Done
	return c, nil
}

// NewFromKey creates a transposition cipher object from the given encoded key.
func NewFromKey(key []byte) (models.Cipher, error) {
	perm, err := DecodeKey(key)
	if err != nil {
		return nil, err
	}
	return New(perm)
}

// ValidateKey checks that the key is a non-empty permutation of 0..len(key)-1.
func ValidateKey(key []int) error {
	keyLen := len(key)
	if keyLen == 0 {
		return fmt.Errorf("%w: empty key", ErrMalformedKey)
	}
	if keyLen > MaxKeySize {
		return fmt.Errorf("%w: key longer than %d", ErrMalformedKey, MaxKeySize)
	}

	seen := make([]bool, keyLen)
	for idx, pos := range key {
		if pos < 0 || pos >= keyLen {
			return fmt.Errorf("%w: position %d at index %d out of range", ErrMalformedKey, pos, idx)
		}
		if seen[pos] {
			return fmt.Errorf("%w: position %d repeated", ErrMalformedKey, pos)
		}
		seen[pos] = true
	}

	// Done
	return nil
}

// Key returns the block size truncated to 8 bits.
func (c *Cipher) Key() uint8 {
	return uint8(len(c.key))
}

// BlockSize returns the number of bytes in each permuted block.
func (c *Cipher) BlockSize() int {
	return len(c.key)
}

// Permutation returns a copy of the key.
func (c *Cipher) Permutation() []int {
	perm := make([]int, len(c.key))
	copy(perm, c.key)
	return perm
}

// Encrypt permutes every processed block so output position i holds input position key[i].
func (c *Cipher) Encrypt(plaintext []byte) []byte {
	out := make([]byte, len(plaintext))
	copy(out, plaintext)

	s := newScratch(len(c.key))
	c.forEachBlock(out, func(block []byte) {
		s.encryptBlock(block, c.key)
	})
	return out
}

// Decrypt reverts the permutation applied by Encrypt.
func (c *Cipher) Decrypt(ciphertext []byte) []byte {
	out := make([]byte, len(ciphertext))
	copy(out, ciphertext)

	s := newScratch(len(c.key))
	c.forEachBlock(out, func(block []byte) {
		s.decryptBlock(block, c.key)
	})
	return out
}

func (c *Cipher) forEachBlock(buf []byte, cb func(block []byte)) {
	blockSize := len(c.key)
	for ofs := 0; ofs+blockSize < len(buf); ofs += blockSize {
		cb(buf[ofs : ofs+blockSize])
	}
}

// -----------------------------------------------------------------------------

// scratch caches values displaced while a block is permuted in place.
type scratch struct {
	value   []byte
	present []bool
}

func newScratch(size int) *scratch {
	return &scratch{
		value:   make([]byte, size),
		present: make([]bool, size),
	}
}

func (s *scratch) reset() {
	clear(s.present)
}

func (s *scratch) put(idx int, v byte) {
	s.value[idx] = v
	s.present[idx] = true
}

func (s *scratch) take(idx int) (byte, bool) {
	if !s.present[idx] {
		return 0, false
	}
	s.present[idx] = false
	return s.value[idx], true
}

func (s *scratch) encryptBlock(block []byte, acc []int) {
	s.reset()
	for i := range block {
		s.put(i, block[i])
		if v, ok := s.take(acc[i]); ok {
			block[i] = v
		} else {
			block[i] = block[acc[i]]
		}
	}
}

func (s *scratch) decryptBlock(block []byte, acc []int) {
	s.reset()
	for i := range block {
		s.put(acc[acc[i]], block[acc[i]])
		if v, ok := s.take(acc[i]); ok {
			block[acc[i]] = v
		} else {
			block[acc[i]] = block[i]
		}
	}
}
