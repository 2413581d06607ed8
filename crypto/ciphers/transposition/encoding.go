package transposition

import (
	"errors"
	"fmt"

	bstd "github.com/deneonet/benc/std"
)

// -----------------------------------------------------------------------------

const (
	encodedKeyVersion = 1
)

// -----------------------------------------------------------------------------

// EncodeKey validates and serializes a permutation key.
func EncodeKey(key []int) ([]byte, error) {
	err := ValidateKey(key)
	if err != nil {
		return nil, err
	}

	bufSize := bstd.SizeUint16() + bstd.SizeUint16() + len(key)*bstd.SizeUint16()
	buf := make([]byte, bufSize)

	ofs := bstd.MarshalUint16(0, buf, encodedKeyVersion)
	ofs = bstd.MarshalUint16(ofs, buf, uint16(len(key)))
	for _, pos := range key {
		ofs = bstd.MarshalUint16(ofs, buf, uint16(pos))
	}

	// Done
	return buf, nil
}

// DecodeKey deserializes and validates a permutation key.
func DecodeKey(buf []byte) ([]int, error) {
	var count uint16
	var pos uint16

	if len(buf) <= bstd.SizeUint16() {
		return nil, fmt.Errorf("%w: encoded key too short", ErrMalformedKey)
	}

	ofs, version, err := bstd.UnmarshalUint16(0, buf)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedKey, err)
	}
	if version != encodedKeyVersion {
		return nil, errors.New("unsupported transposition key version")
	}
	ofs, count, err = bstd.UnmarshalUint16(ofs, buf)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedKey, err)
	}

	key := make([]int, int(count))
	for idx := range key {
		ofs, pos, err = bstd.UnmarshalUint16(ofs, buf)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrMalformedKey, err)
		}
		key[idx] = int(pos)
	}

	// Check if we reached the end of the buffer.
	if ofs != len(buf) {
		return nil, fmt.Errorf("%w: trailing data", ErrMalformedKey)
	}

	err = ValidateKey(key)
	if err != nil {
		return nil, err
	}

	// Done
	return key, nil
}
