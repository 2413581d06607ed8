package classical

import (
	"context"
	"errors"

	bstd "github.com/deneonet/benc/std"
)

// -----------------------------------------------------------------------------

const (
	codebookParametersVersion = 1
)

// -----------------------------------------------------------------------------

type codebookParameters struct {
	uniqueID    uint64
	revision    uint32 // This field is incremented on every change.
	activeKeyID uint32
	keyCount    uint32
}

// -----------------------------------------------------------------------------

func deserializeCodebookParameters(buf []byte) (codebookParameters, error) {
	bufSize := len(buf)
	if bufSize <= bstd.SizeUint16() {
		return codebookParameters{}, ErrInvalidStoredData
	}

	// Initialize parameters.
	cp := codebookParameters{}

	// Deserialize data.
	ofs, version, err := bstd.UnmarshalUint16(0, buf)
	if err != nil {
		return codebookParameters{}, ErrInvalidStoredData
	}
	switch version {
	case 1:
		ofs, cp.uniqueID, err = bstd.UnmarshalUint64(ofs, buf)
		if err != nil {
			return codebookParameters{}, ErrInvalidStoredData
		}
		ofs, cp.revision, err = bstd.UnmarshalUint32(ofs, buf)
		if err != nil {
			return codebookParameters{}, ErrInvalidStoredData
		}
		ofs, cp.activeKeyID, err = bstd.UnmarshalUint32(ofs, buf)
		if err != nil {
			return codebookParameters{}, ErrInvalidStoredData
		}
		ofs, cp.keyCount, err = bstd.UnmarshalUint32(ofs, buf)
		if err != nil {
			return codebookParameters{}, ErrInvalidStoredData
		}

	default:
		return codebookParameters{}, errors.New("unsupported codebook parameters version")
	}

	// Check if we reached the end of the buffer.
	if ofs != len(buf) {
		return codebookParameters{}, ErrInvalidStoredData
	}

	// Done
	return cp, nil
}

func deserializeCodebookParametersFromStorage(ctx context.Context, tx StorageTx, key string) (codebookParameters, error) {
	// Get encoded parameters from storage.
	encodedParams, err := tx.Get(ctx, key)
	if err != nil {
		return codebookParameters{}, err
	}
	if encodedParams == nil {
		return codebookParameters{}, ErrNotFound
	}

	// Deserialize it.
	return deserializeCodebookParameters(encodedParams)
}

func (cp *codebookParameters) Serialize() []byte {
	bufSize := bstd.SizeUint16() +
		bstd.SizeUint64() +
		bstd.SizeUint32() +
		bstd.SizeUint32() +
		bstd.SizeUint32()
	buf := make([]byte, bufSize)

	ofs := bstd.MarshalUint16(0, buf, codebookParametersVersion)
	ofs = bstd.MarshalUint64(ofs, buf, cp.uniqueID)
	ofs = bstd.MarshalUint32(ofs, buf, cp.revision)
	ofs = bstd.MarshalUint32(ofs, buf, cp.activeKeyID)
	_ = bstd.MarshalUint32(ofs, buf, cp.keyCount)

	// Done
	return buf
}

func (cp *codebookParameters) SerializeToStorage(ctx context.Context, tx StorageTx, key string) error {
	return tx.Put(ctx, key, cp.Serialize())
}
