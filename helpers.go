package classical

import (
	"context"
	"encoding/binary"
	"io"
)

// -----------------------------------------------------------------------------

func generateRandomUint64(rg io.Reader) (uint64, error) {
	var buf [8]byte

	_, err := io.ReadFull(rg, buf[:])
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint64(buf[:]), nil
}

func getNonNullValue(ctx context.Context, tx StorageTx, key string) ([]byte, error) {
	value, err := tx.Get(ctx, key)
	if err != nil {
		return nil, err
	}
	if len(value) == 0 {
		return nil, ErrInvalidStoredData
	}
	return value, nil
}
