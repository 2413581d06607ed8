package classical_test

import (
	"bytes"
	"context"
	"testing"
	"time"

	bstd "github.com/deneonet/benc/std"
	"github.com/mxmauro/classical"
)

// -----------------------------------------------------------------------------

var (
	plaintextSample = []byte("Hello world, how are you?")
)

// -----------------------------------------------------------------------------

func createCodebook(t *testing.T, stg *TestStorage) *classical.Codebook {
	cb, err := classical.New(context.Background(), classical.Options{
		BeginStorageTX: stg.BeginTX,
	})
	if err != nil {
		t.Fatal(err)
	}

	// Done
	return cb
}

func encryptPlaintext(t *testing.T, cb *classical.Codebook) []byte {
	encryptedText, err := cb.Encrypt(plaintextSample)
	if err != nil {
		t.Fatal(err)
	}
	return encryptedText
}

func decryptPlaintext(t *testing.T, cb *classical.Codebook, encryptedText []byte) {
	decryptedText, err := cb.Decrypt(encryptedText)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(plaintextSample, decryptedText) {
		t.Fatal("original and decrypted text mismatch")
	}
}

// encodeTestKey builds a serialized codebook key the same way ExportKey does with a single share.
func encodeTestKey(id uint32, engine string, key []byte) []byte {
	bufSize := bstd.SizeUint16() + bstd.SizeUint32() + bstd.SizeString(engine) + bstd.SizeBytes(key) + bstd.SizeUint64()
	buf := make([]byte, bufSize)

	ofs := bstd.MarshalUint16(0, buf, 1)
	ofs = bstd.MarshalUint32(ofs, buf, id)
	ofs = bstd.MarshalString(ofs, buf, engine)
	ofs = bstd.MarshalBytes(ofs, buf, key)
	_ = bstd.MarshalInt64(ofs, buf, time.Now().Unix())
	return buf
}
