package classical

import (
	"context"
	"errors"
	"hash/fnv"
	"io"
	"sort"
	"time"

	bstd "github.com/deneonet/benc/std"
	"github.com/mxmauro/classical/crypto/ciphers"
	"github.com/mxmauro/classical/models"
	"github.com/mxmauro/classical/util"
	"github.com/mxmauro/shamir"
)

// -----------------------------------------------------------------------------

const (
	codebookKeyVersion = 1

	idSize = 4
)

// -----------------------------------------------------------------------------

type codebookKey struct {
	ID           uint32
	Engine       string
	Key          []byte
	CreationTime time.Time

	cipher models.Cipher
}

type codebookKeyMap map[uint32]*codebookKey

// -----------------------------------------------------------------------------

func generateCodebookKey(engine string, keySize int, rg io.Reader) (*codebookKey, error) {
	// Generate a new key.
	key, err := ciphers.GenerateKey(engine, rg, keySize)
	if err != nil {
		return nil, err
	}

	// Get current timestamp
	now := time.Now().UTC()

	// Create ID.
	h := fnv.New32a()
	_, _ = h.Write([]byte(engine))
	_, _ = h.Write(key)
	_, _ = h.Write([]byte(now.String()))
	id := h.Sum32()

	// Create the new codebook key.
	kk := codebookKey{
		ID:           id,
		Engine:       engine,
		Key:          key,
		CreationTime: now.Truncate(time.Second),
	}

	// Create the cipher associated with it.
	kk.cipher, err = ciphers.NewFromKey(engine, key)
	if err != nil {
		kk.Zeroize()
		return nil, err
	}

	// Done
	return &kk, nil
}

func deserializeCodebookKey(buf []byte) (*codebookKey, error) {
	var ct int64

	bufSize := len(buf)
	if bufSize <= bstd.SizeUint16() {
		return nil, ErrInvalidStoredData
	}

	// Initialize key.
	kk := codebookKey{}

	success := false
	defer func() {
		if !success {
			kk.Zeroize()
		}
	}()

	// Deserialize data.
	ofs, version, err := bstd.UnmarshalUint16(0, buf)
	if err != nil {
		return nil, ErrInvalidStoredData
	}
	switch version {
	case 1:
		ofs, kk.ID, err = bstd.UnmarshalUint32(ofs, buf)
		if err != nil {
			return nil, ErrInvalidStoredData
		}
		ofs, kk.Engine, err = bstd.UnmarshalString(ofs, buf)
		if err != nil {
			return nil, ErrInvalidStoredData
		}
		ofs, kk.Key, err = bstd.UnmarshalBytesCopied(ofs, buf)
		if err != nil {
			return nil, ErrInvalidStoredData
		}
		ofs, ct, err = bstd.UnmarshalInt64(ofs, buf)
		if err != nil {
			return nil, ErrInvalidStoredData
		}
		kk.CreationTime = time.Unix(ct, 0).UTC()

	default:
		return nil, errors.New("unsupported codebook key version")
	}

	// Check if we reached the end of the buffer.
	if ofs != len(buf) {
		return nil, ErrInvalidStoredData
	}

	// Zero is reserved to indicate the absence of a key.
	if kk.ID == 0 {
		return nil, ErrInvalidStoredData
	}

	// Check if the engine is supported and the key is valid for it.
	if !ciphers.IsEngineSupported(kk.Engine) {
		return nil, ciphers.ErrEngineNotSupported
	}
	kk.cipher, err = ciphers.NewFromKey(kk.Engine, kk.Key)
	if err != nil {
		return nil, util.NewExtendedError(err, "invalid stored key")
	}

	// Done
	success = true
	return &kk, nil
}

func (kk *codebookKey) Zeroize() {
	kk.ID = 0
	kk.Engine = ""
	util.SafeZeroMem(kk.Key)
	kk.CreationTime = time.Time{}

	kk.cipher = nil
}

func (kk *codebookKey) Serialize() []byte {
	bufSize := bstd.SizeUint16() + bstd.SizeUint32() + bstd.SizeString(kk.Engine) + bstd.SizeBytes(kk.Key) + bstd.SizeUint64()
	buf := make([]byte, bufSize)

	ofs := bstd.MarshalUint16(0, buf, codebookKeyVersion)
	ofs = bstd.MarshalUint32(ofs, buf, kk.ID)
	ofs = bstd.MarshalString(ofs, buf, kk.Engine)
	ofs = bstd.MarshalBytes(ofs, buf, kk.Key)
	_ = bstd.MarshalInt64(ofs, buf, kk.CreationTime.Unix())

	// Done
	return buf
}

func (kk *codebookKey) SerializeToStorage(ctx context.Context, tx StorageTx, key string) error {
	buf := kk.Serialize()
	defer util.SafeZeroMem(buf)

	return tx.Put(ctx, key, buf)
}

func (kk *codebookKey) Split(shares int, threshold int) ([][]byte, error) {
	if shares < 1 || shares > 255 || threshold < 1 || threshold > shares {
		return nil, errors.New("invalid shares or threshold parameter")
	}

	buf := kk.Serialize()
	if shares == 1 {
		split := make([][]byte, 1)
		split[0] = buf
		return split, nil
	}
	defer util.SafeZeroMem(buf)

	// Split the key using the Shamir algorithm.
	return shamir.Split(buf, shares, threshold)
}

func combineCodebookKey(parts [][]byte) (*codebookKey, error) {
	var merged []byte
	var err error

	if len(parts) == 0 {
		return nil, errors.New("no key parts provided")
	}

	// Join parts and recreate the key.
	if len(parts) == 1 {
		merged = make([]byte, len(parts[0]))
		copy(merged, parts[0])
	} else {
		merged, err = shamir.Combine(parts)
		if err != nil {
			return nil, util.NewExtendedError(err, "unable to combine key parts")
		}
	}
	defer util.SafeZeroMem(merged)

	return deserializeCodebookKey(merged)
}

func (km codebookKeyMap) containsID(id uint32) bool {
	_, ok := km[id]
	return ok
}

// sortedIDs returns the key IDs ordered by creation time and then by ID.
func (km codebookKeyMap) sortedIDs() []uint32 {
	ids := make([]uint32, 0, len(km))
	for id := range km {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool {
		a := km[ids[i]]
		b := km[ids[j]]
		if !a.CreationTime.Equal(b.CreationTime) {
			return a.CreationTime.Before(b.CreationTime)
		}
		return a.ID < b.ID
	})
	return ids
}

func (km codebookKeyMap) clone() codebookKeyMap {
	c := make(codebookKeyMap, len(km))
	for id, kk := range km {
		c[id] = kk
	}
	return c
}
