package classical

import (
	"context"
	"crypto/rand"
	"encoding/binary"
	"errors"
	"io"
	"sync"
	"time"

	"github.com/mxmauro/classical/crypto/ciphers"
	"github.com/mxmauro/classical/util"
)

// -----------------------------------------------------------------------------

// Codebook stores a set of cipher keys in a transactional storage. One of them, the active key,
// is used to encrypt new messages. Encrypted messages carry the ID of the key used so they can be
// decrypted after the active key changes.
type Codebook struct {
	rg         io.Reader
	beginStgTx BeginStorageTransactionFunc

	mtx sync.RWMutex

	params codebookParameters
	keys   codebookKeyMap
}

// Options configure the Codebook parameters.
type Options struct {
	// A transactional-enabled storage that holds codebook data.
	BeginStorageTX BeginStorageTransactionFunc

	// An optional random number generator reader. If nil, the codebook will use crypto/rand.Reader.
	RandomGeneratorReader io.Reader
}

// KeyInfo describes a key stored in the codebook.
type KeyInfo struct {
	ID           uint32
	Engine       string
	Key          uint8
	CreationTime time.Time
	Active       bool
}

// -----------------------------------------------------------------------------

// New creates a new codebook. If codebook data is present in the storage, it is loaded.
func New(ctx context.Context, opts Options) (*Codebook, error) {
	rg := opts.RandomGeneratorReader
	if rg == nil {
		rg = rand.Reader
	}

	// Verify if storage is valid.
	if opts.BeginStorageTX == nil {
		return nil, errors.New("invalid storage transaction initiator")
	}

	// Create a new codebook.
	cb := Codebook{
		rg:         rg,
		beginStgTx: opts.BeginStorageTX,
		keys:       make(codebookKeyMap),
	}

	// Load the stored parameters and keys, if any.
	paramsFound := false
	err := cb.withinTx(ctx, true, func(ctx context.Context, tx StorageTx) (err error) {
		cb.params, err = deserializeCodebookParametersFromStorage(ctx, tx, pathCodebookParameters)
		if err != nil {
			if errors.Is(err, ErrNotFound) {
				// Keep this codebook empty.
				err = nil
			}
			return
		}
		paramsFound = true

		cb.keys, err = readKeys(ctx, tx, cb.params)
		return
	})
	if err != nil {
		return nil, err
	}

	// If parameters were not found, set up a default.
	if !paramsFound {
		cb.params = codebookParameters{}
		cb.params.uniqueID, err = generateRandomUint64(rg)
		if err != nil {
			return nil, util.NewExtendedError(err, "unable to generate codebook ID")
		}
	}

	// Done
	return &cb, nil
}

// Destroy zeroes all the key material held in memory. The stored data is not modified.
func (cb *Codebook) Destroy() {
	cb.mtx.Lock()
	defer cb.mtx.Unlock()

	for keyID := range cb.keys {
		cb.keys[keyID].Zeroize()
	}
	cb.keys = make(codebookKeyMap)
	cb.params = codebookParameters{}
}

// AddKey generates a new key for the given engine, stores it and sets it as the active key.
// For block engines, keySize is the block size. Other engines ignore it.
func (cb *Codebook) AddKey(ctx context.Context, engine string, keySize int) (uint32, error) {
	var newKey *codebookKey
	var err error

	// Check if the engine is supported.
	if !ciphers.IsEngineSupported(engine) {
		return 0, ciphers.ErrEngineNotSupported
	}

	// Zero-ize on exit.
	defer func() {
		if newKey != nil {
			newKey.Zeroize()
		}
	}()

	// Lock access.
	cb.mtx.Lock()
	defer cb.mtx.Unlock()

	// Generate a new key with a unique ID.
	for {
		newKey, err = generateCodebookKey(engine, keySize, cb.rg)
		if err != nil {
			return 0, err
		}
		if newKey.ID != 0 && !cb.keys.containsID(newKey.ID) {
			break
		}
		newKey.Zeroize()

		select {
		case <-ctx.Done():
			return 0, ctx.Err()
		case <-time.After(10 * time.Millisecond):
		}
	}

	// Save it.
	keys := cb.keys.clone()
	keys[newKey.ID] = newKey
	err = cb.commit(ctx, keys, newKey.ID)
	if err != nil {
		return 0, err
	}

	id := newKey.ID
	newKey = nil

	// Done
	return id, nil
}

// SetActiveKey sets the key used by later encryptions.
func (cb *Codebook) SetActiveKey(ctx context.Context, id uint32) error {
	// Lock access.
	cb.mtx.Lock()
	defer cb.mtx.Unlock()

	if !cb.keys.containsID(id) {
		return ErrKeyNotFound
	}
	if id == cb.params.activeKeyID {
		return nil
	}

	return cb.commit(ctx, cb.keys, id)
}

// RemoveKey removes a key from the codebook. Data encrypted with it cannot be decrypted anymore.
// The active key cannot be removed unless it is the only key.
func (cb *Codebook) RemoveKey(ctx context.Context, id uint32) error {
	// Lock access.
	cb.mtx.Lock()
	defer cb.mtx.Unlock()

	kk, ok := cb.keys[id]
	if !ok {
		return ErrKeyNotFound
	}

	activeKeyID := cb.params.activeKeyID
	if id == activeKeyID {
		if len(cb.keys) > 1 {
			return ErrActiveKey
		}
		activeKeyID = 0
	}

	keys := cb.keys.clone()
	delete(keys, id)
	err := cb.commit(ctx, keys, activeKeyID)
	if err != nil {
		return err
	}
	kk.Zeroize()

	// Done
	return nil
}

// ExportKey serializes the given key. If shares is greater than one, the serialized key is split
// with Shamir's secret sharing and any threshold parts can be used to import it back.
func (cb *Codebook) ExportKey(id uint32, shares int, threshold int) ([][]byte, error) {
	// Lock access.
	cb.mtx.RLock()
	defer cb.mtx.RUnlock()

	kk, ok := cb.keys[id]
	if !ok {
		return nil, ErrKeyNotFound
	}
	return kk.Split(shares, threshold)
}

// ImportKey rebuilds a key previously exported with ExportKey and stores it. The imported key
// becomes the active key only if the codebook has no keys.
// NOTE: The given parts are zeroed.
func (cb *Codebook) ImportKey(ctx context.Context, parts [][]byte) (uint32, error) {
	kk, err := combineCodebookKey(parts)
	util.SafeZeroMemArray(parts)
	if err != nil {
		return 0, err
	}
	if kk.ID == 0 {
		kk.Zeroize()
		return 0, ErrInvalidStoredData
	}

	// Lock access.
	cb.mtx.Lock()
	defer cb.mtx.Unlock()

	if cb.keys.containsID(kk.ID) {
		kk.Zeroize()
		return 0, errors.New("key already exists")
	}

	activeKeyID := cb.params.activeKeyID
	if len(cb.keys) == 0 {
		activeKeyID = kk.ID
	}

	keys := cb.keys.clone()
	keys[kk.ID] = kk
	err = cb.commit(ctx, keys, activeKeyID)
	if err != nil {
		kk.Zeroize()
		return 0, err
	}

	// Done
	return kk.ID, nil
}

// ActiveKeyID returns the ID of the key used to encrypt. Zero means no keys are available.
func (cb *Codebook) ActiveKeyID() uint32 {
	cb.mtx.RLock()
	defer cb.mtx.RUnlock()

	return cb.params.activeKeyID
}

// Keys returns information about the stored keys, oldest first.
func (cb *Codebook) Keys() []KeyInfo {
	cb.mtx.RLock()
	defer cb.mtx.RUnlock()

	ids := cb.keys.sortedIDs()
	list := make([]KeyInfo, 0, len(ids))
	for _, id := range ids {
		kk := cb.keys[id]
		list = append(list, KeyInfo{
			ID:           kk.ID,
			Engine:       kk.Engine,
			Key:          kk.cipher.Key(),
			CreationTime: kk.CreationTime,
			Active:       kk.ID == cb.params.activeKeyID,
		})
	}
	return list
}

// Encrypt encrypts the given plain text with the active key.
func (cb *Codebook) Encrypt(plaintext []byte) ([]byte, error) {
	// Lock access.
	cb.mtx.RLock()
	defer cb.mtx.RUnlock()

	if len(cb.keys) == 0 {
		return nil, ErrNoKeysAvailable
	}
	kk := cb.keys[cb.params.activeKeyID]

	// Encrypt data.
	ciphertext := kk.cipher.Encrypt(plaintext)

	// Build result.
	ret := make([]byte, 1+idSize+len(ciphertext))
	ret[0] = byte(dataVersion)
	binary.LittleEndian.PutUint32(ret[1:], kk.ID)
	copy(ret[1+idSize:], ciphertext)

	// Done
	return ret, nil
}

// Decrypt decrypts the given cipher text with the key that was used to encrypt it.
func (cb *Codebook) Decrypt(ciphertext []byte) ([]byte, error) {
	// Validate input.
	if len(ciphertext) < 1+idSize {
		return nil, ErrInvalidCiphertext
	}
	if ciphertext[0] != byte(dataVersion) {
		return nil, errors.New("unsupported ciphertext version")
	}
	keyID := binary.LittleEndian.Uint32(ciphertext[1 : 1+idSize])

	// Lock access.
	cb.mtx.RLock()
	defer cb.mtx.RUnlock()

	// Get the key used to encrypt the data.
	kk, ok := cb.keys[keyID]
	if !ok {
		return nil, ErrKeyNotFound
	}

	// Done
	return kk.cipher.Decrypt(ciphertext[1+idSize:]), nil
}

// commit stores the new state and, on success, replaces the in-memory one. Must be called with
// the write lock held.
func (cb *Codebook) commit(ctx context.Context, keys codebookKeyMap, activeKeyID uint32) error {
	params, err := cb.writeState(ctx, keys, activeKeyID)
	if err != nil {
		return err
	}
	cb.params = params
	cb.keys = keys
	return nil
}
