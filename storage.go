package classical

import (
	"context"
	"errors"
	"fmt"
)

// -----------------------------------------------------------------------------

// BeginStorageTransactionFunc defines a function that creates a transaction in the underlying storage.
type BeginStorageTransactionFunc func(ctx context.Context, readOnly bool) (StorageTx, error)

// StorageTx is an interface that represent a storage transaction.
type StorageTx interface {
	// Get retrieves the value of the given key. Returns nil and no error if the key is not found.
	// Also, the implementation must return a copy of the value if the underlying implementation
	// overwrites its contents.
	Get(ctx context.Context, key string) ([]byte, error)

	// Put saves the given value under the provided key. The implementation MUST make a copy of the
	// value parameter if it needs to keep it until the commit call.
	Put(ctx context.Context, key string, value []byte) error

	// Delete removes the given key from the database. Don't return an error if the key is not found.
	Delete(ctx context.Context, key string) error

	// Commit saves all changes into the storage.
	Commit(ctx context.Context) error

	// Rollback discards pending changes.
	Rollback(ctx context.Context)
}

// -----------------------------------------------------------------------------

type withinTxCallback func(ctx context.Context, tx StorageTx) error

func (cb *Codebook) withinTx(ctx context.Context, readOnly bool, callback withinTxCallback) error {
	tx, err := cb.beginStgTx(ctx, readOnly)
	if err == nil {
		err = callback(ctx, tx)
		if err == nil {
			err = tx.Commit(ctx)
		}
		if err != nil {
			tx.Rollback(ctx)
		}
	}
	return err
}

func readKeys(ctx context.Context, tx StorageTx, params codebookParameters) (codebookKeyMap, error) {
	keys := make(codebookKeyMap)

	// Zeroize on exit.
	success := false
	defer func() {
		if !success {
			for keyID := range keys {
				keys[keyID].Zeroize()
			}
		}
	}()

	// Read keys.
	for idx := 1; idx <= int(params.keyCount); idx++ {
		encodedKey, err := getNonNullValue(ctx, tx, codebookKeyPath(idx))
		if err != nil {
			return nil, err
		}

		kk, err := deserializeCodebookKey(encodedKey)
		if err != nil {
			return nil, err
		}

		// Add to map.
		if keys.containsID(kk.ID) {
			kk.Zeroize()
			return nil, fmt.Errorf("duplicated key with ID 0x%X", kk.ID)
		}
		keys[kk.ID] = kk
	}

	// Verify the active key.
	if len(keys) > 0 && !keys.containsID(params.activeKeyID) {
		return nil, fmt.Errorf("active key with ID 0x%X not found", params.activeKeyID)
	}
	if len(keys) == 0 && params.activeKeyID != 0 {
		return nil, ErrInvalidStoredData
	}

	// Done.
	success = true
	return keys, nil
}

// writeState stores the given keys and parameters if the stored codebook was not modified since
// the current revision was loaded. On success, it returns the stored parameters.
func (cb *Codebook) writeState(ctx context.Context, keys codebookKeyMap, activeKeyID uint32) (codebookParameters, error) {
	params := cb.params
	params.revision += 1
	params.activeKeyID = activeKeyID
	params.keyCount = uint32(len(keys))

	err := cb.withinTx(ctx, false, func(ctx context.Context, tx StorageTx) error {
		// Check for concurrent modifications.
		storedParams, err := deserializeCodebookParametersFromStorage(ctx, tx, pathCodebookParameters)
		switch {
		case err == nil:
			if storedParams.uniqueID != cb.params.uniqueID || storedParams.revision != cb.params.revision {
				return ErrCodebookDataHasChanged
			}
		case errors.Is(err, ErrNotFound):
			if cb.params.revision != 0 {
				return ErrCodebookDataHasChanged
			}
		default:
			return err
		}

		// Write keys.
		for idx, keyID := range keys.sortedIDs() {
			err = keys[keyID].SerializeToStorage(ctx, tx, codebookKeyPath(idx+1))
			if err != nil {
				return err
			}
		}

		// Delete the leftovers of a previous, larger, set of keys.
		for idx := len(keys) + 1; idx <= int(cb.params.keyCount); idx++ {
			err = tx.Delete(ctx, codebookKeyPath(idx))
			if err != nil {
				return err
			}
		}

		// Store the parameters.
		return params.SerializeToStorage(ctx, tx, pathCodebookParameters)
	})
	if err != nil {
		return codebookParameters{}, err
	}

	// Done.
	return params, nil
}
