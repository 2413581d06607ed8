package ciphers

import (
	"errors"
	"io"
	"sort"
	"sync"

	"github.com/mxmauro/classical/crypto/ciphers/shift"
	"github.com/mxmauro/classical/crypto/ciphers/transposition"
	"github.com/mxmauro/classical/models"
)

// -----------------------------------------------------------------------------

const (
	EngineShift         = "shift"
	EngineTransposition = "transposition"
)

// -----------------------------------------------------------------------------

// GenerateKeyFunc generates an encoded key. The size parameter is the block size for engines
// that use one and is ignored by the rest.
type GenerateKeyFunc func(r io.Reader, size int) ([]byte, error)
type NewFromKeyFunc func([]byte) (models.Cipher, error)

type engineFunc struct {
	GenerateKey GenerateKeyFunc
	NewFromKey  NewFromKeyFunc
}

// -----------------------------------------------------------------------------

var enginesMtx = sync.RWMutex{}

var enginesList = map[string]engineFunc{
	EngineShift: {
		GenerateKey: shift.GenerateKey,
		NewFromKey:  shift.NewFromKey,
	},
	EngineTransposition: {
		GenerateKey: transposition.GenerateKey,
		NewFromKey:  transposition.NewFromKey,
	},
}

var ErrEngineNotSupported = errors.New("engine not supported")

// -----------------------------------------------------------------------------

// SupportedEngines returns a sorted list of supported cipher engines.
func SupportedEngines() []string {
	enginesMtx.RLock()
	defer enginesMtx.RUnlock()

	list := make([]string, 0, len(enginesList))
	for name := range enginesList {
		list = append(list, name)
	}
	sort.Strings(list)
	return list
}

// IsEngineSupported returns true if the given cipher engine is supported.
func IsEngineSupported(engine string) bool {
	enginesMtx.RLock()
	defer enginesMtx.RUnlock()

	_, ok := enginesList[engine]
	return ok
}

// RegisterEngine registers a custom cipher engine.
func RegisterEngine(engine string, generateKey GenerateKeyFunc, newFromKey NewFromKeyFunc) error {
	if len(engine) == 0 {
		return errors.New("engine name cannot be empty")
	}
	if generateKey == nil || newFromKey == nil {
		return errors.New("generateKey and newFromKey cannot be nil")
	}

	enginesMtx.Lock()
	defer enginesMtx.Unlock()

	// Check if the engine is already registered
	if _, ok := enginesList[engine]; ok {
		return errors.New("engine already exists")
	}

	// Add the engine to the list.
	enginesList[engine] = engineFunc{
		GenerateKey: generateKey,
		NewFromKey:  newFromKey,
	}

	// Done
	return nil
}

// GenerateKey generates a new encoded key for the given cipher engine.
func GenerateKey(engine string, r io.Reader, size int) ([]byte, error) {
	e, ok := getEngine(engine)
	if !ok {
		return nil, ErrEngineNotSupported
	}
	return e.GenerateKey(r, size)
}

// NewFromKey creates a new cipher object from the given encoded key and cipher engine.
func NewFromKey(engine string, key []byte) (models.Cipher, error) {
	e, ok := getEngine(engine)
	if !ok {
		return nil, ErrEngineNotSupported
	}
	return e.NewFromKey(key)
}

func getEngine(engine string) (engineFunc, bool) {
	enginesMtx.RLock()
	defer enginesMtx.RUnlock()

	e, ok := enginesList[engine]
	return e, ok
}
