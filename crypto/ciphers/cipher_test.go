package ciphers_test

import (
	"bytes"
	"crypto/rand"
	"errors"
	"io"
	"testing"

	"github.com/mxmauro/classical/crypto/ciphers"
	"github.com/mxmauro/classical/crypto/ciphers/shift"
	"github.com/mxmauro/classical/models"
)

// -----------------------------------------------------------------------------

var (
	testPlainText = []byte("Hello world!")
)

// -----------------------------------------------------------------------------

func TestBuiltInEngines(t *testing.T) {
	engines := ciphers.SupportedEngines()
	for _, name := range []string{ciphers.EngineShift, ciphers.EngineTransposition} {
		found := false
		for _, e := range engines {
			if e == name {
				found = true
			}
		}
		if !found || !ciphers.IsEngineSupported(name) {
			t.Fatalf("engine %q not supported", name)
		}

		t.Logf("Generating a new %s key", name)
		key, err := ciphers.GenerateKey(name, rand.Reader, 5)
		if err != nil {
			t.Fatal(err)
		}

		t.Logf("Creating %s cipher", name)
		var cipher models.Cipher
		cipher, err = ciphers.NewFromKey(name, key)
		if err != nil {
			t.Fatal(err)
		}

		t.Log("Verifying if decrypted data matches")
		if !bytes.Equal(cipher.Decrypt(cipher.Encrypt(testPlainText)), testPlainText) {
			t.Fatal("decrypted data does not match test plain text")
		}
	}
}

func TestUnsupportedEngine(t *testing.T) {
	_, err := ciphers.GenerateKey("vigenere", rand.Reader, 0)
	if !errors.Is(err, ciphers.ErrEngineNotSupported) {
		t.Fatal("unexpected error:", err)
	}
	_, err = ciphers.NewFromKey("vigenere", []byte{1})
	if !errors.Is(err, ciphers.ErrEngineNotSupported) {
		t.Fatal("unexpected error:", err)
	}
}

func TestRegisterEngine(t *testing.T) {
	rot13 := func(_ io.Reader, _ int) ([]byte, error) {
		return []byte{13}, nil
	}

	t.Log("Registering invalid engines (expected to fail)")
	if ciphers.RegisterEngine("", rot13, shift.NewFromKey) == nil {
		t.Fatal("unexpected success")
	}
	if ciphers.RegisterEngine("rot13", nil, shift.NewFromKey) == nil {
		t.Fatal("unexpected success")
	}
	if ciphers.RegisterEngine(ciphers.EngineShift, rot13, shift.NewFromKey) == nil {
		t.Fatal("unexpected success")
	}

	t.Log("Registering rot13 engine")
	err := ciphers.RegisterEngine("rot13", rot13, shift.NewFromKey)
	if err != nil {
		t.Fatal(err)
	}

	key, err := ciphers.GenerateKey("rot13", nil, 0)
	if err != nil {
		t.Fatal(err)
	}
	cipher, err := ciphers.NewFromKey("rot13", key)
	if err != nil {
		t.Fatal(err)
	}
	if string(cipher.Encrypt([]byte("Hello"))) != "Uryyb" {
		t.Fatal("unexpected ciphertext")
	}
}
