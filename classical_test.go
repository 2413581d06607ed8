package classical_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/mxmauro/classical"
)

// -----------------------------------------------------------------------------

const (
	testMessage = "HelloHowAreYou!"
)

// -----------------------------------------------------------------------------

func TestShiftCipher(t *testing.T) {
	c := classical.NewShiftCipher(15)
	if c.Kind() != classical.KindShift || c.Kind().String() != "shift" {
		t.Fatal("unexpected kind")
	}

	t.Log("Encrypting 'hello'...")
	if ciphertext := c.Encrypt("hello"); ciphertext != "wtaad" {
		t.Fatalf("unexpected ciphertext %q", ciphertext)
	}
	if plaintext := c.Decrypt("wtaad"); plaintext != "hello" {
		t.Fatalf("unexpected plaintext %q", plaintext)
	}

	t.Log("Encrypting with every key...")
	for key := 0; key < 256; key++ {
		c = classical.NewShiftCipher(uint8(key))
		if c.Decrypt(c.Encrypt(testMessage)) != testMessage {
			t.Fatalf("round trip mismatch with key %d", key)
		}
		if c.Encrypt("1234 !?.") != "1234 !?." {
			t.Fatalf("non-alphabetic text changed with key %d", key)
		}
	}
}

func TestTranspositionCipher(t *testing.T) {
	t.Log("Generating transposition key...")
	key, err := classical.GenerateTranspositionKey(5)
	if err != nil {
		t.Fatal(err)
	}

	c, err := classical.NewTranspositionCipher(key)
	if err != nil {
		t.Fatal(err)
	}
	if c.Kind() != classical.KindTransposition || c.Kind().String() != "transposition" {
		t.Fatal("unexpected kind")
	}

	t.Log("Encrypting message...")
	ciphertext := c.Encrypt(testMessage)
	if len(ciphertext) != len(testMessage) {
		t.Fatal("ciphertext length mismatch")
	}
	if ciphertext[10:] != testMessage[10:] {
		t.Fatal("last aligned block was modified")
	}
	if c.Decrypt(ciphertext) != testMessage {
		t.Fatal("round trip mismatch")
	}

	t.Log("Encrypting a single aligned block...")
	if c.Encrypt("Hello") != "Hello" {
		t.Fatal("single aligned block was modified")
	}
}

func TestTranspositionKnownVector(t *testing.T) {
	c, err := classical.NewTranspositionCipher([]int{1, 3, 0, 2})
	if err != nil {
		t.Fatal(err)
	}
	if ciphertext := c.Encrypt("wordX"); ciphertext != "odwrX" {
		t.Fatalf("unexpected ciphertext %q", ciphertext)
	}
	if plaintext := string(c.DecryptBytes([]byte("odwrX"))); plaintext != "wordX" {
		t.Fatalf("unexpected plaintext %q", plaintext)
	}
	if ciphertext := string(c.EncryptBytes([]byte("word"))); ciphertext != "word" {
		t.Fatalf("unexpected ciphertext %q", ciphertext)
	}
}

func TestGenerateTranspositionKey(t *testing.T) {
	for size := 1; size <= 64; size++ {
		key, err := classical.GenerateTranspositionKey(size)
		if err != nil {
			t.Fatal(err)
		}
		if len(key) != size {
			t.Fatalf("expected %d positions, got %d", size, len(key))
		}
		seen := make(map[int]struct{}, size)
		for _, pos := range key {
			if pos < 0 || pos >= size {
				t.Fatalf("position %d out of range", pos)
			}
			seen[pos] = struct{}{}
		}
		if len(seen) != size {
			t.Fatalf("repeated positions in %v", key)
		}
	}

	t.Log("Generating a key of size zero (expected to fail)...")
	_, err := classical.GenerateTranspositionKey(0)
	if !errors.Is(err, classical.ErrInvalidKeySize) {
		t.Fatal("unexpected error:", err)
	}
}

func TestMalformedTranspositionKey(t *testing.T) {
	for _, key := range [][]int{nil, {0, 0}, {1, 2}, {0, 1, 3}} {
		_, err := classical.NewTranspositionCipher(key)
		if !errors.Is(err, classical.ErrMalformedKey) {
			t.Fatalf("key %v: unexpected error %v", key, err)
		}
	}
}

func TestCipherKey(t *testing.T) {
	shiftCipher := classical.NewShiftCipher(200)
	for idx := 0; idx < 3; idx++ {
		if shiftCipher.Key() != 200 {
			t.Fatal("unexpected shift key")
		}
	}

	transCipher, err := classical.NewTranspositionCipher([]int{2, 1, 0})
	if err != nil {
		t.Fatal(err)
	}
	for idx := 0; idx < 3; idx++ {
		if transCipher.Key() != 3 {
			t.Fatal("unexpected transposition key")
		}
		_ = transCipher.Encrypt(strings.Repeat("abc", 4))
	}
}

func TestCipherString(t *testing.T) {
	if s := classical.NewShiftCipher(15).String(); s != "shift(15)" {
		t.Fatalf("unexpected string %q", s)
	}

	c, err := classical.NewTranspositionCipher([]int{1, 3, 0, 2})
	if err != nil {
		t.Fatal(err)
	}
	if s := c.String(); s != "transposition[1 3 0 2]" {
		t.Fatalf("unexpected string %q", s)
	}
}
