package models

// -----------------------------------------------------------------------------

// Cipher is the minimal interface that must be implemented by all ciphers.
type Cipher interface {
	// Key returns the shift amount or the block size used by the cipher.
	Key() uint8

	// Encrypt returns a new buffer with the encrypted plaintext. The input is not modified.
	Encrypt(plaintext []byte) []byte
	// Decrypt returns a new buffer with the decrypted ciphertext. The input is not modified.
	Decrypt(ciphertext []byte) []byte
}
