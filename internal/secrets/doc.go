// Package secrets implements the value encryption used by the clienv store.
//
// Every value is sealed independently with an AEAD cipher keyed by a
// 32-byte SecretKey. Each call to Encrypt draws a new 12-byte nonce from
// crypto/rand, so encrypting the same value twice never produces the same
// envelope.
//
// # Envelope Format
//
// An encrypted value is stored as two standard base64 segments:
//
//	base64(nonce):base64(ciphertext || tag)
//
// There is no header or version field. The cipher in use is a property of
// the configuration, not of the envelope; opening an envelope with the wrong
// cipher or key fails authentication.
//
// # Ciphers
//
//   - aes-256-gcm (default, compatible with files written by earlier releases)
//   - chacha20-poly1305 (golang.org/x/crypto)
//
// # Keys
//
// ParseSecretKey accepts a raw 32-character string, or "base64:" and "hex:"
// encodings of 32 bytes. Keys of any other length are rejected with
// ErrInvalidKeyLength; they are never padded or truncated.
//
// The package performs no I/O.
package secrets
