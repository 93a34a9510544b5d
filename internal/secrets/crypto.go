package secrets

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"fmt"
	"io"
	"unicode/utf8"

	kerrors "github.com/PolarWolf314/clienv/internal/errors"

	"golang.org/x/crypto/chacha20poly1305"
)

// Cipher selects the AEAD family. Both take a KeySize key and a 12-byte nonce.
type Cipher string

const (
	AES256GCM        Cipher = "aes-256-gcm"
	ChaCha20Poly1305 Cipher = "chacha20-poly1305"
)

// DefaultCipher reads files written by earlier releases.
const DefaultCipher = AES256GCM

// ParseCipher maps a configured name to a Cipher. Empty means DefaultCipher.
func ParseCipher(name string) (Cipher, error) {
	switch c := Cipher(name); c {
	case "":
		return DefaultCipher, nil
	case AES256GCM, ChaCha20Poly1305:
		return c, nil
	default:
		return "", fmt.Errorf("%w: %q (supported: %s, %s)", kerrors.ErrInvalidCipher, name, AES256GCM, ChaCha20Poly1305)
	}
}

func (c Cipher) aead(key SecretKey) (cipher.AEAD, error) {
	switch c {
	case AES256GCM, "":
		block, err := aes.NewCipher(key)
		if err != nil {
			return nil, fmt.Errorf("cannot create aes block cipher: %w", err)
		}
		return cipher.NewGCM(block)
	case ChaCha20Poly1305:
		return chacha20poly1305.New(key)
	default:
		return nil, fmt.Errorf("%w: %q", kerrors.ErrInvalidCipher, string(c))
	}
}

// Encrypt seals plaintext under key with a nonce drawn fresh from crypto/rand.
//
// Returns ErrInvalidKeyLength before touching the cipher if the key is the
// wrong size, ErrInvalidValue if plaintext is not valid UTF-8, and
// ErrEncryptFailed for any other failure.
func Encrypt(plaintext string, key SecretKey, c Cipher) (Envelope, error) {
	if err := key.Validate(); err != nil {
		return Envelope{}, err
	}
	if !utf8.ValidString(plaintext) {
		return Envelope{}, kerrors.ErrInvalidValue
	}

	aead, err := c.aead(key)
	if err != nil {
		return Envelope{}, fmt.Errorf("%w: %v", kerrors.ErrEncryptFailed, err)
	}

	nonce := make([]byte, aead.NonceSize())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return Envelope{}, fmt.Errorf("%w: cannot generate nonce: %v", kerrors.ErrEncryptFailed, err)
	}

	return Envelope{
		Nonce:      nonce,
		Ciphertext: aead.Seal(nil, nonce, []byte(plaintext), nil),
	}, nil
}

// Decrypt opens an envelope sealed by Encrypt.
//
// Returns ErrAuthenticationFailed when the tag does not verify (wrong key,
// corruption or tampering) and ErrMalformedEnvelope when the envelope
// cannot be an output of Encrypt.
func Decrypt(env Envelope, key SecretKey, c Cipher) (string, error) {
	if err := key.Validate(); err != nil {
		return "", err
	}

	aead, err := c.aead(key)
	if err != nil {
		return "", err
	}

	if len(env.Nonce) != aead.NonceSize() {
		return "", fmt.Errorf("%w: nonce must be %d bytes, got %d", kerrors.ErrMalformedEnvelope, aead.NonceSize(), len(env.Nonce))
	}
	if len(env.Ciphertext) < aead.Overhead() {
		return "", fmt.Errorf("%w: ciphertext shorter than authentication tag", kerrors.ErrMalformedEnvelope)
	}

	plaintext, err := aead.Open(nil, env.Nonce, env.Ciphertext, nil)
	if err != nil {
		return "", kerrors.ErrAuthenticationFailed
	}
	if !utf8.Valid(plaintext) {
		return "", fmt.Errorf("%w: plaintext is not valid UTF-8", kerrors.ErrMalformedEnvelope)
	}

	return string(plaintext), nil
}

// EncryptString is Encrypt followed by Envelope.String.
func EncryptString(plaintext string, key SecretKey, c Cipher) (string, error) {
	env, err := Encrypt(plaintext, key, c)
	if err != nil {
		return "", err
	}
	return env.String(), nil
}

// DecryptString is ParseEnvelope followed by Decrypt.
func DecryptString(s string, key SecretKey, c Cipher) (string, error) {
	env, err := ParseEnvelope(s)
	if err != nil {
		return "", err
	}
	return Decrypt(env, key, c)
}
