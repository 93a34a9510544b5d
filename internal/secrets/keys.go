package secrets

import (
	"crypto/rand"
	"encoding/base64"
	"encoding/hex"
	"fmt"
	"strings"

	kerrors "github.com/PolarWolf314/clienv/internal/errors"
)

// KeySize is the required secret length for every supported cipher (256 bits).
const KeySize = 32

const (
	base64KeyPrefix = "base64:"
	hexKeyPrefix    = "hex:"
)

// SecretKey is the symmetric key material used for every encrypt/decrypt call.
type SecretKey []byte

// Validate returns ErrInvalidKeyLength unless the key is exactly KeySize bytes.
func (k SecretKey) Validate() error {
	if len(k) != KeySize {
		return fmt.Errorf("%w: expected %d bytes, got %d bytes", kerrors.ErrInvalidKeyLength, KeySize, len(k))
	}
	return nil
}

// String encodes the key in the base64: form accepted by ParseSecretKey.
func (k SecretKey) String() string {
	return base64KeyPrefix + base64.StdEncoding.EncodeToString(k)
}

// ParseSecretKey decodes a configured secret.
//
// A value prefixed with "base64:" or "hex:" is decoded first; anything else is
// used as raw bytes. The result must be exactly KeySize bytes long.
func ParseSecretKey(s string) (SecretKey, error) {
	if s == "" {
		return nil, kerrors.ErrKeyNotFound
	}

	var key SecretKey
	switch {
	case strings.HasPrefix(s, base64KeyPrefix):
		decoded, err := base64.StdEncoding.DecodeString(strings.TrimPrefix(s, base64KeyPrefix))
		if err != nil {
			return nil, fmt.Errorf("%w: invalid base64 key: %v", kerrors.ErrInvalidKeyLength, err)
		}
		key = decoded
	case strings.HasPrefix(s, hexKeyPrefix):
		decoded, err := hex.DecodeString(strings.TrimPrefix(s, hexKeyPrefix))
		if err != nil {
			return nil, fmt.Errorf("%w: invalid hex key: %v", kerrors.ErrInvalidKeyLength, err)
		}
		key = decoded
	default:
		key = SecretKey(s)
	}

	if err := key.Validate(); err != nil {
		return nil, err
	}
	return key, nil
}

// GenerateSecretKey returns KeySize bytes from crypto/rand.
func GenerateSecretKey() (SecretKey, error) {
	key := make(SecretKey, KeySize)
	if _, err := rand.Read(key); err != nil {
		return nil, fmt.Errorf("failed to generate key: %w", err)
	}
	return key, nil
}
