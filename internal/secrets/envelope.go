package secrets

import (
	"encoding/base64"
	"fmt"
	"strings"

	kerrors "github.com/PolarWolf314/clienv/internal/errors"
)

const envelopeSeparator = ":"

// Envelope is one encrypted value as stored: a fresh nonce and the sealed
// ciphertext with its authentication tag appended.
type Envelope struct {
	Nonce      []byte
	Ciphertext []byte
}

// String renders the envelope as base64(nonce):base64(ciphertext).
func (e Envelope) String() string {
	return base64.StdEncoding.EncodeToString(e.Nonce) + envelopeSeparator +
		base64.StdEncoding.EncodeToString(e.Ciphertext)
}

// ParseEnvelope decodes the nonce:ciphertext form written by Envelope.String.
// Nonce size is checked by Decrypt, which knows the cipher.
func ParseEnvelope(s string) (Envelope, error) {
	parts := strings.Split(s, envelopeSeparator)
	if len(parts) != 2 {
		return Envelope{}, fmt.Errorf("%w: expected 2 segments, got %d", kerrors.ErrMalformedEnvelope, len(parts))
	}

	nonce, err := base64.StdEncoding.DecodeString(parts[0])
	if err != nil {
		return Envelope{}, fmt.Errorf("%w: invalid nonce: %v", kerrors.ErrMalformedEnvelope, err)
	}
	ciphertext, err := base64.StdEncoding.DecodeString(parts[1])
	if err != nil {
		return Envelope{}, fmt.Errorf("%w: invalid ciphertext: %v", kerrors.ErrMalformedEnvelope, err)
	}

	return Envelope{Nonce: nonce, Ciphertext: ciphertext}, nil
}
