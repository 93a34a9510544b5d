package secrets

import (
	"encoding/base64"
	"encoding/hex"
	"strings"
	"testing"

	kerrors "github.com/PolarWolf314/clienv/internal/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseSecretKey(t *testing.T) {
	raw := []byte(testKey)

	tests := []struct {
		name    string
		in      string
		want    SecretKey
		wantErr error
	}{
		{"raw 32 bytes", testKey, raw, nil},
		{"base64 prefix", "base64:" + base64.StdEncoding.EncodeToString(raw), raw, nil},
		{"hex prefix", "hex:" + hex.EncodeToString(raw), raw, nil},
		{"empty", "", nil, kerrors.ErrKeyNotFound},
		{"too short", "default_encryption_key", nil, kerrors.ErrInvalidKeyLength},
		{"too long", testKey + "!", nil, kerrors.ErrInvalidKeyLength},
		{"bad base64", "base64:!!!", nil, kerrors.ErrInvalidKeyLength},
		{"base64 of 16 bytes", "base64:" + base64.StdEncoding.EncodeToString(raw[:16]), nil, kerrors.ErrInvalidKeyLength},
		{"bad hex", "hex:zz", nil, kerrors.ErrInvalidKeyLength},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseSecretKey(tt.in)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, got)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestGenerateSecretKey(t *testing.T) {
	a, err := GenerateSecretKey()
	require.NoError(t, err)
	b, err := GenerateSecretKey()
	require.NoError(t, err)

	assert.Len(t, a, KeySize)
	assert.NotEqual(t, a, b)

	parsed, err := ParseSecretKey(a.String())
	require.NoError(t, err)
	assert.Equal(t, a, parsed)
	assert.True(t, strings.HasPrefix(a.String(), "base64:"))
}

func TestParseEnvelope(t *testing.T) {
	env, err := Encrypt("value", mustKey(t), AES256GCM)
	require.NoError(t, err)

	parsed, err := ParseEnvelope(env.String())
	require.NoError(t, err)
	assert.Equal(t, env, parsed)

	for _, bad := range []string{"", "onlyone", "a:b:c", "!!!:AAAA", "AAAA:!!!"} {
		_, err := ParseEnvelope(bad)
		assert.ErrorIs(t, err, kerrors.ErrMalformedEnvelope, "input %q", bad)
	}
}

func TestDecryptStringReferenceFormat(t *testing.T) {
	key := mustKey(t)
	s, err := EncryptString("s3cr3t", key, AES256GCM)
	require.NoError(t, err)

	parts := strings.Split(s, ":")
	require.Len(t, parts, 2)
	nonce, err := base64.StdEncoding.DecodeString(parts[0])
	require.NoError(t, err)
	assert.Len(t, nonce, 12)

	got, err := DecryptString(s, key, AES256GCM)
	require.NoError(t, err)
	assert.Equal(t, "s3cr3t", got)
}
