// Package errors provides typed error values for clienv.
//
// Using sentinel errors allows callers to handle specific error conditions
// programmatically with errors.Is() rather than string matching.
//
// # Error Categories
//
//   - Configuration errors: missing or malformed secret (ErrKeyNotFound, ErrInvalidKeyLength)
//   - Crypto errors: encryption/decryption failures (ErrEncryptFailed, ErrAuthenticationFailed,
//     ErrMalformedEnvelope)
//   - Store errors: backing file issues (ErrPersistFailed, ErrCorruptStore)
//   - File errors: search input issues (ErrFileNotFound, ErrNoFilesFound)
//   - Input errors: log filters (ErrInvalidDateFormat, ErrAuditDisabled)
//
// # Usage
//
// Lower layers wrap the sentinel with the underlying cause:
//
//	return fmt.Errorf("%w: %v", kerrors.ErrPersistFailed, err)
//
// The CLI layer picks a message per kind:
//
//	if errors.Is(err, kerrors.ErrAuthenticationFailed) {
//	    // wrong key or tampered file
//	}
package errors
