package errors

import "errors"

// Configuration errors indicate the secret or settings are missing or unusable.
var (
	// ErrKeyNotFound indicates no encryption key has been configured.
	ErrKeyNotFound = errors.New("encryption key not found")

	// ErrInvalidKeyLength indicates the encryption key has an unexpected length.
	ErrInvalidKeyLength = errors.New("invalid encryption key length")

	// ErrInvalidCipher indicates the configured cipher is not supported.
	ErrInvalidCipher = errors.New("unsupported cipher")

	// ErrInvalidConfig indicates the configuration file is malformed.
	ErrInvalidConfig = errors.New("configuration is invalid")
)

// Cryptographic errors indicate failures during encryption or decryption operations.
var (
	// ErrEncryptFailed indicates a value could not be encrypted.
	ErrEncryptFailed = errors.New("failed to encrypt value")

	// ErrAuthenticationFailed indicates a stored value did not verify under the key.
	// The key is wrong, or the stored data was corrupted or tampered with.
	ErrAuthenticationFailed = errors.New("cannot decrypt value")

	// ErrMalformedEnvelope indicates a stored value is not in nonce:ciphertext form.
	ErrMalformedEnvelope = errors.New("malformed encrypted value")

	// ErrInvalidValue indicates a value is not valid UTF-8 and could not be read back.
	ErrInvalidValue = errors.New("value must be valid UTF-8")
)

// Store errors indicate issues with the backing file or the stored entries.
var (
	// ErrPersistFailed indicates the backing file could not be written.
	ErrPersistFailed = errors.New("failed to persist store")

	// ErrCorruptStore indicates the backing file exists but could not be parsed.
	ErrCorruptStore = errors.New("store file is corrupt")

	// ErrStoreUnreadable indicates the backing file exists but could not be read,
	// for example because of permissions or because it is a directory.
	ErrStoreUnreadable = errors.New("cannot read store file")

	// ErrInvalidName indicates a variable name is empty or not valid UTF-8.
	ErrInvalidName = errors.New("invalid variable name")
)

// File errors indicate issues with file discovery or access.
var (
	// ErrNoFilesFound indicates no files matched the provided patterns.
	ErrNoFilesFound = errors.New("no matching files found")

	// ErrFileNotFound indicates a specific file could not be read.
	ErrFileNotFound = errors.New("could not read file")
)

// Input validation errors indicate issues with user-provided input.
var (
	// ErrInvalidDateFormat indicates a date string is not in YYYY-MM-DD format.
	ErrInvalidDateFormat = errors.New("invalid date format")

	// ErrAuditDisabled indicates no audit log path is configured.
	ErrAuditDisabled = errors.New("audit log is not configured")
)
