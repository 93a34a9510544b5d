// Package store holds the encrypted variable mapping and its backing file.
//
// A Store is constructed once with Open, which loads the backing file, and is
// then shared by every caller. Values are encrypted per entry by the secrets
// package; the secret key is passed on every call and never retained.
//
// # Backing File
//
// FileBackend writes the whole mapping on every change as indented JSON
// (default, env_vars.json) or YAML (.yaml/.yml):
//
//	{
//	  "DB_PASS": "base64(nonce):base64(ciphertext)"
//	}
//
// Writes go through a temporary file and a rename.
//
// # Concurrency
//
// Set and Unset hold the write lock across the file write and the swap of the
// in-memory mapping, so writes are applied in one order on disk and in memory.
// Get and Names share the read lock.
package store
