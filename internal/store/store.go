package store

import (
	"errors"
	"fmt"
	"sort"
	"sync"
	"unicode/utf8"

	kerrors "github.com/PolarWolf314/clienv/internal/errors"
	logger "github.com/PolarWolf314/clienv/internal/logging"
	"github.com/PolarWolf314/clienv/internal/secrets"
)

// Options configures a Store.
type Options struct {
	// Cipher is the AEAD family used for every value. Empty means secrets.DefaultCipher.
	Cipher secrets.Cipher

	// DiscardCorrupt starts with an empty mapping when the backing file cannot
	// be parsed. The first Set then overwrites the corrupt file.
	DiscardCorrupt bool

	Logger logger.Logger
}

// Store maps variable names to encrypted envelopes, mirrored to a Backend.
// It is safe for concurrent use. Mutations are serialized and persisted
// before the lock is released, so a reader never observes an entry that is
// not yet on disk.
type Store struct {
	mu      sync.RWMutex
	entries map[string]string
	backend Backend
	cipher  secrets.Cipher
	log     logger.Logger
}

// Open loads the backing mapping once and returns a ready Store.
//
// Returns an error wrapping ErrCorruptStore if the file exists but cannot be
// parsed, unless opts.DiscardCorrupt is set. Read failures such as
// ErrStoreUnreadable are always returned.
func Open(backend Backend, opts Options) (*Store, error) {
	c := opts.Cipher
	if c == "" {
		c = secrets.DefaultCipher
	}
	if _, err := secrets.ParseCipher(string(c)); err != nil {
		return nil, err
	}

	entries, err := backend.Load()
	if err != nil {
		if !errors.Is(err, kerrors.ErrCorruptStore) || !opts.DiscardCorrupt {
			return nil, err
		}
		opts.Logger.WarnfAlways("Discarding unreadable store: %v", err)
		entries = make(map[string]string)
	}
	opts.Logger.Debugf("Loaded %d entries", len(entries))

	return &Store{
		entries: entries,
		backend: backend,
		cipher:  c,
		log:     opts.Logger,
	}, nil
}

// Get returns the decrypted value for name. ok is false when name is not
// stored; decryption failures are returned as errors, never as "not found".
func (s *Store) Get(name string, key secrets.SecretKey) (value string, ok bool, err error) {
	if err := key.Validate(); err != nil {
		return "", false, err
	}

	s.mu.RLock()
	stored, ok := s.entries[name]
	s.mu.RUnlock()
	if !ok {
		return "", false, nil
	}

	value, err = secrets.DecryptString(stored, key, s.cipher)
	if err != nil {
		return "", true, fmt.Errorf("reading %q: %w", name, err)
	}
	return value, true, nil
}

// Set encrypts value under key with a fresh nonce, stores it under name and
// persists the full mapping. On a failed save the in-memory mapping is left
// unchanged. existed reports whether an earlier value was replaced.
//
// Names and values must be valid UTF-8, since the file formats cannot hold
// anything else unchanged.
func (s *Store) Set(name, value string, key secrets.SecretKey) (existed bool, err error) {
	if name == "" {
		return false, fmt.Errorf("%w: must not be empty", kerrors.ErrInvalidName)
	}
	if !utf8.ValidString(name) {
		return false, fmt.Errorf("%w: %q is not valid UTF-8", kerrors.ErrInvalidName, name)
	}

	sealed, err := secrets.EncryptString(value, key, s.cipher)
	if err != nil {
		return false, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	_, existed = s.entries[name]
	next := s.cloneLocked()
	next[name] = sealed
	if err := s.backend.Save(next); err != nil {
		return false, err
	}
	s.entries = next
	s.log.Debugf("Persisted %d entries after setting %s", len(next), name)

	return existed, nil
}

// Unset removes name and persists the mapping. removed is false, and nothing
// is written, when name was not stored.
func (s *Store) Unset(name string) (removed bool, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.entries[name]; !ok {
		return false, nil
	}

	next := s.cloneLocked()
	delete(next, name)
	if err := s.backend.Save(next); err != nil {
		return false, err
	}
	s.entries = next

	return true, nil
}

// Names returns the stored variable names in sorted order.
func (s *Store) Names() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	names := make([]string, 0, len(s.entries))
	for name := range s.entries {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Len returns the number of stored variables.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries)
}

func (s *Store) cloneLocked() map[string]string {
	next := make(map[string]string, len(s.entries)+1)
	for k, v := range s.entries {
		next[k] = v
	}
	return next
}
