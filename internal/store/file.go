package store

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	kerrors "github.com/PolarWolf314/clienv/internal/errors"

	"gopkg.in/yaml.v3"
)

// DefaultPath is the backing file used when nothing else is configured.
const DefaultPath = "env_vars.json"

// Backend loads and saves the full name -> envelope mapping.
type Backend interface {
	Load() (map[string]string, error)
	Save(entries map[string]string) error
}

// FileBackend keeps the mapping in a single human-readable file.
// Paths ending in .yaml or .yml are written as YAML, everything else as
// indented JSON.
type FileBackend struct {
	Path string
}

// NewFileBackend returns a backend for path, or DefaultPath if path is empty.
func NewFileBackend(path string) *FileBackend {
	if path == "" {
		path = DefaultPath
	}
	return &FileBackend{Path: path}
}

func (b *FileBackend) isYAML() bool {
	ext := strings.ToLower(filepath.Ext(b.Path))
	return ext == ".yaml" || ext == ".yml"
}

// Load reads the backing file. A missing file yields an empty mapping and no
// error. A file that cannot be read yields an error wrapping
// ErrStoreUnreadable. A file that reads but does not parse yields an empty
// mapping and an error wrapping ErrCorruptStore, so the caller can decide
// whether to go on.
func (b *FileBackend) Load() (map[string]string, error) {
	entries := make(map[string]string)

	data, err := os.ReadFile(b.Path)
	if os.IsNotExist(err) {
		return entries, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%w %s: %v", kerrors.ErrStoreUnreadable, b.Path, err)
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return entries, nil
	}

	var decoded map[string]string
	if b.isYAML() {
		err = yaml.Unmarshal(data, &decoded)
	} else {
		err = json.Unmarshal(data, &decoded)
	}
	if err != nil {
		return make(map[string]string), fmt.Errorf("%w: parsing %s: %v", kerrors.ErrCorruptStore, b.Path, err)
	}

	for name, value := range decoded {
		entries[name] = value
	}
	return entries, nil
}

// Save replaces the backing file with the full mapping.
//
// The data is written to a temporary file in the same directory, synced and
// renamed over the old file, so a failed save leaves the previous contents
// intact. Every failure wraps ErrPersistFailed.
func (b *FileBackend) Save(entries map[string]string) error {
	data, err := b.encode(entries)
	if err != nil {
		return fmt.Errorf("%w: encoding: %v", kerrors.ErrPersistFailed, err)
	}

	dir := filepath.Dir(b.Path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("%w: creating %s: %v", kerrors.ErrPersistFailed, dir, err)
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(b.Path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("%w: %v", kerrors.ErrPersistFailed, err)
	}
	tmpPath := tmp.Name()
	defer os.Remove(tmpPath) // no-op after a successful rename

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("%w: writing %s: %v", kerrors.ErrPersistFailed, tmpPath, err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return fmt.Errorf("%w: syncing %s: %v", kerrors.ErrPersistFailed, tmpPath, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("%w: closing %s: %v", kerrors.ErrPersistFailed, tmpPath, err)
	}
	if err := os.Chmod(tmpPath, 0600); err != nil {
		return fmt.Errorf("%w: %v", kerrors.ErrPersistFailed, err)
	}
	if err := os.Rename(tmpPath, b.Path); err != nil {
		return fmt.Errorf("%w: replacing %s: %v", kerrors.ErrPersistFailed, b.Path, err)
	}

	return nil
}

func (b *FileBackend) encode(entries map[string]string) ([]byte, error) {
	if entries == nil {
		entries = map[string]string{}
	}
	if b.isYAML() {
		// yaml.v3 sorts map keys.
		return yaml.Marshal(entries)
	}
	// encoding/json sorts map keys.
	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return nil, err
	}
	return append(data, '\n'), nil
}
