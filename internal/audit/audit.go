package audit

import (
	"encoding/json"
	"os"
	"path/filepath"
	"time"

	"github.com/PolarWolf314/clienv/internal/configs"

	"github.com/google/uuid"
)

// Entry represents a single audit log entry. Values are never recorded.
type Entry struct {
	ID        string `json:"id"`   // Random UUID per entry.
	Timestamp string `json:"ts"`   // RFC3339 with microseconds.
	User      string `json:"user"` // System user performing the action.
	Operation string `json:"op"`   // get, set, unset or list.

	// Optional fields depending on operation.
	Name        string `json:"name,omitempty"`        // Variable name for get/set/unset.
	Found       *bool  `json:"found,omitempty"`       // For get/unset.
	Overwritten bool   `json:"overwritten,omitempty"` // For set.
	Count       int    `json:"count,omitempty"`       // For list.
}

// Log appends an entry to the audit log at path. An empty path disables
// auditing. Failures are swallowed: an operation never fails because the
// audit log could not be written.
func Log(path string, entry Entry) {
	if path == "" {
		return
	}

	if entry.ID == "" {
		entry.ID = uuid.NewString()
	}
	if entry.Timestamp == "" {
		entry.Timestamp = time.Now().UTC().Format("2006-01-02T15:04:05.000000Z")
	}

	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return
	}

	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0600)
	if err != nil {
		return
	}
	defer f.Close()

	data, err := json.Marshal(entry)
	if err != nil {
		return
	}

	_, _ = f.Write(append(data, '\n'))
}

// LogWithUser returns an entry with the operation and current user filled in.
func LogWithUser(op string) Entry {
	return Entry{Operation: op, User: configs.UserClienvSettings.Username}
}

// Bool returns a pointer to b, for the optional Found field.
func Bool(b bool) *bool {
	return &b
}

// ReadEntries reads all entries from the audit log at path.
// Returns an empty slice if the log doesn't exist.
func ReadEntries(path string) ([]Entry, error) {
	if path == "" {
		return nil, nil
	}

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return ParseEntries(data)
}

// ParseEntries parses JSON Lines data into audit entries.
// Malformed lines are silently skipped.
func ParseEntries(data []byte) ([]Entry, error) {
	if len(data) == 0 {
		return nil, nil
	}

	var entries []Entry
	start := 0

	for i := 0; i <= len(data); i++ {
		if i == len(data) || data[i] == '\n' {
			line := data[start:i]
			start = i + 1

			if len(line) == 0 {
				continue
			}

			var entry Entry
			if err := json.Unmarshal(line, &entry); err != nil {
				continue
			}
			entries = append(entries, entry)
		}
	}

	return entries, nil
}
