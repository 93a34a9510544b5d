package utils

import (
	"fmt"
	"io"
	"os"
	"strings"
)

// ReadValue reads all of r and drops a single trailing newline, so that
// `echo secret | clienv set NAME --stdin` stores "secret".
// Returns an error if r is an interactive terminal or yields no data.
func ReadValue(r io.Reader) (string, error) {
	if f, ok := r.(*os.File); ok {
		stat, err := f.Stat()
		if err != nil {
			return "", fmt.Errorf("failed to stat stdin: %w", err)
		}
		// ModeCharDevice is set when stdin is connected to a terminal.
		if (stat.Mode() & os.ModeCharDevice) != 0 {
			return "", fmt.Errorf("no data provided on stdin (hint: pipe the value to this command)")
		}
	}

	data, err := io.ReadAll(r)
	if err != nil {
		return "", fmt.Errorf("failed to read from stdin: %w", err)
	}
	if len(data) == 0 {
		return "", fmt.Errorf("stdin is empty")
	}

	value := strings.TrimSuffix(string(data), "\n")
	return strings.TrimSuffix(value, "\r"), nil
}
