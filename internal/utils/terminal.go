package utils

import (
	"fmt"
	"io"
	"os"

	"golang.org/x/term"
)

// ReadHidden prompts on w and reads a line from in without echoing it.
// Returns an error if in is not a terminal.
func ReadHidden(in *os.File, w io.Writer, prompt string) (string, error) {
	fd := int(in.Fd())

	if !term.IsTerminal(fd) {
		return "", fmt.Errorf("cannot read value: stdin is not a terminal (hint: use --stdin)")
	}

	fmt.Fprint(w, prompt)
	value, err := term.ReadPassword(fd)
	fmt.Fprintln(w) // newline after hidden input

	if err != nil {
		return "", fmt.Errorf("failed to read value: %w", err)
	}

	return string(value), nil
}

// IsTerminal returns true if f is connected to a terminal.
func IsTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}
