// Package utils provides small helpers shared by the clienv commands.
//
// # System Utilities
//   - GetUsername: returns the current system username (read once into the user settings that the audit log records)
//
// # I/O Utilities
//   - ReadValue: reads a piped value from stdin
//
// # Terminal Utilities
//   - ReadHidden: prompts for a value without echoing it
//   - IsTerminal: checks if a file is a terminal
package utils
