// Package ui provides semantic text formatting for CLI output.
//
// Formatters colorize their content when the terminal supports it. When
// NO_COLOR is set or stdout is not a terminal, text decorations are used
// instead:
//   - Code: `backticks`
//   - Highlight: 'single quotes'
//   - Muted: (parentheses)
//   - Others: no decoration
//
// Variable values are never passed through a formatter; `clienv get`
// prints them verbatim.
package ui
