// Package search implements `clienv search`, a plain substring search over
// text files. It does not touch the encrypted store.
//
// Paths may be files, directories (searched recursively, skipping hidden
// subdirectories) or doublestar globs such as "config/**/*.env".
package search
