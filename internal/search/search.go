package search

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	kerrors "github.com/PolarWolf314/clienv/internal/errors"
)

// FindMatches writes every line of content that contains pattern to w,
// each followed by a newline. Lines are split on "\n" and a trailing "\r"
// is dropped. An empty pattern matches every line.
func FindMatches(content, pattern string, w io.Writer) (int, error) {
	return findMatches(content, pattern, "", w)
}

// Options configures a search.
type Options struct {
	// Pattern is the literal substring to look for.
	Pattern string

	// Paths lists files, directories or globs to search.
	Paths []string

	// BaseDir resolves relative paths. Empty means the working directory.
	BaseDir string

	// WithFilename prefixes each match with its file path. It is turned on
	// automatically when more than one file is searched.
	WithFilename bool
}

// Result contains the outcome of a search.
type Result struct {
	Files   []string
	Matches int
}

// SearchFiles resolves opts.Paths and writes the matching lines of each file
// to w, in order.
//
// Returns ErrFileNotFound if a file cannot be read. Matches already written
// for earlier files stay written.
func SearchFiles(opts Options, w io.Writer) (*Result, error) {
	baseDir := opts.BaseDir
	if baseDir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("getting working directory: %w", err)
		}
		baseDir = wd
	}

	files, err := ResolveFiles(opts.Paths, baseDir)
	if err != nil {
		return nil, err
	}

	withFilename := opts.WithFilename || len(files) > 1
	result := &Result{Files: files}

	bw := bufio.NewWriter(w)
	defer bw.Flush()

	for _, path := range files {
		content, err := os.ReadFile(path)
		if err != nil {
			return result, fmt.Errorf("%w `%s`: %v", kerrors.ErrFileNotFound, path, err)
		}

		prefix := ""
		if withFilename {
			prefix = displayPath(baseDir, path) + ":"
		}

		n, err := findMatches(string(content), opts.Pattern, prefix, bw)
		result.Matches += n
		if err != nil {
			return result, err
		}
	}

	return result, nil
}

func findMatches(content, pattern, prefix string, w io.Writer) (int, error) {
	if content == "" {
		return 0, nil
	}

	content = strings.TrimSuffix(content, "\n")

	matches := 0
	for _, line := range strings.Split(content, "\n") {
		line = strings.TrimSuffix(line, "\r")
		if !strings.Contains(line, pattern) {
			continue
		}
		if _, err := fmt.Fprintf(w, "%s%s\n", prefix, line); err != nil {
			return matches, err
		}
		matches++
	}
	return matches, nil
}

// displayPath shows path relative to baseDir when it lies beneath it.
func displayPath(baseDir, path string) string {
	rel, err := filepath.Rel(baseDir, path)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return path
	}
	return filepath.ToSlash(rel)
}
