package cmd

import (
	"github.com/PolarWolf314/clienv/internal/search"

	"github.com/spf13/cobra"
)

var (
	searchPaths        []string
	searchWithFilename bool
)

func init() {
	searchCmd.Flags().StringSliceVarP(&searchPaths, "path", "p", nil, "file, directory or glob to search (repeatable)")
	searchCmd.Flags().BoolVarP(&searchWithFilename, "with-filename", "H", false, "prefix each match with its file path")
	_ = searchCmd.MarkFlagRequired("path")
}

// resetSearchCommandState resets the search command's global state for testing.
func resetSearchCommandState() {
	searchPaths = nil
	searchWithFilename = false
}

var searchCmd = &cobra.Command{
	Use:   "search PATTERN --path FILE",
	Short: "Print lines of plain-text files that contain PATTERN",
	Long: `Prints every line of the given files that contains PATTERN as a
literal, case-sensitive substring. This works on ordinary files, not on the
encrypted store, and needs no key.

--path accepts files, directories and globs, including ** for any depth.
When more than one file is searched, matches are prefixed with the file path.

Examples:
  clienv search DB_ --path .env
  clienv search TODO --path 'src/**/*.go'`,
	Args: cobra.ExactArgs(1),
	RunE: runSearch,
}

func runSearch(cmd *cobra.Command, args []string) error {
	Logger.Infof("Searching %v for %q", searchPaths, args[0])

	result, err := search.SearchFiles(search.Options{
		Pattern:      args[0],
		Paths:        searchPaths,
		WithFilename: searchWithFilename,
	}, cmd.OutOrStdout())
	if err != nil {
		return reportError(cmd, err)
	}

	Logger.Debugf("%d matches in %d files", result.Matches, len(result.Files))
	return nil
}
