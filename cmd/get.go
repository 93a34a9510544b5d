package cmd

import (
	"context"
	"fmt"

	"github.com/PolarWolf314/clienv/internal/workflows"

	"github.com/spf13/cobra"
)

// notFoundMessage is printed, with a zero exit status, when get finds nothing.
const notFoundMessage = "environment variable not found"

var getRaw bool

func init() {
	getCmd.Flags().BoolVar(&getRaw, "raw", false, "print only the value, for use in scripts")
}

// resetGetCommandState resets the get command's global state for testing.
func resetGetCommandState() {
	getRaw = false
}

var getCmd = &cobra.Command{
	Use:   "get NAME",
	Short: "Decrypt and print a stored variable",
	Long: `Decrypts the value stored under NAME and prints it as "NAME: value".

A name that was never set is not an error: clienv prints
"environment variable not found" and exits 0.

Examples:
  clienv get DB_PASS
  export DB_PASS="$(clienv get DB_PASS --raw)"`,
	Args: cobra.ExactArgs(1),
	RunE: runGet,
}

func runGet(cmd *cobra.Command, args []string) error {
	name := args[0]
	Logger.Infof("Getting %s", name)

	cfg, err := loadConfig()
	if err != nil {
		return reportError(cmd, err)
	}

	key, err := cfg.SecretKey()
	if err != nil {
		return reportError(cmd, err)
	}

	st, err := openStore(cfg)
	if err != nil {
		return reportError(cmd, err)
	}

	result, err := workflows.GetVariable(context.Background(), st, workflows.GetOptions{
		Name:     name,
		Key:      key,
		AuditLog: cfg.AuditLog,
	})
	if err != nil {
		return reportError(cmd, err)
	}

	if !result.Found {
		Logger.Debugf("%s is not stored in %s", name, cfg.StorePath)
		fmt.Fprintln(cmd.OutOrStdout(), notFoundMessage)
		return nil
	}

	if getRaw {
		fmt.Fprintln(cmd.OutOrStdout(), result.Value)
		return nil
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%s: %s\n", result.Name, result.Value)
	return nil
}
