package cmd

import (
	"context"
	"fmt"

	"github.com/PolarWolf314/clienv/internal/workflows"

	"github.com/spf13/cobra"
)

var listCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List stored variable names",
	Long: `Prints the names of all stored variables, one per line, in sorted
order. Values are never decrypted or shown, so no key is needed.`,
	Args: cobra.NoArgs,
	RunE: runList,
}

func runList(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return reportError(cmd, err)
	}

	st, err := openStore(cfg)
	if err != nil {
		return reportError(cmd, err)
	}

	result, err := workflows.ListVariables(context.Background(), st, workflows.ListOptions{
		AuditLog: cfg.AuditLog,
	})
	if err != nil {
		return reportError(cmd, err)
	}

	Logger.Infof("Found %d variables in %s", len(result.Names), cfg.StorePath)
	for _, name := range result.Names {
		fmt.Fprintln(cmd.OutOrStdout(), name)
	}
	return nil
}
