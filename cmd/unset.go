package cmd

import (
	"context"

	"github.com/PolarWolf314/clienv/internal/ui"
	"github.com/PolarWolf314/clienv/internal/workflows"

	"github.com/spf13/cobra"
)

var unsetCmd = &cobra.Command{
	Use:     "unset NAME",
	Aliases: []string{"rm"},
	Short:   "Remove a stored variable",
	Long: `Removes NAME from the store. No key is needed.

Removing a name that is not stored changes nothing and exits 0.`,
	Args: cobra.ExactArgs(1),
	RunE: runUnset,
}

func runUnset(cmd *cobra.Command, args []string) error {
	name := args[0]
	Logger.Infof("Removing %s", name)

	cfg, err := loadConfig()
	if err != nil {
		return reportError(cmd, err)
	}

	st, err := openStore(cfg)
	if err != nil {
		return reportError(cmd, err)
	}

	spinner, cleanup := startSpinner(cmd.OutOrStdout(), "Removing "+name+"...")
	defer cleanup()

	result, err := workflows.UnsetVariable(context.Background(), st, workflows.UnsetOptions{
		Name:     name,
		AuditLog: cfg.AuditLog,
	})
	if err != nil {
		cleanup()
		return reportError(cmd, err)
	}

	if !result.Removed {
		spinner.FinalMSG = ui.Info.Sprint("ℹ") + " " + notFoundMessage
		return nil
	}

	spinner.FinalMSG = ui.Success.Sprint("✓") + " Removed " + ui.Highlight.Sprint(name)
	return nil
}
