package cmd

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/PolarWolf314/clienv/internal/audit"
	"github.com/PolarWolf314/clienv/internal/ui"
	"github.com/PolarWolf314/clienv/internal/workflows"

	"github.com/spf13/cobra"
)

var (
	logLimit     int
	logReverse   bool
	logName      string
	logOperation string
	logSince     string
	logUntil     string
	logJSON      bool
)

func init() {
	logCmd.Flags().IntVarP(&logLimit, "number", "n", 0, "limit number of entries shown")
	logCmd.Flags().BoolVar(&logReverse, "reverse", false, "show most recent entries first")
	logCmd.Flags().StringVar(&logName, "name", "", "filter by variable name")
	logCmd.Flags().StringVar(&logOperation, "operation", "", "filter by operation type (comma-separated)")
	logCmd.Flags().StringVar(&logSince, "since", "", "show entries after date (YYYY-MM-DD)")
	logCmd.Flags().StringVar(&logUntil, "until", "", "show entries before date (YYYY-MM-DD)")
	logCmd.Flags().BoolVar(&logJSON, "json", false, "output as JSON array")
}

// resetLogCommandState resets the log command's global state for testing.
func resetLogCommandState() {
	logLimit = 0
	logReverse = false
	logName = ""
	logOperation = ""
	logSince = ""
	logUntil = ""
	logJSON = false
}

var logCmd = &cobra.Command{
	Use:   "log",
	Short: "View the audit log",
	Long: `Displays the audit log of store operations, when audit_log is
configured. Entries record who read or changed which name and when, never
the values.

Examples:
  clienv log                         # View full log
  clienv log -n 10                   # Last 10 entries
  clienv log --reverse               # Most recent first
  clienv log --name DB_PASS          # Filter by variable
  clienv log --operation set,unset   # Filter by operation
  clienv log --since 2026-01-01      # Filter by date
  clienv log --json                  # JSON output`,
	Args: cobra.NoArgs,
	RunE: runLog,
}

func runLog(cmd *cobra.Command, args []string) error {
	Logger.Infof("Starting log command")

	cfg, err := loadConfig()
	if err != nil {
		return reportError(cmd, err)
	}

	result, err := workflows.Log(context.Background(), workflows.LogOptions{
		AuditLog:   cfg.AuditLog,
		Limit:      logLimit,
		Reverse:    logReverse,
		Name:       logName,
		Operations: logOperation,
		Since:      logSince,
		Until:      logUntil,
	})
	if err != nil {
		return reportError(cmd, err)
	}

	Logger.Debugf("Parsed %d entries from audit log", result.TotalEntriesBeforeFilter)
	Logger.Debugf("After filtering: %d entries", len(result.Entries))

	if logJSON {
		return outputLogJSON(cmd, result.Entries)
	}

	if len(result.Entries) == 0 {
		if result.TotalEntriesBeforeFilter == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), "No audit log entries found.")
		} else {
			fmt.Fprintln(cmd.OutOrStdout(), "No audit log entries found matching the filters.")
		}
		return nil
	}

	for _, e := range result.Entries {
		details := workflows.FormatDetails(e)
		if details != "" {
			details = ui.Muted.Sprint(details)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%-19s  %-16s  %-6s  %-24s  %s\n",
			workflows.FormatDateTime(e.Timestamp), e.User, e.Operation, e.Name, details)
	}
	return nil
}

func outputLogJSON(cmd *cobra.Command, entries []audit.Entry) error {
	if entries == nil {
		entries = []audit.Entry{}
	}
	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal entries to JSON: %w", err)
	}
	fmt.Fprintln(cmd.OutOrStdout(), string(data))
	return nil
}
