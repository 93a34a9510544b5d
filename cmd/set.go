package cmd

import (
	"context"
	"os"

	"github.com/PolarWolf314/clienv/internal/ui"
	"github.com/PolarWolf314/clienv/internal/utils"
	"github.com/PolarWolf314/clienv/internal/workflows"

	"github.com/spf13/cobra"
)

// setSuccessMessage is printed after a value has been persisted.
const setSuccessMessage = "environment variable set successfully"

var setStdin bool

func init() {
	setCmd.Flags().BoolVar(&setStdin, "stdin", false, "read the value from stdin")
}

// resetSetCommandState resets the set command's global state for testing.
func resetSetCommandState() {
	setStdin = false
}

var setCmd = &cobra.Command{
	Use:   "set NAME [VALUE]",
	Short: "Encrypt and store a variable",
	Long: `Encrypts VALUE under the configured key and stores it as NAME,
replacing any earlier value. The whole store is rewritten before the
command returns.

Without VALUE, the value is prompted for without echo. Use --stdin to read
it from a pipe instead, which keeps it out of your shell history.

Examples:
  clienv set DB_PASS s3cr3t
  clienv set DB_PASS                       # prompt
  printf '%s' "$TOKEN" | clienv set API_TOKEN --stdin`,
	Args: cobra.RangeArgs(1, 2),
	RunE: runSet,
}

func runSet(cmd *cobra.Command, args []string) error {
	name := args[0]
	Logger.Infof("Setting %s", name)

	cfg, err := loadConfig()
	if err != nil {
		return reportError(cmd, err)
	}

	key, err := cfg.SecretKey()
	if err != nil {
		return reportError(cmd, err)
	}

	value, err := readSetValue(cmd, args)
	if err != nil {
		return reportError(cmd, err)
	}

	st, err := openStore(cfg)
	if err != nil {
		return reportError(cmd, err)
	}

	spinner, cleanup := startSpinner(cmd.OutOrStdout(), "Encrypting "+name+"...")
	defer cleanup()

	result, err := workflows.SetVariable(context.Background(), st, workflows.SetOptions{
		Name:     name,
		Value:    value,
		Key:      key,
		AuditLog: cfg.AuditLog,
	})
	if err != nil {
		cleanup()
		return reportError(cmd, err)
	}

	if result.Overwritten {
		Logger.Infof("Replaced the previous value of %s", name)
	}
	Logger.Debugf("Store %s now holds %d variables", cfg.StorePath, st.Len())

	spinner.FinalMSG = ui.Success.Sprint("✓") + " " + setSuccessMessage
	return nil
}

// readSetValue takes the value from the argument list, stdin, or a hidden
// terminal prompt, in that order.
func readSetValue(cmd *cobra.Command, args []string) (string, error) {
	if len(args) == 2 {
		if setStdin {
			return "", Logger.ErrorfAndReturn("cannot use %s together with a VALUE argument", ui.Flag.Sprint("--stdin"))
		}
		return args[1], nil
	}

	if setStdin {
		Logger.Debugf("Reading value from stdin")
		return utils.ReadValue(cmd.InOrStdin())
	}

	in, ok := cmd.InOrStdin().(*os.File)
	if !ok || !utils.IsTerminal(in) {
		return "", Logger.ErrorfAndReturn("no VALUE given and input is not a terminal, use %s", ui.Flag.Sprint("--stdin"))
	}
	Logger.Debugf("Prompting for value")
	return utils.ReadHidden(in, cmd.ErrOrStderr(), "Value for "+args[0]+": ")
}
