package cmd

import (
	"fmt"

	logger "github.com/PolarWolf314/clienv/internal/logging"
	"github.com/PolarWolf314/clienv/internal/ui"

	"github.com/common-nighthawk/go-figure"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

var (
	verbose        bool
	debug          bool
	configPath     string
	storeFile      string
	discardCorrupt bool
	Logger         logger.Logger

	RootCmd = &cobra.Command{
		Use:   "clienv",
		Short: "Store encrypted environment variables locally",
		Long: `clienv keeps named values encrypted at rest in a single local file.

Every value is sealed with AES-256-GCM (or ChaCha20-Poly1305) under the key
from ENCRYPTION_KEY or the config file, with a fresh nonce per write.

Examples:
  clienv set DB_PASS s3cr3t
  clienv get DB_PASS
  clienv list
  clienv search DB_ --path .env`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			Logger = logger.Logger{
				Verbose: verbose,
				Debug:   debug,
				Out:     cmd.ErrOrStderr(),
			}
			Logger.Debugf("Initializing %s with verbose=%t, debug=%t", cmd.CommandPath(), verbose, debug)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			if !ui.ColorDisabled() {
				banner := figure.NewColorFigure("clienv", "standard", "green", true)
				fmt.Fprintln(cmd.OutOrStdout(), banner.ColorString())
			}
			return cmd.Help()
		},
	}
)

func init() {
	RootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")
	RootCmd.PersistentFlags().BoolVarP(&debug, "debug", "d", false, "enable debug output")
	RootCmd.PersistentFlags().StringVar(&configPath, "config", "", "config file (default is <user config dir>/clienv/config.toml)")
	RootCmd.PersistentFlags().StringVar(&storeFile, "file", "", "backing file for stored variables (overrides store_path)")
	RootCmd.PersistentFlags().BoolVar(&discardCorrupt, "discard-corrupt", false, "start with an empty store if the backing file cannot be parsed")

	RootCmd.AddCommand(getCmd)
	RootCmd.AddCommand(setCmd)
	RootCmd.AddCommand(unsetCmd)
	RootCmd.AddCommand(listCmd)
	RootCmd.AddCommand(searchCmd)
	RootCmd.AddCommand(keygenCmd)
	RootCmd.AddCommand(logCmd)
}

// Execute runs the root command.
func Execute() error {
	return RootCmd.Execute()
}

// Helper functions for testing

// ResetGlobalState resets all global variables to their default values for testing.
func ResetGlobalState() {
	verbose = false
	debug = false
	configPath = ""
	storeFile = ""
	discardCorrupt = false
	resetGetCommandState()
	resetSetCommandState()
	resetSearchCommandState()
	resetKeygenCommandState()
	resetLogCommandState()
	resetFlagsChanged(RootCmd)
}

// resetFlagsChanged clears pflag's Changed marks so required-flag checks
// behave as on a fresh process.
func resetFlagsChanged(c *cobra.Command) {
	for _, fs := range []*pflag.FlagSet{c.Flags(), c.PersistentFlags()} {
		fs.VisitAll(func(f *pflag.Flag) { f.Changed = false })
	}
	for _, sub := range c.Commands() {
		resetFlagsChanged(sub)
	}
}
