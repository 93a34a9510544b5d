package cmd

import (
	"fmt"

	"github.com/PolarWolf314/clienv/internal/configs"
	"github.com/PolarWolf314/clienv/internal/secrets"
	"github.com/PolarWolf314/clienv/internal/ui"

	"github.com/spf13/cobra"
)

var (
	keygenSave  bool
	keygenForce bool
)

func init() {
	keygenCmd.Flags().BoolVar(&keygenSave, "save", false, "write the key to the config file")
	keygenCmd.Flags().BoolVarP(&keygenForce, "force", "f", false, "with --save, replace an existing key")
}

// resetKeygenCommandState resets the keygen command's global state for testing.
func resetKeygenCommandState() {
	keygenSave = false
	keygenForce = false
}

var keygenCmd = &cobra.Command{
	Use:   "keygen",
	Short: "Generate a random encryption key",
	Long: `Generates a random 32-byte key and prints it in base64: form, ready
for ENCRYPTION_KEY or the encryption_key config setting.

With --save the key is written to the config file instead. An existing key
is kept unless --force is given, because values stored under it would no
longer decrypt.`,
	Args: cobra.NoArgs,
	RunE: runKeygen,
}

func runKeygen(cmd *cobra.Command, args []string) error {
	key, err := secrets.GenerateSecretKey()
	if err != nil {
		return reportError(cmd, err)
	}

	if !keygenSave {
		fmt.Fprintln(cmd.OutOrStdout(), key.String())
		return nil
	}

	path := configPath
	if path == "" {
		path = configs.DefaultConfigPath()
	}

	// Only the file is rewritten, so environment overrides must not leak into it.
	cfg, err := configs.LoadFile(path)
	if err != nil {
		return reportError(cmd, err)
	}

	if cfg.EncryptionKey != "" && !keygenForce {
		fmt.Fprintln(cmd.ErrOrStderr(), ui.Lines(
			ui.Error.Sprint("✗")+" "+ui.Path.Sprint(path)+" already has an encryption key",
			ui.Info.Sprint("→")+" Values stored under it would no longer decrypt. Use "+ui.Flag.Sprint("--force")+" to replace it",
		))
		return &ExitError{Code: ExitFailure, Err: fmt.Errorf("encryption key already configured"), Reported: true}
	}

	replaced := cfg.EncryptionKey != ""
	cfg.EncryptionKey = key.String()
	if err := configs.Save(path, cfg); err != nil {
		return reportError(cmd, err)
	}

	if replaced {
		fmt.Fprintln(cmd.ErrOrStderr(), ui.Warning.Sprintf("⚠ Replaced the previous key in %s. Values stored under it no longer decrypt.", path))
	}

	Logger.Infof("Saved key to %s", path)
	fmt.Fprintln(cmd.OutOrStdout(), ui.Success.Sprint("✓")+" Saved a new encryption key to "+ui.Path.Sprint(path))
	return nil
}
