package cmd

import (
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/PolarWolf314/clienv/internal/configs"
	kerrors "github.com/PolarWolf314/clienv/internal/errors"
	"github.com/PolarWolf314/clienv/internal/store"
	"github.com/PolarWolf314/clienv/internal/ui"

	"github.com/briandowns/spinner"
	"github.com/spf13/cobra"
)

// startSpinner creates and starts a spinner on stderr with the given message
// when not in verbose or debug mode. Returns the spinner and a function that
// should be deferred to clean up.
//
// The cleanup function prints FinalMSG to out after stopping the spinner, so
// FinalMSG values do NOT need trailing newlines. Calling it more than once is
// a no-op.
func startSpinner(out io.Writer, message string) (*spinner.Spinner, func()) {
	Logger.Debugf("Starting spinner with message: %s", message)
	s := spinner.New(spinner.CharSets[14], 100*time.Millisecond, spinner.WithWriter(os.Stderr))
	s.Suffix = " " + message

	if err := s.Color("cyan"); err != nil {
		Logger.Warnf("Failed to set spinner color: %v", err)
	}

	quiet := !verbose && !debug
	if quiet {
		s.Start()
	} else {
		Logger.Infof("Running in verbose or debug mode: %s", message)
	}

	done := false
	cleanup := func() {
		if done {
			return
		}
		done = true

		finalMsg := ""
		if s.FinalMSG != "" {
			finalMsg = ui.EnsureNewline(s.FinalMSG)
			// Clear FinalMSG so s.Stop() doesn't print it.
			s.FinalMSG = ""
		}

		if quiet {
			s.Stop()
		}

		if finalMsg != "" {
			fmt.Fprint(out, finalMsg)
		}
	}

	return s, cleanup
}

// loadConfig resolves settings from the config file, the environment and
// the persistent flags, in increasing order of precedence.
func loadConfig() (*configs.Config, error) {
	path := configPath
	if path == "" {
		path = configs.DefaultConfigPath()
	}
	Logger.Debugf("Loading config from %s", path)

	cfg, err := configs.Load(path)
	if err != nil {
		return nil, err
	}

	if storeFile != "" {
		cfg.StorePath = storeFile
	}
	Logger.Debugf("Using store %s with cipher %s", cfg.StorePath, cfg.Cipher)

	return cfg, nil
}

// openStore opens the backing file named by cfg.
func openStore(cfg *configs.Config) (*store.Store, error) {
	c, err := cfg.ParsedCipher()
	if err != nil {
		return nil, err
	}

	return store.Open(store.NewFileBackend(cfg.StorePath), store.Options{
		Cipher:         c,
		DiscardCorrupt: discardCorrupt,
		Logger:         Logger,
	})
}

// formatError turns an error into the message shown to the user.
func formatError(err error) string {
	switch {
	case errors.Is(err, kerrors.ErrKeyNotFound):
		return ui.Error.Sprint("✗") + " No encryption key configured\n" +
			ui.Info.Sprint("→") + " Set " + ui.Code.Sprint(configs.EnvEncryptionKey) + " or run " + ui.Code.Sprint("clienv keygen --save")

	case errors.Is(err, kerrors.ErrInvalidKeyLength):
		return ui.Error.Sprint("✗") + " " + err.Error() + "\n" +
			ui.Info.Sprint("→") + " The key must be 32 bytes: 32 characters, or " +
			ui.Code.Sprint("base64:") + "/" + ui.Code.Sprint("hex:") + " encoded"

	case errors.Is(err, kerrors.ErrAuthenticationFailed):
		return ui.Error.Sprint("✗") + " " + err.Error() + "\n" +
			ui.Info.Sprint("→") + " The encryption key is wrong, or the store file was modified"

	case errors.Is(err, kerrors.ErrMalformedEnvelope):
		return ui.Error.Sprint("✗") + " " + err.Error() + "\n" +
			ui.Info.Sprint("→") + " The stored entry is damaged. Overwrite it with " + ui.Code.Sprint("clienv set")

	case errors.Is(err, kerrors.ErrCorruptStore):
		return ui.Error.Sprint("✗") + " " + err.Error() + "\n" +
			ui.Info.Sprint("→") + " Fix the file, or pass " + ui.Flag.Sprint("--discard-corrupt") + " to start over"

	case errors.Is(err, kerrors.ErrStoreUnreadable):
		return ui.Error.Sprint("✗") + " " + err.Error() + "\n" +
			ui.Info.Sprint("→") + " Check the permissions of the store file. " + ui.Flag.Sprint("--discard-corrupt") + " does not apply"

	case errors.Is(err, kerrors.ErrInvalidValue):
		return ui.Error.Sprint("✗") + " " + err.Error() + "\n" +
			ui.Info.Sprint("→") + " Encode binary data first, for example with " + ui.Code.Sprint("base64")

	case errors.Is(err, kerrors.ErrPersistFailed):
		return ui.Error.Sprint("✗") + " " + err.Error() + "\n" +
			ui.Info.Sprint("→") + " No changes were saved"

	case errors.Is(err, kerrors.ErrInvalidCipher),
		errors.Is(err, kerrors.ErrInvalidConfig),
		errors.Is(err, kerrors.ErrInvalidName),
		errors.Is(err, kerrors.ErrInvalidDateFormat),
		errors.Is(err, kerrors.ErrFileNotFound),
		errors.Is(err, kerrors.ErrNoFilesFound):
		return ui.Error.Sprint("✗") + " " + err.Error()

	case errors.Is(err, kerrors.ErrAuditDisabled):
		return ui.Error.Sprint("✗") + " " + err.Error() + "\n" +
			ui.Info.Sprint("→") + " Set " + ui.Code.Sprint("audit_log") + " in the config or " + ui.Code.Sprint(configs.EnvAuditLog)

	default:
		return ui.Error.Sprint("✗") + " " + err.Error()
	}
}

// reportError prints the user-facing message for err to the command's
// stderr and returns an ExitError so the process exits non-zero without
// printing the error again.
func reportError(cmd *cobra.Command, err error) error {
	Logger.Errorf("%v", err)
	fmt.Fprint(cmd.ErrOrStderr(), ui.EnsureNewline(formatError(err)))
	return &ExitError{Code: ExitFailure, Err: err, Reported: true}
}
