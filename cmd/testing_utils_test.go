package cmd

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"
)

const testKey = "test_encryption_key_32_bytes_ok!"

// testEnv points clienv at a private config and store under a temp dir.
type testEnv struct {
	dir        string
	configPath string
	storePath  string
}

// setupTestEnvironment isolates a test from the user's config, store and
// environment. The key is taken from ENCRYPTION_KEY.
func setupTestEnvironment(t *testing.T) *testEnv {
	t.Helper()
	dir := t.TempDir()

	t.Setenv("NO_COLOR", "1")
	t.Setenv("ENCRYPTION_KEY", testKey)
	t.Setenv("CLIENV_STORE_PATH", "")
	t.Setenv("CLIENV_CIPHER", "")
	t.Setenv("CLIENV_AUDIT_LOG", "")

	t.Cleanup(ResetGlobalState)

	return &testEnv{
		dir:        dir,
		configPath: filepath.Join(dir, "config.toml"),
		storePath:  filepath.Join(dir, "env_vars.json"),
	}
}

// run executes clienv with args against the test environment and returns
// what was written to stdout and stderr.
func (e *testEnv) run(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	return e.runWithInput(t, "", args...)
}

// runWithInput is run with stdin set to input.
func (e *testEnv) runWithInput(t *testing.T, input string, args ...string) (string, string, error) {
	t.Helper()
	ResetGlobalState()

	var stdout, stderr bytes.Buffer
	RootCmd.SetOut(&stdout)
	RootCmd.SetErr(&stderr)
	RootCmd.SetIn(strings.NewReader(input))
	defer func() {
		RootCmd.SetOut(nil)
		RootCmd.SetErr(nil)
		RootCmd.SetIn(nil)
	}()

	full := append([]string{"--config", e.configPath, "--file", e.storePath}, args...)
	RootCmd.SetArgs(full)

	err := RootCmd.Execute()
	return stdout.String(), stderr.String(), err
}

// mustRun fails the test if the command does not succeed.
func (e *testEnv) mustRun(t *testing.T, args ...string) string {
	t.Helper()
	stdout, stderr, err := e.run(t, args...)
	if err != nil {
		t.Fatalf("clienv %s failed: %v\nstderr: %s", strings.Join(args, " "), err, stderr)
	}
	return stdout
}
