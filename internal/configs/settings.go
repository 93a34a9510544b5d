package configs

import (
	"os"
	"path/filepath"

	"github.com/PolarWolf314/clienv/internal/utils"
)

type UserSettings struct {
	UserConfigsPath string
	Username        string
}

var UserClienvSettings *UserSettings

func init() {
	UserClienvSettings = DetectUserSettings()
}

// DetectUserSettings resolves the per-user config directory. It falls back to
// the working directory when no config or home directory is available, so
// the CLI still works in stripped-down containers.
func DetectUserSettings() *UserSettings {
	configDir, err := os.UserConfigDir()
	if err != nil {
		configDir = "."
	}

	username, err := utils.GetUsername()
	if err != nil {
		username = "unknown"
	}

	return &UserSettings{
		UserConfigsPath: filepath.Join(configDir, "clienv"),
		Username:        username,
	}
}

// DefaultConfigPath is where Load looks when no path is given.
func DefaultConfigPath() string {
	return filepath.Join(UserClienvSettings.UserConfigsPath, "config.toml")
}
