package configs

import (
	"fmt"
	"os"

	kerrors "github.com/PolarWolf314/clienv/internal/errors"
	"github.com/PolarWolf314/clienv/internal/secrets"
	"github.com/PolarWolf314/clienv/internal/store"
)

// Environment variables that override the config file.
const (
	EnvEncryptionKey = "ENCRYPTION_KEY"
	EnvStorePath     = "CLIENV_STORE_PATH"
	EnvCipher        = "CLIENV_CIPHER"
	EnvAuditLog      = "CLIENV_AUDIT_LOG"
)

type Config struct {
	EncryptionKey string `toml:"encryption_key"`
	StorePath     string `toml:"store_path"`
	Cipher        string `toml:"cipher"`
	AuditLog      string `toml:"audit_log,omitempty"`
}

// Defaults returns a Config with no key, the default backing file and the
// default cipher. Auditing is off.
func Defaults() *Config {
	return &Config{
		StorePath: store.DefaultPath,
		Cipher:    string(secrets.DefaultCipher),
	}
}

// Load reads the TOML config at path, or DefaultConfigPath() if path is empty,
// then applies environment overrides. A missing file is not an error.
func Load(path string) (*Config, error) {
	cfg, err := LoadFile(path)
	if err != nil {
		return nil, err
	}
	cfg.ApplyEnv(os.LookupEnv)
	return cfg, nil
}

// LoadFile is Load without the environment overrides.
func LoadFile(path string) (*Config, error) {
	if path == "" {
		path = DefaultConfigPath()
	}

	cfg := Defaults()
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return cfg, nil
	}

	if err := LoadTOML(path, cfg); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", kerrors.ErrInvalidConfig, path, err)
	}

	// Explicitly empty values in the file fall back to defaults.
	if cfg.StorePath == "" {
		cfg.StorePath = store.DefaultPath
	}
	if cfg.Cipher == "" {
		cfg.Cipher = string(secrets.DefaultCipher)
	}

	return cfg, nil
}

// ApplyEnv overrides fields from non-empty environment variables.
func (c *Config) ApplyEnv(lookup func(string) (string, bool)) {
	if v, ok := lookup(EnvEncryptionKey); ok && v != "" {
		c.EncryptionKey = v
	}
	if v, ok := lookup(EnvStorePath); ok && v != "" {
		c.StorePath = v
	}
	if v, ok := lookup(EnvCipher); ok && v != "" {
		c.Cipher = v
	}
	if v, ok := lookup(EnvAuditLog); ok && v != "" {
		c.AuditLog = v
	}
}

// Save writes the config to path, or DefaultConfigPath() if path is empty.
func Save(path string, cfg *Config) error {
	if path == "" {
		path = DefaultConfigPath()
	}
	if err := SaveTOML(path, cfg); err != nil {
		return fmt.Errorf("failed to save config: %w", err)
	}
	return nil
}

// SecretKey parses the configured encryption key. It is read on every call
// rather than cached.
func (c *Config) SecretKey() (secrets.SecretKey, error) {
	key, err := secrets.ParseSecretKey(c.EncryptionKey)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", EnvEncryptionKey, err)
	}
	return key, nil
}

// ParsedCipher validates the configured cipher name.
func (c *Config) ParsedCipher() (secrets.Cipher, error) {
	return secrets.ParseCipher(c.Cipher)
}
