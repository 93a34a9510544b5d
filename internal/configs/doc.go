// Package configs loads clienv configuration.
//
// Configuration is a TOML file, by default at
// <user config dir>/clienv/config.toml:
//
//	encryption_key = "base64:..."
//	store_path     = "env_vars.json"
//	cipher         = "aes-256-gcm"
//	audit_log      = ""
//
// Environment variables override file values:
//
//   - ENCRYPTION_KEY
//   - CLIENV_STORE_PATH
//   - CLIENV_CIPHER
//   - CLIENV_AUDIT_LOG
//
// Command-line flags override both. The encryption key may be a raw
// 32-character string or a base64:/hex: encoding of 32 bytes.
package configs
