// Package config locates and loads the capsule configuration.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"github.com/BurntSushi/toml"
)

// DefaultStartURL is the home capsule opened when none is configured.
const DefaultStartURL = "gemini://geminiprotocol.net/"

// Config is the on-disk configuration, read from config.toml in Dir().
type Config struct {
	// StartURL is the address loaded at startup.
	StartURL string `toml:"start_url"`

	// AutoRedirect makes the client follow 3x replies transparently.
	AutoRedirect bool `toml:"auto_redirect"`

	// MaxRedirects caps an auto-followed redirect chain.
	MaxRedirects int `toml:"max_redirects"`

	// CertFile and KeyFile optionally hold a client certificate
	// presented to servers that require one.
	CertFile string `toml:"cert_file"`
	KeyFile  string `toml:"key_file"`

	// KnownHosts is the trust-on-first-use pin file. Empty selects
	// known_hosts under Dir().
	KnownHosts string `toml:"known_hosts"`

	// LogFile enables debug logging when set. The terminal belongs to
	// the UI, so logs only ever go to a file.
	LogFile string `toml:"log_file"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		StartURL:     DefaultStartURL,
		AutoRedirect: true,
		MaxRedirects: 5,
	}
}

// Dir returns the capsule configuration directory.
// Respects XDG_CONFIG_HOME on Unix, APPDATA on Windows.
func Dir() string {
	var base string

	if runtime.GOOS == "windows" {
		base = os.Getenv("APPDATA")
		if base == "" {
			base = filepath.Join(os.Getenv("USERPROFILE"), "AppData", "Roaming")
		}
	} else {
		base = os.Getenv("XDG_CONFIG_HOME")
		if base == "" {
			home, _ := os.UserHomeDir()
			base = filepath.Join(home, ".config")
		}
	}

	return filepath.Join(base, "capsule")
}

// File returns the path to config.toml.
func File() string {
	return filepath.Join(Dir(), "config.toml")
}

// Load reads the configuration at path, falling back to defaults for a
// missing file and for any field left unset.
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, err
	}

	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing %s: %w", path, err)
	}
	if cfg.StartURL == "" {
		cfg.StartURL = DefaultStartURL
	}
	if cfg.MaxRedirects <= 0 {
		cfg.MaxRedirects = Default().MaxRedirects
	}
	return cfg, nil
}

// KnownHostsPath resolves the pin file location.
func (c Config) KnownHostsPath() string {
	if c.KnownHosts != "" {
		return c.KnownHosts
	}
	return filepath.Join(Dir(), "known_hosts")
}
