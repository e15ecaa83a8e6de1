package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "config.toml"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.StartURL != DefaultStartURL {
		t.Errorf("StartURL = %q, want %q", cfg.StartURL, DefaultStartURL)
	}
	if !cfg.AutoRedirect || cfg.MaxRedirects != 5 {
		t.Errorf("unexpected defaults: %+v", cfg)
	}
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	data := `
start_url = "gemini://tlgs.one/"
auto_redirect = false
max_redirects = 2
cert_file = "/tmp/cert.pem"
key_file = "/tmp/key.pem"
log_file = "/tmp/capsule.log"
`
	if err := os.WriteFile(path, []byte(data), 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.StartURL != "gemini://tlgs.one/" {
		t.Errorf("StartURL = %q", cfg.StartURL)
	}
	if cfg.AutoRedirect {
		t.Error("auto_redirect = false was not applied")
	}
	if cfg.MaxRedirects != 2 {
		t.Errorf("MaxRedirects = %d", cfg.MaxRedirects)
	}
	if cfg.CertFile != "/tmp/cert.pem" || cfg.KeyFile != "/tmp/key.pem" {
		t.Errorf("certificate paths not applied: %+v", cfg)
	}
}

func TestLoadRejectsBadTOML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte("start_url = [not toml"), 0o600); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Error("expected a parse error")
	}
}

func TestKnownHostsPath(t *testing.T) {
	cfg := Default()
	if got := cfg.KnownHostsPath(); got != filepath.Join(Dir(), "known_hosts") {
		t.Errorf("KnownHostsPath() = %q", got)
	}

	cfg.KnownHosts = "/elsewhere/pins"
	if got := cfg.KnownHostsPath(); got != "/elsewhere/pins" {
		t.Errorf("KnownHostsPath() = %q", got)
	}
}
