package gemini

import (
	"bufio"
	"crypto/sha256"
	"crypto/x509"
	"encoding/hex"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"sync"

	lru "github.com/hashicorp/golang-lru/v2"
)

// pinCacheSize bounds the in-memory pin cache. Old pins fall out of the
// cache but survive in the known-hosts file when persistence is enabled.
const pinCacheSize = 512

// PinStore implements trust-on-first-use: the first key a host presents
// is pinned, and every later handshake must present the same key.
// Pins are keyed by host:port and hold the SHA-256 of the leaf
// certificate's SubjectPublicKeyInfo.
type PinStore struct {
	mu     sync.Mutex
	pins   *lru.Cache[string, string]
	path   string // known-hosts file, empty disables persistence
	logger *slog.Logger
}

// NewPinStore creates a pin store. If path is non-empty, existing pins
// are loaded from it and new pins are appended to it.
func NewPinStore(path string, logger *slog.Logger) (*PinStore, error) {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	cache, err := lru.New[string, string](pinCacheSize)
	if err != nil {
		return nil, err
	}
	s := &PinStore{pins: cache, path: path, logger: logger}
	if path != "" {
		if err := s.load(); err != nil {
			return nil, fmt.Errorf("loading known hosts: %w", err)
		}
	}
	return s, nil
}

// Verify pins the fingerprint on first contact with addr and fails
// closed on any later mismatch.
func (s *PinStore) Verify(addr, fingerprint string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if pinned, ok := s.pins.Get(addr); ok {
		if pinned != fingerprint {
			s.logger.Warn("pinned key mismatch", "addr", addr, "pinned", pinned, "presented", fingerprint)
			return fmt.Errorf("%w: %s", ErrCertMismatch, addr)
		}
		return nil
	}

	s.pins.Add(addr, fingerprint)
	s.logger.Info("pinned new host key", "addr", addr, "fingerprint", fingerprint)
	if s.path != "" {
		if err := s.append(addr, fingerprint); err != nil {
			s.logger.Warn("persisting pin failed", "addr", addr, "error", err)
		}
	}
	return nil
}

// verifyPeer is the tls.Config VerifyPeerCertificate hook for addr.
func (s *PinStore) verifyPeer(addr string) func(rawCerts [][]byte, _ [][]*x509.Certificate) error {
	return func(rawCerts [][]byte, _ [][]*x509.Certificate) error {
		if len(rawCerts) == 0 {
			return fmt.Errorf("%w: server presented no certificate", ErrTransport)
		}
		leaf, err := x509.ParseCertificate(rawCerts[0])
		if err != nil {
			return fmt.Errorf("%w: parsing server certificate: %v", ErrTransport, err)
		}
		return s.Verify(addr, Fingerprint(leaf))
	}
}

// Fingerprint returns the hex SHA-256 of the certificate's public key.
func Fingerprint(cert *x509.Certificate) string {
	sum := sha256.Sum256(cert.RawSubjectPublicKeyInfo)
	return hex.EncodeToString(sum[:])
}

func (s *PinStore) load() error {
	f, err := os.Open(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}
	defer f.Close()

	sc := bufio.NewScanner(f)
	for sc.Scan() {
		addr, fp, ok := strings.Cut(strings.TrimSpace(sc.Text()), " ")
		if !ok || addr == "" || fp == "" {
			continue
		}
		s.pins.Add(addr, fp)
	}
	return sc.Err()
}

func (s *PinStore) append(addr, fingerprint string) error {
	f, err := os.OpenFile(s.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o600)
	if err != nil {
		return err
	}
	defer f.Close()
	_, err = fmt.Fprintf(f, "%s %s\n", addr, fingerprint)
	return err
}
