package gemini

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestPinStoreFirstUseThenMismatch(t *testing.T) {
	s, err := NewPinStore("", nil)
	require.NoError(t, err)

	require.NoError(t, s.Verify("host:1965", "aaaa"))
	require.NoError(t, s.Verify("host:1965", "aaaa"))
	require.ErrorIs(t, s.Verify("host:1965", "bbbb"), ErrCertMismatch)

	// A different address is an independent pin.
	require.NoError(t, s.Verify("other:1965", "bbbb"))
}

func TestPinStorePersistence(t *testing.T) {
	path := filepath.Join(t.TempDir(), "known_hosts")

	s, err := NewPinStore(path, nil)
	require.NoError(t, err)
	require.NoError(t, s.Verify("host:1965", "aaaa"))

	// A fresh store over the same file sees the pin.
	s2, err := NewPinStore(path, nil)
	require.NoError(t, err)
	require.NoError(t, s2.Verify("host:1965", "aaaa"))
	require.ErrorIs(t, s2.Verify("host:1965", "bbbb"), ErrCertMismatch)
}

func TestPinStoreIgnoresMalformedLines(t *testing.T) {
	path := filepath.Join(t.TempDir(), "known_hosts")
	require.NoError(t, os.WriteFile(path, []byte("\ngarbage\nhost:1965 aaaa\n  \n"), 0o600))

	s, err := NewPinStore(path, nil)
	require.NoError(t, err)
	require.ErrorIs(t, s.Verify("host:1965", "bbbb"), ErrCertMismatch)
}

func TestPinStoreMissingFileIsFine(t *testing.T) {
	path := filepath.Join(t.TempDir(), "does", "not", "exist")
	_, err := NewPinStore(filepath.Join(path, "known_hosts"), nil)
	require.NoError(t, err)
}
