package gemini

import "errors"

// Error taxonomy for a single request. Callers match with errors.Is;
// wrapped errors carry the underlying detail.
var (
	// ErrScheme is returned for any address whose scheme is not "gemini".
	ErrScheme = errors.New("gemini: unsupported scheme")

	// ErrAddress is returned for an address lacking a host.
	ErrAddress = errors.New("gemini: address has no host")

	// ErrTransport covers dial, handshake and IO failures.
	ErrTransport = errors.New("gemini: transport failure")

	// ErrProtocol covers an unknown status code or malformed response header.
	ErrProtocol = errors.New("gemini: protocol violation")

	// ErrEncoding is returned when response text is not valid UTF-8.
	ErrEncoding = errors.New("gemini: response text is not valid utf-8")

	// ErrResolve is returned when an embedded address fails to parse.
	ErrResolve = errors.New("gemini: malformed address in response")

	// ErrRedirectLoop is returned when auto-following exceeds the hop cap.
	ErrRedirectLoop = errors.New("gemini: too many redirects")

	// ErrCertMismatch is returned when a server presents a key that does
	// not match the one pinned on first use.
	ErrCertMismatch = errors.New("gemini: server key does not match pinned key")
)
