package gemini

import (
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/url"
)

// DefaultPort is used when the address carries no explicit port.
const DefaultPort = "1965"

// DefaultMaxRedirects caps auto-followed redirect chains.
const DefaultMaxRedirects = 5

// Options configures a Client.
type Options struct {
	// AutoRedirect makes Request transparently follow 3x replies.
	AutoRedirect bool

	// MaxRedirects caps the auto-follow chain. Zero means
	// DefaultMaxRedirects.
	MaxRedirects int

	// Certificate is an optional client identity presented to servers.
	Certificate *tls.Certificate

	// Pins is the trust-on-first-use store. A memory-only store is
	// created when nil.
	Pins *PinStore

	Logger *slog.Logger
}

// Client issues Gemini requests. Each call opens one dedicated TLS
// connection; there is no reuse and no pipelining. The TLS configuration
// is immutable and shared across sequential requests.
type Client struct {
	tlsBase      *tls.Config
	pins         *PinStore
	autoRedirect bool
	maxRedirects int
	logger       *slog.Logger
}

// New creates a Client from opts.
func New(opts Options) *Client {
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	pins := opts.Pins
	if pins == nil {
		// NewPinStore only fails on a bad persistence file; with no
		// path it cannot.
		pins, _ = NewPinStore("", logger)
	}
	maxRedirects := opts.MaxRedirects
	if maxRedirects <= 0 {
		maxRedirects = DefaultMaxRedirects
	}
	base := &tls.Config{
		MinVersion: tls.VersionTLS12,
		// Chain verification is disabled on purpose: trust comes from
		// the per-host key pin checked in VerifyPeerCertificate.
		InsecureSkipVerify: true,
	}
	if opts.Certificate != nil {
		base.Certificates = []tls.Certificate{*opts.Certificate}
	}
	return &Client{
		tlsBase:      base,
		pins:         pins,
		autoRedirect: opts.AutoRedirect,
		maxRedirects: maxRedirects,
		logger:       logger,
	}
}

// Request performs one Gemini request for u and classifies the reply.
// It never returns a partial value: the response is nil whenever the
// error is non-nil.
func (c *Client) Request(ctx context.Context, u *url.URL) (*Response, error) {
	return c.request(ctx, u, 0)
}

func (c *Client) request(ctx context.Context, u *url.URL, hops int) (*Response, error) {
	if u.Scheme != "gemini" {
		return nil, fmt.Errorf("%w: %q", ErrScheme, u.Scheme)
	}
	if u.Hostname() == "" {
		return nil, fmt.Errorf("%w: %q", ErrAddress, u.String())
	}

	req := *u
	if req.Path == "" {
		req.Path = "/"
	}
	port := req.Port()
	if port == "" {
		port = DefaultPort
	}
	addr := net.JoinHostPort(req.Hostname(), port)

	conf := c.tlsBase.Clone()
	conf.ServerName = req.Hostname()
	conf.VerifyPeerCertificate = c.pins.verifyPeer(addr)

	c.logger.Debug("request", "url", req.String(), "addr", addr, "hops", hops)

	dialer := tls.Dialer{Config: conf}
	conn, err := dialer.DialContext(ctx, "tcp", addr)
	if err != nil {
		if errors.Is(err, ErrCertMismatch) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: dialing %s: %v", ErrTransport, addr, err)
	}
	defer conn.Close()

	if _, err := conn.Write([]byte(req.String() + "\r\n")); err != nil {
		return nil, fmt.Errorf("%w: writing request: %v", ErrTransport, err)
	}

	resp, err := readResponse(conn)
	if err != nil {
		return nil, err
	}
	c.logger.Debug("response", "url", req.String(), "status", resp.Code.String())

	if resp.Category() == CategoryRedirect && c.autoRedirect {
		if hops >= c.maxRedirects {
			return nil, fmt.Errorf("%w: %d hops from %s", ErrRedirectLoop, hops, u.String())
		}
		return c.request(ctx, resp.Target, hops+1)
	}
	return resp, nil
}
