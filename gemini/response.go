package gemini

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"net/url"
	"strings"
	"unicode/utf8"
)

// MaxBodySize caps how much of a reply body is ever read. The cap exists
// to bound memory against hostile or broken servers, it is not negotiated.
const MaxBodySize = 8 << 20

// Response is one classified Gemini reply. The Code determines which of
// the variant fields are meaningful; exactly one category applies.
type Response struct {
	Code Code

	// Input (1x)
	Sensitive bool
	Prompt    string

	// Success (2x)
	MIME string
	Body []byte

	// Redirect (3x)
	Permanent bool
	Target    *url.URL

	// Failure and certificate-error categories (4x, 5x, 6x).
	// Trimmed; empty means the server sent no message.
	Message string
}

// Category returns the response category. The code is always valid on a
// Response produced by this package.
func (r *Response) Category() Category {
	cat, _ := r.Code.Category()
	return cat
}

// readResponse reads the status token and the capped remainder from the
// wire and classifies it. The reader is consumed; the caller owns closing
// the underlying connection.
func readResponse(r io.Reader) (*Response, error) {
	br := bufio.NewReader(r)

	// The status token is a fixed shape: two digits and one space.
	tok := make([]byte, 3)
	if _, err := io.ReadFull(br, tok); err != nil {
		return nil, fmt.Errorf("%w: reading status: %v", ErrTransport, err)
	}
	if tok[0] < '0' || tok[0] > '9' || tok[1] < '0' || tok[1] > '9' || tok[2] != ' ' {
		return nil, fmt.Errorf("%w: malformed status token %q", ErrProtocol, tok)
	}
	code := Code((tok[0]-'0')*10 + (tok[1] - '0'))

	body, err := io.ReadAll(io.LimitReader(br, MaxBodySize))
	if err != nil {
		return nil, fmt.Errorf("%w: reading body: %v", ErrTransport, err)
	}

	return classify(code, body)
}

// classify maps a status code plus the raw remainder onto a Response
// variant. It is the only place response categories are decided.
func classify(code Code, body []byte) (*Response, error) {
	cat, ok := code.Category()
	if !ok {
		// A known category with an unlisted sub-code is still fatal, it
		// just gets a more specific message than a wild leading digit.
		if d := int(code) / 10; d >= 1 && d <= 6 {
			return nil, fmt.Errorf("%w: unknown status %d", ErrProtocol, int(code))
		}
		return nil, fmt.Errorf("%w: invalid response code %d", ErrProtocol, int(code))
	}

	switch cat {
	case CategoryInput:
		prompt, err := decodeText(body)
		if err != nil {
			return nil, err
		}
		return &Response{
			Code:      code,
			Sensitive: code == CodeSensitiveInput,
			Prompt:    strings.TrimSpace(prompt),
		}, nil

	case CategorySuccess:
		header := body
		var rest []byte
		if i := bytes.IndexByte(body, '\n'); i >= 0 {
			header, rest = body[:i], body[i+1:]
		}
		mime, err := decodeText(header)
		if err != nil {
			return nil, err
		}
		return &Response{
			Code: code,
			MIME: strings.TrimSpace(mime),
			Body: rest,
		}, nil

	case CategoryRedirect:
		raw, err := decodeText(body)
		if err != nil {
			return nil, err
		}
		target, err := url.Parse(strings.TrimSpace(raw))
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrResolve, err)
		}
		if target.Scheme == "" || target.Host == "" {
			return nil, fmt.Errorf("%w: redirect target %q is not absolute", ErrResolve, strings.TrimSpace(raw))
		}
		return &Response{
			Code:      code,
			Permanent: code == CodeRedirectPermanent,
			Target:    target,
		}, nil

	default: // failure and certificate-error categories
		msg, err := decodeText(body)
		if err != nil {
			return nil, err
		}
		return &Response{
			Code:    code,
			Message: strings.TrimSpace(msg),
		}, nil
	}
}

// decodeText converts response bytes that must be text, rejecting
// invalid UTF-8 rather than replacing it.
func decodeText(b []byte) (string, error) {
	if !utf8.Valid(b) {
		return "", ErrEncoding
	}
	return string(b), nil
}
