// Package content classifies a MIME type plus raw bytes into a typed
// page body: decoded text for the text family, untouched bytes for
// everything else.
package content

import (
	"errors"
	"strings"
	"unicode/utf8"
)

// textPrefix marks the MIME family that is decoded to text.
const textPrefix = "text/"

// ErrEncoding is returned when a text-family body is not valid UTF-8.
var ErrEncoding = errors.New("content: body is not valid utf-8")

// Content is a page body paired with its MIME type. Exactly one of Text
// and Data is populated, selected by IsText.
type Content struct {
	MIME   string
	IsText bool
	Text   string // decoded body, IsText only
	Data   []byte // byte-for-byte as received, binary only
}

// From classifies mime and body. Text-family MIME with valid UTF-8
// yields a text body equal to that decoding; any other MIME keeps the
// bytes unchanged. The classification is total and deterministic.
func From(mime string, body []byte) (*Content, error) {
	if strings.HasPrefix(mime, textPrefix) {
		if !utf8.Valid(body) {
			return nil, ErrEncoding
		}
		return &Content{MIME: mime, IsText: true, Text: string(body)}, nil
	}
	return &Content{MIME: mime, Data: body}, nil
}

// Plain wraps already-decoded text as a text/plain pseudo-page.
func Plain(text string) *Content {
	return &Content{MIME: "text/plain", IsText: true, Text: text}
}

// Gemtext reports whether the content is a text/gemini document.
func (c *Content) Gemtext() bool {
	return c.IsText && strings.HasPrefix(c.MIME, "text/gemini")
}
