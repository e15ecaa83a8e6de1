// Package gemtext parses the line-oriented text/gemini markup into
// classified lines: plain text, links and preformatted text.
package gemtext

import (
	"fmt"
	"net/url"
	"strings"
	"unicode"
	"unicode/utf8"
)

const (
	linkMarker  = "=>"
	fenceMarker = "```"
)

// LineType classifies one parsed line.
type LineType int

const (
	TypeText LineType = iota
	TypeLink
	TypePreformatted
)

// Line is one classified line of a document.
type Line struct {
	Type LineType

	// Text holds the verbatim text for TypeText, the remainder of the
	// fence line for TypePreformatted, and the label for TypeLink.
	Text string

	// URL is the link target, set for TypeLink only.
	URL *url.URL
}

// Parser walks a document one line at a time. A parse error covers that
// line only; the parser stays usable for the lines after it.
type Parser struct {
	rest string
	base *url.URL
}

// NewParser creates a parser over raw text. Relative link targets are
// resolved against base.
func NewParser(raw string, base *url.URL) *Parser {
	return &Parser{rest: raw, base: base}
}

// More reports whether any input remains. A document ending in a single
// trailing newline produces no extra empty line.
func (p *Parser) More() bool {
	return p.rest != ""
}

// Next consumes and classifies exactly one line.
func (p *Parser) Next() (Line, error) {
	line, rest, found := strings.Cut(p.rest, "\n")
	if found {
		p.rest = rest
	} else {
		p.rest = ""
	}

	if target, ok := strings.CutPrefix(line, linkMarker); ok {
		return p.parseLink(target)
	}
	if pre, ok := strings.CutPrefix(line, fenceMarker); ok {
		// The fence classifies this line only; it does not open a
		// block spanning the lines after it.
		return Line{Type: TypePreformatted, Text: pre}, nil
	}
	return Line{Type: TypeText, Text: line}, nil
}

// parseLink splits a link line at the first whitespace into target and
// label. Targets without a scheme separator resolve against the base.
func (p *Parser) parseLink(s string) (Line, error) {
	target := strings.TrimSpace(s)
	var label string
	if i := strings.IndexFunc(target, unicode.IsSpace); i >= 0 {
		_, size := utf8.DecodeRuneInString(target[i:])
		target, label = target[:i], target[i+size:]
	}

	var (
		u   *url.URL
		err error
	)
	if !strings.Contains(target, "://") {
		u, err = p.base.Parse(target)
	} else {
		u, err = url.Parse(target)
	}
	if err != nil {
		return Line{}, fmt.Errorf("gemtext: bad link target %q: %w", target, err)
	}
	return Line{Type: TypeLink, Text: label, URL: u}, nil
}

// Lines parses the whole document, skipping lines that fail to parse.
func Lines(raw string, base *url.URL) []Line {
	var lines []Line
	p := NewParser(raw, base)
	for p.More() {
		line, err := p.Next()
		if err != nil {
			continue
		}
		lines = append(lines, line)
	}
	return lines
}

// Links returns the link lines of a document in document order.
func Links(raw string, base *url.URL) []Line {
	var links []Line
	for _, line := range Lines(raw, base) {
		if line.Type == TypeLink {
			links = append(links, line)
		}
	}
	return links
}
