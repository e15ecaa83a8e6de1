package session

import "net/url"

// History is the back/forward stack of visited addresses. It is never
// empty and the cursor always points at a valid entry. There is no
// deduplication and no length cap; growth is bounded by session
// lifetime.
type History struct {
	entries []*url.URL
	pos     int
}

// NewHistory creates a history holding only start.
func NewHistory(start *url.URL) *History {
	return &History{entries: []*url.URL{start}}
}

// Current returns the address under the cursor.
func (h *History) Current() *url.URL {
	return h.entries[h.pos]
}

// Push discards every entry ahead of the cursor, appends u and moves
// the cursor onto it. Navigating from a back state erases the abandoned
// forward branch, as in browser back/forward stacks.
func (h *History) Push(u *url.URL) {
	h.entries = append(h.entries[:h.pos+1], u)
	h.pos = len(h.entries) - 1
}

// Back moves the cursor one entry back; no-op at the first entry.
func (h *History) Back() {
	if h.pos > 0 {
		h.pos--
	}
}

// Advance moves the cursor one entry forward; no-op at the last entry.
func (h *History) Advance() {
	if h.pos < len(h.entries)-1 {
		h.pos++
	}
}

// Len returns the number of entries.
func (h *History) Len() int {
	return len(h.entries)
}
