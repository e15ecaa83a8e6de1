// Package session owns the browsing state machine: the navigation
// history, the current content and the transitions between loading,
// browsing and the two text-entry modes. The display layer reads the
// exposed state and feeds discrete commands in; all mutation happens
// inside explicit transitions here.
package session

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"strconv"
	"strings"

	"github.com/drake/capsule/content"
	"github.com/drake/capsule/event"
	"github.com/drake/capsule/gemini"
	"github.com/drake/capsule/gemtext"
)

// Status is the session state tag. Exactly one is active at a time.
type Status int

const (
	StatusLoading Status = iota
	StatusBrowsing
	StatusTyping        // user is entering an address or link number
	StatusAwaitingInput // user is answering a server input prompt
)

func (s Status) String() string {
	switch s {
	case StatusLoading:
		return "Loading"
	case StatusBrowsing:
		return "Browsing"
	case StatusTyping:
		return "Typing"
	case StatusAwaitingInput:
		return "Input"
	}
	return "Unknown"
}

// Action tells the display layer what a command produced.
type Action int

const (
	ActionNone Action = iota
	ActionLoad        // the caller must run Fetch and feed the result to Apply
	ActionQuit
)

// Requester issues one protocol request. *gemini.Client implements it.
type Requester interface {
	Request(ctx context.Context, u *url.URL) (*gemini.Response, error)
}

// Session drives one browsing session. It exclusively owns its History
// and Content; nothing mutates them outside Handle and Apply.
type Session struct {
	client Requester
	nav    *History
	logger *slog.Logger

	status Status
	buffer string
	page   *content.Content
	lines  []gemtext.Line
	scroll int
	notice string
}

// New creates a session pointed at start. The session begins in
// Loading; the caller must perform the initial Fetch/Apply round.
func New(client Requester, start *url.URL, logger *slog.Logger) *Session {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Session{
		client: client,
		nav:    NewHistory(start),
		logger: logger,
		status: StatusLoading,
	}
}

// Status returns the active state tag.
func (s *Session) Status() Status { return s.status }

// Buffer returns the text-entry buffer for Typing and AwaitingInput.
func (s *Session) Buffer() string { return s.buffer }

// Current returns the address under the history cursor.
func (s *Session) Current() *url.URL { return s.nav.Current() }

// Content returns the current page, nil while loading.
func (s *Session) Content() *content.Content { return s.page }

// Lines returns the parsed markup for the current content. It is nil
// for non-gemtext pages.
func (s *Session) Lines() []gemtext.Line { return s.lines }

// Scroll returns the scroll offset in lines. It saturates at zero and
// has no upper bound; clamping against the page is a display concern.
func (s *Session) Scroll() int { return s.scroll }

// Notice returns the last surfaced non-fatal error message, empty when
// there is none. It clears on the next load.
func (s *Session) Notice() string { return s.notice }

// Handle applies one command to the state machine. While a load is in
// flight every command is ignored; there is no way to cancel a request
// once issued.
func (s *Session) Handle(cmd event.Command) Action {
	switch s.status {
	case StatusLoading:
		return ActionNone
	case StatusBrowsing:
		return s.handleBrowsing(cmd)
	case StatusTyping:
		return s.handleTyping(cmd)
	case StatusAwaitingInput:
		return s.handleAwaitingInput(cmd)
	}
	return ActionNone
}

func (s *Session) handleBrowsing(cmd event.Command) Action {
	switch cmd.Kind {
	case event.Quit:
		return ActionQuit
	case event.OpenPrompt:
		s.status = StatusTyping
		s.buffer = ""
	case event.Back:
		s.nav.Back()
		s.beginLoad()
		return ActionLoad
	case event.Forward:
		s.nav.Advance()
		s.beginLoad()
		return ActionLoad
	case event.ScrollUp:
		s.scrollBy(-1)
	case event.ScrollDown:
		s.scrollBy(1)
	case event.PageUp:
		s.scrollBy(-cmd.Step)
	case event.PageDown:
		s.scrollBy(cmd.Step)
	}
	return ActionNone
}

func (s *Session) handleTyping(cmd event.Command) Action {
	switch cmd.Kind {
	case event.Cancel:
		s.status = StatusBrowsing
		s.buffer = ""
	case event.Rune:
		s.buffer += string(cmd.Rune)
	case event.Backspace:
		s.buffer = trimLastRune(s.buffer)
	case event.Submit:
		return s.submitTyping()
	}
	return ActionNone
}

// submitTyping resolves the typed buffer, in priority order: a link
// number over the current document, an absolute address, a reference
// relative to the current address.
func (s *Session) submitTyping() Action {
	buf := s.buffer

	if n, err := strconv.Atoi(buf); err == nil && n >= 0 {
		link, ok := s.linkAt(n)
		if !ok {
			// No such link: silently nothing, stay in Typing.
			return ActionNone
		}
		s.nav.Push(link)
		s.beginLoad()
		return ActionLoad
	}

	var (
		target *url.URL
		err    error
	)
	if strings.HasPrefix(buf, "gemini://") {
		target, err = url.Parse(buf)
	} else {
		target, err = s.nav.Current().Parse(buf)
	}
	if err != nil {
		s.logger.Warn("address resolution failed", "input", buf, "error", err)
		s.status = StatusBrowsing
		s.buffer = ""
		s.notice = fmt.Sprintf("cannot resolve %q", buf)
		return ActionNone
	}

	s.nav.Push(target)
	s.beginLoad()
	return ActionLoad
}

// linkAt re-runs the markup parser over the displayed content and
// returns the n-th (0-based) link in document order.
func (s *Session) linkAt(n int) (*url.URL, bool) {
	if s.page == nil || !s.page.Gemtext() {
		return nil, false
	}
	links := gemtext.Links(s.page.Text, s.nav.Current())
	if n >= len(links) {
		return nil, false
	}
	return links[n].URL, true
}

func (s *Session) handleAwaitingInput(cmd event.Command) Action {
	switch cmd.Kind {
	case event.Cancel:
		s.buffer = ""
	case event.Rune:
		s.buffer += string(cmd.Rune)
	case event.Backspace:
		s.buffer = trimLastRune(s.buffer)
	case event.Submit:
		// Answer the server prompt: the reply becomes the query of the
		// current address, the prompt page itself drops out of history.
		answered := *s.nav.Current()
		answered.RawQuery = url.QueryEscape(s.buffer)
		s.nav.Back()
		s.nav.Push(&answered)
		s.beginLoad()
		return ActionLoad
	}
	return ActionNone
}

// beginLoad resets page state and enters Loading.
func (s *Session) beginLoad() {
	s.status = StatusLoading
	s.buffer = ""
	s.page = nil
	s.lines = nil
	s.scroll = 0
	s.notice = ""
}

// Result carries one finished request from Fetch to Apply.
type Result struct {
	resp *gemini.Response
	err  error
}

// Fetch performs the request for the current address. It does not
// mutate the session, so the display layer may run it off the update
// loop; commands arriving meanwhile are ignored by Handle.
func (s *Session) Fetch(ctx context.Context) Result {
	resp, err := s.client.Request(ctx, s.nav.Current())
	return Result{resp: resp, err: err}
}

// Apply transitions the session with a fetch result.
func (s *Session) Apply(r Result) {
	if r.err != nil {
		s.fail(r.err.Error())
		return
	}

	resp := r.resp
	switch resp.Category() {
	case gemini.CategorySuccess:
		page, err := content.From(resp.MIME, resp.Body)
		if err != nil {
			s.fail(err.Error())
			return
		}
		s.page = page
		if page.Gemtext() {
			s.lines = gemtext.Lines(page.Text, s.nav.Current())
		}
		s.status = StatusBrowsing

	case gemini.CategoryInput:
		s.page = content.Plain(resp.Prompt)
		s.status = StatusAwaitingInput
		s.buffer = ""

	case gemini.CategoryRedirect:
		// Only reachable with auto-follow disabled.
		s.fail(fmt.Sprintf("%s to %s not followed", resp.Code, resp.Target))

	default:
		msg := resp.Code.String()
		if resp.Message != "" {
			msg += ": " + resp.Message
		}
		s.fail(msg)
	}
}

// Load is Fetch plus Apply in one blocking call.
func (s *Session) Load(ctx context.Context) {
	s.Apply(s.Fetch(ctx))
}

// fail lands in Browsing with an error pseudo-page and a status-line
// notice. History stays intact so back and retry keep working.
func (s *Session) fail(msg string) {
	s.logger.Error("load failed", "url", s.nav.Current().String(), "error", msg)
	s.page = content.Plain("Failed to load " + s.nav.Current().String() + "\n\n" + msg)
	s.lines = nil
	s.notice = msg
	s.status = StatusBrowsing
}

func (s *Session) scrollBy(delta int) {
	s.scroll += delta
	if s.scroll < 0 {
		s.scroll = 0
	}
}

func trimLastRune(s string) string {
	if s == "" {
		return s
	}
	r := []rune(s)
	return string(r[:len(r)-1])
}
