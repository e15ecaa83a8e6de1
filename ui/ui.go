// Package ui is the terminal display layer: a Bubble Tea model that
// renders the session and decodes key presses into session commands.
package ui

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/drake/capsule/session"
)

// chromeLines is the non-document vertical space: title and status bar.
const chromeLines = 2

// fetchedMsg carries a finished request back onto the update loop. All
// session mutation stays on that loop; the fetch itself only reads.
type fetchedMsg struct {
	result session.Result
}

// Model is the Bubble Tea model wrapping one browsing session.
type Model struct {
	sess   *session.Session
	styles Styles

	vp   viewport.Model
	spin spinner.Model

	width  int
	height int
	ready  bool
}

// New creates the UI for sess.
func New(sess *session.Session) Model {
	styles := DefaultStyles()
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = styles.Spinner
	return Model{
		sess:   sess,
		styles: styles,
		spin:   sp,
	}
}

// Init starts the spinner and the initial page load.
func (m Model) Init() tea.Cmd {
	return tea.Batch(m.spin.Tick, m.fetchCmd())
}

// fetchCmd runs the pending request and reports its result. Exactly one
// of these is in flight at a time: it is only issued on ActionLoad, and
// the session ignores commands until the result lands.
func (m Model) fetchCmd() tea.Cmd {
	sess := m.sess
	return func() tea.Msg {
		return fetchedMsg{result: sess.Fetch(context.Background())}
	}
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		if !m.ready {
			m.vp = viewport.New(msg.Width, msg.Height-chromeLines)
			m.ready = true
		} else {
			m.vp.Width = msg.Width
			m.vp.Height = msg.Height - chromeLines
		}
		m.refresh()
		return m, nil

	case fetchedMsg:
		m.sess.Apply(msg.result)
		m.refresh()
		return m, nil

	case spinner.TickMsg:
		if m.sess.Status() != session.StatusLoading {
			return m, nil
		}
		var cmd tea.Cmd
		m.spin, cmd = m.spin.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	pageStep := m.vp.Height - 1
	if pageStep < 1 {
		pageStep = 1
	}

	for _, cmd := range translate(msg, m.sess.Status(), pageStep) {
		switch m.sess.Handle(cmd) {
		case session.ActionQuit:
			return m, tea.Quit
		case session.ActionLoad:
			m.refresh()
			return m, tea.Batch(m.fetchCmd(), m.spin.Tick)
		}
	}
	m.vp.SetYOffset(m.sess.Scroll())
	return m, nil
}

// refresh re-renders the document into the viewport.
func (m *Model) refresh() {
	if !m.ready {
		return
	}
	m.vp.SetContent(renderPage(m.sess, m.vp.Width, m.styles))
	m.vp.SetYOffset(m.sess.Scroll())
}

func (m Model) View() string {
	if !m.ready {
		return "starting..."
	}

	title := m.styles.Title.Render(
		runewidth.Truncate(m.sess.Current().String(), m.width, "..."))

	return title + "\n" + m.vp.View() + "\n" + m.statusLine()
}

// statusLine is the bottom bar: the active buffer or notice on the
// left, the session state tag on the right.
func (m Model) statusLine() string {
	var left string
	switch m.sess.Status() {
	case session.StatusTyping, session.StatusAwaitingInput:
		left = m.styles.Prompt.Render("=> " + m.sess.Buffer())
	case session.StatusLoading:
		left = m.spin.View() + m.styles.Muted.Render(" loading")
	default:
		if notice := m.sess.Notice(); notice != "" {
			left = m.styles.Notice.Render(notice)
		} else {
			left = m.styles.Muted.Render("i: open  <: back  >: forward  q: quit")
		}
	}

	tag := m.styles.StatusTag.Render(m.sess.Status().String())
	gap := m.width - lipgloss.Width(left) - lipgloss.Width(tag)
	if gap < 1 {
		return left
	}
	return m.styles.StatusBar.Render(left + strings.Repeat(" ", gap) + tag)
}
