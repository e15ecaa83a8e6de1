package ui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/drake/capsule/event"
	"github.com/drake/capsule/session"
)

func runeKey(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

func TestBrowsingKeys(t *testing.T) {
	cases := []struct {
		name string
		msg  tea.KeyMsg
		want event.Kind
	}{
		{"open", runeKey('i'), event.OpenPrompt},
		{"back", runeKey('<'), event.Back},
		{"forward", runeKey('>'), event.Forward},
		{"quit", runeKey('q'), event.Quit},
		{"esc quits", tea.KeyMsg{Type: tea.KeyEsc}, event.Quit},
		{"scroll up", tea.KeyMsg{Type: tea.KeyUp}, event.ScrollUp},
		{"scroll down", tea.KeyMsg{Type: tea.KeyDown}, event.ScrollDown},
		{"page up", tea.KeyMsg{Type: tea.KeyPgUp}, event.PageUp},
		{"page down", tea.KeyMsg{Type: tea.KeyPgDown}, event.PageDown},
	}
	for _, tc := range cases {
		cmds := translate(tc.msg, session.StatusBrowsing, 10)
		if len(cmds) != 1 || cmds[0].Kind != tc.want {
			t.Errorf("%s: got %#v, want kind %v", tc.name, cmds, tc.want)
		}
	}

	if cmds := translate(runeKey('x'), session.StatusBrowsing, 10); cmds != nil {
		t.Errorf("unbound key produced %#v", cmds)
	}
}

func TestTypingKeysAppendRunes(t *testing.T) {
	cmds := translate(runeKey('i'), session.StatusTyping, 10)
	if len(cmds) != 1 || cmds[0].Kind != event.Rune || cmds[0].Rune != 'i' {
		t.Errorf("'i' must append while typing, got %#v", cmds)
	}

	cmds = translate(tea.KeyMsg{Type: tea.KeySpace}, session.StatusAwaitingInput, 10)
	if len(cmds) != 1 || cmds[0].Rune != ' ' {
		t.Errorf("space must append, got %#v", cmds)
	}

	cmds = translate(tea.KeyMsg{Type: tea.KeyEnter}, session.StatusTyping, 10)
	if len(cmds) != 1 || cmds[0].Kind != event.Submit {
		t.Errorf("enter must submit, got %#v", cmds)
	}

	cmds = translate(tea.KeyMsg{Type: tea.KeyEsc}, session.StatusTyping, 10)
	if len(cmds) != 1 || cmds[0].Kind != event.Cancel {
		t.Errorf("esc must cancel, got %#v", cmds)
	}
}

func TestCtrlCQuitsEverywhere(t *testing.T) {
	for _, st := range []session.Status{
		session.StatusLoading,
		session.StatusBrowsing,
		session.StatusTyping,
		session.StatusAwaitingInput,
	} {
		cmds := translate(tea.KeyMsg{Type: tea.KeyCtrlC}, st, 10)
		if len(cmds) != 1 || cmds[0].Kind != event.Quit {
			t.Errorf("status %v: got %#v", st, cmds)
		}
	}
}

func TestPasteAppendsEveryRune(t *testing.T) {
	msg := tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("abc")}
	cmds := translate(msg, session.StatusTyping, 10)
	if len(cmds) != 3 {
		t.Fatalf("got %d commands, want 3", len(cmds))
	}
	for i, r := range "abc" {
		if cmds[i].Rune != r {
			t.Errorf("command %d carries %q, want %q", i, cmds[i].Rune, r)
		}
	}
}
