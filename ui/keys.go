package ui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/drake/capsule/event"
	"github.com/drake/capsule/session"
)

// translate decodes one key press into session commands. Decoding
// depends on the active state: while a buffer is open most keys append
// to it, otherwise they are navigation commands. pageStep is the
// scroll distance of a page key.
func translate(msg tea.KeyMsg, status session.Status, pageStep int) []event.Command {
	if msg.Type == tea.KeyCtrlC {
		return []event.Command{{Kind: event.Quit}}
	}

	switch status {
	case session.StatusTyping, session.StatusAwaitingInput:
		switch msg.Type {
		case tea.KeyEsc:
			return []event.Command{{Kind: event.Cancel}}
		case tea.KeyEnter:
			return []event.Command{{Kind: event.Submit}}
		case tea.KeyBackspace:
			return []event.Command{{Kind: event.Backspace}}
		case tea.KeySpace:
			return []event.Command{{Kind: event.Rune, Rune: ' '}}
		case tea.KeyRunes:
			cmds := make([]event.Command, 0, len(msg.Runes))
			for _, r := range msg.Runes {
				cmds = append(cmds, event.Command{Kind: event.Rune, Rune: r})
			}
			return cmds
		}

	case session.StatusBrowsing:
		switch msg.Type {
		case tea.KeyEsc:
			return []event.Command{{Kind: event.Quit}}
		case tea.KeyUp:
			return []event.Command{{Kind: event.ScrollUp}}
		case tea.KeyDown:
			return []event.Command{{Kind: event.ScrollDown}}
		case tea.KeyPgUp:
			return []event.Command{{Kind: event.PageUp, Step: pageStep}}
		case tea.KeyPgDown:
			return []event.Command{{Kind: event.PageDown, Step: pageStep}}
		case tea.KeyRunes:
			if len(msg.Runes) != 1 {
				return nil
			}
			switch msg.Runes[0] {
			case 'i':
				return []event.Command{{Kind: event.OpenPrompt}}
			case '<':
				return []event.Command{{Kind: event.Back}}
			case '>':
				return []event.Command{{Kind: event.Forward}}
			case 'q':
				return []event.Command{{Kind: event.Quit}}
			}
		}
	}
	return nil
}
