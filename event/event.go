// Package event defines the discrete commands the input layer delivers
// to the session. Raw key decoding stays in the display layer; the
// session only ever sees these values.
package event

// Kind identifies a user command.
type Kind int

const (
	Rune      Kind = iota // printable character for the active buffer
	Backspace             // remove the last character of the active buffer
	Submit
	Cancel
	OpenPrompt // enter typing mode from browsing
	Back
	Forward
	ScrollUp
	ScrollDown
	PageUp
	PageDown
	Quit
)

// Command is one decoded user action.
type Command struct {
	Kind Kind
	Rune rune // Rune commands only
	Step int  // page size for PageUp/PageDown
}
