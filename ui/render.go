package ui

import (
	"fmt"
	"strings"

	"github.com/drake/capsule/gemtext"
	"github.com/drake/capsule/session"
)

// renderPage lays the current content out as styled lines for the
// viewport. Link lines get their document-order number so the user can
// select them by index.
func renderPage(sess *session.Session, width int, styles Styles) string {
	page := sess.Content()
	if page == nil {
		return styles.Muted.Render("No content")
	}
	if !page.IsText {
		return styles.Muted.Render(fmt.Sprintf("Format not supported! (%s)", page.MIME))
	}
	if !page.Gemtext() {
		return styles.Text.Width(width).Render(page.Text)
	}

	var b strings.Builder
	links := 0
	for _, line := range sess.Lines() {
		switch line.Type {
		case gemtext.TypeText:
			b.WriteString(styles.Text.Width(width).Render(line.Text))
		case gemtext.TypePreformatted:
			b.WriteString(styles.Pre.Render(line.Text))
		case gemtext.TypeLink:
			style := styles.LinkForeign
			if line.URL.Scheme == "gemini" {
				style = styles.LinkGemini
			}
			label := line.Text
			if label == "" {
				label = line.URL.String()
			}
			b.WriteString(style.Width(width).Render(fmt.Sprintf("[%d] %s", links, label)))
			links++
		}
		b.WriteByte('\n')
	}
	return b.String()
}
