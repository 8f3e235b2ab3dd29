package tui

import (
	"strings"
	"unicode"

	"github.com/charmbracelet/x/ansi"
)

// clean strips escape sequences and control characters from server-supplied
// text so it cannot restyle or move the cursor, and folds newlines into
// spaces.
func clean(s string) string {
	s = ansi.Strip(s)
	return strings.Map(func(r rune) rune {
		switch {
		case r == '\n' || r == '\r' || r == '\t':
			return ' '
		case unicode.IsControl(r):
			return -1
		}
		return r
	}, s)
}

// fit cleans s and truncates it to width cells with an ellipsis.
func fit(s string, width int) string {
	s = clean(s)
	if width <= 0 {
		return s
	}
	return ansi.Truncate(s, width, "…")
}
