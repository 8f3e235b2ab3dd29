package tui

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
)

// Confirm is a yes/no prompt. Only y or Y confirms; any other key cancels.
type Confirm struct {
	Prompt string
}

// Answer interprets a key press.
func (c Confirm) Answer(msg tea.KeyMsg) (yes bool) {
	return strings.EqualFold(msg.String(), "y")
}

func (c Confirm) View() string {
	return StyleBorder.Padding(0, 1).Render(
		StyleHighlight.Render(clean(c.Prompt)) + " " + StyleHelp.Render("y/N"),
	)
}
