package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// ToastLevel selects the toast color.
type ToastLevel int

const (
	ToastSuccess ToastLevel = iota
	ToastError
)

// ToastExpiredMsg is delivered when a toast's display time is up.
type ToastExpiredMsg struct {
	seq int
}

// Toast is the single transient notification. A newer message replaces the
// current one, and only the newest message's timer can dismiss it.
type Toast struct {
	message  string
	level    ToastLevel
	visible  bool
	seq      int
	duration time.Duration
}

// NewToast creates a toast that stays up for d.
func NewToast(d time.Duration) Toast {
	return Toast{duration: d}
}

// Show displays message and returns the command that will expire it.
func (t *Toast) Show(level ToastLevel, message string) tea.Cmd {
	t.seq++
	t.message = clean(message)
	t.level = level
	t.visible = true
	seq := t.seq
	return tea.Tick(t.duration, func(time.Time) tea.Msg {
		return ToastExpiredMsg{seq: seq}
	})
}

// Expire hides the toast if msg belongs to the message on screen.
func (t *Toast) Expire(msg ToastExpiredMsg) {
	if msg.seq == t.seq {
		t.visible = false
	}
}

// Visible reports whether a message is on screen.
func (t Toast) Visible() bool { return t.visible }

// Message returns the current text and level.
func (t Toast) Message() (string, ToastLevel) { return t.message, t.level }

func (t Toast) View() string {
	if !t.visible {
		return ""
	}
	if t.level == ToastError {
		return styleBadgeBad.Render("✗ " + t.message)
	}
	return styleBadgeOK.Render("✓ " + t.message)
}
