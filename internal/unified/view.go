package unified

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/blackwell-systems/bibliodash/internal/catalog"
	"github.com/blackwell-systems/bibliodash/internal/tui"
)

// chrome is the number of lines around the section body.
const chrome = 11

func (m Model) View() string {
	var b strings.Builder

	title := tui.StyleHeader.Render("📚 Library")
	if m.settings.BaseURL != "" {
		title += tui.StyleHelp.Render("  " + m.settings.BaseURL)
	}
	if m.pending > 0 {
		title += "  " + m.spinner.View() + tui.StyleHelp.Render(" loading")
	}
	b.WriteString(title + "\n")

	stats, ok := m.state.Stats()
	b.WriteString(tui.RenderStats(stats, ok) + "\n\n")
	b.WriteString(tui.RenderSectionTabs(m.section) + "\n\n")

	if m.form != nil {
		b.WriteString(m.form.View())
		b.WriteString(m.overlay())
		return b.String()
	}

	switch {
	case m.section == catalog.KindLoans:
		b.WriteString(tui.RenderLoanTabs(m.loanStatus) + "\n")
	case m.searching:
		b.WriteString(m.searches[m.section].View() + "\n")
	case m.searchTerm(m.section) != "":
		b.WriteString(tui.StyleHelp.Render("filter: "+m.searchTerm(m.section)) + "\n")
	default:
		b.WriteString("\n")
	}

	b.WriteString(m.renderSection())
	b.WriteString("\n")

	if m.details != nil {
		b.WriteString("\n")
		if m.details.loaded {
			b.WriteString(tui.RenderBookReviews(m.details.title, m.details.reviews, m.renderOptions()))
		} else {
			b.WriteString(tui.StyleHelp.Render("Loading reviews…"))
		}
		b.WriteString("\n")
	}

	b.WriteString(m.overlay())
	b.WriteString("\n" + tui.RenderFooterBar(m.footer(), m.activeCmd))
	return b.String()
}

// overlay renders the confirm prompt and the toast, when present.
func (m Model) overlay() string {
	var parts []string
	if m.confirm != nil {
		parts = append(parts, m.confirm.confirm.View())
	}
	if m.toast.Visible() {
		parts = append(parts, m.toast.View())
	}
	if len(parts) == 0 {
		return ""
	}
	return "\n" + lipgloss.JoinVertical(lipgloss.Left, parts...)
}

func (m Model) renderOptions() tui.RenderOptions {
	height := 0
	if m.height > 0 {
		height = max(3, m.height-chrome)
		if m.details != nil {
			height = max(3, height/2)
		}
	}
	return tui.RenderOptions{
		Cursor:     m.cursors[m.section],
		Width:      m.width,
		Height:     height,
		DateLayout: m.settings.DateLayout,
		Now:        m.settings.Now(),
	}
}

func (m Model) renderSection() string {
	o := m.renderOptions()
	if !m.state.Loaded(m.section) {
		return tui.StyleHelp.Render("Loading " + m.section.String() + "…")
	}
	switch m.section {
	case catalog.KindBooks:
		return tui.RenderBooks(m.visibleBooks(), o)
	case catalog.KindAuthors:
		return tui.RenderAuthors(m.visibleAuthors(), o)
	case catalog.KindUsers:
		return tui.RenderUsers(m.visibleUsers(), o)
	case catalog.KindLoans:
		return tui.RenderLoans(m.visibleLoans(), o)
	case catalog.KindCategories:
		return tui.RenderCategories(m.state.Categories(), o)
	case catalog.KindReviews:
		return tui.RenderReviews(m.state.Reviews(), o)
	}
	return ""
}

// footer lists the shortcuts that apply to the current section.
func (m Model) footer() []tui.ShortcutEntry {
	entries := []tui.ShortcutEntry{{Label: "tab/1-6 section"}}
	for _, r := range m.routes {
		if r.footer == "" || !r.appliesTo(m.section) {
			continue
		}
		h := r.binding.Help()
		entries = append(entries, tui.ShortcutEntry{Key: r.footer, Label: h.Key + " " + h.Desc})
	}
	return append(entries, tui.ShortcutEntry{Label: "q quit"})
}
