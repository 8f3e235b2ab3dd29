package unified

import (
	"fmt"
	"slices"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/blackwell-systems/bibliodash/internal/catalog"
	"github.com/blackwell-systems/bibliodash/internal/tui"
)

// route binds a key to a dashboard action. An empty only list means the
// route applies to every section.
type route struct {
	binding key.Binding
	only    []catalog.Kind
	footer  string
	handle  func(m *Model, msg tea.KeyMsg) tea.Cmd
}

func (r route) appliesTo(k catalog.Kind) bool {
	return len(r.only) == 0 || slices.Contains(r.only, k)
}

// newRoutes builds the key registry once. Order matters: the first
// matching route wins.
func newRoutes(keys tui.DashboardKeys) []route {
	return []route{
		{binding: keys.Quit, handle: func(*Model, tea.KeyMsg) tea.Cmd { return tea.Quit }},
		{binding: keys.NextSection, handle: func(m *Model, _ tea.KeyMsg) tea.Cmd {
			return m.switchSection(m.sectionIndex() + 1)
		}},
		{binding: keys.PrevSection, handle: func(m *Model, _ tea.KeyMsg) tea.Cmd {
			return m.switchSection(m.sectionIndex() - 1)
		}},
		{binding: keys.Jump, handle: func(m *Model, msg tea.KeyMsg) tea.Cmd {
			var n int
			if _, err := fmt.Sscanf(msg.String(), "%d", &n); err != nil {
				return nil
			}
			return m.switchSection(n - 1)
		}},
		{binding: keys.Up, handle: func(m *Model, _ tea.KeyMsg) tea.Cmd {
			m.moveCursor(-1)
			return nil
		}},
		{binding: keys.Down, handle: func(m *Model, _ tea.KeyMsg) tea.Cmd {
			m.moveCursor(1)
			return nil
		}},
		{binding: keys.Search, only: searchable, footer: "/", handle: func(m *Model, _ tea.KeyMsg) tea.Cmd {
			m.searching = true
			in := m.searches[m.section]
			cmd := in.Focus()
			m.searches[m.section] = in
			return cmd
		}},
		{binding: keys.New, footer: "n", handle: func(m *Model, _ tea.KeyMsg) tea.Cmd {
			m.openCreate()
			return m.highlight("n")
		}},
		{binding: keys.Edit, only: []catalog.Kind{
			catalog.KindBooks, catalog.KindAuthors, catalog.KindUsers,
			catalog.KindCategories, catalog.KindReviews,
		}, footer: "e", handle: func(m *Model, _ tea.KeyMsg) tea.Cmd {
			if id, ok := m.selectedID(); ok {
				m.openEdit(id)
			}
			return m.highlight("e")
		}},
		{binding: keys.Delete, footer: "d", handle: func(m *Model, _ tea.KeyMsg) tea.Cmd {
			id, ok := m.selectedID()
			if !ok {
				return nil
			}
			m.confirm = &pendingDelete{
				kind:    m.section,
				id:      id,
				confirm: tui.Confirm{Prompt: fmt.Sprintf("Delete this %s?", m.section.Singular())},
			}
			return m.highlight("d")
		}},
		{binding: keys.Return, only: []catalog.Kind{catalog.KindLoans}, footer: "r", handle: func(m *Model, _ tea.KeyMsg) tea.Cmd {
			id, ok := m.selectedID()
			if !ok {
				return nil
			}
			if l, found := m.state.FindLoan(id); !found || !l.Active() {
				return nil
			}
			return tea.Batch(m.returnCmd(id), m.highlight("r"))
		}},
		{binding: keys.LoanTab, only: []catalog.Kind{catalog.KindLoans}, footer: "f", handle: func(m *Model, _ tea.KeyMsg) tea.Cmd {
			m.loanStatus = m.loanStatus.Next()
			m.cursors[catalog.KindLoans] = 0
			return m.highlight("f")
		}},
		{binding: keys.Details, only: []catalog.Kind{catalog.KindBooks}, footer: "v", handle: func(m *Model, _ tea.KeyMsg) tea.Cmd {
			return m.toggleDetails()
		}},
		{binding: keys.Reload, footer: "ctrl+r", handle: func(m *Model, _ tea.KeyMsg) tea.Cmd {
			return tea.Batch(m.reload(catalog.Kinds...), m.highlight("ctrl+r"))
		}},
	}
}

func (m *Model) highlight(k string) tea.Cmd {
	m.activeCmd = k
	return tui.HighlightCmd()
}

func (m *Model) sectionIndex() int {
	return slices.Index(catalog.Kinds, m.section)
}

func (m *Model) switchSection(i int) tea.Cmd {
	n := len(catalog.Kinds)
	m.section = catalog.Kinds[(i%n+n)%n]
	m.details = nil
	m.clampCursor(m.section)
	return nil
}

func (m *Model) moveCursor(delta int) {
	m.cursors[m.section] += delta
	m.clampCursor(m.section)
	if m.details != nil {
		m.details = nil
	}
}

func (m *Model) toggleDetails() tea.Cmd {
	if m.details != nil {
		m.details = nil
		return nil
	}
	id, ok := m.selectedID()
	if !ok {
		return nil
	}
	b, ok := m.state.FindBook(id)
	if !ok {
		return nil
	}
	m.details = &bookDetails{bookID: b.ID, title: b.Title}
	return tea.Batch(m.bookReviewsCmd(b.ID), m.highlight("v"))
}

// openCreate opens an empty form with the create-time defaults of the
// current section.
func (m *Model) openCreate() {
	ctx := m.formContext()
	var f tui.Form
	switch m.section {
	case catalog.KindCategories:
		f = tui.CategoryForm(catalog.Creating{}, catalog.Category{})
	case catalog.KindAuthors:
		f = tui.AuthorForm(catalog.Creating{}, catalog.Author{})
	case catalog.KindBooks:
		f = tui.BookForm(catalog.Creating{}, catalog.Book{}, ctx)
	case catalog.KindUsers:
		f = tui.UserForm(catalog.Creating{}, catalog.User{}, ctx)
	case catalog.KindLoans:
		f = tui.LoanForm(ctx)
	case catalog.KindReviews:
		f = tui.ReviewForm(catalog.Creating{}, catalog.Review{}, ctx)
	default:
		return
	}
	m.openForm(f)
}

// openEdit opens the form pre-filled with the record with the given key.
// A key that is no longer in the store leaves the dashboard as it is.
func (m *Model) openEdit(id int) {
	ctx := m.formContext()
	mode := catalog.Editing{ID: id}
	var f tui.Form
	switch m.section {
	case catalog.KindCategories:
		c, ok := m.state.FindCategory(id)
		if !ok {
			return
		}
		f = tui.CategoryForm(mode, c)
	case catalog.KindAuthors:
		a, ok := m.state.FindAuthor(id)
		if !ok {
			return
		}
		f = tui.AuthorForm(mode, a)
	case catalog.KindBooks:
		b, ok := m.state.FindBook(id)
		if !ok {
			return
		}
		f = tui.BookForm(mode, b, ctx)
	case catalog.KindUsers:
		u, ok := m.state.FindUser(id)
		if !ok {
			return
		}
		f = tui.UserForm(mode, u, ctx)
	case catalog.KindReviews:
		r, ok := m.state.FindReview(id)
		if !ok {
			return
		}
		f = tui.ReviewForm(mode, r, ctx)
	default:
		return
	}
	m.openForm(f)
}
