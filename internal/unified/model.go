package unified

import (
	"context"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/blackwell-systems/bibliodash/internal/catalog"
	"github.com/blackwell-systems/bibliodash/internal/operations"
	"github.com/blackwell-systems/bibliodash/internal/store"
	"github.com/blackwell-systems/bibliodash/internal/tui"
)

// Settings are the presentation knobs of the dashboard.
type Settings struct {
	BaseURL        string
	ToastDuration  time.Duration
	LoanPeriodDays int
	DateLayout     string
	Now            func() time.Time
}

// pendingDelete is an open delete confirmation.
type pendingDelete struct {
	kind    catalog.Kind
	id      int
	confirm tui.Confirm
}

// bookDetails is the reviews pane under the books table.
type bookDetails struct {
	bookID  int
	title   string
	reviews []catalog.Review
	loaded  bool
}

// Model is the dashboard: one section per collection, a modal form, a
// delete confirmation and a toast.
type Model struct {
	ctx      context.Context
	svc      *operations.Service
	state    *store.State
	settings Settings
	keys     tui.DashboardKeys
	routes   []route

	section    catalog.Kind
	cursors    map[catalog.Kind]int
	searches   map[catalog.Kind]textinput.Model
	searching  bool
	loanStatus catalog.LoanStatus

	form    *tui.Form
	formSeq int
	confirm *pendingDelete
	details *bookDetails
	toast   tui.Toast

	spinner   spinner.Model
	spinning  bool
	pending   int
	batches   map[int]int
	nextBatch int
	initCmd   tea.Cmd

	activeCmd string
	width     int
	height    int
}

var searchable = []catalog.Kind{catalog.KindBooks, catalog.KindAuthors, catalog.KindUsers}

// New creates the dashboard and issues the initial load of every
// collection.
func New(ctx context.Context, svc *operations.Service, state *store.State, s Settings) Model {
	if s.Now == nil {
		s.Now = time.Now
	}
	if s.ToastDuration <= 0 {
		s.ToastDuration = 3 * time.Second
	}
	if s.DateLayout == "" {
		s.DateLayout = "02/01/2006"
	}

	searches := make(map[catalog.Kind]textinput.Model, len(searchable))
	for _, k := range searchable {
		in := textinput.New()
		in.Prompt = "/ "
		in.Placeholder = "search " + k.String()
		in.CharLimit = 100
		in.Width = 40
		searches[k] = in
	}

	keys := tui.NewDashboardKeys()
	m := Model{
		ctx:        ctx,
		svc:        svc,
		state:      state,
		settings:   s,
		keys:       keys,
		routes:     newRoutes(keys),
		section:    catalog.KindBooks,
		cursors:    make(map[catalog.Kind]int),
		searches:   searches,
		loanStatus: catalog.LoansAll,
		toast:      tui.NewToast(s.ToastDuration),
		spinner:    spinner.New(spinner.WithSpinner(spinner.Dot)),
		batches:    make(map[int]int),
	}
	m.initCmd = m.reload(catalog.Kinds...)
	return m
}

func (m Model) Init() tea.Cmd {
	return m.initCmd
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tui.ClearActiveCmdMsg:
		m.activeCmd = ""
		if m.form != nil {
			f, _ := m.form.Update(msg)
			m.form = &f
		}
		return m, nil

	case tui.ToastExpiredMsg:
		m.toast.Expire(msg)
		return m, nil

	case spinner.TickMsg:
		if m.pending <= 0 {
			m.spinning = false
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case loadedMsg:
		cmd := m.handleLoaded(msg)
		return m, cmd

	case statsMsg:
		if msg.err == nil {
			m.state.SetStats(msg.stats)
		}
		return m, nil

	case commandMsg:
		cmd := m.handleCommand(msg)
		return m, cmd

	case bookReviewsMsg:
		if m.details != nil && m.details.bookID == msg.bookID {
			if msg.err != nil {
				m.details = nil
				cmd := m.toast.Show(tui.ToastError, operations.Message(msg.err))
				return m, cmd
			}
			m.details.reviews = msg.reviews
			m.details.loaded = true
		}
		return m, nil

	case tui.FormSubmitMsg:
		if m.form == nil || !m.form.Pending() {
			return m, nil
		}
		return m, m.saveCmd(msg)

	case tui.FormCancelMsg:
		m.form = nil
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	if m.form != nil {
		f, cmd := m.form.Update(msg)
		m.form = &f
		return m, cmd
	}
	if m.searching {
		return m.updateSearch(msg)
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.confirm != nil {
		c := m.confirm
		m.confirm = nil
		if c.confirm.Answer(msg) {
			return m, m.deleteCmd(c.kind, c.id)
		}
		return m, nil
	}

	if m.form != nil {
		f, cmd := m.form.Update(msg)
		m.form = &f
		return m, cmd
	}

	if m.searching {
		switch msg.Type {
		case tea.KeyEsc, tea.KeyEnter:
			m.searching = false
			in := m.searches[m.section]
			in.Blur()
			m.searches[m.section] = in
			return m, nil
		}
		return m.updateSearch(msg)
	}

	for _, r := range m.routes {
		if !r.appliesTo(m.section) || !key.Matches(msg, r.binding) {
			continue
		}
		cmd := r.handle(&m, msg)
		return m, cmd
	}
	return m, nil
}

func (m Model) updateSearch(msg tea.Msg) (tea.Model, tea.Cmd) {
	in, ok := m.searches[m.section]
	if !ok {
		m.searching = false
		return m, nil
	}
	before := in.Value()
	var cmd tea.Cmd
	in, cmd = in.Update(msg)
	m.searches[m.section] = in
	if in.Value() != before {
		m.cursors[m.section] = 0
	}
	return m, cmd
}

// Section returns the section on screen.
func (m Model) Section() catalog.Kind { return m.section }

// Pending returns the number of loads in flight.
func (m Model) Pending() int { return m.pending }

func (m *Model) formContext() tui.FormContext {
	return tui.FormContext{
		Authors:        catalog.AuthorOptions(m.state.Authors()),
		Categories:     catalog.CategoryOptions(m.state.Categories()),
		Books:          catalog.BookOptions(m.state.Books()),
		Users:          catalog.UserOptions(m.state.Users()),
		Now:            m.settings.Now(),
		LoanPeriodDays: m.settings.LoanPeriodDays,
	}
}

func (m *Model) searchTerm(kind catalog.Kind) string {
	return m.searches[kind].Value()
}

// visibleLen is the number of records the current filters leave on screen.
func (m *Model) visibleLen(kind catalog.Kind) int {
	switch kind {
	case catalog.KindBooks:
		return len(m.visibleBooks())
	case catalog.KindAuthors:
		return len(m.visibleAuthors())
	case catalog.KindUsers:
		return len(m.visibleUsers())
	case catalog.KindLoans:
		return len(m.visibleLoans())
	}
	return m.state.Len(kind)
}

func (m *Model) visibleBooks() []catalog.Book {
	return catalog.FilterBooks(m.state.Books(), m.searchTerm(catalog.KindBooks))
}

func (m *Model) visibleAuthors() []catalog.Author {
	return catalog.FilterAuthors(m.state.Authors(), m.searchTerm(catalog.KindAuthors))
}

func (m *Model) visibleUsers() []catalog.User {
	return catalog.FilterUsers(m.state.Users(), m.searchTerm(catalog.KindUsers))
}

func (m *Model) visibleLoans() []catalog.Loan {
	return catalog.FilterLoans(m.state.Loans(), m.loanStatus)
}

// selectedID returns the key of the record under the cursor.
func (m *Model) selectedID() (int, bool) {
	cur := m.cursors[m.section]
	var keys []int
	switch m.section {
	case catalog.KindBooks:
		keys = ids(m.visibleBooks())
	case catalog.KindAuthors:
		keys = ids(m.visibleAuthors())
	case catalog.KindUsers:
		keys = ids(m.visibleUsers())
	case catalog.KindLoans:
		keys = ids(m.visibleLoans())
	case catalog.KindCategories:
		keys = ids(m.state.Categories())
	case catalog.KindReviews:
		keys = ids(m.state.Reviews())
	}
	if cur < 0 || cur >= len(keys) {
		return 0, false
	}
	return keys[cur], true
}

func ids[T catalog.Keyed](items []T) []int {
	out := make([]int, len(items))
	for i, it := range items {
		out[i] = it.Key()
	}
	return out
}

func (m *Model) clampCursor(kind catalog.Kind) {
	n := m.visibleLen(kind)
	cur := m.cursors[kind]
	switch {
	case n == 0:
		cur = 0
	case cur >= n:
		cur = n - 1
	case cur < 0:
		cur = 0
	}
	m.cursors[kind] = cur
}
