package unified

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/go-cmp/cmp"

	"github.com/blackwell-systems/bibliodash/internal/api"
	"github.com/blackwell-systems/bibliodash/internal/catalog"
	"github.com/blackwell-systems/bibliodash/internal/operations"
	"github.com/blackwell-systems/bibliodash/internal/store"
	"github.com/blackwell-systems/bibliodash/internal/tui"
)

// memBackend serves fixed collections and records every call.
type memBackend struct {
	mu       sync.Mutex
	data     map[catalog.Kind]any
	failing  map[catalog.Kind]error
	lists    []catalog.Kind
	stats    int
	created  []catalog.Payload
	deleted  []int
	returned []int
}

func newMemBackend() *memBackend {
	avail := catalog.Flag(true)
	return &memBackend{
		data: map[catalog.Kind]any{
			catalog.KindCategories: []catalog.Category{{ID: 1, Name: "Novel"}},
			catalog.KindAuthors:    []catalog.Author{{ID: 1, Name: "Gabriel García Márquez", Nationality: "Colombian", BirthDate: "1927-03-06"}},
			catalog.KindBooks: []catalog.Book{
				{ID: 1, Title: "Cien años de soledad", AuthorID: 1, CategoryID: 1, Year: 1967, Available: avail, AuthorName: "Gabriel García Márquez"},
				{ID: 2, Title: "Dune", AuthorID: 1, CategoryID: 1, Year: 1965, Available: avail, AuthorName: "Frank Herbert"},
			},
			catalog.KindUsers: []catalog.User{{ID: 1, Name: "Ana Pérez", Email: "ana@example.com"}},
			catalog.KindLoans: []catalog.Loan{
				{ID: 7, BookID: 1, UserID: 1, LoanDate: "2024-05-01", DueDate: "2024-05-15"},
				{ID: 8, BookID: 2, UserID: 1, LoanDate: "2024-04-01", DueDate: "2024-04-15", Returned: true},
			},
			catalog.KindReviews: []catalog.Review{{ID: 3, BookID: 1, UserID: 1, Rating: 5, Date: "2024-05-02"}},
		},
		failing: map[catalog.Kind]error{},
	}
}

func (b *memBackend) List(_ context.Context, kind catalog.Kind) (any, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.lists = append(b.lists, kind)
	if err := b.failing[kind]; err != nil {
		return nil, err
	}
	return b.data[kind], nil
}

func (b *memBackend) ListBookReviews(_ context.Context, id int) ([]catalog.Review, error) {
	return []catalog.Review{{ID: 3, BookID: id, Rating: 4, Comment: "great"}}, nil
}

func (b *memBackend) Create(_ context.Context, p catalog.Payload) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.created = append(b.created, p)
	return nil
}

func (b *memBackend) Update(context.Context, int, catalog.Payload) error { return nil }

func (b *memBackend) Delete(_ context.Context, _ catalog.Kind, id int) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.deleted = append(b.deleted, id)
	return nil
}

func (b *memBackend) ReturnLoan(_ context.Context, id int) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.returned = append(b.returned, id)
	return nil
}

func (b *memBackend) Stats(context.Context) (catalog.Stats, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.stats++
	return catalog.Stats{Books: 2, ActiveLoans: 1}, nil
}

func newTestModel(t *testing.T, b *memBackend) Model {
	t.Helper()
	now := time.Date(2024, 5, 10, 12, 0, 0, 0, time.Local)
	m := New(context.Background(), operations.New(b, nil), store.New(), Settings{
		ToastDuration:  time.Hour,
		LoanPeriodDays: 14,
		Now:            func() time.Time { return now },
	})
	return run(t, m, m.Init())
}

// run executes cmd and feeds every resulting message back into m until
// nothing is left. Commands that do not return promptly (timers) are
// dropped.
func run(t *testing.T, m Model, cmd tea.Cmd) Model {
	t.Helper()
	queue := []tea.Cmd{cmd}
	for len(queue) > 0 {
		c := queue[0]
		queue = queue[1:]
		if c == nil {
			continue
		}
		msg, ok := settle(c)
		if !ok || msg == nil {
			continue
		}
		if batch, isBatch := msg.(tea.BatchMsg); isBatch {
			queue = append(queue, batch...)
			continue
		}
		if _, quit := msg.(tea.QuitMsg); quit {
			continue
		}
		next, more := m.Update(msg)
		m = next.(Model)
		queue = append(queue, more)
	}
	return m
}

func settle(c tea.Cmd) (tea.Msg, bool) {
	ch := make(chan tea.Msg, 1)
	go func() { ch <- c() }()
	select {
	case msg := <-ch:
		return msg, true
	case <-time.After(50 * time.Millisecond):
		return nil, false
	}
}

func press(t *testing.T, m Model, keys ...string) Model {
	t.Helper()
	for _, k := range keys {
		var msg tea.KeyMsg
		switch k {
		case "enter":
			msg = tea.KeyMsg{Type: tea.KeyEnter}
		case "esc":
			msg = tea.KeyMsg{Type: tea.KeyEsc}
		case "tab":
			msg = tea.KeyMsg{Type: tea.KeyTab}
		case "backspace":
			msg = tea.KeyMsg{Type: tea.KeyBackspace}
		default:
			msg = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
		}
		next, cmd := m.Update(msg)
		m = run(t, next.(Model), cmd)
	}
	return m
}

func TestInitLoadsEverythingThenStats(t *testing.T) {
	b := newMemBackend()
	m := newTestModel(t, b)

	if len(b.lists) != len(catalog.Kinds) {
		t.Fatalf("lists = %v, want one per kind", b.lists)
	}
	if b.stats != 1 {
		t.Errorf("stats fetched %d times, want 1", b.stats)
	}
	if m.Pending() != 0 {
		t.Errorf("Pending() = %d after settle", m.Pending())
	}
	if s, ok := m.state.Stats(); !ok || s.Books != 2 {
		t.Errorf("Stats() = %+v, %v", s, ok)
	}
}

func TestStatsWaitForTheWholeBatch(t *testing.T) {
	b := newMemBackend()
	m := New(context.Background(), operations.New(b, nil), store.New(), Settings{ToastDuration: time.Hour})

	m.reload(catalog.KindBooks, catalog.KindLoans)
	gens := []store.Generation{m.state.Begin(catalog.KindBooks), m.state.Begin(catalog.KindLoans)}

	first := m.handleLoaded(loadedMsg{batch: m.nextBatch, result: m.svc.Load(context.Background(), gens[0])})
	if msgs := collect(first); hasStats(msgs) {
		t.Fatal("stats issued before the batch settled")
	}
	last := m.handleLoaded(loadedMsg{batch: m.nextBatch, result: operations.LoadResult{Gen: gens[1], Err: errors.New("boom")}})
	if msgs := collect(last); !hasStats(msgs) {
		t.Fatal("stats not issued after the batch settled with a failure")
	}
}

func collect(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}
	msg, ok := settle(cmd)
	if !ok {
		return nil
	}
	if batch, isBatch := msg.(tea.BatchMsg); isBatch {
		var out []tea.Msg
		for _, c := range batch {
			out = append(out, collect(c)...)
		}
		return out
	}
	return []tea.Msg{msg}
}

func hasStats(msgs []tea.Msg) bool {
	for _, msg := range msgs {
		if _, ok := msg.(statsMsg); ok {
			return true
		}
	}
	return false
}

func TestSearchFiltersOnEveryKeystroke(t *testing.T) {
	b := newMemBackend()
	m := newTestModel(t, b)
	listed := len(b.lists)

	m = press(t, m, "/", "d", "u")
	if got := titles(m.visibleBooks()); !cmp.Equal(got, []string{"Dune"}) {
		t.Errorf("visible = %v", got)
	}
	if !strings.Contains(m.View(), "Dune") || strings.Contains(m.View(), "Cien años") {
		t.Error("view does not reflect the filter")
	}

	m = press(t, m, "backspace", "backspace", "esc")
	if got := len(m.visibleBooks()); got != 2 {
		t.Errorf("cleared search shows %d books", got)
	}
	if len(b.lists) != listed {
		t.Error("searching re-queried the backend")
	}
}

func titles(books []catalog.Book) []string {
	out := make([]string, len(books))
	for i, bk := range books {
		out[i] = bk.Title
	}
	return out
}

func TestLoanTabsPartition(t *testing.T) {
	m := newTestModel(t, newMemBackend())
	m = press(t, m, "4")
	if m.Section() != catalog.KindLoans {
		t.Fatalf("section = %v", m.Section())
	}

	want := map[catalog.LoanStatus][]int{
		catalog.LoansAll:      {7, 8},
		catalog.LoansActive:   {7},
		catalog.LoansReturned: {8},
	}
	for n := 0; n < 3; n++ {
		var got []int
		for _, l := range m.visibleLoans() {
			got = append(got, l.ID)
		}
		if diff := cmp.Diff(want[m.loanStatus], got); diff != "" {
			t.Errorf("%s loans (-want +got):\n%s", m.loanStatus, diff)
		}
		m = press(t, m, "f")
	}
	if m.loanStatus != catalog.LoansAll {
		t.Errorf("tabs did not cycle back, got %s", m.loanStatus)
	}
}

func TestEditMissingRecordIsIgnored(t *testing.T) {
	m := newTestModel(t, newMemBackend())
	m.openEdit(99)
	if m.form != nil {
		t.Fatal("form opened for a missing record")
	}
	m.openEdit(2)
	if m.form == nil {
		t.Fatal("form not opened for book 2")
	}
	if e, ok := m.form.Mode().(catalog.Editing); !ok || e.ID != 2 {
		t.Errorf("mode = %#v", m.form.Mode())
	}
	if got := m.form.Value("titulo"); got != "Dune" {
		t.Errorf("title = %q", got)
	}
}

func TestLoanEditIsNotOffered(t *testing.T) {
	m := newTestModel(t, newMemBackend())
	m = press(t, m, "4", "e")
	if m.form != nil {
		t.Error("edit opened a loan form")
	}
}

func TestReturnActiveLoanReloadsLoansAndBooks(t *testing.T) {
	b := newMemBackend()
	m := newTestModel(t, b)
	before := len(b.lists)

	m = press(t, m, "4", "r")
	if !cmp.Equal(b.returned, []int{7}) {
		t.Fatalf("returned = %v", b.returned)
	}
	reloaded := b.lists[before:]
	if len(reloaded) != 2 {
		t.Errorf("reloaded %v, want loans and books", reloaded)
	}
	if msg, level := m.toast.Message(); msg != "Book returned" || level != tui.ToastSuccess {
		t.Errorf("toast = %q, %v", msg, level)
	}

	// the returned loan has no return action
	m = press(t, m, "j", "r")
	if len(b.returned) != 1 {
		t.Errorf("returned = %v", b.returned)
	}
}

func TestDeleteNeedsConfirmation(t *testing.T) {
	b := newMemBackend()
	m := newTestModel(t, b)

	m = press(t, m, "3", "d", "n")
	if len(b.deleted) != 0 {
		t.Fatal("declined delete reached the backend")
	}
	m = press(t, m, "d", "y")
	if !cmp.Equal(b.deleted, []int{1}) {
		t.Errorf("deleted = %v", b.deleted)
	}
	if msg, _ := m.toast.Message(); msg != "User deleted" {
		t.Errorf("toast = %q", msg)
	}
}

func TestCreateCategoryClosesFormOnSuccess(t *testing.T) {
	b := newMemBackend()
	m := newTestModel(t, b)

	m = press(t, m, "5", "n")
	if m.form == nil || m.form.Kind() != catalog.KindCategories {
		t.Fatal("category form not open")
	}
	m = press(t, m, "enter")
	if len(b.created) != 0 || m.form == nil {
		t.Fatal("empty required name was submitted")
	}
	m = press(t, m, "P", "o", "e", "t", "r", "y", "enter")
	if len(b.created) != 1 {
		t.Fatalf("created = %v", b.created)
	}
	if in, ok := b.created[0].(catalog.CategoryInput); !ok || in.Name != "Poetry" {
		t.Errorf("payload = %#v", b.created[0])
	}
	if m.form != nil {
		t.Error("form still open after success")
	}
}

func TestLateSaveLeavesNewerFormOpen(t *testing.T) {
	b := newMemBackend()
	m := newTestModel(t, b)

	m = press(t, m, "5", "n", "P", "o", "e", "t", "r", "y")
	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = next.(Model)
	var submit *tui.FormSubmitMsg
	for _, msg := range collect(cmd) {
		if s, ok := msg.(tui.FormSubmitMsg); ok {
			submit = &s
		}
	}
	if submit == nil {
		t.Fatal("enter did not submit the category form")
	}
	next, save := m.Update(*submit)
	m = next.(Model)

	// the save is still in flight when the user dismisses the form and
	// starts another one
	m = press(t, m, "esc", "n", "D")
	if m.form == nil {
		t.Fatal("second form not open")
	}
	m = run(t, m, save)

	if len(b.created) != 1 {
		t.Fatalf("created = %v", b.created)
	}
	if m.form == nil {
		t.Fatal("late save result closed the newer form")
	}
	if got := m.form.Value("nombre"); got != "D" {
		t.Errorf("newer form name = %q", got)
	}
	if msg, level := m.toast.Message(); msg != "Category created" || level != tui.ToastSuccess {
		t.Errorf("toast = %q, %v", msg, level)
	}
}

func TestLoadFailureKeepsPreviousData(t *testing.T) {
	b := newMemBackend()
	m := newTestModel(t, b)

	b.mu.Lock()
	b.failing[catalog.KindBooks] = &api.StatusError{StatusCode: 500}
	b.mu.Unlock()

	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyCtrlR})
	m = run(t, next.(Model), cmd)

	if got := len(m.state.Books()); got != 2 {
		t.Errorf("books = %d after failed reload", got)
	}
	if msg, level := m.toast.Message(); msg != "Error loading books" || level != tui.ToastError {
		t.Errorf("toast = %q, %v", msg, level)
	}
}
