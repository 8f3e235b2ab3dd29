package tui_test

import (
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/go-cmp/cmp"

	"github.com/blackwell-systems/bibliodash/internal/catalog"
	"github.com/blackwell-systems/bibliodash/internal/tui"
)

var formCtx = tui.FormContext{
	Authors:        []catalog.Option{{Value: 3, Label: "Frank Herbert"}, {Value: 4, Label: "Ursula K. Le Guin"}},
	Categories:     []catalog.Option{{Value: 2, Label: "Ciencia ficción"}},
	Books:          []catalog.Option{{Value: 1, Label: "Dune - Frank Herbert"}},
	Users:          []catalog.Option{{Value: 9, Label: "Ana Pérez"}},
	Now:            time.Date(2024, 12, 25, 10, 0, 0, 0, time.Local),
	LoanPeriodDays: 14,
}

func typeText(f tui.Form, s string) tui.Form {
	f, _ = f.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)})
	return f
}

func press(f tui.Form, k tea.KeyType) tui.Form {
	f, _ = f.Update(tea.KeyMsg{Type: k})
	return f
}

func TestLoanForm_Defaults(t *testing.T) {
	f := tui.LoanForm(formCtx)
	if got := f.Value("fecha_prestamo"); got != "2024-12-25" {
		t.Errorf("loan date = %q, want today", got)
	}
	if got := f.Value("fecha_devolucion_esperada"); got != "2025-01-08" {
		t.Errorf("expected return = %q, want today+14", got)
	}
	if _, ok := f.Mode().(catalog.Creating); !ok {
		t.Errorf("loan form mode = %T, want Creating", f.Mode())
	}
}

func TestBookForm_CreateDefaultsAvailable(t *testing.T) {
	f := tui.BookForm(catalog.Creating{}, catalog.Book{}, formCtx)
	if !f.Checked("disponible") {
		t.Error("new book not available by default")
	}
	if f.Selected("autor_id") != 0 {
		t.Error("author preselected on create")
	}
}

func TestBookForm_EditPrefill(t *testing.T) {
	b := catalog.Book{ID: 5, Title: "Dune", AuthorID: 3, CategoryID: 2, ISBN: "978-0441013593", Year: 1965, Pages: 412, Available: false}
	f := tui.BookForm(catalog.Editing{ID: 5}, b, formCtx)

	p, err := f.Payload()
	if err != nil {
		t.Fatalf("Payload: %v", err)
	}
	if diff := cmp.Diff(b.Input(), p); diff != "" {
		t.Errorf("pre-filled payload mismatch (-want +got):\n%s", diff)
	}
	if e, ok := f.Mode().(catalog.Editing); !ok || e.ID != 5 {
		t.Errorf("mode = %#v, want Editing{5}", f.Mode())
	}
}

func TestBookForm_TypeAndSubmit(t *testing.T) {
	f := tui.BookForm(catalog.Creating{}, catalog.Book{}, formCtx)
	f = typeText(f, "Dune")
	f = press(f, tea.KeyTab)
	f = press(f, tea.KeyRight) // author: Frank Herbert
	f = press(f, tea.KeyTab)
	f = press(f, tea.KeyRight) // category
	f = press(f, tea.KeyTab)
	f = typeText(f, "978-0441013593")
	f = press(f, tea.KeyTab)
	f = typeText(f, "1965")
	f = press(f, tea.KeyTab)
	f = typeText(f, "412")

	f, cmd := f.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if cmd == nil {
		t.Fatalf("submit returned no command; view:\n%s", f.View())
	}
	if !f.Pending() {
		t.Error("form not pending after submit")
	}

	var submit *tui.FormSubmitMsg
	if batch, ok := cmd().(tea.BatchMsg); ok {
		for _, c := range batch {
			if c == nil {
				continue
			}
			if m, ok := c().(tui.FormSubmitMsg); ok {
				submit = &m
			}
		}
	}
	if submit == nil {
		t.Fatal("no FormSubmitMsg emitted")
	}
	want := catalog.BookInput{Title: "Dune", AuthorID: 3, CategoryID: 2, ISBN: "978-0441013593", Year: 1965, Pages: 412, Available: true}
	if diff := cmp.Diff(want, submit.Payload); diff != "" {
		t.Errorf("payload mismatch (-want +got):\n%s", diff)
	}

	// A second submit while pending is ignored.
	if _, cmd := f.Update(tea.KeyMsg{Type: tea.KeyEnter}); cmd != nil {
		t.Error("second submit while pending produced a command")
	}
}

func TestForm_RequiredFields(t *testing.T) {
	f := tui.CategoryForm(catalog.Creating{}, catalog.Category{})
	f, cmd := f.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if cmd != nil {
		t.Error("empty required field submitted")
	}
	if !strings.Contains(f.View(), "Name is required") {
		t.Errorf("missing validation error in view:\n%s", f.View())
	}
	if f.Pending() {
		t.Error("form pending after failed validation")
	}
}

func TestForm_NumberAndDateValidation(t *testing.T) {
	b := catalog.Book{Title: "X", AuthorID: 3, CategoryID: 2, Year: 1965, Pages: 10}
	f := tui.BookForm(catalog.Editing{ID: 1}, b, formCtx)
	if err := f.Validate(); err != nil {
		t.Fatalf("Validate valid book: %v", err)
	}

	u := tui.UserForm(catalog.Editing{ID: 1}, catalog.User{Name: "Ana", Email: "a@b.c", RegisteredOn: "25/12/2024"}, formCtx)
	if err := u.Validate(); err == nil {
		t.Error("non-ISO date accepted")
	}
}

func TestForm_FailedReenablesSubmit(t *testing.T) {
	f := tui.CategoryForm(catalog.Editing{ID: 3}, catalog.Category{Name: "Clásicos"})
	f, _ = f.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if !f.Pending() {
		t.Fatal("not pending after submit")
	}
	f.Failed("Error saving category")
	if f.Pending() {
		t.Error("still pending after Failed")
	}
	if !strings.Contains(f.View(), "Error saving category") {
		t.Error("failure message not shown")
	}
}

func TestForm_CancelEmitsMsg(t *testing.T) {
	f := tui.CategoryForm(catalog.Creating{}, catalog.Category{})
	_, cmd := f.Update(tea.KeyMsg{Type: tea.KeyEsc})
	if cmd == nil {
		t.Fatal("esc returned no command")
	}
	if _, ok := cmd().(tui.FormCancelMsg); !ok {
		t.Error("esc did not emit FormCancelMsg")
	}
}

func TestAuthorForm_EmptyBiographyIsNil(t *testing.T) {
	f := tui.AuthorForm(catalog.Creating{}, catalog.Author{Name: "A", Nationality: "B", BirthDate: "1900-01-01"})
	p, _ := f.Payload()
	in := p.(catalog.AuthorInput)
	if in.Biography != nil {
		t.Errorf("Biography = %q, want nil", *in.Biography)
	}
}

func TestReviewForm_Defaults(t *testing.T) {
	f := tui.ReviewForm(catalog.Creating{}, catalog.Review{}, formCtx)
	if f.Rating("calificacion") != 5 {
		t.Errorf("default rating = %d, want 5", f.Rating("calificacion"))
	}
	if f.Value("fecha") != "2024-12-25" {
		t.Errorf("default date = %q", f.Value("fecha"))
	}
}

func TestSetOptions_KeepsSelection(t *testing.T) {
	f := tui.ReviewForm(catalog.Editing{ID: 1}, catalog.Review{BookID: 1, UserID: 9, Rating: 3, Date: "2024-01-01"}, formCtx)
	ctx := formCtx
	ctx.Books = append([]catalog.Option{{Value: 7, Label: "Emma - Jane Austen"}}, formCtx.Books...)
	f.RefreshOptions(ctx)
	if f.Selected("libro_id") != 1 {
		t.Errorf("selection lost after refresh: %d", f.Selected("libro_id"))
	}
	ctx.Users = nil
	f.RefreshOptions(ctx)
	if f.Selected("usuario_id") != 0 {
		t.Error("selection kept after option disappeared")
	}
}

func TestEditForms_PrefillRoundTrips(t *testing.T) {
	bio := "Line one.\nLine two.\tTabbed."
	author := catalog.Author{ID: 4, Name: "Ursula K. Le Guin", Nationality: "Estadounidense", BirthDate: "1929-10-21", Biography: &bio}
	category := catalog.Category{ID: 2, Name: "Ciencia ficción", Description: "Futuros posibles y mundos lejanos"}
	user := catalog.User{ID: 9, Name: "Ana Pérez", Email: "ana@example.com", Phone: "555-0101", Address: "Calle 1", RegisteredOn: "2024-03-01"}
	review := catalog.Review{ID: 6, BookID: 1, UserID: 9, Rating: 4, Comment: "Denso.\n\tVale la pena.", Date: "2024-05-02", BookTitle: "Dune", UserName: "Ana Pérez"}

	tests := []struct {
		name string
		form tui.Form
		want catalog.Payload
	}{
		{"author", tui.AuthorForm(catalog.Editing{ID: 4}, author), author.Input()},
		{"category", tui.CategoryForm(catalog.Editing{ID: 2}, category), category.Input()},
		{"user", tui.UserForm(catalog.Editing{ID: 9}, user, formCtx), user.Input()},
		{"review", tui.ReviewForm(catalog.Editing{ID: 6}, review, formCtx), review.Input()},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.form.Validate(); err != nil {
				t.Fatalf("Validate: %v", err)
			}
			got, err := tt.form.Payload()
			if err != nil {
				t.Fatalf("Payload: %v", err)
			}
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("untouched edit changed the record (-want +got):\n%s", diff)
			}
		})
	}
}

func TestAuthorForm_BiographyTakesNewlines(t *testing.T) {
	f := tui.AuthorForm(catalog.Creating{}, catalog.Author{Name: "A", Nationality: "B", BirthDate: "1900-01-01"})
	for n := 0; n < 3; n++ {
		f = press(f, tea.KeyTab)
	}
	f = typeText(f, "One")
	f, _ = f.Update(tea.KeyMsg{Type: tea.KeyEnter})
	f = typeText(f, "Two")
	if f.Pending() {
		t.Fatal("enter in the biography submitted the form")
	}

	p, _ := f.Payload()
	in := p.(catalog.AuthorInput)
	if in.Biography == nil || *in.Biography != "One\nTwo" {
		t.Fatalf("Biography = %v, want \"One\\nTwo\"", in.Biography)
	}

	f, cmd := f.Update(tea.KeyMsg{Type: tea.KeyCtrlS})
	if cmd == nil || !f.Pending() {
		t.Error("ctrl+s did not submit from the biography")
	}
}

func TestCategoryForm_SendsTextAsTyped(t *testing.T) {
	f := tui.CategoryForm(catalog.Editing{ID: 1}, catalog.Category{Name: "  Poesía "})
	p, err := f.Payload()
	if err != nil {
		t.Fatalf("Payload: %v", err)
	}
	if got := p.(catalog.CategoryInput).Name; got != "  Poesía " {
		t.Errorf("Name = %q, want surrounding spaces kept", got)
	}

	blank := tui.CategoryForm(catalog.Creating{}, catalog.Category{Name: "   "})
	if err := blank.Validate(); err == nil {
		t.Error("whitespace-only required field accepted")
	}
}

func TestForm_MissingSelectionMessage(t *testing.T) {
	f := tui.LoanForm(formCtx)
	err := f.Validate()
	if err == nil || err.Error() != "select the book" {
		t.Errorf("Validate = %v, want \"select the book\"", err)
	}
}
