package tui

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/samber/lo"

	"github.com/blackwell-systems/bibliodash/internal/catalog"
	"github.com/blackwell-systems/bibliodash/internal/util"
)

// RenderOptions is the view state a renderer needs besides the records.
// Renderers are pure: the same records and options give the same output.
type RenderOptions struct {
	Cursor     int // index of the selected record, -1 for none
	Width      int // 0 means unbounded
	Height     int // 0 means unbounded
	DateLayout string
	Now        time.Time
}

func (o RenderOptions) date(s string) string {
	layout := o.DateLayout
	if layout == "" {
		layout = util.ISODate
	}
	return util.FormatDate(s, layout)
}

const cardWidth = 34

var categoryIcons = []string{"📖", "🎓", "🚀", "🧙", "💜", "🔍", "👤", "🪶", "🏛", "🧠", "👻", "🗺"}

var (
	tableHeader   = lipgloss.NewStyle().Foreground(ColorWhite).Bold(true).Padding(0, 1)
	tableCell     = lipgloss.NewStyle().Padding(0, 1)
	tableSelected = lipgloss.NewStyle().Foreground(ColorYellow).Bold(true).Padding(0, 1)

	cardStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(ColorGray).
			Padding(0, 1).
			Width(cardWidth)
	cardSelected = cardStyle.BorderForeground(ColorYellow)

	avatarStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("15")).
			Background(ColorBlue).
			Bold(true).
			Padding(0, 1)

	placeholderStyle = StyleHelp.
				BorderStyle(lipgloss.RoundedBorder()).
				BorderForeground(ColorGray).
				Padding(1, 4)
)

// placeholder is the single element shown for an empty collection.
func placeholder(text string) string {
	return placeholderStyle.Render(text)
}

// window returns the [start, end) slice of n items, capacity at a time,
// that keeps cursor visible.
func window(n, cursor, capacity int) (int, int) {
	if capacity <= 0 || n <= capacity {
		return 0, n
	}
	start := 0
	if cursor >= capacity {
		start = cursor - capacity + 1
	}
	if start+capacity > n {
		start = n - capacity
	}
	return start, start + capacity
}

func scrollHint(start, end, n int, noun string) string {
	if start == 0 && end == n {
		return ""
	}
	return "\n" + StyleHelp.Render(fmt.Sprintf(" %d-%d of %d %s", start+1, end, n, noun))
}

func newTable(o RenderOptions, offset int) *table.Table {
	selected := o.Cursor - offset
	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(StyleHelp).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == table.HeaderRow:
				return tableHeader
			case row == selected:
				return tableSelected
			}
			return tableCell
		})
	if o.Width > 0 {
		t = t.Width(o.Width)
	}
	return t
}

// tableCapacity is the number of data rows that fit in height: borders
// and the header take four lines.
func tableCapacity(height int) int {
	if height <= 0 {
		return 0
	}
	return max(1, height-5)
}

func availabilityBadge(available catalog.Flag) string {
	if available {
		return styleBadgeOK.Render("Available")
	}
	return styleBadgeBad.Render("On loan")
}

func loanBadge(l catalog.Loan) string {
	if l.Returned {
		return styleBadgeOK.Render("Returned")
	}
	return styleBadgeWarn.Render("Active")
}

func yearText(y int) string {
	if y == 0 {
		return ""
	}
	return strconv.Itoa(y)
}

// RenderBooks renders books as a table with an availability badge.
func RenderBooks(books []catalog.Book, o RenderOptions) string {
	if len(books) == 0 {
		return placeholder("No books found")
	}
	start, end := window(len(books), o.Cursor, tableCapacity(o.Height))
	rows := make([][]string, 0, end-start)
	for _, b := range books[start:end] {
		rows = append(rows, []string{
			strconv.Itoa(b.ID),
			fit(b.Title, 36),
			fit(b.AuthorName, 24),
			fit(b.CategoryName, 18),
			fit(b.ISBN, 17),
			yearText(b.Year),
			availabilityBadge(b.Available),
		})
	}
	t := newTable(o, start).
		Headers("ID", "Title", "Author", "Category", "ISBN", "Year", "Status").
		Rows(rows...)
	return t.Render() + scrollHint(start, end, len(books), "books")
}

// RenderLoans renders loans as a table. A loan shows its actual return
// date when it has one, otherwise the expected date highlighted.
func RenderLoans(loans []catalog.Loan, o RenderOptions) string {
	if len(loans) == 0 {
		return placeholder("No loans found")
	}
	start, end := window(len(loans), o.Cursor, tableCapacity(o.Height))
	rows := make([][]string, 0, end-start)
	for _, l := range loans[start:end] {
		due := StyleHighlight.Render(o.date(l.DueDate))
		if l.ReturnedOn != nil && *l.ReturnedOn != "" {
			due = o.date(*l.ReturnedOn)
		}
		book := fit(l.BookTitle, 30)
		if l.AuthorName != "" {
			book += StyleHelp.Render(" · " + fit(l.AuthorName, 20))
		}
		rows = append(rows, []string{
			strconv.Itoa(l.ID),
			book,
			fit(l.UserName, 22),
			o.date(l.LoanDate),
			due,
			loanBadge(l),
		})
	}
	t := newTable(o, start).
		Headers("ID", "Book", "User", "Loaned", "Return", "Status").
		Rows(rows...)
	return t.Render() + scrollHint(start, end, len(loans), "loans")
}

func card(lines []string, selected bool) string {
	st := cardStyle
	if selected {
		st = cardSelected
	}
	return st.Render(strings.Join(lines, "\n"))
}

// grid lays cards out left to right, scrolling by rows of cards so that
// the selected card stays visible. Every card has lines content lines.
func grid(cards []string, o RenderOptions, lines int, noun string) string {
	perRow := 3
	if o.Width > 0 {
		perRow = max(1, o.Width/(cardWidth+3))
	}
	rows := lo.Chunk(cards, perRow)

	capacity := 0
	if o.Height > 0 {
		capacity = max(1, o.Height/(lines+2))
	}
	cursorRow := 0
	if o.Cursor > 0 {
		cursorRow = o.Cursor / perRow
	}
	start, end := window(len(rows), cursorRow, capacity)

	rendered := make([]string, 0, end-start)
	for _, row := range rows[start:end] {
		rendered = append(rendered, lipgloss.JoinHorizontal(lipgloss.Top, lo.Map(row, func(c string, _ int) string {
			return c + " "
		})...))
	}
	out := lipgloss.JoinVertical(lipgloss.Left, rendered...)
	if start != 0 || end != len(rows) {
		out += "\n" + StyleHelp.Render(fmt.Sprintf(" %d %s", len(cards), noun))
	}
	return out
}

const inner = cardWidth - 2

// RenderAuthors renders one card per author with initials and age.
func RenderAuthors(authors []catalog.Author, o RenderOptions) string {
	if len(authors) == 0 {
		return placeholder("No authors found")
	}
	cards := make([]string, len(authors))
	for i, a := range authors {
		born := o.date(a.BirthDate)
		if age, ok := util.Age(a.BirthDate, o.Now); ok {
			born = fmt.Sprintf("%s (%d years)", born, age)
		}
		bio := StyleHelp.Render("No biography")
		if a.Biography != nil && strings.TrimSpace(*a.Biography) != "" {
			bio = fit(*a.Biography, inner)
		}
		cards[i] = card([]string{
			avatarStyle.Render(util.Initials(clean(a.Name))) + " " + StyleHeader.Render(fit(a.Name, inner-5)),
			StyleMeta.Render(fit(a.Nationality, inner)),
			fit("Born "+born, inner),
			bio,
		}, i == o.Cursor)
	}
	return grid(cards, o, 4, "authors")
}

// RenderUsers renders one card per user.
func RenderUsers(users []catalog.User, o RenderOptions) string {
	if len(users) == 0 {
		return placeholder("No users found")
	}
	cards := make([]string, len(users))
	for i, u := range users {
		cards[i] = card([]string{
			avatarStyle.Render(util.Initials(clean(u.Name))) + " " + StyleHeader.Render(fit(u.Name, inner-5)),
			StyleMeta.Render(fit(u.Email, inner)),
			fit("☎ "+u.Phone, inner),
			fit("⌂ "+u.Address, inner),
			StyleHelp.Render(fit("Member since "+o.date(u.RegisteredOn), inner)),
		}, i == o.Cursor)
	}
	return grid(cards, o, 5, "users")
}

// RenderCategories renders one card per category, rotating icons by index.
func RenderCategories(categories []catalog.Category, o RenderOptions) string {
	if len(categories) == 0 {
		return placeholder("No categories found")
	}
	cards := make([]string, len(categories))
	for i, c := range categories {
		icon := categoryIcons[i%len(categoryIcons)]
		cards[i] = card([]string{
			icon + " " + StyleHeader.Render(fit(c.Name, inner-3)),
			StyleHelp.Render(fit(c.Description, inner)),
		}, i == o.Cursor)
	}
	return grid(cards, o, 2, "categories")
}

// RenderReviews renders one card per review with its star rating.
func RenderReviews(reviews []catalog.Review, o RenderOptions) string {
	if len(reviews) == 0 {
		return placeholder("No reviews found")
	}
	cards := make([]string, len(reviews))
	for i, r := range reviews {
		cards[i] = card(reviewLines(r, o), i == o.Cursor)
	}
	return grid(cards, o, 4, "reviews")
}

func reviewLines(r catalog.Review, o RenderOptions) []string {
	return []string{
		StyleHeader.Render(fit(r.BookTitle, inner)),
		StyleHighlight.Render(util.Stars(r.Rating)) + " " + StyleMeta.Render(fit(r.UserName, inner-6)),
		fit(r.Comment, inner),
		StyleHelp.Render(o.date(r.Date)),
	}
}

// RenderBookReviews renders the reviews of a single book as a compact list.
func RenderBookReviews(title string, reviews []catalog.Review, o RenderOptions) string {
	var b strings.Builder
	b.WriteString(StyleHeader.Render("Reviews of " + fit(title, 40)))
	b.WriteString("\n")
	if len(reviews) == 0 {
		b.WriteString(StyleHelp.Render("  No reviews yet"))
		return b.String()
	}
	for _, r := range reviews {
		b.WriteString(fmt.Sprintf("  %s %s  %s\n",
			StyleHighlight.Render(fmt.Sprintf("%-5s", util.Stars(r.Rating))),
			StyleHelp.Render(o.date(r.Date)),
			fit(r.Comment, max(20, o.Width-24)),
		))
	}
	return strings.TrimRight(b.String(), "\n")
}

// RenderStats renders the summary strip. Before the first successful
// refresh it shows dashes.
func RenderStats(s catalog.Stats, ok bool) string {
	items := []struct {
		label string
		value int
	}{
		{"Books", s.Books},
		{"Authors", s.Authors},
		{"Users", s.Users},
		{"Active loans", s.ActiveLoans},
		{"Categories", s.Categories},
		{"Reviews", s.Reviews},
	}
	parts := make([]string, len(items))
	for i, it := range items {
		v := "–"
		if ok {
			v = strconv.Itoa(it.value)
		}
		parts[i] = StyleHelp.Render(it.label+" ") + StyleHeader.Render(v)
	}
	return strings.Join(parts, StyleHelp.Render("  │  "))
}

// RenderLoanTabs renders the all/active/returned selector.
func RenderLoanTabs(active catalog.LoanStatus) string {
	tabs := []struct {
		status catalog.LoanStatus
		label  string
	}{
		{catalog.LoansAll, "All"},
		{catalog.LoansActive, "Active"},
		{catalog.LoansReturned, "Returned"},
	}
	parts := make([]string, len(tabs))
	for i, t := range tabs {
		if t.status == active {
			parts[i] = styleTabActive.Render(t.label)
		} else {
			parts[i] = styleTab.Render(t.label)
		}
	}
	return strings.Join(parts, " ")
}

// RenderSectionTabs renders the section bar with the current kind marked.
func RenderSectionTabs(current catalog.Kind) string {
	parts := make([]string, len(catalog.Kinds))
	for i, k := range catalog.Kinds {
		label := fmt.Sprintf("%d %s", i+1, k.Title())
		if k == current {
			parts[i] = styleTabActive.Render(label)
		} else {
			parts[i] = styleTab.Render(label)
		}
	}
	return strings.Join(parts, "")
}
