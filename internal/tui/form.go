package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/blackwell-systems/bibliodash/internal/catalog"
	"github.com/blackwell-systems/bibliodash/internal/util"
)

// FieldKind selects how a form field is edited and validated.
type FieldKind int

const (
	FieldText FieldKind = iota
	FieldNumber
	FieldDate
	FieldToggle
	FieldSelect
	FieldRating
	FieldTextArea
)

const (
	fieldWidth = 42
	labelWidth = 18
	maxRating  = 5
	areaHeight = 3
)

// Field is one input of a Form.
type Field struct {
	Key      string
	Label    string
	Kind     FieldKind
	Required bool

	input   textinput.Model
	area    textarea.Model
	raw     string // pre-filled textarea value
	seed    string // raw as the textarea holds it
	on      bool
	options []catalog.Option
	choice  int // index into options, -1 for none
	rating  int
}

func newInput(value, placeholder string, limit int) textinput.Model {
	in := textinput.New()
	in.Placeholder = placeholder
	in.SetValue(value)
	in.CharLimit = limit
	in.Width = fieldWidth
	in.Prompt = "│ "
	return in
}

func TextField(key, label string, required bool, value string) Field {
	return Field{Key: key, Label: label, Kind: FieldText, Required: required, input: newInput(value, label, 500)}
}

// TextAreaField edits multi-line text. Until the user edits it, the field
// reports value unchanged, tabs included.
func TextAreaField(key, label string, required bool, value string) Field {
	ta := textarea.New()
	ta.Placeholder = label
	ta.Prompt = "│ "
	ta.ShowLineNumbers = false
	ta.CharLimit = 0
	ta.SetWidth(fieldWidth + 2)
	ta.SetHeight(areaHeight)
	ta.SetValue(value)
	return Field{Key: key, Label: label, Kind: FieldTextArea, Required: required, area: ta, raw: value, seed: ta.Value()}
}

// NumberField shows value, or nothing when value is 0.
func NumberField(key, label string, required bool, value int) Field {
	s := ""
	if value != 0 {
		s = strconv.Itoa(value)
	}
	in := newInput(s, "0", 9)
	in.Width = 10
	return Field{Key: key, Label: label, Kind: FieldNumber, Required: required, input: in}
}

// DateField takes and returns ISO dates.
func DateField(key, label string, required bool, value string) Field {
	if len(value) > len(util.ISODate) {
		value = value[:len(util.ISODate)]
	}
	in := newInput(value, "YYYY-MM-DD", len(util.ISODate))
	in.Width = 12
	return Field{Key: key, Label: label, Kind: FieldDate, Required: required, input: in}
}

func ToggleField(key, label string, on bool) Field {
	return Field{Key: key, Label: label, Kind: FieldToggle, on: on}
}

// SelectField preselects the option whose value is selected; 0 selects nothing.
func SelectField(key, label string, required bool, options []catalog.Option, selected int) Field {
	f := Field{Key: key, Label: label, Kind: FieldSelect, Required: required, choice: -1}
	f.setOptions(options, selected)
	return f
}

// RatingField edits a 1-5 star rating.
func RatingField(key, label string, value int) Field {
	value = max(1, min(maxRating, value))
	return Field{Key: key, Label: label, Kind: FieldRating, Required: true, rating: value}
}

func (f *Field) setOptions(options []catalog.Option, selected int) {
	f.options = options
	f.choice = -1
	for i, o := range options {
		if o.Value == selected {
			f.choice = i
			break
		}
	}
}

func (f Field) textual() bool {
	return f.Kind == FieldText || f.Kind == FieldNumber || f.Kind == FieldDate
}

// text is the current content of a text-like field. The textarea turns tabs
// into spaces, so a pre-filled value the user never touched is returned as
// given.
func (f Field) text() string {
	if f.Kind != FieldTextArea {
		return f.input.Value()
	}
	if v := f.area.Value(); v != f.seed {
		return v
	}
	return f.raw
}

// FormSubmitMsg is emitted when a valid form is submitted.
type FormSubmitMsg struct {
	Mode    catalog.Mode
	Payload catalog.Payload
}

// FormCancelMsg is emitted when the user dismisses the form.
type FormCancelMsg struct{}

// Form is the create/edit modal for one entity kind.
type Form struct {
	kind      catalog.Kind
	mode      catalog.Mode
	fields    []Field
	focused   int
	err       string
	pending   bool
	keys      FormKeys
	activeCmd string
}

// NewForm creates a form and focuses its first field.
func NewForm(kind catalog.Kind, mode catalog.Mode, fields ...Field) Form {
	f := Form{kind: kind, mode: mode, fields: fields, keys: NewFormKeys()}
	f.focus(0)
	return f
}

func (f Form) Kind() catalog.Kind { return f.kind }
func (f Form) Mode() catalog.Mode { return f.mode }
func (f Form) Pending() bool      { return f.pending }

// Failed re-enables the form after a rejected submit and shows msg.
func (f *Form) Failed(msg string) {
	f.pending = false
	f.err = clean(msg)
}

// SetOptions replaces the options of a select field, keeping the current
// selection when it still exists.
func (f *Form) SetOptions(key string, options []catalog.Option) {
	for i := range f.fields {
		fd := &f.fields[i]
		if fd.Key != key || fd.Kind != FieldSelect {
			continue
		}
		selected := 0
		if fd.choice >= 0 {
			selected = fd.options[fd.choice].Value
		}
		fd.setOptions(options, selected)
	}
}

func (f *Form) focus(i int) tea.Cmd {
	if len(f.fields) == 0 {
		return nil
	}
	f.focused = (i + len(f.fields)) % len(f.fields)
	var cmd tea.Cmd
	for j := range f.fields {
		fd := &f.fields[j]
		switch {
		case fd.Kind == FieldTextArea && j == f.focused:
			cmd = fd.area.Focus()
		case fd.Kind == FieldTextArea:
			fd.area.Blur()
		case !fd.textual():
		case j == f.focused:
			cmd = fd.input.Focus()
		default:
			fd.input.Blur()
		}
	}
	return cmd
}

func (f Form) field(key string) (Field, bool) {
	for _, fd := range f.fields {
		if fd.Key == key {
			return fd, true
		}
	}
	return Field{}, false
}

// Value returns the text of a field as typed. Number and date fields are
// trimmed since they are parsed.
func (f Form) Value(key string) string {
	fd, _ := f.field(key)
	if fd.Kind == FieldNumber || fd.Kind == FieldDate {
		return strings.TrimSpace(fd.text())
	}
	return fd.text()
}

// Int returns the parsed value of a number field, or 0 when it is empty.
func (f Form) Int(key string) int {
	n, _ := strconv.Atoi(f.Value(key))
	return n
}

func (f Form) Checked(key string) bool {
	fd, _ := f.field(key)
	return fd.on
}

// Selected returns the option value of a select field, or 0.
func (f Form) Selected(key string) int {
	fd, _ := f.field(key)
	if fd.choice < 0 || fd.choice >= len(fd.options) {
		return 0
	}
	return fd.options[fd.choice].Value
}

func (f Form) Rating(key string) int {
	fd, _ := f.field(key)
	return fd.rating
}

// Validate applies the per-field constraints: required fields are filled,
// numbers parse, dates are ISO dates. There is no cross-field validation.
func (f Form) Validate() error {
	for _, fd := range f.fields {
		v := strings.TrimSpace(fd.text())
		switch fd.Kind {
		case FieldText, FieldTextArea:
			if fd.Required && v == "" {
				return fmt.Errorf("%s is required", fd.Label)
			}
		case FieldNumber:
			if v == "" {
				if fd.Required {
					return fmt.Errorf("%s is required", fd.Label)
				}
				continue
			}
			if _, err := strconv.Atoi(v); err != nil {
				return fmt.Errorf("%s must be a whole number", fd.Label)
			}
		case FieldDate:
			if v == "" {
				if fd.Required {
					return fmt.Errorf("%s is required", fd.Label)
				}
				continue
			}
			if _, ok := util.ParseDate(v); !ok || len(v) != len(util.ISODate) {
				return fmt.Errorf("%s must be a date (YYYY-MM-DD)", fd.Label)
			}
		case FieldSelect:
			if fd.Required && fd.choice < 0 {
				return fmt.Errorf("select the %s", strings.ToLower(fd.Label))
			}
		case FieldRating:
			if fd.rating < 1 || fd.rating > maxRating {
				return fmt.Errorf("%s must be between 1 and %d", fd.Label, maxRating)
			}
		}
	}
	return nil
}

func (f Form) Update(msg tea.Msg) (Form, tea.Cmd) {
	switch msg := msg.(type) {
	case ClearActiveCmdMsg:
		f.activeCmd = ""
		return f, nil

	case tea.KeyMsg:
		cur := &f.fields[f.focused]
		if cur.Kind == FieldTextArea {
			return f.updateArea(msg)
		}
		switch {
		case key.Matches(msg, f.keys.Cancel):
			return f, func() tea.Msg { return FormCancelMsg{} }

		case key.Matches(msg, f.keys.Submit):
			return f.submit()

		case key.Matches(msg, f.keys.Next):
			f.activeCmd = "tab"
			return f, tea.Batch(f.focus(f.focused+1), HighlightCmd())

		case key.Matches(msg, f.keys.Prev):
			f.activeCmd = "tab"
			return f, tea.Batch(f.focus(f.focused-1), HighlightCmd())

		case cur.Kind == FieldToggle && key.Matches(msg, f.keys.Toggle, f.keys.Left, f.keys.Right):
			cur.on = !cur.on
			return f, nil

		case cur.Kind == FieldSelect && key.Matches(msg, f.keys.Left, f.keys.Right):
			if n := len(cur.options); n > 0 {
				step := 1
				if key.Matches(msg, f.keys.Left) {
					step = -1
				}
				// -1 is the "Select..." slot
				cur.choice = (cur.choice+1+step+n+1)%(n+1) - 1
			}
			return f, nil

		case cur.Kind == FieldRating && key.Matches(msg, f.keys.Left, f.keys.Right):
			if key.Matches(msg, f.keys.Left) {
				cur.rating = max(1, cur.rating-1)
			} else {
				cur.rating = min(maxRating, cur.rating+1)
			}
			return f, nil

		case cur.Kind == FieldRating:
			if n, err := strconv.Atoi(msg.String()); err == nil && n >= 1 && n <= maxRating {
				cur.rating = n
			}
			return f, nil
		}

		if cur.textual() {
			var cmd tea.Cmd
			cur.input, cmd = cur.input.Update(msg)
			return f, cmd
		}
		return f, nil
	}

	switch cur := &f.fields[f.focused]; {
	case cur.Kind == FieldTextArea:
		var cmd tea.Cmd
		cur.area, cmd = cur.area.Update(msg)
		return f, cmd
	case cur.textual():
		var cmd tea.Cmd
		cur.input, cmd = cur.input.Update(msg)
		return f, cmd
	}
	return f, nil
}

// updateArea routes keys while a textarea is focused: enter and the arrows
// edit the text, so only tab moves between fields and ctrl+s saves.
func (f Form) updateArea(msg tea.KeyMsg) (Form, tea.Cmd) {
	switch {
	case key.Matches(msg, f.keys.Cancel):
		return f, func() tea.Msg { return FormCancelMsg{} }
	case key.Matches(msg, f.keys.Save):
		return f.submit()
	case key.Matches(msg, f.keys.NextField):
		f.activeCmd = "tab"
		return f, tea.Batch(f.focus(f.focused+1), HighlightCmd())
	case key.Matches(msg, f.keys.PrevField):
		f.activeCmd = "tab"
		return f, tea.Batch(f.focus(f.focused-1), HighlightCmd())
	}
	cur := &f.fields[f.focused]
	var cmd tea.Cmd
	cur.area, cmd = cur.area.Update(msg)
	return f, cmd
}

func (f Form) submit() (Form, tea.Cmd) {
	if f.pending {
		return f, nil
	}
	if err := f.Validate(); err != nil {
		f.err = err.Error()
		return f, nil
	}
	payload, err := f.Payload()
	if err != nil {
		f.err = err.Error()
		return f, nil
	}
	f.err = ""
	f.pending = true
	f.activeCmd = "enter"
	mode := f.mode
	return f, tea.Batch(
		func() tea.Msg { return FormSubmitMsg{Mode: mode, Payload: payload} },
		HighlightCmd(),
	)
}

func (f Form) title() string {
	verb := "New"
	if _, ok := f.mode.(catalog.Editing); ok {
		verb = "Edit"
	}
	if f.kind == catalog.KindLoans {
		return "Register Loan"
	}
	s := f.kind.Singular()
	return verb + " " + strings.ToUpper(s[:1]) + s[1:]
}

func (f Form) renderField(fd Field, active bool) string {
	switch fd.Kind {
	case FieldToggle:
		if fd.on {
			return "│ " + StyleSuccess.Render("[x] yes")
		}
		return "│ " + StyleHelp.Render("[ ] no")
	case FieldSelect:
		label := "Select..."
		if fd.choice >= 0 && fd.choice < len(fd.options) {
			label = fit(fd.options[fd.choice].Label, fieldWidth-4)
		}
		if active {
			return "│ " + StyleHighlight.Render("‹ "+label+" ›")
		}
		return "│ " + label
	case FieldRating:
		stars := util.Stars(fd.rating) + StyleHelp.Render(strings.Repeat("☆", maxRating-fd.rating))
		return "│ " + StyleHighlight.Render(stars)
	case FieldTextArea:
		return fd.area.View()
	default:
		return fd.input.View()
	}
}

func (f Form) shortcuts() []ShortcutEntry {
	if len(f.fields) > 0 && f.fields[f.focused].Kind == FieldTextArea {
		return []ShortcutEntry{
			{Key: "tab", Label: "tab navigate"},
			{Key: "", Label: "enter newline"},
			{Key: "enter", Label: "ctrl+s save"},
			{Key: "", Label: "esc cancel"},
		}
	}
	return []ShortcutEntry{
		{Key: "tab", Label: "tab/↑↓ navigate"},
		{Key: "", Label: "←→ change"},
		{Key: "enter", Label: "enter save"},
		{Key: "", Label: "esc cancel"},
	}
}

func (f Form) View() string {
	formLabel := lipgloss.NewStyle().
		Foreground(ColorGray).
		Width(labelWidth).
		Align(lipgloss.Right).
		PaddingRight(1)
	formLabelActive := formLabel.
		Foreground(ColorYellow).
		Bold(true)

	const w = 64
	sep := styleSeparator.Render(strings.Repeat("─", w))

	var b strings.Builder

	b.WriteString(StyleHeader.Render(f.title()))
	if e, ok := f.mode.(catalog.Editing); ok {
		b.WriteString(StyleHelp.Render(fmt.Sprintf("  #%d", e.ID)))
	}
	b.WriteString("\n\n")
	b.WriteString(sep)
	b.WriteString("\n\n")

	if f.err != "" {
		b.WriteString(StyleError.Render("Error: " + f.err))
		b.WriteString("\n\n")
	}

	for i, fd := range f.fields {
		label := fd.Label
		if fd.Required {
			label += " *"
		}
		active := i == f.focused
		if active {
			label = formLabelActive.Render("› " + label)
		} else {
			label = formLabel.Render(label)
		}
		b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, label, f.renderField(fd, active)))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(sep)
	b.WriteString("\n")

	if f.pending {
		b.WriteString(StyleHighlight.Render("  Saving..."))
	} else {
		b.WriteString(RenderFooterBar(f.shortcuts(), f.activeCmd))
	}
	b.WriteString("\n")

	innerPadding := lipgloss.NewStyle().Padding(0, 2, 0, 1)
	return StyleBorder.Render(innerPadding.Render(b.String()))
}
