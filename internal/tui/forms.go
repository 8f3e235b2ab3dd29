package tui

import (
	"fmt"
	"time"

	"github.com/blackwell-systems/bibliodash/internal/catalog"
	"github.com/blackwell-systems/bibliodash/internal/util"
)

// FormContext carries select options and date defaults into the form
// builders.
type FormContext struct {
	Authors    []catalog.Option
	Categories []catalog.Option
	Books      []catalog.Option
	Users      []catalog.Option

	Now            time.Time
	LoanPeriodDays int
}

func (c FormContext) today() string { return util.Today(c.Now) }

func creating(mode catalog.Mode) bool {
	_, ok := mode.(catalog.Creating)
	return ok
}

// The builders below pre-fill from the record's Input, so a form edits
// exactly the fields its Payload sends.

func CategoryForm(mode catalog.Mode, c catalog.Category) Form {
	in := c.Input()
	return NewForm(catalog.KindCategories, mode,
		TextField("nombre", "Name", true, in.Name),
		TextField("descripcion", "Description", false, in.Description),
	)
}

func AuthorForm(mode catalog.Mode, a catalog.Author) Form {
	in := a.Input()
	bio := ""
	if in.Biography != nil {
		bio = *in.Biography
	}
	return NewForm(catalog.KindAuthors, mode,
		TextField("nombre", "Name", true, in.Name),
		TextField("nacionalidad", "Nationality", true, in.Nationality),
		DateField("fecha_nacimiento", "Birth date", true, in.BirthDate),
		TextAreaField("biografia", "Biography", false, bio),
	)
}

// BookForm starts new books as available.
func BookForm(mode catalog.Mode, b catalog.Book, ctx FormContext) Form {
	in := b.Input()
	if creating(mode) {
		in.Available = true
	}
	return NewForm(catalog.KindBooks, mode,
		TextField("titulo", "Title", true, in.Title),
		SelectField("autor_id", "Author", true, ctx.Authors, in.AuthorID),
		SelectField("categoria_id", "Category", true, ctx.Categories, in.CategoryID),
		TextField("isbn", "ISBN", false, in.ISBN),
		NumberField("año_publicacion", "Year", true, in.Year),
		NumberField("paginas", "Pages", true, in.Pages),
		ToggleField("disponible", "Available", in.Available),
	)
}

// UserForm defaults the registration date to today.
func UserForm(mode catalog.Mode, u catalog.User, ctx FormContext) Form {
	in := u.Input()
	if creating(mode) {
		in.RegisteredOn = ctx.today()
	}
	return NewForm(catalog.KindUsers, mode,
		TextField("nombre", "Name", true, in.Name),
		TextField("email", "Email", true, in.Email),
		TextField("telefono", "Phone", false, in.Phone),
		TextField("direccion", "Address", false, in.Address),
		DateField("fecha_registro", "Registered on", true, in.RegisteredOn),
	)
}

// LoanForm always creates. The loan date defaults to today and the expected
// return to today plus the loan period.
func LoanForm(ctx FormContext) Form {
	return NewForm(catalog.KindLoans, catalog.Creating{},
		SelectField("libro_id", "Book", true, ctx.Books, 0),
		SelectField("usuario_id", "User", true, ctx.Users, 0),
		DateField("fecha_prestamo", "Loan date", true, ctx.today()),
		DateField("fecha_devolucion_esperada", "Expected return", true, util.DueDate(ctx.Now, ctx.LoanPeriodDays)),
	)
}

// ReviewForm defaults new reviews to five stars dated today.
func ReviewForm(mode catalog.Mode, r catalog.Review, ctx FormContext) Form {
	in := r.Input()
	if creating(mode) {
		in.Rating, in.Date = maxRating, ctx.today()
	}
	return NewForm(catalog.KindReviews, mode,
		SelectField("libro_id", "Book", true, ctx.Books, in.BookID),
		SelectField("usuario_id", "User", true, ctx.Users, in.UserID),
		RatingField("calificacion", "Rating", in.Rating),
		TextAreaField("comentario", "Comment", false, in.Comment),
		DateField("fecha", "Date", true, in.Date),
	)
}

// RefreshOptions updates every select field from ctx.
func (f *Form) RefreshOptions(ctx FormContext) {
	f.SetOptions("autor_id", ctx.Authors)
	f.SetOptions("categoria_id", ctx.Categories)
	f.SetOptions("libro_id", ctx.Books)
	f.SetOptions("usuario_id", ctx.Users)
}

// Payload builds the request body from the current field values. Call
// Validate first.
func (f Form) Payload() (catalog.Payload, error) {
	switch f.kind {
	case catalog.KindCategories:
		return catalog.CategoryInput{
			Name:        f.Value("nombre"),
			Description: f.Value("descripcion"),
		}, nil
	case catalog.KindAuthors:
		return catalog.AuthorInput{
			Name:        f.Value("nombre"),
			Nationality: f.Value("nacionalidad"),
			BirthDate:   f.Value("fecha_nacimiento"),
			Biography:   catalog.Optional(f.Value("biografia")),
		}, nil
	case catalog.KindBooks:
		return catalog.BookInput{
			Title:      f.Value("titulo"),
			AuthorID:   f.Selected("autor_id"),
			CategoryID: f.Selected("categoria_id"),
			ISBN:       f.Value("isbn"),
			Year:       f.Int("año_publicacion"),
			Pages:      f.Int("paginas"),
			Available:  f.Checked("disponible"),
		}, nil
	case catalog.KindUsers:
		return catalog.UserInput{
			Name:         f.Value("nombre"),
			Email:        f.Value("email"),
			Phone:        f.Value("telefono"),
			Address:      f.Value("direccion"),
			RegisteredOn: f.Value("fecha_registro"),
		}, nil
	case catalog.KindLoans:
		return catalog.LoanInput{
			BookID:   f.Selected("libro_id"),
			UserID:   f.Selected("usuario_id"),
			LoanDate: f.Value("fecha_prestamo"),
			DueDate:  f.Value("fecha_devolucion_esperada"),
			Returned: false,
		}, nil
	case catalog.KindReviews:
		return catalog.ReviewInput{
			BookID:  f.Selected("libro_id"),
			UserID:  f.Selected("usuario_id"),
			Rating:  f.Rating("calificacion"),
			Comment: f.Value("comentario"),
			Date:    f.Value("fecha"),
		}, nil
	}
	return nil, fmt.Errorf("no payload for %s", f.kind)
}
