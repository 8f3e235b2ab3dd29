package catalog

// Payload is the body sent on create or update. Server-assigned and joined
// fields are never part of it.
type Payload interface {
	Kind() Kind
}

type CategoryInput struct {
	Name        string `json:"nombre"`
	Description string `json:"descripcion"`
}

// AuthorInput sends Biography as null when it is empty.
type AuthorInput struct {
	Name        string  `json:"nombre"`
	Nationality string  `json:"nacionalidad"`
	BirthDate   string  `json:"fecha_nacimiento"`
	Biography   *string `json:"biografia"`
}

type BookInput struct {
	Title      string `json:"titulo"`
	AuthorID   int    `json:"autor_id"`
	CategoryID int    `json:"categoria_id"`
	ISBN       string `json:"isbn"`
	Year       int    `json:"año_publicacion"`
	Pages      int    `json:"paginas"`
	Available  bool   `json:"disponible"`
}

type UserInput struct {
	Name         string `json:"nombre"`
	Email        string `json:"email"`
	Phone        string `json:"telefono"`
	Address      string `json:"direccion"`
	RegisteredOn string `json:"fecha_registro"`
}

// LoanInput always carries devuelto=false; loans are returned through the
// dedicated return endpoint.
type LoanInput struct {
	BookID   int    `json:"libro_id"`
	UserID   int    `json:"usuario_id"`
	LoanDate string `json:"fecha_prestamo"`
	DueDate  string `json:"fecha_devolucion_esperada"`
	Returned bool   `json:"devuelto"`
}

type ReviewInput struct {
	BookID  int    `json:"libro_id"`
	UserID  int    `json:"usuario_id"`
	Rating  int    `json:"calificacion"`
	Comment string `json:"comentario"`
	Date    string `json:"fecha"`
}

func (CategoryInput) Kind() Kind { return KindCategories }
func (AuthorInput) Kind() Kind   { return KindAuthors }
func (BookInput) Kind() Kind     { return KindBooks }
func (UserInput) Kind() Kind     { return KindUsers }
func (LoanInput) Kind() Kind     { return KindLoans }
func (ReviewInput) Kind() Kind   { return KindReviews }

// Optional returns nil for an empty string.
func Optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func (c Category) Input() CategoryInput {
	return CategoryInput{Name: c.Name, Description: c.Description}
}

// Input returns the editable fields of the book.
func (b Book) Input() BookInput {
	return BookInput{
		Title:      b.Title,
		AuthorID:   b.AuthorID,
		CategoryID: b.CategoryID,
		ISBN:       b.ISBN,
		Year:       b.Year,
		Pages:      b.Pages,
		Available:  bool(b.Available),
	}
}

// Input returns the editable fields of the author.
func (a Author) Input() AuthorInput {
	return AuthorInput{
		Name:        a.Name,
		Nationality: a.Nationality,
		BirthDate:   a.BirthDate,
		Biography:   a.Biography,
	}
}

func (u User) Input() UserInput {
	return UserInput{
		Name:         u.Name,
		Email:        u.Email,
		Phone:        u.Phone,
		Address:      u.Address,
		RegisteredOn: u.RegisteredOn,
	}
}

// Input drops the joined book title and user name.
func (r Review) Input() ReviewInput {
	return ReviewInput{
		BookID:  r.BookID,
		UserID:  r.UserID,
		Rating:  r.Rating,
		Comment: r.Comment,
		Date:    r.Date,
	}
}
