package catalog

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Category groups books by subject.
type Category struct {
	ID          int    `json:"id" yaml:"id"`
	Name        string `json:"nombre" yaml:"nombre"`
	Description string `json:"descripcion" yaml:"descripcion"`
}

// Author is a person credited on one or more books.
type Author struct {
	ID          int     `json:"id" yaml:"id"`
	Name        string  `json:"nombre" yaml:"nombre"`
	Nationality string  `json:"nacionalidad" yaml:"nacionalidad"`
	BirthDate   string  `json:"fecha_nacimiento" yaml:"fecha_nacimiento"`
	Biography   *string `json:"biografia" yaml:"biografia"`
}

// Book is one title in the collection. AuthorName and CategoryName are
// joined in by the server on reads and never sent back.
type Book struct {
	ID           int    `json:"id" yaml:"id"`
	Title        string `json:"titulo" yaml:"titulo"`
	AuthorID     int    `json:"autor_id" yaml:"autor_id"`
	CategoryID   int    `json:"categoria_id" yaml:"categoria_id"`
	ISBN         string `json:"isbn" yaml:"isbn"`
	Year         int    `json:"año_publicacion" yaml:"año_publicacion"`
	Pages        int    `json:"paginas" yaml:"paginas"`
	Available    Flag   `json:"disponible" yaml:"disponible"`
	AuthorName   string `json:"autor_nombre,omitempty" yaml:"autor_nombre,omitempty"`
	CategoryName string `json:"categoria_nombre,omitempty" yaml:"categoria_nombre,omitempty"`
}

// User is a library member.
type User struct {
	ID           int    `json:"id" yaml:"id"`
	Name         string `json:"nombre" yaml:"nombre"`
	Email        string `json:"email" yaml:"email"`
	Phone        string `json:"telefono" yaml:"telefono"`
	Address      string `json:"direccion" yaml:"direccion"`
	RegisteredOn string `json:"fecha_registro" yaml:"fecha_registro"`
}

// Loan records a book lent to a user.
type Loan struct {
	ID         int     `json:"id" yaml:"id"`
	BookID     int     `json:"libro_id" yaml:"libro_id"`
	UserID     int     `json:"usuario_id" yaml:"usuario_id"`
	LoanDate   string  `json:"fecha_prestamo" yaml:"fecha_prestamo"`
	DueDate    string  `json:"fecha_devolucion_esperada" yaml:"fecha_devolucion_esperada"`
	ReturnedOn *string `json:"fecha_devolucion_real" yaml:"fecha_devolucion_real"`
	Returned   Flag    `json:"devuelto" yaml:"devuelto"`
	BookTitle  string  `json:"libro_titulo,omitempty" yaml:"libro_titulo,omitempty"`
	UserName   string  `json:"usuario_nombre,omitempty" yaml:"usuario_nombre,omitempty"`
	AuthorName string  `json:"autor_nombre,omitempty" yaml:"autor_nombre,omitempty"`
}

// Review is a user's rating of a book.
type Review struct {
	ID        int    `json:"id" yaml:"id"`
	BookID    int    `json:"libro_id" yaml:"libro_id"`
	UserID    int    `json:"usuario_id" yaml:"usuario_id"`
	Rating    int    `json:"calificacion" yaml:"calificacion"`
	Comment   string `json:"comentario" yaml:"comentario"`
	Date      string `json:"fecha" yaml:"fecha"`
	BookTitle string `json:"libro_titulo,omitempty" yaml:"libro_titulo,omitempty"`
	UserName  string `json:"usuario_nombre,omitempty" yaml:"usuario_nombre,omitempty"`
}

// Stats is the server-computed summary shown in the dashboard header.
type Stats struct {
	Books       int `json:"total_libros" yaml:"total_libros"`
	Authors     int `json:"total_autores" yaml:"total_autores"`
	Users       int `json:"total_usuarios" yaml:"total_usuarios"`
	ActiveLoans int `json:"prestamos_activos" yaml:"prestamos_activos"`
	Categories  int `json:"total_categorias" yaml:"total_categorias"`
	Reviews     int `json:"total_resenas" yaml:"total_resenas"`
}

func (c Category) Key() int { return c.ID }
func (a Author) Key() int   { return a.ID }
func (b Book) Key() int     { return b.ID }
func (u User) Key() int     { return u.ID }
func (l Loan) Key() int     { return l.ID }
func (r Review) Key() int   { return r.ID }

// Active reports whether the loan is still out.
func (l Loan) Active() bool { return !bool(l.Returned) }

// Flag is a boolean column. SQLite-backed servers send 0/1 on reads and
// accept true/false on writes, so both forms decode.
type Flag bool

func (f Flag) MarshalJSON() ([]byte, error) {
	return json.Marshal(bool(f))
}

func (f *Flag) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	switch string(data) {
	case "true", "1":
		*f = true
	case "false", "0", "null":
		*f = false
	default:
		var n float64
		if err := json.Unmarshal(data, &n); err != nil {
			return fmt.Errorf("invalid boolean %s", data)
		}
		*f = n != 0
	}
	return nil
}
