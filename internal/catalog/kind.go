package catalog

import (
	"fmt"
	"strings"
)

// Kind identifies one of the six collections.
type Kind int

const (
	KindBooks Kind = iota
	KindAuthors
	KindUsers
	KindLoans
	KindCategories
	KindReviews
)

// Kinds lists every collection in dashboard order.
var Kinds = []Kind{KindBooks, KindAuthors, KindUsers, KindLoans, KindCategories, KindReviews}

var kindInfo = map[Kind]struct {
	name, singular, resource string
}{
	KindBooks:      {"books", "book", "libros"},
	KindAuthors:    {"authors", "author", "autores"},
	KindUsers:      {"users", "user", "usuarios"},
	KindLoans:      {"loans", "loan", "prestamos"},
	KindCategories: {"categories", "category", "categorias"},
	KindReviews:    {"reviews", "review", "resenas"},
}

// String returns the plural English name, e.g. "books".
func (k Kind) String() string {
	if info, ok := kindInfo[k]; ok {
		return info.name
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// Singular returns the singular English name, e.g. "book".
func (k Kind) Singular() string { return kindInfo[k].singular }

// Resource returns the REST collection path segment, e.g. "libros".
func (k Kind) Resource() string { return kindInfo[k].resource }

// Title returns the capitalised plural for headings.
func (k Kind) Title() string {
	s := k.String()
	return strings.ToUpper(s[:1]) + s[1:]
}

// ParseKind accepts the English plural or singular, or the resource name.
func ParseKind(s string) (Kind, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for k, info := range kindInfo {
		if s == info.name || s == info.singular || s == info.resource {
			return k, nil
		}
	}
	return 0, fmt.Errorf("unknown kind %q (want one of: books, authors, users, loans, categories, reviews)", s)
}

// Mode says whether a form submission creates a new record or updates an
// existing one. It is either Creating or Editing.
type Mode interface {
	isMode()
}

// Creating submits with POST to the collection.
type Creating struct{}

// Editing submits with PUT to the record with ID.
type Editing struct {
	ID int
}

func (Creating) isMode() {}
func (Editing) isMode()  {}
