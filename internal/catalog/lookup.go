package catalog

import (
	"fmt"

	"github.com/samber/lo"
)

// Keyed is implemented by every entity.
type Keyed interface {
	Key() int
}

// ByID returns the item with the given key.
func ByID[T Keyed](items []T, id int) (T, bool) {
	return lo.Find(items, func(item T) bool { return item.Key() == id })
}

// Option is one choice of a select field.
type Option struct {
	Value int
	Label string
}

func AuthorOptions(authors []Author) []Option {
	return lo.Map(authors, func(a Author, _ int) Option {
		return Option{Value: a.ID, Label: a.Name}
	})
}

func CategoryOptions(categories []Category) []Option {
	return lo.Map(categories, func(c Category, _ int) Option {
		return Option{Value: c.ID, Label: c.Name}
	})
}

// BookOptions labels each book "title - author".
func BookOptions(books []Book) []Option {
	return lo.Map(books, func(b Book, _ int) Option {
		return Option{Value: b.ID, Label: fmt.Sprintf("%s - %s", b.Title, b.AuthorName)}
	})
}

func UserOptions(users []User) []Option {
	return lo.Map(users, func(u User, _ int) Option {
		return Option{Value: u.ID, Label: u.Name}
	})
}
