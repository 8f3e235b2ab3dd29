// Package store holds the client-side copy of every collection. Each
// collection is replaced wholesale on reload, never merged.
package store

import (
	"fmt"
	"slices"
	"sync"

	"github.com/blackwell-systems/bibliodash/internal/catalog"
)

// Generation identifies one issued load of a collection.
type Generation struct {
	Kind catalog.Kind
	n    uint64
}

type collection[T any] struct {
	items   []T
	issued  uint64
	applied uint64
}

func (c *collection[T]) begin() uint64 {
	c.issued++
	return c.issued
}

// replace applies items unless a newer load has already landed.
func (c *collection[T]) replace(n uint64, items []T) bool {
	if n <= c.applied {
		return false
	}
	if items == nil {
		items = []T{}
	}
	c.items = items
	c.applied = n
	return true
}

// State is the application state shared by the dashboard and the CLI.
type State struct {
	mu sync.RWMutex

	categories collection[catalog.Category]
	authors    collection[catalog.Author]
	books      collection[catalog.Book]
	users      collection[catalog.User]
	loans      collection[catalog.Loan]
	reviews    collection[catalog.Review]

	stats    catalog.Stats
	hasStats bool
}

// New returns an empty State.
func New() *State {
	return &State{}
}

// Begin issues a new load generation for kind.
func (s *State) Begin(kind catalog.Kind) Generation {
	s.mu.Lock()
	defer s.mu.Unlock()
	var n uint64
	switch kind {
	case catalog.KindCategories:
		n = s.categories.begin()
	case catalog.KindAuthors:
		n = s.authors.begin()
	case catalog.KindBooks:
		n = s.books.begin()
	case catalog.KindUsers:
		n = s.users.begin()
	case catalog.KindLoans:
		n = s.loans.begin()
	case catalog.KindReviews:
		n = s.reviews.begin()
	}
	return Generation{Kind: kind, n: n}
}

// Replace swaps the collection for gen.Kind with data, which must be the
// slice type List returns for that kind. It reports false when a newer
// generation has already been applied and data was dropped.
func (s *State) Replace(gen Generation, data any) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	switch gen.Kind {
	case catalog.KindCategories:
		items, ok := data.([]catalog.Category)
		if !ok {
			return false, mismatch(gen.Kind, data)
		}
		return s.categories.replace(gen.n, items), nil
	case catalog.KindAuthors:
		items, ok := data.([]catalog.Author)
		if !ok {
			return false, mismatch(gen.Kind, data)
		}
		return s.authors.replace(gen.n, items), nil
	case catalog.KindBooks:
		items, ok := data.([]catalog.Book)
		if !ok {
			return false, mismatch(gen.Kind, data)
		}
		return s.books.replace(gen.n, items), nil
	case catalog.KindUsers:
		items, ok := data.([]catalog.User)
		if !ok {
			return false, mismatch(gen.Kind, data)
		}
		return s.users.replace(gen.n, items), nil
	case catalog.KindLoans:
		items, ok := data.([]catalog.Loan)
		if !ok {
			return false, mismatch(gen.Kind, data)
		}
		return s.loans.replace(gen.n, items), nil
	case catalog.KindReviews:
		items, ok := data.([]catalog.Review)
		if !ok {
			return false, mismatch(gen.Kind, data)
		}
		return s.reviews.replace(gen.n, items), nil
	}
	return false, fmt.Errorf("replace: unknown kind %v", gen.Kind)
}

func mismatch(kind catalog.Kind, data any) error {
	return fmt.Errorf("replace %s: unexpected data type %T", kind, data)
}

// Loaded reports whether kind has been populated at least once.
func (s *State) Loaded(kind catalog.Kind) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	switch kind {
	case catalog.KindCategories:
		return s.categories.applied > 0
	case catalog.KindAuthors:
		return s.authors.applied > 0
	case catalog.KindBooks:
		return s.books.applied > 0
	case catalog.KindUsers:
		return s.users.applied > 0
	case catalog.KindLoans:
		return s.loans.applied > 0
	case catalog.KindReviews:
		return s.reviews.applied > 0
	}
	return false
}

// Len returns the number of records held for kind.
func (s *State) Len(kind catalog.Kind) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	switch kind {
	case catalog.KindCategories:
		return len(s.categories.items)
	case catalog.KindAuthors:
		return len(s.authors.items)
	case catalog.KindBooks:
		return len(s.books.items)
	case catalog.KindUsers:
		return len(s.users.items)
	case catalog.KindLoans:
		return len(s.loans.items)
	case catalog.KindReviews:
		return len(s.reviews.items)
	}
	return 0
}

func (s *State) Categories() []catalog.Category {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.categories.items)
}

func (s *State) Authors() []catalog.Author {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.authors.items)
}

func (s *State) Books() []catalog.Book {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.books.items)
}

func (s *State) Users() []catalog.User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.users.items)
}

func (s *State) Loans() []catalog.Loan {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.loans.items)
}

func (s *State) Reviews() []catalog.Review {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.reviews.items)
}

func (s *State) FindCategory(id int) (catalog.Category, bool) {
	return catalog.ByID(s.Categories(), id)
}

func (s *State) FindAuthor(id int) (catalog.Author, bool) {
	return catalog.ByID(s.Authors(), id)
}

func (s *State) FindBook(id int) (catalog.Book, bool) {
	return catalog.ByID(s.Books(), id)
}

func (s *State) FindUser(id int) (catalog.User, bool) {
	return catalog.ByID(s.Users(), id)
}

func (s *State) FindLoan(id int) (catalog.Loan, bool) {
	return catalog.ByID(s.Loans(), id)
}

func (s *State) FindReview(id int) (catalog.Review, bool) {
	return catalog.ByID(s.Reviews(), id)
}

// SetStats records the latest summary.
func (s *State) SetStats(st catalog.Stats) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.stats = st
	s.hasStats = true
}

// Stats returns the last summary and whether one has been fetched.
func (s *State) Stats() (catalog.Stats, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.stats, s.hasStats
}

// Snapshot copies every collection.
func (s *State) Snapshot() catalog.Snapshot {
	st, _ := s.Stats()
	return catalog.Snapshot{
		Stats:      st,
		Categories: s.Categories(),
		Authors:    s.Authors(),
		Books:      s.Books(),
		Users:      s.Users(),
		Loans:      s.Loans(),
		Reviews:    s.Reviews(),
	}
}
