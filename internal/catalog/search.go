package catalog

import (
	"fmt"
	"strings"

	"github.com/samber/lo"
)

// FilterBooks returns books whose title, author name, category name or ISBN
// contains term, ignoring case. An empty term matches everything.
func FilterBooks(books []Book, term string) []Book {
	return filter(books, term, func(b Book) []string {
		return []string{b.Title, b.AuthorName, b.CategoryName, b.ISBN}
	})
}

// FilterAuthors matches on name or nationality.
func FilterAuthors(authors []Author, term string) []Author {
	return filter(authors, term, func(a Author) []string {
		return []string{a.Name, a.Nationality}
	})
}

// FilterUsers matches on name or email.
func FilterUsers(users []User, term string) []User {
	return filter(users, term, func(u User) []string {
		return []string{u.Name, u.Email}
	})
}

func filter[T any](items []T, term string, fields func(T) []string) []T {
	q := strings.ToLower(strings.TrimSpace(term))
	if q == "" {
		return items
	}
	return lo.Filter(items, func(item T, _ int) bool {
		return lo.SomeBy(fields(item), func(f string) bool {
			return strings.Contains(strings.ToLower(f), q)
		})
	})
}

// LoanStatus selects which loans the loans section shows.
type LoanStatus string

const (
	LoansAll      LoanStatus = "all"
	LoansActive   LoanStatus = "active"
	LoansReturned LoanStatus = "returned"
)

var loanStatuses = []LoanStatus{LoansAll, LoansActive, LoansReturned}

// ParseLoanStatus parses "all", "active" or "returned". Empty means all.
func ParseLoanStatus(s string) (LoanStatus, error) {
	if s == "" {
		return LoansAll, nil
	}
	st := LoanStatus(strings.ToLower(s))
	if !lo.Contains(loanStatuses, st) {
		return "", fmt.Errorf("unknown loan status %q (want all, active or returned)", s)
	}
	return st, nil
}

// Next cycles all -> active -> returned -> all.
func (s LoanStatus) Next() LoanStatus {
	i := lo.IndexOf(loanStatuses, s)
	return loanStatuses[(i+1)%len(loanStatuses)]
}

// FilterLoans keeps loans matching status. Active and returned partition
// the input.
func FilterLoans(loans []Loan, status LoanStatus) []Loan {
	switch status {
	case LoansActive:
		return lo.Filter(loans, func(l Loan, _ int) bool { return l.Active() })
	case LoansReturned:
		return lo.Filter(loans, func(l Loan, _ int) bool { return !l.Active() })
	default:
		return loans
	}
}
