package operations

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/blackwell-systems/bibliodash/internal/api"
	"github.com/blackwell-systems/bibliodash/internal/catalog"
)

// Outcome is what a successful command reports: a message for the user and
// the collections that must be reloaded. Stats are always refreshed after
// the reloads settle.
type Outcome struct {
	Message string
	Reload  []catalog.Kind
}

// Failure carries the message to show when a command is rejected or cannot
// reach the server.
type Failure struct {
	Message string
	Err     error
}

func (f *Failure) Error() string { return f.Message }

func (f *Failure) Unwrap() error { return f.Err }

// ErrLoanEdit is returned when an Editing mode is used for a loan. Loans can
// only be created, returned or deleted.
var ErrLoanEdit = errors.New("loans cannot be edited")

// Affected returns the collections to reload after a mutation of kind.
// Books display author and category names, and loans flip book
// availability, so those mutations reload books too.
func Affected(kind catalog.Kind) []catalog.Kind {
	switch kind {
	case catalog.KindCategories, catalog.KindAuthors, catalog.KindLoans:
		return []catalog.Kind{kind, catalog.KindBooks}
	default:
		return []catalog.Kind{kind}
	}
}

// Save creates or updates a record depending on mode.
func (s *Service) Save(ctx context.Context, mode catalog.Mode, p catalog.Payload) (Outcome, error) {
	kind := p.Kind()
	switch m := mode.(type) {
	case catalog.Editing:
		if kind == catalog.KindLoans {
			return Outcome{}, &Failure{Message: "Loans cannot be edited", Err: ErrLoanEdit}
		}
		if err := s.backend.Update(ctx, m.ID, p); err != nil {
			return Outcome{}, s.fail("update", kind, err, zap.Int("id", m.ID))
		}
		s.logger.Info("updated", zap.Stringer("kind", kind), zap.Int("id", m.ID))
		return Outcome{Message: label(kind) + " updated", Reload: Affected(kind)}, nil
	case catalog.Creating:
		if err := s.backend.Create(ctx, p); err != nil {
			return Outcome{}, s.fail("create", kind, err)
		}
		s.logger.Info("created", zap.Stringer("kind", kind))
		msg := label(kind) + " created"
		if kind == catalog.KindLoans {
			msg = "Loan registered"
		}
		return Outcome{Message: msg, Reload: Affected(kind)}, nil
	default:
		return Outcome{}, fmt.Errorf("save: unknown mode %T", mode)
	}
}

// Delete removes a record. Callers confirm with the user first.
func (s *Service) Delete(ctx context.Context, kind catalog.Kind, id int) (Outcome, error) {
	if err := s.backend.Delete(ctx, kind, id); err != nil {
		return Outcome{}, s.fail("delete", kind, err, zap.Int("id", id))
	}
	s.logger.Info("deleted", zap.Stringer("kind", kind), zap.Int("id", id))
	return Outcome{Message: label(kind) + " deleted", Reload: Affected(kind)}, nil
}

// ReturnLoan marks a loan returned, which makes its book available again.
func (s *Service) ReturnLoan(ctx context.Context, id int) (Outcome, error) {
	if err := s.backend.ReturnLoan(ctx, id); err != nil {
		return Outcome{}, s.fail("return", catalog.KindLoans, err, zap.Int("id", id))
	}
	s.logger.Info("loan returned", zap.Int("id", id))
	return Outcome{Message: "Book returned", Reload: Affected(catalog.KindLoans)}, nil
}

// fail logs err and builds the user-facing Failure. The server's detail wins
// over the generic message; a bare 404 names the missing record.
func (s *Service) fail(action string, kind catalog.Kind, err error, fields ...zap.Field) error {
	fields = append(fields, zap.String("action", action), zap.Stringer("kind", kind))
	s.logFailure(action+" failed", err, fields...)

	if api.IsTransport(err) {
		return &Failure{Message: "Connection error", Err: err}
	}
	if detail := api.DetailOf(err); detail != "" {
		return &Failure{Message: detail, Err: err}
	}
	if errors.Is(err, api.ErrNotFound) {
		return &Failure{Message: label(kind) + " not found", Err: err}
	}
	return &Failure{Message: genericMessage(action, kind), Err: err}
}

func genericMessage(action string, kind catalog.Kind) string {
	switch action {
	case "delete":
		return "Error deleting " + kind.Singular()
	case "return":
		return "Error returning book"
	default:
		return "Error saving " + kind.Singular()
	}
}

func label(kind catalog.Kind) string {
	s := kind.Singular()
	return strings.ToUpper(s[:1]) + s[1:]
}

// Message returns the text to show for err: a Failure's message, a load
// error's summary, or err itself.
func Message(err error) string {
	var f *Failure
	if errors.As(err, &f) {
		return f.Message
	}
	var le *LoadError
	if errors.As(err, &le) {
		return le.Error()
	}
	return err.Error()
}
