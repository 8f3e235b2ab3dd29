// Package operations turns user intents into API calls. It is shared by the
// dashboard and the CLI and never touches the terminal.
package operations

import (
	"context"

	"go.uber.org/zap"

	"github.com/blackwell-systems/bibliodash/internal/catalog"
)

// Backend is the subset of the REST client the operations need.
type Backend interface {
	List(ctx context.Context, kind catalog.Kind) (any, error)
	ListBookReviews(ctx context.Context, bookID int) ([]catalog.Review, error)
	Create(ctx context.Context, p catalog.Payload) error
	Update(ctx context.Context, id int, p catalog.Payload) error
	Delete(ctx context.Context, kind catalog.Kind, id int) error
	ReturnLoan(ctx context.Context, id int) error
	Stats(ctx context.Context) (catalog.Stats, error)
}

// Service runs loads and commands against a Backend.
type Service struct {
	backend Backend
	logger  *zap.Logger
}

// New creates a Service. A nil logger discards output.
func New(backend Backend, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{backend: backend, logger: logger}
}
