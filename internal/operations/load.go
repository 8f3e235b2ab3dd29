package operations

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/blackwell-systems/bibliodash/internal/api"
	"github.com/blackwell-systems/bibliodash/internal/catalog"
	"github.com/blackwell-systems/bibliodash/internal/store"
)

// LoadResult is the outcome of fetching one collection.
type LoadResult struct {
	Gen  store.Generation
	Data any
	Err  error
}

// LoadError is returned when a collection could not be fetched.
type LoadError struct {
	Kind catalog.Kind
	Err  error
}

func (e *LoadError) Error() string {
	if api.IsTransport(e.Err) {
		return "Connection error"
	}
	return fmt.Sprintf("Error loading %s", e.Kind)
}

func (e *LoadError) Unwrap() error { return e.Err }

// Load fetches the collection gen was issued for. It does not touch the
// store; the caller applies the result with store.State.Replace.
func (s *Service) Load(ctx context.Context, gen store.Generation) LoadResult {
	data, err := s.backend.List(ctx, gen.Kind)
	if err != nil {
		s.logFailure("load failed", err, zap.Stringer("kind", gen.Kind))
		return LoadResult{Gen: gen, Err: &LoadError{Kind: gen.Kind, Err: err}}
	}
	return LoadResult{Gen: gen, Data: data}
}

// Refresh loads kinds concurrently into st, then refreshes the stats once
// every load has settled. A failed kind keeps its previous contents and does
// not stop the others; all failures are joined in the returned error. A
// stats failure is only logged.
func (s *Service) Refresh(ctx context.Context, st *store.State, kinds ...catalog.Kind) error {
	errs := make([]error, len(kinds))
	var g errgroup.Group
	for i, kind := range kinds {
		i := i
		gen := st.Begin(kind)
		g.Go(func() error {
			res := s.Load(ctx, gen)
			if res.Err != nil {
				errs[i] = res.Err
				return nil
			}
			if _, err := st.Replace(res.Gen, res.Data); err != nil {
				errs[i] = err
			}
			return nil
		})
	}
	_ = g.Wait()

	if stats, err := s.Stats(ctx); err == nil {
		st.SetStats(stats)
	}
	return errors.Join(errs...)
}

// Stats fetches the summary. Failures are logged and returned; callers are
// expected to ignore them.
func (s *Service) Stats(ctx context.Context) (catalog.Stats, error) {
	stats, err := s.backend.Stats(ctx)
	if err != nil {
		s.logFailure("stats refresh failed", err)
		return catalog.Stats{}, err
	}
	return stats, nil
}

// BookReviews fetches the reviews of one book.
func (s *Service) BookReviews(ctx context.Context, bookID int) ([]catalog.Review, error) {
	reviews, err := s.backend.ListBookReviews(ctx, bookID)
	if err != nil {
		s.logFailure("book reviews failed", err, zap.Int("book_id", bookID))
		return nil, &LoadError{Kind: catalog.KindReviews, Err: err}
	}
	return reviews, nil
}

// logFailure logs transport failures at error level and server rejections
// at warn level.
func (s *Service) logFailure(msg string, err error, fields ...zap.Field) {
	fields = append(fields, zap.Error(err))
	var se *api.StatusError
	if errors.As(err, &se) {
		fields = append(fields, zap.Int("status", se.StatusCode), zap.String("detail", se.Detail))
		s.logger.Warn(msg, fields...)
		return
	}
	s.logger.Error(msg, fields...)
}
