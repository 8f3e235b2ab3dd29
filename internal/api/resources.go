package api

import (
	"context"
	"fmt"
	"net/http"

	"github.com/blackwell-systems/bibliodash/internal/catalog"
)

func list[T any](ctx context.Context, c *Client, parts ...string) ([]T, error) {
	var out []T
	if err := c.doJSON(ctx, http.MethodGet, c.url(parts...), nil, &out); err != nil {
		return nil, err
	}
	if out == nil {
		out = []T{}
	}
	return out, nil
}

func (c *Client) ListCategories(ctx context.Context) ([]catalog.Category, error) {
	return list[catalog.Category](ctx, c, catalog.KindCategories.Resource())
}

func (c *Client) ListAuthors(ctx context.Context) ([]catalog.Author, error) {
	return list[catalog.Author](ctx, c, catalog.KindAuthors.Resource())
}

func (c *Client) ListBooks(ctx context.Context) ([]catalog.Book, error) {
	return list[catalog.Book](ctx, c, catalog.KindBooks.Resource())
}

func (c *Client) ListUsers(ctx context.Context) ([]catalog.User, error) {
	return list[catalog.User](ctx, c, catalog.KindUsers.Resource())
}

func (c *Client) ListLoans(ctx context.Context) ([]catalog.Loan, error) {
	return list[catalog.Loan](ctx, c, catalog.KindLoans.Resource())
}

func (c *Client) ListReviews(ctx context.Context) ([]catalog.Review, error) {
	return list[catalog.Review](ctx, c, catalog.KindReviews.Resource())
}

// ListBookReviews returns the reviews of a single book.
func (c *Client) ListBookReviews(ctx context.Context, bookID int) ([]catalog.Review, error) {
	return list[catalog.Review](ctx, c, catalog.KindReviews.Resource(), "libro", itoa(bookID))
}

// List fetches the whole collection for kind. The concrete slice type is
// []catalog.Book for KindBooks, and so on.
func (c *Client) List(ctx context.Context, kind catalog.Kind) (any, error) {
	switch kind {
	case catalog.KindCategories:
		return c.ListCategories(ctx)
	case catalog.KindAuthors:
		return c.ListAuthors(ctx)
	case catalog.KindBooks:
		return c.ListBooks(ctx)
	case catalog.KindUsers:
		return c.ListUsers(ctx)
	case catalog.KindLoans:
		return c.ListLoans(ctx)
	case catalog.KindReviews:
		return c.ListReviews(ctx)
	default:
		return nil, fmt.Errorf("list: unknown kind %v", kind)
	}
}

// Create POSTs p to its collection.
func (c *Client) Create(ctx context.Context, p catalog.Payload) error {
	return c.doJSON(ctx, http.MethodPost, c.url(p.Kind().Resource()), p, nil)
}

// Update PUTs p to the record with id.
func (c *Client) Update(ctx context.Context, id int, p catalog.Payload) error {
	return c.doJSON(ctx, http.MethodPut, c.url(p.Kind().Resource(), itoa(id)), p, nil)
}

// Delete removes the record with id.
func (c *Client) Delete(ctx context.Context, kind catalog.Kind, id int) error {
	return c.doJSON(ctx, http.MethodDelete, c.url(kind.Resource(), itoa(id)), nil, nil)
}

// ReturnLoan marks a loan returned. The request has no body.
func (c *Client) ReturnLoan(ctx context.Context, id int) error {
	return c.doJSON(ctx, http.MethodPut, c.url(catalog.KindLoans.Resource(), itoa(id), "devolver"), nil, nil)
}

// Stats fetches the dashboard summary.
func (c *Client) Stats(ctx context.Context) (catalog.Stats, error) {
	var s catalog.Stats
	if err := c.doJSON(ctx, http.MethodGet, c.url("estadisticas"), nil, &s); err != nil {
		return catalog.Stats{}, err
	}
	return s, nil
}
