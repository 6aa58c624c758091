package bookshelf

import (
	"context"
	"errors"
	"fmt"
	"net/http"
)

// createBook handles POST .../books.
func (r *Router) createBook(ctx context.Context, req *request) (int, any, error) {
	body := req.body
	if body == "" {
		body = "{}"
	}

	fields, err := parseFields(body)
	if err != nil {
		return 0, nil, validationError(err.Error())
	}

	values, apiErr := checkFields(fields, createRules, false)
	if apiErr != nil {
		return 0, nil, apiErr
	}

	book := newBook(r.opts.NewID(), values)
	if err := r.store.CreateBook(ctx, book); err != nil {
		return 0, nil, fmt.Errorf("failed to create book: %w", err)
	}

	r.opts.Logger.Info().Str("action", "put_item").Str("bookId", book.ID).Msg("book created")
	return http.StatusCreated, created{BookID: book.ID}, nil
}

// getBook handles GET .../books/{id}.
func (r *Router) getBook(ctx context.Context, req *request) (int, any, error) {
	book, err := r.store.GetBook(ctx, req.params["id"])
	if errors.Is(err, ErrBookNotFound) {
		return 0, nil, errBookNotFound
	} else if err != nil {
		return 0, nil, fmt.Errorf("failed to get book: %w", err)
	}

	return http.StatusOK, book, nil
}

// listBooks handles GET .../books.
func (r *Router) listBooks(ctx context.Context, _ *request) (int, any, error) {
	result, err := r.store.ScanBooks(ctx, r.opts.ScanLimit)
	if err != nil {
		return 0, nil, fmt.Errorf("failed to list books: %w", err)
	}

	// Never trust the store with the bound.
	books := result.Books
	if len(books) > r.opts.ScanLimit {
		books = books[:r.opts.ScanLimit]
	}

	body := listing{
		Items:            append(make([]Book, 0, len(books)), books...),
		Count:            len(books),
		LastEvaluatedKey: result.LastKey,
	}
	return http.StatusOK, body, nil
}

// updateBook handles PUT .../books/{id} as a partial merge.
func (r *Router) updateBook(ctx context.Context, req *request) (int, any, error) {
	if req.body == "" {
		return 0, nil, validationError("request body required")
	}

	fields, err := parseFields(req.body)
	if err != nil {
		return 0, nil, validationError(err.Error())
	}

	id := req.params["id"]
	current, err := r.store.GetBook(ctx, id)
	if errors.Is(err, ErrBookNotFound) {
		return 0, nil, errBookNotFound
	} else if err != nil {
		return 0, nil, fmt.Errorf("failed to get book: %w", err)
	}

	values, apiErr := checkFields(fields, updateRules, true)
	if apiErr != nil {
		return 0, nil, apiErr
	}

	merged := mergeBook(current, values)
	if err := r.store.ReplaceBook(ctx, merged); errors.Is(err, ErrBookNotFound) {
		return 0, nil, errBookNotFound
	} else if err != nil {
		return 0, nil, fmt.Errorf("failed to replace book: %w", err)
	}

	r.opts.Logger.Info().Str("action", "put_item_update").Str("bookId", id).Msg("book updated")
	return http.StatusOK, merged, nil
}

// deleteBook handles DELETE .../books/{id}.
func (r *Router) deleteBook(ctx context.Context, req *request) (int, any, error) {
	id := req.params["id"]
	if _, err := r.store.GetBook(ctx, id); errors.Is(err, ErrBookNotFound) {
		return 0, nil, errBookNotFound
	} else if err != nil {
		return 0, nil, fmt.Errorf("failed to get book: %w", err)
	}

	if err := r.store.DeleteBook(ctx, id); errors.Is(err, ErrBookNotFound) {
		return 0, nil, errBookNotFound
	} else if err != nil {
		return 0, nil, fmt.Errorf("failed to delete book: %w", err)
	}

	r.opts.Logger.Info().Str("action", "delete_item").Str("bookId", id).Msg("book deleted")
	return http.StatusOK, deleted{Deleted: true, BookID: id}, nil
}
