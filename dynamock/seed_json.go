package dynamock

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/nisimpson/bookshelf"
)

// BookResourceType is the JSON:API type accepted by SeedFromJSON.
const BookResourceType = "books"

// JSONAPIDocument is an array of JSON:API primary resources.
type JSONAPIDocument []JSONAPIResource

// JSONAPIResource represents a single resource in JSON:API format.
type JSONAPIResource struct {
	Type       string                 `json:"type"`
	ID         string                 `json:"id"`
	Attributes map[string]interface{} `json:"attributes,omitempty"`
}

// bookAttributes are the attributes a book resource may carry.
type bookAttributes struct {
	Title         string           `json:"title"`
	Author        string           `json:"author"`
	Status        bookshelf.Status `json:"status"`
	PublishedDate string           `json:"publishedDate"`
}

// SeedFromJSON reads a JSON:API document of "books" resources and stores
// each one. Resources without a status are stored as unread.
// Returns the number of books saved and any errors generated.
//
//	[
//	  {"type": "books", "id": "B1", "attributes": {"title": "Dune", "author": "Herbert"}}
//	]
func (s *SeedTestData) SeedFromJSON(ctx context.Context, r io.Reader) (int, error) {
	var document JSONAPIDocument
	if err := json.NewDecoder(r).Decode(&document); err != nil {
		return 0, fmt.Errorf("failed to parse JSON document: %w", err)
	}

	books := make([]bookshelf.Book, 0, len(document))
	for i, resource := range document {
		book, err := convertResourceToBook(resource)
		if err != nil {
			return 0, fmt.Errorf("failed to convert resource at index %d: %w", i, err)
		}
		books = append(books, book)
	}

	count := 0
	for _, book := range books {
		if err := s.SeedBook(ctx, book); err != nil {
			return count, fmt.Errorf("failed to seed book %s: %w", book.ID, err)
		}
		count++
	}

	return count, nil
}

func convertResourceToBook(resource JSONAPIResource) (bookshelf.Book, error) {
	if resource.Type != BookResourceType {
		return bookshelf.Book{}, fmt.Errorf("resource type must be %q, got %q", BookResourceType, resource.Type)
	}
	if resource.ID == "" {
		return bookshelf.Book{}, fmt.Errorf("resource missing required 'id' field")
	}

	var attrs bookAttributes
	if err := mapToStruct(resource.Attributes, &attrs); err != nil {
		return bookshelf.Book{}, fmt.Errorf("failed to parse attributes: %w", err)
	}

	if attrs.Status == "" {
		attrs.Status = bookshelf.StatusUnread
	}
	if !attrs.Status.Valid() {
		return bookshelf.Book{}, fmt.Errorf("invalid status %q", attrs.Status)
	}

	return NewBook(
		WithID(resource.ID),
		WithTitle(attrs.Title),
		WithAuthor(attrs.Author),
		WithStatus(attrs.Status),
		WithPublishedDate(attrs.PublishedDate),
	).Build(), nil
}

// mapToStruct converts a map[string]interface{} to a struct using JSON marshaling/unmarshaling.
func mapToStruct(m map[string]interface{}, target interface{}) error {
	jsonBytes, err := json.Marshal(m)
	if err != nil {
		return fmt.Errorf("failed to marshal map to JSON: %w", err)
	}

	if err := json.Unmarshal(jsonBytes, target); err != nil {
		return fmt.Errorf("failed to unmarshal JSON to struct: %w", err)
	}

	return nil
}
