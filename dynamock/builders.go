package dynamock

import (
	"github.com/google/uuid"
	"github.com/nisimpson/bookshelf"
)

// BookOption is a functional option for configuring books during building.
type BookOption func(*BookBuilder)

// BookBuilder builds test books through functional options.
type BookBuilder struct {
	book bookshelf.Book
}

// NewBook creates a book builder with the given options applied. Unless
// overridden the book has a random id, a placeholder title and author, and
// the unread status.
func NewBook(opts ...BookOption) *BookBuilder {
	builder := &BookBuilder{
		book: bookshelf.Book{
			ID:     uuid.NewString(),
			Title:  "Untitled",
			Author: "Anonymous",
			Status: bookshelf.StatusUnread,
		},
	}
	for _, opt := range opts {
		opt(builder)
	}
	return builder
}

// Build returns the configured book.
func (b *BookBuilder) Build() bookshelf.Book {
	return b.book
}

// Item returns the configured book as a table item.
func (b *BookBuilder) Item() bookshelf.Item {
	item, err := bookshelf.MarshalBook(b.book)
	if err != nil {
		panic(err)
	}
	return item
}

// WithID sets the book id.
func WithID(id string) BookOption {
	return func(b *BookBuilder) {
		b.book.ID = id
	}
}

// WithTitle sets the title.
func WithTitle(title string) BookOption {
	return func(b *BookBuilder) {
		b.book.Title = title
	}
}

// WithAuthor sets the author.
func WithAuthor(author string) BookOption {
	return func(b *BookBuilder) {
		b.book.Author = author
	}
}

// WithStatus sets the status.
func WithStatus(status bookshelf.Status) BookOption {
	return func(b *BookBuilder) {
		b.book.Status = status
	}
}

// Read marks the book as finished.
func Read() BookOption {
	return WithStatus(bookshelf.StatusRead)
}

// WithPublishedDate sets the published date.
func WithPublishedDate(date string) BookOption {
	return func(b *BookBuilder) {
		b.book.PublishedDate = date
	}
}
