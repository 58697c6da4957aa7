// Package domain holds the catalog entity graph: publishers, authors, books,
// users and reviews, together with the helpers that keep their bidirectional
// associations in sync.
//
// Entities compare by identity only: books and authors by id, users by
// normalized username, publishers by name. All other fields are metadata.
// The repository backends share this graph; they never define their own
// entity types.
package domain

import "strings"

// UnknownPublisher is the sentinel name used when a publisher is constructed
// from empty or whitespace-only input.
const UnknownPublisher = "N/A"

// Publisher is identified by its (trimmed) name. Its book list mirrors
// Book.Publisher and is not authoritative.
type Publisher struct {
	name  string
	books []*Book
}

// NewPublisher builds a publisher from a raw name. Empty or whitespace-only
// input yields the "N/A" sentinel publisher rather than an error.
func NewPublisher(name string) *Publisher {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		trimmed = UnknownPublisher
	}
	return &Publisher{name: trimmed}
}

// Name returns the publisher's identity.
func (p *Publisher) Name() string {
	return p.name
}

// Books returns the mirrored list of books published by this publisher.
func (p *Publisher) Books() []*Book {
	return p.books
}

// AddBook records a back-reference to a book. Nil books and duplicates are
// ignored.
func (p *Publisher) AddBook(book *Book) {
	if book == nil || p.containsBook(book) {
		return
	}
	p.books = append(p.books, book)
}

// RemoveBook drops the back-reference to a book, if present.
func (p *Publisher) RemoveBook(book *Book) {
	if book == nil {
		return
	}
	for i, b := range p.books {
		if b == book {
			p.books = append(p.books[:i], p.books[i+1:]...)
			return
		}
	}
}

func (p *Publisher) containsBook(book *Book) bool {
	for _, b := range p.books {
		if b == book {
			return true
		}
	}
	return false
}

// Equal reports whether two publishers share the same name. Comparison is
// case-sensitive.
func (p *Publisher) Equal(other *Publisher) bool {
	return other != nil && p.name == other.name
}

// Less orders publishers lexicographically by name.
func (p *Publisher) Less(other *Publisher) bool {
	return p.name < other.name
}
