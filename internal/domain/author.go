package domain

import (
	"fmt"
	"strings"
)

// Author is identified by a non-negative integer id. The full name is
// metadata: two authors with the same id are equal even if their names
// differ.
type Author struct {
	id        int
	fullName  string
	books     []*Book
	coauthors map[int]*Author
}

// NewAuthor validates the identity fields and builds an author.
// A negative id or an empty (after trimming) name fails with
// ErrInvalidEntity.
func NewAuthor(id int, fullName string) (*Author, error) {
	if id < 0 {
		return nil, fmt.Errorf("%w: author id must be non-negative, got %d", ErrInvalidEntity, id)
	}
	trimmed := strings.TrimSpace(fullName)
	if trimmed == "" {
		return nil, fmt.Errorf("%w: author full name must not be empty", ErrInvalidEntity)
	}
	return &Author{
		id:        id,
		fullName:  trimmed,
		coauthors: make(map[int]*Author),
	}, nil
}

// ID returns the author's identity.
func (a *Author) ID() int {
	return a.id
}

// FullName returns the author's display name.
func (a *Author) FullName() string {
	return a.fullName
}

// Books returns the mirrored list of books written by this author.
func (a *Author) Books() []*Book {
	return a.books
}

// AddBook records a back-reference to a book. Nil books and duplicates are
// ignored.
func (a *Author) AddBook(book *Book) {
	if book == nil {
		return
	}
	for _, b := range a.books {
		if b == book {
			return
		}
	}
	a.books = append(a.books, book)
}

// RemoveBook drops the back-reference to a book, if present.
func (a *Author) RemoveBook(book *Book) {
	if book == nil {
		return
	}
	for i, b := range a.books {
		if b == book {
			a.books = append(a.books[:i], a.books[i+1:]...)
			return
		}
	}
}

// AddCoauthor records that this author has worked with another one. The
// relation is symmetric but each side must be added explicitly; adding an
// author as their own coauthor is a no-op.
func (a *Author) AddCoauthor(coauthor *Author) {
	if coauthor == nil || coauthor.id == a.id {
		return
	}
	a.coauthors[coauthor.id] = coauthor
}

// HasCoauthored reports whether the given author is a recorded coauthor of
// this one.
func (a *Author) HasCoauthored(other *Author) bool {
	if other == nil {
		return false
	}
	_, ok := a.coauthors[other.id]
	return ok
}

// Equal compares authors by id only.
func (a *Author) Equal(other *Author) bool {
	return other != nil && a.id == other.id
}

// Less orders authors by id.
func (a *Author) Less(other *Author) bool {
	return a.id < other.id
}
