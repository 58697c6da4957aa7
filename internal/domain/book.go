package domain

import (
	"fmt"
	"strings"
)

// Book is identified by a non-negative integer id. Besides the required
// title, every field is optional; the optional scalar fields are pointers so
// "never set" is distinguishable from a zero value.
//
// Several setters deliberately ignore invalid input instead of failing
// (num pages, image URL, description, publisher). Release year and title are
// the exceptions and validate.
type Book struct {
	id          int
	title       string
	description string
	publisher   *Publisher
	authors     []*Author
	releaseYear *int
	ebook       *bool
	numPages    *int
	imageURL    *string
	reviews     []*Review
	favouritedBy []*User
}

// NewBook validates the identity fields and builds a book.
func NewBook(id int, title string) (*Book, error) {
	if id < 0 {
		return nil, fmt.Errorf("%w: book id must be non-negative, got %d", ErrInvalidEntity, id)
	}
	b := &Book{id: id}
	if err := b.SetTitle(title); err != nil {
		return nil, err
	}
	return b, nil
}

// ID returns the book's identity.
func (b *Book) ID() int {
	return b.id
}

// Title returns the book's title.
func (b *Book) Title() string {
	return b.title
}

// SetTitle replaces the title. An empty (after trimming) title fails with
// ErrInvalidEntity and leaves the current title in place.
func (b *Book) SetTitle(title string) error {
	trimmed := strings.TrimSpace(title)
	if trimmed == "" {
		return fmt.Errorf("%w: book title must not be empty", ErrInvalidEntity)
	}
	b.title = trimmed
	return nil
}

// Description returns the free-text description, trimmed.
func (b *Book) Description() string {
	return b.description
}

// SetDescription stores the trimmed description.
func (b *Book) SetDescription(description string) {
	b.description = strings.TrimSpace(description)
}

// Publisher returns the book's publisher, or nil when unset.
func (b *Book) Publisher() *Publisher {
	return b.publisher
}

// SetPublisher assigns the publisher. A nil publisher nulls the field rather
// than failing.
func (b *Book) SetPublisher(publisher *Publisher) {
	b.publisher = publisher
}

// Authors returns the ordered author list.
func (b *Book) Authors() []*Author {
	return b.authors
}

// AddAuthor appends an author. Nil authors and duplicates (by id) are
// silently ignored.
func (b *Book) AddAuthor(author *Author) {
	if author == nil {
		return
	}
	for _, a := range b.authors {
		if a.Equal(author) {
			return
		}
	}
	b.authors = append(b.authors, author)
}

// RemoveAuthor drops an author (matched by id), if present.
func (b *Book) RemoveAuthor(author *Author) {
	if author == nil {
		return
	}
	for i, a := range b.authors {
		if a.Equal(author) {
			b.authors = append(b.authors[:i], b.authors[i+1:]...)
			return
		}
	}
}

// ReleaseYear returns the release year, or nil when unknown.
func (b *Book) ReleaseYear() *int {
	return b.releaseYear
}

// SetReleaseYear validates and stores the release year. Negative years fail
// with ErrInvalidEntity.
func (b *Book) SetReleaseYear(year int) error {
	if year < 0 {
		return fmt.Errorf("%w: release year must be non-negative, got %d", ErrInvalidEntity, year)
	}
	b.releaseYear = &year
	return nil
}

// Ebook reports whether the book is an ebook, or nil when unknown.
func (b *Book) Ebook() *bool {
	return b.ebook
}

// SetEbook stores the ebook flag.
func (b *Book) SetEbook(isEbook bool) {
	b.ebook = &isEbook
}

// NumPages returns the page count, or nil when unknown.
func (b *Book) NumPages() *int {
	return b.numPages
}

// SetNumPages stores the page count. Non-positive values are silently
// ignored and the field stays unset.
func (b *Book) SetNumPages(numPages int) {
	if numPages <= 0 {
		return
	}
	b.numPages = &numPages
}

// ImageURL returns the cover image URL, or nil when unset.
func (b *Book) ImageURL() *string {
	return b.imageURL
}

// SetImageURL stores the cover image URL. Empty strings are silently
// ignored.
func (b *Book) SetImageURL(imageURL string) {
	if imageURL == "" {
		return
	}
	b.imageURL = &imageURL
}

// Reviews returns the book's reviews, newest first.
func (b *Book) Reviews() []*Review {
	return b.reviews
}

// AddReview prepends a review so the list stays newest-first. Reviews are in
// practice always distinct because of their construction timestamp, so no
// duplicate check is made.
func (b *Book) AddReview(review *Review) {
	if review == nil {
		return
	}
	b.reviews = append([]*Review{review}, b.reviews...)
}

// UsersWhoFavourited returns the users who bookmarked this book, in
// insertion order.
func (b *Book) UsersWhoFavourited() []*User {
	return b.favouritedBy
}

// AddUser records a favourite back-reference. Nil users and duplicates are
// ignored.
func (b *Book) AddUser(user *User) {
	if user == nil {
		return
	}
	for _, u := range b.favouritedBy {
		if u == user {
			return
		}
	}
	b.favouritedBy = append(b.favouritedBy, user)
}

// RemoveUser drops a favourite back-reference, if present.
func (b *Book) RemoveUser(user *User) {
	if user == nil {
		return
	}
	for i, u := range b.favouritedBy {
		if u == user {
			b.favouritedBy = append(b.favouritedBy[:i], b.favouritedBy[i+1:]...)
			return
		}
	}
}

// Equal compares books by id only.
func (b *Book) Equal(other *Book) bool {
	return other != nil && b.id == other.id
}

// Less orders books by id.
func (b *Book) Less(other *Book) bool {
	return b.id < other.id
}
