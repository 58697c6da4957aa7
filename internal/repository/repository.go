// Package repository defines the backend-neutral storage contract for the
// catalog. Two implementations exist: repository/memory (owned collections
// with secondary indexes) and repository/sqlite (gorm-backed persistence).
// Everything above this package depends on the Repository interface only and
// must never special-case a concrete backend.
package repository

import (
	"errors"
	"fmt"

	"github.com/mrlokans/bookcatalog/internal/domain"
)

// ErrInconsistentReview is returned by AddReview when a review is not
// bidirectionally linked to both a user and a book. The repository stays
// unchanged; the caller must fix the linkage and retry.
var ErrInconsistentReview = errors.New("review not correctly attached")

// Repository is the capability contract shared by all backends.
//
// Lookup methods return nil (or an empty slice) for absent entities and
// malformed queries; they never fail. The id-list queries return ids rather
// than entities so the browse engine can intersect them before fetching.
// PartialSearchAuthors and PartialSearchPublishers return entities instead,
// since the engine feeds those straight into the multi-entity id queries.
type Repository interface {
	// AddUser stores a user. Usernames are expected to be unique; the
	// caller checks before adding.
	AddUser(user *domain.User) error
	// GetUser returns the user with the given name (matched after
	// lowercasing), or nil.
	GetUser(userName string) *domain.User
	// UpdateFavourites toggles the favourite link between a user and a
	// book on both sides. Each call flips the state exactly once.
	UpdateFavourites(user *domain.User, book *domain.Book) error

	// AddBook stores a book, keeping the backend's id ordering intact.
	AddBook(book *domain.Book) error
	// GetBook returns the book with the given id, or nil.
	GetBook(bookID int) *domain.Book
	// GetBooks returns the books whose ids appear in ids, skipping ids
	// that match nothing. The input list is taken as-is; deduplication is
	// the caller's responsibility.
	GetBooks(ids []int) []*domain.Book
	// NumberOfBooks returns the number of stored books.
	NumberOfBooks() int
	// PartialSearchBooksByTitle returns the ids of books whose title
	// contains the trimmed query, case-insensitively. A blank query
	// matches nothing.
	PartialSearchBooksByTitle(query string) []int
	// AllBookIDs returns every book id in ascending order.
	AllBookIDs() []int
	// BookIDsByAuthor returns the ids of books written by the author.
	BookIDsByAuthor(author *domain.Author) []int
	// BookIDsByAuthors returns the union of BookIDsByAuthor over the
	// list. Duplicates are preserved deliberately; callers dedup.
	BookIDsByAuthors(authors []*domain.Author) []int
	// BookIDsByPublisher returns the ids of books under the publisher.
	BookIDsByPublisher(publisher *domain.Publisher) []int
	// BookIDsByPublishers returns the union of BookIDsByPublisher over
	// the list, duplicates preserved.
	BookIDsByPublishers(publishers []*domain.Publisher) []int
	// BookIDsByYear returns the ids of books released exactly in year.
	BookIDsByYear(year int) []int

	// AddAuthor stores an author.
	AddAuthor(author *domain.Author) error
	// GetAuthor returns the author with the given id, or nil.
	GetAuthor(authorID int) *domain.Author
	// Authors returns all stored authors.
	Authors() []*domain.Author
	// PartialSearchAuthors returns the authors whose full name contains
	// the trimmed query, case-insensitively. A blank query matches
	// nothing.
	PartialSearchAuthors(query string) []*domain.Author

	// AddPublisher stores a publisher; publishers deduplicate by name.
	AddPublisher(publisher *domain.Publisher) error
	// GetPublisher returns the publisher with the exact name, or nil.
	GetPublisher(name string) *domain.Publisher
	// Publishers returns all stored publishers except the "N/A" sentinel.
	Publishers() []*domain.Publisher
	// PartialSearchPublishers returns the publishers whose name contains
	// the trimmed query, case-insensitively. A blank query matches
	// nothing.
	PartialSearchPublishers(query string) []*domain.Publisher

	// AddReview stores a review after verifying its bidirectional links;
	// see CheckReviewLinks. On failure nothing is inserted.
	AddReview(review *domain.Review) error
	// Reviews returns all stored reviews, newest first.
	Reviews() []*domain.Review
}

// CheckReviewLinks verifies that a review is attached on both sides to a
// user and a book before it may enter storage. Both backends call this at
// the top of AddReview so half-linked reviews are rejected identically
// regardless of backend.
func CheckReviewLinks(review *domain.Review) error {
	if review.User() == nil || !containsReview(review.User().Reviews(), review) {
		return fmt.Errorf("%w to a user", ErrInconsistentReview)
	}
	if review.Book() == nil || !containsReview(review.Book().Reviews(), review) {
		return fmt.Errorf("%w to a book", ErrInconsistentReview)
	}
	return nil
}

func containsReview(reviews []*domain.Review, review *domain.Review) bool {
	for _, r := range reviews {
		if r == review {
			return true
		}
	}
	return false
}
