package domain

import (
	"fmt"
	"strings"
	"time"
)

// Rating bounds for reviews, inclusive.
const (
	MinRating = 1
	MaxRating = 5
)

// Review binds a user's rating and text to a book. The user and book
// references may be nil when a review is constructed half-linked; the
// repository's AddReview rejects such reviews before they reach storage.
//
// A review is never mutated after construction. Two reviews compare equal on
// book, text, rating and timestamp; the construction timestamp makes them
// practically always distinct.
type Review struct {
	user      *User
	book      *Book
	text      string
	rating    int
	timestamp time.Time
}

// NewReview validates the rating and builds a review stamped with the
// current time. A rating outside [MinRating, MaxRating] fails with
// ErrInvalidEntity.
func NewReview(user *User, book *Book, text string, rating int) (*Review, error) {
	return NewReviewAt(user, book, text, rating, time.Now())
}

// NewReviewAt is NewReview with an explicit timestamp. It exists so the
// relational backend can rebuild persisted reviews without losing their
// original creation time.
func NewReviewAt(user *User, book *Book, text string, rating int, timestamp time.Time) (*Review, error) {
	if rating < MinRating || rating > MaxRating {
		return nil, fmt.Errorf("%w: rating must be between %d and %d, got %d",
			ErrInvalidEntity, MinRating, MaxRating, rating)
	}
	return &Review{
		user:      user,
		book:      book,
		text:      strings.TrimSpace(text),
		rating:    rating,
		timestamp: timestamp,
	}, nil
}

// User returns the reviewing user, or nil when unlinked.
func (r *Review) User() *User {
	return r.user
}

// Book returns the reviewed book, or nil when unlinked.
func (r *Review) Book() *Book {
	return r.book
}

// Text returns the trimmed review text.
func (r *Review) Text() string {
	return r.text
}

// Rating returns the rating in [MinRating, MaxRating].
func (r *Review) Rating() int {
	return r.rating
}

// Timestamp returns the creation time.
func (r *Review) Timestamp() time.Time {
	return r.timestamp
}

// Equal compares reviews by book, text, rating and timestamp. The user is
// deliberately excluded from the comparison.
func (r *Review) Equal(other *Review) bool {
	if other == nil {
		return false
	}
	sameBook := (r.book == nil && other.book == nil) ||
		(r.book != nil && r.book.Equal(other.book))
	return sameBook &&
		r.text == other.text &&
		r.rating == other.rating &&
		r.timestamp.Equal(other.timestamp)
}
