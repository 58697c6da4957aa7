// Package catalog is the stateless query engine over a repository: filtering,
// sorting, pagination, rating aggregation and the browse/book services. Only
// plain record projections cross its boundary; domain pointers stay inside.
package catalog

import (
	"time"

	"github.com/mrlokans/bookcatalog/internal/domain"
)

// AuthorRef is a flat author reference inside a book record.
type AuthorRef struct {
	ID       int    `json:"id"`
	FullName string `json:"full_name"`
}

// ReviewRecord is the flat projection of a review.
type ReviewRecord struct {
	UserName  string    `json:"user_name"`
	BookID    int       `json:"book_id"`
	Text      string    `json:"text"`
	Rating    int       `json:"rating"`
	Timestamp time.Time `json:"timestamp"`
}

// BookRecord is the flat projection of a book. A book without a publisher
// reports the unknown sentinel as its publisher name.
type BookRecord struct {
	ID          int            `json:"id"`
	Title       string         `json:"title"`
	Description string         `json:"description,omitempty"`
	Publisher   string         `json:"publisher"`
	Authors     []AuthorRef    `json:"authors"`
	ReleaseYear *int           `json:"release_year,omitempty"`
	Ebook       *bool          `json:"ebook,omitempty"`
	NumPages    *int           `json:"num_pages,omitempty"`
	ImageURL    *string        `json:"image_url,omitempty"`
	Reviews     []ReviewRecord `json:"reviews"`
}

// NewReviewRecord projects a review.
func NewReviewRecord(review *domain.Review) ReviewRecord {
	return ReviewRecord{
		UserName:  review.User().UserName(),
		BookID:    review.Book().ID(),
		Text:      review.Text(),
		Rating:    review.Rating(),
		Timestamp: review.Timestamp(),
	}
}

// NewBookRecord projects a book with its reviews, newest first.
func NewBookRecord(book *domain.Book) BookRecord {
	record := BookRecord{
		ID:          book.ID(),
		Title:       book.Title(),
		Description: book.Description(),
		Publisher:   domain.UnknownPublisher,
		Authors:     []AuthorRef{},
		ReleaseYear: book.ReleaseYear(),
		Ebook:       book.Ebook(),
		NumPages:    book.NumPages(),
		ImageURL:    book.ImageURL(),
		Reviews:     []ReviewRecord{},
	}
	if publisher := book.Publisher(); publisher != nil {
		record.Publisher = publisher.Name()
	}
	for _, author := range book.Authors() {
		record.Authors = append(record.Authors, AuthorRef{ID: author.ID(), FullName: author.FullName()})
	}
	for _, review := range book.Reviews() {
		record.Reviews = append(record.Reviews, NewReviewRecord(review))
	}
	return record
}
