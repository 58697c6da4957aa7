package catalog

import (
	"errors"
	"fmt"

	"github.com/mrlokans/bookcatalog/internal/domain"
	"github.com/mrlokans/bookcatalog/internal/repository"
)

var (
	// ErrUnknownBook is returned when a book id resolves to nothing.
	ErrUnknownBook = errors.New("unknown book")
	// ErrUnknownUser is returned when a username resolves to nothing.
	ErrUnknownUser = errors.New("unknown user")
)

// Service answers catalog queries and applies review/favourite commands over
// a repository. It carries no state of its own.
type Service struct {
	repo repository.Repository
}

// NewService wraps a repository.
func NewService(repo repository.Repository) *Service {
	return &Service{repo: repo}
}

// BookByID returns the projection of a single book.
func (s *Service) BookByID(bookID int) (BookRecord, error) {
	book := s.repo.GetBook(bookID)
	if book == nil {
		return BookRecord{}, fmt.Errorf("book %d: %w", bookID, ErrUnknownBook)
	}
	return NewBookRecord(book), nil
}

// ReviewsForBook returns a book's reviews, newest first.
func (s *Service) ReviewsForBook(bookID int) ([]ReviewRecord, error) {
	book := s.repo.GetBook(bookID)
	if book == nil {
		return nil, fmt.Errorf("book %d: %w", bookID, ErrUnknownBook)
	}
	records := []ReviewRecord{}
	for _, review := range book.Reviews() {
		records = append(records, NewReviewRecord(review))
	}
	return records, nil
}

// RatingStatsForBook aggregates a book's reviews.
func (s *Service) RatingStatsForBook(bookID int) (RatingStats, error) {
	book := s.repo.GetBook(bookID)
	if book == nil {
		return RatingStats{}, fmt.Errorf("book %d: %w", bookID, ErrUnknownBook)
	}
	return CalculateRatingStats(book.Reviews()), nil
}

// AddReview posts a review by userName on the given book. Rating bounds are
// enforced by the domain constructor.
func (s *Service) AddReview(bookID int, text string, rating int, userName string) error {
	book := s.repo.GetBook(bookID)
	if book == nil {
		return fmt.Errorf("book %d: %w", bookID, ErrUnknownBook)
	}
	user := s.repo.GetUser(userName)
	if user == nil {
		return fmt.Errorf("user %q: %w", userName, ErrUnknownUser)
	}
	review, err := domain.MakeReview(user, book, text, rating)
	if err != nil {
		return err
	}
	return s.repo.AddReview(review)
}

// ToggleFavourite flips the favourite mark of a book for a user.
func (s *Service) ToggleFavourite(userName string, bookID int) error {
	book := s.repo.GetBook(bookID)
	if book == nil {
		return fmt.Errorf("book %d: %w", bookID, ErrUnknownBook)
	}
	user := s.repo.GetUser(userName)
	if user == nil {
		return fmt.Errorf("user %q: %w", userName, ErrUnknownUser)
	}
	return s.repo.UpdateFavourites(user, book)
}

// IsFavourite reports whether the user has favourited the book. Unknown
// users and books simply have no favourites.
func (s *Service) IsFavourite(userName string, bookID int) bool {
	user := s.repo.GetUser(userName)
	if user == nil {
		return false
	}
	for _, book := range user.Favourites() {
		if book.ID() == bookID {
			return true
		}
	}
	return false
}

// FavouriteBookIDs lists the ids of a user's favourites, empty for an
// unknown user.
func (s *Service) FavouriteBookIDs(userName string) []int {
	ids := []int{}
	user := s.repo.GetUser(userName)
	if user == nil {
		return ids
	}
	for _, book := range user.Favourites() {
		ids = append(ids, book.ID())
	}
	return ids
}

// BookIDsByAuthorQuery resolves a partial author name to the union of their
// books' ids.
func (s *Service) BookIDsByAuthorQuery(query string) []int {
	return s.repo.BookIDsByAuthors(s.repo.PartialSearchAuthors(query))
}

// BookIDsByPublisherQuery resolves a partial publisher name to the union of
// their books' ids.
func (s *Service) BookIDsByPublisherQuery(query string) []int {
	return s.repo.BookIDsByPublishers(s.repo.PartialSearchPublishers(query))
}

// BrowseQuery carries the browse parameters as they arrive from the outside.
// Empty strings and nil mean the filter is off.
type BrowseQuery struct {
	Title     string
	Author    string
	Publisher string
	Year      *int
	SortBy    string
	Count     int
	PerPage   int
	// FavouritesOf restricts the result to that user's bookshelf.
	FavouritesOf string
}

// BrowseResult is one page of projected books.
type BrowseResult struct {
	Books     []BookRecord `json:"books"`
	Total     int          `json:"total"`
	Count     int          `json:"count"`
	PerPage   int          `json:"books_per_page"`
	SortBy    string       `json:"sort_by"`
	HasPrev   bool         `json:"has_prev"`
	PrevCount int          `json:"prev_count"`
	HasNext   bool         `json:"has_next"`
	NextCount int          `json:"next_count"`
}

// Browse filters, sorts and paginates the catalog in one pass.
func (s *Service) Browse(q BrowseQuery) BrowseResult {
	filters := Filters{
		TitleQuery:     q.Title,
		AuthorQuery:    q.Author,
		PublisherQuery: q.Publisher,
		Year:           q.Year,
	}
	if q.FavouritesOf != "" {
		filters.FavouritesOnly = true
		filters.FavouriteIDs = s.FavouriteBookIDs(q.FavouritesOf)
	}

	ids := FilterBookIDs(s.repo, filters)
	books := s.repo.GetBooks(ids)
	SortBooks(books, q.SortBy)
	page := Paginate(books, q.Count, q.PerPage)

	result := BrowseResult{
		Books:     []BookRecord{},
		Total:     page.Total,
		Count:     page.Count,
		PerPage:   page.PerPage,
		SortBy:    q.SortBy,
		HasPrev:   page.HasPrev,
		PrevCount: page.PrevCount,
		HasNext:   page.HasNext,
		NextCount: page.NextCount,
	}
	if result.SortBy == "" {
		result.SortBy = SortAlphabetical
	}
	for _, book := range page.Books {
		result.Books = append(result.Books, NewBookRecord(book))
	}
	return result
}
