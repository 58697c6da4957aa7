// Package memory implements the repository contract with owned in-process
// collections: an id index plus an ascending-id sorted slice for books, flat
// slices for users and authors, a name-keyed publisher set, and a
// newest-first review list.
//
// A single mutex guards the collections so the maps stay safe under
// concurrent readers, but the backend is designed for a single logical
// writer: nothing in the entity graph tolerates interleaved mutation of the
// same book's links.
package memory

import (
	"sort"
	"strings"
	"sync"

	"github.com/mrlokans/bookcatalog/internal/domain"
	"github.com/mrlokans/bookcatalog/internal/repository"
)

// Repository is the in-memory backend.
type Repository struct {
	mu         sync.RWMutex
	books      []*domain.Book // kept sorted by ascending id
	booksIndex map[int]*domain.Book
	users      []*domain.User
	authors    []*domain.Author
	publishers map[string]*domain.Publisher
	reviews    []*domain.Review // newest first
}

var _ repository.Repository = (*Repository)(nil)

// New returns an empty in-memory repository.
func New() *Repository {
	return &Repository{
		booksIndex: make(map[int]*domain.Book),
		publishers: make(map[string]*domain.Publisher),
	}
}

// --- Users ---

func (r *Repository) AddUser(user *domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.users = append(r.users, user)
	return nil
}

func (r *Repository) GetUser(userName string) *domain.User {
	r.mu.RLock()
	defer r.mu.RUnlock()
	wanted := strings.ToLower(userName)
	for _, user := range r.users {
		if user.UserName() == wanted {
			return user
		}
	}
	return nil
}

func (r *Repository) UpdateFavourites(user *domain.User, book *domain.Book) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	toggleFavourite(user, book)
	return nil
}

// toggleFavourite flips the favourite link on both sides. Shared between
// nothing else; kept separate so the toggle logic reads as one unit.
func toggleFavourite(user *domain.User, book *domain.Book) {
	for _, b := range user.Favourites() {
		if b == book {
			user.UnfavouriteBook(book)
			book.RemoveUser(user)
			return
		}
	}
	user.FavouriteBook(book)
	book.AddUser(user)
}

// --- Books ---

func (r *Repository) AddBook(book *domain.Book) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	// Insert keeping the slice sorted by id; this is the deterministic
	// baseline iteration order before the engine applies any sort.
	i := sort.Search(len(r.books), func(i int) bool {
		return r.books[i].ID() >= book.ID()
	})
	r.books = append(r.books, nil)
	copy(r.books[i+1:], r.books[i:])
	r.books[i] = book
	r.booksIndex[book.ID()] = book
	return nil
}

func (r *Repository) GetBook(bookID int) *domain.Book {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.booksIndex[bookID]
}

func (r *Repository) GetBooks(ids []int) []*domain.Book {
	r.mu.RLock()
	defer r.mu.RUnlock()
	books := make([]*domain.Book, 0, len(ids))
	for _, id := range ids {
		if book, ok := r.booksIndex[id]; ok {
			books = append(books, book)
		}
	}
	return books
}

func (r *Repository) NumberOfBooks() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.books)
}

func (r *Repository) PartialSearchBooksByTitle(query string) []int {
	ids := []int{}
	query = strings.TrimSpace(query)
	if query == "" {
		return ids
	}
	query = strings.ToLower(query)

	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, book := range r.books {
		if strings.Contains(strings.ToLower(book.Title()), query) {
			ids = append(ids, book.ID())
		}
	}
	return ids
}

func (r *Repository) AllBookIDs() []int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	ids := make([]int, len(r.books))
	for i, book := range r.books {
		ids[i] = book.ID()
	}
	return ids
}

func (r *Repository) BookIDsByYear(year int) []int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	ids := []int{}
	for _, book := range r.books {
		if y := book.ReleaseYear(); y != nil && *y == year {
			ids = append(ids, book.ID())
		}
	}
	return ids
}

// --- Authors ---

func (r *Repository) AddAuthor(author *domain.Author) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.authors = append(r.authors, author)
	return nil
}

func (r *Repository) GetAuthor(authorID int) *domain.Author {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, author := range r.authors {
		if author.ID() == authorID {
			return author
		}
	}
	return nil
}

func (r *Repository) Authors() []*domain.Author {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]*domain.Author{}, r.authors...)
}

func (r *Repository) BookIDsByAuthor(author *domain.Author) []int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.bookIDsByAuthorLocked(author)
}

func (r *Repository) bookIDsByAuthorLocked(author *domain.Author) []int {
	ids := []int{}
	if author == nil {
		return ids
	}
	for _, book := range r.books {
		for _, a := range book.Authors() {
			if a.Equal(author) {
				ids = append(ids, book.ID())
				break
			}
		}
	}
	return ids
}

func (r *Repository) BookIDsByAuthors(authors []*domain.Author) []int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	// Union with duplicates preserved; the engine dedups after
	// intersecting with the other criteria.
	ids := []int{}
	for _, author := range authors {
		ids = append(ids, r.bookIDsByAuthorLocked(author)...)
	}
	return ids
}

func (r *Repository) PartialSearchAuthors(query string) []*domain.Author {
	matching := []*domain.Author{}
	query = strings.TrimSpace(query)
	if query == "" {
		return matching
	}
	query = strings.ToLower(query)

	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, author := range r.authors {
		if strings.Contains(strings.ToLower(author.FullName()), query) {
			matching = append(matching, author)
		}
	}
	return matching
}

// --- Publishers ---

func (r *Repository) AddPublisher(publisher *domain.Publisher) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	// Set semantics keyed on name: re-adding a publisher with a known
	// name keeps the first object.
	if _, ok := r.publishers[publisher.Name()]; !ok {
		r.publishers[publisher.Name()] = publisher
	}
	return nil
}

func (r *Repository) GetPublisher(name string) *domain.Publisher {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.publishers[name]
}

func (r *Repository) Publishers() []*domain.Publisher {
	r.mu.RLock()
	defer r.mu.RUnlock()
	publishers := []*domain.Publisher{}
	for name, publisher := range r.publishers {
		if name == domain.UnknownPublisher {
			continue
		}
		publishers = append(publishers, publisher)
	}
	sort.Slice(publishers, func(i, j int) bool {
		return publishers[i].Less(publishers[j])
	})
	return publishers
}

func (r *Repository) BookIDsByPublisher(publisher *domain.Publisher) []int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.bookIDsByPublisherLocked(publisher)
}

func (r *Repository) bookIDsByPublisherLocked(publisher *domain.Publisher) []int {
	ids := []int{}
	if publisher == nil {
		return ids
	}
	for _, book := range r.books {
		if book.Publisher() != nil && book.Publisher().Equal(publisher) {
			ids = append(ids, book.ID())
		}
	}
	return ids
}

func (r *Repository) BookIDsByPublishers(publishers []*domain.Publisher) []int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	ids := []int{}
	for _, publisher := range publishers {
		ids = append(ids, r.bookIDsByPublisherLocked(publisher)...)
	}
	return ids
}

func (r *Repository) PartialSearchPublishers(query string) []*domain.Publisher {
	matching := []*domain.Publisher{}
	query = strings.TrimSpace(query)
	if query == "" {
		return matching
	}
	query = strings.ToLower(query)

	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, publisher := range r.publishers {
		if strings.Contains(strings.ToLower(publisher.Name()), query) {
			matching = append(matching, publisher)
		}
	}
	sort.Slice(matching, func(i, j int) bool {
		return matching[i].Less(matching[j])
	})
	return matching
}

// --- Reviews ---

func (r *Repository) AddReview(review *domain.Review) error {
	if err := repository.CheckReviewLinks(review); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.reviews = append([]*domain.Review{review}, r.reviews...)
	return nil
}

func (r *Repository) Reviews() []*domain.Review {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]*domain.Review{}, r.reviews...)
}
