// Package sqlite implements the repository contract on top of a SQLite
// database. The full object graph is hydrated into an in-memory repository
// when the database is opened; reads that need live pointers are answered
// from that graph, id-level queries go straight to SQL, and every mutating
// call writes through to the database in its own transaction before touching
// the graph.
//
// Scalar fields of a book are persisted by AddBook, so books must be fully
// built, including author and publisher links, before they are added.
package sqlite

import (
	"database/sql"
	"fmt"
	"log"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/mrlokans/bookcatalog/internal/domain"
	"github.com/mrlokans/bookcatalog/internal/repository"
	"github.com/mrlokans/bookcatalog/internal/repository/memory"
)

// Repository is the SQLite-backed repository.
type Repository struct {
	db  *gorm.DB
	mem *memory.Repository

	// userIDs maps usernames to their autoincrement row ids so favourite
	// and review rows can reference users without extra lookups.
	userIDs map[string]uint
}

var _ repository.Repository = (*Repository)(nil)

// Open connects to the database at dbPath, migrates the schema and hydrates
// the object graph.
func Open(dbPath string) (*Repository, error) {
	db, err := gorm.Open(sqlite.Open(dbPath), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	err = db.AutoMigrate(
		&userRow{},
		&publisherRow{},
		&authorRow{},
		&bookRow{},
		&bookAuthorRow{},
		&favouriteRow{},
		&reviewRow{},
	)
	if err != nil {
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	r := &Repository{
		db:      db,
		mem:     memory.New(),
		userIDs: make(map[string]uint),
	}
	if err := r.hydrate(); err != nil {
		return nil, fmt.Errorf("failed to hydrate catalog: %w", err)
	}
	return r, nil
}

// Close releases the underlying database connection.
func (r *Repository) Close() error {
	sqlDB, err := r.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// SQLDB exposes the raw connection for components that sit outside the
// repository, such as the session store.
func (r *Repository) SQLDB() (*sql.DB, error) {
	return r.db.DB()
}

func (r *Repository) hydrate() error {
	var publishers []publisherRow
	if err := r.db.Find(&publishers).Error; err != nil {
		return err
	}
	for _, row := range publishers {
		if err := r.mem.AddPublisher(domain.NewPublisher(row.Name)); err != nil {
			return err
		}
	}

	var authors []authorRow
	if err := r.db.Find(&authors).Error; err != nil {
		return err
	}
	for _, row := range authors {
		author, err := domain.NewAuthor(row.ID, row.FullName)
		if err != nil {
			return fmt.Errorf("author %d: %w", row.ID, err)
		}
		if err := r.mem.AddAuthor(author); err != nil {
			return err
		}
	}

	if err := r.hydrateBooks(); err != nil {
		return err
	}

	var users []userRow
	if err := r.db.Find(&users).Error; err != nil {
		return err
	}
	for _, row := range users {
		if err := r.mem.AddUser(domain.NewUser(row.UserName, row.Password)); err != nil {
			return err
		}
		r.userIDs[row.UserName] = row.ID
	}

	var favourites []favouriteRow
	if err := r.db.Find(&favourites).Error; err != nil {
		return err
	}
	for _, row := range favourites {
		user := r.userByID(row.UserID)
		book := r.mem.GetBook(row.BookID)
		if user == nil || book == nil {
			return fmt.Errorf("favourite row %d references missing user or book", row.ID)
		}
		if err := r.mem.UpdateFavourites(user, book); err != nil {
			return err
		}
	}

	// Reviews are replayed in insertion order so the newest ends up first.
	var reviews []reviewRow
	if err := r.db.Order("id ASC").Find(&reviews).Error; err != nil {
		return err
	}
	for _, row := range reviews {
		user := r.userByID(row.UserID)
		book := r.mem.GetBook(row.BookID)
		if user == nil || book == nil {
			return fmt.Errorf("review row %d references missing user or book", row.ID)
		}
		review, err := domain.NewReviewAt(user, book, row.Text, row.Rating, row.Timestamp)
		if err != nil {
			return fmt.Errorf("review row %d: %w", row.ID, err)
		}
		user.AddReview(review)
		book.AddReview(review)
		if err := r.mem.AddReview(review); err != nil {
			return err
		}
	}
	return nil
}

func (r *Repository) hydrateBooks() error {
	var books []bookRow
	if err := r.db.Order("id ASC").Find(&books).Error; err != nil {
		return err
	}
	for _, row := range books {
		book, err := domain.NewBook(row.ID, row.Title)
		if err != nil {
			return fmt.Errorf("book %d: %w", row.ID, err)
		}
		if row.Description != "" {
			book.SetDescription(row.Description)
		}
		if row.ReleaseYear != nil {
			if err := book.SetReleaseYear(*row.ReleaseYear); err != nil {
				return fmt.Errorf("book %d: %w", row.ID, err)
			}
		}
		if row.Ebook != nil {
			book.SetEbook(*row.Ebook)
		}
		if row.NumPages != nil {
			book.SetNumPages(*row.NumPages)
		}
		if row.ImageURL != nil {
			book.SetImageURL(*row.ImageURL)
		}
		if row.PublisherName != nil {
			publisher := r.mem.GetPublisher(*row.PublisherName)
			if publisher == nil {
				return fmt.Errorf("book %d references unknown publisher %q", row.ID, *row.PublisherName)
			}
			if err := domain.MakePublisherAssociation(book, publisher); err != nil {
				return err
			}
		}
		if err := r.mem.AddBook(book); err != nil {
			return err
		}
	}

	var links []bookAuthorRow
	if err := r.db.Find(&links).Error; err != nil {
		return err
	}
	for _, link := range links {
		book := r.mem.GetBook(link.BookID)
		author := r.mem.GetAuthor(link.AuthorID)
		if book == nil || author == nil {
			return fmt.Errorf("book_authors row %d references missing book or author", link.ID)
		}
		if err := domain.MakeAuthorAssociation(book, author); err != nil {
			return err
		}
	}
	return nil
}

func (r *Repository) userByID(id uint) *domain.User {
	for name, rowID := range r.userIDs {
		if rowID == id {
			return r.mem.GetUser(name)
		}
	}
	return nil
}

// --- Users ---

func (r *Repository) AddUser(user *domain.User) error {
	row := userRow{UserName: user.UserName(), Password: user.Password()}
	err := r.db.Transaction(func(tx *gorm.DB) error {
		return tx.Create(&row).Error
	})
	if err != nil {
		return err
	}
	r.userIDs[user.UserName()] = row.ID
	return r.mem.AddUser(user)
}

func (r *Repository) GetUser(userName string) *domain.User {
	return r.mem.GetUser(userName)
}

func (r *Repository) UpdateFavourites(user *domain.User, book *domain.Book) error {
	userID, ok := r.userIDs[user.UserName()]
	if !ok {
		return fmt.Errorf("user %q has no persisted identity", user.UserName())
	}
	favourited := false
	for _, b := range user.Favourites() {
		if b == book {
			favourited = true
			break
		}
	}
	err := r.db.Transaction(func(tx *gorm.DB) error {
		if favourited {
			return tx.Where("user_id = ? AND book_id = ?", userID, book.ID()).
				Delete(&favouriteRow{}).Error
		}
		return tx.Create(&favouriteRow{UserID: userID, BookID: book.ID()}).Error
	})
	if err != nil {
		return err
	}
	return r.mem.UpdateFavourites(user, book)
}

// --- Books ---

func (r *Repository) AddBook(book *domain.Book) error {
	row := bookRow{
		ID:          book.ID(),
		Title:       book.Title(),
		Description: book.Description(),
		ReleaseYear: book.ReleaseYear(),
		Ebook:       book.Ebook(),
		NumPages:    book.NumPages(),
		ImageURL:    book.ImageURL(),
	}
	if publisher := book.Publisher(); publisher != nil {
		name := publisher.Name()
		row.PublisherName = &name
	}
	err := r.db.Transaction(func(tx *gorm.DB) error {
		if row.PublisherName != nil {
			if err := ensurePublisherRow(tx, *row.PublisherName); err != nil {
				return err
			}
		}
		if err := tx.Create(&row).Error; err != nil {
			return err
		}
		for _, author := range book.Authors() {
			link := bookAuthorRow{BookID: book.ID(), AuthorID: author.ID()}
			if err := tx.Create(&link).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return err
	}
	return r.mem.AddBook(book)
}

func (r *Repository) GetBook(bookID int) *domain.Book {
	return r.mem.GetBook(bookID)
}

func (r *Repository) GetBooks(ids []int) []*domain.Book {
	return r.mem.GetBooks(ids)
}

func (r *Repository) NumberOfBooks() int {
	return r.mem.NumberOfBooks()
}

func (r *Repository) PartialSearchBooksByTitle(query string) []int {
	return r.mem.PartialSearchBooksByTitle(query)
}

func (r *Repository) AllBookIDs() []int {
	return r.scanIDs("SELECT id FROM books ORDER BY id")
}

func (r *Repository) BookIDsByYear(year int) []int {
	return r.scanIDs("SELECT id FROM books WHERE release_year = ? ORDER BY id", year)
}

// --- Authors ---

func (r *Repository) AddAuthor(author *domain.Author) error {
	err := r.db.Transaction(func(tx *gorm.DB) error {
		return tx.Create(&authorRow{ID: author.ID(), FullName: author.FullName()}).Error
	})
	if err != nil {
		return err
	}
	return r.mem.AddAuthor(author)
}

func (r *Repository) GetAuthor(authorID int) *domain.Author {
	return r.mem.GetAuthor(authorID)
}

func (r *Repository) Authors() []*domain.Author {
	return r.mem.Authors()
}

func (r *Repository) BookIDsByAuthor(author *domain.Author) []int {
	if author == nil {
		return []int{}
	}
	return r.scanIDs("SELECT book_id FROM book_authors WHERE author_id = ? ORDER BY book_id", author.ID())
}

func (r *Repository) BookIDsByAuthors(authors []*domain.Author) []int {
	ids := []int{}
	for _, author := range authors {
		ids = append(ids, r.BookIDsByAuthor(author)...)
	}
	return ids
}

func (r *Repository) PartialSearchAuthors(query string) []*domain.Author {
	return r.mem.PartialSearchAuthors(query)
}

// --- Publishers ---

func (r *Repository) AddPublisher(publisher *domain.Publisher) error {
	err := r.db.Transaction(func(tx *gorm.DB) error {
		return ensurePublisherRow(tx, publisher.Name())
	})
	if err != nil {
		return err
	}
	return r.mem.AddPublisher(publisher)
}

func (r *Repository) GetPublisher(name string) *domain.Publisher {
	return r.mem.GetPublisher(name)
}

func (r *Repository) Publishers() []*domain.Publisher {
	return r.mem.Publishers()
}

func (r *Repository) BookIDsByPublisher(publisher *domain.Publisher) []int {
	if publisher == nil {
		return []int{}
	}
	return r.scanIDs("SELECT id FROM books WHERE publisher_name = ? ORDER BY id", publisher.Name())
}

func (r *Repository) BookIDsByPublishers(publishers []*domain.Publisher) []int {
	ids := []int{}
	for _, publisher := range publishers {
		ids = append(ids, r.BookIDsByPublisher(publisher)...)
	}
	return ids
}

func (r *Repository) PartialSearchPublishers(query string) []*domain.Publisher {
	return r.mem.PartialSearchPublishers(query)
}

// --- Reviews ---

func (r *Repository) AddReview(review *domain.Review) error {
	if err := repository.CheckReviewLinks(review); err != nil {
		return err
	}
	userID, ok := r.userIDs[review.User().UserName()]
	if !ok {
		return fmt.Errorf("user %q has no persisted identity", review.User().UserName())
	}
	row := reviewRow{
		UserID:    userID,
		BookID:    review.Book().ID(),
		Text:      review.Text(),
		Rating:    review.Rating(),
		Timestamp: review.Timestamp(),
	}
	err := r.db.Transaction(func(tx *gorm.DB) error {
		return tx.Create(&row).Error
	})
	if err != nil {
		return err
	}
	return r.mem.AddReview(review)
}

func (r *Repository) Reviews() []*domain.Review {
	return r.mem.Reviews()
}

func (r *Repository) scanIDs(query string, args ...interface{}) []int {
	ids := []int{}
	if err := r.db.Raw(query, args...).Scan(&ids).Error; err != nil {
		log.Printf("catalog query failed: %v", err)
		return []int{}
	}
	return ids
}

func ensurePublisherRow(tx *gorm.DB, name string) error {
	var existing publisherRow
	err := tx.Where("name = ?", name).First(&existing).Error
	if err == gorm.ErrRecordNotFound {
		return tx.Create(&publisherRow{Name: name}).Error
	}
	return err
}
