// Package loader ingests bulk catalog data through the repository contract.
// Everything goes through the same constructors and association helpers as
// the runtime paths, so loaded data obeys the same validation rules.
package loader

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/mrlokans/bookcatalog/internal/domain"
	"github.com/mrlokans/bookcatalog/internal/repository"
)

const (
	booksFile   = "books.json"
	usersFile   = "users.csv"
	reviewsFile = "reviews.csv"
)

type authorJSON struct {
	ID       int    `json:"id"`
	FullName string `json:"full_name"`
}

type bookJSON struct {
	ID          int          `json:"id"`
	Title       string       `json:"title"`
	Description string       `json:"description"`
	Publisher   string       `json:"publisher"`
	ReleaseYear *int         `json:"release_year"`
	Ebook       *bool        `json:"ebook"`
	NumPages    *int         `json:"num_pages"`
	ImageURL    *string      `json:"image_url"`
	Authors     []authorJSON `json:"authors"`
}

// Populate loads books, users and reviews from dataDir in dependency order.
// User passwords are read in plain text and bcrypt-hashed at the given cost
// before they reach the repository.
func Populate(dataDir string, repo repository.Repository, hashCost int) error {
	if err := loadBooks(dataDir, repo); err != nil {
		return fmt.Errorf("loading books: %w", err)
	}
	users, err := loadUsers(dataDir, repo, hashCost)
	if err != nil {
		return fmt.Errorf("loading users: %w", err)
	}
	if err := loadReviews(dataDir, repo, users); err != nil {
		return fmt.Errorf("loading reviews: %w", err)
	}
	return nil
}

// loadBooks reads books.json and registers publishers, authors and fully
// linked books. Books must be complete before they are added so the
// relational backend persists their links.
func loadBooks(dataDir string, repo repository.Repository) error {
	data, err := os.ReadFile(filepath.Join(dataDir, booksFile))
	if err != nil {
		return err
	}
	var entries []bookJSON
	if err := json.Unmarshal(data, &entries); err != nil {
		return err
	}

	publishers := map[string]*domain.Publisher{}
	authors := map[int]*domain.Author{}
	for _, entry := range entries {
		book, err := domain.NewBook(entry.ID, entry.Title)
		if err != nil {
			return fmt.Errorf("book %d: %w", entry.ID, err)
		}
		if entry.Description != "" {
			book.SetDescription(entry.Description)
		}
		if entry.ReleaseYear != nil {
			if err := book.SetReleaseYear(*entry.ReleaseYear); err != nil {
				return fmt.Errorf("book %d: %w", entry.ID, err)
			}
		}
		if entry.Ebook != nil {
			book.SetEbook(*entry.Ebook)
		}
		if entry.NumPages != nil {
			book.SetNumPages(*entry.NumPages)
		}
		if entry.ImageURL != nil {
			book.SetImageURL(*entry.ImageURL)
		}

		if name := strings.TrimSpace(entry.Publisher); name != "" {
			publisher, ok := publishers[name]
			if !ok {
				publisher = domain.NewPublisher(name)
				publishers[name] = publisher
				if err := repo.AddPublisher(publisher); err != nil {
					return err
				}
			}
			if err := domain.MakePublisherAssociation(book, publisher); err != nil {
				return err
			}
		}

		for _, ref := range entry.Authors {
			author, ok := authors[ref.ID]
			if !ok {
				author, err = domain.NewAuthor(ref.ID, ref.FullName)
				if err != nil {
					return fmt.Errorf("author %d: %w", ref.ID, err)
				}
				authors[ref.ID] = author
				if err := repo.AddAuthor(author); err != nil {
					return err
				}
			}
			if err := domain.MakeAuthorAssociation(book, author); err != nil {
				return err
			}
		}

		if err := repo.AddBook(book); err != nil {
			return fmt.Errorf("book %d: %w", entry.ID, err)
		}
	}
	return nil
}

// loadUsers reads users.csv rows of (id, user_name, password) and returns
// the users keyed by their csv id for the review loader.
func loadUsers(dataDir string, repo repository.Repository, hashCost int) (map[string]*domain.User, error) {
	rows, err := readCSV(filepath.Join(dataDir, usersFile))
	if err != nil {
		return nil, err
	}
	users := map[string]*domain.User{}
	for _, row := range rows {
		if len(row) < 3 {
			return nil, fmt.Errorf("malformed user row %v", row)
		}
		hash, err := bcrypt.GenerateFromPassword([]byte(row[2]), hashCost)
		if err != nil {
			return nil, err
		}
		user := domain.NewUser(row[1], string(hash))
		if !user.Valid() {
			return nil, fmt.Errorf("user row %v: %w", row, domain.ErrInvalidEntity)
		}
		if err := repo.AddUser(user); err != nil {
			return nil, err
		}
		users[row[0]] = user
	}
	return users, nil
}

// loadReviews reads reviews.csv rows of (id, user_id, book_id, text, rating).
func loadReviews(dataDir string, repo repository.Repository, users map[string]*domain.User) error {
	rows, err := readCSV(filepath.Join(dataDir, reviewsFile))
	if err != nil {
		return err
	}
	for _, row := range rows {
		if len(row) < 5 {
			return fmt.Errorf("malformed review row %v", row)
		}
		user, ok := users[row[1]]
		if !ok {
			return fmt.Errorf("review row %v references unknown user %s", row, row[1])
		}
		bookID, err := strconv.Atoi(row[2])
		if err != nil {
			return fmt.Errorf("review row %v: %w", row, err)
		}
		book := repo.GetBook(bookID)
		if book == nil {
			return fmt.Errorf("review row %v references unknown book %d", row, bookID)
		}
		rating, err := strconv.Atoi(row[4])
		if err != nil {
			return fmt.Errorf("review row %v: %w", row, err)
		}
		review, err := domain.MakeReview(user, book, row[3], rating)
		if err != nil {
			return fmt.Errorf("review row %v: %w", row, err)
		}
		if err := repo.AddReview(review); err != nil {
			return err
		}
	}
	return nil
}

// readCSV returns the data rows of a headed CSV file with every field
// trimmed of surrounding whitespace.
func readCSV(path string) ([][]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	reader := csv.NewReader(f)
	records, err := reader.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, nil
	}
	rows := records[1:]
	for _, row := range rows {
		for i := range row {
			row[i] = strings.TrimSpace(row[i])
		}
	}
	return rows, nil
}
