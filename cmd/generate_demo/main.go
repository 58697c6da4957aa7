// Command generate_demo creates a demo catalog database with public domain books.
// Usage: go run cmd/generate_demo/main.go [-db path/to/demo.db]
package main

import (
	"flag"
	"log"
	"os"
	"path/filepath"

	"golang.org/x/crypto/bcrypt"

	"github.com/mrlokans/bookcatalog/internal/domain"
	"github.com/mrlokans/bookcatalog/internal/repository"
	"github.com/mrlokans/bookcatalog/internal/repository/sqlite"
)

const defaultDemoDatabasePath = "./demo/demo.db"

func main() {
	dbPath := flag.String("db", defaultDemoDatabasePath, "path to the demo database file")
	flag.Parse()

	log.Printf("Generating demo catalog at %s...", *dbPath)

	// Delete existing demo database to start fresh
	if err := os.Remove(*dbPath); err != nil && !os.IsNotExist(err) {
		log.Fatalf("Failed to remove existing demo database: %v", err)
	}
	if err := os.MkdirAll(filepath.Dir(*dbPath), 0o755); err != nil {
		log.Fatalf("Failed to create demo directory: %v", err)
	}

	repo, err := sqlite.Open(*dbPath)
	if err != nil {
		log.Fatalf("Failed to create demo database: %v", err)
	}
	defer repo.Close()

	publishers := createPublishers(repo)
	authors := createAuthors(repo)
	books := createBooks(repo, publishers, authors)
	users := createUsers(repo)
	addReviews(repo, users, books)

	log.Println("Demo catalog generated successfully!")
}

func createPublishers(repo repository.Repository) map[string]*domain.Publisher {
	names := []string{
		"Penguin Classics",
		"Oxford University Press",
		"Project Gutenberg",
	}

	publishers := make(map[string]*domain.Publisher)
	for _, name := range names {
		publisher := domain.NewPublisher(name)
		if err := repo.AddPublisher(publisher); err != nil {
			log.Printf("Failed to save publisher %s: %v", name, err)
			continue
		}
		publishers[name] = publisher
	}
	return publishers
}

func createAuthors(repo repository.Repository) map[string]*domain.Author {
	entries := []struct {
		id   int
		name string
	}{
		{1, "Marcus Aurelius"},
		{2, "Charles Darwin"},
		{3, "Mary Shelley"},
		{4, "Jane Austen"},
		{5, "Herman Melville"},
	}

	authors := make(map[string]*domain.Author)
	for _, entry := range entries {
		author, err := domain.NewAuthor(entry.id, entry.name)
		if err != nil {
			log.Printf("Failed to create author %s: %v", entry.name, err)
			continue
		}
		if err := repo.AddAuthor(author); err != nil {
			log.Printf("Failed to save author %s: %v", entry.name, err)
			continue
		}
		authors[entry.name] = author
	}
	return authors
}

type bookConfig struct {
	id          int
	title       string
	description string
	publisher   string
	author      string
	year        int
	numPages    int
}

func demoBooks() []bookConfig {
	return []bookConfig{
		{
			id:          1,
			title:       "Meditations",
			description: "Personal writings of the Roman emperor on Stoic philosophy and self-discipline.",
			publisher:   "Penguin Classics",
			author:      "Marcus Aurelius",
			year:        180,
			numPages:    254,
		},
		{
			id:          2,
			title:       "On the Origin of Species",
			description: "Darwin's foundational work introducing the theory of evolution by natural selection.",
			publisher:   "Oxford University Press",
			author:      "Charles Darwin",
			year:        1859,
			numPages:    502,
		},
		{
			id:          3,
			title:       "Frankenstein",
			description: "A young scientist creates a sapient creature in an unorthodox experiment.",
			publisher:   "Penguin Classics",
			author:      "Mary Shelley",
			year:        1818,
			numPages:    280,
		},
		{
			id:          4,
			title:       "Pride and Prejudice",
			description: "Elizabeth Bennet learns the repercussions of hasty judgments in Regency England.",
			publisher:   "Project Gutenberg",
			author:      "Jane Austen",
			year:        1813,
			numPages:    432,
		},
		{
			id:          5,
			title:       "Moby-Dick",
			description: "Captain Ahab's obsessive quest for the white whale, narrated by Ishmael.",
			publisher:   "Project Gutenberg",
			author:      "Herman Melville",
			year:        1851,
			numPages:    635,
		},
	}
}

func createBooks(repo repository.Repository, publishers map[string]*domain.Publisher, authors map[string]*domain.Author) map[int]*domain.Book {
	books := make(map[int]*domain.Book)
	for _, cfg := range demoBooks() {
		book, err := domain.NewBook(cfg.id, cfg.title)
		if err != nil {
			log.Printf("Failed to create book %s: %v", cfg.title, err)
			continue
		}
		book.SetDescription(cfg.description)
		if err := book.SetReleaseYear(cfg.year); err != nil {
			log.Printf("Failed to set release year for %s: %v", cfg.title, err)
		}
		book.SetNumPages(cfg.numPages)
		book.SetEbook(true)

		if publisher, ok := publishers[cfg.publisher]; ok {
			if err := domain.MakePublisherAssociation(book, publisher); err != nil {
				log.Printf("Failed to link publisher %s to %s: %v", cfg.publisher, cfg.title, err)
			}
		}
		if author, ok := authors[cfg.author]; ok {
			if err := domain.MakeAuthorAssociation(book, author); err != nil {
				log.Printf("Failed to link author %s to %s: %v", cfg.author, cfg.title, err)
			}
		}

		if err := repo.AddBook(book); err != nil {
			log.Printf("Failed to save book %s: %v", cfg.title, err)
			continue
		}
		books[cfg.id] = book
		log.Printf("Saved: %s by %s (%d)", cfg.title, cfg.author, cfg.year)
	}
	return books
}

func createUsers(repo repository.Repository) map[string]*domain.User {
	entries := []struct {
		name     string
		password string
	}{
		{"demo", "Demopass1"},
		{"reader", "Readerpass1"},
	}

	users := make(map[string]*domain.User)
	for _, entry := range entries {
		hash, err := bcrypt.GenerateFromPassword([]byte(entry.password), bcrypt.DefaultCost)
		if err != nil {
			log.Printf("Failed to hash password for %s: %v", entry.name, err)
			continue
		}
		user := domain.NewUser(entry.name, string(hash))
		if err := repo.AddUser(user); err != nil {
			log.Printf("Failed to save user %s: %v", entry.name, err)
			continue
		}
		users[entry.name] = user
	}
	return users
}

func addReviews(repo repository.Repository, users map[string]*domain.User, books map[int]*domain.Book) {
	entries := []struct {
		user   string
		bookID int
		text   string
		rating int
	}{
		{"demo", 1, "Timeless advice, still readable two millennia later.", 5},
		{"demo", 3, "Far more tragic than the films suggest.", 4},
		{"reader", 1, "Dense in places but worth the effort.", 4},
		{"reader", 5, "The whaling chapters test your patience.", 3},
	}

	for _, entry := range entries {
		user, ok := users[entry.user]
		if !ok {
			continue
		}
		book, ok := books[entry.bookID]
		if !ok {
			continue
		}
		review, err := domain.MakeReview(user, book, entry.text, entry.rating)
		if err != nil {
			log.Printf("Failed to create review for book %d: %v", entry.bookID, err)
			continue
		}
		if err := repo.AddReview(review); err != nil {
			log.Printf("Failed to save review for book %d: %v", entry.bookID, err)
		}
	}

	// Mark a couple of favourites for the demo account
	if user, ok := users["demo"]; ok {
		for _, id := range []int{1, 4} {
			if book, ok := books[id]; ok {
				if err := repo.UpdateFavourites(user, book); err != nil {
					log.Printf("Failed to favourite book %d: %v", id, err)
				}
			}
		}
	}
}
