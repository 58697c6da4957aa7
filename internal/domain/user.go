package domain

import "strings"

// User is identified by a lowercase, trimmed username. A user built from an
// empty username has a blank identity and is effectively invalid; callers
// must check Valid before relying on the identity.
//
// The password is kept only when it is at least MinPasswordLength characters
// long; anything shorter is discarded and Password returns "".
type User struct {
	userName   string
	password   string
	favourites []*Book
	readBooks  []*Book
	reviews    []*Review
	pagesRead  int
}

// MinPasswordLength is the minimum accepted password length.
const MinPasswordLength = 7

// NewUser normalizes the username and stores the password if acceptable.
// Construction never fails; invalid input yields an invalid user instead.
func NewUser(userName, password string) *User {
	u := &User{}
	if trimmed := strings.TrimSpace(userName); trimmed != "" {
		u.userName = strings.ToLower(trimmed)
	}
	if len(password) >= MinPasswordLength {
		u.password = password
	}
	return u
}

// UserName returns the normalized username, or "" for an invalid user.
func (u *User) UserName() string {
	return u.userName
}

// Valid reports whether the user carries a usable identity.
func (u *User) Valid() bool {
	return u.userName != ""
}

// Password returns the stored password, or "" when none was accepted.
func (u *User) Password() string {
	return u.password
}

// Favourites returns the user's bookmarked books in insertion order.
func (u *User) Favourites() []*Book {
	return u.favourites
}

// FavouriteBook bookmarks a book. Nil books and duplicates are ignored.
func (u *User) FavouriteBook(book *Book) {
	if book == nil {
		return
	}
	for _, b := range u.favourites {
		if b == book {
			return
		}
	}
	u.favourites = append(u.favourites, book)
}

// UnfavouriteBook removes a bookmark, if present.
func (u *User) UnfavouriteBook(book *Book) {
	if book == nil {
		return
	}
	for i, b := range u.favourites {
		if b == book {
			u.favourites = append(u.favourites[:i], u.favourites[i+1:]...)
			return
		}
	}
}

// ReadBooks returns the append-only reading history.
func (u *User) ReadBooks() []*Book {
	return u.readBooks
}

// ReadBook appends a book to the reading history and accumulates its page
// count when known. Unlike favourites, re-reading the same book is recorded
// again.
func (u *User) ReadBook(book *Book) {
	if book == nil {
		return
	}
	u.readBooks = append(u.readBooks, book)
	if pages := book.NumPages(); pages != nil {
		u.pagesRead += *pages
	}
}

// PagesRead returns the accumulated number of pages across the reading
// history.
func (u *User) PagesRead() int {
	return u.pagesRead
}

// Reviews returns the user's reviews, newest first.
func (u *User) Reviews() []*Review {
	return u.reviews
}

// AddReview prepends a review so the list stays newest-first.
func (u *User) AddReview(review *Review) {
	if review == nil {
		return
	}
	u.reviews = append([]*Review{review}, u.reviews...)
}

// Equal compares users by normalized username.
func (u *User) Equal(other *User) bool {
	return other != nil && u.userName == other.userName
}

// Less orders users by username.
func (u *User) Less(other *User) bool {
	return u.userName < other.userName
}
