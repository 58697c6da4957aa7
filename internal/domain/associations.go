package domain

import "fmt"

// The association helpers update both sides of a bidirectional link in one
// call. They are the only sanctioned way to create cross-entity links;
// calling the one-sided Add methods directly leaves the graph inconsistent.

// MakeReview creates a review and links it to both the user's and the book's
// review collections.
func MakeReview(user *User, book *Book, text string, rating int) (*Review, error) {
	review, err := NewReview(user, book, text, rating)
	if err != nil {
		return nil, err
	}
	user.AddReview(review)
	book.AddReview(review)
	return review, nil
}

// MakeAuthorAssociation links a book and an author on both sides. Linking an
// author already on the book fails with ErrAssociationExists.
func MakeAuthorAssociation(book *Book, author *Author) error {
	for _, a := range book.Authors() {
		if a.Equal(author) {
			return fmt.Errorf("%w: author %q already applied to book %q",
				ErrAssociationExists, author.FullName(), book.Title())
		}
	}
	book.AddAuthor(author)
	author.AddBook(book)
	return nil
}

// MakePublisherAssociation links a book and a publisher on both sides.
// Re-applying the book's current publisher fails with ErrAssociationExists.
func MakePublisherAssociation(book *Book, publisher *Publisher) error {
	if book.Publisher() != nil && book.Publisher().Equal(publisher) {
		return fmt.Errorf("%w: publisher %q already applied to book %q",
			ErrAssociationExists, publisher.Name(), book.Title())
	}
	book.SetPublisher(publisher)
	publisher.AddBook(book)
	return nil
}
