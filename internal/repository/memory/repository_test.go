package memory

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrlokans/bookcatalog/internal/domain"
	"github.com/mrlokans/bookcatalog/internal/repository"
)

func newBook(t *testing.T, id int, title string) *domain.Book {
	t.Helper()
	book, err := domain.NewBook(id, title)
	require.NoError(t, err)
	return book
}

func newAuthor(t *testing.T, id int, name string) *domain.Author {
	t.Helper()
	author, err := domain.NewAuthor(id, name)
	require.NoError(t, err)
	return author
}

func seededRepo(t *testing.T) *Repository {
	t.Helper()
	repo := New()

	titles := map[int]string{
		1: "A Brief History of Time",
		2: "American Gods",
		3: "Captain America",
		4: "Coraline",
	}
	for id, title := range titles {
		require.NoError(t, repo.AddBook(newBook(t, id, title)))
	}
	return repo
}

func TestAddAndGetBook(t *testing.T) {
	repo := New()
	book := newBook(t, 42, "The Name of the Wind")

	require.NoError(t, repo.AddBook(book))

	assert.Same(t, book, repo.GetBook(42))
	assert.Nil(t, repo.GetBook(7))
	assert.Equal(t, 1, repo.NumberOfBooks())
}

func TestAllBookIDsSortedAscending(t *testing.T) {
	repo := New()
	for _, id := range []int{30, 10, 20} {
		require.NoError(t, repo.AddBook(newBook(t, id, "Book")))
	}

	assert.Equal(t, []int{10, 20, 30}, repo.AllBookIDs())
}

func TestGetBooksSkipsUnknownIDs(t *testing.T) {
	repo := seededRepo(t)

	books := repo.GetBooks([]int{2, 99, 4})

	require.Len(t, books, 2)
	assert.Equal(t, "American Gods", books[0].Title())
	assert.Equal(t, "Coraline", books[1].Title())
}

func TestPartialSearchBooksByTitle(t *testing.T) {
	repo := seededRepo(t)

	t.Run("case insensitive substring", func(t *testing.T) {
		assert.Equal(t, []int{2, 3}, repo.PartialSearchBooksByTitle("america"))
	})

	t.Run("query is trimmed", func(t *testing.T) {
		assert.Equal(t, []int{2, 3}, repo.PartialSearchBooksByTitle("  AmeRICa  "))
	})

	t.Run("empty query matches nothing", func(t *testing.T) {
		assert.Empty(t, repo.PartialSearchBooksByTitle(""))
		assert.Empty(t, repo.PartialSearchBooksByTitle("   "))
	})

	t.Run("no match", func(t *testing.T) {
		assert.Empty(t, repo.PartialSearchBooksByTitle("discworld"))
	})
}

func TestBookIDsByYear(t *testing.T) {
	repo := seededRepo(t)
	require.NoError(t, repo.GetBook(2).SetReleaseYear(2001))
	require.NoError(t, repo.GetBook(4).SetReleaseYear(2002))

	assert.Equal(t, []int{2}, repo.BookIDsByYear(2001))
	assert.Empty(t, repo.BookIDsByYear(1984))
}

func TestUsers(t *testing.T) {
	repo := New()
	user := domain.NewUser("Martin", "correct horse battery")
	require.NoError(t, repo.AddUser(user))

	t.Run("lookup is case insensitive", func(t *testing.T) {
		assert.Same(t, user, repo.GetUser("martin"))
		assert.Same(t, user, repo.GetUser("MARTIN"))
	})

	t.Run("unknown user is nil", func(t *testing.T) {
		assert.Nil(t, repo.GetUser("nobody"))
	})
}

func TestUpdateFavouritesToggles(t *testing.T) {
	repo := seededRepo(t)
	user := domain.NewUser("Martin", "correct horse battery")
	require.NoError(t, repo.AddUser(user))
	book := repo.GetBook(1)

	require.NoError(t, repo.UpdateFavourites(user, book))
	assert.Equal(t, []*domain.Book{book}, user.Favourites())
	assert.Equal(t, []*domain.User{user}, book.UsersWhoFavourited())

	// Toggling again removes the link on both sides.
	require.NoError(t, repo.UpdateFavourites(user, book))
	assert.Empty(t, user.Favourites())
	assert.Empty(t, book.UsersWhoFavourited())
}

func TestAuthors(t *testing.T) {
	repo := New()
	pratchett := newAuthor(t, 1, "Terry Pratchett")
	gaiman := newAuthor(t, 2, "Neil Gaiman")
	require.NoError(t, repo.AddAuthor(pratchett))
	require.NoError(t, repo.AddAuthor(gaiman))

	assert.Same(t, gaiman, repo.GetAuthor(2))
	assert.Nil(t, repo.GetAuthor(99))
	assert.Len(t, repo.Authors(), 2)

	t.Run("partial search", func(t *testing.T) {
		found := repo.PartialSearchAuthors("terry")
		require.Len(t, found, 1)
		assert.Same(t, pratchett, found[0])

		assert.Empty(t, repo.PartialSearchAuthors(""))
		assert.Empty(t, repo.PartialSearchAuthors("austen"))
	})
}

func TestBookIDsByAuthors(t *testing.T) {
	repo := seededRepo(t)
	gaiman := newAuthor(t, 1, "Neil Gaiman")
	hawking := newAuthor(t, 2, "Stephen Hawking")
	require.NoError(t, repo.AddAuthor(gaiman))
	require.NoError(t, repo.AddAuthor(hawking))

	require.NoError(t, domain.MakeAuthorAssociation(repo.GetBook(1), hawking))
	require.NoError(t, domain.MakeAuthorAssociation(repo.GetBook(2), gaiman))
	require.NoError(t, domain.MakeAuthorAssociation(repo.GetBook(4), gaiman))

	assert.Equal(t, []int{2, 4}, repo.BookIDsByAuthor(gaiman))
	assert.Empty(t, repo.BookIDsByAuthor(nil))

	t.Run("union keeps duplicates", func(t *testing.T) {
		ids := repo.BookIDsByAuthors([]*domain.Author{gaiman, hawking, gaiman})
		assert.Equal(t, []int{2, 4, 1, 2, 4}, ids)
	})
}

func TestPublishers(t *testing.T) {
	repo := New()
	gollancz := domain.NewPublisher("Gollancz")
	unknown := domain.NewPublisher("")
	require.NoError(t, repo.AddPublisher(gollancz))
	require.NoError(t, repo.AddPublisher(unknown))

	t.Run("lookup by name", func(t *testing.T) {
		assert.Same(t, gollancz, repo.GetPublisher("Gollancz"))
		assert.Nil(t, repo.GetPublisher("Tor"))
	})

	t.Run("set semantics keyed on name", func(t *testing.T) {
		require.NoError(t, repo.AddPublisher(domain.NewPublisher("Gollancz")))
		assert.Same(t, gollancz, repo.GetPublisher("Gollancz"))
	})

	t.Run("listing excludes the unknown sentinel", func(t *testing.T) {
		publishers := repo.Publishers()
		require.Len(t, publishers, 1)
		assert.Same(t, gollancz, publishers[0])
	})
}

func TestBookIDsByPublishers(t *testing.T) {
	repo := seededRepo(t)
	gollancz := domain.NewPublisher("Gollancz")
	tor := domain.NewPublisher("Tor")
	require.NoError(t, repo.AddPublisher(gollancz))
	require.NoError(t, repo.AddPublisher(tor))

	require.NoError(t, domain.MakePublisherAssociation(repo.GetBook(2), gollancz))
	require.NoError(t, domain.MakePublisherAssociation(repo.GetBook(3), gollancz))
	require.NoError(t, domain.MakePublisherAssociation(repo.GetBook(4), tor))

	assert.Equal(t, []int{2, 3}, repo.BookIDsByPublisher(gollancz))
	assert.Empty(t, repo.BookIDsByPublisher(nil))

	ids := repo.BookIDsByPublishers([]*domain.Publisher{tor, gollancz, tor})
	assert.Equal(t, []int{4, 2, 3, 4}, ids)

	t.Run("partial search", func(t *testing.T) {
		found := repo.PartialSearchPublishers("GOLL")
		require.Len(t, found, 1)
		assert.Same(t, gollancz, found[0])
		assert.Empty(t, repo.PartialSearchPublishers(" "))
	})
}

func TestAddReview(t *testing.T) {
	buildReview := func(t *testing.T) (*domain.User, *domain.Book, *domain.Review) {
		t.Helper()
		user := domain.NewUser("Martin", "correct horse battery")
		book := newBook(t, 1, "Coraline")
		review, err := domain.NewReview(user, book, "Loved it", 5)
		require.NoError(t, err)
		return user, book, review
	}

	t.Run("fully linked review is stored newest first", func(t *testing.T) {
		repo := New()
		user, book, first := buildReview(t)
		user.AddReview(first)
		book.AddReview(first)
		require.NoError(t, repo.AddReview(first))

		second, err := domain.NewReview(user, book, "Still great", 4)
		require.NoError(t, err)
		user.AddReview(second)
		book.AddReview(second)
		require.NoError(t, repo.AddReview(second))

		reviews := repo.Reviews()
		require.Len(t, reviews, 2)
		assert.Same(t, second, reviews[0])
		assert.Same(t, first, reviews[1])
	})

	t.Run("rejects review missing both links", func(t *testing.T) {
		repo := New()
		_, _, review := buildReview(t)
		assert.ErrorIs(t, repo.AddReview(review), repository.ErrInconsistentReview)
		assert.Empty(t, repo.Reviews())
	})

	t.Run("rejects review linked only on the user side", func(t *testing.T) {
		repo := New()
		user, _, review := buildReview(t)
		user.AddReview(review)
		assert.ErrorIs(t, repo.AddReview(review), repository.ErrInconsistentReview)
		assert.Empty(t, repo.Reviews())
	})

	t.Run("rejects review linked only on the book side", func(t *testing.T) {
		repo := New()
		_, book, review := buildReview(t)
		book.AddReview(review)
		assert.ErrorIs(t, repo.AddReview(review), repository.ErrInconsistentReview)
		assert.Empty(t, repo.Reviews())
	})

	t.Run("rejects review attached to a different user object", func(t *testing.T) {
		repo := New()
		_, book, review := buildReview(t)
		stranger := domain.NewUser("Eve", "correct horse battery")
		stranger.AddReview(review)
		book.AddReview(review)
		assert.ErrorIs(t, repo.AddReview(review), repository.ErrInconsistentReview)
		assert.Empty(t, repo.Reviews())
	})
}
