package loader

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/mrlokans/bookcatalog/internal/repository/memory"
)

func TestPopulate(t *testing.T) {
	repo := memory.New()
	require.NoError(t, Populate("testdata", repo, bcrypt.MinCost))

	t.Run("books with fields and links", func(t *testing.T) {
		assert.Equal(t, 4, repo.NumberOfBooks())

		history := repo.GetBook(1)
		require.NotNil(t, history)
		assert.Equal(t, "A Brief History of Time", history.Title())
		assert.Equal(t, "From the Big Bang to black holes.", history.Description())
		require.NotNil(t, history.ReleaseYear())
		assert.Equal(t, 1988, *history.ReleaseYear())
		require.NotNil(t, history.NumPages())
		assert.Equal(t, 256, *history.NumPages())
		require.NotNil(t, history.Publisher())
		assert.Equal(t, "Bantam", history.Publisher().Name())

		omens := repo.GetBook(2)
		require.NotNil(t, omens)
		require.Len(t, omens.Authors(), 2)
		assert.Equal(t, "Terry Pratchett", omens.Authors()[0].FullName())
		assert.Equal(t, "Neil Gaiman", omens.Authors()[1].FullName())

		pamphlet := repo.GetBook(4)
		require.NotNil(t, pamphlet)
		assert.Nil(t, pamphlet.Publisher())
		assert.Empty(t, pamphlet.Authors())
	})

	t.Run("shared entities are registered once", func(t *testing.T) {
		assert.Len(t, repo.Authors(), 3)
		assert.Len(t, repo.Publishers(), 2)
		assert.Same(t, repo.GetBook(2).Publisher(), repo.GetBook(3).Publisher())
	})

	t.Run("author backrefs", func(t *testing.T) {
		gaiman := repo.GetAuthor(3)
		require.NotNil(t, gaiman)
		assert.Len(t, gaiman.Books(), 2)
	})

	t.Run("users with hashed passwords", func(t *testing.T) {
		martin := repo.GetUser("martin")
		require.NotNil(t, martin)
		assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(martin.Password()), []byte("Password123")))
	})

	t.Run("reviews linked and trimmed", func(t *testing.T) {
		reviews := repo.Reviews()
		require.Len(t, reviews, 3)

		// CSV fields arrive trimmed.
		coraline := repo.GetBook(3)
		require.Len(t, coraline.Reviews(), 1)
		assert.Equal(t, "Creepy in the best way", coraline.Reviews()[0].Text())
		assert.Equal(t, 4, coraline.Reviews()[0].Rating())

		martin := repo.GetUser("martin")
		assert.Len(t, martin.Reviews(), 2)
	})
}

func TestPopulateMissingDir(t *testing.T) {
	repo := memory.New()
	assert.Error(t, Populate(t.TempDir(), repo, bcrypt.MinCost))
}
