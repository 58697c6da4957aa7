package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/mrlokans/bookcatalog/internal/repository/memory"
)

func newTestService(t *testing.T) (*Service, *memory.Repository) {
	t.Helper()
	repo := memory.New()
	return NewService(repo, bcrypt.MinCost), repo
}

func TestRegister(t *testing.T) {
	service, repo := newTestService(t)

	t.Run("creates a user with a hashed password", func(t *testing.T) {
		user, err := service.Register("Martin", "Password123")
		require.NoError(t, err)
		assert.Equal(t, "martin", user.UserName())
		assert.NotEqual(t, "Password123", user.Password())
		assert.NoError(t, CheckPassword("Password123", user.Password()))
		assert.Same(t, user, repo.GetUser("martin"))
	})

	t.Run("rejects a taken username", func(t *testing.T) {
		_, err := service.Register("MARTIN", "Different1")
		assert.ErrorIs(t, err, ErrNameNotUnique)
	})

	t.Run("rejects a short password before hashing", func(t *testing.T) {
		_, err := service.Register("casual", "short")
		assert.ErrorIs(t, err, ErrPasswordTooShort)
		assert.Nil(t, repo.GetUser("casual"))
	})

	t.Run("rejects a blank username", func(t *testing.T) {
		_, err := service.Register("   ", "Password123")
		assert.ErrorIs(t, err, ErrInvalidUserName)
	})
}

func TestLogin(t *testing.T) {
	service, _ := newTestService(t)
	_, err := service.Register("Martin", "Password123")
	require.NoError(t, err)

	t.Run("valid credentials", func(t *testing.T) {
		user, err := service.Login("martin", "Password123")
		require.NoError(t, err)
		assert.Equal(t, "martin", user.UserName())
	})

	t.Run("username lookup is case insensitive", func(t *testing.T) {
		_, err := service.Login("MaRtIn", "Password123")
		assert.NoError(t, err)
	})

	t.Run("wrong password", func(t *testing.T) {
		_, err := service.Login("martin", "Password124")
		assert.ErrorIs(t, err, ErrInvalidPassword)
	})

	t.Run("unknown username", func(t *testing.T) {
		_, err := service.Login("nobody", "Password123")
		assert.ErrorIs(t, err, ErrUnknownUserName)
	})
}

func TestHashPasswordBounds(t *testing.T) {
	_, err := HashPassword("exactly", bcrypt.MinCost)
	assert.NoError(t, err)

	_, err = HashPassword("sixchr", bcrypt.MinCost)
	assert.ErrorIs(t, err, ErrPasswordTooShort)

	long := make([]byte, 73)
	for i := range long {
		long[i] = 'a'
	}
	_, err = HashPassword(string(long), bcrypt.MinCost)
	assert.ErrorIs(t, err, ErrPasswordTooLong)
}

func TestGenerateSessionSecret(t *testing.T) {
	first, err := GenerateSessionSecret()
	require.NoError(t, err)
	second, err := GenerateSessionSecret()
	require.NoError(t, err)
	assert.Len(t, first, 64)
	assert.NotEqual(t, first, second)
}

func TestLoginLimiter(t *testing.T) {
	limiter := NewLoginLimiter(5, 2)

	t.Run("burst then deny", func(t *testing.T) {
		assert.True(t, limiter.Allow("10.0.0.1", "martin"))
		assert.True(t, limiter.Allow("10.0.0.1", "martin"))
		assert.False(t, limiter.Allow("10.0.0.1", "martin"))
	})

	t.Run("keys are independent", func(t *testing.T) {
		assert.True(t, limiter.Allow("10.0.0.2", "martin"))
		assert.True(t, limiter.Allow("10.0.0.1", "other"))
	})
}
