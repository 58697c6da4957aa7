// Package auth covers account registration, credential checks, session
// management and the protections around the login endpoint.
package auth

import (
	"errors"

	"github.com/mrlokans/bookcatalog/internal/domain"
	"github.com/mrlokans/bookcatalog/internal/repository"
)

var (
	// ErrNameNotUnique is returned when registering an already taken username.
	ErrNameNotUnique = errors.New("username is already taken")
	// ErrUnknownUserName is returned when logging in with an unknown username.
	ErrUnknownUserName = errors.New("unknown username")
	// ErrInvalidUserName is returned when the username normalizes to nothing.
	ErrInvalidUserName = errors.New("invalid username")
)

// Service implements registration and login over the repository. Passwords
// are stored bcrypt-hashed; the plain text never reaches the repository.
type Service struct {
	repo repository.Repository
	cost int
}

// NewService wraps a repository. cost is the bcrypt cost used for new
// accounts.
func NewService(repo repository.Repository, cost int) *Service {
	return &Service{repo: repo, cost: cost}
}

// Register creates a new user account.
func (s *Service) Register(userName, password string) (*domain.User, error) {
	hash, err := HashPassword(password, s.cost)
	if err != nil {
		return nil, err
	}
	user := domain.NewUser(userName, hash)
	if !user.Valid() {
		return nil, ErrInvalidUserName
	}
	if s.repo.GetUser(user.UserName()) != nil {
		return nil, ErrNameNotUnique
	}
	if err := s.repo.AddUser(user); err != nil {
		return nil, err
	}
	return user, nil
}

// Login verifies the credentials and returns the user. Unknown usernames and
// wrong passwords are reported with distinct errors; callers presenting the
// failure to clients should collapse them into one message.
func (s *Service) Login(userName, password string) (*domain.User, error) {
	user := s.repo.GetUser(userName)
	if user == nil {
		return nil, ErrUnknownUserName
	}
	if err := CheckPassword(password, user.Password()); err != nil {
		return nil, err
	}
	return user, nil
}
