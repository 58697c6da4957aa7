package http

import (
	"github.com/mrlokans/bookcatalog/internal/auth"
	"github.com/mrlokans/bookcatalog/internal/catalog"
	"github.com/mrlokans/bookcatalog/internal/repository"
)

// RouterConfig contains all dependencies and configuration needed to create
// the HTTP router.
type RouterConfig struct {
	// Core dependencies
	Repository repository.Repository
	Catalog    *catalog.Service

	// Authentication
	AuthService    *auth.Service
	SessionManager *auth.SessionManager
	LoginLimiter   *auth.LoginLimiter
	CSRFSecret     []byte
	SecureCookies  bool

	// Browse defaults
	BooksPerPage int

	// Application info
	Version string
}
