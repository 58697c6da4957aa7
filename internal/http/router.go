// Package http is the gin presentation layer over the catalog and auth
// services. Handlers translate query strings and JSON bodies into service
// calls and map service errors onto HTTP statuses; no business rules live
// here.
package http

import (
	"github.com/gin-gonic/gin"

	"github.com/mrlokans/bookcatalog/internal/auth"
)

// NewRouter creates and configures the HTTP router with all endpoints.
func NewRouter(cfg RouterConfig) *gin.Engine {
	router := gin.New()
	router.Use(gin.Logger())
	router.Use(gin.Recovery())

	// CSRF must run before session so that session context is preserved
	if len(cfg.CSRFSecret) > 0 {
		router.Use(auth.CSRFMiddleware(cfg.CSRFSecret, cfg.SecureCookies))
	}
	if cfg.SessionManager != nil {
		router.Use(cfg.SessionManager.SessionLoadSave())
	}

	healthController := NewHealthController(cfg.Repository, cfg.Version)
	router.GET("/health", healthController.Status)

	browseController := NewBrowseController(cfg.Catalog, cfg.SessionManager, cfg.BooksPerPage)
	router.GET("/browse", browseController.Browse)

	bookController := NewBookController(cfg.Catalog, cfg.SessionManager)
	router.GET("/books/:id", bookController.Detail)
	router.GET("/books/:id/reviews", bookController.Reviews)

	directoryController := NewDirectoryController(cfg.Repository)
	router.GET("/publishers", directoryController.Publishers)
	router.GET("/authors", directoryController.Authors)

	if cfg.AuthService != nil && cfg.SessionManager != nil {
		authController := NewAuthController(cfg.AuthService, cfg.SessionManager, cfg.LoginLimiter)
		router.POST("/auth/register", authController.Register)
		router.POST("/auth/login", authController.Login)
		router.POST("/auth/logout", authController.Logout)

		protected := router.Group("/", cfg.SessionManager.RequireLogin())
		protected.GET("/bookshelf", browseController.Bookshelf)
		protected.POST("/books/:id/reviews", bookController.PostReview)
		protected.POST("/books/:id/favourite", bookController.ToggleFavourite)
	}

	return router
}
