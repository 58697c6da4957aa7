// Package entrypoint wires the configured backend, loaders, services and
// router together and runs the HTTP server.
package entrypoint

import (
	"context"
	"database/sql"
	"encoding/hex"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/bookcatalog/internal/auth"
	"github.com/mrlokans/bookcatalog/internal/catalog"
	"github.com/mrlokans/bookcatalog/internal/config"
	http_controllers "github.com/mrlokans/bookcatalog/internal/http"
	"github.com/mrlokans/bookcatalog/internal/loader"
	"github.com/mrlokans/bookcatalog/internal/repository"
	"github.com/mrlokans/bookcatalog/internal/repository/memory"
	"github.com/mrlokans/bookcatalog/internal/repository/sqlite"
)

// ShutdownFunc is called during graceful shutdown to clean up resources.
type ShutdownFunc func(ctx context.Context)

// BuildRepository constructs the backend selected by the configuration. The
// returned *sql.DB is non-nil only for the relational backend and feeds the
// session store.
func BuildRepository(cfg *config.Config) (repository.Repository, *sql.DB, error) {
	switch cfg.Repository.Backend {
	case config.BackendMemory:
		log.Printf("Using in-memory repository")
		return memory.New(), nil, nil
	case config.BackendSQLite:
		log.Printf("Using sqlite repository at %s", cfg.Repository.DatabasePath)
		repo, err := sqlite.Open(cfg.Repository.DatabasePath)
		if err != nil {
			return nil, nil, err
		}
		sqlDB, err := repo.SQLDB()
		if err != nil {
			return nil, nil, err
		}
		return repo, sqlDB, nil
	default:
		return nil, nil, fmt.Errorf("unknown repository backend %q", cfg.Repository.Backend)
	}
}

// Run builds the whole application from the configuration and serves it.
func Run(cfg *config.Config, version string) {
	log.Printf("Starting book catalog v%s", version)

	repo, sqlDB, err := BuildRepository(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize repository: %v", err)
	}
	if closer, ok := repo.(*sqlite.Repository); ok {
		defer func() {
			if err := closer.Close(); err != nil {
				log.Printf("Error closing repository: %v", err)
			}
		}()
	}

	// An already populated relational catalog keeps its data; seeding a
	// non-empty catalog again would collide on primary keys.
	if cfg.Repository.DataDir != "" && repo.NumberOfBooks() == 0 {
		log.Printf("Populating catalog from %s", cfg.Repository.DataDir)
		if err := loader.Populate(cfg.Repository.DataDir, repo, cfg.Auth.BcryptCost); err != nil {
			log.Fatalf("Failed to populate catalog: %v", err)
		}
		log.Printf("Catalog populated with %d books", repo.NumberOfBooks())
	}

	sessionManager, err := auth.NewSessionManager(sqlDB, cfg.Auth)
	if err != nil {
		log.Fatalf("Failed to initialize session manager: %v", err)
	}

	var csrfSecret []byte
	if cfg.Auth.SessionSecret != "" {
		csrfSecret, err = hex.DecodeString(cfg.Auth.SessionSecret)
		if err != nil {
			// Not hex, use as raw bytes
			csrfSecret = []byte(cfg.Auth.SessionSecret)
		}
	} else {
		secret, err := auth.GenerateSessionSecret()
		if err != nil {
			log.Fatalf("Failed to generate CSRF secret: %v", err)
		}
		csrfSecret, _ = hex.DecodeString(secret)
		log.Printf("Generated session secret (set AUTH_SESSION_SECRET to persist)")
	}

	router := http_controllers.NewRouter(http_controllers.RouterConfig{
		Repository:     repo,
		Catalog:        catalog.NewService(repo),
		AuthService:    auth.NewService(repo, cfg.Auth.BcryptCost),
		SessionManager: sessionManager,
		LoginLimiter:   auth.NewLoginLimiter(cfg.Auth.LoginRatePerMinute, cfg.Auth.LoginBurst),
		CSRFSecret:     csrfSecret,
		SecureCookies:  cfg.Auth.SecureCookies,
		BooksPerPage:   cfg.Browse.BooksPerPage,
		Version:        version,
	})

	Serve(router, cfg, nil)
}

// Serve runs the router until SIGINT/SIGTERM, then shuts down gracefully
// within the configured timeout.
func Serve(router *gin.Engine, cfg *config.Config, onShutdown ShutdownFunc) {
	timeout := time.Duration(cfg.Global.ShutdownTimeoutInSeconds) * time.Second

	srv := &http.Server{
		Addr:    fmt.Sprintf("%s:%d", cfg.HTTP.Host, cfg.HTTP.Port),
		Handler: router,
	}

	go func() {
		log.Printf("Starting server at %s:%d", cfg.HTTP.Host, cfg.HTTP.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %s\n", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Printf("Shutdown Server, waiting %v before killing\n", timeout)

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	if onShutdown != nil {
		onShutdown(ctx)
	}

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server Shutdown:", err)
	}

	log.Println("Server exiting")
}
