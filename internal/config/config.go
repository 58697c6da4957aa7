package config

import (
	"time"

	"github.com/spf13/viper"
)

type Backend string

const (
	BackendMemory Backend = "memory" // In-memory repository, data lives for the process lifetime
	BackendSQLite Backend = "sqlite" // SQLite-backed repository
)

type (
	Config struct {
		HTTP
		Global
		Repository
		Auth
		Browse
	}

	HTTP struct {
		Port int32
		Host string
	}

	Global struct {
		ShutdownTimeoutInSeconds int
	}

	Repository struct {
		Backend      Backend
		DatabasePath string
		DataDir      string // Directory with books.json/users.csv/reviews.csv, empty disables loading
	}

	Auth struct {
		SessionSecret   string
		SessionLifetime time.Duration
		BcryptCost      int
		SecureCookies   bool // Set to false for local dev without HTTPS

		// Rate limiting configuration for the login endpoint
		LoginRatePerMinute int // Token refill rate per key (default: 5)
		LoginBurst         int // Burst size per key (default: 5)
	}

	Browse struct {
		BooksPerPage int
	}
)

func NewConfig() *Config {
	v := viper.New()
	v.AutomaticEnv()
	v.SetDefault("port", 8190)
	v.SetDefault("host", "0.0.0.0")
	v.SetDefault("shutdown_timeout_in_seconds", 2)
	v.SetDefault("repository_backend", string(BackendMemory))
	v.SetDefault("database_path", DefaultDatabasePath)
	v.SetDefault("data_dir", DefaultDataDir)
	v.SetDefault("books_per_page", 12)

	// Auth defaults
	v.SetDefault("auth_session_secret", "")      // Auto-generated if empty
	v.SetDefault("auth_session_lifetime", "24h") // 24 hours
	v.SetDefault("auth_bcrypt_cost", 12)         // bcrypt cost factor
	v.SetDefault("auth_secure_cookies", true)    // HTTPS-only cookies
	v.SetDefault("auth_login_rate_per_minute", 5)
	v.SetDefault("auth_login_burst", 5)

	return &Config{
		HTTP: HTTP{
			Port: v.GetInt32("PORT"),
			Host: v.GetString("HOST"),
		},
		Global: Global{
			ShutdownTimeoutInSeconds: v.GetInt("SHUTDOWN_TIMEOUT_IN_SECONDS"),
		},
		Repository: Repository{
			Backend:      Backend(v.GetString("REPOSITORY_BACKEND")),
			DatabasePath: v.GetString("DATABASE_PATH"),
			DataDir:      v.GetString("DATA_DIR"),
		},
		Auth: Auth{
			SessionSecret:      v.GetString("AUTH_SESSION_SECRET"),
			SessionLifetime:    v.GetDuration("AUTH_SESSION_LIFETIME"),
			BcryptCost:         v.GetInt("AUTH_BCRYPT_COST"),
			SecureCookies:      v.GetBool("AUTH_SECURE_COOKIES"),
			LoginRatePerMinute: v.GetInt("AUTH_LOGIN_RATE_PER_MINUTE"),
			LoginBurst:         v.GetInt("AUTH_LOGIN_BURST"),
		},
		Browse: Browse{
			BooksPerPage: v.GetInt("BOOKS_PER_PAGE"),
		},
	}
}
