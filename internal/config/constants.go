package config

// Default paths
const (
	// DefaultDatabasePath is the default path for the catalog database
	DefaultDatabasePath = "./bookcatalog.db"

	// DefaultDataDir is the default directory with catalog seed data
	DefaultDataDir = "./data"
)
