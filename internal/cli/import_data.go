package cli

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/mrlokans/bookcatalog/internal/config"
	"github.com/mrlokans/bookcatalog/internal/loader"
	"github.com/mrlokans/bookcatalog/internal/repository/sqlite"
)

// ImportDataCommand seeds a sqlite catalog from a data directory
type ImportDataCommand struct {
	DataDir      string
	DatabasePath string
	BcryptCost   int
}

// NewImportDataCommand creates a new ImportDataCommand
func NewImportDataCommand() *ImportDataCommand {
	return &ImportDataCommand{}
}

// ParseFlags parses command line flags
func (cmd *ImportDataCommand) ParseFlags(args []string) error {
	fs := flag.NewFlagSet("import-data", flag.ExitOnError)

	fs.StringVar(&cmd.DataDir, "data-dir", config.DefaultDataDir, "Directory with books.json, users.csv and reviews.csv")
	fs.StringVar(&cmd.DatabasePath, "db", config.DefaultDatabasePath, "Path to the sqlite catalog database")
	fs.IntVar(&cmd.BcryptCost, "bcrypt-cost", 12, "bcrypt cost for seeded user passwords")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s import-data [options]\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Seed an empty catalog database from book, user and review files.\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		fs.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  %s import-data -data-dir ./data -db ./bookcatalog.db\n", os.Args[0])
	}

	return fs.Parse(args)
}

// Run executes the import-data command
func (cmd *ImportDataCommand) Run() error {
	absDataDir, err := filepath.Abs(cmd.DataDir)
	if err != nil {
		return fmt.Errorf("failed to get absolute path for data directory: %w", err)
	}
	absDBPath, err := filepath.Abs(cmd.DatabasePath)
	if err != nil {
		return fmt.Errorf("failed to get absolute path for database: %w", err)
	}

	repo, err := sqlite.Open(absDBPath)
	if err != nil {
		return fmt.Errorf("failed to open catalog database: %w", err)
	}
	defer repo.Close()

	if repo.NumberOfBooks() > 0 {
		return fmt.Errorf("catalog at %s already holds %d books", absDBPath, repo.NumberOfBooks())
	}

	if err := loader.Populate(absDataDir, repo, cmd.BcryptCost); err != nil {
		return fmt.Errorf("failed to import data: %w", err)
	}

	fmt.Printf("Imported %d books into %s\n", repo.NumberOfBooks(), absDBPath)
	return nil
}
