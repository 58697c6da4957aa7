package cli

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"syscall"

	"golang.org/x/term"

	"github.com/mrlokans/bookcatalog/internal/auth"
	"github.com/mrlokans/bookcatalog/internal/config"
	"github.com/mrlokans/bookcatalog/internal/repository/sqlite"
)

// CreateUserCommand registers a new user account in a sqlite catalog
type CreateUserCommand struct {
	DatabasePath string
	UserName     string
	BcryptCost   int
}

// NewCreateUserCommand creates a new CreateUserCommand
func NewCreateUserCommand() *CreateUserCommand {
	return &CreateUserCommand{}
}

// ParseFlags parses command line flags
func (cmd *CreateUserCommand) ParseFlags(args []string) error {
	fs := flag.NewFlagSet("create-user", flag.ExitOnError)

	fs.StringVar(&cmd.DatabasePath, "db", config.DefaultDatabasePath, "Path to the sqlite catalog database")
	fs.StringVar(&cmd.UserName, "username", "", "Name of the account to create")
	fs.IntVar(&cmd.BcryptCost, "bcrypt-cost", 12, "bcrypt cost for the password hash")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s create-user [options]\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Create a user account in the catalog database.\n")
		fmt.Fprintf(os.Stderr, "The password is read from the terminal without echo.\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		fs.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  %s create-user -username martin\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s create-user -username martin -db /var/lib/bookcatalog.db\n", os.Args[0])
	}

	if err := fs.Parse(args); err != nil {
		return err
	}

	if cmd.UserName == "" {
		fs.Usage()
		return fmt.Errorf("username is required")
	}

	return nil
}

// Run executes the create-user command
func (cmd *CreateUserCommand) Run() error {
	absDBPath, err := filepath.Abs(cmd.DatabasePath)
	if err != nil {
		return fmt.Errorf("failed to get absolute path for database: %w", err)
	}

	password, err := readPassword("Password: ")
	if err != nil {
		return err
	}
	confirmation, err := readPassword("Repeat password: ")
	if err != nil {
		return err
	}
	if password != confirmation {
		return fmt.Errorf("passwords do not match")
	}

	repo, err := sqlite.Open(absDBPath)
	if err != nil {
		return fmt.Errorf("failed to open catalog database: %w", err)
	}
	defer repo.Close()

	service := auth.NewService(repo, cmd.BcryptCost)
	user, err := service.Register(cmd.UserName, password)
	if err != nil {
		return fmt.Errorf("failed to create user: %w", err)
	}

	fmt.Printf("Created user %q in %s\n", user.UserName(), absDBPath)
	return nil
}

func readPassword(prompt string) (string, error) {
	fmt.Print(prompt)
	bytePassword, err := term.ReadPassword(int(syscall.Stdin))
	fmt.Println()
	if err != nil {
		return "", fmt.Errorf("failed to read password: %w", err)
	}
	return string(bytePassword), nil
}
