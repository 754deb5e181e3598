// Provision the admin account the site is managed with.
// Reads DATABASE_URI the same way the server does and refuses to
// overwrite an existing user.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/pflag"

	"github.com/phamtheduy/portfolio/internal/apperrors"
	"github.com/phamtheduy/portfolio/internal/db"
	"github.com/phamtheduy/portfolio/internal/repository/postgres"
	"github.com/phamtheduy/portfolio/internal/service/auth"
	"github.com/phamtheduy/portfolio/internal/service/user"
)

func main() {
	if err := run(context.Background(), os.Getenv, os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "createadmin: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, getenv func(string) string, args []string) error {
	fs := pflag.NewFlagSet("createadmin", pflag.ContinueOnError)
	dsn := fs.StringP("database", "d", getenv("DATABASE_URI"), "Database connection string")
	username := fs.StringP("username", "u", "admin", "Username of the account to create")
	password := fs.StringP("password", "p", "", "Password of the account to create")
	cost := fs.Int("bcrypt-cost", 0, "Bcrypt cost for password hashing, zero means the library default")
	if err := fs.Parse(args); err != nil {
		return err
	}

	if *dsn == "" {
		return errors.New("database dsn is required, set DATABASE_URI or pass --database")
	}
	if *password == "" {
		return errors.New("password is required, pass --password")
	}
	if len(*password) < 6 {
		return errors.New("password must be at least 6 characters")
	}

	pool, err := db.ConnectAndMigrate(ctx, *dsn)
	if err != nil {
		return fmt.Errorf("can't connect to db. Err: %w", err)
	}
	defer pool.Close()

	storage := postgres.NewStorage(pool)
	users := user.NewService(auth.BcryptHasher{Cost: *cost}, storage.User())

	created, err := users.CreateUser(ctx, *username, *password)
	switch {
	case err == nil:
		fmt.Printf("user %q created with id %d\n", created.Username, created.ID)
		return nil
	case errors.Is(err, apperrors.ErrUserAlreadyExists):
		return fmt.Errorf("user %q already exists", *username)
	default:
		return err
	}
}
