// Command bootstrap-admin grants administrator rights to an account, creating
// the account first when the email is not registered. The API only lets an
// administrator promote others, so the first administrator is made here.
package main

import (
	"context"
	"database/sql"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib" // pgx driver

	"github.com/phrazzld/pawscout-api/internal/config"
	"github.com/phrazzld/pawscout-api/internal/domain"
	"github.com/phrazzld/pawscout-api/internal/platform/logger"
	"github.com/phrazzld/pawscout-api/internal/platform/postgres"
	"github.com/phrazzld/pawscout-api/internal/service"
	"github.com/phrazzld/pawscout-api/internal/service/auth"
	"github.com/phrazzld/pawscout-api/internal/store"
)

type options struct {
	email    string
	password string
	name     string
	lastName string
}

func main() {
	var opts options
	flag.StringVar(&opts.email, "email", "", "email of the account to promote (required)")
	flag.StringVar(&opts.password, "password", "", "password, used only when the account is created")
	flag.StringVar(&opts.name, "name", "Admin", "first name, used only when the account is created")
	flag.StringVar(&opts.lastName, "lastname", "PawScout", "last name, used only when the account is created")
	flag.Parse()

	if err := run(opts); err != nil {
		slog.Error("bootstrap-admin failed", "error", err)
		os.Exit(1)
	}
}

func run(opts options) error {
	if opts.email == "" {
		return errors.New("-email is required")
	}

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	log, err := logger.Setup(cfg.Server)
	if err != nil {
		return fmt.Errorf("failed to set up logger: %w", err)
	}

	db, err := sql.Open("pgx", cfg.Database.URL)
	if err != nil {
		return fmt.Errorf("failed to open database connection: %w", err)
	}
	defer func() { _ = db.Close() }()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	accounts := postgres.NewPostgresAccountStore(db, log)
	tx := store.DBTransactor{DB: db, Attempts: 3}
	account, created, err := bootstrap(ctx, accounts, tx, auth.NewBcryptHasher(cfg.Auth.BCryptCost), opts, log)
	if err != nil {
		return err
	}

	log.Info("administrator ready",
		"account_id", account.ID,
		"created", created)
	return nil
}

// bootstrap makes the account with opts.email an administrator. It reports
// whether the account had to be created.
func bootstrap(
	ctx context.Context,
	accounts store.AccountStore,
	tx store.Transactor,
	hasher auth.PasswordHasher,
	opts options,
	log *slog.Logger,
) (*domain.Account, bool, error) {
	credentials, err := auth.NewCredentialService(accounts, hasher, log)
	if err != nil {
		return nil, false, err
	}
	accountService, err := service.NewAccountService(accounts, tx, log)
	if err != nil {
		return nil, false, err
	}

	created := false
	account, err := accounts.GetByEmail(ctx, domain.NormalizeEmail(opts.email))
	switch {
	case errors.Is(err, store.ErrAccountNotFound):
		if opts.password == "" {
			return nil, false, errors.New("-password is required to create a new account")
		}
		account, err = credentials.Register(ctx, auth.RegisterInput{
			Email:    opts.email,
			Name:     opts.name,
			LastName: opts.lastName,
			Password: opts.password,
		})
		if err != nil {
			return nil, false, fmt.Errorf("failed to create account: %w", err)
		}
		created = true
	case err != nil:
		return nil, false, fmt.Errorf("failed to look up account: %w", err)
	}

	if account.IsAdmin {
		return account, created, nil
	}
	promoted, err := accountService.Promote(ctx, account.ID)
	if err != nil && !errors.Is(err, service.ErrAlreadyAdmin) {
		return nil, created, fmt.Errorf("failed to promote account: %w", err)
	}
	if promoted != nil {
		account = promoted
	}
	return account, created, nil
}
