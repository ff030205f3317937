package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/phrazzld/pawscout-api/internal/api"
	"github.com/phrazzld/pawscout-api/internal/api/middleware"
	"github.com/phrazzld/pawscout-api/internal/config"
	"github.com/phrazzld/pawscout-api/internal/media"
	"github.com/phrazzld/pawscout-api/internal/platform/cloudinary"
	"github.com/phrazzld/pawscout-api/internal/platform/postgres"
	"github.com/phrazzld/pawscout-api/internal/service"
	"github.com/phrazzld/pawscout-api/internal/service/auth"
	"github.com/phrazzld/pawscout-api/internal/store"
)

// transactionAttempts bounds retries of serialization conflicts.
const transactionAttempts = 3

// dependencies are the adapters the application is assembled from. The
// server builds them on Postgres and Cloudinary; tests substitute in-memory
// versions.
type dependencies struct {
	accounts      store.AccountStore
	animals       store.AnimalStore
	adoptions     store.AdoptionStore
	volunteers    store.VolunteerStore
	contact       store.ContactStore
	subscriptions store.SubscriptionStore
	settings      store.SettingsStore

	host   media.Host
	tx     store.Transactor
	hasher auth.PasswordHasher
}

// application holds the shared dependencies so they can be cleaned up on
// shutdown.
type application struct {
	config *config.Config
	logger *slog.Logger
	db     *sql.DB

	handlers api.Handlers
	authMW   *middleware.AuthMiddleware
}

// newApplication wires the Postgres stores and the Cloudinary host into the
// services and handlers.
func newApplication(cfg *config.Config, logger *slog.Logger, db *sql.DB) (*application, error) {
	host, err := cloudinary.NewFromURL(cfg.Media.CloudinaryURL, cfg.Media.Folder, logger)
	if err != nil {
		return nil, err
	}

	deps := dependencies{
		accounts:      postgres.NewPostgresAccountStore(db, logger),
		animals:       postgres.NewPostgresAnimalStore(db, logger),
		adoptions:     postgres.NewPostgresAdoptionStore(db, logger),
		volunteers:    postgres.NewPostgresVolunteerStore(db, logger),
		contact:       postgres.NewPostgresContactStore(db, logger),
		subscriptions: postgres.NewPostgresSubscriptionStore(db, logger),
		settings:      postgres.NewPostgresSettingsStore(db, logger),
		host:          host,
		tx:            store.DBTransactor{DB: db, Attempts: transactionAttempts},
		hasher:        auth.NewBcryptHasher(cfg.Auth.BCryptCost),
	}

	app, err := assemble(cfg, logger, deps)
	if err != nil {
		return nil, err
	}
	app.db = db
	return app, nil
}

// assemble builds services and handlers from deps.
func assemble(cfg *config.Config, logger *slog.Logger, deps dependencies) (*application, error) {
	app := &application{config: cfg, logger: logger}

	tokens, err := auth.NewJWTService(cfg.Auth)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize JWT service: %w", err)
	}
	logger.Info("JWT authentication service initialized",
		"token_lifetime_minutes", cfg.Auth.TokenLifetimeMinutes)

	credentials, err := auth.NewCredentialService(deps.accounts, deps.hasher, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create credential service: %w", err)
	}
	guard, err := auth.NewGuard(tokens, deps.accounts, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create guard: %w", err)
	}
	app.authMW = middleware.NewAuthMiddleware(guard)

	accounts, err := service.NewAccountService(deps.accounts, deps.tx, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create account service: %w", err)
	}
	dashboard, err := service.NewDashboardService(service.DashboardSources{
		Accounts:      deps.accounts,
		Animals:       deps.animals,
		Applications:  deps.adoptions,
		Volunteers:    deps.volunteers,
		Messages:      deps.contact,
		Subscriptions: deps.subscriptions,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create dashboard service: %w", err)
	}
	animals, err := service.NewAnimalService(deps.animals, deps.host, deps.tx, cfg.Media.MaxUploadFiles, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create animal service: %w", err)
	}
	adoptions, err := service.NewAdoptionService(deps.animals, deps.adoptions, deps.tx, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create adoption service: %w", err)
	}
	volunteers, err := service.NewVolunteerService(deps.volunteers, deps.tx, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create volunteer service: %w", err)
	}
	contact, err := service.NewContactService(deps.contact, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create contact service: %w", err)
	}
	subscriptions, err := service.NewSubscriptionService(deps.subscriptions, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create subscription service: %w", err)
	}
	settings, err := service.NewSettingsService(deps.settings, deps.host, deps.tx, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create settings service: %w", err)
	}
	mediaService, err := service.NewMediaService(deps.host, cfg.Media.MaxUploadFiles, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create media service: %w", err)
	}

	maxUpload := cfg.Media.MaxUploadBytes
	app.handlers = api.Handlers{
		Auth:      api.NewAuthHandler(credentials, tokens, logger),
		Animals:   api.NewAnimalHandler(animals, maxUpload, logger),
		Adoptions: api.NewAdoptionHandler(adoptions, logger),
		Volunteer: api.NewVolunteerHandler(volunteers, logger),
		Inbox:     api.NewInboxHandler(contact, subscriptions, logger),
		Settings:  api.NewSettingsHandler(settings, maxUpload, logger),
		Media:     api.NewMediaHandler(mediaService, maxUpload, logger),
		Admin:     api.NewAdminHandler(accounts, dashboard, logger),
	}

	logger.Info("Application initialized successfully")
	return app, nil
}

// Run serves HTTP until ctx is cancelled, then shuts down.
func (app *application) Run(ctx context.Context) error {
	if err := app.startHTTPServer(ctx, app.setupRouter()); err != nil {
		return fmt.Errorf("server error: %w", err)
	}
	return nil
}

// cleanup releases the application's resources.
func (app *application) cleanup() {
	if app.db != nil {
		if err := app.db.Close(); err != nil {
			app.logger.Error("Error closing database connection", "error", err)
		}
	}
	app.logger.Info("Application shutdown completed")
}
