package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/phrazzld/pawscout-api/internal/domain"
	"github.com/phrazzld/pawscout-api/internal/platform/logger"
	"github.com/phrazzld/pawscout-api/internal/store"
)

// AdoptionService accepts adoption applications and lets administrators
// review them.
type AdoptionService struct {
	animals      store.AnimalStore
	applications store.AdoptionStore
	tx           store.Transactor
	logger       *slog.Logger
}

// NewAdoptionService creates an AdoptionService.
func NewAdoptionService(
	animals store.AnimalStore,
	applications store.AdoptionStore,
	tx store.Transactor,
	logger *slog.Logger,
) (*AdoptionService, error) {
	if animals == nil {
		return nil, fmt.Errorf("animals store cannot be nil")
	}
	if applications == nil {
		return nil, fmt.Errorf("applications store cannot be nil")
	}
	if tx == nil {
		return nil, fmt.Errorf("transactor cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &AdoptionService{
		animals:      animals,
		applications: applications,
		tx:           tx,
		logger:       logger.With(slog.String("component", "adoption_service")),
	}, nil
}

// Submit records an application for app.AnimalID and moves the animal to
// pending in the same transaction. It returns store.ErrAnimalNotFound when
// the animal does not exist and ErrAnimalUnavailable when it was adopted or
// when concurrent submissions kept conflicting.
func (s *AdoptionService) Submit(ctx context.Context, app *domain.AdoptionApplication) (*domain.AdoptionApplication, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	app.Email = domain.NormalizeEmail(app.Email)
	if err := app.Validate(); err != nil {
		return nil, err
	}
	app.CreatedAt = time.Now().UTC()

	err := s.tx.Transact(ctx, func(ctx context.Context, tx *sql.Tx) error {
		animals := s.animals.WithTx(tx)

		marked, err := animals.MarkPending(ctx, app.AnimalID)
		if err != nil {
			return err
		}
		if !marked {
			exists, err := animals.Exists(ctx, app.AnimalID)
			if err != nil {
				return err
			}
			if !exists {
				return store.ErrAnimalNotFound
			}
			return ErrAnimalUnavailable
		}

		return s.applications.WithTx(tx).Create(ctx, app)
	})
	if err != nil {
		switch {
		case errors.Is(err, store.ErrConflict):
			log.Warn("adoption submission kept conflicting",
				slog.Int64("animal_id", app.AnimalID))
			return nil, ErrAnimalUnavailable
		case errors.Is(err, ErrAnimalUnavailable), errors.Is(err, store.ErrNotFound):
			log.Debug("adoption submission refused",
				slog.Int64("animal_id", app.AnimalID),
				slog.String("reason", err.Error()))
			return nil, err
		default:
			log.Error("failed to submit adoption application",
				slog.String("error", err.Error()),
				slog.Int64("animal_id", app.AnimalID))
			return nil, fmt.Errorf("failed to submit adoption application: %w", err)
		}
	}

	log.Info("adoption application submitted",
		slog.Int64("application_id", app.ID),
		slog.Int64("animal_id", app.AnimalID))
	return app, nil
}

// Get returns one application or store.ErrApplicationNotFound.
func (s *AdoptionService) Get(ctx context.Context, id int64) (*domain.AdoptionApplication, error) {
	app, err := s.applications.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get adoption application: %w", err)
	}
	return app, nil
}

// List returns the applications, optionally only those for animalID when it
// is positive.
func (s *AdoptionService) List(ctx context.Context, animalID int64) ([]*domain.AdoptionApplication, error) {
	apps, err := s.applications.List(ctx, animalID)
	if err != nil {
		return nil, fmt.Errorf("failed to list adoption applications: %w", err)
	}
	return apps, nil
}

// Delete removes an application.
func (s *AdoptionService) Delete(ctx context.Context, id int64) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := s.applications.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete adoption application: %w", err)
	}

	log.Info("adoption application deleted", slog.Int64("application_id", id))
	return nil
}
