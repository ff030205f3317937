package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/phrazzld/pawscout-api/internal/domain"
	"github.com/phrazzld/pawscout-api/internal/media"
	"github.com/phrazzld/pawscout-api/internal/platform/logger"
	"github.com/phrazzld/pawscout-api/internal/store"
)

// AnimalService manages the adoption catalogue and the media attached to
// each animal.
type AnimalService struct {
	animals  store.AnimalStore
	host     media.Host
	tx       store.Transactor
	maxFiles int
	logger   *slog.Logger
}

// NewAnimalService creates an AnimalService. maxFiles bounds one media
// upload; zero selects media.DefaultMaxFiles.
func NewAnimalService(
	animals store.AnimalStore,
	host media.Host,
	tx store.Transactor,
	maxFiles int,
	logger *slog.Logger,
) (*AnimalService, error) {
	if animals == nil {
		return nil, fmt.Errorf("animals store cannot be nil")
	}
	if host == nil {
		return nil, fmt.Errorf("media host cannot be nil")
	}
	if tx == nil {
		return nil, fmt.Errorf("transactor cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &AnimalService{
		animals:  animals,
		host:     host,
		tx:       tx,
		maxFiles: maxFiles,
		logger:   logger.With(slog.String("component", "animal_service")),
	}, nil
}

// List returns the animals matching filter.
func (s *AnimalService) List(ctx context.Context, filter store.AnimalFilter) ([]*domain.Animal, error) {
	animals, err := s.animals.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list animals: %w", err)
	}
	return animals, nil
}

// Get returns one animal or store.ErrAnimalNotFound.
func (s *AnimalService) Get(ctx context.Context, id int64) (*domain.Animal, error) {
	animal, err := s.animals.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get animal: %w", err)
	}
	return animal, nil
}

// Create validates and stores a new animal. An empty status means available.
func (s *AnimalService) Create(ctx context.Context, animal *domain.Animal) (*domain.Animal, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if animal.Status == "" {
		animal.Status = domain.AnimalStatusAvailable
	}
	if animal.Media == nil {
		animal.Media = []domain.Media{}
	}
	if err := animal.Validate(); err != nil {
		return nil, err
	}
	now := time.Now().UTC()
	animal.CreatedAt = now
	animal.UpdatedAt = now

	if err := s.animals.Create(ctx, animal); err != nil {
		log.Error("failed to create animal", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to create animal: %w", err)
	}

	log.Info("animal created",
		slog.Int64("animal_id", animal.ID),
		slog.String("status", string(animal.Status)))
	return animal, nil
}

// Update overwrites every attribute of animal id, status included. The media
// list is kept; it changes only through AttachMedia and RemoveMedia. An empty
// status keeps the current one. The row is locked while it is rewritten so a
// concurrent submission or media change is not overwritten with stale values.
func (s *AnimalService) Update(ctx context.Context, id int64, animal *domain.Animal) (*domain.Animal, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	err := s.tx.Transact(ctx, func(ctx context.Context, tx *sql.Tx) error {
		animals := s.animals.WithTx(tx)

		current, err := animals.GetByIDForUpdate(ctx, id)
		if err != nil {
			return err
		}

		animal.ID = id
		animal.Media = current.Media
		animal.CreatedAt = current.CreatedAt
		animal.UpdatedAt = time.Now().UTC()
		if animal.Status == "" {
			animal.Status = current.Status
		}
		if err := animal.Validate(); err != nil {
			return err
		}
		return animals.Update(ctx, animal)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to update animal: %w", err)
	}

	log.Info("animal updated",
		slog.Int64("animal_id", id),
		slog.String("status", string(animal.Status)))
	return animal, nil
}

// UpdateStatus sets the status unconditionally.
func (s *AnimalService) UpdateStatus(ctx context.Context, id int64, status domain.AnimalStatus) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if !status.Valid() {
		return domain.NewValidationError("status", "must be one of: available pending adopted", domain.ErrInvalidAnimalStatus)
	}
	if err := s.animals.UpdateStatus(ctx, id, status); err != nil {
		return fmt.Errorf("failed to update animal status: %w", err)
	}

	log.Info("animal status updated",
		slog.Int64("animal_id", id),
		slog.String("status", string(status)))
	return nil
}

// Delete removes an animal. Its applications and hosted media are left alone.
func (s *AnimalService) Delete(ctx context.Context, id int64) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := s.animals.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete animal: %w", err)
	}

	log.Info("animal deleted", slog.Int64("animal_id", id))
	return nil
}

// AttachMedia uploads files and appends the successful uploads to the
// animal's media list. The per-file results are returned in order even when
// some uploads fail.
func (s *AnimalService) AttachMedia(ctx context.Context, id int64, files []media.File) ([]media.Result, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	exists, err := s.animals.Exists(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to check animal: %w", err)
	}
	if !exists {
		return nil, store.ErrAnimalNotFound
	}

	results, err := media.UploadMany(ctx, s.host, files, s.maxFiles)
	if err != nil {
		return nil, err
	}

	uploaded := media.Uploaded(results)
	if len(uploaded) == 0 {
		return results, nil
	}

	if err := s.animals.AppendMedia(ctx, id, uploaded); err != nil {
		// The animal vanished between the check and the append. Nothing
		// references the new assets, so remove them again.
		for _, m := range uploaded {
			if delErr := s.host.Delete(ctx, m.PublicID, m.ResourceType); delErr != nil {
				log.Warn("failed to clean up orphaned upload",
					slog.String("error", delErr.Error()),
					slog.String("public_id", m.PublicID))
			}
		}
		return nil, fmt.Errorf("failed to attach media: %w", err)
	}

	log.Info("media attached",
		slog.Int64("animal_id", id),
		slog.Int("uploaded", len(uploaded)),
		slog.Int("requested", len(files)))
	return results, nil
}

// RemoveMedia drops the reference to publicID from the animal and then
// deletes the asset from the media host. The reference is removed even when
// the host delete fails; that failure is returned wrapping
// media.ErrDeleteFailed. An asset the host no longer has counts as deleted.
func (s *AnimalService) RemoveMedia(ctx context.Context, id int64, publicID string) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	removed, err := s.animals.RemoveMedia(ctx, id, publicID)
	if err != nil {
		return fmt.Errorf("failed to remove media reference: %w", err)
	}

	err = s.host.Delete(ctx, removed.PublicID, removed.ResourceType)
	switch {
	case err == nil:
	case errors.Is(err, media.ErrMediaNotFound):
		log.Warn("media already absent from host",
			slog.Int64("animal_id", id),
			slog.String("public_id", publicID))
	default:
		log.Error("media reference removed but host delete failed",
			slog.String("error", err.Error()),
			slog.Int64("animal_id", id),
			slog.String("public_id", publicID))
		if !errors.Is(err, media.ErrDeleteFailed) {
			err = fmt.Errorf("%w: %v", media.ErrDeleteFailed, err)
		}
		return err
	}

	log.Info("media removed",
		slog.Int64("animal_id", id),
		slog.String("public_id", publicID))
	return nil
}
