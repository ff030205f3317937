package service

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	"github.com/phrazzld/pawscout-api/internal/domain"
	"github.com/phrazzld/pawscout-api/internal/media"
	"github.com/phrazzld/pawscout-api/internal/platform/logger"
	"github.com/phrazzld/pawscout-api/internal/store"
)

// SettingsService reads and edits the shelter profile.
type SettingsService struct {
	settings store.SettingsStore
	host     media.Host
	tx       store.Transactor
	logger   *slog.Logger
}

// NewSettingsService creates a SettingsService.
func NewSettingsService(
	settings store.SettingsStore,
	host media.Host,
	tx store.Transactor,
	logger *slog.Logger,
) (*SettingsService, error) {
	if settings == nil {
		return nil, fmt.Errorf("settings store cannot be nil")
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
	return &SettingsService{
		settings: settings,
		host:     host,
		tx:       tx,
		logger:   logger.With(slog.String("component", "settings_service")),
	}, nil
}

// Get returns the current settings, or the defaults if none were saved.
func (s *SettingsService) Get(ctx context.Context) (*domain.ShelterSettings, error) {
	settings, err := s.settings.Get(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get settings: %w", err)
	}
	return settings, nil
}

// Update applies the provided fields of patch. Nothing is written when the
// patch changes nothing.
func (s *SettingsService) Update(ctx context.Context, patch domain.ShelterSettingsPatch) (*domain.ShelterSettings, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if patch.ShelterEmail != nil {
		normalized := domain.NormalizeEmail(*patch.ShelterEmail)
		patch.ShelterEmail = &normalized
	}

	var result *domain.ShelterSettings
	err := s.tx.Transact(ctx, func(ctx context.Context, tx *sql.Tx) error {
		settings := s.settings.WithTx(tx)

		current, err := settings.GetForUpdate(ctx)
		if err != nil {
			return err
		}
		if !patch.Apply(current) {
			result = current
			return nil
		}
		if err := current.Validate(); err != nil {
			return err
		}
		current.UpdatedAt = time.Now().UTC()
		if err := settings.Save(ctx, current); err != nil {
			return err
		}
		result = current
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to update settings: %w", err)
	}

	log.Info("settings updated")
	return result, nil
}

// ReplaceLogo uploads file as the new shelter logo. The previous logo is
// deleted from the media host afterwards; a failure there is only logged.
func (s *SettingsService) ReplaceLogo(ctx context.Context, file media.File) (*domain.ShelterSettings, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	kind, err := file.Kind()
	if err != nil {
		return nil, err
	}
	if kind != domain.MediaKindImage {
		return nil, domain.NewValidationError("logo", "must be an image", media.ErrUnsupportedType)
	}

	logo, err := s.host.Upload(ctx, file)
	if err != nil {
		return nil, fmt.Errorf("failed to upload logo: %w", err)
	}

	var (
		result   *domain.ShelterSettings
		previous *domain.Media
	)
	err = s.tx.Transact(ctx, func(ctx context.Context, tx *sql.Tx) error {
		settings := s.settings.WithTx(tx)

		current, err := settings.GetForUpdate(ctx)
		if err != nil {
			return err
		}
		previous = current.Logo
		current.Logo = &logo
		current.UpdatedAt = time.Now().UTC()
		if err := settings.Save(ctx, current); err != nil {
			return err
		}
		result = current
		return nil
	})
	if err != nil {
		if delErr := s.host.Delete(ctx, logo.PublicID, logo.ResourceType); delErr != nil {
			log.Warn("failed to clean up unsaved logo",
				slog.String("error", delErr.Error()),
				slog.String("public_id", logo.PublicID))
		}
		return nil, fmt.Errorf("failed to save logo: %w", err)
	}

	if previous != nil && previous.PublicID != logo.PublicID {
		if err := s.host.Delete(ctx, previous.PublicID, previous.ResourceType); err != nil {
			log.Warn("failed to delete previous logo",
				slog.String("error", err.Error()),
				slog.String("public_id", previous.PublicID))
		}
	}

	log.Info("logo replaced", slog.String("public_id", logo.PublicID))
	return result, nil
}
