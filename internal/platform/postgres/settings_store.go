package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/phrazzld/pawscout-api/internal/domain"
	"github.com/phrazzld/pawscout-api/internal/platform/logger"
	"github.com/phrazzld/pawscout-api/internal/store"
)

// PostgresSettingsStore implements store.SettingsStore over the single-row
// shelter_settings table.
type PostgresSettingsStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresSettingsStore creates a SettingsStore over db.
func NewPostgresSettingsStore(db store.DBTX, logger *slog.Logger) *PostgresSettingsStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &PostgresSettingsStore{
		db:     db,
		logger: logger.With(slog.String("component", "settings_store")),
	}
}

var _ store.SettingsStore = (*PostgresSettingsStore)(nil)

// WithTx implements store.SettingsStore.
func (s *PostgresSettingsStore) WithTx(tx *sql.Tx) store.SettingsStore {
	return &PostgresSettingsStore{db: tx, logger: s.logger}
}

const selectSettings = `
		SELECT shelter_name, shelter_email, shelter_phone, shelter_address, city, state, zip_code,
			logo, updated_at
		FROM shelter_settings
		WHERE id = 1`

// Get implements store.SettingsStore.
func (s *PostgresSettingsStore) Get(ctx context.Context) (*domain.ShelterSettings, error) {
	return s.get(ctx, selectSettings)
}

// GetForUpdate implements store.SettingsStore. The singleton row is created
// with defaults first so there is always a row to lock.
func (s *PostgresSettingsStore) GetForUpdate(ctx context.Context) (*domain.ShelterSettings, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO shelter_settings (id, shelter_name) VALUES (1, $1) ON CONFLICT (id) DO NOTHING`,
		domain.DefaultShelterName)
	if err != nil {
		log.Error("failed to seed shelter settings", slog.String("error", err.Error()))
		return nil, MapError(err)
	}
	return s.get(ctx, selectSettings+` FOR UPDATE`)
}

func (s *PostgresSettingsStore) get(ctx context.Context, query string) (*domain.ShelterSettings, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	var (
		settings domain.ShelterSettings
		logo     []byte
	)
	err := s.db.QueryRowContext(ctx, query).Scan(
		&settings.ShelterName,
		&settings.ShelterEmail,
		&settings.ShelterPhone,
		&settings.ShelterAddress,
		&settings.City,
		&settings.State,
		&settings.ZipCode,
		&logo,
		&settings.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Debug("no shelter settings stored, using defaults")
			return domain.DefaultShelterSettings(), nil
		}
		log.Error("failed to get shelter settings", slog.String("error", err.Error()))
		return nil, MapError(err)
	}

	if len(logo) > 0 && string(logo) != "null" {
		var m domain.Media
		if err := json.Unmarshal(logo, &m); err != nil {
			return nil, fmt.Errorf("failed to decode shelter logo: %w", err)
		}
		settings.Logo = &m
	}
	return &settings, nil
}

// Save implements store.SettingsStore.
func (s *PostgresSettingsStore) Save(ctx context.Context, settings *domain.ShelterSettings) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	var logo []byte
	if settings.Logo != nil {
		var err error
		if logo, err = jsonColumn(settings.Logo); err != nil {
			return err
		}
	}

	query := `
		INSERT INTO shelter_settings (id, shelter_name, shelter_email, shelter_phone, shelter_address,
			city, state, zip_code, logo, updated_at)
		VALUES (1, $1, $2, $3, $4, $5, $6, $7, $8, NOW())
		ON CONFLICT (id) DO UPDATE SET
			shelter_name = EXCLUDED.shelter_name,
			shelter_email = EXCLUDED.shelter_email,
			shelter_phone = EXCLUDED.shelter_phone,
			shelter_address = EXCLUDED.shelter_address,
			city = EXCLUDED.city,
			state = EXCLUDED.state,
			zip_code = EXCLUDED.zip_code,
			logo = EXCLUDED.logo,
			updated_at = EXCLUDED.updated_at
		RETURNING updated_at
	`
	err := s.db.QueryRowContext(ctx, query,
		settings.ShelterName,
		settings.ShelterEmail,
		settings.ShelterPhone,
		settings.ShelterAddress,
		settings.City,
		settings.State,
		settings.ZipCode,
		logo,
	).Scan(&settings.UpdatedAt)
	if err != nil {
		log.Error("failed to save shelter settings", slog.String("error", err.Error()))
		return MapError(err)
	}

	log.Info("shelter settings saved")
	return nil
}
