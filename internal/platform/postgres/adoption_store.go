package postgres

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"

	"github.com/phrazzld/pawscout-api/internal/domain"
	"github.com/phrazzld/pawscout-api/internal/platform/logger"
	"github.com/phrazzld/pawscout-api/internal/store"
)

const applicationColumns = `id, animal_id, applicant_name, applicant_last_name, email, phone, address,
	city, state, zip_code, reason_for_adoption, experience_with_pets, home_type, who_lives_in_house,
	agree_to_terms, created_at`

// PostgresAdoptionStore implements store.AdoptionStore.
type PostgresAdoptionStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresAdoptionStore creates an AdoptionStore over db.
func NewPostgresAdoptionStore(db store.DBTX, logger *slog.Logger) *PostgresAdoptionStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &PostgresAdoptionStore{
		db:     db,
		logger: logger.With(slog.String("component", "adoption_store")),
	}
}

var _ store.AdoptionStore = (*PostgresAdoptionStore)(nil)

// WithTx implements store.AdoptionStore.
func (s *PostgresAdoptionStore) WithTx(tx *sql.Tx) store.AdoptionStore {
	return &PostgresAdoptionStore{db: tx, logger: s.logger}
}

func scanApplication(row rowScanner) (*domain.AdoptionApplication, error) {
	var a domain.AdoptionApplication
	if err := row.Scan(
		&a.ID,
		&a.AnimalID,
		&a.ApplicantName,
		&a.ApplicantLastName,
		&a.Email,
		&a.Phone,
		&a.Address,
		&a.City,
		&a.State,
		&a.ZipCode,
		&a.ReasonForAdoption,
		&a.ExperienceWithPets,
		&a.HomeType,
		&a.WhoLivesInHouse,
		&a.AgreeToTerms,
		&a.CreatedAt,
	); err != nil {
		return nil, err
	}
	return &a, nil
}

// Create implements store.AdoptionStore.
func (s *PostgresAdoptionStore) Create(ctx context.Context, app *domain.AdoptionApplication) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		INSERT INTO adoption_applications (animal_id, applicant_name, applicant_last_name, email, phone,
			address, city, state, zip_code, reason_for_adoption, experience_with_pets, home_type,
			who_lives_in_house, agree_to_terms, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
		RETURNING id
	`
	err := s.db.QueryRowContext(ctx, query,
		app.AnimalID,
		app.ApplicantName,
		app.ApplicantLastName,
		app.Email,
		app.Phone,
		app.Address,
		app.City,
		app.State,
		app.ZipCode,
		app.ReasonForAdoption,
		app.ExperienceWithPets,
		app.HomeType,
		app.WhoLivesInHouse,
		app.AgreeToTerms,
		app.CreatedAt,
	).Scan(&app.ID)
	if err != nil {
		log.Error("failed to create adoption application",
			slog.String("error", err.Error()),
			slog.Int64("animal_id", app.AnimalID))
		return MapError(err)
	}

	log.Info("adoption application created",
		slog.Int64("application_id", app.ID),
		slog.Int64("animal_id", app.AnimalID))
	return nil
}

// GetByID implements store.AdoptionStore.
func (s *PostgresAdoptionStore) GetByID(ctx context.Context, id int64) (*domain.AdoptionApplication, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	a, err := scanApplication(s.db.QueryRowContext(ctx,
		`SELECT `+applicationColumns+` FROM adoption_applications WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.ErrApplicationNotFound
		}
		log.Error("failed to get adoption application",
			slog.String("error", err.Error()),
			slog.Int64("application_id", id))
		return nil, MapError(err)
	}
	return a, nil
}

// List implements store.AdoptionStore.
func (s *PostgresAdoptionStore) List(ctx context.Context, animalID int64) ([]*domain.AdoptionApplication, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `SELECT ` + applicationColumns + ` FROM adoption_applications`
	var args []any
	if animalID > 0 {
		query += ` WHERE animal_id = $1`
		args = append(args, animalID)
	}
	query += ` ORDER BY created_at DESC, id DESC`

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Error("failed to list adoption applications", slog.String("error", err.Error()))
		return nil, MapError(err)
	}
	defer closeRows(rows, log)

	apps := []*domain.AdoptionApplication{}
	for rows.Next() {
		a, err := scanApplication(rows)
		if err != nil {
			log.Error("failed to scan adoption application row", slog.String("error", err.Error()))
			return nil, err
		}
		apps = append(apps, a)
	}
	if err := rows.Err(); err != nil {
		return nil, MapError(err)
	}
	return apps, nil
}

// Delete implements store.AdoptionStore.
func (s *PostgresAdoptionStore) Delete(ctx context.Context, id int64) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	result, err := s.db.ExecContext(ctx, `DELETE FROM adoption_applications WHERE id = $1`, id)
	if err != nil {
		log.Error("failed to delete adoption application",
			slog.String("error", err.Error()),
			slog.Int64("application_id", id))
		return MapError(err)
	}
	if err := CheckRowsAffected(result, store.ErrApplicationNotFound); err != nil {
		return err
	}

	log.Info("adoption application deleted", slog.Int64("application_id", id))
	return nil
}

// Count implements store.AdoptionStore.
func (s *PostgresAdoptionStore) Count(ctx context.Context) (int64, error) {
	return countRows(ctx, s.db, "adoption_applications")
}
