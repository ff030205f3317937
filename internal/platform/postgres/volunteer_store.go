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

const volunteerColumns = `id, name, last_name, email, phone, availability, available_days, areas_of_interest,
	why_volunteer, special_skills, emergency_contact_name, emergency_contact_phone, privacy_agreement,
	status, created_at, updated_at`

// PostgresVolunteerStore implements store.VolunteerStore.
type PostgresVolunteerStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresVolunteerStore creates a VolunteerStore over db.
func NewPostgresVolunteerStore(db store.DBTX, logger *slog.Logger) *PostgresVolunteerStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &PostgresVolunteerStore{
		db:     db,
		logger: logger.With(slog.String("component", "volunteer_store")),
	}
}

var _ store.VolunteerStore = (*PostgresVolunteerStore)(nil)

// WithTx implements store.VolunteerStore.
func (s *PostgresVolunteerStore) WithTx(tx *sql.Tx) store.VolunteerStore {
	return &PostgresVolunteerStore{db: tx, logger: s.logger}
}

func scanVolunteer(row rowScanner) (*domain.Volunteer, error) {
	var (
		v                             domain.Volunteer
		status                        string
		availability, days, interests []byte
	)
	if err := row.Scan(
		&v.ID,
		&v.Name,
		&v.LastName,
		&v.Email,
		&v.Phone,
		&availability,
		&days,
		&interests,
		&v.WhyVolunteer,
		&v.SpecialSkills,
		&v.EmergencyContactName,
		&v.EmergencyContactPhone,
		&v.PrivacyAgreement,
		&status,
		&v.CreatedAt,
		&v.UpdatedAt,
	); err != nil {
		return nil, err
	}
	v.Status = domain.VolunteerStatus(status)

	var err error
	if v.Availability, err = stringList(availability); err != nil {
		return nil, err
	}
	if v.AvailableDays, err = stringList(days); err != nil {
		return nil, err
	}
	if v.AreasOfInterest, err = stringList(interests); err != nil {
		return nil, err
	}
	return &v, nil
}

// volunteerLists encodes the three JSONB list columns.
func volunteerLists(v *domain.Volunteer) (availability, days, interests []byte, err error) {
	if availability, err = jsonColumn(nonNil(v.Availability)); err != nil {
		return nil, nil, nil, err
	}
	if days, err = jsonColumn(nonNil(v.AvailableDays)); err != nil {
		return nil, nil, nil, err
	}
	if interests, err = jsonColumn(nonNil(v.AreasOfInterest)); err != nil {
		return nil, nil, nil, err
	}
	return availability, days, interests, nil
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}

// Create implements store.VolunteerStore.
func (s *PostgresVolunteerStore) Create(ctx context.Context, v *domain.Volunteer) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	availability, days, interests, err := volunteerLists(v)
	if err != nil {
		return err
	}

	query := `
		INSERT INTO volunteers (name, last_name, email, phone, availability, available_days,
			areas_of_interest, why_volunteer, special_skills, emergency_contact_name,
			emergency_contact_phone, privacy_agreement, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
		RETURNING id
	`
	err = s.db.QueryRowContext(ctx, query,
		v.Name,
		v.LastName,
		v.Email,
		v.Phone,
		availability,
		days,
		interests,
		v.WhyVolunteer,
		v.SpecialSkills,
		v.EmergencyContactName,
		v.EmergencyContactPhone,
		v.PrivacyAgreement,
		string(v.Status),
		v.CreatedAt,
		v.UpdatedAt,
	).Scan(&v.ID)
	if err != nil {
		mapped := MapError(err)
		if store.IsDuplicateError(mapped) {
			log.Debug("volunteer email or phone already registered")
			return mapped
		}
		log.Error("failed to create volunteer", slog.String("error", err.Error()))
		return mapped
	}

	log.Info("volunteer registered", slog.Int64("volunteer_id", v.ID))
	return nil
}

// GetByID implements store.VolunteerStore.
func (s *PostgresVolunteerStore) GetByID(ctx context.Context, id int64) (*domain.Volunteer, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	v, err := scanVolunteer(s.db.QueryRowContext(ctx,
		`SELECT `+volunteerColumns+` FROM volunteers WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.ErrVolunteerNotFound
		}
		log.Error("failed to get volunteer",
			slog.String("error", err.Error()),
			slog.Int64("volunteer_id", id))
		return nil, MapError(err)
	}
	return v, nil
}

// List implements store.VolunteerStore.
func (s *PostgresVolunteerStore) List(ctx context.Context, status domain.VolunteerStatus) ([]*domain.Volunteer, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `SELECT ` + volunteerColumns + ` FROM volunteers`
	var args []any
	if status != "" {
		query += ` WHERE status = $1`
		args = append(args, string(status))
	}
	query += ` ORDER BY created_at DESC, id DESC`

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Error("failed to list volunteers", slog.String("error", err.Error()))
		return nil, MapError(err)
	}
	defer closeRows(rows, log)

	volunteers := []*domain.Volunteer{}
	for rows.Next() {
		v, err := scanVolunteer(rows)
		if err != nil {
			log.Error("failed to scan volunteer row", slog.String("error", err.Error()))
			return nil, err
		}
		volunteers = append(volunteers, v)
	}
	if err := rows.Err(); err != nil {
		return nil, MapError(err)
	}
	return volunteers, nil
}

// Update implements store.VolunteerStore.
func (s *PostgresVolunteerStore) Update(ctx context.Context, v *domain.Volunteer) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	availability, days, interests, err := volunteerLists(v)
	if err != nil {
		return err
	}

	query := `
		UPDATE volunteers
		SET name = $1, last_name = $2, email = $3, phone = $4, availability = $5,
			available_days = $6, areas_of_interest = $7, why_volunteer = $8, special_skills = $9,
			emergency_contact_name = $10, emergency_contact_phone = $11, privacy_agreement = $12,
			status = $13, updated_at = $14
		WHERE id = $15
	`
	result, err := s.db.ExecContext(ctx, query,
		v.Name,
		v.LastName,
		v.Email,
		v.Phone,
		availability,
		days,
		interests,
		v.WhyVolunteer,
		v.SpecialSkills,
		v.EmergencyContactName,
		v.EmergencyContactPhone,
		v.PrivacyAgreement,
		string(v.Status),
		v.UpdatedAt,
		v.ID,
	)
	if err != nil {
		mapped := MapError(err)
		if !store.IsDuplicateError(mapped) {
			log.Error("failed to update volunteer",
				slog.String("error", err.Error()),
				slog.Int64("volunteer_id", v.ID))
		}
		return mapped
	}
	if err := CheckRowsAffected(result, store.ErrVolunteerNotFound); err != nil {
		return err
	}

	log.Info("volunteer updated", slog.Int64("volunteer_id", v.ID))
	return nil
}

// UpdateStatus implements store.VolunteerStore.
func (s *PostgresVolunteerStore) UpdateStatus(ctx context.Context, id int64, status domain.VolunteerStatus) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if !status.Valid() {
		return domain.ErrInvalidVolunteerStatus
	}

	result, err := s.db.ExecContext(ctx,
		`UPDATE volunteers SET status = $1, updated_at = NOW() WHERE id = $2`,
		string(status), id)
	if err != nil {
		log.Error("failed to update volunteer status",
			slog.String("error", err.Error()),
			slog.Int64("volunteer_id", id))
		return MapError(err)
	}
	if err := CheckRowsAffected(result, store.ErrVolunteerNotFound); err != nil {
		return err
	}

	log.Info("volunteer status updated",
		slog.Int64("volunteer_id", id),
		slog.String("status", string(status)))
	return nil
}

// Delete implements store.VolunteerStore.
func (s *PostgresVolunteerStore) Delete(ctx context.Context, id int64) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	result, err := s.db.ExecContext(ctx, `DELETE FROM volunteers WHERE id = $1`, id)
	if err != nil {
		log.Error("failed to delete volunteer",
			slog.String("error", err.Error()),
			slog.Int64("volunteer_id", id))
		return MapError(err)
	}
	if err := CheckRowsAffected(result, store.ErrVolunteerNotFound); err != nil {
		return err
	}

	log.Info("volunteer deleted", slog.Int64("volunteer_id", id))
	return nil
}

// Count implements store.VolunteerStore.
func (s *PostgresVolunteerStore) Count(ctx context.Context) (int64, error) {
	return countRows(ctx, s.db, "volunteers")
}
