package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/phrazzld/pawscout-api/internal/domain"
	"github.com/phrazzld/pawscout-api/internal/platform/logger"
	"github.com/phrazzld/pawscout-api/internal/store"
)

const animalColumns = `id, name, type, age, gender, size, breed, short_description, long_description,
	good_with_kids, good_with_dogs, home_trained, status, media, created_at, updated_at`

// PostgresAnimalStore implements store.AnimalStore.
type PostgresAnimalStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresAnimalStore creates an AnimalStore over db.
func NewPostgresAnimalStore(db store.DBTX, logger *slog.Logger) *PostgresAnimalStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &PostgresAnimalStore{
		db:     db,
		logger: logger.With(slog.String("component", "animal_store")),
	}
}

var _ store.AnimalStore = (*PostgresAnimalStore)(nil)

// WithTx implements store.AnimalStore.
func (s *PostgresAnimalStore) WithTx(tx *sql.Tx) store.AnimalStore {
	return &PostgresAnimalStore{db: tx, logger: s.logger}
}

func scanAnimal(row rowScanner) (*domain.Animal, error) {
	var (
		a      domain.Animal
		status string
		media  []byte
	)
	if err := row.Scan(
		&a.ID,
		&a.Name,
		&a.Type,
		&a.Age,
		&a.Gender,
		&a.Size,
		&a.Breed,
		&a.ShortDescription,
		&a.LongDescription,
		&a.GoodWithKids,
		&a.GoodWithDogs,
		&a.HomeTrained,
		&status,
		&media,
		&a.CreatedAt,
		&a.UpdatedAt,
	); err != nil {
		return nil, err
	}
	a.Status = domain.AnimalStatus(status)
	a.Media = []domain.Media{}
	if len(media) > 0 {
		if err := json.Unmarshal(media, &a.Media); err != nil {
			return nil, fmt.Errorf("failed to decode media for animal %d: %w", a.ID, err)
		}
	}
	return &a, nil
}

func mediaColumn(media []domain.Media) ([]byte, error) {
	if media == nil {
		media = []domain.Media{}
	}
	return jsonColumn(media)
}

// Create implements store.AnimalStore.
func (s *PostgresAnimalStore) Create(ctx context.Context, animal *domain.Animal) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	media, err := mediaColumn(animal.Media)
	if err != nil {
		return err
	}

	query := `
		INSERT INTO animals (name, type, age, gender, size, breed, short_description, long_description,
			good_with_kids, good_with_dogs, home_trained, status, media, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
		RETURNING id
	`
	err = s.db.QueryRowContext(ctx, query,
		animal.Name,
		animal.Type,
		animal.Age,
		animal.Gender,
		animal.Size,
		animal.Breed,
		animal.ShortDescription,
		animal.LongDescription,
		animal.GoodWithKids,
		animal.GoodWithDogs,
		animal.HomeTrained,
		string(animal.Status),
		media,
		animal.CreatedAt,
		animal.UpdatedAt,
	).Scan(&animal.ID)
	if err != nil {
		log.Error("failed to create animal", slog.String("error", err.Error()))
		return MapError(err)
	}

	log.Info("animal created",
		slog.Int64("animal_id", animal.ID),
		slog.String("status", string(animal.Status)))
	return nil
}

// GetByID implements store.AnimalStore.
func (s *PostgresAnimalStore) GetByID(ctx context.Context, id int64) (*domain.Animal, error) {
	return s.getByID(ctx, `SELECT `+animalColumns+` FROM animals WHERE id = $1`, id)
}

// GetByIDForUpdate implements store.AnimalStore.
func (s *PostgresAnimalStore) GetByIDForUpdate(ctx context.Context, id int64) (*domain.Animal, error) {
	return s.getByID(ctx, `SELECT `+animalColumns+` FROM animals WHERE id = $1 FOR UPDATE`, id)
}

func (s *PostgresAnimalStore) getByID(ctx context.Context, query string, id int64) (*domain.Animal, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	a, err := scanAnimal(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Debug("animal not found", slog.Int64("animal_id", id))
			return nil, store.ErrAnimalNotFound
		}
		log.Error("failed to get animal by ID",
			slog.String("error", err.Error()),
			slog.Int64("animal_id", id))
		return nil, MapError(err)
	}
	return a, nil
}

// List implements store.AnimalStore.
func (s *PostgresAnimalStore) List(ctx context.Context, filter store.AnimalFilter) ([]*domain.Animal, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	var (
		conditions []string
		args       []any
	)
	if filter.Status != "" {
		args = append(args, string(filter.Status))
		conditions = append(conditions, fmt.Sprintf("status = $%d", len(args)))
	}
	if filter.Type != "" {
		args = append(args, strings.ToLower(filter.Type))
		conditions = append(conditions, fmt.Sprintf("LOWER(type) = $%d", len(args)))
	}

	query := `SELECT ` + animalColumns + ` FROM animals`
	if len(conditions) > 0 {
		query += ` WHERE ` + strings.Join(conditions, " AND ")
	}
	query += ` ORDER BY created_at DESC, id DESC`

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Error("failed to list animals", slog.String("error", err.Error()))
		return nil, MapError(err)
	}
	defer closeRows(rows, log)

	animals := []*domain.Animal{}
	for rows.Next() {
		a, err := scanAnimal(rows)
		if err != nil {
			log.Error("failed to scan animal row", slog.String("error", err.Error()))
			return nil, err
		}
		animals = append(animals, a)
	}
	if err := rows.Err(); err != nil {
		return nil, MapError(err)
	}

	log.Debug("listed animals", slog.Int("count", len(animals)))
	return animals, nil
}

// Update implements store.AnimalStore.
func (s *PostgresAnimalStore) Update(ctx context.Context, animal *domain.Animal) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	media, err := mediaColumn(animal.Media)
	if err != nil {
		return err
	}

	query := `
		UPDATE animals
		SET name = $1, type = $2, age = $3, gender = $4, size = $5, breed = $6,
			short_description = $7, long_description = $8, good_with_kids = $9,
			good_with_dogs = $10, home_trained = $11, status = $12, media = $13, updated_at = $14
		WHERE id = $15
	`
	result, err := s.db.ExecContext(ctx, query,
		animal.Name,
		animal.Type,
		animal.Age,
		animal.Gender,
		animal.Size,
		animal.Breed,
		animal.ShortDescription,
		animal.LongDescription,
		animal.GoodWithKids,
		animal.GoodWithDogs,
		animal.HomeTrained,
		string(animal.Status),
		media,
		animal.UpdatedAt,
		animal.ID,
	)
	if err != nil {
		log.Error("failed to update animal",
			slog.String("error", err.Error()),
			slog.Int64("animal_id", animal.ID))
		return MapError(err)
	}
	if err := CheckRowsAffected(result, store.ErrAnimalNotFound); err != nil {
		return err
	}

	log.Info("animal updated", slog.Int64("animal_id", animal.ID))
	return nil
}

// UpdateStatus implements store.AnimalStore.
func (s *PostgresAnimalStore) UpdateStatus(ctx context.Context, id int64, status domain.AnimalStatus) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if !status.Valid() {
		return domain.ErrInvalidAnimalStatus
	}

	result, err := s.db.ExecContext(ctx,
		`UPDATE animals SET status = $1, updated_at = NOW() WHERE id = $2`,
		string(status), id)
	if err != nil {
		log.Error("failed to update animal status",
			slog.String("error", err.Error()),
			slog.Int64("animal_id", id))
		return MapError(err)
	}
	if err := CheckRowsAffected(result, store.ErrAnimalNotFound); err != nil {
		return err
	}

	log.Info("animal status updated",
		slog.Int64("animal_id", id),
		slog.String("status", string(status)))
	return nil
}

// AppendMedia implements store.AnimalStore.
func (s *PostgresAnimalStore) AppendMedia(ctx context.Context, id int64, media []domain.Media) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	encoded, err := mediaColumn(media)
	if err != nil {
		return err
	}

	result, err := s.db.ExecContext(ctx,
		`UPDATE animals SET media = media || $1::jsonb, updated_at = NOW() WHERE id = $2`,
		encoded, id)
	if err != nil {
		log.Error("failed to append animal media",
			slog.String("error", err.Error()),
			slog.Int64("animal_id", id))
		return MapError(err)
	}
	if err := CheckRowsAffected(result, store.ErrAnimalNotFound); err != nil {
		return err
	}

	log.Debug("animal media appended",
		slog.Int64("animal_id", id),
		slog.Int("media_count", len(media)))
	return nil
}

// RemoveMedia implements store.AnimalStore. The old list is read under a row
// lock so a concurrent append cannot be lost.
func (s *PostgresAnimalStore) RemoveMedia(ctx context.Context, id int64, publicID string) (*domain.Media, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		UPDATE animals a
		SET media = COALESCE((
				SELECT jsonb_agg(e ORDER BY ord)
				FROM jsonb_array_elements(old.media) WITH ORDINALITY AS t(e, ord)
				WHERE e->>'public_id' <> $1
			), '[]'::jsonb),
			updated_at = NOW()
		FROM (SELECT id, media FROM animals WHERE id = $2 FOR UPDATE) old
		WHERE a.id = old.id
		RETURNING (
			SELECT e FROM jsonb_array_elements(old.media) AS e
			WHERE e->>'public_id' = $1
			LIMIT 1
		)
	`
	var removed []byte
	err := s.db.QueryRowContext(ctx, query, publicID, id).Scan(&removed)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.ErrAnimalNotFound
		}
		log.Error("failed to remove animal media",
			slog.String("error", err.Error()),
			slog.Int64("animal_id", id))
		return nil, MapError(err)
	}
	if len(removed) == 0 {
		return nil, store.ErrAnimalMediaNotFound
	}

	var m domain.Media
	if err := json.Unmarshal(removed, &m); err != nil {
		return nil, fmt.Errorf("failed to decode removed media: %w", err)
	}

	log.Debug("animal media removed",
		slog.Int64("animal_id", id),
		slog.String("public_id", publicID))
	return &m, nil
}

// MarkPending implements store.AnimalStore.
func (s *PostgresAnimalStore) MarkPending(ctx context.Context, id int64) (bool, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	result, err := s.db.ExecContext(ctx, `
		UPDATE animals
		SET status = $1, updated_at = NOW()
		WHERE id = $2 AND status <> $3
	`, string(domain.AnimalStatusPending), id, string(domain.AnimalStatusAdopted))
	if err != nil {
		log.Warn("failed to mark animal pending",
			slog.String("error", err.Error()),
			slog.Int64("animal_id", id))
		return false, MapError(err)
	}

	n, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to get rows affected: %w", err)
	}
	return n > 0, nil
}

// Exists implements store.AnimalStore.
func (s *PostgresAnimalStore) Exists(ctx context.Context, id int64) (bool, error) {
	var exists bool
	err := s.db.QueryRowContext(ctx, `SELECT EXISTS(SELECT 1 FROM animals WHERE id = $1)`, id).Scan(&exists)
	if err != nil {
		return false, MapError(err)
	}
	return exists, nil
}

// Delete implements store.AnimalStore.
func (s *PostgresAnimalStore) Delete(ctx context.Context, id int64) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	result, err := s.db.ExecContext(ctx, `DELETE FROM animals WHERE id = $1`, id)
	if err != nil {
		log.Error("failed to delete animal",
			slog.String("error", err.Error()),
			slog.Int64("animal_id", id))
		return MapError(err)
	}
	if err := CheckRowsAffected(result, store.ErrAnimalNotFound); err != nil {
		return err
	}

	log.Info("animal deleted", slog.Int64("animal_id", id))
	return nil
}

// Count implements store.AnimalStore.
func (s *PostgresAnimalStore) Count(ctx context.Context) (int64, error) {
	return countRows(ctx, s.db, "animals")
}
