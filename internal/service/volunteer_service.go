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

// VolunteerService handles volunteer registrations.
type VolunteerService struct {
	volunteers store.VolunteerStore
	tx         store.Transactor
	logger     *slog.Logger
}

// NewVolunteerService creates a VolunteerService.
func NewVolunteerService(volunteers store.VolunteerStore, tx store.Transactor, logger *slog.Logger) (*VolunteerService, error) {
	if volunteers == nil {
		return nil, fmt.Errorf("volunteers store cannot be nil")
	}
	if tx == nil {
		return nil, fmt.Errorf("transactor cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &VolunteerService{
		volunteers: volunteers,
		tx:         tx,
		logger:     logger.With(slog.String("component", "volunteer_service")),
	}, nil
}

// normalizeVolunteer validates v and rewrites its email and phone into the
// canonical forms used for uniqueness.
func normalizeVolunteer(v *domain.Volunteer) error {
	v.Email = domain.NormalizeEmail(v.Email)
	if err := v.Validate(); err != nil {
		return err
	}
	phone, err := domain.NormalizePhone(v.Phone)
	if err != nil {
		return err
	}
	v.Phone = phone
	return nil
}

// Register stores a new registration as pending. Duplicate email or phone
// yields store.ErrEmailExists or store.ErrPhoneExists.
func (s *VolunteerService) Register(ctx context.Context, v *domain.Volunteer) (*domain.Volunteer, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	v.Status = domain.VolunteerStatusPending
	if err := normalizeVolunteer(v); err != nil {
		return nil, err
	}
	now := time.Now().UTC()
	v.CreatedAt, v.UpdatedAt = now, now

	if err := s.volunteers.Create(ctx, v); err != nil {
		if !errors.Is(err, store.ErrDuplicate) {
			log.Error("failed to register volunteer", slog.String("error", err.Error()))
		}
		return nil, fmt.Errorf("failed to register volunteer: %w", err)
	}

	log.Info("volunteer registered", slog.Int64("volunteer_id", v.ID))
	return v, nil
}

// Get returns one registration or store.ErrVolunteerNotFound.
func (s *VolunteerService) Get(ctx context.Context, id int64) (*domain.Volunteer, error) {
	v, err := s.volunteers.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get volunteer: %w", err)
	}
	return v, nil
}

// List returns registrations, only those in status when it is set.
func (s *VolunteerService) List(ctx context.Context, status domain.VolunteerStatus) ([]*domain.Volunteer, error) {
	if status != "" && !status.Valid() {
		return nil, domain.NewValidationError("status", "must be one of: pending accepted rejected", domain.ErrInvalidVolunteerStatus)
	}
	vs, err := s.volunteers.List(ctx, status)
	if err != nil {
		return nil, fmt.Errorf("failed to list volunteers: %w", err)
	}
	return vs, nil
}

// Update overwrites the editable fields of registration id. Status is not
// touched. The returned flag is false, and nothing is written, when v carries
// exactly the stored details.
func (s *VolunteerService) Update(ctx context.Context, id int64, v *domain.Volunteer) (*domain.Volunteer, bool, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	var (
		result  *domain.Volunteer
		changed bool
	)
	err := s.tx.Transact(ctx, func(ctx context.Context, tx *sql.Tx) error {
		volunteers := s.volunteers.WithTx(tx)

		current, err := volunteers.GetByID(ctx, id)
		if err != nil {
			return err
		}

		v.ID = id
		v.Status = current.Status
		v.CreatedAt = current.CreatedAt
		if err := normalizeVolunteer(v); err != nil {
			return err
		}
		if current.SameDetails(v) {
			result, changed = current, false
			return nil
		}

		v.UpdatedAt = time.Now().UTC()
		if err := volunteers.Update(ctx, v); err != nil {
			return err
		}
		result, changed = v, true
		return nil
	})
	if err != nil {
		return nil, false, fmt.Errorf("failed to update volunteer: %w", err)
	}

	if changed {
		log.Info("volunteer updated", slog.Int64("volunteer_id", id))
	}
	return result, changed, nil
}

// UpdateStatus sets the review status.
func (s *VolunteerService) UpdateStatus(ctx context.Context, id int64, status domain.VolunteerStatus) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if !status.Valid() {
		return domain.NewValidationError("status", "must be one of: pending accepted rejected", domain.ErrInvalidVolunteerStatus)
	}
	if err := s.volunteers.UpdateStatus(ctx, id, status); err != nil {
		return fmt.Errorf("failed to update volunteer status: %w", err)
	}

	log.Info("volunteer status updated",
		slog.Int64("volunteer_id", id),
		slog.String("status", string(status)))
	return nil
}

// Delete removes a registration.
func (s *VolunteerService) Delete(ctx context.Context, id int64) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := s.volunteers.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete volunteer: %w", err)
	}

	log.Info("volunteer deleted", slog.Int64("volunteer_id", id))
	return nil
}
