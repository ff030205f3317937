package mocks

import (
	"context"
	"database/sql"
	"sort"
	"sync"

	"github.com/phrazzld/pawscout-api/internal/domain"
	"github.com/phrazzld/pawscout-api/internal/store"
)

// VolunteerStore is an in-memory store.VolunteerStore enforcing unique
// email and phone.
type VolunteerStore struct {
	mu         sync.Mutex
	volunteers map[int64]*domain.Volunteer
	nextID     int64
}

var _ store.VolunteerStore = (*VolunteerStore)(nil)

// NewVolunteerStore creates an empty VolunteerStore.
func NewVolunteerStore() *VolunteerStore {
	return &VolunteerStore{volunteers: make(map[int64]*domain.Volunteer)}
}

func copyVolunteer(v *domain.Volunteer) *domain.Volunteer {
	cp := *v
	cp.Availability = append([]string{}, v.Availability...)
	cp.AvailableDays = append([]string{}, v.AvailableDays...)
	cp.AreasOfInterest = append([]string{}, v.AreasOfInterest...)
	return &cp
}

// conflict must be called with mu held.
func (m *VolunteerStore) conflict(v *domain.Volunteer) error {
	for id, other := range m.volunteers {
		if id == v.ID {
			continue
		}
		if other.Email == v.Email {
			return store.ErrEmailExists
		}
		if other.Phone == v.Phone {
			return store.ErrPhoneExists
		}
	}
	return nil
}

// Create implements store.VolunteerStore.
func (m *VolunteerStore) Create(_ context.Context, v *domain.Volunteer) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.conflict(v); err != nil {
		return err
	}
	m.nextID++
	v.ID = m.nextID
	m.volunteers[v.ID] = copyVolunteer(v)
	return nil
}

// GetByID implements store.VolunteerStore.
func (m *VolunteerStore) GetByID(_ context.Context, id int64) (*domain.Volunteer, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.volunteers[id]
	if !ok {
		return nil, store.ErrVolunteerNotFound
	}
	return copyVolunteer(v), nil
}

// List implements store.VolunteerStore.
func (m *VolunteerStore) List(_ context.Context, status domain.VolunteerStatus) ([]*domain.Volunteer, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []*domain.Volunteer{}
	for _, v := range m.volunteers {
		if status != "" && v.Status != status {
			continue
		}
		out = append(out, copyVolunteer(v))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return out, nil
}

// Update implements store.VolunteerStore.
func (m *VolunteerStore) Update(_ context.Context, v *domain.Volunteer) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.volunteers[v.ID]; !ok {
		return store.ErrVolunteerNotFound
	}
	if err := m.conflict(v); err != nil {
		return err
	}
	m.volunteers[v.ID] = copyVolunteer(v)
	return nil
}

// UpdateStatus implements store.VolunteerStore.
func (m *VolunteerStore) UpdateStatus(_ context.Context, id int64, status domain.VolunteerStatus) error {
	if !status.Valid() {
		return domain.ErrInvalidVolunteerStatus
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.volunteers[id]
	if !ok {
		return store.ErrVolunteerNotFound
	}
	v.Status = status
	return nil
}

// Delete implements store.VolunteerStore.
func (m *VolunteerStore) Delete(_ context.Context, id int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.volunteers[id]; !ok {
		return store.ErrVolunteerNotFound
	}
	delete(m.volunteers, id)
	return nil
}

// Count implements store.VolunteerStore.
func (m *VolunteerStore) Count(context.Context) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return int64(len(m.volunteers)), nil
}

// WithTx implements store.VolunteerStore.
func (m *VolunteerStore) WithTx(*sql.Tx) store.VolunteerStore {
	return m
}
