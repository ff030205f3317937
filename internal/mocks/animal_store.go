package mocks

import (
	"context"
	"database/sql"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/phrazzld/pawscout-api/internal/domain"
	"github.com/phrazzld/pawscout-api/internal/store"
)

// AnimalStore is an in-memory store.AnimalStore.
type AnimalStore struct {
	mu      sync.Mutex
	animals map[int64]*domain.Animal
	nextID  int64

	MarkPendingFn func(ctx context.Context, id int64) (bool, error)
	AppendMediaFn func(ctx context.Context, id int64, media []domain.Media) error

	// LockedReads counts GetByIDForUpdate calls.
	LockedReads int
}

var _ store.AnimalStore = (*AnimalStore)(nil)

// NewAnimalStore creates an empty AnimalStore.
func NewAnimalStore() *AnimalStore {
	return &AnimalStore{animals: make(map[int64]*domain.Animal)}
}

func copyAnimal(a *domain.Animal) *domain.Animal {
	cp := *a
	cp.Media = append([]domain.Media{}, a.Media...)
	return &cp
}

// Create implements store.AnimalStore.
func (m *AnimalStore) Create(_ context.Context, animal *domain.Animal) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.nextID++
	animal.ID = m.nextID
	m.animals[animal.ID] = copyAnimal(animal)
	return nil
}

// GetByID implements store.AnimalStore.
func (m *AnimalStore) GetByID(_ context.Context, id int64) (*domain.Animal, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	a, ok := m.animals[id]
	if !ok {
		return nil, store.ErrAnimalNotFound
	}
	return copyAnimal(a), nil
}

// GetByIDForUpdate implements store.AnimalStore. The mutex already
// serializes access, so it only records the call.
func (m *AnimalStore) GetByIDForUpdate(ctx context.Context, id int64) (*domain.Animal, error) {
	m.mu.Lock()
	m.LockedReads++
	m.mu.Unlock()
	return m.GetByID(ctx, id)
}

// List implements store.AnimalStore.
func (m *AnimalStore) List(_ context.Context, filter store.AnimalFilter) ([]*domain.Animal, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []*domain.Animal{}
	for _, a := range m.animals {
		if filter.Status != "" && a.Status != filter.Status {
			continue
		}
		if filter.Type != "" && !strings.EqualFold(a.Type, filter.Type) {
			continue
		}
		out = append(out, copyAnimal(a))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return out, nil
}

// Update implements store.AnimalStore.
func (m *AnimalStore) Update(_ context.Context, animal *domain.Animal) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.animals[animal.ID]; !ok {
		return store.ErrAnimalNotFound
	}
	m.animals[animal.ID] = copyAnimal(animal)
	return nil
}

// UpdateStatus implements store.AnimalStore.
func (m *AnimalStore) UpdateStatus(_ context.Context, id int64, status domain.AnimalStatus) error {
	if !status.Valid() {
		return domain.ErrInvalidAnimalStatus
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	a, ok := m.animals[id]
	if !ok {
		return store.ErrAnimalNotFound
	}
	a.Status = status
	a.UpdatedAt = time.Now().UTC()
	return nil
}

// AppendMedia implements store.AnimalStore.
func (m *AnimalStore) AppendMedia(ctx context.Context, id int64, media []domain.Media) error {
	if m.AppendMediaFn != nil {
		return m.AppendMediaFn(ctx, id, media)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	a, ok := m.animals[id]
	if !ok {
		return store.ErrAnimalNotFound
	}
	a.Media = append(a.Media, media...)
	return nil
}

// RemoveMedia implements store.AnimalStore.
func (m *AnimalStore) RemoveMedia(_ context.Context, id int64, publicID string) (*domain.Media, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	a, ok := m.animals[id]
	if !ok {
		return nil, store.ErrAnimalNotFound
	}
	var removed *domain.Media
	for _, md := range a.Media {
		if md.PublicID == publicID {
			md := md
			removed = &md
			break
		}
	}
	remaining, ok := a.WithoutMedia(publicID)
	if !ok {
		return nil, store.ErrAnimalMediaNotFound
	}
	a.Media = remaining
	return removed, nil
}

// MarkPending implements store.AnimalStore.
func (m *AnimalStore) MarkPending(ctx context.Context, id int64) (bool, error) {
	if m.MarkPendingFn != nil {
		return m.MarkPendingFn(ctx, id)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	a, ok := m.animals[id]
	if !ok || a.Status == domain.AnimalStatusAdopted {
		return false, nil
	}
	a.Status = domain.AnimalStatusPending
	return true, nil
}

// Exists implements store.AnimalStore.
func (m *AnimalStore) Exists(_ context.Context, id int64) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.animals[id]
	return ok, nil
}

// Delete implements store.AnimalStore.
func (m *AnimalStore) Delete(_ context.Context, id int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.animals[id]; !ok {
		return store.ErrAnimalNotFound
	}
	delete(m.animals, id)
	return nil
}

// Count implements store.AnimalStore.
func (m *AnimalStore) Count(context.Context) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return int64(len(m.animals)), nil
}

// WithTx implements store.AnimalStore.
func (m *AnimalStore) WithTx(*sql.Tx) store.AnimalStore {
	return m
}
