package mocks

import (
	"context"
	"database/sql"
	"sort"
	"sync"

	"github.com/phrazzld/pawscout-api/internal/domain"
	"github.com/phrazzld/pawscout-api/internal/store"
)

// AdoptionStore is an in-memory store.AdoptionStore.
type AdoptionStore struct {
	mu     sync.Mutex
	apps   map[int64]*domain.AdoptionApplication
	nextID int64

	CreateFn func(ctx context.Context, app *domain.AdoptionApplication) error
}

var _ store.AdoptionStore = (*AdoptionStore)(nil)

// NewAdoptionStore creates an empty AdoptionStore.
func NewAdoptionStore() *AdoptionStore {
	return &AdoptionStore{apps: make(map[int64]*domain.AdoptionApplication)}
}

// Create implements store.AdoptionStore.
func (m *AdoptionStore) Create(ctx context.Context, app *domain.AdoptionApplication) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, app)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.nextID++
	app.ID = m.nextID
	cp := *app
	m.apps[cp.ID] = &cp
	return nil
}

// GetByID implements store.AdoptionStore.
func (m *AdoptionStore) GetByID(_ context.Context, id int64) (*domain.AdoptionApplication, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	a, ok := m.apps[id]
	if !ok {
		return nil, store.ErrApplicationNotFound
	}
	cp := *a
	return &cp, nil
}

// List implements store.AdoptionStore.
func (m *AdoptionStore) List(_ context.Context, animalID int64) ([]*domain.AdoptionApplication, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []*domain.AdoptionApplication{}
	for _, a := range m.apps {
		if animalID > 0 && a.AnimalID != animalID {
			continue
		}
		cp := *a
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return out, nil
}

// Delete implements store.AdoptionStore.
func (m *AdoptionStore) Delete(_ context.Context, id int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.apps[id]; !ok {
		return store.ErrApplicationNotFound
	}
	delete(m.apps, id)
	return nil
}

// Count implements store.AdoptionStore.
func (m *AdoptionStore) Count(context.Context) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return int64(len(m.apps)), nil
}

// WithTx implements store.AdoptionStore.
func (m *AdoptionStore) WithTx(*sql.Tx) store.AdoptionStore {
	return m
}
