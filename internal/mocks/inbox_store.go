package mocks

import (
	"context"
	"database/sql"
	"sort"
	"sync"
	"time"

	"github.com/phrazzld/pawscout-api/internal/domain"
	"github.com/phrazzld/pawscout-api/internal/store"
)

// ContactStore is an in-memory store.ContactStore.
type ContactStore struct {
	mu       sync.Mutex
	messages map[int64]*domain.ContactMessage
	nextID   int64
}

var _ store.ContactStore = (*ContactStore)(nil)

// NewContactStore creates an empty ContactStore.
func NewContactStore() *ContactStore {
	return &ContactStore{messages: make(map[int64]*domain.ContactMessage)}
}

// Create implements store.ContactStore.
func (m *ContactStore) Create(_ context.Context, msg *domain.ContactMessage) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.nextID++
	msg.ID = m.nextID
	cp := *msg
	m.messages[cp.ID] = &cp
	return nil
}

// List implements store.ContactStore.
func (m *ContactStore) List(context.Context) ([]*domain.ContactMessage, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]*domain.ContactMessage, 0, len(m.messages))
	for _, msg := range m.messages {
		cp := *msg
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return out, nil
}

// Delete implements store.ContactStore.
func (m *ContactStore) Delete(_ context.Context, id int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.messages[id]; !ok {
		return store.ErrContactMessageNotFound
	}
	delete(m.messages, id)
	return nil
}

// Count implements store.ContactStore.
func (m *ContactStore) Count(context.Context) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return int64(len(m.messages)), nil
}

// WithTx implements store.ContactStore.
func (m *ContactStore) WithTx(*sql.Tx) store.ContactStore {
	return m
}

// SubscriptionStore is an in-memory store.SubscriptionStore.
type SubscriptionStore struct {
	mu     sync.Mutex
	subs   map[int64]*domain.Subscription
	nextID int64
}

var _ store.SubscriptionStore = (*SubscriptionStore)(nil)

// NewSubscriptionStore creates an empty SubscriptionStore.
func NewSubscriptionStore() *SubscriptionStore {
	return &SubscriptionStore{subs: make(map[int64]*domain.Subscription)}
}

// Create implements store.SubscriptionStore.
func (m *SubscriptionStore) Create(_ context.Context, sub *domain.Subscription) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, s := range m.subs {
		if s.Email == sub.Email {
			return store.ErrEmailExists
		}
	}
	m.nextID++
	sub.ID = m.nextID
	cp := *sub
	m.subs[cp.ID] = &cp
	return nil
}

// List implements store.SubscriptionStore.
func (m *SubscriptionStore) List(context.Context) ([]*domain.Subscription, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]*domain.Subscription, 0, len(m.subs))
	for _, s := range m.subs {
		cp := *s
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return out, nil
}

// Delete implements store.SubscriptionStore.
func (m *SubscriptionStore) Delete(_ context.Context, id int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.subs[id]; !ok {
		return store.ErrSubscriptionNotFound
	}
	delete(m.subs, id)
	return nil
}

// Count implements store.SubscriptionStore.
func (m *SubscriptionStore) Count(context.Context) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return int64(len(m.subs)), nil
}

// WithTx implements store.SubscriptionStore.
func (m *SubscriptionStore) WithTx(*sql.Tx) store.SubscriptionStore {
	return m
}

// SettingsStore is an in-memory store.SettingsStore.
type SettingsStore struct {
	mu       sync.Mutex
	settings *domain.ShelterSettings

	SaveFn func(ctx context.Context, s *domain.ShelterSettings) error

	// LockedReads counts GetForUpdate calls.
	LockedReads int
}

var _ store.SettingsStore = (*SettingsStore)(nil)

// NewSettingsStore creates a SettingsStore with nothing saved.
func NewSettingsStore() *SettingsStore {
	return &SettingsStore{}
}

// Get implements store.SettingsStore.
func (m *SettingsStore) Get(context.Context) (*domain.ShelterSettings, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.settings == nil {
		return domain.DefaultShelterSettings(), nil
	}
	cp := *m.settings
	if m.settings.Logo != nil {
		logo := *m.settings.Logo
		cp.Logo = &logo
	}
	return &cp, nil
}

// GetForUpdate implements store.SettingsStore.
func (m *SettingsStore) GetForUpdate(ctx context.Context) (*domain.ShelterSettings, error) {
	m.mu.Lock()
	m.LockedReads++
	m.mu.Unlock()
	return m.Get(ctx)
}

// Save implements store.SettingsStore.
func (m *SettingsStore) Save(ctx context.Context, s *domain.ShelterSettings) error {
	if m.SaveFn != nil {
		return m.SaveFn(ctx, s)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	s.UpdatedAt = time.Now().UTC()
	cp := *s
	m.settings = &cp
	return nil
}

// WithTx implements store.SettingsStore.
func (m *SettingsStore) WithTx(*sql.Tx) store.SettingsStore {
	return m
}
