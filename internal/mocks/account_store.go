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

// AccountStore is an in-memory store.AccountStore.
type AccountStore struct {
	mu       sync.Mutex
	accounts map[int64]*domain.Account
	nextID   int64

	CreateFn  func(ctx context.Context, account *domain.Account) error
	GetByIDFn func(ctx context.Context, id int64) (*domain.Account, error)
}

var _ store.AccountStore = (*AccountStore)(nil)

// NewAccountStore creates an empty AccountStore.
func NewAccountStore() *AccountStore {
	return &AccountStore{accounts: make(map[int64]*domain.Account)}
}

// Seed stores a copy of account, assigning an ID when it has none, and
// returns the stored ID.
func (m *AccountStore) Seed(account *domain.Account) int64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	if account.ID == 0 {
		m.nextID++
		account.ID = m.nextID
	} else if account.ID > m.nextID {
		m.nextID = account.ID
	}
	cp := *account
	m.accounts[cp.ID] = &cp
	return cp.ID
}

// Create implements store.AccountStore.
func (m *AccountStore) Create(ctx context.Context, account *domain.Account) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, account)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, a := range m.accounts {
		if a.Email == account.Email {
			return store.ErrEmailExists
		}
	}
	m.nextID++
	account.ID = m.nextID
	cp := *account
	m.accounts[cp.ID] = &cp
	return nil
}

// GetByID implements store.AccountStore.
func (m *AccountStore) GetByID(ctx context.Context, id int64) (*domain.Account, error) {
	if m.GetByIDFn != nil {
		return m.GetByIDFn(ctx, id)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	a, ok := m.accounts[id]
	if !ok {
		return nil, store.ErrAccountNotFound
	}
	cp := *a
	return &cp, nil
}

// GetByEmail implements store.AccountStore.
func (m *AccountStore) GetByEmail(_ context.Context, email string) (*domain.Account, error) {
	email = domain.NormalizeEmail(email)
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, a := range m.accounts {
		if a.Email == email {
			cp := *a
			return &cp, nil
		}
	}
	return nil, store.ErrAccountNotFound
}

// List implements store.AccountStore.
func (m *AccountStore) List(context.Context) ([]*domain.Account, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]*domain.Account, 0, len(m.accounts))
	for _, a := range m.accounts {
		cp := *a
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

// SetAdmin implements store.AccountStore.
func (m *AccountStore) SetAdmin(_ context.Context, id int64, isAdmin bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	a, ok := m.accounts[id]
	if !ok {
		return store.ErrAccountNotFound
	}
	a.IsAdmin = isAdmin
	a.UpdatedAt = time.Now().UTC()
	return nil
}

// Delete implements store.AccountStore.
func (m *AccountStore) Delete(_ context.Context, id int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.accounts[id]; !ok {
		return store.ErrAccountNotFound
	}
	delete(m.accounts, id)
	return nil
}

// Count implements store.AccountStore.
func (m *AccountStore) Count(context.Context) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return int64(len(m.accounts)), nil
}

// WithTx implements store.AccountStore.
func (m *AccountStore) WithTx(*sql.Tx) store.AccountStore {
	return m
}
