package mocks

import (
	"context"
	"sync"

	"github.com/phrazzld/taskboard-api/internal/domain"
	"github.com/phrazzld/taskboard-api/internal/store"
)

// MockUserStore implements store.UserStore for testing with an in-memory
// map keyed by username.
type MockUserStore struct {
	mu    sync.Mutex
	users map[string]*domain.User

	// Custom behavior functions
	CreateFn        func(ctx context.Context, user *domain.User) error
	GetByUsernameFn func(ctx context.Context, username string) (*domain.User, error)
}

// Ensure MockUserStore implements store.UserStore
var _ store.UserStore = (*MockUserStore)(nil)

// NewMockUserStore creates an empty MockUserStore.
func NewMockUserStore() *MockUserStore {
	return &MockUserStore{
		users: make(map[string]*domain.User),
	}
}

// Create implements store.UserStore.Create
func (m *MockUserStore) Create(ctx context.Context, user *domain.User) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, user)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if _, exists := m.users[user.Username]; exists {
		return store.ErrUsernameExists
	}

	stored := *user
	m.users[user.Username] = &stored
	return nil
}

// GetByUsername implements store.UserStore.GetByUsername
func (m *MockUserStore) GetByUsername(
	ctx context.Context,
	username string,
) (*domain.User, error) {
	if m.GetByUsernameFn != nil {
		return m.GetByUsernameFn(ctx, username)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	user, exists := m.users[username]
	if !exists {
		return nil, store.ErrUserNotFound
	}

	copied := *user
	return &copied, nil
}
