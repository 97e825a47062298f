package mocks

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"github.com/phrazzld/taskboard-api/internal/domain"
	"github.com/phrazzld/taskboard-api/internal/store"
)

// MockTaskStore implements store.TaskStore for testing with an in-memory
// map keyed by task ID.
type MockTaskStore struct {
	mu    sync.Mutex
	tasks map[uuid.UUID]*domain.Task

	// Custom behavior functions
	CreateFn func(ctx context.Context, task *domain.Task) error
	ListFn   func(ctx context.Context, filter store.TaskFilter) ([]domain.Task, error)
	UpdateFn func(ctx context.Context, id uuid.UUID, task *domain.Task) error
	DeleteFn func(ctx context.Context, id uuid.UUID) error

	// Call tracking for verification
	ListCalls int
}

// Ensure MockTaskStore implements store.TaskStore
var _ store.TaskStore = (*MockTaskStore)(nil)

// NewMockTaskStore creates an empty MockTaskStore.
func NewMockTaskStore() *MockTaskStore {
	return &MockTaskStore{
		tasks: make(map[uuid.UUID]*domain.Task),
	}
}

// Create implements store.TaskStore.Create
func (m *MockTaskStore) Create(ctx context.Context, task *domain.Task) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, task)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	stored := *task
	m.tasks[task.ID] = &stored
	return nil
}

// List implements store.TaskStore.List
func (m *MockTaskStore) List(
	ctx context.Context,
	filter store.TaskFilter,
) ([]domain.Task, error) {
	m.mu.Lock()
	m.ListCalls++
	m.mu.Unlock()

	if m.ListFn != nil {
		return m.ListFn(ctx, filter)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	result := make([]domain.Task, 0)
	for _, task := range m.tasks {
		if filter.Status != nil && task.Status != *filter.Status {
			continue
		}
		if filter.Priority != nil && task.Priority != *filter.Priority {
			continue
		}
		result = append(result, *task)
		if len(result) == store.ListLimit {
			break
		}
	}
	return result, nil
}

// Update implements store.TaskStore.Update
func (m *MockTaskStore) Update(
	ctx context.Context,
	id uuid.UUID,
	task *domain.Task,
) error {
	if m.UpdateFn != nil {
		return m.UpdateFn(ctx, id, task)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	existing, exists := m.tasks[id]
	if !exists {
		return store.ErrTaskNotFound
	}

	existing.Title = task.Title
	existing.Description = task.Description
	existing.Status = task.Status
	existing.Priority = task.Priority
	return nil
}

// Delete implements store.TaskStore.Delete
func (m *MockTaskStore) Delete(ctx context.Context, id uuid.UUID) error {
	if m.DeleteFn != nil {
		return m.DeleteFn(ctx, id)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if _, exists := m.tasks[id]; !exists {
		return store.ErrTaskNotFound
	}

	delete(m.tasks, id)
	return nil
}
