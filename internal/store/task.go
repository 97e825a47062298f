package store

import (
	"context"

	"github.com/google/uuid"
	"github.com/phrazzld/taskboard-api/internal/domain"
)

// ListLimit bounds every task listing; there is no pagination beyond it.
const ListLimit = 100

// TaskFilter holds the optional equality filters for task listings.
// A nil field means "no filter on this column".
type TaskFilter struct {
	Status   *domain.TaskStatus
	Priority *domain.TaskPriority
}

// TaskStore defines the interface for task data persistence.
type TaskStore interface {
	// Create saves a new task to the store.
	// Returns validation errors from the domain Task if data is invalid.
	Create(ctx context.Context, task *domain.Task) error

	// List retrieves tasks matching the filter, bounded to ListLimit rows.
	// No ordering is guaranteed.
	List(ctx context.Context, filter TaskFilter) ([]domain.Task, error)

	// Update replaces the mutable fields of the task with the given ID.
	// CreatedAt is preserved. Returns ErrTaskNotFound if no row matched.
	Update(ctx context.Context, id uuid.UUID, task *domain.Task) error

	// Delete removes the task with the given ID.
	// Returns ErrTaskNotFound if no row matched.
	Delete(ctx context.Context, id uuid.UUID) error
}
