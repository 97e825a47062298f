package service

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/phrazzld/taskboard-api/internal/cache"
	"github.com/phrazzld/taskboard-api/internal/config"
	"github.com/phrazzld/taskboard-api/internal/domain"
	"github.com/phrazzld/taskboard-api/internal/platform/logger"
	"github.com/phrazzld/taskboard-api/internal/store"
)

// legacyCacheKey is the single shared key the original system used for
// every listing, regardless of filters.
const legacyCacheKey = "tasks"

// TaskInput carries the caller-supplied fields for creating or updating
// a task. Enum validity is checked by domain validation.
type TaskInput struct {
	Title       string
	Description *string
	Status      domain.TaskStatus
	Priority    domain.TaskPriority
}

// TaskService implements task CRUD with a cache-aside layer in front of
// the task listing. Cached snapshots expire after the configured TTL,
// which is the ultimate staleness ceiling; coherency is otherwise
// best-effort with no cross-request locking.
//
// Two bugs in the original system are fixed by default and reproducible
// via config.CacheConfig.LegacyKeying: the shared cache key that ignored
// filter parameters, and create not invalidating the cache.
type TaskService struct {
	taskStore    store.TaskStore
	cache        cache.Cache
	ttl          time.Duration
	legacyKeying bool
	logger       *slog.Logger
}

// NewTaskService creates a TaskService with the given dependencies.
// If logger is nil, a default logger will be used.
func NewTaskService(
	taskStore store.TaskStore,
	taskCache cache.Cache,
	cfg config.CacheConfig,
	logger *slog.Logger,
) *TaskService {
	if taskStore == nil {
		panic("task store cannot be nil")
	}
	if taskCache == nil {
		panic("task cache cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &TaskService{
		taskStore:    taskStore,
		cache:        taskCache,
		ttl:          time.Duration(cfg.TTLSeconds) * time.Second,
		legacyKeying: cfg.LegacyKeying,
		logger:       logger.With(slog.String("component", "task_service")),
	}
}

// Create inserts a new task with a server-set creation timestamp and
// returns it. Unless legacy keying is enabled, cached listings are
// invalidated before returning so the new task shows up on the next read.
func (s *TaskService) Create(ctx context.Context, in TaskInput) (*domain.Task, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	task, err := domain.NewTask(in.Title, in.Description, in.Status, in.Priority)
	if err != nil {
		return nil, err
	}

	if err := s.taskStore.Create(ctx, task); err != nil {
		return nil, err
	}

	if !s.legacyKeying {
		if err := s.invalidateListings(ctx); err != nil {
			log.Error("failed to invalidate task cache after create",
				slog.String("error", err.Error()),
				slog.String("task_id", task.ID.String()))
			return nil, fmt.Errorf("failed to invalidate task cache: %w", err)
		}
	}
	// Legacy mode reproduces the original behavior: a created task stays
	// invisible to cached listings until the TTL expires.

	return task, nil
}

// List returns tasks matching the optional filters, serving from the cache
// when a fresh snapshot exists and repopulating it on a miss.
//
// With legacy keying every listing shares one key, so a hit is returned
// as-is and the filter parameters are silently ignored. Otherwise the key
// encodes the filter tuple and a hit can only be served for the exact
// combination that produced it.
func (s *TaskService) List(ctx context.Context, filter store.TaskFilter) ([]domain.Task, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)
	key := s.listingKey(filter)

	cached, hit, err := s.cache.Get(ctx, key)
	if err != nil {
		return nil, fmt.Errorf("failed to read task cache: %w", err)
	}
	if hit {
		var tasks []domain.Task
		if err := json.Unmarshal(cached, &tasks); err != nil {
			return nil, fmt.Errorf("failed to decode cached task listing: %w", err)
		}
		log.Debug("task listing served from cache", slog.String("key", key))
		return tasks, nil
	}

	tasks, err := s.taskStore.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	// JSON encoding renders ids and timestamps in portable string form
	// (uuid text, RFC 3339).
	snapshot, err := json.Marshal(tasks)
	if err != nil {
		return nil, fmt.Errorf("failed to encode task listing: %w", err)
	}

	if err := s.cache.Set(ctx, key, snapshot, s.ttl); err != nil {
		return nil, fmt.Errorf("failed to populate task cache: %w", err)
	}

	log.Debug("task listing cached",
		slog.String("key", key),
		slog.Int("count", len(tasks)),
		slog.Duration("ttl", s.ttl))
	return tasks, nil
}

// Update replaces the fields of the task with the given ID.
// Returns store.ErrTaskNotFound if no task matched; the cache is left
// untouched in that case. On success cached listings are invalidated
// before returning.
func (s *TaskService) Update(ctx context.Context, id uuid.UUID, in TaskInput) error {
	task := &domain.Task{
		ID:          id,
		Title:       in.Title,
		Description: in.Description,
		Status:      in.Status,
		Priority:    in.Priority,
	}
	if err := task.Validate(); err != nil {
		return err
	}

	if err := s.taskStore.Update(ctx, id, task); err != nil {
		return err
	}

	if err := s.invalidateListings(ctx); err != nil {
		return fmt.Errorf("failed to invalidate task cache: %w", err)
	}
	return nil
}

// Delete removes the task with the given ID.
// Returns store.ErrTaskNotFound if no task matched; the cache is left
// untouched in that case. On success cached listings are invalidated
// before returning.
func (s *TaskService) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.taskStore.Delete(ctx, id); err != nil {
		return err
	}

	if err := s.invalidateListings(ctx); err != nil {
		return fmt.Errorf("failed to invalidate task cache: %w", err)
	}
	return nil
}

// listingKey derives the cache key for a filter combination. Legacy mode
// collapses every combination onto the original shared key.
func (s *TaskService) listingKey(filter store.TaskFilter) string {
	if s.legacyKeying {
		return legacyCacheKey
	}

	status := "any"
	if filter.Status != nil {
		status = string(*filter.Status)
	}
	priority := "any"
	if filter.Priority != nil {
		priority = string(*filter.Priority)
	}
	return fmt.Sprintf("tasks:%s:%s", status, priority)
}

// invalidateListings deletes every cached listing snapshot. The enums are
// closed, so the full key set is enumerable.
func (s *TaskService) invalidateListings(ctx context.Context) error {
	if s.legacyKeying {
		return s.cache.Del(ctx, legacyCacheKey)
	}

	statuses := []string{"any", string(domain.TaskStatusPending), string(domain.TaskStatusCompleted)}
	priorities := []string{
		"any",
		string(domain.TaskPriorityLow),
		string(domain.TaskPriorityMedium),
		string(domain.TaskPriorityHigh),
	}

	keys := make([]string, 0, len(statuses)*len(priorities))
	for _, status := range statuses {
		for _, priority := range priorities {
			keys = append(keys, fmt.Sprintf("tasks:%s:%s", status, priority))
		}
	}
	return s.cache.Del(ctx, keys...)
}
