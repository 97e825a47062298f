package api

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/phrazzld/taskboard-api/internal/api/shared"
	"github.com/phrazzld/taskboard-api/internal/domain"
	"github.com/phrazzld/taskboard-api/internal/service"
	"github.com/phrazzld/taskboard-api/internal/store"
)

// TaskHandler handles task CRUD API requests.
type TaskHandler struct {
	taskService *service.TaskService
	validator   *validator.Validate
}

// NewTaskHandler creates a new TaskHandler with the given dependencies.
func NewTaskHandler(taskService *service.TaskService) *TaskHandler {
	return &TaskHandler{
		taskService: taskService,
		validator:   validator.New(),
	}
}

// decodeTaskRequest parses and validates a task body, rejecting requests
// whose status/priority fields are not one of the enumerated values.
func (h *TaskHandler) decodeTaskRequest(
	w http.ResponseWriter,
	r *http.Request,
) (*TaskRequest, bool) {
	var req TaskRequest

	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusUnprocessableEntity, "Invalid request format")
		return nil, false
	}

	if err := h.validator.Struct(req); err != nil {
		shared.RespondWithError(w, r, http.StatusUnprocessableEntity, "Validation error: "+err.Error())
		return nil, false
	}

	return &req, true
}

// CreateTask handles POST /tasks.
func (h *TaskHandler) CreateTask(w http.ResponseWriter, r *http.Request) {
	req, ok := h.decodeTaskRequest(w, r)
	if !ok {
		return
	}

	task, err := h.taskService.Create(r.Context(), service.TaskInput{
		Title:       req.Title,
		Description: req.Description,
		Status:      domain.TaskStatus(req.Status),
		Priority:    domain.TaskPriority(req.Priority),
	})
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err),
			GetSafeErrorMessage(err), err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, CreateTaskResponse{
		Message: "Task created",
		TaskID:  task.ID,
	})
}

// ListTasks handles GET /tasks with optional status and priority filters.
// Filter values outside the enums are rejected before the service runs.
func (h *TaskHandler) ListTasks(w http.ResponseWriter, r *http.Request) {
	var filter store.TaskFilter

	if raw := r.URL.Query().Get("status"); raw != "" {
		status := domain.TaskStatus(raw)
		if !domain.IsValidTaskStatus(status) {
			shared.RespondWithError(w, r, http.StatusUnprocessableEntity,
				"Validation error: status must be one of pending, completed")
			return
		}
		filter.Status = &status
	}

	if raw := r.URL.Query().Get("priority"); raw != "" {
		priority := domain.TaskPriority(raw)
		if !domain.IsValidTaskPriority(priority) {
			shared.RespondWithError(w, r, http.StatusUnprocessableEntity,
				"Validation error: priority must be one of low, medium, high")
			return
		}
		filter.Priority = &priority
	}

	tasks, err := h.taskService.List(r.Context(), filter)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err),
			GetSafeErrorMessage(err), err)
		return
	}

	responses := make([]TaskResponse, 0, len(tasks))
	for _, task := range tasks {
		responses = append(responses, NewTaskResponse(task))
	}

	shared.RespondWithJSON(w, r, http.StatusOK, responses)
}

// UpdateTask handles PUT /tasks/{id}.
func (h *TaskHandler) UpdateTask(w http.ResponseWriter, r *http.Request) {
	id, ok := h.taskIDFromURL(w, r)
	if !ok {
		return
	}

	req, ok := h.decodeTaskRequest(w, r)
	if !ok {
		return
	}

	err := h.taskService.Update(r.Context(), id, service.TaskInput{
		Title:       req.Title,
		Description: req.Description,
		Status:      domain.TaskStatus(req.Status),
		Priority:    domain.TaskPriority(req.Priority),
	})
	if err != nil {
		if errors.Is(err, store.ErrTaskNotFound) {
			shared.RespondWithError(w, r, http.StatusNotFound, "Task not found")
			return
		}
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err),
			GetSafeErrorMessage(err), err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, MessageResponse{Message: "Task updated"})
}

// DeleteTask handles DELETE /tasks/{id}.
func (h *TaskHandler) DeleteTask(w http.ResponseWriter, r *http.Request) {
	id, ok := h.taskIDFromURL(w, r)
	if !ok {
		return
	}

	if err := h.taskService.Delete(r.Context(), id); err != nil {
		if errors.Is(err, store.ErrTaskNotFound) {
			shared.RespondWithError(w, r, http.StatusNotFound, "Task not found")
			return
		}
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err),
			GetSafeErrorMessage(err), err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, MessageResponse{Message: "Task deleted"})
}

// taskIDFromURL parses the {id} path parameter. An unparseable id cannot
// match any task, so it reports NotFound rather than a validation error.
func (h *TaskHandler) taskIDFromURL(
	w http.ResponseWriter,
	r *http.Request,
) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		shared.RespondWithError(w, r, http.StatusNotFound, "Task not found")
		return uuid.Nil, false
	}
	return id, true
}
