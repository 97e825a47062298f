package api

import (
	"time"

	"github.com/google/uuid"
	"github.com/phrazzld/taskboard-api/internal/domain"
)

// Common request/response structures

// CredentialsRequest defines the payload for the registration and login
// endpoints.
type CredentialsRequest struct {
	Username string `json:"username" validate:"required,max=64"`
	Password string `json:"password" validate:"required,max=72"`
}

// AuthResponse defines the successful response for authentication endpoints.
// The token is also set as an HTTP-only cookie; the body copy mirrors the
// original API's contract.
type AuthResponse struct {
	Message     string `json:"message"`
	AccessToken string `json:"access_token"`
}

// MessageResponse defines a plain informational response body.
type MessageResponse struct {
	Message string `json:"message"`
}

// TaskRequest defines the payload for creating or updating a task.
// Status and priority must be one of the enumerated values; anything else
// is rejected at the boundary before reaching storage.
type TaskRequest struct {
	Title       string  `json:"title"       validate:"required"`
	Description *string `json:"description,omitempty"`
	Status      string  `json:"status"      validate:"required,oneof=pending completed"`
	Priority    string  `json:"priority"    validate:"required,oneof=low medium high"`
}

// CreateTaskResponse defines the successful response for task creation.
type CreateTaskResponse struct {
	Message string    `json:"message"`
	TaskID  uuid.UUID `json:"task_id"`
}

// TaskResponse defines a single task in listing responses. Identifiers and
// timestamps serialize to portable string form.
type TaskResponse struct {
	ID          uuid.UUID `json:"id"`
	Title       string    `json:"title"`
	Description *string   `json:"description,omitempty"`
	Status      string    `json:"status"`
	Priority    string    `json:"priority"`
	CreatedAt   time.Time `json:"created_at"`
}

// NewTaskResponse converts a domain task to its API representation.
func NewTaskResponse(task domain.Task) TaskResponse {
	return TaskResponse{
		ID:          task.ID,
		Title:       task.Title,
		Description: task.Description,
		Status:      string(task.Status),
		Priority:    string(task.Priority),
		CreatedAt:   task.CreatedAt,
	}
}
