package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/phrazzld/taskboard-api/internal/config"
	"github.com/phrazzld/taskboard-api/internal/mocks"
	"github.com/phrazzld/taskboard-api/internal/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newTaskRouter wires a TaskHandler into a chi router so path parameters
// resolve the same way they do in production.
func newTaskRouter(legacy bool) (chi.Router, *mocks.MemoryCache) {
	taskStore := mocks.NewMockTaskStore()
	taskCache := mocks.NewMemoryCache()
	svc := service.NewTaskService(
		taskStore,
		taskCache,
		config.CacheConfig{TTLSeconds: 60, LegacyKeying: legacy},
		nil,
	)
	handler := NewTaskHandler(svc)

	r := chi.NewRouter()
	r.Post("/tasks", handler.CreateTask)
	r.Get("/tasks", handler.ListTasks)
	r.Put("/tasks/{id}", handler.UpdateTask)
	r.Delete("/tasks/{id}", handler.DeleteTask)
	return r, taskCache
}

func doJSON(t *testing.T, router http.Handler, method, path string, payload any) *httptest.ResponseRecorder {
	t.Helper()

	var body *bytes.Buffer
	if payload != nil {
		raw, err := json.Marshal(payload)
		require.NoError(t, err)
		body = bytes.NewBuffer(raw)
	} else {
		body = bytes.NewBuffer(nil)
	}

	req := httptest.NewRequest(method, path, body)
	req.Header.Set("Content-Type", "application/json")

	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, req)
	return recorder
}

func validTaskPayload() map[string]any {
	return map[string]any{
		"title":    "Buy milk",
		"status":   "pending",
		"priority": "low",
	}
}

func TestCreateTask(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		payload    map[string]any
		wantStatus int
	}{
		{
			name:       "valid task",
			payload:    validTaskPayload(),
			wantStatus: http.StatusOK,
		},
		{
			name: "valid task with description",
			payload: map[string]any{
				"title":       "Buy milk",
				"description": "2% from the corner shop",
				"status":      "completed",
				"priority":    "high",
			},
			wantStatus: http.StatusOK,
		},
		{
			name: "status outside the enum",
			payload: map[string]any{
				"title":    "Buy milk",
				"status":   "archived",
				"priority": "low",
			},
			wantStatus: http.StatusUnprocessableEntity,
		},
		{
			name: "priority outside the enum",
			payload: map[string]any{
				"title":    "Buy milk",
				"status":   "pending",
				"priority": "urgent",
			},
			wantStatus: http.StatusUnprocessableEntity,
		},
		{
			name: "missing title",
			payload: map[string]any{
				"status":   "pending",
				"priority": "low",
			},
			wantStatus: http.StatusUnprocessableEntity,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router, _ := newTaskRouter(false)

			recorder := doJSON(t, router, http.MethodPost, "/tasks", tt.payload)
			assert.Equal(t, tt.wantStatus, recorder.Code)

			if tt.wantStatus != http.StatusOK {
				return
			}

			var resp CreateTaskResponse
			require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &resp))
			assert.Equal(t, "Task created", resp.Message)
			assert.NotEqual(t, uuid.Nil, resp.TaskID)
		})
	}
}

func TestListTasks(t *testing.T) {
	t.Parallel()

	router, _ := newTaskRouter(false)

	created := doJSON(t, router, http.MethodPost, "/tasks", validTaskPayload())
	require.Equal(t, http.StatusOK, created.Code)

	t.Run("unfiltered", func(t *testing.T) {
		recorder := doJSON(t, router, http.MethodGet, "/tasks", nil)
		require.Equal(t, http.StatusOK, recorder.Code)

		var tasks []TaskResponse
		require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &tasks))
		require.Len(t, tasks, 1)
		assert.Equal(t, "Buy milk", tasks[0].Title)
		assert.Equal(t, "pending", tasks[0].Status)
	})

	t.Run("filter excludes non-matching", func(t *testing.T) {
		recorder := doJSON(t, router, http.MethodGet, "/tasks?status=completed", nil)
		require.Equal(t, http.StatusOK, recorder.Code)

		var tasks []TaskResponse
		require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &tasks))
		assert.Empty(t, tasks)
	})

	t.Run("invalid filter value", func(t *testing.T) {
		recorder := doJSON(t, router, http.MethodGet, "/tasks?status=archived", nil)
		assert.Equal(t, http.StatusUnprocessableEntity, recorder.Code)
	})
}

// TestListTasks_LegacyModeIgnoresFilters documents the original system's
// shared-key defect: while a cached entry exists, requests with different
// filter parameters receive identical results.
func TestListTasks_LegacyModeIgnoresFilters(t *testing.T) {
	t.Parallel()

	router, _ := newTaskRouter(true)

	require.Equal(t, http.StatusOK,
		doJSON(t, router, http.MethodPost, "/tasks", validTaskPayload()).Code)
	require.Equal(t, http.StatusOK,
		doJSON(t, router, http.MethodPost, "/tasks", map[string]any{
			"title":    "Ship release",
			"status":   "completed",
			"priority": "high",
		}).Code)

	unfiltered := doJSON(t, router, http.MethodGet, "/tasks", nil)
	require.Equal(t, http.StatusOK, unfiltered.Code)

	pendingOnly := doJSON(t, router, http.MethodGet, "/tasks?status=pending", nil)
	require.Equal(t, http.StatusOK, pendingOnly.Code)

	highOnly := doJSON(t, router, http.MethodGet, "/tasks?priority=high", nil)
	require.Equal(t, http.StatusOK, highOnly.Code)

	assert.JSONEq(t, unfiltered.Body.String(), pendingOnly.Body.String(),
		"legacy cache hit ignores status filter")
	assert.JSONEq(t, unfiltered.Body.String(), highOnly.Body.String(),
		"legacy cache hit ignores priority filter")
}

func TestUpdateTask(t *testing.T) {
	t.Parallel()

	router, taskCache := newTaskRouter(false)

	created := doJSON(t, router, http.MethodPost, "/tasks", validTaskPayload())
	require.Equal(t, http.StatusOK, created.Code)

	var createResp CreateTaskResponse
	require.NoError(t, json.Unmarshal(created.Body.Bytes(), &createResp))

	t.Run("existing task", func(t *testing.T) {
		recorder := doJSON(t, router, http.MethodPut, "/tasks/"+createResp.TaskID.String(),
			map[string]any{
				"title":    "Buy oat milk",
				"status":   "completed",
				"priority": "medium",
			})
		require.Equal(t, http.StatusOK, recorder.Code)

		listing := doJSON(t, router, http.MethodGet, "/tasks", nil)
		var tasks []TaskResponse
		require.NoError(t, json.Unmarshal(listing.Body.Bytes(), &tasks))
		require.Len(t, tasks, 1)
		assert.Equal(t, "Buy oat milk", tasks[0].Title)
	})

	t.Run("unknown id leaves cache untouched", func(t *testing.T) {
		// Populate the cache, then fail an update.
		require.Equal(t, http.StatusOK, doJSON(t, router, http.MethodGet, "/tasks", nil).Code)
		require.True(t, taskCache.Contains("tasks:any:any"))

		recorder := doJSON(t, router, http.MethodPut, "/tasks/"+uuid.NewString(),
			validTaskPayload())
		assert.Equal(t, http.StatusNotFound, recorder.Code)
		assert.True(t, taskCache.Contains("tasks:any:any"))
	})

	t.Run("invalid body", func(t *testing.T) {
		recorder := doJSON(t, router, http.MethodPut, "/tasks/"+createResp.TaskID.String(),
			map[string]any{
				"title":    "Buy oat milk",
				"status":   "archived",
				"priority": "medium",
			})
		assert.Equal(t, http.StatusUnprocessableEntity, recorder.Code)
	})
}

func TestDeleteTask(t *testing.T) {
	t.Parallel()

	router, _ := newTaskRouter(false)

	created := doJSON(t, router, http.MethodPost, "/tasks", validTaskPayload())
	require.Equal(t, http.StatusOK, created.Code)

	var createResp CreateTaskResponse
	require.NoError(t, json.Unmarshal(created.Body.Bytes(), &createResp))

	// Prime the cache so the delete has something to invalidate.
	require.Equal(t, http.StatusOK, doJSON(t, router, http.MethodGet, "/tasks", nil).Code)

	recorder := doJSON(t, router, http.MethodDelete, "/tasks/"+createResp.TaskID.String(), nil)
	require.Equal(t, http.StatusOK, recorder.Code)

	// The deleted task must not reappear from a stale cache entry.
	listing := doJSON(t, router, http.MethodGet, "/tasks", nil)
	var tasks []TaskResponse
	require.NoError(t, json.Unmarshal(listing.Body.Bytes(), &tasks))
	assert.Empty(t, tasks)

	t.Run("unknown id", func(t *testing.T) {
		recorder := doJSON(t, router, http.MethodDelete, "/tasks/"+uuid.NewString(), nil)
		assert.Equal(t, http.StatusNotFound, recorder.Code)
	})

	t.Run("malformed id", func(t *testing.T) {
		recorder := doJSON(t, router, http.MethodDelete, "/tasks/not-a-uuid", nil)
		assert.Equal(t, http.StatusNotFound, recorder.Code)
	})
}
