package api

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/phrazzld/taskboard-api/internal/api/shared"
	"github.com/phrazzld/taskboard-api/internal/mocks"
	"github.com/phrazzld/taskboard-api/internal/service/auth"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newAuthHandler() (*AuthHandler, *mocks.MockUserStore) {
	userStore := mocks.NewMockUserStore()
	jwtService := &mocks.MockJWTService{Token: "test-token"}
	hasher := auth.NewBcryptHasher()
	return NewAuthHandler(userStore, jwtService, hasher, hasher), userStore
}

func postJSON(t *testing.T, handler http.HandlerFunc, path string, payload any) *httptest.ResponseRecorder {
	t.Helper()

	body, err := json.Marshal(payload)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, path, bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")

	recorder := httptest.NewRecorder()
	handler(recorder, req)
	return recorder
}

func sessionCookie(t *testing.T, recorder *httptest.ResponseRecorder) *http.Cookie {
	t.Helper()
	for _, cookie := range recorder.Result().Cookies() {
		if cookie.Name == auth.SessionCookieName {
			return cookie
		}
	}
	return nil
}

func TestRegister(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		payload    map[string]any
		wantStatus int
		wantToken  bool
	}{
		{
			name: "valid registration",
			payload: map[string]any{
				"username": "alice",
				"password": "correct horse battery staple",
			},
			wantStatus: http.StatusCreated,
			wantToken:  true,
		},
		{
			name: "missing username",
			payload: map[string]any{
				"password": "correct horse battery staple",
			},
			wantStatus: http.StatusUnprocessableEntity,
		},
		{
			name: "missing password",
			payload: map[string]any{
				"username": "bob",
			},
			wantStatus: http.StatusUnprocessableEntity,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler, _ := newAuthHandler()

			recorder := postJSON(t, handler.Register, "/register", tt.payload)
			assert.Equal(t, tt.wantStatus, recorder.Code)

			if !tt.wantToken {
				assert.Nil(t, sessionCookie(t, recorder))
				return
			}

			var resp AuthResponse
			require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &resp))
			assert.Equal(t, "User registered successfully", resp.Message)
			assert.Equal(t, "test-token", resp.AccessToken)

			cookie := sessionCookie(t, recorder)
			require.NotNil(t, cookie)
			assert.Equal(t, "test-token", cookie.Value)
			assert.True(t, cookie.HttpOnly)
			assert.Equal(t, http.SameSiteLaxMode, cookie.SameSite)
			assert.Equal(t, 3600, cookie.MaxAge)
		})
	}
}

func TestRegister_DuplicateUsername(t *testing.T) {
	t.Parallel()

	handler, _ := newAuthHandler()
	payload := map[string]any{
		"username": "alice",
		"password": "correct horse battery staple",
	}

	first := postJSON(t, handler.Register, "/register", payload)
	require.Equal(t, http.StatusCreated, first.Code)

	second := postJSON(t, handler.Register, "/register", payload)
	assert.Equal(t, http.StatusBadRequest, second.Code)

	var resp shared.ErrorResponse
	require.NoError(t, json.Unmarshal(second.Body.Bytes(), &resp))
	assert.Equal(t, "Username already exists", resp.Detail)
}

func TestRegister_NeverStoresPlaintext(t *testing.T) {
	t.Parallel()

	handler, userStore := newAuthHandler()

	recorder := postJSON(t, handler.Register, "/register", map[string]any{
		"username": "alice",
		"password": "correct horse battery staple",
	})
	require.Equal(t, http.StatusCreated, recorder.Code)

	stored, err := userStore.GetByUsername(context.Background(), "alice")
	require.NoError(t, err)
	assert.Empty(t, stored.Password)
	assert.NotEmpty(t, stored.HashedPassword)
	assert.NotEqual(t, "correct horse battery staple", stored.HashedPassword)
}

func TestLogin(t *testing.T) {
	t.Parallel()

	handler, _ := newAuthHandler()

	register := postJSON(t, handler.Register, "/register", map[string]any{
		"username": "alice",
		"password": "correct horse battery staple",
	})
	require.Equal(t, http.StatusCreated, register.Code)

	tests := []struct {
		name       string
		payload    map[string]any
		wantStatus int
	}{
		{
			name: "valid credentials",
			payload: map[string]any{
				"username": "alice",
				"password": "correct horse battery staple",
			},
			wantStatus: http.StatusCreated,
		},
		{
			name: "wrong password",
			payload: map[string]any{
				"username": "alice",
				"password": "wrong password",
			},
			wantStatus: http.StatusUnauthorized,
		},
		{
			name: "unknown username",
			payload: map[string]any{
				"username": "mallory",
				"password": "correct horse battery staple",
			},
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "missing fields",
			payload:    map[string]any{},
			wantStatus: http.StatusUnprocessableEntity,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			recorder := postJSON(t, handler.Login, "/login", tt.payload)
			assert.Equal(t, tt.wantStatus, recorder.Code)

			if tt.wantStatus == http.StatusCreated {
				cookie := sessionCookie(t, recorder)
				require.NotNil(t, cookie)
				assert.Equal(t, "test-token", cookie.Value)
			}
		})
	}
}

func TestLogin_SameResponseForUnknownUserAndWrongPassword(t *testing.T) {
	t.Parallel()

	handler, _ := newAuthHandler()

	register := postJSON(t, handler.Register, "/register", map[string]any{
		"username": "alice",
		"password": "correct horse battery staple",
	})
	require.Equal(t, http.StatusCreated, register.Code)

	wrongPassword := postJSON(t, handler.Login, "/login", map[string]any{
		"username": "alice",
		"password": "nope",
	})
	unknownUser := postJSON(t, handler.Login, "/login", map[string]any{
		"username": "mallory",
		"password": "nope",
	})

	assert.Equal(t, wrongPassword.Code, unknownUser.Code)
	assert.JSONEq(t, wrongPassword.Body.String(), unknownUser.Body.String())
}

func TestLogout(t *testing.T) {
	t.Parallel()

	handler, _ := newAuthHandler()

	req := httptest.NewRequest(http.MethodPost, "/logout", nil)
	recorder := httptest.NewRecorder()
	handler.Logout(recorder, req)

	assert.Equal(t, http.StatusOK, recorder.Code)

	cookie := sessionCookie(t, recorder)
	require.NotNil(t, cookie)
	assert.Empty(t, cookie.Value)
	assert.Negative(t, cookie.MaxAge)
}

func TestGetUser(t *testing.T) {
	t.Parallel()

	handler, _ := newAuthHandler()

	register := postJSON(t, handler.Register, "/register", map[string]any{
		"username": "alice",
		"password": "correct horse battery staple",
	})
	require.Equal(t, http.StatusCreated, register.Code)

	t.Run("known user", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/user", nil)
		ctx := context.WithValue(req.Context(), shared.UsernameContextKey, "alice")
		recorder := httptest.NewRecorder()
		handler.GetUser(recorder, req.WithContext(ctx))

		assert.Equal(t, http.StatusOK, recorder.Code)

		var resp MessageResponse
		require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &resp))
		assert.Equal(t, "Hello alice, welcome back!", resp.Message)
	})

	t.Run("token subject no longer exists", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/user", nil)
		ctx := context.WithValue(req.Context(), shared.UsernameContextKey, "ghost")
		recorder := httptest.NewRecorder()
		handler.GetUser(recorder, req.WithContext(ctx))

		assert.Equal(t, http.StatusOK, recorder.Code)

		var resp MessageResponse
		require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &resp))
		assert.Equal(t, "User not found", resp.Message)
	})

	t.Run("no username in context", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/user", nil)
		recorder := httptest.NewRecorder()
		handler.GetUser(recorder, req)

		assert.Equal(t, http.StatusUnauthorized, recorder.Code)
	})
}
