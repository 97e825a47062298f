package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/phrazzld/taskboard-api/internal/mocks"
	"github.com/phrazzld/taskboard-api/internal/service/auth"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func protectedEndpoint(t *testing.T, jwtService *mocks.MockJWTService) http.Handler {
	t.Helper()

	m := NewAuthMiddleware(jwtService)
	return m.Authenticate(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		username, ok := GetUsername(r)
		require.True(t, ok)
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(username))
	}))
}

func TestAuthenticate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		cookie     *http.Cookie
		jwtService *mocks.MockJWTService
		wantStatus int
		wantBody   string
	}{
		{
			name:       "valid token",
			cookie:     &http.Cookie{Name: auth.SessionCookieName, Value: "good-token"},
			jwtService: &mocks.MockJWTService{Claims: &auth.Claims{Subject: "alice"}},
			wantStatus: http.StatusOK,
			wantBody:   "alice",
		},
		{
			name:       "missing cookie",
			cookie:     nil,
			jwtService: &mocks.MockJWTService{},
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "empty cookie value",
			cookie:     &http.Cookie{Name: auth.SessionCookieName, Value: ""},
			jwtService: &mocks.MockJWTService{},
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "expired token",
			cookie:     &http.Cookie{Name: auth.SessionCookieName, Value: "old-token"},
			jwtService: &mocks.MockJWTService{Err: auth.ErrExpiredToken},
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "invalid token",
			cookie:     &http.Cookie{Name: auth.SessionCookieName, Value: "junk"},
			jwtService: &mocks.MockJWTService{Err: auth.ErrInvalidToken},
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "unexpected validation failure",
			cookie:     &http.Cookie{Name: auth.SessionCookieName, Value: "token"},
			jwtService: &mocks.MockJWTService{Err: assert.AnError},
			wantStatus: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := protectedEndpoint(t, tt.jwtService)

			req := httptest.NewRequest(http.MethodGet, "/user", nil)
			if tt.cookie != nil {
				req.AddCookie(tt.cookie)
			}

			recorder := httptest.NewRecorder()
			handler.ServeHTTP(recorder, req)

			assert.Equal(t, tt.wantStatus, recorder.Code)
			if tt.wantBody != "" {
				assert.Equal(t, tt.wantBody, recorder.Body.String())
			}
		})
	}
}

func TestAuthenticate_ErrorDetailDistinguishesExpiry(t *testing.T) {
	t.Parallel()

	expired := protectedEndpoint(t, &mocks.MockJWTService{Err: auth.ErrExpiredToken})
	invalid := protectedEndpoint(t, &mocks.MockJWTService{Err: auth.ErrInvalidToken})

	reqExpired := httptest.NewRequest(http.MethodGet, "/user", nil)
	reqExpired.AddCookie(&http.Cookie{Name: auth.SessionCookieName, Value: "t"})
	recExpired := httptest.NewRecorder()
	expired.ServeHTTP(recExpired, reqExpired)

	reqInvalid := httptest.NewRequest(http.MethodGet, "/user", nil)
	reqInvalid.AddCookie(&http.Cookie{Name: auth.SessionCookieName, Value: "t"})
	recInvalid := httptest.NewRecorder()
	invalid.ServeHTTP(recInvalid, reqInvalid)

	assert.Contains(t, recExpired.Body.String(), "Token expired")
	assert.Contains(t, recInvalid.Body.String(), "Invalid token")
}

func TestGetUsername_AbsentFromContext(t *testing.T) {
	t.Parallel()

	req := httptest.NewRequest(http.MethodGet, "/user", nil)
	username, ok := GetUsername(req)
	assert.False(t, ok)
	assert.Empty(t, username)
}
