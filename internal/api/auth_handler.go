package api

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/phrazzld/taskboard-api/internal/api/middleware"
	"github.com/phrazzld/taskboard-api/internal/api/shared"
	"github.com/phrazzld/taskboard-api/internal/domain"
	"github.com/phrazzld/taskboard-api/internal/service/auth"
	"github.com/phrazzld/taskboard-api/internal/store"
)

// AuthHandler handles authentication-related API requests.
type AuthHandler struct {
	userStore      store.UserStore
	jwtService     auth.JWTService
	passwordHasher auth.PasswordHasher
	passwordVerify auth.PasswordVerifier
	validator      *validator.Validate
}

// NewAuthHandler creates a new AuthHandler with the given dependencies.
func NewAuthHandler(
	userStore store.UserStore,
	jwtService auth.JWTService,
	hasher auth.PasswordHasher,
	verifier auth.PasswordVerifier,
) *AuthHandler {
	return &AuthHandler{
		userStore:      userStore,
		jwtService:     jwtService,
		passwordHasher: hasher,
		passwordVerify: verifier,
		validator:      validator.New(),
	}
}

// Register handles POST /register.
// It stores a bcrypt hash of the password, never the plaintext, and on
// success issues a session token both in the body and as an HTTP-only
// cookie. The username existence check and insert are not transactional;
// the unique index on usernames is the backstop under concurrency.
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req CredentialsRequest

	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusUnprocessableEntity, "Invalid request format")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		shared.RespondWithError(w, r, http.StatusUnprocessableEntity, "Validation error: "+err.Error())
		return
	}

	// Check-then-insert, matching the documented registration flow.
	if _, err := h.userStore.GetByUsername(r.Context(), req.Username); err == nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Username already exists")
		return
	} else if !errors.Is(err, store.ErrUserNotFound) {
		shared.RespondWithErrorAndLog(w, r, http.StatusInternalServerError,
			"Failed to register user", err)
		return
	}

	user, err := domain.NewUser(req.Username, req.Password)
	if err != nil {
		shared.RespondWithError(w, r, http.StatusUnprocessableEntity, "Invalid user data: "+err.Error())
		return
	}

	hashed, err := h.passwordHasher.Hash(req.Password)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusInternalServerError,
			"Failed to register user", err)
		return
	}
	user.HashedPassword = hashed
	user.Password = ""

	if err := h.userStore.Create(r.Context(), user); err != nil {
		if errors.Is(err, store.ErrUsernameExists) {
			shared.RespondWithError(w, r, http.StatusBadRequest, "Username already exists")
			return
		}
		shared.RespondWithErrorAndLog(w, r, http.StatusInternalServerError,
			"Failed to register user", err)
		return
	}

	token, err := h.jwtService.GenerateToken(r.Context(), user.Username)
	if err != nil {
		slog.Error("failed to generate token", "error", err, "username", user.Username)
		shared.RespondWithError(w, r, http.StatusInternalServerError,
			"Failed to generate authentication token")
		return
	}

	auth.SetSessionCookie(w, token, h.jwtService.TokenLifetime())

	shared.RespondWithJSON(w, r, http.StatusCreated, AuthResponse{
		Message:     "User registered successfully",
		AccessToken: token,
	})
}

// Login handles POST /login.
// Unknown usernames and wrong passwords produce the same response so the
// two cases cannot be distinguished by a caller.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req CredentialsRequest

	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusUnprocessableEntity, "Invalid request format")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		shared.RespondWithError(w, r, http.StatusUnprocessableEntity, "Validation error: "+err.Error())
		return
	}

	user, err := h.userStore.GetByUsername(r.Context(), req.Username)
	if err != nil {
		if errors.Is(err, store.ErrUserNotFound) {
			shared.RespondWithError(w, r, http.StatusUnauthorized, "Invalid credentials")
			return
		}
		shared.RespondWithErrorAndLog(w, r, http.StatusInternalServerError,
			"Failed to authenticate user", err)
		return
	}

	if err := h.passwordVerify.Compare(user.HashedPassword, req.Password); err != nil {
		shared.RespondWithError(w, r, http.StatusUnauthorized, "Invalid credentials")
		return
	}

	token, err := h.jwtService.GenerateToken(r.Context(), user.Username)
	if err != nil {
		slog.Error("failed to generate token", "error", err, "username", user.Username)
		shared.RespondWithError(w, r, http.StatusInternalServerError,
			"Failed to generate authentication token")
		return
	}

	auth.SetSessionCookie(w, token, h.jwtService.TokenLifetime())

	shared.RespondWithJSON(w, r, http.StatusCreated, AuthResponse{
		Message:     "User logged in successfully",
		AccessToken: token,
	})
}

// Logout handles POST /logout.
// It clears the session cookie; the token itself remains valid until its
// expiry since tokens are stateless.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	auth.ClearSessionCookie(w)

	shared.RespondWithJSON(w, r, http.StatusOK, MessageResponse{
		Message: "Logged out successfully",
	})
}

// GetUser handles GET /user.
// The authentication middleware has already validated the cookie and put
// the username into the context.
func (h *AuthHandler) GetUser(w http.ResponseWriter, r *http.Request) {
	username, ok := middleware.GetUsername(r)
	if !ok {
		shared.RespondWithError(w, r, http.StatusUnauthorized, "Not authenticated")
		return
	}

	if _, err := h.userStore.GetByUsername(r.Context(), username); err != nil {
		if errors.Is(err, store.ErrUserNotFound) {
			// The original API reports a missing user with a 200 body.
			shared.RespondWithJSON(w, r, http.StatusOK, MessageResponse{
				Message: "User not found",
			})
			return
		}
		shared.RespondWithErrorAndLog(w, r, http.StatusInternalServerError,
			"Failed to look up user", err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, MessageResponse{
		Message: "Hello " + username + ", welcome back!",
	})
}
