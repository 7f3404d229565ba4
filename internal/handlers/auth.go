package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/mentormatch/apiserver/internal/services"
	"github.com/mentormatch/apiserver/types"
)

const credentialsError = "Could not validate credentials"

// AuthHandler provides signup, login and identity endpoints.
type AuthHandler struct {
	userService *services.UserService
	logger      *zap.Logger
}

// NewAuthHandler constructs an AuthHandler with the provided dependencies.
func NewAuthHandler(userService *services.UserService, logger *zap.Logger) *AuthHandler {
	return &AuthHandler{
		userService: userService,
		logger:      logger,
	}
}

// AuthRouter registers auth routes on the given router.
func AuthRouter(r chi.Router, userService *services.UserService, logger *zap.Logger) {
	handler := NewAuthHandler(userService, logger)

	r.Post("/signup", handler.Signup)
	r.Post("/login", handler.Login)
	r.With(handler.RequireAuth).Get("/me", handler.Me)
}

// RequireAuth enforces bearer authentication and injects the user into context.
func (h *AuthHandler) RequireAuth(next http.Handler) http.Handler {
	return RequireAuth(h.userService, h.logger)(next)
}

// RequireAuth constructs auth middleware for other routers.
func RequireAuth(userService *services.UserService, logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, err := bearerToken(r)
			if err != nil {
				writeUnauthorized(w, credentialsError)
				return
			}

			user, err := userService.Authenticate(r.Context(), token)
			if err != nil {
				writeServiceError(w, logger, err, "failed to authenticate")
				return
			}

			next.ServeHTTP(w, r.WithContext(withUser(r.Context(), user)))
		})
	}
}

// Signup creates a new user account.
func (h *AuthHandler) Signup(w http.ResponseWriter, r *http.Request) {
	var req services.SignupInput
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request")
		return
	}

	if _, err := h.userService.Signup(r.Context(), req); err != nil {
		writeServiceError(w, h.logger, err, "failed to create user")
		return
	}

	writeJSON(w, http.StatusCreated, MessageResponse{Message: "User created successfully"})
}

// Login verifies credentials and returns a signed token.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request")
		return
	}

	token, err := h.userService.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		writeServiceError(w, h.logger, err, "failed to authenticate")
		return
	}

	writeJSON(w, http.StatusOK, TokenResponse{Token: token})
}

// Me returns the current authenticated user.
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	user, ok := userFromContext(r.Context())
	if !ok {
		writeUnauthorized(w, credentialsError)
		return
	}
	writeJSON(w, http.StatusOK, types.NewUserResponse(user))
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type TokenResponse struct {
	Token string `json:"token"`
}

func bearerToken(r *http.Request) (string, error) {
	auth := strings.TrimSpace(r.Header.Get("Authorization"))
	if auth == "" {
		return "", errors.New("missing authorization")
	}
	parts := strings.SplitN(auth, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return "", errors.New("invalid authorization")
	}
	token := strings.TrimSpace(parts[1])
	if token == "" {
		return "", errors.New("invalid authorization")
	}
	return token, nil
}
