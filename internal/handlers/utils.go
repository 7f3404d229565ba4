package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/mentormatch/apiserver/internal/services"
	"github.com/mentormatch/apiserver/types"
)

// maxBodyBytes bounds JSON bodies; a base64 1000x1000 PNG fits comfortably.
const maxBodyBytes = 16 << 20

type contextKey string

const contextUserKey contextKey = "user"

// ErrorResponse is a simple error payload.
type ErrorResponse struct {
	Error string `json:"error"`
}

// MessageResponse is a simple acknowledgement payload.
type MessageResponse struct {
	Message string `json:"message"`
}

func withUser(ctx context.Context, user types.User) context.Context {
	return context.WithValue(ctx, contextUserKey, user)
}

func userFromContext(ctx context.Context) (types.User, bool) {
	user, ok := ctx.Value(contextUserKey).(types.User)
	return user, ok && user.ID > 0
}

func writeJSON(w http.ResponseWriter, status int, value any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(value)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, ErrorResponse{Error: message})
}

func writeUnauthorized(w http.ResponseWriter, message string) {
	w.Header().Set("WWW-Authenticate", "Bearer")
	writeError(w, http.StatusUnauthorized, message)
}

// writeServiceError maps a service error to its HTTP status. Anything without a
// known kind is logged and reported as a 500 with fallback as the message.
func writeServiceError(w http.ResponseWriter, logger *zap.Logger, err error, fallback string) {
	var svcErr *services.Error
	if errors.As(err, &svcErr) {
		message := svcErr.Message
		if message == "" {
			message = svcErr.Kind.Error()
		}
		switch {
		case errors.Is(err, services.ErrValidation), errors.Is(err, services.ErrConflict):
			writeError(w, http.StatusBadRequest, message)
			return
		case errors.Is(err, services.ErrUnauthorized):
			writeUnauthorized(w, message)
			return
		case errors.Is(err, services.ErrForbidden):
			writeError(w, http.StatusForbidden, message)
			return
		case errors.Is(err, services.ErrNotFound):
			writeError(w, http.StatusNotFound, message)
			return
		}
	}

	logger.Error(fallback, zap.Error(err))
	writeError(w, http.StatusInternalServerError, fallback)
}

func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return fmt.Errorf("invalid request body: %w", err)
	}
	return nil
}

func parseIDParam(r *http.Request, name string) (int, error) {
	raw := strings.TrimSpace(chi.URLParam(r, name))
	id, err := strconv.Atoi(raw)
	if err != nil || id < 1 {
		return 0, fmt.Errorf("invalid %s", name)
	}
	return id, nil
}
