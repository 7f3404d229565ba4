package handlers

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/mentormatch/apiserver/internal/services"
)

// ProfileHandler serves profile edits and profile images.
type ProfileHandler struct {
	profileService *services.ProfileService
	logger         *zap.Logger
}

func NewProfileHandler(profileService *services.ProfileService, logger *zap.Logger) *ProfileHandler {
	return &ProfileHandler{
		profileService: profileService,
		logger:         logger,
	}
}

// ProfileRouter registers the authenticated profile route.
func ProfileRouter(r chi.Router, profileService *services.ProfileService, logger *zap.Logger, authMiddleware func(http.Handler) http.Handler) {
	handler := NewProfileHandler(profileService, logger)
	r.With(authMiddleware).Put("/", handler.UpdateProfile)
}

// ImageRouter registers the public profile image route.
func ImageRouter(r chi.Router, profileService *services.ProfileService, logger *zap.Logger) {
	handler := NewProfileHandler(profileService, logger)
	r.Get("/{role}/{userID}", handler.GetImage)
}

func (h *ProfileHandler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	caller, ok := userFromContext(r.Context())
	if !ok {
		writeUnauthorized(w, credentialsError)
		return
	}

	var req services.ProfileUpdate
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request")
		return
	}

	resp, err := h.profileService.UpdateProfile(r.Context(), caller, req)
	if err != nil {
		writeServiceError(w, h.logger, err, "failed to update profile")
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

// GetImage writes the stored JPEG or redirects to a placeholder. It never fails.
func (h *ProfileHandler) GetImage(w http.ResponseWriter, r *http.Request) {
	role := chi.URLParam(r, "role")
	userID, err := parseIDParam(r, "userID")
	if err != nil {
		userID = 0
	}

	img, err := h.profileService.ProfileImage(r.Context(), role, userID)
	if err != nil {
		h.logger.Warn("profile image lookup failed", zap.Int("user_id", userID), zap.Error(err))
	}
	if img.RedirectURL != "" {
		http.Redirect(w, r, img.RedirectURL, http.StatusTemporaryRedirect)
		return
	}

	w.Header().Set("Content-Type", "image/jpeg")
	w.Header().Set("Content-Length", strconv.Itoa(len(img.Data)))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(img.Data)
}
