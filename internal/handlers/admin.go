package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/mentormatch/apiserver/internal/services"
)

// AdminHandler exposes maintenance endpoints.
type AdminHandler struct {
	adminService *services.AdminService
	logger       *zap.Logger
}

func NewAdminHandler(adminService *services.AdminService, logger *zap.Logger) *AdminHandler {
	return &AdminHandler{
		adminService: adminService,
		logger:       logger,
	}
}

// AdminRouter registers admin routes on the given router.
func AdminRouter(r chi.Router, adminService *services.AdminService, logger *zap.Logger) {
	handler := NewAdminHandler(adminService, logger)
	r.Post("/reset-database", handler.ResetDatabase)
}

// ResetDatabase wipes all data and loads the fixed seed accounts.
func (h *AdminHandler) ResetDatabase(w http.ResponseWriter, r *http.Request) {
	result, err := h.adminService.Reset(r.Context())
	if err != nil {
		h.logger.Error("database reset failed", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "Database reset failed: "+err.Error())
		return
	}
	h.logger.Info("database reset", zap.Int("mentors_created", result.MentorsCreated))
	writeJSON(w, http.StatusOK, result)
}
