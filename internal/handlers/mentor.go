package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/mentormatch/apiserver/internal/services"
)

// MentorHandler serves the mentor directory.
type MentorHandler struct {
	mentorService *services.MentorService
	logger        *zap.Logger
}

func NewMentorHandler(mentorService *services.MentorService, logger *zap.Logger) *MentorHandler {
	return &MentorHandler{
		mentorService: mentorService,
		logger:        logger,
	}
}

// MentorRouter registers mentor routes on the given router.
func MentorRouter(r chi.Router, mentorService *services.MentorService, logger *zap.Logger, authMiddleware func(http.Handler) http.Handler) {
	handler := NewMentorHandler(mentorService, logger)
	r.With(authMiddleware).Get("/", handler.ListMentors)
}

func (h *MentorHandler) ListMentors(w http.ResponseWriter, r *http.Request) {
	caller, ok := userFromContext(r.Context())
	if !ok {
		writeUnauthorized(w, credentialsError)
		return
	}

	query := r.URL.Query()
	mentors, err := h.mentorService.ListMentors(r.Context(), caller, query.Get("skill"), query.Get("order_by"))
	if err != nil {
		writeServiceError(w, h.logger, err, "failed to list mentors")
		return
	}
	writeJSON(w, http.StatusOK, mentors)
}
