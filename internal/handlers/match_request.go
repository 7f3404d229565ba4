package handlers

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/mentormatch/apiserver/internal/services"
	"github.com/mentormatch/apiserver/types"
)

// MatchRequestHandler serves the match request lifecycle.
type MatchRequestHandler struct {
	matchService *services.MatchService
	logger       *zap.Logger
}

func NewMatchRequestHandler(matchService *services.MatchService, logger *zap.Logger) *MatchRequestHandler {
	return &MatchRequestHandler{
		matchService: matchService,
		logger:       logger,
	}
}

// MatchRequestRouter registers match request routes. Every route requires auth.
func MatchRequestRouter(r chi.Router, matchService *services.MatchService, logger *zap.Logger, authMiddleware func(http.Handler) http.Handler) {
	handler := NewMatchRequestHandler(matchService, logger)

	r.Group(func(r chi.Router) {
		r.Use(authMiddleware)
		r.Post("/", handler.CreateRequest)
		r.Get("/incoming", handler.ListIncoming)
		r.Get("/outgoing", handler.ListOutgoing)
		r.Route("/{requestID}", func(r chi.Router) {
			r.Put("/accept", handler.transition(matchService.Accept, "failed to accept request"))
			r.Put("/reject", handler.transition(matchService.Reject, "failed to reject request"))
			r.Delete("/", handler.transition(matchService.Cancel, "failed to cancel request"))
		})
	})
}

type CreateMatchRequest struct {
	MentorID int    `json:"mentorId"`
	Message  string `json:"message"`
}

func (h *MatchRequestHandler) CreateRequest(w http.ResponseWriter, r *http.Request) {
	caller, ok := userFromContext(r.Context())
	if !ok {
		writeUnauthorized(w, credentialsError)
		return
	}

	var req CreateMatchRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request")
		return
	}

	created, err := h.matchService.CreateRequest(r.Context(), caller, req.MentorID, req.Message)
	if err != nil {
		writeServiceError(w, h.logger, err, "failed to create request")
		return
	}
	writeJSON(w, http.StatusOK, created)
}

func (h *MatchRequestHandler) ListIncoming(w http.ResponseWriter, r *http.Request) {
	h.list(w, r, h.matchService.ListIncoming, "failed to list incoming requests")
}

func (h *MatchRequestHandler) ListOutgoing(w http.ResponseWriter, r *http.Request) {
	h.list(w, r, h.matchService.ListOutgoing, "failed to list outgoing requests")
}

func (h *MatchRequestHandler) list(
	w http.ResponseWriter,
	r *http.Request,
	fetch func(context.Context, types.User) ([]types.MatchRequest, error),
	fallback string,
) {
	caller, ok := userFromContext(r.Context())
	if !ok {
		writeUnauthorized(w, credentialsError)
		return
	}

	requests, err := fetch(r.Context(), caller)
	if err != nil {
		writeServiceError(w, h.logger, err, fallback)
		return
	}
	writeJSON(w, http.StatusOK, requests)
}

func (h *MatchRequestHandler) transition(
	apply func(context.Context, types.User, int) (types.MatchRequest, error),
	fallback string,
) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		caller, ok := userFromContext(r.Context())
		if !ok {
			writeUnauthorized(w, credentialsError)
			return
		}

		id, err := parseIDParam(r, "requestID")
		if err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}

		updated, err := apply(r.Context(), caller, id)
		if err != nil {
			writeServiceError(w, h.logger, err, fallback)
			return
		}
		writeJSON(w, http.StatusOK, updated)
	}
}
