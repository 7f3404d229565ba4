package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/mentormatch/apiserver/internal/store"
	"github.com/mentormatch/apiserver/types"
)

// MatchRequestRepository defines persistence operations for match requests.
type MatchRequestRepository interface {
	Get(ctx context.Context, id int) (types.MatchRequest, error)
	Create(ctx context.Context, req types.MatchRequest) (types.MatchRequest, error)
	UpdateStatus(ctx context.Context, id int, status types.RequestStatus) (types.MatchRequest, error)
	ListByMentor(ctx context.Context, mentorID int) ([]types.MatchRequest, error)
	ListByMentee(ctx context.Context, menteeID int) ([]types.MatchRequest, error)
	MenteeHasStatus(ctx context.Context, menteeID int, status types.RequestStatus) (bool, error)
	MentorHasOtherWithStatus(ctx context.Context, mentorID, excludeID int, status types.RequestStatus) (bool, error)
}

// MatchService runs the match request lifecycle:
//
//	pending -> accepted | rejected   (mentor)
//	pending -> cancelled             (mentee)
//
// A mentee holds at most one pending request and a mentor at most one accepted
// request. Reject and cancel do not inspect the current status.
type MatchService struct {
	requests MatchRequestRepository
	users    UserRepository
}

func NewMatchService(requests MatchRequestRepository, users UserRepository) *MatchService {
	return &MatchService{requests: requests, users: users}
}

// CreateRequest records a pending request from mentee to mentorID.
func (s *MatchService) CreateRequest(ctx context.Context, mentee types.User, mentorID int, message string) (types.MatchRequest, error) {
	if !mentee.IsMentee() {
		return types.MatchRequest{}, forbiddenError("Only mentees can create match requests")
	}

	mentor, err := s.users.GetByID(ctx, mentorID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return types.MatchRequest{}, notFoundError("Mentor not found")
		}
		return types.MatchRequest{}, fmt.Errorf("load mentor: %w", err)
	}
	if !mentor.IsMentor() {
		return types.MatchRequest{}, notFoundError("Mentor not found")
	}

	pending, err := s.requests.MenteeHasStatus(ctx, mentee.ID, types.StatusPending)
	if err != nil {
		return types.MatchRequest{}, fmt.Errorf("check pending requests: %w", err)
	}
	if pending {
		return types.MatchRequest{}, conflictError("You already have a pending request")
	}

	created, err := s.requests.Create(ctx, types.MatchRequest{
		MentorID: mentor.ID,
		MenteeID: mentee.ID,
		Message:  message,
		Status:   types.StatusPending,
	})
	if err != nil {
		if errors.Is(err, store.ErrConflict) {
			return types.MatchRequest{}, conflictError("You already have a pending request")
		}
		return types.MatchRequest{}, fmt.Errorf("create match request: %w", err)
	}
	return created, nil
}

// ListIncoming returns every request addressed to mentor.
func (s *MatchService) ListIncoming(ctx context.Context, mentor types.User) ([]types.MatchRequest, error) {
	if !mentor.IsMentor() {
		return nil, forbiddenError("Only mentors can view incoming requests")
	}
	return s.requests.ListByMentor(ctx, mentor.ID)
}

// ListOutgoing returns every request sent by mentee.
func (s *MatchService) ListOutgoing(ctx context.Context, mentee types.User) ([]types.MatchRequest, error) {
	if !mentee.IsMentee() {
		return nil, forbiddenError("Only mentees can view outgoing requests")
	}
	return s.requests.ListByMentee(ctx, mentee.ID)
}

// Accept marks requestID accepted. Accepting the mentor's already accepted request is a no-op success.
func (s *MatchService) Accept(ctx context.Context, mentor types.User, requestID int) (types.MatchRequest, error) {
	if !mentor.IsMentor() {
		return types.MatchRequest{}, forbiddenError("Only mentors can accept requests")
	}
	req, err := s.ownedByMentor(ctx, mentor, requestID)
	if err != nil {
		return types.MatchRequest{}, err
	}

	taken, err := s.requests.MentorHasOtherWithStatus(ctx, mentor.ID, req.ID, types.StatusAccepted)
	if err != nil {
		return types.MatchRequest{}, fmt.Errorf("check accepted requests: %w", err)
	}
	if taken {
		return types.MatchRequest{}, conflictError("You can only accept one request at a time")
	}

	return s.setStatus(ctx, req.ID, types.StatusAccepted, "You can only accept one request at a time")
}

// Reject marks requestID rejected regardless of its current status.
func (s *MatchService) Reject(ctx context.Context, mentor types.User, requestID int) (types.MatchRequest, error) {
	if !mentor.IsMentor() {
		return types.MatchRequest{}, forbiddenError("Only mentors can reject requests")
	}
	req, err := s.ownedByMentor(ctx, mentor, requestID)
	if err != nil {
		return types.MatchRequest{}, err
	}
	return s.setStatus(ctx, req.ID, types.StatusRejected, "")
}

// Cancel marks requestID cancelled regardless of its current status.
func (s *MatchService) Cancel(ctx context.Context, mentee types.User, requestID int) (types.MatchRequest, error) {
	if !mentee.IsMentee() {
		return types.MatchRequest{}, forbiddenError("Only mentees can cancel requests")
	}

	req, err := s.requests.Get(ctx, requestID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return types.MatchRequest{}, notFoundError("Request not found")
		}
		return types.MatchRequest{}, fmt.Errorf("load match request: %w", err)
	}
	if req.MenteeID != mentee.ID {
		return types.MatchRequest{}, notFoundError("Request not found")
	}
	return s.setStatus(ctx, req.ID, types.StatusCancelled, "")
}

func (s *MatchService) ownedByMentor(ctx context.Context, mentor types.User, requestID int) (types.MatchRequest, error) {
	req, err := s.requests.Get(ctx, requestID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return types.MatchRequest{}, notFoundError("Request not found")
		}
		return types.MatchRequest{}, fmt.Errorf("load match request: %w", err)
	}
	if req.MentorID != mentor.ID {
		return types.MatchRequest{}, notFoundError("Request not found")
	}
	return req, nil
}

func (s *MatchService) setStatus(ctx context.Context, id int, status types.RequestStatus, conflictMsg string) (types.MatchRequest, error) {
	updated, err := s.requests.UpdateStatus(ctx, id, status)
	if err != nil {
		switch {
		case errors.Is(err, store.ErrNotFound):
			return types.MatchRequest{}, notFoundError("Request not found")
		case errors.Is(err, store.ErrConflict) && conflictMsg != "":
			return types.MatchRequest{}, conflictError(conflictMsg)
		}
		return types.MatchRequest{}, fmt.Errorf("update match request: %w", err)
	}
	return updated, nil
}
