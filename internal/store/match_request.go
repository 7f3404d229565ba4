package store

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/mentormatch/apiserver/types"
)

const matchRequestColumns = `id, mentor_id, mentee_id, message, status, created_at, updated_at`

// MatchRequestRepository handles persistence for match requests.
type MatchRequestRepository struct {
	db *sql.DB
}

func NewMatchRequestRepository(db *sql.DB) *MatchRequestRepository {
	return &MatchRequestRepository{db: db}
}

func scanMatchRequest(row rowScanner) (types.MatchRequest, error) {
	var req types.MatchRequest
	err := row.Scan(
		&req.ID,
		&req.MentorID,
		&req.MenteeID,
		&req.Message,
		&req.Status,
		&req.CreatedAt,
		&req.UpdatedAt,
	)
	return req, err
}

func (r *MatchRequestRepository) Get(ctx context.Context, id int) (types.MatchRequest, error) {
	const query = `SELECT ` + matchRequestColumns + ` FROM match_requests WHERE id = $1`
	req, err := scanMatchRequest(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return types.MatchRequest{}, ErrNotFound
		}
		return types.MatchRequest{}, err
	}
	return req, nil
}

// Create inserts req. A second pending request for the same mentee fails with ErrConflict.
func (r *MatchRequestRepository) Create(ctx context.Context, req types.MatchRequest) (types.MatchRequest, error) {
	now := time.Now()
	req.CreatedAt = now
	req.UpdatedAt = now

	const query = `
		INSERT INTO match_requests (mentor_id, mentee_id, message, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id`
	if err := r.db.QueryRowContext(
		ctx,
		query,
		req.MentorID,
		req.MenteeID,
		req.Message,
		req.Status,
		req.CreatedAt,
		req.UpdatedAt,
	).Scan(&req.ID); err != nil {
		return types.MatchRequest{}, mapWriteError(err)
	}
	return req, nil
}

// UpdateStatus sets the status of request id. A second accepted request for the same
// mentor fails with ErrConflict.
func (r *MatchRequestRepository) UpdateStatus(ctx context.Context, id int, status types.RequestStatus) (types.MatchRequest, error) {
	const query = `
		UPDATE match_requests
		SET status = $1,
			updated_at = $2
		WHERE id = $3
		RETURNING ` + matchRequestColumns
	req, err := scanMatchRequest(r.db.QueryRowContext(ctx, query, status, time.Now(), id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return types.MatchRequest{}, ErrNotFound
		}
		return types.MatchRequest{}, mapWriteError(err)
	}
	return req, nil
}

func (r *MatchRequestRepository) ListByMentor(ctx context.Context, mentorID int) ([]types.MatchRequest, error) {
	const query = `SELECT ` + matchRequestColumns + ` FROM match_requests WHERE mentor_id = $1 ORDER BY id`
	return r.list(ctx, query, mentorID)
}

func (r *MatchRequestRepository) ListByMentee(ctx context.Context, menteeID int) ([]types.MatchRequest, error) {
	const query = `SELECT ` + matchRequestColumns + ` FROM match_requests WHERE mentee_id = $1 ORDER BY id`
	return r.list(ctx, query, menteeID)
}

// MenteeHasStatus reports whether the mentee has any request in status.
func (r *MatchRequestRepository) MenteeHasStatus(ctx context.Context, menteeID int, status types.RequestStatus) (bool, error) {
	const query = `SELECT EXISTS (SELECT 1 FROM match_requests WHERE mentee_id = $1 AND status = $2)`
	var exists bool
	if err := r.db.QueryRowContext(ctx, query, menteeID, status).Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}

// MentorHasOtherWithStatus reports whether the mentor has a request other than excludeID in status.
func (r *MatchRequestRepository) MentorHasOtherWithStatus(ctx context.Context, mentorID, excludeID int, status types.RequestStatus) (bool, error) {
	const query = `SELECT EXISTS (SELECT 1 FROM match_requests WHERE mentor_id = $1 AND status = $2 AND id <> $3)`
	var exists bool
	if err := r.db.QueryRowContext(ctx, query, mentorID, status, excludeID).Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}

func (r *MatchRequestRepository) list(ctx context.Context, query string, arg any) ([]types.MatchRequest, error) {
	rows, err := r.db.QueryContext(ctx, query, arg)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	requests := make([]types.MatchRequest, 0)
	for rows.Next() {
		req, err := scanMatchRequest(rows)
		if err != nil {
			return nil, err
		}
		requests = append(requests, req)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return requests, nil
}
