package types

import "time"

// RequestStatus is the lifecycle state of a MatchRequest.
type RequestStatus string

const (
	StatusPending   RequestStatus = "pending"
	StatusAccepted  RequestStatus = "accepted"
	StatusRejected  RequestStatus = "rejected"
	StatusCancelled RequestStatus = "cancelled"
)

// MatchRequest is a proposal from a mentee to a mentor.
type MatchRequest struct {
	// ID is the unique identifier of the request.
	ID int `json:"id" db:"id"`

	// MentorID references the addressed mentor.
	MentorID int `json:"mentorId" db:"mentor_id"`

	// MenteeID references the mentee who sent the request.
	MenteeID int `json:"menteeId" db:"mentee_id"`

	// Message is the free-text note attached by the mentee.
	Message string `json:"message" db:"message"`

	// Status is the current lifecycle state.
	Status RequestStatus `json:"status" db:"status"`

	CreatedAt time.Time `json:"-" db:"created_at"`
	UpdatedAt time.Time `json:"-" db:"updated_at"`
}
