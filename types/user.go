package types

import (
	"fmt"
	"time"
)

// Role is the closed set of account kinds. It is fixed when the account is created.
type Role string

const (
	RoleMentor Role = "mentor"
	RoleMentee Role = "mentee"
)

// User represents an account in the system.
// It contains identity, role, profile and audit metadata.
type User struct {
	// ID is the unique identifier of the user.
	ID int `json:"id" db:"id"`

	// Email is the user's unique login address.
	Email string `json:"email" db:"email"`

	// PasswordHash stores the bcrypt digest of the user's password.
	// This field is never exposed in API responses.
	PasswordHash string `json:"-" db:"password_hash"`

	// Role is either mentor or mentee.
	Role Role `json:"role" db:"role"`

	// Name is the user's display name.
	Name string `json:"name" db:"name"`

	// Bio is free-form profile text.
	Bio string `json:"bio" db:"bio"`

	// Skills holds the serialized skill list (see EncodeSkills).
	// Only meaningful for mentors.
	Skills string `json:"-" db:"skills"`

	// CreatedAt is the timestamp when the account was created.
	CreatedAt time.Time `json:"created_at" db:"created_at"`

	// UpdatedAt is the timestamp of the most recent profile update.
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

// IsMentor reports whether the user has the mentor role.
func (u User) IsMentor() bool {
	return u.Role == RoleMentor
}

// IsMentee reports whether the user has the mentee role.
func (u User) IsMentee() bool {
	return u.Role == RoleMentee
}

// ImageURL is the public path serving the user's profile image.
func (u User) ImageURL() string {
	return fmt.Sprintf("/api/images/%s/%d", u.Role, u.ID)
}

// UserProfile is the public profile section of a UserResponse.
type UserProfile struct {
	Name     string   `json:"name"`
	Bio      string   `json:"bio"`
	ImageURL string   `json:"imageUrl"`
	Skills   []string `json:"skills"`
}

// UserResponse is the API view of a user.
type UserResponse struct {
	ID      int         `json:"id"`
	Email   string      `json:"email"`
	Role    Role        `json:"role"`
	Profile UserProfile `json:"profile"`
}

// NewUserResponse builds the API view of u. Skills are only populated for mentors;
// undecodable skill data is reported as an empty list.
func NewUserResponse(u User) UserResponse {
	profile := UserProfile{
		Name:     u.Name,
		Bio:      u.Bio,
		ImageURL: u.ImageURL(),
	}
	if u.IsMentor() {
		profile.Skills = DecodeSkillsOrEmpty(u.Skills)
	}
	return UserResponse{
		ID:      u.ID,
		Email:   u.Email,
		Role:    u.Role,
		Profile: profile,
	}
}
