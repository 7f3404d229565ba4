package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/mentormatch/apiserver/internal/imaging"
	"github.com/mentormatch/apiserver/internal/store"
	"github.com/mentormatch/apiserver/types"
)

const placeholderImageURL = "https://placehold.co/500x500.jpg?text=%s"

// ImageStore persists processed profile images outside the user store, keyed by
// user id. Get returns store.ErrNotFound when nothing is stored.
type ImageStore interface {
	PutProfileImage(ctx context.Context, userID int, image []byte) error
	GetProfileImage(ctx context.Context, userID int) ([]byte, error)
}

// ProfileUpdate is the payload for a self-service profile edit. A nil Skills means
// the field was not supplied.
type ProfileUpdate struct {
	ID     int        `json:"id"`
	Name   string     `json:"name"`
	Role   types.Role `json:"role"`
	Bio    string     `json:"bio"`
	Image  string     `json:"image,omitempty"`
	Skills []string   `json:"skills,omitempty"`
}

// ProfileImage is either stored JPEG bytes or a placeholder URL to redirect to.
type ProfileImage struct {
	Data        []byte
	RedirectURL string
}

// ProfileService reads and edits user profiles.
type ProfileService struct {
	users  UserRepository
	images ImageStore
}

// NewProfileService keeps images in the user row when images is nil.
func NewProfileService(users UserRepository, images ImageStore) *ProfileService {
	return &ProfileService{users: users, images: images}
}

// GetProfile returns the API view of user.
func (s *ProfileService) GetProfile(user types.User) types.UserResponse {
	return types.NewUserResponse(user)
}

// UpdateProfile applies update to caller's own profile.
func (s *ProfileService) UpdateProfile(ctx context.Context, caller types.User, update ProfileUpdate) (types.UserResponse, error) {
	if update.ID != caller.ID {
		return types.UserResponse{}, forbiddenError("You can only update your own profile")
	}

	var image []byte
	if strings.TrimSpace(update.Image) != "" {
		processed, err := imaging.ProcessBase64(update.Image)
		if err != nil {
			if errors.Is(err, imaging.ErrInvalidImage) {
				return types.UserResponse{}, validationError(err.Error())
			}
			return types.UserResponse{}, fmt.Errorf("process image: %w", err)
		}
		image = processed
	}

	user := caller
	user.Name = update.Name
	user.Bio = update.Bio
	if caller.IsMentor() && update.Skills != nil {
		user.Skills = types.EncodeSkills(update.Skills)
	}

	// Inline images are written with the profile fields. Object storage is only
	// touched once the row update has succeeded.
	var inline []byte
	if s.images == nil {
		inline = image
	}
	updated, err := s.users.UpdateProfile(ctx, user, inline)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return types.UserResponse{}, notFoundError("user not found")
		}
		return types.UserResponse{}, fmt.Errorf("update profile: %w", err)
	}

	if image != nil && s.images != nil {
		if err := s.images.PutProfileImage(ctx, caller.ID, image); err != nil {
			return types.UserResponse{}, fmt.Errorf("store profile image: %w", err)
		}
	}
	return types.NewUserResponse(updated), nil
}

// ProfileImage resolves the image for userID. It never fails: a missing user, a
// missing image or a storage error all yield a placeholder for the best known role.
func (s *ProfileService) ProfileImage(ctx context.Context, pathRole string, userID int) (ProfileImage, error) {
	role := types.Role(strings.ToLower(pathRole))

	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return placeholderFor(role), nil
		}
		return placeholderFor(role), err
	}
	role = user.Role

	data, err := s.loadImage(ctx, user.ID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return placeholderFor(role), nil
		}
		return placeholderFor(role), err
	}
	return ProfileImage{Data: data}, nil
}

func (s *ProfileService) loadImage(ctx context.Context, userID int) ([]byte, error) {
	if s.images == nil {
		return s.users.GetProfileImage(ctx, userID)
	}
	return s.images.GetProfileImage(ctx, userID)
}

func placeholderFor(role types.Role) ProfileImage {
	label := "MENTEE"
	if role == types.RoleMentor {
		label = "MENTOR"
	}
	return ProfileImage{RedirectURL: fmt.Sprintf(placeholderImageURL, label)}
}
