package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/mentormatch/apiserver/internal/auth"
	"github.com/mentormatch/apiserver/internal/store"
	"github.com/mentormatch/apiserver/types"
)

// UserRepository defines persistence operations for users.
type UserRepository interface {
	GetByID(ctx context.Context, id int) (types.User, error)
	GetByEmail(ctx context.Context, email string) (types.User, error)
	ListByRole(ctx context.Context, role types.Role) ([]types.User, error)
	Create(ctx context.Context, user types.User) (types.User, error)
	UpdateProfile(ctx context.Context, user types.User, image []byte) (types.User, error)
	GetProfileImage(ctx context.Context, userID int) ([]byte, error)
}

// SignupInput is the payload for creating an account.
type SignupInput struct {
	Email    string     `json:"email" validate:"required,email"`
	Password string     `json:"password" validate:"required"`
	Name     string     `json:"name" validate:"required"`
	Role     types.Role `json:"role" validate:"required,oneof=mentor mentee"`
}

// UserService encapsulates account use-cases: signup, login and token resolution.
type UserService struct {
	repo     UserRepository
	hasher   *auth.PasswordHasher
	tokens   *auth.TokenService
	validate *validator.Validate
}

func NewUserService(repo UserRepository, hasher *auth.PasswordHasher, tokens *auth.TokenService) *UserService {
	return &UserService{
		repo:     repo,
		hasher:   hasher,
		tokens:   tokens,
		validate: validator.New(validator.WithRequiredStructEnabled()),
	}
}

// Signup creates a new account.
func (s *UserService) Signup(ctx context.Context, in SignupInput) (types.User, error) {
	in.Email = strings.TrimSpace(in.Email)
	in.Name = strings.TrimSpace(in.Name)
	if err := s.validate.Struct(in); err != nil {
		return types.User{}, validationError(describeValidation(err))
	}

	if _, err := s.repo.GetByEmail(ctx, in.Email); err == nil {
		return types.User{}, conflictError("Email already registered")
	} else if !errors.Is(err, store.ErrNotFound) {
		return types.User{}, fmt.Errorf("check email: %w", err)
	}

	hashed, err := s.hasher.Hash(in.Password)
	if err != nil {
		return types.User{}, fmt.Errorf("hash password: %w", err)
	}

	user, err := s.repo.Create(ctx, types.User{
		Email:        in.Email,
		PasswordHash: hashed,
		Role:         in.Role,
		Name:         in.Name,
		Skills:       types.EncodeSkills(nil),
	})
	if err != nil {
		if errors.Is(err, store.ErrConflict) {
			return types.User{}, conflictError("Email already registered")
		}
		return types.User{}, fmt.Errorf("create user: %w", err)
	}
	return user, nil
}

// Login verifies credentials and issues a session token.
func (s *UserService) Login(ctx context.Context, email, password string) (string, error) {
	user, err := s.repo.GetByEmail(ctx, strings.TrimSpace(email))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return "", unauthorizedError("Incorrect email or password")
		}
		return "", fmt.Errorf("load user: %w", err)
	}
	if !s.hasher.Verify(password, user.PasswordHash) {
		return "", unauthorizedError("Incorrect email or password")
	}

	token, err := s.tokens.Issue(user)
	if err != nil {
		return "", fmt.Errorf("issue token: %w", err)
	}
	return token, nil
}

// Authenticate resolves a bearer token to its user.
func (s *UserService) Authenticate(ctx context.Context, token string) (types.User, error) {
	claims, err := s.tokens.Validate(token)
	if err != nil {
		return types.User{}, unauthorizedError("Could not validate credentials")
	}
	userID, err := claims.UserID()
	if err != nil {
		return types.User{}, unauthorizedError("Could not validate credentials")
	}

	user, err := s.repo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return types.User{}, unauthorizedError("Could not validate credentials")
		}
		return types.User{}, fmt.Errorf("load user: %w", err)
	}
	return user, nil
}

func describeValidation(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return "invalid request"
	}
	fe := verrs[0]
	field := strings.ToLower(fe.Field())
	switch fe.Tag() {
	case "required":
		return field + " is required"
	case "email":
		return field + " must be a valid email address"
	case "oneof":
		return field + " must be one of: " + strings.ReplaceAll(fe.Param(), " ", ", ")
	default:
		return field + " is invalid"
	}
}
