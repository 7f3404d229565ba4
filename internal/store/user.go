package store

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/mentormatch/apiserver/types"
)

const userColumns = `id, email, password_hash, role, name, bio, skills, created_at, updated_at`

type rowScanner interface {
	Scan(dest ...any) error
}

// UserRepository handles persistence for users.
type UserRepository struct {
	db *sql.DB
}

func NewUserRepository(db *sql.DB) *UserRepository {
	return &UserRepository{db: db}
}

func scanUser(row rowScanner) (types.User, error) {
	var user types.User
	err := row.Scan(
		&user.ID,
		&user.Email,
		&user.PasswordHash,
		&user.Role,
		&user.Name,
		&user.Bio,
		&user.Skills,
		&user.CreatedAt,
		&user.UpdatedAt,
	)
	return user, err
}

func (r *UserRepository) GetByID(ctx context.Context, id int) (types.User, error) {
	const query = `SELECT ` + userColumns + ` FROM users WHERE id = $1`
	user, err := scanUser(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return types.User{}, ErrNotFound
		}
		return types.User{}, err
	}
	return user, nil
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (types.User, error) {
	const query = `SELECT ` + userColumns + ` FROM users WHERE email = $1`
	user, err := scanUser(r.db.QueryRowContext(ctx, query, email))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return types.User{}, ErrNotFound
		}
		return types.User{}, err
	}
	return user, nil
}

// ListByRole returns all users with role, ordered by id.
func (r *UserRepository) ListByRole(ctx context.Context, role types.Role) ([]types.User, error) {
	const query = `SELECT ` + userColumns + ` FROM users WHERE role = $1 ORDER BY id`
	rows, err := r.db.QueryContext(ctx, query, role)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	users := make([]types.User, 0)
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		users = append(users, user)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return users, nil
}

func (r *UserRepository) Create(ctx context.Context, user types.User) (types.User, error) {
	now := time.Now()
	user.CreatedAt = now
	user.UpdatedAt = now

	const query = `
		INSERT INTO users (email, password_hash, role, name, bio, skills, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id`
	if err := r.db.QueryRowContext(
		ctx,
		query,
		user.Email,
		user.PasswordHash,
		user.Role,
		user.Name,
		user.Bio,
		user.Skills,
		user.CreatedAt,
		user.UpdatedAt,
	).Scan(&user.ID); err != nil {
		return types.User{}, mapWriteError(err)
	}
	return user, nil
}

// UpdateProfile persists name, bio and skills, plus the profile image when image
// is non-nil, in a single statement. Email, role and password are immutable here.
func (r *UserRepository) UpdateProfile(ctx context.Context, user types.User, image []byte) (types.User, error) {
	user.UpdatedAt = time.Now()

	var imageArg any
	if image != nil {
		imageArg = image
	}

	const query = `
		UPDATE users
		SET name = $1,
			bio = $2,
			skills = $3,
			profile_image = COALESCE($4::bytea, profile_image),
			updated_at = $5
		WHERE id = $6
		RETURNING ` + userColumns
	updated, err := scanUser(r.db.QueryRowContext(
		ctx,
		query,
		user.Name,
		user.Bio,
		user.Skills,
		imageArg,
		user.UpdatedAt,
		user.ID,
	))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return types.User{}, ErrNotFound
		}
		return types.User{}, err
	}
	return updated, nil
}

// GetProfileImage returns ErrNotFound when the user is missing or has no image.
func (r *UserRepository) GetProfileImage(ctx context.Context, userID int) ([]byte, error) {
	const query = `SELECT profile_image FROM users WHERE id = $1`
	var image []byte
	if err := r.db.QueryRowContext(ctx, query, userID).Scan(&image); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if len(image) == 0 {
		return nil, ErrNotFound
	}
	return image, nil
}
