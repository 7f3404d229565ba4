package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/mentormatch/apiserver/types"
)

// AdminRepository performs whole-database maintenance.
type AdminRepository struct {
	db *sql.DB
}

func NewAdminRepository(db *sql.DB) *AdminRepository {
	return &AdminRepository{db: db}
}

// Reset deletes every match request and user, then inserts seed, all in one
// transaction. It returns the seeded users with their ids.
func (r *AdminRepository) Reset(ctx context.Context, seed []types.User) (_ []types.User, err error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin reset: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	if _, err = tx.ExecContext(ctx, `DELETE FROM match_requests`); err != nil {
		return nil, fmt.Errorf("delete match requests: %w", err)
	}
	if _, err = tx.ExecContext(ctx, `DELETE FROM users`); err != nil {
		return nil, fmt.Errorf("delete users: %w", err)
	}

	const insert = `
		INSERT INTO users (email, password_hash, role, name, bio, skills, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id`
	now := time.Now()
	created := make([]types.User, 0, len(seed))
	for _, user := range seed {
		user.CreatedAt = now
		user.UpdatedAt = now
		if err = tx.QueryRowContext(
			ctx,
			insert,
			user.Email,
			user.PasswordHash,
			user.Role,
			user.Name,
			user.Bio,
			user.Skills,
			user.CreatedAt,
			user.UpdatedAt,
		).Scan(&user.ID); err != nil {
			err = mapWriteError(err)
			return nil, fmt.Errorf("insert %s: %w", user.Email, err)
		}
		created = append(created, user)
	}

	if err = tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit reset: %w", err)
	}
	return created, nil
}
