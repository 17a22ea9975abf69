package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/yigit/registrar/internal/app/models"
	"github.com/yigit/registrar/internal/pkg/apperrors"
	"github.com/yigit/registrar/internal/pkg/logger"
)

// UserRepository handles login accounts
type UserRepository struct {
	db DBTX
}

// NewUserRepository creates a new UserRepository
func NewUserRepository(db DBTX) *UserRepository {
	return &UserRepository{
		db: db,
	}
}

// GetUserByEmail retrieves an account by email, ignoring case
func (r *UserRepository) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	sql, args, err := psql.Select("id", "email", "password", "is_active", "created_at", "last_login_at").
		From("users").
		Where(squirrel.Expr("lower(email) = lower(?)", email)).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get user query: %w", err)
	}

	var user models.User
	err = r.db.QueryRow(ctx, sql, args...).Scan(
		&user.ID, &user.Email, &user.Password, &user.IsActive, &user.CreatedAt, &user.LastLoginAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrUserNotFound
		}
		logger.Error().Err(err).Str("email", email).Msg("Error scanning user row")
		return nil, fmt.Errorf("error retrieving user: %w", err)
	}

	return &user, nil
}

// UpsertUser creates the account or replaces the password hash of the
// existing account with the same email. The user ID is set on return.
func (r *UserRepository) UpsertUser(ctx context.Context, user *models.User) error {
	sql, args, err := psql.Insert("users").
		Columns("email", "password", "is_active").
		Values(user.Email, user.Password, user.IsActive).
		Suffix("ON CONFLICT ON CONSTRAINT users_email_key DO UPDATE SET password = EXCLUDED.password, is_active = EXCLUDED.is_active RETURNING id").
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build upsert user query: %w", err)
	}

	if err := r.db.QueryRow(ctx, sql, args...).Scan(&user.ID); err != nil {
		logger.Error().Err(err).Str("email", user.Email).Msg("Error upserting user")
		return fmt.Errorf("error upserting user: %w", err)
	}
	return nil
}

// UpdateLastLogin records a successful sign-in
func (r *UserRepository) UpdateLastLogin(ctx context.Context, userID int64, at time.Time) error {
	sql, args, err := psql.Update("users").
		Set("last_login_at", at).
		Where(squirrel.Eq{"id": userID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build update last login query: %w", err)
	}

	if _, err := r.db.Exec(ctx, sql, args...); err != nil {
		return fmt.Errorf("failed to update last login time: %w", err)
	}
	return nil
}
