package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"bookcircle-backend/internal/domains/user/model"
)

// =====================================================
// POSTGRES REPOSITORY IMPLEMENTATION
// =====================================================

type postgresUserRepository struct {
	pool *pgxpool.Pool
}

func NewPostgresUserRepository(pool *pgxpool.Pool) UserRepository {
	return &postgresUserRepository{pool: pool}
}

const userColumns = `
	id, email, username, password_hash, full_name, bio, is_private,
	followers_count, following_count, books_added_count, reviews_count,
	created_at, updated_at, deleted_at
`

func scanUser(row pgx.Row) (*model.User, error) {
	u := &model.User{}
	err := row.Scan(
		&u.ID,
		&u.Email,
		&u.Username,
		&u.PasswordHash,
		&u.FullName,
		&u.Bio,
		&u.IsPrivate,
		&u.Stats.FollowersCount,
		&u.Stats.FollowingCount,
		&u.Stats.BooksAddedCount,
		&u.Stats.ReviewsCount,
		&u.CreatedAt,
		&u.UpdatedAt,
		&u.DeletedAt,
	)
	if err != nil {
		return nil, err
	}
	return u, nil
}

// =====================================================
// CREATE
// =====================================================

func (r *postgresUserRepository) Create(ctx context.Context, u *model.User) error {
	query := `
		INSERT INTO users (
			id, email, username, password_hash, full_name, bio, is_private,
			created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`

	_, err := r.pool.Exec(ctx, query,
		u.ID,
		u.Email,
		u.Username,
		u.PasswordHash,
		u.FullName,
		u.Bio,
		u.IsPrivate,
		u.CreatedAt,
		u.UpdatedAt,
	)

	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			if strings.Contains(pgErr.ConstraintName, "username") {
				return model.ErrUsernameTaken
			}
			return model.ErrEmailTaken
		}
		return fmt.Errorf("failed to create user: %w", err)
	}

	return nil
}

// =====================================================
// READ
// =====================================================

func (r *postgresUserRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1 AND deleted_at IS NULL`

	u, err := scanUser(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	return u, nil
}

func (r *postgresUserRepository) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE email = $1 AND deleted_at IS NULL`

	u, err := scanUser(r.pool.QueryRow(ctx, query, email))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	return u, nil
}

// =====================================================
// UPDATE
// =====================================================

func (r *postgresUserRepository) UpdateProfile(ctx context.Context, u *model.User) error {
	query := `
		UPDATE users
		SET full_name = $2, username = $3, bio = $4, is_private = $5, updated_at = NOW()
		WHERE id = $1 AND deleted_at IS NULL
	`

	result, err := r.pool.Exec(ctx, query,
		u.ID,
		u.FullName,
		u.Username,
		u.Bio,
		u.IsPrivate,
	)

	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return model.ErrUsernameTaken
		}
		return fmt.Errorf("failed to update profile: %w", err)
	}

	if result.RowsAffected() == 0 {
		return model.ErrUserNotFound
	}

	return nil
}

// =====================================================
// COUNTER MAINTENANCE
// =====================================================

func (r *postgresUserRepository) AdjustFollowCounts(ctx context.Context, followerID, followingID uuid.UUID, delta int) error {
	// Two separate atomic updates; a failure between them leaves the
	// counters inconsistent until the next recomputation. Negative values
	// are not clamped.
	_, err := r.pool.Exec(ctx,
		`UPDATE users SET following_count = following_count + $2, updated_at = NOW() WHERE id = $1`,
		followerID, delta,
	)
	if err != nil {
		return fmt.Errorf("failed to adjust following count: %w", err)
	}

	_, err = r.pool.Exec(ctx,
		`UPDATE users SET followers_count = followers_count + $2, updated_at = NOW() WHERE id = $1`,
		followingID, delta,
	)
	if err != nil {
		return fmt.Errorf("failed to adjust followers count: %w", err)
	}

	return nil
}

func (r *postgresUserRepository) IncrementBooksAdded(ctx context.Context, userID uuid.UUID) error {
	_, err := r.pool.Exec(ctx,
		`UPDATE users SET books_added_count = books_added_count + 1, updated_at = NOW() WHERE id = $1`,
		userID,
	)
	if err != nil {
		return fmt.Errorf("failed to increment books added count: %w", err)
	}
	return nil
}

func (r *postgresUserRepository) IncrementReviews(ctx context.Context, userID uuid.UUID) error {
	_, err := r.pool.Exec(ctx,
		`UPDATE users SET reviews_count = reviews_count + 1, updated_at = NOW() WHERE id = $1`,
		userID,
	)
	if err != nil {
		return fmt.Errorf("failed to increment reviews count: %w", err)
	}
	return nil
}

// =====================================================
// RECONCILIATION
// =====================================================

func (r *postgresUserRepository) RecomputeStats(ctx context.Context, userID uuid.UUID) (*model.SocialStats, error) {
	query := `
		UPDATE users SET
			followers_count   = (SELECT COUNT(*) FROM follows WHERE following_id = $1 AND status = 'accepted'),
			following_count   = (SELECT COUNT(*) FROM follows WHERE follower_id = $1 AND status = 'accepted'),
			books_added_count = (SELECT COUNT(*) FROM books WHERE owner_id = $1),
			reviews_count     = (SELECT COUNT(*) FROM reviews WHERE user_id = $1),
			updated_at        = NOW()
		WHERE id = $1 AND deleted_at IS NULL
		RETURNING followers_count, following_count, books_added_count, reviews_count
	`

	stats := &model.SocialStats{}
	err := r.pool.QueryRow(ctx, query, userID).Scan(
		&stats.FollowersCount,
		&stats.FollowingCount,
		&stats.BooksAddedCount,
		&stats.ReviewsCount,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to recompute stats: %w", err)
	}

	return stats, nil
}
