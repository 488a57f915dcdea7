package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"bookcircle-backend/internal/domains/follow/model"
)

// =====================================================
// POSTGRES REPOSITORY IMPLEMENTATION
// =====================================================

type postgresFollowRepository struct {
	pool *pgxpool.Pool
}

func NewPostgresFollowRepository(pool *pgxpool.Pool) FollowRepository {
	return &postgresFollowRepository{pool: pool}
}

const followColumns = `id, follower_id, following_id, status, created_at, updated_at`

func scanEdge(row pgx.Row) (*model.FollowEdge, error) {
	e := &model.FollowEdge{}
	err := row.Scan(
		&e.ID,
		&e.FollowerID,
		&e.FollowingID,
		&e.Status,
		&e.CreatedAt,
		&e.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return e, nil
}

// =====================================================
// EDGE CRUD
// =====================================================

func (r *postgresFollowRepository) Create(ctx context.Context, edge *model.FollowEdge) error {
	query := `
		INSERT INTO follows (id, follower_id, following_id, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`

	_, err := r.pool.Exec(ctx, query,
		edge.ID,
		edge.FollowerID,
		edge.FollowingID,
		edge.Status,
		edge.CreatedAt,
		edge.UpdatedAt,
	)

	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return model.ErrDuplicateEdge
		}
		return fmt.Errorf("failed to create follow edge: %w", err)
	}

	return nil
}

func (r *postgresFollowRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.FollowEdge, error) {
	query := `SELECT ` + followColumns + ` FROM follows WHERE id = $1`

	edge, err := scanEdge(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrEdgeNotFound
		}
		return nil, fmt.Errorf("failed to get follow edge: %w", err)
	}

	return edge, nil
}

func (r *postgresFollowRepository) GetByPair(ctx context.Context, followerID, followingID uuid.UUID) (*model.FollowEdge, error) {
	query := `SELECT ` + followColumns + ` FROM follows WHERE follower_id = $1 AND following_id = $2`

	edge, err := scanEdge(r.pool.QueryRow(ctx, query, followerID, followingID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrEdgeNotFound
		}
		return nil, fmt.Errorf("failed to get follow edge: %w", err)
	}

	return edge, nil
}

func (r *postgresFollowRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status model.Status) error {
	query := `UPDATE follows SET status = $2, updated_at = NOW() WHERE id = $1`

	result, err := r.pool.Exec(ctx, query, id, status)
	if err != nil {
		return fmt.Errorf("failed to update follow status: %w", err)
	}

	if result.RowsAffected() == 0 {
		return model.ErrEdgeNotFound
	}

	return nil
}

func (r *postgresFollowRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.pool.Exec(ctx, `DELETE FROM follows WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete follow edge: %w", err)
	}

	if result.RowsAffected() == 0 {
		return model.ErrEdgeNotFound
	}

	return nil
}

// =====================================================
// LISTS
// =====================================================

func (r *postgresFollowRepository) ListFollowers(ctx context.Context, userID uuid.UUID, page, limit int) ([]model.FollowUser, int, error) {
	offset := (page - 1) * limit

	query := `
		SELECT u.id, u.full_name, u.username, u.bio, f.updated_at
		FROM follows f
		JOIN users u ON u.id = f.follower_id AND u.deleted_at IS NULL
		WHERE f.following_id = $1 AND f.status = 'accepted'
		ORDER BY f.updated_at DESC
		LIMIT $2 OFFSET $3
	`

	rows, err := r.pool.Query(ctx, query, userID, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list followers: %w", err)
	}
	defer rows.Close()

	users, err := scanFollowUsers(rows)
	if err != nil {
		return nil, 0, err
	}

	countQuery := `
		SELECT COUNT(*)
		FROM follows f
		JOIN users u ON u.id = f.follower_id AND u.deleted_at IS NULL
		WHERE f.following_id = $1 AND f.status = 'accepted'
	`

	var total int
	if err := r.pool.QueryRow(ctx, countQuery, userID).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count followers: %w", err)
	}

	return users, total, nil
}

func (r *postgresFollowRepository) ListFollowing(ctx context.Context, userID uuid.UUID, page, limit int) ([]model.FollowUser, int, error) {
	offset := (page - 1) * limit

	query := `
		SELECT u.id, u.full_name, u.username, u.bio, f.updated_at
		FROM follows f
		JOIN users u ON u.id = f.following_id AND u.deleted_at IS NULL
		WHERE f.follower_id = $1 AND f.status = 'accepted'
		ORDER BY f.updated_at DESC
		LIMIT $2 OFFSET $3
	`

	rows, err := r.pool.Query(ctx, query, userID, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list following: %w", err)
	}
	defer rows.Close()

	users, err := scanFollowUsers(rows)
	if err != nil {
		return nil, 0, err
	}

	countQuery := `
		SELECT COUNT(*)
		FROM follows f
		JOIN users u ON u.id = f.following_id AND u.deleted_at IS NULL
		WHERE f.follower_id = $1 AND f.status = 'accepted'
	`

	var total int
	if err := r.pool.QueryRow(ctx, countQuery, userID).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count following: %w", err)
	}

	return users, total, nil
}

func scanFollowUsers(rows pgx.Rows) ([]model.FollowUser, error) {
	users := make([]model.FollowUser, 0)
	for rows.Next() {
		var u model.FollowUser
		if err := rows.Scan(&u.ID, &u.FullName, &u.Username, &u.Bio, &u.FollowedAt); err != nil {
			return nil, fmt.Errorf("failed to scan follow user: %w", err)
		}
		users = append(users, u)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read follow users: %w", err)
	}
	return users, nil
}

func (r *postgresFollowRepository) ListPending(ctx context.Context, userID uuid.UUID, page, limit int) ([]model.PendingRequest, int, error) {
	offset := (page - 1) * limit

	query := `
		SELECT f.id, f.follower_id, u.full_name, u.username, f.created_at
		FROM follows f
		JOIN users u ON u.id = f.follower_id AND u.deleted_at IS NULL
		WHERE f.following_id = $1 AND f.status = 'pending'
		ORDER BY f.created_at DESC
		LIMIT $2 OFFSET $3
	`

	rows, err := r.pool.Query(ctx, query, userID, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list pending requests: %w", err)
	}
	defer rows.Close()

	requests := make([]model.PendingRequest, 0)
	for rows.Next() {
		var req model.PendingRequest
		if err := rows.Scan(&req.ID, &req.FollowerID, &req.FullName, &req.Username, &req.RequestedAt); err != nil {
			return nil, 0, fmt.Errorf("failed to scan pending request: %w", err)
		}
		requests = append(requests, req)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("failed to read pending requests: %w", err)
	}

	countQuery := `
		SELECT COUNT(*)
		FROM follows f
		JOIN users u ON u.id = f.follower_id AND u.deleted_at IS NULL
		WHERE f.following_id = $1 AND f.status = 'pending'
	`

	var total int
	if err := r.pool.QueryRow(ctx, countQuery, userID).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count pending requests: %w", err)
	}

	return requests, total, nil
}

// =====================================================
// GRAPH QUERIES
// =====================================================

func (r *postgresFollowRepository) ListAcceptedFollowingIDs(ctx context.Context, userID uuid.UUID) ([]uuid.UUID, error) {
	query := `SELECT following_id FROM follows WHERE follower_id = $1 AND status = 'accepted'`

	rows, err := r.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list following ids: %w", err)
	}
	defer rows.Close()

	ids := make([]uuid.UUID, 0)
	for rows.Next() {
		var id uuid.UUID
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan following id: %w", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read following ids: %w", err)
	}

	return ids, nil
}

func (r *postgresFollowRepository) IsFollowing(ctx context.Context, followerID, followingID uuid.UUID) (bool, error) {
	query := `
		SELECT EXISTS (
			SELECT 1 FROM follows
			WHERE follower_id = $1 AND following_id = $2 AND status = 'accepted'
		)
	`

	var exists bool
	if err := r.pool.QueryRow(ctx, query, followerID, followingID).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check follow: %w", err)
	}

	return exists, nil
}

// FollowedIDSet returns which of the given ids the viewer follows with an
// accepted edge. Used to decorate user lists in one round trip.
func (r *postgresFollowRepository) FollowedIDSet(ctx context.Context, viewerID uuid.UUID, ids []uuid.UUID) (map[uuid.UUID]bool, error) {
	followed := make(map[uuid.UUID]bool, len(ids))
	if len(ids) == 0 {
		return followed, nil
	}

	query := `
		SELECT following_id FROM follows
		WHERE follower_id = $1 AND following_id = ANY($2) AND status = 'accepted'
	`

	rows, err := r.pool.Query(ctx, query, viewerID, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve followed set: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var id uuid.UUID
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan followed id: %w", err)
		}
		followed[id] = true
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read followed set: %w", err)
	}

	return followed, nil
}
