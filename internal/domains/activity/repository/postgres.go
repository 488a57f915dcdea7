package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"bookcircle-backend/internal/domains/activity/model"
)

// =====================================================
// POSTGRES REPOSITORY IMPLEMENTATION
// =====================================================

type postgresActivityRepository struct {
	pool *pgxpool.Pool
}

func NewPostgresActivityRepository(pool *pgxpool.Pool) ActivityRepository {
	return &postgresActivityRepository{pool: pool}
}

// =====================================================
// CREATE
// =====================================================

func (r *postgresActivityRepository) Create(ctx context.Context, a *model.Activity) error {
	query := `
		INSERT INTO activities (
			id, actor_id, type, title, description,
			related_book_id, related_user_id, related_review_id,
			metadata, is_visible, created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`

	var metadata []byte
	if a.Metadata != nil {
		var err error
		metadata, err = json.Marshal(a.Metadata)
		if err != nil {
			return fmt.Errorf("failed to marshal activity metadata: %w", err)
		}
	}

	_, err := r.pool.Exec(ctx, query,
		a.ID,
		a.ActorID,
		a.Type,
		a.Title,
		a.Description,
		a.RelatedBookID,
		a.RelatedUserID,
		a.RelatedReviewID,
		metadata,
		a.IsVisible,
		a.CreatedAt,
	)

	if err != nil {
		return fmt.Errorf("failed to create activity: %w", err)
	}

	return nil
}

// =====================================================
// GET BY ID
// =====================================================

func (r *postgresActivityRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Activity, error) {
	query := `
		SELECT
			id, actor_id, type, title, description,
			related_book_id, related_user_id, related_review_id,
			metadata, is_visible, created_at
		FROM activities
		WHERE id = $1
	`

	a := &model.Activity{}
	var metadata []byte

	err := r.pool.QueryRow(ctx, query, id).Scan(
		&a.ID,
		&a.ActorID,
		&a.Type,
		&a.Title,
		&a.Description,
		&a.RelatedBookID,
		&a.RelatedUserID,
		&a.RelatedReviewID,
		&metadata,
		&a.IsVisible,
		&a.CreatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrActivityNotFound
		}
		return nil, fmt.Errorf("failed to get activity: %w", err)
	}

	if len(metadata) > 0 {
		if err := json.Unmarshal(metadata, &a.Metadata); err != nil {
			return nil, fmt.Errorf("failed to unmarshal activity metadata: %w", err)
		}
	}

	return a, nil
}

// =====================================================
// FEED QUERIES
// =====================================================

// feedSelect joins actor display fields and derives the per-viewer state
// (like/comment counts, liked-by-viewer flag) at read time. The actor join
// is a LEFT JOIN so entries of deleted accounts survive the query and can
// be filtered out by the service after the fetch.
const feedSelect = `
	SELECT
		a.id, a.type, a.title, a.description,
		a.related_book_id, a.related_user_id, a.related_review_id,
		a.metadata, a.created_at,
		u.id, u.full_name, u.username,
		(SELECT COUNT(*) FROM activity_likes l WHERE l.activity_id = a.id),
		(SELECT COUNT(*) FROM activity_comments c WHERE c.activity_id = a.id),
		EXISTS (SELECT 1 FROM activity_likes l WHERE l.activity_id = a.id AND l.user_id = $1)
	FROM activities a
	LEFT JOIN users u ON u.id = a.actor_id AND u.deleted_at IS NULL
`

func scanFeedEntry(rows pgx.Rows) (*model.FeedEntry, error) {
	entry := &model.FeedEntry{}
	var metadata []byte
	var actorID *uuid.UUID
	var actorName *string
	var actorUsername *string

	err := rows.Scan(
		&entry.ID,
		&entry.Type,
		&entry.Title,
		&entry.Description,
		&entry.RelatedBookID,
		&entry.RelatedUserID,
		&entry.RelatedReviewID,
		&metadata,
		&entry.CreatedAt,
		&actorID,
		&actorName,
		&actorUsername,
		&entry.LikesCount,
		&entry.CommentsCount,
		&entry.IsLikedByUser,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to scan feed entry: %w", err)
	}

	if actorID != nil && actorName != nil {
		entry.Actor = &model.ActorInfo{
			ID:       *actorID,
			FullName: *actorName,
			Username: actorUsername,
		}
	}

	if len(metadata) > 0 {
		if err := json.Unmarshal(metadata, &entry.Metadata); err != nil {
			return nil, fmt.Errorf("failed to unmarshal activity metadata: %w", err)
		}
	}

	return entry, nil
}

func (r *postgresActivityRepository) ListByAuthors(
	ctx context.Context,
	authorIDs []uuid.UUID,
	viewerID uuid.UUID,
	page, limit int,
) ([]*model.FeedEntry, int, error) {
	query := feedSelect + `
		WHERE a.is_visible = true AND a.actor_id = ANY($2)
		ORDER BY a.created_at DESC
		LIMIT $3 OFFSET $4
	`

	offset := (page - 1) * limit
	rows, err := r.pool.Query(ctx, query, viewerID, authorIDs, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list feed activities: %w", err)
	}
	defer rows.Close()

	var entries []*model.FeedEntry
	for rows.Next() {
		entry, err := scanFeedEntry(rows)
		if err != nil {
			return nil, 0, err
		}
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("failed to read feed rows: %w", err)
	}

	// Count over the same filter as the fetch. Runs before null-actor
	// filtering, so totals can overstate when actors have been deleted.
	countQuery := `SELECT COUNT(*) FROM activities WHERE is_visible = true AND actor_id = ANY($1)`
	var total int
	if err := r.pool.QueryRow(ctx, countQuery, authorIDs).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count feed activities: %w", err)
	}

	return entries, total, nil
}

func (r *postgresActivityRepository) ListPublic(
	ctx context.Context,
	typeFilter *model.ActivityType,
	viewerID uuid.UUID,
	page, limit int,
) ([]*model.FeedEntry, int, error) {
	query := feedSelect + ` WHERE a.is_visible = true`
	countQuery := `SELECT COUNT(*) FROM activities WHERE is_visible = true`

	args := []interface{}{viewerID}
	countArgs := []interface{}{}
	argCount := 2

	if typeFilter != nil {
		query += fmt.Sprintf(" AND a.type = $%d", argCount)
		countQuery += " AND type = $1"
		args = append(args, *typeFilter)
		countArgs = append(countArgs, *typeFilter)
		argCount++
	}

	query += " ORDER BY a.created_at DESC"
	query += fmt.Sprintf(" LIMIT $%d OFFSET $%d", argCount, argCount+1)
	args = append(args, limit, (page-1)*limit)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list public activities: %w", err)
	}
	defer rows.Close()

	var entries []*model.FeedEntry
	for rows.Next() {
		entry, err := scanFeedEntry(rows)
		if err != nil {
			return nil, 0, err
		}
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("failed to read feed rows: %w", err)
	}

	var total int
	if err := r.pool.QueryRow(ctx, countQuery, countArgs...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count public activities: %w", err)
	}

	return entries, total, nil
}

// =====================================================
// LIKES
// =====================================================

func (r *postgresActivityRepository) HasLike(ctx context.Context, activityID, userID uuid.UUID) (bool, error) {
	query := `SELECT EXISTS (SELECT 1 FROM activity_likes WHERE activity_id = $1 AND user_id = $2)`

	var exists bool
	if err := r.pool.QueryRow(ctx, query, activityID, userID).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check like: %w", err)
	}

	return exists, nil
}

func (r *postgresActivityRepository) AddLike(ctx context.Context, like *model.Like) error {
	query := `INSERT INTO activity_likes (activity_id, user_id, created_at) VALUES ($1, $2, $3)`

	_, err := r.pool.Exec(ctx, query, like.ActivityID, like.UserID, like.CreatedAt)
	if err != nil {
		// The unique index backstops concurrent toggles by the same user.
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return model.ErrAlreadyLiked
		}
		return fmt.Errorf("failed to add like: %w", err)
	}

	return nil
}

func (r *postgresActivityRepository) RemoveLike(ctx context.Context, activityID, userID uuid.UUID) error {
	query := `DELETE FROM activity_likes WHERE activity_id = $1 AND user_id = $2`

	if _, err := r.pool.Exec(ctx, query, activityID, userID); err != nil {
		return fmt.Errorf("failed to remove like: %w", err)
	}

	return nil
}

func (r *postgresActivityRepository) CountLikes(ctx context.Context, activityID uuid.UUID) (int, error) {
	query := `SELECT COUNT(*) FROM activity_likes WHERE activity_id = $1`

	var count int
	if err := r.pool.QueryRow(ctx, query, activityID).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count likes: %w", err)
	}

	return count, nil
}

// =====================================================
// COMMENTS
// =====================================================

func (r *postgresActivityRepository) AddComment(ctx context.Context, c *model.Comment) error {
	query := `
		INSERT INTO activity_comments (id, activity_id, user_id, content, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`

	_, err := r.pool.Exec(ctx, query, c.ID, c.ActivityID, c.UserID, c.Content, c.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to add comment: %w", err)
	}

	return nil
}

func (r *postgresActivityRepository) GetComment(ctx context.Context, activityID, commentID uuid.UUID) (*model.Comment, error) {
	query := `
		SELECT id, activity_id, user_id, content, created_at
		FROM activity_comments
		WHERE id = $1 AND activity_id = $2
	`

	c := &model.Comment{}
	err := r.pool.QueryRow(ctx, query, commentID, activityID).Scan(
		&c.ID,
		&c.ActivityID,
		&c.UserID,
		&c.Content,
		&c.CreatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrCommentNotFound
		}
		return nil, fmt.Errorf("failed to get comment: %w", err)
	}

	return c, nil
}

func (r *postgresActivityRepository) DeleteComment(ctx context.Context, activityID, commentID uuid.UUID) error {
	query := `DELETE FROM activity_comments WHERE id = $1 AND activity_id = $2`

	result, err := r.pool.Exec(ctx, query, commentID, activityID)
	if err != nil {
		return fmt.Errorf("failed to delete comment: %w", err)
	}

	if result.RowsAffected() == 0 {
		return model.ErrCommentNotFound
	}

	return nil
}

func (r *postgresActivityRepository) CountComments(ctx context.Context, activityID uuid.UUID) (int, error) {
	query := `SELECT COUNT(*) FROM activity_comments WHERE activity_id = $1`

	var count int
	if err := r.pool.QueryRow(ctx, query, activityID).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count comments: %w", err)
	}

	return count, nil
}
