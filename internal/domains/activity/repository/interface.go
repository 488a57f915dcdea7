package repository

import (
	"context"

	"github.com/google/uuid"

	"bookcircle-backend/internal/domains/activity/model"
)

// ActivityRepository is the data-access contract for the activity log,
// its feed projections and the likes/comments child collections.
type ActivityRepository interface {
	Create(ctx context.Context, a *model.Activity) error
	GetByID(ctx context.Context, id uuid.UUID) (*model.Activity, error)

	// ListByAuthors returns visible activities whose actor is in authorIDs,
	// newest first, annotated for viewerID (pass uuid.Nil for no viewer).
	// The returned total comes from a count query over the same filter and
	// is taken before any null-actor filtering.
	ListByAuthors(ctx context.Context, authorIDs []uuid.UUID, viewerID uuid.UUID, page, limit int) ([]*model.FeedEntry, int, error)

	// ListPublic is ListByAuthors without the author restriction, with an
	// optional activity-type filter.
	ListPublic(ctx context.Context, typeFilter *model.ActivityType, viewerID uuid.UUID, page, limit int) ([]*model.FeedEntry, int, error)

	// Likes
	HasLike(ctx context.Context, activityID, userID uuid.UUID) (bool, error)
	AddLike(ctx context.Context, like *model.Like) error
	RemoveLike(ctx context.Context, activityID, userID uuid.UUID) error
	CountLikes(ctx context.Context, activityID uuid.UUID) (int, error)

	// Comments
	AddComment(ctx context.Context, c *model.Comment) error
	GetComment(ctx context.Context, activityID, commentID uuid.UUID) (*model.Comment, error)
	DeleteComment(ctx context.Context, activityID, commentID uuid.UUID) error
	CountComments(ctx context.Context, activityID uuid.UUID) (int, error)
}
