package service

import (
	"context"

	"github.com/google/uuid"

	"bookcircle-backend/internal/domains/activity/model"
)

// Recorder appends entries to the activity log. Recording is a side effect
// of the primary action: implementations must never fail the caller, a
// recording failure is logged and swallowed.
type Recorder interface {
	Record(ctx context.Context, input model.RecordInput)
}

// FeedService builds viewer-scoped feed projections over the activity log.
type FeedService interface {
	GetFeed(ctx context.Context, viewerID uuid.UUID, page, limit int) (*model.FeedResponse, error)
	GetPublicFeed(ctx context.Context, viewerID uuid.UUID, typeFilter string, page, limit int) (*model.FeedResponse, error)
}

// EngagementService mutates the likes/comments child collections.
type EngagementService interface {
	ToggleLike(ctx context.Context, activityID, userID uuid.UUID) (*model.LikeResponse, error)
	AddComment(ctx context.Context, activityID, userID uuid.UUID, content string) (*model.CommentResponse, error)
	DeleteComment(ctx context.Context, activityID, commentID, actingUserID uuid.UUID) (*model.DeleteCommentResponse, error)
}

// FollowingLister is the slice of the follow graph the feed aggregator
// needs: who does the viewer follow with an accepted edge.
type FollowingLister interface {
	ListAcceptedFollowingIDs(ctx context.Context, userID uuid.UUID) ([]uuid.UUID, error)
}
