package service

import (
	"context"

	"github.com/google/uuid"

	"bookcircle-backend/internal/domains/follow/model"
)

// FollowService runs the follow-graph state machine and keeps the
// denormalized follower counters in step with accepted edges.
type FollowService interface {
	Follow(ctx context.Context, followerID, targetID uuid.UUID) (*model.FollowResponse, error)
	Unfollow(ctx context.Context, followerID, targetID uuid.UUID) error
	AcceptRequest(ctx context.Context, requestID, actingUserID uuid.UUID) (*model.FollowEdge, error)
	DeclineRequest(ctx context.Context, requestID, actingUserID uuid.UUID) (*model.FollowEdge, error)
	GetStatus(ctx context.Context, viewerID, targetID uuid.UUID) (*model.FollowStatusResponse, error)
	ListFollowers(ctx context.Context, userID, viewerID uuid.UUID, page, limit int) (*model.FollowUserListResponse, error)
	ListFollowing(ctx context.Context, userID, viewerID uuid.UUID, page, limit int) (*model.FollowUserListResponse, error)
	ListPendingRequests(ctx context.Context, userID uuid.UUID, page, limit int) (*model.PendingListResponse, error)
}
