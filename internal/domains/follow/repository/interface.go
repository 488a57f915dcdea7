package repository

import (
	"context"

	"github.com/google/uuid"

	"bookcircle-backend/internal/domains/follow/model"
)

// FollowRepository persists the directed follow graph.
type FollowRepository interface {
	Create(ctx context.Context, edge *model.FollowEdge) error
	GetByID(ctx context.Context, id uuid.UUID) (*model.FollowEdge, error)
	GetByPair(ctx context.Context, followerID, followingID uuid.UUID) (*model.FollowEdge, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status model.Status) error
	Delete(ctx context.Context, id uuid.UUID) error

	ListFollowers(ctx context.Context, userID uuid.UUID, page, limit int) ([]model.FollowUser, int, error)
	ListFollowing(ctx context.Context, userID uuid.UUID, page, limit int) ([]model.FollowUser, int, error)
	ListPending(ctx context.Context, userID uuid.UUID, page, limit int) ([]model.PendingRequest, int, error)

	ListAcceptedFollowingIDs(ctx context.Context, userID uuid.UUID) ([]uuid.UUID, error)
	IsFollowing(ctx context.Context, followerID, followingID uuid.UUID) (bool, error)
	FollowedIDSet(ctx context.Context, viewerID uuid.UUID, ids []uuid.UUID) (map[uuid.UUID]bool, error)
}
