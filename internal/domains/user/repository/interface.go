package repository

import (
	"context"

	"github.com/google/uuid"

	"bookcircle-backend/internal/domains/user/model"
)

// UserRepository is the data-access contract for the user domain.
type UserRepository interface {
	Create(ctx context.Context, u *model.User) error
	GetByID(ctx context.Context, id uuid.UUID) (*model.User, error)
	GetByEmail(ctx context.Context, email string) (*model.User, error)
	UpdateProfile(ctx context.Context, u *model.User) error

	// AdjustFollowCounts applies delta to follower.following_count and
	// target.followers_count as two independent atomic column updates.
	// There is intentionally no transaction spanning both rows; the
	// dashboard recomputation path reconciles any drift.
	AdjustFollowCounts(ctx context.Context, followerID, followingID uuid.UUID, delta int) error

	IncrementBooksAdded(ctx context.Context, userID uuid.UUID) error
	IncrementReviews(ctx context.Context, userID uuid.UUID) error

	// RecomputeStats recounts all four social counters from source of truth,
	// overwrites the cached columns and returns the fresh values. Idempotent.
	RecomputeStats(ctx context.Context, userID uuid.UUID) (*model.SocialStats, error)
}
