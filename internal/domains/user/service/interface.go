package service

import (
	"context"

	"github.com/google/uuid"

	"bookcircle-backend/internal/domains/user/model"
)

// UserService covers account lifecycle, profiles and the stats dashboard.
type UserService interface {
	Register(ctx context.Context, req model.RegisterRequest) (*model.AuthResponse, error)
	Login(ctx context.Context, req model.LoginRequest) (*model.AuthResponse, error)
	GetProfile(ctx context.Context, userID, viewerID uuid.UUID) (*model.ProfileResponse, error)
	UpdateProfile(ctx context.Context, userID uuid.UUID, req model.UpdateProfileRequest) (*model.ProfileResponse, error)
	GetDashboardStats(ctx context.Context, userID uuid.UUID) (*model.DashboardStatsResponse, error)
}

// FollowChecker is the slice of the follow graph profile rendering needs:
// does the viewer follow the profile owner with an accepted edge.
type FollowChecker interface {
	IsFollowing(ctx context.Context, followerID, followingID uuid.UUID) (bool, error)
}
