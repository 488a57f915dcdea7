package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	activityModel "bookcircle-backend/internal/domains/activity/model"
	activityService "bookcircle-backend/internal/domains/activity/service"
	"bookcircle-backend/internal/domains/user/model"
	"bookcircle-backend/internal/domains/user/repository"
	"bookcircle-backend/pkg/jwt"
)

// =====================================================
// USER SERVICE IMPLEMENTATION
// =====================================================

type userService struct {
	userRepo      repository.UserRepository
	followChecker FollowChecker
	recorder      activityService.Recorder
	jwtManager    *jwt.Manager
}

func NewUserService(
	userRepo repository.UserRepository,
	followChecker FollowChecker,
	recorder activityService.Recorder,
	jwtManager *jwt.Manager,
) UserService {
	return &userService{
		userRepo:      userRepo,
		followChecker: followChecker,
		recorder:      recorder,
		jwtManager:    jwtManager,
	}
}

// =====================================================
// AUTH
// =====================================================

func (s *userService) Register(ctx context.Context, req model.RegisterRequest) (*model.AuthResponse, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	now := time.Now()
	user := &model.User{
		ID:           uuid.New(),
		Email:        req.Email,
		Username:     req.Username,
		PasswordHash: string(hash),
		FullName:     req.FullName,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		switch {
		case errors.Is(err, model.ErrEmailTaken):
			return nil, model.NewEmailTakenError()
		case errors.Is(err, model.ErrUsernameTaken):
			return nil, model.NewUsernameTakenError()
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	return s.authResponse(user)
}

func (s *userService) Login(ctx context.Context, req model.LoginRequest) (*model.AuthResponse, error) {
	user, err := s.userRepo.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, model.ErrUserNotFound) {
			// Same error as a wrong password so the response does not
			// reveal whether the email is registered.
			return nil, model.NewInvalidCredentialsError()
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, model.NewInvalidCredentialsError()
	}

	return s.authResponse(user)
}

func (s *userService) authResponse(user *model.User) (*model.AuthResponse, error) {
	accessToken, err := s.jwtManager.GenerateAccessToken(user.ID.String(), user.Email)
	if err != nil {
		return nil, fmt.Errorf("failed to generate access token: %w", err)
	}

	refreshToken, err := s.jwtManager.GenerateRefreshToken(user.ID.String())
	if err != nil {
		return nil, fmt.Errorf("failed to generate refresh token: %w", err)
	}

	return &model.AuthResponse{
		User:         profileResponse(user),
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
	}, nil
}

// =====================================================
// PROFILES
// =====================================================

// GetProfile returns the public view of a user. When a viewer is present
// (viewerID != uuid.Nil and not the owner), is_following is filled from
// the follow graph.
func (s *userService) GetProfile(ctx context.Context, userID, viewerID uuid.UUID) (*model.ProfileResponse, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, model.ErrUserNotFound) {
			return nil, model.NewUserNotFoundError()
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	profile := profileResponse(user)

	if viewerID != uuid.Nil && viewerID != userID {
		following, err := s.followChecker.IsFollowing(ctx, viewerID, userID)
		if err != nil {
			return nil, fmt.Errorf("failed to check follow: %w", err)
		}
		profile.IsFollowing = &following
	}

	return &profile, nil
}

func (s *userService) UpdateProfile(ctx context.Context, userID uuid.UUID, req model.UpdateProfileRequest) (*model.ProfileResponse, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, model.ErrUserNotFound) {
			return nil, model.NewUserNotFoundError()
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	if req.FullName != nil {
		user.FullName = *req.FullName
	}
	if req.Username != nil {
		user.Username = req.Username
	}
	if req.Bio != nil {
		user.Bio = req.Bio
	}
	if req.IsPrivate != nil {
		user.IsPrivate = *req.IsPrivate
	}

	if err := s.userRepo.UpdateProfile(ctx, user); err != nil {
		switch {
		case errors.Is(err, model.ErrUsernameTaken):
			return nil, model.NewUsernameTakenError()
		case errors.Is(err, model.ErrUserNotFound):
			return nil, model.NewUserNotFoundError()
		}
		return nil, fmt.Errorf("failed to update profile: %w", err)
	}
	user.UpdatedAt = time.Now()

	s.recorder.Record(ctx, activityModel.RecordInput{
		ActorID: user.ID,
		Type:    activityModel.TypeProfileUpdated,
		Title:   "Updated their profile",
	})

	profile := profileResponse(user)
	return &profile, nil
}

func profileResponse(user *model.User) model.ProfileResponse {
	return model.ProfileResponse{
		ID:        user.ID,
		FullName:  user.FullName,
		Username:  user.Username,
		Bio:       user.Bio,
		IsPrivate: user.IsPrivate,
		Stats:     user.Stats,
		CreatedAt: user.CreatedAt,
	}
}

// =====================================================
// DASHBOARD
// =====================================================

// GetDashboardStats recounts the social counters from source of truth and
// returns the reconciled values. This is the repair path for any drift the
// non-transactional counter updates accumulate.
func (s *userService) GetDashboardStats(ctx context.Context, userID uuid.UUID) (*model.DashboardStatsResponse, error) {
	stats, err := s.userRepo.RecomputeStats(ctx, userID)
	if err != nil {
		if errors.Is(err, model.ErrUserNotFound) {
			return nil, model.NewUserNotFoundError()
		}
		return nil, fmt.Errorf("failed to recompute stats: %w", err)
	}

	return &model.DashboardStatsResponse{
		Stats:        *stats,
		RecomputedAt: time.Now(),
	}, nil
}
