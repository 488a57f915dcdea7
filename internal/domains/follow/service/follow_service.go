package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	activityModel "bookcircle-backend/internal/domains/activity/model"
	activityService "bookcircle-backend/internal/domains/activity/service"
	"bookcircle-backend/internal/domains/follow/model"
	"bookcircle-backend/internal/domains/follow/repository"
	userModel "bookcircle-backend/internal/domains/user/model"
	userRepo "bookcircle-backend/internal/domains/user/repository"
	"bookcircle-backend/internal/shared"
	"bookcircle-backend/pkg/cache"
)

// =====================================================
// FOLLOW SERVICE IMPLEMENTATION
// =====================================================

type followService struct {
	followRepo repository.FollowRepository
	userRepo   userRepo.UserRepository
	recorder   activityService.Recorder
	cache      cache.Cache
}

func NewFollowService(
	followRepo repository.FollowRepository,
	users userRepo.UserRepository,
	recorder activityService.Recorder,
	cacheClient cache.Cache,
) FollowService {
	return &followService{
		followRepo: followRepo,
		userRepo:   users,
		recorder:   recorder,
		cache:      cacheClient,
	}
}

// =====================================================
// STATE MACHINE
// =====================================================

// Follow creates or revives the follower -> target edge. Public targets
// produce an accepted edge immediately; private targets produce a pending
// request. A previously declined edge is revived in place, so a decline
// never blocks a later attempt.
func (s *followService) Follow(ctx context.Context, followerID, targetID uuid.UUID) (*model.FollowResponse, error) {
	if followerID == targetID {
		return nil, model.NewSelfFollowError()
	}

	target, err := s.userRepo.GetByID(ctx, targetID)
	if err != nil {
		if errors.Is(err, userModel.ErrUserNotFound) {
			return nil, userModel.NewUserNotFoundError()
		}
		return nil, fmt.Errorf("failed to get target user: %w", err)
	}

	newStatus := model.StatusAccepted
	if target.IsPrivate {
		newStatus = model.StatusPending
	}

	existing, err := s.followRepo.GetByPair(ctx, followerID, targetID)
	if err != nil && !errors.Is(err, model.ErrEdgeNotFound) {
		return nil, fmt.Errorf("failed to get follow edge: %w", err)
	}

	var edge *model.FollowEdge
	switch {
	case existing == nil:
		edge = &model.FollowEdge{
			ID:          uuid.New(),
			FollowerID:  followerID,
			FollowingID: targetID,
			Status:      newStatus,
			CreatedAt:   time.Now(),
			UpdatedAt:   time.Now(),
		}
		if err := s.followRepo.Create(ctx, edge); err != nil {
			if errors.Is(err, model.ErrDuplicateEdge) {
				// Lost a race against a concurrent follow for the same pair.
				if newStatus == model.StatusPending {
					return nil, model.NewRequestAlreadySentError()
				}
				return nil, model.NewAlreadyFollowingError()
			}
			return nil, fmt.Errorf("failed to create follow edge: %w", err)
		}

	case existing.IsPending():
		return nil, model.NewRequestAlreadySentError()

	case existing.IsAccepted():
		return nil, model.NewAlreadyFollowingError()

	default:
		// Declined edge: revive it with the status a fresh follow would get.
		if err := s.followRepo.UpdateStatus(ctx, existing.ID, newStatus); err != nil {
			return nil, fmt.Errorf("failed to revive follow edge: %w", err)
		}
		existing.Status = newStatus
		existing.UpdatedAt = time.Now()
		edge = existing
	}

	message := "Follow request sent"
	if newStatus == model.StatusAccepted {
		s.onAccepted(ctx, edge, target)
		message = fmt.Sprintf("Now following %s", target.DisplayName())
	}

	return &model.FollowResponse{Follow: edge, Message: message}, nil
}

// Unfollow removes the follower -> target edge regardless of its status.
// Counters only move when the removed edge was accepted.
func (s *followService) Unfollow(ctx context.Context, followerID, targetID uuid.UUID) error {
	edge, err := s.followRepo.GetByPair(ctx, followerID, targetID)
	if err != nil {
		if errors.Is(err, model.ErrEdgeNotFound) {
			return model.NewEdgeNotFoundError()
		}
		return fmt.Errorf("failed to get follow edge: %w", err)
	}

	if err := s.followRepo.Delete(ctx, edge.ID); err != nil {
		if errors.Is(err, model.ErrEdgeNotFound) {
			return model.NewEdgeNotFoundError()
		}
		return fmt.Errorf("failed to delete follow edge: %w", err)
	}

	if edge.IsAccepted() {
		if err := s.userRepo.AdjustFollowCounts(ctx, edge.FollowerID, edge.FollowingID, -1); err != nil {
			log.Error().Err(err).Msg("Failed to decrement follow counters")
		}
		s.invalidateFollowingCache(ctx, edge.FollowerID)
	}

	return nil
}

// AcceptRequest moves a pending request to accepted. Only the request
// recipient (the followed user) may act on it.
func (s *followService) AcceptRequest(ctx context.Context, requestID, actingUserID uuid.UUID) (*model.FollowEdge, error) {
	edge, err := s.pendingRequestFor(ctx, requestID, actingUserID)
	if err != nil {
		return nil, err
	}

	if err := s.followRepo.UpdateStatus(ctx, edge.ID, model.StatusAccepted); err != nil {
		return nil, fmt.Errorf("failed to accept follow request: %w", err)
	}
	edge.Status = model.StatusAccepted
	edge.UpdatedAt = time.Now()

	target, err := s.userRepo.GetByID(ctx, edge.FollowingID)
	if err != nil {
		log.Error().Err(err).Msg("Failed to load followed user after accept")
		target = nil
	}
	s.onAccepted(ctx, edge, target)

	return edge, nil
}

// DeclineRequest moves a pending request to declined. The edge row stays
// so the follower can try again later.
func (s *followService) DeclineRequest(ctx context.Context, requestID, actingUserID uuid.UUID) (*model.FollowEdge, error) {
	edge, err := s.pendingRequestFor(ctx, requestID, actingUserID)
	if err != nil {
		return nil, err
	}

	if err := s.followRepo.UpdateStatus(ctx, edge.ID, model.StatusDeclined); err != nil {
		return nil, fmt.Errorf("failed to decline follow request: %w", err)
	}
	edge.Status = model.StatusDeclined
	edge.UpdatedAt = time.Now()

	return edge, nil
}

// pendingRequestFor loads a request and checks the acting user is its
// recipient and the request is still pending.
func (s *followService) pendingRequestFor(ctx context.Context, requestID, actingUserID uuid.UUID) (*model.FollowEdge, error) {
	edge, err := s.followRepo.GetByID(ctx, requestID)
	if err != nil {
		if errors.Is(err, model.ErrEdgeNotFound) {
			return nil, model.NewEdgeNotFoundError()
		}
		return nil, fmt.Errorf("failed to get follow request: %w", err)
	}

	if edge.FollowingID != actingUserID {
		return nil, model.NewNotRequestRecipientError()
	}
	if !edge.IsPending() {
		return nil, model.NewNotPendingError()
	}

	return edge, nil
}

// onAccepted runs the side effects of an edge reaching accepted: counter
// increments, follow-set cache invalidation, and the activity entry.
func (s *followService) onAccepted(ctx context.Context, edge *model.FollowEdge, target *userModel.User) {
	if err := s.userRepo.AdjustFollowCounts(ctx, edge.FollowerID, edge.FollowingID, 1); err != nil {
		log.Error().Err(err).Msg("Failed to increment follow counters")
	}

	s.invalidateFollowingCache(ctx, edge.FollowerID)

	input := activityModel.RecordInput{
		ActorID:       edge.FollowerID,
		Type:          activityModel.TypeUserFollowed,
		Title:         "Started following a new reader",
		RelatedUserID: &edge.FollowingID,
	}
	if target != nil {
		input.Title = fmt.Sprintf("Started following %s", target.DisplayName())
		input.Metadata = map[string]interface{}{
			"user_name": target.DisplayName(),
		}
	}
	s.recorder.Record(ctx, input)
}

func (s *followService) invalidateFollowingCache(ctx context.Context, followerID uuid.UUID) {
	key := activityService.FollowingCacheKey(followerID)
	if err := s.cache.Delete(ctx, key); err != nil {
		log.Warn().Err(err).Str("key", key).Msg("Failed to invalidate follow-set cache")
	}
}

// =====================================================
// RELATIONSHIP STATUS
// =====================================================

// GetStatus describes the viewer -> target relationship. A declined edge
// reads as none so the viewer cannot tell a decline from no history.
func (s *followService) GetStatus(ctx context.Context, viewerID, targetID uuid.UUID) (*model.FollowStatusResponse, error) {
	if viewerID == targetID {
		return &model.FollowStatusResponse{Status: "self"}, nil
	}

	if _, err := s.userRepo.GetByID(ctx, targetID); err != nil {
		if errors.Is(err, userModel.ErrUserNotFound) {
			return nil, userModel.NewUserNotFoundError()
		}
		return nil, fmt.Errorf("failed to get target user: %w", err)
	}

	status := "none"
	forwardAccepted := false
	forward, err := s.followRepo.GetByPair(ctx, viewerID, targetID)
	if err != nil && !errors.Is(err, model.ErrEdgeNotFound) {
		return nil, fmt.Errorf("failed to get forward edge: %w", err)
	}
	if forward != nil {
		switch forward.Status {
		case model.StatusPending:
			status = "pending"
		case model.StatusAccepted:
			status = "accepted"
			forwardAccepted = true
		}
	}

	resp := &model.FollowStatusResponse{Status: status}

	back, err := s.followRepo.GetByPair(ctx, targetID, viewerID)
	if err != nil && !errors.Is(err, model.ErrEdgeNotFound) {
		return nil, fmt.Errorf("failed to get reverse edge: %w", err)
	}
	if back != nil {
		if back.IsAccepted() {
			resp.IsFollowingBack = true
		}
		if back.IsPending() {
			id := back.ID
			resp.PendingRequestID = &id
		}
	}

	resp.IsMutual = forwardAccepted && resp.IsFollowingBack

	return resp, nil
}

// =====================================================
// LISTS
// =====================================================

func (s *followService) ListFollowers(ctx context.Context, userID, viewerID uuid.UUID, page, limit int) (*model.FollowUserListResponse, error) {
	users, total, err := s.followRepo.ListFollowers(ctx, userID, page, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list followers: %w", err)
	}

	if err := s.decorateWithViewer(ctx, users, viewerID); err != nil {
		return nil, err
	}

	return &model.FollowUserListResponse{
		Users:      users,
		Pagination: shared.NewPaginationMeta(page, limit, total),
	}, nil
}

func (s *followService) ListFollowing(ctx context.Context, userID, viewerID uuid.UUID, page, limit int) (*model.FollowUserListResponse, error) {
	users, total, err := s.followRepo.ListFollowing(ctx, userID, page, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list following: %w", err)
	}

	if err := s.decorateWithViewer(ctx, users, viewerID); err != nil {
		return nil, err
	}

	return &model.FollowUserListResponse{
		Users:      users,
		Pagination: shared.NewPaginationMeta(page, limit, total),
	}, nil
}

func (s *followService) ListPendingRequests(ctx context.Context, userID uuid.UUID, page, limit int) (*model.PendingListResponse, error) {
	requests, total, err := s.followRepo.ListPending(ctx, userID, page, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list pending requests: %w", err)
	}

	return &model.PendingListResponse{
		Requests:   requests,
		Pagination: shared.NewPaginationMeta(page, limit, total),
	}, nil
}

// decorateWithViewer fills IsFollowedByViewer on each row. Anonymous
// viewers (uuid.Nil) leave the flags unset.
func (s *followService) decorateWithViewer(ctx context.Context, users []model.FollowUser, viewerID uuid.UUID) error {
	if viewerID == uuid.Nil || len(users) == 0 {
		return nil
	}

	ids := make([]uuid.UUID, len(users))
	for i := range users {
		ids[i] = users[i].ID
	}

	followed, err := s.followRepo.FollowedIDSet(ctx, viewerID, ids)
	if err != nil {
		return fmt.Errorf("failed to resolve followed set: %w", err)
	}

	for i := range users {
		isFollowed := followed[users[i].ID]
		users[i].IsFollowedByViewer = &isFollowed
	}

	return nil
}
