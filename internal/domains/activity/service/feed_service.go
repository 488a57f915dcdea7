package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"bookcircle-backend/internal/domains/activity/model"
	"bookcircle-backend/internal/domains/activity/repository"
	"bookcircle-backend/internal/shared"
	"bookcircle-backend/pkg/cache"
)

const followingCacheTTL = 60 * time.Second

// FollowingCacheKey is the cache key for a viewer's accepted-following id
// set. The follow service deletes it whenever the set changes.
func FollowingCacheKey(userID uuid.UUID) string {
	return fmt.Sprintf("social:following:%s", userID)
}

// =====================================================
// FEED SERVICE IMPLEMENTATION
// =====================================================

type feedService struct {
	activityRepo repository.ActivityRepository
	followRepo   FollowingLister
	cache        cache.Cache
}

func NewFeedService(
	activityRepo repository.ActivityRepository,
	followRepo FollowingLister,
	cacheClient cache.Cache,
) FeedService {
	return &feedService{
		activityRepo: activityRepo,
		followRepo:   followRepo,
		cache:        cacheClient,
	}
}

// GetFeed builds the personalized feed: visible activities whose actor is
// the viewer or someone the viewer follows with an accepted edge, newest
// first. Fan-out is pull-based, computed here at read time.
func (s *feedService) GetFeed(ctx context.Context, viewerID uuid.UUID, page, limit int) (*model.FeedResponse, error) {
	followingIDs, err := s.followingIDs(ctx, viewerID)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve follow set: %w", err)
	}

	// Candidate author set: the viewer plus everyone they follow.
	authorIDs := append(followingIDs, viewerID)

	entries, total, err := s.activityRepo.ListByAuthors(ctx, authorIDs, viewerID, page, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch feed: %w", err)
	}

	return buildFeedResponse(entries, page, limit, total), nil
}

// GetPublicFeed builds the unrestricted feed with an optional type filter.
// viewerID may be uuid.Nil for anonymous viewers; liked-by-viewer flags are
// then always false.
func (s *feedService) GetPublicFeed(ctx context.Context, viewerID uuid.UUID, typeFilter string, page, limit int) (*model.FeedResponse, error) {
	var filter *model.ActivityType
	if typeFilter != "" {
		t := model.ActivityType(typeFilter)
		if !t.IsValid() {
			return nil, model.NewInvalidTypeError(typeFilter)
		}
		filter = &t
	}

	entries, total, err := s.activityRepo.ListPublic(ctx, filter, viewerID, page, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch public feed: %w", err)
	}

	return buildFeedResponse(entries, page, limit, total), nil
}

// followingIDs returns the viewer's accepted-following set, served from
// cache when possible. Cache failures degrade to a direct read.
func (s *feedService) followingIDs(ctx context.Context, viewerID uuid.UUID) ([]uuid.UUID, error) {
	key := FollowingCacheKey(viewerID)

	var cached []uuid.UUID
	found, err := s.cache.Get(ctx, key, &cached)
	if err != nil {
		log.Warn().Err(err).Msg("Follow-set cache read failed")
	} else if found {
		return cached, nil
	}

	ids, err := s.followRepo.ListAcceptedFollowingIDs(ctx, viewerID)
	if err != nil {
		return nil, err
	}

	if err := s.cache.Set(ctx, key, ids, followingCacheTTL); err != nil {
		log.Warn().Err(err).Msg("Follow-set cache write failed")
	}

	return ids, nil
}

// buildFeedResponse drops entries whose actor resolved to null (deleted
// account) and assembles the pagination block. The total keeps the
// pre-filter count, so has_next/total can overstate after null-actor
// filtering; this mirrors how the count query is defined.
func buildFeedResponse(entries []*model.FeedEntry, page, limit, total int) *model.FeedResponse {
	activities := make([]model.FeedEntry, 0, len(entries))
	for _, entry := range entries {
		if entry.Actor == nil {
			continue
		}
		activities = append(activities, *entry)
	}

	return &model.FeedResponse{
		Activities: activities,
		Pagination: shared.NewPaginationMeta(page, limit, total),
	}
}
