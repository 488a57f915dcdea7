package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"bookcircle-backend/internal/domains/activity/model"
	userModel "bookcircle-backend/internal/domains/user/model"
)

// =====================================================
// MOCKS (shared by the service tests in this package)
// =====================================================

type mockActivityRepo struct {
	mock.Mock
}

func (m *mockActivityRepo) Create(ctx context.Context, a *model.Activity) error {
	args := m.Called(ctx, a)
	return args.Error(0)
}

func (m *mockActivityRepo) GetByID(ctx context.Context, id uuid.UUID) (*model.Activity, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Activity), args.Error(1)
}

func (m *mockActivityRepo) ListByAuthors(ctx context.Context, authorIDs []uuid.UUID, viewerID uuid.UUID, page, limit int) ([]*model.FeedEntry, int, error) {
	args := m.Called(ctx, authorIDs, viewerID, page, limit)
	return args.Get(0).([]*model.FeedEntry), args.Int(1), args.Error(2)
}

func (m *mockActivityRepo) ListPublic(ctx context.Context, typeFilter *model.ActivityType, viewerID uuid.UUID, page, limit int) ([]*model.FeedEntry, int, error) {
	args := m.Called(ctx, typeFilter, viewerID, page, limit)
	return args.Get(0).([]*model.FeedEntry), args.Int(1), args.Error(2)
}

func (m *mockActivityRepo) HasLike(ctx context.Context, activityID, userID uuid.UUID) (bool, error) {
	args := m.Called(ctx, activityID, userID)
	return args.Bool(0), args.Error(1)
}

func (m *mockActivityRepo) AddLike(ctx context.Context, like *model.Like) error {
	args := m.Called(ctx, like)
	return args.Error(0)
}

func (m *mockActivityRepo) RemoveLike(ctx context.Context, activityID, userID uuid.UUID) error {
	args := m.Called(ctx, activityID, userID)
	return args.Error(0)
}

func (m *mockActivityRepo) CountLikes(ctx context.Context, activityID uuid.UUID) (int, error) {
	args := m.Called(ctx, activityID)
	return args.Int(0), args.Error(1)
}

func (m *mockActivityRepo) AddComment(ctx context.Context, c *model.Comment) error {
	args := m.Called(ctx, c)
	return args.Error(0)
}

func (m *mockActivityRepo) GetComment(ctx context.Context, activityID, commentID uuid.UUID) (*model.Comment, error) {
	args := m.Called(ctx, activityID, commentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Comment), args.Error(1)
}

func (m *mockActivityRepo) DeleteComment(ctx context.Context, activityID, commentID uuid.UUID) error {
	args := m.Called(ctx, activityID, commentID)
	return args.Error(0)
}

func (m *mockActivityRepo) CountComments(ctx context.Context, activityID uuid.UUID) (int, error) {
	args := m.Called(ctx, activityID)
	return args.Int(0), args.Error(1)
}

type mockFollowingLister struct {
	mock.Mock
}

func (m *mockFollowingLister) ListAcceptedFollowingIDs(ctx context.Context, userID uuid.UUID) ([]uuid.UUID, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).([]uuid.UUID), args.Error(1)
}

type mockUserRepo struct {
	mock.Mock
}

func (m *mockUserRepo) Create(ctx context.Context, u *userModel.User) error {
	args := m.Called(ctx, u)
	return args.Error(0)
}

func (m *mockUserRepo) GetByID(ctx context.Context, id uuid.UUID) (*userModel.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*userModel.User), args.Error(1)
}

func (m *mockUserRepo) GetByEmail(ctx context.Context, email string) (*userModel.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*userModel.User), args.Error(1)
}

func (m *mockUserRepo) UpdateProfile(ctx context.Context, u *userModel.User) error {
	args := m.Called(ctx, u)
	return args.Error(0)
}

func (m *mockUserRepo) AdjustFollowCounts(ctx context.Context, followerID, followingID uuid.UUID, delta int) error {
	args := m.Called(ctx, followerID, followingID, delta)
	return args.Error(0)
}

func (m *mockUserRepo) IncrementBooksAdded(ctx context.Context, userID uuid.UUID) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}

func (m *mockUserRepo) IncrementReviews(ctx context.Context, userID uuid.UUID) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}

func (m *mockUserRepo) RecomputeStats(ctx context.Context, userID uuid.UUID) (*userModel.SocialStats, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*userModel.SocialStats), args.Error(1)
}

type mockCache struct {
	mock.Mock
}

func (m *mockCache) Get(ctx context.Context, key string, dest interface{}) (bool, error) {
	args := m.Called(ctx, key, dest)
	return args.Bool(0), args.Error(1)
}

func (m *mockCache) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	args := m.Called(ctx, key, value, ttl)
	return args.Error(0)
}

func (m *mockCache) Delete(ctx context.Context, keys ...string) error {
	args := m.Called(ctx, keys)
	return args.Error(0)
}

func (m *mockCache) Ping(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

// =====================================================
// FEED TESTS
// =====================================================

func feedEntry(actorID uuid.UUID) *model.FeedEntry {
	return &model.FeedEntry{
		ID:   uuid.New(),
		Type: model.TypeBookAdded,
		Actor: &model.ActorInfo{
			ID:       actorID,
			FullName: "Some Reader",
		},
		CreatedAt: time.Now(),
	}
}

func TestGetFeed_ScopesToViewerAndFollowing(t *testing.T) {
	activityRepo := new(mockActivityRepo)
	followRepo := new(mockFollowingLister)
	cacheClient := new(mockCache)
	svc := NewFeedService(activityRepo, followRepo, cacheClient)

	viewer := uuid.New()
	followed := uuid.New()

	cacheClient.On("Get", mock.Anything, FollowingCacheKey(viewer), mock.Anything).Return(false, nil)
	followRepo.On("ListAcceptedFollowingIDs", mock.Anything, viewer).Return([]uuid.UUID{followed}, nil)
	cacheClient.On("Set", mock.Anything, FollowingCacheKey(viewer), []uuid.UUID{followed}, followingCacheTTL).Return(nil)

	// The author set must be the followed users plus the viewer.
	activityRepo.On("ListByAuthors", mock.Anything, []uuid.UUID{followed, viewer}, viewer, 1, 20).
		Return([]*model.FeedEntry{feedEntry(followed), feedEntry(viewer)}, 2, nil)

	result, err := svc.GetFeed(context.Background(), viewer, 1, 20)

	assert.NoError(t, err)
	assert.Len(t, result.Activities, 2)
	activityRepo.AssertExpectations(t)
	followRepo.AssertExpectations(t)
}

func TestGetFeed_ServesFollowSetFromCache(t *testing.T) {
	activityRepo := new(mockActivityRepo)
	followRepo := new(mockFollowingLister)
	cacheClient := new(mockCache)
	svc := NewFeedService(activityRepo, followRepo, cacheClient)

	viewer := uuid.New()
	followed := uuid.New()

	cacheClient.On("Get", mock.Anything, FollowingCacheKey(viewer), mock.Anything).
		Run(func(args mock.Arguments) {
			dest := args.Get(2).(*[]uuid.UUID)
			*dest = []uuid.UUID{followed}
		}).
		Return(true, nil)
	activityRepo.On("ListByAuthors", mock.Anything, []uuid.UUID{followed, viewer}, viewer, 1, 20).
		Return([]*model.FeedEntry{}, 0, nil)

	_, err := svc.GetFeed(context.Background(), viewer, 1, 20)

	assert.NoError(t, err)
	followRepo.AssertNotCalled(t, "ListAcceptedFollowingIDs", mock.Anything, mock.Anything)
}

func TestGetFeed_DropsDeletedActorEntries(t *testing.T) {
	activityRepo := new(mockActivityRepo)
	followRepo := new(mockFollowingLister)
	cacheClient := new(mockCache)
	svc := NewFeedService(activityRepo, followRepo, cacheClient)

	viewer := uuid.New()

	cacheClient.On("Get", mock.Anything, mock.Anything, mock.Anything).Return(false, nil)
	followRepo.On("ListAcceptedFollowingIDs", mock.Anything, viewer).Return([]uuid.UUID{}, nil)
	cacheClient.On("Set", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(nil)

	orphaned := &model.FeedEntry{ID: uuid.New(), Type: model.TypeBookAdded, Actor: nil}
	kept := feedEntry(viewer)

	activityRepo.On("ListByAuthors", mock.Anything, mock.Anything, viewer, 1, 20).
		Return([]*model.FeedEntry{kept, orphaned}, 2, nil)

	result, err := svc.GetFeed(context.Background(), viewer, 1, 20)

	assert.NoError(t, err)
	assert.Len(t, result.Activities, 1)
	assert.Equal(t, kept.ID, result.Activities[0].ID)
	// The total keeps the pre-filter count.
	assert.Equal(t, 2, result.Pagination.Total)
}

func TestGetFeed_CacheFailureDegradesToDirectRead(t *testing.T) {
	activityRepo := new(mockActivityRepo)
	followRepo := new(mockFollowingLister)
	cacheClient := new(mockCache)
	svc := NewFeedService(activityRepo, followRepo, cacheClient)

	viewer := uuid.New()

	cacheClient.On("Get", mock.Anything, mock.Anything, mock.Anything).Return(false, assert.AnError)
	followRepo.On("ListAcceptedFollowingIDs", mock.Anything, viewer).Return([]uuid.UUID{}, nil)
	cacheClient.On("Set", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(assert.AnError)
	activityRepo.On("ListByAuthors", mock.Anything, mock.Anything, viewer, 1, 20).
		Return([]*model.FeedEntry{}, 0, nil)

	_, err := svc.GetFeed(context.Background(), viewer, 1, 20)

	assert.NoError(t, err)
	followRepo.AssertExpectations(t)
}

func TestGetPublicFeed_RejectsUnknownType(t *testing.T) {
	svc := NewFeedService(new(mockActivityRepo), new(mockFollowingLister), new(mockCache))

	_, err := svc.GetPublicFeed(context.Background(), uuid.Nil, "book_burned", 1, 20)

	assert.ErrorIs(t, err, model.ErrInvalidType)
}

func TestGetPublicFeed_PassesTypeFilter(t *testing.T) {
	activityRepo := new(mockActivityRepo)
	svc := NewFeedService(activityRepo, new(mockFollowingLister), new(mockCache))

	viewer := uuid.New()
	filter := model.TypeBookReviewed

	activityRepo.On("ListPublic", mock.Anything, &filter, viewer, 1, 20).
		Return([]*model.FeedEntry{}, 0, nil)

	_, err := svc.GetPublicFeed(context.Background(), viewer, "book_reviewed", 1, 20)

	assert.NoError(t, err)
	activityRepo.AssertExpectations(t)
}

func TestFeedPagination(t *testing.T) {
	activityRepo := new(mockActivityRepo)
	followRepo := new(mockFollowingLister)
	cacheClient := new(mockCache)
	svc := NewFeedService(activityRepo, followRepo, cacheClient)

	viewer := uuid.New()

	cacheClient.On("Get", mock.Anything, mock.Anything, mock.Anything).Return(false, nil)
	followRepo.On("ListAcceptedFollowingIDs", mock.Anything, viewer).Return([]uuid.UUID{}, nil)
	cacheClient.On("Set", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(nil)
	activityRepo.On("ListByAuthors", mock.Anything, mock.Anything, viewer, 2, 10).
		Return([]*model.FeedEntry{feedEntry(viewer)}, 25, nil)

	result, err := svc.GetFeed(context.Background(), viewer, 2, 10)

	assert.NoError(t, err)
	assert.Equal(t, 3, result.Pagination.TotalPages)
	assert.True(t, result.Pagination.HasNext)
	assert.True(t, result.Pagination.HasPrev)
}
