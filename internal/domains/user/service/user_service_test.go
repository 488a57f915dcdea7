package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"golang.org/x/crypto/bcrypt"

	activityModel "bookcircle-backend/internal/domains/activity/model"
	"bookcircle-backend/internal/domains/user/model"
	"bookcircle-backend/pkg/jwt"
)

// =====================================================
// MOCKS
// =====================================================

type mockUserRepo struct {
	mock.Mock
}

func (m *mockUserRepo) Create(ctx context.Context, u *model.User) error {
	args := m.Called(ctx, u)
	return args.Error(0)
}

func (m *mockUserRepo) GetByID(ctx context.Context, id uuid.UUID) (*model.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *mockUserRepo) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *mockUserRepo) UpdateProfile(ctx context.Context, u *model.User) error {
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

func (m *mockUserRepo) RecomputeStats(ctx context.Context, userID uuid.UUID) (*model.SocialStats, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.SocialStats), args.Error(1)
}

type mockFollowChecker struct {
	mock.Mock
}

func (m *mockFollowChecker) IsFollowing(ctx context.Context, followerID, followingID uuid.UUID) (bool, error) {
	args := m.Called(ctx, followerID, followingID)
	return args.Bool(0), args.Error(1)
}

type mockRecorder struct {
	mock.Mock
}

func (m *mockRecorder) Record(ctx context.Context, input activityModel.RecordInput) {
	m.Called(ctx, input)
}

func newTestService() (*mockUserRepo, *mockFollowChecker, *mockRecorder, UserService) {
	users := new(mockUserRepo)
	checker := new(mockFollowChecker)
	recorder := new(mockRecorder)
	svc := NewUserService(users, checker, recorder, jwt.NewManager("test-secret"))
	return users, checker, recorder, svc
}

// =====================================================
// AUTH
// =====================================================

func TestRegister_HashesPasswordAndIssuesTokens(t *testing.T) {
	users, _, _, svc := newTestService()

	var created *model.User
	users.On("Create", mock.Anything, mock.MatchedBy(func(u *model.User) bool {
		created = u
		return u.Email == "jane@example.com" && u.PasswordHash != "secret-password"
	})).Return(nil)

	result, err := svc.Register(context.Background(), model.RegisterRequest{
		Email:    "jane@example.com",
		Password: "secret-password",
		FullName: "Jane Reader",
	})

	assert.NoError(t, err)
	assert.NotEmpty(t, result.AccessToken)
	assert.NotEmpty(t, result.RefreshToken)
	assert.Equal(t, "Jane Reader", result.User.FullName)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(created.PasswordHash), []byte("secret-password")))
}

func TestRegister_DuplicateEmail(t *testing.T) {
	users, _, _, svc := newTestService()

	users.On("Create", mock.Anything, mock.Anything).Return(model.ErrEmailTaken)

	_, err := svc.Register(context.Background(), model.RegisterRequest{
		Email:    "jane@example.com",
		Password: "secret-password",
		FullName: "Jane Reader",
	})

	assert.ErrorIs(t, err, model.ErrEmailTaken)
}

func TestLogin_WrongPassword(t *testing.T) {
	users, _, _, svc := newTestService()

	hash, _ := bcrypt.GenerateFromPassword([]byte("right-password"), bcrypt.DefaultCost)
	users.On("GetByEmail", mock.Anything, "jane@example.com").Return(&model.User{
		ID:           uuid.New(),
		Email:        "jane@example.com",
		PasswordHash: string(hash),
	}, nil)

	_, err := svc.Login(context.Background(), model.LoginRequest{
		Email:    "jane@example.com",
		Password: "wrong-password",
	})

	assert.ErrorIs(t, err, model.ErrInvalidCredentials)
}

func TestLogin_UnknownEmailReturnsSameError(t *testing.T) {
	users, _, _, svc := newTestService()

	users.On("GetByEmail", mock.Anything, "nobody@example.com").Return(nil, model.ErrUserNotFound)

	_, err := svc.Login(context.Background(), model.LoginRequest{
		Email:    "nobody@example.com",
		Password: "whatever",
	})

	assert.ErrorIs(t, err, model.ErrInvalidCredentials)
}

func TestLogin_Succeeds(t *testing.T) {
	users, _, _, svc := newTestService()

	hash, _ := bcrypt.GenerateFromPassword([]byte("right-password"), bcrypt.DefaultCost)
	users.On("GetByEmail", mock.Anything, "jane@example.com").Return(&model.User{
		ID:           uuid.New(),
		Email:        "jane@example.com",
		FullName:     "Jane Reader",
		PasswordHash: string(hash),
	}, nil)

	result, err := svc.Login(context.Background(), model.LoginRequest{
		Email:    "jane@example.com",
		Password: "right-password",
	})

	assert.NoError(t, err)
	assert.NotEmpty(t, result.AccessToken)
}

// =====================================================
// PROFILES
// =====================================================

func TestGetProfile_FillsIsFollowingForViewer(t *testing.T) {
	users, checker, _, svc := newTestService()

	owner := uuid.New()
	viewer := uuid.New()

	users.On("GetByID", mock.Anything, owner).Return(&model.User{ID: owner, FullName: "Owner"}, nil)
	checker.On("IsFollowing", mock.Anything, viewer, owner).Return(true, nil)

	profile, err := svc.GetProfile(context.Background(), owner, viewer)

	assert.NoError(t, err)
	assert.NotNil(t, profile.IsFollowing)
	assert.True(t, *profile.IsFollowing)
}

func TestGetProfile_OwnProfileSkipsFollowCheck(t *testing.T) {
	users, checker, _, svc := newTestService()

	owner := uuid.New()
	users.On("GetByID", mock.Anything, owner).Return(&model.User{ID: owner}, nil)

	profile, err := svc.GetProfile(context.Background(), owner, owner)

	assert.NoError(t, err)
	assert.Nil(t, profile.IsFollowing)
	checker.AssertNotCalled(t, "IsFollowing", mock.Anything, mock.Anything, mock.Anything)
}

func TestUpdateProfile_RecordsActivity(t *testing.T) {
	users, _, recorder, svc := newTestService()

	owner := uuid.New()
	newName := "Jane R."

	users.On("GetByID", mock.Anything, owner).Return(&model.User{ID: owner, FullName: "Jane Reader"}, nil)
	users.On("UpdateProfile", mock.Anything, mock.MatchedBy(func(u *model.User) bool {
		return u.FullName == newName
	})).Return(nil)
	recorder.On("Record", mock.Anything, mock.MatchedBy(func(in activityModel.RecordInput) bool {
		return in.Type == activityModel.TypeProfileUpdated && in.ActorID == owner
	})).Return()

	profile, err := svc.UpdateProfile(context.Background(), owner, model.UpdateProfileRequest{
		FullName: &newName,
	})

	assert.NoError(t, err)
	assert.Equal(t, newName, profile.FullName)
	recorder.AssertExpectations(t)
}

// =====================================================
// DASHBOARD
// =====================================================

func TestGetDashboardStats_ReturnsRecomputedCounters(t *testing.T) {
	users, _, _, svc := newTestService()

	owner := uuid.New()
	users.On("RecomputeStats", mock.Anything, owner).Return(&model.SocialStats{
		FollowersCount:  3,
		FollowingCount:  7,
		BooksAddedCount: 12,
		ReviewsCount:    4,
	}, nil)

	result, err := svc.GetDashboardStats(context.Background(), owner)

	assert.NoError(t, err)
	assert.Equal(t, 3, result.Stats.FollowersCount)
	assert.Equal(t, 7, result.Stats.FollowingCount)
	assert.Equal(t, 12, result.Stats.BooksAddedCount)
	assert.Equal(t, 4, result.Stats.ReviewsCount)
	assert.False(t, result.RecomputedAt.IsZero())
}

func TestGetDashboardStats_UnknownUser(t *testing.T) {
	users, _, _, svc := newTestService()

	owner := uuid.New()
	users.On("RecomputeStats", mock.Anything, owner).Return(nil, model.ErrUserNotFound)

	_, err := svc.GetDashboardStats(context.Background(), owner)

	assert.ErrorIs(t, err, model.ErrUserNotFound)
}
