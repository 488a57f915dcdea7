package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"bookcircle-backend/internal/domains/activity/model"
	"bookcircle-backend/internal/shared"
	"bookcircle-backend/internal/shared/middleware"
)

// =====================================================
// MOCK SERVICES
// =====================================================

type mockFeedService struct {
	mock.Mock
}

func (m *mockFeedService) GetFeed(ctx context.Context, viewerID uuid.UUID, page, limit int) (*model.FeedResponse, error) {
	args := m.Called(ctx, viewerID, page, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.FeedResponse), args.Error(1)
}

func (m *mockFeedService) GetPublicFeed(ctx context.Context, viewerID uuid.UUID, typeFilter string, page, limit int) (*model.FeedResponse, error) {
	args := m.Called(ctx, viewerID, typeFilter, page, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.FeedResponse), args.Error(1)
}

type mockEngagementService struct {
	mock.Mock
}

func (m *mockEngagementService) ToggleLike(ctx context.Context, activityID, userID uuid.UUID) (*model.LikeResponse, error) {
	args := m.Called(ctx, activityID, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.LikeResponse), args.Error(1)
}

func (m *mockEngagementService) AddComment(ctx context.Context, activityID, userID uuid.UUID, content string) (*model.CommentResponse, error) {
	args := m.Called(ctx, activityID, userID, content)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.CommentResponse), args.Error(1)
}

func (m *mockEngagementService) DeleteComment(ctx context.Context, activityID, commentID, actingUserID uuid.UUID) (*model.DeleteCommentResponse, error) {
	args := m.Called(ctx, activityID, commentID, actingUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.DeleteCommentResponse), args.Error(1)
}

// =====================================================
// HELPERS
// =====================================================

func setupRouter(feed *mockFeedService, engagement *mockEngagementService, userID uuid.UUID) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := NewActivityHandler(feed, engagement)

	router := gin.New()
	if userID != uuid.Nil {
		router.Use(func(c *gin.Context) {
			c.Set(middleware.ContextUserID, userID)
			c.Next()
		})
	}
	router.GET("/activities/feed", h.GetFeed)
	router.GET("/activities/public", h.GetPublicFeed)
	router.POST("/activities/:id/like", h.ToggleLike)
	router.POST("/activities/:id/comments", h.AddComment)
	router.DELETE("/activities/:id/comments/:commentId", h.DeleteComment)
	return router
}

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   *struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

func doJSON(router *gin.Engine, method, path, body string) (*httptest.ResponseRecorder, envelope) {
	w := httptest.NewRecorder()
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	router.ServeHTTP(w, req)

	var env envelope
	_ = json.Unmarshal(w.Body.Bytes(), &env)
	return w, env
}

// =====================================================
// FEED TESTS
// =====================================================

func TestGetFeedEndpoint_DefaultsPagination(t *testing.T) {
	feed := new(mockFeedService)
	viewer := uuid.New()
	router := setupRouter(feed, new(mockEngagementService), viewer)

	feed.On("GetFeed", mock.Anything, viewer, 1, 20).Return(&model.FeedResponse{
		Activities: []model.FeedEntry{},
		Pagination: shared.NewPaginationMeta(1, 20, 0),
	}, nil)

	w, body := doJSON(router, http.MethodGet, "/activities/feed", "")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.True(t, body.Success)
	feed.AssertExpectations(t)
}

func TestGetFeedEndpoint_RequiresAuth(t *testing.T) {
	feed := new(mockFeedService)
	router := setupRouter(feed, new(mockEngagementService), uuid.Nil)

	w, _ := doJSON(router, http.MethodGet, "/activities/feed", "")

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	feed.AssertNotCalled(t, "GetFeed", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestPublicFeedEndpoint_AnonymousViewer(t *testing.T) {
	feed := new(mockFeedService)
	router := setupRouter(feed, new(mockEngagementService), uuid.Nil)

	feed.On("GetPublicFeed", mock.Anything, uuid.Nil, "book_added", 1, 20).Return(&model.FeedResponse{
		Activities: []model.FeedEntry{},
		Pagination: shared.NewPaginationMeta(1, 20, 0),
	}, nil)

	w, _ := doJSON(router, http.MethodGet, "/activities/public?type=book_added", "")

	assert.Equal(t, http.StatusOK, w.Code)
	feed.AssertExpectations(t)
}

func TestPublicFeedEndpoint_RejectsUnknownType(t *testing.T) {
	feed := new(mockFeedService)
	router := setupRouter(feed, new(mockEngagementService), uuid.Nil)

	w, body := doJSON(router, http.MethodGet, "/activities/public?type=book_burned", "")

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, model.ErrCodeInvalidType, body.Error.Code)
	feed.AssertNotCalled(t, "GetPublicFeed", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

// =====================================================
// ENGAGEMENT TESTS
// =====================================================

func TestToggleLikeEndpoint(t *testing.T) {
	engagement := new(mockEngagementService)
	viewer := uuid.New()
	activityID := uuid.New()
	router := setupRouter(new(mockFeedService), engagement, viewer)

	engagement.On("ToggleLike", mock.Anything, activityID, viewer).Return(&model.LikeResponse{
		IsLiked:    true,
		LikesCount: 3,
	}, nil)

	w, body := doJSON(router, http.MethodPost, "/activities/"+activityID.String()+"/like", "")

	assert.Equal(t, http.StatusOK, w.Code)

	var result model.LikeResponse
	assert.NoError(t, json.Unmarshal(body.Data, &result))
	assert.True(t, result.IsLiked)
	assert.Equal(t, 3, result.LikesCount)
}

func TestToggleLikeEndpoint_UnknownActivityMapsTo404(t *testing.T) {
	engagement := new(mockEngagementService)
	viewer := uuid.New()
	activityID := uuid.New()
	router := setupRouter(new(mockFeedService), engagement, viewer)

	engagement.On("ToggleLike", mock.Anything, activityID, viewer).Return(nil, model.NewActivityNotFoundError())

	w, body := doJSON(router, http.MethodPost, "/activities/"+activityID.String()+"/like", "")

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, model.ErrCodeActivityNotFound, body.Error.Code)
}

func TestAddCommentEndpoint(t *testing.T) {
	engagement := new(mockEngagementService)
	viewer := uuid.New()
	activityID := uuid.New()
	router := setupRouter(new(mockFeedService), engagement, viewer)

	engagement.On("AddComment", mock.Anything, activityID, viewer, "Nice!").Return(&model.CommentResponse{
		ID:            uuid.New(),
		Content:       "Nice!",
		CommentsCount: 1,
	}, nil)

	w, _ := doJSON(router, http.MethodPost, "/activities/"+activityID.String()+"/comments", `{"content":"Nice!"}`)

	assert.Equal(t, http.StatusCreated, w.Code)
	engagement.AssertExpectations(t)
}

func TestAddCommentEndpoint_EmptyBodyRejected(t *testing.T) {
	engagement := new(mockEngagementService)
	viewer := uuid.New()
	activityID := uuid.New()
	router := setupRouter(new(mockFeedService), engagement, viewer)

	w, _ := doJSON(router, http.MethodPost, "/activities/"+activityID.String()+"/comments", `{"content":""}`)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	engagement.AssertNotCalled(t, "AddComment", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestDeleteCommentEndpoint_ForbiddenMapsTo403(t *testing.T) {
	engagement := new(mockEngagementService)
	viewer := uuid.New()
	activityID := uuid.New()
	commentID := uuid.New()
	router := setupRouter(new(mockFeedService), engagement, viewer)

	engagement.On("DeleteComment", mock.Anything, activityID, commentID, viewer).
		Return(nil, model.NewNotCommentOwnerError())

	w, body := doJSON(router, http.MethodDelete,
		"/activities/"+activityID.String()+"/comments/"+commentID.String(), "")

	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Equal(t, model.ErrCodeNotCommentOwner, body.Error.Code)
}
