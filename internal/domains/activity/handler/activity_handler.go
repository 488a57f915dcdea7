package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"bookcircle-backend/internal/domains/activity/model"
	"bookcircle-backend/internal/domains/activity/service"
	"bookcircle-backend/internal/shared/middleware"
	"bookcircle-backend/internal/shared/response"
)

// =====================================================
// ACTIVITY HANDLER
// =====================================================

type ActivityHandler struct {
	feedService       service.FeedService
	engagementService service.EngagementService
}

func NewActivityHandler(feed service.FeedService, engagement service.EngagementService) *ActivityHandler {
	return &ActivityHandler{
		feedService:       feed,
		engagementService: engagement,
	}
}

// getUserID extracts the authenticated user id set by the auth middleware.
func getUserID(c *gin.Context) (uuid.UUID, bool) {
	value, exists := c.Get(middleware.ContextUserID)
	if !exists {
		return uuid.Nil, false
	}

	userID, ok := value.(uuid.UUID)
	return userID, ok
}

// mapActivityError translates domain errors to HTTP status + error code.
func mapActivityError(err error) (int, string) {
	switch {
	case errors.Is(err, model.ErrActivityNotFound):
		return http.StatusNotFound, model.ErrCodeActivityNotFound
	case errors.Is(err, model.ErrCommentNotFound):
		return http.StatusNotFound, model.ErrCodeCommentNotFound
	case errors.Is(err, model.ErrEmptyComment):
		return http.StatusBadRequest, model.ErrCodeEmptyComment
	case errors.Is(err, model.ErrNotCommentOwner):
		return http.StatusForbidden, model.ErrCodeNotCommentOwner
	case errors.Is(err, model.ErrInvalidType):
		return http.StatusBadRequest, model.ErrCodeInvalidType
	default:
		return http.StatusInternalServerError, "INTERNAL_ERROR"
	}
}

// =====================================================
// FEED ENDPOINTS
// =====================================================

// GetFeed returns the viewer's personalized feed
// GET /api/v1/activities/feed
func (h *ActivityHandler) GetFeed(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		response.Unauthorized(c, "Unauthorized")
		return
	}

	var req model.FeedRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	if err := req.Validate(); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	feed, err := h.feedService.GetFeed(c.Request.Context(), userID, req.Page, req.Limit)
	if err != nil {
		statusCode, errCode := mapActivityError(err)
		response.ErrorResponse(c, statusCode, errCode, err.Error())
		return
	}

	response.Success(c, http.StatusOK, feed)
}

// GetPublicFeed returns the unrestricted feed, optionally filtered by type
// GET /api/v1/activities/public
func (h *ActivityHandler) GetPublicFeed(c *gin.Context) {
	// Viewer is optional here; uuid.Nil means anonymous.
	userID, _ := getUserID(c)

	var req model.PublicFeedRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	if err := req.Validate(); err != nil {
		statusCode, errCode := mapActivityError(err)
		response.ErrorResponse(c, statusCode, errCode, err.Error())
		return
	}

	feed, err := h.feedService.GetPublicFeed(c.Request.Context(), userID, req.Type, req.Page, req.Limit)
	if err != nil {
		statusCode, errCode := mapActivityError(err)
		response.ErrorResponse(c, statusCode, errCode, err.Error())
		return
	}

	response.Success(c, http.StatusOK, feed)
}

// =====================================================
// ENGAGEMENT ENDPOINTS
// =====================================================

// ToggleLike flips the caller's like on an activity
// POST /api/v1/activities/:id/like
func (h *ActivityHandler) ToggleLike(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		response.Unauthorized(c, "Unauthorized")
		return
	}

	activityID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid activity ID")
		return
	}

	result, err := h.engagementService.ToggleLike(c.Request.Context(), activityID, userID)
	if err != nil {
		statusCode, errCode := mapActivityError(err)
		response.ErrorResponse(c, statusCode, errCode, err.Error())
		return
	}

	response.Success(c, http.StatusOK, result)
}

// AddComment appends a comment to an activity
// POST /api/v1/activities/:id/comments
func (h *ActivityHandler) AddComment(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		response.Unauthorized(c, "Unauthorized")
		return
	}

	activityID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid activity ID")
		return
	}

	var req model.AddCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	if err := req.Validate(); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	comment, err := h.engagementService.AddComment(c.Request.Context(), activityID, userID, req.Content)
	if err != nil {
		statusCode, errCode := mapActivityError(err)
		response.ErrorResponse(c, statusCode, errCode, err.Error())
		return
	}

	response.Success(c, http.StatusCreated, comment)
}

// DeleteComment removes a comment from an activity
// DELETE /api/v1/activities/:id/comments/:commentId
func (h *ActivityHandler) DeleteComment(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		response.Unauthorized(c, "Unauthorized")
		return
	}

	activityID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid activity ID")
		return
	}

	commentID, err := uuid.Parse(c.Param("commentId"))
	if err != nil {
		response.BadRequest(c, "Invalid comment ID")
		return
	}

	result, err := h.engagementService.DeleteComment(c.Request.Context(), activityID, commentID, userID)
	if err != nil {
		statusCode, errCode := mapActivityError(err)
		response.ErrorResponse(c, statusCode, errCode, err.Error())
		return
	}

	response.Success(c, http.StatusOK, result)
}
