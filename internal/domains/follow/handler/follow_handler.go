package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"bookcircle-backend/internal/domains/follow/model"
	"bookcircle-backend/internal/domains/follow/service"
	userModel "bookcircle-backend/internal/domains/user/model"
	"bookcircle-backend/internal/shared/middleware"
	"bookcircle-backend/internal/shared/response"
)

// =====================================================
// FOLLOW HANDLER
// =====================================================

type FollowHandler struct {
	followService service.FollowService
}

func NewFollowHandler(followService service.FollowService) *FollowHandler {
	return &FollowHandler{followService: followService}
}

func getUserID(c *gin.Context) (uuid.UUID, bool) {
	value, exists := c.Get(middleware.ContextUserID)
	if !exists {
		return uuid.Nil, false
	}

	userID, ok := value.(uuid.UUID)
	return userID, ok
}

// mapFollowError translates domain errors to HTTP status + error code.
func mapFollowError(err error) (int, string) {
	switch {
	case errors.Is(err, model.ErrSelfFollow):
		return http.StatusBadRequest, model.ErrCodeSelfFollow
	case errors.Is(err, model.ErrAlreadyFollowing):
		return http.StatusConflict, model.ErrCodeAlreadyFollowing
	case errors.Is(err, model.ErrRequestAlreadySent):
		return http.StatusConflict, model.ErrCodeRequestAlreadySent
	case errors.Is(err, model.ErrEdgeNotFound):
		return http.StatusNotFound, model.ErrCodeEdgeNotFound
	case errors.Is(err, model.ErrNotRequestRecipient):
		return http.StatusForbidden, model.ErrCodeNotRequestRecipient
	case errors.Is(err, model.ErrNotPending):
		return http.StatusConflict, model.ErrCodeNotPending
	case errors.Is(err, userModel.ErrUserNotFound):
		return http.StatusNotFound, userModel.ErrCodeUserNotFound
	default:
		return http.StatusInternalServerError, "INTERNAL_ERROR"
	}
}

// =====================================================
// EDGE ENDPOINTS
// =====================================================

// Follow follows a user or sends a follow request
// POST /api/v1/follow/:userId
func (h *FollowHandler) Follow(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		response.Unauthorized(c, "Unauthorized")
		return
	}

	targetID, err := uuid.Parse(c.Param("userId"))
	if err != nil {
		response.BadRequest(c, "Invalid user ID")
		return
	}

	result, err := h.followService.Follow(c.Request.Context(), userID, targetID)
	if err != nil {
		statusCode, errCode := mapFollowError(err)
		response.ErrorResponse(c, statusCode, errCode, err.Error())
		return
	}

	response.Success(c, http.StatusCreated, result)
}

// Unfollow removes a follow or withdraws a pending request
// DELETE /api/v1/unfollow/:userId
func (h *FollowHandler) Unfollow(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		response.Unauthorized(c, "Unauthorized")
		return
	}

	targetID, err := uuid.Parse(c.Param("userId"))
	if err != nil {
		response.BadRequest(c, "Invalid user ID")
		return
	}

	if err := h.followService.Unfollow(c.Request.Context(), userID, targetID); err != nil {
		statusCode, errCode := mapFollowError(err)
		response.ErrorResponse(c, statusCode, errCode, err.Error())
		return
	}

	response.Success(c, http.StatusOK, gin.H{"message": "Unfollowed successfully"})
}

// GetStatus describes the relationship between the caller and a user
// GET /api/v1/follow/status/:userId
func (h *FollowHandler) GetStatus(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		response.Unauthorized(c, "Unauthorized")
		return
	}

	targetID, err := uuid.Parse(c.Param("userId"))
	if err != nil {
		response.BadRequest(c, "Invalid user ID")
		return
	}

	status, err := h.followService.GetStatus(c.Request.Context(), userID, targetID)
	if err != nil {
		statusCode, errCode := mapFollowError(err)
		response.ErrorResponse(c, statusCode, errCode, err.Error())
		return
	}

	response.Success(c, http.StatusOK, status)
}

// =====================================================
// REQUEST ENDPOINTS
// =====================================================

// ListPendingRequests lists the caller's inbound follow requests
// GET /api/v1/follow/requests/pending
func (h *FollowHandler) ListPendingRequests(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		response.Unauthorized(c, "Unauthorized")
		return
	}

	var req model.ListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	_ = req.Validate()

	result, err := h.followService.ListPendingRequests(c.Request.Context(), userID, req.Page, req.Limit)
	if err != nil {
		statusCode, errCode := mapFollowError(err)
		response.ErrorResponse(c, statusCode, errCode, err.Error())
		return
	}

	response.Success(c, http.StatusOK, result)
}

// AcceptRequest accepts an inbound follow request
// POST /api/v1/follow/requests/:followId/accept
func (h *FollowHandler) AcceptRequest(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		response.Unauthorized(c, "Unauthorized")
		return
	}

	requestID, err := uuid.Parse(c.Param("followId"))
	if err != nil {
		response.BadRequest(c, "Invalid request ID")
		return
	}

	edge, err := h.followService.AcceptRequest(c.Request.Context(), requestID, userID)
	if err != nil {
		statusCode, errCode := mapFollowError(err)
		response.ErrorResponse(c, statusCode, errCode, err.Error())
		return
	}

	response.Success(c, http.StatusOK, edge)
}

// DeclineRequest declines an inbound follow request
// POST /api/v1/follow/requests/:followId/decline
func (h *FollowHandler) DeclineRequest(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		response.Unauthorized(c, "Unauthorized")
		return
	}

	requestID, err := uuid.Parse(c.Param("followId"))
	if err != nil {
		response.BadRequest(c, "Invalid request ID")
		return
	}

	edge, err := h.followService.DeclineRequest(c.Request.Context(), requestID, userID)
	if err != nil {
		statusCode, errCode := mapFollowError(err)
		response.ErrorResponse(c, statusCode, errCode, err.Error())
		return
	}

	response.Success(c, http.StatusOK, edge)
}

// =====================================================
// LIST ENDPOINTS
// =====================================================

// ListFollowers lists a user's accepted followers
// GET /api/v1/users/:userId/followers
func (h *FollowHandler) ListFollowers(c *gin.Context) {
	// Anonymous viewers get the list without is_followed_by_viewer flags.
	viewerID, _ := getUserID(c)

	userID, err := uuid.Parse(c.Param("userId"))
	if err != nil {
		response.BadRequest(c, "Invalid user ID")
		return
	}

	var req model.ListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	_ = req.Validate()

	result, err := h.followService.ListFollowers(c.Request.Context(), userID, viewerID, req.Page, req.Limit)
	if err != nil {
		statusCode, errCode := mapFollowError(err)
		response.ErrorResponse(c, statusCode, errCode, err.Error())
		return
	}

	response.Success(c, http.StatusOK, result)
}

// ListFollowing lists the users someone follows
// GET /api/v1/users/:userId/following
func (h *FollowHandler) ListFollowing(c *gin.Context) {
	viewerID, _ := getUserID(c)

	userID, err := uuid.Parse(c.Param("userId"))
	if err != nil {
		response.BadRequest(c, "Invalid user ID")
		return
	}

	var req model.ListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	_ = req.Validate()

	result, err := h.followService.ListFollowing(c.Request.Context(), userID, viewerID, req.Page, req.Limit)
	if err != nil {
		statusCode, errCode := mapFollowError(err)
		response.ErrorResponse(c, statusCode, errCode, err.Error())
		return
	}

	response.Success(c, http.StatusOK, result)
}
