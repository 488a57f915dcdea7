package model

import (
	"time"

	"github.com/google/uuid"

	"bookcircle-backend/internal/shared"
)

// =====================================================
// REQUEST DTOs
// =====================================================

// ListRequest carries pagination for the follower/following/pending lists.
type ListRequest struct {
	Page  int `form:"page"`
	Limit int `form:"limit"`
}

// Validate normalizes pagination into safe bounds.
func (r *ListRequest) Validate() error {
	if r.Page < 1 {
		r.Page = 1
	}
	if r.Limit < 1 {
		r.Limit = 20
	}
	if r.Limit > 100 {
		r.Limit = 100
	}
	return nil
}

// =====================================================
// RESPONSE DTOs
// =====================================================

// FollowUser is a user row in a follower/following list.
// IsFollowedByViewer is nil when the list is viewed anonymously.
type FollowUser struct {
	ID                 uuid.UUID `json:"id"`
	FullName           string    `json:"full_name"`
	Username           *string   `json:"username"`
	Bio                *string   `json:"bio,omitempty"`
	FollowedAt         time.Time `json:"followed_at"`
	IsFollowedByViewer *bool     `json:"is_followed_by_viewer,omitempty"`
}

// PendingRequest is one inbound follow request awaiting a decision.
type PendingRequest struct {
	ID          uuid.UUID `json:"id"`
	FollowerID  uuid.UUID `json:"follower_id"`
	FullName    string    `json:"full_name"`
	Username    *string   `json:"username"`
	RequestedAt time.Time `json:"requested_at"`
}

// FollowResponse is returned by the follow operation.
type FollowResponse struct {
	Follow  *FollowEdge `json:"follow"`
	Message string      `json:"message"`
}

// FollowStatusResponse describes the relationship between the viewer and
// another user. Status is one of none, pending, accepted, self; a declined
// edge reads as none.
type FollowStatusResponse struct {
	Status           string     `json:"status"`
	IsFollowingBack  bool       `json:"is_following_back"`
	IsMutual         bool       `json:"is_mutual"`
	PendingRequestID *uuid.UUID `json:"pending_request_id,omitempty"`
}

// FollowUserListResponse is a paginated follower or following list.
type FollowUserListResponse struct {
	Users      []FollowUser          `json:"users"`
	Pagination shared.PaginationMeta `json:"pagination"`
}

// PendingListResponse is the paginated inbound-request list.
type PendingListResponse struct {
	Requests   []PendingRequest      `json:"requests"`
	Pagination shared.PaginationMeta `json:"pagination"`
}
