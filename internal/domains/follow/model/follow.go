package model

import (
	"time"

	"github.com/google/uuid"
)

// =====================================================
// FOLLOW MODELS
// =====================================================

// Status is the lifecycle state of a follow edge.
type Status string

const (
	StatusPending  Status = "pending"
	StatusAccepted Status = "accepted"
	StatusDeclined Status = "declined"
)

func (s Status) IsValid() bool {
	switch s {
	case StatusPending, StatusAccepted, StatusDeclined:
		return true
	}
	return false
}

func (s Status) String() string {
	return string(s)
}

// FollowEdge is one directed edge of the follow graph. The pair
// (FollowerID, FollowingID) is unique; the edge row is reused across the
// pending/accepted/declined lifecycle rather than recreated.
type FollowEdge struct {
	ID          uuid.UUID `json:"id"`
	FollowerID  uuid.UUID `json:"follower_id"`
	FollowingID uuid.UUID `json:"following_id"`
	Status      Status    `json:"status"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func (e *FollowEdge) IsPending() bool {
	return e.Status == StatusPending
}

func (e *FollowEdge) IsAccepted() bool {
	return e.Status == StatusAccepted
}

func (e *FollowEdge) IsDeclined() bool {
	return e.Status == StatusDeclined
}
