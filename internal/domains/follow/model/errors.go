package model

import "errors"

// =====================================================
// FOLLOW ERROR CODES
// =====================================================

const (
	ErrCodeSelfFollow          = "FLW001"
	ErrCodeAlreadyFollowing    = "FLW002"
	ErrCodeRequestAlreadySent  = "FLW003"
	ErrCodeEdgeNotFound        = "FLW004"
	ErrCodeNotRequestRecipient = "FLW005"
	ErrCodeNotPending          = "FLW006"
)

// =====================================================
// SENTINEL ERRORS
// =====================================================

var (
	ErrSelfFollow          = errors.New("cannot follow yourself")
	ErrAlreadyFollowing    = errors.New("already following this user")
	ErrRequestAlreadySent  = errors.New("follow request already sent")
	ErrEdgeNotFound        = errors.New("follow relationship not found")
	ErrNotRequestRecipient = errors.New("follow request belongs to another user")
	ErrNotPending          = errors.New("follow request is not pending")

	// ErrDuplicateEdge is the repository-level unique violation on the
	// (follower_id, following_id) pair; the service maps it to a
	// status-specific error.
	ErrDuplicateEdge = errors.New("follow edge already exists")
)

// =====================================================
// FOLLOW ERROR TYPE
// =====================================================

type FollowError struct {
	Code    string
	Message string
	Err     error
}

func (e *FollowError) Error() string {
	return e.Message
}

func (e *FollowError) Unwrap() error {
	return e.Err
}

// =====================================================
// ERROR CONSTRUCTORS
// =====================================================

func NewSelfFollowError() *FollowError {
	return &FollowError{
		Code:    ErrCodeSelfFollow,
		Message: "You cannot follow yourself",
		Err:     ErrSelfFollow,
	}
}

func NewAlreadyFollowingError() *FollowError {
	return &FollowError{
		Code:    ErrCodeAlreadyFollowing,
		Message: "You are already following this user",
		Err:     ErrAlreadyFollowing,
	}
}

func NewRequestAlreadySentError() *FollowError {
	return &FollowError{
		Code:    ErrCodeRequestAlreadySent,
		Message: "Follow request already sent",
		Err:     ErrRequestAlreadySent,
	}
}

func NewEdgeNotFoundError() *FollowError {
	return &FollowError{
		Code:    ErrCodeEdgeNotFound,
		Message: "Follow relationship not found",
		Err:     ErrEdgeNotFound,
	}
}

func NewNotRequestRecipientError() *FollowError {
	return &FollowError{
		Code:    ErrCodeNotRequestRecipient,
		Message: "This follow request was not sent to you",
		Err:     ErrNotRequestRecipient,
	}
}

func NewNotPendingError() *FollowError {
	return &FollowError{
		Code:    ErrCodeNotPending,
		Message: "Follow request has already been handled",
		Err:     ErrNotPending,
	}
}
