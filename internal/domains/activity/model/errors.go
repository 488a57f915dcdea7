package model

import (
	"errors"
	"fmt"
)

// Error codes
const (
	ErrCodeActivityNotFound = "ACT001"
	ErrCodeCommentNotFound  = "ACT002"
	ErrCodeEmptyComment     = "ACT003"
	ErrCodeNotCommentOwner  = "ACT004"
	ErrCodeInvalidType      = "ACT005"
)

// Errors
var (
	ErrActivityNotFound = errors.New("activity not found")
	ErrCommentNotFound  = errors.New("comment not found")
	ErrEmptyComment     = errors.New("comment content cannot be empty")
	ErrNotCommentOwner  = errors.New("only the comment author or the activity owner can delete a comment")
	ErrInvalidType      = errors.New("invalid activity type")
	ErrAlreadyLiked     = errors.New("activity already liked by this user")
)

// ActivityError custom error type
type ActivityError struct {
	Code    string
	Message string
	Err     error
}

func (e *ActivityError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *ActivityError) Unwrap() error {
	return e.Err
}

// Error constructors
func NewActivityNotFoundError() *ActivityError {
	return &ActivityError{
		Code:    ErrCodeActivityNotFound,
		Message: "Activity not found",
		Err:     ErrActivityNotFound,
	}
}

func NewCommentNotFoundError() *ActivityError {
	return &ActivityError{
		Code:    ErrCodeCommentNotFound,
		Message: "Comment not found",
		Err:     ErrCommentNotFound,
	}
}

func NewEmptyCommentError() *ActivityError {
	return &ActivityError{
		Code:    ErrCodeEmptyComment,
		Message: "Comment content cannot be empty",
		Err:     ErrEmptyComment,
	}
}

func NewNotCommentOwnerError() *ActivityError {
	return &ActivityError{
		Code:    ErrCodeNotCommentOwner,
		Message: "You can only delete your own comments, or comments on your own activities",
		Err:     ErrNotCommentOwner,
	}
}

func NewInvalidTypeError(given string) *ActivityError {
	return &ActivityError{
		Code:    ErrCodeInvalidType,
		Message: fmt.Sprintf("Invalid activity type: %s", given),
		Err:     ErrInvalidType,
	}
}
