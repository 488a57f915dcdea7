package model

import "errors"

// Error codes
const (
	ErrCodeBookNotFound = "BOK001"
)

// Errors
var (
	ErrBookNotFound = errors.New("book not found")
)

// BookError custom error type
type BookError struct {
	Code    string
	Message string
	Err     error
}

func (e *BookError) Error() string {
	return e.Message
}

func (e *BookError) Unwrap() error {
	return e.Err
}

func NewBookNotFoundError() *BookError {
	return &BookError{
		Code:    ErrCodeBookNotFound,
		Message: "Book not found",
		Err:     ErrBookNotFound,
	}
}
