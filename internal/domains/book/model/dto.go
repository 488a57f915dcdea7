package model

import (
	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
)

// =====================================================
// REQUEST DTOs
// =====================================================

// CreateBookRequest request to add a book to the caller's shelf
type CreateBookRequest struct {
	Title    string  `json:"title"`
	Author   string  `json:"author"`
	CoverURL *string `json:"cover_url,omitempty"`
}

func (r CreateBookRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Title,
			validation.Required.Error("title is required"),
			validation.Length(1, 255),
		),
		validation.Field(&r.Author,
			validation.Required.Error("author is required"),
			validation.Length(1, 255),
		),
		validation.Field(&r.CoverURL, is.URL.Error("cover_url must be a valid URL")),
	)
}

// CreateReviewRequest request to review a book
type CreateReviewRequest struct {
	Rating  int    `json:"rating"`
	Content string `json:"content"`
}

func (r CreateReviewRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Rating,
			validation.Required.Error("rating is required"),
			validation.Min(1).Error("rating must be between 1 and 5"),
			validation.Max(5).Error("rating must be between 1 and 5"),
		),
		validation.Field(&r.Content, validation.Length(0, 2000)),
	)
}

// =====================================================
// RESPONSE DTOs
// =====================================================

// BookLikeResponse response for the book like endpoint.
// Liking is idempotent; NewlyLiked is false on repeats.
type BookLikeResponse struct {
	BookID     string `json:"book_id"`
	NewlyLiked bool   `json:"newly_liked"`
	LikesCount int    `json:"likes_count"`
}
