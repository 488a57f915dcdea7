package service

import (
	"context"

	"github.com/google/uuid"

	"bookcircle-backend/internal/domains/book/model"
)

// BookService covers the shelf actions that produce activity entries:
// adding a book, reviewing it and liking it.
type BookService interface {
	CreateBook(ctx context.Context, ownerID uuid.UUID, req model.CreateBookRequest) (*model.Book, error)
	CreateReview(ctx context.Context, userID, bookID uuid.UUID, req model.CreateReviewRequest) (*model.Review, error)
	LikeBook(ctx context.Context, userID, bookID uuid.UUID) (*model.BookLikeResponse, error)
}
