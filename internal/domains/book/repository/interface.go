package repository

import (
	"context"

	"github.com/google/uuid"

	"bookcircle-backend/internal/domains/book/model"
)

// BookRepository persists books, reviews and book likes.
type BookRepository interface {
	CreateBook(ctx context.Context, book *model.Book) error
	GetBookByID(ctx context.Context, id uuid.UUID) (*model.Book, error)
	CreateReview(ctx context.Context, review *model.Review) error

	// LikeBook inserts the (book, user) like if absent. Returns whether a
	// new row was created; repeats are no-ops.
	LikeBook(ctx context.Context, bookID, userID uuid.UUID) (bool, error)
	CountBookLikes(ctx context.Context, bookID uuid.UUID) (int, error)
}
