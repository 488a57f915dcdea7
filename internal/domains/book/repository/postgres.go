package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"bookcircle-backend/internal/domains/book/model"
)

// =====================================================
// POSTGRES REPOSITORY IMPLEMENTATION
// =====================================================

type postgresBookRepository struct {
	pool *pgxpool.Pool
}

func NewPostgresBookRepository(pool *pgxpool.Pool) BookRepository {
	return &postgresBookRepository{pool: pool}
}

func (r *postgresBookRepository) CreateBook(ctx context.Context, book *model.Book) error {
	query := `
		INSERT INTO books (id, owner_id, title, author, cover_url, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`

	_, err := r.pool.Exec(ctx, query,
		book.ID,
		book.OwnerID,
		book.Title,
		book.Author,
		book.CoverURL,
		book.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create book: %w", err)
	}

	return nil
}

func (r *postgresBookRepository) GetBookByID(ctx context.Context, id uuid.UUID) (*model.Book, error) {
	query := `SELECT id, owner_id, title, author, cover_url, created_at FROM books WHERE id = $1`

	b := &model.Book{}
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&b.ID,
		&b.OwnerID,
		&b.Title,
		&b.Author,
		&b.CoverURL,
		&b.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrBookNotFound
		}
		return nil, fmt.Errorf("failed to get book: %w", err)
	}

	return b, nil
}

func (r *postgresBookRepository) CreateReview(ctx context.Context, review *model.Review) error {
	query := `
		INSERT INTO reviews (id, user_id, book_id, rating, content, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`

	_, err := r.pool.Exec(ctx, query,
		review.ID,
		review.UserID,
		review.BookID,
		review.Rating,
		review.Content,
		review.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create review: %w", err)
	}

	return nil
}

func (r *postgresBookRepository) LikeBook(ctx context.Context, bookID, userID uuid.UUID) (bool, error) {
	// ON CONFLICT DO NOTHING makes repeats harmless; RowsAffected tells
	// the caller whether this like was new.
	query := `
		INSERT INTO book_likes (book_id, user_id, created_at)
		VALUES ($1, $2, NOW())
		ON CONFLICT (book_id, user_id) DO NOTHING
	`

	result, err := r.pool.Exec(ctx, query, bookID, userID)
	if err != nil {
		return false, fmt.Errorf("failed to like book: %w", err)
	}

	return result.RowsAffected() > 0, nil
}

func (r *postgresBookRepository) CountBookLikes(ctx context.Context, bookID uuid.UUID) (int, error) {
	var count int
	err := r.pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM book_likes WHERE book_id = $1`,
		bookID,
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count book likes: %w", err)
	}

	return count, nil
}
