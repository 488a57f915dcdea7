package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	activityModel "bookcircle-backend/internal/domains/activity/model"
	activityService "bookcircle-backend/internal/domains/activity/service"
	"bookcircle-backend/internal/domains/book/model"
	"bookcircle-backend/internal/domains/book/repository"
	userRepo "bookcircle-backend/internal/domains/user/repository"
)

// =====================================================
// BOOK SERVICE IMPLEMENTATION
// =====================================================

type bookService struct {
	bookRepo repository.BookRepository
	userRepo userRepo.UserRepository
	recorder activityService.Recorder
}

func NewBookService(
	bookRepo repository.BookRepository,
	users userRepo.UserRepository,
	recorder activityService.Recorder,
) BookService {
	return &bookService{
		bookRepo: bookRepo,
		userRepo: users,
		recorder: recorder,
	}
}

// CreateBook adds a book to the owner's shelf, bumps their counter and
// records the book_added activity.
func (s *bookService) CreateBook(ctx context.Context, ownerID uuid.UUID, req model.CreateBookRequest) (*model.Book, error) {
	book := &model.Book{
		ID:        uuid.New(),
		OwnerID:   ownerID,
		Title:     req.Title,
		Author:    req.Author,
		CoverURL:  req.CoverURL,
		CreatedAt: time.Now(),
	}

	if err := s.bookRepo.CreateBook(ctx, book); err != nil {
		return nil, fmt.Errorf("failed to create book: %w", err)
	}

	if err := s.userRepo.IncrementBooksAdded(ctx, ownerID); err != nil {
		log.Error().Err(err).Msg("Failed to increment books added count")
	}

	s.recorder.Record(ctx, activityModel.RecordInput{
		ActorID:       ownerID,
		Type:          activityModel.TypeBookAdded,
		Title:         fmt.Sprintf("Added %q to their shelf", book.Title),
		RelatedBookID: &book.ID,
		Metadata: map[string]interface{}{
			"book_title":  book.Title,
			"book_author": book.Author,
		},
	})

	return book, nil
}

// CreateReview stores a review, bumps the reviewer's counter and records
// the book_reviewed activity with the rating in its metadata.
func (s *bookService) CreateReview(ctx context.Context, userID, bookID uuid.UUID, req model.CreateReviewRequest) (*model.Review, error) {
	book, err := s.bookRepo.GetBookByID(ctx, bookID)
	if err != nil {
		if errors.Is(err, model.ErrBookNotFound) {
			return nil, model.NewBookNotFoundError()
		}
		return nil, fmt.Errorf("failed to get book: %w", err)
	}

	review := &model.Review{
		ID:        uuid.New(),
		UserID:    userID,
		BookID:    bookID,
		Rating:    req.Rating,
		Content:   req.Content,
		CreatedAt: time.Now(),
	}

	if err := s.bookRepo.CreateReview(ctx, review); err != nil {
		return nil, fmt.Errorf("failed to create review: %w", err)
	}

	if err := s.userRepo.IncrementReviews(ctx, userID); err != nil {
		log.Error().Err(err).Msg("Failed to increment reviews count")
	}

	s.recorder.Record(ctx, activityModel.RecordInput{
		ActorID:         userID,
		Type:            activityModel.TypeBookReviewed,
		Title:           fmt.Sprintf("Reviewed %q", book.Title),
		RelatedBookID:   &book.ID,
		RelatedReviewID: &review.ID,
		Metadata: map[string]interface{}{
			"book_title": book.Title,
			"rating":     review.Rating,
		},
	})

	return review, nil
}

// LikeBook likes a book idempotently. The book_liked activity is recorded
// only when this call created the like, so repeats never spam the feed.
func (s *bookService) LikeBook(ctx context.Context, userID, bookID uuid.UUID) (*model.BookLikeResponse, error) {
	book, err := s.bookRepo.GetBookByID(ctx, bookID)
	if err != nil {
		if errors.Is(err, model.ErrBookNotFound) {
			return nil, model.NewBookNotFoundError()
		}
		return nil, fmt.Errorf("failed to get book: %w", err)
	}

	newlyLiked, err := s.bookRepo.LikeBook(ctx, bookID, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to like book: %w", err)
	}

	if newlyLiked {
		s.recorder.Record(ctx, activityModel.RecordInput{
			ActorID:       userID,
			Type:          activityModel.TypeBookLiked,
			Title:         fmt.Sprintf("Liked %q", book.Title),
			RelatedBookID: &book.ID,
			Metadata: map[string]interface{}{
				"book_title": book.Title,
			},
		})
	}

	count, err := s.bookRepo.CountBookLikes(ctx, bookID)
	if err != nil {
		return nil, fmt.Errorf("failed to count book likes: %w", err)
	}

	return &model.BookLikeResponse{
		BookID:     bookID.String(),
		NewlyLiked: newlyLiked,
		LikesCount: count,
	}, nil
}
