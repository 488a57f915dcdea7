package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"bookcircle-backend/internal/domains/activity/model"
	"bookcircle-backend/internal/domains/activity/repository"
	userRepo "bookcircle-backend/internal/domains/user/repository"
)

// =====================================================
// ENGAGEMENT SERVICE IMPLEMENTATION
// =====================================================

type engagementService struct {
	activityRepo repository.ActivityRepository
	userRepo     userRepo.UserRepository
}

func NewEngagementService(
	activityRepo repository.ActivityRepository,
	users userRepo.UserRepository,
) EngagementService {
	return &engagementService{
		activityRepo: activityRepo,
		userRepo:     users,
	}
}

// ToggleLike flips the (activity, user) like: removes it when present,
// inserts it otherwise. Calling it twice restores the original state.
// Concurrent toggles by the same user are a read-modify-write race backed
// by the unique index; the second writer sees ErrAlreadyLiked and the state
// settles on liked.
func (s *engagementService) ToggleLike(ctx context.Context, activityID, userID uuid.UUID) (*model.LikeResponse, error) {
	if _, err := s.activityRepo.GetByID(ctx, activityID); err != nil {
		if err == model.ErrActivityNotFound {
			return nil, model.NewActivityNotFoundError()
		}
		return nil, fmt.Errorf("failed to get activity: %w", err)
	}

	liked, err := s.activityRepo.HasLike(ctx, activityID, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to check like: %w", err)
	}

	if liked {
		if err := s.activityRepo.RemoveLike(ctx, activityID, userID); err != nil {
			return nil, fmt.Errorf("failed to remove like: %w", err)
		}
	} else {
		like := &model.Like{
			ActivityID: activityID,
			UserID:     userID,
			CreatedAt:  time.Now(),
		}
		if err := s.activityRepo.AddLike(ctx, like); err != nil && err != model.ErrAlreadyLiked {
			return nil, fmt.Errorf("failed to add like: %w", err)
		}
	}

	count, err := s.activityRepo.CountLikes(ctx, activityID)
	if err != nil {
		return nil, fmt.Errorf("failed to count likes: %w", err)
	}

	return &model.LikeResponse{
		IsLiked:    !liked,
		LikesCount: count,
	}, nil
}

// AddComment appends a comment to the activity's ordered comment log.
func (s *engagementService) AddComment(ctx context.Context, activityID, userID uuid.UUID, content string) (*model.CommentResponse, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, model.NewEmptyCommentError()
	}

	if _, err := s.activityRepo.GetByID(ctx, activityID); err != nil {
		if err == model.ErrActivityNotFound {
			return nil, model.NewActivityNotFoundError()
		}
		return nil, fmt.Errorf("failed to get activity: %w", err)
	}

	author, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get comment author: %w", err)
	}

	comment := &model.Comment{
		ID:         uuid.New(),
		ActivityID: activityID,
		UserID:     userID,
		Content:    content,
		CreatedAt:  time.Now(),
	}

	if err := s.activityRepo.AddComment(ctx, comment); err != nil {
		return nil, fmt.Errorf("failed to add comment: %w", err)
	}

	count, err := s.activityRepo.CountComments(ctx, activityID)
	if err != nil {
		return nil, fmt.Errorf("failed to count comments: %w", err)
	}

	return &model.CommentResponse{
		ID:      comment.ID,
		Content: comment.Content,
		User: model.ActorInfo{
			ID:       author.ID,
			FullName: author.FullName,
			Username: author.Username,
		},
		CreatedAt:     comment.CreatedAt,
		CommentsCount: count,
	}, nil
}

// DeleteComment removes a comment. Allowed for the comment author and for
// the owner of the activity the comment sits on (the post owner moderates
// comments on their own post).
func (s *engagementService) DeleteComment(ctx context.Context, activityID, commentID, actingUserID uuid.UUID) (*model.DeleteCommentResponse, error) {
	activity, err := s.activityRepo.GetByID(ctx, activityID)
	if err != nil {
		if err == model.ErrActivityNotFound {
			return nil, model.NewActivityNotFoundError()
		}
		return nil, fmt.Errorf("failed to get activity: %w", err)
	}

	comment, err := s.activityRepo.GetComment(ctx, activityID, commentID)
	if err != nil {
		if err == model.ErrCommentNotFound {
			return nil, model.NewCommentNotFoundError()
		}
		return nil, fmt.Errorf("failed to get comment: %w", err)
	}

	if comment.UserID != actingUserID && activity.ActorID != actingUserID {
		return nil, model.NewNotCommentOwnerError()
	}

	if err := s.activityRepo.DeleteComment(ctx, activityID, commentID); err != nil {
		return nil, fmt.Errorf("failed to delete comment: %w", err)
	}

	count, err := s.activityRepo.CountComments(ctx, activityID)
	if err != nil {
		return nil, fmt.Errorf("failed to count comments: %w", err)
	}

	return &model.DeleteCommentResponse{CommentsCount: count}, nil
}
