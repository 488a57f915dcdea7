package model

import (
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"

	"bookcircle-backend/internal/shared"
)

// =====================================================
// REQUEST DTOs
// =====================================================

// FeedRequest query parameters for the personalized feed
type FeedRequest struct {
	Page  int `form:"page"`
	Limit int `form:"limit"`
}

func (r *FeedRequest) Validate() error {
	if r.Page < 1 {
		r.Page = 1
	}
	if r.Limit < 1 || r.Limit > 100 {
		r.Limit = 20
	}
	return nil
}

// PublicFeedRequest query parameters for the public feed
type PublicFeedRequest struct {
	Page  int    `form:"page"`
	Limit int    `form:"limit"`
	Type  string `form:"type"`
}

func (r *PublicFeedRequest) Validate() error {
	if r.Page < 1 {
		r.Page = 1
	}
	if r.Limit < 1 || r.Limit > 100 {
		r.Limit = 20
	}
	if r.Type != "" && !ActivityType(r.Type).IsValid() {
		return NewInvalidTypeError(r.Type)
	}
	return nil
}

// AddCommentRequest request to comment on an activity
type AddCommentRequest struct {
	Content string `json:"content"`
}

func (r AddCommentRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Content,
			validation.Required.Error("comment content is required"),
			validation.Length(1, 1000).Error("comment must be 1-1000 characters"),
		),
	)
}

// =====================================================
// RESPONSE DTOs
// =====================================================

// ActorInfo display fields for the user who produced an activity
type ActorInfo struct {
	ID       uuid.UUID `json:"id"`
	FullName string    `json:"full_name"`
	Username *string   `json:"username,omitempty"`
}

// FeedEntry one activity as seen by a viewer, with derived per-viewer state.
// Actor is nil when the account behind the activity has been deleted; such
// entries are dropped before the response is built.
type FeedEntry struct {
	ID   uuid.UUID    `json:"id"`
	Type ActivityType `json:"type"`

	Title       string `json:"title"`
	Description string `json:"description"`

	Actor *ActorInfo `json:"actor"`

	RelatedBookID   *uuid.UUID `json:"related_book_id,omitempty"`
	RelatedUserID   *uuid.UUID `json:"related_user_id,omitempty"`
	RelatedReviewID *uuid.UUID `json:"related_review_id,omitempty"`

	Metadata map[string]interface{} `json:"metadata,omitempty"`

	LikesCount    int  `json:"likes_count"`
	CommentsCount int  `json:"comments_count"`
	IsLikedByUser bool `json:"is_liked_by_user"`

	CreatedAt time.Time `json:"created_at"`
}

// FeedResponse response for feed endpoints
type FeedResponse struct {
	Activities []FeedEntry           `json:"activities"`
	Pagination shared.PaginationMeta `json:"pagination"`
}

// LikeResponse response for toggleLike
type LikeResponse struct {
	IsLiked    bool `json:"is_liked"`
	LikesCount int  `json:"likes_count"`
}

// CommentResponse response for addComment
type CommentResponse struct {
	ID            uuid.UUID `json:"id"`
	Content       string    `json:"content"`
	User          ActorInfo `json:"user"`
	CreatedAt     time.Time `json:"created_at"`
	CommentsCount int       `json:"comments_count"`
}

// DeleteCommentResponse response for deleteComment
type DeleteCommentResponse struct {
	CommentsCount int `json:"comments_count"`
}
