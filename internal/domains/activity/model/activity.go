package model

import (
	"time"

	"github.com/google/uuid"
)

// ActivityType enumerates the user actions that produce feed entries.
type ActivityType string

const (
	TypeBookAdded      ActivityType = "book_added"
	TypeBookReviewed   ActivityType = "book_reviewed"
	TypeBookLiked      ActivityType = "book_liked"
	TypeUserFollowed   ActivityType = "user_followed"
	TypeProfileUpdated ActivityType = "profile_updated"
)

// AllTypes returns all valid activity types.
func AllTypes() []ActivityType {
	return []ActivityType{
		TypeBookAdded, TypeBookReviewed, TypeBookLiked,
		TypeUserFollowed, TypeProfileUpdated,
	}
}

// IsValid reports whether the type is one of the known activity types.
func (t ActivityType) IsValid() bool {
	switch t {
	case TypeBookAdded, TypeBookReviewed, TypeBookLiked, TypeUserFollowed, TypeProfileUpdated:
		return true
	}
	return false
}

func (t ActivityType) String() string {
	return string(t)
}

// Activity is a single entry in the activity log. Entries are append-mostly:
// after creation only the likes/comments child collections change.
// Soft-hiding happens through is_visible, never hard deletion.
type Activity struct {
	ID      uuid.UUID    `db:"id" json:"id"`
	ActorID uuid.UUID    `db:"actor_id" json:"actor_id"`
	Type    ActivityType `db:"type" json:"type"`

	Title       string `db:"title" json:"title"`
	Description string `db:"description" json:"description"`

	// Optional references to the entities the action touched
	RelatedBookID   *uuid.UUID `db:"related_book_id" json:"related_book_id,omitempty"`
	RelatedUserID   *uuid.UUID `db:"related_user_id" json:"related_user_id,omitempty"`
	RelatedReviewID *uuid.UUID `db:"related_review_id" json:"related_review_id,omitempty"`

	// Free-form display metadata (rating, book_title, user_name, ...)
	Metadata map[string]interface{} `db:"metadata" json:"metadata,omitempty"`

	IsVisible bool      `db:"is_visible" json:"is_visible"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

// Like is one entry in an activity's like set.
// At most one like exists per (activity, user).
type Like struct {
	ActivityID uuid.UUID `db:"activity_id" json:"activity_id"`
	UserID     uuid.UUID `db:"user_id" json:"user_id"`
	CreatedAt  time.Time `db:"created_at" json:"created_at"`
}

// Comment is one entry in an activity's ordered comment log.
type Comment struct {
	ID         uuid.UUID `db:"id" json:"id"`
	ActivityID uuid.UUID `db:"activity_id" json:"activity_id"`
	UserID     uuid.UUID `db:"user_id" json:"user_id"`
	Content    string    `db:"content" json:"content"`
	CreatedAt  time.Time `db:"created_at" json:"created_at"`
}

// RecordInput is what action producers hand to the recorder.
type RecordInput struct {
	ActorID         uuid.UUID
	Type            ActivityType
	Title           string
	Description     string
	RelatedBookID   *uuid.UUID
	RelatedUserID   *uuid.UUID
	RelatedReviewID *uuid.UUID
	Metadata        map[string]interface{}
}
