package model

import (
	"time"

	"github.com/google/uuid"
)

// User is the domain entity, mapped 1:1 to the users table.
type User struct {
	// Identity
	ID       uuid.UUID `db:"id" json:"id"`
	Email    string    `db:"email" json:"email"`
	Username *string   `db:"username" json:"username,omitempty"`

	// Authentication
	PasswordHash string `db:"password_hash" json:"-"` // Never expose in JSON

	// Profile
	FullName string  `db:"full_name" json:"full_name"`
	Bio      *string `db:"bio" json:"bio,omitempty"`

	// Privacy: private accounts require follow-request approval
	IsPrivate bool `db:"is_private" json:"is_private"`

	// Denormalized social counters. These are cached derived state and may
	// transiently drift from the true graph; RecomputeStats is authoritative.
	Stats SocialStats `json:"social_stats"`

	// Timestamps
	CreatedAt time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt time.Time  `db:"updated_at" json:"updated_at"`
	DeletedAt *time.Time `db:"deleted_at" json:"-"` // Soft delete
}

// SocialStats holds the denormalized per-user counters.
type SocialStats struct {
	FollowersCount  int `db:"followers_count" json:"followers_count"`
	FollowingCount  int `db:"following_count" json:"following_count"`
	BooksAddedCount int `db:"books_added_count" json:"books_added_count"`
	ReviewsCount    int `db:"reviews_count" json:"reviews_count"`
}

// IsDeleted reports whether the account has been soft-deleted.
func (u *User) IsDeleted() bool {
	return u.DeletedAt != nil
}

// DisplayName returns the name shown in feeds and follower lists.
func (u *User) DisplayName() string {
	if u.Username != nil && *u.Username != "" {
		return *u.Username
	}
	return u.FullName
}
