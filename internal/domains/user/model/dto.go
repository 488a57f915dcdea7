package model

import (
	"regexp"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
	"github.com/google/uuid"
)

var usernamePattern = regexp.MustCompile(`^[a-z0-9_]+$`)

// =====================================================
// REQUEST DTOs
// =====================================================

// RegisterRequest request to create an account
type RegisterRequest struct {
	Email    string  `json:"email"`
	Password string  `json:"password"`
	FullName string  `json:"full_name"`
	Username *string `json:"username,omitempty"`
}

func (r RegisterRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Email,
			validation.Required.Error("email is required"),
			is.Email.Error("invalid email format"),
			validation.Length(5, 255),
		),
		validation.Field(&r.Password,
			validation.Required.Error("password is required"),
			validation.Length(8, 128).Error("password must be 8-128 characters"),
		),
		validation.Field(&r.FullName,
			validation.Required.Error("full name is required"),
			validation.Length(1, 100),
		),
		validation.Field(&r.Username,
			validation.Length(3, 30),
			validation.Match(usernamePattern).Error("username may only contain lowercase letters, digits and underscores"),
		),
	)
}

// LoginRequest request to sign in
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (r LoginRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Email, validation.Required, is.Email),
		validation.Field(&r.Password, validation.Required),
	)
}

// UpdateProfileRequest request to update the caller's profile.
// Nil fields are left unchanged.
type UpdateProfileRequest struct {
	FullName  *string `json:"full_name,omitempty"`
	Username  *string `json:"username,omitempty"`
	Bio       *string `json:"bio,omitempty"`
	IsPrivate *bool   `json:"is_private,omitempty"`
}

func (r UpdateProfileRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.FullName, validation.Length(1, 100)),
		validation.Field(&r.Username,
			validation.Length(3, 30),
			validation.Match(usernamePattern).Error("username may only contain lowercase letters, digits and underscores"),
		),
		validation.Field(&r.Bio, validation.Length(0, 500)),
	)
}

// =====================================================
// RESPONSE DTOs
// =====================================================

// AuthResponse response for register/login
type AuthResponse struct {
	User         ProfileResponse `json:"user"`
	AccessToken  string          `json:"access_token"`
	RefreshToken string          `json:"refresh_token"`
}

// ProfileResponse public view of a user
type ProfileResponse struct {
	ID          uuid.UUID   `json:"id"`
	FullName    string      `json:"full_name"`
	Username    *string     `json:"username,omitempty"`
	Bio         *string     `json:"bio,omitempty"`
	IsPrivate   bool        `json:"is_private"`
	Stats       SocialStats `json:"social_stats"`
	IsFollowing *bool       `json:"is_following,omitempty"` // set when a viewer is present
	CreatedAt   time.Time   `json:"created_at"`
}

// DashboardStatsResponse response for the dashboard stats endpoint.
// Counters are recomputed from source of truth before being returned,
// so this response is always authoritative.
type DashboardStatsResponse struct {
	Stats        SocialStats `json:"social_stats"`
	RecomputedAt time.Time   `json:"recomputed_at"`
}
