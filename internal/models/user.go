package models

import (
	"time"

	"github.com/golang-jwt/jwt/v4"
)

// Role values stored on a user row.
const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// Profile visibility values.
const (
	VisibilityPublic        = "public"
	VisibilityPrivate       = "private"
	VisibilityFollowersOnly = "followers_only"
)

// User represents an account in PostgreSQL
type User struct {
	ID                uint      `json:"id" gorm:"primaryKey"`
	Username          string    `json:"username" gorm:"size:30;uniqueIndex"`
	Email             string    `json:"email" gorm:"uniqueIndex"`
	Password          string    `json:"-"` // bcrypt hash, never serialized
	FirstName         string    `json:"first_name" gorm:"size:50"`
	LastName          string    `json:"last_name" gorm:"size:50"`
	Bio               string    `json:"bio" gorm:"size:160"`
	AvatarURL         string    `json:"avatar_url"`
	Website           string    `json:"website"`
	Location          string    `json:"location" gorm:"size:100"`
	Role              string    `json:"role" gorm:"size:10;default:user"`
	ProfileVisibility string    `json:"profile_visibility" gorm:"size:20;default:public"`
	IsActive          bool      `json:"is_active" gorm:"default:true"`
	FollowersCount    int       `json:"followers_count" gorm:"default:0"`
	FollowingCount    int       `json:"following_count" gorm:"default:0"`
	PostsCount        int       `json:"posts_count" gorm:"default:0"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`
}

// UserCompact is the trimmed author shape embedded in feed/post responses
type UserCompact struct {
	ID        uint   `json:"id"`
	Username  string `json:"username"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	AvatarURL string `json:"avatar_url"`
}

// ToCompact converts a User into its compact representation
func (u *User) ToCompact() UserCompact {
	return UserCompact{
		ID:        u.ID,
		Username:  u.Username,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		AvatarURL: u.AvatarURL,
	}
}

// DisplayName returns the name shown in notifications
func (u *User) DisplayName() string {
	if u.FirstName != "" {
		return u.FirstName + " " + u.LastName
	}
	return u.Username
}

// RegisterRequest defines the request body for user registration
type RegisterRequest struct {
	Email     string `json:"email" validate:"required,email"`
	Username  string `json:"username" validate:"required,min=3,max=30,alphanum"`
	Password  string `json:"password" validate:"required,min=8"`
	FirstName string `json:"first_name" validate:"required,min=1,max=50"`
	LastName  string `json:"last_name" validate:"required,min=1,max=50"`
}

// LoginRequest accepts either an email or a username as the identifier
type LoginRequest struct {
	Email    string `json:"email" validate:"omitempty,email"`
	Username string `json:"username" validate:"omitempty,min=3,max=30"`
	Password string `json:"password" validate:"required"`
}

// UpdateUserRequest defines the request body for profile updates
type UpdateUserRequest struct {
	FirstName         *string `json:"first_name,omitempty" validate:"omitempty,min=1,max=50"`
	LastName          *string `json:"last_name,omitempty" validate:"omitempty,min=1,max=50"`
	Bio               *string `json:"bio,omitempty" validate:"omitempty,max=160"`
	Website           *string `json:"website,omitempty"`
	Location          *string `json:"location,omitempty" validate:"omitempty,max=100"`
	ProfileVisibility *string `json:"profile_visibility,omitempty" validate:"omitempty,oneof=public private followers_only"`
}

// ChangePasswordRequest defines the request body for password changes
type ChangePasswordRequest struct {
	OldPassword string `json:"old_password" validate:"required"`
	NewPassword string `json:"new_password" validate:"required,min=8"`
}

// PasswordResetRequest defines the request body for password reset initiation
type PasswordResetRequest struct {
	Email string `json:"email" validate:"required,email"`
}

// JwtCustomClaims are custom claims extending standard jwt.RegisteredClaims
type JwtCustomClaims struct {
	UserID   uint   `json:"user_id"`
	Username string `json:"username"`
	Role     string `json:"role"`
	jwt.RegisteredClaims
}
