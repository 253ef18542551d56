package models

import "time"

// Post categories.
const (
	CategoryGeneral      = "general"
	CategoryAnnouncement = "announcement"
	CategoryQuestion     = "question"
)

// Post represents a social media post in PostgreSQL
type Post struct {
	ID           uint      `json:"id" gorm:"primaryKey"`
	UserID       uint      `json:"user_id" gorm:"index"`
	Content      string    `json:"content" gorm:"size:280"`
	ImageURL     string    `json:"image_url,omitempty"`
	Category     string    `json:"category" gorm:"size:20;default:general;index"`
	IsActive     bool      `json:"is_active" gorm:"default:true;index"`
	LikeCount    int       `json:"like_count" gorm:"default:0"`
	CommentCount int       `json:"comment_count" gorm:"default:0"`
	CreatedAt    time.Time `json:"created_at" gorm:"index"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// CreatePostRequest defines the request body for creating a new post
type CreatePostRequest struct {
	Content  string `json:"content" validate:"required,min=1,max=280"`
	ImageURL string `json:"image_url,omitempty" validate:"omitempty,url"`
	Category string `json:"category,omitempty" validate:"omitempty,oneof=general announcement question"`
}

// UpdatePostRequest defines the request body for updating an existing post
type UpdatePostRequest struct {
	Content  *string `json:"content,omitempty" validate:"omitempty,min=1,max=280"`
	ImageURL *string `json:"image_url,omitempty" validate:"omitempty,url|eq="`
	Category *string `json:"category,omitempty" validate:"omitempty,oneof=general announcement question"`
}
