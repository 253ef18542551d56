package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Notification types.
const (
	NotificationFollow  = "follow"
	NotificationLike    = "like"
	NotificationComment = "comment"
	NotificationMention = "mention"
)

// Notification represents a user notification stored in MongoDB.
// Writes are best-effort: a failed insert is logged and never rolls back
// the follow/like/comment that triggered it. Actor is never the recipient.
type Notification struct {
	ID          primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	Type        string             `json:"type" bson:"type"`
	ActorID     uint               `json:"actor_id" bson:"actor_id"`
	RecipientID uint               `json:"recipient_id" bson:"recipient_id"`
	PostID      uint               `json:"post_id,omitempty" bson:"post_id,omitempty"`
	CommentID   uint               `json:"comment_id,omitempty" bson:"comment_id,omitempty"`
	Message     string             `json:"message" bson:"message"`
	IsRead      bool               `json:"is_read" bson:"is_read"`
	CreatedAt   time.Time          `json:"created_at" bson:"created_at"`
}
