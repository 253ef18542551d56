package repositories

import (
	"github.com/arefin88/pulse/backend/internal/models"
	"gorm.io/gorm"
)

// LikeRepository defines the interface for like data operations
type LikeRepository interface {
	CreateLike(like *models.Like) error
	DeleteLike(userID, postID uint) error
	HasUserLikedPost(userID, postID uint) (bool, error)
	CountLikes() (int64, error)
}

// PostgresLikeRepository implements LikeRepository for PostgreSQL
type PostgresLikeRepository struct {
	db *gorm.DB
}

// NewPostgresLikeRepository creates a new PostgresLikeRepository
func NewPostgresLikeRepository(db *gorm.DB) *PostgresLikeRepository {
	return &PostgresLikeRepository{db: db}
}

// CreateLike inserts the edge and bumps the post's like_count in one
// transaction. A duplicate like fails on the unique index and surfaces as
// gorm.ErrDuplicatedKey with no counter change.
func (r *PostgresLikeRepository) CreateLike(like *models.Like) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(like).Error; err != nil {
			return err
		}
		return tx.Model(&models.Post{}).Where("id = ?", like.PostID).
			UpdateColumn("like_count", gorm.Expr("like_count + 1")).Error
	})
}

// DeleteLike removes the edge and decrements like_count, floored at zero,
// in one transaction. Returns gorm.ErrRecordNotFound when no edge exists.
func (r *PostgresLikeRepository) DeleteLike(userID, postID uint) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		res := tx.Where("user_id = ? AND post_id = ?", userID, postID).Delete(&models.Like{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return tx.Model(&models.Post{}).Where("id = ? AND like_count > 0", postID).
			UpdateColumn("like_count", gorm.Expr("like_count - 1")).Error
	})
}

// HasUserLikedPost reports whether the user has liked the post
func (r *PostgresLikeRepository) HasUserLikedPost(userID, postID uint) (bool, error) {
	var count int64
	if err := r.db.Model(&models.Like{}).
		Where("user_id = ? AND post_id = ?", userID, postID).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// CountLikes returns the total number of like rows
func (r *PostgresLikeRepository) CountLikes() (int64, error) {
	var count int64
	err := r.db.Model(&models.Like{}).Count(&count).Error
	return count, err
}
