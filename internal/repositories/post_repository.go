package repositories

import (
	"github.com/arefin88/pulse/backend/internal/models"
	"gorm.io/gorm"
)

// PostRepository defines the interface for post data operations
type PostRepository interface {
	CreatePost(post *models.Post) error
	GetPostByID(id uint) (*models.Post, error)
	GetPosts(page, limit int) ([]models.Post, int64, error)
	GetFeed(authorIDs []uint, page, limit int) ([]models.Post, int64, error)
	GetAllPosts(page, limit int) ([]models.Post, int64, error)
	UpdatePost(post *models.Post) error
	DeletePost(post *models.Post) error
	CountPosts() (int64, error)
}

// PostgresPostRepository implements PostRepository for PostgreSQL
type PostgresPostRepository struct {
	db *gorm.DB
}

// NewPostgresPostRepository creates a new PostgresPostRepository
func NewPostgresPostRepository(db *gorm.DB) *PostgresPostRepository {
	return &PostgresPostRepository{db: db}
}

// CreatePost inserts the post and bumps the author's posts_count in one
// transaction.
func (r *PostgresPostRepository) CreatePost(post *models.Post) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(post).Error; err != nil {
			return err
		}
		return tx.Model(&models.User{}).Where("id = ?", post.UserID).
			UpdateColumn("posts_count", gorm.Expr("posts_count + 1")).Error
	})
}

// GetPostByID retrieves a post by ID
func (r *PostgresPostRepository) GetPostByID(id uint) (*models.Post, error) {
	var post models.Post
	if err := r.db.First(&post, id).Error; err != nil {
		return nil, err
	}
	return &post, nil
}

// GetPosts retrieves a page of active posts, newest first (the explore listing)
func (r *PostgresPostRepository) GetPosts(page, limit int) ([]models.Post, int64, error) {
	var posts []models.Post
	var total int64

	q := r.db.Model(&models.Post{}).Where("is_active = ?", true)
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * limit
	err := q.Order("created_at DESC").Offset(offset).Limit(limit).Find(&posts).Error
	return posts, total, err
}

// GetFeed retrieves active posts authored by any of the given users,
// newest first. Callers pass the actor's own ID plus their followed set.
func (r *PostgresPostRepository) GetFeed(authorIDs []uint, page, limit int) ([]models.Post, int64, error) {
	var posts []models.Post
	var total int64

	if len(authorIDs) == 0 {
		return posts, 0, nil
	}

	q := r.db.Model(&models.Post{}).Where("is_active = ? AND user_id IN (?)", true, authorIDs)
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * limit
	err := q.Order("created_at DESC").Offset(offset).Limit(limit).Find(&posts).Error
	return posts, total, err
}

// GetAllPosts retrieves a page of posts including inactive ones (admin listing)
func (r *PostgresPostRepository) GetAllPosts(page, limit int) ([]models.Post, int64, error) {
	var posts []models.Post
	var total int64

	if err := r.db.Model(&models.Post{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * limit
	err := r.db.Order("created_at DESC").Offset(offset).Limit(limit).Find(&posts).Error
	return posts, total, err
}

// UpdatePost updates an existing post
func (r *PostgresPostRepository) UpdatePost(post *models.Post) error {
	return r.db.Save(post).Error
}

// DeletePost removes the post and decrements the author's posts_count,
// floored at zero, in one transaction. Dependent likes and comments are
// removed with it.
func (r *PostgresPostRepository) DeletePost(post *models.Post) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		res := tx.Delete(&models.Post{}, post.ID)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		if err := tx.Where("post_id = ?", post.ID).Delete(&models.Like{}).Error; err != nil {
			return err
		}
		if err := tx.Where("post_id = ?", post.ID).Delete(&models.Comment{}).Error; err != nil {
			return err
		}
		return tx.Model(&models.User{}).Where("id = ? AND posts_count > 0", post.UserID).
			UpdateColumn("posts_count", gorm.Expr("posts_count - 1")).Error
	})
}

// CountPosts returns the total number of post rows
func (r *PostgresPostRepository) CountPosts() (int64, error) {
	var count int64
	err := r.db.Model(&models.Post{}).Count(&count).Error
	return count, err
}
