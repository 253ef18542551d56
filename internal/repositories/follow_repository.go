package repositories

import (
	"github.com/arefin88/pulse/backend/internal/models"
	"gorm.io/gorm"
)

// FollowRepository defines the interface for follow data operations
type FollowRepository interface {
	CreateFollow(follow *models.Follow) error
	DeleteFollow(followerID, followingID uint) error
	IsFollowing(followerID, followingID uint) (bool, error)
	GetFollowers(userID uint, page, limit int) ([]models.User, int64, error)
	GetFollowing(userID uint, page, limit int) ([]models.User, int64, error)
	GetFollowingIDs(userID uint) ([]uint, error)
}

// PostgresFollowRepository implements FollowRepository for PostgreSQL
type PostgresFollowRepository struct {
	db *gorm.DB
}

// NewPostgresFollowRepository creates a new PostgresFollowRepository
func NewPostgresFollowRepository(db *gorm.DB) *PostgresFollowRepository {
	return &PostgresFollowRepository{db: db}
}

// CreateFollow inserts the edge and bumps both users' counters in one
// transaction. A duplicate edge fails on the unique index and surfaces as
// gorm.ErrDuplicatedKey with no counter change.
func (r *PostgresFollowRepository) CreateFollow(follow *models.Follow) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(follow).Error; err != nil {
			return err
		}
		if err := tx.Model(&models.User{}).Where("id = ?", follow.FollowerID).
			UpdateColumn("following_count", gorm.Expr("following_count + 1")).Error; err != nil {
			return err
		}
		return tx.Model(&models.User{}).Where("id = ?", follow.FollowingID).
			UpdateColumn("followers_count", gorm.Expr("followers_count + 1")).Error
	})
}

// DeleteFollow removes the edge and decrements both counters, floored at
// zero, in one transaction. Returns gorm.ErrRecordNotFound when the edge
// does not exist.
func (r *PostgresFollowRepository) DeleteFollow(followerID, followingID uint) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		res := tx.Where("follower_id = ? AND following_id = ?", followerID, followingID).
			Delete(&models.Follow{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		if err := tx.Model(&models.User{}).Where("id = ? AND following_count > 0", followerID).
			UpdateColumn("following_count", gorm.Expr("following_count - 1")).Error; err != nil {
			return err
		}
		return tx.Model(&models.User{}).Where("id = ? AND followers_count > 0", followingID).
			UpdateColumn("followers_count", gorm.Expr("followers_count - 1")).Error
	})
}

// IsFollowing reports whether the follower -> following edge exists
func (r *PostgresFollowRepository) IsFollowing(followerID, followingID uint) (bool, error) {
	var count int64
	if err := r.db.Model(&models.Follow{}).
		Where("follower_id = ? AND following_id = ?", followerID, followingID).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// GetFollowers retrieves a page of users following the given user
func (r *PostgresFollowRepository) GetFollowers(userID uint, page, limit int) ([]models.User, int64, error) {
	var users []models.User
	var total int64

	sub := r.db.Model(&models.Follow{}).Select("follower_id").Where("following_id = ?", userID)
	q := r.db.Model(&models.User{}).Where("id IN (?)", sub)
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * limit
	err := q.Order("created_at DESC").Offset(offset).Limit(limit).Find(&users).Error
	return users, total, err
}

// GetFollowing retrieves a page of users the given user follows
func (r *PostgresFollowRepository) GetFollowing(userID uint, page, limit int) ([]models.User, int64, error) {
	var users []models.User
	var total int64

	sub := r.db.Model(&models.Follow{}).Select("following_id").Where("follower_id = ?", userID)
	q := r.db.Model(&models.User{}).Where("id IN (?)", sub)
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * limit
	err := q.Order("created_at DESC").Offset(offset).Limit(limit).Find(&users).Error
	return users, total, err
}

// GetFollowingIDs returns the IDs of everyone the user follows (feed source set)
func (r *PostgresFollowRepository) GetFollowingIDs(userID uint) ([]uint, error) {
	var ids []uint
	err := r.db.Model(&models.Follow{}).Where("follower_id = ?", userID).
		Pluck("following_id", &ids).Error
	return ids, err
}
