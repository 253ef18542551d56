package repositories

import (
	"testing"

	"github.com/arefin88/pulse/backend/internal/models"
	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// newTestDB opens an isolated in-memory SQLite database with the full schema
// migrated. A single connection keeps the in-memory database alive for the
// whole test.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("failed to get sql.DB: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)

	if err := db.AutoMigrate(
		&models.User{},
		&models.Post{},
		&models.Follow{},
		&models.Like{},
		&models.Comment{},
	); err != nil {
		t.Fatalf("failed to migrate test schema: %v", err)
	}

	return db
}

// createTestUser inserts a user row and fails the test on error
func createTestUser(t *testing.T, db *gorm.DB, username string) *models.User {
	t.Helper()
	user := &models.User{
		Username:          username,
		Email:             username + "@example.com",
		Password:          "hashed-password",
		FirstName:         "Test",
		LastName:          "User",
		Role:              models.RoleUser,
		ProfileVisibility: models.VisibilityPublic,
		IsActive:          true,
	}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("failed to create test user %s: %v", username, err)
	}
	return user
}

// createTestPost inserts an active post via the repository so counters are
// maintained the same way production writes are.
func createTestPost(t *testing.T, db *gorm.DB, userID uint, content string) *models.Post {
	t.Helper()
	post := &models.Post{
		UserID:   userID,
		Content:  content,
		Category: models.CategoryGeneral,
		IsActive: true,
	}
	if err := NewPostgresPostRepository(db).CreatePost(post); err != nil {
		t.Fatalf("failed to create test post: %v", err)
	}
	return post
}

// reloadUser fetches a fresh copy of a user row
func reloadUser(t *testing.T, db *gorm.DB, id uint) *models.User {
	t.Helper()
	var user models.User
	if err := db.First(&user, id).Error; err != nil {
		t.Fatalf("failed to reload user %d: %v", id, err)
	}
	return &user
}

// reloadPost fetches a fresh copy of a post row
func reloadPost(t *testing.T, db *gorm.DB, id uint) *models.Post {
	t.Helper()
	var post models.Post
	if err := db.First(&post, id).Error; err != nil {
		t.Fatalf("failed to reload post %d: %v", id, err)
	}
	return &post
}
