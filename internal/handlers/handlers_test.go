package handlers

import (
	"context"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/arefin88/pulse/backend/internal/models"
	"github.com/arefin88/pulse/backend/internal/repositories"
	"github.com/arefin88/pulse/backend/validators"
	"github.com/glebarez/sqlite"
	"github.com/labstack/echo/v4"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// fakeNotificationRepo is an in-memory stand-in for the Mongo-backed
// notification repository.
type fakeNotificationRepo struct {
	notifications []models.Notification
	failCreate    bool
}

func (f *fakeNotificationRepo) CreateNotification(_ context.Context, n *models.Notification) error {
	if f.failCreate {
		return context.DeadlineExceeded
	}
	n.ID = primitive.NewObjectID()
	n.CreatedAt = time.Now()
	f.notifications = append(f.notifications, *n)
	return nil
}

func (f *fakeNotificationRepo) GetNotificationByID(_ context.Context, id string) (*models.Notification, error) {
	for i := range f.notifications {
		if f.notifications[i].ID.Hex() == id {
			n := f.notifications[i]
			return &n, nil
		}
	}
	return nil, repositories.ErrNotificationNotFound
}

func (f *fakeNotificationRepo) GetByRecipientID(_ context.Context, recipientID uint, page, limit int) ([]models.Notification, int64, error) {
	var all []models.Notification
	for _, n := range f.notifications {
		if n.RecipientID == recipientID {
			all = append(all, n)
		}
	}
	total := int64(len(all))
	start := (page - 1) * limit
	if start >= len(all) {
		return []models.Notification{}, total, nil
	}
	end := start + limit
	if end > len(all) {
		end = len(all)
	}
	return all[start:end], total, nil
}

func (f *fakeNotificationRepo) GetUnreadCount(_ context.Context, recipientID uint) (int64, error) {
	var count int64
	for _, n := range f.notifications {
		if n.RecipientID == recipientID && !n.IsRead {
			count++
		}
	}
	return count, nil
}

func (f *fakeNotificationRepo) MarkAsRead(_ context.Context, id string) error {
	for i := range f.notifications {
		if f.notifications[i].ID.Hex() == id {
			f.notifications[i].IsRead = true
			return nil
		}
	}
	return repositories.ErrNotificationNotFound
}

func (f *fakeNotificationRepo) MarkAllAsRead(_ context.Context, recipientID uint) error {
	for i := range f.notifications {
		if f.notifications[i].RecipientID == recipientID {
			f.notifications[i].IsRead = true
		}
	}
	return nil
}

// fakeTokenRepo is an in-memory stand-in for the Redis token repository
type fakeTokenRepo struct {
	refresh map[string]uint
	reset   map[string]uint
}

func newFakeTokenRepo() *fakeTokenRepo {
	return &fakeTokenRepo{refresh: map[string]uint{}, reset: map[string]uint{}}
}

func (f *fakeTokenRepo) StoreRefreshToken(_ context.Context, token string, userID uint, _ time.Duration) error {
	f.refresh[token] = userID
	return nil
}

func (f *fakeTokenRepo) GetRefreshTokenUser(_ context.Context, token string) (uint, error) {
	id, ok := f.refresh[token]
	if !ok {
		return 0, repositories.ErrTokenNotFound
	}
	return id, nil
}

func (f *fakeTokenRepo) DeleteRefreshToken(_ context.Context, token string) error {
	delete(f.refresh, token)
	return nil
}

func (f *fakeTokenRepo) StoreResetToken(_ context.Context, token string, userID uint, _ time.Duration) error {
	f.reset[token] = userID
	return nil
}

func (f *fakeTokenRepo) ConsumeResetToken(_ context.Context, token string) (uint, error) {
	id, ok := f.reset[token]
	if !ok {
		return 0, repositories.ErrTokenNotFound
	}
	delete(f.reset, token)
	return id, nil
}

// testEnv wires SQLite-backed repositories behind the handlers under test
type testEnv struct {
	e           *echo.Echo
	db          *gorm.DB
	userRepo    repositories.UserRepository
	postRepo    repositories.PostRepository
	followRepo  repositories.FollowRepository
	likeRepo    repositories.LikeRepository
	commentRepo repositories.CommentRepository
	notifRepo   *fakeNotificationRepo
	tokenRepo   *fakeTokenRepo
}

func newTestEnv(t *testing.T) *testEnv {
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

	e := echo.New()
	e.Validator = validators.NewValidator()

	return &testEnv{
		e:           e,
		db:          db,
		userRepo:    repositories.NewPostgresUserRepository(db),
		postRepo:    repositories.NewPostgresPostRepository(db),
		followRepo:  repositories.NewPostgresFollowRepository(db),
		likeRepo:    repositories.NewPostgresLikeRepository(db),
		commentRepo: repositories.NewPostgresCommentRepository(db),
		notifRepo:   &fakeNotificationRepo{},
		tokenRepo:   newFakeTokenRepo(),
	}
}

// testPasswordHash is the bcrypt hash of "password", shared across fixtures.
// MinCost keeps user creation cheap.
var testPasswordHash = func() string {
	hash, err := bcrypt.GenerateFromPassword([]byte("password"), bcrypt.MinCost)
	if err != nil {
		panic(err)
	}
	return string(hash)
}()

// createUser inserts a user row directly
func (env *testEnv) createUser(t *testing.T, username, role string) *models.User {
	t.Helper()
	user := &models.User{
		Username:          username,
		Email:             username + "@example.com",
		Password:          testPasswordHash,
		FirstName:         "Test",
		LastName:          "User",
		Role:              role,
		ProfileVisibility: models.VisibilityPublic,
		IsActive:          true,
	}
	if err := env.db.Create(user).Error; err != nil {
		t.Fatalf("failed to create test user %s: %v", username, err)
	}
	return user
}

// createPost inserts a post through the repository so counters move
func (env *testEnv) createPost(t *testing.T, userID uint, content string) *models.Post {
	t.Helper()
	post := &models.Post{
		UserID:   userID,
		Content:  content,
		Category: models.CategoryGeneral,
		IsActive: true,
	}
	if err := env.postRepo.CreatePost(post); err != nil {
		t.Fatalf("failed to create test post: %v", err)
	}
	return post
}

// newContext builds an echo context carrying the given user's claims
func (env *testEnv) newContext(method, target, body string, user *models.User) (echo.Context, *httptest.ResponseRecorder) {
	var req = httptest.NewRequest(method, target, strings.NewReader(body))
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	c := env.e.NewContext(req, rec)
	if user != nil {
		c.Set("user", &models.JwtCustomClaims{
			UserID:   user.ID,
			Username: user.Username,
			Role:     user.Role,
		})
	}
	return c, rec
}

// httpStatus extracts the status code from a handler result
func httpStatus(t *testing.T, err error, rec *httptest.ResponseRecorder) int {
	t.Helper()
	if err == nil {
		return rec.Code
	}
	he, ok := err.(*echo.HTTPError)
	if !ok {
		t.Fatalf("unexpected error type: %v", err)
	}
	return he.Code
}
