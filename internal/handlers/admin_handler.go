package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/arefin88/pulse/backend/internal/cache"
	"github.com/arefin88/pulse/backend/internal/models"
	"github.com/arefin88/pulse/backend/internal/repositories"
	"github.com/arefin88/pulse/backend/pkg/logging"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const (
	statsCacheKey = "admin:stats"
	statsCacheTTL = 60 * time.Second
)

// AdminHandler handles admin-only HTTP requests
type AdminHandler struct {
	userRepository    repositories.UserRepository
	postRepository    repositories.PostRepository
	likeRepository    repositories.LikeRepository
	commentRepository repositories.CommentRepository
	statsCache        *cache.Cache
}

// NewAdminHandler creates a new AdminHandler
func NewAdminHandler(
	userRepo repositories.UserRepository,
	postRepo repositories.PostRepository,
	likeRepo repositories.LikeRepository,
	commentRepo repositories.CommentRepository,
	statsCache *cache.Cache,
) *AdminHandler {
	return &AdminHandler{
		userRepository:    userRepo,
		postRepository:    postRepo,
		likeRepository:    likeRepo,
		commentRepository: commentRepo,
		statsCache:        statsCache,
	}
}

// RegisterAdminRoutes registers admin routes; the group must carry the
// admin-role middleware.
func (h *AdminHandler) RegisterAdminRoutes(g *echo.Group) {
	g.GET("/admin/users", h.GetUsers)
	g.GET("/admin/posts", h.GetPosts)
	g.GET("/admin/stats", h.GetStats)
	g.POST("/admin/users/:id/deactivate", h.DeactivateUser)
}

// GetUsers lists all users including deactivated ones
func (h *AdminHandler) GetUsers(c echo.Context) error {
	page, limit := parsePagination(c, 50)

	users, total, err := h.userRepository.GetUsers(page, limit, true)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, echo.Map{
		"data":       users,
		"pagination": models.NewPagination(page, limit, total),
	})
}

// GetPosts lists all posts including inactive ones
func (h *AdminHandler) GetPosts(c echo.Context) error {
	page, limit := parsePagination(c, 50)

	posts, total, err := h.postRepository.GetAllPosts(page, limit)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, echo.Map{
		"data":       posts,
		"pagination": models.NewPagination(page, limit, total),
	})
}

// Stats is the admin stats payload
type Stats struct {
	TotalUsers    int64 `json:"total_users"`
	TotalPosts    int64 `json:"total_posts"`
	TotalLikes    int64 `json:"total_likes"`
	TotalComments int64 `json:"total_comments"`
}

// GetStats reports aggregate totals, served from a 60s Redis cache
func (h *AdminHandler) GetStats(c echo.Context) error {
	ctx := c.Request().Context()

	if cached, err := h.statsCache.Get(ctx, statsCacheKey); err == nil {
		var stats Stats
		if err := json.Unmarshal([]byte(cached), &stats); err == nil {
			return c.JSON(http.StatusOK, stats)
		}
	}

	var stats Stats
	var err error
	if stats.TotalUsers, err = h.userRepository.CountUsers(); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	if stats.TotalPosts, err = h.postRepository.CountPosts(); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	if stats.TotalLikes, err = h.likeRepository.CountLikes(); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	if stats.TotalComments, err = h.commentRepository.CountComments(); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	if payload, err := json.Marshal(stats); err == nil {
		if err := h.statsCache.Set(ctx, statsCacheKey, string(payload), statsCacheTTL); err != nil {
			logging.GetLogger().Warn("Failed to cache admin stats", zap.Error(err))
		}
	}

	return c.JSON(http.StatusOK, stats)
}

// DeactivateUser flips a user's active flag off
func (h *AdminHandler) DeactivateUser(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid user ID")
	}

	if err := h.userRepository.DeactivateUser(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "User not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, echo.Map{"success": true})
}
