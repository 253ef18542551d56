package handlers

import (
	"net/http"

	"github.com/arefin88/pulse/backend/internal/models"
	"github.com/arefin88/pulse/backend/internal/repositories"
	"github.com/labstack/echo/v4"
)

// FeedHandler handles feed-related HTTP requests
type FeedHandler struct {
	postRepository   repositories.PostRepository
	userRepository   repositories.UserRepository
	followRepository repositories.FollowRepository
	likeRepository   repositories.LikeRepository
}

// NewFeedHandler creates a new FeedHandler
func NewFeedHandler(
	postRepo repositories.PostRepository,
	userRepo repositories.UserRepository,
	followRepo repositories.FollowRepository,
	likeRepo repositories.LikeRepository,
) *FeedHandler {
	return &FeedHandler{
		postRepository:   postRepo,
		userRepository:   userRepo,
		followRepository: followRepo,
		likeRepository:   likeRepo,
	}
}

// RegisterFeedRoutes registers feed-related routes
func (h *FeedHandler) RegisterFeedRoutes(g *echo.Group) {
	g.GET("/posts/feed", h.GetFeed)
}

// EnrichedPost is a post with author info and user-specific flags
type EnrichedPost struct {
	models.Post
	Author  models.UserCompact `json:"author"`
	IsLiked bool               `json:"is_liked"`
}

// GetFeed returns the personalized feed: active posts authored by the caller
// or by accounts the caller follows, newest first.
func (h *FeedHandler) GetFeed(c echo.Context) error {
	currentUserID := getUserIDFromContext(c)
	if currentUserID == 0 {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	page, limit := parsePagination(c, 20)

	followingIDs, err := h.followRepository.GetFollowingIDs(currentUserID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	authorIDs := append(followingIDs, currentUserID)

	posts, total, err := h.postRepository.GetFeed(authorIDs, page, limit)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	// Build author map for the page
	userMap := make(map[uint]models.UserCompact)
	for _, p := range posts {
		if _, ok := userMap[p.UserID]; ok {
			continue
		}
		if author, err := h.userRepository.GetUserByID(p.UserID); err == nil {
			userMap[p.UserID] = author.ToCompact()
		}
	}

	enriched := make([]EnrichedPost, len(posts))
	for i, p := range posts {
		liked, _ := h.likeRepository.HasUserLikedPost(currentUserID, p.ID)
		enriched[i] = EnrichedPost{
			Post:    p,
			Author:  userMap[p.UserID],
			IsLiked: liked,
		}
	}

	return c.JSON(http.StatusOK, echo.Map{
		"data":       enriched,
		"pagination": models.NewPagination(page, limit, total),
	})
}
