package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"testing"

	"github.com/arefin88/pulse/backend/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newCommentHandler(env *testEnv) *CommentHandler {
	return NewCommentHandler(env.commentRepo, env.postRepo, env.userRepo, env.notifRepo)
}

func TestCreateCommentBumpsCountAndNotifies(t *testing.T) {
	env := newTestEnv(t)
	h := newCommentHandler(env)

	alice := env.createUser(t, "alice", models.RoleUser)
	bob := env.createUser(t, "bob", models.RoleUser)
	post := env.createPost(t, bob.ID, "hello")

	c, rec := env.newContext(http.MethodPost, "/posts/1/comments", `{"content":"nice post"}`, alice)
	c.SetParamNames("id")
	c.SetParamValues(strconv.Itoa(int(post.ID)))
	require.NoError(t, h.CreateComment(c))
	require.Equal(t, http.StatusCreated, rec.Code)

	var reloaded models.Post
	require.NoError(t, env.db.First(&reloaded, post.ID).Error)
	assert.Equal(t, 1, reloaded.CommentCount)

	require.Len(t, env.notifRepo.notifications, 1)
	n := env.notifRepo.notifications[0]
	assert.Equal(t, models.NotificationComment, n.Type)
	assert.Equal(t, alice.ID, n.ActorID)
	assert.Equal(t, bob.ID, n.RecipientID)
	assert.Equal(t, post.ID, n.PostID)
}

func TestCreateCommentOnOwnPostSkipsNotification(t *testing.T) {
	env := newTestEnv(t)
	h := newCommentHandler(env)

	alice := env.createUser(t, "alice", models.RoleUser)
	post := env.createPost(t, alice.ID, "hello")

	c, rec := env.newContext(http.MethodPost, "/posts/1/comments", `{"content":"self reply"}`, alice)
	c.SetParamNames("id")
	c.SetParamValues(strconv.Itoa(int(post.ID)))
	require.NoError(t, h.CreateComment(c))
	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Empty(t, env.notifRepo.notifications)
}

func TestCreateCommentValidation(t *testing.T) {
	env := newTestEnv(t)
	h := newCommentHandler(env)

	alice := env.createUser(t, "alice", models.RoleUser)
	post := env.createPost(t, alice.ID, "hello")

	tooLong := strings.Repeat("x", 501)
	for _, body := range []string{`{"content":""}`, fmt.Sprintf(`{"content":%q}`, tooLong)} {
		c, rec := env.newContext(http.MethodPost, "/posts/1/comments", body, alice)
		c.SetParamNames("id")
		c.SetParamValues(strconv.Itoa(int(post.ID)))
		err := h.CreateComment(c)
		assert.Equal(t, http.StatusBadRequest, httpStatus(t, err, rec))
	}

	var reloaded models.Post
	require.NoError(t, env.db.First(&reloaded, post.ID).Error)
	assert.Equal(t, 0, reloaded.CommentCount)
}

func TestCreateCommentOnMissingPost(t *testing.T) {
	env := newTestEnv(t)
	h := newCommentHandler(env)
	alice := env.createUser(t, "alice", models.RoleUser)

	c, rec := env.newContext(http.MethodPost, "/posts/999/comments", `{"content":"hello"}`, alice)
	c.SetParamNames("id")
	c.SetParamValues("999")
	err := h.CreateComment(c)
	assert.Equal(t, http.StatusNotFound, httpStatus(t, err, rec))
}

func TestGetCommentsOldestFirst(t *testing.T) {
	env := newTestEnv(t)
	h := newCommentHandler(env)

	alice := env.createUser(t, "alice", models.RoleUser)
	post := env.createPost(t, alice.ID, "hello")

	for _, content := range []string{"first", "second", "third"} {
		require.NoError(t, env.commentRepo.CreateComment(&models.Comment{
			PostID: post.ID, UserID: alice.ID, Content: content, IsActive: true,
		}))
	}

	c, rec := env.newContext(http.MethodGet, "/posts/1/comments?page=1&limit=2", "", alice)
	c.SetParamNames("id")
	c.SetParamValues(strconv.Itoa(int(post.ID)))
	require.NoError(t, h.GetCommentsByPostID(c))

	var res struct {
		Data       []models.Comment  `json:"data"`
		Pagination models.Pagination `json:"pagination"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &res))
	require.Len(t, res.Data, 2)
	assert.Equal(t, "first", res.Data[0].Content)
	assert.Equal(t, "second", res.Data[1].Content)
	assert.Equal(t, int64(3), res.Pagination.Total)
	assert.Equal(t, 2, res.Pagination.Pages)
}

func TestUpdateCommentOwnerOnly(t *testing.T) {
	env := newTestEnv(t)
	h := newCommentHandler(env)

	alice := env.createUser(t, "alice", models.RoleUser)
	bob := env.createUser(t, "bob", models.RoleUser)
	post := env.createPost(t, alice.ID, "hello")

	comment := &models.Comment{PostID: post.ID, UserID: alice.ID, Content: "original", IsActive: true}
	require.NoError(t, env.commentRepo.CreateComment(comment))
	id := strconv.Itoa(int(comment.ID))

	c, rec := env.newContext(http.MethodPut, "/comments/"+id, `{"content":"hijacked"}`, bob)
	c.SetParamNames("id")
	c.SetParamValues(id)
	err := h.UpdateComment(c)
	assert.Equal(t, http.StatusForbidden, httpStatus(t, err, rec))

	c, rec = env.newContext(http.MethodPut, "/comments/"+id, `{"content":"edited"}`, alice)
	c.SetParamNames("id")
	c.SetParamValues(id)
	require.NoError(t, h.UpdateComment(c))
	assert.Equal(t, http.StatusOK, rec.Code)

	reloaded, err2 := env.commentRepo.GetCommentByID(comment.ID)
	require.NoError(t, err2)
	assert.Equal(t, "edited", reloaded.Content)
}

func TestDeleteCommentOwnerOnlyAndDecrementsCount(t *testing.T) {
	env := newTestEnv(t)
	h := newCommentHandler(env)

	alice := env.createUser(t, "alice", models.RoleUser)
	bob := env.createUser(t, "bob", models.RoleUser)
	post := env.createPost(t, alice.ID, "hello")

	comment := &models.Comment{PostID: post.ID, UserID: bob.ID, Content: "by bob", IsActive: true}
	require.NoError(t, env.commentRepo.CreateComment(comment))
	id := strconv.Itoa(int(comment.ID))

	// The post owner is not the comment owner here
	c, rec := env.newContext(http.MethodDelete, "/comments/"+id, "", alice)
	c.SetParamNames("id")
	c.SetParamValues(id)
	err := h.DeleteComment(c)
	assert.Equal(t, http.StatusForbidden, httpStatus(t, err, rec))

	c, rec = env.newContext(http.MethodDelete, "/comments/"+id, "", bob)
	c.SetParamNames("id")
	c.SetParamValues(id)
	require.NoError(t, h.DeleteComment(c))
	assert.Equal(t, http.StatusNoContent, rec.Code)

	var reloaded models.Post
	require.NoError(t, env.db.First(&reloaded, post.ID).Error)
	assert.Equal(t, 0, reloaded.CommentCount)
}

func TestDeleteMissingComment(t *testing.T) {
	env := newTestEnv(t)
	h := newCommentHandler(env)
	alice := env.createUser(t, "alice", models.RoleUser)

	c, rec := env.newContext(http.MethodDelete, "/comments/999", "", alice)
	c.SetParamNames("id")
	c.SetParamValues("999")
	err := h.DeleteComment(c)
	assert.Equal(t, http.StatusNotFound, httpStatus(t, err, rec))
}
