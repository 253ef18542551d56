package repositories

import (
	"testing"

	"github.com/arefin88/pulse/backend/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateCommentIncrementsCommentCount(t *testing.T) {
	db := newTestDB(t)
	repo := NewPostgresCommentRepository(db)

	author := createTestUser(t, db, "author")
	commenter := createTestUser(t, db, "commenter")
	post := createTestPost(t, db, author.ID, "hello world")

	comment := &models.Comment{PostID: post.ID, UserID: commenter.ID, Content: "nice", IsActive: true}
	require.NoError(t, repo.CreateComment(comment))
	assert.NotZero(t, comment.ID)

	assert.Equal(t, 1, reloadPost(t, db, post.ID).CommentCount)
}

func TestDeleteCommentDecrementsCommentCount(t *testing.T) {
	db := newTestDB(t)
	repo := NewPostgresCommentRepository(db)

	author := createTestUser(t, db, "author")
	commenter := createTestUser(t, db, "commenter")
	post := createTestPost(t, db, author.ID, "hello world")

	comment := &models.Comment{PostID: post.ID, UserID: commenter.ID, Content: "nice", IsActive: true}
	require.NoError(t, repo.CreateComment(comment))
	require.NoError(t, repo.DeleteComment(comment))

	assert.Equal(t, 0, reloadPost(t, db, post.ID).CommentCount)
}

func TestGetCommentsByPostIDPaginates(t *testing.T) {
	db := newTestDB(t)
	repo := NewPostgresCommentRepository(db)

	author := createTestUser(t, db, "author")
	post := createTestPost(t, db, author.ID, "hello world")

	for i := 0; i < 3; i++ {
		require.NoError(t, repo.CreateComment(&models.Comment{
			PostID: post.ID, UserID: author.ID, Content: "comment", IsActive: true,
		}))
	}

	comments, total, err := repo.GetCommentsByPostID(post.ID, 1, 2)
	require.NoError(t, err)
	assert.EqualValues(t, 3, total)
	assert.Len(t, comments, 2)

	comments, total, err = repo.GetCommentsByPostID(post.ID, 2, 2)
	require.NoError(t, err)
	assert.EqualValues(t, 3, total)
	assert.Len(t, comments, 1)

	// Out-of-range page is empty, not an error
	comments, total, err = repo.GetCommentsByPostID(post.ID, 99, 2)
	require.NoError(t, err)
	assert.EqualValues(t, 3, total)
	assert.Empty(t, comments)
}
