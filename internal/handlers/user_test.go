package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"
	"testing"

	"github.com/arefin88/pulse/backend/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetUserByID(t *testing.T) {
	env := newTestEnv(t)
	h := NewUserHandler(env.userRepo)

	alice := env.createUser(t, "alice", models.RoleUser)
	bob := env.createUser(t, "bob", models.RoleUser)

	c, rec := env.newContext(http.MethodGet, "/users/"+strconv.Itoa(int(bob.ID)), "", alice)
	c.SetParamNames("id")
	c.SetParamValues(strconv.Itoa(int(bob.ID)))
	require.NoError(t, h.GetUser(c))
	require.Equal(t, http.StatusOK, rec.Code)

	var res models.User
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &res))
	assert.Equal(t, "bob", res.Username)
}

func TestGetUserHidesDeactivatedFromNonAdmins(t *testing.T) {
	env := newTestEnv(t)
	h := NewUserHandler(env.userRepo)

	alice := env.createUser(t, "alice", models.RoleUser)
	admin := env.createUser(t, "root", models.RoleAdmin)
	ghost := env.createUser(t, "ghost", models.RoleUser)
	require.NoError(t, env.db.Model(&models.User{}).Where("id = ?", ghost.ID).
		UpdateColumn("is_active", false).Error)
	id := strconv.Itoa(int(ghost.ID))

	c, rec := env.newContext(http.MethodGet, "/users/"+id, "", alice)
	c.SetParamNames("id")
	c.SetParamValues(id)
	err := h.GetUser(c)
	assert.Equal(t, http.StatusNotFound, httpStatus(t, err, rec))

	c, rec = env.newContext(http.MethodGet, "/users/"+id, "", admin)
	c.SetParamNames("id")
	c.SetParamValues(id)
	require.NoError(t, h.GetUser(c))
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestGetUserInvalidID(t *testing.T) {
	env := newTestEnv(t)
	h := NewUserHandler(env.userRepo)
	alice := env.createUser(t, "alice", models.RoleUser)

	c, rec := env.newContext(http.MethodGet, "/users/abc", "", alice)
	c.SetParamNames("id")
	c.SetParamValues("abc")
	err := h.GetUser(c)
	assert.Equal(t, http.StatusBadRequest, httpStatus(t, err, rec))
}

func TestGetMe(t *testing.T) {
	env := newTestEnv(t)
	h := NewUserHandler(env.userRepo)
	alice := env.createUser(t, "alice", models.RoleUser)

	c, rec := env.newContext(http.MethodGet, "/users/me", "", alice)
	require.NoError(t, h.GetMe(c))
	require.Equal(t, http.StatusOK, rec.Code)

	var res models.User
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &res))
	assert.Equal(t, alice.ID, res.ID)
}

func TestUpdateMeMergesOnlyProvidedFields(t *testing.T) {
	env := newTestEnv(t)
	h := NewUserHandler(env.userRepo)
	alice := env.createUser(t, "alice", models.RoleUser)

	c, rec := env.newContext(http.MethodPut, "/users/me", `{"bio":"gopher","location":"Dhaka"}`, alice)
	require.NoError(t, h.UpdateMe(c))
	require.Equal(t, http.StatusOK, rec.Code)

	updated, err := env.userRepo.GetUserByID(alice.ID)
	require.NoError(t, err)
	assert.Equal(t, "gopher", updated.Bio)
	assert.Equal(t, "Dhaka", updated.Location)
	assert.Equal(t, "Test", updated.FirstName, "omitted fields stay untouched")
}

func TestUpdateMeRejectsInvalidVisibility(t *testing.T) {
	env := newTestEnv(t)
	h := NewUserHandler(env.userRepo)
	alice := env.createUser(t, "alice", models.RoleUser)

	c, rec := env.newContext(http.MethodPut, "/users/me", `{"profile_visibility":"invisible"}`, alice)
	err := h.UpdateMe(c)
	assert.Equal(t, http.StatusBadRequest, httpStatus(t, err, rec))
}

func TestListUsersExcludesDeactivated(t *testing.T) {
	env := newTestEnv(t)
	h := NewUserHandler(env.userRepo)

	alice := env.createUser(t, "alice", models.RoleUser)
	env.createUser(t, "bob", models.RoleUser)
	ghost := env.createUser(t, "ghost", models.RoleUser)
	require.NoError(t, env.db.Model(&models.User{}).Where("id = ?", ghost.ID).
		UpdateColumn("is_active", false).Error)

	c, rec := env.newContext(http.MethodGet, "/users", "", alice)
	require.NoError(t, h.GetUsers(c))

	var res struct {
		Data       []models.User     `json:"data"`
		Pagination models.Pagination `json:"pagination"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &res))
	assert.Len(t, res.Data, 2)
	assert.Equal(t, int64(2), res.Pagination.Total)
}

func TestSearchUsers(t *testing.T) {
	env := newTestEnv(t)
	h := NewUserHandler(env.userRepo)

	alice := env.createUser(t, "alice", models.RoleUser)
	env.createUser(t, "alicia", models.RoleUser)
	env.createUser(t, "bob", models.RoleUser)

	c, rec := env.newContext(http.MethodGet, "/users/search?q=alic", "", alice)
	require.NoError(t, h.SearchUsers(c))

	var res struct {
		Data []models.User `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &res))
	assert.Len(t, res.Data, 2)

	c, rec = env.newContext(http.MethodGet, "/users/search?q=", "", alice)
	err := h.SearchUsers(c)
	assert.Equal(t, http.StatusBadRequest, httpStatus(t, err, rec))
}
