package server

import (
	"fmt"
	"net/http"
	"testing"

	"inkwell/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateUser(t *testing.T) {
	app, _ := setupTestApp(t)

	t.Run("valid input returns 201 with the stored record", func(t *testing.T) {
		resp := doJSON(t, app, http.MethodPost, "/api/users", CreateUserRequest{
			Email:     "writer@example.com",
			Username:  "writer",
			FirstName: "Wren",
		})
		require.Equal(t, http.StatusCreated, resp.StatusCode)

		var user models.User
		decodeBody(t, resp, &user)
		assert.NotZero(t, user.ID)
		assert.Equal(t, "writer@example.com", user.Email)
		assert.Equal(t, int64(0), user.PostsCount)
	})

	t.Run("invalid input returns 422 with every failure", func(t *testing.T) {
		resp := doJSON(t, app, http.MethodPost, "/api/users", CreateUserRequest{
			Email:    "not-an-email",
			Username: "ab",
		})
		require.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)

		body := decodeErrors(t, resp)
		assert.Contains(t, body.Errors, "Email is invalid")
		assert.Contains(t, body.Errors, "Username is too short (minimum is 3 characters)")
	})

	t.Run("duplicate email returns 422", func(t *testing.T) {
		resp := doJSON(t, app, http.MethodPost, "/api/users", CreateUserRequest{
			Email:    "writer@example.com",
			Username: "otherwriter",
		})
		require.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)

		body := decodeErrors(t, resp)
		assert.Contains(t, body.Errors, "Email has already been taken")
	})
}

func TestGetUser(t *testing.T) {
	app, db := setupTestApp(t)

	user := &models.User{Email: "reader@example.com", Username: "reader"}
	require.NoError(t, db.Create(user).Error)
	require.NoError(t, db.Create(&models.Post{
		Title: "A Post", Content: "Content of the post.",
		Slug: "a-post", Status: models.PostStatusPublished, UserID: user.ID,
	}).Error)

	t.Run("found returns 200 with live posts_count", func(t *testing.T) {
		resp := doJSON(t, app, http.MethodGet, fmt.Sprintf("/api/users/%d", user.ID), nil)
		require.Equal(t, http.StatusOK, resp.StatusCode)

		var got models.User
		decodeBody(t, resp, &got)
		assert.Equal(t, "reader", got.Username)
		assert.Equal(t, int64(1), got.PostsCount)
	})

	t.Run("missing returns 404", func(t *testing.T) {
		resp := doJSON(t, app, http.MethodGet, "/api/users/9999", nil)
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	})

	t.Run("malformed id returns 400", func(t *testing.T) {
		resp := doJSON(t, app, http.MethodGet, "/api/users/abc", nil)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})
}

func TestUpdateUser(t *testing.T) {
	app, db := setupTestApp(t)

	user := &models.User{Email: "editor@example.com", Username: "editor"}
	require.NoError(t, db.Create(user).Error)

	t.Run("partial update touches only supplied fields", func(t *testing.T) {
		bio := "Now with a bio."
		resp := doJSON(t, app, http.MethodPut, fmt.Sprintf("/api/users/%d", user.ID),
			UpdateUserRequest{Bio: &bio})
		require.Equal(t, http.StatusOK, resp.StatusCode)

		var got models.User
		decodeBody(t, resp, &got)
		assert.Equal(t, "Now with a bio.", got.Bio)
		assert.Equal(t, "editor@example.com", got.Email)
	})

	t.Run("invalid update returns 422", func(t *testing.T) {
		bad := "nope"
		resp := doJSON(t, app, http.MethodPut, fmt.Sprintf("/api/users/%d", user.ID),
			UpdateUserRequest{Email: &bad})
		require.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)

		body := decodeErrors(t, resp)
		assert.Contains(t, body.Errors, "Email is invalid")
	})

	t.Run("missing user returns 404", func(t *testing.T) {
		bio := "ghost"
		resp := doJSON(t, app, http.MethodPut, "/api/users/9999", UpdateUserRequest{Bio: &bio})
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	})
}

func TestDeleteUser(t *testing.T) {
	app, db := setupTestApp(t)

	user := &models.User{Email: "gone@example.com", Username: "goner"}
	require.NoError(t, db.Create(user).Error)
	require.NoError(t, db.Create(&models.Post{
		Title: "Orphan-to-be", Content: "Content of the post.",
		Slug: "orphan-to-be", Status: models.PostStatusDraft, UserID: user.ID,
	}).Error)

	t.Run("delete returns 204 and removes owned posts", func(t *testing.T) {
		resp := doJSON(t, app, http.MethodDelete, fmt.Sprintf("/api/users/%d", user.ID), nil)
		require.Equal(t, http.StatusNoContent, resp.StatusCode)

		var posts int64
		db.Model(&models.Post{}).Where("user_id = ?", user.ID).Count(&posts)
		assert.Zero(t, posts)
	})

	t.Run("second delete returns 404", func(t *testing.T) {
		resp := doJSON(t, app, http.MethodDelete, fmt.Sprintf("/api/users/%d", user.ID), nil)
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	})
}

func TestGetUserPosts(t *testing.T) {
	app, db := setupTestApp(t)

	user := &models.User{Email: "author@example.com", Username: "author"}
	require.NoError(t, db.Create(user).Error)
	require.NoError(t, db.Create(&models.Post{
		Title: "Listed", Content: "Content of the post.",
		Slug: "listed", Status: models.PostStatusPublished, UserID: user.ID,
	}).Error)

	t.Run("lists the author's posts", func(t *testing.T) {
		resp := doJSON(t, app, http.MethodGet, fmt.Sprintf("/api/users/%d/posts", user.ID), nil)
		require.Equal(t, http.StatusOK, resp.StatusCode)

		var posts []models.Post
		decodeBody(t, resp, &posts)
		require.Len(t, posts, 1)
		assert.Equal(t, "listed", posts[0].Slug)
	})

	t.Run("missing author returns 404", func(t *testing.T) {
		resp := doJSON(t, app, http.MethodGet, "/api/users/9999/posts", nil)
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	})
}
