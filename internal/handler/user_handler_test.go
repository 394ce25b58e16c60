package handler_test

import (
	"net/http"
	"testing"

	"heartlink/backend/internal/models"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetAndClearProfilePhoto(t *testing.T) {
	router := setupRouter(t)
	aliceToken := registerUser(t, router, "alice", models.RoleFemale)

	w := doJSON(t, router, http.MethodPut, "/api/v1/users/me/photo", aliceToken, gin.H{
		"url": "https://img.example/alice.jpg",
		"key": "profile-pics/alice.jpg",
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	// The reference shows up on the public profile.
	profile := doJSON(t, router, http.MethodGet, "/api/v1/users/alice", "", nil)
	user := decode(t, profile)["user"].(map[string]interface{})
	assert.Equal(t, "https://img.example/alice.jpg", user["profile_url"])

	// Clearing twice is idempotent.
	for i := 0; i < 2; i++ {
		w = doJSON(t, router, http.MethodDelete, "/api/v1/users/me/photo", aliceToken, nil)
		assert.Equal(t, http.StatusOK, w.Code)
	}

	profile = doJSON(t, router, http.MethodGet, "/api/v1/users/alice", "", nil)
	user = decode(t, profile)["user"].(map[string]interface{})
	assert.Nil(t, user["profile_url"])
}

func TestSetPhotoRequiresBothFields(t *testing.T) {
	router := setupRouter(t)
	aliceToken := registerUser(t, router, "alice", models.RoleFemale)

	w := doJSON(t, router, http.MethodPut, "/api/v1/users/me/photo", aliceToken, gin.H{
		"url": "https://img.example/alice.jpg",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
