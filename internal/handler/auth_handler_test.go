package handler_test

import (
	"fmt"
	"net/http"
	"testing"
	"time"

	"heartlink/backend/internal/models"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func registerPayload(username, birthday string) gin.H {
	return gin.H{
		"username": username,
		"password": "password123",
		"name":     "User " + username,
		"birthday": birthday,
		"role_id":  int(models.RoleFemale),
	}
}

func TestRegisterRejectsUnderage(t *testing.T) {
	router := setupRouter(t)

	// 17 years old today.
	birthday := time.Now().AddDate(-17, 0, 0).Format("2006-01-02")
	w := doJSON(t, router, http.MethodPost, "/api/v1/auth/register", "", registerPayload("kid", birthday))
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, false, decode(t, w)["success"])
}

func TestRegisterAcceptsExactlyEighteen(t *testing.T) {
	router := setupRouter(t)

	birthday := time.Now().AddDate(-18, 0, 0).Format("2006-01-02")
	w := doJSON(t, router, http.MethodPost, "/api/v1/auth/register", "", registerPayload("adult", birthday))
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	body := decode(t, w)
	assert.Equal(t, true, body["success"])
	assert.NotEmpty(t, body["token"])
}

func TestRegisterDuplicateUsername(t *testing.T) {
	router := setupRouter(t)
	registerUser(t, router, "alice", models.RoleFemale)

	w := doJSON(t, router, http.MethodPost, "/api/v1/auth/register", "", registerPayload("alice", "1990-01-01"))
	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestRegisterRejectsInvalidRole(t *testing.T) {
	router := setupRouter(t)

	payload := registerPayload("weird", "1990-01-01")
	payload["role_id"] = 9
	w := doJSON(t, router, http.MethodPost, "/api/v1/auth/register", "", payload)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestLoginWrongPasswordAndUnknownUserLookAlike(t *testing.T) {
	router := setupRouter(t)
	registerUser(t, router, "alice", models.RoleFemale)

	wrong := doJSON(t, router, http.MethodPost, "/api/v1/auth/login", "", gin.H{
		"username": "alice",
		"password": "not-the-password",
	})
	unknown := doJSON(t, router, http.MethodPost, "/api/v1/auth/login", "", gin.H{
		"username": "nobody",
		"password": "password123",
	})

	assert.Equal(t, http.StatusUnauthorized, wrong.Code)
	assert.Equal(t, http.StatusUnauthorized, unknown.Code)
	// Same body, so usernames cannot be enumerated through login.
	assert.Equal(t, wrong.Body.String(), unknown.Body.String())
}

func TestLoginSuccess(t *testing.T) {
	router := setupRouter(t)
	registerUser(t, router, "alice", models.RoleFemale)

	w := doJSON(t, router, http.MethodPost, "/api/v1/auth/login", "", gin.H{
		"username": "alice",
		"password": "password123",
	})
	require.Equal(t, http.StatusOK, w.Code)

	body := decode(t, w)
	assert.NotEmpty(t, body["token"])

	// The issued token works against a protected route.
	token := body["token"].(string)
	profile := doJSON(t, router, http.MethodGet, "/api/v1/auth/profile", token, nil)
	require.Equal(t, http.StatusOK, profile.Code)
	user := decode(t, profile)["user"].(map[string]interface{})
	assert.Equal(t, "alice", user["username"])
	assert.Equal(t, "female", user["role"])
}

func TestProtectedRouteRequiresToken(t *testing.T) {
	router := setupRouter(t)

	for _, path := range []string{
		"/api/v1/auth/profile",
		"/api/v1/users/me/candidates",
		"/api/v1/matches",
	} {
		w := doJSON(t, router, http.MethodGet, path, "", nil)
		assert.Equal(t, http.StatusUnauthorized, w.Code, fmt.Sprintf("path %s", path))
	}

	w := doJSON(t, router, http.MethodGet, "/api/v1/auth/profile", "garbage-token", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestPublicProfileWithoutToken(t *testing.T) {
	router := setupRouter(t)
	registerUser(t, router, "alice", models.RoleFemale)

	w := doJSON(t, router, http.MethodGet, "/api/v1/users/alice", "", nil)
	require.Equal(t, http.StatusOK, w.Code)

	user := decode(t, w)["user"].(map[string]interface{})
	assert.Equal(t, "alice", user["username"])
	// No hash field is ever serialized.
	assert.NotContains(t, w.Body.String(), "password")

	missing := doJSON(t, router, http.MethodGet, "/api/v1/users/ghost", "", nil)
	assert.Equal(t, http.StatusNotFound, missing.Code)
}
