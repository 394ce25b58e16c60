package handler

import (
	"log"
	"net/http"

	"heartlink/backend/internal/auth"
	"heartlink/backend/internal/media"
	"heartlink/backend/internal/store"

	"github.com/gin-gonic/gin"
)

// UserHandler serves public profiles, discovery candidates, and profile
// image references.
type UserHandler struct {
	users *store.UserStore
	media *media.Service // nil when S3 is not configured
}

// NewUserHandler creates a UserHandler.
func NewUserHandler(users *store.UserStore, media *media.Service) *UserHandler {
	return &UserHandler{users: users, media: media}
}

// PhotoInput defines the structure for attaching an uploaded profile image.
type PhotoInput struct {
	URL string `json:"url" binding:"required" example:"https://bucket.s3.eu-west-1.amazonaws.com/profile-pics/abc.jpg"`
	Key string `json:"key" binding:"required" example:"profile-pics/abc.jpg"`
}

// GetProfile godoc
// @Summary      Get user profile
// @Description  Retrieves the public profile for a user by username.
// @Tags         users
// @Produce      json
// @Param        username   path      string  true  "Username"
// @Success      200  {object}  map[string]interface{} "{"success": true, "user": {...}}"
// @Failure      404  {object}  ErrorResponse
// @Router       /users/{username} [get]
func (h *UserHandler) GetProfile(c *gin.Context) {
	username := c.Param("username")

	user, err := h.users.FindByUsername(c.Request.Context(), username)
	if err != nil {
		fail(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"user":    buildProfileResponse(user),
	})
}

// GetCandidates godoc
// @Summary      Get discovery candidates
// @Description  Returns up to 10 unmatched accounts in the caller's eligible
// @Description  role set, ordered by username. Fewer than 10 is not an error.
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  map[string]interface{} "{"success": true, "count": 10, "candidates": [...]}"
// @Failure      401  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse
// @Router       /users/me/candidates [get]
func (h *UserHandler) GetCandidates(c *gin.Context) {
	caller := c.GetString(auth.ContextUsername)

	candidates, err := h.users.Candidates(c.Request.Context(), caller, store.DefaultCandidateLimit)
	if err != nil {
		fail(c, err)
		return
	}

	responses := make([]ProfileResponse, len(candidates))
	for i := range candidates {
		responses[i] = buildProfileResponse(&candidates[i])
	}

	c.JSON(http.StatusOK, gin.H{
		"success":    true,
		"count":      len(responses),
		"candidates": responses,
	})
}

// SetPhoto godoc
// @Summary      Set profile image
// @Description  Persists the reference of an already-uploaded profile image.
// @Description  A previously stored image is deleted from the media host.
// @Tags         users
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        input body PhotoInput true "Uploaded image reference"
// @Success      200  {object}  map[string]interface{}
// @Failure      400  {object}  ErrorResponse
// @Failure      401  {object}  ErrorResponse
// @Router       /users/me/photo [put]
func (h *UserHandler) SetPhoto(c *gin.Context) {
	caller := c.GetString(auth.ContextUsername)

	var input PhotoInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": err.Error()})
		return
	}

	user, err := h.users.Get(c.Request.Context(), caller)
	if err != nil {
		fail(c, err)
		return
	}

	// Replacing an image orphans the old object unless we delete it here.
	if user.ProfileKey != nil && h.media != nil {
		if err := h.media.Delete(c.Request.Context(), *user.ProfileKey); err != nil {
			log.Printf("Failed to delete previous profile image %q: %v", *user.ProfileKey, err)
		}
	}

	if err := h.users.SetProfileImage(c.Request.Context(), caller, &input.URL, &input.Key); err != nil {
		fail(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":     true,
		"message":     "Profile image updated",
		"profile_url": input.URL,
	})
}

// ClearPhoto godoc
// @Summary      Remove profile image
// @Description  Clears the profile image reference and deletes the stored
// @Description  object. Clearing an already-empty image succeeds.
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  map[string]interface{}
// @Failure      401  {object}  ErrorResponse
// @Router       /users/me/photo [delete]
func (h *UserHandler) ClearPhoto(c *gin.Context) {
	caller := c.GetString(auth.ContextUsername)

	user, err := h.users.Get(c.Request.Context(), caller)
	if err != nil {
		fail(c, err)
		return
	}

	if user.ProfileKey != nil && h.media != nil {
		if err := h.media.Delete(c.Request.Context(), *user.ProfileKey); err != nil {
			log.Printf("Failed to delete profile image %q: %v", *user.ProfileKey, err)
		}
	}

	if err := h.users.SetProfileImage(c.Request.Context(), caller, nil, nil); err != nil {
		fail(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Profile image removed",
	})
}
