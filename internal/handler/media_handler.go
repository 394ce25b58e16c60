package handler

import (
	"net/http"

	"heartlink/backend/internal/media"

	"github.com/gin-gonic/gin"
)

// MediaHandler hands out presigned upload URLs for profile images. The
// backend never receives image bytes; clients upload straight to the bucket
// and then attach the returned reference via PUT /users/me/photo.
type MediaHandler struct {
	media *media.Service
}

// NewMediaHandler creates a MediaHandler.
func NewMediaHandler(media *media.Service) *MediaHandler {
	return &MediaHandler{media: media}
}

// UploadURLInput defines the structure for requesting an upload URL.
type UploadURLInput struct {
	FileName string `json:"file_name" binding:"required" example:"me.jpg"`
	FileType string `json:"file_type" binding:"required" example:"image/jpeg"`
}

// UploadURL godoc
// @Summary      Get a presigned upload URL
// @Description  Returns a short-lived URL for uploading a profile image,
// @Description  plus the object key and public URL to persist afterwards.
// @Tags         media
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        input body UploadURLInput true "Upload Info"
// @Success      200  {object}  map[string]string
// @Failure      400  {object}  ErrorResponse
// @Failure      401  {object}  ErrorResponse
// @Failure      500  {object}  ErrorResponse
// @Router       /media/upload-url [post]
func (h *MediaHandler) UploadURL(c *gin.Context) {
	var input UploadURLInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": err.Error()})
		return
	}

	uploadURL, key, publicURL, err := h.media.PresignUpload(c.Request.Context(), input.FileName, input.FileType)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to generate upload URL"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":    true,
		"upload_url": uploadURL,
		"key":        key,
		"public_url": publicURL,
	})
}
