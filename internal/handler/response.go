package handler

import (
	"errors"
	"time"

	"heartlink/backend/internal/apperr"
	"heartlink/backend/internal/models"

	"github.com/gin-gonic/gin"
)

// ErrorResponse represents a generic error response.
type ErrorResponse struct {
	Success bool   `json:"success" example:"false"`
	Message string `json:"message" example:"An error message"`
}

// RoleResponse describes an account's role.
type RoleResponse struct {
	RoleID int    `json:"role_id" example:"2"`
	Name   string `json:"name" example:"male"`
}

// ProfileResponse defines the structure for a user's public profile.
// The password hash is never part of any response.
type ProfileResponse struct {
	Username   string       `json:"username" example:"alice"`
	Name       string       `json:"name" example:"Alice Example"`
	Birthday   string       `json:"birthday" example:"1995-06-15"`
	Occupation string       `json:"occupation" example:"engineer"`
	Bio        string       `json:"bio"`
	ProfileURL *string      `json:"profile_url"`
	Role       RoleResponse `json:"role"`
}

func buildProfileResponse(user *models.User) ProfileResponse {
	return ProfileResponse{
		Username:   user.Username,
		Name:       user.Name,
		Birthday:   user.Birthday.Format("2006-01-02"),
		Occupation: user.Occupation,
		Bio:        user.Bio,
		ProfileURL: user.ProfileURL,
		Role: RoleResponse{
			RoleID: int(user.RoleID),
			Name:   user.RoleID.Name(),
		},
	}
}

// SenderResponse is the display info attached to each message.
type SenderResponse struct {
	Username   string  `json:"username" example:"alice"`
	Name       string  `json:"name" example:"Alice Example"`
	ProfileURL *string `json:"profile_url"`
}

// MessageResponse defines the structure for a single chat message.
type MessageResponse struct {
	MessageID uint           `json:"message_id" example:"42"`
	Content   string         `json:"content" example:"hi"`
	Timestamp time.Time      `json:"timestamp"`
	Sender    SenderResponse `json:"sender"`
}

func buildMessageResponse(message models.Message) MessageResponse {
	return MessageResponse{
		MessageID: message.ID,
		Content:   message.Content,
		Timestamp: message.CreatedAt,
		Sender: SenderResponse{
			Username:   message.Sender,
			Name:       message.SenderAccount.Name,
			ProfileURL: message.SenderAccount.ProfileURL,
		},
	}
}

// fail writes the uniform error envelope for a typed application error.
func fail(c *gin.Context, err error) {
	message := "internal server error"
	var appErr *apperr.Error
	if errors.As(err, &appErr) && appErr.Kind != apperr.KindInternal {
		message = appErr.Message
	}
	c.JSON(apperr.HTTPStatus(err), gin.H{
		"success": false,
		"message": message,
	})
}
