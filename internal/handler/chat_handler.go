package handler

import (
	"net/http"
	"strconv"

	"heartlink/backend/internal/auth"
	"heartlink/backend/internal/models"
	"heartlink/backend/internal/store"

	"github.com/gin-gonic/gin"
)

// ChatHandler serves conversation reads, message sends and deletes, plus the
// admin-only audit view.
type ChatHandler struct {
	messages *store.MessageStore
	matches  *store.MatchStore
}

// NewChatHandler creates a ChatHandler.
func NewChatHandler(messages *store.MessageStore, matches *store.MatchStore) *ChatHandler {
	return &ChatHandler{messages: messages, matches: matches}
}

// SendMessageInput defines the structure for sending a message.
type SendMessageInput struct {
	Receiver string `json:"receiver_username" binding:"required" example:"bob"`
	Content  string `json:"content" binding:"required" example:"hi"`
}

// AuditMessageResponse is one entry of the admin audit view: the message
// plus both participant identities.
type AuditMessageResponse struct {
	MessageID   uint           `json:"message_id" example:"42"`
	Content     string         `json:"content" example:"hi"`
	Timestamp   string         `json:"timestamp"`
	Sender      SenderResponse `json:"sender"`
	Counterpart string         `json:"counterpart" example:"bob"`
}

// GetConversation godoc
// @Summary      Get a conversation
// @Description  Returns every message between the caller and the given user,
// @Description  oldest first. The caller must be matched with that user.
// @Tags         chat
// @Produce      json
// @Security     BearerAuth
// @Param        username   path      string  true  "Counterpart username"
// @Success      200  {object}  map[string]interface{} "{"success": true, "count": 5, "messages": [...]}"
// @Failure      400  {object}  ErrorResponse
// @Failure      401  {object}  ErrorResponse
// @Failure      403  {object}  ErrorResponse "Users are not matched"
// @Router       /chat/conversation/{username} [get]
func (h *ChatHandler) GetConversation(c *gin.Context) {
	caller := c.GetString(auth.ContextUsername)
	other := c.Param("username")

	if other == caller {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Cannot open a conversation with yourself"})
		return
	}

	matched, err := h.matches.Exists(c.Request.Context(), caller, other)
	if err != nil {
		fail(c, err)
		return
	}
	if !matched {
		c.JSON(http.StatusForbidden, gin.H{"success": false, "message": "Users are not matched"})
		return
	}

	messages, err := h.messages.ListBetween(c.Request.Context(), caller, other)
	if err != nil {
		fail(c, err)
		return
	}

	responses := make([]MessageResponse, len(messages))
	for i, m := range messages {
		responses[i] = buildMessageResponse(m)
	}

	c.JSON(http.StatusOK, gin.H{
		"success":  true,
		"count":    len(responses),
		"messages": responses,
	})
}

// SendMessage godoc
// @Summary      Send a message
// @Description  Appends a message from the caller to a matched user.
// @Tags         chat
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        input body SendMessageInput true "Message"
// @Success      201  {object}  map[string]interface{} "{"success": true, "data": {...}}"
// @Failure      400  {object}  ErrorResponse "Empty content or self-send"
// @Failure      401  {object}  ErrorResponse
// @Failure      403  {object}  ErrorResponse "No match exists"
// @Router       /chat/messages [post]
func (h *ChatHandler) SendMessage(c *gin.Context) {
	caller := c.GetString(auth.ContextUsername)

	var input SendMessageInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": err.Error()})
		return
	}

	message, err := h.messages.Append(c.Request.Context(), caller, input.Receiver, input.Content)
	if err != nil {
		fail(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"message": "Message sent successfully",
		"data":    buildMessageResponse(*message),
	})
}

// DeleteMessage godoc
// @Summary      Delete a message
// @Description  Permanently removes a message. Only its sender may do so.
// @Tags         chat
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      int  true  "Message ID"
// @Success      200  {object}  map[string]interface{} "{"success": true}"
// @Failure      400  {object}  ErrorResponse
// @Failure      401  {object}  ErrorResponse
// @Failure      403  {object}  ErrorResponse "Not the sender"
// @Failure      404  {object}  ErrorResponse "Message not found"
// @Router       /chat/messages/{id} [delete]
func (h *ChatHandler) DeleteMessage(c *gin.Context) {
	caller := c.GetString(auth.ContextUsername)

	messageID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid message ID"})
		return
	}

	if err := h.messages.Delete(c.Request.Context(), uint(messageID), caller); err != nil {
		fail(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Message deleted successfully",
	})
}

// AuditMessages godoc
// @Summary      Audit all conversations (admin)
// @Description  Returns every message exchanged between non-admin accounts,
// @Description  with sender and counterpart identities. Admin role required;
// @Description  this is a read-only view distinct from the participant API.
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Param        page    query     int     false  "Page number" default(1)
// @Param        limit   query     int     false  "Messages per page" default(50)
// @Success      200  {object}  map[string]interface{} "{"success": true, "count": 12, "messages": [...], "meta": {...}}"
// @Failure      401  {object}  ErrorResponse
// @Failure      403  {object}  ErrorResponse "Admin access required"
// @Router       /admin/messages [get]
func (h *ChatHandler) AuditMessages(c *gin.Context) {
	page, limit := pageParams(c)

	messages, total, err := h.messages.AuditAll(c.Request.Context(), page, limit)
	if err != nil {
		fail(c, err)
		return
	}

	responses := make([]AuditMessageResponse, len(messages))
	for i, m := range messages {
		responses[i] = AuditMessageResponse{
			MessageID: m.ID,
			Content:   m.Content,
			Timestamp: m.CreatedAt.Format("2006-01-02T15:04:05Z07:00"),
			Sender: SenderResponse{
				Username:   m.Sender,
				Name:       m.SenderAccount.Name,
				ProfileURL: m.SenderAccount.ProfileURL,
			},
			Counterpart: counterpartOf(m),
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"success":  true,
		"count":    len(responses),
		"messages": responses,
		"meta":     NewPaginationMeta(total, page, limit),
	})
}

// counterpartOf returns the participant who did not send the message.
func counterpartOf(m models.Message) string {
	if m.Sender == m.UserA {
		return m.UserB
	}
	return m.UserA
}
