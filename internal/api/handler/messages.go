package handler

import (
	"net/http"
	"strconv"

	"messenger/backend/internal/models"

	"github.com/gin-gonic/gin"
)

type sendMessageRequest struct {
	RecipientID uint   `json:"recipient_id"`
	MessageText string `json:"message_text"`
}

// GetChats serves both GET shapes of /messages: without chat_id it returns
// the caller's inbox; with chat_id it returns the chat's history and, as a
// documented side effect, marks the other participant's messages as read.
func (h *Handler) GetChats(c *gin.Context) {
	userID := currentUser(c)

	raw := c.Query("chat_id")
	if raw == "" {
		chats, err := h.Conversations.Inbox(userID)
		if err != nil {
			respondError(c, err)
			return
		}
		if chats == nil {
			chats = []models.ChatSummary{}
		}
		c.JSON(http.StatusOK, gin.H{"chats": chats})
		return
	}

	chatID, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "chat_id required"})
		return
	}

	messages, err := h.Conversations.History(uint(chatID), userID)
	if err != nil {
		respondError(c, err)
		return
	}
	if messages == nil {
		messages = []models.MessageView{}
	}
	c.JSON(http.StatusOK, gin.H{"messages": messages})
}

// SendMessage delivers a message, implicitly creating the pair's chat on
// first contact.
func (h *Handler) SendMessage(c *gin.Context) {
	var req sendMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "recipient_id and message_text required"})
		return
	}

	msg, chatID, err := h.Conversations.SendMessage(currentUser(c), req.RecipientID, req.MessageText)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": gin.H{"id": msg.ID, "sent_at": msg.SentAt},
		"chat_id": chatID,
	})
}
