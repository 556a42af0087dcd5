package handler

import (
	"net/http"

	"messenger/backend/internal/account"
	"messenger/backend/internal/models"

	"github.com/gin-gonic/gin"
)

// Register creates an account (201) or, when the phone is already known,
// returns the existing account (200). Either way a bearer token is issued.
func (h *Handler) Register(c *gin.Context) {
	var req account.Registration
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	user, token, created, err := h.Accounts.Register(req)
	if err != nil {
		respondError(c, err)
		return
	}

	status := http.StatusOK
	if created {
		status = http.StatusCreated
	}
	c.JSON(status, gin.H{"user": user, "token": token})
}

// SearchUsers handles GET /auth?q=. A request without q matches no
// endpoint.
func (h *Handler) SearchUsers(c *gin.Context) {
	query := c.Query("q")
	if query == "" {
		notFound(c)
		return
	}

	users, err := h.Accounts.Search(query)
	if err != nil {
		respondError(c, err)
		return
	}
	if users == nil {
		users = []models.User{}
	}
	c.JSON(http.StatusOK, gin.H{"users": users})
}
