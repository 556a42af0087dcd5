package handler

import (
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

const userIDKey = "userID"

// CORS writes the fixed header set of the original API and answers
// preflight requests with an empty 200 before any other middleware runs.
func CORS(allowMethods string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", allowMethods)
		c.Header("Access-Control-Allow-Headers", "Content-Type, X-Auth-Token, X-User-Id")
		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusOK)
			return
		}
		c.Next()
	}
}

// RequireIdentity reads the X-User-Id header. There is no session
// validation anywhere in the system; this unauthenticated header is the
// whole trust boundary. The request also refreshes the caller's presence.
func (h *Handler) RequireIdentity() gin.HandlerFunc {
	return func(c *gin.Context) {
		raw := c.GetHeader("X-User-Id")
		id, err := strconv.ParseUint(raw, 10, 64)
		if raw == "" || err != nil || id == 0 {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
			return
		}
		if err := h.Storage.TouchPresence(uint(id)); err != nil {
			log.Printf("ERROR: Presence touch for user %d failed: %v", id, err)
		}
		c.Set(userIDKey, uint(id))
		c.Next()
	}
}

func currentUser(c *gin.Context) uint {
	return c.GetUint(userIDKey)
}
