// Package handler exposes the HTTP surface of the messenger backend: four
// endpoint groups (auth, messages, moderation, sms) with the CORS and
// error-shape contract of the original API.
package handler

import (
	"errors"
	"log"
	"net/http"

	"messenger/backend/internal/account"
	"messenger/backend/internal/apperr"
	"messenger/backend/internal/conversation"
	"messenger/backend/internal/moderation"
	"messenger/backend/internal/storage"
	"messenger/backend/internal/verification"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// Handler holds the services behind the endpoints.
type Handler struct {
	Accounts      *account.Service
	Conversations *conversation.Service
	Moderation    *moderation.Service
	Verification  *verification.Service
	Storage       storage.Storage
	DevMode       bool
}

func NewHandler(
	accounts *account.Service,
	conversations *conversation.Service,
	mod *moderation.Service,
	verif *verification.Service,
	st storage.Storage,
	devMode bool,
) *Handler {
	return &Handler{
		Accounts:      accounts,
		Conversations: conversations,
		Moderation:    mod,
		Verification:  verif,
		Storage:       st,
		DevMode:       devMode,
	}
}

// NewRouter wires the endpoint groups. Each group carries its own CORS
// method list; messages and moderation additionally require the identity
// header. Anything unmatched answers 404 with the fixed error body.
func NewRouter(h *Handler) *gin.Engine {
	r := gin.Default()
	r.NoRoute(notFound)

	auth := r.Group("/auth", CORS("GET, POST, OPTIONS"))
	auth.OPTIONS("", preflight)
	auth.POST("", h.Register)
	auth.GET("", h.SearchUsers)

	msgs := r.Group("/messages", CORS("GET, POST, OPTIONS"), h.RequireIdentity())
	msgs.OPTIONS("", preflight)
	msgs.GET("", h.GetChats)
	msgs.POST("", h.SendMessage)

	mod := r.Group("/moderation", CORS("GET, POST, PUT, OPTIONS"), h.RequireIdentity())
	mod.OPTIONS("", preflight)
	mod.POST("", h.FileReport)
	mod.GET("", h.ListReports)
	mod.PUT("", h.ResolveReport)

	sms := r.Group("/sms", CORS("GET, POST, OPTIONS"))
	sms.OPTIONS("", preflight)
	sms.POST("", h.SendOrVerifyCode)

	return r
}

// preflight never runs: the CORS middleware answers OPTIONS first. The
// route must still exist so gin dispatches into the middleware chain.
func preflight(c *gin.Context) {
	c.Status(http.StatusOK)
}

func notFound(c *gin.Context) {
	c.Header("Access-Control-Allow-Origin", "*")
	c.JSON(http.StatusNotFound, gin.H{"error": "Endpoint not found"})
}

// respondError converts a service error into the JSON error contract. No
// internal detail leaks: anything outside the taxonomy becomes a generic
// 500.
func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, apperr.ErrValidation):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, apperr.ErrAuthentication):
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
	case errors.Is(err, apperr.ErrAuthorization):
		c.JSON(http.StatusForbidden, gin.H{"error": "Admin access required"})
	case errors.Is(err, apperr.ErrConflict), errors.Is(err, gorm.ErrDuplicatedKey):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, apperr.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Endpoint not found"})
	default:
		log.Printf("ERROR: Unhandled error on %s %s: %v", c.Request.Method, c.Request.URL.Path, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	}
}
