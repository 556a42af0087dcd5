package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type smsRequest struct {
	Action string `json:"action"`
	Phone  string `json:"phone"`
	Code   string `json:"code"`
}

// SendOrVerifyCode handles POST /sms for both actions. "send" issues a
// fresh code (returned in plaintext in development mode, since no SMS
// gateway is attached); "verify" checks a code and reports 400 on a
// mismatch or expiry.
func (h *Handler) SendOrVerifyCode(c *gin.Context) {
	var req smsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Phone number required"})
		return
	}
	if req.Action == "" {
		req.Action = "send"
	}

	switch req.Action {
	case "send":
		code, err := h.Verification.Issue(req.Phone)
		if err != nil {
			respondError(c, err)
			return
		}
		resp := gin.H{"message": "Code sent"}
		if h.DevMode {
			resp["dev_code"] = code
		}
		c.JSON(http.StatusOK, resp)

	case "verify":
		ok, err := h.Verification.Verify(req.Phone, req.Code)
		if err != nil {
			respondError(c, err)
			return
		}
		if !ok {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid or expired code"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Code confirmed", "verified": true})

	default:
		notFound(c)
	}
}
