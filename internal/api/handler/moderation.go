package handler

import (
	"net/http"

	"messenger/backend/internal/models"

	"github.com/gin-gonic/gin"
)

type fileReportRequest struct {
	ReportedUserID uint   `json:"reported_user_id"`
	Reason         string `json:"reason"`
}

type resolveReportRequest struct {
	ReportID uint   `json:"report_id"`
	Status   string `json:"status"`
}

// FileReport lets any authenticated user report another user.
func (h *Handler) FileReport(c *gin.Context) {
	var req fileReportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "reported_user_id and reason required"})
		return
	}

	report, err := h.Moderation.FileReport(currentUser(c), req.ReportedUserID, req.Reason)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"report_id": report.ID, "message": "Report submitted"})
}

// ListReports returns the newest reports. Admin only; the caller's admin
// flag is re-read on every request.
func (h *Handler) ListReports(c *gin.Context) {
	reports, err := h.Moderation.ListReports(currentUser(c))
	if err != nil {
		respondError(c, err)
		return
	}
	if reports == nil {
		reports = []models.ReportView{}
	}
	c.JSON(http.StatusOK, gin.H{"reports": reports})
}

// ResolveReport sets a report's status. Admin only.
func (h *Handler) ResolveReport(c *gin.Context) {
	var req resolveReportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "report_id required"})
		return
	}

	if err := h.Moderation.Resolve(currentUser(c), req.ReportID, req.Status); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Report updated"})
}
