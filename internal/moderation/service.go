// Package moderation provides the core logic for handling user reports:
// filing by any user, review by admins, and the admin capability check.
package moderation

import (
	"fmt"
	"log"
	"strings"

	"messenger/backend/internal/apperr"
	"messenger/backend/internal/config"
	"messenger/backend/internal/models"
	"messenger/backend/internal/storage"
)

// Notifier pushes a human-readable notification about a new report to an
// operator channel. Implementations must be safe to call concurrently.
type Notifier interface {
	Notify(text string) error
}

// Service handles the business logic for reports.
type Service struct {
	Storage  storage.Storage
	Notifier Notifier // optional
}

// NewService creates a new moderation service. notifier may be nil.
func NewService(s storage.Storage, notifier Notifier) *Service {
	return &Service{Storage: s, Notifier: notifier}
}

// FileReport records a report against a user. Any authenticated user may
// file one; notification failures are logged, never surfaced.
func (s *Service) FileReport(reporterID, reportedUserID uint, reason string) (*models.Report, error) {
	reason = strings.TrimSpace(reason)
	if reportedUserID == 0 || reason == "" {
		return nil, apperr.Validation("reported_user_id and reason required")
	}

	report := &models.Report{
		ReportedUserID:   reportedUserID,
		ReportedByUserID: reporterID,
		Reason:           reason,
	}
	if err := s.Storage.SaveReport(report); err != nil {
		return nil, err
	}

	if s.Notifier != nil {
		text := fmt.Sprintf("Report #%d: user %d reported by %d\nReason: %s",
			report.ID, reportedUserID, reporterID, reason)
		if err := s.Notifier.Notify(text); err != nil {
			log.Printf("ERROR: Failed to notify about report %d: %v", report.ID, err)
		}
	}
	return report, nil
}

// RequireAdmin re-reads the caller's row and checks the admin flag. The
// lookup is performed once per request and never cached; roles may change
// between requests.
func (s *Service) RequireAdmin(userID uint) error {
	user, err := s.Storage.GetUserByID(userID)
	if err != nil {
		return err
	}
	if user == nil || !user.IsAdmin {
		return apperr.ErrAuthorization
	}
	return nil
}

// ListReports returns the newest reports for an admin reviewer.
func (s *Service) ListReports(adminID uint) ([]models.ReportView, error) {
	if err := s.RequireAdmin(adminID); err != nil {
		return nil, err
	}
	return s.Storage.ListReports(config.ReportPageSize)
}

// Resolve sets a report's status on behalf of an admin. An empty status
// defaults to resolved.
func (s *Service) Resolve(adminID, reportID uint, status string) error {
	if err := s.RequireAdmin(adminID); err != nil {
		return err
	}
	if reportID == 0 {
		return apperr.Validation("report_id required")
	}
	if status == "" {
		status = models.ReportStatusResolved
	}
	return s.Storage.ReviewReport(reportID, status, adminID)
}
