package storage

import (
	"errors"
	"log"
	"time"

	"messenger/backend/internal/models"

	"gorm.io/gorm"
)

func (s *Service) SaveReport(report *models.Report) error {
	if report.Status == "" {
		report.Status = models.ReportStatusOpen
	}

	result := s.DB.Create(report)
	if result.Error != nil {
		log.Printf("ERROR: Failed to save report against user %d: %v", report.ReportedUserID, result.Error)
		return result.Error
	}
	return nil
}

func (s *Service) GetReportByID(id uint) (*models.Report, error) {
	var report models.Report
	err := s.DB.First(&report, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &report, nil
}

// ListReports returns the newest reports joined with both usernames.
func (s *Service) ListReports(limit int) ([]models.ReportView, error) {
	var reports []models.ReportView
	err := s.DB.Raw(`
		SELECT r.id, r.reason, r.status, r.created_at,
			u1.username AS reported_username,
			u2.username AS reported_by_username
		FROM reports r
		JOIN users u1 ON r.reported_user_id = u1.id
		JOIN users u2 ON r.reported_by_user_id = u2.id
		ORDER BY r.created_at DESC
		LIMIT ?
	`, limit).Scan(&reports).Error
	if err != nil {
		log.Printf("ERROR: Failed to list reports: %v", err)
		return nil, err
	}
	return reports, nil
}

// ReviewReport sets the report's status and stamps who reviewed it when.
func (s *Service) ReviewReport(reportID uint, status string, adminID uint) error {
	now := time.Now()
	return s.DB.Model(&models.Report{}).
		Where("id = ?", reportID).
		Updates(map[string]interface{}{
			"status":               status,
			"reviewed_at":          now,
			"reviewed_by_admin_id": adminID,
		}).Error
}
