package storage

import (
	"errors"
	"log"
	"time"

	"messenger/backend/internal/models"

	"gorm.io/gorm"
)

// IssueCode invalidates every unused code for the phone and stores the new
// one, so at most one code per phone is live at a time.
func (s *Service) IssueCode(phone, code string, expiresAt time.Time) error {
	return s.DB.Transaction(func(tx *gorm.DB) error {
		err := tx.Model(&models.VerificationCode{}).
			Where("phone = ? AND is_used = FALSE", phone).
			Update("is_used", true).Error
		if err != nil {
			return err
		}
		return tx.Create(&models.VerificationCode{
			Phone:     phone,
			Code:      code,
			ExpiresAt: expiresAt,
		}).Error
	})
}

// ConsumeCode checks code against the phone's newest unused, unexpired
// code. A match marks it used and returns true. A miss increments the
// attempt counter on the phone's live codes and returns false; the counter
// is never read back to block verification.
func (s *Service) ConsumeCode(phone, code string, now time.Time) (bool, error) {
	matched := false
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		var vc models.VerificationCode
		err := tx.Where("phone = ? AND code = ? AND is_used = FALSE AND expires_at > ?", phone, code, now).
			Order("created_at DESC").
			First(&vc).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return tx.Model(&models.VerificationCode{}).
				Where("phone = ? AND is_used = FALSE", phone).
				Update("attempts", gorm.Expr("attempts + 1")).Error
		}
		if err != nil {
			return err
		}
		matched = true
		return tx.Model(&vc).Update("is_used", true).Error
	})
	if err != nil {
		log.Printf("ERROR: Failed to verify code for phone %s: %v", phone, err)
		return false, err
	}
	return matched, nil
}
