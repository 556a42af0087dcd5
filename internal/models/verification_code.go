package models

import "time"

// VerificationCode is a short-lived single-use SMS code bound to a phone
// number. Issuing a new code marks every prior unused code for the phone as
// used, so at most one code per phone is ever live.
type VerificationCode struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Phone     string    `gorm:"index;not null" json:"phone"`
	Code      string    `gorm:"not null" json:"-"`
	ExpiresAt time.Time `gorm:"not null" json:"expires_at"`
	IsUsed    bool      `gorm:"default:false" json:"is_used"`
	// Attempts counts failed verifications against the phone's live code.
	// Nothing reads it back; kept for parity with the original behavior.
	Attempts  int       `gorm:"default:0" json:"attempts"`
	CreatedAt time.Time `json:"created_at"`
}
