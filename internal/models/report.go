package models

import "time"

// Report statuses. A report starts open and is only ever mutated by an
// admin reviewing it.
const (
	ReportStatusOpen     = "open"
	ReportStatusResolved = "resolved"
)

type Report struct {
	ID                uint       `gorm:"primaryKey" json:"id"`
	ReportedUserID    uint       `gorm:"not null" json:"reported_user_id"`
	ReportedByUserID  uint       `gorm:"not null" json:"reported_by_user_id"`
	Reason            string     `gorm:"type:text;not null" json:"reason"`
	Status            string     `gorm:"default:open" json:"status"`
	CreatedAt         time.Time  `json:"created_at"`
	ReviewedAt        *time.Time `json:"reviewed_at,omitempty"`
	ReviewedByAdminID *uint      `json:"reviewed_by_admin_id,omitempty"`
}

// ReportView is a report joined with the usernames of both sides, the shape
// the admin listing returns.
type ReportView struct {
	ID                 uint      `json:"id"`
	Reason             string    `json:"reason"`
	Status             string    `json:"status"`
	CreatedAt          time.Time `json:"created_at"`
	ReportedUsername   string    `json:"reported_username"`
	ReportedByUsername string    `json:"reported_by_username"`
}
