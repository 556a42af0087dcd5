package models

import "time"

// User is an account in the messenger. Accounts are created either through
// explicit registration (username/password) or on first contact by phone,
// in which case the existing row is reused instead of inserting a duplicate.
type User struct {
	ID           uint   `gorm:"primaryKey" json:"id"`
	Username     string `gorm:"uniqueIndex;not null" json:"username"`
	PasswordHash string `gorm:"type:text" json:"-"`
	// Phone is optional; when set it is unique and serves as the
	// first-contact login key. A pointer keeps phoneless accounts out of
	// the unique index.
	Phone     *string   `gorm:"uniqueIndex" json:"phone,omitempty"`
	FullName  string    `json:"full_name"`
	AvatarURL string    `json:"avatar_url"`
	IsOnline  bool      `json:"is_online"`
	IsAdmin   bool      `json:"is_admin"`
	CreatedAt time.Time `json:"created_at"`
}
