package models

import (
	"fmt"
	"time"

	"gorm.io/gorm"
)

// Chat is a 1:1 conversation container. It carries no metadata of its own
// and is created lazily the first time two users exchange a message.
type Chat struct {
	ID uint `gorm:"primaryKey" json:"id"`
	// PairKey is the canonical "lo:hi" form of the two participant IDs.
	// The unique index guarantees at most one chat per unordered pair,
	// including under concurrent first-contact sends.
	PairKey   string    `gorm:"uniqueIndex;not null"`
	CreatedAt time.Time `json:"created_at"`
}

// ChatParticipant links a user to a chat. Exactly two rows exist per chat.
type ChatParticipant struct {
	ID     uint `gorm:"primaryKey"`
	ChatID uint `gorm:"index:idx_chat_user,unique;not null"`
	UserID uint `gorm:"index:idx_chat_user,unique;not null"`
}

// PairKey canonicalizes an unordered user pair into the form stored on Chat.
func PairKey(a, b uint) string {
	if a > b {
		a, b = b, a
	}
	return fmt.Sprintf("%d:%d", a, b)
}

// BeforeCreate rejects chats created without a pair key, since the key is
// the only thing standing between a race and a duplicate conversation.
func (c *Chat) BeforeCreate(tx *gorm.DB) error {
	if c.PairKey == "" {
		return gorm.ErrInvalidData
	}
	return nil
}
