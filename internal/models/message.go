package models

import "time"

// Message is a single chat message. IsRead starts false and flips to true
// in bulk when the other participant fetches the chat's message list; it
// never transitions back.
type Message struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	ChatID      uint      `gorm:"index:idx_chat_msg;not null" json:"chat_id"`
	SenderID    uint      `gorm:"index:idx_chat_msg;not null" json:"sender_id"`
	MessageText string    `gorm:"type:text;not null" json:"message_text"`
	SentAt      time.Time `gorm:"autoCreateTime" json:"sent_at"`
	IsRead      bool      `gorm:"default:false" json:"is_read"`
}

// MessageView is a message joined with its sender's username, the shape
// returned by the chat history endpoint.
type MessageView struct {
	ID             uint      `json:"id"`
	MessageText    string    `json:"message_text"`
	SentAt         time.Time `json:"sent_at"`
	IsRead         bool      `json:"is_read"`
	SenderID       uint      `json:"sender_id"`
	SenderUsername string    `json:"sender_username"`
}

// ChatSummary is one row of a user's inbox: the peer's profile, the latest
// message preview and the number of peer-authored unread messages.
type ChatSummary struct {
	ChatID          uint       `json:"chat_id"`
	UserID          uint       `json:"user_id"`
	Username        string     `json:"username"`
	FullName        string     `json:"full_name"`
	AvatarURL       string     `json:"avatar_url"`
	IsOnline        bool       `json:"is_online"`
	LastMessage     *string    `json:"last_message"`
	LastMessageTime *time.Time `json:"last_message_time"`
	UnreadCount     int        `json:"unread_count"`
}
