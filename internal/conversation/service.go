// Package conversation implements the conversation store: implicit chat
// creation on first contact, message delivery, the inbox view and the
// read-state transition bundled into history fetches.
package conversation

import (
	"log"
	"strings"

	"messenger/backend/internal/apperr"
	"messenger/backend/internal/models"
	"messenger/backend/internal/storage"
)

// Service handles the business logic for conversations.
type Service struct {
	Storage storage.Storage
}

// NewService creates a new conversation service.
func NewService(s storage.Storage) *Service {
	return &Service{Storage: s}
}

// SendMessage delivers text from sender to recipient, creating their shared
// chat if this is the pair's first contact. Returns the stored message and
// the chat it landed in.
func (s *Service) SendMessage(senderID, recipientID uint, text string) (*models.Message, uint, error) {
	text = strings.TrimSpace(text)
	if recipientID == 0 || text == "" {
		return nil, 0, apperr.Validation("recipient_id and message_text required")
	}
	if recipientID == senderID {
		return nil, 0, apperr.Validation("cannot message yourself")
	}
	recipient, err := s.Storage.GetUserByID(recipientID)
	if err != nil {
		return nil, 0, err
	}
	if recipient == nil {
		return nil, 0, apperr.Validation("recipient does not exist")
	}

	chatID, err := s.Storage.GetOrCreateChat(senderID, recipientID)
	if err != nil {
		return nil, 0, err
	}

	msg := &models.Message{
		ChatID:      chatID,
		SenderID:    senderID,
		MessageText: text,
	}
	if err := s.Storage.SaveMessage(msg); err != nil {
		return nil, 0, err
	}
	return msg, chatID, nil
}

// Inbox returns the user's chats, newest activity first, with unread counts
// recomputed fresh on every call. The stored is_online flag is overlaid
// with live Redis presence so recently active peers show as online.
func (s *Service) Inbox(userID uint) ([]models.ChatSummary, error) {
	summaries, err := s.Storage.ListChatSummaries(userID)
	if err != nil {
		return nil, err
	}
	for i := range summaries {
		if summaries[i].IsOnline {
			continue
		}
		online, err := s.Storage.IsOnline(summaries[i].UserID)
		if err != nil {
			log.Printf("ERROR: Presence lookup for user %d failed: %v", summaries[i].UserID, err)
			continue
		}
		summaries[i].IsOnline = online
	}
	return summaries, nil
}

// History is a two-step contract: fetch the chat's messages oldest-first,
// then mark every message authored by the other participant as read. The
// side effect happens on every call. An unknown chat yields an empty list.
func (s *Service) History(chatID, viewerID uint) ([]models.MessageView, error) {
	if chatID == 0 {
		return nil, apperr.Validation("chat_id required")
	}
	return s.Storage.FetchAndMarkRead(chatID, viewerID)
}
