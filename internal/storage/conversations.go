package storage

import (
	"errors"
	"log"

	"messenger/backend/internal/models"

	"gorm.io/gorm"
)

// GetOrCreateChat returns the id of the single chat shared by the two
// users, creating it together with both participant rows when the pair has
// never talked. Creation runs in one transaction; the pair-key unique index
// plus a short Redis advisory lock keep concurrent first-contact sends from
// producing two chats. A loser of that race re-reads the winner's chat.
func (s *Service) GetOrCreateChat(a, b uint) (uint, error) {
	key := models.PairKey(a, b)

	var chat models.Chat
	err := s.DB.Where("pair_key = ?", key).First(&chat).Error
	if err == nil {
		return chat.ID, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return 0, err
	}

	if locked, lockErr := s.acquirePairLock(key); lockErr != nil {
		log.Printf("ERROR: Pair lock for %s unavailable: %v", key, lockErr)
	} else if locked {
		defer s.releasePairLock(key)
	}

	err = s.DB.Transaction(func(tx *gorm.DB) error {
		chat = models.Chat{PairKey: key}
		if err := tx.Create(&chat).Error; err != nil {
			return err
		}
		participants := []models.ChatParticipant{
			{ChatID: chat.ID, UserID: a},
			{ChatID: chat.ID, UserID: b},
		}
		return tx.Create(&participants).Error
	})
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			// Lost the race: the winner committed this pair's chat.
			if err := s.DB.Where("pair_key = ?", key).First(&chat).Error; err != nil {
				return 0, err
			}
			return chat.ID, nil
		}
		log.Printf("ERROR: Failed to create chat for pair %s: %v", key, err)
		return 0, err
	}
	return chat.ID, nil
}

// SaveMessage inserts a message with IsRead=false and fills in the
// generated id and timestamp.
func (s *Service) SaveMessage(msg *models.Message) error {
	if err := s.DB.Create(msg).Error; err != nil {
		log.Printf("ERROR: Failed to save message in chat %d: %v", msg.ChatID, err)
		return err
	}
	return nil
}

// ListChatSummaries builds the inbox for userID in a single query: for each
// chat the user participates in, the peer's profile, the newest message and
// the count of peer-authored unread messages. Chats with the most recent
// message come first; chats with no messages at all sort last.
func (s *Service) ListChatSummaries(userID uint) ([]models.ChatSummary, error) {
	var summaries []models.ChatSummary
	err := s.DB.Raw(`
		SELECT
			c.id AS chat_id,
			u.id AS user_id,
			u.username,
			u.full_name,
			u.avatar_url,
			u.is_online,
			(SELECT m.message_text FROM messages m
				WHERE m.chat_id = c.id
				ORDER BY m.sent_at DESC, m.id DESC LIMIT 1) AS last_message,
			(SELECT m.sent_at FROM messages m
				WHERE m.chat_id = c.id
				ORDER BY m.sent_at DESC, m.id DESC LIMIT 1) AS last_message_time,
			(SELECT COUNT(*) FROM messages m
				WHERE m.chat_id = c.id AND m.sender_id <> ? AND m.is_read = FALSE) AS unread_count
		FROM chat_participants cp
		JOIN chats c ON cp.chat_id = c.id
		JOIN chat_participants cp2 ON cp2.chat_id = c.id AND cp2.user_id <> ?
		JOIN users u ON u.id = cp2.user_id
		WHERE cp.user_id = ?
		ORDER BY last_message_time DESC NULLS LAST
	`, userID, userID, userID).Scan(&summaries).Error
	if err != nil {
		log.Printf("ERROR: Failed to list chats for user %d: %v", userID, err)
		return nil, err
	}
	return summaries, nil
}

// FetchAndMarkRead returns the chat's messages oldest-first and, in the
// same transaction, flips every message authored by someone other than the
// viewer to read. The mark-read step runs on every call, unread or not;
// this is the read-receipt contract of the history endpoint. An unknown
// chat yields an empty slice, not an error.
func (s *Service) FetchAndMarkRead(chatID, viewerID uint) ([]models.MessageView, error) {
	var messages []models.MessageView
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		err := tx.Raw(`
			SELECT m.id, m.message_text, m.sent_at, m.is_read,
				u.id AS sender_id, u.username AS sender_username
			FROM messages m
			JOIN users u ON m.sender_id = u.id
			WHERE m.chat_id = ?
			ORDER BY m.sent_at ASC, m.id ASC
		`, chatID).Scan(&messages).Error
		if err != nil {
			return err
		}
		return tx.Model(&models.Message{}).
			Where("chat_id = ? AND sender_id <> ? AND is_read = FALSE", chatID, viewerID).
			Update("is_read", true).Error
	})
	if err != nil {
		log.Printf("ERROR: Failed to fetch messages for chat %d: %v", chatID, err)
		return nil, err
	}
	return messages, nil
}
