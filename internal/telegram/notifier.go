// Package telegram pushes moderation notifications to an operator chat so
// new reports are seen without polling the admin listing.
package telegram

import (
	"strconv"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// Notifier sends plain-text messages to a fixed Telegram chat.
type Notifier struct {
	bot    *tgbotapi.BotAPI
	chatID int64
}

// NewNotifier connects the bot and resolves the target chat id.
func NewNotifier(token, chatID string) (*Notifier, error) {
	bot, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, err
	}
	id, err := strconv.ParseInt(chatID, 10, 64)
	if err != nil {
		return nil, err
	}
	return &Notifier{bot: bot, chatID: id}, nil
}

func (n *Notifier) Notify(text string) error {
	msg := tgbotapi.NewMessage(n.chatID, text)
	_, err := n.bot.Send(msg)
	return err
}
