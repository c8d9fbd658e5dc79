package services

import (
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"portfolio/internal/models"
)

type TelegramNotifier interface {
	NotifyNewContact(c models.Contact) error
}

type telegramNotifier struct {
	bot    *tgbotapi.BotAPI
	chatID int64
}

// NewTelegramNotifier authorizes the bot token against the Bot API.
func NewTelegramNotifier(botToken string, chatID int64) (TelegramNotifier, error) {
	bot, err := tgbotapi.NewBotAPI(botToken)
	if err != nil {
		return nil, fmt.Errorf("telegram auth: %w", err)
	}
	return &telegramNotifier{bot: bot, chatID: chatID}, nil
}

func (t *telegramNotifier) NotifyNewContact(c models.Contact) error {
	msg := tgbotapi.NewMessage(t.chatID, contactText(c))
	msg.DisableWebPagePreview = true
	if _, err := t.bot.Send(msg); err != nil {
		return fmt.Errorf("telegram sendMessage failed: %w", err)
	}
	return nil
}

func contactText(c models.Contact) string {
	return fmt.Sprintf("New portfolio message\nFrom: %s <%s>\n\n%s", c.Name, c.Email, c.Message)
}
