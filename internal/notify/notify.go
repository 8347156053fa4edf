// Package notify delivers engine signals, settlement results and run
// reports to the configured channel.
package notify

import (
	"context"
	"fmt"
	"sync"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/sirupsen/logrus"
)

// Notifier delivers a formatted message to the notification channel
type Notifier interface {
	Send(ctx context.Context, text string) error
}

// Telegram enforces roughly 30 messages per minute per chat; spacing
// sends avoids 429s during busy runs.
const telegramSendInterval = 2 * time.Second

// TelegramNotifier sends messages to a Telegram chat
type TelegramNotifier struct {
	bot    *tgbotapi.BotAPI
	chatID int64
	logger *logrus.Logger

	mu       sync.Mutex
	lastSend time.Time
}

// NewTelegramNotifier creates a Telegram notifier
func NewTelegramNotifier(token string, chatID int64, logger *logrus.Logger) (*TelegramNotifier, error) {
	bot, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("failed to create telegram bot: %w", err)
	}
	return &TelegramNotifier{bot: bot, chatID: chatID, logger: logger}, nil
}

// Send delivers one message, spacing consecutive sends
func (n *TelegramNotifier) Send(ctx context.Context, text string) error {
	n.mu.Lock()
	wait := telegramSendInterval - time.Since(n.lastSend)
	if wait > 0 {
		timer := time.NewTimer(wait)
		select {
		case <-ctx.Done():
			timer.Stop()
			n.mu.Unlock()
			return ctx.Err()
		case <-timer.C:
		}
	}
	n.lastSend = time.Now()
	n.mu.Unlock()

	msg := tgbotapi.NewMessage(n.chatID, text)
	msg.ParseMode = tgbotapi.ModeHTML
	if _, err := n.bot.Send(msg); err != nil {
		return fmt.Errorf("failed to send telegram message: %w", err)
	}
	n.logger.WithField("chars", len(text)).Debug("Sent telegram message")
	return nil
}

// LogNotifier writes messages to the log instead of an external
// channel. Used when Telegram is disabled.
type LogNotifier struct {
	logger *logrus.Logger
}

// NewLogNotifier creates a log-backed notifier
func NewLogNotifier(logger *logrus.Logger) *LogNotifier {
	return &LogNotifier{logger: logger}
}

// Send logs the message body
func (n *LogNotifier) Send(ctx context.Context, text string) error {
	n.logger.WithField("message", text).Info("Notification")
	return nil
}
