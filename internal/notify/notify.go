// Package notify доставляет напоминания пользователям в Telegram.
package notify

import (
	"context"
	"errors"
	"fmt"

	"github.com/mymmrac/telego"
	tu "github.com/mymmrac/telego/telegoutil"
	log "github.com/sirupsen/logrus"
)

// ErrNoToken — токен бота не задан.
var ErrNoToken = errors.New("не задан токен Telegram-бота")

// Telegram отправляет сообщения через Bot API.
type Telegram struct {
	bot *telego.Bot
}

// NewTelegram создаёт отправителя по токену бота.
func NewTelegram(token string) (*Telegram, error) {
	if token == "" {
		return nil, ErrNoToken
	}
	bot, err := telego.NewBot(token, telego.WithDiscardLogger())
	if err != nil {
		return nil, fmt.Errorf("ошибка создания Telegram-бота: %w", err)
	}
	return &Telegram{bot: bot}, nil
}

// Notify отправляет text в чат chatID простым текстом без разметки.
func (t *Telegram) Notify(ctx context.Context, chatID int64, text string) error {
	if _, err := t.bot.SendMessage(ctx, tu.Message(tu.ID(chatID), text)); err != nil {
		return fmt.Errorf("ошибка отправки в чат %d: %w", chatID, err)
	}
	return nil
}

// Nop — отправитель, который только пишет в лог. Используется без токена бота.
type Nop struct{}

// Notify ничего не отправляет.
func (Nop) Notify(_ context.Context, chatID int64, text string) error {
	log.WithFields(log.Fields{
		"chat_id": chatID,
		"text":    text,
	}).Debug("Уведомления выключены, сообщение не отправлено")
	return nil
}

// Notifier — общий интерфейс отправителей.
type Notifier interface {
	Notify(ctx context.Context, chatID int64, text string) error
}

// New возвращает Telegram-отправителя или Nop, если токен пустой.
func New(token string) (Notifier, error) {
	if token == "" {
		log.Warn("TELEGRAM_BOT_TOKEN не задан, напоминания пишутся только в лог")
		return Nop{}, nil
	}
	return NewTelegram(token)
}
