package dispatch

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	tele "gopkg.in/telebot.v4"
)

type TelegramConfig struct {
	Token  string
	ChatID int64
}

// TelegramTransport delivers alerts as plain-text Telegram messages.
// Rich bodies are intentionally not rendered; the subject plus text body
// carries everything a phone notification needs.
type TelegramTransport struct {
	bot    *tele.Bot
	chatID int64
}

func NewTelegram(cfg TelegramConfig) (*TelegramTransport, error) {
	if strings.TrimSpace(cfg.Token) == "" {
		return nil, errors.New("telegram token is empty")
	}
	if cfg.ChatID == 0 {
		return nil, errors.New("telegram chat_id is empty")
	}
	b, err := tele.NewBot(tele.Settings{
		Token:  cfg.Token,
		Client: &http.Client{Timeout: 10 * time.Second},
	})
	if err != nil {
		return nil, err
	}
	return &TelegramTransport{bot: b, chatID: cfg.ChatID}, nil
}

func (t *TelegramTransport) Name() string { return "telegram" }

func (t *TelegramTransport) Send(ctx context.Context, c Content) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}
	text := c.Subject + "\n\n" + c.TextBody
	_, err := t.bot.Send(tele.ChatID(t.chatID), text, &tele.SendOptions{
		DisableWebPagePreview: true,
	})
	return err
}
