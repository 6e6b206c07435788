package notifier

import (
	"context"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/rs/zerolog/log"
)

// DefaultAPIBase is the Telegram Bot API root.
const DefaultAPIBase = "https://api.telegram.org"

// TelegramNotifier sends messages via the Telegram Bot API.
type TelegramNotifier struct {
	BotToken string
	ChatID   string
	client   *resty.Client
}

// NewTelegramNotifier creates a notifier with optional proxy support.
// apiBase defaults to DefaultAPIBase when empty.
func NewTelegramNotifier(botToken, chatID, proxyURL, apiBase string) *TelegramNotifier {
	if apiBase == "" {
		apiBase = DefaultAPIBase
	}
	client := resty.New().
		SetBaseURL(apiBase).
		SetTimeout(35*time.Second).
		SetHeader("Content-Type", "application/json")
	if proxyURL != "" {
		client.SetProxy(proxyURL)
	}
	return &TelegramNotifier{BotToken: botToken, ChatID: chatID, client: client}
}

// Send sends a message to the configured chat.
func (t *TelegramNotifier) Send(ctx context.Context, text string) error {
	resp, err := t.client.R().
		SetContext(ctx).
		SetBody(map[string]string{
			"chat_id":    t.ChatID,
			"text":       text,
			"parse_mode": "HTML",
		}).
		Post(fmt.Sprintf("/bot%s/sendMessage", t.BotToken))
	if err != nil {
		return fmt.Errorf("send message: %w", err)
	}
	if !resp.IsSuccess() {
		return fmt.Errorf("telegram API error: status %d, body: %s", resp.StatusCode(), resp.String())
	}
	return nil
}

// SendWithRetry sends a message with exponential backoff retry.
func (t *TelegramNotifier) SendWithRetry(ctx context.Context, text string, maxRetries int) error {
	var lastErr error
	for i := 0; i <= maxRetries; i++ {
		err := t.Send(ctx, text)
		if err == nil {
			return nil
		}
		lastErr = err
		if i == maxRetries {
			break
		}
		backoff := time.Duration(1<<uint(i)) * time.Second
		log.Warn().Err(err).
			Int("attempt", i+1).
			Int("max_attempts", maxRetries+1).
			Dur("backoff", backoff).
			Msg("telegram send failed, retrying")
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(backoff):
		}
	}
	return fmt.Errorf("all %d retries exhausted: %w", maxRetries+1, lastErr)
}
