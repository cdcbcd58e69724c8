package notifier

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/rs/zerolog/log"
)

// TelegramNotifier sends messages via the Telegram Bot API.
type TelegramNotifier struct {
	BotToken string
	ChatID   string
	// RetryBase is the first backoff step of SendWithRetry; it doubles per attempt.
	RetryBase time.Duration
	// PollTimeout is the long-polling timeout passed to getUpdates, in seconds.
	PollTimeout int
	// PollBackoff is the pause after a failed getUpdates call.
	PollBackoff time.Duration

	client *resty.Client
}

type apiResponse struct {
	OK          bool   `json:"ok"`
	Description string `json:"description"`
}

// NewTelegramNotifier creates a notifier against apiURL with optional proxy support.
func NewTelegramNotifier(apiURL, botToken, chatID, proxyURL string) *TelegramNotifier {
	client := resty.New().
		SetBaseURL(strings.TrimRight(apiURL, "/")).
		SetTimeout(40 * time.Second)
	if proxyURL != "" {
		client.SetProxy(proxyURL)
	}
	return &TelegramNotifier{
		BotToken:    botToken,
		ChatID:      chatID,
		RetryBase:   time.Second,
		PollTimeout: 30,
		PollBackoff: 5 * time.Second,
		client:      client,
	}
}

func (t *TelegramNotifier) methodPath(method string) string {
	return fmt.Sprintf("/bot%s/%s", t.BotToken, method)
}

// Send sends a message to the configured chat.
func (t *TelegramNotifier) Send(ctx context.Context, text string) error {
	result := &apiResponse{}
	resp, err := t.client.R().
		SetContext(ctx).
		SetBody(map[string]string{
			"chat_id":    t.ChatID,
			"text":       text,
			"parse_mode": "HTML",
		}).
		SetResult(result).
		SetError(result).
		Post(t.methodPath("sendMessage"))
	if err != nil {
		return fmt.Errorf("send message: %w", err)
	}
	if resp.IsError() || !result.OK {
		return fmt.Errorf("telegram API error: status %d, %s", resp.StatusCode(), result.Description)
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
		backoff := t.RetryBase * time.Duration(1<<uint(i))
		log.Warn().Err(err).Int("attempt", i+1).Dur("backoff", backoff).Msg("telegram send failed, retrying")
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(backoff):
		}
	}
	return fmt.Errorf("all %d attempts failed: %w", maxRetries+1, lastErr)
}
