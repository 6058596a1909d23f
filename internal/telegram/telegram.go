package telegram

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/biowire/biodigest/internal/retry"
)

// messageLimit stays under Telegram's 4096-char cap with headroom for the
// part marker.
const messageLimit = 4000

var sendRetry = retry.RetryConfig{
	MaxAttempts: 3,
	Delay:       2 * time.Second,
	Backoff:     true,
}

// SendMessage sends one text message to a Telegram chat/channel with retry.
func SendMessage(ctx context.Context, token, chatID, text string) error {
	err := retry.WithRetry(ctx, sendRetry, func() error {
		return sendMessageOnce(token, chatID, text)
	})
	if err != nil {
		return fmt.Errorf("sending telegram message: %w", err)
	}
	return nil
}

// SendDigest delivers a digest script, splitting it into multiple messages
// at paragraph boundaries when it exceeds the message limit.
func SendDigest(ctx context.Context, token, chatID, script string) error {
	parts := SplitMessage(script, messageLimit)
	for i, part := range parts {
		if len(parts) > 1 {
			part = fmt.Sprintf("(%d/%d)\n%s", i+1, len(parts), part)
		}
		if err := SendMessage(ctx, token, chatID, part); err != nil {
			return fmt.Errorf("digest part %d/%d: %w", i+1, len(parts), err)
		}
	}
	log.Printf("Digest delivered to Telegram in %d message(s)", len(parts))
	return nil
}

// SplitMessage breaks text into chunks of at most limit bytes, cutting at
// paragraph breaks, then line breaks, then hard at the limit.
func SplitMessage(text string, limit int) []string {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil
	}

	var parts []string
	for len(text) > limit {
		cut := strings.LastIndex(text[:limit], "\n\n")
		if cut <= 0 {
			cut = strings.LastIndex(text[:limit], "\n")
		}
		if cut <= 0 {
			cut = limit
		}
		parts = append(parts, strings.TrimSpace(text[:cut]))
		text = strings.TrimSpace(text[cut:])
	}
	if text != "" {
		parts = append(parts, text)
	}
	return parts
}

func sendMessageOnce(token, chatID, text string) error {
	url := fmt.Sprintf("https://api.telegram.org/bot%s/sendMessage", token)

	payload := map[string]interface{}{
		"chat_id":                  chatID,
		"text":                     text,
		"disable_web_page_preview": true,
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("error make JSON: %v", err)
	}

	client := &http.Client{Timeout: 30 * time.Second}
	resp, err := client.Post(url, "application/json", bytes.NewBuffer(body))
	if err != nil {
		return fmt.Errorf("error HTTP request: %v", err)
	}
	defer func(Body io.ReadCloser) {
		if err := Body.Close(); err != nil {
			log.Printf("Warning: failed to close response body: %v", err)
		}
	}(resp.Body)

	if resp.StatusCode != 200 {
		return fmt.Errorf("telegram API error: status %d", resp.StatusCode)
	}
	return nil
}
