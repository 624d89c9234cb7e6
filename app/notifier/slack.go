package notifier

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"golang.org/x/time/rate"
)

// Notifier delivers one formatted message per article to a Slack incoming
// webhook. Delivery is strictly sequential; a token-bucket limiter blocks
// each post until the minimum inter-message interval has passed since the
// previous one, which keeps the job inside Slack's one-message-per-second
// limit.
type Notifier struct {
	webhookURL string
	client     *http.Client
	limiter    *rate.Limiter
}

type payload struct {
	Text string `json:"text"`
}

func New(webhookURL string, timeout, interval time.Duration) *Notifier {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	if interval <= 0 {
		interval = 1100 * time.Millisecond
	}

	return &Notifier{
		webhookURL: webhookURL,
		client:     &http.Client{Timeout: timeout},
		limiter:    rate.NewLimiter(rate.Every(interval), 1),
	}
}

// Notify posts a single message, pacing it against the previous delivery.
// A non-2xx response is an error for that article; there is no retry.
func (n *Notifier) Notify(ctx context.Context, title, preview, articleURL string) error {
	if n.webhookURL == "" {
		return fmt.Errorf("webhook URL is not configured")
	}

	if err := n.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("interrupted while pacing messages: %w", err)
	}

	message := payload{
		Text: fmt.Sprintf("*%s*\n%s\n<%s|Read the full article>", title, preview, articleURL),
	}

	body, err := json.Marshal(message)
	if err != nil {
		return fmt.Errorf("failed to encode message: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", n.webhookURL, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := n.client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to deliver message: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return fmt.Errorf("webhook error %s: %s", resp.Status, strings.TrimSpace(string(detail)))
	}

	slog.Debug("Message delivered", "title", title)
	return nil
}
