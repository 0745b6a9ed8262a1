package infra

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/rs/zerolog/log"
)

// webhookTimeout bounds a single notification attempt; after this the attempt
// is abandoned (at-most-once, no retry).
const webhookTimeout = 5 * time.Second

// N8NEvent is the envelope POSTed to the n8n webhook on order lifecycle
// transitions.
type N8NEvent struct {
	Type      string      `json:"type"`
	Data      interface{} `json:"data"`
	Timestamp string      `json:"timestamp"`
}

// N8NClient posts lifecycle events to the configured n8n webhook.
// With no URL configured every call is a logged no-op.
type N8NClient struct {
	webhookURL string
	httpClient *http.Client
}

func NewN8NClient(webhookURL string) *N8NClient {
	return &N8NClient{
		webhookURL: webhookURL,
		httpClient: &http.Client{Timeout: webhookTimeout},
	}
}

// Enabled reports whether a webhook endpoint is configured.
func (c *N8NClient) Enabled() bool { return c.webhookURL != "" }

// Send posts one event. Callers treat any error as best-effort: log and move on.
func (c *N8NClient) Send(ctx context.Context, eventType string, data interface{}) error {
	if !c.Enabled() {
		log.Debug().Str("type", eventType).Msg("n8n: webhook no configurado, se omite la notificacion")
		return nil
	}

	event := N8NEvent{
		Type:      eventType,
		Data:      data,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	}
	body, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("n8n: marshal event: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.webhookURL, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("n8n: create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("n8n: webhook unreachable: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("n8n: webhook returned %d", resp.StatusCode)
	}
	return nil
}
