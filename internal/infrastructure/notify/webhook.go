package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
)

// WebhookClient implements ports.WebhookSender: it posts JSON payloads to a
// single configured notification endpoint. An empty URL disables delivery.
type WebhookClient struct {
	url    string
	secret string
	client *http.Client
}

func NewWebhookClient(url, secret string) *WebhookClient {
	return &WebhookClient{url: url, secret: secret, client: &http.Client{}}
}

func (w *WebhookClient) SendWebhook(ctx context.Context, payload any) error {
	if w.url == "" {
		return nil
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("webhook marshal: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, w.url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("webhook request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if w.secret != "" {
		req.Header.Set("X-Webhook-Secret", w.secret)
	}

	resp, err := w.client.Do(req)
	if err != nil {
		return fmt.Errorf("webhook post: %w", err)
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)

	if resp.StatusCode >= http.StatusBadRequest {
		return fmt.Errorf("webhook post: endpoint returned %d", resp.StatusCode)
	}
	return nil
}
