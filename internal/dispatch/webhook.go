package dispatch

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

type WebhookConfig struct {
	URL     string
	Timeout time.Duration
	DryRun  bool
}

// Webhook is the secondary, best-effort notification path. Its outcome is
// never reflected in alert-sent bookkeeping; a webhook-only delivery still
// counts as "no alert sent".
type Webhook struct {
	cfg  WebhookConfig
	http *http.Client
}

func NewWebhook(cfg WebhookConfig) *Webhook {
	if cfg.Timeout <= 0 {
		cfg.Timeout = 30 * time.Second
	}
	return &Webhook{cfg: cfg, http: &http.Client{Timeout: cfg.Timeout}}
}

type webhookPayload struct {
	Service       string `json:"service"`
	Hostname      string `json:"hostname"`
	Status        string `json:"status"`
	IsActive      bool   `json:"is_active"`
	Timestamp     string `json:"timestamp"`
	CorrelationID string `json:"correlation_id"`
}

func (w *Webhook) Send(ctx context.Context, c Content) error {
	if w.cfg.DryRun {
		return nil
	}

	body, err := json.Marshal(webhookPayload{
		Service:       c.Service,
		Hostname:      c.Hostname,
		Status:        c.Status,
		IsActive:      c.IsActive,
		Timestamp:     c.At.Format(time.RFC3339),
		CorrelationID: c.Correlation,
	})
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, w.cfg.URL, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := w.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("webhook returned status %d", resp.StatusCode)
	}
	return nil
}
