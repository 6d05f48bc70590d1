package crm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/mkornev/tradebot/core/logger"
	"github.com/mkornev/tradebot/core/metrics"
	"log/slog"
)

// LeadEvent is the JSON document pushed to the CRM webhook for every
// captured lead. EventID lets the receiver deduplicate retries.
type LeadEvent struct {
	EventID  string `json:"event_id"`
	LeadID   int64  `json:"lead_id"`
	UserID   int64  `json:"user_id"`
	Username string `json:"username,omitempty"`
	Name     string `json:"name,omitempty"`
	Contact  string `json:"contact"`
	Segment  string `json:"segment,omitempty"`
	Comment  string `json:"comment,omitempty"`
}

// Client forwards captured leads to an external CRM webhook.
// A client with an empty URL is valid and silently drops every push.
type Client struct {
	webhookURL string
	httpClient *http.Client
	timeout    time.Duration
}

// NewClient builds a CRM client. timeout bounds a single push.
func NewClient(webhookURL string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Client{
		webhookURL: webhookURL,
		httpClient: &http.Client{Timeout: timeout},
		timeout:    timeout,
	}
}

// Enabled reports whether a webhook URL is configured.
func (c *Client) Enabled() bool {
	return c.webhookURL != ""
}

// PushLead sends the lead event to the CRM. Failures are logged and
// swallowed: CRM availability must never affect the user conversation.
func (c *Client) PushLead(ctx context.Context, event LeadEvent) {
	if !c.Enabled() {
		metrics.CRMPushes.WithLabelValues("disabled").Inc()
		return
	}
	if event.EventID == "" {
		event.EventID = uuid.NewString()
	}

	start := time.Now()
	if err := c.post(ctx, event); err != nil {
		metrics.CRMPushes.WithLabelValues("fail").Inc()
		logger.CRM.LogAttrs(ctx, slog.LevelWarn, "crm.push.fail",
			slog.String("event_id", event.EventID),
			slog.Int64("lead_id", event.LeadID),
			slog.Int64("user_id", event.UserID),
			slog.String("err", logger.SanitizeLimit(err.Error(), 256)),
			slog.Int64("duration_ms", logger.RoundMS(time.Since(start)).Milliseconds()),
		)
		return
	}

	metrics.CRMPushes.WithLabelValues("ok").Inc()
	logger.CRM.LogAttrs(ctx, slog.LevelInfo, "crm.push.ok",
		slog.String("event_id", event.EventID),
		slog.Int64("lead_id", event.LeadID),
		slog.Int64("user_id", event.UserID),
		slog.Int64("duration_ms", logger.RoundMS(time.Since(start)).Milliseconds()),
	)
}

func (c *Client) post(ctx context.Context, event LeadEvent) error {
	body, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal event: %w", err)
	}

	reqCtx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(reqCtx, http.MethodPost, c.webhookURL, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("post webhook: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("webhook returned status %d", resp.StatusCode)
	}
	return nil
}
