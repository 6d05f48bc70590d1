package telegram

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// setWebhook registers the webhook URL with Telegram, passing the shared
// secret for provider-side verification of every delivery.
func setWebhook(token, publicURL, secret string) error {
	if strings.TrimSpace(token) == "" {
		return fmt.Errorf("empty token")
	}
	form := url.Values{}
	form.Set("url", publicURL)
	form.Set("secret_token", secret)
	form.Set("drop_pending_updates", "false")
	return callBotAPI(token, "setWebhook", form)
}

// deleteWebhook removes the registered webhook, optionally dropping queued updates.
func deleteWebhook(token string, dropPending bool) error {
	if strings.TrimSpace(token) == "" {
		return fmt.Errorf("empty token")
	}
	form := url.Values{}
	form.Set("drop_pending_updates", "false")
	if dropPending {
		form.Set("drop_pending_updates", "true")
	}
	return callBotAPI(token, "deleteWebhook", form)
}

func callBotAPI(token, method string, form url.Values) error {
	endpoint := fmt.Sprintf("https://api.telegram.org/bot%s/%s", token, method)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("%s status: %s", method, resp.Status)
	}
	return nil
}
