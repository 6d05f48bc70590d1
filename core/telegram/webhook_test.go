package telegram

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	coreconfig "github.com/mkornev/tradebot/core/config"

	tele "gopkg.in/telebot.v4"
)

func testRouter(t *testing.T, onText tele.HandlerFunc) http.Handler {
	t.Helper()
	bot, err := tele.NewBot(tele.Settings{Token: "42:test", Offline: true, Synchronous: true})
	if err != nil {
		t.Fatalf("offline bot: %v", err)
	}
	if onText != nil {
		bot.Handle(tele.OnText, onText)
	}
	cfg := &coreconfig.Config{
		ServiceName: "tradebot",
		Webhook:     coreconfig.WebhookConfig{Secret: "sekret"},
	}
	return newWebhookRouter(bot, cfg)
}

func TestWebhookHealthEndpoint(t *testing.T) {
	router := testRouter(t, nil)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	var body map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if body["ok"] != true || body["service"] != "tradebot" {
		t.Fatalf("unexpected health body: %v", body)
	}
}

func TestWebhookMetricsEndpoint(t *testing.T) {
	router := testRouter(t, nil)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
}

func TestWebhookRejectsWrongPathSecret(t *testing.T) {
	router := testRouter(t, nil)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/webhook/guess", strings.NewReader(`{"update_id":1}`))
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", rec.Code)
	}
}

func TestWebhookRejectsWrongHeaderToken(t *testing.T) {
	router := testRouter(t, nil)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/webhook/sekret", strings.NewReader(`{"update_id":1}`))
	req.Header.Set(secretTokenHeader, "guess")
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", rec.Code)
	}
}

func TestWebhookRejectsMalformedBody(t *testing.T) {
	router := testRouter(t, nil)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/webhook/sekret", strings.NewReader(`{"update_id":`))
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
}

func TestWebhookDispatchesUpdate(t *testing.T) {
	var seen string
	router := testRouter(t, func(c tele.Context) error {
		seen = c.Text()
		return nil
	})

	update := `{"update_id":10,"message":{"message_id":1,"date":1,` +
		`"chat":{"id":100,"type":"private"},` +
		`"from":{"id":100,"is_bot":false,"first_name":"T","username":"trader"},` +
		`"text":"hello"}}`

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/webhook/sekret", strings.NewReader(update))
	req.Header.Set(secretTokenHeader, "sekret")
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if seen != "hello" {
		t.Fatalf("handler saw %q, want %q", seen, "hello")
	}
}

func TestWebhookAcknowledgesUnrecognizedUpdateShape(t *testing.T) {
	router := testRouter(t, nil)

	// Well-formed envelope without any known content is a silent no-op.
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/webhook/sekret", strings.NewReader(`{"update_id":11}`))
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
}
