package telegram

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	coreconfig "github.com/mkornev/tradebot/core/config"
	"github.com/mkornev/tradebot/core/logger"
	"github.com/mkornev/tradebot/core/metrics"

	tele "gopkg.in/telebot.v4"
	"log/slog"
)

const secretTokenHeader = "X-Telegram-Bot-Api-Secret-Token"

// runWebhook serves the inbound webhook surface and blocks until ctx is done.
//
// Contract: GET / is a health probe, GET /metrics the prometheus exposition,
// POST /webhook/{secret} the Telegram update sink. The shared secret is
// checked both in the path and in the secret-token header Telegram echoes
// back; receipt (200) is acknowledged once the envelope parses, independent
// of handler outcome.
func runWebhook(ctx context.Context, bot *tele.Bot, cfg *coreconfig.Config) error {
	if err := setWebhook(cfg.Telegram.Token, webhookEndpoint(cfg), cfg.Webhook.Secret); err != nil {
		return fmt.Errorf("telegram: webhook registration failed: %w", err)
	}
	logger.TG.Info("webhook registered",
		slog.String("event", "set_webhook"),
		slog.String("public_url", webhookEndpoint(cfg)),
	)

	srv := &http.Server{
		Addr:              fmt.Sprintf("%s:%d", cfg.Webhook.Listen, cfg.Webhook.Port),
		Handler:           newWebhookRouter(bot, cfg),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
		close(errCh)
	}()

	var runErr error
	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
		runErr = ctx.Err()
	case err, ok := <-errCh:
		if ok {
			runErr = err
		}
	}

	if err := deleteWebhook(cfg.Telegram.Token, false); err != nil {
		logger.TG.Warn("failed to delete webhook",
			slog.String("event", "delete_webhook"),
			slog.String("err", err.Error()),
		)
	}
	return runErr
}

func webhookEndpoint(cfg *coreconfig.Config) string {
	return cfg.Webhook.URL + "/webhook/" + cfg.Webhook.Secret
}

// newWebhookRouter builds the chi router serving health, metrics and updates.
func newWebhookRouter(bot *tele.Bot, cfg *coreconfig.Config) http.Handler {
	r := chi.NewRouter()
	r.Use(chimw.Recoverer)

	service := cfg.ServiceName
	r.Get("/", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{"ok": true, "service": service})
	})
	r.Method(http.MethodGet, "/metrics", metrics.Handler())
	r.Post("/webhook/{secret}", updateHandler(bot, cfg.Webhook.Secret))

	return r
}

// updateHandler validates the shared secret, decodes the update envelope and
// dispatches it into the bot. Dispatch errors never reach the transport: a
// parsed update is acknowledged regardless of what the handlers did with it.
func updateHandler(bot *tele.Bot, secret string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if chi.URLParam(r, "secret") != secret {
			metrics.UpdatesRejected.WithLabelValues("bad_secret").Inc()
			writeJSON(w, http.StatusUnauthorized, map[string]any{"ok": false, "error": "unauthorized"})
			return
		}
		if header := r.Header.Get(secretTokenHeader); header != "" && header != secret {
			metrics.UpdatesRejected.WithLabelValues("bad_secret").Inc()
			writeJSON(w, http.StatusUnauthorized, map[string]any{"ok": false, "error": "unauthorized"})
			return
		}

		var upd tele.Update
		if err := json.NewDecoder(r.Body).Decode(&upd); err != nil {
			metrics.UpdatesRejected.WithLabelValues("malformed").Inc()
			logger.TG.Warn("malformed update",
				slog.String("event", "webhook.reject"),
				slog.String("err", err.Error()),
			)
			writeJSON(w, http.StatusBadRequest, map[string]any{"ok": false, "error": "malformed update"})
			return
		}

		bot.ProcessUpdate(upd)
		writeJSON(w, http.StatusOK, map[string]any{"ok": true})
	}
}

func writeJSON(w http.ResponseWriter, code int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(payload)
}
