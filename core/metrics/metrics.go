// Package metrics exposes prometheus collectors for the bot runtime.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// UpdatesReceived counts webhook envelopes accepted for dispatch, by update kind.
	UpdatesReceived = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "bot_updates_received_total",
		Help: "Inbound Telegram updates accepted for dispatch.",
	}, []string{"kind"})

	// UpdatesRejected counts webhook calls rejected before dispatch.
	UpdatesRejected = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "bot_updates_rejected_total",
		Help: "Webhook calls rejected before dispatch.",
	}, []string{"reason"})

	// HandlerFailures counts handler executions that returned an error.
	HandlerFailures = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "bot_handler_failures_total",
		Help: "Handler executions that returned an error.",
	}, []string{"handler"})

	// LeadsCaptured counts persisted leads by capture source.
	LeadsCaptured = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "bot_leads_captured_total",
		Help: "Leads persisted by the capture flow.",
	}, []string{"source"})

	// CRMPushes counts outbound CRM webhook pushes by outcome.
	CRMPushes = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "bot_crm_pushes_total",
		Help: "Outbound CRM webhook pushes.",
	}, []string{"status"})
)

// Handler returns the HTTP handler serving the prometheus text exposition.
func Handler() http.Handler {
	return promhttp.Handler()
}
