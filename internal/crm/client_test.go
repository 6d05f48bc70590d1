package crm

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPushLeadDeliversPayload(t *testing.T) {
	var received LeadEvent
	var calls atomic.Int32

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&received))
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	client := NewClient(srv.URL, 2*time.Second)
	client.PushLead(context.Background(), LeadEvent{
		LeadID:  7,
		UserID:  42,
		Contact: "+1 555-123-4567",
		Segment: "tried",
	})

	assert.Equal(t, int32(1), calls.Load())
	assert.Equal(t, int64(7), received.LeadID)
	assert.Equal(t, int64(42), received.UserID)
	assert.Equal(t, "+1 555-123-4567", received.Contact)
	assert.NotEmpty(t, received.EventID, "event id must be generated when absent")
}

func TestPushLeadSwallowsServerErrors(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	client := NewClient(srv.URL, 2*time.Second)
	// Must not panic or propagate anything.
	client.PushLead(context.Background(), LeadEvent{LeadID: 1, UserID: 1, Contact: "x"})
}

func TestPushLeadDisabledWithoutURL(t *testing.T) {
	client := NewClient("", time.Second)
	assert.False(t, client.Enabled())
	client.PushLead(context.Background(), LeadEvent{LeadID: 1, UserID: 1, Contact: "x"})
}

func TestPushLeadKeepsProvidedEventID(t *testing.T) {
	var received LeadEvent
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewDecoder(r.Body).Decode(&received)
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	client := NewClient(srv.URL, time.Second)
	client.PushLead(context.Background(), LeadEvent{EventID: "fixed-id", LeadID: 2, UserID: 2, Contact: "y"})
	assert.Equal(t, "fixed-id", received.EventID)
}
