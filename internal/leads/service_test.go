package leads

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/mkornev/tradebot/internal/crm"
	"github.com/mkornev/tradebot/internal/storage"
)

// waitSignal blocks until the background fan-out reaches the given side
// channel, or fails the test.
func waitSignal(t *testing.T, ch chan struct{}, what string) {
	t.Helper()
	select {
	case <-ch:
	case <-time.After(time.Second):
		t.Fatalf("%s was not reached", what)
	}
}

type MockLeadStore struct {
	mock.Mock
}

func (m *MockLeadStore) Insert(ctx context.Context, lead storage.Lead) (int64, error) {
	args := m.Called(ctx, lead)
	return args.Get(0).(int64), args.Error(1)
}

type MockSegmentSource struct {
	mock.Mock
}

func (m *MockSegmentSource) Segment(ctx context.Context, userID int64) (string, error) {
	args := m.Called(ctx, userID)
	return args.String(0), args.Error(1)
}

type MockPusher struct {
	mock.Mock
}

func (m *MockPusher) PushLead(ctx context.Context, event crm.LeadEvent) {
	m.Called(ctx, event)
}

type MockNotifier struct {
	mock.Mock
}

func (m *MockNotifier) Notify(ctx context.Context, html string) error {
	args := m.Called(ctx, html)
	return args.Error(0)
}

func TestCapturePersistsAndFansOut(t *testing.T) {
	ctx := context.Background()

	store := new(MockLeadStore)
	segments := new(MockSegmentSource)
	pusher := new(MockPusher)
	notifier := new(MockNotifier)

	segments.On("Segment", mock.Anything, int64(42)).Return("tried", nil)
	store.On("Insert", mock.Anything, mock.MatchedBy(func(l storage.Lead) bool {
		return l.UserID == 42 &&
			l.Contact == "+1 555-123-4567" &&
			l.Segment.String == "tried"
	})).Return(int64(7), nil)
	notified := make(chan struct{})
	pushed := make(chan struct{})
	notifier.On("Notify", mock.Anything, mock.Anything).
		Run(func(mock.Arguments) { close(notified) }).Return(nil)
	pusher.On("PushLead", mock.Anything, mock.MatchedBy(func(e crm.LeadEvent) bool {
		return e.LeadID == 7 && e.UserID == 42 && e.Segment == "tried"
	})).Run(func(mock.Arguments) { close(pushed) }).Return()

	svc := NewService(store, segments, pusher, notifier)
	leadID, err := svc.Capture(ctx, CaptureInput{
		UserID:   42,
		Username: "trader",
		Name:     "Test Trader",
		Contact:  "+1 555-123-4567",
		Comment:  "call me",
		Source:   "text",
	})

	assert.NoError(t, err)
	assert.Equal(t, int64(7), leadID)
	waitSignal(t, notified, "operator notice")
	waitSignal(t, pushed, "crm push")
	store.AssertExpectations(t)
	pusher.AssertExpectations(t)
	notifier.AssertExpectations(t)
}

func TestCaptureInsertFailureSurfaces(t *testing.T) {
	ctx := context.Background()

	store := new(MockLeadStore)
	segments := new(MockSegmentSource)
	pusher := new(MockPusher)
	notifier := new(MockNotifier)

	segments.On("Segment", mock.Anything, int64(1)).Return("", nil)
	store.On("Insert", mock.Anything, mock.Anything).Return(int64(0), errors.New("db down"))

	svc := NewService(store, segments, pusher, notifier)
	_, err := svc.Capture(ctx, CaptureInput{UserID: 1, Contact: "unknown"})

	assert.Error(t, err)
	// Nothing fans out when persistence failed.
	notifier.AssertNotCalled(t, "Notify", mock.Anything, mock.Anything)
	pusher.AssertNotCalled(t, "PushLead", mock.Anything, mock.Anything)
}

func TestCaptureNotifierFailureDoesNotBlock(t *testing.T) {
	ctx := context.Background()

	store := new(MockLeadStore)
	segments := new(MockSegmentSource)
	pusher := new(MockPusher)
	notifier := new(MockNotifier)

	pushed := make(chan struct{})
	segments.On("Segment", mock.Anything, int64(9)).Return("new", nil)
	store.On("Insert", mock.Anything, mock.Anything).Return(int64(3), nil)
	notifier.On("Notify", mock.Anything, mock.Anything).Return(errors.New("operator chat gone"))
	pusher.On("PushLead", mock.Anything, mock.Anything).
		Run(func(mock.Arguments) { close(pushed) }).Return()

	svc := NewService(store, segments, pusher, notifier)
	leadID, err := svc.Capture(ctx, CaptureInput{UserID: 9, Contact: "a.b@example.com"})

	assert.NoError(t, err)
	assert.Equal(t, int64(3), leadID)
	// A failed notice still reaches the CRM push.
	waitSignal(t, pushed, "crm push")
	pusher.AssertExpectations(t)
}

func TestCaptureReturnsBeforeSlowSideChannels(t *testing.T) {
	ctx := context.Background()

	store := new(MockLeadStore)
	segments := new(MockSegmentSource)
	pusher := new(MockPusher)

	entered := make(chan struct{})
	release := make(chan struct{})
	segments.On("Segment", mock.Anything, int64(4)).Return("pro", nil)
	store.On("Insert", mock.Anything, mock.Anything).Return(int64(21), nil)
	pusher.On("PushLead", mock.Anything, mock.Anything).
		Run(func(mock.Arguments) {
			close(entered)
			<-release
		}).Return()

	svc := NewService(store, segments, pusher, nil)
	leadID, err := svc.Capture(ctx, CaptureInput{UserID: 4, Contact: "+7 900 000-00-00"})

	// Capture returned while the push is still in flight.
	assert.NoError(t, err)
	assert.Equal(t, int64(21), leadID)
	waitSignal(t, entered, "crm push")
	close(release)
}

func TestCaptureSegmentLookupFailureDegrades(t *testing.T) {
	ctx := context.Background()

	store := new(MockLeadStore)
	segments := new(MockSegmentSource)

	segments.On("Segment", mock.Anything, int64(5)).Return("", errors.New("timeout"))
	store.On("Insert", mock.Anything, mock.MatchedBy(func(l storage.Lead) bool {
		return !l.Segment.Valid
	})).Return(int64(11), nil)

	svc := NewService(store, segments, nil, nil)
	leadID, err := svc.Capture(ctx, CaptureInput{UserID: 5, Contact: "unknown"})

	assert.NoError(t, err)
	assert.Equal(t, int64(11), leadID)
	store.AssertExpectations(t)
}

func TestOperatorNoticeEscapesHTML(t *testing.T) {
	svc := NewService(nil, nil, nil, nil)
	notice := svc.operatorNotice(CaptureInput{
		UserID:   1,
		Username: "trader",
		Name:     "<script>",
		Contact:  "+100 200",
		Comment:  "a<b",
	})
	assert.Contains(t, notice, "&lt;script&gt;")
	assert.Contains(t, notice, "a&lt;b")
	assert.NotContains(t, notice, "<script>")
}
