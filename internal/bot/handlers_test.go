package bot

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mkornev/tradebot/core/telegram/state"
	"github.com/mkornev/tradebot/internal/content"

	tele "gopkg.in/telebot.v4"
)

// stubContext implements just enough of tele.Context to drive handlers
// in-process. Calls outside the overridden set panic on the embedded nil.
type stubContext struct {
	tele.Context
	sender *tele.User
	cb     *tele.Callback
	store  map[string]any
	edits  int
}

func newStubContext(senderID int64, callbackData string) *stubContext {
	s := &stubContext{
		sender: &tele.User{ID: senderID, Username: "trader"},
		store:  map[string]any{},
	}
	if callbackData != "" {
		s.cb = &tele.Callback{Data: callbackData, Sender: s.sender}
	}
	return s
}

func (s *stubContext) Sender() *tele.User       { return s.sender }
func (s *stubContext) Callback() *tele.Callback { return s.cb }
func (s *stubContext) Chat() *tele.Chat         { return &tele.Chat{ID: s.sender.ID} }
func (s *stubContext) Message() *tele.Message   { return nil }
func (s *stubContext) Text() string             { return "" }
func (s *stubContext) Update() tele.Update      { return tele.Update{ID: 1, Callback: s.cb} }
func (s *stubContext) Get(key string) any       { return s.store[key] }
func (s *stubContext) Set(key string, val any)  { s.store[key] = val }

func (s *stubContext) EditOrSend(_ any, _ ...any) error {
	s.edits++
	return nil
}

type stubUsers struct {
	segments map[int64]string
}

func (s *stubUsers) Ensure(context.Context, int64, string, string) error { return nil }
func (s *stubUsers) MarkGuideSent(context.Context, int64) error          { return nil }

func (s *stubUsers) SetSegment(_ context.Context, id int64, segment string) error {
	s.segments[id] = segment
	return nil
}

func newTestApp() *App {
	return &App{
		catalog: content.NewCatalog("https://demo.example", "https://app.example"),
		users:   &stubUsers{segments: map[int64]string{}},
		fsm:     state.NewMemoryManager(0),
	}
}

func TestHomeCallbackAbandonsPendingFlow(t *testing.T) {
	ctx := context.Background()
	app := newTestApp()
	require.NoError(t, app.fsm.SetState(ctx, 100, stateAwaitingContact))

	c := newStubContext(100, "\fhome")
	require.NoError(t, app.handleHome(c))

	assert.Equal(t, state.StateIdle, app.fsm.GetState(ctx, 100))
	assert.Equal(t, 1, c.edits)
}

func TestSegmentChoiceAbandonsPendingFlow(t *testing.T) {
	ctx := context.Background()
	app := newTestApp()
	require.NoError(t, app.fsm.SetState(ctx, 100, stateAwaitingContact))

	c := newStubContext(100, "\fseg|new")
	require.NoError(t, app.handleSegment(c))

	assert.Equal(t, "new", app.users.(*stubUsers).segments[100])
	assert.Equal(t, state.StateIdle, app.fsm.GetState(ctx, 100))
}

func TestSegmentCallbackRejectsUnknownPayload(t *testing.T) {
	ctx := context.Background()
	app := newTestApp()

	c := newStubContext(100, "\fseg|whale")
	require.NoError(t, app.handleSegment(c))

	assert.Empty(t, app.users.(*stubUsers).segments)
	assert.Equal(t, state.StateIdle, app.fsm.GetState(ctx, 100))
	assert.Equal(t, 1, c.edits)
}
