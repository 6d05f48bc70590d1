package state

import (
	"context"
	"sync"
	"time"

	tghelpers "github.com/mkornev/tradebot/core/telegram/helpers"

	tele "gopkg.in/telebot.v4"
)

type memorySession struct {
	state   State
	touched time.Time
}

type memoryManager struct {
	mu       sync.RWMutex
	sessions map[int64]*memorySession
	ttl      time.Duration
}

// NewMemoryManager constructs an in-memory Manager for tests and
// development. A positive ttl makes idle sessions expire the same way
// the durable store does; zero disables expiry.
func NewMemoryManager(ttl time.Duration) Manager {
	return &memoryManager{
		sessions: make(map[int64]*memorySession),
		ttl:      ttl,
	}
}

func (m *memoryManager) GetState(_ context.Context, userID int64) State {
	m.mu.RLock()
	defer m.mu.RUnlock()
	sess, ok := m.sessions[userID]
	if !ok {
		return StateIdle
	}
	if m.ttl > 0 && time.Since(sess.touched) > m.ttl {
		return StateIdle
	}
	return sess.state
}

func (m *memoryManager) SetState(_ context.Context, userID int64, st State) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if st == StateIdle {
		delete(m.sessions, userID)
		return nil
	}
	m.sessions[userID] = &memorySession{state: st, touched: time.Now()}
	return nil
}

func (m *memoryManager) ClearState(_ context.Context, userID int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, userID)
	return nil
}

func (m *memoryManager) InProgress(c tele.Context) bool {
	ctx := tghelpers.BuildContext(c)
	return m.GetState(ctx, c.Sender().ID) != StateIdle
}

func (m *memoryManager) ManagerHandler(c tele.Context) error {
	ctx := tghelpers.BuildContext(c)
	current := m.GetState(ctx, c.Sender().ID)
	if handler, ok := fsmHandlers[current]; ok {
		return handler(c)
	}
	return nil
}
