package state

import (
	"context"

	"github.com/mkornev/tradebot/core/logger"
	tghelpers "github.com/mkornev/tradebot/core/telegram/helpers"
	"log/slog"

	tele "gopkg.in/telebot.v4"
)

// storeManager persists conversation states through a Store.
// Store errors degrade to StateIdle on reads so a database hiccup
// drops a conversation instead of breaking routing.
type storeManager struct {
	store Store
}

// NewStoreManager constructs a Manager backed by a durable Store.
func NewStoreManager(store Store) Manager {
	return &storeManager{store: store}
}

// GetState returns the current state of a user, or StateIdle when no
// live session exists or the store fails.
func (m *storeManager) GetState(ctx context.Context, userID int64) State {
	st, err := m.store.State(ctx, userID)
	if err != nil {
		logger.Warn(ctx, "tg", "fsm.load.fail",
			slog.Int64("user_id", userID),
			slog.String("err", logger.SanitizeLimit(err.Error(), 256)),
		)
		return StateIdle
	}
	if st == "" {
		return StateIdle
	}
	return st
}

// SetState transitions a user into the given state.
func (m *storeManager) SetState(ctx context.Context, userID int64, st State) error {
	if st == StateIdle {
		return m.store.Clear(ctx, userID)
	}
	return m.store.SetState(ctx, userID, st)
}

// ClearState drops any active conversation for the user.
func (m *storeManager) ClearState(ctx context.Context, userID int64) error {
	return m.store.Clear(ctx, userID)
}

// InProgress reports whether the user currently has an active state.
func (m *storeManager) InProgress(c tele.Context) bool {
	ctx := tghelpers.BuildContext(c)
	return m.GetState(ctx, c.Sender().ID) != StateIdle
}

// ManagerHandler executes the handler registered for the user's current
// state, if any.
func (m *storeManager) ManagerHandler(c tele.Context) error {
	userID := c.Sender().ID
	ctx := tghelpers.BuildContext(c)
	current := m.GetState(ctx, userID)
	logger.Debug(ctx, "tg", "fsm.manager",
		slog.String("status", "ok"),
		slog.Int64("user_id", userID),
		slog.String("state", string(current)),
	)

	if handler, ok := fsmHandlers[current]; ok {
		return handler(c)
	}
	return nil
}
