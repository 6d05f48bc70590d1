package state

import (
	"context"

	tele "gopkg.in/telebot.v4"
)

// State identifies a finite-state-machine step used in conversations.
type State string

const (
	// StateIdle indicates there is no active conversation with the user.
	StateIdle State = "idle"
)

// Store persists conversation states. Implementations must treat an
// absent or expired record as StateIdle.
type Store interface {
	State(ctx context.Context, userID int64) (State, error)
	SetState(ctx context.Context, userID int64, st State) error
	Clear(ctx context.Context, userID int64) error
}

// Manager orchestrates user conversation states and dispatches updates
// to the handler registered for the current state.
type Manager interface {
	GetState(ctx context.Context, userID int64) State
	SetState(ctx context.Context, userID int64, st State) error
	ClearState(ctx context.Context, userID int64) error

	InProgress(c tele.Context) bool
	ManagerHandler(c tele.Context) error
}
