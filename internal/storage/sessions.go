package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/mkornev/tradebot/core/logger"
	"github.com/mkornev/tradebot/core/telegram/state"
	"log/slog"
)

// DefaultSessionTTL bounds how long an unfinished conversation stays live.
const DefaultSessionTTL = 24 * time.Hour

// Sessions is a durable state.Store. Conversations survive restarts and
// expire after the TTL so stale prompts do not trap users forever.
type Sessions struct {
	db  *sqlx.DB
	ttl time.Duration
}

// NewSessions constructs the session store. A non-positive ttl falls back
// to DefaultSessionTTL.
func NewSessions(db *sqlx.DB, ttl time.Duration) *Sessions {
	if ttl <= 0 {
		ttl = DefaultSessionTTL
	}
	return &Sessions{db: db, ttl: ttl}
}

var _ state.Store = (*Sessions)(nil)

// State returns the live conversation state for a user. Expired rows
// count as idle.
func (s *Sessions) State(ctx context.Context, userID int64) (state.State, error) {
	var st string
	const q = `SELECT state FROM sessions WHERE user_id = $1 AND expires_at > now()`
	if err := s.db.GetContext(ctx, &st, q, userID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return state.StateIdle, nil
		}
		return state.StateIdle, fmt.Errorf("sessions: state for user %d: %w", userID, err)
	}
	return state.State(st), nil
}

// SetState transitions a user into the given state and refreshes expiry.
func (s *Sessions) SetState(ctx context.Context, userID int64, st state.State) error {
	const q = `
		INSERT INTO sessions (user_id, state, expires_at)
		VALUES ($1, $2, now() + $3::interval)
		ON CONFLICT (user_id) DO UPDATE
		SET state      = EXCLUDED.state,
		    expires_at = EXCLUDED.expires_at,
		    updated_at = now()`
	interval := fmt.Sprintf("%d seconds", int64(s.ttl.Seconds()))
	if _, err := s.db.ExecContext(ctx, q, userID, string(st), interval); err != nil {
		return fmt.Errorf("sessions: set state for user %d: %w", userID, err)
	}
	logger.SVCSessions.LogAttrs(ctx, slog.LevelDebug, "session.set",
		slog.Int64("user_id", userID),
		slog.String("state", string(st)),
	)
	return nil
}

// Clear drops the conversation for a user.
func (s *Sessions) Clear(ctx context.Context, userID int64) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM sessions WHERE user_id = $1`, userID); err != nil {
		return fmt.Errorf("sessions: clear for user %d: %w", userID, err)
	}
	return nil
}

// PurgeExpired removes expired rows and returns how many were dropped.
// Intended for a periodic background sweep.
func (s *Sessions) PurgeExpired(ctx context.Context) (int64, error) {
	res, err := s.db.ExecContext(ctx, `DELETE FROM sessions WHERE expires_at <= now()`)
	if err != nil {
		return 0, fmt.Errorf("sessions: purge expired: %w", err)
	}
	n, _ := res.RowsAffected()
	if n > 0 {
		logger.SVCSessions.LogAttrs(ctx, slog.LevelInfo, "session.purge",
			slog.Int64("removed", n),
		)
	}
	return n, nil
}
