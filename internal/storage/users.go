package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/mkornev/tradebot/core/logger"
	"log/slog"
)

// ErrNotFound is returned when a requested row does not exist.
var ErrNotFound = errors.New("storage: not found")

// Users persists Telegram user profiles and their segment choice.
type Users struct {
	db *sqlx.DB
}

// NewUsers constructs the users repository.
func NewUsers(db *sqlx.DB) *Users {
	return &Users{db: db}
}

// Ensure inserts the user if absent and refreshes the profile fields.
// Segment and got_guide survive repeated /start calls.
func (r *Users) Ensure(ctx context.Context, id int64, username, firstName string) error {
	const q = `
		INSERT INTO users (id, username, first_name)
		VALUES ($1, $2, $3)
		ON CONFLICT (id) DO UPDATE
		SET username   = EXCLUDED.username,
		    first_name = EXCLUDED.first_name,
		    updated_at = now()`
	if _, err := r.db.ExecContext(ctx, q, id, NullString(username), NullString(firstName)); err != nil {
		return fmt.Errorf("users: ensure %d: %w", id, err)
	}
	return nil
}

// SetSegment records the segment the user picked. Picking a new segment
// overwrites the previous one but never resets got_guide.
func (r *Users) SetSegment(ctx context.Context, id int64, segment string) error {
	const q = `
		INSERT INTO users (id, segment)
		VALUES ($1, $2)
		ON CONFLICT (id) DO UPDATE
		SET segment    = EXCLUDED.segment,
		    updated_at = now()`
	if _, err := r.db.ExecContext(ctx, q, id, NullString(segment)); err != nil {
		return fmt.Errorf("users: set segment %d: %w", id, err)
	}
	logger.SVCUsers.LogAttrs(ctx, slog.LevelDebug, "user.segment",
		slog.Int64("user_id", id),
		slog.String("segment", segment),
	)
	return nil
}

// MarkGuideSent flags that the user already received the guide.
// The stored segment is left untouched.
func (r *Users) MarkGuideSent(ctx context.Context, id int64) error {
	const q = `
		INSERT INTO users (id, got_guide)
		VALUES ($1, TRUE)
		ON CONFLICT (id) DO UPDATE
		SET got_guide  = TRUE,
		    updated_at = now()`
	if _, err := r.db.ExecContext(ctx, q, id); err != nil {
		return fmt.Errorf("users: mark guide sent %d: %w", id, err)
	}
	return nil
}

// Get fetches a user by Telegram ID.
func (r *Users) Get(ctx context.Context, id int64) (User, error) {
	var u User
	const q = `SELECT id, username, first_name, segment, got_guide, created_at, updated_at
		FROM users WHERE id = $1`
	if err := r.db.GetContext(ctx, &u, q, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return User{}, ErrNotFound
		}
		return User{}, fmt.Errorf("users: get %d: %w", id, err)
	}
	return u, nil
}

// Segment returns the stored segment for a user, or empty when unknown.
func (r *Users) Segment(ctx context.Context, id int64) (string, error) {
	u, err := r.Get(ctx, id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return "", nil
		}
		return "", err
	}
	return u.Segment.String, nil
}
