package storage

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/mkornev/tradebot/core/logger"
	"log/slog"
)

// Leads persists captured contacts. The table is append-only.
type Leads struct {
	db *sqlx.DB
}

// NewLeads constructs the leads repository.
func NewLeads(db *sqlx.DB) *Leads {
	return &Leads{db: db}
}

// Insert stores a new lead and returns its ID.
func (r *Leads) Insert(ctx context.Context, lead Lead) (int64, error) {
	const q = `
		INSERT INTO leads (user_id, username, name, contact, segment, comment)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id`
	var id int64
	err := r.db.QueryRowContext(ctx, q,
		lead.UserID, lead.Username, lead.Name, lead.Contact, lead.Segment, lead.Comment,
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("leads: insert for user %d: %w", lead.UserID, err)
	}
	logger.SVCLeads.LogAttrs(ctx, slog.LevelDebug, "lead.insert",
		slog.Int64("lead_id", id),
		slog.Int64("user_id", lead.UserID),
	)
	return id, nil
}

// ListRecent returns the newest leads, most recent first.
func (r *Leads) ListRecent(ctx context.Context, limit int) ([]Lead, error) {
	if limit <= 0 {
		limit = 10
	}
	const q = `
		SELECT id, user_id, username, name, contact, segment, comment, created_at
		FROM leads
		ORDER BY id DESC
		LIMIT $1`
	var leads []Lead
	if err := r.db.SelectContext(ctx, &leads, q, limit); err != nil {
		return nil, fmt.Errorf("leads: list recent: %w", err)
	}
	return leads, nil
}

// CountByUser reports how many leads a user has submitted.
func (r *Leads) CountByUser(ctx context.Context, userID int64) (int, error) {
	var n int
	if err := r.db.GetContext(ctx, &n, `SELECT count(*) FROM leads WHERE user_id = $1`, userID); err != nil {
		return 0, fmt.Errorf("leads: count for user %d: %w", userID, err)
	}
	return n, nil
}
