package storage

import (
	"database/sql"
	"time"
)

// User mirrors the users table. The primary key is the Telegram user ID.
type User struct {
	ID        int64          `db:"id"`
	Username  sql.NullString `db:"username"`
	FirstName sql.NullString `db:"first_name"`
	Segment   sql.NullString `db:"segment"`
	GotGuide  bool           `db:"got_guide"`
	CreatedAt time.Time      `db:"created_at"`
	UpdatedAt time.Time      `db:"updated_at"`
}

// Lead mirrors the leads table. Rows are append-only; repeat submissions
// from the same user produce new rows.
type Lead struct {
	ID        int64          `db:"id"`
	UserID    int64          `db:"user_id"`
	Username  sql.NullString `db:"username"`
	Name      sql.NullString `db:"name"`
	Contact   string         `db:"contact"`
	Segment   sql.NullString `db:"segment"`
	Comment   sql.NullString `db:"comment"`
	CreatedAt time.Time      `db:"created_at"`
}

// NullString builds a sql.NullString that is NULL for empty input.
func NullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
