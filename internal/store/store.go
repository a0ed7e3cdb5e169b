package store

import (
	"context"
	"errors"
	"time"
)

var (
	ErrNotFound     = errors.New("record not found")
	ErrDuplicateKey = errors.New("duplicate record id")
	ErrUnavailable  = errors.New("store unavailable")
)

// Row is a single record keyed by column header.
type Row map[string]string

// Collection names one record kind and its column layout.
// Headers[0] is the id column.
type Collection struct {
	Name    string
	Headers []string
}

func (c Collection) IDColumn() string {
	return c.Headers[0]
}

var (
	Users = Collection{
		Name:    "users",
		Headers: []string{"user_id", "email", "password_hash", "full_name", "role", "created_at"},
	}
	Children = Collection{
		Name:    "children",
		Headers: []string{"child_id", "owner_user_id", "nickname", "age", "comm_level", "personality", "notes", "preferences", "keywords", "created_at"},
	}
	Sessions = Collection{
		Name:    "sessions",
		Headers: []string{"session_id", "child_id", "owner_user_id", "mood", "environment", "context", "prompt", "created_at"},
	}
)

// Store is an append-only record store. Rows are never updated or deleted,
// and ListByField returns rows oldest first in storage order.
type Store interface {
	Insert(ctx context.Context, col Collection, row Row) error
	GetByID(ctx context.Context, col Collection, id string) (Row, error)
	ListByField(ctx context.Context, col Collection, field, value string) ([]Row, error)
	// LatestByField returns the matching row with the greatest created_at,
	// or (nil, nil) when no row matches.
	LatestByField(ctx context.Context, col Collection, field, value string) (Row, error)
	Ping(ctx context.Context) error
}

// FormatTime renders a timestamp the way cells store it: UTC, second
// precision, RFC 3339 with a trailing Z.
func FormatTime(t time.Time) string {
	return t.UTC().Truncate(time.Second).Format(time.RFC3339)
}

func ParseTime(raw string) (time.Time, error) {
	return time.Parse(time.RFC3339, raw)
}

// LatestRow scans rows in storage order and keeps the one with the greatest
// created_at. Equal timestamps resolve to the later row.
func LatestRow(rows []Row) Row {
	var latest Row
	var latestAt time.Time
	for _, row := range rows {
		at, _ := ParseTime(row["created_at"])
		if latest == nil || !at.Before(latestAt) {
			latest = row
			latestAt = at
		}
	}
	return latest
}
