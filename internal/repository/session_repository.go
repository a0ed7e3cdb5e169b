package repository

import (
	"context"
	"errors"
	"fmt"

	"hri-companion/internal/model"
	"hri-companion/internal/store"
)

type SessionRepository struct {
	store store.Store
}

func NewSessionRepository(st store.Store) *SessionRepository {
	return &SessionRepository{store: st}
}

func (r *SessionRepository) Create(ctx context.Context, session *model.Session) error {
	if err := r.store.Insert(ctx, store.Sessions, sessionToRow(session)); err != nil {
		return fmt.Errorf("create session failed: %w", err)
	}
	return nil
}

func (r *SessionRepository) GetByID(ctx context.Context, id string) (*model.Session, error) {
	row, err := r.store.GetByID(ctx, store.Sessions, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("query session by id failed: %w", err)
	}
	return sessionFromRow(row)
}

// LatestByChildID returns the child's most recent session, or nil when the
// child has none yet.
func (r *SessionRepository) LatestByChildID(ctx context.Context, childID string) (*model.Session, error) {
	row, err := r.store.LatestByField(ctx, store.Sessions, "child_id", childID)
	if err != nil {
		return nil, fmt.Errorf("query latest session failed: %w", err)
	}
	if row == nil {
		return nil, nil
	}
	return sessionFromRow(row)
}

func sessionToRow(session *model.Session) store.Row {
	return store.Row{
		"session_id":    session.ID,
		"child_id":      session.ChildID,
		"owner_user_id": session.OwnerUserID,
		"mood":          session.Mood,
		"environment":   session.Environment,
		"context":       session.Context,
		"prompt":        session.Prompt,
		"created_at":    store.FormatTime(session.CreatedAt),
	}
}

func sessionFromRow(row store.Row) (*model.Session, error) {
	createdAt, err := store.ParseTime(row["created_at"])
	if err != nil {
		return nil, fmt.Errorf("parse session created_at failed: %w", err)
	}
	return &model.Session{
		ID:          row["session_id"],
		ChildID:     row["child_id"],
		OwnerUserID: row["owner_user_id"],
		Mood:        row["mood"],
		Environment: row["environment"],
		Context:     row["context"],
		Prompt:      row["prompt"],
		CreatedAt:   createdAt,
	}, nil
}
