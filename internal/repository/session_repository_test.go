package repository

import (
	"context"
	"testing"
	"time"

	"hri-companion/internal/model"
	"hri-companion/internal/store/memstore"
)

func newSession(id, childID string, createdAt time.Time) *model.Session {
	return &model.Session{
		ID:          id,
		ChildID:     childID,
		OwnerUserID: "u1",
		Mood:        "happy",
		Environment: "loc_indoor,noise_quiet,crowd_few",
		Context:     "snack time",
		Prompt:      "Hi Ana!",
		CreatedAt:   createdAt.UTC().Truncate(time.Second),
	}
}

func TestSessionRepository_CreateAndGetByID(t *testing.T) {
	t.Parallel()

	repo := NewSessionRepository(memstore.New())
	ctx := context.Background()

	session := newSession("s1", "c1", time.Now())
	if err := repo.Create(ctx, session); err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	got, err := repo.GetByID(ctx, "s1")
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if got == nil {
		t.Fatal("GetByID returned nil for existing session")
	}
	if got.Prompt != "Hi Ana!" || got.Mood != "happy" {
		t.Errorf("got %+v, want stored session back", got)
	}
	if !got.CreatedAt.Equal(session.CreatedAt) {
		t.Errorf("CreatedAt = %v, want %v", got.CreatedAt, session.CreatedAt)
	}
}

func TestSessionRepository_GetByID_MissingReturnsNilNil(t *testing.T) {
	t.Parallel()

	repo := NewSessionRepository(memstore.New())

	got, err := repo.GetByID(context.Background(), "missing")
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if got != nil {
		t.Errorf("got %+v, want nil", got)
	}
}

func TestSessionRepository_LatestByChildID(t *testing.T) {
	t.Parallel()

	repo := NewSessionRepository(memstore.New())
	ctx := context.Background()

	base := time.Date(2025, 1, 1, 10, 0, 0, 0, time.UTC)
	for _, session := range []*model.Session{
		newSession("s1", "c1", base),
		newSession("s2", "c1", base.Add(48*time.Hour)),
		newSession("s3", "c1", base.Add(24*time.Hour)),
		newSession("other", "c2", base.Add(72*time.Hour)),
	} {
		if err := repo.Create(ctx, session); err != nil {
			t.Fatalf("Create %s failed: %v", session.ID, err)
		}
	}

	latest, err := repo.LatestByChildID(ctx, "c1")
	if err != nil {
		t.Fatalf("LatestByChildID failed: %v", err)
	}
	if latest == nil || latest.ID != "s2" {
		t.Errorf("latest = %+v, want s2", latest)
	}
}

func TestSessionRepository_LatestByChildID_TieGoesToLaterAppend(t *testing.T) {
	t.Parallel()

	repo := NewSessionRepository(memstore.New())
	ctx := context.Background()

	at := time.Date(2025, 1, 1, 10, 0, 0, 0, time.UTC)
	if err := repo.Create(ctx, newSession("first", "c1", at)); err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if err := repo.Create(ctx, newSession("second", "c1", at)); err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	latest, err := repo.LatestByChildID(ctx, "c1")
	if err != nil {
		t.Fatalf("LatestByChildID failed: %v", err)
	}
	if latest.ID != "second" {
		t.Errorf("latest = %q, want second", latest.ID)
	}
}

func TestSessionRepository_LatestByChildID_NoSessionsReturnsNilNil(t *testing.T) {
	t.Parallel()

	repo := NewSessionRepository(memstore.New())

	latest, err := repo.LatestByChildID(context.Background(), "c1")
	if err != nil {
		t.Fatalf("LatestByChildID failed: %v", err)
	}
	if latest != nil {
		t.Errorf("latest = %+v, want nil", latest)
	}
}
