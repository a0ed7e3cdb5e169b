package repository

import (
	"context"
	"testing"
	"time"

	"hri-companion/internal/model"
	"hri-companion/internal/store/memstore"
)

func TestUserRepository_CreateAndGetByID(t *testing.T) {
	t.Parallel()

	repo := NewUserRepository(memstore.New())
	ctx := context.Background()

	user := &model.User{
		ID:           "u1",
		Email:        "ana@example.com",
		PasswordHash: "$2a$10$hash",
		FullName:     "Ana Parent",
		Role:         model.RoleParent,
		CreatedAt:    time.Now().UTC().Truncate(time.Second),
	}
	if err := repo.Create(ctx, user); err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	got, err := repo.GetByID(ctx, "u1")
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if got == nil {
		t.Fatal("GetByID returned nil for existing user")
	}
	if got.Email != user.Email || got.FullName != user.FullName || got.Role != user.Role {
		t.Errorf("got %+v, want %+v", got, user)
	}
	if !got.CreatedAt.Equal(user.CreatedAt) {
		t.Errorf("CreatedAt = %v, want %v", got.CreatedAt, user.CreatedAt)
	}
}

func TestUserRepository_GetByID_MissingReturnsNilNil(t *testing.T) {
	t.Parallel()

	repo := NewUserRepository(memstore.New())

	got, err := repo.GetByID(context.Background(), "missing")
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if got != nil {
		t.Errorf("got %+v, want nil", got)
	}
}

func TestUserRepository_GetByEmail_CaseInsensitive(t *testing.T) {
	t.Parallel()

	repo := NewUserRepository(memstore.New())
	ctx := context.Background()

	user := &model.User{
		ID:        "u1",
		Email:     "ana@example.com",
		FullName:  "Ana Parent",
		Role:      model.RoleParent,
		CreatedAt: time.Now().UTC().Truncate(time.Second),
	}
	if err := repo.Create(ctx, user); err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	got, err := repo.GetByEmail(ctx, "Ana@Example.COM")
	if err != nil {
		t.Fatalf("GetByEmail failed: %v", err)
	}
	if got == nil || got.ID != "u1" {
		t.Errorf("got %+v, want user u1", got)
	}
}

func TestUserRepository_GetByEmail_MissingReturnsNilNil(t *testing.T) {
	t.Parallel()

	repo := NewUserRepository(memstore.New())

	got, err := repo.GetByEmail(context.Background(), "nobody@example.com")
	if err != nil {
		t.Fatalf("GetByEmail failed: %v", err)
	}
	if got != nil {
		t.Errorf("got %+v, want nil", got)
	}
}
