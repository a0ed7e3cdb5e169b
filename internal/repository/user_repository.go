package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"hri-companion/internal/model"
	"hri-companion/internal/store"
)

type UserRepository struct {
	store store.Store
}

func NewUserRepository(st store.Store) *UserRepository {
	return &UserRepository{store: st}
}

func (r *UserRepository) Create(ctx context.Context, user *model.User) error {
	if err := r.store.Insert(ctx, store.Users, userToRow(user)); err != nil {
		return fmt.Errorf("create user failed: %w", err)
	}
	return nil
}

func (r *UserRepository) GetByID(ctx context.Context, id string) (*model.User, error) {
	row, err := r.store.GetByID(ctx, store.Users, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("query user by id failed: %w", err)
	}
	return userFromRow(row)
}

// GetByEmail resolves the lower-cased email, which is how the cell is
// stored. Duplicates cannot exist, so the first match is the user.
func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	rows, err := r.store.ListByField(ctx, store.Users, "email", strings.ToLower(email))
	if err != nil {
		return nil, fmt.Errorf("query user by email failed: %w", err)
	}
	if len(rows) == 0 {
		return nil, nil
	}
	return userFromRow(rows[0])
}

func userToRow(user *model.User) store.Row {
	return store.Row{
		"user_id":       user.ID,
		"email":         user.Email,
		"password_hash": user.PasswordHash,
		"full_name":     user.FullName,
		"role":          user.Role,
		"created_at":    store.FormatTime(user.CreatedAt),
	}
}

func userFromRow(row store.Row) (*model.User, error) {
	createdAt, err := store.ParseTime(row["created_at"])
	if err != nil {
		return nil, fmt.Errorf("parse user created_at failed: %w", err)
	}
	return &model.User{
		ID:           row["user_id"],
		Email:        row["email"],
		PasswordHash: row["password_hash"],
		FullName:     row["full_name"],
		Role:         row["role"],
		CreatedAt:    createdAt,
	}, nil
}
