package repository

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"hri-companion/internal/model"
	"hri-companion/internal/store"
)

type ChildRepository struct {
	store store.Store
}

func NewChildRepository(st store.Store) *ChildRepository {
	return &ChildRepository{store: st}
}

func (r *ChildRepository) Create(ctx context.Context, child *model.Child) error {
	if err := r.store.Insert(ctx, store.Children, childToRow(child)); err != nil {
		return fmt.Errorf("create child failed: %w", err)
	}
	return nil
}

func (r *ChildRepository) GetByID(ctx context.Context, id string) (*model.Child, error) {
	row, err := r.store.GetByID(ctx, store.Children, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("query child by id failed: %w", err)
	}
	return childFromRow(row)
}

func (r *ChildRepository) ListByOwner(ctx context.Context, ownerUserID string) ([]model.Child, error) {
	rows, err := r.store.ListByField(ctx, store.Children, "owner_user_id", ownerUserID)
	if err != nil {
		return nil, fmt.Errorf("list children failed: %w", err)
	}
	children := make([]model.Child, 0, len(rows))
	for _, row := range rows {
		child, err := childFromRow(row)
		if err != nil {
			return nil, err
		}
		children = append(children, *child)
	}
	return children, nil
}

func childToRow(child *model.Child) store.Row {
	return store.Row{
		"child_id":      child.ID,
		"owner_user_id": child.OwnerUserID,
		"nickname":      child.Nickname,
		"age":           strconv.Itoa(child.Age),
		"comm_level":    child.CommLevel,
		"personality":   child.Personality,
		"notes":         child.Notes,
		"preferences":   child.Preferences,
		"keywords":      strings.Join(child.Keywords, ","),
		"created_at":    store.FormatTime(child.CreatedAt),
	}
}

func childFromRow(row store.Row) (*model.Child, error) {
	age, err := strconv.Atoi(row["age"])
	if err != nil {
		return nil, fmt.Errorf("parse child age failed: %w", err)
	}
	createdAt, err := store.ParseTime(row["created_at"])
	if err != nil {
		return nil, fmt.Errorf("parse child created_at failed: %w", err)
	}

	var keywords []string
	if raw := row["keywords"]; raw != "" {
		keywords = strings.Split(raw, ",")
	}

	return &model.Child{
		ID:          row["child_id"],
		OwnerUserID: row["owner_user_id"],
		Nickname:    row["nickname"],
		Age:         age,
		CommLevel:   row["comm_level"],
		Personality: row["personality"],
		Notes:       row["notes"],
		Preferences: row["preferences"],
		Keywords:    keywords,
		CreatedAt:   createdAt,
	}, nil
}
