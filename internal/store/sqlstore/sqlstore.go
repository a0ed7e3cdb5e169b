package sqlstore

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"hri-companion/internal/store"
)

// SQLStore maps the record collections onto MySQL tables. Each table carries
// an auto-increment seq column so storage order survives the translation, and
// a unique index on the record id enforces what the spreadsheet adapter can
// only pre-check.
type SQLStore struct {
	db *gorm.DB
}

func New(db *gorm.DB) (*SQLStore, error) {
	if err := db.AutoMigrate(&userRow{}, &childRow{}, &sessionRow{}); err != nil {
		return nil, fmt.Errorf("auto migrate store tables failed: %w", err)
	}
	return &SQLStore{db: db}, nil
}

func (s *SQLStore) Insert(ctx context.Context, col store.Collection, row store.Row) error {
	value, err := newRowValue(col, row)
	if err != nil {
		return err
	}
	if err := s.db.WithContext(ctx).Create(value).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return store.ErrDuplicateKey
		}
		return fmt.Errorf("%w: insert into %s failed: %v", store.ErrUnavailable, col.Name, err)
	}
	return nil
}

func (s *SQLStore) GetByID(ctx context.Context, col store.Collection, id string) (store.Row, error) {
	rows, err := s.query(ctx, col, col.IDColumn(), id)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, store.ErrNotFound
	}
	return rows[0], nil
}

func (s *SQLStore) ListByField(ctx context.Context, col store.Collection, field, value string) ([]store.Row, error) {
	return s.query(ctx, col, field, value)
}

func (s *SQLStore) LatestByField(ctx context.Context, col store.Collection, field, value string) (store.Row, error) {
	rows, err := s.query(ctx, col, field, value)
	if err != nil {
		return nil, err
	}
	return store.LatestRow(rows), nil
}

func (s *SQLStore) Ping(ctx context.Context) error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return fmt.Errorf("%w: get sql db failed: %v", store.ErrUnavailable, err)
	}
	if err := sqlDB.PingContext(ctx); err != nil {
		return fmt.Errorf("%w: ping mysql failed: %v", store.ErrUnavailable, err)
	}
	return nil
}

func (s *SQLStore) query(ctx context.Context, col store.Collection, field, value string) ([]store.Row, error) {
	if !validColumn(col, field) {
		return nil, fmt.Errorf("unknown column %q in collection %s", field, col.Name)
	}
	condition := field + " = ?"

	switch col.Name {
	case store.Users.Name:
		var rows []userRow
		if err := s.db.WithContext(ctx).Where(condition, value).Order("seq ASC").Find(&rows).Error; err != nil {
			return nil, fmt.Errorf("%w: query %s failed: %v", store.ErrUnavailable, col.Name, err)
		}
		out := make([]store.Row, 0, len(rows))
		for _, r := range rows {
			out = append(out, r.toRow())
		}
		return out, nil
	case store.Children.Name:
		var rows []childRow
		if err := s.db.WithContext(ctx).Where(condition, value).Order("seq ASC").Find(&rows).Error; err != nil {
			return nil, fmt.Errorf("%w: query %s failed: %v", store.ErrUnavailable, col.Name, err)
		}
		out := make([]store.Row, 0, len(rows))
		for _, r := range rows {
			out = append(out, r.toRow())
		}
		return out, nil
	case store.Sessions.Name:
		var rows []sessionRow
		if err := s.db.WithContext(ctx).Where(condition, value).Order("seq ASC").Find(&rows).Error; err != nil {
			return nil, fmt.Errorf("%w: query %s failed: %v", store.ErrUnavailable, col.Name, err)
		}
		out := make([]store.Row, 0, len(rows))
		for _, r := range rows {
			out = append(out, r.toRow())
		}
		return out, nil
	default:
		return nil, fmt.Errorf("unknown collection %q", col.Name)
	}
}

func newRowValue(col store.Collection, row store.Row) (interface{}, error) {
	switch col.Name {
	case store.Users.Name:
		return userRowFrom(row), nil
	case store.Children.Name:
		return childRowFrom(row), nil
	case store.Sessions.Name:
		return sessionRowFrom(row), nil
	default:
		return nil, fmt.Errorf("unknown collection %q", col.Name)
	}
}

func validColumn(col store.Collection, field string) bool {
	for _, header := range col.Headers {
		if header == field {
			return true
		}
	}
	return false
}
