package memstore

import (
	"context"
	"sync"

	"hri-companion/internal/store"
)

// MemStore keeps collections as in-memory append-only slices. It backs local
// development and tests where no spreadsheet or database is reachable.
type MemStore struct {
	mu   sync.RWMutex
	rows map[string][]store.Row
}

func New() *MemStore {
	return &MemStore{rows: make(map[string][]store.Row)}
}

func (s *MemStore) Insert(ctx context.Context, col store.Collection, row store.Row) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := row[col.IDColumn()]
	for _, existing := range s.rows[col.Name] {
		if existing[col.IDColumn()] == id {
			return store.ErrDuplicateKey
		}
	}
	s.rows[col.Name] = append(s.rows[col.Name], cloneRow(row))
	return nil
}

func (s *MemStore) GetByID(ctx context.Context, col store.Collection, id string) (store.Row, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, row := range s.rows[col.Name] {
		if row[col.IDColumn()] == id {
			return cloneRow(row), nil
		}
	}
	return nil, store.ErrNotFound
}

func (s *MemStore) ListByField(ctx context.Context, col store.Collection, field, value string) ([]store.Row, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var matched []store.Row
	for _, row := range s.rows[col.Name] {
		if row[field] == value {
			matched = append(matched, cloneRow(row))
		}
	}
	return matched, nil
}

func (s *MemStore) LatestByField(ctx context.Context, col store.Collection, field, value string) (store.Row, error) {
	rows, err := s.ListByField(ctx, col, field, value)
	if err != nil {
		return nil, err
	}
	return store.LatestRow(rows), nil
}

func (s *MemStore) Ping(ctx context.Context) error {
	return nil
}

func cloneRow(row store.Row) store.Row {
	cloned := make(store.Row, len(row))
	for key, value := range row {
		cloned[key] = value
	}
	return cloned
}
