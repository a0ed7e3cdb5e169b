package store

import (
	"context"
	"errors"
	"time"
)

type retryStore struct {
	inner    Store
	attempts int
}

// WithRetry wraps a store so read operations that fail with ErrUnavailable
// are attempted up to attempts times with a short backoff. Inserts are never
// retried: replaying an append whose response was lost could write the
// record twice.
func WithRetry(inner Store, attempts int) Store {
	if attempts < 1 {
		attempts = 1
	}
	return &retryStore{inner: inner, attempts: attempts}
}

func (s *retryStore) Insert(ctx context.Context, col Collection, row Row) error {
	return s.inner.Insert(ctx, col, row)
}

func (s *retryStore) GetByID(ctx context.Context, col Collection, id string) (Row, error) {
	var row Row
	err := s.retry(ctx, func() error {
		var opErr error
		row, opErr = s.inner.GetByID(ctx, col, id)
		return opErr
	})
	return row, err
}

func (s *retryStore) ListByField(ctx context.Context, col Collection, field, value string) ([]Row, error) {
	var rows []Row
	err := s.retry(ctx, func() error {
		var opErr error
		rows, opErr = s.inner.ListByField(ctx, col, field, value)
		return opErr
	})
	return rows, err
}

func (s *retryStore) LatestByField(ctx context.Context, col Collection, field, value string) (Row, error) {
	var row Row
	err := s.retry(ctx, func() error {
		var opErr error
		row, opErr = s.inner.LatestByField(ctx, col, field, value)
		return opErr
	})
	return row, err
}

func (s *retryStore) Ping(ctx context.Context) error {
	return s.inner.Ping(ctx)
}

func (s *retryStore) retry(ctx context.Context, op func() error) error {
	var err error
	for attempt := 0; attempt < s.attempts; attempt++ {
		if attempt > 0 {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(time.Duration(attempt) * 200 * time.Millisecond):
			}
		}
		err = op()
		if err == nil || !errors.Is(err, ErrUnavailable) {
			return err
		}
	}
	return err
}
