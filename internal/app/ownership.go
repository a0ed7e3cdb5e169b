package app

import (
	"context"
	"errors"

	"hri-companion/internal/model"
	"hri-companion/internal/repository"
)

var (
	ErrChildNotFound   = errors.New("child not found")
	ErrSessionNotFound = errors.New("session not found")
	ErrForbidden       = errors.New("record belongs to another user")
)

// ChildCache is a best-effort read-through cache for child profiles. Child
// records never change after creation, so cached entries cannot go stale.
type ChildCache interface {
	Get(ctx context.Context, childID string) (*model.Child, bool, error)
	Set(ctx context.Context, child *model.Child) error
}

// Ownership gates every child and session access: absent records surface as
// not-found, records owned by someone else as forbidden.
type Ownership struct {
	childRepo   *repository.ChildRepository
	sessionRepo *repository.SessionRepository
	childCache  ChildCache
}

func NewOwnership(childRepo *repository.ChildRepository, sessionRepo *repository.SessionRepository, childCache ChildCache) *Ownership {
	return &Ownership{
		childRepo:   childRepo,
		sessionRepo: sessionRepo,
		childCache:  childCache,
	}
}

func (o *Ownership) AssertOwnsChild(ctx context.Context, userID, childID string) (*model.Child, error) {
	if userID == "" || childID == "" {
		return nil, ErrInvalidInput
	}
	child, err := o.lookupChild(ctx, childID)
	if err != nil {
		return nil, err
	}
	if child == nil {
		return nil, ErrChildNotFound
	}
	if child.OwnerUserID != userID {
		return nil, ErrForbidden
	}
	return child, nil
}

// AssertOwnsSession checks the owner id denormalized onto the session row,
// so no second read through the child is needed.
func (o *Ownership) AssertOwnsSession(ctx context.Context, userID, sessionID string) (*model.Session, error) {
	if userID == "" || sessionID == "" {
		return nil, ErrInvalidInput
	}
	session, err := o.sessionRepo.GetByID(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if session == nil {
		return nil, ErrSessionNotFound
	}
	if session.OwnerUserID != userID {
		return nil, ErrForbidden
	}
	return session, nil
}

func (o *Ownership) lookupChild(ctx context.Context, childID string) (*model.Child, error) {
	if o.childCache != nil {
		if child, hit, err := o.childCache.Get(ctx, childID); err == nil && hit {
			return child, nil
		}
	}
	child, err := o.childRepo.GetByID(ctx, childID)
	if err != nil {
		return nil, err
	}
	if child != nil && o.childCache != nil {
		_ = o.childCache.Set(ctx, child)
	}
	return child, nil
}
