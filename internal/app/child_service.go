package app

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"hri-companion/internal/model"
	"hri-companion/internal/repository"
)

const maxChildAge = 120

// KeywordExtractor is the first AI stage: profile text in, interaction tags
// out. Implemented by ai.KeywordExtractor, stubbed in tests.
type KeywordExtractor interface {
	Extract(ctx context.Context, notes, preferences string) ([]string, error)
}

type ChildService struct {
	childRepo *repository.ChildRepository
	ownership *Ownership
	extractor KeywordExtractor
}

type CreateChildInput struct {
	OwnerUserID string
	Nickname    string
	Age         int
	CommLevel   string
	Personality string
	Notes       string
	Preferences string
}

func NewChildService(childRepo *repository.ChildRepository, ownership *Ownership, extractor KeywordExtractor) *ChildService {
	return &ChildService{
		childRepo: childRepo,
		ownership: ownership,
		extractor: extractor,
	}
}

// Create validates the profile, derives its keywords, and appends the child
// record. The append is the last step: nothing is persisted when keyword
// extraction fails or the caller has gone away.
func (s *ChildService) Create(ctx context.Context, input CreateChildInput) (*model.Child, error) {
	nickname := strings.TrimSpace(input.Nickname)
	notes := strings.TrimSpace(input.Notes)
	preferences := strings.TrimSpace(input.Preferences)

	if input.OwnerUserID == "" || nickname == "" || notes == "" {
		return nil, ErrInvalidInput
	}
	if input.Age < 0 || input.Age > maxChildAge {
		return nil, ErrInvalidInput
	}
	if input.CommLevel != "" && !model.ValidCommLevel(input.CommLevel) {
		return nil, ErrInvalidInput
	}
	if input.Personality != "" && !model.ValidPersonality(input.Personality) {
		return nil, ErrInvalidInput
	}

	keywords, err := s.extractor.Extract(ctx, notes, preferences)
	if err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	child := &model.Child{
		ID:          uuid.NewString(),
		OwnerUserID: input.OwnerUserID,
		Nickname:    nickname,
		Age:         input.Age,
		CommLevel:   input.CommLevel,
		Personality: input.Personality,
		Notes:       notes,
		Preferences: preferences,
		Keywords:    keywords,
		CreatedAt:   time.Now().UTC().Truncate(time.Second),
	}
	if err := s.childRepo.Create(ctx, child); err != nil {
		return nil, err
	}
	return child, nil
}

func (s *ChildService) List(ctx context.Context, userID string) ([]model.Child, error) {
	if userID == "" {
		return nil, ErrInvalidInput
	}
	return s.childRepo.ListByOwner(ctx, userID)
}

func (s *ChildService) Get(ctx context.Context, userID, childID string) (*model.Child, error) {
	return s.ownership.AssertOwnsChild(ctx, userID, childID)
}
