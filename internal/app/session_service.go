package app

import (
	"context"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"

	"hri-companion/internal/model"
	"hri-companion/internal/repository"
)

// PromptSynthesizer is the second AI stage: child profile plus the day's
// situation in, robot-ready prompt text out.
type PromptSynthesizer interface {
	Synthesize(ctx context.Context, child *model.Child, mood, environment, sceneContext string) (string, error)
}

// SessionEventPublisher fans a freshly persisted session out to the robot
// relay queue. Publishing is best-effort and never fails the request.
type SessionEventPublisher interface {
	Publish(ctx context.Context, session model.Session) error
}

type SessionService struct {
	sessionRepo *repository.SessionRepository
	ownership   *Ownership
	synthesizer PromptSynthesizer
	publisher   SessionEventPublisher
}

type CreateSessionInput struct {
	UserID      string
	ChildID     string
	Mood        string
	Environment string
	Context     string
}

func NewSessionService(
	sessionRepo *repository.SessionRepository,
	ownership *Ownership,
	synthesizer PromptSynthesizer,
	publisher SessionEventPublisher,
) *SessionService {
	return &SessionService{
		sessionRepo: sessionRepo,
		ownership:   ownership,
		synthesizer: synthesizer,
		publisher:   publisher,
	}
}

// Create asserts ownership of the child, generates the prompt, and appends
// the session record. The append is the last step: a failed generation or a
// caller that canceled writes nothing.
func (s *SessionService) Create(ctx context.Context, input CreateSessionInput) (*model.Session, error) {
	sceneContext := strings.TrimSpace(input.Context)
	if input.UserID == "" || input.ChildID == "" || sceneContext == "" {
		return nil, ErrInvalidInput
	}
	if input.Mood != "" && !model.ValidMood(input.Mood) {
		return nil, ErrInvalidInput
	}
	if input.Environment != "" && !model.ValidEnvironment(input.Environment) {
		return nil, ErrInvalidInput
	}

	child, err := s.ownership.AssertOwnsChild(ctx, input.UserID, input.ChildID)
	if err != nil {
		return nil, err
	}

	prompt, err := s.synthesizer.Synthesize(ctx, child, input.Mood, input.Environment, sceneContext)
	if err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	session := &model.Session{
		ID:          uuid.NewString(),
		ChildID:     child.ID,
		OwnerUserID: child.OwnerUserID,
		Mood:        input.Mood,
		Environment: input.Environment,
		Context:     sceneContext,
		Prompt:      prompt,
		CreatedAt:   time.Now().UTC().Truncate(time.Second),
	}
	if err := s.sessionRepo.Create(ctx, session); err != nil {
		return nil, err
	}

	if s.publisher != nil {
		if err := s.publisher.Publish(ctx, *session); err != nil {
			log.Printf("publish session event failed: %v", err)
		}
	}
	return session, nil
}

func (s *SessionService) Get(ctx context.Context, userID, sessionID string) (*model.Session, error) {
	return s.ownership.AssertOwnsSession(ctx, userID, sessionID)
}

// Latest returns the child's most recent session, or nil when the child has
// no sessions yet. Callers must own the child.
func (s *SessionService) Latest(ctx context.Context, userID, childID string) (*model.Session, error) {
	if _, err := s.ownership.AssertOwnsChild(ctx, userID, childID); err != nil {
		return nil, err
	}
	return s.sessionRepo.LatestByChildID(ctx, childID)
}
