package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/mystixxx/altersport/internal/domain/recommendation"
	"github.com/mystixxx/altersport/internal/platform/cache"
	"github.com/mystixxx/altersport/internal/platform/logging"
)

// UserProfileClient registers users with the recommendation backend and
// submits their quiz answers.
type UserProfileClient interface {
	InitializeUser(ctx context.Context, userID string) error
	UpdateUser(ctx context.Context, userID string, answers recommendation.QuizAnswers) (recommendation.QuizResult, error)
}

// identityStore is the durable per-installation identity.
type identityStore interface {
	GetOrCreate() (string, error)
	Initialized() bool
	MarkInitialized() error
}

// OnboardingService owns the identity bootstrap and the quiz flow. The
// initialize call fires only after the identity is durably stored, and the
// initialized flag keeps it from repeating.
type OnboardingService struct {
	identity identityStore
	client   UserProfileClient
	session  *cache.Store
	logger   *logging.Logger
}

func NewOnboardingService(identity identityStore, client UserProfileClient, session *cache.Store, logger *logging.Logger) *OnboardingService {
	if logger == nil {
		logger = logging.Default()
	}
	return &OnboardingService{
		identity: identity,
		client:   client,
		session:  session,
		logger:   logger,
	}
}

// UserID returns the stable user id, creating and persisting one on first
// call.
func (s *OnboardingService) UserID(ctx context.Context) (string, error) {
	_, span := startUsecaseSpan(ctx, "OnboardingService.UserID")
	defer span.End()

	id, err := s.identity.GetOrCreate()
	if err != nil {
		return "", fmt.Errorf("get or create user id: %w", err)
	}
	return id, nil
}

// EnsureInitialized registers the user with the recommendation backend once.
// The identity exists before the call fires; failures are logged and retried
// on the next invocation, never fatal to the caller's page.
func (s *OnboardingService) EnsureInitialized(ctx context.Context) error {
	ctx, span := startUsecaseSpan(ctx, "OnboardingService.EnsureInitialized")
	defer span.End()

	if s.client == nil {
		return nil
	}

	userID, err := s.identity.GetOrCreate()
	if err != nil {
		return fmt.Errorf("get or create user id: %w", err)
	}
	if s.identity.Initialized() {
		return nil
	}

	if err := s.client.InitializeUser(ctx, userID); err != nil {
		s.logger.WarnContext(ctx, "user initialization failed, will retry", "user_id", userID, "error", err)
		return fmt.Errorf("initialize user: %w", err)
	}
	if err := s.identity.MarkInitialized(); err != nil {
		return fmt.Errorf("persist initialized flag: %w", err)
	}

	s.logger.InfoContext(ctx, "user initialized", "user_id", userID)
	return nil
}

// SubmitQuiz validates and forwards the quiz answers, then stores the
// returned recommendation for a one-shot read by the suggestion page.
func (s *OnboardingService) SubmitQuiz(ctx context.Context, answers recommendation.QuizAnswers) (recommendation.QuizResult, error) {
	ctx, span := startUsecaseSpan(ctx, "OnboardingService.SubmitQuiz")
	defer span.End()

	if s.client == nil {
		return recommendation.QuizResult{}, fmt.Errorf("%w: recommendation backend disabled", ErrDependencyUnavailable)
	}
	if err := answers.Validate(); err != nil {
		return recommendation.QuizResult{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	userID, err := s.identity.GetOrCreate()
	if err != nil {
		return recommendation.QuizResult{}, fmt.Errorf("get or create user id: %w", err)
	}
	if strings.TrimSpace(answers.UserName) == "" {
		answers.UserName = userID
	}

	// The update call decides whether the backend knows the user; a failed
	// initialization here is retried on the next page load.
	if err := s.EnsureInitialized(ctx); err != nil {
		s.logger.WarnContext(ctx, "submitting quiz despite initialization failure", "user_id", userID, "error", err)
	}

	result, err := s.client.UpdateUser(ctx, userID, answers)
	if err != nil {
		return recommendation.QuizResult{}, fmt.Errorf("submit quiz answers: %w", err)
	}

	if s.session != nil {
		s.session.Set(ctx, quizSessionKey(userID), result)
	}

	s.logger.InfoContext(ctx, "quiz submitted", "user_id", userID, "recommended_sport", result.RecommendedSport)
	return result, nil
}

// TakeQuizResult returns the stored quiz result exactly once.
func (s *OnboardingService) TakeQuizResult(ctx context.Context) (recommendation.QuizResult, bool) {
	if s.session == nil {
		return recommendation.QuizResult{}, false
	}
	userID, err := s.identity.GetOrCreate()
	if err != nil {
		return recommendation.QuizResult{}, false
	}

	value, ok := s.session.Take(ctx, quizSessionKey(userID))
	if !ok {
		return recommendation.QuizResult{}, false
	}
	result, ok := value.(recommendation.QuizResult)
	return result, ok
}

func quizSessionKey(userID string) string {
	return "quiz:" + userID
}
