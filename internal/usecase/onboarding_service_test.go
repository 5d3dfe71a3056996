package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/mystixxx/altersport/internal/domain/recommendation"
	"github.com/mystixxx/altersport/internal/platform/cache"
)

type fakeIdentity struct {
	id          string
	idErr       error
	initialized bool
	markErr     error
}

func (f *fakeIdentity) GetOrCreate() (string, error) {
	if f.idErr != nil {
		return "", f.idErr
	}
	return f.id, nil
}

func (f *fakeIdentity) Initialized() bool { return f.initialized }

func (f *fakeIdentity) MarkInitialized() error {
	if f.markErr != nil {
		return f.markErr
	}
	f.initialized = true
	return nil
}

type fakeProfileClient struct {
	initCalls   []string
	initErr     error
	updateCalls []recommendation.QuizAnswers
	updateErr   error
	result      recommendation.QuizResult
	// idAtInit captures whether the identity existed when initialize fired.
	seenIDs []string
}

func (f *fakeProfileClient) InitializeUser(_ context.Context, userID string) error {
	f.initCalls = append(f.initCalls, userID)
	f.seenIDs = append(f.seenIDs, userID)
	return f.initErr
}

func (f *fakeProfileClient) UpdateUser(_ context.Context, userID string, answers recommendation.QuizAnswers) (recommendation.QuizResult, error) {
	f.updateCalls = append(f.updateCalls, answers)
	f.seenIDs = append(f.seenIDs, userID)
	if f.updateErr != nil {
		return recommendation.QuizResult{}, f.updateErr
	}
	return f.result, nil
}

func validAnswers() recommendation.QuizAnswers {
	return recommendation.QuizAnswers{
		Age:        "Adult",
		GroupStyle: "Team",
		Activities: []string{"Running", "BallSports"},
	}
}

func TestEnsureInitialized_IdentityExistsBeforeCall(t *testing.T) {
	ident := &fakeIdentity{id: "user_abc"}
	client := &fakeProfileClient{}
	svc := NewOnboardingService(ident, client, cache.NewStore(time.Minute), nil)

	if err := svc.EnsureInitialized(context.Background()); err != nil {
		t.Fatalf("EnsureInitialized: %v", err)
	}

	if len(client.initCalls) != 1 || client.initCalls[0] != "user_abc" {
		t.Fatalf("initialize should fire once with the stored id, got %v", client.initCalls)
	}
	if !ident.initialized {
		t.Fatal("flag should be persisted after a successful call")
	}
}

func TestEnsureInitialized_FlagPreventsRepeatCalls(t *testing.T) {
	ident := &fakeIdentity{id: "user_abc"}
	client := &fakeProfileClient{}
	svc := NewOnboardingService(ident, client, cache.NewStore(time.Minute), nil)

	for i := 0; i < 3; i++ {
		if err := svc.EnsureInitialized(context.Background()); err != nil {
			t.Fatalf("EnsureInitialized run %d: %v", i, err)
		}
	}

	if len(client.initCalls) != 1 {
		t.Fatalf("initialize should fire once, got %d calls", len(client.initCalls))
	}
}

func TestEnsureInitialized_FailureRetriesNextCall(t *testing.T) {
	ident := &fakeIdentity{id: "user_abc"}
	client := &fakeProfileClient{initErr: errors.New("backend down")}
	svc := NewOnboardingService(ident, client, cache.NewStore(time.Minute), nil)

	if err := svc.EnsureInitialized(context.Background()); err == nil {
		t.Fatal("expected error from failed initialization")
	}
	if ident.initialized {
		t.Fatal("flag must not be set on failure")
	}

	client.initErr = nil
	if err := svc.EnsureInitialized(context.Background()); err != nil {
		t.Fatalf("retry should succeed: %v", err)
	}
	if len(client.initCalls) != 2 {
		t.Fatalf("expected a second initialize attempt, got %d", len(client.initCalls))
	}
}

func TestSubmitQuiz_StoresOneShotResult(t *testing.T) {
	ident := &fakeIdentity{id: "user_abc"}
	client := &fakeProfileClient{result: recommendation.QuizResult{
		RecommendedSport: "sp1",
		RecommendedTeams: []string{"t1"},
	}}
	session := cache.NewStore(time.Minute)
	svc := NewOnboardingService(ident, client, session, nil)

	result, err := svc.SubmitQuiz(context.Background(), validAnswers())
	if err != nil {
		t.Fatalf("SubmitQuiz: %v", err)
	}
	if result.RecommendedSport != "sp1" {
		t.Fatalf("unexpected result: %+v", result)
	}
	if len(client.updateCalls) != 1 {
		t.Fatalf("expected one update call, got %d", len(client.updateCalls))
	}
	if client.updateCalls[0].UserName != "user_abc" {
		t.Fatalf("empty user_name should default to the user id, got %q", client.updateCalls[0].UserName)
	}

	taken, ok := svc.TakeQuizResult(context.Background())
	if !ok || taken.RecommendedSport != "sp1" {
		t.Fatalf("first take = (%+v, %v)", taken, ok)
	}
	if _, ok := svc.TakeQuizResult(context.Background()); ok {
		t.Fatal("quiz result must be consumed by the first take")
	}
}

func TestSubmitQuiz_ValidationFailure(t *testing.T) {
	ident := &fakeIdentity{id: "user_abc"}
	client := &fakeProfileClient{}
	svc := NewOnboardingService(ident, client, cache.NewStore(time.Minute), nil)

	_, err := svc.SubmitQuiz(context.Background(), recommendation.QuizAnswers{})
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
	if len(client.updateCalls) != 0 {
		t.Fatal("invalid answers must not reach the backend")
	}
}

func TestSubmitQuiz_DisabledBackend(t *testing.T) {
	svc := NewOnboardingService(&fakeIdentity{id: "user_abc"}, nil, cache.NewStore(time.Minute), nil)

	_, err := svc.SubmitQuiz(context.Background(), validAnswers())
	if !errors.Is(err, ErrDependencyUnavailable) {
		t.Fatalf("expected ErrDependencyUnavailable, got %v", err)
	}
}
