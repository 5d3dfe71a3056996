package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/mystixxx/altersport/internal/domain/recommendation"
	"github.com/mystixxx/altersport/internal/domain/standings"
	"github.com/mystixxx/altersport/internal/infrastructure/repository/memory"
	"github.com/mystixxx/altersport/internal/platform/cache"
)

type fixedIdentity struct {
	id  string
	err error
}

func (f *fixedIdentity) UserID(_ context.Context) (string, error) {
	return f.id, f.err
}

type oneShotQuiz struct {
	result recommendation.QuizResult
	stored bool
}

func (q *oneShotQuiz) TakeQuizResult(_ context.Context) (recommendation.QuizResult, bool) {
	if !q.stored {
		return recommendation.QuizResult{}, false
	}
	q.stored = false
	return q.result, true
}

func newPageFixture(fetcher *stubFetcher, quiz *oneShotQuiz) *PageService {
	fx := memory.SeedFixtures()
	catalog := NewCatalogService(
		memory.NewLeagueRepository(fx.Leagues),
		memory.NewSportRepository(fx.Sports),
		memory.NewTeamRepository(fx.Teams),
		memory.NewMatchRepository(fx.Matches),
		memory.NewLocationRepository(fx.Locations),
		cache.NewStore(time.Minute),
		nil,
	)
	recs := NewRecommendationService(fetcher, catalog, 4, nil)
	return NewPageService(catalog, recs, &fixedIdentity{id: "user_abc123"}, quiz, nil)
}

func seededEvent() recommendation.UpcomingEvent {
	return recommendation.UpcomingEvent{
		EventID:    "ev1",
		EventDate:  "2025-10-05",
		SportID:    "recsport0nogomet",
		HomeTeamID: "recteam0dinamo00",
		AwayTeamID: "recteam1trnje000",
		LocationID: "recloc0jarun0000",
	}
}

func TestHomePageAssemblesBothSections(t *testing.T) {
	fetcher := &stubFetcher{payload: recommendation.Payload{
		UpcomingEvents: []recommendation.UpcomingEvent{seededEvent()},
	}}
	svc := newPageFixture(fetcher, &oneShotQuiz{})

	page, err := svc.Home(context.Background())
	if err != nil {
		t.Fatalf("home: %v", err)
	}
	if page.UserID != "user_abc123" {
		t.Fatalf("unexpected user id %q", page.UserID)
	}
	if page.SportsErr != nil || len(page.Sports) != 2 {
		t.Fatalf("sports section: %d items, err=%v", len(page.Sports), page.SportsErr)
	}
	if page.CardsErr != nil || len(page.Cards) != 1 {
		t.Fatalf("cards section: %d items, err=%v", len(page.Cards), page.CardsErr)
	}
	if page.Cards[0].HomeTeam.Name != "NK Kvart" {
		t.Fatalf("card not enriched from catalog: %+v", page.Cards[0])
	}
}

func TestHomePageDegradesWhenRecommenderFails(t *testing.T) {
	fetcher := &stubFetcher{err: errors.New("recommender down")}
	svc := newPageFixture(fetcher, &oneShotQuiz{})

	page, err := svc.Home(context.Background())
	if err != nil {
		t.Fatalf("a failed section must not fail the page: %v", err)
	}
	if page.CardsErr == nil {
		t.Fatal("cards section should carry the fetch error")
	}
	if len(page.Sports) != 2 {
		t.Fatalf("sports section should still render, got %d items", len(page.Sports))
	}
}

func TestLeaguePageDerivesStandings(t *testing.T) {
	svc := newPageFixture(&stubFetcher{}, &oneShotQuiz{})

	page, err := svc.League(context.Background(), "recliga0zagreb01")
	if err != nil {
		t.Fatalf("league: %v", err)
	}
	if page.MatchesErr != nil || len(page.Matches) != 3 {
		t.Fatalf("matches section: %d items, err=%v", len(page.Matches), page.MatchesErr)
	}
	if page.StandingsErr != nil || len(page.Standings) != 3 {
		t.Fatalf("standings section: %d rows, err=%v", len(page.Standings), page.StandingsErr)
	}
	if page.Standings[0].Team.Name != "NK Kvart" || page.Standings[0].Position != 1 {
		t.Fatalf("table not ordered by points: %+v", page.Standings[0])
	}

	if _, err := svc.League(context.Background(), "recMissing"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("unknown league should be not found, got %v", err)
	}
}

func TestClubPageHighlightsOwnRow(t *testing.T) {
	svc := newPageFixture(&stubFetcher{}, &oneShotQuiz{})

	page, err := svc.Club(context.Background(), "recteam1trnje000")
	if err != nil {
		t.Fatalf("club: %v", err)
	}
	if page.MatchesErr != nil || len(page.Matches) != 2 {
		t.Fatalf("matches section: %d items, err=%v", len(page.Matches), page.MatchesErr)
	}

	var ownHighlight, otherHighlights int
	for _, row := range page.Standings {
		if row.Team.ID == "recteam1trnje000" {
			ownHighlight = row.Highlight
			continue
		}
		otherHighlights += row.Highlight
	}
	if ownHighlight != standings.HighlightPrimary {
		t.Fatalf("club row should carry the primary highlight, got %d", ownHighlight)
	}
	if otherHighlights != 0 {
		t.Fatal("no other row should be highlighted")
	}
}

func TestSuggestionPageConsumesQuizResultOnce(t *testing.T) {
	quiz := &oneShotQuiz{
		result: recommendation.QuizResult{
			RecommendedSport: "recsport1kosarka",
			RecommendedTeams: []string{"recteam5tresnja0"},
		},
		stored: true,
	}
	svc := newPageFixture(&stubFetcher{}, quiz)

	page, err := svc.Suggestion(context.Background())
	if err != nil {
		t.Fatalf("suggestion: %v", err)
	}
	if !page.HasResult {
		t.Fatal("stored result should be served")
	}
	if page.SportName != "Košarka" {
		t.Fatalf("sport name not resolved: %q", page.SportName)
	}
	if page.TeamsErr != nil || len(page.Teams) != 2 {
		t.Fatalf("teams section: %d items, err=%v", len(page.Teams), page.TeamsErr)
	}

	again, err := svc.Suggestion(context.Background())
	if err != nil {
		t.Fatalf("second suggestion: %v", err)
	}
	if again.HasResult {
		t.Fatal("quiz result must be one-shot")
	}
}

func TestSuggestionPageUnresolvableSportFallsBack(t *testing.T) {
	quiz := &oneShotQuiz{
		result: recommendation.QuizResult{RecommendedSport: "recUnknownSport"},
		stored: true,
	}
	svc := newPageFixture(&stubFetcher{}, quiz)

	page, err := svc.Suggestion(context.Background())
	if err != nil {
		t.Fatalf("suggestion: %v", err)
	}
	if page.SportName != "Sport" {
		t.Fatalf("unresolved sport should keep the generic label, got %q", page.SportName)
	}
}
