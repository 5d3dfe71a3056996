package usecase

import (
	"context"
	"fmt"

	"github.com/sourcegraph/conc"

	"github.com/mystixxx/altersport/internal/domain/league"
	"github.com/mystixxx/altersport/internal/domain/match"
	"github.com/mystixxx/altersport/internal/domain/recommendation"
	"github.com/mystixxx/altersport/internal/domain/sport"
	"github.com/mystixxx/altersport/internal/domain/standings"
	"github.com/mystixxx/altersport/internal/domain/team"
	"github.com/mystixxx/altersport/internal/platform/logging"
)

// identitySource yields the stable user id for the current installation.
type identitySource interface {
	UserID(ctx context.Context) (string, error)
}

// quizResultSource hands out the one-shot quiz result stored at submission.
type quizResultSource interface {
	TakeQuizResult(ctx context.Context) (recommendation.QuizResult, bool)
}

// HomePage is the landing view model. Both sections degrade independently:
// a failed section carries its error and an empty slice.
type HomePage struct {
	UserID    string
	Sports    []sport.Sport
	SportsErr error
	Cards     []recommendation.MatchCard
	CardsErr  error
}

type SportPage struct {
	Sport    sport.Sport
	Teams    []team.Team
	TeamsErr error
}

type LeaguePage struct {
	League       league.League
	Matches      []match.Match
	MatchesErr   error
	Standings    []standings.Row
	StandingsErr error
}

type ClubPage struct {
	Team         team.Team
	Matches      []match.Match
	MatchesErr   error
	Standings    []standings.Row
	StandingsErr error
}

// SuggestionPage renders the post-quiz recommendation. HasResult is false
// when no quiz was submitted this session; the result is consumed on read.
type SuggestionPage struct {
	HasResult        bool
	SportID          string
	SportName        string
	RecommendedTeams []string
	Teams            []team.Team
	TeamsErr         error
	Cards            []recommendation.MatchCard
	CardsErr         error
}

// PageService assembles page view models from the catalog, the enrichment
// pass, and the standings deriver. Pages fail only when their required
// record is missing; optional sub-sections degrade in place.
type PageService struct {
	catalog  *CatalogService
	recs     *RecommendationService
	identity identitySource
	quiz     quizResultSource
	logger   *logging.Logger
}

func NewPageService(
	catalog *CatalogService,
	recs *RecommendationService,
	identity identitySource,
	quiz quizResultSource,
	logger *logging.Logger,
) *PageService {
	if logger == nil {
		logger = logging.Default()
	}
	return &PageService{
		catalog:  catalog,
		recs:     recs,
		identity: identity,
		quiz:     quiz,
		logger:   logger,
	}
}

func (s *PageService) Home(ctx context.Context) (HomePage, error) {
	ctx, span := startUsecaseSpan(ctx, "PageService.Home")
	defer span.End()

	userID := ""
	if s.identity != nil {
		id, err := s.identity.UserID(ctx)
		if err != nil {
			return HomePage{}, fmt.Errorf("resolve user id: %w", err)
		}
		userID = id
	}

	page := HomePage{UserID: userID}

	var wg conc.WaitGroup
	wg.Go(func() {
		page.Sports, page.SportsErr = s.catalog.ListSports(ctx)
	})
	wg.Go(func() {
		page.Cards, page.CardsErr = s.recs.UpcomingMatchCards(ctx, userID)
	})
	wg.Wait()

	if page.SportsErr != nil {
		s.logger.WarnContext(ctx, "home sports section degraded", "error", page.SportsErr)
	}
	if page.CardsErr != nil {
		s.logger.WarnContext(ctx, "home recommendations section degraded", "error", page.CardsErr)
	}

	return page, nil
}

func (s *PageService) Sport(ctx context.Context, sportID string) (SportPage, error) {
	ctx, span := startUsecaseSpan(ctx, "PageService.Sport")
	defer span.End()

	sp, err := s.catalog.GetSport(ctx, sportID)
	if err != nil {
		return SportPage{}, err
	}

	page := SportPage{Sport: sp}
	page.Teams, page.TeamsErr = s.catalog.ListTeamsBySport(ctx, sportID)
	if page.TeamsErr != nil {
		s.logger.WarnContext(ctx, "sport teams section degraded", "sport_id", sportID, "error", page.TeamsErr)
	}

	return page, nil
}

func (s *PageService) League(ctx context.Context, leagueID string) (LeaguePage, error) {
	ctx, span := startUsecaseSpan(ctx, "PageService.League")
	defer span.End()

	l, err := s.catalog.GetLeague(ctx, leagueID)
	if err != nil {
		return LeaguePage{}, err
	}

	page := LeaguePage{League: l}

	var wg conc.WaitGroup
	wg.Go(func() {
		page.Matches, page.MatchesErr = s.catalog.ListMatchesByLeague(ctx, leagueID)
	})
	wg.Go(func() {
		teams, err := s.catalog.ListTeamsByCategory(ctx, leagueID)
		if err != nil {
			page.StandingsErr = err
			return
		}
		page.Standings = standings.Derive(teams, nil)
	})
	wg.Wait()

	if page.MatchesErr != nil {
		s.logger.WarnContext(ctx, "league matches section degraded", "league_id", leagueID, "error", page.MatchesErr)
	}
	if page.StandingsErr != nil {
		s.logger.WarnContext(ctx, "league standings section degraded", "league_id", leagueID, "error", page.StandingsErr)
	}

	return page, nil
}

func (s *PageService) Club(ctx context.Context, clubID string) (ClubPage, error) {
	ctx, span := startUsecaseSpan(ctx, "PageService.Club")
	defer span.End()

	tm, err := s.catalog.GetTeam(ctx, clubID)
	if err != nil {
		return ClubPage{}, err
	}

	page := ClubPage{Team: tm}

	var wg conc.WaitGroup
	wg.Go(func() {
		page.Matches, page.MatchesErr = s.catalog.ListMatchesByTeam(ctx, clubID)
	})
	wg.Go(func() {
		if len(tm.Category) == 0 {
			return
		}
		teams, err := s.catalog.ListTeamsByCategory(ctx, tm.Category[0])
		if err != nil {
			page.StandingsErr = err
			return
		}
		page.Standings = standings.Derive(teams, []string{clubID})
	})
	wg.Wait()

	if page.MatchesErr != nil {
		s.logger.WarnContext(ctx, "club matches section degraded", "club_id", clubID, "error", page.MatchesErr)
	}
	if page.StandingsErr != nil {
		s.logger.WarnContext(ctx, "club standings section degraded", "club_id", clubID, "error", page.StandingsErr)
	}

	return page, nil
}

// Suggestion consumes the stored quiz result and assembles the recommended
// sport view. Without a stored result the page reports HasResult=false so
// the caller can redirect back to the quiz.
func (s *PageService) Suggestion(ctx context.Context) (SuggestionPage, error) {
	ctx, span := startUsecaseSpan(ctx, "PageService.Suggestion")
	defer span.End()

	if s.quiz == nil {
		return SuggestionPage{}, nil
	}
	result, ok := s.quiz.TakeQuizResult(ctx)
	if !ok {
		return SuggestionPage{}, nil
	}

	page := SuggestionPage{
		HasResult:        true,
		SportID:          result.RecommendedSport,
		SportName:        "Sport",
		RecommendedTeams: result.RecommendedTeams,
	}
	if page.SportID == "" {
		return page, nil
	}

	if sp, err := s.catalog.GetSport(ctx, page.SportID); err == nil {
		page.SportName = sp.Name
	} else {
		s.logger.WarnContext(ctx, "recommended sport resolution failed", "sport_id", page.SportID, "error", err)
	}

	userID := ""
	if s.identity != nil {
		if id, err := s.identity.UserID(ctx); err == nil {
			userID = id
		}
	}

	var wg conc.WaitGroup
	wg.Go(func() {
		page.Teams, page.TeamsErr = s.catalog.ListTeamsBySport(ctx, page.SportID)
	})
	wg.Go(func() {
		page.Cards, page.CardsErr = s.recs.UpcomingMatchCards(ctx, userID)
	})
	wg.Wait()

	if page.TeamsErr != nil {
		s.logger.WarnContext(ctx, "suggestion teams section degraded", "sport_id", page.SportID, "error", page.TeamsErr)
	}
	if page.CardsErr != nil {
		s.logger.WarnContext(ctx, "suggestion recommendations section degraded", "error", page.CardsErr)
	}

	return page, nil
}
