package usecase

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/panjf2000/ants/v2"

	"github.com/mystixxx/altersport/internal/domain/location"
	"github.com/mystixxx/altersport/internal/domain/recommendation"
	"github.com/mystixxx/altersport/internal/domain/sport"
	"github.com/mystixxx/altersport/internal/domain/team"
	"github.com/mystixxx/altersport/internal/platform/datefmt"
	"github.com/mystixxx/altersport/internal/platform/logging"
)

const (
	fallbackSportName = "Nogomet"
	fallbackMatchTime = "18:30"
)

// RecommendationFetcher is the homepage recommendation backend.
type RecommendationFetcher interface {
	FetchHomepage(ctx context.Context, userID string) (recommendation.Payload, error)
}

// CatalogReader is the slice of the catalog the enrichment pass needs.
type CatalogReader interface {
	GetTeam(ctx context.Context, id string) (team.Team, error)
	GetLocation(ctx context.Context, id string) (location.Location, error)
	GetSport(ctx context.Context, id string) (sport.Sport, error)
}

// RecommendationService turns raw recommended events into display-ready
// match cards by resolving the referenced teams, locations, and sports.
type RecommendationService struct {
	fetcher RecommendationFetcher
	catalog CatalogReader
	logger  *logging.Logger
	workers int
}

func NewRecommendationService(fetcher RecommendationFetcher, catalog CatalogReader, workers int, logger *logging.Logger) *RecommendationService {
	if workers < 1 {
		workers = 8
	}
	if logger == nil {
		logger = logging.Default()
	}
	return &RecommendationService{
		fetcher: fetcher,
		catalog: catalog,
		logger:  logger,
		workers: workers,
	}
}

// resolvedRefs is the per-pass resolution cache. Each distinct id is fetched
// at most once regardless of how many events reference it; ids that fail to
// resolve are simply absent and fall back at assembly time.
type resolvedRefs struct {
	mu        sync.Mutex
	teams     map[string]team.Team
	locations map[string]location.Location
	sports    map[string]sport.Sport
}

// UpcomingMatchCards fetches recommendations for userID and enriches every
// upcoming event. An empty user id yields an empty result. A failed payload
// fetch aborts; a failed single lookup degrades only the events that
// reference it. Input ordering is preserved.
func (s *RecommendationService) UpcomingMatchCards(ctx context.Context, userID string) ([]recommendation.MatchCard, error) {
	ctx, span := startUsecaseSpan(ctx, "RecommendationService.UpcomingMatchCards")
	defer span.End()

	userID = strings.TrimSpace(userID)
	if userID == "" {
		return nil, nil
	}
	if s.fetcher == nil {
		s.logger.DebugContext(ctx, "recommendations disabled, returning empty card list")
		return nil, nil
	}

	payload, err := s.fetcher.FetchHomepage(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("fetch homepage recommendations: %w", err)
	}
	if len(payload.UpcomingEvents) == 0 {
		return nil, nil
	}

	refs := s.resolveRefs(ctx, payload.UpcomingEvents)

	favorites := make(map[string]bool, len(payload.RecommendedTeams))
	for _, id := range payload.RecommendedTeams {
		favorites[id] = true
	}

	cards := make([]recommendation.MatchCard, 0, len(payload.UpcomingEvents))
	for _, event := range payload.UpcomingEvents {
		cards = append(cards, s.buildCard(event, refs, favorites))
	}

	return cards, nil
}

func (s *RecommendationService) resolveRefs(ctx context.Context, events []recommendation.UpcomingEvent) *resolvedRefs {
	refs := &resolvedRefs{
		teams:     make(map[string]team.Team),
		locations: make(map[string]location.Location),
		sports:    make(map[string]sport.Sport),
	}
	if s.catalog == nil {
		return refs
	}

	type lookup struct {
		kind string
		id   string
	}
	seen := make(map[lookup]bool)
	tasks := make([]lookup, 0, len(events)*4)
	add := func(kind, id string) {
		if id == "" {
			return
		}
		key := lookup{kind: kind, id: id}
		if seen[key] {
			return
		}
		seen[key] = true
		tasks = append(tasks, key)
	}
	for _, event := range events {
		add("team", event.HomeTeamID)
		add("team", event.AwayTeamID)
		add("location", event.LocationID)
		add("sport", event.SportID)
	}
	if len(tasks) == 0 {
		return refs
	}

	run := func(task lookup) {
		switch task.kind {
		case "team":
			tm, err := s.catalog.GetTeam(ctx, task.id)
			if err != nil {
				s.logger.DebugContext(ctx, "team resolution failed", "team_id", task.id, "error", err)
				return
			}
			refs.mu.Lock()
			refs.teams[task.id] = tm
			refs.mu.Unlock()
		case "location":
			loc, err := s.catalog.GetLocation(ctx, task.id)
			if err != nil {
				s.logger.DebugContext(ctx, "location resolution failed", "location_id", task.id, "error", err)
				return
			}
			refs.mu.Lock()
			refs.locations[task.id] = loc
			refs.mu.Unlock()
		case "sport":
			sp, err := s.catalog.GetSport(ctx, task.id)
			if err != nil {
				s.logger.DebugContext(ctx, "sport resolution failed", "sport_id", task.id, "error", err)
				return
			}
			refs.mu.Lock()
			refs.sports[task.id] = sp
			refs.mu.Unlock()
		}
	}

	pool, err := ants.NewPool(min(s.workers, len(tasks)))
	if err != nil {
		for _, task := range tasks {
			run(task)
		}
		return refs
	}
	defer pool.Release()

	var wg sync.WaitGroup
	for _, task := range tasks {
		task := task
		wg.Add(1)
		submitErr := pool.Submit(func() {
			defer wg.Done()
			run(task)
		})
		if submitErr != nil {
			run(task)
			wg.Done()
		}
	}
	wg.Wait()

	return refs
}

func (s *RecommendationService) buildCard(event recommendation.UpcomingEvent, refs *resolvedRefs, favorites map[string]bool) recommendation.MatchCard {
	sportName := fallbackSportName
	if sp, ok := refs.sports[event.SportID]; ok && sp.Name != "" {
		sportName = sp.Name
	}

	venue := "Location " + event.LocationID
	if loc, ok := refs.locations[event.LocationID]; ok && loc.VenueName != "" {
		venue = loc.VenueName
	}

	return recommendation.MatchCard{
		ID:         event.EventID,
		Sport:      sportName,
		HomeTeam:   cardTeam(event.HomeTeamID, event.HomeTeamLogo, refs),
		AwayTeam:   cardTeam(event.AwayTeamID, event.AwayTeamLogo, refs),
		Venue:      venue,
		Time:       datefmt.ClockTime(event.EventDate, fallbackMatchTime),
		Date:       datefmt.FormatDisplay(event.EventDate),
		IsFavorite: favorites[event.HomeTeamID] || favorites[event.AwayTeamID],
		Variant:    "upcoming",
	}
}

func cardTeam(teamID, eventLogo string, refs *resolvedRefs) recommendation.CardTeam {
	name := "Team " + teamID
	logo := ""
	if tm, ok := refs.teams[teamID]; ok {
		if tm.Name != "" {
			name = tm.Name
		}
		logo = tm.LogoURL()
	}
	if eventLogo != "" {
		logo = eventLogo
	}
	if logo == "" {
		logo = recommendation.PlaceholderLogo
	}
	return recommendation.CardTeam{Name: name, LogoURL: logo}
}
