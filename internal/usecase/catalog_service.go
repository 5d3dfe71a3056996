package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/mystixxx/altersport/internal/domain/league"
	"github.com/mystixxx/altersport/internal/domain/location"
	"github.com/mystixxx/altersport/internal/domain/match"
	"github.com/mystixxx/altersport/internal/domain/sport"
	"github.com/mystixxx/altersport/internal/domain/team"
	"github.com/mystixxx/altersport/internal/platform/cache"
	"github.com/mystixxx/altersport/internal/platform/logging"
)

// Cache keys per entity. Item keys extend the list key with ":{id}" so one
// prefix delete invalidates both after a mutation.
const (
	cacheKeyLeagues   = "kategorije"
	cacheKeySports    = "sports"
	cacheKeyTeams     = "teams"
	cacheKeyMatches   = "matches"
	cacheKeyLocations = "locations"
)

// CatalogService fronts the record backend with a freshness-window cache.
// Reads within the window are served from memory and concurrent identical
// reads share one backend call. Mutations write through first and only then
// invalidate, so a read after a successful mutation observes the change.
type CatalogService struct {
	leagues   league.Repository
	sports    sport.Repository
	teams     team.Repository
	matches   match.Repository
	locations location.Repository
	cache     *cache.Store
	logger    *logging.Logger
}

func NewCatalogService(
	leagues league.Repository,
	sports sport.Repository,
	teams team.Repository,
	matches match.Repository,
	locations location.Repository,
	store *cache.Store,
	logger *logging.Logger,
) *CatalogService {
	if logger == nil {
		logger = logging.Default()
	}
	return &CatalogService{
		leagues:   leagues,
		sports:    sports,
		teams:     teams,
		matches:   matches,
		locations: locations,
		cache:     store,
		logger:    logger,
	}
}

// cached runs loader through the store when caching is on. A nil store means
// every read goes straight to the backend.
func cached[T any](ctx context.Context, store *cache.Store, key string, loader func(context.Context) (T, error)) (T, error) {
	if store == nil {
		return loader(ctx)
	}

	value, err := store.GetOrLoad(ctx, key, func(ctx context.Context) (any, error) {
		return loader(ctx)
	})
	if err != nil {
		var zero T
		return zero, err
	}

	typed, ok := value.(T)
	if !ok {
		var zero T
		return zero, fmt.Errorf("cache entry %q holds %T", key, value)
	}
	return typed, nil
}

func (s *CatalogService) ListLeagues(ctx context.Context) ([]league.League, error) {
	ctx, span := startUsecaseSpan(ctx, "CatalogService.ListLeagues")
	defer span.End()

	return cached(ctx, s.cache, cacheKeyLeagues, func(ctx context.Context) ([]league.League, error) {
		leagues, err := s.leagues.List(ctx)
		if err != nil {
			return nil, fmt.Errorf("list leagues: %w", err)
		}
		return leagues, nil
	})
}

func (s *CatalogService) GetLeague(ctx context.Context, id string) (league.League, error) {
	ctx, span := startUsecaseSpan(ctx, "CatalogService.GetLeague")
	defer span.End()

	id = strings.TrimSpace(id)
	if id == "" {
		return league.League{}, fmt.Errorf("%w: league id is required", ErrInvalidInput)
	}

	return cached(ctx, s.cache, cacheKeyLeagues+":"+id, func(ctx context.Context) (league.League, error) {
		l, exists, err := s.leagues.GetByID(ctx, id)
		if err != nil {
			return league.League{}, fmt.Errorf("get league: %w", err)
		}
		if !exists {
			return league.League{}, fmt.Errorf("%w: league=%s", ErrNotFound, id)
		}
		return l, nil
	})
}

func (s *CatalogService) CreateLeague(ctx context.Context, draft league.Draft) (league.League, error) {
	ctx, span := startUsecaseSpan(ctx, "CatalogService.CreateLeague")
	defer span.End()

	if err := draft.Validate(); err != nil {
		return league.League{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	created, err := s.leagues.Create(ctx, draft)
	if err != nil {
		return league.League{}, fmt.Errorf("create league: %w", err)
	}

	s.invalidate(ctx, cacheKeyLeagues)
	s.logger.InfoContext(ctx, "league created", "league_id", created.ID)
	return created, nil
}

func (s *CatalogService) UpdateLeague(ctx context.Context, id string, draft league.Draft) (league.League, error) {
	ctx, span := startUsecaseSpan(ctx, "CatalogService.UpdateLeague")
	defer span.End()

	id = strings.TrimSpace(id)
	if id == "" {
		return league.League{}, fmt.Errorf("%w: league id is required", ErrInvalidInput)
	}
	if err := draft.Validate(); err != nil {
		return league.League{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	updated, err := s.leagues.Update(ctx, id, draft)
	if err != nil {
		return league.League{}, fmt.Errorf("update league: %w", err)
	}

	s.invalidate(ctx, cacheKeyLeagues)
	s.logger.InfoContext(ctx, "league updated", "league_id", id)
	return updated, nil
}

func (s *CatalogService) ListSports(ctx context.Context) ([]sport.Sport, error) {
	ctx, span := startUsecaseSpan(ctx, "CatalogService.ListSports")
	defer span.End()

	return cached(ctx, s.cache, cacheKeySports, func(ctx context.Context) ([]sport.Sport, error) {
		sports, err := s.sports.List(ctx)
		if err != nil {
			return nil, fmt.Errorf("list sports: %w", err)
		}
		return sports, nil
	})
}

func (s *CatalogService) GetSport(ctx context.Context, id string) (sport.Sport, error) {
	ctx, span := startUsecaseSpan(ctx, "CatalogService.GetSport")
	defer span.End()

	id = strings.TrimSpace(id)
	if id == "" {
		return sport.Sport{}, fmt.Errorf("%w: sport id is required", ErrInvalidInput)
	}

	return cached(ctx, s.cache, cacheKeySports+":"+id, func(ctx context.Context) (sport.Sport, error) {
		sp, exists, err := s.sports.GetByID(ctx, id)
		if err != nil {
			return sport.Sport{}, fmt.Errorf("get sport: %w", err)
		}
		if !exists {
			return sport.Sport{}, fmt.Errorf("%w: sport=%s", ErrNotFound, id)
		}
		return sp, nil
	})
}

func (s *CatalogService) ListTeams(ctx context.Context) ([]team.Team, error) {
	ctx, span := startUsecaseSpan(ctx, "CatalogService.ListTeams")
	defer span.End()

	return cached(ctx, s.cache, cacheKeyTeams, func(ctx context.Context) ([]team.Team, error) {
		teams, err := s.teams.List(ctx)
		if err != nil {
			return nil, fmt.Errorf("list teams: %w", err)
		}
		return teams, nil
	})
}

func (s *CatalogService) GetTeam(ctx context.Context, id string) (team.Team, error) {
	ctx, span := startUsecaseSpan(ctx, "CatalogService.GetTeam")
	defer span.End()

	id = strings.TrimSpace(id)
	if id == "" {
		return team.Team{}, fmt.Errorf("%w: team id is required", ErrInvalidInput)
	}

	return cached(ctx, s.cache, cacheKeyTeams+":"+id, func(ctx context.Context) (team.Team, error) {
		tm, exists, err := s.teams.GetByID(ctx, id)
		if err != nil {
			return team.Team{}, fmt.Errorf("get team: %w", err)
		}
		if !exists {
			return team.Team{}, fmt.Errorf("%w: team=%s", ErrNotFound, id)
		}
		return tm, nil
	})
}

// ListTeamsByCategory filters the cached team list so category views reuse
// the same backend read as the full list.
func (s *CatalogService) ListTeamsByCategory(ctx context.Context, categoryID string) ([]team.Team, error) {
	categoryID = strings.TrimSpace(categoryID)
	if categoryID == "" {
		return nil, fmt.Errorf("%w: category id is required", ErrInvalidInput)
	}

	teams, err := s.ListTeams(ctx)
	if err != nil {
		return nil, err
	}

	out := make([]team.Team, 0, len(teams))
	for _, tm := range teams {
		if tm.InCategory(categoryID) {
			out = append(out, tm)
		}
	}
	return out, nil
}

func (s *CatalogService) ListTeamsBySport(ctx context.Context, sportID string) ([]team.Team, error) {
	sportID = strings.TrimSpace(sportID)
	if sportID == "" {
		return nil, fmt.Errorf("%w: sport id is required", ErrInvalidInput)
	}

	teams, err := s.ListTeams(ctx)
	if err != nil {
		return nil, err
	}

	out := make([]team.Team, 0, len(teams))
	for _, tm := range teams {
		if tm.InSport(sportID) {
			out = append(out, tm)
		}
	}
	return out, nil
}

func (s *CatalogService) ListMatches(ctx context.Context) ([]match.Match, error) {
	ctx, span := startUsecaseSpan(ctx, "CatalogService.ListMatches")
	defer span.End()

	return cached(ctx, s.cache, cacheKeyMatches, func(ctx context.Context) ([]match.Match, error) {
		matches, err := s.matches.List(ctx)
		if err != nil {
			return nil, fmt.Errorf("list matches: %w", err)
		}
		return matches, nil
	})
}

func (s *CatalogService) GetMatch(ctx context.Context, id string) (match.Match, error) {
	ctx, span := startUsecaseSpan(ctx, "CatalogService.GetMatch")
	defer span.End()

	id = strings.TrimSpace(id)
	if id == "" {
		return match.Match{}, fmt.Errorf("%w: match id is required", ErrInvalidInput)
	}

	return cached(ctx, s.cache, cacheKeyMatches+":"+id, func(ctx context.Context) (match.Match, error) {
		m, exists, err := s.matches.GetByID(ctx, id)
		if err != nil {
			return match.Match{}, fmt.Errorf("get match: %w", err)
		}
		if !exists {
			return match.Match{}, fmt.Errorf("%w: match=%s", ErrNotFound, id)
		}
		return m, nil
	})
}

func (s *CatalogService) ListMatchesByLeague(ctx context.Context, leagueID string) ([]match.Match, error) {
	leagueID = strings.TrimSpace(leagueID)
	if leagueID == "" {
		return nil, fmt.Errorf("%w: league id is required", ErrInvalidInput)
	}

	matches, err := s.ListMatches(ctx)
	if err != nil {
		return nil, err
	}

	out := make([]match.Match, 0, len(matches))
	for _, m := range matches {
		if m.InLeague(leagueID) {
			out = append(out, m)
		}
	}
	return out, nil
}

func (s *CatalogService) ListMatchesByTeam(ctx context.Context, teamID string) ([]match.Match, error) {
	teamID = strings.TrimSpace(teamID)
	if teamID == "" {
		return nil, fmt.Errorf("%w: team id is required", ErrInvalidInput)
	}

	matches, err := s.ListMatches(ctx)
	if err != nil {
		return nil, err
	}

	out := make([]match.Match, 0, len(matches))
	for _, m := range matches {
		if m.Involves(teamID) {
			out = append(out, m)
		}
	}
	return out, nil
}

func (s *CatalogService) CreateMatch(ctx context.Context, draft match.Draft) (match.Match, error) {
	ctx, span := startUsecaseSpan(ctx, "CatalogService.CreateMatch")
	defer span.End()

	if err := draft.Validate(); err != nil {
		return match.Match{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	created, err := s.matches.Create(ctx, draft)
	if err != nil {
		return match.Match{}, fmt.Errorf("create match: %w", err)
	}

	s.invalidate(ctx, cacheKeyMatches)
	s.logger.InfoContext(ctx, "match created", "match_id", created.ID)
	return created, nil
}

func (s *CatalogService) ListLocations(ctx context.Context) ([]location.Location, error) {
	ctx, span := startUsecaseSpan(ctx, "CatalogService.ListLocations")
	defer span.End()

	return cached(ctx, s.cache, cacheKeyLocations, func(ctx context.Context) ([]location.Location, error) {
		locations, err := s.locations.List(ctx)
		if err != nil {
			return nil, fmt.Errorf("list locations: %w", err)
		}
		return locations, nil
	})
}

func (s *CatalogService) GetLocation(ctx context.Context, id string) (location.Location, error) {
	ctx, span := startUsecaseSpan(ctx, "CatalogService.GetLocation")
	defer span.End()

	id = strings.TrimSpace(id)
	if id == "" {
		return location.Location{}, fmt.Errorf("%w: location id is required", ErrInvalidInput)
	}

	return cached(ctx, s.cache, cacheKeyLocations+":"+id, func(ctx context.Context) (location.Location, error) {
		loc, exists, err := s.locations.GetByID(ctx, id)
		if err != nil {
			return location.Location{}, fmt.Errorf("get location: %w", err)
		}
		if !exists {
			return location.Location{}, fmt.Errorf("%w: location=%s", ErrNotFound, id)
		}
		return loc, nil
	})
}

func (s *CatalogService) CreateLocation(ctx context.Context, draft location.Draft) (location.Location, error) {
	ctx, span := startUsecaseSpan(ctx, "CatalogService.CreateLocation")
	defer span.End()

	if err := draft.Validate(); err != nil {
		return location.Location{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	created, err := s.locations.Create(ctx, draft)
	if err != nil {
		return location.Location{}, fmt.Errorf("create location: %w", err)
	}

	s.invalidate(ctx, cacheKeyLocations)
	s.logger.InfoContext(ctx, "location created", "location_id", created.ID)
	return created, nil
}

func (s *CatalogService) UpdateLocation(ctx context.Context, id string, draft location.Draft) (location.Location, error) {
	ctx, span := startUsecaseSpan(ctx, "CatalogService.UpdateLocation")
	defer span.End()

	id = strings.TrimSpace(id)
	if id == "" {
		return location.Location{}, fmt.Errorf("%w: location id is required", ErrInvalidInput)
	}
	if err := draft.Validate(); err != nil {
		return location.Location{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	updated, err := s.locations.Update(ctx, id, draft)
	if err != nil {
		return location.Location{}, fmt.Errorf("update location: %w", err)
	}

	s.invalidate(ctx, cacheKeyLocations)
	s.logger.InfoContext(ctx, "location updated", "location_id", id)
	return updated, nil
}

func (s *CatalogService) invalidate(ctx context.Context, prefix string) {
	if s.cache == nil {
		return
	}
	s.cache.DeletePrefix(ctx, prefix)
}
