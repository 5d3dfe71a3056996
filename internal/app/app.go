package app

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/mystixxx/altersport/external/airtable"
	"github.com/mystixxx/altersport/external/recommender"
	"github.com/mystixxx/altersport/internal/config"
	"github.com/mystixxx/altersport/internal/domain/league"
	"github.com/mystixxx/altersport/internal/domain/location"
	"github.com/mystixxx/altersport/internal/domain/match"
	"github.com/mystixxx/altersport/internal/domain/sport"
	"github.com/mystixxx/altersport/internal/domain/team"
	"github.com/mystixxx/altersport/internal/infrastructure/repository/memory"
	"github.com/mystixxx/altersport/internal/interfaces/httpapi"
	"github.com/mystixxx/altersport/internal/platform/cache"
	"github.com/mystixxx/altersport/internal/platform/identity"
	"github.com/mystixxx/altersport/internal/platform/logging"
	"github.com/mystixxx/altersport/internal/platform/resilience"
	"github.com/mystixxx/altersport/internal/usecase"
)

// NewHTTPServer wires repositories, services and the HTTP surface. With
// Airtable disabled the catalog runs on the seeded in-memory dataset, which
// keeps local development credential-free.
func NewHTTPServer(cfg config.Config, logger *logging.Logger, accessLogger *slog.Logger) (*http.Server, error) {
	if logger == nil {
		logger = logging.Default()
	}
	if accessLogger == nil {
		accessLogger = slog.Default()
	}

	var (
		leagueRepo   league.Repository
		sportRepo    sport.Repository
		teamRepo     team.Repository
		matchRepo    match.Repository
		locationRepo location.Repository
	)
	if cfg.AirtableEnabled {
		client := airtable.NewClient(airtable.ClientConfig{
			BaseURL:    cfg.AirtableBaseURL,
			APIKey:     cfg.AirtableAPIKey,
			BaseID:     cfg.AirtableBaseID,
			Timeout:    cfg.AirtableTimeout,
			MaxRetries: cfg.AirtableMaxRetries,
			Logger:     logger,
			CircuitBreaker: resilience.CircuitBreakerConfig{
				Enabled:          cfg.AirtableCircuitEnabled,
				FailureThreshold: cfg.AirtableCircuitFailureCount,
				OpenTimeout:      cfg.AirtableCircuitOpenTimeout,
				HalfOpenMaxReq:   cfg.AirtableCircuitHalfOpenMaxReq,
			},
		})
		leagueRepo = airtable.NewLeagueRepository(client)
		sportRepo = airtable.NewSportRepository(client)
		teamRepo = airtable.NewTeamRepository(client)
		matchRepo = airtable.NewMatchRepository(client)
		locationRepo = airtable.NewLocationRepository(client)
	} else {
		fx := memory.SeedFixtures()
		leagueRepo = memory.NewLeagueRepository(fx.Leagues)
		sportRepo = memory.NewSportRepository(fx.Sports)
		teamRepo = memory.NewTeamRepository(fx.Teams)
		matchRepo = memory.NewMatchRepository(fx.Matches)
		locationRepo = memory.NewLocationRepository(fx.Locations)
	}

	var store *cache.Store
	if cfg.CacheEnabled {
		store = cache.NewStore(cfg.CacheTTL)
	}

	catalog := usecase.NewCatalogService(leagueRepo, sportRepo, teamRepo, matchRepo, locationRepo, store, logger)

	var (
		fetcher usecase.RecommendationFetcher
		profile usecase.UserProfileClient
	)
	if cfg.RecommenderEnabled {
		client := recommender.NewClient(recommender.ClientConfig{
			BaseURL:    cfg.RecommenderBaseURL,
			Timeout:    cfg.RecommenderTimeout,
			MaxRetries: cfg.RecommenderMaxRetries,
			CircuitBreaker: resilience.CircuitBreakerConfig{
				Enabled:          cfg.RecommenderCircuitEnabled,
				FailureThreshold: cfg.RecommenderCircuitFailureCount,
				OpenTimeout:      cfg.RecommenderCircuitOpenTimeout,
				HalfOpenMaxReq:   cfg.RecommenderCircuitHalfOpenMaxReq,
			},
		}, accessLogger)
		fetcher = client
		profile = client
	}

	recs := usecase.NewRecommendationService(fetcher, catalog, cfg.EnrichmentWorkers, logger)
	onboarding := usecase.NewOnboardingService(
		identity.NewProvider(cfg.IdentityFile),
		profile,
		cache.NewStore(cfg.SessionTTL),
		logger,
	)
	pages := usecase.NewPageService(catalog, recs, onboarding, onboarding, logger)

	handler := httpapi.NewHandler(catalog, pages, onboarding, accessLogger)
	router := httpapi.NewRouter(handler, accessLogger, cfg.CORSAllowedOrigins)

	server := &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	if server.Addr == "" {
		return nil, fmt.Errorf("http server addr cannot be empty")
	}

	return server, nil
}
